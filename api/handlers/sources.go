// ABOUTME: Source selection handlers for the Huma API
// ABOUTME: Expose listing, filtering, toggling, adding and saving of feed sources

package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"digests-reader/api/dto/mappers"
	"digests-reader/api/dto/requests"
	"digests-reader/api/dto/responses"
	"digests-reader/core/domain"
	"digests-reader/core/errors"
	"digests-reader/core/viewmodel"
	"github.com/danielgtaylor/huma/v2"
)

// SourceSelection is the part of the selection model the API drives
type SourceSelection interface {
	All() []*viewmodel.SelectableSource
	Valid() bool
	Find(source domain.Source) *viewmodel.SelectableSource
	ToggleSource(target *viewmodel.SelectableSource)
	AddNewSource(source domain.Source) (*viewmodel.SelectableSource, error)
	SaveSelection(ctx context.Context) (domain.Source, error)
}

// SourcesHandler handles source selection requests
type SourcesHandler struct {
	model SourceSelection
}

// NewSourcesHandler creates a new sources handler
func NewSourcesHandler(model SourceSelection) *SourcesHandler {
	return &SourcesHandler{model: model}
}

// RegisterRoutes registers all source-related routes
func (h *SourcesHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listSources",
		Method:      http.MethodGet,
		Path:        "/sources",
		Summary:     "List feed sources",
		Description: "Returns the sources whose title contains the filter text, ignoring case",
		Tags:        []string{"Sources"},
	}, h.ListSources)

	huma.Register(api, huma.Operation{
		OperationID: "toggleSource",
		Method:      http.MethodPost,
		Path:        "/sources/toggle",
		Summary:     "Toggle a source",
		Description: "Selects the source, deselecting every other one, or deselects it if it was selected",
		Tags:        []string{"Sources"},
	}, h.ToggleSource)

	huma.Register(api, huma.Operation{
		OperationID:   "addSource",
		Method:        http.MethodPost,
		Path:          "/sources",
		Summary:       "Add a custom source",
		Description:   "Adds a source to the head of the list and selects it",
		Tags:          []string{"Sources"},
		DefaultStatus: http.StatusCreated,
	}, h.AddSource)

	huma.Register(api, huma.Operation{
		OperationID: "saveSource",
		Method:      http.MethodPost,
		Path:        "/sources/save",
		Summary:     "Save the selected source",
		Description: "Persists the selected source so the feed loads it",
		Tags:        []string{"Sources"},
	}, h.SaveSource)

	huma.Register(api, huma.Operation{
		OperationID: "sourcesValid",
		Method:      http.MethodGet,
		Path:        "/sources/valid",
		Summary:     "Check the selection",
		Description: "Reports whether exactly one source is selected",
		Tags:        []string{"Sources"},
	}, h.Valid)
}

// ListSourcesInput filters the listing
type ListSourcesInput struct {
	Filter string `query:"filter" doc:"Case-insensitive title filter"`
}

// SourcesOutput wraps the source list
type SourcesOutput struct {
	Body responses.SourcesResponse
}

// ListSources handles GET /sources
func (h *SourcesHandler) ListSources(ctx context.Context, input *ListSourcesInput) (*SourcesOutput, error) {
	visible := viewmodel.FilterSources(h.model.All(), input.Filter)
	return &SourcesOutput{Body: mappers.ToSourcesResponse(visible, h.model.Valid())}, nil
}

// ToggleSourceInput names the source to toggle
type ToggleSourceInput struct {
	Body requests.ToggleSourceRequest
}

// ToggleSource handles POST /sources/toggle
func (h *SourcesHandler) ToggleSource(ctx context.Context, input *ToggleSourceInput) (*SourcesOutput, error) {
	target := h.model.Find(domain.Source{URL: input.Body.URL})
	if target == nil {
		return nil, toHumaError(&errors.NotFoundError{Resource: "source", ID: input.Body.URL})
	}

	h.model.ToggleSource(target)

	return &SourcesOutput{Body: mappers.ToSourcesResponse(h.model.All(), h.model.Valid())}, nil
}

// AddSourceInput describes the new source
type AddSourceInput struct {
	Body requests.AddSourceRequest
}

// AddSource handles POST /sources
func (h *SourcesHandler) AddSource(ctx context.Context, input *AddSourceInput) (*SourcesOutput, error) {
	if _, err := h.model.AddNewSource(domain.Source{Title: input.Body.Title, URL: input.Body.URL}); err != nil {
		return nil, toHumaError(err)
	}

	return &SourcesOutput{Body: mappers.ToSourcesResponse(h.model.All(), h.model.Valid())}, nil
}

// SaveSourceOutput echoes the saved source
type SaveSourceOutput struct {
	Body responses.SavedSourceResponse
}

// SaveSource handles POST /sources/save
func (h *SourcesHandler) SaveSource(ctx context.Context, input *struct{}) (*SaveSourceOutput, error) {
	saved, err := h.model.SaveSelection(ctx)
	switch {
	case stderrors.Is(err, errors.ErrNothingSelected):
		return nil, toHumaError(err)
	case err != nil:
		return nil, huma.Error500InternalServerError("Failed to save the selected source")
	}

	return &SaveSourceOutput{Body: responses.SavedSourceResponse{Title: saved.Title, URL: saved.URL}}, nil
}

// ValidOutput reports the selection state
type ValidOutput struct {
	Body responses.ValidResponse
}

// Valid handles GET /sources/valid
func (h *SourcesHandler) Valid(ctx context.Context, input *struct{}) (*ValidOutput, error) {
	return &ValidOutput{Body: responses.ValidResponse{Valid: h.model.Valid()}}, nil
}
