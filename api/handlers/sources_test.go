package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"digests-reader/api/dto/responses"
	"digests-reader/core/domain"
	"digests-reader/core/viewmodel"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSourcesAPI(t *testing.T, settings *mockSettings) (humatest.TestAPI, *viewmodel.SourceSelectionModel) {
	t.Helper()
	model, err := viewmodel.NewSourceSelectionModel(context.Background(), testCatalog, settings, nil)
	require.NoError(t, err)

	_, api := humatest.New(t)
	NewSourcesHandler(model).RegisterRoutes(api)
	return api, model
}

func decodeSources(t *testing.T, body []byte) responses.SourcesResponse {
	t.Helper()
	var out responses.SourcesResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestSourcesHandler_RegisterRoutes(t *testing.T) {
	api, _ := newSourcesAPI(t, &mockSettings{})

	paths := api.OpenAPI().Paths
	assert.NotNil(t, paths["/sources"].Get)
	assert.NotNil(t, paths["/sources"].Post)
	assert.NotNil(t, paths["/sources/toggle"].Post)
	assert.NotNil(t, paths["/sources/save"].Post)
	assert.NotNil(t, paths["/sources/valid"].Get)
}

func TestSourcesHandler_ListAndFilter(t *testing.T) {
	api, _ := newSourcesAPI(t, &mockSettings{})

	all := decodeSources(t, api.Get("/sources").Body.Bytes())
	assert.Len(t, all.Sources, 3)
	assert.False(t, all.Valid)

	filtered := decodeSources(t, api.Get("/sources?filter=BLOG").Body.Bytes())
	require.Len(t, filtered.Sources, 1)
	assert.Equal(t, "Beta Blog", filtered.Sources[0].Title)

	none := decodeSources(t, api.Get("/sources?filter=zzz").Body.Bytes())
	assert.Empty(t, none.Sources)
}

func TestSourcesHandler_Toggle(t *testing.T) {
	api, _ := newSourcesAPI(t, &mockSettings{})

	resp := api.Post("/sources/toggle", map[string]any{"url": "https://beta.example.com/feed"})
	require.Equal(t, http.StatusOK, resp.Code)
	out := decodeSources(t, resp.Body.Bytes())
	assert.True(t, out.Valid)
	assert.True(t, out.Sources[1].Selected)

	resp = api.Post("/sources/toggle", map[string]any{"url": "https://alpha.example.com/rss"})
	out = decodeSources(t, resp.Body.Bytes())
	assert.True(t, out.Sources[0].Selected)
	assert.False(t, out.Sources[1].Selected, "selection is exclusive")

	resp = api.Post("/sources/toggle", map[string]any{"url": "https://alpha.example.com/rss"})
	out = decodeSources(t, resp.Body.Bytes())
	assert.False(t, out.Valid, "toggling the selected source clears the selection")

	var valid responses.ValidResponse
	require.NoError(t, json.Unmarshal(api.Get("/sources/valid").Body.Bytes(), &valid))
	assert.False(t, valid.Valid)
}

func TestSourcesHandler_ToggleUnknownSource(t *testing.T) {
	api, _ := newSourcesAPI(t, &mockSettings{})

	resp := api.Post("/sources/toggle", map[string]any{"url": "https://unknown.example.com/rss"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSourcesHandler_AddSource(t *testing.T) {
	api, model := newSourcesAPI(t, &mockSettings{})

	resp := api.Post("/sources", map[string]any{"title": "Custom", "url": "https://custom.example.com/rss"})
	require.Equal(t, http.StatusCreated, resp.Code)

	out := decodeSources(t, resp.Body.Bytes())
	require.Len(t, out.Sources, 4)
	assert.Equal(t, "Custom", out.Sources[0].Title)
	assert.True(t, out.Sources[0].Selected)
	assert.True(t, out.Valid)
	assert.Len(t, model.All(), 4)
}

func TestSourcesHandler_AddInvalidSource(t *testing.T) {
	api, model := newSourcesAPI(t, &mockSettings{})

	resp := api.Post("/sources", map[string]any{"title": "Broken", "url": "ftp://example.com/feed"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Len(t, model.All(), 3)
}

func TestSourcesHandler_Save(t *testing.T) {
	settings := &mockSettings{}
	api, _ := newSourcesAPI(t, settings)

	resp := api.Post("/sources/save")
	assert.Equal(t, http.StatusConflict, resp.Code, "nothing selected yet")
	assert.Nil(t, settings.selected)

	api.Post("/sources/toggle", map[string]any{"url": "https://gamma.example.com/atom"})
	resp = api.Post("/sources/save")
	require.Equal(t, http.StatusOK, resp.Code)

	require.NotNil(t, settings.selected)
	assert.Equal(t, "Gamma Daily", settings.selected.Title)
	assert.Contains(t, resp.Body.String(), "https://gamma.example.com/atom")
}

func TestSourcesHandler_SaveFailure(t *testing.T) {
	settings := &mockSettings{selected: &domain.Source{Title: "Alpha News", URL: "https://alpha.example.com/rss"}}
	api, _ := newSourcesAPI(t, settings)
	settings.setErr = errors.New("disk full")

	resp := api.Post("/sources/save")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestSourcesHandler_SaveEchoesPersistedSourceDuringToggles(t *testing.T) {
	settings := &mockSettings{selected: &domain.Source{Title: "Alpha News", URL: "https://alpha.example.com/rss"}}
	api, model := newSourcesAPI(t, settings)
	alpha := model.Find(domain.Source{URL: "https://alpha.example.com/rss"})
	beta := model.Find(domain.Source{URL: "https://beta.example.com/feed"})

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			if i%2 == 0 {
				model.ToggleSource(beta)
			} else {
				model.ToggleSource(alpha)
			}
		}
	}()
	defer func() {
		close(done)
		wg.Wait()
	}()

	for i := 0; i < 200; i++ {
		resp := api.Post("/sources/save")
		if resp.Code == http.StatusConflict {
			continue
		}
		require.Equal(t, http.StatusOK, resp.Code)

		var echoed responses.SavedSourceResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &echoed))
		written, err := settings.SelectedSource(context.Background())
		require.NoError(t, err)
		require.Equal(t, written.URL, echoed.URL, "save %d", i)
		require.Equal(t, written.Title, echoed.Title, "save %d", i)
	}
}
