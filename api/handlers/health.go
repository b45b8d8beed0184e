// ABOUTME: Health check handler for the Huma API
// ABOUTME: Reports liveness and the state of feature flags

package handlers

import (
	"context"
	"net/http"

	"digests-reader/pkg/featureflags"
	"github.com/danielgtaylor/huma/v2"
)

// HealthHandler reports service health
type HealthHandler struct {
	flags   featureflags.Manager
	version string
}

// NewHealthHandler creates a health handler. flags may be nil.
func NewHealthHandler(flags featureflags.Manager, version string) *HealthHandler {
	return &HealthHandler{flags: flags, version: version}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput is the health response
type HealthOutput struct {
	Body struct {
		Status   string          `json:"status"`
		Version  string          `json:"version"`
		Features map[string]bool `json:"features,omitempty"`
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{}
	out.Body.Status = "ok"
	out.Body.Version = h.version

	if h.flags != nil {
		out.Body.Features = make(map[string]bool)
		for flag, enabled := range h.flags.GetAllFlags() {
			out.Body.Features[string(flag)] = enabled
		}
	}

	return out, nil
}
