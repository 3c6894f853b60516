// ABOUTME: Settings handlers for the Huma API
// ABOUTME: Reads the merged settings snapshot and writes changes through the engine

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"linkoff-engine/api/dto/mappers"
	"linkoff-engine/api/dto/requests"
	"linkoff-engine/api/dto/responses"
	"linkoff-engine/core/domain"
)

// SettingsService defines the methods needed from the engine for settings
type SettingsService interface {
	Settings(ctx context.Context) (domain.Snapshot, error)
	UpdateSettings(ctx context.Context, values map[string]any) (domain.Snapshot, error)
}

// SettingsHandler handles settings HTTP requests
type SettingsHandler struct {
	service SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(service SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// RegisterRoutes registers all settings routes
func (h *SettingsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getSettings",
		Method:      http.MethodGet,
		Path:        "/settings",
		Summary:     "Get settings",
		Description: "Returns every setting merged over its default, with labels",
		Tags:        []string{"Settings"},
	}, h.GetSettings)

	huma.Register(api, huma.Operation{
		OperationID: "updateSettings",
		Method:      http.MethodPut,
		Path:        "/settings",
		Summary:     "Update settings",
		Description: "Writes the given settings and re-applies the filter",
		Tags:        []string{"Settings"},
	}, h.UpdateSettings)
}

// GetSettingsOutput defines the output for the GetSettings operation
type GetSettingsOutput struct {
	Body responses.SettingsResponse
}

// GetSettings handles the GET /settings endpoint
func (h *SettingsHandler) GetSettings(ctx context.Context, input *struct{}) (*GetSettingsOutput, error) {
	snap, err := h.service.Settings(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GetSettingsOutput{Body: *mappers.ToSettingsResponse(snap)}, nil
}

// UpdateSettingsInput defines the input for the UpdateSettings operation
type UpdateSettingsInput struct {
	Body requests.UpdateSettingsRequest
}

// UpdateSettings handles the PUT /settings endpoint
func (h *SettingsHandler) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*GetSettingsOutput, error) {
	if len(input.Body.Values) == 0 {
		return nil, huma.Error400BadRequest("values must not be empty")
	}

	snap, err := h.service.UpdateSettings(ctx, input.Body.Values)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GetSettingsOutput{Body: *mappers.ToSettingsResponse(snap)}, nil
}
