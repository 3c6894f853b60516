package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkoff-engine/api/dto/responses"
	"linkoff-engine/core/domain"
	coreerrors "linkoff-engine/core/errors"
)

func TestSettingsHandler_RegisterRoutes(t *testing.T) {
	_, api := humatest.New(t)
	NewSettingsHandler(&mockEngine{}).RegisterRoutes(api)

	openapi := api.OpenAPI()
	require.NotNil(t, openapi.Paths["/settings"])
	assert.NotNil(t, openapi.Paths["/settings"].Get)
	assert.NotNil(t, openapi.Paths["/settings"].Put)
}

func TestSettingsHandler_GetSettings(t *testing.T) {
	_, api := humatest.New(t)
	NewSettingsHandler(&mockEngine{}).RegisterRoutes(api)

	resp := api.Get("/settings")
	require.Equal(t, http.StatusOK, resp.Code)

	var body responses.SettingsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "dim", body.Mode)
	assert.Len(t, body.Settings, len(domain.DefaultKeys()))
}

func TestSettingsHandler_GetSettings_StoreDown(t *testing.T) {
	engine := &mockEngine{
		settingsFunc: func(ctx context.Context) (domain.Snapshot, error) {
			return domain.Snapshot{}, &coreerrors.StoreError{Backend: "redis", Op: "get"}
		},
	}
	_, api := humatest.New(t)
	NewSettingsHandler(engine).RegisterRoutes(api)

	resp := api.Get("/settings")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestSettingsHandler_UpdateSettings(t *testing.T) {
	var got map[string]any
	engine := &mockEngine{
		updateSettingsFunc: func(ctx context.Context, values map[string]any) (domain.Snapshot, error) {
			got = values
			return domain.MergeDefaults(values), nil
		},
	}
	_, api := humatest.New(t)
	NewSettingsHandler(engine).RegisterRoutes(api)

	resp := api.Put("/settings", map[string]any{
		"values": map[string]any{"gentle-mode": false, "feed-keywords": "crypto,nft"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Equal(t, false, got["gentle-mode"])
	assert.Equal(t, "crypto,nft", got["feed-keywords"])

	var body responses.SettingsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "hide", body.Mode)
}

func TestSettingsHandler_UpdateSettings_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		err        error
		wantStatus int
	}{
		{
			name:       "empty values",
			body:       map[string]any{"values": map[string]any{}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "engine rejects value",
			body:       map[string]any{"values": map[string]any{"hide-polls": "yes"}},
			err:        &coreerrors.ValidationError{Field: "hide-polls", Message: "must be a boolean"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store failure",
			body:       map[string]any{"values": map[string]any{"hide-polls": false}},
			err:        &coreerrors.StoreError{Backend: "sqlite", Op: "set"},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockEngine{
				updateSettingsFunc: func(ctx context.Context, values map[string]any) (domain.Snapshot, error) {
					return domain.Snapshot{}, tt.err
				},
			}
			_, api := humatest.New(t)
			NewSettingsHandler(engine).RegisterRoutes(api)

			resp := api.Put("/settings", tt.body)

			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}
