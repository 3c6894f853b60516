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
	"linkoff-engine/linkoff"
)

func TestItemHandler_ListItems(t *testing.T) {
	engine := &mockEngine{
		itemsFunc: func(ctx context.Context, surface domain.Surface) ([]linkoff.Item, error) {
			assert.Equal(t, domain.SurfaceJobs, surface)
			return []linkoff.Item{
				{ID: "4001", Surface: "jobs", State: "hidden", MatchedBy: "Promoted"},
				{ID: "4002", Surface: "jobs", State: "shown"},
			}, nil
		},
	}
	_, api := humatest.New(t)
	NewItemHandler(engine).RegisterRoutes(api)

	resp := api.Get("/surfaces/jobs/items")
	require.Equal(t, http.StatusOK, resp.Code)

	var body responses.ItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "jobs", body.Surface)
	assert.Equal(t, 2, body.TotalItems)
	assert.Equal(t, 50, body.PerPage)
	assert.Equal(t, "Promoted", body.Items[0].MatchedBy)
}

func TestItemHandler_ListItems_StateAndPage(t *testing.T) {
	engine := &mockEngine{
		itemsFunc: func(ctx context.Context, surface domain.Surface) ([]linkoff.Item, error) {
			return []linkoff.Item{
				{ID: "1", Surface: "feed", State: "hidden"},
				{ID: "2", Surface: "feed", State: "shown"},
				{ID: "3", Surface: "feed", State: "hidden"},
				{ID: "4", Surface: "feed", State: "hidden"},
			}, nil
		},
	}
	_, api := humatest.New(t)
	NewItemHandler(engine).RegisterRoutes(api)

	resp := api.Get("/surfaces/feed/items?state=hidden&page=2&per_page=2")
	require.Equal(t, http.StatusOK, resp.Code)

	var body responses.ItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 3, body.TotalItems)
	assert.Equal(t, 2, body.Page)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "4", body.Items[0].ID)

	resp = api.Get("/surfaces/feed/items?state=gone")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestItemHandler_ListItems_UnknownSurface(t *testing.T) {
	_, api := humatest.New(t)
	NewItemHandler(&mockEngine{}).RegisterRoutes(api)

	resp := api.Get("/surfaces/groups/items")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestItemHandler_RevealItem(t *testing.T) {
	engine := &mockEngine{
		revealFunc: func(ctx context.Context, id string) (bool, error) {
			return id == "42", nil
		},
	}
	_, api := humatest.New(t)
	NewItemHandler(engine).RegisterRoutes(api)

	resp := api.Post("/items/42/reveal")
	require.Equal(t, http.StatusOK, resp.Code)

	var body responses.RevealResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Revealed)
	assert.Equal(t, "42", body.ID)
}

func TestItemHandler_RevealItem_NotFound(t *testing.T) {
	engine := &mockEngine{
		revealFunc: func(ctx context.Context, id string) (bool, error) {
			return false, &coreerrors.NotFoundError{Resource: "item", ID: id}
		},
	}
	_, api := humatest.New(t)
	NewItemHandler(engine).RegisterRoutes(api)

	resp := api.Post("/items/missing/reveal")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
