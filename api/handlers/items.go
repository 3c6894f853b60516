// ABOUTME: Item handlers for the Huma API
// ABOUTME: Lists filtered posts and job cards and lets the user reveal one

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"linkoff-engine/api/dto/mappers"
	"linkoff-engine/api/dto/responses"
	"linkoff-engine/core/domain"
	"linkoff-engine/linkoff"
)

// ItemService defines the methods needed from the engine for items
type ItemService interface {
	Items(ctx context.Context, surface domain.Surface) ([]linkoff.Item, error)
	Reveal(ctx context.Context, id string) (bool, error)
}

// ItemHandler handles item HTTP requests
type ItemHandler struct {
	service ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(service ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers all item routes
func (h *ItemHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listItems",
		Method:      http.MethodGet,
		Path:        "/surfaces/{surface}/items",
		Summary:     "List items",
		Description: "Lists the items of a surface with their filtering state, one page at a time",
		Tags:        []string{"Items"},
	}, h.ListItems)

	huma.Register(api, huma.Operation{
		OperationID: "revealItem",
		Method:      http.MethodPost,
		Path:        "/items/{id}/reveal",
		Summary:     "Reveal an item",
		Description: "Shows a hidden item until the rules change",
		Tags:        []string{"Items"},
	}, h.RevealItem)
}

// ListItemsInput defines the input for the ListItems operation
type ListItemsInput struct {
	Surface string `path:"surface" enum:"feed,jobs" doc:"Filtered page region"`
	State   string `query:"state" enum:"pristine,hidden,shown" doc:"Only list items in this state"`
	Page    int    `query:"page" minimum:"1" default:"1" doc:"Page number, starting at 1"`
	PerPage int    `query:"per_page" minimum:"1" maximum:"500" default:"50" doc:"Items per page"`
}

// ListItemsOutput defines the output for the ListItems operation
type ListItemsOutput struct {
	Body responses.ItemsResponse
}

// ListItems handles the GET /surfaces/{surface}/items endpoint
func (h *ItemHandler) ListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	surface, ok := domain.ParseSurface(input.Surface)
	if !ok {
		return nil, huma.Error400BadRequest("unknown surface " + input.Surface)
	}

	items, err := h.service.Items(ctx, surface)
	if err != nil {
		return nil, toHumaError(err)
	}
	items = mappers.FilterByState(items, input.State)
	return &ListItemsOutput{Body: *mappers.ToItemsResponse(surface, items, input.Page, input.PerPage)}, nil
}

// RevealItemInput defines the input for the RevealItem operation
type RevealItemInput struct {
	ID string `path:"id" doc:"Item identifier"`
}

// RevealItemOutput defines the output for the RevealItem operation
type RevealItemOutput struct {
	Body responses.RevealResponse
}

// RevealItem handles the POST /items/{id}/reveal endpoint
func (h *ItemHandler) RevealItem(ctx context.Context, input *RevealItemInput) (*RevealItemOutput, error) {
	revealed, err := h.service.Reveal(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &RevealItemOutput{Body: responses.RevealResponse{ID: input.ID, Revealed: revealed}}, nil
}
