// ABOUTME: Page handlers for the Huma API
// ABOUTME: Loads documents and feeds, follows navigation and runs page commands

package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"linkoff-engine/api/dto/mappers"
	"linkoff-engine/api/dto/requests"
	"linkoff-engine/api/dto/responses"
	"linkoff-engine/linkoff"
)

// PageService defines the methods needed from the engine for the page
type PageService interface {
	Navigate(ctx context.Context, url string) error
	LoadDocument(ctx context.Context, url string, markup io.Reader) error
	LoadFeed(ctx context.Context, url string) error
	UnfollowAll(ctx context.Context) (int, error)
	Report(ctx context.Context) (*linkoff.Report, error)
}

// PageHandler handles page HTTP requests
type PageHandler struct {
	service PageService
}

// NewPageHandler creates a new page handler
func NewPageHandler(service PageService) *PageHandler {
	return &PageHandler{service: service}
}

// RegisterRoutes registers all page routes
func (h *PageHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getPage",
		Method:      http.MethodGet,
		Path:        "/document",
		Summary:     "Describe the page",
		Description: "Counts hidden, shown and pending items on the current page",
		Tags:        []string{"Page"},
	}, h.GetPage)

	huma.Register(api, huma.Operation{
		OperationID: "loadDocument",
		Method:      http.MethodPost,
		Path:        "/document",
		Summary:     "Load a page",
		Description: "Replaces the page with HTML markup or with the entries of a feed",
		Tags:        []string{"Page"},
	}, h.LoadDocument)

	huma.Register(api, huma.Operation{
		OperationID: "navigate",
		Method:      http.MethodPost,
		Path:        "/navigate",
		Summary:     "Navigate",
		Description: "Changes the page address and re-applies every setting",
		Tags:        []string{"Page"},
	}, h.Navigate)

	huma.Register(api, huma.Operation{
		OperationID: "unfollowAll",
		Method:      http.MethodPost,
		Path:        "/commands/unfollow-all",
		Summary:     "Unfollow everyone",
		Description: "Clicks every unfollow button; only valid on the follows page",
		Tags:        []string{"Commands"},
	}, h.UnfollowAll)
}

// PageOutput defines the output of the page operations
type PageOutput struct {
	Body responses.PageResponse
}

// GetPage handles the GET /document endpoint
func (h *PageHandler) GetPage(ctx context.Context, input *struct{}) (*PageOutput, error) {
	return h.page(ctx)
}

// LoadDocumentInput defines the input for the LoadDocument operation
type LoadDocumentInput struct {
	Body requests.LoadDocumentRequest
}

// LoadDocument handles the POST /document endpoint
func (h *PageHandler) LoadDocument(ctx context.Context, input *LoadDocumentInput) (*PageOutput, error) {
	req := input.Body
	switch {
	case req.HTML != "" && req.FeedURL != "":
		return nil, huma.Error400BadRequest("set either html or feed_url, not both")
	case req.FeedURL != "":
		if err := h.service.LoadFeed(ctx, req.FeedURL); err != nil {
			return nil, toHumaError(err)
		}
	case req.HTML != "":
		if req.URL == "" {
			return nil, huma.Error400BadRequest("url is required with html")
		}
		if err := h.service.LoadDocument(ctx, req.URL, strings.NewReader(req.HTML)); err != nil {
			return nil, toHumaError(err)
		}
	default:
		return nil, huma.Error400BadRequest("html or feed_url is required")
	}
	return h.page(ctx)
}

// NavigateInput defines the input for the Navigate operation
type NavigateInput struct {
	Body requests.NavigateRequest
}

// Navigate handles the POST /navigate endpoint
func (h *PageHandler) Navigate(ctx context.Context, input *NavigateInput) (*PageOutput, error) {
	if err := h.service.Navigate(ctx, input.Body.URL); err != nil {
		return nil, toHumaError(err)
	}
	return h.page(ctx)
}

// UnfollowAllOutput defines the output for the UnfollowAll operation
type UnfollowAllOutput struct {
	Body responses.UnfollowResponse
}

// UnfollowAll handles the POST /commands/unfollow-all endpoint
func (h *PageHandler) UnfollowAll(ctx context.Context, input *struct{}) (*UnfollowAllOutput, error) {
	n, err := h.service.UnfollowAll(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &UnfollowAllOutput{Body: responses.UnfollowResponse{Unfollowed: n}}, nil
}

func (h *PageHandler) page(ctx context.Context) (*PageOutput, error) {
	report, err := h.service.Report(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &PageOutput{Body: *mappers.ToPageResponse(report)}, nil
}
