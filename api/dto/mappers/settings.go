// ABOUTME: Mappers for converting between library types and API DTOs
// ABOUTME: Provides clean separation between the engine and the API layer

package mappers

import (
	"linkoff-engine/api/dto/responses"
	"linkoff-engine/core/domain"
	"linkoff-engine/linkoff"
)

// ToSettingsResponse converts a snapshot to a SettingsResponse DTO
func ToSettingsResponse(snap domain.Snapshot) *responses.SettingsResponse {
	settings := linkoff.Settings(snap)
	response := &responses.SettingsResponse{
		Mode:     snap.Mode().String(),
		Settings: make([]responses.SettingResponse, 0, len(settings)),
	}
	for _, s := range settings {
		response.Settings = append(response.Settings, responses.SettingResponse{
			Key:   s.Key,
			Label: s.Label,
			Value: s.Value,
		})
	}
	return response
}

// ToItemResponse converts a library Item to an ItemResponse DTO
func ToItemResponse(item linkoff.Item) responses.ItemResponse {
	return responses.ItemResponse{
		ID:        item.ID,
		Surface:   item.Surface,
		State:     item.State,
		Revealed:  item.Revealed,
		MatchedBy: item.MatchedBy,
		Excerpt:   item.Excerpt,
	}
}

// ToItemsResponse converts one page of the items of a surface. TotalItems
// counts every item, not just the page.
func ToItemsResponse(surface domain.Surface, items []linkoff.Item, page, perPage int) *responses.ItemsResponse {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	paged := PaginateItems(items, page, perPage)
	response := &responses.ItemsResponse{
		Surface:    string(surface),
		TotalItems: len(items),
		Page:       page,
		PerPage:    perPage,
		Items:      make([]responses.ItemResponse, 0, len(paged)),
	}
	for _, item := range paged {
		response.Items = append(response.Items, ToItemResponse(item))
	}
	return response
}

// ToPageResponse converts a report to a PageResponse DTO
func ToPageResponse(report *linkoff.Report) *responses.PageResponse {
	if report == nil {
		return nil
	}
	return &responses.PageResponse{
		URL:     report.URL,
		Mode:    report.Mode,
		Hidden:  report.Hidden,
		Shown:   report.Shown,
		Pending: report.Pending,
	}
}
