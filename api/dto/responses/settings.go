// ABOUTME: Response DTOs for the LinkOff control API
// ABOUTME: Mirrors the library types with stable JSON field names

package responses

// SettingResponse is one setting with its label
type SettingResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value any    `json:"value"`
}

// SettingsResponse is the merged settings snapshot
type SettingsResponse struct {
	Mode     string            `json:"mode" doc:"Visual mode for hidden items: hide or dim"`
	Settings []SettingResponse `json:"settings"`
}

// ItemResponse is one filtered item
type ItemResponse struct {
	ID        string `json:"id"`
	Surface   string `json:"surface"`
	State     string `json:"state" enum:"pristine,hidden,shown"`
	Revealed  bool   `json:"revealed"`
	MatchedBy string `json:"matched_by,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
}

// ItemsResponse lists the items of a surface
type ItemsResponse struct {
	Surface    string         `json:"surface"`
	TotalItems int            `json:"totalItems"`
	Page       int            `json:"page"`
	PerPage    int            `json:"perPage"`
	Items      []ItemResponse `json:"items"`
}

// RevealResponse reports whether an item changed
type RevealResponse struct {
	ID       string `json:"id"`
	Revealed bool   `json:"revealed"`
}

// PageResponse summarises the page after a change
type PageResponse struct {
	URL     string `json:"url"`
	Mode    string `json:"mode"`
	Hidden  int    `json:"hidden"`
	Shown   int    `json:"shown"`
	Pending int    `json:"pending"`
}

// UnfollowResponse reports how many people were unfollowed
type UnfollowResponse struct {
	Unfollowed int `json:"unfollowed"`
}
