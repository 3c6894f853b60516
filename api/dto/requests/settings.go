// ABOUTME: Request DTOs for the settings and page endpoints
// ABOUTME: Huma validates the tagged constraints before handlers run

package requests

// UpdateSettingsRequest carries the settings to write
type UpdateSettingsRequest struct {
	// Values maps setting keys to booleans or strings
	Values map[string]any `json:"values" doc:"Setting values keyed by setting name"`
}

// NavigateRequest moves the page to a new address
type NavigateRequest struct {
	URL string `json:"url" minLength:"1" doc:"New page address"`
}

// LoadDocumentRequest replaces the page. Exactly one of HTML and FeedURL
// must be set.
type LoadDocumentRequest struct {
	// URL is the address the page is served at; defaults to FeedURL
	URL string `json:"url,omitempty" doc:"Page address"`

	// HTML is the page markup
	HTML string `json:"html,omitempty" doc:"Page markup"`

	// FeedURL loads an RSS, Atom or JSON feed as the page
	FeedURL string `json:"feed_url,omitempty" doc:"Feed to load as the page"`
}

// Address returns the page address, falling back to the feed URL.
func (r *LoadDocumentRequest) Address() string {
	if r.URL != "" {
		return r.URL
	}
	return r.FeedURL
}
