package requests

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDocumentRequest_Address(t *testing.T) {
	tests := []struct {
		name string
		req  LoadDocumentRequest
		want string
	}{
		{"explicit url", LoadDocumentRequest{URL: "https://www.linkedin.com/feed/", FeedURL: "https://example.com/rss"}, "https://www.linkedin.com/feed/"},
		{"feed url only", LoadDocumentRequest{FeedURL: "https://example.com/rss"}, "https://example.com/rss"},
		{"neither", LoadDocumentRequest{HTML: "<p></p>"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Address())
		})
	}
}
