// ABOUTME: Lenient date parsing for the timestamps found in RSS and Atom feeds
// ABOUTME: Tries the common layouts in turn and reports the zero time on failure

package age

import (
	"strings"
	"time"
)

// Layouts seen in the wild, most specific first.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	"02 Jan 2006 15:04:05 MST",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse returns the first layout that accepts s, or the zero time.
func Parse(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseOr is Parse with a fallback for unparseable input.
func ParseOr(s string, fallback time.Time) time.Time {
	if t := Parse(s); !t.IsZero() {
		return t
	}
	return fallback
}
