// ABOUTME: Relative age labels in the style LinkedIn prints above each post
// ABOUTME: Produces "5m •", "3h •", "2d •", "1w •", "4mo •" and "2y •"

package age

import (
	"fmt"
	"time"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

// Label renders how long ago published was relative to now. Posts from
// the future count as just published.
func Label(published, now time.Time) string {
	d := now.Sub(published)
	if d < 0 {
		d = 0
	}

	switch {
	case d < time.Hour:
		return fmt.Sprintf("%dm •", int(d/time.Minute))
	case d < day:
		return fmt.Sprintf("%dh •", int(d/time.Hour))
	case d < week:
		return fmt.Sprintf("%dd •", int(d/day))
	case d < month:
		return fmt.Sprintf("%dw •", int(d/week))
	case d < year:
		return fmt.Sprintf("%dmo •", int(d/month))
	}
	return fmt.Sprintf("%dy •", int(d/year))
}
