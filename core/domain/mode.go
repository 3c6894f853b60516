// ABOUTME: Visual mode and surface enumerations shared by every component
// ABOUTME: A surface is one filtered region of the page (feed or jobs list)

package domain

import "strings"

// VisualMode selects how a hidden item is presented.
type VisualMode int

const (
	// ModeHide removes hidden items from view.
	ModeHide VisualMode = iota
	// ModeDim keeps hidden items visible at reduced opacity.
	ModeDim
)

func (m VisualMode) String() string {
	if m == ModeDim {
		return "dim"
	}
	return "hide"
}

// Surface names a filtered page region.
type Surface string

const (
	SurfaceFeed Surface = "feed"
	SurfaceJobs Surface = "jobs"
)

// ParseSurface accepts "feed" or "jobs" in any case.
func ParseSurface(s string) (Surface, bool) {
	switch Surface(strings.ToLower(strings.TrimSpace(s))) {
	case SurfaceFeed:
		return SurfaceFeed, true
	case SurfaceJobs:
		return SurfaceJobs, true
	}
	return "", false
}

// Surfaces lists every surface in processing order.
func Surfaces() []Surface {
	return []Surface{SurfaceFeed, SurfaceJobs}
}
