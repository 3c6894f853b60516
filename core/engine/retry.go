// ABOUTME: Bounded retry helper for page elements that render late
// ABOUTME: Waits base + step*n before attempt n and gives up silently

package engine

import (
	"context"
	"time"

	"linkoff-engine/pkg/clock"
)

// retry calls attempt until it reports success, ctx ends or attempts
// run out. It reports whether an attempt succeeded.
func retry(ctx context.Context, clk clock.Clock, attempts int, base, step time.Duration, attempt func() bool) bool {
	for n := 0; n < attempts; n++ {
		if err := clock.Sleep(ctx, clk, base+time.Duration(n)*step); err != nil {
			return false
		}
		if attempt() {
			return true
		}
	}
	return false
}
