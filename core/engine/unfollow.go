// ABOUTME: Unfollow-all command walking every unfollow button on the follows page
// ABOUTME: Reports a wrong-page error anywhere else

package engine

import (
	"context"

	"linkoff-engine/core/domain"
	coreerrors "linkoff-engine/core/errors"
	"linkoff-engine/pkg/clock"
)

// WrongPageMessage is shown when unfollow-all runs off the follows page.
const WrongPageMessage = "No messages. Are you on the follows page (/mynetwork/network-manager/people-follow)?\n\n" +
	"If not, please navigate to following using the LinkedIn navbar and then click the Unfollow All button again."

// UnfollowAll clicks every unfollow button, scrolling for more between
// passes, and returns how many were clicked.
func (c *Controller) UnfollowAll(ctx context.Context) (int, error) {
	url := c.deps.Document.URL()
	if !domain.IsPeopleFollowPage(url) {
		c.deps.Notifier.Notify(WrongPageMessage)
		return 0, &coreerrors.WrongPageError{
			Command:  "unfollow-all",
			Expected: domain.PeopleFollow,
			Actual:   url,
		}
	}

	total := 0
	for pass := 0; pass < c.cfg.UnfollowMaxPasses; pass++ {
		var remaining int
		if err := c.executor.Do(ctx, func(context.Context) {
			remaining = c.deps.Clicker.Count(UnfollowButtonSelector)
		}); err != nil {
			return total, err
		}
		if remaining == 0 {
			c.logger.Info("Successfully unfollowed all", map[string]interface{}{"unfollowed": total})
			return total, nil
		}

		for i := 0; i < remaining; i++ {
			var clicked int
			var clickErr error
			if err := c.executor.Do(ctx, func(ctx context.Context) {
				clicked, clickErr = c.deps.Clicker.Click(ctx, UnfollowButtonSelector, 1)
			}); err != nil {
				return total, err
			}
			if clickErr != nil {
				return total, coreerrors.WrapError(clickErr, "unfollow")
			}
			total += clicked
			if err := clock.Sleep(ctx, c.clock, c.cfg.UnfollowPause); err != nil {
				return total, err
			}
		}

		if err := c.deps.Clicker.ScrollToBottom(ctx); err != nil {
			return total, coreerrors.WrapError(err, "scroll")
		}
		if err := clock.Sleep(ctx, c.clock, c.cfg.UnfollowSettle); err != nil {
			return total, err
		}
	}

	c.logger.Warn("Unfollow stopped before the list was empty", map[string]interface{}{
		"unfollowed": total,
		"passes":     c.cfg.UnfollowMaxPasses,
	})
	return total, nil
}
