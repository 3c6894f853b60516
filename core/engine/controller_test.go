package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkoff-engine/core/domain"
	coreerrors "linkoff-engine/core/errors"
	"linkoff-engine/core/interfaces"
	"linkoff-engine/pkg/clock"
)

type harness struct {
	page  *fakePage
	store *fakeStore
	clock *clock.FakeClock
	ctrl  *Controller
}

func newHarness(t *testing.T, url string, stored map[string]any, opts ...Option) *harness {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Feed.Manual = true
	cfg.Jobs.Manual = true
	cfg.UnfollowPause = 0
	cfg.UnfollowSettle = 0

	h := &harness{
		page:  newFakePage(url),
		store: newFakeStore(stored),
		clock: clock.NewFake(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)),
	}
	ctrl, err := New(interfaces.Dependencies{
		Store:      h.store,
		Document:   h.page,
		Toggler:    h.page,
		Clicker:    h.page,
		Appearance: h.page,
		Notifier:   h.page,
	}, append([]Option{WithConfig(cfg), WithClock(h.clock)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(ctrl.Close)
	h.ctrl = ctrl
	return h
}

func (h *harness) tick(t *testing.T, surface domain.Surface) {
	t.Helper()
	_, err := h.ctrl.Loop(surface).Tick(context.Background())
	require.NoError(t, err)
}

func twentyPosts() []*domain.Item {
	items := make([]*domain.Item, 20)
	for i := range items {
		markup := "<div>regular post</div>"
		if i == 6 {
			markup = `<div class="ads-container">sponsored</div>`
		}
		items[i] = feedPost(fmt.Sprintf("urn:li:activity:%d", i+1), markup, fmt.Sprintf("post %d", i+1))
	}
	return items
}

func TestNew_RequiresStoreAndDocument(t *testing.T) {
	_, err := New(interfaces.Dependencies{Document: newFakePage("")})
	assert.True(t, coreerrors.IsValidation(err))

	_, err = New(interfaces.Dependencies{Store: newFakeStore(nil)})
	assert.True(t, coreerrors.IsValidation(err))
}

func TestApply_HidesKeywordMatch(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, map[string]any{
		domain.KeyFeedKeywords: "ads-container",
		domain.KeyGentleMode:   true,
	})
	items := twentyPosts()
	h.page.add(domain.SurfaceFeed, items...)

	require.NoError(t, h.ctrl.Refresh(context.Background()))
	h.tick(t, domain.SurfaceFeed)

	for i, item := range items {
		if i == 6 {
			assert.Equal(t, domain.Hidden, item.State)
			assert.Equal(t, "ads-container", item.MatchedBy)
		} else {
			assert.Equal(t, domain.Shown, item.State, item.ID)
		}
	}
}

func TestApply_HideModeWithEnoughItems(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, map[string]any{
		domain.KeyFeedKeywords: "ads-container",
		domain.KeyGentleMode:   false,
	})
	items := twentyPosts()
	h.page.add(domain.SurfaceFeed, items...)

	require.NoError(t, h.ctrl.Refresh(context.Background()))
	h.tick(t, domain.SurfaceFeed)

	assert.Equal(t, domain.Hidden, items[6].State)
	assert.Empty(t, h.page.notifications())
}

func TestApply_SameSnapshotIsNoop(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, map[string]any{domain.KeyDarkMode: true})
	items := twentyPosts()
	h.page.add(domain.SurfaceFeed, items...)
	snap := domain.MergeDefaults(map[string]any{domain.KeyDarkMode: true})

	require.NoError(t, h.ctrl.Apply(context.Background(), snap))
	h.tick(t, domain.SurfaceFeed)
	runs := h.ctrl.Loop(domain.SurfaceFeed).Runs()
	calls := h.page.setCalls

	require.NoError(t, h.ctrl.Apply(context.Background(), snap))

	assert.Equal(t, []bool{true}, h.page.dark)
	assert.Equal(t, runs, h.ctrl.Loop(domain.SurfaceFeed).Runs())
	assert.Equal(t, calls, h.page.setCalls)
}

const profileURL = "https://www.linkedin.com/in/someone/"

func TestApply_FeedLoopRunsOffTheHomeFeed(t *testing.T) {
	h := newHarness(t, profileURL, map[string]any{
		domain.KeyFeedKeywords: "ads-container",
		domain.KeyGentleMode:   true,
	})
	post := feedPost("urn:li:activity:9", `<div class="ads-container">sponsored</div>`, "post")
	h.page.add(domain.SurfaceFeed, post)

	require.NoError(t, h.ctrl.Refresh(context.Background()))
	require.True(t, h.ctrl.Loop(domain.SurfaceFeed).Active())
	h.tick(t, domain.SurfaceFeed)

	assert.Equal(t, domain.Hidden, post.State)
}

func TestApply_LatestSnapshotWinsWhenPassesOverlap(t *testing.T) {
	exec := newHeldExecutor()
	h := newHarness(t, profileURL, nil, WithExecutor(exec))
	ctx := context.Background()
	light := domain.MergeDefaults(map[string]any{domain.KeyDarkMode: false})
	dark := domain.MergeDefaults(map[string]any{domain.KeyDarkMode: true})

	require.NoError(t, h.ctrl.Apply(ctx, light))

	exec.hold()
	errs := make(chan error, 2)
	go func() { errs <- h.ctrl.Apply(ctx, dark) }()
	exec.waitQueued(t)
	go func() { errs <- h.ctrl.Apply(ctx, light) }()
	exec.waitQueued(t)

	exec.releaseNewestFirst()
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	snap, ok := h.ctrl.Snapshot()
	require.True(t, ok)
	assert.False(t, snap.Bool(domain.KeyDarkMode))
	assert.Equal(t, []bool{false}, h.page.darkCalls())
}

func TestRefresh_ReadsStoreWhenPassRuns(t *testing.T) {
	exec := newHeldExecutor()
	h := newHarness(t, profileURL, nil, WithExecutor(exec))
	ctx := context.Background()

	exec.hold()
	errs := make(chan error, 1)
	go func() { errs <- h.ctrl.Refresh(ctx) }()
	exec.waitQueued(t)

	require.NoError(t, h.store.Set(ctx, map[string]any{domain.KeyDarkMode: true}))
	exec.releaseNewestFirst()
	require.NoError(t, <-errs)

	snap, _ := h.ctrl.Snapshot()
	assert.True(t, snap.Bool(domain.KeyDarkMode))
	assert.Equal(t, []bool{true}, h.page.darkCalls())
}

func TestReload_RerunsEveryHandler(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, map[string]any{domain.KeyDarkMode: true})
	ctx := context.Background()

	require.NoError(t, h.ctrl.Refresh(ctx))
	require.NoError(t, h.ctrl.Refresh(ctx))
	assert.Equal(t, []bool{true}, h.page.darkCalls())

	require.NoError(t, h.ctrl.Reload(ctx))
	assert.Equal(t, []bool{true, true}, h.page.darkCalls())
}

func TestApply_MainToggleOffRestoresEverything(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, map[string]any{domain.KeyFeedKeywords: "ads-container"})
	items := twentyPosts()
	h.page.add(domain.SurfaceFeed, items...)
	require.NoError(t, h.ctrl.Refresh(context.Background()))
	h.tick(t, domain.SurfaceFeed)
	require.True(t, h.page.isClassHidden("ads-container"))

	off := domain.MergeDefaults(map[string]any{
		domain.KeyFeedKeywords: "ads-container",
		domain.KeyMainToggle:   false,
	})
	require.NoError(t, h.ctrl.Apply(context.Background(), off))

	assert.False(t, h.ctrl.Loop(domain.SurfaceFeed).Active())
	for _, item := range items {
		assert.Equal(t, domain.Pristine, item.State)
		assert.Equal(t, domain.Pristine, h.page.presented[item.ID])
	}
	assert.False(t, h.page.isClassHidden("ads-container"))
	assert.False(t, h.page.isClassHidden("community-panel"))
}

func TestApply_HideWholeFeedSurvivesOtherChanges(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, map[string]any{domain.KeyHideWholeFeed: true})
	h.page.add(domain.SurfaceFeed, twentyPosts()...)

	require.NoError(t, h.ctrl.Refresh(context.Background()))
	assert.False(t, h.ctrl.Loop(domain.SurfaceFeed).Active())

	require.Eventually(t, func() bool {
		h.clock.Advance(100 * time.Millisecond)
		return h.page.isContainerHidden()
	}, time.Second, 5*time.Millisecond)

	next := domain.MergeDefaults(map[string]any{
		domain.KeyHideWholeFeed: true,
		domain.KeyHideVideos:    true,
	})
	require.NoError(t, h.ctrl.Apply(context.Background(), next))
	h.clock.Advance(time.Second)

	assert.True(t, h.page.isContainerHidden())
	assert.False(t, h.ctrl.Loop(domain.SurfaceFeed).Active())
}

func TestApply_WholeFeedOnlyOnHomeFeed(t *testing.T) {
	h := newHarness(t, "https://www.linkedin.com/notifications/", map[string]any{domain.KeyHideWholeFeed: true})

	require.NoError(t, h.ctrl.Refresh(context.Background()))
	h.clock.Advance(time.Second)

	assert.False(t, h.page.isContainerHidden())
}

func TestApply_RelaxationClearsOverride(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, map[string]any{
		domain.KeyFeedKeywords: "iframe,poll",
		domain.KeyGentleMode:   true,
	})
	item := feedPost("urn:li:activity:1", "<div>poll iframe</div>", "post")
	h.page.add(domain.SurfaceFeed, item)
	require.NoError(t, h.ctrl.Refresh(context.Background()))
	h.tick(t, domain.SurfaceFeed)
	require.Equal(t, "iframe", item.MatchedBy)

	revealed, err := h.ctrl.Reveal(context.Background(), item.ID)
	require.NoError(t, err)
	require.True(t, revealed)
	h.tick(t, domain.SurfaceFeed)
	assert.Equal(t, domain.Shown, item.State)

	require.NoError(t, h.store.Set(context.Background(), map[string]any{domain.KeyFeedKeywords: "poll"}))
	require.NoError(t, h.ctrl.Refresh(context.Background()))
	assert.False(t, item.Override)

	h.tick(t, domain.SurfaceFeed)
	assert.Equal(t, domain.Hidden, item.State)
	assert.Equal(t, "poll", item.MatchedBy)
}

func TestApply_EmptyRulesShowEverything(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, map[string]any{
		domain.KeyFeedKeywords: "ads-container",
		domain.KeyGentleMode:   true,
	})
	items := twentyPosts()
	h.page.add(domain.SurfaceFeed, items...)
	require.NoError(t, h.ctrl.Refresh(context.Background()))
	h.tick(t, domain.SurfaceFeed)

	none := map[string]any{
		domain.KeyHideByAge:       "disabled",
		domain.KeyHideLiked:       false,
		domain.KeyHideSuggested:   false,
		domain.KeySortByRecent:    false,
		domain.KeyHideByCompanies: false,
		domain.KeyHideFollowed:    false,
		domain.KeyHidePolls:       false,
		domain.KeyHidePromoted:    false,
		domain.KeyGentleMode:      true,
	}
	require.NoError(t, h.ctrl.Apply(context.Background(), domain.MergeDefaults(none)))

	assert.False(t, h.ctrl.Loop(domain.SurfaceFeed).Active())
	assert.Equal(t, domain.Pristine, h.page.presented[items[6].ID])
}

func TestApply_JobsOnlyOnJobsPages(t *testing.T) {
	stored := map[string]any{domain.KeyJobKeywords: "senior", domain.KeyHidePromotedJobs: true}
	h := newHarness(t, domain.HomeFeedURL, stored)
	job := &domain.Item{ID: "4001", Markup: "<li>Senior Go Engineer</li>"}
	promoted := &domain.Item{ID: "4002", Markup: "<li>Junior Engineer <span>PROMOTED</span></li>"}
	other := &domain.Item{ID: "4003", Markup: "<li>Staff Engineer</li>"}
	h.page.add(domain.SurfaceJobs, job, promoted, other)

	require.NoError(t, h.ctrl.Refresh(context.Background()))
	assert.False(t, h.ctrl.Loop(domain.SurfaceJobs).Active())

	h.page.setURL("https://www.linkedin.com/jobs/collections/recommended/")
	h.ctrl.Forget()
	require.NoError(t, h.ctrl.Refresh(context.Background()))
	require.True(t, h.ctrl.Loop(domain.SurfaceJobs).Active())
	h.tick(t, domain.SurfaceJobs)

	assert.Equal(t, domain.Hidden, job.State)
	assert.Equal(t, domain.Hidden, promoted.State)
	assert.Equal(t, domain.Shown, other.State)
}

func TestApply_JobToggles(t *testing.T) {
	h := newHarness(t, "https://www.linkedin.com/jobs/", map[string]any{domain.KeyHideJobGuidance: true})

	require.NoError(t, h.ctrl.Refresh(context.Background()))
	assert.True(t, h.page.isClassHidden(JobGuidanceClass))

	require.NoError(t, h.store.Set(context.Background(), map[string]any{domain.KeyHideJobGuidance: false}))
	require.NoError(t, h.ctrl.Refresh(context.Background()))
	assert.False(t, h.page.isClassHidden(JobGuidanceClass))
}

func TestApply_MiscGroups(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, map[string]any{
		domain.KeyHideNews:              true,
		domain.KeyHideNotificationCount: true,
		domain.KeyHideProfileCounters:   true,
		domain.KeyGentleMode:            true,
	})

	require.NoError(t, h.ctrl.Refresh(context.Background()))

	assert.True(t, h.page.isClassHidden("news-module"))
	assert.True(t, h.page.isClassHidden("news-module--with-game"))
	assert.True(t, h.page.isClassHidden("pvs-premium-upsell__container"))
	assert.True(t, h.page.indexHidden["artdeco-tab ember-view"])
	assert.True(t, h.page.ancestorHidden["entity-list-wrapper"])
	assert.Equal(t, domain.ModeHide, h.page.classMode["notification-badge__count"])
	assert.Equal(t, domain.ModeDim, h.page.classMode["news-module"])

	require.NoError(t, h.store.Set(context.Background(), map[string]any{domain.KeyHideNews: false}))
	require.NoError(t, h.ctrl.Refresh(context.Background()))

	assert.False(t, h.page.isClassHidden("news-module"))
	assert.True(t, h.page.isClassHidden("pvs-premium-upsell__container"))
}

func TestApply_Generals(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, nil)

	require.NoError(t, h.ctrl.Refresh(context.Background()))
	require.NoError(t, h.store.Set(context.Background(), map[string]any{domain.KeyWideMode: true}))
	require.NoError(t, h.ctrl.Refresh(context.Background()))

	assert.Equal(t, []bool{false}, h.page.dark)
	assert.Equal(t, []bool{false, true}, h.page.wide)
}

func TestRefresh_PropagatesStoreError(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, nil)
	h.store.getFunc = func(context.Context, []string) (map[string]any, error) {
		return nil, &coreerrors.StoreError{Backend: "fake", Op: "get", Err: errors.New("offline")}
	}

	err := h.ctrl.Refresh(context.Background())

	assert.True(t, coreerrors.IsStore(err))
	_, applied := h.ctrl.Snapshot()
	assert.False(t, applied)
}

func TestUpdateSettings(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, nil)

	snap, err := h.ctrl.UpdateSettings(context.Background(), map[string]any{domain.KeyHideVideos: true})
	require.NoError(t, err)
	assert.True(t, snap.Bool(domain.KeyHideVideos))

	last, ok := h.ctrl.Snapshot()
	require.True(t, ok)
	assert.True(t, last.Equal(snap))

	_, err = h.ctrl.UpdateSettings(context.Background(), map[string]any{"bogus": 1})
	assert.True(t, coreerrors.IsValidation(err))
}

func TestReveal_UnknownItem(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, nil)

	_, err := h.ctrl.Reveal(context.Background(), "missing")

	assert.True(t, coreerrors.IsNotFound(err))
}

func TestItems_ReturnsCopies(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, nil)
	item := feedPost("1", "<p/>", "p")
	h.page.add(domain.SurfaceFeed, item)

	items, err := h.ctrl.Items(context.Background(), domain.SurfaceFeed)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items[0].State = domain.Hidden
	assert.Equal(t, domain.Pristine, item.State)
}

func TestRun_ReappliesOnNavigation(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, map[string]any{domain.KeyJobKeywords: "senior"})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- h.ctrl.Run(ctx) }()
	require.Eventually(t, func() bool {
		_, ok := h.ctrl.Snapshot()
		return ok
	}, time.Second, 5*time.Millisecond)
	assert.False(t, h.ctrl.Loop(domain.SurfaceJobs).Active())

	h.page.setURL("https://www.linkedin.com/jobs/search/")
	require.Eventually(t, func() bool {
		h.clock.Advance(500 * time.Millisecond)
		return h.ctrl.Loop(domain.SurfaceJobs).Active()
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRun_FollowsStoreNotifications(t *testing.T) {
	h := newHarness(t, domain.HomeFeedURL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- h.ctrl.Run(ctx) }()
	require.Eventually(t, func() bool {
		_, ok := h.ctrl.Snapshot()
		return ok
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return h.store.listenerCount() > 0 }, time.Second, 5*time.Millisecond)

	require.NoError(t, h.store.Set(context.Background(), map[string]any{domain.KeyDarkMode: true}))

	require.Eventually(t, func() bool {
		last, _ := h.ctrl.Snapshot()
		return last.Bool(domain.KeyDarkMode)
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
