package handlers

import (
	"context"
	"io"

	"linkoff-engine/core/domain"
	"linkoff-engine/linkoff"
)

// mockEngine implements every service interface the handlers need
type mockEngine struct {
	settingsFunc       func(ctx context.Context) (domain.Snapshot, error)
	updateSettingsFunc func(ctx context.Context, values map[string]any) (domain.Snapshot, error)
	itemsFunc          func(ctx context.Context, surface domain.Surface) ([]linkoff.Item, error)
	revealFunc         func(ctx context.Context, id string) (bool, error)
	navigateFunc       func(ctx context.Context, url string) error
	loadDocumentFunc   func(ctx context.Context, url string, markup io.Reader) error
	loadFeedFunc       func(ctx context.Context, url string) error
	unfollowAllFunc    func(ctx context.Context) (int, error)
	reportFunc         func(ctx context.Context) (*linkoff.Report, error)
}

func (m *mockEngine) Settings(ctx context.Context) (domain.Snapshot, error) {
	if m.settingsFunc != nil {
		return m.settingsFunc(ctx)
	}
	return domain.DefaultSnapshot(), nil
}

func (m *mockEngine) UpdateSettings(ctx context.Context, values map[string]any) (domain.Snapshot, error) {
	if m.updateSettingsFunc != nil {
		return m.updateSettingsFunc(ctx, values)
	}
	return domain.MergeDefaults(values), nil
}

func (m *mockEngine) Items(ctx context.Context, surface domain.Surface) ([]linkoff.Item, error) {
	if m.itemsFunc != nil {
		return m.itemsFunc(ctx, surface)
	}
	return nil, nil
}

func (m *mockEngine) Reveal(ctx context.Context, id string) (bool, error) {
	if m.revealFunc != nil {
		return m.revealFunc(ctx, id)
	}
	return false, nil
}

func (m *mockEngine) Navigate(ctx context.Context, url string) error {
	if m.navigateFunc != nil {
		return m.navigateFunc(ctx, url)
	}
	return nil
}

func (m *mockEngine) LoadDocument(ctx context.Context, url string, markup io.Reader) error {
	if m.loadDocumentFunc != nil {
		return m.loadDocumentFunc(ctx, url, markup)
	}
	return nil
}

func (m *mockEngine) LoadFeed(ctx context.Context, url string) error {
	if m.loadFeedFunc != nil {
		return m.loadFeedFunc(ctx, url)
	}
	return nil
}

func (m *mockEngine) UnfollowAll(ctx context.Context) (int, error) {
	if m.unfollowAllFunc != nil {
		return m.unfollowAllFunc(ctx)
	}
	return 0, nil
}

func (m *mockEngine) Report(ctx context.Context) (*linkoff.Report, error) {
	if m.reportFunc != nil {
		return m.reportFunc(ctx)
	}
	return &linkoff.Report{URL: domain.HomeFeedURL, Mode: "dim"}, nil
}
