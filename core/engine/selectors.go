// ABOUTME: Class names and selectors for the page chrome the engine toggles
// ABOUTME: Groups misc elements under the setting that hides them

package engine

import "linkoff-engine/core/domain"

const (
	FeedContainerClass = "scaffold-finite-scroll__content"

	SortTriggerSelector = "button.full-width.artdeco-dropdown__trigger.artdeco-dropdown__trigger--placement-bottom"
	SortRecentSelector  = "ul > li:nth-child(2) > div.artdeco-dropdown__item.artdeco-dropdown__item--is-dropdown"

	UnfollowButtonSelector = `button[aria-label^="Click to stop"]`

	JobGuidanceClass = "artdeco-card mb2 pt5"
	JobAIButtonClass = "ember-view link-without-hover-state artdeco-button"
)

// indexed addresses the n-th element carrying a class.
type indexed struct {
	class string
	index int
}

// ancestor addresses the closest ancestor matching selector of every
// element carrying child.
type ancestor struct {
	child    string
	selector string
}

// miscGroup is the page chrome controlled by one setting.
type miscGroup struct {
	key       string
	classes   []string
	indexed   []indexed
	ancestors []ancestor

	// alwaysHide ignores gentle mode.
	alwaysHide bool
}

// miscGroups is applied in order on every misc pass.
var miscGroups = []miscGroup{
	{
		key:     domain.KeyHideLearning,
		classes: []string{"learning-top-courses", "pv-course-recommendations"},
	},
	{
		key:     domain.KeyHideCommunityPanel,
		classes: []string{"community-panel"},
	},
	{
		key:     domain.KeyHideFollowRecommendations,
		classes: []string{"feed-follows-module"},
	},
	{
		key:     domain.KeyHideAccountBuilding,
		classes: []string{"artdeco-card ember-view mt2", "artdeco-card mb4 overflow-hidden ember-view"},
	},
	{
		key:     domain.KeyHideNetworkBuilding,
		classes: []string{"mn-abi-form", "pv-profile-pymk__container artdeco-card"},
	},
	{
		key: domain.KeyHidePremium,
		classes: []string{
			"premium-upsell-link",
			"gp-promo-embedded-card-three__card",
			"artdeco-card overflow-hidden ph1 mb2",
			"pvs-premium-upsell__container",
			"pvs-entity--blurred",
			"artdeco-card premium-accent-bar",
		},
		indexed: []indexed{{class: "artdeco-tab ember-view", index: 1}},
	},
	{
		key:     domain.KeyHideNews,
		classes: []string{"news-module", "news-module--with-game"},
	},
	{
		key: domain.KeyHideAdvertisements,
		classes: []string{
			"ad-banner-container",
			"ads-container",
			"ad-banner",
			"pv-right-rail__sticky-ad-banner",
		},
	},
	{
		key:        domain.KeyHideNotificationCount,
		classes:    []string{"notification-badge__count"},
		alwaysHide: true,
	},
	{
		key:       domain.KeyHideProfileCounters,
		ancestors: []ancestor{{child: "entity-list-wrapper", selector: ".artdeco-card"}},
	},
}

// MiscKeys returns the settings handled by the misc pass, in order.
func MiscKeys() []string {
	keys := make([]string, len(miscGroups))
	for i, g := range miscGroups {
		keys[i] = g.key
	}
	return keys
}
