// ABOUTME: Settings snapshot domain model holding one coherent configuration
// ABOUTME: Defines every setting key, its default value and its display label

package domain

import (
	"sort"
)

// Setting keys. The names are the persisted layout shared with the
// settings store, so they must never be renamed.
const (
	KeyGentleMode = "gentle-mode"
	KeyDarkMode   = "dark-mode"
	KeyMainToggle = "main-toggle"
	KeyWideMode   = "wide-mode"

	KeyHideWholeFeed      = "hide-whole-feed"
	KeyHideByAge          = "hide-by-age"
	KeyFeedKeywords       = "feed-keywords"
	KeyHideShared         = "hide-shared"
	KeyHideVideos         = "hide-videos"
	KeyHideLiked          = "hide-liked"
	KeyHideSuggested      = "hide-suggested"
	KeyHideOtherReactions = "hide-other-reactions"
	KeySortByRecent       = "sort-by-recent"
	KeyHideCarousels      = "hide-carousels"
	KeyHideByCompanies    = "hide-by-companies"
	KeyHideByPeople       = "hide-by-people"
	KeyHideCommentedOn    = "hide-commented-on"
	KeyHideFollowed       = "hide-followed"
	KeyHideImages         = "hide-images"
	KeyHideLinks          = "hide-links"
	KeyHidePolls          = "hide-polls"
	KeyHidePromoted       = "hide-promoted"

	KeyHideLearning              = "hide-linkedin-learning"
	KeyHidePremium               = "hide-premium"
	KeyHideAccountBuilding       = "hide-account-building"
	KeyHideNetworkBuilding       = "hide-network-building"
	KeyHideAdvertisements        = "hide-advertisements"
	KeyHideFollowRecommendations = "hide-follow-recommendations"
	KeyHideNews                  = "hide-news"
	KeyHideNotificationCount     = "hide-notification-count"
	KeyHideProfileCounters       = "hide-profile-counters"
	KeyHideCommunityPanel        = "hide-community-panel"
	KeyDisablePostCountPrompt    = "disable-postcount-prompt"

	KeyJobKeywords      = "job-keywords"
	KeyHideJobGuidance  = "hide-job-guidance"
	KeyHideAIButton     = "hide-ai-button"
	KeyHidePromotedJobs = "hide-promoted-jobs"
)

var defaultSettings = map[string]any{
	KeyGentleMode: true,
	KeyDarkMode:   false,
	KeyMainToggle: true,
	KeyWideMode:   false,

	KeyHideWholeFeed:      false,
	KeyHideByAge:          string(AgeWeek),
	KeyFeedKeywords:       "",
	KeyHideShared:         false,
	KeyHideVideos:         false,
	KeyHideLiked:          true,
	KeyHideSuggested:      true,
	KeyHideOtherReactions: false,
	KeySortByRecent:       true,
	KeyHideCarousels:      false,
	KeyHideByCompanies:    true,
	KeyHideByPeople:       false,
	KeyHideCommentedOn:    false,
	KeyHideFollowed:       true,
	KeyHideImages:         false,
	KeyHideLinks:          false,
	KeyHidePolls:          true,
	KeyHidePromoted:       true,

	KeyHideLearning:              true,
	KeyHidePremium:               true,
	KeyHideAccountBuilding:       true,
	KeyHideNetworkBuilding:       true,
	KeyHideAdvertisements:        true,
	KeyHideFollowRecommendations: true,
	KeyHideNews:                  false,
	KeyHideNotificationCount:     false,
	KeyHideProfileCounters:       false,
	KeyHideCommunityPanel:        true,
	KeyDisablePostCountPrompt:    false,

	KeyJobKeywords:      "",
	KeyHideJobGuidance:  false,
	KeyHideAIButton:     false,
	KeyHidePromotedJobs: false,
}

var settingLabels = map[string]string{
	KeyGentleMode:                "Gentle Mode (Dim Instead of Hide)",
	KeyDarkMode:                  "Dark Mode",
	KeyMainToggle:                "Enable LinkOff",
	KeyWideMode:                  "Wide Mode",
	KeyHideWholeFeed:             "Hide Entire Feed",
	KeyHideByAge:                 "Hide Posts by Age",
	KeyFeedKeywords:              "Feed Keywords",
	KeyHideShared:                "Hide Shared Posts",
	KeyHideVideos:                "Hide Videos",
	KeyHideLiked:                 `Hide "Liked by" Posts`,
	KeyHideSuggested:             "Hide Suggested Posts",
	KeyHideOtherReactions:        "Hide Other Reactions",
	KeySortByRecent:              "Sort by Recent",
	KeyHideCarousels:             "Hide Carousels",
	KeyHideByCompanies:           "Hide Company Posts",
	KeyHideByPeople:              "Hide People Posts",
	KeyHideCommentedOn:           `Hide "Commented on" Posts`,
	KeyHideFollowed:              "Hide Following Posts",
	KeyHideImages:                "Hide Images",
	KeyHideLinks:                 "Hide Links",
	KeyHidePolls:                 "Hide Polls",
	KeyHidePromoted:              "Hide Promoted Posts",
	KeyHideLearning:              "Hide LinkedIn Learning",
	KeyHidePremium:               "Hide Premium Upsells",
	KeyHideAccountBuilding:       "Hide Account Building",
	KeyHideNetworkBuilding:       "Hide Network Building",
	KeyHideAdvertisements:        "Hide Advertisements",
	KeyHideFollowRecommendations: "Hide Follow Recommendations",
	KeyHideNews:                  "Hide News",
	KeyHideNotificationCount:     "Hide Notification Count",
	KeyHideProfileCounters:       "Hide Profile Counters",
	KeyHideCommunityPanel:        "Hide Community Panel",
	KeyDisablePostCountPrompt:    "Disable Post Count Prompt",
	KeyJobKeywords:               "Job Keywords",
	KeyHideJobGuidance:           "Hide Job Guidance",
	KeyHideAIButton:              "Hide AI Button",
	KeyHidePromotedJobs:          "Hide Promoted Jobs",
}

// Snapshot is an immutable view of one coherent configuration.
// The zero value is an empty snapshot in which every key is absent.
type Snapshot struct {
	values map[string]any
}

// NewSnapshot copies values into a new Snapshot. Only bool and string
// values are kept; anything else is dropped.
func NewSnapshot(values map[string]any) Snapshot {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		switch v.(type) {
		case bool, string:
			copied[k] = v
		}
	}
	return Snapshot{values: copied}
}

// DefaultSnapshot returns a snapshot holding every default value.
func DefaultSnapshot() Snapshot {
	return NewSnapshot(defaultSettings)
}

// MergeDefaults overlays stored values on the defaults. Unknown keys and
// stored values whose type disagrees with the default are ignored.
func MergeDefaults(stored map[string]any) Snapshot {
	merged := make(map[string]any, len(defaultSettings))
	for k, def := range defaultSettings {
		merged[k] = def
		v, ok := stored[k]
		if !ok {
			continue
		}
		switch def.(type) {
		case bool:
			if b, ok := v.(bool); ok {
				merged[k] = b
			}
		case string:
			if s, ok := v.(string); ok {
				merged[k] = s
			}
		}
	}
	return Snapshot{values: merged}
}

// Defaults returns a copy of the default settings table.
func Defaults() map[string]any {
	out := make(map[string]any, len(defaultSettings))
	for k, v := range defaultSettings {
		out[k] = v
	}
	return out
}

// DefaultKeys returns every known setting key in sorted order.
func DefaultKeys() []string {
	keys := make([]string, 0, len(defaultSettings))
	for k := range defaultSettings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Label returns the human-readable label for a key, or the key itself.
func Label(key string) string {
	if label, ok := settingLabels[key]; ok {
		return label
	}
	return key
}

// Value returns the raw value for key and whether it is present.
func (s Snapshot) Value(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Bool returns the boolean value of key, false when absent or not a bool.
func (s Snapshot) Bool(key string) bool {
	b, _ := s.values[key].(bool)
	return b
}

// String returns the string value of key, "" when absent or not a string.
func (s Snapshot) String(key string) string {
	str, _ := s.values[key].(string)
	return str
}

// Mode returns the visual mode selected by the gentle-mode setting.
func (s Snapshot) Mode() VisualMode {
	if s.Bool(KeyGentleMode) {
		return ModeDim
	}
	return ModeHide
}

// AgeBucket returns the parsed hide-by-age setting.
func (s Snapshot) AgeBucket() AgeBucket {
	return ParseAgeBucket(s.String(KeyHideByAge))
}

// Len returns the number of keys present.
func (s Snapshot) Len() int {
	return len(s.values)
}

// Keys returns the present keys in sorted order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Raw returns a copy of the underlying mapping.
func (s Snapshot) Raw() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Equal reports whether both snapshots hold exactly the same keys and values.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	for k, v := range s.values {
		ov, ok := other.values[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// With returns a new snapshot with key set to value.
func (s Snapshot) With(key string, value any) Snapshot {
	raw := s.Raw()
	raw[key] = value
	return NewSnapshot(raw)
}
