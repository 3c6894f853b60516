// ABOUTME: Markup and text markers identifying LinkedIn post features
// ABOUTME: Each feed toggle maps to the markers it hides, in compile order

package rules

import "linkoff-engine/core/domain"

// Content markers searched in item markup.
const (
	MarkerPoll          = "poll"
	MarkerVideoVJS      = `id="vjs_video_`
	MarkerVideoUpdate   = "update-components-linkedin-video"
	MarkerVideoShared   = "feed-shared-linkedin-video"
	MarkerLink          = "https://lnkd.in/"
	MarkerImage         = `class="update-components-image__image-link`
	MarkerSharedPost    = "feed-shared-mini-update-v2"
	MarkerCarousel      = "iframe"
	MarkerCompanyLink   = `href="https://www.linkedin.com/company/`
	MarkerPersonLink    = `href="https://www.linkedin.com/in/`
	MarkerPromotedJob   = "Promoted"
	textPromoted        = "Promoted"
	textSuggested       = "Suggested"
	textFollowing       = "following"
	textLikesThis       = "likes this"
	textLikeThis        = "like this"
	textLovesThis       = "loves this"
	textInsightful      = "finds this insightful"
	textCelebrates      = "celebrates this"
	textCurious         = "is curious about this"
	textSupports        = "supports this"
	textFunny           = "finds this funny"
	textCommentedOnThis = "commented on this"
)

// toggle binds a boolean setting to the rules it contributes.
type toggle struct {
	key   string
	rules domain.RuleList
}

// feedToggles is ordered; compiled lists follow this order.
var feedToggles = []toggle{
	{domain.KeyHidePolls, domain.RuleList{domain.Content(MarkerPoll)}},
	{domain.KeyHideVideos, domain.RuleList{
		domain.Content(MarkerVideoVJS),
		domain.Content(MarkerVideoUpdate),
		domain.Content(MarkerVideoShared),
	}},
	{domain.KeyHideLinks, domain.RuleList{domain.Content(MarkerLink)}},
	{domain.KeyHideImages, domain.RuleList{domain.Content(MarkerImage)}},
	{domain.KeyHidePromoted, domain.RuleList{domain.Text(textPromoted)}},
	{domain.KeyHideShared, domain.RuleList{domain.Content(MarkerSharedPost)}},
	{domain.KeyHideFollowed, domain.RuleList{domain.Text(textFollowing)}},
	{domain.KeyHideLiked, domain.RuleList{
		domain.Text(textLikesThis),
		domain.Text(textLikeThis),
	}},
	{domain.KeyHideOtherReactions, domain.RuleList{
		domain.Text(textLovesThis),
		domain.Text(textInsightful),
		domain.Text(textCelebrates),
		domain.Text(textCurious),
		domain.Text(textSupports),
		domain.Text(textFunny),
	}},
	{domain.KeyHideCommentedOn, domain.RuleList{domain.Text(textCommentedOnThis)}},
	{domain.KeyHideByCompanies, domain.RuleList{domain.Content(MarkerCompanyLink)}},
	{domain.KeyHideByPeople, domain.RuleList{domain.Content(MarkerPersonLink)}},
	{domain.KeyHideSuggested, domain.RuleList{domain.Text(textSuggested)}},
	{domain.KeyHideCarousels, domain.RuleList{domain.Content(MarkerCarousel)}},
}

// FeedToggleKeys returns the settings that contribute feed rules, in order.
func FeedToggleKeys() []string {
	keys := make([]string, len(feedToggles))
	for i, t := range feedToggles {
		keys[i] = t.key
	}
	return keys
}
