// ABOUTME: Page address predicates deciding which handlers apply to a URL
// ABOUTME: Mirrors the LinkedIn routes the filter cares about

package domain

import "strings"

const (
	SiteRootURL   = "https://www.linkedin.com/"
	HomeFeedURL   = "https://www.linkedin.com/feed/"
	JobsURLPrefix = "https://www.linkedin.com/jobs/"
	PeopleFollow  = "/mynetwork/network-manager/people-follow"
)

// IsHomeFeed reports whether url is exactly the home feed.
func IsHomeFeed(url string) bool {
	return url == HomeFeedURL
}

// IsFeedLanding reports whether url is the home feed or the site root.
func IsFeedLanding(url string) bool {
	return url == HomeFeedURL || url == SiteRootURL
}

// IsJobsPage reports whether url is under the jobs section.
func IsJobsPage(url string) bool {
	return strings.HasPrefix(url, JobsURLPrefix)
}

// IsPeopleFollowPage reports whether url is the followed-people manager.
func IsPeopleFollowPage(url string) bool {
	return strings.Contains(url, PeopleFollow)
}
