// Package blogger provides the core business logic for the creator
// directory: CSV row mapping, bulk import, and the directory filter.
// This package has no HTTP or database dependencies; persistence and
// credential checking are injected through interfaces.
package blogger

import "strings"

// Platform identifies a social network a creator publishes on.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformTelegram  Platform = "telegram"
	PlatformTikTok    Platform = "tiktok"
)

// AllPlatforms lists the supported platforms in persistence order.
var AllPlatforms = []Platform{
	PlatformInstagram,
	PlatformYouTube,
	PlatformTelegram,
	PlatformTikTok,
}

// PlatformMetric is a per-network follower/engagement/reach snapshot.
// A metric is only persisted when Followers > 0.
type PlatformMetric struct {
	Followers      int     `json:"followers"`
	EngagementRate float64 `json:"engagement_rate"`
	PostReach      int     `json:"post_reach"`
	StoryReach     int     `json:"story_reach"`
}

// Record is a normalized creator record produced by the row mapper.
// It is transient: built fresh per CSV row, validated, and either
// persisted or discarded.
type Record struct {
	Name             string
	Handle           string
	Bio              string
	Gender           string
	Topics           []string
	RestrictedTopics []string
	PostPrice        *float64
	StoryPrice       *float64
	BarterAvailable  bool
	MartAvailable    bool
	WorkConditions   string

	// Metrics holds at most one entry per platform. Iterate via
	// AllPlatforms for a stable order.
	Metrics map[Platform]*PlatformMetric
}

// metric returns the metric for p, creating it on first use.
func (r *Record) metric(p Platform) *PlatformMetric {
	if r.Metrics == nil {
		r.Metrics = make(map[Platform]*PlatformMetric, len(AllPlatforms))
	}
	m, ok := r.Metrics[p]
	if !ok {
		m = &PlatformMetric{}
		r.Metrics[p] = m
	}
	return m
}

// NormalizeHandle ensures the handle carries a leading @ sigil.
// Handles that already start with @ are returned unchanged; uniqueness
// checks always compare the normalized form.
func NormalizeHandle(handle string) string {
	if strings.HasPrefix(handle, "@") {
		return handle
	}
	return "@" + handle
}

// Roles stored on profile records.
const (
	RoleAdmin   = "admin"
	RoleBlogger = "blogger"
)

// NewProfile holds the attributes for creating a profile row.
type NewProfile struct {
	UserID   string
	Email    string
	FullName string
	Role     string
}

// NewBlogger holds the attributes for creating a blogger row.
type NewBlogger struct {
	ProfileID        string
	Handle           string
	Bio              string
	Gender           string
	Topics           []string
	RestrictedTopics []string
	PostPrice        *float64
	StoryPrice       *float64
	BarterAvailable  bool
	MartAvailable    bool
	WorkConditions   string
}

// NewPlatform holds the attributes for creating a platform metric row.
type NewPlatform struct {
	BloggerID      string
	Platform       Platform
	Followers      int
	EngagementRate float64
	PostReach      int
	StoryReach     int
	IsActive       bool
}
