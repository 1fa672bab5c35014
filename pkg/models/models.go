// Package models defines the data types that make up a scan result.
package models

import "time"

// TimeFormat is the timestamp layout used in exported artifacts.
const TimeFormat = "2006-01-02 15:04:05"

// Profile holds the identity attributes captured once per scan.
type Profile struct {
	Username       string `json:"username"`
	UserID         string `json:"user_id"`
	FullName       string `json:"full_name"`
	Biography      string `json:"biography"`
	ExternalURL    string `json:"external_url"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	IsPrivate      bool   `json:"is_private"`
	IsVerified     bool   `json:"is_verified"`
	PostsCount     int    `json:"posts_count"`
	ProfilePicURL  string `json:"profile_pic_url"`
	ScrapeTime     string `json:"scrape_time"`
}

// RawLocation is the location payload attached to a raw post record.
type RawLocation struct {
	ID   string
	Name string
	Lat  float64
	Lng  float64
}

// RawPost is a single post record as delivered by the data provider.
// Hashtags and mentions are already extracted from the caption.
type RawPost struct {
	Shortcode string
	TakenAt   time.Time
	Likes     int
	Comments  int
	Caption   string
	Location  *RawLocation
	Hashtags  []string
	Mentions  []string
	IsVideo   bool
}

// URL returns the canonical post URL for the record.
func (p *RawPost) URL() string {
	return "https://www.instagram.com/p/" + p.Shortcode + "/"
}

// PostSummary is the per-post record kept in the aggregation result.
// It is never mutated after creation.
type PostSummary struct {
	Shortcode      string   `json:"shortcode"`
	URL            string   `json:"url"`
	Timestamp      string   `json:"timestamp"`
	Likes          int      `json:"likes"`
	Comments       int      `json:"comments"`
	Caption        string   `json:"caption"`
	Location       string   `json:"location,omitempty"`
	Hashtags       []string `json:"hashtags"`
	MentionedUsers []string `json:"mentioned_users"`
	IsVideo        bool     `json:"is_video"`
}

// LocationEntry records the location data of one post. Entries are not
// deduplicated across posts.
type LocationEntry struct {
	Name    string  `json:"name"`
	ID      string  `json:"id"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	PostURL string  `json:"post_url"`
}

// TokenCount is one entry of an exported frequency table.
type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// TimePattern summarizes posting activity by day of week and hour of day.
// Both histograms always contain all of their buckets, even when zero.
type TimePattern struct {
	MostActiveDay     string         `json:"most_active_day,omitempty"`
	DayActivity       map[string]int `json:"day_activity"`
	MostActiveHour    *int           `json:"most_active_hour,omitempty"`
	HourActivity      map[string]int `json:"hour_activity"`
	PostFrequencyDays float64        `json:"post_frequency_days"`
}

// PostAnalysis bundles everything derived from the consumed post window.
type PostAnalysis struct {
	PostsAnalyzed int             `json:"posts_analyzed"`
	Posts         []PostSummary   `json:"posts_data"`
	Locations     []LocationEntry `json:"locations"`
	TopHashtags   []TokenCount    `json:"top_hashtags"`
	TopMentions   []TokenCount    `json:"top_mentions"`
	TimePatterns  TimePattern     `json:"time_patterns"`
}

// ConnectionUser is one follower or followee entry.
type ConnectionUser struct {
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	IsVerified bool   `json:"is_verified"`
}

// ConnectionSet holds both connection lists and the asymmetric
// relationships derived from handle membership.
type ConnectionSet struct {
	FollowersCount   int              `json:"followers_count"`
	FollowingCount   int              `json:"following_count"`
	NotFollowingBack []string         `json:"not_following_back"`
	NotFollowedBack  []string         `json:"not_followed_back"`
	Followers        []ConnectionUser `json:"followers"`
	Following        []ConnectionUser `json:"following"`
	SkipReason       string           `json:"skip_reason,omitempty"`
}

// PresenceStatus classifies the outcome of one platform probe.
type PresenceStatus string

const (
	PresenceFound    PresenceStatus = "Found"
	PresenceNotFound PresenceStatus = "Not found"
	PresenceError    PresenceStatus = "Error"
)

// PresenceResult is the outcome of probing one external platform.
// Exactly one result exists per configured platform.
type PresenceResult struct {
	Platform     string         `json:"platform"`
	URL          string         `json:"url"`
	Status       PresenceStatus `json:"status"`
	ResponseCode int            `json:"response_code,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// ScanMetadata describes the scan run itself.
type ScanMetadata struct {
	Timestamp string `json:"timestamp"`
	Tool      string `json:"tool"`
	Target    string `json:"target"`
}

// ScanResult is the aggregate root serialized by the exporter.
type ScanResult struct {
	Profile      *Profile         `json:"profile_data"`
	PostAnalysis *PostAnalysis    `json:"posts_analysis"`
	Connections  *ConnectionSet   `json:"connections,omitempty"`
	ExternalRefs []PresenceResult `json:"external_references,omitempty"`
	Metadata     ScanMetadata     `json:"scan_metadata"`
}
