package instagram

// ProfileResponse is the top-level response of the profile endpoint
type ProfileResponse struct {
	RequiresToLogin bool        `json:"requires_to_login"`
	Data            ProfileData `json:"data"`
	Status          string      `json:"status"`
}

// ProfileData wraps the user information in the response
type ProfileData struct {
	User *UserInfo `json:"user"`
}

// UserInfo represents an Instagram user profile
type UserInfo struct {
	ID                       string          `json:"id"`
	Username                 string          `json:"username"`
	FullName                 string          `json:"full_name"`
	Biography                string          `json:"biography"`
	ExternalURL              string          `json:"external_url"`
	EdgeFollowedBy           EdgeCount       `json:"edge_followed_by"`
	EdgeFollow               EdgeCount       `json:"edge_follow"`
	IsPrivate                bool            `json:"is_private"`
	IsVerified               bool            `json:"is_verified"`
	ProfilePicURL            string          `json:"profile_pic_url_hd"`
	EdgeOwnerToTimelineMedia MediaConnection `json:"edge_owner_to_timeline_media"`
}

// EdgeCount carries a bare count edge
type EdgeCount struct {
	Count int `json:"count"`
}

// GraphResponse is the top-level response of paginated GraphQL queries
type GraphResponse struct {
	Data   GraphData `json:"data"`
	Status string    `json:"status"`
}

// GraphData wraps the user connections in a GraphQL response
type GraphData struct {
	User *GraphUser `json:"user"`
}

// GraphUser carries the paginated connections of a user
type GraphUser struct {
	EdgeOwnerToTimelineMedia MediaConnection  `json:"edge_owner_to_timeline_media"`
	EdgeFollowedBy           FollowConnection `json:"edge_followed_by"`
	EdgeFollow               FollowConnection `json:"edge_follow"`
}

// MediaConnection contains one page of the user's media
type MediaConnection struct {
	Count    int         `json:"count"`
	PageInfo PageInfo    `json:"page_info"`
	Edges    []MediaEdge `json:"edges"`
}

// PageInfo contains pagination information
type PageInfo struct {
	HasNextPage bool   `json:"has_next_page"`
	EndCursor   string `json:"end_cursor"`
}

// MediaEdge wraps a single media node
type MediaEdge struct {
	Node MediaNode `json:"node"`
}

// MediaNode represents a single post
type MediaNode struct {
	ID                 string        `json:"id"`
	Shortcode          string        `json:"shortcode"`
	TakenAtTimestamp   int64         `json:"taken_at_timestamp"`
	EdgeMediaToCaption CaptionEdges  `json:"edge_media_to_caption"`
	EdgeLikedBy        EdgeCount     `json:"edge_liked_by"`
	EdgeMediaToComment EdgeCount     `json:"edge_media_to_comment"`
	Location           *LocationNode `json:"location"`
	IsVideo            bool          `json:"is_video"`
}

// CaptionEdges wraps the caption text edges of a post
type CaptionEdges struct {
	Edges []CaptionEdge `json:"edges"`
}

// CaptionEdge wraps a single caption node
type CaptionEdge struct {
	Node CaptionNode `json:"node"`
}

// CaptionNode carries the caption text
type CaptionNode struct {
	Text string `json:"text"`
}

// Text returns the first caption text, if any
func (c CaptionEdges) Text() string {
	if len(c.Edges) == 0 {
		return ""
	}
	return c.Edges[0].Node.Text
}

// LocationNode is the location attached to a post
type LocationNode struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// FollowConnection contains one page of follower or followee records
type FollowConnection struct {
	Count    int          `json:"count"`
	PageInfo PageInfo     `json:"page_info"`
	Edges    []FollowEdge `json:"edges"`
}

// FollowEdge wraps a single connection node
type FollowEdge struct {
	Node FollowNode `json:"node"`
}

// FollowNode represents a follower or followee
type FollowNode struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	IsVerified bool   `json:"is_verified"`
}
