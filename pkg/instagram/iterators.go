package instagram

import (
	"fmt"
	"io"
	"time"

	"instascan/pkg/models"
)

// postIterator pulls a user's posts page by page. The next page is
// fetched only once the buffered one is exhausted, so consumers that
// stop early never pay for the rest of the timeline.
type postIterator struct {
	client   *Client
	userID   string
	pageSize int

	buffer  []models.RawPost
	after   string
	hasNext bool
	started bool
}

// Next returns the next post record or io.EOF when the timeline is
// exhausted.
func (it *postIterator) Next() (*models.RawPost, error) {
	for len(it.buffer) == 0 {
		if it.started && !it.hasNext {
			return nil, io.EOF
		}
		if err := it.fetchPage(); err != nil {
			return nil, err
		}
		if len(it.buffer) == 0 && !it.hasNext {
			return nil, io.EOF
		}
	}

	post := it.buffer[0]
	it.buffer = it.buffer[1:]
	return &post, nil
}

func (it *postIterator) fetchPage() error {
	page, err := it.client.FetchMedia(it.userID, it.after, it.pageSize)
	if err != nil {
		return fmt.Errorf("failed to fetch media page: %w", err)
	}

	it.started = true
	it.hasNext = page.PageInfo.HasNextPage
	it.after = page.PageInfo.EndCursor

	for _, edge := range page.Edges {
		caption := edge.Node.EdgeMediaToCaption.Text()
		post := models.RawPost{
			Shortcode: edge.Node.Shortcode,
			TakenAt:   time.Unix(edge.Node.TakenAtTimestamp, 0).UTC(),
			Likes:     edge.Node.EdgeLikedBy.Count,
			Comments:  edge.Node.EdgeMediaToComment.Count,
			Caption:   caption,
			Hashtags:  ExtractHashtags(caption),
			Mentions:  ExtractMentions(caption),
			IsVideo:   edge.Node.IsVideo,
		}
		if loc := edge.Node.Location; loc != nil {
			post.Location = &models.RawLocation{
				ID:   loc.ID,
				Name: loc.Name,
				Lat:  loc.Lat,
				Lng:  loc.Lng,
			}
		}
		it.buffer = append(it.buffer, post)
	}

	return nil
}

// connectionKind selects which connection edge an iterator walks.
type connectionKind int

const (
	kindFollowers connectionKind = iota
	kindFollowing
)

// connectionIterator pulls follower or followee records page by page.
type connectionIterator struct {
	client   *Client
	userID   string
	kind     connectionKind
	pageSize int

	buffer  []models.ConnectionUser
	after   string
	hasNext bool
	started bool
}

// Next returns the next connection record or io.EOF when the list is
// exhausted.
func (it *connectionIterator) Next() (*models.ConnectionUser, error) {
	for len(it.buffer) == 0 {
		if it.started && !it.hasNext {
			return nil, io.EOF
		}
		if err := it.fetchPage(); err != nil {
			return nil, err
		}
		if len(it.buffer) == 0 && !it.hasNext {
			return nil, io.EOF
		}
	}

	user := it.buffer[0]
	it.buffer = it.buffer[1:]
	return &user, nil
}

func (it *connectionIterator) fetchPage() error {
	var page *FollowConnection
	var err error
	switch it.kind {
	case kindFollowers:
		page, err = it.client.FetchFollowers(it.userID, it.after, it.pageSize)
	default:
		page, err = it.client.FetchFollowing(it.userID, it.after, it.pageSize)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch connection page: %w", err)
	}

	it.started = true
	it.hasNext = page.PageInfo.HasNextPage
	it.after = page.PageInfo.EndCursor

	for _, edge := range page.Edges {
		it.buffer = append(it.buffer, models.ConnectionUser{
			Username:   edge.Node.Username,
			FullName:   edge.Node.FullName,
			IsVerified: edge.Node.IsVerified,
		})
	}

	return nil
}
