package analyzer

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instascan/pkg/logger"
	"instascan/pkg/models"
)

// slicePosts iterates over a fixed slice, optionally failing after the
// slice is consumed.
type slicePosts struct {
	posts []models.RawPost
	err   error
	index int
}

func (s *slicePosts) Next() (*models.RawPost, error) {
	if s.index >= len(s.posts) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	post := s.posts[s.index]
	s.index++
	return &post, nil
}

func makePosts(n int) []models.RawPost {
	posts := make([]models.RawPost, 0, n)
	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		posts = append(posts, models.RawPost{
			Shortcode: string(rune('A' + i)),
			TakenAt:   base.Add(-time.Duration(i) * 24 * time.Hour),
			Likes:     i * 10,
		})
	}
	return posts
}

func TestAggregateRespectsLimit(t *testing.T) {
	it := &slicePosts{posts: makePosts(10)}

	analysis := NewAggregator(logger.NewTestLogger()).Aggregate(it, 3)

	assert.Equal(t, 3, analysis.PostsAnalyzed)
	require.Len(t, analysis.Posts, 3)
	assert.Equal(t, "A", analysis.Posts[0].Shortcode)
	assert.Equal(t, "C", analysis.Posts[2].Shortcode)

	// The fourth post was never pulled
	assert.Equal(t, 3, it.index)
}

func TestAggregateShortStream(t *testing.T) {
	it := &slicePosts{posts: makePosts(2)}

	analysis := NewAggregator(logger.NewTestLogger()).Aggregate(it, 50)

	assert.Equal(t, 2, analysis.PostsAnalyzed)
	assert.Len(t, analysis.Posts, 2)
}

func TestAggregateKeepsPrefixOnFailure(t *testing.T) {
	log := logger.NewTestLogger()
	it := &slicePosts{posts: makePosts(4), err: errors.New("connection reset")}

	analysis := NewAggregator(log).Aggregate(it, 50)

	assert.Equal(t, 4, analysis.PostsAnalyzed)
	assert.True(t, log.HasMessage("WARN", "post stream ended early"))
}

func TestAggregateEmptyStream(t *testing.T) {
	analysis := NewAggregator(logger.NewTestLogger()).Aggregate(&slicePosts{}, 50)

	assert.Zero(t, analysis.PostsAnalyzed)
	assert.NotNil(t, analysis.Posts)
	assert.Empty(t, analysis.Posts)
	assert.NotNil(t, analysis.Locations)
	assert.Empty(t, analysis.TopHashtags)
	assert.Len(t, analysis.TimePatterns.DayActivity, 7)
}

func TestAggregateCollectsDerivedData(t *testing.T) {
	taken := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)
	it := &slicePosts{posts: []models.RawPost{
		{
			Shortcode: "ABC123",
			TakenAt:   taken,
			Likes:     42,
			Comments:  7,
			Caption:   "golden hour #sunset with @friend",
			Hashtags:  []string{"sunset"},
			Mentions:  []string{"friend"},
			Location: &models.RawLocation{
				ID:   "999",
				Name: "Lisbon",
				Lat:  38.72,
				Lng:  -9.14,
			},
		},
		{
			Shortcode: "DEF456",
			TakenAt:   taken.Add(-24 * time.Hour),
			Caption:   "#sunset again",
			Hashtags:  []string{"sunset"},
			IsVideo:   true,
		},
	}}

	analysis := NewAggregator(logger.NewTestLogger()).Aggregate(it, 50)

	require.Len(t, analysis.Posts, 2)
	first := analysis.Posts[0]
	assert.Equal(t, "https://www.instagram.com/p/ABC123/", first.URL)
	assert.Equal(t, "2024-06-10 15:30:00", first.Timestamp)
	assert.Equal(t, "Lisbon", first.Location)
	assert.True(t, analysis.Posts[1].IsVideo)

	require.Len(t, analysis.Locations, 1)
	assert.Equal(t, "Lisbon", analysis.Locations[0].Name)
	assert.Equal(t, "https://www.instagram.com/p/ABC123/", analysis.Locations[0].PostURL)

	require.Len(t, analysis.TopHashtags, 1)
	assert.Equal(t, models.TokenCount{Token: "sunset", Count: 2}, analysis.TopHashtags[0])
	require.Len(t, analysis.TopMentions, 1)
	assert.Equal(t, models.TokenCount{Token: "friend", Count: 1}, analysis.TopMentions[0])
}

func TestAggregateReportsProgress(t *testing.T) {
	agg := NewAggregator(logger.NewTestLogger())

	var calls [][2]int
	agg.SetProgress(func(consumed, limit int) {
		calls = append(calls, [2]int{consumed, limit})
	})

	agg.Aggregate(&slicePosts{posts: makePosts(3)}, 5)

	require.Len(t, calls, 3)
	assert.Equal(t, [2]int{1, 5}, calls[0])
	assert.Equal(t, [2]int{3, 5}, calls[2])
}
