package analyzer

import (
	"errors"
	"io"
	"time"

	"instascan/pkg/logger"
	"instascan/pkg/models"
)

// topEntries is how many hashtag/mention entries survive into the
// exported frequency tables.
const topEntries = 20

// PostIterator is a pull-based view of the provider's lazy post
// sequence. Next returns io.EOF once the sequence is exhausted.
type PostIterator interface {
	Next() (*models.RawPost, error)
}

// ProgressFunc reports aggregation progress. It must not influence the
// returned bundle.
type ProgressFunc func(consumed, limit int)

// Aggregator consumes a bounded window of post records and reduces it
// into the post-analysis bundle.
type Aggregator struct {
	logger   logger.Logger
	progress ProgressFunc
}

// NewAggregator creates an Aggregator
func NewAggregator(log logger.Logger) *Aggregator {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Aggregator{logger: log}
}

// SetProgress installs an optional progress callback
func (a *Aggregator) SetProgress(fn ProgressFunc) {
	a.progress = fn
}

// Aggregate consumes at most limit posts from the iterator and builds
// per-post summaries, frequency tables, the location list and the
// posting-pattern summary.
//
// A mid-iteration provider failure is not propagated: the bundle
// reflects the successfully consumed prefix and a warning is logged.
func (a *Aggregator) Aggregate(posts PostIterator, limit int) *models.PostAnalysis {
	summaries := []models.PostSummary{}
	locations := []models.LocationEntry{}
	hashtags := NewCounter()
	mentions := NewCounter()
	var postTimes []time.Time

	for len(summaries) < limit {
		post, err := posts.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Keep the prefix collected so far
			a.logger.WarnWithFields("post stream ended early", map[string]interface{}{
				"consumed": len(summaries),
				"limit":    limit,
				"error":    err.Error(),
			})
			break
		}

		summaries = append(summaries, buildSummary(post))
		postTimes = append(postTimes, post.TakenAt)

		if post.Location != nil {
			locations = append(locations, models.LocationEntry{
				Name:    post.Location.Name,
				ID:      post.Location.ID,
				Lat:     post.Location.Lat,
				Lng:     post.Location.Lng,
				PostURL: post.URL(),
			})
		}

		for _, tag := range post.Hashtags {
			hashtags.Add(tag)
		}
		for _, mention := range post.Mentions {
			mentions.Add(mention)
		}

		if a.progress != nil {
			a.progress(len(summaries), limit)
		}
	}

	a.logger.DebugWithFields("post aggregation finished", map[string]interface{}{
		"posts_analyzed": len(summaries),
		"locations":      len(locations),
		"hashtags":       hashtags.Len(),
		"mentions":       mentions.Len(),
	})

	return &models.PostAnalysis{
		PostsAnalyzed: len(summaries),
		Posts:         summaries,
		Locations:     locations,
		TopHashtags:   hashtags.Top(topEntries),
		TopMentions:   mentions.Top(topEntries),
		TimePatterns:  AnalyzePattern(postTimes),
	}
}

// buildSummary maps a raw provider record into the immutable per-post
// summary kept in the bundle.
func buildSummary(post *models.RawPost) models.PostSummary {
	summary := models.PostSummary{
		Shortcode:      post.Shortcode,
		URL:            post.URL(),
		Timestamp:      post.TakenAt.UTC().Format(models.TimeFormat),
		Likes:          post.Likes,
		Comments:       post.Comments,
		Caption:        post.Caption,
		Hashtags:       append([]string{}, post.Hashtags...),
		MentionedUsers: append([]string{}, post.Mentions...),
		IsVideo:        post.IsVideo,
	}
	if post.Location != nil {
		summary.Location = post.Location.Name
	}
	return summary
}
