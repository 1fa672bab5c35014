package instagram

import (
	"time"

	"instascan/pkg/analyzer"
	"instascan/pkg/connections"
	"instascan/pkg/logger"
	"instascan/pkg/models"
)

// Provider exposes the Instagram web API as the scanner's data
// provider: profile lookup plus lazy post and connection sequences.
type Provider struct {
	client *Client
	logger logger.Logger
}

// NewProvider creates a Provider on top of the given client
func NewProvider(client *Client, log logger.Logger) *Provider {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Provider{client: client, logger: log}
}

// IsAuthenticated reports whether the underlying client carries a
// session
func (p *Provider) IsAuthenticated() bool {
	return p.client.IsAuthenticated()
}

// Profile fetches the target profile. A missing profile surfaces as a
// not_found error, which is fatal to the scan.
func (p *Provider) Profile(username string) (*models.Profile, error) {
	user, err := p.client.FetchProfile(username)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		Username:       user.Username,
		UserID:         user.ID,
		FullName:       user.FullName,
		Biography:      user.Biography,
		ExternalURL:    user.ExternalURL,
		FollowersCount: user.EdgeFollowedBy.Count,
		FollowingCount: user.EdgeFollow.Count,
		IsPrivate:      user.IsPrivate,
		IsVerified:     user.IsVerified,
		PostsCount:     user.EdgeOwnerToTimelineMedia.Count,
		ProfilePicURL:  user.ProfilePicURL,
		ScrapeTime:     time.Now().Format(models.TimeFormat),
	}, nil
}

// Posts returns a lazy iterator over the profile's timeline
func (p *Provider) Posts(profile *models.Profile) analyzer.PostIterator {
	return &postIterator{
		client:   p.client,
		userID:   profile.UserID,
		pageSize: DefaultPageSize,
	}
}

// Followers returns a lazy iterator over the profile's followers
func (p *Provider) Followers(profile *models.Profile) connections.Iterator {
	return &connectionIterator{
		client:   p.client,
		userID:   profile.UserID,
		kind:     kindFollowers,
		pageSize: DefaultPageSize,
	}
}

// Following returns a lazy iterator over the accounts the profile
// follows
func (p *Provider) Following(profile *models.Profile) connections.Iterator {
	return &connectionIterator{
		client:   p.client,
		userID:   profile.UserID,
		kind:     kindFollowing,
		pageSize: DefaultPageSize,
	}
}
