// Package connections computes asymmetric-relationship sets from
// follower and followee lists.
package connections

import "instascan/pkg/models"

// Iterator is a pull-based view of a provider's lazy connection
// sequence. Next returns io.EOF once the sequence is exhausted.
type Iterator interface {
	Next() (*models.ConnectionUser, error)
}

// Diff computes the connection set for the given follower and followee
// lists. Membership is decided by handle only, never by record
// identity, and the displayed lists keep their original encounter
// order. Empty inputs yield empty structures.
func Diff(followers, following []models.ConnectionUser) *models.ConnectionSet {
	if followers == nil {
		followers = []models.ConnectionUser{}
	}
	if following == nil {
		following = []models.ConnectionUser{}
	}

	followerSet := handleSet(followers)
	followingSet := handleSet(following)

	notFollowingBack := []string{}
	for _, user := range following {
		if _, ok := followerSet[user.Username]; !ok {
			notFollowingBack = append(notFollowingBack, user.Username)
		}
	}

	notFollowedBack := []string{}
	for _, user := range followers {
		if _, ok := followingSet[user.Username]; !ok {
			notFollowedBack = append(notFollowedBack, user.Username)
		}
	}

	return &models.ConnectionSet{
		FollowersCount:   len(followers),
		FollowingCount:   len(following),
		NotFollowingBack: notFollowingBack,
		NotFollowedBack:  notFollowedBack,
		Followers:        followers,
		Following:        following,
	}
}

// Skipped returns an empty connection set carrying the reason the diff
// stage was not run.
func Skipped(reason string) *models.ConnectionSet {
	return &models.ConnectionSet{
		NotFollowingBack: []string{},
		NotFollowedBack:  []string{},
		Followers:        []models.ConnectionUser{},
		Following:        []models.ConnectionUser{},
		SkipReason:       reason,
	}
}

func handleSet(users []models.ConnectionUser) map[string]struct{} {
	set := make(map[string]struct{}, len(users))
	for _, user := range users {
		set[user.Username] = struct{}{}
	}
	return set
}
