package connections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instascan/pkg/models"
)

func users(names ...string) []models.ConnectionUser {
	out := make([]models.ConnectionUser, 0, len(names))
	for _, name := range names {
		out = append(out, models.ConnectionUser{Username: name})
	}
	return out
}

func TestDiff(t *testing.T) {
	followers := users("alice", "bob", "carol")
	following := users("bob", "dave", "alice")

	set := Diff(followers, following)

	assert.Equal(t, 3, set.FollowersCount)
	assert.Equal(t, 3, set.FollowingCount)
	assert.Equal(t, []string{"dave"}, set.NotFollowingBack)
	assert.Equal(t, []string{"carol"}, set.NotFollowedBack)
	assert.Empty(t, set.SkipReason)
}

func TestDiffKeepsEncounterOrder(t *testing.T) {
	followers := users("z")
	following := users("c", "a", "b")

	set := Diff(followers, following)

	assert.Equal(t, []string{"c", "a", "b"}, set.NotFollowingBack)
}

func TestDiffMembershipIgnoresRecordIdentity(t *testing.T) {
	// Same handle with different display data still counts as mutual
	followers := []models.ConnectionUser{{Username: "alice", FullName: "Alice A", IsVerified: true}}
	following := []models.ConnectionUser{{Username: "alice", FullName: "alice"}}

	set := Diff(followers, following)

	assert.Empty(t, set.NotFollowingBack)
	assert.Empty(t, set.NotFollowedBack)
}

func TestDiffEmptyInputs(t *testing.T) {
	set := Diff(nil, nil)

	require.NotNil(t, set)
	assert.Zero(t, set.FollowersCount)
	assert.NotNil(t, set.NotFollowingBack)
	assert.Empty(t, set.NotFollowingBack)
	assert.NotNil(t, set.Followers)

	// One empty side puts everything on the other list
	set = Diff(nil, users("a", "b"))
	assert.Equal(t, []string{"a", "b"}, set.NotFollowingBack)
	assert.Empty(t, set.NotFollowedBack)
}

func TestSkipped(t *testing.T) {
	set := Skipped("profile is private")

	assert.Equal(t, "profile is private", set.SkipReason)
	assert.Zero(t, set.FollowersCount)
	assert.NotNil(t, set.Followers)
	assert.NotNil(t, set.NotFollowedBack)
}
