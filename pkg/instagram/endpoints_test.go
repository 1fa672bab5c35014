package instagram

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileURL(t *testing.T) {
	profileURL := GetProfileURL("alice")

	parsed, err := url.Parse(profileURL)
	require.NoError(t, err)
	assert.Equal(t, "www.instagram.com", parsed.Host)
	assert.Equal(t, ProfileEndpoint, parsed.Path)
	assert.Equal(t, "alice", parsed.Query().Get("username"))
}

func TestGraphQLURLVariables(t *testing.T) {
	mediaURL := GetMediaURL("12345", "CURSOR", 25)

	parsed, err := url.Parse(mediaURL)
	require.NoError(t, err)
	assert.Equal(t, GraphQLEndpoint, parsed.Path)
	assert.Equal(t, MediaQueryHash, parsed.Query().Get("query_hash"))

	var variables struct {
		ID    string `json:"id"`
		First int    `json:"first"`
		After string `json:"after"`
	}
	require.NoError(t, json.Unmarshal([]byte(parsed.Query().Get("variables")), &variables))
	assert.Equal(t, "12345", variables.ID)
	assert.Equal(t, 25, variables.First)
	assert.Equal(t, "CURSOR", variables.After)
}

func TestGraphQLURLFirstPage(t *testing.T) {
	followersURL := GetFollowersURL("12345", "", 0)

	parsed, err := url.Parse(followersURL)
	require.NoError(t, err)
	assert.Equal(t, FollowersQueryHash, parsed.Query().Get("query_hash"))

	var variables map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(parsed.Query().Get("variables")), &variables))
	assert.NotContains(t, variables, "after")
	assert.EqualValues(t, DefaultPageSize, variables["first"])
}

func TestQueryHashesDiffer(t *testing.T) {
	assert.NotEqual(t, FollowersQueryHash, FollowingQueryHash)
	assert.NotEqual(t, MediaQueryHash, FollowersQueryHash)
}
