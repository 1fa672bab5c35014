package instagram

import (
	"encoding/json"
	"fmt"
	"net/url"
)

const (
	// BaseURL is the base URL for Instagram
	BaseURL = "https://www.instagram.com"

	// ProfileEndpoint is the endpoint pattern for user profiles
	ProfileEndpoint = "/api/v1/users/web_profile_info/"

	// GraphQLEndpoint is the endpoint for paginated GraphQL queries
	GraphQLEndpoint = "/graphql/query/"

	// MediaQueryHash is the query hash for fetching user media
	MediaQueryHash = "e769aa130647d2354c40ea6a439bfc08"

	// FollowersQueryHash is the query hash for fetching followers
	FollowersQueryHash = "c76146de99bb02f6415203be841dd25a"

	// FollowingQueryHash is the query hash for fetching followees
	FollowingQueryHash = "d04b0a864b4b54837c0d870b0e77e076"

	// DefaultPageSize is the default number of records fetched per request
	DefaultPageSize = 50
)

// GetProfileURL constructs the URL for fetching a user's profile
func GetProfileURL(username string) string {
	params := url.Values{}
	params.Set("username", username)

	return fmt.Sprintf("%s%s?%s", BaseURL, ProfileEndpoint, params.Encode())
}

// GetMediaURL constructs the URL for fetching a page of a user's media
func GetMediaURL(userID string, after string, limit int) string {
	return graphQLURL(MediaQueryHash, userID, after, limit)
}

// GetFollowersURL constructs the URL for fetching a page of followers
func GetFollowersURL(userID string, after string, limit int) string {
	return graphQLURL(FollowersQueryHash, userID, after, limit)
}

// GetFollowingURL constructs the URL for fetching a page of followees
func GetFollowingURL(userID string, after string, limit int) string {
	return graphQLURL(FollowingQueryHash, userID, after, limit)
}

// graphQLURL builds a paginated GraphQL query URL
func graphQLURL(queryHash, userID, after string, limit int) string {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	variables := map[string]interface{}{
		"id":    userID,
		"first": limit,
	}
	if after != "" {
		variables["after"] = after
	}

	// Marshaling a flat string-keyed map is deterministic
	variablesJSON, _ := json.Marshal(variables)

	params := url.Values{}
	params.Set("query_hash", queryHash)
	params.Set("variables", string(variablesJSON))

	return fmt.Sprintf("%s%s?%s", BaseURL, GraphQLEndpoint, params.Encode())
}
