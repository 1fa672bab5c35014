package scanner

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instascan/pkg/analyzer"
	"instascan/pkg/config"
	"instascan/pkg/connections"
	errs "instascan/pkg/errors"
	"instascan/pkg/export"
	"instascan/pkg/logger"
	"instascan/pkg/models"
)

type fakePosts struct {
	posts []models.RawPost
	index int
}

func (f *fakePosts) Next() (*models.RawPost, error) {
	if f.index >= len(f.posts) {
		return nil, io.EOF
	}
	post := f.posts[f.index]
	f.index++
	return &post, nil
}

type fakeConnections struct {
	users []models.ConnectionUser
	err   error
	index int
}

func (f *fakeConnections) Next() (*models.ConnectionUser, error) {
	if f.index >= len(f.users) {
		if f.err != nil {
			return nil, f.err
		}
		return nil, io.EOF
	}
	user := f.users[f.index]
	f.index++
	return &user, nil
}

type fakeProvider struct {
	profile       *models.Profile
	profileErr    error
	authenticated bool
	posts         []models.RawPost
	followers     *fakeConnections
	following     *fakeConnections
}

func (f *fakeProvider) IsAuthenticated() bool { return f.authenticated }

func (f *fakeProvider) Profile(username string) (*models.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeProvider) Posts(profile *models.Profile) analyzer.PostIterator {
	return &fakePosts{posts: f.posts}
}

func (f *fakeProvider) Followers(profile *models.Profile) connections.Iterator {
	if f.followers == nil {
		return &fakeConnections{}
	}
	return f.followers
}

func (f *fakeProvider) Following(profile *models.Profile) connections.Iterator {
	if f.following == nil {
		return &fakeConnections{}
	}
	return f.following
}

type fakeProber struct {
	results []models.PresenceResult
	handle  string
	calls   int
}

func (f *fakeProber) Probe(handle string, templates []string) []models.PresenceResult {
	f.calls++
	f.handle = handle
	return f.results
}

type fakeExporter struct {
	result *models.ScanResult
	format export.Format
	prefix string
	err    error
	calls  int
}

func (f *fakeExporter) Export(result *models.ScanResult, format export.Format, prefix string) ([]string, error) {
	f.calls++
	f.result = result
	f.format = format
	f.prefix = prefix
	if f.err != nil {
		return nil, f.err
	}
	return []string{prefix + ".json"}, nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Scan.MaxPosts = 10
	cfg.Output.Format = "json"
	cfg.Output.Directory = "results"
	return cfg
}

func publicProfile() *models.Profile {
	return &models.Profile{
		Username:       "alice",
		UserID:         "12345",
		FollowersCount: 2,
		FollowingCount: 2,
	}
}

func somePosts(n int) []models.RawPost {
	posts := make([]models.RawPost, 0, n)
	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		posts = append(posts, models.RawPost{
			Shortcode: string(rune('a' + i)),
			TakenAt:   base.Add(-time.Duration(i) * time.Hour),
		})
	}
	return posts
}

func TestRunFullScan(t *testing.T) {
	provider := &fakeProvider{
		profile:       publicProfile(),
		authenticated: true,
		posts:         somePosts(3),
		followers: &fakeConnections{users: []models.ConnectionUser{
			{Username: "bob"}, {Username: "carol"},
		}},
		following: &fakeConnections{users: []models.ConnectionUser{
			{Username: "bob"}, {Username: "dave"},
		}},
	}
	probe := &fakeProber{results: []models.PresenceResult{
		{Platform: "Twitter", Status: models.PresenceFound},
	}}
	exporter := &fakeExporter{}

	cfg := testConfig()
	cfg.Probe.Enabled = true

	result, err := New(cfg, provider, probe, exporter, logger.NewTestLogger()).Run("alice")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "alice", result.Profile.Username)
	assert.Equal(t, 3, result.PostAnalysis.PostsAnalyzed)

	require.NotNil(t, result.Connections)
	assert.Empty(t, result.Connections.SkipReason)
	assert.Equal(t, []string{"dave"}, result.Connections.NotFollowingBack)
	assert.Equal(t, []string{"carol"}, result.Connections.NotFollowedBack)

	assert.Equal(t, 1, probe.calls)
	assert.Equal(t, "alice", probe.handle)
	require.Len(t, result.ExternalRefs, 1)

	assert.Equal(t, "instascan", result.Metadata.Tool)
	assert.Equal(t, "alice", result.Metadata.Target)
	assert.NotEmpty(t, result.Metadata.Timestamp)
}

func TestRunProfileFetchFailureIsFatal(t *testing.T) {
	provider := &fakeProvider{
		profileErr: errs.New(errs.ErrorTypeNotFound, "profile does not exist"),
	}
	exporter := &fakeExporter{}

	result, err := New(testConfig(), provider, nil, exporter, logger.NewTestLogger()).Run("ghost")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, errs.ErrorTypeNotFound, errs.TypeOf(err))
	assert.Zero(t, exporter.calls)
}

func TestRunPrivateProfileSkipsConnections(t *testing.T) {
	profile := publicProfile()
	profile.IsPrivate = true
	provider := &fakeProvider{
		profile:       profile,
		authenticated: true,
		posts:         somePosts(1),
	}

	result, err := New(testConfig(), provider, nil, &fakeExporter{}, logger.NewTestLogger()).Run("alice")
	require.NoError(t, err)

	require.NotNil(t, result.Connections)
	assert.Equal(t, "profile is private", result.Connections.SkipReason)
	assert.Empty(t, result.Connections.Followers)
}

func TestRunUnauthenticatedSkipsConnections(t *testing.T) {
	provider := &fakeProvider{
		profile: publicProfile(),
		posts:   somePosts(1),
	}

	result, err := New(testConfig(), provider, nil, &fakeExporter{}, logger.NewTestLogger()).Run("alice")
	require.NoError(t, err)

	require.NotNil(t, result.Connections)
	assert.Equal(t, "authentication required", result.Connections.SkipReason)
}

func TestRunConnectionFailureKeepsPrefix(t *testing.T) {
	log := logger.NewTestLogger()
	provider := &fakeProvider{
		profile:       publicProfile(),
		authenticated: true,
		followers: &fakeConnections{
			users: []models.ConnectionUser{{Username: "bob"}},
			err:   errors.New("connection reset"),
		},
		following: &fakeConnections{users: []models.ConnectionUser{{Username: "dave"}}},
	}

	result, err := New(testConfig(), provider, nil, &fakeExporter{}, log).Run("alice")
	require.NoError(t, err)

	require.NotNil(t, result.Connections)
	assert.Equal(t, 1, result.Connections.FollowersCount)
	assert.Equal(t, []string{"dave"}, result.Connections.NotFollowingBack)
	assert.True(t, log.HasMessage("WARN", "connection list truncated"))
}

func TestRunProbeDisabled(t *testing.T) {
	provider := &fakeProvider{profile: publicProfile()}
	probe := &fakeProber{}

	result, err := New(testConfig(), provider, probe, &fakeExporter{}, logger.NewTestLogger()).Run("alice")
	require.NoError(t, err)

	assert.Zero(t, probe.calls)
	assert.Empty(t, result.ExternalRefs)
}

func TestRunExportFailureIsNotFatal(t *testing.T) {
	log := logger.NewTestLogger()
	provider := &fakeProvider{profile: publicProfile(), posts: somePosts(2)}
	exporter := &fakeExporter{err: errors.New("disk full")}

	result, err := New(testConfig(), provider, nil, exporter, log).Run("alice")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, exporter.calls)
	assert.True(t, log.HasMessage("WARN", "failed to export results"))
}

func TestRunExportPrefix(t *testing.T) {
	provider := &fakeProvider{profile: publicProfile()}
	exporter := &fakeExporter{}

	cfg := testConfig()
	cfg.Output.Directory = "out"
	cfg.Output.Format = "csv"

	_, err := New(cfg, provider, nil, exporter, logger.NewTestLogger()).Run("alice")
	require.NoError(t, err)

	assert.Equal(t, export.FormatCSV, exporter.format)
	dir, file := filepath.Split(exporter.prefix)
	assert.Equal(t, "out"+string(filepath.Separator), dir)
	assert.True(t, strings.HasPrefix(file, "alice_"), file)

	// alice_YYYYMMDD_HHMMSS
	parts := strings.SplitN(file, "_", 2)
	require.Len(t, parts, 2)
	_, parseErr := time.Parse("20060102_150405", parts[1])
	assert.NoError(t, parseErr)
}

func TestRunLimitBoundsAggregation(t *testing.T) {
	provider := &fakeProvider{profile: publicProfile(), posts: somePosts(8)}

	cfg := testConfig()
	cfg.Scan.MaxPosts = 5

	result, err := New(cfg, provider, nil, &fakeExporter{}, logger.NewTestLogger()).Run("alice")
	require.NoError(t, err)
	assert.Equal(t, 5, result.PostAnalysis.PostsAnalyzed)
}
