package prober

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instascan/pkg/logger"
	"instascan/pkg/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/found/alice":
			w.WriteHeader(http.StatusOK)
		case "/missing/alice":
			w.WriteHeader(http.StatusNotFound)
		case "/slow/alice":
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestProbeClassifiesOutcomes(t *testing.T) {
	server := newTestServer(t)

	p, err := New(5*time.Second, "", 5, logger.NewTestLogger())
	require.NoError(t, err)

	templates := []string{
		server.URL + "/found/%s",
		server.URL + "/missing/%s",
		server.URL + "/error/%s",
	}
	results := p.Probe("alice", templates)

	require.Len(t, results, 3)
	assert.Equal(t, models.PresenceFound, results[0].Status)
	assert.Equal(t, http.StatusOK, results[0].ResponseCode)
	assert.Equal(t, models.PresenceNotFound, results[1].Status)
	assert.Equal(t, http.StatusNotFound, results[1].ResponseCode)
	// Only 200 counts as found
	assert.Equal(t, models.PresenceNotFound, results[2].Status)
	assert.Equal(t, http.StatusInternalServerError, results[2].ResponseCode)
}

func TestProbeTimeoutBecomesError(t *testing.T) {
	server := newTestServer(t)

	p, err := New(50*time.Millisecond, "", 2, logger.NewTestLogger())
	require.NoError(t, err)

	results := p.Probe("alice", []string{
		server.URL + "/found/%s",
		server.URL + "/slow/%s",
	})

	require.Len(t, results, 2)
	assert.Equal(t, models.PresenceFound, results[0].Status)
	assert.Equal(t, models.PresenceError, results[1].Status)
	assert.NotEmpty(t, results[1].Error)
	assert.Zero(t, results[1].ResponseCode)
}

func TestProbeResultsMatchTemplateOrder(t *testing.T) {
	server := newTestServer(t)

	// More templates than workers forces queueing
	var templates []string
	for i := 0; i < 8; i++ {
		templates = append(templates, server.URL+fmt.Sprintf("/found/%%s?i=%d", i))
	}

	p, err := New(5*time.Second, "", 3, logger.NewTestLogger())
	require.NoError(t, err)

	results := p.Probe("alice", templates)

	require.Len(t, results, 8)
	for i, result := range results {
		assert.Equal(t, fmt.Sprintf(templates[i], "alice"), result.URL)
		assert.Equal(t, models.PresenceFound, result.Status)
	}
}

func TestProbeSubstitutesHandle(t *testing.T) {
	server := newTestServer(t)

	p, err := New(5*time.Second, "", 1, logger.NewTestLogger())
	require.NoError(t, err)

	results := p.Probe("alice", []string{server.URL + "/found/%s"})

	require.Len(t, results, 1)
	assert.Contains(t, results[0].URL, "/found/alice")
}

func TestProbeEmptyTemplates(t *testing.T) {
	p, err := New(time.Second, "", 5, logger.NewTestLogger())
	require.NoError(t, err)

	assert.Empty(t, p.Probe("alice", nil))
}

func TestNewRejectsInvalidProxy(t *testing.T) {
	_, err := New(time.Second, "://not-a-url", 5, logger.NewTestLogger())
	assert.Error(t, err)
}

func TestPlatformLabel(t *testing.T) {
	tests := []struct {
		url   string
		label string
	}{
		{"https://twitter.com/alice", "Twitter"},
		{"https://www.tiktok.com/@alice", "Tiktok"},
		{"https://www.reddit.com/user/alice", "Reddit"},
		{"https://github.com/alice", "Github"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.label, platformLabel(tt.url), tt.url)
	}
}
