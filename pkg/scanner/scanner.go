// Package scanner orchestrates a full profile scan: profile fetch,
// bounded post aggregation, connection diffing, external presence
// probing and export.
package scanner

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"instascan/pkg/analyzer"
	"instascan/pkg/config"
	"instascan/pkg/connections"
	"instascan/pkg/export"
	"instascan/pkg/logger"
	"instascan/pkg/models"
)

// prefixTimeFormat stamps artifact filenames.
const prefixTimeFormat = "20060102_150405"

// Provider supplies the scan's input data: the profile record plus
// lazy post and connection sequences.
type Provider interface {
	IsAuthenticated() bool
	Profile(username string) (*models.Profile, error)
	Posts(profile *models.Profile) analyzer.PostIterator
	Followers(profile *models.Profile) connections.Iterator
	Following(profile *models.Profile) connections.Iterator
}

// Prober checks external platforms for the target handle.
type Prober interface {
	Probe(handle string, templates []string) []models.PresenceResult
}

// Exporter serializes the finished result.
type Exporter interface {
	Export(result *models.ScanResult, format export.Format, prefix string) ([]string, error)
}

// Scanner runs scans against a provider.
type Scanner struct {
	cfg      *config.Config
	provider Provider
	prober   Prober
	exporter Exporter
	logger   logger.Logger
	progress analyzer.ProgressFunc
}

// New creates a Scanner. The prober may be nil when external search is
// disabled.
func New(cfg *config.Config, provider Provider, prober Prober, exporter Exporter, log logger.Logger) *Scanner {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Scanner{
		cfg:      cfg,
		provider: provider,
		prober:   prober,
		exporter: exporter,
		logger:   log,
	}
}

// SetProgress installs an optional aggregation progress callback
func (s *Scanner) SetProgress(fn analyzer.ProgressFunc) {
	s.progress = fn
}

// Run executes a full scan for the username. Only a failed profile
// fetch aborts the scan; every later stage degrades to a partial
// result instead. The returned result is complete even when the export
// step failed.
func (s *Scanner) Run(username string) (*models.ScanResult, error) {
	start := time.Now()

	profile, err := s.provider.Profile(username)
	if err != nil {
		return nil, err
	}

	s.logger.InfoWithFields("profile fetched", map[string]interface{}{
		"username":   profile.Username,
		"followers":  profile.FollowersCount,
		"posts":      profile.PostsCount,
		"is_private": profile.IsPrivate,
	})

	aggregator := analyzer.NewAggregator(s.logger)
	if s.progress != nil {
		aggregator.SetProgress(s.progress)
	}
	analysis := aggregator.Aggregate(s.provider.Posts(profile), s.cfg.Scan.MaxPosts)

	conns := s.collectConnections(profile)

	var refs []models.PresenceResult
	if s.cfg.Probe.Enabled && s.prober != nil {
		s.logger.InfoWithFields("probing external platforms", map[string]interface{}{
			"handle":    username,
			"platforms": len(s.cfg.Probe.Platforms),
		})
		refs = s.prober.Probe(username, s.cfg.Probe.Platforms)
	}

	now := time.Now()
	result := &models.ScanResult{
		Profile:      profile,
		PostAnalysis: analysis,
		Connections:  conns,
		ExternalRefs: refs,
		Metadata: models.ScanMetadata{
			Timestamp: now.Format(models.TimeFormat),
			Tool:      "instascan",
			Target:    username,
		},
	}

	s.export(result, now)

	s.logger.InfoWithFields("scan finished", map[string]interface{}{
		"target":         username,
		"posts_analyzed": analysis.PostsAnalyzed,
		"elapsed":        time.Since(start).Round(time.Millisecond).String(),
	})

	return result, nil
}

// export writes the result in the configured format. Export failures
// never fail the scan, the collected data is still returned.
func (s *Scanner) export(result *models.ScanResult, now time.Time) {
	format, err := export.ParseFormat(s.cfg.Output.Format)
	if err != nil {
		s.logger.WithError(err).Warn("skipping export")
		return
	}

	prefix := filepath.Join(
		s.cfg.Output.Directory,
		fmt.Sprintf("%s_%s", result.Metadata.Target, now.Format(prefixTimeFormat)),
	)

	artifacts, err := s.exporter.Export(result, format, prefix)
	if err != nil {
		s.logger.WithError(err).Warn("failed to export results")
		return
	}
	for _, path := range artifacts {
		s.logger.WithField("path", path).Info("artifact written")
	}
}

// collectConnections gathers both connection lists and diffs them.
// Private profiles and unauthenticated sessions skip the stage with a
// recorded reason instead of failing the scan.
func (s *Scanner) collectConnections(profile *models.Profile) *models.ConnectionSet {
	if profile.IsPrivate {
		s.logger.Info("profile is private, skipping connection analysis")
		return connections.Skipped("profile is private")
	}
	if !s.provider.IsAuthenticated() {
		s.logger.Info("no session configured, skipping connection analysis")
		return connections.Skipped("authentication required")
	}

	var followers, following []models.ConnectionUser

	var g errgroup.Group
	g.Go(func() error {
		followers = s.drain(s.provider.Followers(profile), "followers")
		return nil
	})
	g.Go(func() error {
		following = s.drain(s.provider.Following(profile), "following")
		return nil
	})
	// Collection failures degrade to prefixes inside drain
	_ = g.Wait()

	return connections.Diff(followers, following)
}

// drain consumes a connection iterator to exhaustion. A mid-sequence
// failure keeps the prefix collected so far and logs a warning.
func (s *Scanner) drain(it connections.Iterator, kind string) []models.ConnectionUser {
	users := []models.ConnectionUser{}
	for {
		user, err := it.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.WarnWithFields("connection list truncated", map[string]interface{}{
					"kind":      kind,
					"collected": len(users),
					"error":     err.Error(),
				})
			}
			return users
		}
		users = append(users, *user)
	}
}
