// Package export serializes a scan result to JSON, CSV or a console
// report. Every file artifact is written atomically.
package export

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"instascan/pkg/errors"
	"instascan/pkg/logger"
	"instascan/pkg/models"
)

// Format selects the exporter branch.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// topListed is how many hashtag/mention entries the text report shows.
const topListed = 10

// ParseFormat validates a format name from configuration
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", errors.Newf(errors.ErrorTypeExport, "unknown output format %q", s)
	}
}

// Exporter writes scan results in the configured format.
type Exporter struct {
	out    io.Writer
	logger logger.Logger
}

// New creates an Exporter writing text reports to stdout
func New(log logger.Logger) *Exporter {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Exporter{out: os.Stdout, logger: log}
}

// SetOutput redirects the text report, used by tests
func (e *Exporter) SetOutput(w io.Writer) {
	e.out = w
}

// Export serializes the result and returns the paths of the written
// artifacts. The text format writes to the console and returns no
// artifacts. A schema mismatch on one CSV artifact does not stop the
// others from being written; the joined error names each offender.
func (e *Exporter) Export(result *models.ScanResult, format Format, prefix string) ([]string, error) {
	switch format {
	case FormatJSON:
		return e.exportJSON(result, prefix)
	case FormatCSV:
		return e.exportCSV(result, prefix)
	case FormatText:
		return nil, e.exportText(result)
	default:
		return nil, errors.Newf(errors.ErrorTypeExport, "unknown output format %q", string(format))
	}
}

// exportJSON writes the full result as one indented document with
// stable key order. Non-ASCII text is preserved as-is.
func (e *Exporter) exportJSON(result *models.ScanResult, prefix string) ([]string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("failed to encode scan result: %w", err)
	}

	path := prefix + ".json"
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return nil, err
	}

	e.logger.InfoWithFields("results exported", map[string]interface{}{
		"format": "json",
		"path":   path,
	})
	return []string{path}, nil
}

// exportCSV writes up to three tabular artifacts: profile, posts and
// locations. The posts and locations files are skipped when there is
// nothing to write.
func (e *Exporter) exportCSV(result *models.ScanResult, prefix string) ([]string, error) {
	var artifacts []string
	var errs []error

	write := func(path string, rows [][]field) {
		if err := writeTable(path, rows); err != nil {
			e.logger.WithError(err).WithField("path", path).Error("failed to export CSV artifact")
			errs = append(errs, err)
			return
		}
		artifacts = append(artifacts, path)
	}

	write(prefix+"_profile.csv", [][]field{profileRecord(result.Profile)})

	if result.PostAnalysis != nil && len(result.PostAnalysis.Posts) > 0 {
		rows := make([][]field, 0, len(result.PostAnalysis.Posts))
		for _, post := range result.PostAnalysis.Posts {
			rows = append(rows, postRecord(post))
		}
		write(prefix+"_posts.csv", rows)
	}

	if result.PostAnalysis != nil && len(result.PostAnalysis.Locations) > 0 {
		rows := make([][]field, 0, len(result.PostAnalysis.Locations))
		for _, loc := range result.PostAnalysis.Locations {
			rows = append(rows, locationRecord(loc))
		}
		write(prefix+"_locations.csv", rows)
	}

	if len(errs) > 0 {
		return artifacts, stderrors.Join(errs...)
	}

	e.logger.InfoWithFields("results exported", map[string]interface{}{
		"format":    "csv",
		"artifacts": len(artifacts),
	})
	return artifacts, nil
}

func profileRecord(p *models.Profile) []field {
	return []field{
		{"username", p.Username},
		{"user_id", p.UserID},
		{"full_name", p.FullName},
		{"biography", p.Biography},
		{"external_url", p.ExternalURL},
		{"followers_count", strconv.Itoa(p.FollowersCount)},
		{"following_count", strconv.Itoa(p.FollowingCount)},
		{"is_private", strconv.FormatBool(p.IsPrivate)},
		{"is_verified", strconv.FormatBool(p.IsVerified)},
		{"posts_count", strconv.Itoa(p.PostsCount)},
		{"profile_pic_url", p.ProfilePicURL},
		{"scrape_time", p.ScrapeTime},
	}
}

func postRecord(p models.PostSummary) []field {
	return []field{
		{"shortcode", p.Shortcode},
		{"url", p.URL},
		{"timestamp", p.Timestamp},
		{"likes", strconv.Itoa(p.Likes)},
		{"comments", strconv.Itoa(p.Comments)},
		{"caption", p.Caption},
		{"location", p.Location},
		{"hashtags", strings.Join(p.Hashtags, " ")},
		{"mentioned_users", strings.Join(p.MentionedUsers, " ")},
		{"is_video", strconv.FormatBool(p.IsVideo)},
	}
}

func locationRecord(l models.LocationEntry) []field {
	return []field{
		{"name", l.Name},
		{"id", l.ID},
		{"lat", strconv.FormatFloat(l.Lat, 'f', -1, 64)},
		{"lng", strconv.FormatFloat(l.Lng, 'f', -1, 64)},
		{"post_url", l.PostURL},
	}
}

// exportText writes the structured console report. Sections without
// data are omitted entirely.
func (e *Exporter) exportText(result *models.ScanResult) error {
	w := e.out

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "RESULTS FOR @%s\n", result.Metadata.Target)
	fmt.Fprintln(w, strings.Repeat("=", 50))

	if p := result.Profile; p != nil {
		fmt.Fprintln(w, "\nPROFILE INFORMATION:")
		fmt.Fprintf(w, "  username: %s\n", p.Username)
		fmt.Fprintf(w, "  user_id: %s\n", p.UserID)
		fmt.Fprintf(w, "  full_name: %s\n", p.FullName)
		fmt.Fprintf(w, "  biography: %s\n", p.Biography)
		fmt.Fprintf(w, "  external_url: %s\n", p.ExternalURL)
		fmt.Fprintf(w, "  followers_count: %d\n", p.FollowersCount)
		fmt.Fprintf(w, "  following_count: %d\n", p.FollowingCount)
		fmt.Fprintf(w, "  is_private: %t\n", p.IsPrivate)
		fmt.Fprintf(w, "  is_verified: %t\n", p.IsVerified)
		fmt.Fprintf(w, "  posts_count: %d\n", p.PostsCount)
		fmt.Fprintf(w, "  scrape_time: %s\n", p.ScrapeTime)
	}

	if a := result.PostAnalysis; a != nil {
		fmt.Fprintln(w, "\nPOST ANALYSIS:")
		fmt.Fprintf(w, "  Posts analyzed: %d\n", a.PostsAnalyzed)
		fmt.Fprintf(w, "  Locations found: %d\n", len(a.Locations))

		if a.PostsAnalyzed > 0 {
			patterns := a.TimePatterns
			fmt.Fprintln(w, "\nPOSTING PATTERNS:")
			fmt.Fprintf(w, "  Most active day: %s\n", patterns.MostActiveDay)
			if patterns.MostActiveHour != nil {
				fmt.Fprintf(w, "  Most active hour: %d:00\n", *patterns.MostActiveHour)
			}
			fmt.Fprintf(w, "  Average post frequency: %.2f posts per day\n", patterns.PostFrequencyDays)
		}

		if len(a.TopHashtags) > 0 {
			fmt.Fprintln(w, "\nTOP HASHTAGS:")
			for _, entry := range top(a.TopHashtags, topListed) {
				fmt.Fprintf(w, "  #%s: %d\n", entry.Token, entry.Count)
			}
		}

		if len(a.TopMentions) > 0 {
			fmt.Fprintln(w, "\nTOP MENTIONS:")
			for _, entry := range top(a.TopMentions, topListed) {
				fmt.Fprintf(w, "  @%s: %d\n", entry.Token, entry.Count)
			}
		}
	}

	found := false
	for _, ref := range result.ExternalRefs {
		if ref.Status == models.PresenceFound {
			if !found {
				fmt.Fprintln(w, "\nEXTERNAL REFERENCES:")
				found = true
			}
			fmt.Fprintf(w, "  %s: %s\n", ref.Platform, ref.URL)
		}
	}

	return nil
}

func top(entries []models.TokenCount, n int) []models.TokenCount {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}
