// Package prober issues bounded-concurrency HTTP existence checks for
// a handle against a fixed set of external platforms.
package prober

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"instascan/pkg/logger"
	"instascan/pkg/models"
)

// probeJob carries one templated URL together with its position in the
// input, so results can be reassembled by index instead of completion
// order.
type probeJob struct {
	index int
	url   string
}

// Prober performs the presence checks.
type Prober struct {
	client     *http.Client
	userAgent  string
	numWorkers int
	logger     logger.Logger
}

// New creates a Prober. The timeout bounds each individual request and
// proxyURL, when non-empty, is applied to the client's transport.
func New(timeout time.Duration, proxyURL string, numWorkers int, log logger.Logger) (*Prober, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	if numWorkers <= 0 {
		numWorkers = 5
	}

	transport := &http.Transport{}
	if proxyURL != "" {
		proxy, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	return &Prober{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		numWorkers: numWorkers,
		logger:     log,
	}, nil
}

// SetUserAgent overrides the identifying header sent with each probe
func (p *Prober) SetUserAgent(userAgent string) {
	p.userAgent = userAgent
}

// Probe checks every platform template for the handle and returns
// exactly one result per template, in template order. Individual
// failures never abort the batch; they become Error entries.
func (p *Prober) Probe(handle string, templates []string) []models.PresenceResult {
	results := make([]models.PresenceResult, len(templates))
	if len(templates) == 0 {
		return results
	}

	jobs := make(chan probeJob)
	var wg sync.WaitGroup

	workers := p.numWorkers
	if workers > len(templates) {
		workers = len(templates)
	}

	p.logger.DebugWithFields("starting probe workers", map[string]interface{}{
		"handle":    handle,
		"platforms": len(templates),
		"workers":   workers,
	})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for job := range jobs {
				// Workers own disjoint indices, no locking needed
				results[job.index] = p.checkURL(job.url)
			}
		}(i)
	}

	for i, template := range templates {
		jobs <- probeJob{index: i, url: fmt.Sprintf(template, handle)}
	}
	close(jobs)
	wg.Wait()

	return results
}

// checkURL performs a single existence check. Transport-level failures
// are reported as Error results, never propagated.
func (p *Prober) checkURL(probeURL string) models.PresenceResult {
	result := models.PresenceResult{
		Platform: platformLabel(probeURL),
		URL:      probeURL,
	}

	req, err := http.NewRequest(http.MethodGet, probeURL, nil)
	if err != nil {
		result.Status = models.PresenceError
		result.Error = err.Error()
		return result
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.DebugWithFields("probe request failed", map[string]interface{}{
			"url":   probeURL,
			"error": err.Error(),
		})
		result.Status = models.PresenceError
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	result.ResponseCode = resp.StatusCode
	if resp.StatusCode == http.StatusOK {
		result.Status = models.PresenceFound
	} else {
		result.Status = models.PresenceNotFound
	}
	return result
}

// platformLabel derives a display name from the probed hostname:
// strip a leading "www.", take the first dot-delimited segment and
// capitalize it.
func platformLabel(probeURL string) string {
	parsed, err := url.Parse(probeURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	segment, _, _ := strings.Cut(host, ".")
	if segment == "" {
		return ""
	}
	return strings.ToUpper(segment[:1]) + segment[1:]
}
