package ui

import "fmt"

// ScanProgress narrates post aggregation on one terminal line. It is
// only installed when verbose mode is on.
type ScanProgress struct {
	started bool
}

// NewScanProgress creates a progress line
func NewScanProgress() *ScanProgress {
	return &ScanProgress{}
}

// Update rewrites the progress line in place
func (p *ScanProgress) Update(consumed, limit int) {
	p.started = true
	fmt.Printf("\r%s", Dim(fmt.Sprintf("  processing post %d/%d", consumed, limit)))
}

// Finish terminates the progress line so later output starts clean
func (p *ScanProgress) Finish() {
	if p.started {
		fmt.Println()
	}
}
