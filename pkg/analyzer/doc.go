// Package analyzer implements the aggregation core of a scan: it
// consumes a bounded window of raw post records and reduces it into
// per-post summaries, hashtag and mention frequency tables, a location
// list and a posting-pattern summary.
//
// The provider's lazy post sequence is consumed through the pull-based
// PostIterator interface, so the bounded window is the only
// backpressure mechanism and nothing is buffered beyond it. A provider
// failure partway through the window degrades the result to the
// successfully consumed prefix instead of failing the scan.
package analyzer
