// Package instagram binds the scanner to the Instagram web API.
//
// It owns everything provider-shaped: the HTTP client with its
// browser-like header set, session cookies, rate limiting and retry
// behavior; the endpoint URL builders; the response models; caption
// hashtag/mention extraction; and the lazy page-on-demand iterators
// that feed the aggregation engine.
package instagram
