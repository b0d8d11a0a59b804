package bookbind

import "context"

// Fetcher retrieves raw HTML from URLs.
//
// A fetch failure (network error, timeout, non-2xx status) is an ordinary
// error for the caller to report; it means "no content for this candidate",
// never a crash. Implementations share one underlying client so connection
// reuse and the fixed identifying header are process-wide.
type Fetcher interface {
	// Fetch performs an HTTP GET and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases client resources.
	Close() error
}

// DomainLimiter provides per-domain politeness rate limiting. The download
// pipeline waits on it between successive fetches so a source server sees at
// most about one request per second.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
