package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/bookbind"
)

// Ensure LoggingDiscoverer implements bookbind.LinkDiscoverer.
var _ bookbind.LinkDiscoverer = (*LoggingDiscoverer)(nil)

// LoggingDiscoverer wraps a LinkDiscoverer with debug logging for rule selection.
type LoggingDiscoverer struct {
	next   bookbind.LinkDiscoverer
	logger *slog.Logger
}

// NewLoggingDiscoverer creates a new LoggingDiscoverer.
func NewLoggingDiscoverer(next bookbind.LinkDiscoverer, logger *slog.Logger) *LoggingDiscoverer {
	return &LoggingDiscoverer{next: next, logger: logger}
}

// DiscoverLinks delegates to the wrapped discoverer and logs which rule
// produced the candidates.
func (d *LoggingDiscoverer) DiscoverLinks(html string, baseURL string) (links []bookbind.CandidateLink, err error) {
	defer func(begin time.Time) {
		rule := "(none)"
		if len(links) > 0 {
			rule = string(links[0].Rule)
		}
		d.logger.Info("link discovery",
			"url", baseURL,
			"rule", rule,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.DiscoverLinks(html, baseURL)
}
