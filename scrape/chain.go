package scrape

import "github.com/fwojciec/bookbind"

var _ bookbind.Extractor = (Chain)(nil)

// Chain runs extractors in tier order and returns the first result with
// content. A page's content always comes from exactly one tier: a tier
// that errors or comes back empty passes the page on unchanged, results
// are never merged across tiers.
type Chain []bookbind.Extractor

// NewChain builds an extraction chain from primary to last-resort order.
func NewChain(tiers ...bookbind.Extractor) Chain {
	return Chain(tiers)
}

// Extract tries each tier in order and returns the first non-empty result.
// A result from any tier after the first is demoted to MethodFallback, so
// the method records whether the configured primary produced the content
// even when a primary-style extractor sits lower in the chain.
//
// The chain never fails on page content: when every tier errors or comes
// back empty, it returns an empty fallback-method result so the caller can
// record the page as having no usable content. The only error is the
// configuration mistake of an empty chain.
func (c Chain) Extract(html string) (*bookbind.ExtractResult, error) {
	if len(c) == 0 {
		return nil, bookbind.Errorf(bookbind.EINTERNAL, "extraction chain is empty")
	}

	var lastResult *bookbind.ExtractResult
	for i, tier := range c {
		result, err := tier.Extract(html)
		if err != nil {
			continue
		}
		if i > 0 {
			result.Method = bookbind.MethodFallback
		}
		if !result.Empty() {
			return result, nil
		}
		lastResult = result
	}

	if lastResult != nil {
		return lastResult, nil
	}
	return &bookbind.ExtractResult{Method: bookbind.MethodFallback}, nil
}
