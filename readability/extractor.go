// Package readability implements an alternative primary extraction tier
// using the go-readability port of the Readability algorithm.
package readability

import (
	"strings"

	"github.com/fwojciec/bookbind"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements bookbind.Extractor at compile time.
var _ bookbind.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML. It is
// interchangeable with the trafilatura extractor as the chain's primary
// tier; some chapter layouts score better under one algorithm than the
// other.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*bookbind.ExtractResult, error) {
	if rawHTML == "" {
		return nil, bookbind.Errorf(bookbind.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &bookbind.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Method:      bookbind.MethodPrimary,
	}, nil
}
