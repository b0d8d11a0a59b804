// Package trafilatura implements the primary content extraction tier using
// the go-trafilatura content-density detector.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/bookbind"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements bookbind.Extractor at compile time.
var _ bookbind.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML. It is
// the primary tier of the extraction chain: strong on article-shaped pages,
// but allowed to fail or come back empty, in which case the caller moves on
// to the selector-cascade fallback.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content, with the page
// title from document metadata when trafilatura finds one.
func (e *Extractor) Extract(rawHTML string) (*bookbind.ExtractResult, error) {
	if rawHTML == "" {
		return nil, bookbind.Errorf(bookbind.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &bookbind.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Method:      bookbind.MethodPrimary,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
