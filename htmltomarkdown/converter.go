// Package htmltomarkdown converts extracted chapter HTML to Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/bookbind"
)

// Ensure Converter implements bookbind.Converter at compile time.
var _ bookbind.Converter = (*Converter)(nil)

// blankRuns matches three or more newlines (with interleaved whitespace).
// Greedy matching consumes a whole run at once, which keeps the collapse
// idempotent.
var blankRuns = regexp.MustCompile(`\n\s*\n\s*\n`)

// Converter wraps html-to-markdown to convert HTML to Markdown, normalizing
// the result for stable chapter files: runs of blank lines collapse to one
// and the output carries no leading or trailing whitespace.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into normalized Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", bookbind.Errorf(bookbind.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return Normalize(result), nil
}

// Normalize collapses runs of blank lines to a single blank line and trims
// surrounding whitespace. Applying it twice yields the same result as once.
func Normalize(markdown string) string {
	return strings.TrimSpace(blankRuns.ReplaceAllString(markdown, "\n\n"))
}
