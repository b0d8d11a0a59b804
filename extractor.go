package bookbind

// ExtractionMethod records which tier of the extraction chain produced a
// result: the primary content-density detector, or the selector-cascade
// fallback.
type ExtractionMethod string

// Extraction methods.
const (
	MethodPrimary  ExtractionMethod = "primary"
	MethodFallback ExtractionMethod = "fallback"
)

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata, when available.
	Title string

	// ContentHTML is the main content as clean HTML. Boilerplate (nav,
	// ads, script, style, sidebars) has been removed.
	ContentHTML string

	// Method identifies the tier that produced the content.
	Method ExtractionMethod
}

// Empty reports whether the result carries no usable content.
func (r *ExtractResult) Empty() bool {
	return r == nil || r.ContentHTML == ""
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content. The
	// content HTML has boilerplate removed but preserves structure
	// (headings, paragraphs, lists, blockquotes, code, emphasis).
	Extract(html string) (*ExtractResult, error)
}
