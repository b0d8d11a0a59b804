package bookbind

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. The input should be
	// clean HTML (e.g., from an Extractor). The result has runs of three
	// or more blank lines collapsed to one and is trimmed of leading and
	// trailing whitespace.
	Convert(html string) (string, error)
}
