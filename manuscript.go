package bookbind

import (
	"io"
	"strings"
)

// PageBreakSeparator is the markdown page-break marker placed between
// consecutive sections of an assembled manuscript (never after the last).
// Renderers translate a horizontal rule into a hard page break.
const PageBreakSeparator = "\n\n---\n\n"

// Section is one titled part of an assembled manuscript.
type Section struct {
	// Number is the section's position, renumbered densely 1..N at
	// assembly time regardless of gaps in the source chapter orders.
	Number int

	// Title is the chapter title, rendered as the section heading.
	Title string

	// Content is the chapter's extracted markdown.
	Content string
}

// Manuscript is the assembled book: the include=true chapters in curated
// order, ready for rendering. It is derived, never mutated in place; any
// change to the chapter set regenerates it wholesale.
type Manuscript struct {
	Title    string
	Sections []Section
}

// Markdown returns the whole manuscript as a single markdown document.
// Each section becomes a titled part; sections are joined by exactly one
// page-break separator each, so N sections produce N-1 separators and the
// document never ends with one.
func (m *Manuscript) Markdown() string {
	parts := make([]string, 0, len(m.Sections))
	for _, s := range m.Sections {
		var b strings.Builder
		b.WriteString("# ")
		b.WriteString(s.Title)
		b.WriteString("\n\n")
		b.WriteString(s.Content)
		parts = append(parts, strings.TrimSpace(b.String()))
	}
	return strings.Join(parts, PageBreakSeparator)
}

// Assemble builds a manuscript from the include=true subset of chapters,
// sorted ascending by order and renumbered densely. It returns EINVALID if
// no chapter is included or an included chapter has no content to bind
// (the reportable assembly preconditions); it never partially assembles.
func Assemble(title string, chapters []*Chapter) (*Manuscript, error) {
	var included []*Chapter
	for _, c := range chapters {
		if c.Include {
			included = append(included, c)
		}
	}
	if len(included) == 0 {
		return nil, Errorf(EINVALID, "no chapters to assemble")
	}

	// Chapter orders are only guaranteed dense at assembly time; sorting
	// plus renumbering here is what provides that guarantee.
	Renormalize(included)

	m := &Manuscript{Title: title}
	for _, c := range included {
		if strings.TrimSpace(c.Content) == "" {
			return nil, Errorf(EINVALID, "chapter %d (%s) has no content", c.Order, c.URL)
		}
		sectionTitle := c.Title
		if sectionTitle == "" {
			sectionTitle = TitleFromURL(c.URL, c.Order)
		}
		m.Sections = append(m.Sections, Section{
			Number:  c.Order,
			Title:   sectionTitle,
			Content: strings.TrimSpace(c.Content),
		})
	}
	return m, nil
}

// Renderer converts an assembled manuscript into a distributable document.
type Renderer interface {
	// Render writes the manuscript to w in the renderer's output format,
	// applying the fixed typographic style. A page break separates
	// consecutive sections.
	Render(m *Manuscript, w io.Writer) error
}
