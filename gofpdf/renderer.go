// Package gofpdf renders assembled manuscripts to PDF with a fixed book
// layout: serif body text, justified paragraphs with a first-line indent,
// centered headings, and a page break at every section boundary.
package gofpdf

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fwojciec/bookbind"
	"github.com/jung-kurt/gofpdf"
)

// Ensure Renderer implements bookbind.Renderer at compile time.
var _ bookbind.Renderer = (*Renderer)(nil)

// Layout constants: millimeters for page geometry, points for font sizes.
// The layout is fixed; callers cannot tune it per book.
const (
	marginSide  = 20.0
	marginTop   = 20.0
	marginBreak = 25.0
	bodySize    = 11.0
	bodyLine    = 5.5
	paraIndent  = 6.0
	quoteIndent = 8.0
	codeSize    = 9.5
	codeLine    = 4.5
	titleSize   = 26.0
	footerSize  = 9.0
)

var (
	// hrRe matches a markdown thematic break, rendered as a page break.
	hrRe = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})\s*$`)

	// linkRe matches [text](url); the fixed layout keeps only the text.
	linkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

	// emRe matches paired single-asterisk emphasis after strong markers
	// are gone.
	emRe = regexp.MustCompile(`\*([^*]+)\*`)

	// escapeRe matches a backslash-escaped markdown punctuation character.
	escapeRe = regexp.MustCompile("\\\\([\\\\`*_{}\\[\\]()#+\\-.!>~|])")

	// listRe matches a bulleted or numbered list item marker.
	listRe = regexp.MustCompile(`^(\d+[.)]|[-*+])\s+`)
)

// Renderer writes a Manuscript as a paginated PDF. Each section starts on
// a fresh page under a centered heading; a thematic break inside a section
// also forces a new page, so a scene break in the source becomes a page
// turn in the book.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the manuscript to w as a complete PDF document: a title
// page followed by one bookmarked chapter per section. Returns EINVALID
// when the manuscript has no sections.
func (r *Renderer) Render(m *bookbind.Manuscript, w io.Writer) error {
	if len(m.Sections) == 0 {
		return bookbind.Errorf(bookbind.EINVALID, "manuscript has no sections")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(m.Title), false)
	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.SetAutoPageBreak(true, marginBreak)
	pdf.SetFooterFunc(func() {
		if pdf.PageNo() == 1 {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont("Times", "", footerSize)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	r.titlePage(pdf, tr(m.Title))
	for _, s := range m.Sections {
		r.section(pdf, tr, s)
	}
	return pdf.Output(w)
}

func (r *Renderer) titlePage(pdf *gofpdf.Fpdf, title string) {
	pdf.AddPage()
	_, pageH := pdf.GetPageSize()
	pdf.SetY(pageH / 3)
	pdf.SetFont("Times", "B", titleSize)
	pdf.MultiCell(0, 12, title, "", "C", false)
}

func (r *Renderer) section(pdf *gofpdf.Fpdf, tr func(string) string, s bookbind.Section) {
	pdf.AddPage()
	pdf.Bookmark(tr(s.Title), 0, -1)
	r.heading(pdf, tr(s.Title), 1)

	// The first paragraph after any heading or page break is set flush;
	// every later paragraph gets the first-line indent.
	afterHeading := true
	inCode := false

	scanner := bufio.NewScanner(strings.NewReader(s.Content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			pdf.Ln(2)
			continue
		}
		if inCode {
			r.codeLine(pdf, tr(line))
			continue
		}
		if trimmed == "" {
			continue
		}
		if hrRe.MatchString(trimmed) {
			pdf.AddPage()
			afterHeading = true
			continue
		}
		if level, text := headingText(trimmed); level > 0 {
			if text != "" {
				r.heading(pdf, tr(flattenInline(text)), level)
			}
			afterHeading = true
			continue
		}
		if strings.HasPrefix(trimmed, ">") {
			quoted := strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))
			r.quote(pdf, tr(flattenInline(quoted)))
			afterHeading = false
			continue
		}
		if listRe.MatchString(trimmed) {
			r.listItem(pdf, tr, trimmed)
			afterHeading = false
			continue
		}
		r.paragraph(pdf, tr(flattenInline(trimmed)), !afterHeading)
		afterHeading = false
	}
}

func (r *Renderer) heading(pdf *gofpdf.Fpdf, text string, level int) {
	size := headingSize(level)
	if level > 1 {
		pdf.Ln(4)
	}
	pdf.SetFont("Times", "B", size)
	pdf.MultiCell(0, size*0.5, text, "", "C", false)
	pdf.Ln(3)
	pdf.SetFont("Times", "", bodySize)
}

// paragraph renders justified body text. With indent set, the first line is
// written separately at a narrower width so the rest can rewrap justified
// across the full measure.
func (r *Renderer) paragraph(pdf *gofpdf.Fpdf, text string, indent bool) {
	pdf.SetFont("Times", "", bodySize)
	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	usable := pageW - left - right

	if !indent {
		pdf.MultiCell(usable, bodyLine, text, "", "J", false)
		return
	}

	lines := pdf.SplitText(text, usable-paraIndent)
	if len(lines) == 0 {
		return
	}
	pdf.SetX(left + paraIndent)
	pdf.CellFormat(usable-paraIndent, bodyLine, lines[0], "", 1, "L", false, 0, "")
	if len(lines) > 1 {
		pdf.MultiCell(usable, bodyLine, strings.Join(lines[1:], " "), "", "J", false)
	}
}

func (r *Renderer) quote(pdf *gofpdf.Fpdf, text string) {
	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	pdf.SetFont("Times", "I", bodySize)
	pdf.Ln(1.5)
	pdf.SetX(left + quoteIndent)
	pdf.MultiCell(pageW-left-right-2*quoteIndent, bodyLine, text, "", "J", false)
	pdf.Ln(1.5)
	pdf.SetFont("Times", "", bodySize)
}

func (r *Renderer) listItem(pdf *gofpdf.Fpdf, tr func(string) string, line string) {
	marker := listRe.FindString(line)
	text := strings.TrimSpace(line[len(marker):])
	bullet := strings.TrimSpace(marker)
	if bullet == "-" || bullet == "*" || bullet == "+" {
		bullet = "•"
	}

	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	pdf.SetFont("Times", "", bodySize)
	pdf.SetX(left + paraIndent)
	pdf.MultiCell(pageW-left-right-paraIndent, bodyLine, tr(bullet+" "+flattenInline(text)), "", "L", false)
}

func (r *Renderer) codeLine(pdf *gofpdf.Fpdf, line string) {
	pdf.SetFont("Courier", "", codeSize)
	pdf.MultiCell(0, codeLine, line, "", "L", false)
	pdf.SetFont("Times", "", bodySize)
}

func headingSize(level int) float64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 13.5
	default:
		return 12
	}
}

// headingText reports the ATX heading level of a line, or 0 when the line
// is not a heading. Closing hash runs are trimmed.
func headingText(line string) (int, string) {
	i := 0
	for i < len(line) && line[i] == '#' {
		i++
	}
	if i == 0 || i > 6 {
		return 0, ""
	}
	text := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(line[i:]), "#"))
	return i, text
}

// flattenInline reduces inline markdown to plain text for the fixed layout:
// links keep their text, emphasis markers and backticks are dropped, and
// escaped punctuation is unescaped.
func flattenInline(s string) string {
	s = linkRe.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "**", "")
	s = emRe.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "`", "")
	s = escapeRe.ReplaceAllString(s, "$1")
	return s
}
