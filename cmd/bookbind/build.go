package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fwojciec/bookbind"
	"github.com/fwojciec/bookbind/fs"
	"github.com/fwojciec/bookbind/scrape"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	book, err := findBook(deps, c.Book)
	if err != nil {
		return err
	}

	chapters, err := deps.Chapters.FindChapters(deps.Ctx, bookbind.ChapterFilter{BookID: &book.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
		return err
	}
	if len(chapters) == 0 {
		fmt.Fprintf(deps.Stderr, "error: book %q has no chapters. Re-add it with 'bookbind add --force'.\n", c.Book)
		return bookbind.Errorf(bookbind.ENOTFOUND, "book %q has no chapters", c.Book)
	}

	if err := c.fetchMissing(deps, book, chapters); err != nil {
		return err
	}

	m, err := bookbind.Assemble(book.Title, chapters)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
		fmt.Fprintf(deps.Stderr, "Hint: 'bookbind skip %s <n>' leaves a chapter out of the build\n", c.Book)
		return err
	}

	if c.Markdown != "" {
		if err := fs.WriteManuscript(c.Markdown, m); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Markdown)
	}

	output := c.Output
	if output == "" {
		output = pdfName(book.Title)
	}
	n, err := writePDF(deps, m, output)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s (%d sections, %s)\n", output, len(m.Sections), scrape.FormatBytes(n))
	return nil
}

// fetchMissing downloads content for included chapters that have none,
// so an add interrupted mid-download can be finished here. Pages that
// fail again stay empty and are reported.
func (c *BuildCmd) fetchMissing(deps *Dependencies, book *bookbind.Book, chapters []*bookbind.Chapter) error {
	var missing []*bookbind.Chapter
	for _, chapter := range chapters {
		if chapter.Include && chapter.Content == "" {
			missing = append(missing, chapter)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Fetching %d chapters with no content\n", len(missing))
	links := make([]bookbind.CandidateLink, 0, len(missing))
	for _, chapter := range missing {
		links = append(links, bookbind.CandidateLink{URL: chapter.URL, Text: chapter.Title})
	}

	progress := func(event scrape.ProgressEvent) {
		if event.Type == scrape.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}
	result, err := deps.Scraper.DownloadChapters(deps.Ctx, book.ID, links, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error downloading: %v\n", err)
		return err
	}

	// Download results keep input order, so result.Chapters[i] is the
	// page for missing[i].
	for i, downloaded := range result.Chapters {
		if downloaded.Content == "" {
			continue
		}
		upd := bookbind.ChapterUpdate{
			Content: &downloaded.Content,
			Method:  &downloaded.Method,
		}
		if _, err := deps.Chapters.UpdateChapter(deps.Ctx, missing[i].ID, upd); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
			return err
		}
		missing[i].Content = downloaded.Content
		missing[i].Method = downloaded.Method
	}
	return nil
}

// pdfName derives an output file name from a book title, so "A Winter
// Tale" becomes "a-winter-tale.pdf".
func pdfName(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "book"
	}
	return name + ".pdf"
}
