package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/bookbind"
	"github.com/fwojciec/bookbind/fs"
	"github.com/fwojciec/bookbind/scrape"
)

// Run executes the combine command.
func (c *CombineCmd) Run(deps *Dependencies) error {
	chapters, err := fs.LoadChapters(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
		return err
	}

	title := c.Title
	if title == "" {
		title = titleFromDir(c.Dir)
	}

	m, err := bookbind.Assemble(title, chapters)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
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
		output = "book.pdf"
	}
	n, err := writePDF(deps, m, output)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s (%d sections, %s)\n", output, len(m.Sections), scrape.FormatBytes(n))
	return nil
}

// titleFromDir derives a default book title from the chapter directory's
// name, so "winter-tale/" becomes "Winter Tale".
func titleFromDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "Book"
	}
	return bookbind.TitleFromURL(filepath.Base(abs), 1)
}
