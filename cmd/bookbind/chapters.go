package main

import (
	"fmt"

	"github.com/fwojciec/bookbind"
	"github.com/fwojciec/bookbind/scrape"
)

// Run executes the chapters command.
func (c *ChaptersCmd) Run(deps *Dependencies) error {
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

	if c.Full {
		for _, chapter := range chapters {
			fmt.Fprintf(deps.Stdout, "# %s\n\n%s\n\n", chapter.Title, chapter.Content)
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Chapters of %s (%d total):\n\n", book.Title, len(chapters))
	for _, chapter := range chapters {
		mark := " "
		if !chapter.Include {
			mark = "-"
		}
		detail := "no content"
		if chapter.Content != "" {
			detail = scrape.FormatWords(scrape.CountWords(chapter.Content))
		}
		fmt.Fprintf(deps.Stdout, " %s %3d. %s (%s)\n      %s\n", mark, chapter.Order, chapter.Title, detail, chapter.URL)
	}

	return nil
}
