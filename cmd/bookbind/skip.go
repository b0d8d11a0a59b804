package main

import (
	"fmt"

	"github.com/fwojciec/bookbind"
)

// Run executes the skip command.
func (c *SkipCmd) Run(deps *Dependencies) error {
	return setInclude(deps, c.Book, c.Order, false)
}

// Run executes the keep command.
func (c *KeepCmd) Run(deps *Dependencies) error {
	return setInclude(deps, c.Book, c.Order, true)
}

// setInclude flips whether the chapter at the given position is bound
// into the built book. The chapter keeps its position either way.
func setInclude(deps *Dependencies, bookTitle string, order int, include bool) error {
	book, err := findBook(deps, bookTitle)
	if err != nil {
		return err
	}

	chapter, err := chapterAt(deps, book.ID, order)
	if err != nil {
		return err
	}

	if _, err := deps.Chapters.UpdateChapter(deps.Ctx, chapter.ID, bookbind.ChapterUpdate{Include: &include}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
		return err
	}

	if include {
		fmt.Fprintf(deps.Stdout, "Chapter %d (%s) is back in the build\n", order, chapter.Title)
	} else {
		fmt.Fprintf(deps.Stdout, "Chapter %d (%s) will be skipped\n", order, chapter.Title)
	}
	return nil
}
