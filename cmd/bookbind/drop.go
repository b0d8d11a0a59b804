package main

import (
	"fmt"

	"github.com/fwojciec/bookbind"
)

// Run executes the drop command.
func (c *DropCmd) Run(deps *Dependencies) error {
	book, err := findBook(deps, c.Book)
	if err != nil {
		return err
	}

	chapter, err := chapterAt(deps, book.ID, c.Order)
	if err != nil {
		return err
	}

	if err := deps.Chapters.DeleteChapter(deps.Ctx, chapter.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Dropped chapter %d (%s); later chapters moved up\n", c.Order, chapter.Title)
	return nil
}
