package main

import (
	"fmt"

	"github.com/fwojciec/bookbind"
)

// Run executes the move command.
func (c *MoveCmd) Run(deps *Dependencies) error {
	book, err := findBook(deps, c.Book)
	if err != nil {
		return err
	}

	if err := deps.Chapters.SwapChapters(deps.Ctx, book.ID, c.From, c.To); err != nil {
		if bookbind.ErrorCode(err) == bookbind.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s. Use 'bookbind chapters' to see positions.\n", bookbind.ErrorMessage(err))
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Swapped chapters %d and %d of %q\n", c.From, c.To, book.Title)
	return nil
}
