package main

import (
	"fmt"

	"github.com/fwojciec/bookbind"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return bookbind.Errorf(bookbind.EINVALID, "use --force to confirm deletion")
	}

	book, err := findBook(deps, c.Book)
	if err != nil {
		return err
	}

	if err := deps.Books.DeleteBook(deps.Ctx, book.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted book %q and its chapters\n", book.Title)
	return nil
}
