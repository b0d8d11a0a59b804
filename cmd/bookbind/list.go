package main

import (
	"fmt"

	"github.com/fwojciec/bookbind"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	books, err := deps.Books.FindBooks(deps.Ctx, bookbind.BookFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
		return err
	}

	if len(books) == 0 {
		fmt.Fprintln(deps.Stdout, "No books on the shelf. Use 'bookbind add' to add one.")
		return nil
	}

	for _, b := range books {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", b.ID, b.Title, b.SourceURL)
	}

	return nil
}
