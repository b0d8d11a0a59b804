package main

import (
	"fmt"

	"github.com/fwojciec/bookbind"
	"github.com/fwojciec/bookbind/scrape"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	// Preview mode: show links without creating the book
	if c.Preview {
		links, err := discoverLinks(deps, c.URL, c.Sitemap, c.Walk, c.MaxPages, c.Filter, c.Exclude)
		if err != nil {
			return err
		}
		for _, link := range links {
			fmt.Fprintln(deps.Stdout, link.URL)
		}
		return nil
	}

	// Force mode: delete an existing book with the same title first
	if c.Force {
		existing, err := deps.Books.FindBooks(deps.Ctx, bookbind.BookFilter{Title: &c.Title})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
			return err
		}
		if len(existing) > 0 {
			if err := deps.Books.DeleteBook(deps.Ctx, existing[0].ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
				return err
			}
		}
	}

	book := &bookbind.Book{
		Title:     c.Title,
		SourceURL: c.URL,
	}
	if err := deps.Books.CreateBook(deps.Ctx, book); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Added book %q (%s)\n", c.Title, book.ID)

	links, err := discoverLinks(deps, c.URL, c.Sitemap, c.Walk, c.MaxPages, c.Filter, c.Exclude)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no chapter links found at %s. Try --sitemap or --walk.\n", c.URL)
		return bookbind.Errorf(bookbind.ENOTFOUND, "no chapter links found at %s", c.URL)
	}
	fmt.Fprintf(deps.Stdout, "  Found %d chapters\n", len(links))

	// Apply user-specified concurrency
	if c.Concurrency > 0 {
		deps.Scraper.Concurrency = c.Concurrency
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

	// Failed pages keep their chapter row with empty content, so they
	// stay visible to 'bookbind chapters' and can be dropped or retried.
	words := 0
	for _, chapter := range result.Chapters {
		if err := deps.Chapters.CreateChapter(deps.Ctx, chapter); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
			return err
		}
		words += scrape.CountWords(chapter.Content)
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d chapters (%s, %s)\n",
		result.Extracted, scrape.FormatBytes(result.Bytes), scrape.FormatWords(words))
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d chapters have no content; 'bookbind build' will retry them\n", result.Failed)
	}
	return nil
}
