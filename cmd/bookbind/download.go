package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/bookbind"
	"github.com/fwojciec/bookbind/fs"
	"github.com/fwojciec/bookbind/scrape"
)

// Run executes the download command.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	links, err := fs.LoadLinks(c.Links)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if len(links) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no links in %s\n", c.Links)
		return bookbind.Errorf(bookbind.EINVALID, "no links in %s", c.Links)
	}

	// Apply user-specified concurrency
	if c.Concurrency > 0 {
		deps.Scraper.Concurrency = c.Concurrency
	}

	dir := filepath.Clean(c.Dir)
	store := fs.NewChapterStore(filepath.Dir(dir), filepath.Base(dir))

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Downloading %d chapters\n", event.Total)
		case scrape.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, scrape.TruncateURL(event.URL, 60))
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Scraper.DownloadChapters(deps.Ctx, "", links, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error downloading: %v\n", err)
		return err
	}

	if result.Extracted == 0 {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: none of the %d chapters could be downloaded\n", len(links))
		return bookbind.Errorf(bookbind.EUNAVAILABLE, "none of the %d chapters could be downloaded", len(links))
	}

	for _, chapter := range result.Chapters {
		if chapter.Content == "" {
			continue
		}
		if err := store.Save(chapter); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
	}
	if err := store.Commit(); err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d chapters to %s (%s)\n",
		result.Extracted, store.Dir(), scrape.FormatBytes(result.Bytes))
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stderr, "warning: %d chapters failed; their URLs are missing from %s\n", result.Failed, store.Dir())
	}
	return nil
}
