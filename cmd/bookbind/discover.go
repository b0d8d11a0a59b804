package main

import (
	"fmt"

	"github.com/fwojciec/bookbind"
	"github.com/fwojciec/bookbind/fs"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	links, err := discoverLinks(deps, c.URL, c.Sitemap, c.Walk, c.MaxPages, c.Filter, c.Exclude)
	if err != nil {
		return err
	}

	if len(links) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no chapter links found at %s. Try --sitemap or --walk.\n", c.URL)
		return bookbind.Errorf(bookbind.ENOTFOUND, "no chapter links found at %s", c.URL)
	}

	if c.Output == "" {
		for _, link := range links {
			fmt.Fprintln(deps.Stdout, link.URL)
		}
		return nil
	}

	if err := fs.SaveLinks(c.Output, links); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Saved %d links to %s\n", len(links), c.Output)
	return nil
}
