package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/fwojciec/bookbind"
	"github.com/fwojciec/bookbind/scrape"
	"github.com/fwojciec/bookbind/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Books    bookbind.BookService
	Chapters bookbind.ChapterService
	Sitemaps bookbind.SitemapService
	Scraper  *scrape.Scraper
	Renderer bookbind.Renderer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log pipeline activity to stderr"`

	Discover DiscoverCmd `cmd:"" help:"Discover chapter links from a book's landing page"`
	Download DownloadCmd `cmd:"" help:"Download chapters from a link file to markdown files"`
	Combine  CombineCmd  `cmd:"" help:"Combine downloaded chapter files into a PDF"`
	Add      AddCmd      `cmd:"" help:"Add a book to the shelf and download its chapters"`
	List     ListCmd     `cmd:"" help:"List books on the shelf"`
	Chapters ChaptersCmd `cmd:"" help:"List a book's chapters"`
	Move     MoveCmd     `cmd:"" help:"Swap the positions of two chapters"`
	Drop     DropCmd     `cmd:"" help:"Delete a chapter and close the gap"`
	Skip     SkipCmd     `cmd:"" help:"Leave a chapter out of the built book"`
	Keep     KeepCmd     `cmd:"" help:"Bring a skipped chapter back into the built book"`
	Build    BuildCmd    `cmd:"" help:"Build a shelf book into a PDF"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a book and its chapters"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL      string   `arg:"" help:"Book landing page URL"`
	Output   string   `short:"o" help:"Write links to a file instead of stdout"`
	Sitemap  bool     `help:"Discover from the site's sitemap instead of the landing page"`
	Walk     bool     `help:"Follow next-chapter links starting from URL"`
	MaxPages int      `default:"500" help:"Page cap for --walk"`
	Filter   []string `short:"F" name:"filter" help:"Keep only sitemap URLs matching regex (repeatable)"`
	Exclude  []string `short:"X" name:"exclude" help:"Drop sitemap URLs matching regex (repeatable)"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	Links       string `arg:"" help:"Link file produced by discover"`
	Dir         string `short:"d" default:"chapters" help:"Directory to write chapter files to"`
	Extractor   string `default:"auto" enum:"auto,trafilatura,readability,fallback" help:"Extraction strategy"`
	Concurrency int    `short:"c" default:"1" help:"Concurrent fetch limit"`
}

// CombineCmd is the "combine" subcommand.
type CombineCmd struct {
	Dir      string `arg:"" help:"Directory of chapter files written by download"`
	Output   string `arg:"" optional:"" help:"Output PDF path (default book.pdf)"`
	Title    string `short:"t" help:"Book title (defaults to the directory name)"`
	Markdown string `help:"Also write the combined markdown to a file"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Title       string   `arg:"" help:"Book title"`
	URL         string   `arg:"" help:"Book landing page URL"`
	Preview     bool     `short:"p" help:"Show discovered links without creating the book"`
	Force       bool     `short:"f" help:"Delete an existing book with the same title first"`
	Sitemap     bool     `help:"Discover from the site's sitemap instead of the landing page"`
	Walk        bool     `help:"Follow next-chapter links starting from URL"`
	MaxPages    int      `default:"500" help:"Page cap for --walk"`
	Filter      []string `short:"F" name:"filter" help:"Keep only sitemap URLs matching regex (repeatable)"`
	Exclude     []string `short:"X" name:"exclude" help:"Drop sitemap URLs matching regex (repeatable)"`
	Concurrency int      `short:"c" default:"1" help:"Concurrent fetch limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ChaptersCmd is the "chapters" subcommand.
type ChaptersCmd struct {
	Book string `arg:"" help:"Book title"`
	Full bool   `help:"Show full chapter content"`
}

// MoveCmd is the "move" subcommand.
type MoveCmd struct {
	Book string `arg:"" help:"Book title"`
	From int    `arg:"" help:"Chapter position"`
	To   int    `arg:"" help:"Position to swap with"`
}

// DropCmd is the "drop" subcommand.
type DropCmd struct {
	Book  string `arg:"" help:"Book title"`
	Order int    `arg:"" help:"Chapter position"`
}

// SkipCmd is the "skip" subcommand.
type SkipCmd struct {
	Book  string `arg:"" help:"Book title"`
	Order int    `arg:"" help:"Chapter position"`
}

// KeepCmd is the "keep" subcommand.
type KeepCmd struct {
	Book  string `arg:"" help:"Book title"`
	Order int    `arg:"" help:"Chapter position"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Book     string `arg:"" help:"Book title"`
	Output   string `arg:"" optional:"" help:"Output PDF path (defaults to the book title)"`
	Markdown string `help:"Also write the combined markdown to a file"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Book  string `arg:"" help:"Book title"`
	Force bool   `help:"Confirm deletion"`
}

// findBook resolves a shelf book by title, reporting failures to stderr.
// Titles are not unique; the oldest match wins.
func findBook(deps *Dependencies, title string) (*bookbind.Book, error) {
	books, err := deps.Books.FindBooks(deps.Ctx, bookbind.BookFilter{Title: &title})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
		return nil, err
	}
	if len(books) == 0 {
		fmt.Fprintf(deps.Stderr, "error: book %q not found. Use 'bookbind list' to see the shelf.\n", title)
		return nil, bookbind.Errorf(bookbind.ENOTFOUND, "book %q not found", title)
	}
	return books[0], nil
}

// chapterAt resolves the chapter occupying a position within a book,
// reporting failures to stderr.
func chapterAt(deps *Dependencies, bookID string, order int) (*bookbind.Chapter, error) {
	chapters, err := deps.Chapters.FindChapters(deps.Ctx, bookbind.ChapterFilter{BookID: &bookID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
		return nil, err
	}
	for _, chapter := range chapters {
		if chapter.Order == order {
			return chapter, nil
		}
	}
	fmt.Fprintf(deps.Stderr, "error: no chapter at position %d. Use 'bookbind chapters' to see positions.\n", order)
	return nil, bookbind.Errorf(bookbind.ENOTFOUND, "no chapter at position %d", order)
}

// compileFilter compiles include and exclude patterns into a URL filter.
// Returns nil when no patterns are given.
func compileFilter(include, exclude []string) (*bookbind.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	filter := &bookbind.URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, bookbind.Errorf(bookbind.EINVALID, "invalid filter pattern %q: %v", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, bookbind.Errorf(bookbind.EINVALID, "invalid exclude pattern %q: %v", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}

// discoverLinks runs the selected discovery mode against a landing URL
// and reports failures to stderr. A walk that fails partway keeps the
// pages it collected.
func discoverLinks(deps *Dependencies, url string, sitemap, walk bool, maxPages int, include, exclude []string) ([]bookbind.CandidateLink, error) {
	if sitemap {
		filter, err := compileFilter(include, exclude)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
			return nil, err
		}
		links, err := deps.Scraper.DiscoverFromSitemap(deps.Ctx, url, filter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
			return nil, err
		}
		return links, nil
	}

	if walk {
		links, err := deps.Scraper.WalkChapters(deps.Ctx, url, maxPages)
		if err != nil {
			if len(links) == 0 {
				fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
				return nil, err
			}
			fmt.Fprintf(deps.Stderr, "warning: walk stopped after %d pages: %v\n", len(links), err)
		}
		return links, nil
	}

	links, err := deps.Scraper.DiscoverChapters(deps.Ctx, url)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
		return nil, err
	}
	return links, nil
}

// writePDF renders the manuscript and writes it to path, returning the
// number of bytes written. Rendering to memory first keeps a render
// failure from leaving a truncated file behind.
func writePDF(deps *Dependencies, m *bookbind.Manuscript, path string) (int, error) {
	var buf bytes.Buffer
	if err := deps.Renderer.Render(m, &buf); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookbind.ErrorMessage(err))
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return 0, err
	}
	return buf.Len(), nil
}
