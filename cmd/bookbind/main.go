package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bookbind"
	"github.com/fwojciec/bookbind/gofpdf"
	"github.com/fwojciec/bookbind/goquery"
	"github.com/fwojciec/bookbind/htmltomarkdown"
	bookhttp "github.com/fwojciec/bookbind/http"
	"github.com/fwojciec/bookbind/readability"
	"github.com/fwojciec/bookbind/scrape"
	bookslog "github.com/fwojciec/bookbind/slog"
	"github.com/fwojciec/bookbind/sqlite"
	"github.com/fwojciec/bookbind/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	BookService    bookbind.BookService
	ChapterService bookbind.ChapterService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bookbind"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bookbind --help' to see available commands")
	}

	first := args[0]
	if first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command, _, _ := strings.Cut(kongCtx.Command(), " ")

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Open the shelf database only for commands that curate it; the
	// file-mode commands never touch it.
	if needsShelf(command) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set BOOKBIND_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.BookService = sqlite.NewBookService(m.DB)
		m.ChapterService = sqlite.NewChapterService(m.DB)
		deps.DB = m.DB
		deps.Books = m.BookService
		deps.Chapters = m.ChapterService
	}

	// Wire the scraping pipeline for commands that fetch pages
	if needsScraper(command) {
		fetcher := bookhttp.NewFetcher()
		defer fetcher.Close()

		var f bookbind.Fetcher = fetcher
		var discoverer bookbind.LinkDiscoverer = goquery.NewDiscoverer()
		var sitemaps bookbind.SitemapService = bookhttp.NewSitemapService(fetcher)
		if cli.Verbose {
			f = bookslog.NewLoggingFetcher(f, logger)
			discoverer = bookslog.NewLoggingDiscoverer(discoverer, logger)
			sitemaps = bookslog.NewLoggingSitemapService(sitemaps, logger)
		}
		deps.Sitemaps = sitemaps

		strategy := "auto"
		if command == "download" {
			strategy = cli.Download.Extractor
		}

		deps.Scraper = &scrape.Scraper{
			Fetcher:     f,
			Discoverer:  discoverer,
			Extractor:   extractionChain(strategy),
			Converter:   htmltomarkdown.NewConverter(),
			Sitemaps:    sitemaps,
			Next:        goquery.NewFinder(),
			RateLimiter: scrape.NewDomainLimiter(1.0),
			Concurrency: 1,
		}
	}

	if needsRenderer(command) {
		var renderer bookbind.Renderer = gofpdf.NewRenderer()
		if cli.Verbose {
			renderer = bookslog.NewLoggingRenderer(renderer, logger)
		}
		deps.Renderer = renderer
	}

	return kongCtx.Run(deps)
}

// needsShelf reports whether the command works against the shelf database.
func needsShelf(command string) bool {
	switch command {
	case "add", "list", "chapters", "move", "drop", "skip", "keep", "build", "delete":
		return true
	}
	return false
}

// needsScraper reports whether the command fetches pages.
func needsScraper(command string) bool {
	switch command {
	case "discover", "download", "add", "build":
		return true
	}
	return false
}

// needsRenderer reports whether the command produces a PDF.
func needsRenderer(command string) bool {
	return command == "combine" || command == "build"
}

// extractionChain builds the extraction tiers for the chosen strategy.
// Every strategy falls back to the selector cascade except "fallback",
// which is that cascade alone.
func extractionChain(strategy string) scrape.Chain {
	switch strategy {
	case "readability":
		return scrape.NewChain(readability.NewExtractor(), goquery.NewExtractor())
	case "fallback":
		return scrape.NewChain(goquery.NewExtractor())
	default: // auto, trafilatura
		return scrape.NewChain(trafilatura.NewExtractor(), goquery.NewExtractor())
	}
}

func defaultDBPath() string {
	if path := os.Getenv("BOOKBIND_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "bookbind.db"
	}
	dir := filepath.Join(home, ".bookbind")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "bookbind.db")
}
