package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bookbind"
	"github.com/fwojciec/bookbind/goquery"
	"github.com/fwojciec/bookbind/htmltomarkdown"
	bookhttp "github.com/fwojciec/bookbind/http"
	"github.com/fwojciec/bookbind/readability"
	"github.com/fwojciec/bookbind/scrape"
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
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL       string        `arg:"" required:"" help:"Page URL to probe"`
	Extractor string        `default:"auto" enum:"auto,trafilatura,readability,fallback" help:"Extraction strategy"`
	Content   bool          `help:"Print the extracted markdown"`
	Timeout   time.Duration `short:"t" default:"10s" help:"Fetch timeout"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bookprobe"),
		kong.Description("Report how the bookbind pipeline sees a page: discovery, next link, extraction"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no URL provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	fetcher := bookhttp.NewFetcher(bookhttp.WithTimeout(cli.Timeout))
	defer fetcher.Close()

	probe := &Probe{
		Fetcher:    fetcher,
		Discoverer: goquery.NewDiscoverer(),
		Extractor:  extractionChain(cli.Extractor),
		Converter:  htmltomarkdown.NewConverter(),
		Next:       goquery.NewFinder(),
	}

	return probe.Report(ctx, cli.URL, cli.Content, stdout)
}

// extractionChain builds the extraction tiers for the chosen strategy,
// matching the bookbind command's wiring.
func extractionChain(strategy string) bookbind.Extractor {
	switch strategy {
	case "readability":
		return scrape.NewChain(readability.NewExtractor(), goquery.NewExtractor())
	case "fallback":
		return scrape.NewChain(goquery.NewExtractor())
	default: // auto, trafilatura
		return scrape.NewChain(trafilatura.NewExtractor(), goquery.NewExtractor())
	}
}
