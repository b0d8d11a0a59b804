package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/bookbind"
	main "github.com/fwojciec/bookbind/cmd/bookbind"
	"github.com/fwojciec/bookbind/mock"
	"github.com/fwojciec/bookbind/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints discovered links to stdout", func(t *testing.T) {
		t.Parallel()

		scraper := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					assert.Equal(t, "https://example.com/winter-tale", url)
					return "<html><body>landing</body></html>", nil
				},
			},
			Discoverer: &mock.LinkDiscoverer{
				DiscoverLinksFn: func(_ string, _ string) ([]bookbind.CandidateLink, error) {
					return []bookbind.CandidateLink{
						{URL: "https://example.com/chapter-1", Rule: bookbind.RuleHrefChapter},
						{URL: "https://example.com/chapter-2", Rule: bookbind.RuleHrefChapter},
					}, nil
				},
			},
			RetryDelays: []time.Duration{0},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Scraper: scraper,
		}

		cmd := &main.DiscoverCmd{URL: "https://example.com/winter-tale"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/chapter-1\nhttps://example.com/chapter-2\n", stdout.String())
	})

	t.Run("writes links to a file with -o", func(t *testing.T) {
		t.Parallel()

		scraper := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html><body>landing</body></html>", nil
				},
			},
			Discoverer: &mock.LinkDiscoverer{
				DiscoverLinksFn: func(_ string, _ string) ([]bookbind.CandidateLink, error) {
					return []bookbind.CandidateLink{
						{URL: "https://example.com/chapter-1", Rule: bookbind.RuleHrefChapter},
					}, nil
				},
			},
			RetryDelays: []time.Duration{0},
		}

		output := filepath.Join(t.TempDir(), "links.txt")
		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Scraper: scraper,
		}

		cmd := &main.DiscoverCmd{URL: "https://example.com/winter-tale", Output: output}

		err := cmd.Run(deps)

		require.NoError(t, err)
		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/chapter-1\n", string(data))
		assert.Contains(t, stdout.String(), "Saved 1 links to "+output)
	})

	t.Run("no candidates is an error with mode hints", func(t *testing.T) {
		t.Parallel()

		scraper := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html><body>nothing here</body></html>", nil
				},
			},
			Discoverer: &mock.LinkDiscoverer{
				DiscoverLinksFn: func(_ string, _ string) ([]bookbind.CandidateLink, error) {
					return nil, nil
				},
			},
			RetryDelays: []time.Duration{0},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Scraper: scraper,
		}

		cmd := &main.DiscoverCmd{URL: "https://example.com/winter-tale"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, bookbind.ENOTFOUND, bookbind.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--sitemap")
		assert.Contains(t, stderr.String(), "--walk")
	})

	t.Run("sitemap mode goes through the sitemap service", func(t *testing.T) {
		t.Parallel()

		var gotFilter *bookbind.URLFilter
		scraper := &scrape.Scraper{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(_ context.Context, baseURL string, filter *bookbind.URLFilter) ([]string, error) {
					assert.Equal(t, "https://example.com/winter-tale", baseURL)
					gotFilter = filter
					return []string{"https://example.com/chapter-1"}, nil
				},
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Scraper: scraper,
		}

		cmd := &main.DiscoverCmd{
			URL:     "https://example.com/winter-tale",
			Sitemap: true,
			Filter:  []string{"/chapter-"},
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, gotFilter)
		assert.Len(t, gotFilter.Include, 1)
		assert.Contains(t, stdout.String(), "https://example.com/chapter-1")
	})

	t.Run("walk mode follows next links", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"https://example.com/chapter-1": `<a rel="next" href="/chapter-2">Next</a>`,
			"https://example.com/chapter-2": `no next here`,
		}
		scraper := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return pages[url], nil
				},
			},
			Next: &mock.NextFinder{
				NextLinkFn: func(html string, _ string) (string, error) {
					if html == pages["https://example.com/chapter-1"] {
						return "https://example.com/chapter-2", nil
					}
					return "", nil
				},
			},
			RetryDelays: []time.Duration{0},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Scraper: scraper,
		}

		cmd := &main.DiscoverCmd{URL: "https://example.com/chapter-1", Walk: true, MaxPages: 10}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/chapter-1\nhttps://example.com/chapter-2\n", stdout.String())
	})
}
