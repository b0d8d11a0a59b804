package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/bookbind"
	main "github.com/fwojciec/bookbind/cmd/bookprobe"
	"github.com/fwojciec/bookbind/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_Report(t *testing.T) {
	t.Parallel()

	newProbe := func(links []bookbind.CandidateLink, next string, result *bookbind.ExtractResult) *main.Probe {
		return &main.Probe{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html><body>twenty bytes or so</body></html>", nil
				},
			},
			Discoverer: &mock.LinkDiscoverer{
				DiscoverLinksFn: func(_ string, _ string) ([]bookbind.CandidateLink, error) {
					return links, nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*bookbind.ExtractResult, error) {
					return result, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) { return html, nil },
			},
			Next: &mock.NextFinder{
				NextLinkFn: func(_ string, _ string) (string, error) {
					return next, nil
				},
			},
		}
	}

	t.Run("reports every stage for a chapter page", func(t *testing.T) {
		t.Parallel()

		probe := newProbe(
			[]bookbind.CandidateLink{
				{URL: "https://example.com/chapter-1", Text: "Chapter 1", Rule: bookbind.RuleHrefChapter},
				{URL: "https://example.com/chapter-2", Text: "Chapter 2", Rule: bookbind.RuleHrefChapter},
			},
			"https://example.com/chapter-2",
			&bookbind.ExtractResult{
				Title:       "Chapter One",
				ContentHTML: "It was a dark and stormy night.",
				Method:      bookbind.MethodPrimary,
			},
		)

		var buf bytes.Buffer
		err := probe.Report(context.Background(), "https://example.com/chapter-1", false, &buf)

		require.NoError(t, err)
		output := buf.String()

		assert.Contains(t, output, "fetched https://example.com/chapter-1")
		assert.Contains(t, output, "discovery: 2 candidates via href-chapter")
		assert.Contains(t, output, `https://example.com/chapter-1  "Chapter 1"`)
		assert.Contains(t, output, "next: https://example.com/chapter-2")
		assert.Contains(t, output, "extraction: primary")
		assert.Contains(t, output, "title: Chapter One")
		assert.Contains(t, output, "7 words")

		// Content not requested
		assert.NotContains(t, output, "stormy night")
	})

	t.Run("prints the markdown when content is requested", func(t *testing.T) {
		t.Parallel()

		probe := newProbe(nil, "", &bookbind.ExtractResult{
			ContentHTML: "It was a dark and stormy night.",
			Method:      bookbind.MethodFallback,
		})

		var buf bytes.Buffer
		err := probe.Report(context.Background(), "https://example.com/chapter-1", true, &buf)

		require.NoError(t, err)
		output := buf.String()

		assert.Contains(t, output, "discovery: no chapter candidates")
		assert.Contains(t, output, "extraction: fallback")
		assert.Contains(t, output, "stormy night")
	})

	t.Run("an empty extraction is reported, not an error", func(t *testing.T) {
		t.Parallel()

		probe := newProbe(nil, "", &bookbind.ExtractResult{Method: bookbind.MethodFallback})

		var buf bytes.Buffer
		err := probe.Report(context.Background(), "https://example.com/empty", false, &buf)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "extraction: no content")
	})

	t.Run("a long candidate list is truncated", func(t *testing.T) {
		t.Parallel()

		links := make([]bookbind.CandidateLink, 25)
		for i := range links {
			links[i] = bookbind.CandidateLink{
				URL:  "https://example.com/chapter-" + string(rune('a'+i)),
				Rule: bookbind.RuleKeywordText,
			}
		}

		probe := newProbe(links, "", &bookbind.ExtractResult{Method: bookbind.MethodFallback})

		var buf bytes.Buffer
		err := probe.Report(context.Background(), "https://example.com/toc", false, &buf)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "discovery: 25 candidates via keyword-text")
		assert.Contains(t, buf.String(), "(15 more)")
	})

	t.Run("fetch failure is returned to the caller", func(t *testing.T) {
		t.Parallel()

		probe := &main.Probe{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", bookbind.Errorf(bookbind.EUNAVAILABLE, "connection refused")
				},
			},
		}

		var buf bytes.Buffer
		err := probe.Report(context.Background(), "https://example.com/gone", false, &buf)

		require.Error(t, err)
		assert.Equal(t, bookbind.EUNAVAILABLE, bookbind.ErrorCode(err))
		assert.Empty(t, buf.String())
	})
}
