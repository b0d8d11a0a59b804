package main_test

import (
	"bytes"
	"context"
	"io"
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

func TestBuildCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("renders the included chapters to a PDF", func(t *testing.T) {
		t.Parallel()

		books := &mock.BookService{
			FindBooksFn: func(_ context.Context, _ bookbind.BookFilter) ([]*bookbind.Book, error) {
				return []*bookbind.Book{{ID: "book-123", Title: "A Winter Tale"}}, nil
			},
		}
		chapters := &mock.ChapterService{
			FindChaptersFn: func(_ context.Context, _ bookbind.ChapterFilter) ([]*bookbind.Chapter, error) {
				return []*bookbind.Chapter{
					{ID: "ch-1", Order: 1, Title: "Prologue", Include: true, Content: "First."},
					{ID: "ch-2", Order: 2, Title: "Interlude", Include: false, Content: "Left out."},
					{ID: "ch-3", Order: 3, Title: "Epilogue", Include: true, Content: "Last."},
				}, nil
			},
		}

		var rendered *bookbind.Manuscript
		renderer := &mock.Renderer{
			RenderFn: func(m *bookbind.Manuscript, w io.Writer) error {
				rendered = m
				_, err := w.Write([]byte("%PDF-fake"))
				return err
			},
		}

		output := filepath.Join(t.TempDir(), "out.pdf")
		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Books:    books,
			Chapters: chapters,
			Renderer: renderer,
		}

		cmd := &main.BuildCmd{Book: "A Winter Tale", Output: output}

		err := cmd.Run(deps)

		require.NoError(t, err)

		require.NotNil(t, rendered)
		assert.Equal(t, "A Winter Tale", rendered.Title)
		require.Len(t, rendered.Sections, 2, "the skipped chapter is left out")
		assert.Equal(t, "Prologue", rendered.Sections[0].Title)
		assert.Equal(t, "Epilogue", rendered.Sections[1].Title)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-fake", string(data))

		assert.Contains(t, stdout.String(), "Wrote "+output)
		assert.Contains(t, stdout.String(), "2 sections")
	})

	t.Run("fetches chapters that have no content before assembling", func(t *testing.T) {
		t.Parallel()

		books := &mock.BookService{
			FindBooksFn: func(_ context.Context, _ bookbind.BookFilter) ([]*bookbind.Book, error) {
				return []*bookbind.Book{{ID: "book-123", Title: "A Winter Tale"}}, nil
			},
		}

		var updatedID string
		var update bookbind.ChapterUpdate
		chapters := &mock.ChapterService{
			FindChaptersFn: func(_ context.Context, _ bookbind.ChapterFilter) ([]*bookbind.Chapter, error) {
				return []*bookbind.Chapter{
					{ID: "ch-1", Order: 1, Title: "Prologue", Include: true, Content: "First."},
					{ID: "ch-2", Order: 2, Title: "Interlude", URL: "https://example.com/interlude", Include: true},
				}, nil
			},
			UpdateChapterFn: func(_ context.Context, id string, upd bookbind.ChapterUpdate) (*bookbind.Chapter, error) {
				updatedID = id
				update = upd
				return &bookbind.Chapter{ID: id}, nil
			},
		}

		scraper := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html><body>page</body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*bookbind.ExtractResult, error) {
					return &bookbind.ExtractResult{ContentHTML: "<p>Fetched.</p>", Method: bookbind.MethodPrimary}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(_ string) (string, error) { return "Fetched.", nil },
			},
			RetryDelays: []time.Duration{0},
		}

		renderer := &mock.Renderer{
			RenderFn: func(m *bookbind.Manuscript, w io.Writer) error {
				_, err := w.Write([]byte("%PDF-fake"))
				return err
			},
		}

		output := filepath.Join(t.TempDir(), "out.pdf")
		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Books:    books,
			Chapters: chapters,
			Scraper:  scraper,
			Renderer: renderer,
		}

		cmd := &main.BuildCmd{Book: "A Winter Tale", Output: output}

		err := cmd.Run(deps)

		require.NoError(t, err)

		assert.Equal(t, "ch-2", updatedID)
		require.NotNil(t, update.Content)
		assert.Equal(t, "Fetched.", *update.Content)

		assert.Contains(t, stdout.String(), "Fetching 1 chapters with no content")
		assert.Contains(t, stdout.String(), "2 sections")
	})

	t.Run("assembly failure suggests skipping the chapter", func(t *testing.T) {
		t.Parallel()

		books := &mock.BookService{
			FindBooksFn: func(_ context.Context, _ bookbind.BookFilter) ([]*bookbind.Book, error) {
				return []*bookbind.Book{{ID: "book-123", Title: "A Winter Tale"}}, nil
			},
		}
		chapters := &mock.ChapterService{
			FindChaptersFn: func(_ context.Context, _ bookbind.ChapterFilter) ([]*bookbind.Chapter, error) {
				return []*bookbind.Chapter{
					{ID: "ch-1", Order: 1, Title: "Prologue", URL: "https://example.com/gone", Include: true},
				}, nil
			},
		}

		scraper := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", bookbind.Errorf(bookbind.EUNAVAILABLE, "connection refused")
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*bookbind.ExtractResult, error) {
					return &bookbind.ExtractResult{}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(_ string) (string, error) { return "", nil },
			},
			RetryDelays: []time.Duration{0},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Books:    books,
			Chapters: chapters,
			Scraper:  scraper,
		}

		cmd := &main.BuildCmd{Book: "A Winter Tale", Output: filepath.Join(t.TempDir(), "out.pdf")}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, bookbind.EINVALID, bookbind.ErrorCode(err))
		assert.Contains(t, stderr.String(), "has no content")
		assert.Contains(t, stderr.String(), "bookbind skip")
	})
}
