package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/bookbind"
	main "github.com/fwojciec/bookbind/cmd/bookbind"
	"github.com/fwojciec/bookbind/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes the chapter at the position", func(t *testing.T) {
		t.Parallel()

		var deletedID string

		books := &mock.BookService{
			FindBooksFn: func(_ context.Context, _ bookbind.BookFilter) ([]*bookbind.Book, error) {
				return []*bookbind.Book{{ID: "book-123", Title: "A Winter Tale"}}, nil
			},
		}
		chapters := &mock.ChapterService{
			FindChaptersFn: func(_ context.Context, _ bookbind.ChapterFilter) ([]*bookbind.Chapter, error) {
				return []*bookbind.Chapter{
					{ID: "ch-1", Order: 1, Title: "Prologue"},
					{ID: "ch-2", Order: 2, Title: "Interlude"},
				}, nil
			},
			DeleteChapterFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Books:    books,
			Chapters: chapters,
		}

		cmd := &main.DropCmd{Book: "A Winter Tale", Order: 2}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "ch-2", deletedID)
		assert.Contains(t, stdout.String(), "Dropped chapter 2 (Interlude)")
		assert.Contains(t, stdout.String(), "moved up")
	})

	t.Run("missing position shows hint to list chapters", func(t *testing.T) {
		t.Parallel()

		books := &mock.BookService{
			FindBooksFn: func(_ context.Context, _ bookbind.BookFilter) ([]*bookbind.Book, error) {
				return []*bookbind.Book{{ID: "book-123", Title: "A Winter Tale"}}, nil
			},
		}
		chapters := &mock.ChapterService{
			FindChaptersFn: func(_ context.Context, _ bookbind.ChapterFilter) ([]*bookbind.Chapter, error) {
				return []*bookbind.Chapter{{ID: "ch-1", Order: 1, Title: "Prologue"}}, nil
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Books:    books,
			Chapters: chapters,
		}

		cmd := &main.DropCmd{Book: "A Winter Tale", Order: 7}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, bookbind.ENOTFOUND, bookbind.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no chapter at position 7")
	})
}
