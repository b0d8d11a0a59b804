package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/bookbind"
	main "github.com/fwojciec/bookbind/cmd/bookbind"
	"github.com/fwojciec/bookbind/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists books with ID, title, and URL", func(t *testing.T) {
		t.Parallel()

		books := &mock.BookService{
			FindBooksFn: func(_ context.Context, _ bookbind.BookFilter) ([]*bookbind.Book, error) {
				return []*bookbind.Book{
					{
						ID:        "book-123",
						Title:     "A Winter Tale",
						SourceURL: "https://example.com/winter-tale",
						CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
					},
					{
						ID:        "book-456",
						Title:     "Summer Serial",
						SourceURL: "https://example.com/summer",
						CreatedAt: time.Date(2025, 1, 16, 11, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Books:  books,
		}

		cmd := &main.ListCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "book-123")
		assert.Contains(t, output, "book-456")
		assert.Contains(t, output, "A Winter Tale")
		assert.Contains(t, output, "Summer Serial")
		assert.Contains(t, output, "https://example.com/winter-tale")
		assert.Contains(t, output, "https://example.com/summer")
	})

	t.Run("shows helpful message when the shelf is empty", func(t *testing.T) {
		t.Parallel()

		books := &mock.BookService{
			FindBooksFn: func(_ context.Context, _ bookbind.BookFilter) ([]*bookbind.Book, error) {
				return []*bookbind.Book{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Books:  books,
		}

		cmd := &main.ListCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No books")
	})

	t.Run("returns error when FindBooks fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")

		books := &mock.BookService{
			FindBooksFn: func(_ context.Context, _ bookbind.BookFilter) ([]*bookbind.Book, error) {
				return nil, dbErr
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Books:  books,
		}

		cmd := &main.ListCmd{}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
