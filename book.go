package bookbind

import (
	"context"
	"time"
)

// Book represents a web-published book registered on the shelf. Its chapters
// are discovered from SourceURL and curated independently of it.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	SourceURL string    `json:"sourceUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the book contains invalid fields.
func (b *Book) Validate() error {
	if b.Title == "" {
		return Errorf(EINVALID, "book title required")
	}
	if b.SourceURL == "" {
		return Errorf(EINVALID, "book source URL required")
	}
	return nil
}

// BookService represents a service for managing books on the shelf.
type BookService interface {
	// CreateBook creates a new book.
	CreateBook(ctx context.Context, book *Book) error

	// FindBookByID retrieves a book by ID.
	// Returns ENOTFOUND if the book does not exist.
	FindBookByID(ctx context.Context, id string) (*Book, error)

	// FindBooks retrieves books matching the filter.
	FindBooks(ctx context.Context, filter BookFilter) ([]*Book, error)

	// DeleteBook permanently removes a book and all associated chapters.
	// Returns ENOTFOUND if the book does not exist.
	DeleteBook(ctx context.Context, id string) error
}

// BookFilter represents a filter for FindBooks.
type BookFilter struct {
	ID    *string `json:"id"`
	Title *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
