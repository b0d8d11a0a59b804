package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/bookbind"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ bookbind.BookService = (*BookService)(nil)

// BookService implements bookbind.BookService using SQLite.
type BookService struct {
	db *DB
}

// NewBookService creates a new BookService.
func NewBookService(db *DB) *BookService {
	return &BookService{db: db}
}

// CreateBook creates a new book.
func (s *BookService) CreateBook(ctx context.Context, book *bookbind.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}

	book.ID = uuid.New().String()
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, title, source_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, book.ID, book.Title, book.SourceURL,
		book.CreatedAt.Format(time.RFC3339), book.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindBookByID retrieves a book by ID.
func (s *BookService) FindBookByID(ctx context.Context, id string) (*bookbind.Book, error) {
	var book bookbind.Book
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, source_url, created_at, updated_at
		FROM books
		WHERE id = ?
	`, id).Scan(&book.ID, &book.Title, &book.SourceURL, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, bookbind.Errorf(bookbind.ENOTFOUND, "book not found")
	}
	if err != nil {
		return nil, err
	}

	if book.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if book.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &book, nil
}

// FindBooks retrieves books matching the filter.
func (s *BookService) FindBooks(ctx context.Context, filter bookbind.BookFilter) ([]*bookbind.Book, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, source_url, created_at, updated_at FROM books WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Title != nil {
		query.WriteString(" AND title = ?")
		args = append(args, *filter.Title)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*bookbind.Book
	for rows.Next() {
		var book bookbind.Book
		var createdAt, updatedAt string

		if err := rows.Scan(&book.ID, &book.Title, &book.SourceURL, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		if book.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if book.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		books = append(books, &book)
	}

	return books, rows.Err()
}

// DeleteBook permanently removes a book. Its chapters go with it through
// the foreign key cascade.
func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return bookbind.Errorf(bookbind.ENOTFOUND, "book not found")
	}

	return nil
}
