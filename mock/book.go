package mock

import (
	"context"

	"github.com/fwojciec/bookbind"
)

var _ bookbind.BookService = (*BookService)(nil)

// BookService is a mock implementation of bookbind.BookService.
type BookService struct {
	CreateBookFn   func(ctx context.Context, book *bookbind.Book) error
	FindBookByIDFn func(ctx context.Context, id string) (*bookbind.Book, error)
	FindBooksFn    func(ctx context.Context, filter bookbind.BookFilter) ([]*bookbind.Book, error)
	DeleteBookFn   func(ctx context.Context, id string) error
}

func (s *BookService) CreateBook(ctx context.Context, book *bookbind.Book) error {
	return s.CreateBookFn(ctx, book)
}

func (s *BookService) FindBookByID(ctx context.Context, id string) (*bookbind.Book, error) {
	return s.FindBookByIDFn(ctx, id)
}

func (s *BookService) FindBooks(ctx context.Context, filter bookbind.BookFilter) ([]*bookbind.Book, error) {
	return s.FindBooksFn(ctx, filter)
}

func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	return s.DeleteBookFn(ctx, id)
}
