package mock

import (
	"context"

	"github.com/fwojciec/bookbind"
)

var _ bookbind.ChapterService = (*ChapterService)(nil)

// ChapterService is a mock implementation of bookbind.ChapterService.
type ChapterService struct {
	CreateChapterFn        func(ctx context.Context, chapter *bookbind.Chapter) error
	FindChapterByIDFn      func(ctx context.Context, id string) (*bookbind.Chapter, error)
	FindChaptersFn         func(ctx context.Context, filter bookbind.ChapterFilter) ([]*bookbind.Chapter, error)
	UpdateChapterFn        func(ctx context.Context, id string, upd bookbind.ChapterUpdate) (*bookbind.Chapter, error)
	DeleteChapterFn        func(ctx context.Context, id string) error
	SwapChaptersFn         func(ctx context.Context, bookID string, orderA, orderB int) error
	DeleteChaptersByBookFn func(ctx context.Context, bookID string) error
}

func (s *ChapterService) CreateChapter(ctx context.Context, chapter *bookbind.Chapter) error {
	return s.CreateChapterFn(ctx, chapter)
}

func (s *ChapterService) FindChapterByID(ctx context.Context, id string) (*bookbind.Chapter, error) {
	return s.FindChapterByIDFn(ctx, id)
}

func (s *ChapterService) FindChapters(ctx context.Context, filter bookbind.ChapterFilter) ([]*bookbind.Chapter, error) {
	return s.FindChaptersFn(ctx, filter)
}

func (s *ChapterService) UpdateChapter(ctx context.Context, id string, upd bookbind.ChapterUpdate) (*bookbind.Chapter, error) {
	return s.UpdateChapterFn(ctx, id, upd)
}

func (s *ChapterService) DeleteChapter(ctx context.Context, id string) error {
	return s.DeleteChapterFn(ctx, id)
}

func (s *ChapterService) SwapChapters(ctx context.Context, bookID string, orderA, orderB int) error {
	return s.SwapChaptersFn(ctx, bookID, orderA, orderB)
}

func (s *ChapterService) DeleteChaptersByBook(ctx context.Context, bookID string) error {
	return s.DeleteChaptersByBookFn(ctx, bookID)
}
