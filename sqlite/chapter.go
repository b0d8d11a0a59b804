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
var _ bookbind.ChapterService = (*ChapterService)(nil)

// ChapterService implements bookbind.ChapterService using SQLite.
//
// The service maintains the book's order invariant: positions stay a dense
// 1..N sequence. Deleting a chapter renumbers the survivors and swapping
// two chapters exchanges their positions, each as a single transaction.
type ChapterService struct {
	db *DB
}

// NewChapterService creates a new ChapterService.
func NewChapterService(db *DB) *ChapterService {
	return &ChapterService{db: db}
}

// CreateChapter creates a new chapter.
func (s *ChapterService) CreateChapter(ctx context.Context, chapter *bookbind.Chapter) error {
	if err := chapter.Validate(); err != nil {
		return err
	}

	chapter.ID = uuid.New().String()
	if chapter.FetchedAt.IsZero() {
		chapter.FetchedAt = time.Now().UTC()
	}
	chapter.ContentHash = hashContent(chapter.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chapters (id, book_id, position, title, url, include, content, content_hash, method, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, chapter.ID, chapter.BookID, chapter.Order, chapter.Title, chapter.URL, chapter.Include,
		chapter.Content, chapter.ContentHash, string(chapter.Method),
		chapter.FetchedAt.Format(time.RFC3339))

	return err
}

// FindChapterByID retrieves a chapter by ID.
func (s *ChapterService) FindChapterByID(ctx context.Context, id string) (*bookbind.Chapter, error) {
	var chapter bookbind.Chapter
	var method, fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, book_id, position, title, url, include, content, content_hash, method, fetched_at
		FROM chapters
		WHERE id = ?
	`, id).Scan(&chapter.ID, &chapter.BookID, &chapter.Order, &chapter.Title, &chapter.URL,
		&chapter.Include, &chapter.Content, &chapter.ContentHash, &method, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, bookbind.Errorf(bookbind.ENOTFOUND, "chapter not found")
	}
	if err != nil {
		return nil, err
	}

	chapter.Method = bookbind.ExtractionMethod(method)
	if chapter.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &chapter, nil
}

// FindChapters retrieves chapters matching the filter, sorted by position.
func (s *ChapterService) FindChapters(ctx context.Context, filter bookbind.ChapterFilter) ([]*bookbind.Chapter, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, book_id, position, title, url, include, content, content_hash, method, fetched_at FROM chapters WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.BookID != nil {
		query.WriteString(" AND book_id = ?")
		args = append(args, *filter.BookID)
	}
	if filter.Include != nil {
		query.WriteString(" AND include = ?")
		args = append(args, *filter.Include)
	}

	query.WriteString(" ORDER BY position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []*bookbind.Chapter
	for rows.Next() {
		var chapter bookbind.Chapter
		var method, fetchedAt string

		if err := rows.Scan(&chapter.ID, &chapter.BookID, &chapter.Order, &chapter.Title, &chapter.URL,
			&chapter.Include, &chapter.Content, &chapter.ContentHash, &method, &fetchedAt); err != nil {
			return nil, err
		}

		chapter.Method = bookbind.ExtractionMethod(method)
		if chapter.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		chapters = append(chapters, &chapter)
	}

	return chapters, rows.Err()
}

// UpdateChapter updates an existing chapter. Updating content refreshes
// the content hash.
func (s *ChapterService) UpdateChapter(ctx context.Context, id string, upd bookbind.ChapterUpdate) (*bookbind.Chapter, error) {
	chapter, err := s.FindChapterByID(ctx, id)
	if err != nil {
		return nil, err
	}

	chapter.Apply(upd)
	if upd.Content != nil {
		chapter.ContentHash = hashContent(chapter.Content)
	}

	if err := chapter.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE chapters
		SET title = ?, include = ?, content = ?, content_hash = ?, method = ?
		WHERE id = ?
	`, chapter.Title, chapter.Include, chapter.Content, chapter.ContentHash, string(chapter.Method), id)

	if err != nil {
		return nil, err
	}

	return chapter, nil
}

// DeleteChapter removes a chapter and renumbers the remaining chapters of
// its book to a dense 1..N sequence, as one atomic step.
func (s *ChapterService) DeleteChapter(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var bookID string
	err = tx.QueryRowContext(ctx, "SELECT book_id FROM chapters WHERE id = ?", id).Scan(&bookID)
	if err == sql.ErrNoRows {
		return bookbind.Errorf(bookbind.ENOTFOUND, "chapter not found")
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM chapters WHERE id = ?", id); err != nil {
		return err
	}

	if err := renumberChapters(ctx, tx, bookID); err != nil {
		return err
	}

	return tx.Commit()
}

// SwapChapters exchanges the positions of two chapters of a book as one
// atomic step.
func (s *ChapterService) SwapChapters(ctx context.Context, bookID string, orderA, orderB int) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	idA, err := chapterIDAt(ctx, tx, bookID, orderA)
	if err != nil {
		return err
	}
	idB, err := chapterIDAt(ctx, tx, bookID, orderB)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "UPDATE chapters SET position = ? WHERE id = ?", orderB, idA); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE chapters SET position = ? WHERE id = ?", orderA, idB); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteChaptersByBook removes all chapters for a book.
func (s *ChapterService) DeleteChaptersByBook(ctx context.Context, bookID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chapters WHERE book_id = ?", bookID)
	return err
}

// chapterIDAt resolves the chapter occupying a position within a book.
func chapterIDAt(ctx context.Context, tx *sql.Tx, bookID string, order int) (string, error) {
	var id string
	err := tx.QueryRowContext(ctx, "SELECT id FROM chapters WHERE book_id = ? AND position = ?", bookID, order).Scan(&id)
	if err == sql.ErrNoRows {
		return "", bookbind.Errorf(bookbind.ENOTFOUND, "no chapter at order %d", order)
	}
	return id, err
}

// renumberChapters rewrites a book's positions to a dense 1..N sequence,
// preserving relative order. The id list is collected before updating
// because the transaction holds a single connection.
func renumberChapters(ctx context.Context, tx *sql.Tx, bookID string) error {
	rows, err := tx.QueryContext(ctx, "SELECT id FROM chapters WHERE book_id = ? ORDER BY position ASC", bookID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, "UPDATE chapters SET position = ? WHERE id = ?", i+1, id); err != nil {
			return err
		}
	}
	return nil
}
