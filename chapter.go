package bookbind

import (
	"context"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Chapter is the unit the curation layer manipulates. Order is a dense 1..N
// permutation key within a book: no gaps, no duplicates. It must be
// renormalized after any deletion or reorder; Include gates whether the
// chapter participates in assembly.
//
// Lifecycle: created by link discovery (Order = discovery rank, Include =
// true, Content empty), Content populated by content extraction, mutated by
// the curation layer, consumed by assembly.
type Chapter struct {
	ID          string           `json:"id"`
	BookID      string           `json:"bookId"`
	Order       int              `json:"order"`
	Title       string           `json:"title"`
	URL         string           `json:"url"`
	Include     bool             `json:"include"`
	Content     string           `json:"content"` // Markdown
	ContentHash string           `json:"contentHash"`
	Method      ExtractionMethod `json:"method"`
	FetchedAt   time.Time        `json:"fetchedAt"`
}

// Validate returns an error if the chapter contains invalid fields.
func (c *Chapter) Validate() error {
	if c.BookID == "" {
		return Errorf(EINVALID, "chapter book ID required")
	}
	if c.URL == "" {
		return Errorf(EINVALID, "chapter URL required")
	}
	if c.Order < 1 {
		return Errorf(EINVALID, "chapter order must be positive")
	}
	return nil
}

// ChapterService represents a service for managing a book's chapters.
type ChapterService interface {
	// CreateChapter creates a new chapter.
	CreateChapter(ctx context.Context, chapter *Chapter) error

	// FindChapterByID retrieves a chapter by ID.
	// Returns ENOTFOUND if the chapter does not exist.
	FindChapterByID(ctx context.Context, id string) (*Chapter, error)

	// FindChapters retrieves chapters matching the filter, sorted by order.
	FindChapters(ctx context.Context, filter ChapterFilter) ([]*Chapter, error)

	// UpdateChapter updates an existing chapter.
	// Returns ENOTFOUND if the chapter does not exist.
	UpdateChapter(ctx context.Context, id string, upd ChapterUpdate) (*Chapter, error)

	// DeleteChapter removes a chapter and renormalizes the remaining orders
	// of its book to a dense 1..N sequence, as one atomic step.
	// Returns ENOTFOUND if the chapter does not exist.
	DeleteChapter(ctx context.Context, id string) error

	// SwapChapters exchanges the orders of two chapters of a book as one
	// atomic step. Returns ENOTFOUND if either order is not present.
	SwapChapters(ctx context.Context, bookID string, orderA, orderB int) error

	// DeleteChaptersByBook removes all chapters for a book.
	DeleteChaptersByBook(ctx context.Context, bookID string) error
}

// ChapterFilter represents a filter for FindChapters.
type ChapterFilter struct {
	ID      *string `json:"id"`
	BookID  *string `json:"bookId"`
	Include *bool   `json:"include"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ChapterUpdate represents fields that can be updated on a chapter.
type ChapterUpdate struct {
	Title   *string           `json:"title"`
	Include *bool             `json:"include"`
	Content *string           `json:"content"`
	Method  *ExtractionMethod `json:"method"`
}

// Apply copies the update's non-nil fields onto the chapter.
func (c *Chapter) Apply(upd ChapterUpdate) {
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Include != nil {
		c.Include = *upd.Include
	}
	if upd.Content != nil {
		c.Content = *upd.Content
	}
	if upd.Method != nil {
		c.Method = *upd.Method
	}
}

// Renormalize sorts chapters by order and reassigns orders to a dense 1..N
// sequence, preserving the relative sequence of the input. It is the one
// atomic step the curation layer applies after a delete or reorder; gaps and
// duplicates in the input are tolerated (ties keep their input order).
func Renormalize(chapters []*Chapter) {
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Order < chapters[j].Order
	})
	for i, c := range chapters {
		c.Order = i + 1
	}
}

// TitleFromURL derives a human-readable chapter title from the URL's final
// path segment. Falls back to "Chapter n" when the segment is missing or too
// short to be a plausible title.
func TitleFromURL(rawURL string, n int) string {
	fallback := "Chapter " + strconv.Itoa(n)

	u, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}

	seg := path.Base(strings.TrimSuffix(u.Path, "/"))
	if i := strings.LastIndex(seg, "."); i > 0 {
		seg = seg[:i]
	}
	seg = strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	seg = strings.TrimSpace(seg)
	if len(seg) < 3 || seg == "/" {
		return fallback
	}

	return titleCase(seg)
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
