package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/bookbind"
)

// ChapterStore writes chapter files to a staging directory and promotes
// them to the final directory in one rename, so an interrupted download
// never leaves a half-written book behind.
type ChapterStore struct {
	baseDir string
	name    string
}

// NewChapterStore returns a store that stages under baseDir/name.tmp and
// commits to baseDir/name.
func NewChapterStore(baseDir, name string) *ChapterStore {
	return &ChapterStore{baseDir: baseDir, name: name}
}

func (s *ChapterStore) tempDir() string  { return filepath.Join(s.baseDir, s.name+".tmp") }
func (s *ChapterStore) finalDir() string { return filepath.Join(s.baseDir, s.name) }

// Dir returns the directory chapter files live in after a commit.
func (s *ChapterStore) Dir() string {
	return s.finalDir()
}

// Save stages a chapter under the staging directory, named by the
// chapter's order.
func (s *ChapterStore) Save(chapter *bookbind.Chapter) error {
	if chapter.Order < 1 {
		return bookbind.Errorf(bookbind.EINVALID, "chapter order must be positive")
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	path := filepath.Join(s.tempDir(), ChapterFileName(chapter.Order))
	return os.WriteFile(path, []byte(FormatChapter(chapter)), 0644)
}

// Commit atomically replaces the final directory with the staged one.
func (s *ChapterStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort removes the staging directory, leaving any prior commit intact.
func (s *ChapterStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
