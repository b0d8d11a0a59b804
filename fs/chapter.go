package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/bookbind"
	"gopkg.in/yaml.v3"
)

// frontmatter is the YAML head of a chapter file. Fetched is a plain
// date string so the files stay readable and diff well.
type frontmatter struct {
	Source  string `yaml:"source"`
	Title   string `yaml:"title,omitempty"`
	Fetched string `yaml:"fetched,omitempty"`
}

// ChapterFileName returns the canonical file name for a chapter at the
// given order, zero-padded so lexical order matches reading order.
func ChapterFileName(order int) string {
	return fmt.Sprintf("chapter-%03d.md", order)
}

// FormatChapter renders a chapter as markdown with YAML frontmatter.
func FormatChapter(chapter *bookbind.Chapter) string {
	fm := frontmatter{
		Source: chapter.URL,
		Title:  chapter.Title,
	}
	if !chapter.FetchedAt.IsZero() {
		fm.Fetched = chapter.FetchedAt.Format("2006-01-02")
	}
	head, _ := yaml.Marshal(fm)

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n\n")
	b.WriteString(chapter.Content)
	return b.String()
}

// ParseChapter reads a chapter back from its file form. Files without
// frontmatter are accepted whole as content, so hand-written chapters can
// be dropped into a book directory. The closing fence is found before any
// content, so horizontal rules inside the chapter body are left alone.
func ParseChapter(data string) (*bookbind.Chapter, error) {
	rest, ok := strings.CutPrefix(data, "---\n")
	if !ok {
		return &bookbind.Chapter{
			Content: strings.TrimSpace(data),
			Include: true,
		}, nil
	}

	head, body, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return nil, bookbind.Errorf(bookbind.EINVALID, "chapter file has unterminated frontmatter")
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(head), &fm); err != nil {
		return nil, bookbind.Errorf(bookbind.EINVALID, "chapter file has invalid frontmatter: %v", err)
	}

	chapter := &bookbind.Chapter{
		URL:     fm.Source,
		Title:   fm.Title,
		Include: true,
	}
	if fm.Fetched != "" {
		if t, err := time.Parse("2006-01-02", fm.Fetched); err == nil {
			chapter.FetchedAt = t
		}
	}
	chapter.Content = strings.TrimSpace(body)
	return chapter, nil
}

// LoadChapters reads every chapter file in dir in lexical order, which for
// ChapterFileName's zero-padded names is reading order. Orders are
// reassigned densely, so a hand-pruned directory still assembles cleanly.
func LoadChapters(dir string) ([]*bookbind.Chapter, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "chapter-*.md"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, bookbind.Errorf(bookbind.ENOTFOUND, "no chapter files in %s", dir)
	}

	chapters := make([]*bookbind.Chapter, 0, len(matches))
	for i, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		chapter, err := ParseChapter(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		chapter.Order = i + 1
		chapters = append(chapters, chapter)
	}
	return chapters, nil
}

// WriteManuscript writes an assembled manuscript as one markdown document.
func WriteManuscript(path string, m *bookbind.Manuscript) error {
	return os.WriteFile(path, []byte(m.Markdown()), 0644)
}
