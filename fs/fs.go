// Package fs persists chapters and link lists as plain files, for the
// file-first workflow where a book is scraped, curated by hand, and
// combined without a database.
package fs

import (
	"os"
	"strings"

	"github.com/fwojciec/bookbind"
)

// SaveLinks writes candidate URLs to path, one per line, in discovery
// order. The file is the curation surface of the file-first workflow:
// delete or reorder lines by hand, then feed it back through LoadLinks.
func SaveLinks(path string, links []bookbind.CandidateLink) error {
	var b strings.Builder
	for _, link := range links {
		b.WriteString(link.URL)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// LoadLinks reads a URL list written by SaveLinks. Blank lines and lines
// starting with # are skipped, so a hand-edited list can carry notes.
func LoadLinks(path string) ([]bookbind.CandidateLink, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var links []bookbind.CandidateLink
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		links = append(links, bookbind.CandidateLink{
			URL:  line,
			Rule: bookbind.RuleLinkFile,
		})
	}
	return links, nil
}
