package bookbind

import "strings"

// Heading is a markdown heading found in extracted chapter content.
type Heading struct {
	Level int
	Title string
}

// ExtractHeadings scans markdown and returns its ATX headings in document
// order. Lines inside fenced code blocks are ignored, as are setext
// underlines. Trailing closing hashes are stripped from titles.
func ExtractHeadings(markdown string) []Heading {
	var headings []Heading
	inFence := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence || !strings.HasPrefix(trimmed, "#") {
			continue
		}
		level := 0
		for level < len(trimmed) && trimmed[level] == '#' {
			level++
		}
		if level > 6 || level == len(trimmed) || trimmed[level] != ' ' {
			continue
		}
		title := strings.TrimSpace(trimmed[level:])
		title = strings.TrimRight(title, "#")
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		headings = append(headings, Heading{Level: level, Title: title})
	}
	return headings
}
