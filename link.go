package bookbind

// DiscoveryRule identifies which discovery rule produced a candidate link,
// so a "why was this picked up?" question always has an answer.
type DiscoveryRule string

// Discovery rules, in evaluation order. The selector rules form the first
// tier; RuleKeywordText is the second-tier fallback that scans all anchors;
// RuleNextWalk and RuleSitemap mark candidates found outside the landing
// page heuristics.
const (
	RuleHrefChapter  DiscoveryRule = "href-chapter"
	RuleHrefChDash   DiscoveryRule = "href-ch-dash"
	RuleHrefChPath   DiscoveryRule = "href-ch-path"
	RuleChapterLink  DiscoveryRule = "chapter-link-class"
	RuleChapterClass DiscoveryRule = "chapter-class"
	RuleTOCClass     DiscoveryRule = "toc-class"
	RuleTOCLong      DiscoveryRule = "table-of-contents-class"
	RuleKeywordText  DiscoveryRule = "keyword-text"
	RuleNextWalk     DiscoveryRule = "next-walk"
	RuleSitemap      DiscoveryRule = "sitemap"
	RuleLinkFile     DiscoveryRule = "link-file"
)

// ChapterKeywords is the fixed keyword set for the second discovery tier:
// a link whose visible text contains any of these (case-insensitive) is
// treated as a chapter candidate.
var ChapterKeywords = []string{"chapter", "ch.", "part"}

// CandidateLink is one discovered chapter candidate. Immutable once
// produced. URL is absolute with any fragment stripped; within one
// discovery result no two candidates share a URL and the sequence preserves
// order of first appearance.
type CandidateLink struct {
	URL  string
	Text string
	Rule DiscoveryRule
}

// LinkDiscoverer finds candidate chapter links on a book's landing page.
type LinkDiscoverer interface {
	// DiscoverLinks parses HTML and returns candidate chapter links in
	// order of first appearance, de-duplicated by absolute URL. Malformed
	// HTML is never an error; a page with no matches yields an empty
	// slice. An unparseable baseURL returns EINVALID.
	DiscoverLinks(html string, baseURL string) ([]CandidateLink, error)
}

// NextFinder locates the "next chapter" link on a chapter page. It serves
// serials that publish no table of contents, where the book is discovered
// by walking the next-links from the first chapter.
type NextFinder interface {
	// NextLink returns the absolute URL of the page's next-chapter link,
	// or "" if the page has none (end of the walk, not an error).
	NextLink(html string, baseURL string) (string, error)
}
