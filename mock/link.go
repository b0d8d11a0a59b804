package mock

import "github.com/fwojciec/bookbind"

var _ bookbind.LinkDiscoverer = (*LinkDiscoverer)(nil)

// LinkDiscoverer is a mock implementation of bookbind.LinkDiscoverer.
type LinkDiscoverer struct {
	DiscoverLinksFn func(html string, baseURL string) ([]bookbind.CandidateLink, error)
}

func (d *LinkDiscoverer) DiscoverLinks(html string, baseURL string) ([]bookbind.CandidateLink, error) {
	return d.DiscoverLinksFn(html, baseURL)
}

var _ bookbind.NextFinder = (*NextFinder)(nil)

// NextFinder is a mock implementation of bookbind.NextFinder.
type NextFinder struct {
	NextLinkFn func(html string, baseURL string) (string, error)
}

func (f *NextFinder) NextLink(html string, baseURL string) (string, error) {
	return f.NextLinkFn(html, baseURL)
}
