package mock

import (
	"context"

	"github.com/fwojciec/bookbind"
)

var _ bookbind.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of bookbind.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *bookbind.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *bookbind.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
