package mock

import "github.com/fwojciec/bookbind"

var _ bookbind.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of bookbind.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*bookbind.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*bookbind.ExtractResult, error) {
	return e.ExtractFn(html)
}
