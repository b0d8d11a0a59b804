package mock

import "github.com/fwojciec/bookbind"

var _ bookbind.Converter = (*Converter)(nil)

// Converter is a mock implementation of bookbind.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
