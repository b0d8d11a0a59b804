package mock

import (
	"io"

	"github.com/fwojciec/bookbind"
)

var _ bookbind.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of bookbind.Renderer.
type Renderer struct {
	RenderFn func(m *bookbind.Manuscript, w io.Writer) error
}

func (r *Renderer) Render(m *bookbind.Manuscript, w io.Writer) error {
	return r.RenderFn(m, w)
}
