package slog

import (
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/bookbind"
)

// Ensure LoggingRenderer implements bookbind.Renderer.
var _ bookbind.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging.
type LoggingRenderer struct {
	next   bookbind.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next bookbind.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the output size.
func (r *LoggingRenderer) Render(m *bookbind.Manuscript, w io.Writer) (err error) {
	cw := &countingWriter{w: w}
	defer func(begin time.Time) {
		r.logger.Info("render",
			"title", m.Title,
			"sections", len(m.Sections),
			"bytes", cw.n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(m, cw)
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
