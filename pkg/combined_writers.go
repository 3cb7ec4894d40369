package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans writes out to all writers, e.g. stdout and the rotated log file.
// A failing writer does not stop the others.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer(nil), writers...),
	}
}

func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		n += written
	}
	return n, err
}
