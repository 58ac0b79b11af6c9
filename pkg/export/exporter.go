package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/Sternrassler/hackathon-export/pkg/project"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var rowsWritten = promauto.NewCounter(prometheus.CounterOpts{
	Name: "hackathon_export_rows_written_total",
	Help: "Total number of project rows written to the CSV sink",
})

// WriteError reports a failure of the output sink.
type WriteError struct {
	Op  string // "create", "header", "row", "flush", "close"
	Err error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Op, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Exporter appends project rows to a single CSV sink.
// It is not safe for concurrent use; the run owns it exclusively.
type Exporter struct {
	w             *csv.Writer
	closer        io.Closer
	headerWritten bool
	rows          int
	logger        zerolog.Logger
}

// New creates an exporter writing to w.
// If w is an io.Closer, Close closes it.
func New(w io.Writer) *Exporter {
	e := &Exporter{
		w:      csv.NewWriter(w),
		logger: log.With().Str("component", "export").Logger(),
	}
	if c, ok := w.(io.Closer); ok {
		e.closer = c
	}
	return e
}

// Create opens path for writing, truncating any previous export.
func Create(path string) (*Exporter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &WriteError{Op: "create", Err: err}
	}

	e := New(f)
	e.logger = e.logger.With().Str("path", path).Logger()
	return e, nil
}

// Export appends one row per project, in order.
// The header is written before the first row.
func (e *Exporter) Export(projects []project.Project) error {
	if err := e.writeHeader(); err != nil {
		return err
	}

	for _, p := range projects {
		if err := e.w.Write(Flatten(p)); err != nil {
			return &WriteError{Op: "row", Err: fmt.Errorf("project %q: %w", p.Slug, err)}
		}
		e.rows++
		rowsWritten.Inc()
	}

	e.logger.Debug().
		Int("rows", len(projects)).
		Int("total_rows", e.rows).
		Msg("Rows exported")

	return nil
}

// Flush writes any buffered rows to the sink. An export with no rows
// still produces the header.
func (e *Exporter) Flush() error {
	if err := e.writeHeader(); err != nil {
		return err
	}

	e.w.Flush()
	if err := e.w.Error(); err != nil {
		return &WriteError{Op: "flush", Err: err}
	}

	e.logger.Debug().Int("rows", e.rows).Msg("Sink flushed")
	return nil
}

// Close closes the underlying sink without flushing. Rows still buffered
// are lost; callers flush first on success.
func (e *Exporter) Close() error {
	if e.closer == nil {
		return nil
	}
	if err := e.closer.Close(); err != nil {
		return &WriteError{Op: "close", Err: err}
	}
	return nil
}

// Rows returns the number of rows accepted so far.
func (e *Exporter) Rows() int {
	return e.rows
}

func (e *Exporter) writeHeader() error {
	if e.headerWritten {
		return nil
	}
	if err := e.w.Write(Header); err != nil {
		return &WriteError{Op: "header", Err: err}
	}
	e.headerWritten = true
	return nil
}
