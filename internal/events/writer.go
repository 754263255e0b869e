package events

import (
	"encoding/csv"
	"io"
)

// Writer serializes Events to header-less CSV, one record per line,
// matching spec.md §6's output format. Each write is flushed immediately
// so output appears as operations are processed rather than buffering
// silently until the stream closes.
type Writer struct {
	csv *csv.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

func (w *Writer) Write(ev Event) error {
	if err := w.csv.Write(ev.Record()); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}
