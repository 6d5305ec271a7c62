package appcore

import (
	"io"

	"vcfbench/internal/duo"
	"vcfbench/internal/output"
	"vcfbench/internal/writers"
)

// ---------------- Record writer ----------------

type RecordWriterFactory struct {
	Format string
	Sort   bool
	Header bool
	OutDir string
}

func NewRecordWriterFactory(format string, sort, header bool) RecordWriterFactory {
	return RecordWriterFactory{Format: format, Sort: sort, Header: header}
}

// Streams reports whether records reach out before the run ends.
func (w RecordWriterFactory) Streams() bool {
	return !w.Sort && (w.Format == output.FormatText || w.Format == output.FormatJSONL)
}

func (w RecordWriterFactory) Start(out io.Writer, bufSize int) (chan<- duo.Record, <-chan error) {
	return writers.StartRecordWriter(out, writers.Options{
		Format:  w.Format,
		Sort:    w.Sort,
		Header:  w.Header,
		OutDir:  w.OutDir,
		BufSize: bufSize,
	})
}
