// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"vcfbench/internal/duo"
	"vcfbench/internal/output"
)

// RecordWriters maps a format to its buffered writer. Streaming paths in
// StartRecordWriter bypass it.
var RecordWriters = map[string]func(w io.Writer, recs []duo.Record, header bool) error{}

// RegisterRecord adds or replaces a format (last wins).
func RegisterRecord(format string, fn func(io.Writer, []duo.Record, bool) error) {
	RecordWriters[format] = fn
}

func init() {
	RegisterRecord(output.FormatText, output.WriteText)
	RegisterRecord(output.FormatJSON, func(w io.Writer, recs []duo.Record, _ bool) error {
		return output.WriteJSON(w, recs)
	})
	RegisterRecord(output.FormatJSONL, writeJSONL)
}

// WriteRecords dispatches to the registered writer for format.
func WriteRecords(format string, w io.Writer, recs []duo.Record, header bool) error {
	fn, ok := RecordWriters[format]
	if !ok {
		return fmt.Errorf("unknown record format %q (no writer registered)", format)
	}
	return fn(w, recs, header)
}
