// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"vcfbench/internal/duo"
	"vcfbench/internal/jsonlutil"
	"vcfbench/internal/output"
)

// StartRecordJSONLWriter streams each record as one JSON line (v1).
func StartRecordJSONLWriter(out io.Writer, bufSize int) (chan<- duo.Record, <-chan error) {
	return jsonlutil.Start[duo.Record](out, bufSize,
		func(enc *json.Encoder, r duo.Record) error {
			return enc.Encode(output.ToAPIRecord(r))
		},
		IsBrokenPipe,
	)
}

func writeJSONL(w io.Writer, recs []duo.Record, _ bool) error {
	in, done := StartRecordJSONLWriter(w, len(recs)+1)
	for _, r := range recs {
		in <- r
	}
	close(in)
	return <-done
}
