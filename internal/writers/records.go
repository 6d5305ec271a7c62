// internal/writers/records.go
package writers

import (
	"io"

	"vcfbench/internal/common"
	"vcfbench/internal/duo"
	"vcfbench/internal/output"
)

// Options control a record writer.
type Options struct {
	Format  string
	Sort    bool // buffer everything and order by chrom, pos, side
	Header  bool   // text only
	OutDir  string // vcf-split only
	BufSize int
}

// StartRecordWriter spins up a writer goroutine. Close the returned channel
// and read the error channel once. Unsorted text and JSONL stream; the other
// combinations buffer. vcf-split writes files under OutDir and nothing to out. The input is always drained, so senders never block
// on a failed writer.
func StartRecordWriter(out io.Writer, opt Options) (chan<- duo.Record, <-chan error) {
	if opt.BufSize <= 0 {
		opt.BufSize = 64
	}
	if opt.Format == output.FormatJSONL && !opt.Sort {
		return StartRecordJSONLWriter(out, opt.BufSize)
	}
	in := make(chan duo.Record, opt.BufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		if opt.Format == output.FormatText && !opt.Sort {
			err = output.StreamText(out, in, opt.Header)
		} else {
			var buf []duo.Record
			for r := range in {
				buf = append(buf, r)
			}
			if opt.Format == output.FormatVCFSplit {
				err = WriteVCFSplit(opt.OutDir, buf)
			} else {
				if opt.Sort {
					common.SortRecords(buf)
				}
				err = WriteRecords(opt.Format, out, buf, opt.Header)
			}
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
