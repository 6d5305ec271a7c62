// internal/output/text.go
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"vcfbench/internal/duo"
)

// FormatRowTSV returns one record's columns (no trailing newline).
func FormatRowTSV(r duo.Record) string {
	v := ToAPIRecord(r)
	alt := "."
	if len(v.Alt) > 0 {
		alt = strings.Join(v.Alt, ",")
	}
	lb := "0"
	if v.LowerBound {
		lb = "1"
	}
	return strings.Join([]string{
		v.Chrom, fmt.Sprint(v.Pos), orDot(v.ID), v.Ref, alt, v.GT,
		v.Side, v.Decision, v.Kind, orDot(v.Region), lb, orDot(v.Reason),
	}, "\t")
}

// WriteText prints an optional header and one line per record.
func WriteText(w io.Writer, list []duo.Record, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := fmt.Fprintln(bw, TSVHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		if _, err := fmt.Fprintln(bw, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// StreamText writes records as they arrive on in. On error it keeps
// draining in so senders never block.
func StreamText(w io.Writer, in <-chan duo.Record, header bool) error {
	bw := bufio.NewWriter(w)
	var err error
	if header {
		_, err = fmt.Fprintln(bw, TSVHeader)
	}
	for r := range in {
		if err != nil {
			continue
		}
		_, err = fmt.Fprintln(bw, FormatRowTSV(r))
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

// WriteSummaryText prints a short human-readable summary.
func WriteSummaryText(w io.Writer, s *duo.Summary) error {
	_, err := fmt.Fprintf(w,
		"run %s: baseline TP=%d FN=%d N=%d | query TP=%d FP=%d N=%d | precision=%.4f recall=%.4f F1=%.4f | regions=%d capped=%d failed=%d\n",
		s.RunID,
		s.Baseline.TP, s.Baseline.Miss, s.Baseline.N,
		s.Query.TP, s.Query.Miss, s.Query.N,
		s.Precision, s.Recall, s.F1,
		s.Regions, s.CappedRegions, s.FailedRegions,
	)
	return err
}

func orDot(s string) string {
	if s == "" {
		return "."
	}
	return s
}
