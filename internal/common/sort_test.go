package common

import (
	"testing"

	"vcfbench/internal/duo"
	"vcfbench/internal/replay"
	"vcfbench/internal/variant"
)

func r(chrom string, pos int, side replay.Side) duo.Record {
	return duo.Record{Side: side, Variant: variant.Variant{Chrom: chrom, Pos: pos}}
}

func TestSortRecords(t *testing.T) {
	rs := []duo.Record{
		r("chr2", 1, replay.Baseline),
		r("chr1", 9, replay.Query),
		r("chr1", 9, replay.Baseline),
		r("chr1", 3, replay.Query),
	}
	SortRecords(rs)
	want := []duo.Record{
		r("chr1", 3, replay.Query),
		r("chr1", 9, replay.Baseline),
		r("chr1", 9, replay.Query),
		r("chr2", 1, replay.Baseline),
	}
	for i := range want {
		if rs[i].Variant.Chrom != want[i].Variant.Chrom || rs[i].Variant.Pos != want[i].Variant.Pos || rs[i].Side != want[i].Side {
			t.Fatalf("pos %d: got %s:%d %s", i, rs[i].Variant.Chrom, rs[i].Variant.Pos, rs[i].Side)
		}
	}
}
