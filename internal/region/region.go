// Package region cuts one contig's calls into independent replay regions.
package region

import (
	"fmt"

	"vcfbench/internal/replay"
	"vcfbench/internal/variant"
)

// DefaultGap is the distance in bases that separates two clusters.
const DefaultGap = 100

// Partition groups base and query (both sorted by start) into clusters. A
// new cluster starts when the next variant, from either side, starts more
// than gap bases past the current cluster end. Each cluster's window spans
// its variants and is clipped to the contig.
func Partition(chrom string, ref []byte, base, query []variant.Variant, gap int) []*replay.Region {
	if gap < 0 {
		gap = 0
	}
	var (
		out    []*replay.Region
		cur    *replay.Region
		bi, qi int
	)
	for bi < len(base) || qi < len(query) {
		side := replay.Baseline
		if bi == len(base) || (qi < len(query) && query[qi].Start() < base[bi].Start()) {
			side = replay.Query
		}
		var v variant.Variant
		if side == replay.Baseline {
			v, bi = base[bi], bi+1
		} else {
			v, qi = query[qi], qi+1
		}
		if cur == nil || v.Start() > cur.End+gap {
			cur = &replay.Region{Ref: ref, Start: v.Start(), End: v.End()}
			out = append(out, cur)
		}
		if v.End() > cur.End {
			cur.End = v.End()
		}
		if side == replay.Baseline {
			cur.Baseline = append(cur.Baseline, v)
		} else {
			cur.Query = append(cur.Query, v)
		}
	}
	for _, r := range out {
		if r.Start < 0 {
			r.Start = 0
		}
		if r.End > len(ref) {
			r.End = len(ref)
		}
		r.Name = fmt.Sprintf("%s:%d-%d", chrom, r.Start+1, r.End)
	}
	return out
}
