// internal/common/sort.go
package common

import (
	"sort"

	"vcfbench/internal/duo"
)

// LessRecord defines a stable order for records (for --sort).
func LessRecord(a, b duo.Record) bool {
	if a.Variant.Chrom != b.Variant.Chrom {
		return a.Variant.Chrom < b.Variant.Chrom
	}
	if a.Variant.Pos != b.Variant.Pos {
		return a.Variant.Pos < b.Variant.Pos
	}
	if a.Side != b.Side {
		return a.Side < b.Side
	}
	return a.Variant.End() < b.Variant.End()
}

func SortRecords(rs []duo.Record) {
	sort.SliceStable(rs, func(i, j int) bool { return LessRecord(rs[i], rs[j]) })
}
