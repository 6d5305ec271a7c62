package duo

import (
	"vcfbench/internal/bed"
	"vcfbench/internal/replay"
	"vcfbench/internal/variant"
)

// DefaultMaxVariantSize drops calls whose alleles are longer than this.
const DefaultMaxVariantSize = 1000

// Filters restrict which calls take part in the comparison.
type Filters struct {
	PassOnly       bool   // keep only calls whose FILTER is empty or lists FilterName
	FilterName     string // "" means PASS
	SNPOnly        bool
	IndelOnly      bool
	MaxVariantSize int          // 0 disables
	Regions        *bed.Regions // nil keeps every call

	// RefOverlap re-places repeat indels so calls on the same side stop
	// overlapping before regions are built.
	RefOverlap bool
}

// Reasons reported on N records.
const (
	ReasonSymbolic = "symbolic"
	ReasonContig   = "outside-contig"
	ReasonFilter   = "filtered"
	ReasonType     = "type"
	ReasonSize     = "size"
	ReasonBED      = "outside-bed"
	ReasonFailed   = "region-failed"
)

// split returns the calls that enter the search and N records for the rest.
// Hom-ref and no-call records produce neither.
func (f Filters) split(s replay.Side, vs []variant.Variant, contigLen int) ([]variant.Variant, []Record) {
	var (
		keep []variant.Variant
		skip []Record
	)
	for _, v := range vs {
		if v.IsHomRef() {
			continue
		}
		if reason := f.reject(v, contigLen); reason != "" {
			skip = append(skip, notAssessed(s, v, "", reason))
			continue
		}
		keep = append(keep, v)
	}
	return keep, skip
}

func (f Filters) reject(v variant.Variant, contigLen int) string {
	switch {
	case v.Symbolic:
		return ReasonSymbolic
	case contigLen < 0 || v.Start() < 0 || v.End() > contigLen:
		return ReasonContig
	case f.PassOnly && !v.HasFilter(f.filterName()):
		return ReasonFilter
	case f.SNPOnly && v.Type() != variant.SNP:
		return ReasonType
	case f.IndelOnly && v.Type() != variant.Indel:
		return ReasonType
	case f.MaxVariantSize > 0 && v.MaxAlleleLength() > f.MaxVariantSize:
		return ReasonSize
	case f.Regions != nil && !f.Regions.Overlaps(v.Chrom, v.Start(), v.End()):
		return ReasonBED
	}
	return ""
}

func (f Filters) filterName() string {
	if f.FilterName == "" {
		return "PASS"
	}
	return f.FilterName
}
