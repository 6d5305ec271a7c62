package replay

import "vcfbench/internal/variant"

// Side names one of the two call sets under comparison.
type Side int

const (
	Baseline Side = iota
	Query
)

func (s Side) String() string {
	if s == Query {
		return "query"
	}
	return "baseline"
}

// Other returns the opposite side.
func (s Side) Other() Side { return 1 - s }

// Region is the input of one independent search: a reference window and the
// two ordered variant lists that fall inside it. The variant slices are the
// arena that oriented variants index into; the search never modifies them.
type Region struct {
	Name     string
	Ref      []byte // whole contig; Start/End select the window
	Start    int
	End      int
	Baseline []variant.Variant
	Query    []variant.Variant
}

// Variants returns the list for one side.
func (r *Region) Variants(s Side) []variant.Variant {
	if s == Query {
		return r.Query
	}
	return r.Baseline
}

// Validate rejects input the search cannot assume: a window outside the
// reference, unsorted lists, variants leaving the window or carrying
// genotype indices without a matching allele.
func (r *Region) Validate() error {
	if r.Start < 0 || r.End < r.Start || r.End > len(r.Ref) {
		return preconditionf("region %s window [%d,%d) outside reference of length %d", r.Name, r.Start, r.End, len(r.Ref))
	}
	for _, s := range []Side{Baseline, Query} {
		vs := r.Variants(s)
		if i := variant.CheckSorted(vs); i >= 0 {
			return preconditionf("region %s: %s variant %d (%s) is out of order", r.Name, s, i, vs[i])
		}
		for i, v := range vs {
			if len(v.Alleles) == 0 {
				return preconditionf("region %s: %s variant %d has no alleles", r.Name, s, i)
			}
			if v.Start() < r.Start || v.End() > r.End {
				return preconditionf("region %s: %s variant %d [%d,%d) outside window [%d,%d)",
					r.Name, s, i, v.Start(), v.End(), r.Start, r.End)
			}
			for _, g := range v.Genotype.Alleles {
				if g >= len(v.Alleles) {
					return preconditionf("region %s: %s variant %d genotype index %d without allele", r.Name, s, i, g)
				}
				if g <= 0 {
					continue
				}
				a := v.Alleles[g]
				if a.Start > a.End || a.Start < v.Start() || a.End > v.End() {
					return preconditionf("region %s: %s variant %d allele %d has span [%d,%d)", r.Name, s, i, g, a.Start, a.End)
				}
			}
		}
	}
	return nil
}
