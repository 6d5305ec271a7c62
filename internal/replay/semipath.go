package replay

import (
	"sort"

	"vcfbench/internal/variant"
)

// SemiPath is one call set's partial replay onto the reference: how far the
// synthesized sequence is determined, which variants were included (with
// their orientation) and which were skipped.
//
// A SemiPath is a value. Every operation returns a new one and the slices it
// holds are never written after construction, so sibling branches can keep
// copies without aliasing each other's state.
type SemiPath struct {
	side     Side
	reach    int
	next     int
	included []variant.Oriented
	excluded []int
}

// NewSemiPath starts an empty replay anchored at the window start.
func NewSemiPath(side Side, start int) SemiPath {
	return SemiPath{side: side, reach: start}
}

func (s SemiPath) Side() Side { return s.side }

// Reach is the reference coordinate up to which the sequence is emitted.
func (s SemiPath) Reach() int { return s.reach }

// Next is the index of the first unvisited variant.
func (s SemiPath) Next() int { return s.next }

// Included returns the included orientations in position order.
func (s SemiPath) Included() []variant.Oriented { return s.included }

// Excluded returns the indices of skipped variants.
func (s SemiPath) Excluded() []int { return s.excluded }

// Include appends o and advances the reach to the variant's end. v must be
// the variant o.Index refers to. Including a variant that starts before the
// reach fails with *OverlapError.
func (s SemiPath) Include(o variant.Oriented, v variant.Variant) (SemiPath, error) {
	if v.Start() < s.reach {
		return s, &OverlapError{Side: s.side, Index: o.Index, Start: v.Start(), Reach: s.reach}
	}
	n := s
	n.included = append(s.included[:len(s.included):len(s.included)], o)
	n.reach = v.End()
	if o.Index >= n.next {
		n.next = o.Index + 1
	}
	return n, nil
}

// Exclude records index as skipped. The reach does not move.
func (s SemiPath) Exclude(index int) SemiPath {
	n := s
	n.excluded = append(s.excluded[:len(s.excluded):len(s.excluded)], index)
	if index >= n.next {
		n.next = index + 1
	}
	return n
}

// advance moves the reach to pos after the caller emitted ref[reach:pos].
func (s SemiPath) advance(pos int) SemiPath {
	if pos > s.reach {
		s.reach = pos
	}
	return s
}

// Synthesize rebuilds haplotype h of this side from the window start up to
// upTo: the reference with every included variant substituted.
func (s SemiPath) Synthesize(r *Region, h variant.Haplotype, upTo int) []byte {
	vs := r.Variants(s.side)
	var out []byte
	pos := r.Start
	for _, o := range s.included {
		v := vs[o.Index]
		if v.Start() >= upTo {
			break
		}
		out = append(out, r.Ref[pos:v.Start()]...)
		out = append(out, variant.Apply(v, o, h, r.Ref)...)
		pos = v.End()
	}
	if pos < upTo {
		out = append(out, r.Ref[pos:upTo]...)
	}
	return out
}

// SortIncluded restores position order of the included list, e.g. after a
// caller merged lists from several searches.
func (s SemiPath) SortIncluded(r *Region) SemiPath {
	vs := r.Variants(s.side)
	inc := append([]variant.Oriented(nil), s.included...)
	sort.SliceStable(inc, func(i, j int) bool {
		return variant.Compare(vs[inc[i].Index], vs[inc[j].Index]) < 0
	})
	s.included = inc
	return s
}

// isIncluded reports whether variant index i is in the included list.
func (s SemiPath) isIncluded(i int) bool {
	for _, o := range s.included {
		if o.Index == i {
			return true
		}
	}
	return false
}
