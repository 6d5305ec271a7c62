package replay

import (
	"bytes"

	"vcfbench/internal/variant"
)

// tail is the part of one haplotype's synthesized sequence that one side has
// emitted and the other has not yet caught up with. Everything before it has
// been compared and found identical.
type tail struct {
	side Side
	seq  []byte
}

// Path is a node of the search: a baseline and a query semi-path replayed
// over the same window, plus the uncompared overhang per haplotype. A Path
// whose two sides ever disagree on their shared prefix is dropped, so every
// stored Path is a viable partial match.
type Path struct {
	base  SemiPath
	query SemiPath
	tails [2]tail
	seq   int
}

func newPath(r *Region) Path {
	return Path{
		base:  NewSemiPath(Baseline, r.Start),
		query: NewSemiPath(Query, r.Start),
	}
}

// Baseline returns the baseline semi-path.
func (p Path) Baseline() SemiPath { return p.base }

// Query returns the query semi-path.
func (p Path) Query() SemiPath { return p.query }

// Seq is the order in which the driver discovered this path.
func (p Path) Seq() int { return p.seq }

func (p Path) semi(s Side) SemiPath {
	if s == Query {
		return p.query
	}
	return p.base
}

func (p *Path) setSemi(s Side, sp SemiPath) {
	if s == Query {
		p.query = sp
	} else {
		p.base = sp
	}
}

// Score counts included variants per side and skipped variants overall.
type Score struct {
	Baseline int
	Query    int
	Excluded int
}

// Matched is the number of variants included on both sides together.
func (s Score) Matched() int { return s.Baseline + s.Query }

// Better ranks by matched count, then by fewer exclusions. Equal scores are
// not better; the driver keeps the earlier path.
func (s Score) Better(o Score) bool {
	if s.Matched() != o.Matched() {
		return s.Matched() > o.Matched()
	}
	return s.Excluded < o.Excluded
}

// Score returns the ranking key of the path so far.
func (p Path) Score() Score {
	return Score{
		Baseline: len(p.base.included),
		Query:    len(p.query.included),
		Excluded: len(p.base.excluded) + len(p.query.excluded),
	}
}

// Done reports that neither side has unvisited variants.
func (p Path) Done(r *Region) bool {
	return p.base.next >= len(r.Baseline) && p.query.next >= len(r.Query)
}

// InSync reports equal reach on both sides with nothing left uncompared.
func (p Path) InSync() bool {
	return p.base.reach == p.query.reach && len(p.tails[0].seq) == 0 && len(p.tails[1].seq) == 0
}

// Step expands the path by one decision. The side whose reach is behind
// moves; on equal reach the side whose next variant starts first moves
// (baseline on equal starts). A side whose next variant lies at or beyond
// the partner's reach is padded with reference instead. Children whose
// sequences diverge are dropped.
func (p Path) Step(r *Region, mode variant.MatchMode) ([]Path, error) {
	b, q := p.base.reach, p.query.reach
	var s Side
	switch {
	case b < q:
		s = Baseline
	case q < b:
		s = Query
	default:
		s = p.leadSide(r)
	}
	sp := p.semi(s)
	vs := r.Variants(s)

	if b != q {
		other := p.semi(s.Other()).reach
		if sp.next >= len(vs) || vs[sp.next].Start() >= other {
			c := p
			if !c.pad(s, other, r) {
				return nil, nil
			}
			return []Path{c}, nil
		}
		return p.branch(s, r, mode)
	}

	if sp.next >= len(vs) {
		return nil, nil
	}
	// Both sides will emit the reference up to the next variant start.
	if start := vs[sp.next].Start(); start > b {
		if !p.pad(Baseline, start, r) || !p.pad(Query, start, r) {
			return nil, nil
		}
	}
	return p.branch(s, r, mode)
}

// leadSide picks the side whose next variant starts first.
func (p Path) leadSide(r *Region) Side {
	bn := p.base.next < len(r.Baseline)
	qn := p.query.next < len(r.Query)
	switch {
	case bn && qn:
		if r.Query[p.query.next].Start() < r.Baseline[p.base.next].Start() {
			return Query
		}
	case qn:
		return Query
	}
	return Baseline
}

// branch produces one child per orientation of side s's next variant, then
// the child that skips it. A variant overlapping the reach can only be
// skipped.
func (p Path) branch(s Side, r *Region, mode variant.MatchMode) ([]Path, error) {
	sp := p.semi(s)
	idx := sp.next
	v := r.Variants(s)[idx]

	var out []Path
	if v.Start() >= sp.reach {
		for _, o := range variant.Orientations(idx, v, mode) {
			c := p
			ok, err := c.include(s, o, v, r)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, c)
			}
		}
	}
	c := p
	c.setSemi(s, sp.Exclude(idx))
	return append(out, c), nil
}

// include emits the reference gap and the oriented alleles of v on both
// haplotypes of side s. It reports false when the sequences diverge.
func (p *Path) include(s Side, o variant.Oriented, v variant.Variant, r *Region) (bool, error) {
	sp := p.semi(s)
	next, err := sp.Include(o, v)
	if err != nil {
		return false, err
	}
	gap := r.Ref[sp.reach:v.Start()]
	for _, h := range variant.Haplotypes {
		if !p.emit(s, h, gap) || !p.emit(s, h, variant.Apply(v, o, h, r.Ref)) {
			return false, nil
		}
	}
	p.setSemi(s, next)
	return true, nil
}

// pad emits reference bases on side s up to pos.
func (p *Path) pad(s Side, pos int, r *Region) bool {
	sp := p.semi(s)
	if pos <= sp.reach {
		return true
	}
	gap := r.Ref[sp.reach:pos]
	for _, h := range variant.Haplotypes {
		if !p.emit(s, h, gap) {
			return false
		}
	}
	p.setSemi(s, sp.advance(pos))
	return true
}

// emit appends frag to side s on haplotype h, comparing it against whatever
// the other side has emitted beyond the shared prefix. frag may alias the
// reference; tails are only ever extended by copying.
func (p *Path) emit(s Side, h variant.Haplotype, frag []byte) bool {
	if len(frag) == 0 {
		return true
	}
	t := p.tails[h]
	if len(t.seq) == 0 {
		p.tails[h] = tail{side: s, seq: frag}
		return true
	}
	if t.side == s {
		p.tails[h] = tail{side: s, seq: append(t.seq[:len(t.seq):len(t.seq)], frag...)}
		return true
	}
	n := min(len(t.seq), len(frag))
	if !bytes.Equal(t.seq[:n], frag[:n]) {
		return false
	}
	switch {
	case len(t.seq) > n:
		p.tails[h] = tail{side: t.side, seq: t.seq[n:]}
	case len(frag) > n:
		p.tails[h] = tail{side: s, seq: frag[n:]}
	default:
		p.tails[h] = tail{}
	}
	return true
}

// finish pads both sides to the window end. The result is a complete match
// only when no uncompared sequence remains.
func (p Path) finish(r *Region) (Path, bool) {
	c := p
	if !c.pad(Baseline, r.End, r) || !c.pad(Query, r.End, r) {
		return p, false
	}
	return c, len(c.tails[0].seq) == 0 && len(c.tails[1].seq) == 0
}

// excludeRest skips every unvisited variant on both sides.
func (p Path) excludeRest(r *Region) Path {
	for p.base.next < len(r.Baseline) {
		p.base = p.base.Exclude(p.base.next)
	}
	for p.query.next < len(r.Query) {
		p.query = p.query.Exclude(p.query.next)
	}
	return p
}
