package vcf

import "vcfbench/internal/variant"

// Trim drops bases shared with ref so the allele covers only the edited
// reference interval. Shared bases come off the end first unless
// prefixFirst is set.
func Trim(pos int, ref, alt string, prefixFirst bool) variant.Allele {
	ps := Placements(pos, ref, alt)
	if prefixFirst {
		return ps[len(ps)-1]
	}
	return ps[0]
}

// Placements lists every minimal representation of alt against ref, left to
// right. An edit inside a repeat has more than one; they all spell the same
// haplotype.
func Placements(pos int, ref, alt string) []variant.Allele {
	n := min(len(ref), len(alt))
	suf := 0
	for suf < n && ref[len(ref)-1-suf] == alt[len(alt)-1-suf] {
		suf++
	}
	pre := 0
	for pre < n && ref[pre] == alt[pre] {
		pre++
	}
	t := suf + min(pre, n-suf)

	lo, hi := max(0, t-suf), min(pre, t)
	out := make([]variant.Allele, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		out = append(out, variant.Allele{
			Start: pos + k,
			End:   pos + len(ref) - (t - k),
			Seq:   []byte(alt[k : len(alt)-(t-k)]),
		})
	}
	return out
}

// ResolveOverlaps re-places called alleles that sit in repeats so that calls
// on the same side no longer overlap, following the reference-overlap
// trimming of the loader. vs must be sorted and on one contig; it is not
// modified. The second result counts re-placed alleles.
func ResolveOverlaps(vs []variant.Variant) ([]variant.Variant, int) {
	out := make([]variant.Variant, len(vs))
	copy(out, vs)
	moved := 0
	reach := -1
	for i := range out {
		v := out[i]
		next := -1
		if i+1 < len(out) {
			next = out[i+1].Start()
		}
		copied := false
		for _, a := range calledAlts(v) {
			ps := Placements(v.Pos, v.Ref, v.Alt[a-1])
			if len(ps) < 2 {
				continue
			}
			cur := v.Alleles[a]
			if cur.Start >= reach && (next < 0 || cur.End <= next) {
				continue
			}
			best, ok := pick(ps, reach, next)
			if !ok || best.Start == cur.Start {
				continue
			}
			if !copied {
				out[i].Alleles = append([]variant.Allele(nil), v.Alleles...)
				copied = true
			}
			out[i].Alleles[a] = best
			v = out[i]
			moved++
		}
		if e := out[i].End(); e > reach {
			reach = e
		}
	}
	if moved > 0 {
		variant.Sort(out)
	}
	return out, moved
}

// pick returns the leftmost placement clear of both neighbours, or failing
// that the leftmost clear of the previous call.
func pick(ps []variant.Allele, reach, next int) (variant.Allele, bool) {
	for _, p := range ps {
		if p.Start >= reach && (next < 0 || p.End <= next) {
			return p, true
		}
	}
	for _, p := range ps {
		if p.Start >= reach {
			return p, true
		}
	}
	return variant.Allele{}, false
}

// calledAlts lists distinct called alternate indices with plain-base alleles.
func calledAlts(v variant.Variant) []int {
	var out []int
	seen := map[int]bool{}
	for _, a := range v.Genotype.Alleles {
		if a <= 0 || a > len(v.Alt) || seen[a] || isSymbolic(v.Alt[a-1]) {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
