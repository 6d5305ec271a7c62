package variant

// Haplotype selects one parental copy.
type Haplotype int

const (
	HapA Haplotype = iota
	HapB
)

// Haplotypes lists both copies in replay order.
var Haplotypes = [2]Haplotype{HapA, HapB}

// MatchMode controls how genotypes expand into orientations.
type MatchMode int

const (
	// GenotypeMatch keeps zygosity: alleles must agree per haplotype.
	GenotypeMatch MatchMode = iota
	// AlleleMatch squashes ploidy: any called alternate may play on both copies.
	AlleleMatch
)

func (m MatchMode) String() string {
	if m == AlleleMatch {
		return "allele"
	}
	return "genotype"
}

// Oriented is a variant (by arena index) with one concrete haplotype
// assignment. It never owns or mutates the variant it points at.
type Oriented struct {
	Index   int
	HapA    int
	HapB    int
	Flipped bool // true when HapA/HapB swap the genotype's written order
}

// Allele returns the allele index played on h.
func (o Oriented) Allele(h Haplotype) int {
	if h == HapB {
		return o.HapB
	}
	return o.HapA
}

// Orientations expands v into every haplotype assignment the search must try.
// Homozygous, haploid and phased calls have one; unphased heterozygous calls
// have two. In AlleleMatch mode each distinct called alternate yields one
// homozygous orientation. A call without any alternate allele has none: it
// would not change the sequence, so it can only be excluded.
func Orientations(index int, v Variant, mode MatchMode) []Oriented {
	gt := v.Genotype.Alleles
	if v.IsHomRef() {
		return nil
	}
	if mode == AlleleMatch {
		var out []Oriented
		seen := map[int]bool{}
		for _, a := range gt {
			if a <= 0 || seen[a] {
				continue
			}
			seen[a] = true
			out = append(out, Oriented{Index: index, HapA: a, HapB: a})
		}
		return out
	}
	switch len(gt) {
	case 0:
		return nil
	case 1:
		a := normAllele(gt[0])
		return []Oriented{{Index: index, HapA: a, HapB: a}}
	}
	a, b := normAllele(gt[0]), normAllele(gt[1])
	if a == b || v.Genotype.Phased {
		return []Oriented{{Index: index, HapA: a, HapB: b}}
	}
	return []Oriented{
		{Index: index, HapA: a, HapB: b},
		{Index: index, HapA: b, HapB: a, Flipped: true},
	}
}

// Apply returns the bases that replace ref[v.Start():v.End()] on haplotype h.
// ref is the whole contig; the result never aliases it.
func Apply(v Variant, o Oriented, h Haplotype, ref []byte) []byte {
	s, e := v.Start(), v.End()
	idx := o.Allele(h)
	if idx <= 0 || idx >= len(v.Alleles) {
		return append([]byte(nil), ref[s:e]...)
	}
	a := v.Alleles[idx]
	out := make([]byte, 0, (a.Start-s)+len(a.Seq)+(e-a.End))
	out = append(out, ref[s:a.Start]...)
	out = append(out, a.Seq...)
	out = append(out, ref[a.End:e]...)
	return out
}
