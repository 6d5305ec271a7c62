// Package variant holds the read-only call model shared by the loaders,
// the replay engine and the duo orchestrator.
//
// Coordinates are 0-based and half-open throughout. Variants are supplied by
// a loader and never mutated once handed to a comparison.
package variant

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Allele is one sequence edit: ref[Start:End] is replaced by Seq.
type Allele struct {
	Start int
	End   int
	Seq   []byte
}

// Len is the number of reference bases the allele consumes.
func (a Allele) Len() int { return a.End - a.Start }

// Genotype lists allele indices per haplotype; -1 is a missing call.
type Genotype struct {
	Alleles []int
	Phased  bool
}

// ParseGenotype parses "0/1", "1|0", "1", "./1" and similar GT strings.
func ParseGenotype(s string) (Genotype, error) {
	var g Genotype
	if s == "" {
		return g, fmt.Errorf("empty genotype")
	}
	sep := "/"
	if strings.Contains(s, "|") {
		sep = "|"
		g.Phased = true
	}
	for _, f := range strings.Split(s, sep) {
		if f == "." {
			g.Alleles = append(g.Alleles, -1)
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return Genotype{}, fmt.Errorf("bad genotype %q", s)
		}
		g.Alleles = append(g.Alleles, n)
	}
	if len(g.Alleles) > 2 {
		return Genotype{}, fmt.Errorf("genotype %q: ploidy > 2 not supported", s)
	}
	// A haploid call carries no phase.
	if len(g.Alleles) == 1 {
		g.Phased = false
	}
	return g, nil
}

func (g Genotype) String() string {
	sep := "/"
	if g.Phased {
		sep = "|"
	}
	parts := make([]string, len(g.Alleles))
	for i, a := range g.Alleles {
		if a < 0 {
			parts[i] = "."
		} else {
			parts[i] = strconv.Itoa(a)
		}
	}
	return strings.Join(parts, sep)
}

// Type is a coarse variant class used by the assessment filters.
type Type int

const (
	SNP Type = iota
	Indel
	Complex
)

func (t Type) String() string {
	switch t {
	case SNP:
		return "SNP"
	case Indel:
		return "INDEL"
	default:
		return "COMPLEX"
	}
}

// Variant is one call-set record. Alleles[0] is the reference allele.
type Variant struct {
	Chrom    string
	Name     string // VCF ID column, "." when absent
	Pos      int    // site coordinate as written in the record (0-based)
	Alleles  []Allele
	Genotype Genotype
	Filter   string
	Qual     float64

	// Symbolic marks records whose called alleles are not plain bases
	// (<DEL>, breakends, "*"); they cannot be replayed.
	Symbolic bool

	// Ref and Alt keep the record text for reporting.
	Ref string
	Alt []string
}

// Start is the leftmost reference coordinate touched by any called allele.
func (v Variant) Start() int {
	s := v.Pos
	first := true
	for _, i := range v.calledIndices() {
		if a := v.Alleles[i]; first || a.Start < s {
			s, first = a.Start, false
		}
	}
	return s
}

// End is the rightmost reference coordinate touched by any called allele.
func (v Variant) End() int {
	e := v.Pos
	first := true
	for _, i := range v.calledIndices() {
		if a := v.Alleles[i]; first || a.End > e {
			e, first = a.End, false
		}
	}
	return e
}

// calledIndices returns the non-reference allele indices named by the
// genotype, or every alternate when none is called.
func (v Variant) calledIndices() []int {
	var out []int
	for _, a := range v.Genotype.Alleles {
		if a > 0 && a < len(v.Alleles) {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		for i := 1; i < len(v.Alleles); i++ {
			out = append(out, i)
		}
	}
	if len(out) == 0 && len(v.Alleles) > 0 {
		out = append(out, 0)
	}
	return out
}

// Length is the reference span of the variant.
func (v Variant) Length() int { return v.End() - v.Start() }

// MaxAlleleLength is the longest allele sequence or span among called alleles.
func (v Variant) MaxAlleleLength() int {
	n := 0
	for _, i := range v.calledIndices() {
		a := v.Alleles[i]
		if a.Len() > n {
			n = a.Len()
		}
		if len(a.Seq) > n {
			n = len(a.Seq)
		}
	}
	return n
}

// IsHeterozygous reports a diploid call with two different allele indices.
func (v Variant) IsHeterozygous() bool {
	g := v.Genotype.Alleles
	return len(g) == 2 && normAllele(g[0]) != normAllele(g[1])
}

// IsHomRef reports a call whose every allele is reference (or missing).
func (v Variant) IsHomRef() bool {
	for _, a := range v.Genotype.Alleles {
		if a > 0 {
			return false
		}
	}
	return true
}

// IsPhased reports a phased genotype.
func (v Variant) IsPhased() bool { return v.Genotype.Phased }

// IsPass reports whether the record passed all filters.
func (v Variant) IsPass() bool { return v.HasFilter("PASS") }

// HasFilter reports whether the FILTER column is empty or lists name.
func (v Variant) HasFilter(name string) bool {
	if v.Filter == "" || v.Filter == "." {
		return true
	}
	for _, f := range strings.Split(v.Filter, ";") {
		if f == name {
			return true
		}
	}
	return false
}

// Type classifies the called alleles.
func (v Variant) Type() Type {
	t := SNP
	for _, i := range v.calledIndices() {
		a := v.Alleles[i]
		switch {
		case a.Len() == 1 && len(a.Seq) == 1:
		case a.Len() != len(a.Seq) && (a.Len() == 0 || len(a.Seq) == 0):
			if t == SNP {
				t = Indel
			}
		default:
			t = Complex
		}
	}
	return t
}

func (v Variant) String() string {
	return fmt.Sprintf("%s:%d %s>%s %s", v.Chrom, v.Pos+1, v.Ref, strings.Join(v.Alt, ","), v.Genotype)
}

func normAllele(a int) int {
	if a < 0 {
		return 0
	}
	return a
}

// Compare orders variants by start, then end, then site coordinate.
func Compare(a, b Variant) int {
	switch {
	case a.Start() != b.Start():
		return cmpInt(a.Start(), b.Start())
	case a.End() != b.End():
		return cmpInt(a.End(), b.End())
	default:
		return cmpInt(a.Pos, b.Pos)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Sort orders vs in place by Compare; equal variants keep input order.
func Sort(vs []Variant) {
	sort.SliceStable(vs, func(i, j int) bool { return Compare(vs[i], vs[j]) < 0 })
}

// CheckSorted returns the first index whose start precedes its predecessor,
// or -1 when vs is ordered by start coordinate.
func CheckSorted(vs []Variant) int {
	for i := 1; i < len(vs); i++ {
		if vs[i].Start() < vs[i-1].Start() {
			return i
		}
	}
	return -1
}
