// internal/vcf/reader.go
package vcf

import (
	"errors"
	"fmt"
	"os"
	"strings"

	gvcf "github.com/vertgenlab/gonomics/vcf"

	"vcfbench/internal/variant"
)

// CallSet is one sample's calls grouped per contig, each list sorted.
type CallSet struct {
	Sample  string
	contigs []string
	calls   map[string][]variant.Variant
}

// Contigs lists contigs in the order they first appeared.
func (c *CallSet) Contigs() []string { return c.contigs }

// Variants returns the sorted calls on chrom.
func (c *CallSet) Variants(chrom string) []variant.Variant { return c.calls[chrom] }

// Len counts all calls.
func (c *CallSet) Len() int {
	n := 0
	for _, vs := range c.calls {
		n += len(vs)
	}
	return n
}

// Load reads path (gzip by .gz suffix) and keeps the genotype of sample, or
// of the first sample when sample is empty.
func Load(path, sample string) (cs *CallSet, err error) {
	if path == "-" {
		return nil, errors.New("VCF input cannot be read from stdin")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	// gonomics reports malformed files by panicking.
	defer func() {
		if r := recover(); r != nil {
			cs, err = nil, fmt.Errorf("%s: %v", path, r)
		}
	}()
	recs, hdr := gvcf.Read(path)
	cs, err = FromRecords(recs, hdr, sample)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cs, nil
}

// FromRecords converts parsed records into a CallSet.
func FromRecords(recs []gvcf.Vcf, hdr gvcf.Header, sample string) (*CallSet, error) {
	idx, name, err := sampleIndex(hdr, sample)
	if err != nil {
		return nil, err
	}
	cs := &CallSet{Sample: name, calls: map[string][]variant.Variant{}}
	for i, rec := range recs {
		v, err := toVariant(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s:%d): %w", i+1, rec.Chr, rec.Pos, err)
		}
		if _, ok := cs.calls[v.Chrom]; !ok {
			cs.contigs = append(cs.contigs, v.Chrom)
		}
		cs.calls[v.Chrom] = append(cs.calls[v.Chrom], v)
	}
	for _, vs := range cs.calls {
		variant.Sort(vs)
	}
	return cs, nil
}

// Samples lists the sample columns named on the #CHROM header line.
func Samples(hdr gvcf.Header) []string {
	for _, line := range hdr.Text {
		if strings.HasPrefix(line, "#CHROM") {
			f := strings.Split(strings.TrimRight(line, "\r"), "\t")
			if len(f) > 9 {
				return f[9:]
			}
			return nil
		}
	}
	return nil
}

func sampleIndex(hdr gvcf.Header, sample string) (int, string, error) {
	names := Samples(hdr)
	if len(names) == 0 {
		return 0, "", errors.New("no sample columns in header")
	}
	if sample == "" {
		return 0, names[0], nil
	}
	for i, n := range names {
		if n == sample {
			return i, sample, nil
		}
	}
	return 0, "", fmt.Errorf("sample %q not found", sample)
}

func toVariant(rec gvcf.Vcf, idx int) (variant.Variant, error) {
	if rec.Pos < 1 {
		return variant.Variant{}, fmt.Errorf("bad POS %d", rec.Pos)
	}
	v := variant.Variant{
		Chrom:  rec.Chr,
		Name:   rec.Id,
		Pos:    rec.Pos - 1,
		Filter: rec.Filter,
		Qual:   rec.Qual,
		Ref:    strings.ToUpper(rec.Ref),
	}
	for _, alt := range rec.Alt {
		if alt != "." && alt != "" {
			v.Alt = append(v.Alt, strings.ToUpper(alt))
		}
	}
	v.Genotype = genotype(rec, idx)

	v.Alleles = make([]variant.Allele, 0, len(v.Alt)+1)
	v.Alleles = append(v.Alleles, variant.Allele{Start: v.Pos, End: v.Pos + len(v.Ref), Seq: []byte(v.Ref)})
	for _, alt := range v.Alt {
		if isSymbolic(alt) {
			v.Alleles = append(v.Alleles, variant.Allele{Start: v.Pos, End: v.Pos + len(v.Ref)})
			continue
		}
		v.Alleles = append(v.Alleles, Trim(v.Pos, v.Ref, alt, false))
	}
	for _, a := range v.Genotype.Alleles {
		if a >= len(v.Alleles) {
			return variant.Variant{}, fmt.Errorf("GT %s names allele %d of %d", v.Genotype, a, len(v.Alleles)-1)
		}
		if a > 0 && isSymbolic(v.Alt[a-1]) {
			v.Symbolic = true
		}
	}
	return v, nil
}

// genotype reads the GT gonomics parsed into Sample.Alleles; a missing
// sample column is a no-call.
func genotype(rec gvcf.Vcf, idx int) variant.Genotype {
	if idx >= len(rec.Samples) || len(rec.Samples[idx].Alleles) == 0 {
		return variant.Genotype{Alleles: []int{-1}}
	}
	s := rec.Samples[idx]
	g := variant.Genotype{Alleles: make([]int, len(s.Alleles))}
	for i, a := range s.Alleles {
		g.Alleles[i] = int(a)
		if a < 0 {
			g.Alleles[i] = -1
		}
	}
	if len(g.Alleles) > 1 {
		for _, p := range s.Phase {
			g.Phased = g.Phased || p
		}
	}
	return g
}

func isSymbolic(alt string) bool {
	return alt == "*" || strings.ContainsAny(alt, "<>[]")
}
