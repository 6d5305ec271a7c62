// internal/writers/vcfsplit.go
package writers

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gvcf "github.com/vertgenlab/gonomics/vcf"

	"vcfbench/internal/common"
	"vcfbench/internal/duo"
	"vcfbench/internal/replay"
)

// splitFiles are the outputs of the vcf-split format, keyed by side and
// decision. N records are not written.
var splitFiles = []struct {
	side     replay.Side
	decision duo.Decision
}{
	{replay.Baseline, duo.TP},
	{replay.Baseline, duo.FN},
	{replay.Query, duo.TP},
	{replay.Query, duo.FP},
}

// SplitFileName is the file a side/decision pair lands in.
func SplitFileName(s replay.Side, d duo.Decision) string {
	return fmt.Sprintf("%s-%s.vcf", s, d)
}

// WriteVCFSplit writes recs into one VCF per side and decision under dir.
// Every file is created, even when empty.
func WriteVCFSplit(dir string, recs []duo.Record) error {
	if dir == "" {
		return errors.New("vcf-split output needs an output directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	sorted := append([]duo.Record(nil), recs...)
	common.SortRecords(sorted)

	for _, f := range splitFiles {
		var out []gvcf.Vcf
		for _, r := range sorted {
			if r.Side == f.side && r.Decision == f.decision {
				out = append(out, toVcf(r))
			}
		}
		if err := writeVCF(filepath.Join(dir, SplitFileName(f.side, f.decision)), f.side.String(), out); err != nil {
			return err
		}
	}
	return nil
}

func writeVCF(path, sample string, recs []gvcf.Vcf) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = cerr
		}
	}()
	// gonomics panics when a write fails.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", path, r)
		}
	}()
	bw := bufio.NewWriter(fh)
	gvcf.NewWriteHeader(bw, splitHeader(sample))
	gvcf.WriteVcfToFileHandle(bw, recs)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func splitHeader(sample string) gvcf.Header {
	return gvcf.Header{Text: []string{
		"##fileformat=VCFv4.2",
		"##source=vbt",
		"##FORMAT=<ID=GT,Number=1,Type=String,Description=\"Genotype\">",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\t" + sample,
	}}
}

func toVcf(r duo.Record) gvcf.Vcf {
	v := r.Variant
	out := gvcf.Vcf{
		Chr:    v.Chrom,
		Pos:    v.Pos + 1,
		Id:     orDot(v.Name),
		Ref:    v.Ref,
		Alt:    v.Alt,
		Qual:   v.Qual,
		Filter: orDot(v.Filter),
		Info:   ".",
		Format: []string{"GT"},
	}
	if len(out.Alt) == 0 {
		out.Alt = []string{"."}
	}
	s := gvcf.Sample{
		Alleles:    make([]int16, len(v.Genotype.Alleles)),
		Phase:      make([]bool, len(v.Genotype.Alleles)),
		FormatData: []string{""},
	}
	for i, a := range v.Genotype.Alleles {
		s.Alleles[i] = int16(a)
		s.Phase[i] = v.Genotype.Phased
	}
	out.Samples = []gvcf.Sample{s}
	return out
}

func orDot(s string) string {
	if s == "" {
		return "."
	}
	return s
}
