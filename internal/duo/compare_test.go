package duo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcfbench/internal/fasta"
	"vcfbench/internal/replay"
	"vcfbench/internal/variant"
	"vcfbench/internal/vcf"
)

const hdr = "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS\n"

const baseVCF = hdr +
	"chr1\t11\t.\tG\tA\t50\tPASS\t.\tGT\t0/1\n" +
	"chr1\t301\t.\tT\tC\t50\tPASS\t.\tGT\t1/1\n" +
	"chr1\t601\t.\tA\tG\t50\tLowQ\t.\tGT\t0/1\n" +
	"chr1\t701\t.\tT\tG\t50\tPASS\t.\tGT\t1/1\n" +
	"chr2\t5\t.\tA\tG\t50\tPASS\t.\tGT\t0/1\n"

const queryVCF = hdr +
	"chr1\t11\t.\tG\tA\t50\tPASS\t.\tGT\t1/0\n" +
	"chr1\t301\t.\tT\tC\t50\tPASS\t.\tGT\t0/1\n" +
	"chr1\t401\t.\tA\tC\t50\tPASS\t.\tGT\t0/0\n" +
	"chr1\t501\t.\tT\tA\t50\tPASS\t.\tGT\t0/1\n"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func loadFiles(t *testing.T, refFA, baseText, queryText string) Input {
	t.Helper()
	ref, err := fasta.Load(context.Background(), writeFile(t, "ref.fa", refFA))
	require.NoError(t, err)
	base, err := vcf.Load(writeFile(t, "base.vcf", baseText), "")
	require.NoError(t, err)
	query, err := vcf.Load(writeFile(t, "query.vcf", queryText), "")
	require.NoError(t, err)
	return Input{Ref: ref, Baseline: base, Query: query}
}

func loadInput(t *testing.T) Input {
	t.Helper()
	return loadFiles(t, ">chr1\n"+strings.Repeat("ACGTTGCA", 100)+"\n", baseVCF, queryVCF)
}

func TestRunLabelsEveryCall(t *testing.T) {
	c := New(Options{Filters: Filters{PassOnly: true}, AlleleMatch: true, Threads: 2}, nil)
	var got []Record
	sum, err := c.Run(context.Background(), loadInput(t), func(r Record) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)

	type row struct {
		side replay.Side
		pos  int
		dec  Decision
		kind Kind
	}
	var rows []row
	for _, r := range got {
		rows = append(rows, row{r.Side, r.Variant.Pos, r.Decision, r.Kind})
	}
	assert.Equal(t, []row{
		{replay.Baseline, 10, TP, KindGenotype},
		{replay.Query, 10, TP, KindGenotype},
		{replay.Baseline, 300, TP, KindAllele},
		{replay.Query, 300, TP, KindAllele},
		{replay.Query, 500, FP, KindNone},
		{replay.Baseline, 600, N, KindNone},
		{replay.Baseline, 700, FN, KindNone},
		{replay.Baseline, 4, N, KindNone},
	}, rows)
	assert.Equal(t, ReasonFilter, got[5].Reason)
	assert.Equal(t, ReasonContig, got[7].Reason)

	assert.NotEmpty(t, sum.RunID)
	assert.Equal(t, Counts{TP: 2, TPGenotype: 1, TPAllele: 1, Miss: 1, N: 2}, sum.Baseline)
	assert.Equal(t, Counts{TP: 2, TPGenotype: 1, TPAllele: 1, Miss: 1}, sum.Query)
	assert.Equal(t, 4, sum.Regions)
	assert.Zero(t, sum.CappedRegions)
	assert.InDelta(t, 2.0/3, sum.Precision, 1e-9)
	assert.InDelta(t, 2.0/3, sum.Recall, 1e-9)
	assert.InDelta(t, 2.0/3, sum.F1, 1e-9)
}

func TestRunWithoutAllelePass(t *testing.T) {
	c := New(Options{Filters: Filters{PassOnly: true}}, nil)
	sum, err := c.Run(context.Background(), loadInput(t), func(Record) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Baseline.TP)
	assert.Equal(t, 2, sum.Baseline.Miss)
	assert.Equal(t, 2, sum.Query.Miss)
}

func TestRunKeepsNamedFilter(t *testing.T) {
	c := New(Options{Filters: Filters{PassOnly: true, FilterName: "LowQ"}}, nil)
	var got []Record
	sum, err := c.Run(context.Background(), loadInput(t), func(r Record) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, Counts{Miss: 1, N: 4}, sum.Baseline)
	assert.Equal(t, Counts{N: 3}, sum.Query)
	for _, r := range got {
		if r.Side == replay.Baseline && r.Variant.Pos == 600 {
			assert.Equal(t, FN, r.Decision)
		}
	}
}

// CAGGGT: both sides call the TC MNP and one G deletion, written at
// different repeat offsets. The baseline deletion collides with its MNP.
const overlapRef = ">chr1\nCAGGGTACGTACGTACGTACGT\n"

const overlapBase = hdr +
	"chr1\t2\t.\tAG\tTC\t50\tPASS\t.\tGT\t1/1\n" +
	"chr1\t3\t.\tGGG\tGG\t50\tPASS\t.\tGT\t0/1\n"

const overlapQuery = hdr +
	"chr1\t2\t.\tAG\tTC\t50\tPASS\t.\tGT\t1/1\n" +
	"chr1\t4\t.\tGG\tG\t50\tPASS\t.\tGT\t0/1\n"

func TestRunRefOverlapResolvesSameSideCollision(t *testing.T) {
	in := loadFiles(t, overlapRef, overlapBase, overlapQuery)
	noop := func(Record) error { return nil }

	sum, err := New(Options{}, nil).Run(context.Background(), in, noop)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Baseline.TP)
	assert.Equal(t, 1, sum.Baseline.Miss)
	assert.Equal(t, 1, sum.Query.Miss)

	sum, err = New(Options{Filters: Filters{RefOverlap: true}}, nil).Run(context.Background(), in, noop)
	require.NoError(t, err)
	assert.Equal(t, Counts{TP: 2, TPGenotype: 2}, sum.Baseline)
	assert.Equal(t, Counts{TP: 2, TPGenotype: 2}, sum.Query)
	assert.Zero(t, sum.FailedRegions)
}

func TestRunStopsOnVisitError(t *testing.T) {
	stop := errors.New("stop")
	c := New(Options{}, nil)
	_, err := c.Run(context.Background(), loadInput(t), func(Record) error { return stop })
	assert.ErrorIs(t, err, stop)
}

func snv(ref string, pos int, alt, gt string) variant.Variant {
	g, err := variant.ParseGenotype(gt)
	if err != nil {
		panic(err)
	}
	return variant.Variant{
		Chrom:    "chr1",
		Pos:      pos,
		Alleles:  []variant.Allele{{Start: pos, End: pos + 1, Seq: []byte(ref[pos : pos+1])}, {Start: pos, End: pos + 1, Seq: []byte(alt)}},
		Genotype: g,
	}
}

func TestCompareRegionFlagsCappedSearch(t *testing.T) {
	ref := strings.Repeat("A", 50)
	var vs []variant.Variant
	for i := 0; i < 20; i++ {
		vs = append(vs, snv(ref, 2*i+1, "T", "0/1"))
	}
	r := &replay.Region{Name: "chr1:1-50", Ref: []byte(ref), End: len(ref), Baseline: vs, Query: vs}

	res, err := New(Options{MaxPaths: 100}, nil).CompareRegion(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, res.Capped)
	require.Len(t, res.Records, 40)
	for _, rec := range res.Records {
		assert.True(t, rec.LowerBound)
		assert.Equal(t, "chr1:1-50", rec.Region)
	}
}

func TestCompareRegionMarksInvalidRegionNotAssessed(t *testing.T) {
	ref := "ACGTACGTAC"
	r := &replay.Region{Name: "bad", Ref: []byte(ref), End: 5, Baseline: []variant.Variant{snv(ref, 7, "T", "0/1")}}
	res, err := New(Options{}, nil).CompareRegion(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, res.Failed)
	assert.ErrorIs(t, res.Err, replay.ErrPrecondition)
	require.Len(t, res.Records, 1)
	assert.Equal(t, N, res.Records[0].Decision)
	assert.Equal(t, ReasonFailed, res.Records[0].Reason)
}

func TestCompareRegionHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{}, nil).CompareRegion(ctx, &replay.Region{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFiltersSplit(t *testing.T) {
	ref := "ACGTACGTAC"
	del := variant.Variant{
		Chrom: "chr1", Pos: 2,
		Alleles:  []variant.Allele{{Start: 2, End: 5, Seq: []byte("GTA")}, {Start: 3, End: 5}},
		Genotype: variant.Genotype{Alleles: []int{1, 1}},
	}
	sym := snv(ref, 6, "T", "0/1")
	sym.Symbolic = true
	homref := snv(ref, 8, "T", "0/0")
	vs := []variant.Variant{snv(ref, 1, "A", "0/1"), del, sym, homref}

	keep, skip := Filters{SNPOnly: true}.split(replay.Query, vs, len(ref))
	require.Len(t, keep, 1)
	require.Len(t, skip, 2)
	assert.Equal(t, ReasonType, skip[0].Reason)
	assert.Equal(t, ReasonSymbolic, skip[1].Reason)

	keep, skip = Filters{MaxVariantSize: 1}.split(replay.Query, vs, len(ref))
	assert.Len(t, keep, 1)
	assert.Equal(t, ReasonSize, skip[0].Reason)

	keep, _ = Filters{IndelOnly: true}.split(replay.Query, vs, len(ref))
	require.Len(t, keep, 1)
	assert.Equal(t, 2, keep[0].Pos)
}
