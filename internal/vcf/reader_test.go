package vcf

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gvcf "github.com/vertgenlab/gonomics/vcf"
)

const sampleText = `##fileformat=VCFv4.2
##contig=<ID=chr1,length=100>
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	NA1	NA2
chr1	10	rs1	A	G	50	PASS	.	GT:DP	0/1:10	1/1:3
chr1	4	.	ACGT	A	20	LowQ	.	GT	1|0	0/0
chr2	7	.	CA	CTA,<DEL>	20	.	.	GT	1/2	./.
chr1	20	.	ATTG	ACCG	20	PASS	.	GT	1	1
`

var header = gvcf.Header{Text: []string{
	"##fileformat=VCFv4.2",
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tNA1\tNA2",
}}

func gt(alleles ...int16) gvcf.Sample {
	return gvcf.Sample{Alleles: alleles, Phase: make([]bool, len(alleles))}
}

func phased(alleles ...int16) gvcf.Sample {
	s := gt(alleles...)
	for i := range s.Phase {
		s.Phase[i] = true
	}
	return s
}

func records() []gvcf.Vcf {
	return []gvcf.Vcf{
		{Chr: "chr1", Pos: 10, Id: "rs1", Ref: "A", Alt: []string{"G"}, Qual: 50, Filter: "PASS", Samples: []gvcf.Sample{gt(0, 1), gt(1, 1)}},
		{Chr: "chr1", Pos: 4, Id: ".", Ref: "ACGT", Alt: []string{"A"}, Qual: 20, Filter: "LowQ", Samples: []gvcf.Sample{phased(1, 0), gt(0, 0)}},
		{Chr: "chr2", Pos: 7, Id: ".", Ref: "CA", Alt: []string{"CTA", "<DEL>"}, Qual: 20, Filter: ".", Samples: []gvcf.Sample{gt(1, 2), gt(-1, -1)}},
		{Chr: "chr1", Pos: 20, Id: ".", Ref: "atTG", Alt: []string{"ACCG"}, Qual: 20, Filter: "PASS", Samples: []gvcf.Sample{gt(1), gt(1)}},
	}
}

func TestFromRecordsGroupsAndSortsPerContig(t *testing.T) {
	cs, err := FromRecords(records(), header, "")
	require.NoError(t, err)
	assert.Equal(t, "NA1", cs.Sample)
	assert.Equal(t, []string{"chr1", "chr2"}, cs.Contigs())
	assert.Equal(t, 4, cs.Len())

	chr1 := cs.Variants("chr1")
	require.Len(t, chr1, 3)
	del := chr1[0]
	assert.Equal(t, 3, del.Pos)
	assert.Equal(t, 4, del.Start(), "anchor base is trimmed")
	assert.Equal(t, 7, del.End())
	assert.Empty(t, del.Alleles[1].Seq)
	assert.True(t, del.Genotype.Phased)
	assert.False(t, del.IsPass())

	snp := chr1[1]
	assert.Equal(t, "rs1", snp.Name)
	assert.Equal(t, 50.0, snp.Qual)
	assert.Equal(t, "0/1", snp.Genotype.String())
	assert.True(t, snp.IsHeterozygous())

	mnp := chr1[2]
	assert.Equal(t, "ATTG", mnp.Ref, "bases are upper-cased")
	assert.Equal(t, 20, mnp.Start())
	assert.Equal(t, 22, mnp.End())
	assert.Equal(t, "CC", string(mnp.Alleles[1].Seq))
	assert.Len(t, mnp.Genotype.Alleles, 1)
	assert.False(t, mnp.Genotype.Phased)
}

func TestSymbolicAlleleIsFlaggedOnlyWhenCalled(t *testing.T) {
	cs, err := FromRecords(records(), header, "")
	require.NoError(t, err)
	v := cs.Variants("chr2")[0]
	assert.True(t, v.Symbolic)
	assert.Equal(t, "T", string(v.Alleles[1].Seq))
	assert.Equal(t, 7, v.Alleles[1].Start)

	cs, err = FromRecords(records(), header, "NA2")
	require.NoError(t, err)
	assert.False(t, cs.Variants("chr2")[0].Symbolic)
	assert.True(t, cs.Variants("chr2")[0].IsHomRef())
}

func TestUnknownSampleAndBadGT(t *testing.T) {
	_, err := FromRecords(records(), header, "NA9")
	assert.ErrorContains(t, err, "NA9")

	_, err = FromRecords(nil, gvcf.Header{Text: []string{"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO"}}, "")
	assert.ErrorContains(t, err, "no sample")

	bad := []gvcf.Vcf{{Chr: "chr1", Pos: 1, Ref: "A", Alt: []string{"C"}, Samples: []gvcf.Sample{gt(0, 3)}}}
	_, err = FromRecords(bad, header, "")
	assert.ErrorContains(t, err, "record 1")
}

func TestMissingSampleColumnIsNoCall(t *testing.T) {
	recs := []gvcf.Vcf{{Chr: "chr1", Pos: 5, Ref: "A", Alt: []string{"C"}}}
	cs, err := FromRecords(recs, header, "NA2")
	require.NoError(t, err)
	assert.True(t, cs.Variants("chr1")[0].IsHomRef())
}

func TestLoadGzip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "calls.vcf.gz")
	fh, err := os.Create(p)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write([]byte(sampleText))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())

	cs, err := Load(p, "NA2")
	require.NoError(t, err)
	assert.Equal(t, "NA2", cs.Sample)
	assert.Equal(t, 4, cs.Len())
	assert.Equal(t, "1/1", cs.Variants("chr1")[1].Genotype.String())
}

func TestLoadRejectsMissingAndStdin(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.vcf"), "")
	assert.Error(t, err)
	_, err = Load("-", "")
	assert.ErrorContains(t, err, "stdin")
}
