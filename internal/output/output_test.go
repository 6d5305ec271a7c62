package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"vcfbench/internal/duo"
	"vcfbench/internal/replay"
	"vcfbench/internal/variant"
	"vcfbench/pkg/api"
)

func rec() duo.Record {
	return duo.Record{
		Side: replay.Query,
		Variant: variant.Variant{
			Chrom: "chr1", Name: ".", Pos: 99, Ref: "A", Alt: []string{"C", "G"}, Filter: "PASS",
			Genotype: variant.Genotype{Alleles: []int{1, 2}, Phased: true},
		},
		Decision:   duo.FP,
		Kind:       duo.KindNone,
		Region:     "chr1:100-100",
		LowerBound: true,
	}
}

func TestFormats_Stable(t *testing.T) {
	if FormatText != "text" || FormatJSON != "json" || FormatJSONL != "jsonl" {
		t.Fatalf("output format constants changed")
	}
	const want = "chrom\tpos\tid\tref\talt\tgt\tside\tdecision\tkind\tregion\tlower_bound\treason"
	if TSVHeader != want {
		t.Fatalf("TSVHeader changed:\n got: %q\nwant: %q", TSVHeader, want)
	}
}

func TestWriteText_Row(t *testing.T) {
	var b bytes.Buffer
	if err := WriteText(&b, []duo.Record{rec()}, true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 2 || lines[0] != TSVHeader {
		t.Fatalf("unexpected output:\n%s", b.String())
	}
	want := "chr1\t100\t.\tA\tC,G\t1|2\tquery\tFP\t.\tchr1:100-100\t1\t."
	if lines[1] != want {
		t.Fatalf("row:\n got: %q\nwant: %q", lines[1], want)
	}
	if n := len(strings.Split(lines[1], "\t")); n != len(strings.Split(TSVHeader, "\t")) {
		t.Fatalf("row has %d columns", n)
	}
}

func TestStreamText_DrainsInput(t *testing.T) {
	in := make(chan duo.Record, 3)
	for i := 0; i < 3; i++ {
		in <- rec()
	}
	close(in)
	var b bytes.Buffer
	if err := StreamText(&b, in, false); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(b.String(), "\n"); got != 3 {
		t.Fatalf("want 3 lines, got %d", got)
	}
}

func TestWriteJSON_V1(t *testing.T) {
	var b bytes.Buffer
	if err := WriteJSON(&b, []duo.Record{rec()}); err != nil {
		t.Fatal(err)
	}
	var got []api.RecordV1
	if err := json.Unmarshal(b.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v\n%s", err, b.String())
	}
	if len(got) != 1 || got[0].Pos != 100 || got[0].ID != "" || got[0].Side != "query" || !got[0].LowerBound {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestSummaryOutputs(t *testing.T) {
	s := &duo.Summary{RunID: "r1", Baseline: duo.Counts{TP: 3, Miss: 1}, Query: duo.Counts{TP: 3, Miss: 2}, Regions: 4, Precision: 0.6, Recall: 0.75}
	var b bytes.Buffer
	if err := WriteSummaryJSON(&b, s); err != nil {
		t.Fatal(err)
	}
	var got api.SummaryV1
	if err := json.Unmarshal(b.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.RunID != "r1" || got.BaselineCount.TP != 3 || got.QueryCount.Miss != 2 || got.Recall != 0.75 {
		t.Fatalf("unexpected summary: %+v", got)
	}

	b.Reset()
	if err := WriteSummaryText(&b, s); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "FP=2") || !strings.Contains(b.String(), "recall=0.7500") {
		t.Fatalf("summary text: %s", b.String())
	}
}
