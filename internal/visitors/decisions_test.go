package visitors

import (
	"testing"

	"vcfbench/internal/duo"
)

func TestParseDecisions(t *testing.T) {
	d, err := ParseDecisions(" fp,FN ,")
	if err != nil {
		t.Fatal(err)
	}
	if len(d) != 2 || !d[duo.FP] || !d[duo.FN] {
		t.Fatalf("got %v", d)
	}
	if _, err := ParseDecisions("TP,maybe"); err == nil {
		t.Fatal("expected error for unknown decision")
	}
}

func TestDecisionsVisit(t *testing.T) {
	d := Decisions{duo.FP: true}
	if keep, _, _ := d.Visit(duo.Record{Decision: duo.TP}); keep {
		t.Fatal("TP should be dropped")
	}
	if keep, r, _ := d.Visit(duo.Record{Decision: duo.FP}); !keep || r.Decision != duo.FP {
		t.Fatal("FP should be kept")
	}
	if keep, _, _ := (Decisions{}).Visit(duo.Record{Decision: duo.N}); !keep {
		t.Fatal("empty set keeps everything")
	}
	if keep, _, _ := (PassThrough{}).Visit(duo.Record{}); !keep {
		t.Fatal("pass-through keeps everything")
	}
}
