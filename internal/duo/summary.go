package duo

import "vcfbench/internal/replay"

// Counts tallies decisions for one side.
type Counts struct {
	TP         int
	TPGenotype int
	TPAllele   int
	Miss       int // FN on the baseline, FP on the query
	N          int
}

// Summary aggregates one run.
type Summary struct {
	RunID         string
	BaselineName  string
	QueryName     string
	Baseline      Counts
	Query         Counts
	Regions       int
	CappedRegions int
	FailedRegions int
	LowerBound    int // TP/FP/FN calls reported from capped regions
	Precision     float64
	Recall        float64
	F1            float64
}

func (s *Summary) add(r Record) {
	c := &s.Baseline
	if r.Side == replay.Query {
		c = &s.Query
	}
	switch r.Decision {
	case TP:
		c.TP++
		if r.Kind == KindAllele {
			c.TPAllele++
		} else {
			c.TPGenotype++
		}
	case FP, FN:
		c.Miss++
	case N:
		c.N++
		return
	}
	if r.LowerBound {
		s.LowerBound++
	}
}

// finish fills the ratios; an empty denominator yields 0.
func (s *Summary) finish() {
	s.Precision = ratio(s.Query.TP, s.Query.TP+s.Query.Miss)
	s.Recall = ratio(s.Baseline.TP, s.Baseline.TP+s.Baseline.Miss)
	if s.Precision+s.Recall > 0 {
		s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
	}
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}
