// internal/visitors/decisions.go
package visitors

import (
	"fmt"
	"strings"

	"vcfbench/internal/duo"
)

// Decisions keeps only records whose decision is in the set.
// An empty set keeps everything.
type Decisions map[duo.Decision]bool

// ParseDecisions reads a comma-separated list such as "FP,FN".
func ParseDecisions(csv string) (Decisions, error) {
	out := Decisions{}
	for _, f := range strings.Split(csv, ",") {
		f = strings.ToUpper(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		switch d := duo.Decision(f); d {
		case duo.TP, duo.FP, duo.FN, duo.N:
			out[d] = true
		default:
			return nil, fmt.Errorf("unknown decision %q (want TP, FP, FN or N)", f)
		}
	}
	return out, nil
}

func (d Decisions) Visit(r duo.Record) (bool, duo.Record, error) {
	if len(d) == 0 || d[r.Decision] {
		return true, r, nil
	}
	return false, duo.Record{}, nil
}
