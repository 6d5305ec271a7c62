// internal/output/json.go
package output

import (
	"io"

	"vcfbench/internal/duo"
	"vcfbench/internal/jsonutil"
	"vcfbench/pkg/api"
)

// ToAPIRecord converts a labelled call to the stable wire schema (v1).
func ToAPIRecord(r duo.Record) api.RecordV1 {
	v := r.Variant
	alt := append([]string(nil), v.Alt...)
	if alt == nil {
		alt = []string{}
	}
	return api.RecordV1{
		Chrom:      v.Chrom,
		Pos:        v.Pos + 1,
		ID:         dotless(v.Name),
		Ref:        v.Ref,
		Alt:        alt,
		GT:         v.Genotype.String(),
		Filter:     dotless(v.Filter),
		Side:       r.Side.String(),
		Decision:   string(r.Decision),
		Kind:       string(r.Kind),
		Region:     r.Region,
		Reason:     r.Reason,
		LowerBound: r.LowerBound,
	}
}

// ToAPISummary converts a run summary to the stable wire schema (v1).
func ToAPISummary(s *duo.Summary) api.SummaryV1 {
	return api.SummaryV1{
		RunID:         s.RunID,
		Baseline:      s.BaselineName,
		Query:         s.QueryName,
		BaselineCount: toAPICounts(s.Baseline),
		QueryCount:    toAPICounts(s.Query),
		Regions:       s.Regions,
		CappedRegions: s.CappedRegions,
		FailedRegions: s.FailedRegions,
		LowerBound:    s.LowerBound,
		Precision:     s.Precision,
		Recall:        s.Recall,
		F1:            s.F1,
	}
}

func toAPICounts(c duo.Counts) api.CountsV1 {
	return api.CountsV1{TP: c.TP, TPGenotype: c.TPGenotype, TPAllele: c.TPAllele, Miss: c.Miss, N: c.N}
}

func toAPIRecords(list []duo.Record) []api.RecordV1 {
	out := make([]api.RecordV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIRecord(r))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 records (pretty-indented).
func WriteJSON(w io.Writer, list []duo.Record) error {
	return jsonutil.EncodePretty(w, toAPIRecords(list))
}

// WriteSummaryJSON writes the v1 summary object (pretty-indented).
func WriteSummaryJSON(w io.Writer, s *duo.Summary) error {
	return jsonutil.EncodePretty(w, ToAPISummary(s))
}

func dotless(s string) string {
	if s == "." {
		return ""
	}
	return s
}
