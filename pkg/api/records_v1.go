// pkg/api/records_v1.go
package api

// RecordV1 is the stable JSON/JSONL schema for one labelled call.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RecordV1 struct {
	Chrom      string   `json:"chrom"`
	Pos        int      `json:"pos"` // 1-based, as in the VCF
	ID         string   `json:"id,omitempty"`
	Ref        string   `json:"ref"`
	Alt        []string `json:"alt"`
	GT         string   `json:"gt"`
	Filter     string   `json:"filter,omitempty"`
	Side       string   `json:"side"`     // "baseline" | "query"
	Decision   string   `json:"decision"` // "TP" | "FP" | "FN" | "N"
	Kind       string   `json:"kind"`     // "gm" | "am" | "."
	Region     string   `json:"region,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	LowerBound bool     `json:"lower_bound,omitempty"`
}

// CountsV1 tallies one side.
type CountsV1 struct {
	TP         int `json:"tp"`
	TPGenotype int `json:"tp_gm"`
	TPAllele   int `json:"tp_am"`
	Miss       int `json:"miss"` // FN for baseline, FP for query
	N          int `json:"n"`
}

// SummaryV1 is the stable schema for a run summary.
type SummaryV1 struct {
	RunID         string   `json:"run_id"`
	Baseline      string   `json:"baseline_sample"`
	Query         string   `json:"query_sample"`
	BaselineCount CountsV1 `json:"baseline"`
	QueryCount    CountsV1 `json:"query"`
	Regions       int      `json:"regions"`
	CappedRegions int      `json:"capped_regions"`
	FailedRegions int      `json:"failed_regions"`
	LowerBound    int      `json:"lower_bound_calls,omitempty"`
	Precision     float64  `json:"precision"`
	Recall        float64  `json:"recall"`
	F1            float64  `json:"f1"`
}
