package duo

import (
	"vcfbench/internal/replay"
	"vcfbench/internal/variant"
)

// Decision is the per-call verdict.
type Decision string

const (
	TP Decision = "TP" // matched on the other side
	FP Decision = "FP" // query call without a baseline counterpart
	FN Decision = "FN" // baseline call missed by the query
	N  Decision = "N"  // not assessed
)

// Kind says which pass produced a TP.
type Kind string

const (
	KindGenotype Kind = "gm"
	KindAllele   Kind = "am"
	KindNone     Kind = "."
)

// Record is one call with its verdict.
type Record struct {
	Side     replay.Side
	Variant  variant.Variant
	Decision Decision
	Kind     Kind
	Region   string // replay region name, empty when the call never reached one
	Reason   string // why a call was not assessed

	// LowerBound marks calls from a region whose search hit a cap; a FP/FN
	// there may be a TP that the search did not reach.
	LowerBound bool
}

// notAssessed builds an N record.
func notAssessed(s replay.Side, v variant.Variant, region, reason string) Record {
	return Record{Side: s, Variant: v, Decision: N, Kind: KindNone, Region: region, Reason: reason}
}
