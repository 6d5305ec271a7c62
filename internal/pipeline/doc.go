// Package pipeline fans replay regions out to a Comparator and hands the
// results back in region order, whatever the thread count.
//
// The only contract to implement is Comparator (CompareRegion).
// This keeps the pipeline swappable and testable.
package pipeline
