package visitors

import "vcfbench/internal/duo"

// PassThrough returns the record unchanged.
type PassThrough struct{}

func (PassThrough) Visit(r duo.Record) (keep bool, out duo.Record, err error) {
	return true, r, nil
}
