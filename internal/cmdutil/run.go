package cmdutil

import (
	"context"

	"vcfbench/internal/duo"
)

// RunStream runs the comparison, applies a visitor, and streams results via send.
// It returns the summary, the number of kept records and the first error.
func RunStream[T any](
	ctx context.Context,
	cmp *duo.Comparator,
	in duo.Input,
	visit func(duo.Record) (bool, T, error),
	send func(T) error,
) (*duo.Summary, int, error) {
	total := 0
	sum, err := cmp.Run(ctx, in, func(r duo.Record) error {
		keep, out, vErr := visit(r)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	})
	return sum, total, err
}
