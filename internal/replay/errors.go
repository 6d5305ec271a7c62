package replay

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition marks input rejected before the search starts
	// (unsorted lists, variants outside the window, bad genotype indices).
	ErrPrecondition = errors.New("replay: precondition violated")

	// ErrResourceExhausted marks a search stopped by a cap. Run never returns
	// it; it is reported through Result.Exhausted.
	ErrResourceExhausted = errors.New("replay: resource cap reached")
)

// OverlapError reports an attempt to include a variant that starts before the
// semi-path's reach. Step never branches that way, so seeing one means the
// region's search is broken and must be abandoned.
type OverlapError struct {
	Side  Side
	Index int // variant being included
	Start int
	Reach int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("replay: %s variant %d starts at %d before reach %d", e.Side, e.Index, e.Start, e.Reach)
}

func preconditionf(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrPrecondition}, a...)...)
}
