// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"vcfbench/internal/replay"
)

// Config controls the fan-out.
type Config struct {
	Threads int // concurrent regions; <1 means all CPUs
}

// Comparator is the minimal capability the pipeline needs.
// Any comparator (including fakes in tests) can satisfy this.
type Comparator[T any] interface {
	CompareRegion(ctx context.Context, r *replay.Region) (T, error)
}

// ForEachRegion runs cmp over regions with at most cfg.Threads in flight and
// calls visit with each result in input order. It returns the first error
// from cmp or visit, or the context error if ctx ends first.
func ForEachRegion[T any](
	ctx context.Context,
	cfg Config,
	regions []*replay.Region,
	cmp Comparator[T],
	visit func(i int, res T) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)

	out := make([]T, len(regions))
	errs := make([]error, len(regions))
	done := make([]chan struct{}, len(regions))
	for i := range done {
		done[i] = make(chan struct{})
	}

	// Feed work; g.Go blocks while Threads tasks are running.
	fed := make(chan struct{})
	go func() {
		defer close(fed)
		for i, r := range regions {
			if gctx.Err() != nil {
				return
			}
			g.Go(func() error {
				defer close(done[i])
				res, err := cmp.CompareRegion(gctx, r)
				if err != nil {
					errs[i] = err
					return err
				}
				out[i] = res
				return nil
			})
		}
	}()

	// Visit in order.
	var verr error
visit:
	for i := range regions {
		select {
		case <-done[i]:
		case <-gctx.Done():
			break visit
		}
		if errs[i] != nil {
			break
		}
		if err := visit(i, out[i]); err != nil {
			verr = err
			cancel()
			break
		}
		var zero T
		out[i] = zero
	}

	<-fed
	if err := g.Wait(); err != nil && verr == nil {
		verr = err
	}
	if verr != nil {
		return verr
	}
	return ctx.Err()
}
