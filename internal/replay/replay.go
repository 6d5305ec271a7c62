// Package replay is the comparison core. For one region it searches the
// ways baseline and query variants can be included (with a haplotype
// orientation per call) so that both sides synthesize the same sequence,
// and returns the best such assignment.
//
// The search is synchronous and deterministic; it never performs I/O and
// never logs. Callers run one Engine.Replay per region and may run regions
// in parallel.
package replay

import (
	"fmt"
	"time"

	"vcfbench/internal/variant"
)

// Caps used when Config leaves them at zero.
const (
	DefaultMaxPaths      = 150000
	DefaultMaxIterations = 10000000
)

// Config bounds the search.
type Config struct {
	MaxIterations int               // paths expanded
	MaxPaths      int               // distinct paths retained in the path set
	MaxDuration   time.Duration     // 0 disables; hitting it makes results timing dependent
	Mode          variant.MatchMode // genotype or allele matching
}

func (c Config) withDefaults() Config {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.MaxPaths <= 0 {
		c.MaxPaths = DefaultMaxPaths
	}
	return c
}

// Result is the outcome of one region's search.
type Result struct {
	Best            Path
	Score           Score
	BaselineMatched []bool
	QueryMatched    []bool

	// LowerBound is set when a cap stopped the search; Score is then the
	// best found, not necessarily the best possible. Exhausted says which cap.
	LowerBound bool
	Exhausted  error

	Iterations int
	Paths      int
}

type Engine struct{ cfg Config }

func New(c Config) *Engine { return &Engine{cfg: c.withDefaults()} }

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Replay searches r and returns the best complete path.
//
// Input that breaks the search's assumptions is rejected with
// ErrPrecondition before anything runs. An *OverlapError means the search
// itself broke an invariant; the region has no usable result. Cap
// exhaustion is not an error.
//
// Among equally scored complete paths the one discovered first wins.
// Discovery order follows level-by-level expansion with children generated
// orientation by orientation, inclusions before the exclusion.
func (e *Engine) Replay(r *Region) (Result, error) {
	if err := r.Validate(); err != nil {
		return Result{}, err
	}
	cfg := e.cfg
	var deadline time.Time
	if cfg.MaxDuration > 0 {
		deadline = time.Now().Add(cfg.MaxDuration)
	}

	var (
		set       = NewPathSet()
		best      Path
		found     bool
		seq       int
		iter      int
		exhausted error
		rest      []Path
	)
	keep := func(f Path) {
		if !found || f.Score().Better(best.Score()) {
			best, found = f, true
		}
	}
	consider := func(p Path) {
		seq++
		p.seq = seq
		if !p.Done(r) {
			set.Offer(p)
			return
		}
		if f, ok := p.finish(r); ok {
			keep(f)
		}
	}

	consider(newPath(r))

search:
	for set.Pending() > 0 {
		frontier := set.Frontier()
		for i, p := range frontier {
			switch {
			case iter >= cfg.MaxIterations:
				exhausted = fmt.Errorf("%w: %d iterations", ErrResourceExhausted, iter)
			case set.Len() > cfg.MaxPaths:
				exhausted = fmt.Errorf("%w: %d paths", ErrResourceExhausted, set.Len())
			case !deadline.IsZero() && time.Now().After(deadline):
				exhausted = fmt.Errorf("%w: %s elapsed", ErrResourceExhausted, cfg.MaxDuration)
			}
			if exhausted != nil {
				rest = append(frontier[i:], set.Frontier()...)
				break search
			}
			iter++
			children, err := p.Step(r, cfg.Mode)
			if err != nil {
				return Result{}, fmt.Errorf("region %s: %w", r.Name, err)
			}
			for _, c := range children {
				consider(c)
			}
		}
	}

	// Unexpanded paths still bound the answer from below: skipping all their
	// remaining variants completes them whenever nothing is left uncompared.
	for _, p := range rest {
		if f, ok := p.excludeRest(r).finish(r); ok {
			keep(f)
		}
	}
	if !found {
		best, _ = newPath(r).excludeRest(r).finish(r)
		seq++
		best.seq = seq
	}

	res := Result{
		Best:            best,
		Score:           best.Score(),
		BaselineMatched: matched(best.base, len(r.Baseline)),
		QueryMatched:    matched(best.query, len(r.Query)),
		LowerBound:      exhausted != nil,
		Exhausted:       exhausted,
		Iterations:      iter,
		Paths:           set.Len(),
	}
	return res, nil
}

func matched(sp SemiPath, n int) []bool {
	out := make([]bool, n)
	for _, o := range sp.included {
		out[o.Index] = true
	}
	return out
}
