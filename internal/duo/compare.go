// Package duo compares a query call set against a baseline call set: it
// filters calls, partitions each contig into regions, replays every region
// (genotype match, then allele match on what is left) and labels each call.
package duo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"vcfbench/internal/fasta"
	"vcfbench/internal/pipeline"
	"vcfbench/internal/region"
	"vcfbench/internal/replay"
	"vcfbench/internal/variant"
	"vcfbench/internal/vcf"
)

var tracer = otel.Tracer("vcfbench.duo")

// Options configure a comparison.
type Options struct {
	Filters
	ClusterGap    int
	AlleleMatch   bool // run the allele pass on calls the genotype pass left
	MaxPaths      int
	MaxIterations int
	MaxDuration   time.Duration // per region search; 0 disables
	Threads       int
}

// Input is what one run compares.
type Input struct {
	Ref      *fasta.Reference
	Baseline *vcf.CallSet
	Query    *vcf.CallSet
}

// RegionResult is the outcome of one region.
type RegionResult struct {
	Region     string
	Records    []Record
	Capped     bool
	Failed     bool
	Err        error // cause when Failed
	Iterations int
	Paths      int
}

type Comparator struct {
	opts Options
	gm   *replay.Engine
	am   *replay.Engine
	log  *slog.Logger
}

func New(opts Options, log *slog.Logger) *Comparator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.ClusterGap <= 0 {
		opts.ClusterGap = region.DefaultGap
	}
	rc := replay.Config{
		MaxPaths:      opts.MaxPaths,
		MaxIterations: opts.MaxIterations,
		MaxDuration:   opts.MaxDuration,
	}
	c := &Comparator{opts: opts, log: log}
	rc.Mode = variant.GenotypeMatch
	c.gm = replay.New(rc)
	if opts.AlleleMatch {
		rc.Mode = variant.AlleleMatch
		c.am = replay.New(rc)
	}
	return c
}

// CompareRegion replays r and labels every call in it. A region the search
// cannot handle is reported as Failed with its calls marked N; only context
// cancellation is returned as an error.
func (c *Comparator) CompareRegion(ctx context.Context, r *replay.Region) (RegionResult, error) {
	if err := ctx.Err(); err != nil {
		return RegionResult{}, err
	}
	res, err := c.gm.Replay(r)
	if err != nil {
		return c.failed(r, err)
	}
	observeSearch(res.Paths, res.Iterations)
	out := RegionResult{Region: r.Name, Capped: res.LowerBound, Iterations: res.Iterations, Paths: res.Paths}

	kinds := [2][]Kind{kindsFor(res.BaselineMatched), kindsFor(res.QueryMatched)}
	if c.am != nil {
		c.allelePass(r, &out, &kinds)
	}

	for _, s := range []replay.Side{replay.Baseline, replay.Query} {
		miss := FN
		if s == replay.Query {
			miss = FP
		}
		for i, v := range r.Variants(s) {
			rec := Record{Side: s, Variant: v, Decision: TP, Kind: kinds[s][i], Region: r.Name, LowerBound: out.Capped}
			if rec.Kind == KindNone {
				rec.Decision = miss
			}
			out.Records = append(out.Records, rec)
		}
	}

	if out.Capped {
		regionsTotal.WithLabelValues("capped").Inc()
		c.log.Warn("region search capped",
			slog.String("region", r.Name),
			slog.Int("paths", out.Paths),
			slog.Int("iterations", out.Iterations),
			slog.Any("cause", res.Exhausted),
		)
	} else {
		regionsTotal.WithLabelValues("complete").Inc()
		c.log.Debug("region compared",
			slog.String("region", r.Name),
			slog.Int("baseline", len(r.Baseline)),
			slog.Int("query", len(r.Query)),
			slog.Int("matched", res.Score.Matched()),
		)
	}
	return out, nil
}

// allelePass replays the calls the genotype pass left unmatched with ploidy
// ignored and marks new matches as allele matches.
func (c *Comparator) allelePass(r *replay.Region, out *RegionResult, kinds *[2][]Kind) {
	var idx [2][]int
	sub := &replay.Region{Name: r.Name, Ref: r.Ref, Start: r.Start, End: r.End}
	for _, s := range []replay.Side{replay.Baseline, replay.Query} {
		var vs []variant.Variant
		for i, v := range r.Variants(s) {
			if kinds[s][i] == KindNone {
				idx[s] = append(idx[s], i)
				vs = append(vs, v)
			}
		}
		if s == replay.Baseline {
			sub.Baseline = vs
		} else {
			sub.Query = vs
		}
	}
	if len(sub.Baseline) == 0 || len(sub.Query) == 0 {
		return
	}
	res, err := c.am.Replay(sub)
	if err != nil {
		c.log.Warn("allele pass skipped", slog.String("region", r.Name), slog.Any("err", err))
		return
	}
	observeSearch(res.Paths, res.Iterations)
	out.Iterations += res.Iterations
	out.Paths += res.Paths
	out.Capped = out.Capped || res.LowerBound
	for i, ok := range res.BaselineMatched {
		if ok {
			kinds[replay.Baseline][idx[replay.Baseline][i]] = KindAllele
		}
	}
	for i, ok := range res.QueryMatched {
		if ok {
			kinds[replay.Query][idx[replay.Query][i]] = KindAllele
		}
	}
}

func (c *Comparator) failed(r *replay.Region, err error) (RegionResult, error) {
	var oe *replay.OverlapError
	if !errors.As(err, &oe) && !errors.Is(err, replay.ErrPrecondition) {
		return RegionResult{}, err
	}
	regionsTotal.WithLabelValues("failed").Inc()
	c.log.Error("region comparison failed", slog.String("region", r.Name), slog.Any("err", err))
	out := RegionResult{Region: r.Name, Failed: true, Err: err}
	for _, s := range []replay.Side{replay.Baseline, replay.Query} {
		for _, v := range r.Variants(s) {
			out.Records = append(out.Records, notAssessed(s, v, r.Name, ReasonFailed))
		}
	}
	return out, nil
}

func kindsFor(matched []bool) []Kind {
	out := make([]Kind, len(matched))
	for i, ok := range matched {
		out[i] = KindNone
		if ok {
			out[i] = KindGenotype
		}
	}
	return out
}

// Run compares every contig of in, calling visit for each call in contig
// order and, within a contig, by position with baseline first.
func (c *Comparator) Run(ctx context.Context, in Input, visit func(Record) error) (*Summary, error) {
	sum := &Summary{
		RunID:        uuid.NewString(),
		BaselineName: in.Baseline.Sample,
		QueryName:    in.Query.Sample,
	}
	c.log.Info("comparison started",
		slog.String("run_id", sum.RunID),
		slog.String("baseline", sum.BaselineName),
		slog.String("query", sum.QueryName),
		slog.Bool("allele_match", c.opts.AlleleMatch),
	)
	for _, chrom := range contigs(in.Baseline, in.Query) {
		if err := c.runContig(ctx, in, chrom, sum, visit); err != nil {
			return nil, err
		}
	}
	sum.finish()
	c.log.Info("comparison finished",
		slog.String("run_id", sum.RunID),
		slog.Int("regions", sum.Regions),
		slog.Int("capped", sum.CappedRegions),
		slog.Int("failed", sum.FailedRegions),
		slog.Float64("precision", sum.Precision),
		slog.Float64("recall", sum.Recall),
	)
	return sum, nil
}

func (c *Comparator) runContig(ctx context.Context, in Input, chrom string, sum *Summary, visit func(Record) error) error {
	ctx, span := tracer.Start(ctx, "duo.Contig",
		trace.WithAttributes(attribute.String("contig", chrom)),
	)
	defer span.End()

	ref, ok := in.Ref.Seq(chrom)
	contigLen := len(ref)
	if !ok {
		contigLen = -1
		c.log.Warn("contig missing from reference", slog.String("contig", chrom))
	}
	base, recs := c.opts.split(replay.Baseline, in.Baseline.Variants(chrom), contigLen)
	query, qskip := c.opts.split(replay.Query, in.Query.Variants(chrom), contigLen)
	recs = append(recs, qskip...)
	if c.opts.RefOverlap {
		var nb, nq int
		base, nb = vcf.ResolveOverlaps(base)
		query, nq = vcf.ResolveOverlaps(query)
		if nb+nq > 0 {
			c.log.Debug("repeat alleles re-placed",
				slog.String("contig", chrom),
				slog.Int("baseline", nb),
				slog.Int("query", nq),
			)
		}
	}

	regions := region.Partition(chrom, ref, base, query, c.opts.ClusterGap)
	span.SetAttributes(attribute.Int("regions", len(regions)))

	err := pipeline.ForEachRegion(ctx, pipeline.Config{Threads: c.opts.Threads}, regions, c,
		func(_ int, rr RegionResult) error {
			sum.Regions++
			if rr.Capped {
				sum.CappedRegions++
			}
			if rr.Failed {
				sum.FailedRegions++
			}
			recs = append(recs, rr.Records...)
			return nil
		})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "contig comparison failed")
		return fmt.Errorf("contig %s: %w", chrom, err)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Variant.Pos != b.Variant.Pos {
			return a.Variant.Pos < b.Variant.Pos
		}
		return a.Side < b.Side
	})
	for _, r := range recs {
		sum.add(r)
		recordsTotal.WithLabelValues(r.Side.String(), string(r.Decision)).Inc()
		if err := visit(r); err != nil {
			return err
		}
	}
	c.log.Info("contig compared",
		slog.String("contig", chrom),
		slog.Int("regions", len(regions)),
		slog.Int("calls", len(recs)),
	)
	return nil
}

// contigs lists baseline contigs first, then query-only ones.
func contigs(base, query *vcf.CallSet) []string {
	seen := map[string]bool{}
	var out []string
	for _, cs := range []*vcf.CallSet{base, query} {
		for _, c := range cs.Contigs() {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
