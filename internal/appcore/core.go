// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"vcfbench/internal/bed"
	"vcfbench/internal/cmdutil"
	"vcfbench/internal/config"
	"vcfbench/internal/duo"
	"vcfbench/internal/fasta"
	"vcfbench/internal/jsonutil"
	"vcfbench/internal/output"
	"vcfbench/internal/vcf"
	"vcfbench/internal/writers"
)

type Options struct {
	Config config.Config
	Quiet  bool
}

type VisitorFunc[T any] func(duo.Record) (keep bool, out T, err error)

type WriterFactory[T any] interface {
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// Run loads the inputs, compares them and writes records to stdout. Exit
// codes: 0 ok, 2 bad input, 3 runtime or output failure, 130 cancelled.
func Run[T any](
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	visit VisitorFunc[T],
	wf WriterFactory[T],
) int {
	cfg := o.Config
	log := cmdutil.NewLogger(stderr, cfg.Log.Level, o.Quiet)

	in := cfg.Inputs
	if in.Reference == "" || in.Baseline == "" || in.Query == "" {
		fmt.Fprintln(stderr, "error: --reference, --baseline and --query are required")
		return 2
	}
	if in.Baseline == "-" || in.Query == "-" {
		fmt.Fprintln(stderr, "error: only --reference can be read from stdin ('-')")
		return 2
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	input, regions, err := load(ctx, cfg)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	log.Info("inputs loaded",
		slog.Int("contigs", len(input.Ref.Names())),
		slog.Int("baseline", input.Baseline.Len()),
		slog.Int("query", input.Query.Len()),
	)

	thr := cfg.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}
	opts := cfg.DuoOptions()
	opts.Threads = thr
	opts.Regions = regions
	cmp := duo.New(opts, log)

	if s, ok := any(wf).(interface{ Streams() bool }); ok {
		log.Debug("writer started", slog.Bool("streaming", s.Streams()), slog.String("format", cfg.Output.Format))
	}
	outw := bufio.NewWriter(stdout)
	inCh, writeErr := wf.Start(outw, thr*4)

	sum, total, perr := cmdutil.RunStream[T](ctx, cmp, input, visit,
		func(x T) error {
			select {
			case inCh <- x:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}
	log.Debug("records written", slog.Int("records", total))

	if path := cfg.Output.Summary; path != "" {
		if err := jsonutil.WriteFile(path, output.ToAPISummary(sum)); err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
	}
	if !o.Quiet {
		_ = output.WriteSummaryText(stderr, sum)
	}
	if sum.CappedRegions > 0 {
		cmdutil.Warnf(stderr, o.Quiet, "%d region(s) hit a search cap; their calls are lower bounds", sum.CappedRegions)
	}
	if path := cfg.Output.Metrics; path != "" {
		if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
	}
	return 0
}

// load reads the reference, both call sets and the optional BED file in
// parallel.
func load(ctx context.Context, cfg config.Config) (duo.Input, *bed.Regions, error) {
	var (
		in      duo.Input
		regions *bed.Regions
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Ref, err = fasta.Load(gctx, cfg.Inputs.Reference)
		return err
	})
	g.Go(func() (err error) {
		in.Baseline, err = vcf.Load(cfg.Inputs.Baseline, cfg.Inputs.BaselineSample)
		return err
	})
	g.Go(func() (err error) {
		in.Query, err = vcf.Load(cfg.Inputs.Query, cfg.Inputs.QuerySample)
		return err
	})
	if cfg.Filters.BED != "" {
		g.Go(func() (err error) {
			regions, err = bed.Load(cfg.Filters.BED)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return duo.Input{}, nil, err
	}
	return in, regions, nil
}
