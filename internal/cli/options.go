// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"vcfbench/internal/config"
	"vcfbench/internal/visitors"
)

// Options is everything a compare run needs after flag parsing.
type Options struct {
	ConfigPath string
	Config     config.Config
	Decisions  visitors.Decisions
	Quiet      bool
}

// flagValues are the raw flag targets. Only flags the user set override the
// config file.
type flagValues struct {
	configPath string

	reference, baseline, query string
	baselineSample, querySample string
	bedPath                     string

	passOnly, snpOnly, indelOnly bool
	filterName                   string
	refOverlap                   bool
	maxVariantSize               int

	maxPaths, maxIterations int
	maxDuration             time.Duration
	clusterGap              int
	noAlleleMatch           bool
	threads                 int

	format    string
	outDir    string
	sort      bool
	noHeader  bool
	summary   string
	metrics   string
	decisions string

	logLevel string
	quiet    bool
}

// RegisterCompareFlags adds the compare flags to fs.
func RegisterCompareFlags(fs *pflag.FlagSet) *flagValues {
	d := config.Default()
	v := &flagValues{}

	fs.StringVarP(&v.configPath, "config", "c", "", "YAML config file")

	// Input
	fs.StringVarP(&v.reference, "reference", "r", "", "reference FASTA (.gz ok, '-' for stdin) [*]")
	fs.StringVarP(&v.baseline, "baseline", "b", "", "baseline VCF (.gz ok) [*]")
	fs.StringVarP(&v.query, "query", "q", "", "query VCF (.gz ok) [*]")
	fs.StringVar(&v.baselineSample, "baseline-sample", "", "baseline sample name (default: first sample)")
	fs.StringVar(&v.querySample, "query-sample", "", "query sample name (default: first sample)")
	fs.StringVar(&v.bedPath, "bed", "", "only assess calls overlapping these BED intervals")

	// Filters
	fs.BoolVar(&v.passOnly, "pass-only", d.Filters.PassOnly, "assess only FILTER=PASS calls")
	fs.StringVar(&v.filterName, "filter", d.Filters.FilterName, "assess only calls with this FILTER ('none' keeps all)")
	fs.BoolVar(&v.snpOnly, "snp-only", false, "assess only SNPs")
	fs.BoolVar(&v.indelOnly, "indel-only", false, "assess only indels")
	fs.IntVar(&v.maxVariantSize, "max-variant-size", d.Filters.MaxVariantSize, "skip calls with longer alleles (0 = no limit)")
	fs.BoolVar(&v.refOverlap, "ref-overlap", false, "re-place repeat indels so same-side calls do not overlap")

	// Search
	fs.IntVar(&v.maxPaths, "max-paths", d.Search.MaxPaths, "max distinct paths per region search")
	fs.IntVar(&v.maxIterations, "max-iterations", d.Search.MaxIterations, "max path expansions per region search")
	fs.DurationVar(&v.maxDuration, "max-duration", 0, "wall-clock budget per region search (0 = none)")
	fs.IntVar(&v.clusterGap, "cluster-gap", d.Search.ClusterGap, "bases between independent regions")
	fs.BoolVar(&v.noAlleleMatch, "no-allele-match", false, "skip the allele-match pass")
	fs.IntVarP(&v.threads, "threads", "t", 0, "concurrent regions (0 = all CPUs)")

	// Output
	fs.StringVarP(&v.format, "output", "o", d.Output.Format, "output format: text | json | jsonl | vcf-split")
	fs.StringVar(&v.outDir, "out-dir", "", "directory for vcf-split output files")
	fs.BoolVar(&v.sort, "sort", false, "sort records by chrom, pos, side")
	fs.BoolVar(&v.noHeader, "no-header", false, "suppress header line in text output")
	fs.StringVar(&v.summary, "summary", "", "write the JSON run summary to FILE")
	fs.StringVar(&v.metrics, "metrics", "", "write Prometheus metrics to FILE")
	fs.StringVar(&v.decisions, "decisions", "", "only output these decisions, e.g. FP,FN")

	fs.StringVar(&v.logLevel, "log-level", d.Log.Level, "debug | info | warn | error")
	fs.BoolVar(&v.quiet, "quiet", false, "suppress warnings, progress and the summary line")
	return v
}

// Resolve loads the config file and overlays every flag the user set.
func (v *flagValues) Resolve(fs *pflag.FlagSet) (Options, error) {
	opt := Options{ConfigPath: v.configPath, Quiet: v.quiet}
	cfg, err := config.Load(v.configPath)
	if err != nil {
		return opt, err
	}

	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("reference", func() { cfg.Inputs.Reference = v.reference })
	set("baseline", func() { cfg.Inputs.Baseline = v.baseline })
	set("query", func() { cfg.Inputs.Query = v.query })
	set("baseline-sample", func() { cfg.Inputs.BaselineSample = v.baselineSample })
	set("query-sample", func() { cfg.Inputs.QuerySample = v.querySample })
	set("bed", func() { cfg.Filters.BED = v.bedPath })
	set("pass-only", func() { cfg.Filters.PassOnly = v.passOnly })
	set("filter", func() {
		if v.filterName == "none" {
			cfg.Filters.PassOnly = false
			return
		}
		cfg.Filters.PassOnly = true
		cfg.Filters.FilterName = v.filterName
	})
	set("ref-overlap", func() { cfg.Filters.RefOverlap = v.refOverlap })
	set("snp-only", func() { cfg.Filters.SNPOnly = v.snpOnly })
	set("indel-only", func() { cfg.Filters.IndelOnly = v.indelOnly })
	set("max-variant-size", func() { cfg.Filters.MaxVariantSize = v.maxVariantSize })
	set("max-paths", func() { cfg.Search.MaxPaths = v.maxPaths })
	set("max-iterations", func() { cfg.Search.MaxIterations = v.maxIterations })
	set("max-duration", func() { cfg.Search.MaxDuration = v.maxDuration })
	set("cluster-gap", func() { cfg.Search.ClusterGap = v.clusterGap })
	set("no-allele-match", func() { cfg.Search.AlleleMatch = !v.noAlleleMatch })
	set("threads", func() { cfg.Threads = v.threads })
	set("output", func() { cfg.Output.Format = v.format })
	set("out-dir", func() { cfg.Output.OutDir = v.outDir })
	set("sort", func() { cfg.Output.Sort = v.sort })
	set("no-header", func() { cfg.Output.Header = !v.noHeader })
	set("summary", func() { cfg.Output.Summary = v.summary })
	set("metrics", func() { cfg.Output.Metrics = v.metrics })
	set("log-level", func() { cfg.Log.Level = v.logLevel })

	if err := cfg.Validate(); err != nil {
		return opt, fmt.Errorf("invalid options: %w", err)
	}
	if cfg.Inputs.Reference == "" || cfg.Inputs.Baseline == "" || cfg.Inputs.Query == "" {
		return opt, errors.New("--reference, --baseline and --query are required")
	}
	if opt.Decisions, err = visitors.ParseDecisions(v.decisions); err != nil {
		return opt, err
	}
	opt.Config = cfg
	return opt, nil
}
