// Package config holds the comparison knobs shared by the config file,
// the environment and the command line.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"vcfbench/internal/duo"
	"vcfbench/internal/region"
	"vcfbench/internal/replay"
)

// Config is the full set of comparison settings.
type Config struct {
	Search  SearchConfig `yaml:"search"`
	Filters FilterConfig `yaml:"filters"`
	Output  OutputConfig `yaml:"output"`
	Threads int          `yaml:"threads" validate:"gte=0"`
	Log     LogConfig    `yaml:"log"`
	Inputs  InputConfig  `yaml:"inputs"`
}

// SearchConfig bounds each region's search.
type SearchConfig struct {
	MaxPaths      int           `yaml:"max_paths" validate:"gte=1"`
	MaxIterations int           `yaml:"max_iterations" validate:"gte=1"`
	MaxDuration   time.Duration `yaml:"max_duration" validate:"gte=0"`
	ClusterGap    int           `yaml:"cluster_gap" validate:"gte=0"`
	AlleleMatch   bool          `yaml:"allele_match"`
}

// FilterConfig selects which calls are assessed.
type FilterConfig struct {
	PassOnly       bool   `yaml:"pass_only"`
	FilterName     string `yaml:"filter_name" validate:"excludesall=;"`
	SNPOnly        bool   `yaml:"snp_only"`
	IndelOnly      bool   `yaml:"indel_only" validate:"excluded_if=SNPOnly true"`
	MaxVariantSize int    `yaml:"max_variant_size" validate:"gte=0"`
	RefOverlap     bool   `yaml:"ref_overlap"`
	BED            string `yaml:"bed"`
}

// OutputConfig controls what is written.
type OutputConfig struct {
	Format  string `yaml:"format" validate:"oneof=text json jsonl vcf-split"`
	OutDir  string `yaml:"out_dir" validate:"required_if=Format vcf-split"`
	Sort    bool   `yaml:"sort"`
	Header  bool   `yaml:"header"`
	Summary string `yaml:"summary"`
	Metrics string `yaml:"metrics"`
}

// LogConfig controls stderr logging.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// InputConfig names the files to compare.
type InputConfig struct {
	Reference      string `yaml:"reference"`
	Baseline       string `yaml:"baseline"`
	Query          string `yaml:"query"`
	BaselineSample string `yaml:"baseline_sample"`
	QuerySample    string `yaml:"query_sample"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Search: SearchConfig{
			MaxPaths:      replay.DefaultMaxPaths,
			MaxIterations: replay.DefaultMaxIterations,
			ClusterGap:    region.DefaultGap,
			AlleleMatch:   true,
		},
		Filters: FilterConfig{
			PassOnly:       true,
			FilterName:     "PASS",
			MaxVariantSize: duo.DefaultMaxVariantSize,
		},
		Output: OutputConfig{
			Format: "text",
			Header: true,
		},
		Log: LogConfig{Level: "info"},
	}
}

var validate = validator.New()

// Validate checks struct tags.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// Load reads defaults, then path (if set), then VBT_* environment
// variables, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := loadFromEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"VBT_THREADS", &cfg.Threads},
		{"VBT_MAX_PATHS", &cfg.Search.MaxPaths},
		{"VBT_MAX_ITERATIONS", &cfg.Search.MaxIterations},
	}
	for _, e := range ints {
		if v := os.Getenv(e.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", e.key, err)
			}
			*e.dst = n
		}
	}
	if v := os.Getenv("VBT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// DuoOptions maps the settings onto the comparator.
func (c Config) DuoOptions() duo.Options {
	return duo.Options{
		Filters: duo.Filters{
			PassOnly:       c.Filters.PassOnly,
			FilterName:     c.Filters.FilterName,
			SNPOnly:        c.Filters.SNPOnly,
			IndelOnly:      c.Filters.IndelOnly,
			MaxVariantSize: c.Filters.MaxVariantSize,
			RefOverlap:     c.Filters.RefOverlap,
		},
		ClusterGap:    c.Search.ClusterGap,
		AlleleMatch:   c.Search.AlleleMatch,
		MaxPaths:      c.Search.MaxPaths,
		MaxIterations: c.Search.MaxIterations,
		MaxDuration:   c.Search.MaxDuration,
		Threads:       c.Threads,
	}
}
