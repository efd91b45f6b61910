// Package config holds runtime configuration: defaults, CLI flag parsing,
// dataset layouts, and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// --- Enum types for validated string fields ---

// IndexKind selects which lookup table to build.
type IndexKind string

const (
	KindTraining  IndexKind = "training"  // DIV2K train/valid splits.
	KindBenchmark IndexKind = "benchmark" // Classical SR benchmark sets.
)

// OutputFormat selects how the index is rendered on stdout.
type OutputFormat string

const (
	FormatText OutputFormat = "text" // One line per variant (default).
	FormatJSON OutputFormat = "json" // Indented JSON object.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Positional args.
	Kind IndexKind
	Root string

	// Layout overrides.
	LayoutFile   string // Optional YAML file; see LoadLayoutFile.
	StrictPrefix bool   // Reject training filenames shorter than the prefix width.
	SkipHidden   bool   // Ignore dot-files when listing.
	Jobs         int    // Default: 4. Concurrent directory listings.
	Factors      []int  // Restrict to these scale factors; empty keeps the layout's.

	// Behavior flags.
	CheckPaths bool // Verify every synthesized variant exists.
	Strict     bool // Exit non-zero when --check finds missing variants.

	// Display and logging.
	Format    OutputFormat // Default: "text".
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.

	// Layouts (defaults, then LayoutFile, then the CLI overrides above).
	Training  TrainingLayout
	Benchmark BenchmarkLayout
}

// DefaultConfig returns a Config with the stock DIV2K and benchmark layouts.
func DefaultConfig() Config {
	return Config{
		Kind:      KindTraining,
		Jobs:      4,
		Format:    FormatText,
		ColorMode: ColorAuto,
		Training:  DefaultTrainingLayout(""),
		Benchmark: DefaultBenchmarkLayout(""),
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields, requires a root, and validates the layout
// for the selected kind.
func (c *Config) Validate() error {
	switch c.Kind {
	case KindTraining, KindBenchmark:
		// valid
	default:
		return errors.New("invalid index kind (use 'training' or 'benchmark')")
	}

	switch c.Format {
	case FormatText, FormatJSON:
		// valid
	default:
		return errors.New("invalid format (use 'text' or 'json')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1 (got %d)", c.Jobs)
	}
	if c.Root == "" {
		return errors.New("need exactly kind and root_dir")
	}
	if c.Strict && !c.CheckPaths {
		return errors.New("--strict requires --check")
	}

	if c.Kind == KindTraining {
		return c.Training.Validate()
	}
	return c.Benchmark.Validate()
}

// ApplyOverrides copies the CLI layout overrides (Root, Jobs, StrictPrefix,
// SkipHidden, Factors) into both layouts. It runs after the layout file is
// loaded so CLI arguments take precedence.
func (c *Config) ApplyOverrides() error {
	c.Training.Root = c.Root
	c.Benchmark.Root = c.Root
	c.Training.Concurrency = c.Jobs
	c.Benchmark.Concurrency = c.Jobs
	if c.StrictPrefix {
		c.Training.StrictPrefix = true
	}
	if c.SkipHidden {
		c.Training.SkipHidden = true
		c.Benchmark.SkipHidden = true
	}
	if len(c.Factors) == 0 {
		return nil
	}

	var err error
	if c.Training.Scales, err = selectScales(c.Training.Scales, c.Factors); err != nil {
		return fmt.Errorf("training layout: %w", err)
	}
	if c.Benchmark.Scales, err = selectScales(c.Benchmark.Scales, c.Factors); err != nil {
		return fmt.Errorf("benchmark layout: %w", err)
	}
	return nil
}

// selectScales keeps the scales whose factor is listed, in the order given.
func selectScales(scales []Scale, factors []int) ([]Scale, error) {
	table := NewScaleTable(scales)
	out := make([]Scale, 0, len(factors))
	for _, f := range factors {
		s, ok := table[f]
		if !ok {
			return nil, fmt.Errorf("scale factor %d is not part of the layout", f)
		}
		out = append(out, s)
	}
	return out, nil
}
