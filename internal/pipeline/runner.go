package pipeline

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/viant/afs"

	"github.com/backmassage/srindex/internal/check"
	"github.com/backmassage/srindex/internal/config"
	"github.com/backmassage/srindex/internal/display"
	"github.com/backmassage/srindex/internal/index"
	"github.com/backmassage/srindex/internal/logging"
	"github.com/backmassage/srindex/internal/term"
)

// Run is the top-level entry point. It builds the index selected by
// cfg.Kind from storage fs, verifies it when cfg.CheckPaths is set, writes
// it to out, and returns aggregate stats. Failures are logged and reported
// through RunStats.Failed.
func Run(ctx context.Context, cfg *config.Config, fs afs.Service, out io.Writer, log *logging.Logger) RunStats {
	var stats RunStats

	logHeader(cfg, log)

	res, err := Build(ctx, cfg, index.NewLister(fs))
	if err != nil {
		log.Error("Index build failed: %v", err)
		if errors.Is(err, index.ErrDirectoryNotFound) {
			log.Error("Check that <root_dir> follows the %s layout (see --layout)", cfg.Kind)
		}
		stats.Failed = true
		return stats
	}

	stats.Sources = len(res.Sources)
	stats.Records = len(res.Table)
	stats.Variants = res.Table.Variants()
	stats.Overwrites = len(res.Overwrites)

	for _, src := range res.Sources {
		log.Debug("%s: %s in %s", src.Name, display.Plural(src.Images, "image"), src.Dir)
	}
	if cfg.Verbose {
		for _, ow := range res.Overwrites {
			log.Warn("Overwrite: %s from %s replaced by %s", ow.Key, ow.Previous, ow.Current)
		}
	}

	if cfg.CheckPaths {
		rep, err := check.RunCheck(ctx, fs, res.Table, cfg.Jobs, log)
		if err != nil {
			stats.Failed = true
			return stats
		}
		stats.Checked = rep.Checked
		stats.Missing = len(rep.Missing)
	}

	if err := render(cfg, out, res.Table); err != nil {
		log.Error("Cannot write index: %v", err)
		stats.Failed = true
		return stats
	}

	logSummary(cfg, log, &stats)
	return stats
}

// Build dispatches to the builder for cfg.Kind.
func Build(ctx context.Context, cfg *config.Config, ls index.Lister) (*index.BuildResult, error) {
	if cfg.Kind == config.KindBenchmark {
		return index.BuildBenchmark(ctx, ls, cfg.Benchmark)
	}
	return index.BuildTraining(ctx, ls, cfg.Training)
}

func render(cfg *config.Config, out io.Writer, table index.Table) error {
	if cfg.Format == config.FormatJSON {
		return display.WriteJSON(out, table)
	}
	return display.WriteText(out, table, term.NewPalette(colorFor(cfg.ColorMode, out)))
}

// colorFor resolves the color mode against out; non-file writers only get
// colors when forced.
func colorFor(mode config.ColorMode, out io.Writer) bool {
	if f, ok := out.(*os.File); ok {
		return term.Resolve(mode, f)
	}
	return mode == config.ColorAlways
}

// --- Logging helpers ---

func logHeader(cfg *config.Config, log *logging.Logger) {
	log.Info("Index: %s", cfg.Kind)
	log.Info("Root:  %s", cfg.Root)
	if cfg.LayoutFile != "" {
		log.Info("Layout: %s", cfg.LayoutFile)
	}
	if cfg.Kind == config.KindTraining {
		l := cfg.Training
		log.Debug("Splits: %d, kinds: %d, scales: %d, id prefix: %d chars",
			len(l.Splits), len(l.Kinds), len(l.Scales), l.PrefixWidth)
		if l.StrictPrefix {
			log.Info("Strict prefix: names shorter than %d characters are rejected", l.PrefixWidth)
		}
		return
	}
	l := cfg.Benchmark
	log.Debug("Datasets: %d, scales: %d", len(l.Datasets), len(l.Scales))
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Success("Indexed %s from %s (%s synthesized)",
		display.Plural(stats.Records, "image"),
		display.Plural(stats.Sources, "source"),
		display.Plural(stats.Synthesized(), "path"))
	log.WithFields(map[string]interface{}{
		"kind":       string(cfg.Kind),
		"images":     stats.Records,
		"sources":    stats.Sources,
		"paths":      stats.Variants,
		"overwrites": stats.Overwrites,
	}, "Index summary")
	if stats.Overwrites > 0 {
		log.Warn("  %s replaced by a later source (last one wins)", display.Plural(stats.Overwrites, "record"))
	}
	if cfg.CheckPaths {
		if stats.Missing == 0 {
			log.Success("  Missing variants: %s", display.FormatRatio(0, stats.Checked))
		} else {
			log.Warn("  Missing variants: %s", display.FormatRatio(stats.Missing, stats.Checked))
		}
	}
}
