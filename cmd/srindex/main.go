// Command srindex prints the image -> variant-path index of a
// super-resolution dataset tree.
//
// It parses flags, loads an optional layout file, checks the dataset root,
// and then builds, optionally verifies, and renders the index.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/viant/afs"

	"github.com/backmassage/srindex/internal/check"
	"github.com/backmassage/srindex/internal/config"
	"github.com/backmassage/srindex/internal/logging"
	"github.com/backmassage/srindex/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Cancel on SIGINT/SIGTERM so in-flight listings stop early.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Phase 1: Bootstrap. Errors go to stderr via fmt until the logger exists.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "srindex: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try 'srindex --help' for more information.")
		return 2
	}

	fs := afs.New()
	if cfg.LayoutFile != "" {
		if err := config.LoadLayoutFile(ctx, fs, cfg.LayoutFile, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "srindex: %v\n", err)
			return 1
		}
	}
	if err := cfg.ApplyOverrides(); err != nil {
		fmt.Fprintf(os.Stderr, "srindex: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "srindex: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "srindex: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	log.Debug("srindex v%s (%s)", version, commit)

	if err := check.CheckRoot(ctx, fs, cfg.Root); err != nil {
		log.Error("%v", err)
		return 1
	}

	stats := pipeline.Run(ctx, &cfg, fs, os.Stdout, log)
	return stats.ExitCode(cfg.Strict)
}
