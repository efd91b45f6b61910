// Package check verifies an index against storage (--check mode) and
// validates the dataset root before a build (CheckRoot).
package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs/storage"
	"golang.org/x/sync/errgroup"

	"github.com/backmassage/srindex/internal/index"
)

// Sentinel errors returned by CheckRoot.
var (
	ErrRootNotFound = errors.New("dataset root not found")
	ErrRootEmpty    = errors.New("dataset root must not be empty")
)

// Exister is the subset of afs.Service needed for verification.
type Exister interface {
	Exists(ctx context.Context, URL string, options ...storage.Option) (bool, error)
}

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a recording logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Missing is one synthesized path that does not exist.
type Missing struct {
	Image string
	Key   index.VariantKey
	Path  string
}

// Report summarizes a verification run.
type Report struct {
	Checked int
	Missing []Missing
}

// OK reports whether every checked path exists.
func (r Report) OK() bool { return len(r.Missing) == 0 }

// CheckRoot fails fast when the dataset root is empty or absent.
func CheckRoot(ctx context.Context, ex Exister, root string) error {
	if root == "" {
		return ErrRootEmpty
	}
	ok, err := ex.Exists(ctx, root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}
	return nil
}

// Verify asks storage whether every non-original variant in table exists.
// Original paths come from a directory listing and are not re-checked.
// Missing entries are reported in image-name then key order. At most limit
// lookups run at once (limit <= 0 means unbounded).
func Verify(ctx context.Context, ex Exister, table index.Table, limit int) (Report, error) {
	var targets []Missing
	for _, name := range table.Names() {
		rec := table[name]
		for _, key := range rec.Keys() {
			if key == index.Original {
				continue
			}
			targets = append(targets, Missing{Image: name, Key: key, Path: rec[key]})
		}
	}

	found := make([]bool, len(targets))
	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, tgt := range targets {
		i, tgt := i, tgt
		g.Go(func() error {
			ok, err := ex.Exists(gCtx, tgt.Path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", tgt.Path, err)
			}
			found[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	rep := Report{Checked: len(targets)}
	for i, ok := range found {
		if !ok {
			rep.Missing = append(rep.Missing, targets[i])
		}
	}
	return rep, nil
}

// maxListedMissing caps per-path ERROR lines; the rest go to DEBUG.
const maxListedMissing = 20

// RunCheck runs Verify and logs the outcome. The error is non-nil only when
// verification itself failed; missing paths are reported through the Report.
func RunCheck(ctx context.Context, ex Exister, table index.Table, limit int, log Logger) (Report, error) {
	log.Info("=== Path Check ===")
	rep, err := Verify(ctx, ex, table, limit)
	if err != nil {
		log.Error("Verification failed: %v", err)
		return rep, err
	}
	if rep.OK() {
		log.Success("All %d synthesized paths exist", rep.Checked)
		return rep, nil
	}

	for i, m := range rep.Missing {
		if i < maxListedMissing {
			log.Error("Missing %s %s: %s", m.Image, m.Key, m.Path)
			continue
		}
		log.Debug("Missing %s %s: %s", m.Image, m.Key, m.Path)
	}
	if extra := len(rep.Missing) - maxListedMissing; extra > 0 {
		log.Warn("... and %d more missing paths (use --verbose to list all)", extra)
	}
	log.Warn("%d of %d synthesized paths are missing", len(rep.Missing), rep.Checked)
	return rep, nil
}
