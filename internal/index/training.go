package index

import (
	"context"
	"fmt"

	"github.com/backmassage/srindex/internal/config"
	"github.com/backmassage/srindex/internal/naming"
)

// BuildTraining lists the HR directory of every split and synthesizes each
// image's LR paths for all degradation kinds and scales:
//
//	original: <root>/<HRDir>/<name>
//	LR<p>x<f>: <root>/<LRDir(kind)>/<Scale.Dir>/<ScaledName(name)>
//
// Splits are merged in layout order; a name present in several splits keeps
// the record of the last one.
func BuildTraining(ctx context.Context, ls Lister, layout config.TrainingLayout) (*BuildResult, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	dirs := make([]string, len(layout.Splits))
	for i, split := range layout.Splits {
		dirs[i] = naming.Join(layout.Root, split.HRDir)
	}
	listings, err := listAll(ctx, ls, dirs, layout.Concurrency, layout.SkipHidden)
	if err != nil {
		return nil, err
	}

	if layout.StrictPrefix {
		for i, names := range listings {
			for _, name := range names {
				if !naming.HasPrefix(name, layout.PrefixWidth) {
					return nil, fmt.Errorf("%w: %s (want %d characters before the extension)",
						ErrShortFilename, naming.Join(dirs[i], name), layout.PrefixWidth)
				}
			}
		}
	}

	m := newMerger()
	for i, split := range layout.Splits {
		for _, name := range listings[i] {
			m.put(name, split.Name, trainingRecord(&layout, split, name))
		}
		m.addSource(Source{Name: split.Name, Dir: dirs[i], Images: len(listings[i])})
	}
	return m.result(), nil
}

func trainingRecord(layout *config.TrainingLayout, split config.Split, name string) Record {
	rec := make(Record, 1+len(layout.Kinds)*len(layout.Scales))
	rec[Original] = naming.Join(layout.Root, split.HRDir, name)
	for _, kind := range layout.Kinds {
		lrDir := split.LRDirFor(kind)
		for _, s := range layout.Scales {
			scaled := naming.ScaledName(name, s.Token, layout.PrefixWidth)
			rec[LRKey(kind, s)] = naming.Join(layout.Root, lrDir, s.Dir, scaled)
		}
	}
	return rec
}
