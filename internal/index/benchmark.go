package index

import (
	"context"

	"github.com/backmassage/srindex/internal/config"
	"github.com/backmassage/srindex/internal/naming"
)

// BuildBenchmark lists <root>/<dataset>/<OriginalDir> for every dataset and
// records, per image:
//
//	original:  <root>/<dataset>/<OriginalDir>/<name>
//	LRbicx<f>: <root>/<dataset>/LRbicx<f>/<name>
//
// The file name is never rewritten. Datasets are merged in layout order, so
// when two datasets share a file name the later dataset wins.
func BuildBenchmark(ctx context.Context, ls Lister, layout config.BenchmarkLayout) (*BuildResult, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	dirs := make([]string, len(layout.Datasets))
	for i, ds := range layout.Datasets {
		dirs[i] = naming.Join(layout.Root, ds, layout.OriginalDir)
	}
	listings, err := listAll(ctx, ls, dirs, layout.Concurrency, layout.SkipHidden)
	if err != nil {
		return nil, err
	}

	m := newMerger()
	for i, ds := range layout.Datasets {
		for _, name := range listings[i] {
			m.put(name, ds, benchmarkRecord(&layout, ds, name))
		}
		m.addSource(Source{Name: ds, Dir: dirs[i], Images: len(listings[i])})
	}
	return m.result(), nil
}

func benchmarkRecord(layout *config.BenchmarkLayout, dataset, name string) Record {
	rec := make(Record, 1+len(layout.Scales))
	rec[Original] = naming.Join(layout.Root, dataset, layout.OriginalDir, name)
	for _, s := range layout.Scales {
		key := LRKey(layout.Kind, s)
		rec[key] = naming.Join(layout.Root, dataset, string(key), name)
	}
	return rec
}
