package index

import (
	"errors"
	"sort"

	"github.com/backmassage/srindex/internal/config"
	"github.com/backmassage/srindex/internal/naming"
)

// Sentinel errors returned by the builders.
var (
	// ErrDirectoryNotFound is returned (wrapped with the directory) when an
	// HR/original directory is absent. The whole build is aborted.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrShortFilename is returned in strict-prefix mode when a training
	// image name is too short to carry a complete id prefix.
	ErrShortFilename = errors.New("filename shorter than id prefix")
)

// VariantKey names one resolution variant of an image.
type VariantKey string

// Original is the full-resolution image.
const Original VariantKey = "original"

// LRKey returns the key of a downscaled variant, e.g. "LRbicx2" or "LRunkx4".
func LRKey(kind config.Degradation, s config.Scale) VariantKey {
	return VariantKey("LR" + kind.Prefix + s.Token)
}

// Record maps each variant of one image to its path.
type Record map[VariantKey]string

// Keys returns the record's keys with Original first and the rest sorted.
func (r Record) Keys() []VariantKey {
	keys := make([]VariantKey, 0, len(r))
	for k := range r {
		if k != Original {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	if _, ok := r[Original]; ok {
		keys = append([]VariantKey{Original}, keys...)
	}
	return keys
}

// Table maps a bare image file name to its record.
type Table map[string]Record

// Names returns the table's image names sorted lexicographically.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Variants returns the total number of paths across all records.
func (t Table) Variants() int {
	n := 0
	for _, r := range t {
		n += len(r)
	}
	return n
}

// Source describes one listed directory (a split or a dataset).
type Source struct {
	Name   string // Split or dataset name.
	Dir    string // Listed HR/original directory.
	Images int    // Files found in Dir.
}

// BuildResult is the output of a builder. Table holds the merged records;
// Sources and Overwrites describe how it was assembled.
type BuildResult struct {
	Table      Table
	Sources    []Source
	Overwrites []naming.Overwrite
}

// merger assembles a BuildResult source by source with last-writer-wins
// semantics for duplicate image names.
type merger struct {
	table   Table
	owners  *naming.OwnerTracker
	sources []Source
}

func newMerger() *merger {
	return &merger{table: make(Table), owners: naming.NewOwnerTracker()}
}

func (m *merger) put(name, source string, rec Record) {
	m.owners.Claim(name, source)
	m.table[name] = rec
}

func (m *merger) addSource(s Source) {
	m.sources = append(m.sources, s)
}

func (m *merger) result() *BuildResult {
	return &BuildResult{
		Table:      m.table,
		Sources:    m.sources,
		Overwrites: m.owners.Overwrites(),
	}
}
