package config

// This file defines the on-disk directory conventions as data. The stock
// layouts reproduce the DIV2K release and the classical SR benchmark bundle;
// a YAML layout file can replace any part of them.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// KindPlaceholder is replaced by a degradation name in [Split.LRDir].
const KindPlaceholder = "{kind}"

// DefaultPrefixWidth is the width of DIV2K image identifiers ("0001").
const DefaultPrefixWidth = 4

// DefaultBenchmarkDatasets lists the benchmark sets in merge order. A file
// name present in two sets resolves to the later set.
var DefaultBenchmarkDatasets = []string{
	"BSDS100", "BSDS200", "General100", "historical", "manga109",
	"Set5", "Set14", "T91", "urban100",
}

// defaultFactors are the downscale ratios shipped with both dataset layouts.
var defaultFactors = []int{2, 3, 4}

// Scale describes one downscale ratio: the token inserted into file and key
// names ("x2") and the per-scale subdirectory name used by DIV2K ("X2").
type Scale struct {
	Factor int    `yaml:"factor"`
	Token  string `yaml:"token"`
	Dir    string `yaml:"dir"`
}

// NewScale derives the conventional token and directory for factor.
func NewScale(factor int) Scale {
	return Scale{
		Factor: factor,
		Token:  fmt.Sprintf("x%d", factor),
		Dir:    fmt.Sprintf("X%d", factor),
	}
}

// ScaleTable indexes scales by factor.
type ScaleTable map[int]Scale

// DefaultScales returns the x2/x3/x4 scales in ascending order.
func DefaultScales() []Scale {
	out := make([]Scale, 0, len(defaultFactors))
	for _, f := range defaultFactors {
		out = append(out, NewScale(f))
	}
	return out
}

// NewScaleTable builds a factor lookup table. Later duplicates win.
func NewScaleTable(scales []Scale) ScaleTable {
	t := make(ScaleTable, len(scales))
	for _, s := range scales {
		t[s.Factor] = s
	}
	return t
}

// Degradation names an LR degradation kind. Name appears in directory names
// ("bicubic"), Prefix in variant keys ("bic" in "LRbicx2").
type Degradation struct {
	Name   string `yaml:"name"`
	Prefix string `yaml:"prefix"`
}

var (
	Bicubic = Degradation{Name: "bicubic", Prefix: "bic"}
	Unknown = Degradation{Name: "unknown", Prefix: "unk"}
)

// Split is one partition of the training set.
type Split struct {
	Name  string `yaml:"name"`
	HRDir string `yaml:"hr_dir"`
	LRDir string `yaml:"lr_dir"` // Contains KindPlaceholder.
}

// LRDirFor returns the LR directory name of the split for kind.
func (s Split) LRDirFor(kind Degradation) string {
	return strings.ReplaceAll(s.LRDir, KindPlaceholder, kind.Name)
}

// TrainingLayout is the DIV2K-style convention: per-split HR directories and
// per-split, per-kind LR directories subdivided by scale.
//
//	<Root>/<HRDir>/<name>
//	<Root>/<LRDir with kind>/<Scale.Dir>/<name[:PrefixWidth]><Scale.Token><name[PrefixWidth:]>
type TrainingLayout struct {
	Root         string        `yaml:"-"`
	Splits       []Split       `yaml:"splits"`
	Kinds        []Degradation `yaml:"kinds"`
	Scales       []Scale       `yaml:"scales"`
	PrefixWidth  int           `yaml:"prefix_width"`
	StrictPrefix bool          `yaml:"strict_prefix"`
	SkipHidden   bool          `yaml:"skip_hidden"` // Ignore dot-files in HR directories.
	Concurrency  int           `yaml:"-"`
}

// DefaultTrainingLayout returns the DIV2K release layout rooted at root.
func DefaultTrainingLayout(root string) TrainingLayout {
	return TrainingLayout{
		Root: root,
		Splits: []Split{
			{Name: "train", HRDir: "DIV2K_train_HR", LRDir: "DIV2K_train_LR_" + KindPlaceholder},
			{Name: "valid", HRDir: "DIV2K_valid_HR", LRDir: "DIV2K_valid_LR_" + KindPlaceholder},
		},
		Kinds:       []Degradation{Bicubic, Unknown},
		Scales:      DefaultScales(),
		PrefixWidth: DefaultPrefixWidth,
		Concurrency: 2,
	}
}

// Validate reports the first structural problem in the layout.
func (l *TrainingLayout) Validate() error {
	if l.Root == "" {
		return errors.New("training layout: root must not be empty")
	}
	if len(l.Splits) == 0 {
		return errors.New("training layout: at least one split is required")
	}
	for _, s := range l.Splits {
		if s.HRDir == "" || s.LRDir == "" {
			return fmt.Errorf("training layout: split %q needs hr_dir and lr_dir", s.Name)
		}
		if !strings.Contains(s.LRDir, KindPlaceholder) && len(l.Kinds) > 1 {
			return fmt.Errorf("training layout: split %q lr_dir must contain %s", s.Name, KindPlaceholder)
		}
	}
	if len(l.Kinds) == 0 {
		return errors.New("training layout: at least one degradation kind is required")
	}
	seen := make(map[string]bool, len(l.Kinds))
	for _, k := range l.Kinds {
		if k.Name == "" || k.Prefix == "" {
			return errors.New("training layout: degradation kinds need name and prefix")
		}
		if seen[k.Prefix] {
			return fmt.Errorf("training layout: duplicate degradation prefix %q", k.Prefix)
		}
		seen[k.Prefix] = true
	}
	if l.PrefixWidth < 1 {
		return fmt.Errorf("training layout: prefix_width must be positive (got %d)", l.PrefixWidth)
	}
	if err := validateScales(l.Scales, true); err != nil {
		return fmt.Errorf("training layout: %w", err)
	}
	return nil
}

// BenchmarkLayout is the classical SR convention: one directory per dataset,
// each with an original folder and one folder per scale named after the
// variant key ("LRbicx2"). File names are identical across folders.
type BenchmarkLayout struct {
	Root        string      `yaml:"-"`
	Datasets    []string    `yaml:"datasets"`
	OriginalDir string      `yaml:"original_dir"`
	Kind        Degradation `yaml:"kind"`
	Scales      []Scale     `yaml:"scales"`
	SkipHidden  bool        `yaml:"skip_hidden"` // Ignore dot-files in original directories.
	Concurrency int         `yaml:"-"`
}

// DefaultBenchmarkLayout returns the benchmark bundle layout rooted at root.
func DefaultBenchmarkLayout(root string) BenchmarkLayout {
	datasets := make([]string, len(DefaultBenchmarkDatasets))
	copy(datasets, DefaultBenchmarkDatasets)
	return BenchmarkLayout{
		Root:        root,
		Datasets:    datasets,
		OriginalDir: "original",
		Kind:        Bicubic,
		Scales:      DefaultScales(),
		Concurrency: 4,
	}
}

// Validate reports the first structural problem in the layout.
func (l *BenchmarkLayout) Validate() error {
	if l.Root == "" {
		return errors.New("benchmark layout: root must not be empty")
	}
	if len(l.Datasets) == 0 {
		return errors.New("benchmark layout: at least one dataset is required")
	}
	for _, d := range l.Datasets {
		if d == "" {
			return errors.New("benchmark layout: dataset names must not be empty")
		}
	}
	if l.OriginalDir == "" {
		return errors.New("benchmark layout: original_dir must not be empty")
	}
	if l.Kind.Prefix == "" {
		return errors.New("benchmark layout: kind prefix must not be empty")
	}
	if err := validateScales(l.Scales, false); err != nil {
		return fmt.Errorf("benchmark layout: %w", err)
	}
	return nil
}

func validateScales(scales []Scale, needDir bool) error {
	if len(scales) == 0 {
		return errors.New("at least one scale is required")
	}
	tokens := make(map[string]bool, len(scales))
	for _, s := range scales {
		if s.Factor < 2 {
			return fmt.Errorf("scale factor must be at least 2 (got %d)", s.Factor)
		}
		if s.Token == "" {
			return fmt.Errorf("scale %d has no token", s.Factor)
		}
		if needDir && s.Dir == "" {
			return fmt.Errorf("scale %d has no dir", s.Factor)
		}
		if tokens[s.Token] {
			return fmt.Errorf("duplicate scale token %q", s.Token)
		}
		tokens[s.Token] = true
	}
	return nil
}

// layoutFile is the YAML document accepted by LoadLayoutFile.
type layoutFile struct {
	Training  TrainingLayout  `yaml:"training"`
	Benchmark BenchmarkLayout `yaml:"benchmark"`
}

// LoadLayoutFile reads a YAML layout document from URL (a local path or any
// afs-supported URL) and merges it over cfg's layouts. Keys not present in
// the document keep their current values; lists are replaced wholesale.
// Scales given only by factor get the conventional token and dir.
func LoadLayoutFile(ctx context.Context, fs afs.Service, URL string, cfg *Config) error {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("read layout %s: %w", URL, err)
	}

	doc := layoutFile{Training: cfg.Training, Benchmark: cfg.Benchmark}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse layout %s: %w", URL, err)
	}

	fillScaleDefaults(doc.Training.Scales)
	fillScaleDefaults(doc.Benchmark.Scales)
	cfg.Training = doc.Training
	cfg.Benchmark = doc.Benchmark
	return nil
}

func fillScaleDefaults(scales []Scale) {
	for i := range scales {
		def := NewScale(scales[i].Factor)
		if scales[i].Token == "" {
			scales[i].Token = def.Token
		}
		if scales[i].Dir == "" {
			scales[i].Dir = def.Dir
		}
	}
}
