package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/backmassage/srindex/internal/config"
	"github.com/backmassage/srindex/internal/logging"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func newConfig(t *testing.T, kind config.IndexKind, root string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Kind = kind
	cfg.Root = root
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(t.TempDir(), "srindex.log")
	require.NoError(t, cfg.ApplyOverrides())
	require.NoError(t, cfg.Validate())
	return &cfg
}

func newLogger(t *testing.T, cfg *config.Config) *logging.Logger {
	t.Helper()
	log, err := logging.NewLogger(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log
}

// div2kTree creates HR images for both splits and, when withLR is set, every
// bicubic and unknown LR file the index will reference.
func div2kTree(t *testing.T, withLR bool) string {
	root := t.TempDir()
	splits := map[string][]string{"train": {"0001.png", "0002.png"}, "valid": {"0801.png"}}
	for split, names := range splits {
		for _, name := range names {
			touch(t, filepath.Join(root, "DIV2K_"+split+"_HR"), name)
			if !withLR {
				continue
			}
			for _, kind := range []string{"bicubic", "unknown"} {
				for _, f := range []string{"2", "3", "4"} {
					lr := name[:4] + "x" + f + name[4:]
					touch(t, filepath.Join(root, "DIV2K_"+split+"_LR_"+kind, "X"+f), lr)
				}
			}
		}
	}
	return root
}

func TestRun_TrainingJSON(t *testing.T) {
	root := div2kTree(t, false)
	cfg := newConfig(t, config.KindTraining, root)
	cfg.Format = config.FormatJSON

	var out bytes.Buffer
	stats := Run(context.Background(), cfg, afs.New(), &out, newLogger(t, cfg))

	require.False(t, stats.Failed)
	assert.Equal(t, 2, stats.Sources)
	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, 21, stats.Variants)
	assert.Equal(t, 18, stats.Synthesized())
	assert.Equal(t, 0, stats.ExitCode(false))

	var table map[string]map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &table))
	assert.Equal(t, root+"/DIV2K_train_LR_bicubic/X2/0001x2.png", table["0001.png"]["LRbicx2"])
	assert.Equal(t, root+"/DIV2K_valid_HR/0801.png", table["0801.png"]["original"])
}

func TestRun_BenchmarkText(t *testing.T) {
	root := t.TempDir()
	for _, ds := range config.DefaultBenchmarkDatasets {
		require.NoError(t, os.MkdirAll(filepath.Join(root, ds, "original"), 0o755))
	}
	touch(t, filepath.Join(root, "Set5", "original"), "baby.png")
	cfg := newConfig(t, config.KindBenchmark, root)

	var out bytes.Buffer
	stats := Run(context.Background(), cfg, afs.New(), &out, newLogger(t, cfg))

	require.False(t, stats.Failed)
	assert.Equal(t, 9, stats.Sources)
	assert.Equal(t, 1, stats.Records)
	assert.True(t, strings.HasPrefix(out.String(), "baby.png\n"))
	assert.Contains(t, out.String(), "  LRbicx4   "+root+"/Set5/LRbicx4/baby.png\n")
}

func TestRun_MissingDirectoryFails(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "DIV2K_train_HR"), "0001.png")
	cfg := newConfig(t, config.KindTraining, root)

	var out bytes.Buffer
	stats := Run(context.Background(), cfg, afs.New(), &out, newLogger(t, cfg))

	assert.True(t, stats.Failed)
	assert.Equal(t, 1, stats.ExitCode(false))
	assert.Empty(t, out.String(), "no partial table on failure")

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "directory not found")
	assert.Contains(t, string(b), "DIV2K_valid_HR")
}

func TestRun_CheckMissingVariants(t *testing.T) {
	root := div2kTree(t, false)
	cfg := newConfig(t, config.KindTraining, root)
	cfg.CheckPaths = true
	cfg.Strict = true

	var out bytes.Buffer
	stats := Run(context.Background(), cfg, afs.New(), &out, newLogger(t, cfg))

	require.False(t, stats.Failed)
	assert.Equal(t, 18, stats.Checked)
	assert.Equal(t, 18, stats.Missing)
	assert.Equal(t, 1, stats.ExitCode(cfg.Strict))
	assert.Equal(t, 0, stats.ExitCode(false))
}

func TestRun_CheckAllPresent(t *testing.T) {
	root := div2kTree(t, true)
	cfg := newConfig(t, config.KindTraining, root)
	cfg.CheckPaths = true

	var out bytes.Buffer
	stats := Run(context.Background(), cfg, afs.New(), &out, newLogger(t, cfg))

	require.False(t, stats.Failed)
	assert.Equal(t, 18, stats.Checked)
	assert.Zero(t, stats.Missing)
}

func TestRun_OverwritesCounted(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "DIV2K_train_HR"), "0001.png")
	touch(t, filepath.Join(root, "DIV2K_valid_HR"), "0001.png")
	cfg := newConfig(t, config.KindTraining, root)

	var out bytes.Buffer
	stats := Run(context.Background(), cfg, afs.New(), &out, newLogger(t, cfg))

	require.False(t, stats.Failed)
	assert.Equal(t, 1, stats.Records)
	assert.Equal(t, 1, stats.Overwrites)

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "Overwrite: 0001.png")
	assert.Contains(t, string(b), "overwrites=1")
}

func TestRun_OverwritesWarnWhenVerbose(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "DIV2K_train_HR"), "0001.png")
	touch(t, filepath.Join(root, "DIV2K_valid_HR"), "0001.png")
	cfg := newConfig(t, config.KindTraining, root)
	cfg.Verbose = true

	var out bytes.Buffer
	stats := Run(context.Background(), cfg, afs.New(), &out, newLogger(t, cfg))
	require.False(t, stats.Failed)

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "level=warning msg=\"Overwrite: 0001.png from train replaced by valid\"")
}

func TestRun_SummaryFields(t *testing.T) {
	root := div2kTree(t, false)
	cfg := newConfig(t, config.KindTraining, root)

	var out bytes.Buffer
	stats := Run(context.Background(), cfg, afs.New(), &out, newLogger(t, cfg))
	require.False(t, stats.Failed)

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	log := string(b)
	assert.Contains(t, log, "msg=\"Index summary\"")
	assert.Contains(t, log, "images=3")
	assert.Contains(t, log, "kind=training")
	assert.Contains(t, log, "paths=21")
}

// --- RunStats tests ---

func TestRunStats_ExitCode(t *testing.T) {
	tests := []struct {
		name   string
		stats  RunStats
		strict bool
		want   int
	}{
		{"clean", RunStats{}, false, 0},
		{"failed", RunStats{Failed: true}, false, 1},
		{"missing lenient", RunStats{Missing: 3}, false, 0},
		{"missing strict", RunStats{Missing: 3}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.ExitCode(tt.strict); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.strict, got, tt.want)
			}
		})
	}
}

func TestColorFor(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, colorFor(config.ColorAuto, &buf))
	assert.True(t, colorFor(config.ColorAlways, &buf))
	assert.False(t, colorFor(config.ColorNever, &buf))
}
