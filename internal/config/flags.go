package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into layout, behavior, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults hold unless set.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrHelp is returned by ParseFlags after --help or --version was printed.
// Callers should exit 0.
var ErrHelp = errors.New("help requested")

// ParseFlags parses args (without the program name) into cfg. Help and
// version output go to stdout and return [ErrHelp]. Any other error means
// the command line was unusable (unknown flag, missing positional args).
func ParseFlags(cfg *Config, args []string, version string) error {
	fs := flag.NewFlagSet("srindex", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var negated negatedFlags

	defineLayoutFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(os.Stdout, version)
			return ErrHelp
		}
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(os.Stdout, version)
		return ErrHelp
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "srindex v"+version)
		return ErrHelp
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineLayoutFlags registers --layout, --scales, --strict-prefix,
// --skip-hidden, -j/--jobs.
func defineLayoutFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.LayoutFile, "layout", "", "YAML file overriding the directory layout")
	fs.Var(&factorsValue{&cfg.Factors}, "scales", "Comma-separated scale factors to index (e.g. 2,4)")
	fs.BoolVar(&cfg.StrictPrefix, "strict-prefix", false, "Reject training names shorter than the id prefix")
	fs.BoolVar(&cfg.SkipHidden, "skip-hidden", false, "Ignore dot-files in listed directories")
	fs.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "Concurrent directory listings")
	fs.IntVar(&cfg.Jobs, "j", cfg.Jobs, "Same as --jobs")
}

// defineBehaviorFlags registers --check and --strict.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.CheckPaths, "check", false, "Verify that every synthesized variant exists")
	fs.BoolVar(&cfg.CheckPaths, "c", false, "Same as --check")
	fs.BoolVar(&cfg.Strict, "strict", false, "Exit non-zero when --check finds missing variants")
}

// defineDisplayFlags registers --format, --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.Var(&formatValue{&cfg.Format}, "format", "Output format: text | json")
	fs.Var(&formatValue{&cfg.Format}, "o", "Same as --format")
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags resolves --color/--no-color; --no-color wins.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets Kind and Root from the two positional args.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if len(args) != 2 {
		return errors.New("need exactly kind and root_dir")
	}
	var kind IndexKind
	if err := (&kindValue{&kind}).Set(args[0]); err != nil {
		return err
	}
	cfg.Kind = kind
	cfg.Root = NormalizeDirArg(args[1])
	return nil
}

// printUsage writes the help text. Column-aligned for readability.
func printUsage(w io.Writer, version string) {
	const col1 = 28
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "srindex v" + version + " - super-resolution dataset path index"},
		{"", ""},
		{"  srindex [OPTIONS] <training|benchmark> <root_dir>", ""},
		{"", ""},
		{"Layout", ""},
		{"  --layout <file>", "YAML layout overrides (local path or URL)"},
		{"  --scales <2,3,4>", "Scale factors to index (default: all)"},
		{"  --strict-prefix", "Fail on training names shorter than the id prefix"},
		{"  --skip-hidden", "Ignore dot-files such as .DS_Store"},
		{"  -j, --jobs <n>", "Concurrent directory listings (default: 4)"},
		{"", ""},
		{"Verification", ""},
		{"  -c, --check", "Verify every synthesized variant exists"},
		{"  --strict", "Exit 1 when --check finds missing variants"},
		{"", ""},
		{"Display", ""},
		{"  -o, --format <text|json>", "Output format (default: text)"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum types (IndexKind, OutputFormat) with flag.Var.

type kindValue struct{ p *IndexKind }

func (k *kindValue) String() string {
	if k.p == nil {
		return ""
	}
	return string(*k.p)
}
func (k *kindValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "training", "train", "div2k":
		*k.p = KindTraining
	case "benchmark", "bench", "test":
		*k.p = KindBenchmark
	default:
		return fmt.Errorf("invalid kind %q (use 'training' or 'benchmark')", s)
	}
	return nil
}

type formatValue struct{ p *OutputFormat }

func (f *formatValue) String() string {
	if f.p == nil {
		return ""
	}
	return string(*f.p)
}
func (f *formatValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "text":
		*f.p = FormatText
	case "json":
		*f.p = FormatJSON
	default:
		return fmt.Errorf("invalid format %q (use 'text' or 'json')", s)
	}
	return nil
}

type factorsValue struct{ p *[]int }

func (f *factorsValue) String() string {
	if f.p == nil {
		return ""
	}
	parts := make([]string, len(*f.p))
	for i, n := range *f.p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
func (f *factorsValue) Set(s string) error {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(part)), "x"))
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 2 {
			return fmt.Errorf("invalid scale factor %q (use whole numbers >= 2)", part)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return errors.New("--scales needs at least one factor")
	}
	*f.p = out
	return nil
}
