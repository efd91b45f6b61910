// Package term decides whether ANSI colors should be used and provides the
// palette used by display output.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/srindex/internal/config"
)

// Resolve reports whether colors should be enabled for f under mode. In
// auto mode colors require a TTY, an empty NO_COLOR (https://no-color.org),
// and TERM other than "dumb".
func Resolve(mode config.ColorMode, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(f) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Palette holds ANSI sequences. The zero Palette has colors disabled and
// Paint returns its input unchanged.
type Palette struct {
	Cyan  string
	Bold  string
	Reset string
}

// NewPalette returns the color palette, or the zero Palette when disabled.
func NewPalette(enabled bool) Palette {
	if !enabled {
		return Palette{}
	}
	return Palette{
		Cyan:  "\033[1;96m",
		Bold:  "\033[1m",
		Reset: "\033[0m",
	}
}

// Enabled reports whether the palette emits escape sequences.
func (p Palette) Enabled() bool { return p.Reset != "" }

// Paint wraps s in color and a reset sequence.
func (p Palette) Paint(color, s string) string {
	if color == "" || !p.Enabled() {
		return s
	}
	return color + s + p.Reset
}
