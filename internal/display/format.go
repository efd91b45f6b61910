// Package display renders index tables for stdout and formats summary text.
package display

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/backmassage/srindex/internal/index"
	"github.com/backmassage/srindex/internal/term"
)

// WriteText writes one block per image, names in sorted order:
//
//	0001.png
//	  original  /data/DIV2K/DIV2K_train_HR/0001.png
//	  LRbicx2   /data/DIV2K/DIV2K_train_LR_bicubic/X2/0001x2.png
func WriteText(w io.Writer, table index.Table, pal term.Palette) error {
	for _, name := range table.Names() {
		rec := table[name]
		if _, err := fmt.Fprintln(w, pal.Paint(pal.Bold, name)); err != nil {
			return err
		}
		keys := rec.Keys()
		width := keyWidth(keys)
		for _, k := range keys {
			label := fmt.Sprintf("%-*s", width, k)
			if _, err := fmt.Fprintf(w, "  %s  %s\n", pal.Paint(pal.Cyan, label), rec[k]); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON writes the table as an indented JSON object keyed by image name.
// encoding/json sorts map keys, so output is stable across runs.
func WriteJSON(w io.Writer, table index.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(table)
}

func keyWidth(keys []index.VariantKey) int {
	n := 0
	for _, k := range keys {
		if len(k) > n {
			n = len(k)
		}
	}
	return n
}

// Plural returns "1 record" or "n records".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// FormatRatio returns "part/total (pct%)" with one decimal, e.g. "3/12 (25.0%)".
// A zero total yields "0/0 (0.0%)".
func FormatRatio(part, total int) string {
	pct := 0.0
	if total > 0 {
		pct = float64(part) / float64(total) * 100
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", part, total, pct)
}
