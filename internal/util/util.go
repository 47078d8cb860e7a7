// internal/util/util.go
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
)

// WriteFile writes data with 0o644 permissions, creating parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Truncate shortens text to at most width terminal cells, appending an
// ellipsis when cut. Wide (CJK) characters count as two cells.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}

// FirstLine returns text up to its first newline, with surrounding space trimmed.
func FirstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(line)
}

// Wrap breaks text into lines of at most width cells. Words longer than a
// line are split.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		var cur strings.Builder
		curWidth := 0
		flush := func() {
			if curWidth > 0 {
				out = append(out, cur.String())
				cur.Reset()
				curWidth = 0
			}
		}
		for _, w := range words {
			ww := runewidth.StringWidth(w)
			switch {
			case curWidth > 0 && curWidth+1+ww <= width:
				cur.WriteByte(' ')
				cur.WriteString(w)
				curWidth += 1 + ww
			case ww <= width:
				flush()
				cur.WriteString(w)
				curWidth = ww
			default:
				flush()
				for _, piece := range splitWidth(w, width) {
					out = append(out, piece)
				}
			}
		}
		flush()
	}
	return strings.Join(out, "\n")
}

func splitWidth(word string, width int) []string {
	var pieces []string
	var cur strings.Builder
	curWidth := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if curWidth+rw > width && curWidth > 0 {
			pieces = append(pieces, cur.String())
			cur.Reset()
			curWidth = 0
		}
		cur.WriteRune(r)
		curWidth += rw
	}
	if cur.Len() > 0 {
		pieces = append(pieces, cur.String())
	}
	return pieces
}
