package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall.
func normalizePane(s string, width, height int) string {
	return strings.Join(normalizeLines(strings.Split(s, "\n"), width, height), "\n")
}

func normalizeLines(lines []string, width, height int) []string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	out := make([]string, height)
	for i := range out {
		ln := ""
		if i < len(lines) {
			ln = lines[i]
		}
		out[i] = fitWidth(ln, width)
	}
	return out
}

// fitWidth truncates or pads one line to exactly width columns.
func fitWidth(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	// Bound the width computation on pathological lines.
	if len(ln) > 8192 {
		ln = xansi.Cut(ln, 0, width)
	}
	w := xansi.StringWidth(ln)
	if w > width {
		if width == 1 {
			ln = xansi.Cut(ln, 0, 1)
		} else {
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// overlay paints box onto canvas with its top-left cell at (x, y). canvas
// lines must already be exactly canvasW columns wide. Parts of box that fall
// outside the canvas are clipped.
func overlay(canvas []string, canvasW int, box string, x, y int) {
	for i, ln := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(canvas) {
			continue
		}
		w := xansi.StringWidth(ln)
		left, right := x, x+w
		if left < 0 {
			ln = xansi.Cut(ln, -left, w)
			left = 0
		}
		if right > canvasW {
			ln = xansi.Cut(ln, 0, canvasW-left)
			right = canvasW
		}
		if left >= right {
			continue
		}
		base := canvas[row]
		canvas[row] = xansi.Cut(base, 0, left) + "\x1b[0m" + ln + "\x1b[0m" + xansi.Cut(base, right, canvasW)
	}
}

// scrollWindow returns the height-line slice of lines starting at offset,
// with offset clamped so the last page stays full.
func scrollWindow(lines []string, offset, height int) ([]string, int) {
	if height <= 0 {
		return nil, 0
	}
	maxOff := len(lines) - height
	if maxOff < 0 {
		maxOff = 0
	}
	if offset > maxOff {
		offset = maxOff
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[offset:end], offset
}
