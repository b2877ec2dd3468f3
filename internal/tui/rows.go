package tui

import "strings"

// rows is rendered content whose lines may be clickable. act[i] is the
// item index line i activates, or -1.
type rows struct {
	lines []string
	act   []int
}

func (r *rows) add(line string, item int) {
	for _, ln := range strings.Split(line, "\n") {
		r.lines = append(r.lines, ln)
		r.act = append(r.act, item)
	}
}

func (r *rows) blank() { r.add("", -1) }

// itemAt maps a row of the visible window back to an item.
func (r rows) itemAt(y, scroll int) (int, bool) {
	i := y + scroll
	if i < 0 || i >= len(r.act) || r.act[i] < 0 {
		return 0, false
	}
	return r.act[i], true
}

// lineOf returns the first line of item, or -1.
func (r rows) lineOf(item int) int {
	for i, a := range r.act {
		if a == item {
			return i
		}
	}
	return -1
}

// render slices the rows to height, keeping line sel on screen, and
// returns the clamped scroll offset.
func (r rows) render(width, height, scroll, sel int) (string, int) {
	if sel >= 0 && height > 0 {
		if sel < scroll {
			scroll = sel
		} else if sel >= scroll+height {
			scroll = sel - height + 1
		}
	}
	visible, off := scrollWindow(r.lines, scroll, height)
	return strings.Join(normalizeLines(visible, width, height), "\n"), off
}
