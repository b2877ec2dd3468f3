package tui

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFitWidth(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 3, "he…"},
		{"hi", 4, "hi  "},
		{"exact", 5, "exact"},
		{"x", 0, ""},
		{"wide", 1, "w"},
	}
	for _, tt := range tests {
		if got := fitWidth(tt.in, tt.width); got != tt.want {
			t.Fatalf("fitWidth(%q, %d) = %q want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestOverlay_ClipsAtEdges(t *testing.T) {
	canvas := func() []string {
		return []string{strings.Repeat(".", 10), strings.Repeat(".", 10), strings.Repeat(".", 10)}
	}
	strip := func(lines []string) []string {
		out := make([]string, len(lines))
		for i, ln := range lines {
			out[i] = strings.ReplaceAll(ln, "\x1b[0m", "")
		}
		return out
	}

	c := canvas()
	overlay(c, 10, "ab\ncd", 3, 1)
	if diff := cmp.Diff([]string{"..........", "...ab.....", "...cd....."}, strip(c)); diff != "" {
		t.Fatalf("inside (-want +got):\n%s", diff)
	}

	c = canvas()
	overlay(c, 10, "abc", 8, 0)
	if got := strip(c)[0]; got != "........ab" {
		t.Fatalf("right clip: %q", got)
	}

	c = canvas()
	overlay(c, 10, "abc", -2, 0)
	if got := strip(c)[0]; got != "c........." {
		t.Fatalf("left clip: %q", got)
	}

	c = canvas()
	overlay(c, 10, "ab\ncd\nef", 0, 2)
	if diff := cmp.Diff([]string{"..........", "..........", "ab........"}, strip(c)); diff != "" {
		t.Fatalf("bottom clip (-want +got):\n%s", diff)
	}
}

func TestScrollWindow(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}
	tests := []struct {
		offset, height int
		want           []string
		wantOff        int
	}{
		{0, 2, []string{"a", "b"}, 0},
		{2, 2, []string{"c", "d"}, 2},
		{9, 2, []string{"d", "e"}, 3},
		{-3, 2, []string{"a", "b"}, 0},
		{1, 10, []string{"a", "b", "c", "d", "e"}, 0},
	}
	for _, tt := range tests {
		got, off := scrollWindow(lines, tt.offset, tt.height)
		if !cmp.Equal(got, tt.want) || off != tt.wantOff {
			t.Fatalf("scrollWindow(%d, %d) = %v, %d want %v, %d", tt.offset, tt.height, got, off, tt.want, tt.wantOff)
		}
	}
}

func TestSidebarDragIgnoresOutOfRange(t *testing.T) {
	var s sidebar
	if got := s.widthFor(70); got != sidebarDefault {
		t.Fatalf("default width %d", got)
	}
	s.drag(30, 70)
	if s.width != 30 {
		t.Fatalf("in range drag: %d", s.width)
	}
	s.drag(sidebarMin-1, 70)
	s.drag(36, 70)
	if s.width != 30 {
		t.Fatalf("out of range drags should be ignored: %d", s.width)
	}
	if got := s.widthFor(40); got != 20 {
		t.Fatalf("width is capped at half the window: %d", got)
	}
}
