package tui

import (
	"os"
	"strings"
	"sync"

	"deskfolio/internal/model"
)

// Some fonts render box and symbol glyphs badly. DESKFOLIO_TUI_GLYPHS=ascii
// swaps the icons for plain characters.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("DESKFOLIO_TUI_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func pick(unicode, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return unicode
}

func glyphPointer() string   { return pick("▸", ">") }
func glyphCheck() string     { return pick("✓", "v") }
func glyphStar() string      { return pick("★", "*") }
func glyphSeparator() string { return pick("›", ">") }
func glyphImage() string     { return pick("▨", "#") }
func glyphSearch() string    { return pick("⌕", "?") }

// glyphFor is the Finder icon of a node.
func glyphFor(n model.Node) string {
	if n.IsFolder() {
		return pick("▣", "+")
	}
	switch n.FileType {
	case model.FileTxt:
		return pick("≡", "=")
	case model.FileURL:
		return pick("↗", "@")
	case model.FileImg:
		return glyphImage()
	case model.FilePDF:
		return pick("▤", "%")
	case model.FileFig:
		return pick("◇", "~")
	}
	return pick("·", ".")
}
