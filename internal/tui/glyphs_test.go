package tui

import (
	"testing"

	"deskfolio/internal/model"
)

func TestGlyphs_FromEnv(t *testing.T) {
	t.Setenv("DESKFOLIO_TUI_GLYPHS", "")
	setGlyphs(glyphSetUnicode)
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	t.Setenv("DESKFOLIO_TUI_GLYPHS", "ascii")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs; got %v", got)
	}
	if got := glyphFor(model.Node{Kind: model.NodeFolder}); got != "+" {
		t.Fatalf("ascii folder glyph: %q", got)
	}

	// Unknown values should be ignored (keep current).
	t.Setenv("DESKFOLIO_TUI_GLYPHS", "bogus")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}

	setGlyphs(glyphSetUnicode)
	if got := glyphFor(model.Node{Kind: model.NodeFile, FileType: model.FileTxt}); got != "≡" {
		t.Fatalf("txt glyph: %q", got)
	}
}
