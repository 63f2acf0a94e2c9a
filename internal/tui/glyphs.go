package tui

import (
	"os"
	"strings"
	"sync"
)

// Some fonts render box-drawing and check glyphs poorly; an ASCII set can be
// chosen with glyphs = "ascii" in the config or ROUTE_TUI_GLYPHS.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference uses the env override when set, else the config value.
func applyGlyphPreference(configured string) {
	v := strings.TrimSpace(os.Getenv("ROUTE_TUI_GLYPHS"))
	if v == "" {
		v = configured
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	defer glyphsMu.RUnlock()
	return currentGlyphs
}

func pick(unicode, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return unicode
}

func glyphTwistyCollapsed() string { return pick("▸", ">") }
func glyphTwistyExpanded() string  { return pick("▾", "v") }
func glyphBullet() string          { return pick("•", "*") }
func glyphArrow() string           { return pick("→", "->") }
func glyphHRule() string           { return pick("─", "-") }
func glyphVRule() string           { return pick("│", "|") }
func glyphRange() string           { return pick("–", "-") }
func glyphOK() string              { return pick("✓", "+") }
func glyphShort() string           { return pick("!", "!") }
func glyphUnknown() string         { return pick("·", ".") }
