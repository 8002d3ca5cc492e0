package glyph

import "errors"

// Sentinel errors for the glyph package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("glyph: empty font data")

	// ErrNoFonts is returned when a calculator is constructed without any
	// font resource. The calculator cannot position glyphs without at
	// least the default font (id 0).
	ErrNoFonts = errors.New("glyph: at least one font is required")
)
