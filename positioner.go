package glyph

import "hash"

// GlyphPositioner turns a section and a font registry into positioned
// glyphs. It is the pluggable layout capability consumed by the cache:
// [Layout] is the built-in implementation and [ShapedPositioner] adds
// HarfBuzz-quality shaping.
//
// Implementations must be pure functions of their configuration and
// inputs: for caching to be correct, two positioners that write equal
// bytes in AddToHash must produce identical output for the same section.
// The converse is the implementer's obligation; it is not verified.
type GlyphPositioner interface {
	// CalculateGlyphs computes the positioned glyphs for the section.
	CalculateGlyphs(fonts *FontRegistry, section *Section) []SectionGlyph

	// BoundsRect returns the declared layout area of the section in
	// screen space, positioned according to the implementation's
	// alignment. Computed pixel bounds are clamped against it.
	BoundsRect(section *Section) Rect

	// AddToHash streams the positioner's configuration into the section
	// fingerprint. Implementations should start with a distinct tag so
	// differently-typed positioners with similar fields do not collide.
	AddToHash(h hash.Hash64)
}

// PositionedGlyph is a single glyph placed in screen space.
type PositionedGlyph struct {
	// ID is the glyph index in its font.
	ID GlyphID

	// Rune is the character the glyph was mapped from.
	Rune rune

	// Position is the glyph origin on the baseline.
	Position Point

	// Scale is the glyph size in ppem.
	Scale float64

	// Ink is the absolute ink bounding box. Empty for glyphs with no
	// visible pixels, e.g. whitespace.
	Ink Rect
}

// PixelBounds returns the conservative whole-pixel bounding box of the
// glyph's ink, or false if the glyph contributes no pixels.
func (g PositionedGlyph) PixelBounds() (IntRect, bool) {
	if g.Ink.Empty() {
		return IntRect{}, false
	}
	return g.Ink.EnclosingInt(), true
}

// SectionGlyph pairs a positioned glyph with the run styling a renderer
// needs to draw it.
type SectionGlyph struct {
	Glyph PositionedGlyph
	Color Color
	Font  FontID
}
