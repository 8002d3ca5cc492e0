package glyph

import "iter"

// computedLayout is the immutable cache value for one fingerprint: the
// positioner's declared bounds, the positioned glyphs in reading order,
// and the section's z value. It is inserted once and only ever read or
// evicted, never mutated.
type computedLayout struct {
	bounds Rect
	glyphs []SectionGlyph
	z      float64
}

// pixelBounds reduces the layout to the smallest whole-pixel rectangle
// that conservatively contains all visible glyph ink, clamped to the
// declared layout bounds. Returns false when no glyph contributes pixels
// inside those bounds.
func (cl *computedLayout) pixelBounds() (IntRect, bool) {
	layoutRect := cl.bounds.EnclosingInt()

	var (
		acc   IntRect
		found bool
	)
	for i := range cl.glyphs {
		gb, ok := cl.glyphs[i].Glyph.PixelBounds()
		if !ok {
			continue
		}
		// Strictly outside the layout area on any axis: discarded.
		if gb.MaxX < layoutRect.MinX || gb.MaxY < layoutRect.MinY ||
			gb.MinX > layoutRect.MaxX || gb.MinY > layoutRect.MaxY {
			continue
		}
		gb = IntRect{
			MinX: max(gb.MinX, layoutRect.MinX),
			MinY: max(gb.MinY, layoutRect.MinY),
			MaxX: min(gb.MaxX, layoutRect.MaxX),
			MaxY: min(gb.MaxY, layoutRect.MaxY),
		}
		if !found {
			acc = gb
			found = true
			continue
		}
		acc.MinX = min(acc.MinX, gb.MinX)
		acc.MinY = min(acc.MinY, gb.MinY)
		acc.MaxX = max(acc.MaxX, gb.MaxX)
		acc.MaxY = max(acc.MaxY, gb.MaxY)
	}
	return acc, found
}

// glyphSeq returns a lazy, restartable view over the positioned glyphs.
// Iterating never mutates cached state; the sequence may be ranged over
// any number of times while the scope is open.
func (cl *computedLayout) glyphSeq() iter.Seq[PositionedGlyph] {
	return func(yield func(PositionedGlyph) bool) {
		for i := range cl.glyphs {
			if !yield(cl.glyphs[i].Glyph) {
				return
			}
		}
	}
}

// sectionGlyphSeq is glyphSeq with run styling included.
func (cl *computedLayout) sectionGlyphSeq() iter.Seq[SectionGlyph] {
	return func(yield func(SectionGlyph) bool) {
		for i := range cl.glyphs {
			if !yield(cl.glyphs[i]) {
				return
			}
		}
	}
}
