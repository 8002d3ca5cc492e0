package glyph

import "iter"

// CacheScope is an exclusive usage window over a calculator's layout
// cache, obtained from [GlyphCalculator.CacheScope]. While open it is the
// only way to interact with the cache: queries reuse cached layouts or
// compute-and-insert missing ones, and every fingerprint queried is
// recorded as touched.
//
// [CacheScope.Release] ends the window: the cache is filtered down to
// exactly the touched fingerprints and the calculator's lock is released.
// A scope is not safe for concurrent use; it belongs to the goroutine
// that opened it.
type CacheScope struct {
	calc     *GlyphCalculator
	touched  map[Fingerprint]struct{}
	released bool
}

var _ GlyphCruncher = (*CacheScope)(nil)

// lookup returns the computed layout for the pair, computing and caching
// it on a miss, and marks the fingerprint as touched.
func (s *CacheScope) lookup(section *Section, positioner GlyphPositioner) *computedLayout {
	if s.released {
		panic("glyph: CacheScope used after Release")
	}

	fp := s.calc.fingerprint(section, positioner)
	layout, ok := s.calc.cache[fp]
	if !ok {
		layout = &computedLayout{
			bounds: positioner.BoundsRect(section),
			glyphs: positioner.CalculateGlyphs(s.calc.fonts, section),
			z:      section.Z,
		}
		s.calc.cache[fp] = layout
		Logger().Debug("glyph: layout computed", "fingerprint", uint64(fp), "glyphs", len(layout.glyphs))
	}
	s.touched[fp] = struct{}{}
	return layout
}

// PixelBounds implements GlyphCruncher.
func (s *CacheScope) PixelBounds(section Section) (IntRect, bool) {
	return s.PixelBoundsCustom(section, section.layoutOrDefault())
}

// PixelBoundsCustom implements GlyphCruncher.
func (s *CacheScope) PixelBoundsCustom(section Section, positioner GlyphPositioner) (IntRect, bool) {
	return s.lookup(&section, positioner).pixelBounds()
}

// Glyphs implements GlyphCruncher.
func (s *CacheScope) Glyphs(section Section) iter.Seq[PositionedGlyph] {
	return s.GlyphsCustom(section, section.layoutOrDefault())
}

// GlyphsCustom implements GlyphCruncher.
func (s *CacheScope) GlyphsCustom(section Section, positioner GlyphPositioner) iter.Seq[PositionedGlyph] {
	return s.lookup(&section, positioner).glyphSeq()
}

// SectionGlyphs implements GlyphCruncher.
func (s *CacheScope) SectionGlyphs(section Section) iter.Seq[SectionGlyph] {
	return s.SectionGlyphsCustom(section, section.layoutOrDefault())
}

// SectionGlyphsCustom implements GlyphCruncher.
func (s *CacheScope) SectionGlyphsCustom(section Section, positioner GlyphPositioner) iter.Seq[SectionGlyph] {
	return s.lookup(&section, positioner).sectionGlyphSeq()
}

// Release closes the usage window. The cache retains exactly the entries
// touched through this scope; everything else, left over from earlier
// windows, is evicted. The calculator's lock is then released, letting
// the next CacheScope call proceed.
//
// Release is idempotent: calls after the first do nothing. Any query on a
// released scope panics.
func (s *CacheScope) Release() {
	if s.released {
		return
	}
	s.released = true

	evicted := 0
	for fp := range s.calc.cache {
		if _, ok := s.touched[fp]; !ok {
			delete(s.calc.cache, fp)
			evicted++
		}
	}
	if evicted > 0 {
		Logger().Debug("glyph: cache pruned", "evicted", evicted, "retained", len(s.calc.cache))
	}

	s.calc.mu.Unlock()
}
