// Package glyph computes and caches positioned, pixel-accurate glyph
// layouts of styled text sections for consumption by a rendering
// pipeline.
//
// Laying out text (line breaking, alignment, kerning, multi-font runs) is
// expensive and typically re-requested for the same text every rendering
// cycle. The package therefore caches computed layouts keyed by a 64-bit
// fingerprint of the section content and the positioning algorithm, and
// reclaims entries that stopped being used without any explicit
// invalidation call.
//
// # Example usage
//
//	data, err := os.ReadFile("Roboto-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	calc, err := glyph.NewCalculatorFromBytes(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// A scope is an exclusive lock on the cache; releasing it cleans
//	// unused cached calculations, like a draw call does for a brush.
//	scope := calc.CacheScope()
//	defer scope.Release()
//
//	bounds, ok := scope.PixelBounds(glyph.NewSection("Hello, glyph"))
//
// # Caching behaviour
//
// Calls to [CacheScope.PixelBounds], [CacheScope.Glyphs] and their
// variants calculate the positioned glyphs for a section. The result is
// cached, so further queries for the same section within any scope are
// much cheaper: at most one layout computation happens per distinct
// (section, positioner) pair.
//
// There is no concept of drawing a section that would imply when it is no
// longer used. Instead, a [CacheScope] marks a usage window: release
// indicates the window is over, and cached calculations not used within
// it are dropped. Sections queried in consecutive windows stay cached
// across them.
//
// Fingerprint collisions between distinct sections are not detected: two
// pairs hashing to the same value resolve to whichever layout was cached
// first. The default xxhash makes this vanishingly unlikely for organic
// input; callers that need stronger guarantees supply their own hash via
// [WithSectionHasher].
package glyph
