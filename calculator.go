package glyph

import (
	"iter"
	"sync"
)

// GlyphCruncher is the query surface shared by anything that can lay out
// sections. All methods benefit from caching; see the package
// documentation for the caching behaviour.
type GlyphCruncher interface {
	// PixelBounds returns the conservative whole-pixel rectangle that
	// contains the section's visible glyphs, clamped to the layout
	// bounds. The second return is false if the section is empty or
	// would result in no drawn pixels.
	PixelBounds(section Section) (IntRect, bool)

	// PixelBoundsCustom is PixelBounds with the positioner overridden.
	PixelBoundsCustom(section Section, positioner GlyphPositioner) (IntRect, bool)

	// Glyphs returns the section's positioned glyphs as a lazy,
	// restartable sequence over the cached layout.
	Glyphs(section Section) iter.Seq[PositionedGlyph]

	// GlyphsCustom is Glyphs with the positioner overridden.
	GlyphsCustom(section Section, positioner GlyphPositioner) iter.Seq[PositionedGlyph]

	// SectionGlyphs is like Glyphs but yields each glyph together with
	// its run color and font id, the triple a renderer consumes.
	SectionGlyphs(section Section) iter.Seq[SectionGlyph]

	// SectionGlyphsCustom is SectionGlyphs with the positioner overridden.
	SectionGlyphsCustom(section Section, positioner GlyphPositioner) iter.Seq[SectionGlyph]
}

// GlyphCalculator computes and caches glyph layouts for styled text
// sections against a fixed set of fonts. It owns the only mutable shared
// state in the package, the layout cache, and hands out exclusive access
// to it through [GlyphCalculator.CacheScope].
//
// Build one with [NewCalculator] or [NewCalculatorFromBytes] and share it;
// construction is the only fallible operation.
type GlyphCalculator struct {
	fonts *FontRegistry

	// mu serializes cache access. A CacheScope holds it for its whole
	// lifetime, including during layout computation.
	mu sync.Mutex

	// cache maps section fingerprints to computed layouts. Guarded by mu.
	cache map[Fingerprint]*computedLayout

	hasher SectionHasher
}

// CalculatorOption configures GlyphCalculator creation.
type CalculatorOption func(*calculatorConfig)

// calculatorConfig holds configuration for GlyphCalculator.
type calculatorConfig struct {
	hasher SectionHasher
}

// WithSectionHasher sets the hash algorithm used to fingerprint sections.
// The calculator cannot handle fingerprint collisions, so use a good hash
// algorithm. Defaults to xxhash.
func WithSectionHasher(h SectionHasher) CalculatorOption {
	return func(c *calculatorConfig) {
		if h != nil {
			c.hasher = h
		}
	}
}

// NewCalculator creates a GlyphCalculator over the given fonts. The first
// font is the default, [FontID] 0; later fonts receive increasing ids.
// At least one font is required.
func NewCalculator(fonts []*Font, opts ...CalculatorOption) (*GlyphCalculator, error) {
	if len(fonts) == 0 {
		return nil, ErrNoFonts
	}

	config := calculatorConfig{hasher: defaultSectionHasher()}
	for _, opt := range opts {
		opt(&config)
	}

	c := &GlyphCalculator{
		fonts:  newFontRegistry(fonts),
		cache:  make(map[Fingerprint]*computedLayout),
		hasher: config.hasher,
	}
	Logger().Info("glyph: calculator created", "fonts", c.fonts.Len())
	return c, nil
}

// NewCalculatorFromBytes parses each data slice with the default font
// backend and creates a calculator over the results. Any parse failure is
// fatal and aborts construction.
func NewCalculatorFromBytes(data ...[]byte) (*GlyphCalculator, error) {
	fonts := make([]*Font, 0, len(data))
	for _, d := range data {
		f, err := NewFont(d)
		if err != nil {
			return nil, err
		}
		fonts = append(fonts, f)
	}
	return NewCalculator(fonts)
}

// Fonts returns the calculator's font registry.
func (c *GlyphCalculator) Fonts() *FontRegistry { return c.fonts }

// CacheScope acquires exclusive access to the layout cache and returns a
// scope to query through. It blocks until any previously open scope on
// this calculator is released; there is no timeout and no cancellation.
//
// The returned scope must be released exactly once, on every exit path:
//
//	scope := calc.CacheScope()
//	defer scope.Release()
//
//	bounds, ok := scope.PixelBounds(section)
//
// Releasing prunes every cache entry the scope did not touch, so a scope
// per rendering cycle keeps the cache bounded to the sections still in
// use without any explicit invalidation call.
func (c *GlyphCalculator) CacheScope() *CacheScope {
	c.mu.Lock()
	return &CacheScope{
		calc:    c,
		touched: make(map[Fingerprint]struct{}),
	}
}

// fingerprint derives the cache key for a (section, positioner) pair.
func (c *GlyphCalculator) fingerprint(section *Section, positioner GlyphPositioner) Fingerprint {
	h := c.hasher.NewHash64()
	section.addToHash(h)
	positioner.AddToHash(h)
	return Fingerprint(h.Sum64())
}
