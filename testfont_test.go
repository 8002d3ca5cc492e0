package glyph

import (
	"hash"
	"testing"
)

// The fake parser backend gives tests a deterministic font with trivial
// metrics, registered through the same registry real backends use:
//
//	units per em 1000, ascent 0.8*ppem, descent 0.2*ppem, no line gap
//	every glyph advances 0.5*ppem
//	ink box {0, -0.6*ppem, 0.45*ppem, 0.1*ppem}; whitespace has no ink
//	the only kerning pair is A/V at -0.1*ppem
func init() {
	RegisterParser("fake", fakeParser{})
}

type fakeParser struct{}

func (fakeParser) Parse(data []byte) (ParsedFont, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	return &fakeFont{}, nil
}

type fakeFont struct {
	advanceCalls int
	boundsCalls  int
}

func (f *fakeFont) Name() string    { return "Fake Sans" }
func (f *fakeFont) NumGlyphs() int  { return 1 << 16 }
func (f *fakeFont) UnitsPerEm() int { return 1000 }

func (f *fakeFont) GlyphIndex(r rune) uint16 {
	return uint16(r)
}

func (f *fakeFont) GlyphAdvance(glyphIndex uint16, ppem float64) float64 {
	f.advanceCalls++
	return 0.5 * ppem
}

func (f *fakeFont) GlyphBounds(glyphIndex uint16, ppem float64) Rect {
	f.boundsCalls++
	switch rune(glyphIndex) {
	case ' ', '\t':
		return Rect{}
	}
	return Rect{MinX: 0, MinY: -0.6 * ppem, MaxX: 0.45 * ppem, MaxY: 0.1 * ppem}
}

func (f *fakeFont) Kern(left, right uint16, ppem float64) float64 {
	if rune(left) == 'A' && rune(right) == 'V' {
		return -0.1 * ppem
	}
	return 0
}

func (f *fakeFont) Metrics(ppem float64) FontMetrics {
	return FontMetrics{
		Ascent:  0.8 * ppem,
		Descent: -0.2 * ppem,
		LineGap: 0,
	}
}

// newFakeFont returns a Font backed by the fake parser.
func newFakeFont(t *testing.T) *Font {
	t.Helper()
	f, err := NewFont([]byte("fake"), WithParser("fake"))
	if err != nil {
		t.Fatalf("NewFont with fake parser failed: %v", err)
	}
	return f
}

// newFakeCalculator returns a calculator over a single fake font.
func newFakeCalculator(t *testing.T, opts ...CalculatorOption) *GlyphCalculator {
	t.Helper()
	calc, err := NewCalculator([]*Font{newFakeFont(t)}, opts...)
	if err != nil {
		t.Fatalf("NewCalculator failed: %v", err)
	}
	return calc
}

// countingPositioner wraps another positioner and counts layout
// computations, making cache hits observable.
type countingPositioner struct {
	inner GlyphPositioner
	calls int
}

func (p *countingPositioner) CalculateGlyphs(fonts *FontRegistry, section *Section) []SectionGlyph {
	p.calls++
	return p.inner.CalculateGlyphs(fonts, section)
}

func (p *countingPositioner) BoundsRect(section *Section) Rect {
	return p.inner.BoundsRect(section)
}

func (p *countingPositioner) AddToHash(h hash.Hash64) {
	p.inner.AddToHash(h)
}

// constHash64 hashes everything to the same value, forcing fingerprint
// collisions.
type constHash64 struct{}

func (constHash64) Write(p []byte) (int, error) { return len(p), nil }
func (constHash64) Sum(b []byte) []byte         { return b }
func (constHash64) Reset()                      {}
func (constHash64) Size() int                   { return 8 }
func (constHash64) BlockSize() int              { return 1 }
func (constHash64) Sum64() uint64               { return 42 }

func constHasher() SectionHasher {
	return SectionHasherFunc(func() hash.Hash64 { return constHash64{} })
}
