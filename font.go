package glyph

import (
	"fmt"
	"os"
)

// FontID identifies a font inside a [FontRegistry]. The first font passed
// at construction is the default, FontID(0).
type FontID int

// GlyphID is a unique identifier for a glyph within a font.
// The glyph ID is assigned by the font file and is font-specific.
type GlyphID uint16

// FontOption configures Font creation.
type FontOption func(*fontConfig)

// fontConfig holds configuration for Font.
type fontConfig struct {
	parserName      string
	metricCacheSize int
}

// defaultFontConfig returns the default font configuration.
func defaultFontConfig() fontConfig {
	return fontConfig{
		parserName:      defaultParserName,
		metricCacheSize: 512,
	}
}

// WithParser specifies the font parser backend by registry name.
// The default is "ximage" which uses golang.org/x/image/font/opentype.
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) FontOption {
	return func(c *fontConfig) {
		c.parserName = name
	}
}

// WithMetricCacheSize sets the soft limit on memoized per-glyph metrics.
// A value of 0 disables the limit.
func WithMetricCacheSize(n int) FontOption {
	return func(c *fontConfig) {
		c.metricCacheSize = n
	}
}

// Font is a parsed font resource. It is heavyweight and should be shared:
// one Font can serve any number of calculators concurrently. All methods
// are safe for concurrent use.
//
// Glyph advances and ink boxes are memoized per (glyph, size) since
// positioners request them repeatedly while laying out lines.
type Font struct {
	parsed ParsedFont
	data   []byte
	name   string

	advances *memoCache[glyphMetricKey, float64]
	inkBoxes *memoCache[glyphMetricKey, Rect]
}

// glyphMetricKey keys the per-font metric caches.
type glyphMetricKey struct {
	id   GlyphID
	ppem float64
}

// NewFont parses font data (TTF or OTF) into a Font. The data slice is
// copied internally and can be reused after this call. A parse failure is
// fatal for construction: there is no partial recovery.
func NewFont(data []byte, opts ...FontOption) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultFontConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parsed, err := getParser(config.parserName).Parse(data)
	if err != nil {
		return nil, err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	return &Font{
		parsed:   parsed,
		data:     dataCopy,
		name:     parsed.Name(),
		advances: newMemoCache[glyphMetricKey, float64](config.metricCacheSize),
		inkBoxes: newMemoCache[glyphMetricKey, Rect](config.metricCacheSize),
	}, nil
}

// NewFontFromFile loads a Font from a font file path.
func NewFontFromFile(path string, opts ...FontOption) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to read font file: %w", err)
	}
	return NewFont(data, opts...)
}

// Name returns the font family name, or "" if the font does not carry one.
func (f *Font) Name() string { return f.name }

// Data returns the raw font file bytes the Font was parsed from.
// The returned slice must not be modified.
func (f *Font) Data() []byte { return f.data }

// Parsed returns the parsed font for advanced operations.
// This is primarily used by positioner implementations.
func (f *Font) Parsed() ParsedFont { return f.parsed }

// GlyphIndex returns the glyph id for a rune, or 0 (.notdef) if the font
// has no glyph for it.
func (f *Font) GlyphIndex(r rune) GlyphID {
	return GlyphID(f.parsed.GlyphIndex(r))
}

// Advance returns the advance width of a glyph at the given size in ppem.
func (f *Font) Advance(id GlyphID, ppem float64) float64 {
	return f.advances.getOrCreate(glyphMetricKey{id: id, ppem: ppem}, func() float64 {
		return f.parsed.GlyphAdvance(uint16(id), ppem)
	})
}

// InkBounds returns the ink bounding box of a glyph at the given size,
// relative to the glyph origin on the baseline. Whitespace glyphs return
// an empty rectangle.
func (f *Font) InkBounds(id GlyphID, ppem float64) Rect {
	return f.inkBoxes.getOrCreate(glyphMetricKey{id: id, ppem: ppem}, func() Rect {
		return f.parsed.GlyphBounds(uint16(id), ppem)
	})
}

// Kern returns the kerning adjustment between two adjacent glyphs at the
// given size.
func (f *Font) Kern(left, right GlyphID, ppem float64) float64 {
	return f.parsed.Kern(uint16(left), uint16(right), ppem)
}

// Metrics returns the font-level metrics at the given size. The returned
// Descent is a positive distance below the baseline.
func (f *Font) Metrics(ppem float64) LineMetrics {
	m := f.parsed.Metrics(ppem)
	descent := m.Descent
	if descent < 0 {
		descent = -descent
	}
	return LineMetrics{
		Ascent:  m.Ascent,
		Descent: descent,
		LineGap: m.LineGap,
	}
}

// LineMetrics holds line-stacking metrics at a specific size. Unlike
// [FontMetrics], Descent is a positive distance below the baseline.
type LineMetrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Height returns the natural line height (ascent + descent).
func (m LineMetrics) Height() float64 { return m.Ascent + m.Descent }

// FontRegistry is an immutable, indexed collection of fonts owned by a
// [GlyphCalculator]. Fonts are referenced by [FontID] in section runs; the
// registry itself is read-only after construction and requires no
// synchronization.
type FontRegistry struct {
	fonts []*Font
}

// newFontRegistry indexes fonts in insertion order.
func newFontRegistry(fonts []*Font) *FontRegistry {
	owned := make([]*Font, len(fonts))
	copy(owned, fonts)
	return &FontRegistry{fonts: owned}
}

// Font returns the font for id, or nil if the id is out of range.
// Positioners skip runs whose font id does not resolve.
func (r *FontRegistry) Font(id FontID) *Font {
	if id < 0 || int(id) >= len(r.fonts) {
		return nil
	}
	return r.fonts[id]
}

// Default returns the default font (id 0).
func (r *FontRegistry) Default() *Font { return r.fonts[0] }

// Len returns the number of registered fonts.
func (r *FontRegistry) Len() int { return len(r.fonts) }
