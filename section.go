package glyph

import (
	"hash"
	"math"
)

// DefaultScale is the glyph size in ppem used for runs whose Scale is
// zero or negative.
const DefaultScale = 16.0

// Text is a single styled run inside a [Section]. Runs with different
// fonts, colors, or scales flow together through the section's positioner.
type Text struct {
	// Content is the text of the run.
	Content string

	// Scale is the glyph size in ppem. Zero or negative means
	// [DefaultScale].
	Scale float64

	// Color is attached to every glyph of the run.
	Color Color

	// Font selects the registry font. The zero value is the default font.
	Font FontID
}

// Section is a styled-text layout request. It is immutable for the
// duration of a query; the cache retains only its fingerprint and the
// computed layout, never the section itself.
//
// The zero value of Width and Height means unbounded on that axis.
type Section struct {
	// Runs is the styled text content, flowed in order.
	Runs []Text

	// Position is the screen position the layout is anchored to. How the
	// anchor is interpreted depends on the positioner's alignment.
	Position Point

	// Width and Height bound the layout area. Values <= 0 are treated as
	// unbounded (positive infinity).
	Width, Height float64

	// Z is an ordering value carried through to the computed layout.
	Z float64

	// Layout is the positioner used by the plain query methods.
	// Nil means [DefaultLayout].
	Layout GlyphPositioner
}

// NewSection returns a single-run section with default styling: default
// font, black, [DefaultScale], unbounded, anchored at the origin.
func NewSection(content string) Section {
	return Section{
		Runs: []Text{{Content: content, Scale: DefaultScale, Color: Black}},
	}
}

// scale returns the run's size in ppem with the default applied.
func (t *Text) scale() float64 {
	if t.Scale <= 0 {
		return DefaultScale
	}
	return t.Scale
}

// boundsSize returns the section's layout area with defaults applied.
func (s *Section) boundsSize() (w, h float64) {
	w, h = s.Width, s.Height
	if w <= 0 {
		w = math.Inf(1)
	}
	if h <= 0 {
		h = math.Inf(1)
	}
	return w, h
}

// layoutOrDefault returns the section's positioner, falling back to
// DefaultLayout.
func (s *Section) layoutOrDefault() GlyphPositioner {
	if s.Layout != nil {
		return s.Layout
	}
	return DefaultLayout()
}

// addToHash streams the section's hashable state into h. Defaults are
// applied first so equivalent sections (zero vs. explicit default values)
// fingerprint identically. The Layout field is excluded: the positioner
// in effect contributes its own hash, which also covers custom-positioner
// queries.
func (s *Section) addToHash(h hash.Hash64) {
	hashInt(h, len(s.Runs))
	for i := range s.Runs {
		run := &s.Runs[i]
		hashString(h, run.Content)
		hashFloat64(h, run.scale())
		hashColor(h, run.Color)
		hashInt(h, int(run.Font))
	}
	hashFloat64(h, s.Position.X)
	hashFloat64(h, s.Position.Y)
	w, hgt := s.boundsSize()
	hashFloat64(h, w)
	hashFloat64(h, hgt)
	hashFloat64(h, s.Z)
}
