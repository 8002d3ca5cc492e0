package glyph

import (
	"hash"
	"math"
	"unicode"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// HAlign specifies how lines relate horizontally to the section position.
type HAlign int

const (
	// HAlignLeft puts the leftmost edge of each line at the section
	// position (default).
	HAlignLeft HAlign = iota
	// HAlignCenter centers each line on the section position.
	HAlignCenter
	// HAlignRight puts the rightmost edge of each line at the section
	// position.
	HAlignRight
)

// String returns the string representation of the alignment.
func (a HAlign) String() string {
	switch a {
	case HAlignLeft:
		return "Left"
	case HAlignCenter:
		return "Center"
	case HAlignRight:
		return "Right"
	default:
		return unknownStr
	}
}

// VAlign specifies how the text block relates vertically to the section
// position.
type VAlign int

const (
	// VAlignTop puts the top of the block at the section position
	// (default).
	VAlignTop VAlign = iota
	// VAlignCenter centers the block on the section position.
	VAlignCenter
	// VAlignBottom puts the bottom of the block at the section position.
	VAlignBottom
)

// String returns the string representation of the alignment.
func (a VAlign) String() string {
	switch a {
	case VAlignTop:
		return "Top"
	case VAlignCenter:
		return "Center"
	case VAlignBottom:
		return "Bottom"
	default:
		return unknownStr
	}
}

// Layout is the built-in [GlyphPositioner]. It maps runes to glyphs
// through the registry fonts, applies kerning within runs, breaks lines
// on '\n' and greedily word-wraps at the section width, and aligns the
// result around the section position.
//
// The zero value is left-aligned, top-aligned, word-wrapping.
type Layout struct {
	// HAlign is the horizontal alignment of each line.
	HAlign HAlign

	// VAlign is the vertical alignment of the whole block.
	VAlign VAlign

	// SingleLine disables word wrapping at the section width. Hard
	// breaks ('\n') still apply.
	SingleLine bool
}

// DefaultLayout returns the zero Layout: left, top, wrapping.
func DefaultLayout() Layout { return Layout{} }

// WithHAlign returns a copy of the layout with the horizontal alignment set.
func (l Layout) WithHAlign(a HAlign) Layout {
	l.HAlign = a
	return l
}

// WithVAlign returns a copy of the layout with the vertical alignment set.
func (l Layout) WithVAlign(a VAlign) Layout {
	l.VAlign = a
	return l
}

// WithSingleLine returns a copy of the layout with wrapping disabled or
// enabled.
func (l Layout) WithSingleLine(single bool) Layout {
	l.SingleLine = single
	return l
}

// layoutHashTag distinguishes Layout from other positioner types in the
// fingerprint stream.
const layoutHashTag = "glyph.Layout"

// AddToHash implements GlyphPositioner.
func (l Layout) AddToHash(h hash.Hash64) {
	hashString(h, layoutHashTag)
	hashInt(h, int(l.HAlign))
	hashInt(h, int(l.VAlign))
	hashBool(h, l.SingleLine)
}

// BoundsRect implements GlyphPositioner.
func (l Layout) BoundsRect(section *Section) Rect {
	w, h := section.boundsSize()
	return alignedBounds(section.Position, w, h, l.HAlign, l.VAlign)
}

// alignedBounds positions a w-by-h layout area around pos according to
// the alignments. Infinite extents propagate: e.g. a centered unbounded
// axis spans (-Inf, +Inf).
func alignedBounds(pos Point, w, h float64, ha HAlign, va VAlign) Rect {
	var r Rect
	switch ha {
	case HAlignCenter:
		r.MinX, r.MaxX = pos.X-w/2, pos.X+w/2
	case HAlignRight:
		r.MinX, r.MaxX = pos.X-w, pos.X
	default:
		r.MinX, r.MaxX = pos.X, pos.X+w
	}
	switch va {
	case VAlignCenter:
		r.MinY, r.MaxY = pos.Y-h/2, pos.Y+h/2
	case VAlignBottom:
		r.MinY, r.MaxY = pos.Y-h, pos.Y
	default:
		r.MinY, r.MaxY = pos.Y, pos.Y+h
	}
	return r
}

// pendingGlyph is a glyph placed on a line before block alignment.
// x is relative to the line start; metrics are kept per glyph so line
// maxima can be recomputed when a wrap splits a line.
type pendingGlyph struct {
	id      GlyphID
	r       rune
	x       float64
	scale   float64
	font    *Font
	fontID  FontID
	color   Color
	metrics LineMetrics
}

// pendingLine accumulates glyphs until a hard or soft break.
type pendingLine struct {
	glyphs  []pendingGlyph
	width   float64
	ascent  float64
	descent float64
	gap     float64
}

// add appends g and folds its metrics into the line maxima.
func (ln *pendingLine) add(g pendingGlyph) {
	ln.glyphs = append(ln.glyphs, g)
	ln.foldMetrics(g.metrics)
}

func (ln *pendingLine) foldMetrics(m LineMetrics) {
	ln.ascent = math.Max(ln.ascent, m.Ascent)
	ln.descent = math.Max(ln.descent, m.Descent)
	ln.gap = math.Max(ln.gap, m.LineGap)
}

// recomputeMetrics rebuilds the line maxima from its glyphs.
func (ln *pendingLine) recomputeMetrics() {
	ln.ascent, ln.descent, ln.gap = 0, 0, 0
	for i := range ln.glyphs {
		ln.foldMetrics(ln.glyphs[i].metrics)
	}
}

// CalculateGlyphs implements GlyphPositioner.
func (l Layout) CalculateGlyphs(fonts *FontRegistry, section *Section) []SectionGlyph {
	maxWidth, _ := section.boundsSize()
	wrap := !l.SingleLine && !math.IsInf(maxWidth, 1)

	lines := l.buildLines(fonts, section, maxWidth, wrap)
	return alignLines(lines, section.Position, l.HAlign, l.VAlign)
}

// buildLines flows the section runs into lines, breaking on '\n' and,
// when wrap is set, at the last space before the width is exceeded.
func (l Layout) buildLines(fonts *FontRegistry, section *Section, maxWidth float64, wrap bool) []pendingLine {
	var (
		lines     []pendingLine
		cur       pendingLine
		caret     float64
		lastBreak = -1 // index in cur.glyphs after which a wrap may split
		prevID    GlyphID
		prevFont  *Font
		prevScale float64
		hasPrev   bool
	)

	// fallback metrics for lines that end without any glyph, e.g. "\n\n"
	fallback := fonts.Default().Metrics(DefaultScale)

	endLine := func() {
		cur.width = caret
		if len(cur.glyphs) == 0 {
			cur.foldMetrics(fallback)
		}
		lines = append(lines, cur)
		cur = pendingLine{}
		caret = 0
		lastBreak = -1
		hasPrev = false
	}

	for i := range section.Runs {
		run := &section.Runs[i]
		font := fonts.Font(run.Font)
		if font == nil {
			continue
		}
		scale := run.scale()
		metrics := font.Metrics(scale)
		fallback = metrics

		for _, r := range run.Content {
			if r == '\r' {
				continue
			}
			if r == '\n' {
				endLine()
				continue
			}

			id := font.GlyphIndex(r)
			var kern float64
			if hasPrev && prevFont == font && prevScale == scale {
				kern = font.Kern(prevID, id, scale)
			}
			advance := font.Advance(id, scale)

			if wrap && len(cur.glyphs) > 0 && caret+kern+advance > maxWidth {
				cur, caret = l.wrapLine(&lines, cur, caret, lastBreak)
				lastBreak = -1
				kern = 0
			}

			cur.add(pendingGlyph{
				id:      id,
				r:       r,
				x:       caret + kern,
				scale:   scale,
				font:    font,
				fontID:  run.Font,
				color:   run.Color,
				metrics: metrics,
			})
			caret += kern + advance

			if unicode.IsSpace(r) {
				lastBreak = len(cur.glyphs)
			}
			prevID, prevFont, prevScale, hasPrev = id, font, scale, true
		}
	}
	endLine()

	return lines
}

// wrapLine closes cur at the last break opportunity (or in full, when the
// line holds no break) and returns the carried-over remainder as the new
// current line with glyph positions rebased to zero.
func (l Layout) wrapLine(lines *[]pendingLine, cur pendingLine, caret float64, lastBreak int) (pendingLine, float64) {
	if lastBreak < 0 || lastBreak >= len(cur.glyphs) {
		cur.width = caret
		*lines = append(*lines, cur)
		return pendingLine{}, 0
	}

	carried := cur.glyphs[lastBreak:]
	cur.glyphs = cur.glyphs[:lastBreak:lastBreak]
	cur.width = carried[0].x
	cur.recomputeMetrics()
	*lines = append(*lines, cur)

	next := pendingLine{glyphs: append([]pendingGlyph(nil), carried...)}
	base := next.glyphs[0].x
	for i := range next.glyphs {
		next.glyphs[i].x -= base
	}
	next.recomputeMetrics()
	return next, caret - base
}

// alignLines stacks lines vertically, shifts the block per the vertical
// alignment, offsets each line per the horizontal alignment, and emits
// the final glyphs in reading order.
func alignLines(lines []pendingLine, pos Point, ha HAlign, va VAlign) []SectionGlyph {
	if len(lines) == 0 {
		return nil
	}

	// Baselines stacked from zero: first baseline sits at the first
	// line's ascent; each following line adds the previous descent, the
	// line gap, and its own ascent.
	baselines := make([]float64, len(lines))
	baselines[0] = lines[0].ascent
	for i := 1; i < len(lines); i++ {
		baselines[i] = baselines[i-1] + lines[i-1].descent + lines[i].gap + lines[i].ascent
	}
	height := baselines[len(lines)-1] + lines[len(lines)-1].descent

	var dy float64
	switch va {
	case VAlignCenter:
		dy = pos.Y - height/2
	case VAlignBottom:
		dy = pos.Y - height
	default:
		dy = pos.Y
	}

	total := 0
	for i := range lines {
		total += len(lines[i].glyphs)
	}
	out := make([]SectionGlyph, 0, total)

	for i := range lines {
		line := &lines[i]
		var dx float64
		switch ha {
		case HAlignCenter:
			dx = pos.X - line.width/2
		case HAlignRight:
			dx = pos.X - line.width
		default:
			dx = pos.X
		}

		baseline := dy + baselines[i]
		for j := range line.glyphs {
			g := &line.glyphs[j]
			origin := Point{X: dx + g.x, Y: baseline}

			var ink Rect
			if raw := g.font.InkBounds(g.id, g.scale); !raw.Empty() {
				ink = raw.Translate(origin.X, origin.Y)
			}

			out = append(out, SectionGlyph{
				Glyph: PositionedGlyph{
					ID:       g.id,
					Rune:     g.r,
					Position: origin,
					Scale:    g.scale,
					Ink:      ink,
				},
				Color: g.color,
				Font:  g.fontID,
			})
		}
	}
	return out
}
