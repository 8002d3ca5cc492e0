package glyph

import (
	"bytes"
	"hash"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"
)

// ShapedPositioner is a [GlyphPositioner] backed by go-text/typesetting's
// HarfBuzz implementation. Compared to [Layout] it adds:
//   - Ligature substitution (fi, fl, ffi, etc.)
//   - Kerning via OpenType GPOS rather than the legacy kern table
//   - Right-to-left text (Arabic, Hebrew) with bidi base direction detection
//   - Complex scripts (Devanagari, Thai, etc.)
//
// It does not word-wrap: each run fragment between hard breaks is shaped
// as one piece, so lines are delimited by '\n' only.
//
// ShapedPositioner is safe for concurrent use. It caches parsed go-text
// font.Font objects per glyph Font (font.Font is read-only and
// thread-safe) and creates lightweight font.Face instances per shaping
// call (font.Face is NOT safe for concurrent use). HarfbuzzShaper
// instances are pooled since they are not concurrent-safe either.
//
// The internal caches are pure memoization and do not participate in
// fingerprinting: only the alignment configuration does.
type ShapedPositioner struct {
	// HAlign is the horizontal alignment of each line.
	HAlign HAlign

	// VAlign is the vertical alignment of the whole block.
	VAlign VAlign

	// shaperPool pools HarfbuzzShaper instances across shaping calls.
	shaperPool sync.Pool

	// mu protects fonts.
	mu sync.RWMutex

	// fonts maps glyph Fonts to parsed go-text Font objects so the font
	// data is not re-parsed on every layout computation.
	fonts map[*Font]*font.Font
}

// NewShapedPositioner creates a ShapedPositioner with the given alignment.
func NewShapedPositioner(ha HAlign, va VAlign) *ShapedPositioner {
	return &ShapedPositioner{HAlign: ha, VAlign: va}
}

// shapedHashTag distinguishes ShapedPositioner from other positioner
// types in the fingerprint stream.
const shapedHashTag = "glyph.ShapedPositioner"

// AddToHash implements GlyphPositioner.
func (p *ShapedPositioner) AddToHash(h hash.Hash64) {
	hashString(h, shapedHashTag)
	hashInt(h, int(p.HAlign))
	hashInt(h, int(p.VAlign))
}

// BoundsRect implements GlyphPositioner.
func (p *ShapedPositioner) BoundsRect(section *Section) Rect {
	w, h := section.boundsSize()
	return alignedBounds(section.Position, w, h, p.HAlign, p.VAlign)
}

// CalculateGlyphs implements GlyphPositioner.
func (p *ShapedPositioner) CalculateGlyphs(fonts *FontRegistry, section *Section) []SectionGlyph {
	var (
		lines []pendingLine
		cur   pendingLine
		caret float64
	)
	fallback := fonts.Default().Metrics(DefaultScale)

	endLine := func() {
		cur.width = caret
		if len(cur.glyphs) == 0 {
			cur.foldMetrics(fallback)
		}
		lines = append(lines, cur)
		cur = pendingLine{}
		caret = 0
	}

	for i := range section.Runs {
		run := &section.Runs[i]
		f := fonts.Font(run.Font)
		if f == nil {
			continue
		}
		scale := run.scale()
		metrics := f.Metrics(scale)
		fallback = metrics

		gtFont, err := p.getOrCreateFont(f)
		if err != nil {
			Logger().Debug("glyph: shaping skipped run, font not parseable by go-text", "font", f.Name(), "err", err)
			continue
		}

		content := strings.ReplaceAll(run.Content, "\r", "")
		for fi, fragment := range strings.Split(content, "\n") {
			if fi > 0 {
				endLine()
			}
			if fragment == "" {
				cur.foldMetrics(metrics)
				continue
			}
			caret += p.shapeFragment(&cur, caret, fragment, f, gtFont, run, metrics)
		}
	}
	endLine()

	return alignLines(lines, section.Position, p.HAlign, p.VAlign)
}

// shapeFragment shapes one break-free fragment, appends its glyphs to the
// line at the caret offset, and returns the fragment's total advance.
func (p *ShapedPositioner) shapeFragment(line *pendingLine, caret float64, fragment string, f *Font, gtFont *font.Font, run *Text, metrics LineMetrics) float64 {
	runes := []rune(fragment)
	dir := baseDirection(fragment)
	scale := run.scale()

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      font.NewFace(gtFont),
		Size:      floatToFixed(scale),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb, _ := p.shaperPool.Get().(*shaping.HarfbuzzShaper)
	if hb == nil {
		hb = &shaping.HarfbuzzShaper{}
	}
	output := hb.Shape(input)
	p.shaperPool.Put(hb)

	var x float64
	for _, g := range output.Glyphs {
		r := rune(0)
		if idx := g.TextIndex(); idx >= 0 && idx < len(runes) {
			r = runes[idx]
		}
		line.add(pendingGlyph{
			id:      GlyphID(uint16(g.GlyphID)),
			r:       r,
			x:       caret + x + fixedToFloat(g.XOffset),
			scale:   scale,
			font:    f,
			fontID:  run.Font,
			color:   run.Color,
			metrics: metrics,
		})
		x += fixedToFloat(g.Advance)
	}
	return x
}

// getOrCreateFont returns a cached go-text font.Font for f, parsing the
// font data on first use. font.Font is read-only and safe for concurrent
// use; the short-lived font.Face wrappers are created per shaping call.
func (p *ShapedPositioner) getOrCreateFont(f *Font) (*font.Font, error) {
	p.mu.RLock()
	if gt, ok := p.fonts[f]; ok {
		p.mu.RUnlock()
		return gt, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if gt, ok := p.fonts[f]; ok {
		return gt, nil
	}

	gtFace, err := font.ParseTTF(bytes.NewReader(f.Data()))
	if err != nil {
		return nil, err
	}

	if p.fonts == nil {
		p.fonts = make(map[*Font]*font.Font)
	}
	p.fonts[f] = gtFace.Font
	return gtFace.Font, nil
}

// baseDirection resolves the paragraph base direction with the Unicode
// bidi algorithm, defaulting to left-to-right.
func baseDirection(text string) di.Direction {
	p := bidi.Paragraph{}
	if _, err := p.SetString(text); err != nil {
		return di.DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return di.DirectionLTR
	}
	run := ordering.Run(0)
	if run.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript inspects the runes and returns the script of the first
// non-space character. This is a simple heuristic; mixed-script fragments
// are shaped with the script of their leading text.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
