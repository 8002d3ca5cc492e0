package glyph

import (
	"hash/fnv"
	"testing"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"golang.org/x/image/font/gofont/goregular"
)

func positionerHash(p GlyphPositioner) uint64 {
	h := fnv.New64a()
	p.AddToHash(h)
	return h.Sum64()
}

func TestShapedPositionerHashCoversAlignment(t *testing.T) {
	a := NewShapedPositioner(HAlignLeft, VAlignTop)
	b := NewShapedPositioner(HAlignLeft, VAlignTop)
	c := NewShapedPositioner(HAlignCenter, VAlignBottom)

	if positionerHash(a) != positionerHash(b) {
		t.Error("Equal configurations must hash equally")
	}
	if positionerHash(a) == positionerHash(c) {
		t.Error("Different alignments must hash differently")
	}
	if positionerHash(a) == positionerHash(DefaultLayout()) {
		t.Error("ShapedPositioner must not collide with Layout")
	}
}

func TestBaseDirectionDetection(t *testing.T) {
	if dir := baseDirection("hello"); dir != di.DirectionLTR {
		t.Errorf("Expected LTR for latin text, got %v", dir)
	}
	if dir := baseDirection("שלום"); dir != di.DirectionRTL {
		t.Errorf("Expected RTL for hebrew text, got %v", dir)
	}
	if dir := baseDirection(""); dir != di.DirectionLTR {
		t.Errorf("Expected LTR fallback for empty text, got %v", dir)
	}
}

func TestDetectScript(t *testing.T) {
	if s := detectScript([]rune("  abc")); s != language.Latin {
		t.Errorf("Expected Latin for leading-space latin text, got %v", s)
	}
	if s := detectScript([]rune("")); s != language.Latin {
		t.Errorf("Expected Latin fallback for empty text, got %v", s)
	}
}

func TestShapedPositionerWithRealFont(t *testing.T) {
	calc, err := NewCalculatorFromBytes(goregular.TTF)
	if err != nil {
		t.Fatalf("Failed to build calculator: %v", err)
	}

	scope := calc.CacheScope()
	defer scope.Release()

	pos := NewShapedPositioner(HAlignLeft, VAlignTop)
	section := NewSection("Hello shaped world")
	section.Position = Point{X: 5, Y: 5}

	if _, ok := scope.PixelBoundsCustom(section, pos); !ok {
		t.Fatal("Expected bounds for shaped text")
	}

	var glyphs []PositionedGlyph
	for g := range scope.GlyphsCustom(section, pos) {
		glyphs = append(glyphs, g)
	}
	if len(glyphs) == 0 {
		t.Fatal("Expected shaped glyphs")
	}
	for i := 1; i < len(glyphs); i++ {
		if glyphs[i].Position.X < glyphs[i-1].Position.X {
			t.Errorf("Glyph %d moves backwards: %v after %v", i, glyphs[i].Position.X, glyphs[i-1].Position.X)
		}
	}
}

func TestShapedPositionerHardBreaks(t *testing.T) {
	calc, err := NewCalculatorFromBytes(goregular.TTF)
	if err != nil {
		t.Fatalf("Failed to build calculator: %v", err)
	}

	scope := calc.CacheScope()
	defer scope.Release()

	pos := NewShapedPositioner(HAlignLeft, VAlignTop)

	var oneLine, twoLines []PositionedGlyph
	for g := range scope.GlyphsCustom(NewSection("ab"), pos) {
		oneLine = append(oneLine, g)
	}
	for g := range scope.GlyphsCustom(NewSection("a\nb"), pos) {
		twoLines = append(twoLines, g)
	}

	if len(oneLine) != 2 || len(twoLines) != 2 {
		t.Fatalf("Expected 2 glyphs each, got %d and %d", len(oneLine), len(twoLines))
	}
	if oneLine[0].Position.Y != oneLine[1].Position.Y {
		t.Error("Unbroken text should share one baseline")
	}
	if twoLines[1].Position.Y <= twoLines[0].Position.Y {
		t.Error("A hard break should move the next glyph to a lower baseline")
	}
}

func TestShapedPositionerCachesByConfiguration(t *testing.T) {
	calc := newFakeCalculator(t)
	s := NewSection("same text")

	// Two positioner instances with equal configuration must produce
	// the same fingerprint, or scope caching would recompute layouts
	// for every freshly constructed positioner.
	a := calc.fingerprint(&s, NewShapedPositioner(HAlignRight, VAlignCenter))
	b := calc.fingerprint(&s, NewShapedPositioner(HAlignRight, VAlignCenter))
	if a != b {
		t.Error("Equal shaped positioners must fingerprint equally")
	}
}
