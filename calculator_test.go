package glyph

import (
	"errors"
	"testing"
	"time"
)

func TestNewCalculatorRequiresFonts(t *testing.T) {
	if _, err := NewCalculator(nil); !errors.Is(err, ErrNoFonts) {
		t.Errorf("Expected ErrNoFonts, got %v", err)
	}
}

func TestNewCalculatorFromBytesRejectsGarbage(t *testing.T) {
	if _, err := NewCalculatorFromBytes([]byte("definitely not a font")); err == nil {
		t.Error("Expected a parse error for garbage font data")
	}
}

func TestScopeComputesEachSectionOnce(t *testing.T) {
	calc := newFakeCalculator(t)
	scope := calc.CacheScope()
	defer scope.Release()

	pos := &countingPositioner{inner: DefaultLayout()}
	section := NewSection("Hello")

	first, ok1 := scope.PixelBoundsCustom(section, pos)
	second, ok2 := scope.PixelBoundsCustom(section, pos)
	if !ok1 || !ok2 {
		t.Fatalf("Expected bounds for both queries, got (%v, %v)", ok1, ok2)
	}
	if first != second {
		t.Errorf("Expected identical bounds on repeat query, got %+v then %+v", first, second)
	}

	// The glyph view derives from the same cache entry.
	count := 0
	for range scope.GlyphsCustom(section, pos) {
		count++
	}
	if count != 5 {
		t.Errorf("Expected 5 glyphs for %q, got %d", "Hello", count)
	}

	if pos.calls != 1 {
		t.Errorf("Expected exactly one layout computation, got %d", pos.calls)
	}
}

func TestScopePruneKeepsOnlyTouchedEntries(t *testing.T) {
	calc := newFakeCalculator(t)

	s1 := NewSection("first")
	s2 := NewSection("second")

	scopeA := calc.CacheScope()
	scopeA.PixelBounds(s1)
	scopeA.PixelBounds(s2)
	scopeA.Release()

	if len(calc.cache) != 2 {
		t.Fatalf("Expected 2 cached layouts after first scope, got %d", len(calc.cache))
	}

	scopeB := calc.CacheScope()
	scopeB.PixelBounds(s1)
	scopeB.Release()

	if len(calc.cache) != 1 {
		t.Fatalf("Expected 1 cached layout after second scope, got %d", len(calc.cache))
	}
	fp := calc.fingerprint(&s1, s1.layoutOrDefault())
	if _, ok := calc.cache[fp]; !ok {
		t.Error("Expected the touched section to survive the prune")
	}
}

func TestScopeReleaseWithEmptyTouchedSetClearsCache(t *testing.T) {
	calc := newFakeCalculator(t)

	scopeA := calc.CacheScope()
	scopeA.PixelBounds(NewSection("text"))
	scopeA.Release()

	scopeB := calc.CacheScope()
	scopeB.Release()

	if len(calc.cache) != 0 {
		t.Errorf("Expected empty cache after untouched scope, got %d entries", len(calc.cache))
	}
}

func TestScopeReleaseIsIdempotent(t *testing.T) {
	calc := newFakeCalculator(t)

	scope := calc.CacheScope()
	scope.Release()
	scope.Release() // must not unlock twice or panic

	// The lock must be acquirable again.
	next := calc.CacheScope()
	next.Release()
}

func TestScopeUseAfterReleasePanics(t *testing.T) {
	calc := newFakeCalculator(t)
	scope := calc.CacheScope()
	scope.Release()

	defer func() {
		if recover() == nil {
			t.Error("Expected a panic when querying a released scope")
		}
	}()
	scope.PixelBounds(NewSection("late"))
}

func TestScopesSerialize(t *testing.T) {
	calc := newFakeCalculator(t)

	scope := calc.CacheScope()

	acquired := make(chan *CacheScope)
	go func() {
		acquired <- calc.CacheScope()
	}()

	select {
	case <-acquired:
		t.Fatal("Second scope acquired while the first was still open")
	case <-time.After(50 * time.Millisecond):
	}

	scope.Release()

	select {
	case second := <-acquired:
		second.Release()
	case <-time.After(2 * time.Second):
		t.Fatal("Second scope not acquired after release")
	}
}

func TestFingerprintCollisionResolvesToFirstLayout(t *testing.T) {
	calc := newFakeCalculator(t, WithSectionHasher(constHasher()))
	scope := calc.CacheScope()
	defer scope.Release()

	first, ok := scope.PixelBounds(NewSection("aaaa"))
	if !ok {
		t.Fatal("Expected bounds for the first section")
	}

	// Different content, same (forced) fingerprint: the cache cannot
	// tell the sections apart and must serve the first layout.
	second, ok := scope.PixelBounds(NewSection("bb"))
	if !ok {
		t.Fatal("Expected bounds for the colliding section")
	}
	if first != second {
		t.Errorf("Expected colliding section to reuse the first layout, got %+v vs %+v", first, second)
	}

	count := 0
	for range scope.Glyphs(NewSection("bb")) {
		count++
	}
	if count != 4 {
		t.Errorf("Expected the colliding query to yield the first section's 4 glyphs, got %d", count)
	}
}

func TestDistinctCalculatorsDoNotContend(t *testing.T) {
	calcA := newFakeCalculator(t)
	calcB := newFakeCalculator(t)

	scopeA := calcA.CacheScope()
	defer scopeA.Release()

	done := make(chan struct{})
	go func() {
		scopeB := calcB.CacheScope()
		scopeB.PixelBounds(NewSection("independent"))
		scopeB.Release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Scope on a distinct calculator blocked")
	}
}
