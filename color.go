package glyph

// Color is a linear RGBA color with components in [0, 1]. It travels with
// every positioned glyph so a renderer can color runs independently; the
// calculator itself only hashes it.
type Color struct {
	R, G, B, A float32
}

// Predefined colors.
var (
	// Black is opaque black, the default text color.
	Black = Color{0, 0, 0, 1}
	// White is opaque white.
	White = Color{1, 1, 1, 1}
)

// RGBA constructs a color from its components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}
