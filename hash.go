package glyph

import (
	"encoding/binary"
	"hash"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint is the 64-bit cache key for a (section, positioner) pair.
// It is derived by streaming the section's and the positioner's hashable
// state through a hash built by the calculator's [SectionHasher].
//
// Two pairs that hash to the same fingerprint are indistinguishable to the
// cache: no secondary equality check is performed on a hit. Choosing a
// hash of adequate quality for the workload is the caller's obligation.
type Fingerprint uint64

// SectionHasher builds the 64-bit hash states used to fingerprint
// sections. Implementations must be deterministic for the lifetime of a
// calculator: equal input bytes must produce equal sums.
//
// The default is xxhash, a fast non-cryptographic hash. Callers that must
// withstand adversarial input can supply a stronger algorithm via
// [WithSectionHasher].
type SectionHasher interface {
	// NewHash64 returns a fresh hash state.
	NewHash64() hash.Hash64
}

// SectionHasherFunc adapts a hash constructor to the SectionHasher
// interface, e.g. SectionHasherFunc(fnv.New64a).
type SectionHasherFunc func() hash.Hash64

// NewHash64 implements SectionHasher.
func (f SectionHasherFunc) NewHash64() hash.Hash64 { return f() }

// defaultSectionHasher returns the xxhash-backed default.
func defaultSectionHasher() SectionHasher {
	return SectionHasherFunc(func() hash.Hash64 { return xxhash.New() })
}

// The helpers below define the canonical byte encoding of hashable state.
// hash.Hash64 writers never return errors, so errors are discarded.

func hashUint64(h hash.Hash64, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h.Write(b[:])
}

func hashInt(h hash.Hash64, v int) {
	hashUint64(h, uint64(v))
}

func hashFloat64(h hash.Hash64, v float64) {
	hashUint64(h, math.Float64bits(v))
}

func hashFloat32(h hash.Hash64, v float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	h.Write(b[:])
}

func hashString(h hash.Hash64, s string) {
	hashInt(h, len(s))
	h.Write([]byte(s))
}

func hashBool(h hash.Hash64, v bool) {
	if v {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
}

func hashColor(h hash.Hash64, c Color) {
	hashFloat32(h, c.R)
	hashFloat32(h, c.G)
	hashFloat32(h, c.B)
	hashFloat32(h, c.A)
}
