package ident

import (
	"fmt"
	"math/bits"
	"strings"
)

const (
	// offsetBasis is the FNV-1a 32-bit offset basis.
	offsetBasis uint32 = 2166136261

	// prime is the FNV-1a 32-bit prime.
	prime uint32 = 16777619

	// Mixing constants for the 64-hex digest expansion.
	goldenGamma uint32 = 0x9E3779B9
	mixOdd      uint32 = 0x85EBCA6B
)

// Hash is an incremental FNV-1a hash state. The zero value is not usable;
// construct with New or NewSeeded.
type Hash struct {
	state uint32
}

// New returns a hash state initialized with the FNV offset basis.
func New() *Hash {
	return &Hash{state: offsetBasis}
}

// NewSeeded returns a hash state initialized with an explicit seed.
// Identical seeds and inputs always produce identical digests.
func NewSeeded(seed uint32) *Hash {
	return &Hash{state: seed}
}

// Update feeds bytes into the hash state.
func (h *Hash) Update(p []byte) {
	s := h.state
	for _, b := range p {
		s = (s ^ uint32(b)) * prime
	}
	h.state = s
}

// UpdateString feeds a string into the hash state.
func (h *Hash) UpdateString(s string) {
	h.Update([]byte(s))
}

// Sum32 returns the current 32-bit hash value. The state is not consumed;
// further Update calls continue from it.
func (h *Hash) Sum32() uint32 {
	return h.state
}

// Hex8 returns the current hash as an 8-character lowercase hex string.
func (h *Hash) Hex8() string {
	return fmt.Sprintf("%08x", h.state)
}

// Hex64 expands the current 32-bit state into a 64-character lowercase hex
// digest. The expansion runs eight rounds of a fixed rotate/add/xor schedule
// so the output depends on every bit of the state while remaining cheap to
// recompute for verification.
func (h *Hash) Hex64() string {
	var sb strings.Builder
	sb.Grow(64)
	state := h.state
	for i := uint32(0); i < 8; i++ {
		state = (bits.RotateLeft32(state, 5) + goldenGamma) ^ (i * mixOdd)
		fmt.Fprintf(&sb, "%08x", state)
	}
	return sb.String()
}

// HashString is a convenience helper hashing a single string with the
// default seed and returning the 8-character hex digest.
func HashString(s string) string {
	h := New()
	h.UpdateString(s)
	return h.Hex8()
}
