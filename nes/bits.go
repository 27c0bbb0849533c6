package nes

import "math/bits"

// bit returns bit i (0-indexed from the LSB) of v.
func bit(v uint16, i uint) bool {
	return (v>>i)&1 == 1
}

// setBit returns v with bit i set to on.
func setBit(v uint16, i uint, on bool) uint16 {
	if on {
		return v | (1 << i)
	}
	return v &^ (1 << i)
}

// bitRange extracts the contiguous bit range [lo, hi] (inclusive) of v.
func bitRange(v uint16, lo, hi uint) uint16 {
	width := hi - lo + 1
	mask := uint16(1)<<width - 1
	return (v >> lo) & mask
}

// bitGroup treats a mask (which must be a single contiguous run of
// 1-bits) as a typed field inside a 16-bit word: get/set/clear/toggle and
// an overflowing add that wraps modulo the field's width. This backs the
// scroll-register sub-fields (coarse-X, coarse-Y, fine-Y, nametable
// select) of the PPU's v/t registers.
type bitGroup struct {
	mask  uint16
	shift uint
}

func newBitGroup(mask uint16) bitGroup {
	return bitGroup{mask: mask, shift: uint(bits.TrailingZeros16(mask))}
}

func (g bitGroup) get(word uint16) uint16 {
	return (word & g.mask) >> g.shift
}

func (g bitGroup) set(word uint16, value uint16) uint16 {
	return (word &^ g.mask) | ((value << g.shift) & g.mask)
}

func (g bitGroup) clear(word uint16) uint16 {
	return word &^ g.mask
}

func (g bitGroup) toggle(word uint16) uint16 {
	return word ^ g.mask
}

// overflowingAdd adds delta to the field's current value, wrapping modulo
// the field's width, and reports whether the add overflowed (wrapped).
func (g bitGroup) overflowingAdd(word uint16, delta uint16) (result uint16, overflowed bool) {
	width := uint16(bits.OnesCount16(g.mask))
	span := uint16(1) << width
	cur := g.get(word)
	sum := cur + delta
	overflowed = sum >= span
	return g.set(word, sum%span), overflowed
}
