package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitHelpers(t *testing.T) {
	assert.True(t, bit(0b1010, 1))
	assert.False(t, bit(0b1010, 0))
	assert.Equal(t, uint16(0b1110), setBit(0b1010, 2, true))
	assert.Equal(t, uint16(0b0010), setBit(0b1010, 3, false))
	assert.Equal(t, uint16(0b011), bitRange(0b101100, 2, 4))
}

func TestBitGroupGetSet(t *testing.T) {
	g := newBitGroup(0x03E0)
	word := g.set(0, 29)
	assert.Equal(t, uint16(29), g.get(word))
	assert.Equal(t, uint16(29<<5), word)
	assert.Equal(t, uint16(0), g.get(g.clear(word)))
}

func TestBitGroupToggle(t *testing.T) {
	g := newBitGroup(0x0400)
	word := g.toggle(0)
	assert.Equal(t, uint16(0x0400), word)
	assert.Equal(t, uint16(0), g.toggle(word))
}

func TestBitGroupOverflowingAdd(t *testing.T) {
	g := newBitGroup(0x001F)
	word, wrapped := g.overflowingAdd(30, 1)
	assert.False(t, wrapped)
	assert.Equal(t, uint16(31), g.get(word))

	word, wrapped = g.overflowingAdd(word, 1)
	assert.True(t, wrapped)
	assert.Equal(t, uint16(0), g.get(word))
}

// The add stays inside its field: bits above the mask are untouched even
// when the field wraps.
func TestBitGroupOverflowingAddPreservesNeighbours(t *testing.T) {
	g := newBitGroup(0x001F)
	word := uint16(0x7C1F) // coarse X saturated, nametable and fine-Y bits set
	got, wrapped := g.overflowingAdd(word, 1)
	assert.True(t, wrapped)
	assert.Equal(t, uint16(0x7C00), got)
}
