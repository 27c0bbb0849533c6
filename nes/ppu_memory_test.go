package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The four sprite-palette backdrop entries alias the background entries:
// writes to $3F00/$3F04/$3F08/$3F0C read back at $3F10/$3F14/$3F18/$3F1C
// and vice versa.
func TestPaletteRAMBackdropAliases(t *testing.T) {
	var p paletteRAM
	for i, base := range []byte{0x00, 0x04, 0x08, 0x0C} {
		p.write(base, byte(0x10+i))
		assert.Equal(t, byte(0x10+i), p.read(base+0x10))
	}
	p.write(0x14, 0x2A)
	assert.Equal(t, byte(0x2A), p.read(0x04))
}

func TestPaletteRAMMirrorsEvery32Bytes(t *testing.T) {
	var p paletteRAM
	p.write(0x05, 0x33)
	assert.Equal(t, byte(0x33), p.read(0x05+0x20))
	assert.Equal(t, byte(0x33), p.read(0x05+0xC0))
}

func TestOAMSpriteAt(t *testing.T) {
	var o oam
	o.write(4*3+0, 0x10) // y
	o.write(4*3+1, 0x42) // tile
	o.write(4*3+2, 0xC3) // attributes
	o.write(4*3+3, 0x80) // x
	s := o.spriteAt(3)
	assert.Equal(t, 3, s.index)
	assert.Equal(t, byte(0x10), s.y)
	assert.Equal(t, byte(0x42), s.tile)
	assert.Equal(t, byte(0x80), s.x)
	assert.True(t, s.verticalFlip())
	assert.True(t, s.horizontalFlip())
	assert.False(t, s.priority())
	assert.Equal(t, byte(3), s.paletteIndex())
}

func TestNametableHorizontalMirroring(t *testing.T) {
	n := newNametableDevice(mirrorHorizontal)
	require.NoError(t, n.Write(0x0000, 0x11))
	got, err := n.Read(0x0400)
	require.NoError(t, err)
	assert.Equal(t, byte(0x11), got, "tables 0 and 1 share physical RAM under horizontal mirroring")

	require.NoError(t, n.Write(0x0800, 0x22))
	got, err = n.Read(0x0C00)
	require.NoError(t, err)
	assert.Equal(t, byte(0x22), got, "tables 2 and 3 share physical RAM under horizontal mirroring")
}

func TestNametableVerticalMirroring(t *testing.T) {
	n := newNametableDevice(mirrorVertical)
	require.NoError(t, n.Write(0x0000, 0x11))
	got, err := n.Read(0x0800)
	require.NoError(t, err)
	assert.Equal(t, byte(0x11), got, "tables 0 and 2 share physical RAM under vertical mirroring")

	require.NoError(t, n.Write(0x0400, 0x22))
	got, err = n.Read(0x0C00)
	require.NoError(t, err)
	assert.Equal(t, byte(0x22), got, "tables 1 and 3 share physical RAM under vertical mirroring")
}
