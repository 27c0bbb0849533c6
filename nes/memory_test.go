package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRAMOutOfRangeIsMemoryAccessError(t *testing.T) {
	m := newRAM(0x10)
	_, err := m.Read(0x10)
	require.Error(t, err)
	accessErr, ok := err.(*MemoryAccessError)
	require.True(t, ok)
	assert.Equal(t, uint16(0x10), accessErr.Address)
	assert.Equal(t, 0x10, accessErr.MemorySize)
}

func TestROMIgnoresWrites(t *testing.T) {
	m := newROM([]byte{0xAA, 0xBB})
	require.NoError(t, m.Write(0, 0x11))
	got, err := m.Read(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), got)
}

func TestROMCopiesItsBackingSlice(t *testing.T) {
	data := []byte{0x01}
	m := newROM(data)
	data[0] = 0xFF
	got, err := m.Read(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), got)
}

func TestMirroredMasksAddress(t *testing.T) {
	m := newMirrored(newRAM(0x0800), 0x0800)
	require.NoError(t, m.Write(0x0123, 0x42))
	for _, address := range []uint16{0x0123, 0x0923, 0x1123, 0x1923} {
		got, err := m.Read(address)
		require.NoError(t, err)
		assert.Equal(t, byte(0x42), got, "address 0x%04x should mirror 0x0123", address)
	}
}
