package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusReadWrite(t *testing.T) {
	b := newBus()
	require.NoError(t, b.attach(newRAM(0x10), 0x0000, 0x000F))

	require.NoError(t, b.write(0x0005, 0x42))
	got, err := b.read(0x0005)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), got)
}

func TestBusMissingDevice(t *testing.T) {
	b := newBus()
	_, err := b.read(0x1234)
	require.Error(t, err)
	busErr, ok := err.(*BusAttachError)
	require.True(t, ok)
	assert.Equal(t, MissingBusDevice, busErr.Kind)
}

func TestBusOverlappingAttachRejected(t *testing.T) {
	b := newBus()
	require.NoError(t, b.attach(newRAM(0x100), 0x0000, 0x00FF))
	err := b.attach(newRAM(0x100), 0x0080, 0x017F)
	require.Error(t, err)
	busErr, ok := err.(*BusAttachError)
	require.True(t, ok)
	assert.Equal(t, AlreadyAttached, busErr.Kind)
}

func TestBusDetach(t *testing.T) {
	b := newBus()
	r := newRAM(0x10)
	require.NoError(t, b.attach(r, 0x0000, 0x000F))
	b.detach(r)
	_, err := b.read(0x0005)
	require.Error(t, err)
}

func TestBusRead16(t *testing.T) {
	b := newBus()
	require.NoError(t, b.attach(newRAM(0x10), 0x0000, 0x000F))
	require.NoError(t, b.write(0x0002, 0x34))
	require.NoError(t, b.write(0x0003, 0x12))
	got, err := b.read16(0x0002)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), got)
}

func TestBusReadZeroPage16Wraps(t *testing.T) {
	b := newBus()
	require.NoError(t, b.attach(newRAM(0x100), 0x0000, 0x00FF))
	require.NoError(t, b.write(0x00FF, 0x34))
	require.NoError(t, b.write(0x0000, 0x12))
	got, err := b.readZeroPage16(0xFF)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), got)
}

func TestMirroredDevice(t *testing.T) {
	b := newBus()
	require.NoError(t, b.attach(newMirrored(newRAM(0x0800), 0x0800), 0x0000, 0x1FFF))
	require.NoError(t, b.write(0x0000, 0x99))
	got, err := b.read(0x0800)
	require.NoError(t, err)
	assert.Equal(t, byte(0x99), got, "address 0x0800 should mirror 0x0000")
	got, err = b.read(0x1800)
	require.NoError(t, err)
	assert.Equal(t, byte(0x99), got, "address 0x1800 should mirror 0x0000")
}
