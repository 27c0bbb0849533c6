package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDMAEvenStartTakes513Cycles(t *testing.T) {
	cpuBus := newBus()
	require.NoError(t, cpuBus.attach(newRAM(0x100), 0x0200, 0x02FF))
	for i := 0; i < 0x100; i++ {
		require.NoError(t, cpuBus.write(0x0200+uint16(i), byte(i)))
	}

	var oam [256]byte
	writeOAM := func(offset, value byte) { oam[offset] = value }

	d := &dma{}
	d.start(0x02, false)

	cycles := 0
	for d.active {
		require.NoError(t, d.step(cpuBus, writeOAM))
		cycles++
	}
	assert.Equal(t, 513, cycles)
	assert.Equal(t, byte(0x00), oam[0])
	assert.Equal(t, byte(0xFF), oam[0xFF])
}

func TestDMAOddStartTakes514Cycles(t *testing.T) {
	cpuBus := newBus()
	require.NoError(t, cpuBus.attach(newRAM(0x100), 0x0200, 0x02FF))

	d := &dma{}
	d.start(0x02, true)

	cycles := 0
	for d.active {
		require.NoError(t, d.step(cpuBus, func(byte, byte) {}))
		cycles++
	}
	assert.Equal(t, 514, cycles)
}

func TestDMARegisterWriteArmsTransfer(t *testing.T) {
	cpuBus := newBus()
	require.NoError(t, cpuBus.attach(newRAM(0x100), 0x0200, 0x02FF))
	cpu := NewCPU(cpuBus)
	d := &dma{}
	reg := dmaRegister{d: d, cpu: cpu}
	require.NoError(t, reg.Write(0x4014, 0x02))
	assert.True(t, d.active)
	assert.Equal(t, byte(0x02), d.page)
}
