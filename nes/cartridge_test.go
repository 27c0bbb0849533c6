package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildINES assembles a minimal iNES image: prgBanks * 16 KiB of PRG,
// chrBanks * 8 KiB of CHR, flags6/flags7 as given.
func buildINES(prgBanks, chrBanks int, flags6, flags7 byte) []byte {
	header := []byte{'N', 'E', 'S', msDosEOF, byte(prgBanks), byte(chrBanks), flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0}
	body := make([]byte, prgBanks*prgROMSizeUnit+chrBanks*chrROMSizeUnit)
	for i := range body {
		body[i] = byte(i)
	}
	return append(header, body...)
}

func TestNewCartridgeRejectsBadMagic(t *testing.T) {
	_, err := NewCartridge([]byte("not an ines file at all"))
	require.Error(t, err)
}

func TestNewCartridgeParsesPRGAndCHR(t *testing.T) {
	data := buildINES(2, 1, 0x00, 0x00)
	c, err := NewCartridge(data)
	require.NoError(t, err)
	assert.Len(t, c.prgROM, 2*prgROMSizeUnit)
	assert.Len(t, c.chrROM, chrROMSizeUnit)
	assert.False(t, c.chrIsRAM)
	assert.Equal(t, mirrorHorizontal, c.mirrorMode())
}

func TestNewCartridgeZeroCHRBanksMeansCHRRAM(t *testing.T) {
	data := buildINES(1, 0, 0x00, 0x00)
	c, err := NewCartridge(data)
	require.NoError(t, err)
	assert.True(t, c.chrIsRAM)
	assert.Len(t, c.chrROM, chrROMSizeUnit)
}

func TestNewCartridgeSkipsTrainer(t *testing.T) {
	data := buildINES(1, 1, 0x04 /* trainer present */, 0x00)
	withTrainer := make([]byte, 0, len(data)+inesTrainerSize)
	withTrainer = append(withTrainer, data[:inesHeaderSizeBytes]...)
	withTrainer = append(withTrainer, make([]byte, inesTrainerSize)...)
	withTrainer = append(withTrainer, data[inesHeaderSizeBytes:]...)
	c, err := NewCartridge(withTrainer)
	require.NoError(t, err)
	assert.Len(t, c.prgROM, prgROMSizeUnit)
}

func TestNewCartridgeMirrorVertical(t *testing.T) {
	data := buildINES(1, 1, 0x01, 0x00)
	c, err := NewCartridge(data)
	require.NoError(t, err)
	assert.Equal(t, mirrorVertical, c.mirrorMode())
}

func TestNewCartridgeTruncatedIsError(t *testing.T) {
	data := buildINES(2, 1, 0x00, 0x00)
	_, err := NewCartridge(data[:len(data)-10])
	require.Error(t, err)
}

func TestMapperNumberFromFlags(t *testing.T) {
	// Mapper 2 = flags7 high nibble 0x00, flags6 high nibble 0x02.
	data := buildINES(1, 1, 0x20, 0x00)
	c, err := NewCartridge(data)
	require.NoError(t, err)
	assert.Equal(t, byte(2), c.mapperNumber())
}

func TestNewCartridgeMapperUnsupportedIsError(t *testing.T) {
	data := buildINES(1, 1, 0x20, 0x00)
	c, err := NewCartridge(data)
	require.NoError(t, err)
	_, err = NewCartridgeMapper(c)
	require.Error(t, err)
}

func TestMapper0AttachesNROMWindows(t *testing.T) {
	data := buildINES(1, 1, 0x00, 0x00)
	c, err := NewCartridge(data)
	require.NoError(t, err)
	m, err := NewCartridgeMapper(c)
	require.NoError(t, err)
	cpuBus, ppuBus := newBus(), newBus()
	require.NoError(t, m.Attach(cpuBus, ppuBus))

	// 16 KiB PRG-ROM mirrors across $8000-$FFFF on NROM-128.
	lo, err := cpuBus.read(0x8000)
	require.NoError(t, err)
	hi, err := cpuBus.read(0xC000)
	require.NoError(t, err)
	assert.Equal(t, lo, hi)

	// PRG RAM at $6000 is writable.
	require.NoError(t, cpuBus.write(0x6000, 0x7F))
	got, err := cpuBus.read(0x6000)
	require.NoError(t, err)
	assert.Equal(t, byte(0x7F), got)

	// CHR window reachable on the PPU bus.
	_, err = ppuBus.read(0x0000)
	require.NoError(t, err)
}
