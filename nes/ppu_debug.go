package nes

import (
	"image"
	"image/color"
)

// PaletteSnapshot is a point-in-time copy of the PPU's 32-byte palette
// memory, aliases already resolved. It lets a caller inspect what the
// PPU is currently drawing from without reaching into unexported fields.
type PaletteSnapshot struct {
	Entries [32]byte
}

// Debug snapshots the current palette memory.
func (p *PPU) Debug() PaletteSnapshot {
	return PaletteSnapshot{Entries: p.paletteRAM.data}
}

// grayShades maps a tile's 2-bit plane value to a shade of gray, used by
// PatternTableImage since a raw pattern tile carries no palette of its
// own — only the nametable/OAM entry that references it picks one.
var grayShades = [4]color.RGBA{
	{0x00, 0x00, 0x00, 255},
	{0x55, 0x55, 0x55, 255},
	{0xAA, 0xAA, 0xAA, 255},
	{0xFF, 0xFF, 0xFF, 255},
}

// PatternTableImage renders pattern table bank (0 or 1, each a 4 KiB
// window of $0000-$1FFF on the PPU bus) as a 128x128 grid of 16x16 8x8
// tiles, shaded by raw 2-bit plane value rather than any particular
// palette.
func (p *PPU) PatternTableImage(bank int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	base := uint16(bank) * 0x1000
	for tileY := 0; tileY < 16; tileY++ {
		for tileX := 0; tileX < 16; tileX++ {
			tileBase := base + uint16(tileY*16+tileX)*16
			for row := 0; row < 8; row++ {
				lo, err := p.bus.read(tileBase + uint16(row))
				if err != nil {
					return nil, err
				}
				hi, err := p.bus.read(tileBase + uint16(row) + 8)
				if err != nil {
					return nil, err
				}
				for col := 0; col < 8; col++ {
					shift := 7 - col
					value := ((lo >> shift) & 1) | (((hi >> shift) & 1) << 1)
					img.SetRGBA(tileX*8+col, tileY*8+row, grayShades[value])
				}
			}
		}
	}
	return img, nil
}
