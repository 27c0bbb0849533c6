package nes

import "image/color"

// colors is the fixed 64-entry NTSC NES palette.
// Reference: https://emulation.gametechwiki.com/index.php/Famicom_color_palette
var colors = [64]color.RGBA{
	{0x6D, 0x6D, 0x6D, 255}, {0x00, 0x24, 0x92, 255}, {0x00, 0x00, 0xDB, 255}, {0x6D, 0x49, 0xDB, 255},
	{0x92, 0x00, 0x6D, 255}, {0xB6, 0x00, 0x6D, 255}, {0xB6, 0x24, 0x00, 255}, {0x92, 0x49, 0x00, 255},
	{0x6D, 0x49, 0x00, 255}, {0x24, 0x49, 0x00, 255}, {0x00, 0x6D, 0x24, 255}, {0x00, 0x92, 0x00, 255},
	{0x00, 0x49, 0x49, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xB6, 0xB6, 0xB6, 255}, {0x00, 0x6D, 0xDB, 255}, {0x00, 0x49, 0xFF, 255}, {0x92, 0x00, 0xFF, 255},
	{0xB6, 0x00, 0xFF, 255}, {0xFF, 0x00, 0x92, 255}, {0xFF, 0x00, 0x00, 255}, {0xDB, 0x6D, 0x00, 255},
	{0x92, 0x6D, 0x00, 255}, {0x24, 0x92, 0x00, 255}, {0x00, 0x92, 0x00, 255}, {0x00, 0xB6, 0x6D, 255},
	{0x00, 0x92, 0x92, 255}, {0x24, 0x24, 0x24, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xFF, 0xFF, 0xFF, 255}, {0x6D, 0xB6, 0xFF, 255}, {0x92, 0x92, 0xFF, 255}, {0xDB, 0x6D, 0xFF, 255},
	{0xFF, 0x00, 0xFF, 255}, {0xFF, 0x6D, 0xFF, 255}, {0xFF, 0x92, 0x00, 255}, {0xFF, 0xB6, 0x00, 255},
	{0xDB, 0xDB, 0x00, 255}, {0x6D, 0xDB, 0x00, 255}, {0x00, 0xFF, 0x00, 255}, {0x49, 0xFF, 0xDB, 255},
	{0x00, 0xFF, 0xFF, 255}, {0x49, 0x49, 0x49, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xFF, 0xFF, 0xFF, 255}, {0xB6, 0xDB, 0xFF, 255}, {0xDB, 0xB6, 0xFF, 255}, {0xFF, 0xB6, 0xFF, 255},
	{0xFF, 0x92, 0xFF, 255}, {0xFF, 0xB6, 0xB6, 255}, {0xFF, 0xDB, 0x92, 255}, {0xFF, 0xFF, 0x49, 255},
	{0xFF, 0xFF, 0x6D, 255}, {0xB6, 0xFF, 0x49, 255}, {0x92, 0xFF, 0x6D, 255}, {0x49, 0xFF, 0xDB, 255},
	{0x92, 0xDB, 0xFF, 255}, {0x92, 0x92, 0x92, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
}

// spritePaletteAddress resolves a sprite's nonzero pattern value to its
// palette RAM address: sprite palettes occupy entries 4-7.
func spritePaletteAddress(s sprite, value byte) uint16 {
	return 0x3F00 | (uint16(s.paletteIndex())+4)*4 + uint16(value)
}

// spriteHeight returns 16 in 8x16 mode, 8 otherwise.
func (p *PPU) spriteHeight() int {
	if p.spriteSizeFlag == 1 {
		return 16
	}
	return 8
}

// patternAddress resolves a sprite's row of pattern data to a PPU bus
// address, handling 8x16 mode's two-tiles-per-sprite layout: tile bit 0
// selects the pattern table and the even tile number covers the top
// half, with the next odd tile covering the bottom half.
func (p *PPU) patternAddress(s sprite, row int) uint16 {
	if p.spriteHeight() == 16 {
		bank := uint16(s.tile&1) * 0x1000
		tile := s.tile &^ 1
		if row >= 8 {
			tile++
			row -= 8
		}
		return bank + uint16(tile)*16 + uint16(row)
	}
	return 0x1000*uint16(p.spriteTableFlag) + uint16(s.tile)*16 + uint16(row)
}

// evaluateSprite scans primary OAM for sprites visible on the next
// scanline, filling secondary OAM with at most 8 and flagging overflow
// when more than 8 would have been visible.
func (p *PPU) evaluateSprite() {
	height := p.spriteHeight()
	count := 0
	for i := 0; i < 64; i++ {
		s := p.primaryOAM.spriteAt(i)
		y := int(s.y)
		if y <= p.scanline+1 && p.scanline+1 < y+height {
			if count < 8 {
				s.index = i
				p.secondaryOAM[count] = s
			}
			count++
		}
	}
	if count > 8 {
		count = 8
		p.spriteOverflow = true
	}
	p.secondaryNum = count
}

// renderSpritePixel returns the secondary-OAM index and 2-bit pattern
// value of the highest-priority (lowest-index) sprite covering the
// current dot, or (0, 0) if none does or sprite rendering is off.
func (p *PPU) renderSpritePixel() (int, byte, error) {
	if !p.showSprite {
		return 0, 0, nil
	}
	x := p.cycle - 1
	y := p.scanline
	for i := 0; i < p.secondaryNum; i++ {
		s := p.secondaryOAM[i]
		sx := int(s.x)
		if sx <= x && x < sx+8 {
			row := y - int(s.y)
			if s.verticalFlip() {
				row = p.spriteHeight() - 1 - row
			}
			address := p.patternAddress(s, row)
			lowTileByte, err := p.bus.read(address)
			if err != nil {
				return 0, 0, err
			}
			highTileByte, err := p.bus.read(address + 8)
			if err != nil {
				return 0, 0, err
			}
			shift := 7 - (x - sx)
			if s.horizontalFlip() {
				shift = x - sx
			}
			lv := (lowTileByte >> shift) & 1
			hv := (highTileByte >> shift) & 1
			return i, lv + hv<<1, nil
		}
	}
	return 0, 0, nil
}

// renderBackgroundPixel samples the current dot's 2-bit background value
// and the attribute byte it should be colored with. Fine X shifts the
// sample point right within the pipeline's current tile; samples past
// bit 7 fall through into the prefetched next tile.
func (p *PPU) renderBackgroundPixel() (byte, byte) {
	if !p.showBackground {
		return 0, 0
	}
	x := p.cycle - 1
	column := x%8 + int(p.x)
	lowTileByte := p.tileDataBuffer[4]
	highTileByte := p.tileDataBuffer[5]
	attributeTableByte := p.tileDataBuffer[3]
	if column >= 8 {
		column -= 8
		lowTileByte = p.tileDataBuffer[1]
		highTileByte = p.tileDataBuffer[2]
		attributeTableByte = p.tileDataBuffer[0]
	}
	lv := (lowTileByte >> (7 - column)) & 1
	hv := (highTileByte >> (7 - column)) & 1
	return lv + hv<<1, attributeTableByte
}

// backgroundColor resolves a background pixel's 2-bit value, combined
// with the attribute byte's palette selector for the current dot, to a
// concrete color.
func (p *PPU) backgroundColor(value, attributeTableData byte) *color.RGBA {
	x := p.cycle - 1
	y := p.scanline
	num := byte(y&8)>>2 | byte(x&8)>>3
	palette := (attributeTableData >> (num << 1)) & 3
	paletteIndex := p.paletteRAM.read(byte(0x3F00 | uint16((palette<<2)+value)))
	return &colors[paletteIndex]
}

// renderPixel computes and writes the composited background/sprite
// color for the current dot into the frame buffer.
func (p *PPU) renderPixel() error {
	x := p.cycle - 1
	y := p.scanline
	bg, attributeTableByte := p.renderBackgroundPixel()
	i, sp, err := p.renderSpritePixel()
	if err != nil {
		return err
	}
	if x < 8 && !p.showLeftBackground {
		bg = 0
	}
	if x < 8 && !p.showLeftSprite {
		sp = 0
	}
	// BG pixel | Sprite pixel | Priority | Output
	// 0        | 0            | X        | BG($3F00)
	// 0        | 1-3          | X        | Sprite
	// 1-3      | 0            | X        | BG
	// 1-3      | 1-3          | 0        | Sprite
	// 1-3      | 1-3          | 1        | BG
	bgOpaque := bg != 0
	spOpaque := sp != 0
	s := p.secondaryOAM[i]
	var out *color.RGBA
	switch {
	case !spOpaque && !bgOpaque:
		out = &colors[p.paletteRAM.read(0x00)]
	case spOpaque && !bgOpaque:
		out = &colors[p.paletteRAM.read(byte(spritePaletteAddress(s, sp)))]
	case !spOpaque && bgOpaque:
		out = p.backgroundColor(bg, attributeTableByte)
	default:
		if s.priority() {
			out = p.backgroundColor(bg, attributeTableByte)
		} else {
			out = &colors[p.paletteRAM.read(byte(spritePaletteAddress(s, sp)))]
		}
		// "When an opaque pixel of sprite 0 overlaps an opaque pixel of
		// the background, this is a sprite zero hit." Columns 0 and 255
		// never register a hit.
		if s.index == 0 && 0 < x && x < 255 {
			p.spriteZeroHit = true
		}
	}
	p.picture.SetRGBA(x, y, *out)
	return nil
}
