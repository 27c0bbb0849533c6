package nes

import "image"

// NES PPU generates 256x240 pixels.
const (
	width  = 256
	height = 240
)

// PPU stands for Picture Processing Unit, rendering 256x240 pixels for
// a screen. It runs three times the CPU's clock: one frame is
// 341x262=89342 dots, each dot producing at most one pixel. This
// implementation targets NTSC timing only.
//
// References:
//
//	https://www.nesdev.org/wiki/PPU
//	https://www.nesdev.org/wiki/PPU_scrolling
//	https://www.nesdev.org/wiki/PPU_rendering
type PPU struct {
	bus *bus

	picture *image.RGBA

	oamAddress   byte
	primaryOAM   oam
	secondaryOAM [8]sprite
	secondaryNum int

	spriteOverflow bool
	spriteZeroHit  bool

	// Current and temporary VRAM address (15 bits): yyy NN YYYYY XXXXX.
	v uint16
	t uint16
	x byte // fine X scroll (3 bits)
	w bool // shared write toggle for PPUSCROLL/PPUADDR

	buffer byte // PPUDATA read buffer

	nmiOccurred bool
	oldNMI      bool
	nmiOutput   bool

	// $2000
	nameTableFlag         byte
	vramIncrementFlag     byte
	spriteTableFlag       byte
	backgroundTableFlag   byte
	spriteSizeFlag        byte
	masterSlaveSelectFlag byte

	// $2001
	grayScale          bool
	showLeftBackground bool
	showLeftSprite     bool
	showBackground     bool
	showSprite         bool
	emphasizeRed       bool
	emphasizeGreen     bool
	emphasizeBlue      bool

	register byte // open-bus latch for $2002/write-only register reads

	paletteRAM paletteRAM

	nameTableByte      byte
	attributeTableByte byte
	lowTileByte        byte
	highTileByte       byte
	tileDataBuffer     [6]byte

	cycle    int
	scanline int
	oddFrame bool
}

// NewPPU creates a PPU wired to ppuBus.
func NewPPU(ppuBus *bus) *PPU {
	return &PPU{
		bus:     ppuBus,
		picture: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Reset starts the PPU at dot 0 of the post-render line (scanline 240),
// one line before vblank begins; real hardware's exact power-on dot
// position is implementation-defined and doesn't affect correctness
// once the first frame completes.
func (p *PPU) Reset() {
	p.cycle = 0
	p.scanline = 240
}

// Frame reports whether the just-stepped dot completed a frame, and if
// so returns the finished picture.
func (p *PPU) Frame() (bool, *image.RGBA) {
	if p.cycle == 257 && p.scanline == 239 {
		return true, p.picture
	}
	return false, nil
}

// The v/t scroll registers' sub-fields: yyy NN YYYYY XXXXX.
var (
	coarseXField  = newBitGroup(0x001F)
	coarseYField  = newBitGroup(0x03E0)
	nametableXBit = newBitGroup(0x0400)
	nametableYBit = newBitGroup(0x0800)
	fineYField    = newBitGroup(0x7000)
)

// incrementCoarseX advances the coarse-X scroll field, wrapping into
// the horizontally adjacent nametable.
func (p *PPU) incrementCoarseX() {
	v, wrapped := coarseXField.overflowingAdd(p.v, 1)
	if wrapped {
		v = nametableXBit.toggle(v)
	}
	p.v = v
}

// copyX copies the horizontal scroll bits from t into v.
func (p *PPU) copyX() {
	p.v = (p.v & 0xFBE0) | (p.t & 0x041F)
}

// copyY copies the vertical scroll bits from t into v.
func (p *PPU) copyY() {
	p.v = (p.v & 0x841F) | (p.t & 0x7BE0)
}

// incrementY advances the fine/coarse-Y scroll fields, wrapping into
// the vertically adjacent nametable at the 240-row boundary.
func (p *PPU) incrementY() {
	v, wrapped := fineYField.overflowingAdd(p.v, 1)
	p.v = v
	if !wrapped {
		return
	}
	switch coarseYField.get(p.v) {
	case 29:
		// Row 29 is the last row of tiles; past it the PPU moves into the
		// vertically adjacent nametable.
		p.v = coarseYField.clear(p.v)
		p.v = nametableYBit.toggle(p.v)
	case 31:
		// Rows 30-31 hold attribute data; coarse Y wraps without switching
		// nametables when a program points v there deliberately.
		p.v = coarseYField.clear(p.v)
	default:
		p.v, _ = coarseYField.overflowingAdd(p.v, 1)
	}
}

func (p *PPU) fetchLowTileByte() error {
	fineY := fineYField.get(p.v)
	address := 0x1000*uint16(p.backgroundTableFlag) + uint16(p.nameTableByte)*16 + fineY
	data, err := p.bus.read(address)
	if err != nil {
		return err
	}
	p.lowTileByte = data
	return nil
}

func (p *PPU) fetchHighTileByte() error {
	fineY := fineYField.get(p.v)
	address := 0x1000*uint16(p.backgroundTableFlag) + uint16(p.nameTableByte)*16 + fineY + 8
	data, err := p.bus.read(address)
	if err != nil {
		return err
	}
	p.highTileByte = data
	return nil
}

func (p *PPU) fetchAttributeTableByte() error {
	address := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
	data, err := p.bus.read(address)
	if err != nil {
		return err
	}
	p.attributeTableByte = data
	return nil
}

func (p *PPU) fetchNameTableByte() error {
	data, err := p.bus.read(0x2000 | (p.v & 0x0FFF))
	if err != nil {
		return err
	}
	p.nameTableByte = data
	return nil
}

// Step advances the PPU by one dot on the 341x262 grid, producing at
// most one pixel, and reports whether the dot just stepped should
// raise NMI.
func (p *PPU) Step() (bool, error) {
	p.cycle++
	if p.cycle == 341 {
		p.cycle = 0
		p.scanline++
		if p.scanline == 262 {
			p.scanline = 0
			p.oddFrame = !p.oddFrame
		}
		// Dot 0 of the pre-render line (scanline 261) is skipped on odd
		// frames when rendering is enabled: the pre-render line is 340
		// dots instead of 341.
		if p.scanline == 261 && p.oddFrame && p.showBackground {
			p.cycle = 1
		}
	}
	if p.showBackground {
		if 1 <= p.cycle && p.cycle <= 256 && p.scanline <= 239 {
			if err := p.renderPixel(); err != nil {
				return false, err
			}
		}
		if p.scanline == 261 && 280 <= p.cycle && p.cycle <= 304 {
			p.copyY()
		}
		if p.scanline < 240 || p.scanline == 261 {
			if 1 <= p.cycle && p.cycle <= 256 && p.cycle%8 == 0 {
				p.incrementCoarseX()
			}
			if p.cycle == 328 || p.cycle == 336 {
				p.incrementCoarseX()
			}
			if p.cycle == 256 {
				p.incrementY()
			}
			if p.cycle == 257 {
				p.copyX()
			}
			if (0 < p.cycle && p.cycle <= 257) || 320 < p.cycle {
				switch p.cycle % 8 {
				case 0:
					// The PPU fetches tile data two "fetch cycles" ahead
					// of when it's needed; shift the pipeline forward.
					p.tileDataBuffer[3] = p.tileDataBuffer[0]
					p.tileDataBuffer[4] = p.tileDataBuffer[1]
					p.tileDataBuffer[5] = p.tileDataBuffer[2]
					p.tileDataBuffer[0] = p.attributeTableByte
					p.tileDataBuffer[1] = p.lowTileByte
					p.tileDataBuffer[2] = p.highTileByte
				case 1:
					if err := p.fetchNameTableByte(); err != nil {
						return false, err
					}
				case 3:
					if err := p.fetchAttributeTableByte(); err != nil {
						return false, err
					}
				case 5:
					if err := p.fetchLowTileByte(); err != nil {
						return false, err
					}
				case 7:
					if err := p.fetchHighTileByte(); err != nil {
						return false, err
					}
				}
			}
		}
	}
	if p.scanline == 241 && p.cycle == 1 {
		p.updateNMI(true)
	}
	if p.scanline == 261 && p.cycle == 1 {
		p.spriteOverflow = false
		p.spriteZeroHit = false
		p.updateNMI(false)
	}
	// Sprite evaluation is logically independent per-dot work; this core
	// computes it all at once on dot 257 rather than one OAM entry per
	// dot.
	if p.cycle == 257 {
		if p.scanline < 240 {
			p.evaluateSprite()
		} else {
			p.secondaryNum = 0
		}
	}
	if p.nmiOutput && p.nmiOccurred && p.scanline == 241 && p.cycle == 1 {
		return true, nil
	}
	return false, nil
}
