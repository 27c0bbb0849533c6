package nes

// sprite is one decoded entry from the eight-wide secondary OAM: the
// per-scanline working set the pixel producer draws from.
type sprite struct {
	index     int
	y         byte
	tile      byte
	attribute byte
	x         byte
}

func (s sprite) priority() bool { return bit(uint16(s.attribute), 5) }

func (s sprite) horizontalFlip() bool { return bit(uint16(s.attribute), 6) }

func (s sprite) verticalFlip() bool { return bit(uint16(s.attribute), 7) }

func (s sprite) paletteIndex() byte { return s.attribute & 0x03 }

// oam is the 256-byte Object Attribute Memory: 64 sprites of (y, tile,
// attributes, x).
type oam struct {
	data [256]byte
}

func (o *oam) read(address byte) byte {
	return o.data[address]
}

func (o *oam) write(address byte, value byte) {
	o.data[address] = value
}

// spriteAt returns sprite i (0-63) decoded from primary OAM.
func (o *oam) spriteAt(i int) sprite {
	base := i * 4
	return sprite{
		index:     i,
		y:         o.data[base],
		tile:      o.data[base+1],
		attribute: o.data[base+2],
		x:         o.data[base+3],
	}
}

// paletteRAM is the PPU's 32-byte palette memory. Every access goes
// through the alias rule: the four "backdrop" sprite-palette entries
// $3F10/$3F14/$3F18/$3F1C mirror the background entries $3F00/$3F04/
// $3F08/$3F0C.
type paletteRAM struct {
	data [32]byte
}

func paletteAlias(address byte) byte {
	a := address % 32
	switch a {
	case 0x10, 0x14, 0x18, 0x1C:
		return a - 0x10
	default:
		return a
	}
}

func (p *paletteRAM) read(address byte) byte {
	return p.data[paletteAlias(address)]
}

func (p *paletteRAM) write(address byte, value byte) {
	p.data[paletteAlias(address)] = value
}

// nametableDevice exposes the 2 KiB of physical nametable RAM mirrored
// across the PPU bus's four logical 1 KiB nametable slots, per the
// cartridge's mirroring mode.
type nametableDevice struct {
	vram *ram
	mode mirrorMode
}

func newNametableDevice(mode mirrorMode) *nametableDevice {
	return &nametableDevice{vram: newRAM(0x0800), mode: mode}
}

// setMirrorMode reconfigures which physical nametable an access maps to,
// called when a newly inserted cartridge reports its own mirroring. The
// underlying 2 KiB RAM is untouched; only the address translation changes.
func (n *nametableDevice) setMirrorMode(mode mirrorMode) {
	n.mode = mode
}

// physicalOffset maps a nametable-relative address (0-0xFFF, i.e. four
// logical 1 KiB tables) to its physical offset in the 2 KiB backing RAM.
func (n *nametableDevice) physicalOffset(address uint16) uint16 {
	table := address / 0x0400 // 0-3
	offset := address % 0x0400
	var physicalTable uint16
	switch n.mode {
	case mirrorHorizontal:
		// tables 0,1 -> physical 0; tables 2,3 -> physical 1
		physicalTable = table / 2
	case mirrorVertical:
		// tables 0,2 -> physical 0; tables 1,3 -> physical 1
		physicalTable = table % 2
	}
	return physicalTable*0x0400 + offset
}

func (n *nametableDevice) Read(address uint16) (byte, error) {
	return n.vram.Read(n.physicalOffset(address))
}

func (n *nametableDevice) Write(address uint16, data byte) error {
	return n.vram.Write(n.physicalOffset(address), data)
}
