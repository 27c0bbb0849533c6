package nes

// Read implements device for the PPU's eight memory-mapped registers,
// mirrored every 8 bytes across $2000-$3FFF by the caller (console.go
// wraps the PPU in a mirrored view before attaching it to the CPU bus).
func (p *PPU) Read(address uint16) (byte, error) {
	switch address % 8 {
	case 2:
		return p.readPPUSTATUS(), nil
	case 4:
		return p.readOAMDATA(), nil
	case 7:
		return p.readPPUDATA()
	default:
		// Write-only registers return the PPU's open-bus latch: the last
		// byte written to any PPU register.
		return p.register, nil
	}
}

// Write implements device for the PPU's eight memory-mapped registers.
func (p *PPU) Write(address uint16, data byte) error {
	p.register = data
	switch address % 8 {
	case 0:
		p.writePPUCTRL(data)
	case 1:
		p.writePPUMASK(data)
	case 3:
		p.writeOAMADDR(data)
	case 4:
		p.writeOAMDATA(data)
	case 5:
		p.writePPUSCROLL(data)
	case 6:
		p.writePPUADDR(data)
	case 7:
		return p.writePPUDATA(data)
	}
	return nil
}

// writePPUCTRL writes PPUCTRL ($2000).
func (p *PPU) writePPUCTRL(data byte) {
	d := uint16(data)
	p.nameTableFlag = byte(bitRange(d, 0, 1))
	p.vramIncrementFlag = byte(bitRange(d, 2, 2))
	p.spriteTableFlag = byte(bitRange(d, 3, 3))
	p.backgroundTableFlag = byte(bitRange(d, 4, 4))
	p.spriteSizeFlag = byte(bitRange(d, 5, 5))
	p.masterSlaveSelectFlag = byte(bitRange(d, 6, 6))
	p.nmiOutput = bit(d, 7)
	// t: ...GH.. ........ <- d: ......GH
	p.t = (p.t & 0xF3FF) | ((uint16(data) & 0x03) << 10)
}

// writePPUMASK writes PPUMASK ($2001).
func (p *PPU) writePPUMASK(data byte) {
	d := uint16(data)
	p.grayScale = bit(d, 0)
	p.showLeftBackground = bit(d, 1)
	p.showLeftSprite = bit(d, 2)
	p.showBackground = bit(d, 3)
	p.showSprite = bit(d, 4)
	p.emphasizeRed = bit(d, 5)
	p.emphasizeGreen = bit(d, 6)
	p.emphasizeBlue = bit(d, 7)
}

// readPPUSTATUS reads PPUSTATUS ($2002).
func (p *PPU) readPPUSTATUS() byte {
	res := uint16(p.register & 0x1F)
	res = setBit(res, 5, p.spriteOverflow)
	res = setBit(res, 6, p.spriteZeroHit)
	// "Return old status of NMI_occurred in bit 7, then set NMI_occurred
	// to false." https://www.nesdev.org/wiki/NMI
	res = setBit(res, 7, p.oldNMI)
	p.updateNMI(false)
	p.w = false
	return byte(res)
}

// writeOAMADDR writes OAMADDR ($2003).
func (p *PPU) writeOAMADDR(data byte) {
	p.oamAddress = data
}

// readOAMDATA reads OAMDATA ($2004).
func (p *PPU) readOAMDATA() byte {
	return p.primaryOAM.read(p.oamAddress)
}

// writeOAMDATA writes OAMDATA ($2004).
func (p *PPU) writeOAMDATA(data byte) {
	p.primaryOAM.write(p.oamAddress, data)
	p.oamAddress++
}

// writeOAMDMAByte is called by the DMA controller once per transferred
// byte; unlike a CPU-driven OAMDATA write it does not advance through
// the instruction pipeline, but it shares OAMDATA's address-increment
// behavior.
func (p *PPU) writeOAMDMAByte(offset byte, value byte) {
	p.primaryOAM.write(p.oamAddress+offset, value)
}

// writePPUSCROLL writes PPUSCROLL ($2005).
func (p *PPU) writePPUSCROLL(data byte) {
	if !p.w {
		// t: ....... ...ABCDE <- d: ABCDE...
		// x:              FGH <- d: .....FGH
		// w:                  <- 1
		p.t = (p.t & 0xFFE0) | (uint16(data) >> 3)
		p.x = data & 7
		p.w = true
	} else {
		// t: FGH..AB CDE..... <- d: ABCDEFGH
		// w:                  <- 0
		p.t = (p.t & 0x8FFF) | ((uint16(data) & 0x07) << 12)
		p.t = (p.t & 0xFC1F) | ((uint16(data) & 0xF8) << 2)
		p.w = false
	}
}

// writePPUADDR writes PPUADDR ($2006).
func (p *PPU) writePPUADDR(data byte) {
	if !p.w {
		// t: ..CDEFGH ........ <- d: ..CDEFGH
		// t: Z....... ........ <- 0 (bit Z is cleared)
		// w:                  <- 1
		p.t = (p.t & 0x80FF) | ((uint16(data) & 0x3F) << 8)
		p.w = true
	} else {
		// t: ........ ABCDEFGH <- d: ABCDEFGH
		// v: <...all bits...> <- t: <...all bits...>
		// w:                  <- 0
		p.t = (p.t & 0xFF00) | uint16(data)
		p.v = p.t
		p.w = false
	}
}

// writePPUDATA writes PPUDATA ($2007). v is 15 bits but the PPU address
// space is 14; the top bit is ignored on access.
func (p *PPU) writePPUDATA(data byte) error {
	address := p.v & 0x3FFF
	if address >= 0x3F00 {
		p.paletteRAM.write(byte(address), data)
	} else {
		if err := p.bus.write(address, data); err != nil {
			return err
		}
	}
	p.incrementVRAMAddress()
	return nil
}

// readPPUDATA reads PPUDATA ($2007).
func (p *PPU) readPPUDATA() (byte, error) {
	address := p.v & 0x3FFF
	// Palette memory is addressed directly, the same way writePPUDATA
	// handles it: it isn't a bus-attached device, so $3F00-$3FFF must
	// never reach p.bus.read, which has nothing mapped there.
	if address >= 0x3F00 {
		data := p.paletteRAM.read(byte(address))
		p.buffer = data
		p.incrementVRAMAddress()
		return data, nil
	}
	data, err := p.bus.read(address)
	if err != nil {
		return 0, err
	}
	// Non-palette reads go through an internal read buffer one access
	// behind the actual VRAM address.
	buffered := p.buffer
	p.buffer = data
	p.incrementVRAMAddress()
	return buffered, nil
}

func (p *PPU) incrementVRAMAddress() {
	if p.vramIncrementFlag == 0 {
		p.v++
	} else {
		p.v += 32
	}
}

func (p *PPU) updateNMI(flag bool) {
	p.nmiOccurred = flag
	p.oldNMI = p.nmiOccurred
}
