package nes

// mapper0 implements NROM: https://www.nesdev.org/wiki/NROM
//
// It owns 8 KiB of PRG RAM at $6000-$7FFF, a 16 or 32 KiB PRG ROM window
// at $8000-$FFFF (16 KiB mirrors so that $C000-$FFFF aliases $8000-$BFFF
// on NROM-128 boards), and an 8 KiB CHR window (ROM, or RAM if the header
// declared zero CHR banks) at PPU $0000-$1FFF.
type mapper0 struct {
	prgRAM *ram
	prgROM *mirrored
	chr    device
}

func newMapper0(c *Cartridge) *mapper0 {
	var chr device
	if c.chrIsRAM {
		chr = newRAM(chrROMSizeUnit)
	} else {
		chr = newROM(c.chrROM)
	}
	return &mapper0{
		prgRAM: newRAM(0x2000),
		prgROM: newMirrored(newROM(c.prgROM), uint16(len(c.prgROM))),
		chr:    chr,
	}
}

func (m *mapper0) Attach(cpuBus, ppuBus *bus) error {
	if err := cpuBus.attach(m.prgRAM, 0x6000, 0x7FFF); err != nil {
		return err
	}
	if err := cpuBus.attach(m.prgROM, 0x8000, 0xFFFF); err != nil {
		return err
	}
	if err := ppuBus.attach(m.chr, 0x0000, 0x1FFF); err != nil {
		return err
	}
	return nil
}

func (m *mapper0) Detach(cpuBus, ppuBus *bus) {
	cpuBus.detach(m.prgRAM)
	cpuBus.detach(m.prgROM)
	ppuBus.detach(m.chr)
}
