package nes

import "fmt"

// Mapper owns a cartridge's PRG/CHR memory and attaches the windows it's
// responsible for to the CPU and PPU buses at insert time. Only Mapper 0
// (NROM) exists; mappers beyond 0 are outside this core's scope.
type Mapper interface {
	Attach(cpuBus, ppuBus *bus) error
	Detach(cpuBus, ppuBus *bus)
}

// NewCartridgeMapper picks the mapper named by the cartridge's header and
// constructs it. Only mapper number 0 is supported; anything else is a
// hard error, since this core implements no other mapper.
func NewCartridgeMapper(c *Cartridge) (Mapper, error) {
	switch n := c.mapperNumber(); n {
	case 0:
		return newMapper0(c), nil
	default:
		return nil, fmt.Errorf("nes: unsupported mapper number %d", n)
	}
}
