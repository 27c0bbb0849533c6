package nes

import "image"

// Console is a fully assembled NES: CPU, PPU, APU, DMA controller, a
// cartridge behind its mapper, and a joypad.
type Console interface {
	Reset() error
	// Step advances the console by one CPU-equivalent clock slot (three
	// PPU dots) and reports how many CPU cycles it consumed (always 1;
	// see NesConsole.Step).
	Step() (int, error)
	Frame() (*image.RGBA, bool)
	SetAudioOut(chan float32)
	SetButtons([8]bool)
}

// NesConsole wires the CPU, PPU, APU, OAM DMA controller, joypad and
// cartridge mapper together and drives them on a shared clock: the PPU
// runs every dot, and every third dot either the CPU advances one
// cycle or, while a transfer is active, the DMA controller does.
type NesConsole struct {
	cpu        *CPU
	ppu        *PPU
	apu        *APU
	dma        *dma
	controller *Controller
	cartridge  *Cartridge
	mapper     Mapper
	cpuBus     *bus
	ppuBus     *bus

	// Debug-console conveniences; not used by the clock harness itself.
	wram *ram
	vram *nametableDevice

	lastFrame    uint64
	currentFrame uint64
	buffer       *image.RGBA
}

// NewConsole assembles a console with every bus device except the
// cartridge wired up. cartridge may be nil, leaving the console without
// a cartridge until InsertCartridge is called; Step reports
// ErrNoCartridgeInserted until then. If debug is true, the returned
// Console is a DebugConsole wrapping the same machine.
func NewConsole(cartridge *Cartridge, debug bool) (Console, error) {
	controller := NewController()
	apu := NewAPU()

	cpuBus := newBus()
	ppuBus := newBus()

	wram := newRAM(0x0800)
	if err := cpuBus.attach(newMirrored(wram, 0x0800), 0x0000, 0x1FFF); err != nil {
		return nil, err
	}

	// Nametable mirroring defaults to horizontal until a cartridge is
	// inserted and reports its own mode; the nametable RAM itself, like
	// the rest of the non-cartridge bus fabric, is wired up once here and
	// never re-attached.
	nametables := newNametableDevice(mirrorHorizontal)
	if err := ppuBus.attach(newMirrored(nametables, 0x1000), 0x2000, 0x3EFF); err != nil {
		return nil, err
	}

	ppu := NewPPU(ppuBus)
	if err := cpuBus.attach(newMirrored(ppu, 8), 0x2000, 0x3FFF); err != nil {
		return nil, err
	}

	d := &dma{}
	cpu := NewCPU(cpuBus)
	if err := cpuBus.attach(dmaRegister{d: d, cpu: cpu}, 0x4014, 0x4014); err != nil {
		return nil, err
	}
	if err := cpuBus.attach(controller, 0x4016, 0x4016); err != nil {
		return nil, err
	}
	if err := cpuBus.attach(apuWindow{apu: apu, base: 0x4000}, 0x4000, 0x4013); err != nil {
		return nil, err
	}
	if err := cpuBus.attach(apuWindow{apu: apu, base: 0x4015}, 0x4015, 0x4015); err != nil {
		return nil, err
	}
	if err := cpuBus.attach(apuWindow{apu: apu, base: 0x4017}, 0x4017, 0x4017); err != nil {
		return nil, err
	}
	if err := cpuBus.attach(ioStub{}, 0x4018, 0x401F); err != nil {
		return nil, err
	}

	console := &NesConsole{
		cpu: cpu, ppu: ppu, apu: apu, dma: d, controller: controller,
		cpuBus: cpuBus, ppuBus: ppuBus,
		wram: wram, vram: nametables,
	}
	if cartridge != nil {
		if err := console.InsertCartridge(cartridge); err != nil {
			return nil, err
		}
	}
	if debug {
		return &DebugConsole{NesConsole: console}, nil
	}
	return console, nil
}

// InsertCartridge attaches cartridge's mapper to both buses and
// reconfigures nametable mirroring to match it. Bus address tables are
// mutated only here and in EjectCartridge, never mid-execution.
func (c *NesConsole) InsertCartridge(cartridge *Cartridge) error {
	if c.cartridge != nil {
		if err := c.EjectCartridge(); err != nil {
			return err
		}
	}
	mapper, err := NewCartridgeMapper(cartridge)
	if err != nil {
		return err
	}
	if err := mapper.Attach(c.cpuBus, c.ppuBus); err != nil {
		return err
	}
	c.vram.setMirrorMode(cartridge.mirrorMode())
	c.cartridge = cartridge
	c.mapper = mapper
	return nil
}

// EjectCartridge detaches the current cartridge's mapper from both
// buses, leaving the console cartridge-less until the next
// InsertCartridge call.
func (c *NesConsole) EjectCartridge() error {
	if c.cartridge == nil {
		return ErrNoCartridgeInserted
	}
	c.mapper.Detach(c.cpuBus, c.ppuBus)
	c.cartridge = nil
	c.mapper = nil
	return nil
}

func (c *NesConsole) Reset() error {
	c.currentFrame = 0
	c.lastFrame = 0
	c.cpu.Reset()
	c.ppu.Reset()
	return nil
}

// Step advances the clock by three PPU dots and, on the third, either
// ticks the CPU one cycle or pumps one DMA cycle if a transfer is
// in flight. It always reports 1 CPU-equivalent cycle consumed; the
// caller loops this to cover however many cycles it wants.
func (c *NesConsole) Step() (int, error) {
	if c.cartridge == nil {
		return 0, ErrNoCartridgeInserted
	}
	for i := 0; i < 3; i++ {
		nmi, err := c.ppu.Step()
		if err != nil {
			return 0, err
		}
		if nmi {
			c.cpu.RequestNMI()
		}
		if ok, f := c.ppu.Frame(); ok {
			c.currentFrame++
			c.buffer = f
		}
	}
	if c.dma.active {
		if err := c.dma.step(c.cpuBus, c.ppu.writeOAMDMAByte); err != nil {
			return 0, err
		}
	} else {
		if err := c.cpu.Tick(); err != nil {
			return 0, err
		}
	}
	c.apu.Step()
	return 1, nil
}

// Frame returns the most recently completed picture and whether it is
// new since the last call.
func (c *NesConsole) Frame() (*image.RGBA, bool) {
	if c.lastFrame < c.currentFrame {
		c.lastFrame = c.currentFrame
		return c.buffer, true
	}
	return c.buffer, false
}

func (c *NesConsole) SetAudioOut(channel chan float32) {
	c.apu.SetAudioOut(channel)
}

func (c *NesConsole) SetButtons(buttons [8]bool) {
	c.controller.Set(buttons)
}
