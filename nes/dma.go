package nes

// dma emulates the OAM DMA controller at CPU address $4014: writing a
// page number there stalls the CPU and copies 256 bytes from
// page*0x100..page*0x100+0xFF into OAM, one byte per two CPU cycles
// (one read, one write), after a 1-cycle alignment wait plus one more
// if the transfer started on an odd CPU cycle. That totals 513 cycles
// on an even start, 514 on an odd one.
type dma struct {
	active      bool
	page        byte
	offset      byte
	readPending bool
	latch       byte
	waitCycles  int
}

// start arms a transfer from page. cpuCycleOdd reports whether the CPU
// cycle the $4014 write landed on was odd, which costs one extra
// alignment cycle before the transfer itself begins.
func (d *dma) start(page byte, cpuCycleOdd bool) {
	d.active = true
	d.page = page
	d.offset = 0
	d.readPending = false
	d.waitCycles = 1
	if cpuCycleOdd {
		d.waitCycles = 2
	}
}

// step advances the transfer by one CPU cycle: either consuming an
// alignment wait cycle, reading the next source byte, or writing the
// previously read byte into OAM via writeOAMByte. It clears active once
// all 256 bytes have been copied.
func (d *dma) step(cpuBus *bus, writeOAMByte func(offset byte, value byte)) error {
	if d.waitCycles > 0 {
		d.waitCycles--
		return nil
	}
	if !d.readPending {
		addr := uint16(d.page)<<8 | uint16(d.offset)
		v, err := cpuBus.read(addr)
		if err != nil {
			return err
		}
		d.latch = v
		d.readPending = true
		return nil
	}
	writeOAMByte(d.offset, d.latch)
	d.readPending = false
	d.offset++
	if d.offset == 0 {
		d.active = false
	}
	return nil
}

// dmaRegister is the $4014 CPU-bus device: writes arm a transfer, reads
// are open bus (0).
type dmaRegister struct {
	d   *dma
	cpu *CPU
}

func (r dmaRegister) Read(address uint16) (byte, error) { return 0, nil }

func (r dmaRegister) Write(address uint16, data byte) error {
	r.d.start(data, r.cpu.totalCycles%2 == 1)
	return nil
}
