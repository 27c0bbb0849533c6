package nes

import "github.com/golang/glog"

// device is anything a bus can route an address to: RAM/ROM/mirrored
// memory, a register file (the PPU's eight CPU-visible registers), the
// controller's shift register, or a mapper's PRG/CHR window.
type device interface {
	Read(address uint16) (byte, error)
	Write(address uint16, data byte) error
}

type attachment struct {
	device device
	start  uint16
	end    uint16 // inclusive
}

// bus routes an address to the device that owns it, translating the
// global address into the device's own local frame (bus_addr -
// range.start) before delegating. Two buses exist in the core: the CPU
// bus (16-bit address space) and the PPU bus (14-bit effective; callers
// are expected to mask to 14 bits before calling Read/Write).
type bus struct {
	attachments []attachment
}

func newBus() *bus {
	return &bus{}
}

// attach registers device to own [start, end] inclusive. It fails with
// AlreadyAttached if the range overlaps an existing attachment.
func (b *bus) attach(d device, start, end uint16) error {
	for _, a := range b.attachments {
		if start <= a.end && a.start <= end {
			return &BusAttachError{Kind: AlreadyAttached, Address: start}
		}
	}
	b.attachments = append(b.attachments, attachment{device: d, start: start, end: end})
	return nil
}

// detach removes every attachment owned by d, reversing attach. Used when
// a cartridge (and its mapper-owned windows) is ejected.
func (b *bus) detach(d device) {
	kept := b.attachments[:0]
	for _, a := range b.attachments {
		if a.device != d {
			kept = append(kept, a)
		}
	}
	b.attachments = kept
}

func (b *bus) find(address uint16) (attachment, bool) {
	for _, a := range b.attachments {
		if a.start <= address && address <= a.end {
			return a, true
		}
	}
	return attachment{}, false
}

func (b *bus) read(address uint16) (byte, error) {
	a, ok := b.find(address)
	if !ok {
		glog.Infof("nes: unmapped bus read: address=0x%04x", address)
		return 0, &BusAttachError{Kind: MissingBusDevice, Address: address}
	}
	return a.device.Read(address - a.start)
}

func (b *bus) write(address uint16, data byte) error {
	a, ok := b.find(address)
	if !ok {
		glog.Infof("nes: unmapped bus write: address=0x%04x, data=0x%02x", address, data)
		return &BusAttachError{Kind: MissingBusDevice, Address: address}
	}
	return a.device.Write(address-a.start, data)
}

// read16 reads the little-endian word at address, address+1.
func (b *bus) read16(address uint16) (uint16, error) {
	lo, err := b.read(address)
	if err != nil {
		return 0, err
	}
	hi, err := b.read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// readZeroPage16 is read16 but the high byte address wraps within the
// zero page ($00FF -> $0000), the behaviour the (indirect),Y and
// (indirect,X) addressing modes rely on.
func (b *bus) readZeroPage16(address byte) (uint16, error) {
	lo, err := b.read(uint16(address))
	if err != nil {
		return 0, err
	}
	hi, err := b.read(uint16(byte(address + 1)))
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// ioStub is the catch-all device attached at $4018-$401F for the test
// registers this core does not model: writes are accepted and ignored,
// reads return zero.
type ioStub struct{}

func (ioStub) Read(address uint16) (byte, error) { return 0, nil }
func (ioStub) Write(address uint16, data byte) error { return nil }
