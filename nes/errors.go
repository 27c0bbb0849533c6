package nes

import "fmt"

// ErrNoCartridgeInserted is returned when the clock is driven before a
// cartridge has been attached to the buses.
var ErrNoCartridgeInserted = fmt.Errorf("nes: no cartridge inserted")

// MemoryAccessError reports an out-of-range access on a device-local
// address, after the bus has already translated the global address into
// the device's own frame. Seeing one of these means either a core bug or
// a malformed ROM (e.g. a CHR bank smaller than the PPU addresses it at).
type MemoryAccessError struct {
	Address    uint16
	MemorySize int
}

func (e *MemoryAccessError) Error() string {
	return fmt.Sprintf("nes: memory access out of range: address=0x%04x, size=%d", e.Address, e.MemorySize)
}

// BusAttachError reports a problem attaching or addressing a device on a
// bus: either two devices claiming an overlapping range (AlreadyAttached)
// or an access to an address no device owns (MissingBusDevice).
type BusAttachError struct {
	Kind    BusAttachErrorKind
	Address uint16
}

type BusAttachErrorKind int

const (
	AlreadyAttached BusAttachErrorKind = iota
	MissingBusDevice
)

func (e *BusAttachError) Error() string {
	switch e.Kind {
	case AlreadyAttached:
		return fmt.Sprintf("nes: bus range overlaps an already attached device at 0x%04x", e.Address)
	default:
		return fmt.Sprintf("nes: no bus device owns address 0x%04x", e.Address)
	}
}

// InvalidInstructionError reports an opcode outside the 151 legal 6502
// opcodes this core implements. Undocumented opcodes are not emulated;
// encountering one halts the core.
type InvalidInstructionError struct {
	Opcode byte
	PC     uint16
}

func (e *InvalidInstructionError) Error() string {
	return fmt.Sprintf("nes: invalid instruction: opcode=0x%02x, pc=0x%04x", e.Opcode, e.PC)
}

// InternalError is a catch-all for conditions that should be impossible
// given the invariants the rest of the package maintains.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "nes: internal error: " + e.Msg
}
