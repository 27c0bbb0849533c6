package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScenarioCPU builds a CPU over a flat 64 KiB RAM (no mirroring, no
// PPU/mapper devices), loads program at loadAddr, and leaves the CPU
// sitting at an instruction boundary with PC==loadAddr — independent of
// the RESET sequence, the way newTestCPU (cpu_test.go) already does for
// the nestest harness.
func newScenarioCPU(t *testing.T, program []byte, loadAddr uint16) *CPU {
	t.Helper()
	b := newBus()
	require.NoError(t, b.attach(newRAM(0x10000), 0x0000, 0xFFFF))
	for i, v := range program {
		require.NoError(t, b.write(loadAddr+uint16(i), v))
	}
	cpu := NewCPU(b)
	cpu.resetPending = false
	cpu.nmiPending = false
	cpu.irqPending = false
	cpu.cyclesRemaining = 0
	cpu.pc = loadAddr
	cpu.s = 0xFD
	cpu.p.decodeFrom(0x24)
	return cpu
}

// LDA immediate sets Z, clears N, and costs two cycles.
func TestScenarioLDAImmediateFlagUpdate(t *testing.T) {
	cpu := newScenarioCPU(t, []byte{0xA9, 0x00}, 0x8000)
	cycles, err := stepInstruction(cpu)
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), cpu.a)
	assert.True(t, cpu.p.Z)
	assert.False(t, cpu.p.N)
	assert.Equal(t, 2, cycles)
}

// Multiply by 10 via shifts and an add.
// ASL A; STA $FF; ASL A; ASL A; CLC; ADC $FF, starting from A=4.
func TestScenarioMultiplyByTen(t *testing.T) {
	cpu := newScenarioCPU(t, []byte{0x0A, 0x85, 0xFF, 0x0A, 0x0A, 0x18, 0x65, 0xFF}, 0x8000)
	cpu.a = 4
	for i := 0; i < 6; i++ {
		_, err := stepInstruction(cpu)
		require.NoError(t, err)
	}
	assert.Equal(t, byte(40), cpu.a)
	assert.False(t, cpu.p.C)
}

// Zero-page,X indexing wraps within the zero
// page rather than carrying into page 1.
func TestScenarioZeroPageIndexedWraps(t *testing.T) {
	cpu := newScenarioCPU(t, []byte{0xB5, 0x10}, 0x8000) // LDA $10,X
	cpu.x = 0xFF
	require.NoError(t, cpu.bus.write(0x000F, 0x77))
	require.NoError(t, cpu.bus.write(0x010F, 0x99))
	_, err := stepInstruction(cpu)
	require.NoError(t, err)
	assert.Equal(t, byte(0x77), cpu.a, "LDA $10,X with X=$FF must read $000F, not $010F")
}

// JMP (indirect) page-wrap bug. When the
// pointer's low byte is $FF, the high byte is re-read from the same
// page instead of carrying into the next one.
func TestScenarioJMPIndirectPageWrapBug(t *testing.T) {
	cpu := newScenarioCPU(t, []byte{0x6C, 0xFF, 0x02}, 0x8000) // JMP ($02FF)
	require.NoError(t, cpu.bus.write(0x02FF, 0x34))            // target low byte
	require.NoError(t, cpu.bus.write(0x0200, 0x12))            // wrapped (buggy) high byte
	require.NoError(t, cpu.bus.write(0x0300, 0x99))            // correct-but-unused high byte
	_, err := stepInstruction(cpu)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), cpu.pc, "indirect JMP must take its high byte from $0200, not $0300")
}

// NMI latency. Exactly 7 CPU cycles after an
// NMI is accepted, PC equals the NMI vector and S has decreased by 3.
func TestScenarioNMILatency(t *testing.T) {
	cpu := newScenarioCPU(t, []byte{0x4C, 0x00, 0x80}, 0x8000) // JMP $8000 (infinite loop)
	require.NoError(t, cpu.bus.write(0xFFFA, 0x34))
	require.NoError(t, cpu.bus.write(0xFFFB, 0x92))
	startS := cpu.s
	cpu.RequestNMI()
	for i := 0; i < 7; i++ {
		require.NoError(t, cpu.Tick())
	}
	assert.Equal(t, uint16(0x9234), cpu.pc)
	assert.Equal(t, byte(startS-3), cpu.s)
}

// Push-pull round trip.
func TestPushPullRoundTrip(t *testing.T) {
	cpu := newScenarioCPU(t, nil, 0x8000)
	startS := cpu.s
	require.NoError(t, cpu.push(0xAB))
	assert.Equal(t, byte(startS-1), cpu.s)
	got, err := cpu.pop()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), got)
	assert.Equal(t, startS, cpu.s)
}

// PLP after PHP leaves SR equal up to the B and unused bits.
func TestPHPThenPLPRoundTrip(t *testing.T) {
	cpu := newScenarioCPU(t, nil, 0x8000)
	cpu.p.decodeFrom(0x00)
	cpu.p.N = true
	cpu.p.C = true
	before := cpu.p.encode()
	require.NoError(t, cpu.pushStatus(false))
	require.NoError(t, cpu.popStatus())
	assert.Equal(t, before, cpu.p.encode(), "PLP leaves B and the unused bit as they were before the pull")
}

// ADC followed by SBC of the same operand with carry set leaves A
// unchanged.
func TestADCThenSBCSameOperandIsIdentity(t *testing.T) {
	cpu := newScenarioCPU(t, nil, 0x8000)
	cpu.a = 0x42
	cpu.p.C = true
	cpu.addWithCarry(0x17)
	cpu.addWithCarry(^byte(0x17))
	assert.Equal(t, byte(0x42), cpu.a)
}
