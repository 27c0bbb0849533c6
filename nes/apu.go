package nes

import "math"

type APU struct {
	pulse1 pulse
	pulse2 pulse
	out    chan float32
	sample int
}

func NewAPU() *APU {
	return &APU{}
}

func (a *APU) Step() {
	sampleRate := 44100
	x := float32(math.Sin(2.0 * math.Pi * 440 * float64(a.sample) / float64(sampleRate)))
	select {
	case a.out <- x: // l
	default:
	}
	select {
	case a.out <- x: // r
	default:
	}
	a.sample++
	if a.sample >= sampleRate*10 {
		a.sample = 0
	}
}

func (a *APU) SetAudioOut(c chan float32) {
	a.out = c
}

func (a *APU) writeControl(data byte) {
}

// apuWindow adapts one of the APU's CPU-bus windows ($4000-$4013, $4015,
// $4017) to the device contract: the bus hands a device range-local
// addresses, so the window re-adds its base before delegating, letting
// the APU keep dispatching on the documented register numbers.
type apuWindow struct {
	apu  *APU
	base uint16
}

func (w apuWindow) Read(address uint16) (byte, error) {
	return w.apu.Read(w.base + address)
}

func (w apuWindow) Write(address uint16, data byte) error {
	return w.apu.Write(w.base+address, data)
}

// Read handles the APU's register windows. Real hardware only exposes
// $4015 (status) for reads; this core's stub APU has no state worth
// reporting back, so every read is open bus.
func (a *APU) Read(address uint16) (byte, error) {
	return 0, nil
}

// Write handles the APU's register windows: $4000-$4013, $4015, and
// $4017 (DMA's $4014 and the controller's $4016 are separate devices).
// address is the full CPU-bus register number, restored by apuWindow.
func (a *APU) Write(address uint16, data byte) error {
	switch address {
	case 0x4000:
		a.pulse1.writeControl(data)
	case 0x4001:
		a.pulse1.writeSweep(data)
	case 0x4002:
		a.pulse1.writeTimerLow(data)
	case 0x4003:
		a.pulse1.writeTimerHigh(data)
	case 0x4004:
		a.pulse2.writeControl(data)
	case 0x4005:
		a.pulse2.writeSweep(data)
	case 0x4006:
		a.pulse2.writeTimerLow(data)
	case 0x4007:
		a.pulse2.writeTimerHigh(data)
	case 0x4015:
		a.writeControl(data)
	}
	return nil
}

// Pulse
type pulse struct {
}

func (p *pulse) writeControl(data byte) {
}

func (p *pulse) writeSweep(data byte) {
}

func (p *pulse) writeTimerLow(data byte) {
}

func (p *pulse) writeTimerHigh(data byte) {
}
