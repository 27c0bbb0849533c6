package nes

// button indexes one of the joypad's eight physical buttons, in the
// order the hardware reports them: A first, Right last.
type button int

const (
	ButtonA button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller is the standard joypad behind CPU address $4016. Writing
// bit 0 high latches the eight buttons into an internal shift register
// (A in bit 7, Right in bit 0); once bit 0 goes low again, each read
// returns the register's top bit and shifts the rest left one place.
// https://www.nesdev.org/wiki/Controller_reading
type Controller struct {
	buttons [8]bool
	strobe  bool
	shift   byte
}

func NewController() *Controller {
	return &Controller{}
}

// Set replaces the current physical button state. The presentation
// layer calls this once per frame; the program only observes it when it
// next strobes the latch.
func (c *Controller) Set(buttons [8]bool) {
	c.buttons = buttons
}

// latch captures the buttons into the shift register, MSB first: A, B,
// Select, Start, Up, Down, Left, Right.
func (c *Controller) latch() {
	var v uint16
	for i, pressed := range c.buttons {
		v = setBit(v, uint(7-i), pressed)
	}
	c.shift = byte(v)
}

// read pops the next button bit. While the strobe is held high the
// register reloads before every read, so the program sees button A over
// and over; reads past the eighth shift in zeros.
func (c *Controller) read() byte {
	if c.strobe {
		c.latch()
	}
	var ret byte
	if bit(uint16(c.shift), 7) {
		ret = 1
	}
	c.shift <<= 1
	return ret
}

// write drives the strobe line from bit 0 of data. The register latches
// while the strobe is high; dropping it freezes the snapshot for the
// read sequence that follows.
func (c *Controller) write(data byte) {
	c.strobe = bit(uint16(data), 0)
	if c.strobe {
		c.latch()
	}
}

// Read implements device for the $4016 controller port.
func (c *Controller) Read(address uint16) (byte, error) {
	return c.read(), nil
}

// Write implements device for the $4016 controller port.
func (c *Controller) Write(address uint16, data byte) error {
	c.write(data)
	return nil
}
