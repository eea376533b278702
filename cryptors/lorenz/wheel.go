package lorenz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mk8-bruh/ww2-cryptography/cryptors"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/bitops"
)

// ErrBadPins is returned for a pin pattern that does not fit a wheel.
var ErrBadPins = errors.New("bad pin pattern")

// Wheel is a pin wheel: a ring of size pins, each either 0 or 1, read at the
// current position.
type Wheel struct {
	name     string
	size     int
	position int
	pins     []byte
}

// NewWheel creates a wheel of size pins, all 0, at position 0.
func NewWheel(name string, size int) *Wheel {
	return &Wheel{
		name: name,
		size: size,
		pins: make([]byte, bitops.Bytes(size)),
	}
}

func (w *Wheel) Name() string {
	return w.name
}

// Size returns the number of pins on the wheel.  It never changes.
func (w *Wheel) Size() int {
	return w.size
}

func (w *Wheel) Position() int {
	return w.position
}

// SetPosition turns the wheel to position p.
func (w *Wheel) SetPosition(p int) error {
	if p < 0 || p >= w.size {
		return fmt.Errorf("wheel %s: %w: %d not in 0..%d", w.name, cryptors.ErrOutOfRange, p, w.size-1)
	}
	w.position = p
	return nil
}

// Step turns the wheel on by one pin.
func (w *Wheel) Step() {
	w.position = (w.position + 1) % w.size
}

// CurrentPin returns the pin at the current position.
func (w *Wheel) CurrentPin() uint8 {
	return bitops.Bit(w.pins, uint(w.position))
}

// SetPin sets the pin at the current position to v, which must be 0 or 1.
func (w *Wheel) SetPin(v uint8) error {
	if v > 1 {
		return fmt.Errorf("wheel %s: %w: pin value %d", w.name, ErrBadPins, v)
	}
	bitops.PutBit(w.pins, uint(w.position), v)
	return nil
}

// TogglePin flips the pin at the current position.
func (w *Wheel) TogglePin() {
	bitops.PutBit(w.pins, uint(w.position), w.CurrentPin()^1)
}

// Pin returns the pin at position p, which is reduced modulo the wheel size.
func (w *Wheel) Pin(p int) uint8 {
	p %= w.size
	if p < 0 {
		p += w.size
	}
	return bitops.Bit(w.pins, uint(p))
}

// Pins returns the whole pin pattern as a string of 0s and 1s, starting at
// pin 0.
func (w *Wheel) Pins() string {
	var b strings.Builder
	for i := 0; i < w.size; i++ {
		b.WriteByte('0' + bitops.Bit(w.pins, uint(i)))
	}
	return b.String()
}

// SetPins replaces the pin pattern.  The pattern must be exactly Size()
// characters of '0' and '1'; on error the wheel is not changed.
func (w *Wheel) SetPins(pattern string) error {
	if len(pattern) != w.size {
		return fmt.Errorf("wheel %s: %w: %d pins for a wheel of %d", w.name, ErrBadPins, len(pattern), w.size)
	}
	pins := make([]byte, bitops.Bytes(w.size))
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '0':
		case '1':
			bitops.SetBit(pins, uint(i))
		default:
			return fmt.Errorf("wheel %s: %w: %q at pin %d", w.name, ErrBadPins, pattern[i], i)
		}
	}
	w.pins = pins
	return nil
}

func (w *Wheel) String() string {
	return fmt.Sprintf("%s@%02d", w.name, w.position)
}
