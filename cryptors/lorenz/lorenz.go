// Package lorenz implements a Lorenz SZ style teleprinter cipher: five chi
// wheels, five psi wheels and two motor wheels whose pins are added to the
// Baudot code of each character.
//
// A Machine is not safe for concurrent use.
package lorenz

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mk8-bruh/ww2-cryptography/cryptors/baudot"
)

var (
	// ChiSizes, PsiSizes and MotorSizes are the pin counts of the wheels.
	ChiSizes   = [baudot.Bits]int{41, 31, 29, 26, 23}
	PsiSizes   = [baudot.Bits]int{43, 47, 51, 53, 59}
	MotorSizes = [2]int{37, 61}
)

// Machine is a Lorenz cipher machine with its running plaintext and
// ciphertext.
type Machine struct {
	chi   [baudot.Bits]*Wheel
	psi   [baudot.Bits]*Wheel
	motor [2]*Wheel

	plaintext  []rune
	ciphertext []rune
}

// New creates a machine with every pin at 0 and every wheel at position 0.
func New() *Machine {
	var m Machine
	for i, s := range ChiSizes {
		m.chi[i] = NewWheel(fmt.Sprintf("χ%d", s), s)
	}
	for i, s := range PsiSizes {
		m.psi[i] = NewWheel(fmt.Sprintf("ψ%d", s), s)
	}
	for i, s := range MotorSizes {
		m.motor[i] = NewWheel(fmt.Sprintf("M%d", s), s)
	}
	return &m
}

// Chi returns the live chi wheels.
func (m *Machine) Chi() []*Wheel {
	return m.chi[:]
}

// Psi returns the live psi wheels.
func (m *Machine) Psi() []*Wheel {
	return m.psi[:]
}

// Motor returns the live motor wheels.  Wheel 0 is the fast motor (37 pins),
// wheel 1 the slow one (61 pins).
func (m *Machine) Motor() []*Wheel {
	return m.motor[:]
}

// Wheels returns every wheel: chi, then psi, then motor.
func (m *Machine) Wheels() []*Wheel {
	w := make([]*Wheel, 0, len(m.chi)+len(m.psi)+len(m.motor))
	w = append(w, m.chi[:]...)
	w = append(w, m.psi[:]...)
	return append(w, m.motor[:]...)
}

// StepWheels moves the wheels on after a character.  The chi wheels always
// step.  The psi wheels step when the pin under motor wheel 0 is 1.  The last
// motor wheel always steps and each other motor wheel steps when the pin
// under the motor wheel after it is 1.  All pins are read before any motor
// wheel moves.
func (m *Machine) StepWheels() {
	var gate [len(MotorSizes)]uint8
	for i, w := range m.motor {
		gate[i] = w.CurrentPin()
	}

	for _, w := range m.chi {
		w.Step()
	}

	if gate[0] == 1 {
		for _, w := range m.psi {
			w.Step()
		}
	}

	for i, w := range m.motor {
		if i+1 >= len(m.motor) || gate[i+1] == 1 {
			w.Step()
		}
	}
}

// EncryptChar enciphers c with the wheels where they stand.  The psi pins are
// inverted before they are added.  c must be an upper case Baudot symbol;
// anything else is returned unchanged.
func (m *Machine) EncryptChar(c rune) rune {
	code, ok := baudot.Encode(c)
	if !ok {
		return c
	}

	var out baudot.Code
	for k := 0; k < baudot.Bits; k++ {
		chi := m.chi[k].CurrentPin()
		psi := m.psi[k].CurrentPin() ^ 1
		out = out.SetBit(k, code.Bit(k)^chi^psi)
	}

	return baudot.Decode(out)
}

// ProcessChar feeds one character to the machine.  A newline is logged on
// both sides as it is.  A Baudot symbol (letters in either case) is
// enciphered, logged and the wheels step.  Anything else is dropped.  The
// returned flag reports whether the character was kept.
func (m *Machine) ProcessChar(c rune) (rune, bool) {
	if c == '\n' {
		m.plaintext = append(m.plaintext, c)
		m.ciphertext = append(m.ciphertext, c)
		return c, true
	}

	c = unicode.ToUpper(c)
	if _, ok := baudot.Encode(c); !ok {
		return 0, false
	}

	out := m.EncryptChar(c)
	m.plaintext = append(m.plaintext, c)
	m.ciphertext = append(m.ciphertext, out)
	m.StepWheels()
	return out, true
}

// Apply implements cryptors.Crypter.
func (m *Machine) Apply(c rune) (rune, bool) {
	return m.ProcessChar(c)
}

func (m *Machine) Plaintext() string {
	return string(m.plaintext)
}

func (m *Machine) Ciphertext() string {
	return string(m.ciphertext)
}

// TrimLast removes the last character from both logs.  It does not move any
// wheel.
func (m *Machine) TrimLast() {
	if len(m.plaintext) > 0 {
		m.plaintext = m.plaintext[:len(m.plaintext)-1]
		m.ciphertext = m.ciphertext[:len(m.ciphertext)-1]
	}
}

// Positions is a snapshot of every wheel position.
type Positions struct {
	Chi   [baudot.Bits]int
	Psi   [baudot.Bits]int
	Motor [2]int
}

// Snapshot records the wheel positions.
func (m *Machine) Snapshot() Positions {
	var p Positions
	for i, w := range m.chi {
		p.Chi[i] = w.Position()
	}
	for i, w := range m.psi {
		p.Psi[i] = w.Position()
	}
	for i, w := range m.motor {
		p.Motor[i] = w.Position()
	}
	return p
}

// Restore turns every wheel to the snapshot.  Nothing moves unless every
// position fits its wheel.
func (m *Machine) Restore(p Positions) error {
	wheels := m.Wheels()
	positions := p.list()
	for i, w := range wheels {
		if positions[i] < 0 || positions[i] >= w.Size() {
			return w.SetPosition(positions[i])
		}
	}
	for i, w := range wheels {
		_ = w.SetPosition(positions[i])
	}
	return nil
}

func (p Positions) list() []int {
	l := make([]int, 0, len(p.Chi)+len(p.Psi)+len(p.Motor))
	l = append(l, p.Chi[:]...)
	l = append(l, p.Psi[:]...)
	return append(l, p.Motor[:]...)
}

func joinInts(v []int) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, ",")
}

// String formats the positions as "chi;psi;motor", for example
// "0,0,0,0,0;0,0,0,0,0;0,0".
func (p Positions) String() string {
	return joinInts(p.Chi[:]) + ";" + joinInts(p.Psi[:]) + ";" + joinInts(p.Motor[:])
}

// ParsePositions reads positions written by Positions.String.  It only checks
// the shape; Restore checks the ranges.
func ParsePositions(s string) (Positions, error) {
	var p Positions
	groups := strings.Split(strings.TrimSpace(s), ";")
	if len(groups) != 3 {
		return p, fmt.Errorf("positions %q: want chi;psi;motor", s)
	}

	targets := [][]int{p.Chi[:], p.Psi[:], p.Motor[:]}
	for g, group := range groups {
		fields := strings.Split(group, ",")
		if len(fields) != len(targets[g]) {
			return p, fmt.Errorf("positions %q: group %d has %d values, want %d", s, g+1, len(fields), len(targets[g]))
		}
		for i, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return p, fmt.Errorf("positions %q: %w", s, err)
			}
			targets[g][i] = n
		}
	}

	return p, nil
}
