// rotor
package rotor

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/mk8-bruh/ww2-cryptography/cryptors"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/permutator"
)

// Rotor is one Enigma wheel.  Every rotor parses its own copy of the wiring,
// which is never modified; the position and the double step latch belong to
// this rotor alone.
type Rotor struct {
	name       string
	wiring     *permutator.Permutation
	notches    [cryptors.AlphabetSize]bool
	position   int
	doubleStep bool
}

// New creates a rotor with the given wiring and notch letters at position.
func New(name, wiring, notches string, position int) (*Rotor, error) {
	w, err := permutator.Parse(wiring)
	if err != nil {
		return nil, fmt.Errorf("rotor %s: %w", name, err)
	}

	r := Rotor{name: name, wiring: w}
	for _, n := range notches {
		i, err := cryptors.Index(n)
		if err != nil {
			return nil, fmt.Errorf("rotor %s: notch %q: %w", name, n, err)
		}
		r.notches[i] = true
	}

	if err := r.SetPosition(position); err != nil {
		return nil, fmt.Errorf("rotor %s: %w", name, err)
	}

	return &r, nil
}

func (r *Rotor) Name() string {
	return r.name
}

func (r *Rotor) Position() int {
	return r.position
}

// SetPosition sets the rotor to position p (0 = A).  The wiring, notches and
// latch are left alone.
func (r *Rotor) SetPosition(p int) error {
	if p < 0 || p >= cryptors.AlphabetSize {
		return fmt.Errorf("%w: %d", cryptors.ErrOutOfRange, p)
	}
	r.position = p
	return nil
}

// SetPositionLetter sets the rotor to the position shown by letter l.
func (r *Rotor) SetPositionLetter(l rune) error {
	p, err := cryptors.Index(l)
	if err != nil {
		return fmt.Errorf("rotor %s: position %q: %w", r.name, l, err)
	}
	return r.SetPosition(p)
}

// Notches returns the notch positions in ascending order.
func (r *Rotor) Notches() []int {
	var n []int
	for i, ok := range r.notches {
		if ok {
			n = append(n, i)
		}
	}
	sort.Ints(n)
	return n
}

// AtNotch reports whether the rotor currently sits on one of its notches.
func (r *Rotor) AtNotch() bool {
	return r.notches[r.position]
}

// NextNotch returns the closest notch strictly ahead of the current position,
// or the current position when the rotor has no other notch.
func (r *Rotor) NextNotch() int {
	for d := 1; d < cryptors.AlphabetSize; d++ {
		p := (r.position + d) % cryptors.AlphabetSize
		if r.notches[p] {
			return p
		}
	}
	return r.position
}

// Latched reports whether the double step latch is set.
func (r *Rotor) Latched() bool {
	return r.doubleStep
}

// SetLatched is used to restore a snapshot of the rotor.
func (r *Rotor) SetLatched(l bool) {
	r.doubleStep = l
}

func (r *Rotor) advance() {
	r.position = (r.position + 1) % cryptors.AlphabetSize
}

// Transform passes a signal through the rotor from the entry side.
func (r *Rotor) Transform(x int) int {
	return cryptors.Mod(r.wiring.Forward(x-r.position) + r.position)
}

// Inverse passes a signal back through the rotor from the reflector side.
func (r *Rotor) Inverse(x int) int {
	return cryptors.Mod(r.wiring.Inverse(x-r.position) + r.position)
}

func (r *Rotor) String() string {
	var output bytes.Buffer
	output.WriteString(fmt.Sprintf("%s: %c", r.name, cryptors.Letter(r.position)))
	if r.AtNotch() {
		output.WriteString("<")
	}
	return output.String()
}

// Chain is an ordered sequence of rotors, index 0 being the fastest.  Each
// rotor's successor is the next element of the chain.
type Chain []*Rotor

// Step advances the first rotor of the chain, carrying into the rest of the
// chain as the notches and double step latches require.
func (c Chain) Step() {
	if len(c) == 0 {
		return
	}

	r := c[0]
	if len(c) > 1 {
		s := c[1]
		if s.doubleStep && r.doubleStep {
			c[1:].Step()
			s.doubleStep = false
		}
		if r.AtNotch() {
			c[1:].Step()
			r.doubleStep = true
		}
	}

	r.advance()
}
