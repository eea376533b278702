// Package enigma composes rotors, a reflector and a plugboard into an Enigma
// cipher machine.
//
// A Machine is not safe for concurrent use.  Stepping cannot be run
// backwards, so callers that want to undo a keystroke take a Snapshot before
// it and Restore afterwards.
package enigma

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mk8-bruh/ww2-cryptography/cryptors"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/rotor"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/swapper"
)

// ErrRotorIndex is returned when a rotor slot does not exist.
var ErrRotorIndex = errors.New("no such rotor slot")

// Machine is an Enigma cipher machine.  Rotor 0 is the fastest rotor, the one
// nearest the keyboard.
type Machine struct {
	rotors    rotor.Chain
	reflector *swapper.Swapper
	plugboard *swapper.Swapper
}

// New assembles a machine from already built parts.  An empty rotor list is
// allowed; such a machine only passes letters through the plugboard and the
// reflector.  A nil plugboard is replaced by an empty one.
func New(rotors []*rotor.Rotor, reflector, plugboard *swapper.Swapper) *Machine {
	if plugboard == nil {
		plugboard = swapper.Empty("plugboard")
	}
	if reflector == nil {
		reflector = swapper.Empty("none")
	}
	return &Machine{
		rotors:    append(rotor.Chain(nil), rotors...),
		reflector: reflector,
		plugboard: plugboard,
	}
}

// Settings is the operator's key for a machine.
type Settings struct {
	Rotors    []string // catalog rotor names, fastest first
	Positions string   // one start letter per rotor; empty means all A
	Reflector string   // catalog reflector name
	Plugboard []string // letter pairs
}

// DefaultSettings returns the configuration the machine starts in when
// nothing else is given.
func DefaultSettings() Settings {
	return Settings{
		Rotors:    []string{"I", "II", "III"},
		Positions: "AAA",
		Reflector: "B",
	}
}

// NewFromSettings builds a machine from catalog parts.
func NewFromSettings(s Settings) (*Machine, error) {
	positions := []rune(strings.TrimSpace(s.Positions))
	if len(positions) != 0 && len(positions) != len(s.Rotors) {
		return nil, fmt.Errorf("%d start positions given for %d rotors", len(positions), len(s.Rotors))
	}

	rotors := make([]*rotor.Rotor, 0, len(s.Rotors))
	for i, id := range s.Rotors {
		t, err := rotor.Lookup(id)
		if err != nil {
			return nil, err
		}
		r, err := t.New(0)
		if err != nil {
			return nil, err
		}
		if len(positions) != 0 {
			if err := r.SetPositionLetter(positions[i]); err != nil {
				return nil, err
			}
		}
		rotors = append(rotors, r)
	}

	reflector, err := swapper.Reflector(s.Reflector)
	if err != nil {
		return nil, err
	}

	plugboard, err := swapper.New("plugboard", s.Plugboard...)
	if err != nil {
		return nil, fmt.Errorf("plugboard: %w", err)
	}

	return New(rotors, reflector, plugboard), nil
}

// Rotors returns the rotors, fastest first.  The rotors themselves are live;
// changing their position changes the machine.
func (m *Machine) Rotors() []*rotor.Rotor {
	return append([]*rotor.Rotor(nil), m.rotors...)
}

// SetRotor replaces the rotor in slot i with a fresh rotor built from t,
// standing at position A.
func (m *Machine) SetRotor(i int, t rotor.Template) error {
	if i < 0 || i >= len(m.rotors) {
		return fmt.Errorf("%w: %d", ErrRotorIndex, i)
	}
	r, err := t.New(0)
	if err != nil {
		return err
	}
	m.rotors[i] = r
	return nil
}

func (m *Machine) Reflector() *swapper.Swapper {
	return m.reflector
}

// SetReflector fits a different reflector.  A nil reflector is replaced by
// an empty one, as in New.
func (m *Machine) SetReflector(r *swapper.Swapper) {
	if r == nil {
		r = swapper.Empty("none")
	}
	m.reflector = r
}

// Plugboard returns the live plugboard; pairs can be added and removed at any
// time.
func (m *Machine) Plugboard() *swapper.Swapper {
	return m.plugboard
}

// Indicator returns the rotor positions as letters, fastest rotor first.
func (m *Machine) Indicator() string {
	var b strings.Builder
	for _, r := range m.rotors {
		b.WriteRune(cryptors.Letter(r.Position()))
	}
	return b.String()
}

// SetIndicator sets every rotor position from a string of letters, fastest
// rotor first.  Nothing is changed if the indicator is invalid.
func (m *Machine) SetIndicator(ind string) error {
	letters := []rune(ind)
	if len(letters) != len(m.rotors) {
		return fmt.Errorf("indicator %q does not match %d rotors", ind, len(m.rotors))
	}
	positions := make([]int, len(letters))
	for i, l := range letters {
		p, err := cryptors.Index(l)
		if err != nil {
			return fmt.Errorf("indicator %q: %w", ind, err)
		}
		positions[i] = p
	}
	for i, p := range positions {
		// p is already in range
		_ = m.rotors[i].SetPosition(p)
	}
	return nil
}

// transform enciphers a letter index without stepping the rotors.
func (m *Machine) transform(x int) int {
	x = m.plugboard.Transform(x)
	for _, r := range m.rotors {
		x = r.Transform(x)
	}
	x = m.reflector.Transform(x)
	for i := len(m.rotors) - 1; i >= 0; i-- {
		x = m.rotors[i].Inverse(x)
	}
	return m.plugboard.Transform(x)
}

// Transform enciphers c with the rotors where they stand.  Characters that
// are not letters are returned unchanged.
func (m *Machine) Transform(c rune) rune {
	x, err := cryptors.Index(c)
	if err != nil {
		return c
	}
	return cryptors.Letter(m.transform(x))
}

// Enter presses key c: the rotors step, then c is enciphered.  Characters
// that are not letters pass through without stepping.
func (m *Machine) Enter(c rune) rune {
	if !cryptors.IsLetter(c) {
		return c
	}
	m.rotors.Step()
	return m.Transform(c)
}

// Apply implements cryptors.Crypter.
func (m *Machine) Apply(c rune) (rune, bool) {
	return m.Enter(c), true
}

// Encode enters every character of txt in turn.
func (m *Machine) Encode(txt string) string {
	var b strings.Builder
	for _, c := range txt {
		b.WriteRune(m.Enter(c))
	}
	return b.String()
}

// State is a snapshot of the moving parts of a machine.
type State struct {
	Positions []int
	Latches   []bool
}

// Snapshot records the rotor positions and double step latches.
func (m *Machine) Snapshot() State {
	s := State{
		Positions: make([]int, len(m.rotors)),
		Latches:   make([]bool, len(m.rotors)),
	}
	for i, r := range m.rotors {
		s.Positions[i] = r.Position()
		s.Latches[i] = r.Latched()
	}
	return s
}

// Restore puts the rotors back to a snapshot taken with the same rotor
// count.
func (m *Machine) Restore(s State) error {
	if len(s.Positions) != len(m.rotors) || len(s.Latches) != len(m.rotors) {
		return fmt.Errorf("snapshot of %d rotors does not fit %d rotors", len(s.Positions), len(m.rotors))
	}
	for _, p := range s.Positions {
		if p < 0 || p >= cryptors.AlphabetSize {
			return fmt.Errorf("%w: %d", cryptors.ErrOutOfRange, p)
		}
	}
	for i, r := range m.rotors {
		_ = r.SetPosition(s.Positions[i])
		r.SetLatched(s.Latches[i])
	}
	return nil
}
