// Package session keeps the typing history of an operator at a cipher
// machine so keystrokes can be taken back.  The machines cannot step
// backwards; a session records the machine state before every keystroke that
// moves it and puts that state back on Undo.
package session

import (
	"github.com/google/uuid"

	"github.com/mk8-bruh/ww2-cryptography/cryptors"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/enigma"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/lorenz"
)

// Enigma is a typing session on an Enigma machine.
type Enigma struct {
	ID      uuid.UUID
	Machine *enigma.Machine

	plaintext  []rune
	ciphertext []rune
	history    []enigmaEntry
}

type enigmaEntry struct {
	stepped bool
	state   enigma.State
}

// NewEnigma starts a session on m.
func NewEnigma(m *enigma.Machine) *Enigma {
	return &Enigma{ID: uuid.New(), Machine: m}
}

// Type presses key r and returns what the lamp board shows.  Letters are
// upper cased; anything else is logged on both sides unchanged.
func (s *Enigma) Type(r rune) rune {
	e := enigmaEntry{stepped: cryptors.IsLetter(r)}
	if e.stepped {
		e.state = s.Machine.Snapshot()
		i, _ := cryptors.Index(r)
		r = cryptors.Letter(i)
	}

	out := s.Machine.Enter(r)
	s.plaintext = append(s.plaintext, r)
	s.ciphertext = append(s.ciphertext, out)
	s.history = append(s.history, e)
	return out
}

// Undo takes back the last keystroke.  It reports false when there is
// nothing to take back.
func (s *Enigma) Undo() (bool, error) {
	if len(s.history) == 0 {
		return false, nil
	}

	e := s.history[len(s.history)-1]
	if e.stepped {
		if err := s.Machine.Restore(e.state); err != nil {
			return false, err
		}
	}

	s.history = s.history[:len(s.history)-1]
	s.plaintext = s.plaintext[:len(s.plaintext)-1]
	s.ciphertext = s.ciphertext[:len(s.ciphertext)-1]
	return true, nil
}

// Reset forgets the history without moving the rotors or dropping the text,
// so nothing typed so far can be taken back.  It is used after the operator
// changes the machine settings, because older snapshots no longer fit.
func (s *Enigma) Reset() {
	s.history = nil
}

func (s *Enigma) Plaintext() string {
	return string(s.plaintext)
}

func (s *Enigma) Ciphertext() string {
	return string(s.ciphertext)
}

// Lorenz is a typing session on a Lorenz machine.  The machine keeps the text
// logs itself; the session only keeps the wheel snapshots.
type Lorenz struct {
	ID      uuid.UUID
	Machine *lorenz.Machine

	history []lorenzEntry
}

type lorenzEntry struct {
	stepped   bool
	positions lorenz.Positions
}

// NewLorenz starts a session on m.
func NewLorenz(m *lorenz.Machine) *Lorenz {
	return &Lorenz{ID: uuid.New(), Machine: m}
}

// Type feeds r to the machine.  The second result is false when the machine
// dropped the character.
func (s *Lorenz) Type(r rune) (rune, bool) {
	e := lorenzEntry{stepped: r != '\n', positions: s.Machine.Snapshot()}
	out, ok := s.Machine.ProcessChar(r)
	if ok {
		s.history = append(s.history, e)
	}
	return out, ok
}

// Undo takes back the last character the machine kept.
func (s *Lorenz) Undo() (bool, error) {
	if len(s.history) == 0 {
		return false, nil
	}

	e := s.history[len(s.history)-1]
	if e.stepped {
		if err := s.Machine.Restore(e.positions); err != nil {
			return false, err
		}
	}

	s.history = s.history[:len(s.history)-1]
	s.Machine.TrimLast()
	return true, nil
}

// Reset forgets the history after the wheels or pins were changed by hand.
func (s *Lorenz) Reset() {
	s.history = nil
}

func (s *Lorenz) Plaintext() string {
	return s.Machine.Plaintext()
}

func (s *Lorenz) Ciphertext() string {
	return s.Machine.Ciphertext()
}
