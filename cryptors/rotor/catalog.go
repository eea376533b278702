package rotor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRotor is returned when a rotor name is not in the catalog.
var ErrUnknownRotor = errors.New("unknown rotor")

// Template describes a catalog rotor.  Templates are never modified; New
// builds an independent rotor from one.
type Template struct {
	Name    string
	Wiring  string
	Notches string
}

// New creates a fresh rotor from the template at position p.
func (t Template) New(p int) (*Rotor, error) {
	return New(t.Name, t.Wiring, t.Notches, p)
}

// catalog holds the eight rotors the machine can be fitted with, in order.
var catalog = []Template{
	{Name: "I", Wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ", Notches: "R"},
	{Name: "II", Wiring: "AJDKSIRUXBLHWTMCQGZNPYFVOE", Notches: "F"},
	{Name: "III", Wiring: "BDFHJLCPRTXVZNYEIWGAKMUSQO", Notches: "W"},
	{Name: "IV", Wiring: "ESOVPZJAYQUIRHXLNFTGKDCMWB", Notches: "K"},
	{Name: "V", Wiring: "VZBRGITYUPSDNHLXAWMJQOFECK", Notches: "A"},
	{Name: "VI", Wiring: "JPGVOUMFYQBENHZRDKASXLICTW", Notches: "AN"},
	{Name: "VII", Wiring: "NZJHGRCXMYSWBOUFAIVLPEKQDT", Notches: "AN"},
	{Name: "VIII", Wiring: "FKQHTLXOCBJSPDZRAMEWNIUYGV", Notches: "AN"},
}

// Catalog returns a copy of the rotor catalog, in order.
func Catalog() []Template {
	return append([]Template(nil), catalog...)
}

// Lookup finds a catalog rotor by its roman numeral ("IV") or by its number
// in the catalog ("4").
func Lookup(id string) (Template, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	for i, t := range catalog {
		if t.Name == id || fmt.Sprint(i+1) == id {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %q", ErrUnknownRotor, id)
}
