package swapper

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownReflector is returned when a reflector name is not in the catalog.
var ErrUnknownReflector = errors.New("unknown reflector")

// ReflectorTemplate describes a catalog reflector.
type ReflectorTemplate struct {
	Name  string
	Pairs []string
}

// reflectors holds the three reflectors the machine can be fitted with.
var reflectors = []ReflectorTemplate{
	{Name: "A", Pairs: []string{"AE", "BJ", "CM", "DZ", "FL", "GY", "HX", "IV", "KW", "NR", "OQ", "PU", "ST"}},
	{Name: "B", Pairs: []string{"AY", "BR", "CU", "DH", "EQ", "FS", "GL", "IP", "JX", "KN", "MO", "TZ", "VW"}},
	{Name: "C", Pairs: []string{"AF", "BV", "CP", "DJ", "EI", "GO", "HY", "KR", "LZ", "MX", "NW", "QT", "SU"}},
}

// Reflectors returns a copy of the reflector catalog.
func Reflectors() []ReflectorTemplate {
	c := make([]ReflectorTemplate, len(reflectors))
	for i, t := range reflectors {
		c[i] = ReflectorTemplate{Name: t.Name, Pairs: append([]string(nil), t.Pairs...)}
	}
	return c
}

// New builds a fresh swapper wired as the template.
func (t ReflectorTemplate) New() (*Swapper, error) {
	return New(t.Name, t.Pairs...)
}

// Reflector builds a fresh copy of the named catalog reflector.
func Reflector(name string) (*Swapper, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, t := range reflectors {
		if t.Name == name {
			return t.New()
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownReflector, name)
}
