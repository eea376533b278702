// Package swapper implements the letter pair exchange used for both the
// plugboard and the reflector of an Enigma machine.
package swapper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mk8-bruh/ww2-cryptography/cryptors"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/permutator"
)

var (
	// ErrBadPair is returned for a pair that is not two distinct letters.
	ErrBadPair = errors.New("pair must be two distinct letters")
	// ErrDuplicateLetter is returned when a swapper is built from pairs that
	// share a letter.
	ErrDuplicateLetter = errors.New("letter used in more than one pair")
)

const unpaired = -1

// Swapper is a set of disjoint letter pairs.  Each letter of a pair is
// exchanged for the other; letters that are not paired pass unchanged.
type Swapper struct {
	name   string
	wiring [cryptors.AlphabetSize]int
	pairs  []string
}

// New creates a swapper from the given pairs.  Unlike AddPair, a letter that
// appears in two pairs is an error here.
func New(name string, pairs ...string) (*Swapper, error) {
	s := Empty(name)
	for _, p := range pairs {
		a, b, err := parsePair(p)
		if err != nil {
			return nil, err
		}
		if s.wiring[a] != unpaired || s.wiring[b] != unpaired {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLetter, p)
		}
		s.add(a, b)
	}
	return s, nil
}

// Empty creates a swapper with no pairs.
func Empty(name string) *Swapper {
	s := Swapper{name: name}
	for i := range s.wiring {
		s.wiring[i] = unpaired
	}
	return &s
}

func parsePair(pair string) (int, int, error) {
	rs := []rune(strings.TrimSpace(pair))
	if len(rs) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadPair, pair)
	}
	a, err := cryptors.Index(rs[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadPair, pair)
	}
	b, err := cryptors.Index(rs[1])
	if err != nil || a == b {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadPair, pair)
	}
	return a, b, nil
}

func pairName(a, b int) string {
	return string([]rune{cryptors.Letter(a), cryptors.Letter(b)})
}

func (s *Swapper) add(a, b int) {
	s.wiring[a], s.wiring[b] = b, a
	s.pairs = append(s.pairs, pairName(a, b))
}

func (s *Swapper) Name() string {
	return s.name
}

// AddPair connects the two letters of pair.  If either letter is already
// connected the call is ignored and the existing pair is kept.
func (s *Swapper) AddPair(pair string) error {
	a, b, err := parsePair(pair)
	if err != nil {
		return err
	}
	if s.wiring[a] != unpaired || s.wiring[b] != unpaired {
		return nil
	}
	s.add(a, b)
	return nil
}

// RemovePair disconnects pair.  The order of the letters does not matter.
// Removing a pair that is not connected does nothing.
func (s *Swapper) RemovePair(pair string) {
	a, b, err := parsePair(pair)
	if err != nil || s.wiring[a] != b {
		return
	}

	s.wiring[a], s.wiring[b] = unpaired, unpaired
	for i, p := range s.pairs {
		if p == pairName(a, b) || p == pairName(b, a) {
			s.pairs = append(s.pairs[:i], s.pairs[i+1:]...)
			break
		}
	}
}

// Transform returns the letter index paired with x, or x itself.
func (s *Swapper) Transform(x int) int {
	x = cryptors.Mod(x)
	if y := s.wiring[x]; y != unpaired {
		return y
	}
	return x
}

// Paired reports whether the letter l is part of a pair.
func (s *Swapper) Paired(l rune) bool {
	i, err := cryptors.Index(l)
	return err == nil && s.wiring[i] != unpaired
}

// Pairs returns the connected pairs in the order they were added.
func (s *Swapper) Pairs() []string {
	p := make([]string, len(s.pairs))
	copy(p, s.pairs)
	return p
}

func (s *Swapper) Len() int {
	return len(s.pairs)
}

// Permutation returns the current pairing as a full permutation of the
// alphabet, unpaired letters mapping to themselves.
func (s *Swapper) Permutation() *permutator.Permutation {
	w := make([]int, cryptors.AlphabetSize)
	for i := range w {
		w[i] = s.Transform(i)
	}
	p, _ := permutator.New(w)
	return p
}

func (s *Swapper) String() string {
	return strings.Join(s.pairs, " ")
}
