// permutator project permutator.go
package permutator

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mk8-bruh/ww2-cryptography/cryptors"
)

// ErrNotPermutation is returned when a wiring does not map every letter of the
// alphabet to exactly one letter.
var ErrNotPermutation = errors.New("wiring is not a permutation of the alphabet")

// Permutation is a bijection over the alphabet indexes 0..25 together with
// its inverse.  A Permutation is immutable once built.
type Permutation struct {
	forward [cryptors.AlphabetSize]int
	inverse [cryptors.AlphabetSize]int
}

// New creates a permutation from the given wiring, where wiring[i] is the
// image of i.
func New(wiring []int) (*Permutation, error) {
	if len(wiring) != cryptors.AlphabetSize {
		return nil, fmt.Errorf("%w: %d entries", ErrNotPermutation, len(wiring))
	}

	var p Permutation
	var seen [cryptors.AlphabetSize]bool

	for i, v := range wiring {
		if v < 0 || v >= cryptors.AlphabetSize {
			return nil, fmt.Errorf("%w: entry %d is %d", ErrNotPermutation, i, v)
		}
		if seen[v] {
			return nil, fmt.Errorf("%w: %c appears twice", ErrNotPermutation, cryptors.Letter(v))
		}
		seen[v] = true
		p.forward[i] = v
		p.inverse[v] = i
	}

	return &p, nil
}

// Parse creates a permutation from a string of 26 letters such as
// "EKMFLGDQVZNTOWYHXUSPAIBRCJ".
func Parse(wiring string) (*Permutation, error) {
	w := make([]int, 0, cryptors.AlphabetSize)
	for _, r := range wiring {
		i, err := cryptors.Index(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNotPermutation, r)
		}
		w = append(w, i)
	}
	return New(w)
}

// Identity returns the permutation that maps every letter to itself.
func Identity() *Permutation {
	var p Permutation
	for i := range p.forward {
		p.forward[i], p.inverse[i] = i, i
	}
	return &p
}

// Forward returns the image of i.  i is reduced modulo 26.
func (p *Permutation) Forward(i int) int {
	return p.forward[cryptors.Mod(i)]
}

// Inverse returns the pre-image of i.  i is reduced modulo 26.
func (p *Permutation) Inverse(i int) int {
	return p.inverse[cryptors.Mod(i)]
}

// IsInvolution reports whether the permutation is its own inverse.
func (p *Permutation) IsInvolution() bool {
	return p.forward == p.inverse
}

// FixedPoints returns the indexes that map to themselves.
func (p *Permutation) FixedPoints() []int {
	var fixed []int
	for i, v := range p.forward {
		if i == v {
			fixed = append(fixed, i)
		}
	}
	return fixed
}

// Wiring returns a copy of the forward mapping.
func (p *Permutation) Wiring() []int {
	w := make([]int, cryptors.AlphabetSize)
	copy(w, p.forward[:])
	return w
}

func (p *Permutation) String() string {
	var output bytes.Buffer
	for _, v := range p.forward {
		output.WriteRune(cryptors.Letter(v))
	}
	return output.String()
}
