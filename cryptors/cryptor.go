// cryptors
package cryptors

import (
	"bufio"
	"errors"
	"io"
)

const (
	// AlphabetSize is the number of letters on an Enigma keyboard.
	AlphabetSize = 26
)

var (
	// ErrOutOfRange is returned when a wheel or rotor position is set outside
	// the range of the wheel.
	ErrOutOfRange = errors.New("position out of range")
	// ErrNotLetter is returned when a configuration value that must be a
	// letter A-Z is something else.
	ErrNotLetter = errors.New("not a letter")
)

// Crypter is a cipher machine that consumes one character at a time.  Apply
// returns the character to emit and whether anything is emitted at all.
type Crypter interface {
	Apply(r rune) (rune, bool)
}

// IsLetter reports whether r is a letter of the alphabet, in either case.
func IsLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// Index converts a letter to its alphabet index 0..25.  Lower case letters
// map to the same index as their upper case counterpart.
func Index(r rune) (int, error) {
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), nil
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), nil
	}
	return 0, ErrNotLetter
}

// Letter converts an alphabet index back to an upper case letter.  The index
// is reduced modulo 26 first.
func Letter(i int) rune {
	return rune('A' + Mod(i))
}

// Mod reduces i into the range 0..25.
func Mod(i int) int {
	i %= AlphabetSize
	if i < 0 {
		i += AlphabetSize
	}
	return i
}

// Transcribe runs every character read from rdr through ecm and makes the
// result available on the returned PipeReader.  The machine is only touched
// by the single goroutine started here, so callers must not use ecm until the
// returned reader reaches EOF.
func Transcribe(ecm Crypter, rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()

	go func() {
		bRdr := bufio.NewReader(rdr)
		bWrtr := bufio.NewWriter(rWrtr)
		var err error

		for {
			var r rune
			r, _, err = bRdr.ReadRune()
			if err != nil {
				break
			}

			if out, ok := ecm.Apply(r); ok {
				if _, err = bWrtr.WriteRune(out); err != nil {
					break
				}
			}
		}

		if err == io.EOF {
			err = bWrtr.Flush()
		}

		rWrtr.CloseWithError(err)
	}()

	return rRdr
}
