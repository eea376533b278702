// Package baudot holds the five bit teleprinter code used by the Lorenz
// machine.  Non-printing codes are given stand-in symbols so that every code
// can be shown as a single character.
package baudot

import "fmt"

// Bits is the width of a code.
const Bits = 5

// Unknown is returned by Decode for a code with no symbol.
const Unknown = '?'

// Stand-in symbols for the non-printing codes.
const (
	Null        = '!'
	CarriageRet = '^'
	LineFeed    = '$'
	FigureShift = '#'
	LetterShift = '@'
	Space       = ' '
)

// Code is a five bit teleprinter code.  Bit 0 is the first impulse, the left
// most digit when the code is written out.
type Code uint8

// Bit returns impulse k (0..4) of the code as 0 or 1.
func (c Code) Bit(k int) uint8 {
	return uint8(c>>(Bits-1-k)) & 1
}

// SetBit returns a copy of the code with impulse k set to v.
func (c Code) SetBit(k int, v uint8) Code {
	mask := Code(1) << (Bits - 1 - k)
	if v&1 == 1 {
		return c | mask
	}
	return c &^ mask
}

func (c Code) String() string {
	return fmt.Sprintf("%05b", uint8(c)&0x1f)
}

var (
	symbols = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ !^$#@")
	codes   = []Code{
		0b11000, 0b10011, 0b01110, 0b10010, 0b10000, 0b10110, 0b01011, 0b00101,
		0b01100, 0b11010, 0b11110, 0b01001, 0b00111, 0b00110, 0b00011, 0b01101,
		0b11101, 0b01010, 0b10100, 0b00001, 0b11100, 0b01111, 0b11001, 0b10111,
		0b10101, 0b10001, 0b00100, 0b00000, 0b00010, 0b01000, 0b11011, 0b11111,
	}

	encode = make(map[rune]Code, len(symbols))
	decode = make(map[Code]rune, len(symbols))
)

func init() {
	for i, s := range symbols {
		encode[s] = codes[i]
		decode[codes[i]] = s
	}
}

// Encode returns the code for symbol s.  Letters must be upper case.
func Encode(s rune) (Code, bool) {
	c, ok := encode[s]
	return c, ok
}

// Decode returns the symbol for code c, or Unknown.
func Decode(c Code) rune {
	if s, ok := decode[c]; ok {
		return s
	}
	return Unknown
}

// Symbols returns every symbol in table order.
func Symbols() []rune {
	return append([]rune(nil), symbols...)
}
