package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mk8-bruh/ww2-cryptography/cryptors/enigma"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/lorenz"
	"github.com/mk8-bruh/ww2-cryptography/session"
)

func TestConsoleLoopEnigma(t *testing.T) {
	m, err := enigma.NewFromSettings(enigma.DefaultSettings())
	require.NoError(t, err)
	tp := &enigmaTypist{session.NewEnigma(m)}

	var out bytes.Buffer
	require.NoError(t, consoleLoop(strings.NewReader("hell\x08lo\x7f\x7fLO\x1bIGNORED"), &out, tp))

	assert.Equal(t, "HELLO", tp.Plaintext())
	assert.Equal(t, "JLEBC", tp.Ciphertext())
	assert.Equal(t, "FAA", m.Indicator())
	assert.Contains(t, out.String(), "JLEBC")
	assert.Contains(t, tp.Status(), "reflector: B")
}

func TestConsoleLoopStopsAtEOF(t *testing.T) {
	m, err := enigma.NewFromSettings(enigma.DefaultSettings())
	require.NoError(t, err)
	tp := &enigmaTypist{session.NewEnigma(m)}

	var out bytes.Buffer
	require.NoError(t, consoleLoop(strings.NewReader("HELLO\rWORLD"), &out, tp))
	assert.Equal(t, "HELLO\nWORLD", tp.Plaintext())
	assert.Equal(t, "JLEBC\nRLMNV", tp.Ciphertext())
}

func TestConsoleLoopLorenz(t *testing.T) {
	tp := &lorenzTypist{session.NewLorenz(lorenz.New())}

	var out bytes.Buffer
	require.NoError(t, consoleLoop(strings.NewReader("ab\r1c\x7f\x04"), &out, tp))
	assert.Equal(t, "AB\n", tp.Plaintext())
	assert.Equal(t, "MI\n", tp.Ciphertext())
	assert.Equal(t, "2,2,2,2,2;0,0,0,0,0;0,2", tp.Status())
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "CD", lastLine("AB\nCD"))
	assert.Equal(t, "", lastLine("AB\n"))
	assert.Equal(t, "AB", lastLine("AB"))
}

func TestConsoleSkipsEscapeSequences(t *testing.T) {
	m, err := enigma.NewFromSettings(enigma.DefaultSettings())
	require.NoError(t, err)
	tp := &enigmaTypist{session.NewEnigma(m)}

	var out bytes.Buffer
	require.NoError(t, consoleLoop(strings.NewReader("AB\x1b[AC\x1b[1;5D\x1bOAD\x1bZZ"), &out, tp))
	assert.Equal(t, "ABCD", tp.Plaintext())
}

func TestConsoleEnigmaSettings(t *testing.T) {
	m, err := enigma.NewFromSettings(enigma.DefaultSettings())
	require.NoError(t, err)
	tp := &enigmaTypist{session.NewEnigma(m)}

	in := "XY\tnotch 1\rrotor 2 IV\rreflector c\rplug AB cd\rplug AE\rbogus\t" + "HELLO\x1b"
	var out bytes.Buffer
	require.NoError(t, consoleLoop(strings.NewReader(in), &out, tp))

	assert.Contains(t, out.String(), "A is already plugged")
	assert.Contains(t, out.String(), errUnknownCommand.Error())
	assert.Equal(t, "XYHELLO", tp.Plaintext())
	assert.Equal(t, "AB CD", m.Plugboard().String())

	before, err := enigma.NewFromSettings(enigma.DefaultSettings())
	require.NoError(t, err)
	after, err := enigma.NewFromSettings(enigma.Settings{
		Rotors:    []string{"I", "IV", "III"},
		Positions: "RAA",
		Reflector: "C",
		Plugboard: []string{"AB", "CD"},
	})
	require.NoError(t, err)
	assert.Equal(t, before.Encode("XY")+after.Encode("HELLO"), tp.Ciphertext())
	assert.Equal(t, after.Indicator(), m.Indicator())
}

func TestConsoleSettingsStopUndo(t *testing.T) {
	m, err := enigma.NewFromSettings(enigma.DefaultSettings())
	require.NoError(t, err)
	tp := &enigmaTypist{session.NewEnigma(m)}

	var out bytes.Buffer
	require.NoError(t, consoleLoop(strings.NewReader("XY\tnotch 1\r\tAB\x7f\x7f\x7f\x7f"), &out, tp))
	assert.Equal(t, "XY", tp.Plaintext())
	assert.Equal(t, "RAA", m.Indicator())
}

func TestConsoleEscapeLeavesSettings(t *testing.T) {
	m, err := enigma.NewFromSettings(enigma.DefaultSettings())
	require.NoError(t, err)
	tp := &enigmaTypist{session.NewEnigma(m)}

	var out bytes.Buffer
	require.NoError(t, consoleLoop(strings.NewReader("\tplug A\x1bB"), &out, tp))
	assert.Equal(t, "B", tp.Plaintext())
	assert.Equal(t, 0, m.Plugboard().Len())
}

func TestEnigmaConfigure(t *testing.T) {
	m, err := enigma.NewFromSettings(enigma.DefaultSettings())
	require.NoError(t, err)
	tp := &enigmaTypist{session.NewEnigma(m)}

	msg, err := tp.Configure([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, enigmaHelp, msg)

	require.NoError(t, configure(tp, "set qdb"))
	assert.Equal(t, "QDB", m.Indicator())
	require.NoError(t, configure(tp, "pos 3 z"))
	assert.Equal(t, "QDZ", m.Indicator())
	require.NoError(t, configure(tp, "plug AB CD EF"))
	require.NoError(t, configure(tp, "unplug ba FE"))
	assert.Equal(t, "CD", m.Plugboard().String())

	for _, bad := range []string{"rotor 4 I", "rotor 1 IX", "rotor x I", "pos 1 AB", "set AB", "reflector D", "plug C1", "notch", "spin 1"} {
		assert.Error(t, configure(tp, bad), "command %q", bad)
	}
	assert.Equal(t, "QDZ", m.Indicator())
}

func TestLorenzConfigure(t *testing.T) {
	m := lorenz.New()
	tp := &lorenzTypist{session.NewLorenz(m)}

	in := "\tpin chi1 1\rpin chi1 1\rpos chi1 0\rtoggle psi2\rpos m2 5\rpins chi1\rpin chi1 2\r\tA\x1b"
	var out bytes.Buffer
	require.NoError(t, consoleLoop(strings.NewReader(in), &out, tp))

	assert.Contains(t, out.String(), "χ41@00 00000[1]10000")
	assert.Contains(t, out.String(), "pin value 2")
	assert.Equal(t, "11"+strings.Repeat("0", 39), m.Chi()[0].Pins())
	assert.Equal(t, uint8(1), m.Psi()[1].Pin(0))

	// Only the last three impulses of A are flipped.
	assert.Equal(t, "@", tp.Ciphertext())
	assert.Equal(t, "1,1,1,1,1;0,0,0,0,0;0,6", tp.Status())

	for _, bad := range []string{"pos chi6 1", "pos psi1 47", "pos m1 x", "pins", "pin m1", "wind chi1"} {
		assert.Error(t, configure(tp, bad), "command %q", bad)
	}
}

func configure(t typist, line string) error {
	_, err := t.Configure(strings.Fields(line))
	return err
}
