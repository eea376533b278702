/*
Copyright © 2026 The ww2-cryptography Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mk8-bruh/ww2-cryptography/cryptors/lorenz"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/rotor"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/swapper"
	"github.com/mk8-bruh/ww2-cryptography/session"
)

const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyBackspace = 0x08
	keyTab       = 0x09
	keyEscape    = 0x1b
	keyDelete    = 0x7f
)

// pinWindow is the number of pins shown on each side of the current pin.
const pinWindow = 5

var errUnknownCommand = errors.New("unknown command, try help")

// consoleCmd represents the console command
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Type on a machine key by key",
	Long: `Type on a cipher machine one key at a time.  Backspace takes the last key back
and returns the machine to where it was; Escape or Ctrl-D ends the session and
prints the ciphertext.

Tab switches to the settings prompt, where the machine can be changed while
typing.  Enter runs a setting, Tab or Escape goes back to typing and "help"
lists the settings of the machine.  Keys typed before a change can no longer
be taken back.`,
}

var consoleEnigmaCmd = &cobra.Command{
	Use:   "enigma",
	Short: "Type on the configured Enigma machine",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := newEnigma("")
		cobra.CheckErr(err)
		runConsole(&enigmaTypist{session.NewEnigma(m)})
	},
}

var consoleLorenzCmd = &cobra.Command{
	Use:   "lorenz",
	Short: "Type on the configured Lorenz machine",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := newLorenz("")
		cobra.CheckErr(err)
		runConsole(&lorenzTypist{session.NewLorenz(m)})
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	consoleCmd.AddCommand(consoleEnigmaCmd)
	consoleCmd.AddCommand(consoleLorenzCmd)
}

// typist is a machine session the console can drive.
type typist interface {
	Key(r rune)
	Undo() (bool, error)
	// Configure runs one settings command and returns a message to show.
	Configure(args []string) (string, error)
	Status() string
	Plaintext() string
	Ciphertext() string
}

type enigmaTypist struct {
	*session.Enigma
}

func (t *enigmaTypist) Key(r rune) {
	t.Type(r)
}

func (t *enigmaTypist) Status() string {
	var parts []string
	for _, r := range t.Machine.Rotors() {
		parts = append(parts, r.String())
	}
	parts = append(parts, "reflector: "+t.Machine.Reflector().Name())
	if t.Machine.Plugboard().Len() > 0 {
		parts = append(parts, "plugboard: "+t.Machine.Plugboard().String())
	}
	return strings.Join(parts, "  ")
}

const enigmaHelp = "rotor N ID | pos N L | set LETTERS | notch N | reflector A|B|C | plug AB.. | unplug AB.."

// Configure changes the machine.  Rotor slots are numbered from 1, fastest
// rotor first.
func (t *enigmaTypist) Configure(args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}

	m := t.Machine
	cmd := strings.ToLower(args[0])
	switch {
	case cmd == "help":
		return enigmaHelp, nil
	case cmd == "rotor" && len(args) == 3:
		i, err := rotorSlot(args[1], len(m.Rotors()))
		if err != nil {
			return "", err
		}
		tmpl, err := rotor.Lookup(args[2])
		if err != nil {
			return "", err
		}
		if err := m.SetRotor(i, tmpl); err != nil {
			return "", err
		}
	case cmd == "pos" && len(args) == 3:
		i, err := rotorSlot(args[1], len(m.Rotors()))
		if err != nil {
			return "", err
		}
		l := []rune(args[2])
		if len(l) != 1 {
			return "", fmt.Errorf("position %q is not one letter", args[2])
		}
		if err := m.Rotors()[i].SetPositionLetter(l[0]); err != nil {
			return "", err
		}
	case cmd == "set" && len(args) == 2:
		if err := m.SetIndicator(strings.ToUpper(args[1])); err != nil {
			return "", err
		}
	case cmd == "notch" && len(args) == 2:
		i, err := rotorSlot(args[1], len(m.Rotors()))
		if err != nil {
			return "", err
		}
		r := m.Rotors()[i]
		// NextNotch is always in range
		_ = r.SetPosition(r.NextNotch())
	case cmd == "reflector" && len(args) == 2:
		r, err := swapper.Reflector(args[1])
		if err != nil {
			return "", err
		}
		m.SetReflector(r)
	case cmd == "plug" && len(args) > 1:
		n, err := plug(m.Plugboard(), args[1:])
		if n > 0 {
			t.Reset()
		}
		if err != nil {
			return "", err
		}
	case cmd == "unplug" && len(args) > 1:
		for _, p := range args[1:] {
			m.Plugboard().RemovePair(strings.ToUpper(p))
		}
	default:
		return "", errUnknownCommand
	}

	t.Reset()
	return "", nil
}

// rotorSlot converts a slot number counted from 1 to an index.
func rotorSlot(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("no rotor slot %q", s)
	}
	return i - 1, nil
}

// plug connects the pairs in order and returns how many were connected.  It
// stops at the first pair with a letter that is already plugged.
func plug(pb *swapper.Swapper, pairs []string) (int, error) {
	for n, p := range pairs {
		p = strings.ToUpper(p)
		for _, l := range p {
			if pb.Paired(l) {
				return n, fmt.Errorf("%c is already plugged", l)
			}
		}
		if err := pb.AddPair(p); err != nil {
			return n, err
		}
	}
	return len(pairs), nil
}

type lorenzTypist struct {
	*session.Lorenz
}

func (t *lorenzTypist) Key(r rune) {
	t.Type(r)
}

func (t *lorenzTypist) Status() string {
	return t.Machine.Snapshot().String()
}

const lorenzHelp = "wheels chi1-5 psi1-5 m1-2 | pos W N | pin W 0|1 | toggle W | pins W"

// Configure changes the wheels.  Positions count from 0 as in the indicator.
func (t *lorenzTypist) Configure(args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}

	cmd := strings.ToLower(args[0])
	if cmd == "help" {
		return lorenzHelp, nil
	}
	if len(args) < 2 {
		return "", errUnknownCommand
	}
	w, err := t.wheel(args[1])
	if err != nil {
		return "", err
	}

	switch {
	case cmd == "pins" && len(args) == 2:
		return showPins(w), nil
	case cmd == "pos" && len(args) == 3:
		p, err := strconv.Atoi(args[2])
		if err != nil {
			return "", fmt.Errorf("position %q is not a number", args[2])
		}
		if err := w.SetPosition(p); err != nil {
			return "", err
		}
	case cmd == "pin" && len(args) == 3:
		v, err := strconv.ParseUint(args[2], 10, 8)
		if err != nil {
			return "", fmt.Errorf("pin %q is not 0 or 1", args[2])
		}
		if err := w.SetPin(uint8(v)); err != nil {
			return "", err
		}
		// Setting a pin moves on to the next one, so a pattern can be
		// entered pin by pin.
		w.Step()
	case cmd == "toggle" && len(args) == 2:
		w.TogglePin()
	default:
		return "", errUnknownCommand
	}

	t.Reset()
	return showPins(w), nil
}

// wheel finds a wheel by set and number, e.g. chi1, psi5 or m2.
func (t *lorenzTypist) wheel(id string) (*lorenz.Wheel, error) {
	id = strings.ToLower(id)
	set := strings.TrimRightFunc(id, unicode.IsDigit)

	var wheels []*lorenz.Wheel
	switch set {
	case "chi":
		wheels = t.Machine.Chi()
	case "psi":
		wheels = t.Machine.Psi()
	case "m", "motor":
		wheels = t.Machine.Motor()
	}

	n, err := strconv.Atoi(id[len(set):])
	if err != nil || n < 1 || n > len(wheels) {
		return nil, fmt.Errorf("no wheel %q", id)
	}
	return wheels[n-1], nil
}

// showPins returns the pins around the current one, which is bracketed.
func showPins(w *lorenz.Wheel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ", w)
	for d := -pinWindow; d <= pinWindow; d++ {
		if d == 0 {
			b.WriteByte('[')
		}
		b.WriteByte('0' + w.Pin(w.Position()+d))
		if d == 0 {
			b.WriteByte(']')
		}
	}
	return b.String()
}

// lastLine returns the text after the last newline.
func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// console is the state of one keyboard session.
type console struct {
	t        typist
	out      io.Writer
	settings bool
	command  []rune
	message  string
}

func (c *console) redraw() {
	var prompt string
	if c.settings {
		prompt = c.message + "> " + string(c.command)
	}
	fmt.Fprintf(c.out, "\r\x1b[K%s\r\n\x1b[K%s\r\n\x1b[K%s\r\n\x1b[K%s\x1b[3A\r",
		c.t.Status(), lastLine(c.t.Plaintext()), lastLine(c.t.Ciphertext()), prompt)
}

// typing handles a key in typing mode and reports whether the session ends.
func (c *console) typing(r rune) (bool, error) {
	switch r {
	case keyEscape, keyCtrlC, keyCtrlD:
		return true, nil
	case keyTab:
		c.settings = true
	case keyBackspace, keyDelete:
		if _, err := c.t.Undo(); err != nil {
			return false, err
		}
	case '\r', '\n':
		c.t.Key('\n')
	default:
		c.t.Key(r)
	}
	return false, nil
}

// setting handles a key at the settings prompt and reports whether the
// session ends.
func (c *console) setting(r rune) bool {
	switch r {
	case keyCtrlC, keyCtrlD:
		return true
	case keyEscape, keyTab:
		c.settings, c.command, c.message = false, nil, ""
	case keyBackspace, keyDelete:
		if len(c.command) > 0 {
			c.command = c.command[:len(c.command)-1]
		}
	case '\r', '\n':
		msg, err := c.t.Configure(strings.Fields(string(c.command)))
		if err != nil {
			msg = err.Error()
		}
		if msg != "" {
			msg += "  "
		}
		c.message, c.command = msg, nil
	default:
		if unicode.IsPrint(r) {
			c.command = append(c.command, r)
		}
	}
	return false
}

// skipSequence consumes the rest of a terminal escape sequence such as an
// arrow key.  It reports false when the escape was a key press of its own.
// A sequence arrives in one read, so only buffered input is looked at.
func skipSequence(rdr *bufio.Reader) bool {
	if rdr.Buffered() == 0 {
		return false
	}
	b, err := rdr.Peek(1)
	if err != nil || (b[0] != '[' && b[0] != 'O') {
		return false
	}

	intro, _ := rdr.ReadByte()
	for rdr.Buffered() > 0 {
		c, _ := rdr.ReadByte()
		// SS3 sequences are one byte long, CSI sequences end with a final
		// byte in 0x40-0x7e.
		if intro == 'O' || (c >= 0x40 && c <= 0x7e) {
			break
		}
	}
	return true
}

// consoleLoop feeds keys read from in to t until Escape, Ctrl-C, Ctrl-D or
// the end of the input.
func consoleLoop(in io.Reader, out io.Writer, t typist) error {
	rdr := bufio.NewReader(in)
	c := &console{t: t, out: out}
	c.redraw()
	for {
		r, _, err := rdr.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if r == keyEscape && skipSequence(rdr) {
			continue
		}

		var done bool
		if c.settings {
			done = c.setting(r)
		} else if done, err = c.typing(r); err != nil {
			return err
		}
		if done {
			return nil
		}
		c.redraw()
	}
}

func runConsole(t typist) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		cobra.CheckErr(errors.New("the console needs a terminal on stdin"))
	}

	oldState, err := term.MakeRaw(fd)
	cobra.CheckErr(err)
	err = consoleLoop(os.Stdin, os.Stderr, t)
	cobra.CheckErr(term.Restore(fd, oldState))
	fmt.Fprint(os.Stderr, "\n\n\n\n")
	cobra.CheckErr(err)
	fmt.Fprintln(os.Stdout, t.Ciphertext())
}
