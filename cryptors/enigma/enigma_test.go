package enigma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mk8-bruh/ww2-cryptography/cryptors/rotor"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/swapper"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func newMachine(t *testing.T, s Settings) *Machine {
	t.Helper()
	m, err := NewFromSettings(s)
	require.NoError(t, err)
	return m
}

func TestReferenceVector(t *testing.T) {
	m := newMachine(t, DefaultSettings())

	var out []rune
	for _, c := range alphabet {
		out = append(out, m.Enter(c))
	}

	assert.Equal(t, "EOPVSEHIVAMHKODADGUPIKJWPJ", string(out))
	for i, c := range alphabet {
		assert.NotEqual(t, c, out[i], "letter %c enciphered to itself", c)
	}
	assert.Equal(t, "ABA", m.Indicator())
}

func TestEncodeMatchesEnter(t *testing.T) {
	a := newMachine(t, DefaultSettings())
	b := newMachine(t, DefaultSettings())

	text := "Attack at dawn, hold the bridge!"
	var want []rune
	for _, c := range text {
		want = append(want, b.Enter(c))
	}

	assert.Equal(t, string(want), a.Encode(text))
	assert.Equal(t, b.Indicator(), a.Indicator())
}

func TestEncodeVectors(t *testing.T) {
	tests := []struct {
		name      string
		settings  Settings
		in        string
		want      string
		indicator string
	}{
		{"hello", DefaultSettings(), "HELLOWORLD", "JLEBCRLMNV", "KAA"},
		{"plugboard", Settings{Rotors: []string{"I", "II", "III"}, Positions: "AAA", Reflector: "B", Plugboard: []string{"AB", "CD"}},
			"HELLOWORLD", "JLEADRLMNT", "KAA"},
		{"spaces pass through", DefaultSettings(), "HELLO WORLD", "JLEBC RLMNV", "KAA"},
		{"lower case", DefaultSettings(), "helloworld", "JLEBCRLMNV", "KAA"},
		{"no rotors", Settings{Reflector: "B"}, "HELLO", "DQGGM", ""},
		{"long run", DefaultSettings(), "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
			"ETVRQGXYQJNDGWJPIKYUDWCRTXDVBLIJDRURMIPHESSCODHEVVXSNJYDZLUP", "ICA"},
		{"rotors VI VII VIII", Settings{Rotors: []string{"6", "7", "8"}, Positions: "AAA", Reflector: "C"},
			"THEQUICKBROWNFOX", "JVULGVJHFTHOAGKU", "QDB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t, tt.settings)
			assert.Equal(t, tt.want, m.Encode(tt.in))
			assert.Equal(t, tt.indicator, m.Indicator())
		})
	}
}

func TestDecryptIsEncrypt(t *testing.T) {
	s := Settings{Rotors: []string{"IV", "II", "V"}, Positions: "QEV", Reflector: "A", Plugboard: []string{"QW", "ER", "TZ"}}
	plain := "THEENEMYISMOVINGNORTH"
	cipher := newMachine(t, s).Encode(plain)
	assert.Equal(t, plain, newMachine(t, s).Encode(cipher))
}

func TestTransformIsInvolution(t *testing.T) {
	m := newMachine(t, Settings{Rotors: []string{"III", "VI", "I"}, Positions: "XNR", Reflector: "B", Plugboard: []string{"AZ", "KM"}})
	for step := 0; step < 30; step++ {
		for _, c := range alphabet {
			out := m.Transform(c)
			assert.NotEqual(t, c, out)
			assert.Equal(t, c, m.Transform(out))
		}
		m.Enter('A')
	}
}

func TestDoubleStep(t *testing.T) {
	// Rotor I has its notch at R, rotor II at F.
	m := newMachine(t, Settings{Rotors: []string{"I", "II", "III"}, Positions: "RFA", Reflector: "B"})

	m.Enter('A')
	assert.Equal(t, "SGB", m.Indicator())
	m.Enter('A')
	assert.Equal(t, "THB", m.Indicator())
}

func TestNonLettersDoNotStep(t *testing.T) {
	m := newMachine(t, DefaultSettings())
	for _, c := range " 1.,\n-?" {
		assert.Equal(t, c, m.Enter(c))
	}
	assert.Equal(t, "AAA", m.Indicator())
}

func TestPlugboardChangesLive(t *testing.T) {
	m := newMachine(t, DefaultSettings())
	require.NoError(t, m.Plugboard().AddPair("AB"))
	require.NoError(t, m.Plugboard().AddPair("CD"))
	assert.Equal(t, "JLEADRLMNT", m.Encode("HELLOWORLD"))

	m.Plugboard().RemovePair("AB")
	m.Plugboard().RemovePair("DC")
	require.NoError(t, m.SetIndicator("AAA"))
	assert.Equal(t, "JLEBCRLMNV", m.Encode("HELLOWORLD"))
}

func TestSetRotor(t *testing.T) {
	m := newMachine(t, DefaultSettings())
	m.Encode("ABCDEFGH")

	tmpl, err := rotor.Lookup("II")
	require.NoError(t, err)
	require.NoError(t, m.SetRotor(0, tmpl))
	require.NoError(t, m.SetRotor(1, tmpl))
	assert.Equal(t, "AAA", m.Indicator())
	assert.Equal(t, "II", m.Rotors()[0].Name())

	// The two slots hold independent rotors built from the same template.
	require.NoError(t, m.Rotors()[0].SetPosition(5))
	assert.Equal(t, 0, m.Rotors()[1].Position())

	assert.ErrorIs(t, m.SetRotor(3, tmpl), ErrRotorIndex)
}

func TestSetReflector(t *testing.T) {
	m := newMachine(t, DefaultSettings())
	c, err := swapper.Reflector("C")
	require.NoError(t, err)
	m.SetReflector(c)
	assert.Equal(t, "C", m.Reflector().Name())

	// Without a reflector every letter comes back out where it went in.
	m.SetReflector(nil)
	require.NotNil(t, m.Reflector())
	assert.NotPanics(t, func() {
		assert.Equal(t, "HELLO", m.Encode("HELLO"))
	})
	assert.Equal(t, "FAA", m.Indicator())
}

func TestMachinesDoNotShareRotors(t *testing.T) {
	a := newMachine(t, DefaultSettings())
	b := newMachine(t, DefaultSettings())
	a.Encode("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	assert.Equal(t, "AAA", b.Indicator())
	assert.Equal(t, "JLEBCRLMNV", b.Encode("HELLOWORLD"))
}

func TestSnapshotRestore(t *testing.T) {
	m := newMachine(t, Settings{Rotors: []string{"I", "II", "III"}, Positions: "QFA", Reflector: "B"})
	m.Encode("A")
	before := m.Snapshot()
	first := m.Encode("HELLOWORLD")

	require.NoError(t, m.Restore(before))
	assert.Equal(t, first, m.Encode("HELLOWORLD"))

	assert.Error(t, m.Restore(State{Positions: []int{0}, Latches: []bool{false}}))
	assert.Error(t, m.Restore(State{Positions: []int{0, 0, 26}, Latches: make([]bool, 3)}))
}

func TestSetIndicator(t *testing.T) {
	m := newMachine(t, DefaultSettings())
	require.NoError(t, m.SetIndicator("qrs"))
	assert.Equal(t, "QRS", m.Indicator())

	assert.Error(t, m.SetIndicator("QR"))
	assert.Error(t, m.SetIndicator("Q1S"))
	assert.Equal(t, "QRS", m.Indicator())
}

func TestNewFromSettingsErrors(t *testing.T) {
	tests := []struct {
		name string
		s    Settings
	}{
		{"unknown rotor", Settings{Rotors: []string{"IX"}, Reflector: "B"}},
		{"unknown reflector", Settings{Rotors: []string{"I"}, Reflector: "D"}},
		{"positions count", Settings{Rotors: []string{"I", "II"}, Positions: "A", Reflector: "B"}},
		{"bad position", Settings{Rotors: []string{"I"}, Positions: "7", Reflector: "B"}},
		{"duplicate plug", Settings{Reflector: "B", Plugboard: []string{"AB", "BC"}}},
		{"bad plug", Settings{Reflector: "B", Plugboard: []string{"AA"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromSettings(tt.s)
			assert.Error(t, err)
		})
	}
}
