package cryptors_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mk8-bruh/ww2-cryptography/cryptors"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/enigma"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/lorenz"
)

func TestIndexAndLetter(t *testing.T) {
	for i := 0; i < cryptors.AlphabetSize; i++ {
		l := cryptors.Letter(i)
		got, err := cryptors.Index(l)
		require.NoError(t, err)
		assert.Equal(t, i, got)

		lower, err := cryptors.Index(l + ('a' - 'A'))
		require.NoError(t, err)
		assert.Equal(t, i, lower)
	}

	for _, r := range "@[`{1 é" {
		_, err := cryptors.Index(r)
		assert.ErrorIs(t, err, cryptors.ErrNotLetter, "rune %q", r)
		assert.False(t, cryptors.IsLetter(r))
	}

	assert.Equal(t, 'B', cryptors.Letter(27))
	assert.Equal(t, 'Z', cryptors.Letter(-1))
}

func TestMod(t *testing.T) {
	assert.Equal(t, 0, cryptors.Mod(26))
	assert.Equal(t, 25, cryptors.Mod(-1))
	assert.Equal(t, 1, cryptors.Mod(-51))
}

func TestTranscribeEnigma(t *testing.T) {
	m, err := enigma.NewFromSettings(enigma.DefaultSettings())
	require.NoError(t, err)

	out, err := io.ReadAll(cryptors.Transcribe(m, strings.NewReader("HELLO WORLD")))
	require.NoError(t, err)
	assert.Equal(t, "JLEBC RLMNV", string(out))
}

func TestTranscribeDropsCharacters(t *testing.T) {
	m := lorenz.New()
	out, err := io.ReadAll(cryptors.Transcribe(m, strings.NewReader("a1b\nc")))
	require.NoError(t, err)
	assert.Equal(t, "MI\nZ", string(out))
	assert.Equal(t, "AB\nC", m.Plaintext())
}
