package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setConfig overrides a config key for the duration of the test.
func setConfig(t *testing.T, key string, value interface{}) {
	t.Helper()
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, nil) })
}

func TestNewEnigmaDefaults(t *testing.T) {
	m, err := newEnigma("")
	require.NoError(t, err)
	assert.Equal(t, "AAA", m.Indicator())
	assert.Equal(t, "JLEBCRLMNV", m.Encode("HELLOWORLD"))
}

func TestNewEnigmaRotorCounts(t *testing.T) {
	setConfig(t, "enigma.rotors", []string{"I", "II", "III", "IV"})
	m, err := newEnigma("")
	require.NoError(t, err)
	assert.Len(t, m.Rotors(), 4)
	assert.Equal(t, "AAAA", m.Indicator())

	m, err = newEnigma("QDBZ")
	require.NoError(t, err)
	assert.Equal(t, "QDBZ", m.Indicator())

	setConfig(t, "enigma.rotors", []string{})
	m, err = newEnigma("")
	require.NoError(t, err)
	assert.Empty(t, m.Rotors())
	assert.Equal(t, "DQGGM", m.Encode("HELLO"))
}

func TestNewEnigmaPositionsMustMatch(t *testing.T) {
	setConfig(t, "enigma.positions", "ab")
	_, err := newEnigma("")
	assert.Error(t, err)
}
