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
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mk8-bruh/ww2-cryptography/cryptors"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/enigma"
)

const enigmaName = "enigma"

// enigmaCmd represents the enigma command
var enigmaCmd = &cobra.Command{
	Use:   "enigma",
	Short: "Encrypt or decrypt with the Enigma rotor machine",
	Long: `Encrypt or decrypt text with an Enigma rotor machine.  The rotors, their start
positions, the reflector and the plugboard come from the flags, the config file
(enigma.rotors, enigma.positions, enigma.reflector, enigma.plugboard) or the
WW2CRYPTO_ENIGMA_* environment variables.`,
}

var enigmaEncryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt plaintext using Enigma",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := newEnigma("")
		cobra.CheckErr(err)
		encrypt(enigmaName, m, m.Indicator())
	},
}

var enigmaDecryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt an Enigma message",
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(cmd, enigmaName, func(indicator string) (cryptors.Crypter, error) {
			return newEnigma(indicator)
		})
	},
}

func init() {
	rootCmd.AddCommand(enigmaCmd)
	enigmaCmd.AddCommand(enigmaEncryptCmd)
	enigmaCmd.AddCommand(enigmaDecryptCmd)

	def := enigma.DefaultSettings()
	flags := enigmaCmd.PersistentFlags()
	flags.StringSlice("rotors", def.Rotors, "rotors to fit, fastest first (I to VIII)")
	flags.String("positions", "", "start position letters, fastest rotor first (default all A)")
	flags.String("reflector", def.Reflector, "reflector to fit (A, B or C)")
	flags.StringSlice("plugboard", nil, "plugboard pairs, e.g. AB,CD")
	for _, name := range []string{"rotors", "positions", "reflector", "plugboard"} {
		cobra.CheckErr(viper.BindPFlag(enigmaName+"."+name, flags.Lookup(name)))
	}

	addArmorFlags(enigmaEncryptCmd)
	consoleEnigmaCmd.Flags().AddFlagSet(flags)
}

// enigmaSettings collects the machine settings from flags, config and
// environment.
func enigmaSettings() enigma.Settings {
	return enigma.Settings{
		Rotors:    viper.GetStringSlice("enigma.rotors"),
		Positions: strings.ToUpper(viper.GetString("enigma.positions")),
		Reflector: viper.GetString("enigma.reflector"),
		Plugboard: viper.GetStringSlice("enigma.plugboard"),
	}
}

// newEnigma builds the configured machine, overriding the start positions
// with indicator when it is not empty.
func newEnigma(indicator string) (*enigma.Machine, error) {
	s := enigmaSettings()
	if indicator != "" {
		s.Positions = indicator
	}
	logger.Printf("enigma rotors %v at %s, reflector %s, plugboard %v", s.Rotors, s.Positions, s.Reflector, s.Plugboard)
	return enigma.NewFromSettings(s)
}
