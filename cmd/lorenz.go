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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mk8-bruh/ww2-cryptography/cryptors"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/lorenz"
)

const lorenzName = "lorenz"

// lorenzCmd represents the lorenz command
var lorenzCmd = &cobra.Command{
	Use:   "lorenz",
	Short: "Encrypt or decrypt with the Lorenz SZ teleprinter cipher",
	Long: `Encrypt or decrypt text with a Lorenz SZ machine.  Only letters, space and the
Baudot stand-in symbols ! ^ $ # @ are enciphered; newlines are kept and every
other character is dropped.  The pin patterns come from the flags, the config
file (lorenz.chi, lorenz.psi, lorenz.motor) or the WW2CRYPTO_LORENZ_*
environment variables.  Wheels without a pattern have every pin at 0.`,
}

var lorenzEncryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt plaintext using Lorenz",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := newLorenz("")
		cobra.CheckErr(err)
		encrypt(lorenzName, m, m.Snapshot().String())
	},
}

var lorenzDecryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a Lorenz message",
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(cmd, lorenzName, func(indicator string) (cryptors.Crypter, error) {
			return newLorenz(indicator)
		})
	},
}

func init() {
	rootCmd.AddCommand(lorenzCmd)
	lorenzCmd.AddCommand(lorenzEncryptCmd)
	lorenzCmd.AddCommand(lorenzDecryptCmd)

	flags := lorenzCmd.PersistentFlags()
	flags.StringSlice("chi", nil, "pin patterns of the five chi wheels, e.g. 0110...,1010...")
	flags.StringSlice("psi", nil, "pin patterns of the five psi wheels")
	flags.StringSlice("motor", nil, "pin patterns of the two motor wheels")
	flags.String("positions", "", "start positions as chi;psi;motor, e.g. 0,0,0,0,0;0,0,0,0,0;0,0")
	for _, name := range []string{"chi", "psi", "motor", "positions"} {
		cobra.CheckErr(viper.BindPFlag(lorenzName+"."+name, flags.Lookup(name)))
	}

	addArmorFlags(lorenzEncryptCmd)
	consoleLorenzCmd.Flags().AddFlagSet(flags)
}

// newLorenz builds the configured machine.  The start positions are taken
// from indicator when it is not empty.
func newLorenz(indicator string) (*lorenz.Machine, error) {
	m := lorenz.New()
	err := m.SetKey(lorenz.Key{
		Chi:   viper.GetStringSlice("lorenz.chi"),
		Psi:   viper.GetStringSlice("lorenz.psi"),
		Motor: viper.GetStringSlice("lorenz.motor"),
	})
	if err != nil {
		return nil, err
	}

	if indicator == "" {
		indicator = viper.GetString("lorenz.positions")
	}
	if indicator != "" {
		p, err := lorenz.ParsePositions(indicator)
		if err != nil {
			return nil, err
		}
		if err := m.Restore(p); err != nil {
			return nil, err
		}
	}

	logger.Printf("lorenz wheels at %s", m.Snapshot())
	return m, nil
}
