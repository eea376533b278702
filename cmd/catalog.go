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
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mk8-bruh/ww2-cryptography/cryptors/baudot"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/lorenz"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/rotor"
	"github.com/mk8-bruh/ww2-cryptography/cryptors/swapper"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the rotors, reflectors and wheels",
	Run: func(cmd *cobra.Command, args []string) {
		writeCatalog(cmd.OutOrStdout())
	},
}

// baudotCmd represents the baudot command
var baudotCmd = &cobra.Command{
	Use:   "baudot",
	Short: "Show the Baudot code table",
	Run: func(cmd *cobra.Command, args []string) {
		writeBaudot(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(baudotCmd)
}

func writeCatalog(w io.Writer) {
	fmt.Fprintln(w, "Rotors:")
	for i, t := range rotor.Catalog() {
		fmt.Fprintf(w, "  %d %-4s %s  notches %s\n", i+1, t.Name, t.Wiring, t.Notches)
	}
	fmt.Fprintln(w, "Reflectors:")
	for _, t := range swapper.Reflectors() {
		fmt.Fprintf(w, "  %s %s\n", t.Name, strings.Join(t.Pairs, " "))
	}
	fmt.Fprintln(w, "Lorenz wheels:")
	for _, wh := range lorenz.New().Wheels() {
		fmt.Fprintf(w, "  %-4s %d pins\n", wh.Name(), wh.Size())
	}
}

var baudotNames = map[rune]string{
	baudot.Space:       "space",
	baudot.Null:        "null",
	baudot.CarriageRet: "carriage return",
	baudot.LineFeed:    "line feed",
	baudot.FigureShift: "figure shift",
	baudot.LetterShift: "letter shift",
}

func writeBaudot(w io.Writer) {
	for _, s := range baudot.Symbols() {
		c, _ := baudot.Encode(s)
		if name, ok := baudotNames[s]; ok {
			fmt.Fprintf(w, "%c %s  %s\n", s, c, name)
		} else {
			fmt.Fprintf(w, "%c %s\n", s, c)
		}
	}
}
