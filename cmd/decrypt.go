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
	"os"

	"github.com/spf13/cobra"

	"github.com/mk8-bruh/ww2-cryptography/cryptors"
	"github.com/mk8-bruh/ww2-cryptography/envelope"
)

// machineBuilder builds a machine set to the given indicator.  An empty
// indicator means the configured start positions.
type machineBuilder func(indicator string) (cryptors.Crypter, error)

// decrypt unwraps the input envelope, sets up the machine from the indicator
// it carries, and writes the deciphered text.  Both machines are their own
// inverse, so deciphering is running the ciphertext through the machine again.
func decrypt(cmd *cobra.Command, machine string, build machineBuilder) {
	fin, fout := getInputAndOutputFiles()
	defer fout.Close()

	body, hdr, err := envelope.Read(fin)
	cobra.CheckErr(err)

	if hdr.Machine != "" && hdr.Machine != machine {
		cobra.CheckErr(fmt.Sprintf("the message was encrypted with %s, not %s", hdr.Machine, machine))
	}

	indicator := hdr.Indicator
	if cmd.Flags().Changed("positions") {
		if indicator != "" {
			fmt.Fprintln(os.Stderr, "Ignoring the message indicator - using the --positions argument.")
		}
		indicator = ""
	}

	ecm, err := build(indicator)
	cobra.CheckErr(err)
	logger.Printf("decrypting with %s, indicator %q, message %q", machine, indicator, hdr.MessageID)

	_, err = io.Copy(fout, cryptors.Transcribe(ecm, body))
	checkError(err)
}
