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
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mk8-bruh/ww2-cryptography/cryptors"
	"github.com/mk8-bruh/ww2-cryptography/envelope"
)

var (
	useASCII85  bool
	usePem      bool
	compression bool
)

// addArmorFlags adds the flags that select how an encrypted message is written.
func addArmorFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&useASCII85, "useASCII85", "a", false, "use ASCII85 encoding")
	cmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding.")
	cmd.Flags().BoolVarP(&compression, "compress", "c", false, "compress the ciphertext using flate")
}

func armorEncoding() envelope.Encoding {
	switch {
	case usePem:
		return envelope.PEM
	case useASCII85:
		return envelope.ASCII85
	case compression:
		return envelope.Binary
	}
	return envelope.Plain
}

// encrypt runs the input through ecm and writes the result wrapped in an
// envelope naming the machine and its start positions.
func encrypt(machine string, ecm cryptors.Crypter, indicator string) {
	fin, fout := getInputAndOutputFiles()
	defer fout.Close()
	hdr := envelope.Header{
		Machine:     machine,
		Indicator:   indicator,
		MessageID:   uuid.New().String(),
		Compression: compression,
		Encoding:    armorEncoding(),
	}
	logger.Printf("encrypting with %s, indicator %s, message %s", machine, indicator, hdr.MessageID)
	checkError(envelope.Write(fout, cryptors.Transcribe(ecm, fin), hdr))
}
