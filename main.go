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

// Package main - ww2crypto emulates two Second World War cipher machines:
// the Enigma rotor machine and the Lorenz SZ teleprinter cipher.
package main

import "github.com/mk8-bruh/ww2-cryptography/cmd"

func main() {
	cmd.Execute()
}
