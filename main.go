// SPDX-License-Identifier: MPL-2.0

// voltar backs up and restores container volumes through ephemeral
// Docker/Podman containers.
package main

import (
	cmd "voltar-cli/cmd/voltar"
)

func main() {
	cmd.Execute()
}
