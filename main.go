// SPDX-License-Identifier: MPL-2.0

package main

import cmd "uvs-cli/cmd/uvs"

func main() {
	cmd.Execute()
}
