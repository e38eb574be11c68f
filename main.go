// SPDX-License-Identifier: MPL-2.0

package main

import cmd "socforge/cmd/socforge"

func main() {
	cmd.Execute()
}
