// Package main is the entry point for the tagsweep CLI.
package main

import "tagsweep.dev/pkg/tagsweep/cmd"

func main() {
	cmd.Execute()
}
