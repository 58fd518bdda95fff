// The main package for the nominee-importer executable.
package main

import (
	"github.com/gavital/oscar-betting-app-sub000/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	cmd.Execute()
}
