package main

import (
	"os"

	"profilewizard/cmd/profilewizard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
