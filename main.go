package main

import (
	"os"

	"github.com/ephyslab/sweepscope/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
