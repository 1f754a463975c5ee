package main

import (
	"os"

	"github.com/spigell/autohire/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
