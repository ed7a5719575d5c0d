package main

import (
	"os"

	"github.com/rustyeddy/pnlchart/cmd/pnlchart/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
