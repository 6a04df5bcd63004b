package main

import (
	"os"

	"github.com/rustyeddy/bondpv/cmd/bondpv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
