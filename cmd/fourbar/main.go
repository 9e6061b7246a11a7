package main

import (
	"os"

	"fourbar/cmd/fourbar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
