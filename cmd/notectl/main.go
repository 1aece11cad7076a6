package main

import (
	"os"

	"notestack-be/internal/cli"

	"github.com/fatih/color"
)

func main() {
	if err := cli.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
