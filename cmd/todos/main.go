// Package main provides the entry point for the todos CLI.
package main

import (
	"os"

	"github.com/randalmurphal/todos/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
