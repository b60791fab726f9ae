// Package main is the entrypoint for the timepal command line.
package main

import (
	"os"

	"github.com/aelexs/timepal/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
