// Package main is the entrypoint for timepald.
// timepald serves the time facade over HTTP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aelexs/timepal/internal/server"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return server.Run(ctx, server.Params{
		Name:    "timepald",
		Version: version,
	}, nil)
}
