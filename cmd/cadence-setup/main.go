package main

import (
	"context"
	"os"

	"github.com/mmlt/cadence-setup/pkg/cli"
)

// Version as set during build.
var Version = "dev"

func main() {
	os.Exit(cli.Run(context.Background(), Version, os.Args[1:], os.Stdout, os.Stderr))
}
