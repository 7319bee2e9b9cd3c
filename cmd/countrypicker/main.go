// countrypicker is a CLI tool that lists, searches and interactively picks countries.
package main

import (
	"github.com/hightemp/countrypicker/internal/cli"
)

// Build information (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildTime = buildTime
	cli.Execute()
}
