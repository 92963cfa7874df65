// gerrysim is the districting simulator command line tool.
package main

import (
	"os"

	"github.com/katalvlaran/gerrysim/internal/cli"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cli.Version = version
	cli.GitCommit = commit

	os.Exit(cli.Execute())
}
