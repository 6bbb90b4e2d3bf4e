package main

import (
	"github.com/lambdaquery/lq/cmd/lqc/cmd"
)

// Version information injected at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	cmd.Version = version
	cmd.Commit = commit
	cmd.Execute()
}
