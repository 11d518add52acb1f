/*
Copyright © 2025 yuhao-w

Commitgen - AI-powered conventional commit message generator
*/
package main

import (
	"os"

	"github.com/yuhao-w/commitgen/internal/cli"
)

// Version information (injected at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, GitCommit, BuildTime)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
