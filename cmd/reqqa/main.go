package main

import (
	"fmt"
	"os"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/cmd/reqqa/cmd"
)

// Version information - set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersion(version, commit, date)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
