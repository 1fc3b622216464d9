// Package main is the entry point for the zncdeploy CLI.
//
// zncdeploy provisions a single Google Cloud VM running the ZNC IRC
// bouncer: the instance itself, a firewall rule for client connections,
// an optional reserved external address and a first-boot script that
// installs and supervises ZNC as a systemd service.
//
// For detailed usage information, run:
//
//	zncdeploy --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/zncdeploy/cmd/zncdeploy/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
