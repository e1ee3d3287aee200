package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/spohaver/venvman/internal/cli"
)

// CLI represents the command-line interface structure
var CLI struct {
	Create cli.CreateCmd `cmd:"" default:"withargs" help:"Create or update a virtual environment"`
	List   cli.ListCmd   `cmd:"" help:"List virtual environments"`
	Remove cli.RemoveCmd `cmd:"" help:"Remove a virtual environment"`
	Init   cli.InitCmd   `cmd:"" help:"Write a .venvman.toml defaults file"`

	Verbose bool             `help:"Enable verbose output" short:"v"`
	Version kong.VersionFlag `help:"Show version information"`
}

// Version information (will be injected by GoReleaser via ldflags)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("venvman"),
		kong.Description("Manage Python virtual environments with automatic package installation"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("venvman %s (%s, built %s)", version, commit, date),
		},
	)

	// Execute the selected command
	err := ctx.Run()

	// Non-zero exit code for any failure kind, zero on success
	if err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}
