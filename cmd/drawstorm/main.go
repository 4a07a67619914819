// Package main is the entry point for the drawstorm command.
//
// # Basic Usage
//
// Open a scene in the terminal:
//
//	drawstorm run --scene board.drawstorm
//
// List actions and whether they are enabled for a scene:
//
//	drawstorm actions --scene board.drawstorm
//
// Run one action headlessly and print the resulting state:
//
//	drawstorm exec gridMode --scene board.drawstorm
//
// Settings come from --config (TOML or YAML) and DRAWSTORM_* environment
// variables.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/drawstorm/internal/app"
	"github.com/dshills/drawstorm/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK            = 0
	exitFailure       = 1
	exitUnknownAction = 2
	exitBadConfig     = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := buildRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	var perr *config.ParseError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, app.ErrUnknownAction):
		return exitUnknownAction
	case errors.Is(err, config.ErrValidationFailed),
		errors.Is(err, config.ErrFileNotFound),
		errors.Is(err, config.ErrUnknownFormat),
		errors.As(err, &perr):
		return exitBadConfig
	default:
		return exitFailure
	}
}

// buildRootCmd creates the root command with all subcommands attached.
func buildRootCmd() *cobra.Command {
	var opts globalOptions

	root := &cobra.Command{
		Use:           "drawstorm",
		Short:         "Keyboard-driven drawing canvas",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to configuration file")
	root.PersistentFlags().StringVarP(&opts.scenePath, "scene", "s", "", "scene file to load")

	root.AddCommand(
		buildRunCmd(&opts),
		buildActionsCmd(&opts),
		buildExecCmd(&opts),
	)
	return root
}
