// Package commands implements the CLI commands for the pack bundler.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pack/internal/app"
	"go.trai.ch/pack/internal/build"
	"go.trai.ch/pack/internal/core/ports"
)

// configurableLogger is implemented by loggers whose output mode can be
// switched from the command line.
type configurableLogger interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// CLI represents the command line interface for pack.
type CLI struct {
	app       *app.App
	logger    ports.Logger
	telemetry ports.Telemetry
	rootCmd   *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App, log ports.Logger, telemetry ports.Telemetry) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pack",
		Short:         "Bundle a JavaScript project into a single script",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output")
	rootCmd.PersistentFlags().Bool("json", false, "Log as JSON lines")

	c := &CLI{
		app:       a,
		logger:    log,
		telemetry: telemetry,
		rootCmd:   rootCmd,
	}

	rootCmd.PersistentPreRunE = c.configureLogger

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) configureLogger(cmd *cobra.Command, _ []string) error {
	l, ok := c.logger.(configurableLogger)
	if !ok {
		return nil
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	l.SetVerbose(verbose)
	l.SetJSON(jsonOut)
	return nil
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}
