package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/neurotica01/crackify/internal/pipeline"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "crackify",
		Usage:     "Rewrite a repository's history with a new author and natural-looking commit dates",
		Version:   "1.0.0",
		ArgsUsage: "<source-repo> <output-dir>",
		Commands: []*cli.Command{
			RewriteCmd(),
		},
		Flags:  rewriteFlags(),
		Action: legacyAction,
	}
}

// legacyAction keeps the original two-positional invocation working:
// crackify <source-repo> <output-dir> --name ... --email ...
func legacyAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}
	return rewriteAction(c)
}

// Exit statuses, one per failure kind.
const (
	exitUsage       = 1
	exitConfig      = 2
	exitAcquisition = 3
	exitRewrite     = 4
	exitPublish     = 5
)

// exitStatus maps a pipeline error to its exit status.
func exitStatus(err error) int {
	var (
		cfgErr     *pipeline.ConfigurationError
		acqErr     *pipeline.AcquisitionError
		rewriteErr *pipeline.RewriteError
		pubErr     *pipeline.PublishError
	)
	switch {
	case errors.As(err, &cfgErr):
		return exitConfig
	case errors.As(err, &acqErr):
		return exitAcquisition
	case errors.As(err, &rewriteErr):
		return exitRewrite
	case errors.As(err, &pubErr):
		return exitPublish
	default:
		return exitUsage
	}
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitStatus(err))
	}
}
