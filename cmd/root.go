package cmd

import (
	"os"

	"github.com/urfave/cli/v2"
)

// verbose tracks the global --verbose flag for use by main.
var verbose bool

// Execute runs the mdplus CLI. It returns the verbose flag value and any error.
func Execute() (bool, error) {
	app := &cli.App{
		Name:    "mdplus",
		Usage:   "AI-assisted document rewriting with interactive review",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable verbose output",
			},
		},
		Before: func(c *cli.Context) error {
			verbose = c.Bool("verbose")
			return nil
		},
		Commands: []*cli.Command{
			initCmd(),
			rewriteCmd(),
			reviewCmd(),
			diffCmd(),
		},
	}

	err := app.Run(os.Args)
	return verbose, err
}
