package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	apperrors "github.com/leylaiskandarli/average-squares/internal/errors"
)

var Version = "dev"

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(normalizeArgs(os.Args)); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "squares",
		Usage:     "Calculate the weighted average of squares of a sequence of numbers",
		UsageText: "squares [--weights W]... N [N...] [--weights W [W...]]\n   squares file NUMBERS_FILE [--weights WEIGHTS_FILE]\n   squares serve",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (.yaml or .toml)",
				EnvVars: []string{"SQUARES_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "record",
				Usage: "Record the calculation in the configured history and publish an event",
			},
			&cli.StringSliceFlag{
				Name:    "weights",
				Aliases: []string{"w"},
				Usage:   "Weights matching the numbers; repeat the flag or quote several (e.g. -w \"1 0.5\")",
			},
			&cli.StringFlag{
				Name:  "weights-file",
				Usage: "Read weights from the first line of a file",
			},
		},
		Action: func(c *cli.Context) error {
			numbers, trailing, err := splitPositional(c.Args().Slice())
			if err != nil {
				return err
			}
			opts := Options{
				Numbers:     numbers,
				WeightsFile: c.String("weights-file"),
				Record:      c.Bool("record"),
			}
			if c.IsSet("weights") {
				opts.Weights = c.StringSlice("weights")
			}
			if trailing != nil {
				opts.Weights = append(opts.Weights, trailing...)
			}
			return runCalculation(c, opts)
		},
		Commands: []*cli.Command{
			{
				Name:      "file",
				Usage:     "Read numbers (and optionally weights) from the first line of files",
				ArgsUsage: "NUMBERS_FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "weights",
						Aliases: []string{"w"},
						Usage:   "File whose first line holds the weights",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return apperrors.NewArgumentError("numbers", "exactly one numbers file is required")
					}
					return runCalculation(c, Options{
						NumbersFile: c.Args().First(),
						WeightsFile: c.String("weights"),
						Record:      c.Bool("record"),
					})
				},
				OnUsageError: usageError,
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP API and metrics servers",
				Action: runServe,
			},
		},
		OnUsageError: usageError,
	}
}

func usageError(_ *cli.Context, err error, _ bool) error {
	return apperrors.NewArgumentError("flags", err.Error())
}
