package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var logFlags = []cli.Flag{
	cli.BoolFlag{
		Name:   "debug",
		Usage:  "debug mode",
		EnvVar: "DUPETREE_DEBUG",
	},
	cli.StringFlag{
		Name:   "log-level, l",
		Usage:  "Log level (options: debug, info, warn, error, fatal, panic)",
		EnvVar: "DUPETREE_LOG_LEVEL",
	},
}

// configureLogging appends the logging flags to the app and chains a
// Before hook that applies them ahead of any existing hook.
func configureLogging(app *cli.App) {
	app.Flags = append(app.Flags, logFlags...)

	appBefore := app.Before
	app.Before = func(c *cli.Context) error {
		logrus.SetOutput(os.Stderr)

		if c.IsSet("log-level") || c.IsSet("l") {
			level, err := logrus.ParseLevel(c.String("log-level"))
			if err != nil {
				return fmt.Errorf("failed to parse log level: %w", err)
			}
			logrus.SetLevel(level)
		} else if c.Bool("debug") {
			logrus.SetLevel(logrus.DebugLevel)
		}

		if appBefore != nil {
			return appBefore(c)
		}
		return nil
	}
}
