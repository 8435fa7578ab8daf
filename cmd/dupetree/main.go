package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	dupetree "github.com/dupetree/dupetree/pkg"
)

const version = "0.1.0"

func main() {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "a duplicate file finder"
	app.Version = version
	app.ArgsUsage = "DIRECTORY [DIRECTORY...]"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "minimum, m",
			Usage: "Minimum file size to consider (e.g. 4K, 1M); 0 considers everything",
		},
		cli.StringSliceFlag{
			Name:  "ignore, i",
			Usage: "Directory subtree to skip; may be given multiple times",
		},
		cli.StringFlag{
			Name:  "fmt, f",
			Usage: "Output format: standard, json, fdupes or off",
		},
		cli.StringFlag{
			Name:  "blocksize, b",
			Usage: "Display blocksize: B, K, M or G",
		},
		cli.StringFlag{
			Name:  "verbosity",
			Usage: "Output verbosity: quiet, duplicates or all",
		},
		cli.StringFlag{
			Name:  "output, o",
			Usage: "File to save the report to",
		},
		cli.BoolFlag{
			Name:  "progress",
			Usage: "Show a live progress bar on stderr",
		},
		cli.IntFlag{
			Name:  "workers, w",
			Usage: "Number of traversal workers (0 = auto)",
		},
		cli.StringSliceFlag{
			Name:  "config, c",
			Usage: "Transient config override as key:value; may be given multiple times",
		},
		cli.StringFlag{
			Name:  "debug-flags",
			Usage: "Comma-separated debug areas (scan, hash, render)",
		},
	}
	app.Action = runDedupe

	configureLogging(app)

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func runDedupe(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no directories given; see '%s --help'", c.App.Name)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ApplyOverrides(c.StringSlice("config")); err != nil {
		return err
	}

	scanConfig := cfg.GetScanConfig()
	outputConfig := cfg.GetOutputConfig()
	performanceConfig := cfg.GetPerformanceConfig()

	// Command-line flags win over the config file.
	minimum := scanConfig.MinSize
	if c.IsSet("minimum") {
		minimum = c.String("minimum")
	}
	minSize, err := dupetree.ParseHumanSize(minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum size: %w", err)
	}

	workers := scanConfig.Workers
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}
	if err := dupetree.ValidateScanWorkers(workers); err != nil {
		return err
	}

	format := outputConfig.Format
	if c.IsSet("fmt") {
		format = c.String("fmt")
	}
	if err := dupetree.ValidateOutputFormat(format); err != nil {
		return err
	}
	format = strings.ToLower(format)

	blocksize := outputConfig.Blocksize
	if c.IsSet("blocksize") {
		blocksize = c.String("blocksize")
	}
	if err := dupetree.ValidateBlocksize(blocksize); err != nil {
		return err
	}

	verbosity := outputConfig.Verbosity
	if c.IsSet("verbosity") {
		verbosity = c.String("verbosity")
	}
	if err := dupetree.ValidateVerbosity(verbosity); err != nil {
		return err
	}
	verbosity = strings.ToLower(verbosity)

	dupetree.SetReadahead(performanceConfig.Fadvise)
	dupetree.SetDebugFlags(c.String("debug-flags"))
	if logrus.GetLevel() >= logrus.DebugLevel {
		dupetree.SetVerboseLevel(3)
	}

	stats := &dupetree.Stats{}
	var stopProgress func()
	if c.Bool("progress") {
		stopProgress = startProgress(stats)
	}

	records, scanErrs := dupetree.Dedupe(c.Args(), dupetree.ScanOptions{
		MinSize:    minSize,
		IgnoreDirs: c.StringSlice("ignore"),
		Workers:    workers,
		Stats:      stats,
	})

	if stopProgress != nil {
		stopProgress()
	}

	for _, scanErr := range scanErrs {
		logrus.Warningln("Skipped:", scanErr)
	}

	results := dupetree.CollectResults(records)
	segments, err := dupetree.RenderReport(results, dupetree.RenderOptions{
		Format:    format,
		Blocksize: blocksize,
		Verbosity: verbosity,
	})
	if err != nil {
		return err
	}

	for _, segment := range segments {
		if _, err := os.Stdout.Write(segment); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if target := c.String("output"); target != "" && format != dupetree.FormatOff {
		ok, err := confirmOverwrite(target, os.Stdin, os.Stderr)
		if err != nil {
			return err
		}
		if !ok {
			logrus.Warningln("Not overwriting", target)
			return nil
		}
		if err := dupetree.WriteReport(target, segments); err != nil {
			return err
		}
	}

	return nil
}

// loadConfig opens the user-level config, creating it on first run.
func loadConfig() (*dupetree.Config, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config directory: %w", err)
	}
	return dupetree.LoadConfig(filepath.Join(base, "dupetree"))
}

// confirmOverwrite asks before clobbering an existing report file.
// Missing targets need no confirmation.
func confirmOverwrite(path string, in io.Reader, out io.Writer) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return true, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to stat report file %s: %w", path, err)
	}

	fmt.Fprintf(out, "%s exists. Overwrite? (y/N): ", path)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
