package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"fedmap/internal/core/config"
)

const usageLine = "usage: fedmap [flags] <root-dir> <project-id>"

type cliOptions struct {
	configPath string
	format     string
	noDiagram  bool
	watch      bool
	history    bool
	runs       bool
	summary    bool
	verbose    bool
	version    bool
	args       []string
}

func parseOptions(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("fedmap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", config.DefaultConfigPath, "Path to config file")
	fs.StringVar(&opts.format, "format", "", "Report format: text or json (overrides config)")
	fs.BoolVar(&opts.noDiagram, "no-diagram", false, "Do not print the PlantUML diagram")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run the analysis when source files change")
	fs.BoolVar(&opts.history, "history", false, "Record the run in the local history database")
	fs.BoolVar(&opts.runs, "runs", false, "Print recorded runs for the project and exit (TSV, or JSON with -format json)")
	fs.BoolVar(&opts.summary, "summary", false, "Print a run summary to stderr")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.args = fs.Args()
	return opts, nil
}

// applyOptions folds command-line overrides into cfg.
func applyOptions(opts cliOptions, cfg *config.Config) {
	if opts.format != "" {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(opts.format))
	}
	if opts.noDiagram {
		disabled := false
		cfg.Output.Diagram = &disabled
	}
	if opts.history || opts.runs {
		cfg.History.Enabled = true
	}
}
