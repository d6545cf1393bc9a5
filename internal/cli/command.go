package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/JichouP/languatage/internal/languatage"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

func help() {
	//nolint:forbidigo // Help output to console
	fmt.Println(heredoc.Doc(`
		languatage reports the percentage of languages used in a directory.

		Usage:

			languatage [flags] [path]

		Positional Arguments:
		  path                   Directory to analyze. Defaults to current directory if not specified.

		Files are classified by extension against a configurable language table.
		The built-in table can be overridden with a .languatage.yaml file in the
		current directory or $HOME, or an explicit --config path.

		Flags:
	`))
	pflag.PrintDefaults()
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var (
		options    languatage.Options
		configPath string
		minSizeStr string
	)

	allowedOutputs := []string{"table", "json"}

	pflag.StringVarP(&configPath, "config", "c", "", "Path to a language table config file (YAML)")
	pflag.StringVarP(&options.Output, "output", "o", "table", "Output format: json or table")
	pflag.StringSliceVarP(
		&options.Ignores,
		"ignore",
		"i",
		[]string{},
		"Directory names appended to the common ignore list (e.g., vendor,dist)",
	)
	pflag.StringVar(&minSizeStr, "min-size", "0B", "Minimum file size (e.g., 1KB)")
	pflag.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	pflag.BoolVarP(&options.Version, "version", "v", false, "Show version and exit")

	pflag.CommandLine.SortFlags = false
	pflag.Usage = help
	pflag.Parse()

	if options.Version {
		//nolint:forbidigo // Version output to console
		fmt.Println(c.version)

		return nil
	}

	if !slices.Contains(allowedOutputs, options.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
	}

	for _, name := range options.Ignores {
		if name == "" {
			return errors.New("ignore names cannot be empty")
		}
	}

	if pflag.NArg() == 0 {
		options.Path = "."
	} else {
		options.Path = pflag.Args()[0]
	}

	// Parse minSize string to bytes
	if minSizeStr != "" {
		size, err := humanize.ParseBytes(minSizeStr)
		if err != nil {
			return fmt.Errorf("invalid min-size: %w", err)
		}

		options.MinSize = int64(size) //nolint:gosec // Size conversion from humanize is safe
	}

	return logic(configPath, options)
}
