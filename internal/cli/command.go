package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/hsrsize/internal/config"
	"github.com/idelchi/hsrsize/internal/dirstat"
	"github.com/idelchi/hsrsize/internal/store"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// options holds the parsed flags.
type options struct {
	Config      string
	EnvFile     string
	Destination string
	Driver      string
	Output      string
	TopN        int
	Parquet     string
	Compression string
	LogLevel    string
	LogJSON     bool
	Debug       bool
	Version     bool
}

//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"table", "json", "none"}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "hsrsize [flags] [path]",
		Short: "Report how disk space in a directory tree splits by extension and directory",
		Long: heredoc.Doc(`
			hsrsize scans a directory tree and reports each extension's and each
			directory's share of the total size.

			The per-file inventory is written to the table HsrSizeAnalysis, the
			distributions to HsrSizeDist (by extension) and HsrDirDist (by directory).
			Existing tables of the same name are replaced.

			The path defaults to $GAME_DIR, which may also be set in a .env file.
			A destination ending in .duckdb is written with DuckDB, anything else
			with SQLite.
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Version {
				fmt.Fprintln(cmd.OutOrStdout(), c.version)

				return nil
			}

			set, err := resolve(cmd.Flags(), opts, args)
			if err != nil {
				return err
			}

			return logic(cmd.Context(), set, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.StringVarP(&opts.Destination, "db", "d", store.DefaultDestination, "Destination database file")
	flags.StringVar(&opts.Driver, "driver", "", "Database driver: sqlite or duckdb (default: detect from --db)")
	flags.StringVarP(&opts.Config, "config", "c", "", "YAML configuration file")
	flags.StringVar(&opts.EnvFile, "env-file", config.DefaultEnvFile, "Dotenv file to load if present")
	flags.StringVarP(&opts.Output, "output", "o", "table", "Report format: table, json or none")
	flags.IntVarP(&opts.TopN, "top", "t", dirstat.DefaultTopN, "Number of rows per report section")
	flags.StringVar(&opts.Parquet, "parquet", "", "Also write the inventory to this Parquet file")
	flags.StringVar(&opts.Compression, "compression", "zstd", "Parquet compression: zstd, snappy, lz4, gzip or none")
	flags.StringVar(&opts.LogLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	flags.BoolVar(&opts.LogJSON, "log-json", false, "Emit logs as JSON")
	flags.BoolVar(&opts.Debug, "debug", false, "Enable debug output")
	flags.BoolVarP(&opts.Version, "version", "v", false, "Show version and exit")

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute(ctx context.Context) error {
	return c.Command().ExecuteContext(ctx)
}

// resolve merges flags over the config file, environment and defaults.
func resolve(flags *pflag.FlagSet, opts options, args []string) (settings, error) {
	if err := config.LoadEnv(opts.EnvFile); err != nil {
		return settings{}, err
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return settings{}, err
	}

	set := settings{
		Root:        cfg.Root,
		Destination: cfg.Destination,
		Driver:      cfg.Driver,
		Parquet:     cfg.Export.Parquet,
		Compression: cfg.Export.Compression,
		LogLevel:    cfg.Log.Level,
		LogJSON:     cfg.Log.JSON,
		Output:      opts.Output,
		TopN:        opts.TopN,
	}

	if len(args) > 0 {
		set.Root = args[0]
	}

	override := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}

	override("db", &set.Destination, opts.Destination)
	override("driver", &set.Driver, opts.Driver)
	override("parquet", &set.Parquet, opts.Parquet)
	override("compression", &set.Compression, opts.Compression)
	override("log-level", &set.LogLevel, opts.LogLevel)

	if flags.Changed("log-json") {
		set.LogJSON = opts.LogJSON
	}

	if opts.Debug {
		set.LogLevel = "debug"
	}

	if !slices.Contains(allowedOutputs, set.Output) {
		return settings{}, fmt.Errorf("invalid output format %q: must be one of %v", set.Output, allowedOutputs)
	}

	if set.TopN <= 0 {
		return settings{}, errors.New("top must be positive")
	}

	if set.Root == "" {
		return settings{}, fmt.Errorf("%w: no path given and $%s is not set", dirstat.ErrInvalidPath, config.EnvRoot)
	}

	return set, nil
}
