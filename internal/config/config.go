// Package config builds the application's configuration from command-line
// flags, BINCROSS_* environment variables and an optional YAML file, and
// validates the result before anything is computed.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/bincross/internal/errors"
	"github.com/agbru/bincross/internal/logging"
	"github.com/agbru/bincross/internal/ui"
)

// EnvPrefix is the prefix shared by every environment variable read by
// bincross.
const EnvPrefix = "BINCROSS_"

// Default configuration values.
const (
	DefaultMaxN       uint64 = 10_000
	DefaultWorkers           = 1
	DefaultTimeout           = time.Hour
	DefaultOutputFile        = "combinations.csv"
	DefaultPlotLimit  uint64 = 300
	DefaultPlotWidth         = 72
	DefaultPlotHeight        = 20
	DefaultTheme             = ui.ThemeDark
	DefaultLogLevel          = "warn"
	DefaultLogEvery   uint64 = 1000
	DefaultTableEdge         = 12
)

// MaxSupportedN bounds the sweep. Factorials up to this size are cached in
// full, and the cache grows quadratically in memory with n.
const MaxSupportedN uint64 = 20_000

// AppConfig is the fully resolved configuration of one run.
type AppConfig struct {
	// MaxN is the last n of the sweep; the sweep covers 1..MaxN.
	MaxN uint64
	// Workers is the number of concurrent analyzers. 1 is strictly sequential.
	Workers int
	// Backend names the factorial provider ("big", or "gmp" when built with
	// the gmp tag).
	Backend string
	// Timeout bounds the whole sweep.
	Timeout time.Duration

	// OutputFile receives the CSV rows. A ".zst" suffix compresses them.
	OutputFile string
	// PrintOnly prints rows to stdout instead of writing OutputFile.
	PrintOnly bool
	// Table renders the records as an aligned table after the sweep.
	Table bool
	// TableEdge is the number of leading and trailing digits kept when big
	// values are shown in the table.
	TableEdge int

	// Plot draws the k* chart from OutputFile after the sweep.
	Plot       bool
	PlotLimit  uint64
	PlotWidth  int
	PlotHeight int

	Quiet   bool
	Verbose bool
	Details bool
	NoColor bool
	Theme   string
	// TUI starts the interactive dashboard.
	TUI bool
	// Interactive starts the command-line explorer instead of a sweep.
	Interactive bool

	LogLevel string
	// LogEvery is the number of records between two milestone log entries.
	LogEvery uint64
	// MetricsFile, when set, receives the run's Prometheus metrics in the
	// node-exporter textfile format.
	MetricsFile string

	// Completion, when set, prints a completion script for that shell and
	// exits.
	Completion string
	// ConfigFile is the YAML file the run was configured from, if any.
	ConfigFile string
}

// Validate checks the semantic consistency of the configuration.
// availableBackends lists the factorial backends compiled into the binary.
func (c AppConfig) Validate(availableBackends []string) error {
	if c.MaxN < 1 {
		return apperrors.NewConfigError("max n must be at least 1, got %d", c.MaxN)
	}
	if c.MaxN > MaxSupportedN {
		return apperrors.NewConfigError("max n %d exceeds the supported limit of %d", c.MaxN, MaxSupportedN)
	}
	if c.Workers < 1 {
		return apperrors.NewConfigError("workers must be at least 1, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.PlotLimit < 1 {
		return apperrors.NewConfigError("plot limit must be at least 1, got %d", c.PlotLimit)
	}
	if c.PlotWidth < 10 || c.PlotHeight < 5 {
		return apperrors.NewConfigError("plot area %dx%d is too small (minimum 10x5)", c.PlotWidth, c.PlotHeight)
	}
	if c.TableEdge < 1 {
		return apperrors.NewConfigError("table edge must be at least 1, got %d", c.TableEdge)
	}
	if c.PrintOnly && c.Plot {
		return apperrors.NewConfigError("-plot reads the output file and cannot be combined with -print-only")
	}
	if !c.PrintOnly && c.OutputFile == "" && c.Completion == "" {
		return apperrors.NewConfigError("an output file is required unless -print-only is set")
	}
	if !ui.IsValidTheme(c.Theme) {
		return apperrors.NewConfigError("unrecognized theme: '%s'. Valid themes are: %s, %s, %s", c.Theme, ui.ThemeDark, ui.ThemeLight, ui.ThemeNone)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("unrecognized log level: '%s'", c.LogLevel)
	}
	for _, b := range availableBackends {
		if b == c.Backend {
			return nil
		}
	}
	return apperrors.NewConfigError("unrecognized backend: '%s'. Valid backends are: [%s]", c.Backend, strings.Join(availableBackends, ", "))
}

// ParseConfig parses args into an AppConfig and validates it.
//
// Values are resolved with the priority flags > BINCROSS_* environment >
// YAML config file > defaults. Parsing errors and the usage text go to
// errorWriter. The returned error is flag.ErrHelp when -h was requested and
// an apperrors.ConfigError for any invalid value.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableBackends []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.Uint64Var(&config.MaxN, "n", DefaultMaxN, "Largest n of the sweep; n runs from 1 to this value.")
	fs.Uint64Var(&config.MaxN, "max-n", DefaultMaxN, "Alias for -n.")
	fs.IntVar(&config.Workers, "workers", DefaultWorkers, "Number of concurrent analyzers (1 is sequential).")
	fs.IntVar(&config.Workers, "w", DefaultWorkers, "Alias for -workers.")
	fs.StringVar(&config.Backend, "backend", defaultBackend(availableBackends),
		fmt.Sprintf("Factorial backend, one of [%s].", strings.Join(availableBackends, ", ")))
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the sweep.")

	fs.StringVar(&config.OutputFile, "output", DefaultOutputFile, "CSV output path; a .zst suffix compresses it.")
	fs.StringVar(&config.OutputFile, "o", DefaultOutputFile, "Alias for -output.")
	fs.BoolVar(&config.PrintOnly, "print-only", false, "Print rows to stdout instead of writing the output file.")
	fs.BoolVar(&config.PrintOnly, "p", false, "Alias for -print-only.")
	fs.BoolVar(&config.Table, "table", false, "Render the records as an aligned table.")
	fs.IntVar(&config.TableEdge, "table-edge", DefaultTableEdge, "Digits kept at each end of big values in the table.")

	fs.BoolVar(&config.Plot, "plot", false, "Draw the k* chart from the output file after the sweep.")
	fs.Uint64Var(&config.PlotLimit, "plot-limit", DefaultPlotLimit, "Largest n drawn on the chart.")
	fs.IntVar(&config.PlotWidth, "plot-width", DefaultPlotWidth, "Chart width in terminal cells.")
	fs.IntVar(&config.PlotHeight, "plot-height", DefaultPlotHeight, "Chart height in terminal cells.")

	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode: no progress or banners.")
	fs.BoolVar(&config.Quiet, "q", false, "Alias for -quiet.")
	fs.BoolVar(&config.Verbose, "v", false, "Print every record as it is produced.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Alias for -v.")
	fs.BoolVar(&config.Details, "d", false, "Display memory, cache and system details after the sweep.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Color theme: dark, light or none.")
	fs.BoolVar(&config.TUI, "tui", false, "Run the sweep in the interactive dashboard.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Explore single values of n in an interactive prompt.")
	fs.BoolVar(&config.Interactive, "i", false, "Alias for -interactive.")

	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error or disabled.")
	fs.Uint64Var(&config.LogEvery, "log-every", DefaultLogEvery, "Records between two milestone log entries (0 disables them).")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run.")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")
	fs.StringVar(&config.ConfigFile, "config", "", "YAML configuration file.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errorWriter, "Configuration error: unexpected argument %q\n", fs.Arg(0))
		fs.Usage()
		return AppConfig{}, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	if err := resolveSources(&config, fs); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}

	config.Backend = strings.ToLower(config.Backend)
	config.LogLevel = strings.ToLower(config.LogLevel)
	config.Theme = strings.ToLower(config.Theme)
	if err := config.Validate(availableBackends); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

// resolveSources layers the config file and then the environment over the
// parsed flags. Neither source touches a flag that was set explicitly.
func resolveSources(config *AppConfig, fs *flag.FlagSet) error {
	if !isFlagSet(fs, "config") {
		if path, ok := lookupEnv("CONFIG"); ok {
			config.ConfigFile = path
		}
	}
	if config.ConfigFile != "" {
		fc, err := LoadFile(config.ConfigFile)
		if err != nil {
			return err
		}
		if err := applyFile(config, fc, fs); err != nil {
			return err
		}
	}
	return applyEnvOverrides(config, fs)
}

func defaultBackend(available []string) string {
	for _, b := range available {
		if b == "big" {
			return b
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}
