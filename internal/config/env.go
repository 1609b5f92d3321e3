package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/bincross/internal/errors"
)

// lookupEnv reads EnvPrefix+key. Empty values count as unset.
func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// isFlagSet reports whether a flag was given explicitly on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny reports whether any alias of a flag was given explicitly.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// parseBool accepts true/1/yes and false/0/no, case-insensitively.
func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, strconv.ErrSyntax
}

// envOverride maps one environment variable (without EnvPrefix) to the
// flag aliases it stands for.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

func uintSetter(dst func(*AppConfig) *uint64) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return err
		}
		*dst(c) = parsed
		return nil
	}
}

func intSetter(dst func(*AppConfig) *int) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst(c) = parsed
		return nil
	}
}

func boolSetter(dst func(*AppConfig) *bool) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		parsed, err := parseBool(v)
		if err != nil {
			return err
		}
		*dst(c) = parsed
		return nil
	}
}

func stringSetter(dst func(*AppConfig) *string) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		*dst(c) = v
		return nil
	}
}

var envOverrides = []envOverride{
	{"MAX_N", []string{"n", "max-n"}, uintSetter(func(c *AppConfig) *uint64 { return &c.MaxN })},
	{"WORKERS", []string{"workers", "w"}, intSetter(func(c *AppConfig) *int { return &c.Workers })},
	{"BACKEND", []string{"backend"}, stringSetter(func(c *AppConfig) *string { return &c.Backend })},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) error {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Timeout = parsed
		return nil
	}},

	{"OUTPUT", []string{"output", "o"}, stringSetter(func(c *AppConfig) *string { return &c.OutputFile })},
	{"PRINT_ONLY", []string{"print-only", "p"}, boolSetter(func(c *AppConfig) *bool { return &c.PrintOnly })},
	{"TABLE", []string{"table"}, boolSetter(func(c *AppConfig) *bool { return &c.Table })},
	{"TABLE_EDGE", []string{"table-edge"}, intSetter(func(c *AppConfig) *int { return &c.TableEdge })},

	{"PLOT", []string{"plot"}, boolSetter(func(c *AppConfig) *bool { return &c.Plot })},
	{"PLOT_LIMIT", []string{"plot-limit"}, uintSetter(func(c *AppConfig) *uint64 { return &c.PlotLimit })},
	{"PLOT_WIDTH", []string{"plot-width"}, intSetter(func(c *AppConfig) *int { return &c.PlotWidth })},
	{"PLOT_HEIGHT", []string{"plot-height"}, intSetter(func(c *AppConfig) *int { return &c.PlotHeight })},

	{"QUIET", []string{"quiet", "q"}, boolSetter(func(c *AppConfig) *bool { return &c.Quiet })},
	{"VERBOSE", []string{"v", "verbose"}, boolSetter(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"d", "details"}, boolSetter(func(c *AppConfig) *bool { return &c.Details })},
	{"NO_COLOR", []string{"no-color"}, boolSetter(func(c *AppConfig) *bool { return &c.NoColor })},
	{"THEME", []string{"theme"}, stringSetter(func(c *AppConfig) *string { return &c.Theme })},
	{"TUI", []string{"tui"}, boolSetter(func(c *AppConfig) *bool { return &c.TUI })},
	{"INTERACTIVE", []string{"interactive", "i"}, boolSetter(func(c *AppConfig) *bool { return &c.Interactive })},

	{"LOG_LEVEL", []string{"log-level"}, stringSetter(func(c *AppConfig) *string { return &c.LogLevel })},
	{"LOG_EVERY", []string{"log-every"}, uintSetter(func(c *AppConfig) *uint64 { return &c.LogEvery })},
	{"METRICS_FILE", []string{"metrics-file"}, stringSetter(func(c *AppConfig) *string { return &c.MetricsFile })},
}

// applyEnvOverrides applies BINCROSS_* variables to every setting whose
// flag was not given explicitly. A malformed value is a ConfigError naming
// the variable.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		v, ok := lookupEnv(o.envKey)
		if !ok {
			continue
		}
		if err := o.apply(config, v); err != nil {
			return apperrors.NewConfigError("invalid value %q for %s%s", v, EnvPrefix, o.envKey)
		}
	}
	return nil
}
