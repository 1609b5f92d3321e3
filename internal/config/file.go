package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/bincross/internal/errors"
)

// FileConfig is the YAML configuration file. Absent keys leave the
// corresponding setting untouched.
//
//	max_n: 5000
//	workers: 4
//	output: sweep.csv.zst
//	plot: true
type FileConfig struct {
	MaxN        *uint64 `yaml:"max_n"`
	Workers     *int    `yaml:"workers"`
	Backend     *string `yaml:"backend"`
	Timeout     *string `yaml:"timeout"`
	Output      *string `yaml:"output"`
	PrintOnly   *bool   `yaml:"print_only"`
	Table       *bool   `yaml:"table"`
	TableEdge   *int    `yaml:"table_edge"`
	Plot        *bool   `yaml:"plot"`
	PlotLimit   *uint64 `yaml:"plot_limit"`
	PlotWidth   *int    `yaml:"plot_width"`
	PlotHeight  *int    `yaml:"plot_height"`
	Quiet       *bool   `yaml:"quiet"`
	Verbose     *bool   `yaml:"verbose"`
	Details     *bool   `yaml:"details"`
	NoColor     *bool   `yaml:"no_color"`
	Theme       *string `yaml:"theme"`
	LogLevel    *string `yaml:"log_level"`
	LogEvery    *uint64 `yaml:"log_every"`
	MetricsFile *string `yaml:"metrics_file"`
}

// LoadFile reads and strictly decodes a YAML configuration file. Unknown
// keys are rejected so that typos do not pass silently. An empty file is
// valid and changes nothing.
func LoadFile(path string) (FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileConfig{}, apperrors.NewConfigError("cannot open config file: %v", err)
	}
	defer f.Close()
	return decodeFile(f, path)
}

func decodeFile(r io.Reader, name string) (FileConfig, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, apperrors.NewConfigError("invalid config file %s: %v", name, err)
	}
	return fc, nil
}

// applyFile copies the file's values into config for every setting whose
// flag was not given explicitly.
func applyFile(config *AppConfig, fc FileConfig, fs *flag.FlagSet) error {
	unset := func(names ...string) bool { return !isFlagSetAny(fs, names...) }

	setUint(&config.MaxN, fc.MaxN, unset("n", "max-n"))
	setInt(&config.Workers, fc.Workers, unset("workers", "w"))
	setString(&config.Backend, fc.Backend, unset("backend"))
	if fc.Timeout != nil && unset("timeout") {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return apperrors.NewConfigError("invalid timeout %q in config file", *fc.Timeout)
		}
		config.Timeout = d
	}
	setString(&config.OutputFile, fc.Output, unset("output", "o"))
	setBool(&config.PrintOnly, fc.PrintOnly, unset("print-only", "p"))
	setBool(&config.Table, fc.Table, unset("table"))
	setInt(&config.TableEdge, fc.TableEdge, unset("table-edge"))
	setBool(&config.Plot, fc.Plot, unset("plot"))
	setUint(&config.PlotLimit, fc.PlotLimit, unset("plot-limit"))
	setInt(&config.PlotWidth, fc.PlotWidth, unset("plot-width"))
	setInt(&config.PlotHeight, fc.PlotHeight, unset("plot-height"))
	setBool(&config.Quiet, fc.Quiet, unset("quiet", "q"))
	setBool(&config.Verbose, fc.Verbose, unset("v", "verbose"))
	setBool(&config.Details, fc.Details, unset("d", "details"))
	setBool(&config.NoColor, fc.NoColor, unset("no-color"))
	setString(&config.Theme, fc.Theme, unset("theme"))
	setString(&config.LogLevel, fc.LogLevel, unset("log-level"))
	setUint(&config.LogEvery, fc.LogEvery, unset("log-every"))
	setString(&config.MetricsFile, fc.MetricsFile, unset("metrics-file"))
	return nil
}

func setUint(dst *uint64, v *uint64, ok bool) {
	if v != nil && ok {
		*dst = *v
	}
}

func setInt(dst *int, v *int, ok bool) {
	if v != nil && ok {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool, ok bool) {
	if v != nil && ok {
		*dst = *v
	}
}

func setString(dst *string, v *string, ok bool) {
	if v != nil && ok {
		*dst = *v
	}
}
