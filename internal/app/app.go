package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agbru/bincross/internal/cli"
	"github.com/agbru/bincross/internal/combinatorics"
	"github.com/agbru/bincross/internal/config"
	apperrors "github.com/agbru/bincross/internal/errors"
	"github.com/agbru/bincross/internal/logging"
	"github.com/agbru/bincross/internal/orchestration"
	"github.com/agbru/bincross/internal/tui"
	"github.com/agbru/bincross/internal/ui"
)

// AnalyzerFactory builds the analyzer for a factorial backend name.
type AnalyzerFactory func(backend string) (*combinatorics.Analyzer, error)

// Application represents the bincross application instance.
type Application struct {
	Config    config.AppConfig
	Backends  []string
	Analyzers AnalyzerFactory
	ErrWriter io.Writer
	In        io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithAnalyzerFactory replaces the analyzer constructor.
func WithAnalyzerFactory(f AnalyzerFactory) AppOption {
	return func(a *Application) { a.Analyzers = f }
}

// WithInput sets the reader used by the interactive explorer.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New creates an Application by parsing command-line arguments. args[0] is
// the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{
		Backends:  combinatorics.Backends(),
		Analyzers: orchestration.NewAnalyzerForBackend,
		ErrWriter: errWriter,
		In:        os.Stdin,
	}
	for _, opt := range opts {
		opt(app)
	}

	programName := "bincross"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Backends)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application in the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.Theme, a.Config.NoColor)
	logger := a.newLogger()
	runID := uuid.NewString()
	logger.Debug("configuration resolved",
		logging.String("run_id", runID),
		logging.Uint64("max_n", a.Config.MaxN),
		logging.Int("workers", a.Config.Workers),
		logging.String("backend", a.Config.Backend),
		logging.String("config_file", a.Config.ConfigFile))

	switch {
	case a.Config.Interactive:
		return a.runInteractive(out)
	case a.Config.TUI:
		return a.runTUI(ctx, logger, runID)
	default:
		return a.runSweep(ctx, out, logger, runID)
	}
}

// newLogger builds the console logger of the run. Log entries go to the
// error writer so that standard output only carries results.
func (a *Application) newLogger() *logging.ZerologAdapter {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)
	noColor := a.Config.NoColor || ui.NoColorRequested()
	return logging.NewConsoleLogger(a.ErrWriter, "bincross", level, noColor)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Backends); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runInteractive starts the explorer prompt.
func (a *Application) runInteractive(out io.Writer) int {
	analyzer, code := a.analyzer()
	if analyzer == nil {
		return code
	}
	repl := cli.NewREPL(analyzer, cli.REPLConfig{
		Backend: a.Config.Backend,
		Timeout: a.Config.Timeout,
		MaxN:    config.MaxSupportedN,
		Edge:    a.Config.TableEdge,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the sweep dashboard. Logs are discarded while the
// dashboard owns the terminal.
func (a *Application) runTUI(ctx context.Context, logger logging.Logger, runID string) int {
	ctx, stop := a.lifecycle(ctx)
	defer stop()

	analyzer, code := a.analyzer()
	if analyzer == nil {
		return code
	}
	sweepMetrics := a.newSweepMetrics()
	code = tui.Run(ctx, analyzer, a.Config, tui.Options{
		Version: Version,
		RunID:   runID,
		Logger:  logging.NewNopLogger(),
		Metrics: sweepMetrics,
	})
	a.writeMetrics(sweepMetrics, logger)
	return code
}

// analyzer builds the analyzer of the configured backend. On failure it
// reports the error and returns a nil analyzer with the exit code.
func (a *Application) analyzer() (*combinatorics.Analyzer, int) {
	analyzer, err := a.Analyzers(a.Config.Backend)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return nil, apperrors.ExitErrorConfig
	}
	return analyzer, apperrors.ExitSuccess
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
