package tui

import (
	"context"
	"io"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bincross/internal/config"
	apperrors "github.com/agbru/bincross/internal/errors"
	"github.com/agbru/bincross/internal/logging"
	"github.com/agbru/bincross/internal/metrics"
	"github.com/agbru/bincross/internal/orchestration"
	"github.com/agbru/bincross/internal/report"
	"github.com/agbru/bincross/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	headerHeight             = 1
	footerHeight             = 1
	minBodyHeight            = 12
	RecordsPanelWidthPercent = 40
	MetricsPanelHeight       = 8
	tickInterval             = 500 * time.Millisecond
)

// Options carries the run-scoped collaborators of a dashboard session.
type Options struct {
	Version string
	RunID   string
	Logger  logging.Logger
	Metrics *metrics.SweepMetrics
}

// ExecutionState holds the sweep lifecycle of a session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds the terminal size and derives panel sizes from it.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) recordsWidth() int {
	return l.width * RecordsPanelWidthPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.recordsWidth()
}

func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - MetricsPanelHeight
}

// Model is the root bubbletea model of the sweep dashboard.
type Model struct {
	header  HeaderModel
	records RecordsModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel
	keymap  KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	analyzer  orchestration.RecordAnalyzer
	config    config.AppConfig
	opts      Options
	ref       *programRef
	paused    bool
}

// NewModel creates a dashboard that sweeps n = 1..cfg.MaxN with analyzer.
func NewModel(parentCtx context.Context, analyzer orchestration.RecordAnalyzer, cfg config.AppConfig, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	keymap := DefaultKeyMap()

	m := Model{
		header:  NewHeaderModel(opts.Version, cfg.MaxN),
		records: NewRecordsModel(),
		metrics: NewMetricsModel(cfg.MaxN),
		chart:   NewChartModel(),
		footer:  NewFooterModel(keymap.ShortHelp()),
		keymap:  keymap,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		analyzer:  analyzer,
		config:    cfg,
		opts:      opts,
		ref:       &programRef{},
	}
	m.records.AddInfo(m.startMessage())
	return m
}

func (m Model) startMessage() string {
	dest := m.config.OutputFile
	if m.config.PrintOnly || dest == "" {
		dest = "no file"
	}
	return "sweep started, " + strconv.Itoa(m.config.Workers) + " worker(s), writing to " + dest
}

// Init starts the sweep and the sampling ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startSweepCmd(m.ref, m.ctx, m.analyzer, m.config, m.opts, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles every incoming message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.chart.AddPoint(msg.N, msg.MinKAggregated)
		m.metrics.UpdateProgress(msg)
		if !m.paused {
			m.records.AddProgress(msg)
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case SweepResultMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.records.AddResult(msg.Result)
		m.metrics.SetDone(uint64(len(msg.Result.Records)))
		return m, nil

	case ErrorMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.records.AddError(msg)
		m.footer.SetError(true)
		m.markDone()
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case SweepCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.exitCode = msg.ExitCode
		m.markDone()
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if !m.done {
			m.exitCode = apperrors.HandleCalculationError(msg.Err, m.header.Elapsed(), io.Discard, nil)
			m.markDone()
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) markDone() {
	m.done = true
	m.header.SetDone()
	m.footer.SetDone(true)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)

		m.header.Reset()
		m.records.Reset()
		m.chart.Reset()
		m.metrics = NewMetricsModel(m.config.MaxN)
		m.layoutPanels()
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess
		m.records.AddInfo("sweep restarted")

		return m, tea.Batch(
			tickCmd(),
			startSweepCmd(m.ref, m.ctx, m.analyzer, m.config, m.opts, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up):
		m.records.ScrollUp(1)
	case key.Matches(msg, m.keymap.Down):
		m.records.ScrollDown(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.records.ScrollUp(m.records.PageSize())
	case key.Matches(msg, m.keymap.PageDown):
		m.records.ScrollDown(m.records.PageSize())
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	right := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	left := m.records.renderToHeight(lipgloss.Height(right))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.records.SetSize(m.recordsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), MetricsPanelHeight)
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// ExitCode returns the exit code of the last sweep.
func (m Model) ExitCode() int { return m.exitCode }

// Run starts the dashboard in the alternate screen and returns the exit
// code of the sweep.
func Run(ctx context.Context, analyzer orchestration.RecordAnalyzer, cfg config.AppConfig, opts Options) int {
	initTUIStyles()

	model := NewModel(ctx, analyzer, cfg, opts)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		model.opts.Logger.Error("dashboard failed", err)
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startSweepCmd runs one sweep, streaming its records to the output file
// unless print-only mode is set.
func startSweepCmd(ref sender, ctx context.Context, analyzer orchestration.RecordAnalyzer, cfg config.AppConfig, opts Options, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUISweepPresenter{ref: ref, generation: gen}

		sweepOpts := orchestration.SweepOptions{
			MaxN:     cfg.MaxN,
			Workers:  cfg.Workers,
			LogEvery: cfg.LogEvery,
			RunID:    opts.RunID,
			Logger:   opts.Logger,
			Metrics:  opts.Metrics,
		}
		var file *report.FileSink
		if !cfg.PrintOnly && cfg.OutputFile != "" {
			f, err := report.CreateFile(cfg.OutputFile)
			if err != nil {
				return SweepCompleteMsg{ExitCode: presenter.HandleError(err, 0, io.Discard), Generation: gen}
			}
			file = f
			sweepOpts.Sink = f
		}

		result := orchestration.ExecuteSweep(ctx, analyzer, sweepOpts, reporter, io.Discard)
		if file != nil {
			if err := file.Close(); err != nil && result.Err == nil {
				result.Err = err
			}
		}
		presOpts := orchestration.PresentationOptions{MaxN: cfg.MaxN, Workers: cfg.Workers}
		code := orchestration.AnalyzeSweepResult(result, presOpts, presenter, presenter, io.Discard)
		return SweepCompleteMsg{ExitCode: code, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd reports the end of ctx.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
