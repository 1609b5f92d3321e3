package tui

import (
	"time"

	"github.com/agbru/bincross/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update from the sweep.
type ProgressMsg struct {
	N               uint64
	MinKAggregated  uint64
	Completed       uint64
	AverageProgress float64
	ETA             time.Duration
	Generation      uint64
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct {
	Generation uint64
}

// SweepResultMsg carries a successful sweep to the dashboard.
type SweepResultMsg struct {
	Result     orchestration.SweepResult
	Generation uint64
}

// ErrorMsg reports a failed sweep.
type ErrorMsg struct {
	Err        error
	Duration   time.Duration
	Generation uint64
}

// SweepCompleteMsg is sent once the sweep goroutine has returned.
type SweepCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run context ends (timeout or signal).
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
