package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bincross/internal/combinatorics"
	apperrors "github.com/agbru/bincross/internal/errors"
	"github.com/agbru/bincross/internal/logging"
	"github.com/agbru/bincross/internal/metrics"
	"github.com/agbru/bincross/internal/progress"
	"github.com/agbru/bincross/internal/report"
)

// ProgressBufferMultiplier sizes the progress channel per worker so that
// workers rarely block on a slow display.
const ProgressBufferMultiplier = 16

const tracerName = "github.com/agbru/bincross/internal/orchestration"

// SweepOptions configures ExecuteSweep.
type SweepOptions struct {
	// MaxN is the inclusive upper bound of the sweep (>= 1).
	MaxN uint64
	// Workers is the number of concurrent workers. 1 runs the reference
	// sequential sweep.
	Workers int
	// LogEvery logs a milestone every LogEvery completed records (0 disables).
	LogEvery uint64
	// RunID tags log entries and spans.
	RunID string
	// Sink, when set, receives every record in increasing n order as soon as
	// all smaller n are complete.
	Sink report.Sink
	// Logger receives milestones and failures. Defaults to a no-op logger.
	Logger logging.Logger
	// Metrics, when set, records Prometheus sweep metrics.
	Metrics *metrics.SweepMetrics
}

// ExecuteSweep analyzes every n in [1, opts.MaxN] and returns the records
// ordered by n.
//
// With one worker the sweep is strictly sequential. With more, the
// analyzer is warmed up to MaxN first, then worker w handles n = w+1,
// w+1+W, ... and completed records are re-sequenced before reaching the
// sink. The first error cancels the remaining work and is returned in
// SweepResult.Err, together with the records completed before it.
func ExecuteSweep(ctx context.Context, analyzer RecordAnalyzer, opts SweepOptions, reporter ProgressReporter, out io.Writer) SweepResult {
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	if opts.MaxN < 1 {
		return SweepResult{RunID: opts.RunID, Err: apperrors.DomainError{Field: "max_n", Value: opts.MaxN, Reason: "must be >= 1"}}
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if uint64(workers) > opts.MaxN {
		workers = int(opts.MaxN)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "ExecuteSweep", trace.WithAttributes(
		attribute.Int64("bincross.max_n", int64(opts.MaxN)),
		attribute.Int("bincross.workers", workers),
		attribute.String("bincross.run_id", opts.RunID),
	))
	defer span.End()

	progressChan := make(chan progress.ProgressUpdate, workers*ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, workers, out)

	s := newSweep(analyzer, opts)
	opts.Logger.Info("sweep started",
		logging.String("run_id", opts.RunID),
		logging.Uint64("max_n", opts.MaxN),
		logging.Int("workers", workers))

	start := time.Now()
	var err error
	if workers == 1 {
		err = s.runSequential(ctx, progressChan)
	} else {
		err = s.runParallel(ctx, progressChan, workers)
	}
	duration := time.Since(start)

	close(progressChan)
	displayWg.Wait()

	result := SweepResult{
		RunID:        opts.RunID,
		Records:      s.emittedRecords(),
		Duration:     duration,
		CacheEntries: analyzer.CacheLen(),
		Err:          err,
	}
	opts.Metrics.ObserveSweep(opts.MaxN, duration, result.CacheEntries, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		opts.Logger.Error("sweep failed", err,
			logging.String("run_id", opts.RunID),
			logging.Int("completed", len(result.Records)))
	} else {
		span.SetStatus(codes.Ok, "")
		opts.Logger.Info("sweep finished",
			logging.String("run_id", opts.RunID),
			logging.Int("records", len(result.Records)),
			logging.String("duration", duration.String()))
	}
	return result
}

// sweep holds the shared state of one ExecuteSweep call.
type sweep struct {
	analyzer RecordAnalyzer
	opts     SweepOptions
	tracer   trace.Tracer

	mu      sync.Mutex
	records []combinatorics.AnalysisRecord
	done    []bool
	next    int // records[:next] have been emitted to the sink
}

func newSweep(analyzer RecordAnalyzer, opts SweepOptions) *sweep {
	return &sweep{
		analyzer: analyzer,
		opts:     opts,
		tracer:   otel.Tracer(tracerName),
		records:  make([]combinatorics.AnalysisRecord, opts.MaxN),
		done:     make([]bool, opts.MaxN),
	}
}

func (s *sweep) runSequential(ctx context.Context, progressChan chan<- progress.ProgressUpdate) error {
	tracker := progress.NewTracker(progress.StripeWork(s.opts.MaxN, 1, 0))
	for n := uint64(1); n <= s.opts.MaxN; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.step(ctx, n, 0, tracker, progressChan); err != nil {
			return err
		}
	}
	return nil
}

func (s *sweep) runParallel(ctx context.Context, progressChan chan<- progress.ProgressUpdate, workers int) error {
	s.analyzer.Warm(s.opts.MaxN)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for w := 0; w < workers; w++ {
		worker := w
		g.Go(func() error {
			tracker := progress.NewTracker(progress.StripeWork(s.opts.MaxN, workers, worker))
			for n := uint64(worker) + 1; n <= s.opts.MaxN; n += uint64(workers) {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := s.step(gctx, n, worker, tracker, progressChan); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// step analyzes n, commits the record and publishes progress.
func (s *sweep) step(ctx context.Context, n uint64, worker int, tracker *progress.Tracker, progressChan chan<- progress.ProgressUpdate) error {
	rec, err := s.analyze(ctx, n)
	if err != nil {
		return err
	}
	if err := s.commit(rec); err != nil {
		return err
	}
	update := progress.ProgressUpdate{
		WorkerIndex:    worker,
		Value:          tracker.Advance(n),
		N:              n,
		MinKAggregated: rec.MinKAggregated,
	}
	select {
	case progressChan <- update:
	case <-ctx.Done():
	}
	return nil
}

func (s *sweep) analyze(ctx context.Context, n uint64) (combinatorics.AnalysisRecord, error) {
	ctx, span := s.tracer.Start(ctx, "Analyze", trace.WithAttributes(attribute.Int64("bincross.n", int64(n))))
	defer span.End()

	start := time.Now()
	rec, err := s.analyzer.Analyze(ctx, n)
	if err == nil {
		err = rec.Validate()
	}
	s.opts.Metrics.ObserveAnalysis(time.Since(start), rec.MinKAggregated, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		var calcErr apperrors.CalculationError
		if apperrors.IsContextError(err) || errors.As(err, &calcErr) {
			return combinatorics.AnalysisRecord{}, err
		}
		return combinatorics.AnalysisRecord{}, apperrors.CalculationError{N: n, Cause: err}
	}
	span.SetAttributes(
		attribute.Int64("bincross.min_k_agg", int64(rec.MinKAggregated)),
		attribute.Int64("bincross.max_k", int64(rec.MaxK)),
	)
	return rec, nil
}

// commit stores rec and emits every record that is now contiguous with the
// already emitted prefix.
func (s *sweep) commit(rec combinatorics.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := rec.N - 1
	s.records[idx] = rec
	s.done[idx] = true
	for s.next < len(s.records) && s.done[s.next] {
		r := s.records[s.next]
		if s.opts.Sink != nil {
			if err := s.opts.Sink.Write(r); err != nil {
				return fmt.Errorf("writing record n=%d: %w", r.N, err)
			}
		}
		s.next++
		if s.opts.LogEvery > 0 && r.N%s.opts.LogEvery == 0 {
			s.opts.Logger.Info("sweep milestone",
				logging.String("run_id", s.opts.RunID),
				logging.Uint64("n", r.N),
				logging.Uint64("min_k_agg", r.MinKAggregated))
		}
	}
	return nil
}

func (s *sweep) emittedRecords() []combinatorics.AnalysisRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[:s.next:s.next]
}

// AnalyzeSweepResult reports the outcome of a sweep and returns the exit
// code. Failures go to errHandler; successful sweeps are handed to the
// presenter.
func AnalyzeSweepResult(result SweepResult, opts PresentationOptions, presenter SweepPresenter, errHandler ErrorHandler, out io.Writer) int {
	if result.Err != nil {
		if n := len(result.Records); n > 0 {
			fmt.Fprintf(out, "Partial results: %d of %d record(s) completed before the failure.\n", n, opts.MaxN)
		}
		return errHandler.HandleError(result.Err, result.Duration, out)
	}
	presenter.PresentSweep(result, opts, out)
	return apperrors.ExitSuccess
}
