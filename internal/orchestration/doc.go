// Package orchestration drives the analyzer across n = 1..max_n, either
// sequentially or striped across workers, streams completed records to a
// sink in increasing n order, and reports progress to the presentation layer
// through the ProgressReporter and SweepPresenter interfaces.
package orchestration
