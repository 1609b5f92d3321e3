package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/agbru/bincross/internal/combinatorics"
	"github.com/agbru/bincross/internal/format"
)

// Header is the column layout of every CSV produced by this package.
var Header = []string{
	"n",
	"min_k_for_aggregated_combinations",
	"log2_sum_at_min_k_for_aggregated_combinations",
	"sum_at_min_k_for_aggregated_combinations",
	"min_k",
	"log2_combinations_at_min_k",
	"combinations_at_min_k",
	"max_k",
	"log2_combinations_at_max_k",
	"combinations_at_max_k",
}

// Sink consumes records in increasing n order.
type Sink interface {
	Write(rec combinatorics.AnalysisRecord) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(rec combinatorics.AnalysisRecord) error

// Write calls f(rec).
func (f SinkFunc) Write(rec combinatorics.AnalysisRecord) error { return f(rec) }

// MultiSink writes every record to each sink in turn and stops at the first
// error.
type MultiSink []Sink

// Write implements Sink.
func (m MultiSink) Write(rec combinatorics.AnalysisRecord) error {
	for _, s := range m {
		if err := s.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// FormatRow renders a record in Header column order.
func FormatRow(rec combinatorics.AnalysisRecord) []string {
	return []string{
		strconv.FormatUint(rec.N, 10),
		strconv.FormatUint(rec.MinKAggregated, 10),
		format.FormatLog2(rec.Log2SumAtMinKAggregated),
		rec.SumAtMinKAggregated.String(),
		strconv.FormatUint(rec.MinK, 10),
		format.FormatLog2(rec.Log2CombinationsAtMinK),
		rec.CombinationsAtMinK.String(),
		strconv.FormatUint(rec.MaxK, 10),
		format.FormatLog2(rec.Log2CombinationsAtMaxK),
		rec.CombinationsAtMaxK.String(),
	}
}

// CSVWriter writes records as CSV rows. The header is emitted before the
// first row, or explicitly through WriteHeader.
type CSVWriter struct {
	w          *csv.Writer
	headerDone bool
}

// NewCSVWriter creates a CSVWriter on top of w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the header row once.
func (cw *CSVWriter) WriteHeader() error {
	if cw.headerDone {
		return nil
	}
	cw.headerDone = true
	return cw.w.Write(Header)
}

// Write implements Sink.
func (cw *CSVWriter) Write(rec combinatorics.AnalysisRecord) error {
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	return cw.w.Write(FormatRow(rec))
}

// Flush flushes buffered rows and reports any write error.
func (cw *CSVWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

// WriteRecords writes the header followed by all records.
func WriteRecords(w io.Writer, recs []combinatorics.AnalysisRecord) error {
	cw := NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return cw.Flush()
}
