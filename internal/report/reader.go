package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/agbru/bincross/internal/combinatorics"
)

// ReadRecords parses a CSV stream produced by WriteRecords. Integer columns
// round-trip exactly; the log2 columns keep their six printed digits.
// Errors name the offending line.
func ReadRecords(r io.Reader) ([]combinatorics.AnalysisRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("report: empty input, missing header")
		}
		return nil, fmt.Errorf("report: header: %w", err)
	}
	for i, name := range Header {
		if header[i] != name {
			return nil, fmt.Errorf("report: line 1: column %d is %q, want %q", i+1, header[i], name)
		}
	}

	var recs []combinatorics.AnalysisRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return recs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("report: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("report: line %d: %w", line, err)
		}
		recs = append(recs, rec)
	}
}

func parseRow(row []string) (combinatorics.AnalysisRecord, error) {
	p := rowParser{row: row}
	rec := combinatorics.AnalysisRecord{
		N:                       p.uint(0),
		MinKAggregated:          p.uint(1),
		Log2SumAtMinKAggregated: p.float(2),
		SumAtMinKAggregated:     p.bigInt(3),
		MinK:                    p.uint(4),
		Log2CombinationsAtMinK:  p.float(5),
		CombinationsAtMinK:      p.bigInt(6),
		MaxK:                    p.uint(7),
		Log2CombinationsAtMaxK:  p.float(8),
		CombinationsAtMaxK:      p.bigInt(9),
	}
	if p.err != nil {
		return combinatorics.AnalysisRecord{}, p.err
	}
	rec.CrossingFound = rec.MinK < rec.MaxK
	if err := rec.Validate(); err != nil {
		return combinatorics.AnalysisRecord{}, err
	}
	return rec, nil
}

// rowParser parses columns of a row and keeps the first error.
type rowParser struct {
	row []string
	err error
}

func (p *rowParser) fail(col int, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("column %s: %w", Header[col], err)
	}
}

func (p *rowParser) uint(col int) uint64 {
	v, err := strconv.ParseUint(p.row[col], 10, 64)
	if err != nil {
		p.fail(col, err)
	}
	return v
}

func (p *rowParser) float(col int) float64 {
	v, err := strconv.ParseFloat(p.row[col], 64)
	if err != nil {
		p.fail(col, err)
	}
	return v
}

func (p *rowParser) bigInt(col int) *big.Int {
	v, ok := new(big.Int).SetString(p.row[col], 10)
	if !ok {
		p.fail(col, fmt.Errorf("invalid integer %q", p.row[col]))
		return nil
	}
	return v
}
