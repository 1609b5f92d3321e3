package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/agbru/bincross/internal/combinatorics"
)

// CompressedExt is the file extension that selects zstd compression.
const CompressedExt = ".zst"

// IsCompressed reports whether path selects zstd compression.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), CompressedExt)
}

// FileSink streams records to a CSV file, optionally zstd-compressed.
// The header is written on creation so that an empty sweep still yields a
// well-formed file.
type FileSink struct {
	path  string
	file  *os.File
	buf   *bufio.Writer
	enc   *zstd.Encoder
	csv   *CSVWriter
	count int
}

// CreateFile creates (or truncates) the file at path, creating parent
// directories as needed.
func CreateFile(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("report: creating directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("report: creating %s: %w", path, err)
	}

	s := &FileSink{path: path, file: f, buf: bufio.NewWriter(f)}
	var w io.Writer = s.buf
	if IsCompressed(path) {
		if s.enc, err = zstd.NewWriter(s.buf); err != nil {
			f.Close()
			return nil, fmt.Errorf("report: zstd encoder: %w", err)
		}
		w = s.enc
	}
	s.csv = NewCSVWriter(w)
	if err := s.csv.WriteHeader(); err != nil {
		f.Close()
		return nil, fmt.Errorf("report: writing header: %w", err)
	}
	return s, nil
}

// Path returns the destination path.
func (s *FileSink) Path() string { return s.path }

// Count returns the number of records written so far.
func (s *FileSink) Count() int { return s.count }

// Write implements Sink.
func (s *FileSink) Write(rec combinatorics.AnalysisRecord) error {
	if err := s.csv.Write(rec); err != nil {
		return fmt.Errorf("report: writing n=%d: %w", rec.N, err)
	}
	s.count++
	return nil
}

// Close flushes every layer and closes the file.
func (s *FileSink) Close() error {
	err := s.csv.Flush()
	if s.enc != nil {
		if cerr := s.enc.Close(); err == nil {
			err = cerr
		}
	}
	if ferr := s.buf.Flush(); err == nil {
		err = ferr
	}
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("report: closing %s: %w", s.path, err)
	}
	return nil
}

// WriteFile writes all records to path.
func WriteFile(path string, recs []combinatorics.AnalysisRecord) (err error) {
	s, err := CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	for _, rec := range recs {
		if err := s.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// OpenFile opens a report for reading, decompressing it when needed.
func OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("report: opening %s: %w", path, err)
	}
	if !IsCompressed(path) {
		return f, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("report: zstd decoder: %w", err)
	}
	return &zstdReadCloser{dec: dec, file: f}, nil
}

// ReadFile reads every record of the report at path.
func ReadFile(path string) ([]combinatorics.AnalysisRecord, error) {
	rc, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadRecords(rc)
}

type zstdReadCloser struct {
	dec  *zstd.Decoder
	file *os.File
}

func (z *zstdReadCloser) Read(p []byte) (int, error) { return z.dec.Read(p) }

func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	return z.file.Close()
}
