package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/bincross/internal/combinatorics"
	apperrors "github.com/agbru/bincross/internal/errors"
	"github.com/agbru/bincross/internal/report"
)

func newApp(t *testing.T, args []string, opts ...AppOption) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	a, err := New(append([]string{"bincross", "--no-color"}, args...), &errBuf, opts...)
	if err != nil {
		t.Fatalf("New(%v): %v\n%s", args, err, errBuf.String())
	}
	return a, &errBuf
}

func TestNew_Help(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"bincross", "--help"}, &errBuf)
	if !IsHelpError(err) {
		t.Fatalf("expected help error, got %v", err)
	}
	if !strings.Contains(errBuf.String(), "bincross") {
		t.Error("usage should name the program")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"bincross", "-n", "0"}, &errBuf)
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if IsHelpError(err) {
		t.Error("a config error is not a help request")
	}
}

func TestRun_Completion(t *testing.T) {
	a, _ := newApp(t, []string{"--completion", "bash"})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "complete -F _bincross_completions bincross") {
		t.Errorf("unexpected script:\n%s", out.String())
	}

	a, errBuf := newApp(t, []string{"--completion", "tcsh"})
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errBuf.String(), "unsupported shell") {
		t.Errorf("stderr = %q", errBuf.String())
	}
}

func TestRun_Sweep(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out.csv")
	metricsPath := filepath.Join(dir, "bincross.prom")
	a, _ := newApp(t, []string{
		"-n", "30", "-o", csvPath, "--workers", "3",
		"--table", "-d", "--plot", "--metrics-file", metricsPath,
	})

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d\n%s", code, out.String())
	}
	for _, want := range []string{
		"Sweeping n = 1..30",
		"Parallel sweep with 3 workers",
		"--- Sweep Summary ---",
		"Last record: n=30",
		"k* agg",
		"Factorial cache",
		"30 row(s) written to " + csvPath,
		"Largest k with C(n,1) + ... + C(n,k) <= 2^128",
		"min_k_for_aggregated_combinations",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}

	recs, err := report.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(recs) != 30 {
		t.Fatalf("file holds %d records, want 30", len(recs))
	}
	for i, rec := range recs {
		if rec.N != uint64(i+1) {
			t.Fatalf("record %d has n=%d", i, rec.N)
		}
	}

	prom, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics file: %v", err)
	}
	if !strings.Contains(string(prom), "bincross_records_total") {
		t.Errorf("metrics file lacks the record counter:\n%s", prom)
	}
}

func TestRun_PrintOnly(t *testing.T) {
	a, errBuf := newApp(t, []string{"-n", "3", "-p"})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("stdout should hold exactly 3 rows, got:\n%s", out.String())
	}
	if !strings.HasPrefix(lines[2], "3,3,") {
		t.Errorf("last row = %q", lines[2])
	}
	if !strings.Contains(errBuf.String(), "Sweep Summary") {
		t.Error("summary should go to the error writer in print-only mode")
	}
}

func TestRun_Quiet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv.zst")
	a, _ := newApp(t, []string{"-n", "12", "-q", "-o", path})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if out.Len() != 0 {
		t.Errorf("quiet mode wrote to stdout:\n%s", out.String())
	}
	recs, err := report.ReadFile(path)
	if err != nil || len(recs) != 12 {
		t.Fatalf("ReadFile: %d records, err %v", len(recs), err)
	}
}

func TestRun_Timeout(t *testing.T) {
	a, _ := newApp(t, []string{"-n", "2000", "-q", "--timeout", "1ns", "-o", filepath.Join(t.TempDir(), "x.csv")})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
}

func TestRun_Interactive(t *testing.T) {
	a, _ := newApp(t, []string{"-i"}, WithInput(strings.NewReader("combos 4 2\nexit\n")))
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "C(4,2) = 6") || !strings.Contains(out.String(), "Goodbye!") {
		t.Errorf("unexpected session:\n%s", out.String())
	}
}

func TestRun_AnalyzerFactoryError(t *testing.T) {
	failing := func(string) (*combinatorics.Analyzer, error) {
		return nil, apperrors.NewConfigError("backend unavailable")
	}
	a, errBuf := newApp(t, []string{"-n", "5", "-p"}, WithAnalyzerFactory(failing))
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errBuf.String(), "backend unavailable") {
		t.Errorf("stderr = %q", errBuf.String())
	}
}

func TestRun_OutputError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	a, _ := newApp(t, []string{"-n", "5", "-q", "-o", filepath.Join(blocker, "out.csv")})
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
}

func TestVersion(t *testing.T) {
	if !HasVersionFlag([]string{"-n", "5", "--version"}) || !HasVersionFlag([]string{"-V"}) {
		t.Error("version flag not detected")
	}
	if HasVersionFlag([]string{"-v"}) {
		t.Error("-v means verbose, not version")
	}
	var out bytes.Buffer
	PrintVersion(&out)
	if !strings.HasPrefix(out.String(), "bincross ") || !strings.Contains(out.String(), "backends: big") {
		t.Errorf("PrintVersion = %q", out.String())
	}
}
