package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lanexam/lanexam-backend/internal/config"
	"github.com/rs/zerolog"
)

func testExecutionService(t *testing.T) *ExecutionService {
	t.Helper()
	cfg := &config.Config{
		ExecTimeout:   5 * time.Second,
		ExecMaxOutput: 1024,
		ExecTempDir:   t.TempDir(),
	}
	return NewExecutionService(cfg, zerolog.Nop())
}

func TestExecuteUnsupportedLanguage(t *testing.T) {
	svc := testExecutionService(t)

	_, err := svc.Execute(context.Background(), "cobol", "DISPLAY 'HI'.", "")
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
}

func TestLimitedWriterCapsOutput(t *testing.T) {
	var buf bytes.Buffer
	w := &limitedWriter{buf: &buf, limit: 10}

	n, err := w.Write([]byte(strings.Repeat("x", 25)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Reports full acceptance so the writing process never sees an error.
	if n != 25 {
		t.Fatalf("expected reported n=25, got %d", n)
	}
	if buf.Len() != 10 {
		t.Fatalf("expected buffered 10 bytes, got %d", buf.Len())
	}
}

func TestLimitedWriterDropsAfterCap(t *testing.T) {
	var buf bytes.Buffer
	w := &limitedWriter{buf: &buf, limit: 4}

	w.Write([]byte("abcd"))
	n, _ := w.Write([]byte("efgh"))
	if n != 4 {
		t.Fatalf("expected reported n=4 on dropped write, got %d", n)
	}
	if buf.String() != "abcd" {
		t.Fatalf("expected buffer unchanged after cap, got %q", buf.String())
	}
}

func TestLimitedWriterPartialFit(t *testing.T) {
	var buf bytes.Buffer
	w := &limitedWriter{buf: &buf, limit: 6}

	w.Write([]byte("abc"))
	w.Write([]byte("defgh"))
	if buf.String() != "abcdef" {
		t.Fatalf("expected truncation at limit, got %q", buf.String())
	}
}
