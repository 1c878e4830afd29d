package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lanexam/lanexam-backend/internal/config"
	"github.com/lanexam/lanexam-backend/internal/model"
	"github.com/rs/zerolog"
)

// ErrUnsupportedLanguage is returned for languages with no configured runtime.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ExecutionResult is the outcome of one code run. Runtime failures land in
// Error with whatever output was produced before the failure; only requests
// that never reach the runtime are treated as API errors.
type ExecutionResult struct {
	Output   string `json:"output"`
	Error    string `json:"error,omitempty"`
	ExitCode int    `json:"exit_code"`
	TimedOut bool   `json:"timed_out"`
	Language string `json:"language"`
}

// ExecutionService runs untrusted student code in short-lived interpreter
// processes with a wall-clock timeout and a hard output cap.
type ExecutionService struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewExecutionService creates a new ExecutionService.
func NewExecutionService(cfg *config.Config, log zerolog.Logger) *ExecutionService {
	return &ExecutionService{
		cfg: cfg,
		log: log.With().Str("component", "execution_service").Logger(),
	}
}

type runtimeSpec struct {
	binary    string
	extension string
}

var runtimes = map[string]runtimeSpec{
	"python": {binary: "python3", extension: ".py"},
	"nodejs": {binary: "node", extension: ".js"},
}

// limitedWriter caps how many bytes reach the buffer while still reporting
// the full write as accepted, so a runaway print loop fills the cap and the
// rest is silently dropped instead of failing the run.
type limitedWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining > 0 {
		if len(p) > remaining {
			w.buf.Write(p[:remaining])
		} else {
			w.buf.Write(p)
		}
	}
	return len(p), nil
}

// Execute runs source code in the given language with optional stdin.
func (s *ExecutionService) Execute(ctx context.Context, language, code, stdin string) (*ExecutionResult, error) {
	spec, ok := runtimes[strings.ToLower(language)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}

	if err := os.MkdirAll(s.cfg.ExecTempDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	srcPath := filepath.Join(s.cfg.ExecTempDir, uuid.New().String()+spec.extension)
	if err := os.WriteFile(srcPath, []byte(code), 0o600); err != nil {
		return nil, fmt.Errorf("write source file: %w", err)
	}
	defer os.Remove(srcPath)

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.ExecTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, spec.binary, srcPath)
	cmd.Stdout = &limitedWriter{buf: &stdout, limit: int(s.cfg.ExecMaxOutput)}
	cmd.Stderr = &limitedWriter{buf: &stderr, limit: int(s.cfg.ExecMaxOutput)}
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	result := &ExecutionResult{
		Output:   stdout.String(),
		Language: language,
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.Error = fmt.Sprintf("execution timed out after %s", s.cfg.ExecTimeout)
		result.ExitCode = -1
	} else if runErr != nil {
		result.Error = stderr.String()
		if result.Error == "" {
			result.Error = runErr.Error()
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	s.log.Debug().
		Str("language", language).
		Dur("elapsed", elapsed).
		Int("exit_code", result.ExitCode).
		Bool("timed_out", result.TimedOut).
		Msg("Code executed")

	return result, nil
}

// RunTestCases executes code once per test case, feeding each input on
// stdin and comparing trimmed output against the expected value.
func (s *ExecutionService) RunTestCases(ctx context.Context, language, code string, testCases []model.TestCase) ([]model.TestCaseResult, error) {
	results := make([]model.TestCaseResult, 0, len(testCases))
	for _, tc := range testCases {
		run, err := s.Execute(ctx, language, code, tc.Input)
		if err != nil {
			return nil, err
		}

		actual := strings.TrimSpace(run.Output)
		expected := strings.TrimSpace(tc.ExpectedOutput)

		results = append(results, model.TestCaseResult{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			ActualOutput:   actual,
			Passed:         run.Error == "" && actual == expected,
			Error:          run.Error,
		})
	}
	return results, nil
}
