package service

import (
	"testing"
)

func TestNormalizeQuestionComplete(t *testing.T) {
	q := normalizeQuestion(map[string]any{
		"question":      "What is TCP?",
		"options":       []any{"A protocol", "A cable", "A port", "A router"},
		"correctAnswer": float64(0),
		"explanation":   "TCP is a transport protocol.",
		"points":        float64(3),
	}, 0)

	if q.Question != "What is TCP?" {
		t.Fatalf("unexpected question: %q", q.Question)
	}
	if len(q.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(q.Options))
	}
	if q.CorrectAnswer != 0 {
		t.Fatalf("expected correct answer 0, got %d", q.CorrectAnswer)
	}
	if q.Points != 3 {
		t.Fatalf("expected 3 points, got %d", q.Points)
	}
	if q.Type != "mcq" {
		t.Fatalf("expected type mcq, got %q", q.Type)
	}
}

func TestNormalizeQuestionMissingFields(t *testing.T) {
	q := normalizeQuestion(map[string]any{}, 2)

	if q.Question != "Question 3" {
		t.Fatalf("expected placeholder question, got %q", q.Question)
	}
	if len(q.Options) != 4 {
		t.Fatalf("expected 4 placeholder options, got %d", len(q.Options))
	}
	if q.Points != 1 {
		t.Fatalf("expected default 1 point, got %d", q.Points)
	}
	if q.Explanation == "" {
		t.Fatal("expected default explanation")
	}
}

func TestNormalizeQuestionBadTypes(t *testing.T) {
	q := normalizeQuestion(map[string]any{
		"question":      float64(42),
		"options":       "not a list",
		"correctAnswer": "b",
		"points":        float64(-5),
	}, 0)

	if q.Question != "Question 1" {
		t.Fatalf("expected placeholder for non-string question, got %q", q.Question)
	}
	if len(q.Options) != 4 {
		t.Fatalf("expected placeholder options, got %d", len(q.Options))
	}
	if q.CorrectAnswer != 0 {
		t.Fatalf("expected default correct answer 0, got %d", q.CorrectAnswer)
	}
	if q.Points != 1 {
		t.Fatalf("expected default 1 point for negative points, got %d", q.Points)
	}
}

func TestNormalizeQuestionCorrectAnswerOutOfRange(t *testing.T) {
	q := normalizeQuestion(map[string]any{
		"question":      "Pick one",
		"options":       []any{"a", "b"},
		"correctAnswer": float64(7),
	}, 0)

	if q.CorrectAnswer != 0 {
		t.Fatalf("expected out-of-range index reset to 0, got %d", q.CorrectAnswer)
	}
}

func TestNormalizeQuestionSingleOption(t *testing.T) {
	q := normalizeQuestion(map[string]any{
		"question": "Pick one",
		"options":  []any{"only choice"},
	}, 0)

	// Fewer than two real options is unusable; placeholders take over.
	if len(q.Options) != 4 {
		t.Fatalf("expected placeholder options, got %v", q.Options)
	}
}
