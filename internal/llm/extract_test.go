package llm

import (
	"errors"
	"testing"
)

func TestExtractQuestionsPlainArray(t *testing.T) {
	raw := `[{"question": "Q1", "options": ["a", "b"], "correctAnswer": 0}]`

	questions, err := ExtractQuestions(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0]["question"] != "Q1" {
		t.Fatalf("unexpected question: %v", questions[0]["question"])
	}
}

func TestExtractQuestionsFencedArray(t *testing.T) {
	raw := "Here are your questions:\n```json\n[{\"question\": \"Q1\"}, {\"question\": \"Q2\"}]\n```\nLet me know if you need more."

	questions, err := ExtractQuestions(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
}

func TestExtractQuestionsObjectFallback(t *testing.T) {
	// No array at all: loose objects scattered in prose.
	raw := `First: {"question": "Q1", "correctAnswer": 1} and second: {"question": "Q2", "correctAnswer": 0}`

	questions, err := ExtractQuestions(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions from object fallback, got %d", len(questions))
	}
}

func TestExtractQuestionsIgnoresNonQuestionObjects(t *testing.T) {
	raw := `{"note": "not a question"} {"question": "Q1"}`

	questions, err := ExtractQuestions(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
}

func TestExtractQuestionsNothingParseable(t *testing.T) {
	_, err := ExtractQuestions("I'm sorry, I cannot generate questions right now.")
	if !errors.Is(err, ErrNoQuestionsFound) {
		t.Fatalf("expected ErrNoQuestionsFound, got %v", err)
	}
}

func TestExtractQuestionsEmptyArray(t *testing.T) {
	_, err := ExtractQuestions("[]")
	if !errors.Is(err, ErrNoQuestionsFound) {
		t.Fatalf("expected ErrNoQuestionsFound for empty array, got %v", err)
	}
}
