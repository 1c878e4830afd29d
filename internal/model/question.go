package model

import "github.com/google/uuid"

// QuestionType determines which optional question fields are mandatory.
type QuestionType string

const (
	QuestionTypeMCQ    QuestionType = "mcq"
	QuestionTypeCoding QuestionType = "coding"
)

// TestCase is a single input/expected-output pair for a coding question.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	IsHidden       bool   `json:"is_hidden,omitempty"`
}

// Question represents a single exam question. The MCQ variant carries
// Options and CorrectAnswer; the coding variant carries Language,
// StarterCode and TestCases.
type Question struct {
	ID            uuid.UUID    `json:"id"`
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Points        int          `json:"points"`
	QuestionOrder int          `json:"question_order"`

	// MCQ only. CorrectAnswer is an index into Options; a pointer so that
	// index 0 survives serialization and coding questions omit it cleanly.
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`

	// Coding only.
	Language    string     `json:"language,omitempty"`
	StarterCode string     `json:"starter_code,omitempty"`
	TestCases   []TestCase `json:"test_cases,omitempty"`
}

// QuestionForStudent is the student-facing projection of a question.
// It must never carry CorrectAnswer, expected outputs of hidden test
// cases, or any other grading metadata.
type QuestionForStudent struct {
	ID            uuid.UUID    `json:"id"`
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Points        int          `json:"points"`
	QuestionOrder int          `json:"question_order"`
	Options       []string     `json:"options,omitempty"`
	Language      string       `json:"language,omitempty"`
	StarterCode   string       `json:"starter_code,omitempty"`
	TestCases     []TestCase   `json:"test_cases,omitempty"`
}

// Projected strips grading metadata from a question. Hidden test cases are
// dropped entirely rather than redacted; students cannot learn they exist.
func (q Question) Projected() QuestionForStudent {
	var visible []TestCase
	for _, tc := range q.TestCases {
		if !tc.IsHidden {
			visible = append(visible, tc)
		}
	}
	return QuestionForStudent{
		ID:            q.ID,
		Type:          q.Type,
		Question:      q.Question,
		Points:        q.Points,
		QuestionOrder: q.QuestionOrder,
		Options:       q.Options,
		Language:      q.Language,
		StarterCode:   q.StarterCode,
		TestCases:     visible,
	}
}

// CreateQuestionRequest is one question inside an exam-creation payload.
// Stable IDs and 1-based order are assigned at creation time.
type CreateQuestionRequest struct {
	Type     string   `json:"type" binding:"required,oneof=mcq coding"`
	Question string   `json:"question" binding:"required"`
	Points   int      `json:"points" binding:"required"`
	Options  []string `json:"options" binding:"omitempty"`
	// CorrectAnswer is not range-checked against Options; validation at
	// this boundary is structural only.
	CorrectAnswer *int       `json:"correct_answer"`
	Language      string     `json:"language" binding:"omitempty"`
	StarterCode   string     `json:"starter_code" binding:"omitempty"`
	TestCases     []TestCase `json:"test_cases" binding:"omitempty"`
}

// GeneratedQuestion is a normalized MCQ candidate produced by the
// generation adapter. Raw adapter output is untrusted; see llm.ExtractQuestions.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points"`
	Type          string   `json:"type"`
}
