package model

import (
	"time"

	"github.com/google/uuid"
)

// TestCaseResult is the outcome of running submitted code against one test case.
type TestCaseResult struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	ActualOutput   string `json:"actual_output"`
	Passed         bool   `json:"passed"`
	Error          string `json:"error,omitempty"`
}

// SubmittedAnswer is one student answer inside a submission. The join key to
// the stored question is the canonical question UUID, parsed at the request
// boundary; an answer whose QuestionID matches no stored question counts as wrong.
type SubmittedAnswer struct {
	QuestionID uuid.UUID    `json:"question_id"`
	Type       QuestionType `json:"type,omitempty"`

	// MCQ: index into the question's options.
	SelectedOption *int `json:"selected_option,omitempty"`

	// Coding.
	Code        string           `json:"code,omitempty"`
	Output      string           `json:"output,omitempty"`
	TestResults []TestCaseResult `json:"test_results,omitempty"`
}

// Submission is one student's graded, immutable record of answers to one exam.
// At most one submission exists per (student, exam) pair.
type Submission struct {
	ID               uuid.UUID         `json:"id"`
	StudentID        uuid.UUID         `json:"student_id"`
	ExamID           uuid.UUID         `json:"exam_id"`
	Answers          []SubmittedAnswer `json:"answers"`
	Score            int               `json:"score"`
	TotalPoints      int               `json:"total_points"`
	SubmittedAt      time.Time         `json:"submitted_at"`
	TimeTakenSeconds int               `json:"time_taken_seconds"`
}

// SubmitExamRequest is the payload for submitting exam answers.
// TimeTaken is the client-reported elapsed seconds; it is recorded as-is,
// the server performs no clock reconciliation.
type SubmitExamRequest struct {
	ExamID    uuid.UUID         `json:"exam_id" binding:"required"`
	Answers   []SubmittedAnswer `json:"answers" binding:"required"`
	TimeTaken int               `json:"time_taken" binding:"omitempty,min=0"`
}
