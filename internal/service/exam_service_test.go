package service

import (
	"errors"
	"testing"

	"github.com/lanexam/lanexam-backend/internal/model"
)

func mcqReq(options []string, correct *int) model.CreateQuestionRequest {
	return model.CreateQuestionRequest{
		Type:          string(model.QuestionTypeMCQ),
		Question:      "What is 2 + 2?",
		Points:        1,
		Options:       options,
		CorrectAnswer: correct,
	}
}

func codingReq(starterCode string, testCases []model.TestCase) model.CreateQuestionRequest {
	return model.CreateQuestionRequest{
		Type:        string(model.QuestionTypeCoding),
		Question:    "Print the input.",
		Points:      5,
		Language:    "python",
		StarterCode: starterCode,
		TestCases:   testCases,
	}
}

func TestValidateQuestionsEmpty(t *testing.T) {
	if err := validateQuestions(nil); !errors.Is(err, ErrMalformedExam) {
		t.Fatalf("expected ErrMalformedExam, got %v", err)
	}
}

func TestValidateQuestionsValidMix(t *testing.T) {
	correct := 1
	questions := []model.CreateQuestionRequest{
		mcqReq([]string{"3", "4", "5"}, &correct),
		codingReq("# your code here", []model.TestCase{{Input: "x", ExpectedOutput: "x"}}),
	}
	if err := validateQuestions(questions); err != nil {
		t.Fatalf("expected valid questions, got %v", err)
	}
}

func TestValidateQuestionsMCQTooFewOptions(t *testing.T) {
	correct := 0
	err := validateQuestions([]model.CreateQuestionRequest{mcqReq([]string{"only"}, &correct)})
	if !errors.Is(err, ErrMCQMissingOptions) {
		t.Fatalf("expected ErrMCQMissingOptions, got %v", err)
	}
}

func TestValidateQuestionsMCQNoCorrectAnswer(t *testing.T) {
	err := validateQuestions([]model.CreateQuestionRequest{mcqReq([]string{"a", "b"}, nil)})
	if !errors.Is(err, ErrMCQMissingOptions) {
		t.Fatalf("expected ErrMCQMissingOptions, got %v", err)
	}
}

func TestValidateQuestionsMCQCorrectAnswerNotRangeChecked(t *testing.T) {
	// Validation here is structural presence only; whether the index points
	// at an existing option is not this boundary's concern.
	correct := 4
	err := validateQuestions([]model.CreateQuestionRequest{mcqReq([]string{"a", "b"}, &correct)})
	if err != nil {
		t.Fatalf("out-of-range index must pass structural validation, got %v", err)
	}
}

func TestValidateQuestionsMCQCorrectAnswerZero(t *testing.T) {
	correct := 0
	err := validateQuestions([]model.CreateQuestionRequest{mcqReq([]string{"a", "b"}, &correct)})
	if err != nil {
		t.Fatalf("index 0 must be accepted, got %v", err)
	}
}

func TestValidateQuestionsCodingNoTestCases(t *testing.T) {
	err := validateQuestions([]model.CreateQuestionRequest{codingReq("# start", nil)})
	if !errors.Is(err, ErrCodingMissingTestCases) {
		t.Fatalf("expected ErrCodingMissingTestCases, got %v", err)
	}
}

func TestValidateQuestionsCodingNoStarterCode(t *testing.T) {
	err := validateQuestions([]model.CreateQuestionRequest{
		codingReq("", []model.TestCase{{Input: "x", ExpectedOutput: "x"}}),
	})
	if !errors.Is(err, ErrCodingMissingTestCases) {
		t.Fatalf("expected ErrCodingMissingTestCases for empty starter code, got %v", err)
	}
}
