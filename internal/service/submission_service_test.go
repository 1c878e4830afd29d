package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lanexam/lanexam-backend/internal/model"
)

func mcq(points, correct int) model.Question {
	c := correct
	return model.Question{
		ID:            uuid.New(),
		Type:          model.QuestionTypeMCQ,
		Points:        points,
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: &c,
	}
}

func answer(questionID uuid.UUID, selected int) model.SubmittedAnswer {
	s := selected
	return model.SubmittedAnswer{QuestionID: questionID, SelectedOption: &s}
}

func TestScoreAnswersAllCorrect(t *testing.T) {
	q1 := mcq(3, 0)
	q2 := mcq(7, 2)
	questions := []model.Question{q1, q2}
	answers := []model.SubmittedAnswer{answer(q1.ID, 0), answer(q2.ID, 2)}

	score, total := scoreAnswers(questions, answers)
	if score != 100 {
		t.Fatalf("expected score 100, got %d", score)
	}
	if total != 10 {
		t.Fatalf("expected total 10, got %d", total)
	}
}

func TestScoreAnswersNoAnswers(t *testing.T) {
	questions := []model.Question{mcq(5, 1), mcq(5, 2)}

	score, total := scoreAnswers(questions, nil)
	if score != 0 {
		t.Fatalf("expected score 0, got %d", score)
	}
	if total != 10 {
		t.Fatalf("expected total 10, got %d", total)
	}
}

func TestScoreAnswersNoQuestions(t *testing.T) {
	score, total := scoreAnswers(nil, nil)
	if score != 0 || total != 0 {
		t.Fatalf("expected 0/0 for empty exam, got %d/%d", score, total)
	}
}

func TestScoreAnswersHalfCorrect(t *testing.T) {
	q1 := mcq(5, 0)
	q2 := mcq(5, 1)
	answers := []model.SubmittedAnswer{answer(q1.ID, 0), answer(q2.ID, 3)}

	score, _ := scoreAnswers([]model.Question{q1, q2}, answers)
	if score != 50 {
		t.Fatalf("expected score 50, got %d", score)
	}
}

func TestScoreAnswersRounding(t *testing.T) {
	q1 := mcq(1, 0)
	q2 := mcq(1, 0)
	q3 := mcq(1, 0)

	// 1 of 3 → 33.33 rounds to 33.
	score, _ := scoreAnswers([]model.Question{q1, q2, q3}, []model.SubmittedAnswer{answer(q1.ID, 0)})
	if score != 33 {
		t.Fatalf("expected score 33, got %d", score)
	}

	// 2 of 3 → 66.67 rounds to 67.
	score, _ = scoreAnswers([]model.Question{q1, q2, q3}, []model.SubmittedAnswer{
		answer(q1.ID, 0), answer(q2.ID, 0),
	})
	if score != 67 {
		t.Fatalf("expected score 67, got %d", score)
	}
}

func TestScoreAnswersUnknownQuestionID(t *testing.T) {
	q := mcq(10, 1)

	// Answer references a question not in the exam: total still counts, no credit.
	score, total := scoreAnswers([]model.Question{q}, []model.SubmittedAnswer{answer(uuid.New(), 1)})
	if score != 0 {
		t.Fatalf("expected score 0, got %d", score)
	}
	if total != 10 {
		t.Fatalf("expected total 10, got %d", total)
	}
}

func TestScoreAnswersNilSelection(t *testing.T) {
	q := mcq(10, 0)
	answers := []model.SubmittedAnswer{{QuestionID: q.ID}}

	score, _ := scoreAnswers([]model.Question{q}, answers)
	if score != 0 {
		t.Fatalf("expected score 0 for nil selection, got %d", score)
	}
}

func TestScoreAnswersCodingQuestionCountsTowardTotal(t *testing.T) {
	q1 := mcq(5, 0)
	coding := model.Question{
		ID:     uuid.New(),
		Type:   model.QuestionTypeCoding,
		Points: 5,
	}
	answers := []model.SubmittedAnswer{answer(q1.ID, 0), {QuestionID: coding.ID, Code: "print(1)"}}

	score, total := scoreAnswers([]model.Question{q1, coding}, answers)
	if total != 10 {
		t.Fatalf("expected total 10, got %d", total)
	}
	if score != 50 {
		t.Fatalf("expected score 50, got %d", score)
	}
}

func TestScoreAnswersFirstAnswerWins(t *testing.T) {
	q := mcq(10, 2)
	answers := []model.SubmittedAnswer{answer(q.ID, 2), answer(q.ID, 0)}

	score, _ := scoreAnswers([]model.Question{q}, answers)
	if score != 100 {
		t.Fatalf("expected first answer to win, got score %d", score)
	}
}

func TestScoreAnswersCorrectAtIndexZero(t *testing.T) {
	q := mcq(10, 0)

	score, _ := scoreAnswers([]model.Question{q}, []model.SubmittedAnswer{answer(q.ID, 0)})
	if score != 100 {
		t.Fatalf("expected index 0 to be gradeable, got score %d", score)
	}
}
