package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestProjectedStripsAnswerKeys(t *testing.T) {
	correct := 0
	exam := Exam{
		ID:              uuid.New(),
		Title:           "Unit Test Exam",
		Description:     "desc",
		DurationMinutes: 45,
		Status:          ExamStatusActive,
		Questions: []Question{
			{
				ID:            uuid.New(),
				Type:          QuestionTypeMCQ,
				Question:      "Pick A",
				Points:        5,
				QuestionOrder: 1,
				Options:       []string{"A", "B"},
				CorrectAnswer: &correct,
			},
		},
		CreatedBy: uuid.New(),
		CreatedAt: time.Now(),
	}

	payload, err := json.Marshal(exam.Projected())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	body := string(payload)
	if strings.Contains(body, "correct_answer") {
		t.Fatalf("projected exam leaked answer key: %s", body)
	}
	if strings.Contains(body, "created_by") {
		t.Fatalf("projected exam leaked author: %s", body)
	}
	if !strings.Contains(body, "Pick A") {
		t.Fatalf("projected exam missing question text: %s", body)
	}
}

func TestProjectedDropsHiddenTestCases(t *testing.T) {
	exam := Exam{
		Questions: []Question{
			{
				ID:       uuid.New(),
				Type:     QuestionTypeCoding,
				Question: "Echo the input",
				Points:   5,
				Language: "python",
				TestCases: []TestCase{
					{Input: "a", ExpectedOutput: "a"},
					{Input: "secret", ExpectedOutput: "secret", IsHidden: true},
				},
			},
		},
	}

	projected := exam.Projected()
	tcs := projected.Questions[0].TestCases
	if len(tcs) != 1 {
		t.Fatalf("expected 1 visible test case, got %d", len(tcs))
	}
	if tcs[0].Input != "a" {
		t.Fatalf("wrong test case survived projection: %+v", tcs[0])
	}
}

func TestProjectedKeepsCodingFields(t *testing.T) {
	exam := Exam{
		Questions: []Question{
			{
				ID:          uuid.New(),
				Type:        QuestionTypeCoding,
				Question:    "Implement it",
				Language:    "nodejs",
				StarterCode: "// start here",
			},
		},
	}

	q := exam.Projected().Questions[0]
	if q.Language != "nodejs" || q.StarterCode != "// start here" {
		t.Fatalf("coding fields lost in projection: %+v", q)
	}
}

func TestUserPasswordHashNeverSerialized(t *testing.T) {
	user := User{
		ID:           uuid.New(),
		Username:     "teacher1",
		PasswordHash: "$2a$12$something",
		FullName:     "A Teacher",
		Role:         RoleTeacher,
	}

	payload, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(payload), "$2a$12$") {
		t.Fatalf("password hash leaked: %s", payload)
	}
}
