package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamStatus enumerates the exam lifecycle states.
// The only driven transition is draft → active; completed is reachable
// only by manual intervention.
type ExamStatus string

const (
	ExamStatusDraft     ExamStatus = "draft"
	ExamStatusActive    ExamStatus = "active"
	ExamStatusCompleted ExamStatus = "completed"
)

// Exam represents a titled, timed collection of ordered questions.
type Exam struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DurationMinutes int        `json:"duration_minutes"`
	Status          ExamStatus `json:"status"`
	Questions       []Question `json:"questions"`
	CreatedBy       uuid.UUID  `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ExamForStudent is the projection of an exam safe to serialize to
// unauthenticated or student audiences: no answer keys anywhere.
type ExamForStudent struct {
	ID              uuid.UUID            `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	DurationMinutes int                  `json:"duration_minutes"`
	Status          ExamStatus           `json:"status"`
	Questions       []QuestionForStudent `json:"questions"`
	CreatedAt       time.Time            `json:"created_at"`
}

// Projected strips every question's grading metadata.
func (e Exam) Projected() ExamForStudent {
	questions := make([]QuestionForStudent, len(e.Questions))
	for i, q := range e.Questions {
		questions[i] = q.Projected()
	}
	return ExamForStudent{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		DurationMinutes: e.DurationMinutes,
		Status:          e.Status,
		Questions:       questions,
		CreatedAt:       e.CreatedAt,
	}
}

// CreateExamRequest is the payload for creating a new exam.
// Question shape is validated structurally per type in the exam service.
type CreateExamRequest struct {
	Title           string                  `json:"title" binding:"required,min=3,max=255"`
	Description     string                  `json:"description" binding:"required"`
	DurationMinutes int                     `json:"duration_minutes" binding:"required,min=1,max=480"`
	Questions       []CreateQuestionRequest `json:"questions" binding:"required"`
}
