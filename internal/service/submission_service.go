package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lanexam/lanexam-backend/internal/model"
	"github.com/lanexam/lanexam-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrDuplicateSubmission is returned when a student already submitted an exam.
var ErrDuplicateSubmission = errors.New("exam already submitted by this student")

// SubmissionService scores and records exam submissions. Scoring runs
// entirely server-side against the stored answer key; whatever the client
// claims about correctness is ignored.
type SubmissionService struct {
	submissionRepo *repository.SubmissionRepository
	examRepo       *repository.ExamRepository
	log            zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	examRepo *repository.ExamRepository,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		examRepo:       examRepo,
		log:            log.With().Str("component", "submission_service").Logger(),
	}
}

// Submit grades the answers against the exam's answer key and persists the
// result. One submission per student per exam; the composite unique index is
// the final word on races past the pre-check.
func (s *SubmissionService) Submit(ctx context.Context, studentID uuid.UUID, req *model.SubmitExamRequest) (*model.Submission, error) {
	exam, err := s.examRepo.GetByID(ctx, req.ExamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("get exam: %w", err)
	}

	exists, err := s.submissionRepo.Exists(ctx, studentID, req.ExamID)
	if err != nil {
		return nil, fmt.Errorf("check submission: %w", err)
	}
	if exists {
		return nil, ErrDuplicateSubmission
	}

	score, totalPoints := scoreAnswers(exam.Questions, req.Answers)

	submission := &model.Submission{
		StudentID:        studentID,
		ExamID:           req.ExamID,
		Answers:          req.Answers,
		Score:            score,
		TotalPoints:      totalPoints,
		TimeTakenSeconds: req.TimeTaken,
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDuplicateSubmission
		}
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.log.Info().
		Str("student_id", studentID.String()).
		Str("exam_id", req.ExamID.String()).
		Int("score", score).
		Int("total_points", totalPoints).
		Msg("Submission recorded")

	return submission, nil
}

// scoreAnswers computes the percentage score for a set of answers. Every
// question contributes its points to the total; an MCQ answer earns them
// only when its selected option exactly matches the key. Unanswered and
// coding questions earn nothing here.
func scoreAnswers(questions []model.Question, answers []model.SubmittedAnswer) (score, totalPoints int) {
	byQuestion := make(map[uuid.UUID]model.SubmittedAnswer, len(answers))
	for _, a := range answers {
		if _, seen := byQuestion[a.QuestionID]; !seen {
			byQuestion[a.QuestionID] = a
		}
	}

	earned := 0
	for _, q := range questions {
		totalPoints += q.Points

		answer, ok := byQuestion[q.ID]
		if !ok {
			continue
		}
		if q.Type == model.QuestionTypeMCQ &&
			q.CorrectAnswer != nil &&
			answer.SelectedOption != nil &&
			*answer.SelectedOption == *q.CorrectAnswer {
			earned += q.Points
		}
	}

	if totalPoints == 0 {
		return 0, 0
	}
	return int(math.Round(float64(earned) / float64(totalPoints) * 100)), totalPoints
}

// ListOverview returns every submission joined with student and exam info,
// newest first.
func (s *SubmissionService) ListOverview(ctx context.Context) ([]repository.SubmissionOverview, error) {
	overview, err := s.submissionRepo.ListOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return overview, nil
}

// ListByStudent returns one student's submissions, newest first.
func (s *SubmissionService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]repository.StudentSubmission, error) {
	submissions, err := s.submissionRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list student submissions: %w", err)
	}
	return submissions, nil
}
