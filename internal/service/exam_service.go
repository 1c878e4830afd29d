package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lanexam/lanexam-backend/internal/config"
	"github.com/lanexam/lanexam-backend/internal/model"
	"github.com/lanexam/lanexam-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Exam errors.
var (
	ErrExamNotFound           = errors.New("exam not found")
	ErrMalformedExam          = errors.New("exam has no questions")
	ErrMCQMissingOptions      = errors.New("mcq question needs at least two options and a correct answer")
	ErrCodingMissingTestCases = errors.New("coding question needs starter code and at least one test case")
)

const availableExamsTTL = 60 * time.Second

// ExamService owns exam authoring, activation and the student-facing
// projections. The available-exams listing is served through a short-lived
// Redis cache invalidated on every activation.
type ExamService struct {
	examRepo *repository.ExamRepository
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(examRepo *repository.ExamRepository, rdb *redis.Client, log zerolog.Logger) *ExamService {
	return &ExamService{
		examRepo: examRepo,
		rdb:      rdb,
		log:      log.With().Str("component", "exam_service").Logger(),
	}
}

// Create validates question structure and persists a new draft exam with
// its questions in authoring order.
func (s *ExamService) Create(ctx context.Context, req *model.CreateExamRequest, createdBy uuid.UUID) (*model.Exam, error) {
	if err := validateQuestions(req.Questions); err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Status:          model.ExamStatusDraft,
		CreatedBy:       createdBy,
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for i, q := range req.Questions {
		question := model.Question{
			Type:          model.QuestionType(q.Type),
			Question:      q.Question,
			Points:        q.Points,
			QuestionOrder: i + 1,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Language:      q.Language,
			StarterCode:   q.StarterCode,
			TestCases:     q.TestCases,
		}
		questions = append(questions, question)
	}
	exam.Questions = questions

	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("create exam: %w", err)
	}

	s.log.Info().
		Str("exam_id", exam.ID.String()).
		Str("title", exam.Title).
		Int("questions", len(exam.Questions)).
		Msg("Exam created")

	return exam, nil
}

// validateQuestions enforces the per-type structural rules that the request
// binding cannot express: MCQ needs options and a correct answer, coding
// needs starter code and test cases. Structural presence only; whether
// CorrectAnswer indexes into Options is not checked here.
func validateQuestions(questions []model.CreateQuestionRequest) error {
	if len(questions) == 0 {
		return ErrMalformedExam
	}
	for _, q := range questions {
		switch model.QuestionType(q.Type) {
		case model.QuestionTypeMCQ:
			if len(q.Options) < 2 || q.CorrectAnswer == nil {
				return ErrMCQMissingOptions
			}
		case model.QuestionTypeCoding:
			if q.StarterCode == "" || len(q.TestCases) == 0 {
				return ErrCodingMissingTestCases
			}
		}
	}
	return nil
}

// ListAll returns every exam with full questions, answer keys included.
func (s *ExamService) ListAll(ctx context.Context) ([]model.Exam, error) {
	exams, err := s.examRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	return exams, nil
}

// ListAvailable returns active exams projected for students, through the
// Redis read-through cache.
func (s *ExamService) ListAvailable(ctx context.Context) ([]model.ExamForStudent, error) {
	cacheKey := config.CacheKey.AvailableExamsKey()

	cached, err := s.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		var out []model.ExamForStudent
		if jsonErr := json.Unmarshal([]byte(cached), &out); jsonErr == nil {
			return out, nil
		}
		// Corrupt cache entry: fall through and rebuild.
		_ = s.rdb.Del(ctx, cacheKey).Err()
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Available exams cache unreachable, serving from database")
	}

	exams, err := s.examRepo.ListByStatus(ctx, model.ExamStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active exams: %w", err)
	}

	out := make([]model.ExamForStudent, 0, len(exams))
	for _, exam := range exams {
		out = append(out, exam.Projected())
	}

	if payload, jsonErr := json.Marshal(out); jsonErr == nil {
		_ = s.rdb.Set(ctx, cacheKey, payload, availableExamsTTL).Err()
	}

	return out, nil
}

// GetByID fetches one exam with full questions.
func (s *ExamService) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("get exam: %w", err)
	}
	return exam, nil
}

// Activate flips an exam to active. Re-activating an already active exam is
// a no-op success.
func (s *ExamService) Activate(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	if err := s.examRepo.UpdateStatus(ctx, id, model.ExamStatusActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("activate exam: %w", err)
	}

	if err := s.rdb.Del(ctx, config.CacheKey.AvailableExamsKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to invalidate available exams cache")
	}

	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload exam: %w", err)
	}

	s.log.Info().Str("exam_id", id.String()).Msg("Exam activated")
	return exam, nil
}
