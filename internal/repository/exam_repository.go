package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lanexam/lanexam-backend/internal/model"
)

// ExamRepository handles exam data access. Questions are owned by their exam
// and are read and written through this repository only.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

// Create inserts an exam and its questions in one transaction.
// Question IDs and timestamps are filled in on the passed model.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO exams (title, description, duration_minutes, status, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		e.Title, e.Description, e.DurationMinutes, e.Status, e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert exam: %w", err)
	}

	for i := range e.Questions {
		q := &e.Questions[i]

		var optionsJSON, testCasesJSON []byte
		if q.Options != nil {
			if optionsJSON, err = json.Marshal(q.Options); err != nil {
				return fmt.Errorf("marshal options: %w", err)
			}
		}
		if q.TestCases != nil {
			if testCasesJSON, err = json.Marshal(q.TestCases); err != nil {
				return fmt.Errorf("marshal test cases: %w", err)
			}
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO questions
			     (exam_id, question_type, question_text, points, question_order,
			      options, correct_answer, language, starter_code, test_cases)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10)
			 RETURNING id`,
			e.ID, q.Type, q.Question, q.Points, q.QuestionOrder,
			optionsJSON, q.CorrectAnswer, q.Language, q.StarterCode, testCasesJSON,
		).Scan(&q.ID)
		if err != nil {
			return fmt.Errorf("insert question %d: %w", i+1, err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves an exam with its ordered question list.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, duration_minutes, status, created_by, created_at, updated_at
		 FROM exams WHERE id = $1`, id,
	).Scan(&e.ID, &e.Title, &e.Description, &e.DurationMinutes, &e.Status,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if e.Questions, err = r.listQuestions(ctx, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

// ListAll retrieves every exam, newest first, including questions.
func (r *ExamRepository) ListAll(ctx context.Context) ([]model.Exam, error) {
	return r.list(ctx,
		`SELECT id, title, description, duration_minutes, status, created_by, created_at, updated_at
		 FROM exams ORDER BY created_at DESC`)
}

// ListByStatus retrieves exams in the given lifecycle state, newest first,
// including questions.
func (r *ExamRepository) ListByStatus(ctx context.Context, status model.ExamStatus) ([]model.Exam, error) {
	return r.list(ctx,
		`SELECT id, title, description, duration_minutes, status, created_by, created_at, updated_at
		 FROM exams WHERE status = $1 ORDER BY created_at DESC`, status)
}

// UpdateStatus sets an exam's lifecycle state. Returns pgx.ErrNoRows when the
// exam does not exist; setting an already-held state still succeeds.
func (r *ExamRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ExamStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE exams SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ExamRepository) list(ctx context.Context, query string, args ...any) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.DurationMinutes, &e.Status,
			&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range exams {
		if exams[i].Questions, err = r.listQuestions(ctx, exams[i].ID); err != nil {
			return nil, err
		}
	}
	return exams, nil
}

// listQuestions returns an exam's canonical question list in stored order.
func (r *ExamRepository) listQuestions(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_type, question_text, points, question_order,
		        options, correct_answer, COALESCE(language, ''), COALESCE(starter_code, ''), test_cases
		 FROM questions WHERE exam_id = $1
		 ORDER BY question_order`, examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var optionsJSON, testCasesJSON []byte
		if err := rows.Scan(&q.ID, &q.Type, &q.Question, &q.Points, &q.QuestionOrder,
			&optionsJSON, &q.CorrectAnswer, &q.Language, &q.StarterCode, &testCasesJSON); err != nil {
			return nil, err
		}
		if optionsJSON != nil {
			if err := json.Unmarshal(optionsJSON, &q.Options); err != nil {
				return nil, fmt.Errorf("unmarshal options: %w", err)
			}
		}
		if testCasesJSON != nil {
			if err := json.Unmarshal(testCasesJSON, &q.TestCases); err != nil {
				return nil, fmt.Errorf("unmarshal test cases: %w", err)
			}
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
