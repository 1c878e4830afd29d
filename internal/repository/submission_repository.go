package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lanexam/lanexam-backend/internal/model"
)

// SubmissionStudent is the student slice of a teacher-facing submission row.
type SubmissionStudent struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	StudentID *string   `json:"student_id,omitempty"`
}

// SubmissionOverview is a submission joined with its student and exam title,
// as shown on the teacher dashboard. Answers are omitted.
type SubmissionOverview struct {
	ID               uuid.UUID         `json:"id"`
	Score            int               `json:"score"`
	TotalPoints      int               `json:"total_points"`
	SubmittedAt      time.Time         `json:"submitted_at"`
	TimeTakenSeconds int               `json:"time_taken_seconds"`
	Student          SubmissionStudent `json:"student"`
	ExamTitle        string            `json:"exam_title"`
}

// StudentSubmission is a submission joined with its exam's title and
// description, as shown to the owning student. No answer keys.
type StudentSubmission struct {
	ID               uuid.UUID `json:"id"`
	Score            int       `json:"score"`
	TotalPoints      int       `json:"total_points"`
	SubmittedAt      time.Time `json:"submitted_at"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	ExamTitle        string    `json:"exam_title"`
	ExamDescription  string    `json:"exam_description"`
}

// SubmissionRepository handles submission data access.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Create inserts a graded submission. The composite unique index on
// (student_id, exam_id) is the authoritative duplicate guard: a racing
// duplicate hits DO NOTHING and surfaces as pgx.ErrNoRows from the
// RETURNING scan.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	answersJSON, err := json.Marshal(s.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO submissions (student_id, exam_id, answers, score, total_points, time_taken_seconds)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (student_id, exam_id) DO NOTHING
		 RETURNING id, submitted_at`,
		s.StudentID, s.ExamID, answersJSON, s.Score, s.TotalPoints, s.TimeTakenSeconds,
	).Scan(&s.ID, &s.SubmittedAt)
}

// Exists reports whether a submission already exists for the pair. Used for
// the friendly pre-insert check; the unique index remains the backstop.
func (r *SubmissionRepository) Exists(ctx context.Context, studentID, examID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM submissions WHERE student_id = $1 AND exam_id = $2)`,
		studentID, examID,
	).Scan(&exists)
	return exists, err
}

// ListOverview retrieves all submissions joined with student and exam
// details, newest first.
func (r *SubmissionRepository) ListOverview(ctx context.Context) ([]SubmissionOverview, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.score, s.total_points, s.submitted_at, s.time_taken_seconds,
		        u.id, u.full_name, u.student_id, e.title
		 FROM submissions s
		 JOIN users u ON s.student_id = u.id
		 JOIN exams e ON s.exam_id = e.id
		 ORDER BY s.submitted_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overviews []SubmissionOverview
	for rows.Next() {
		var o SubmissionOverview
		if err := rows.Scan(&o.ID, &o.Score, &o.TotalPoints, &o.SubmittedAt, &o.TimeTakenSeconds,
			&o.Student.ID, &o.Student.FullName, &o.Student.StudentID, &o.ExamTitle); err != nil {
			return nil, err
		}
		overviews = append(overviews, o)
	}
	return overviews, rows.Err()
}

// ListByStudent retrieves one student's submissions joined with exam
// metadata, newest first.
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]StudentSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.score, s.total_points, s.submitted_at, s.time_taken_seconds,
		        e.title, e.description
		 FROM submissions s
		 JOIN exams e ON s.exam_id = e.id
		 WHERE s.student_id = $1
		 ORDER BY s.submitted_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []StudentSubmission
	for rows.Next() {
		var s StudentSubmission
		if err := rows.Scan(&s.ID, &s.Score, &s.TotalPoints, &s.SubmittedAt, &s.TimeTakenSeconds,
			&s.ExamTitle, &s.ExamDescription); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
