package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lanexam/lanexam-backend/internal/model"
	"github.com/lanexam/lanexam-backend/internal/repository"
	"github.com/rs/zerolog"
)

// User registration errors.
var (
	ErrUsernameTaken     = errors.New("username already taken")
	ErrStudentIDTaken    = errors.New("student id already registered")
	ErrStudentIDRequired = errors.New("student id required for student accounts")
	ErrUserNotFound      = errors.New("user not found")
)

// UserService handles account registration and user lookups.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, auth *AuthService, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

// Signup registers a new account. Students must carry a student ID; both
// username and student ID uniqueness are enforced, with the database
// constraints as the backstop against concurrent signups.
func (s *UserService) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	role := model.Role(req.Role)

	var studentID *string
	if role == model.RoleStudent {
		if req.StudentID == "" {
			return nil, ErrStudentIDRequired
		}
		taken, err := s.userRepo.ExistsByStudentID(ctx, req.StudentID)
		if err != nil {
			return nil, fmt.Errorf("check student id: %w", err)
		}
		if taken {
			return nil, ErrStudentIDTaken
		}
		studentID = &req.StudentID
	}

	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		StudentID:    studentID,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_student_id_key":
				return nil, ErrStudentIDTaken
			default:
				return nil, ErrUsernameTaken
			}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// GetByID fetches a single user.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ListStudents returns all student accounts with their online flag.
func (s *UserService) ListStudents(ctx context.Context) ([]model.User, error) {
	students, err := s.userRepo.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}
