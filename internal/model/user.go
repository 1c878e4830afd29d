package model

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes teacher and student accounts.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// User represents a portal account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	// StudentID is the school-issued roll number, present only for students.
	StudentID *string   `json:"student_id,omitempty"`
	Role      Role      `json:"role"`
	IsOnline  bool      `json:"is_online"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SignupRequest is the payload for creating a new account.
type SignupRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=64"`
	Password  string `json:"password" binding:"required,min=6,max=128"`
	FullName  string `json:"full_name" binding:"required,min=2,max=100"`
	StudentID string `json:"student_id" binding:"omitempty,min=2,max=32"`
	Role      string `json:"role" binding:"required,oneof=teacher student"`
}

// LoginRequest is the payload for authentication.
// Role must match the stored account role; a mismatch is treated the same
// as bad credentials to avoid account enumeration.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=teacher student"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// PresenceEvent is published on the Redis presence channel at login/logout.
type PresenceEvent struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Online   bool      `json:"online"`
	At       time.Time `json:"at"`
}
