package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lanexam/lanexam-backend/internal/config"
	"github.com/lanexam/lanexam-backend/internal/model"
	"github.com/lanexam/lanexam-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID  `json:"user_id"`
	Role   model.Role `json:"role"`
}

// AuthService handles passwords, bearer tokens and session lifecycle.
// Tokens are HS256 JWTs; the sessions table is the revocation source of
// truth and Redis caches live tokens for the request fast path.
type AuthService struct {
	cfg         *config.Config
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	cfg *config.Config,
	userRepo *repository.UserRepository,
	sessionRepo *repository.SessionRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		cfg:         cfg,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "auth_service").Logger(),
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateToken creates a signed bearer token for a user.
func (s *AuthService) GenerateToken(userID uuid.UUID, role model.Role) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenExpiry)),
		},
		UserID: userID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.TokenSecret))
}

// ValidateToken parses and validates a bearer token, returning the claims.
// Signature and expiry only; revocation is checked by ValidateSession.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.TokenSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateSession validates the token and checks it against the live session
// store: Redis fast path, sessions table fallback with cache self-heal.
func (s *AuthService) ValidateSession(ctx context.Context, tokenStr string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenStr)
	if err != nil {
		return nil, err
	}

	cacheKey := config.CacheKey.SessionTokenKey(tokenStr)
	_, err = s.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		return claims, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("check session cache: %w", err)
	}

	// Cache miss: the row is the source of truth (maybe evicted, maybe revoked).
	sess, err := s.sessionRepo.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil, ErrSessionNotFound
	}

	// Self-heal the cache so the next request is fast.
	_ = s.rdb.Set(ctx, cacheKey, sess.UserID.String(), ttl).Err()

	return claims, nil
}

// Login verifies credentials, flips the user online, persists a session and
// returns the bearer token with the sanitized user. A role mismatch is
// reported identically to a wrong password.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest, ipAddress, userAgent string) (*model.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if string(user.Role) != req.Role {
		return nil, ErrInvalidCredentials
	}
	if err := s.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	sess := &model.Session{
		UserID:       user.ID,
		SessionToken: token,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		ExpiresAt:    time.Now().Add(s.cfg.TokenExpiry),
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.rdb.Set(ctx, config.CacheKey.SessionTokenKey(token), user.ID.String(), s.cfg.TokenExpiry).Err(); err != nil {
		// The DB fallback in ValidateSession covers a cold cache.
		s.log.Warn().Err(err).Msg("Failed to cache session token")
	}

	if err := s.userRepo.SetOnline(ctx, user.ID, true); err != nil {
		return nil, fmt.Errorf("set online: %w", err)
	}
	user.IsOnline = true

	s.publishPresence(ctx, user, true)
	s.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("User logged in")

	return &model.LoginResponse{Token: token, User: *user}, nil
}

// Logout removes the session, flips the user offline and publishes a
// presence event. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, tokenStr string, userID uuid.UUID) error {
	if err := s.sessionRepo.DeleteByToken(ctx, tokenStr); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if err := s.rdb.Del(ctx, config.CacheKey.SessionTokenKey(tokenStr)).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to evict session token from cache")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if err := s.userRepo.SetOnline(ctx, userID, false); err != nil {
		return fmt.Errorf("set offline: %w", err)
	}

	s.publishPresence(ctx, user, false)
	s.log.Info().Str("username", user.Username).Msg("User logged out")
	return nil
}

// publishPresence emits an online/offline event on the presence channel.
// Best effort: presence is advisory, a publish failure never fails the request.
func (s *AuthService) publishPresence(ctx context.Context, user *model.User, online bool) {
	event := model.PresenceEvent{
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Online:   online,
		At:       time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.PresenceChannel(), payload).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to publish presence event")
	}
}
