package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/JNHNG0205/ai-content-workflow/internal/apperr"
	"github.com/JNHNG0205/ai-content-workflow/internal/auth"
	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/JNHNG0205/ai-content-workflow/internal/repository"
	"github.com/JNHNG0205/ai-content-workflow/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const invalidCredentials = "Invalid email or password"

// decoyHash is verified against when the email is unknown so a failed login
// costs the same argon2 work whether or not the account exists
var decoyHash = sync.OnceValue(func() string {
	h, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		panic(err)
	}
	return h
})

// authService is the concrete implementation of AuthService
type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	store    repository.SessionStore
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time
	verify   func(password, encoded string) (bool, error)
}

func newAuthService(users repository.UserRepository, sessions repository.SessionRepository, store repository.SessionStore, ttl time.Duration, log zerolog.Logger) *authService {
	return &authService{
		users:    users,
		sessions: sessions,
		store:    store,
		ttl:      ttl,
		log:      log.With().Str("service", "auth").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
		verify:   auth.CheckPassword,
	}
}

// NewAuthService creates an auth service over the given stores
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, store repository.SessionStore, ttl time.Duration, log zerolog.Logger) AuthService {
	return newAuthService(users, sessions, store, ttl, log)
}

// Register creates an account. Emails are stored lower-cased.
func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if errs := validation.ValidateRegistration(req); len(errs) > 0 {
		return nil, apperr.Validation("invalid registration", errs)
	}
	if req.Role == "" {
		req.Role = models.RoleWriter
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperr.Validation("Email already in use", []models.ValidationError{
				{Field: "email", Message: "email already in use"},
			})
		}
		return nil, apperr.Internal("failed to create user", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues a session token
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if errs := validation.ValidateCredentials(email, req.Password); len(errs) > 0 {
		return nil, apperr.Validation("invalid credentials", errs)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if user == nil {
		_, _ = s.verify(req.Password, decoyHash())
		return nil, apperr.Unauthenticated(invalidCredentials)
	}
	ok, err := s.verify(req.Password, user.PasswordHash)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("Stored password hash unreadable")
		return nil, apperr.Unauthenticated(invalidCredentials)
	}
	if !ok {
		return nil, apperr.Unauthenticated(invalidCredentials)
	}

	now := s.now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, apperr.Internal("failed to record session", err)
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, apperr.Internal("failed to store session", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("User logged in")
	return &models.LoginResponse{SessionID: session.ID, User: user.Public()}, nil
}

// Resolve maps a session token to the caller identity
func (s *authService) Resolve(ctx context.Context, token string) (models.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Identity{}, apperr.Unauthenticated("missing session token")
	}
	session, err := s.store.Get(ctx, token)
	if err != nil {
		return models.Identity{}, apperr.Internal("failed to resolve session", err)
	}
	if session == nil || !models.ValidRoles[session.Role] {
		return models.Identity{}, apperr.Unauthenticated("invalid or expired session")
	}
	return session.Identity(), nil
}

// Me returns the public profile of the caller
func (s *authService) Me(ctx context.Context, who models.Identity) (*models.PublicUser, error) {
	user, err := s.users.GetByID(ctx, who.UserID)
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperr.Unauthenticated("user no longer exists")
	}
	pub := user.Public()
	return &pub, nil
}

// Logout revokes the session in both stores
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.store.Delete(ctx, token); err != nil {
		return apperr.Internal("failed to revoke session", err)
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("Failed to delete session record")
	}
	return nil
}
