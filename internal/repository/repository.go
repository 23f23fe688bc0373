package repository

import (
	"context"
	"errors"
	"time"

	"github.com/JNHNG0205/ai-content-workflow/internal/database"
	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrPreconditionFailed is returned by ConditionalUpdate when no stored
	// entity satisfied the precondition, including when the id does not exist.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrDuplicateEmail is returned when a user with the same email exists
	ErrDuplicateEmail = errors.New("email already in use")
)

// Precondition describes the stored state a conditional write requires.
// Empty string fields are not checked.
type Precondition struct {
	Status      models.Status
	AuthorID    string // author_id must equal
	NotAuthorID string // author_id must differ
	ReviewerID  string // reviewer_id must equal
	ClaimableBy string // reviewer_id must be NULL or equal
}

// Changes describes the fields a conditional write sets. Nil fields are left
// untouched; the Clear flags set the column to NULL.
type Changes struct {
	Status                *models.Status
	Title                 *string
	Body                  *string
	ReviewerID            *string
	ClearReviewer         bool
	RejectionComment      *string
	ClearRejectionComment bool
}

// ContentRepository defines the interface for content data operations
type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	FindByIDAndOwner(ctx context.Context, id, authorID string) (*models.Content, error)
	ConditionalUpdate(ctx context.Context, id string, pre Precondition, changes Changes) (*models.Content, error)
	ListByAuthorAndStatus(ctx context.Context, authorID string, status models.Status) ([]*models.Content, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Content, error)
	ListByReviewer(ctx context.Context, reviewerID string) ([]*models.Content, error)
	CountByStatus(ctx context.Context) (models.StatusCounts, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionRepository keeps the durable record of issued sessions
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionStore is the live session lookup consulted on every request
type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Content      ContentRepository
	User         UserRepository
	Session      SessionRepository
	SessionStore SessionStore
}

// New creates all repositories with the given database and Redis connections
func New(db *database.DB, rdb *redis.Client, sessionPrefix string) *Repositories {
	return &Repositories{
		Content:      NewContentRepo(db),
		User:         NewUserRepo(db),
		Session:      NewSessionRepo(db),
		SessionStore: NewRedisSessionStore(rdb, sessionPrefix),
	}
}
