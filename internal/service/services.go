package service

import (
	"context"

	"github.com/JNHNG0205/ai-content-workflow/internal/ai"
	"github.com/JNHNG0205/ai-content-workflow/internal/config"
	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/JNHNG0205/ai-content-workflow/internal/repository"
	"github.com/rs/zerolog"
)

// WorkflowService moves content through DRAFT, SUBMITTED, APPROVED and
// REJECTED. Every method returns either the resulting content or an
// *apperr.Error.
type WorkflowService interface {
	CreateDraft(ctx context.Context, who models.Identity, in models.DraftInput) (*models.Content, error)
	UpdateContent(ctx context.Context, who models.Identity, id string, in models.DraftInput) (*models.Content, error)
	SubmitDraft(ctx context.Context, who models.Identity, id string) (*models.Content, error)
	ClaimForReview(ctx context.Context, who models.Identity, id string) (*models.Content, error)
	Approve(ctx context.Context, who models.Identity, id string) (*models.Content, error)
	Reject(ctx context.Context, who models.Identity, id string, comment string) (*models.Content, error)
	ReviseRejected(ctx context.Context, who models.Identity, id string) (*models.Content, error)

	GetOwnContent(ctx context.Context, who models.Identity, id string) (*models.Content, error)
	ListOwn(ctx context.Context, who models.Identity, status models.Status) ([]*models.Content, error)
	ListPending(ctx context.Context, who models.Identity) ([]*models.Content, error)
	ListReviewed(ctx context.Context, who models.Identity) ([]*models.Content, error)
	Counts(ctx context.Context) (models.StatusCounts, error)
}

// AuthService registers accounts and issues and resolves sessions
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Resolve(ctx context.Context, token string) (models.Identity, error)
	Me(ctx context.Context, who models.Identity) (*models.PublicUser, error)
	Logout(ctx context.Context, token string) error
}

// AIService exposes the text generator behind the access policy
type AIService interface {
	Generate(ctx context.Context, who models.Identity, prompt string) (string, error)
	Refine(ctx context.Context, who models.Identity, content, instruction string) (string, error)
}

// SessionService runs the expired-session sweeper
type SessionService interface {
	StartSweeper(ctx context.Context)
	StopSweeper()
	SweepOnce(ctx context.Context) (int64, error)
}

// Services holds all service interfaces
type Services struct {
	Workflow WorkflowService
	Auth     AuthService
	AI       AIService
	Session  SessionService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, writer ai.TextGenerator, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Workflow: newWorkflowService(repos.Content, log),
		Auth:     newAuthService(repos.User, repos.Session, repos.SessionStore, cfg.Session.TTL, log),
		AI:       newAIService(writer, log),
		Session:  newSessionService(repos.Session, cfg.Session.SweepInterval, log),
	}
}
