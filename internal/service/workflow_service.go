package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JNHNG0205/ai-content-workflow/internal/apperr"
	"github.com/JNHNG0205/ai-content-workflow/internal/metrics"
	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/JNHNG0205/ai-content-workflow/internal/policy"
	"github.com/JNHNG0205/ai-content-workflow/internal/repository"
	"github.com/JNHNG0205/ai-content-workflow/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// workflowService is the concrete implementation of WorkflowService.
// It holds no mutable state; atomicity comes from ConditionalUpdate.
type workflowService struct {
	contents repository.ContentRepository
	log      zerolog.Logger
	now      func() time.Time
}

func newWorkflowService(contents repository.ContentRepository, log zerolog.Logger) *workflowService {
	return &workflowService{
		contents: contents,
		log:      log.With().Str("service", "workflow").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// NewWorkflowService creates a workflow engine over the given store
func NewWorkflowService(contents repository.ContentRepository, log zerolog.Logger) WorkflowService {
	return newWorkflowService(contents, log)
}

// CreateDraft stores a new DRAFT authored by the caller
func (s *workflowService) CreateDraft(ctx context.Context, who models.Identity, in models.DraftInput) (out *models.Content, err error) {
	defer s.record(policy.OpCreateDraft, &err)

	if err := policy.Authorize(who.Role, policy.OpCreateDraft); err != nil {
		return nil, err
	}
	if errs := validation.ValidateDraft(in); len(errs) > 0 {
		return nil, apperr.Validation("invalid content", errs)
	}

	now := s.now()
	c := &models.Content{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		Body:      in.Body,
		Status:    models.StatusDraft,
		AuthorID:  who.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.contents.Create(ctx, c); err != nil {
		return nil, apperr.Internal("failed to create content", err)
	}

	s.log.Info().Str("content_id", c.ID).Str("author_id", who.UserID).Msg("Draft created")
	return c, nil
}

// UpdateContent replaces title and body of the caller's own DRAFT
func (s *workflowService) UpdateContent(ctx context.Context, who models.Identity, id string, in models.DraftInput) (out *models.Content, err error) {
	defer s.record(policy.OpUpdateDraft, &err)

	if err := policy.Authorize(who.Role, policy.OpUpdateDraft); err != nil {
		return nil, err
	}
	if errs := validation.ValidateDraft(in); len(errs) > 0 {
		return nil, apperr.Validation("invalid content", errs)
	}

	title := strings.TrimSpace(in.Title)
	return s.transition(ctx, policy.OpUpdateDraft, id,
		repository.Precondition{Status: models.StatusDraft, AuthorID: who.UserID},
		repository.Changes{Title: &title, Body: &in.Body},
	)
}

// SubmitDraft moves the caller's own DRAFT to SUBMITTED
func (s *workflowService) SubmitDraft(ctx context.Context, who models.Identity, id string) (out *models.Content, err error) {
	defer s.record(policy.OpSubmitDraft, &err)

	if err := policy.Authorize(who.Role, policy.OpSubmitDraft); err != nil {
		return nil, err
	}
	return s.transition(ctx, policy.OpSubmitDraft, id,
		repository.Precondition{Status: models.StatusDraft, AuthorID: who.UserID},
		repository.Changes{Status: statusPtr(models.StatusSubmitted)},
	)
}

// ClaimForReview records the caller as reviewer of a SUBMITTED item.
// The first claim wins; re-claiming one's own claim succeeds unchanged.
func (s *workflowService) ClaimForReview(ctx context.Context, who models.Identity, id string) (out *models.Content, err error) {
	defer s.record(policy.OpClaim, &err)

	if err := policy.Authorize(who.Role, policy.OpClaim); err != nil {
		return nil, err
	}
	reviewer := who.UserID
	return s.transition(ctx, policy.OpClaim, id,
		repository.Precondition{Status: models.StatusSubmitted, NotAuthorID: who.UserID, ClaimableBy: who.UserID},
		repository.Changes{ReviewerID: &reviewer},
	)
}

// Approve moves a SUBMITTED item claimed by the caller to APPROVED
func (s *workflowService) Approve(ctx context.Context, who models.Identity, id string) (out *models.Content, err error) {
	defer s.record(policy.OpApprove, &err)

	if err := policy.Authorize(who.Role, policy.OpApprove); err != nil {
		return nil, err
	}
	return s.transition(ctx, policy.OpApprove, id,
		repository.Precondition{Status: models.StatusSubmitted, ReviewerID: who.UserID, NotAuthorID: who.UserID},
		repository.Changes{Status: statusPtr(models.StatusApproved)},
	)
}

// Reject moves a SUBMITTED item claimed by the caller to REJECTED with an
// optional comment. A blank comment stores no comment.
func (s *workflowService) Reject(ctx context.Context, who models.Identity, id string, comment string) (out *models.Content, err error) {
	defer s.record(policy.OpReject, &err)

	if err := policy.Authorize(who.Role, policy.OpReject); err != nil {
		return nil, err
	}
	comment = strings.TrimSpace(comment)
	if errs := validation.ValidateComment(comment); len(errs) > 0 {
		return nil, apperr.Validation("invalid comment", errs)
	}

	changes := repository.Changes{Status: statusPtr(models.StatusRejected)}
	if comment != "" {
		changes.RejectionComment = &comment
	} else {
		changes.ClearRejectionComment = true
	}
	return s.transition(ctx, policy.OpReject, id,
		repository.Precondition{Status: models.StatusSubmitted, ReviewerID: who.UserID, NotAuthorID: who.UserID},
		changes,
	)
}

// ReviseRejected returns the caller's own REJECTED item to DRAFT. The
// rejection comment and the reviewer claim are both cleared.
func (s *workflowService) ReviseRejected(ctx context.Context, who models.Identity, id string) (out *models.Content, err error) {
	defer s.record(policy.OpReviseRejected, &err)

	if err := policy.Authorize(who.Role, policy.OpReviseRejected); err != nil {
		return nil, err
	}
	return s.transition(ctx, policy.OpReviseRejected, id,
		repository.Precondition{Status: models.StatusRejected, AuthorID: who.UserID},
		repository.Changes{
			Status:                statusPtr(models.StatusDraft),
			ClearReviewer:         true,
			ClearRejectionComment: true,
		},
	)
}

// GetOwnContent returns one item written by the caller
func (s *workflowService) GetOwnContent(ctx context.Context, who models.Identity, id string) (*models.Content, error) {
	if err := policy.Authorize(who.Role, policy.OpReadOwn); err != nil {
		return nil, err
	}
	c, err := s.contents.FindByIDAndOwner(ctx, id, who.UserID)
	if err != nil {
		return nil, apperr.Internal("failed to load content", err)
	}
	if c == nil {
		return nil, apperr.NotFound("content not found")
	}
	return c, nil
}

// ListOwn returns the caller's content in one status, newest first
func (s *workflowService) ListOwn(ctx context.Context, who models.Identity, status models.Status) ([]*models.Content, error) {
	if err := policy.Authorize(who.Role, policy.OpListOwn); err != nil {
		return nil, err
	}
	if !models.ValidStatuses[status] {
		return nil, apperr.Validation("invalid status", []models.ValidationError{
			{Field: "status", Message: "must be one of: DRAFT, SUBMITTED, APPROVED, REJECTED", Value: status},
		})
	}
	items, err := s.contents.ListByAuthorAndStatus(ctx, who.UserID, status)
	if err != nil {
		return nil, apperr.Internal("failed to list content", err)
	}
	return items, nil
}

// ListPending returns every SUBMITTED item, newest first
func (s *workflowService) ListPending(ctx context.Context, who models.Identity) ([]*models.Content, error) {
	if err := policy.Authorize(who.Role, policy.OpListPending); err != nil {
		return nil, err
	}
	items, err := s.contents.ListByStatus(ctx, models.StatusSubmitted)
	if err != nil {
		return nil, apperr.Internal("failed to list pending content", err)
	}
	return items, nil
}

// ListReviewed returns every item the caller has claimed, newest first
func (s *workflowService) ListReviewed(ctx context.Context, who models.Identity) ([]*models.Content, error) {
	if err := policy.Authorize(who.Role, policy.OpListReviewed); err != nil {
		return nil, err
	}
	items, err := s.contents.ListByReviewer(ctx, who.UserID)
	if err != nil {
		return nil, apperr.Internal("failed to list reviewed content", err)
	}
	return items, nil
}

// Counts returns the number of items per status
func (s *workflowService) Counts(ctx context.Context) (models.StatusCounts, error) {
	counts, err := s.contents.CountByStatus(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to count content", err)
	}
	return counts, nil
}

// transition performs exactly one conditional write
func (s *workflowService) transition(ctx context.Context, op policy.Operation, id string, pre repository.Precondition, ch repository.Changes) (*models.Content, error) {
	c, err := s.contents.ConditionalUpdate(ctx, id, pre, ch)
	if errors.Is(err, repository.ErrPreconditionFailed) {
		s.log.Debug().Str("op", string(op)).Str("content_id", id).Msg("Transition precondition failed")
		return nil, apperr.PreconditionFailed(fmt.Sprintf("content cannot %s in its current state", verb(op)))
	}
	if err != nil {
		s.log.Error().Err(err).Str("op", string(op)).Str("content_id", id).Msg("Transition failed")
		return nil, apperr.Internal("failed to update content", err)
	}

	s.log.Info().
		Str("op", string(op)).
		Str("content_id", c.ID).
		Str("status", string(c.Status)).
		Msg("Content transitioned")
	return c, nil
}

func (s *workflowService) record(op policy.Operation, err *error) {
	metrics.TransitionsTotal.WithLabelValues(string(op), outcome(*err)).Inc()
}

func verb(op policy.Operation) string {
	switch op {
	case policy.OpUpdateDraft:
		return "be edited"
	case policy.OpSubmitDraft:
		return "be submitted"
	case policy.OpClaim:
		return "be claimed"
	case policy.OpApprove:
		return "be approved"
	case policy.OpReject:
		return "be rejected"
	case policy.OpReviseRejected:
		return "be revised"
	}
	return "change"
}

func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	return apperr.KindOf(err).Code()
}

func statusPtr(s models.Status) *models.Status {
	return &s
}
