package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JNHNG0205/ai-content-workflow/internal/models"
)

// MemoryContentRepo is an in-process ContentRepository. One mutex covers the
// predicate check and the write, which gives the same compare-and-set
// guarantee as the conditional UPDATE. Callers always receive copies.
type MemoryContentRepo struct {
	mu    sync.Mutex
	items map[string]*models.Content
	now   func() time.Time
}

// NewMemoryContentRepo creates an empty in-memory content repository
func NewMemoryContentRepo() *MemoryContentRepo {
	return &MemoryContentRepo{
		items: make(map[string]*models.Content),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryContentRepo) Create(ctx context.Context, c *models.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = c.Clone()
	return nil
}

func (r *MemoryContentRepo) FindByIDAndOwner(ctx context.Context, id, authorID string) (*models.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || c.AuthorID != authorID {
		return nil, nil
	}
	return c.Clone(), nil
}

func (r *MemoryContentRepo) ConditionalUpdate(ctx context.Context, id string, pre Precondition, ch Changes) (*models.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok || !pre.matches(c) {
		return nil, ErrPreconditionFailed
	}
	ch.apply(c, r.now())
	return c.Clone(), nil
}

func (r *MemoryContentRepo) ListByAuthorAndStatus(ctx context.Context, authorID string, status models.Status) ([]*models.Content, error) {
	return r.filter(func(c *models.Content) bool {
		return c.AuthorID == authorID && c.Status == status
	}), nil
}

func (r *MemoryContentRepo) ListByStatus(ctx context.Context, status models.Status) ([]*models.Content, error) {
	return r.filter(func(c *models.Content) bool { return c.Status == status }), nil
}

func (r *MemoryContentRepo) ListByReviewer(ctx context.Context, reviewerID string) ([]*models.Content, error) {
	return r.filter(func(c *models.Content) bool {
		return c.ReviewerID != nil && *c.ReviewerID == reviewerID
	}), nil
}

func (r *MemoryContentRepo) CountByStatus(ctx context.Context) (models.StatusCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := models.StatusCounts{}
	for s := range models.ValidStatuses {
		counts[s] = 0
	}
	for _, c := range r.items {
		counts[c.Status]++
	}
	return counts, nil
}

func (r *MemoryContentRepo) filter(keep func(*models.Content) bool) []*models.Content {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*models.Content{}
	for _, c := range r.items {
		if keep(c) {
			out = append(out, c.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (p Precondition) matches(c *models.Content) bool {
	if p.Status != "" && c.Status != p.Status {
		return false
	}
	if p.AuthorID != "" && c.AuthorID != p.AuthorID {
		return false
	}
	if p.NotAuthorID != "" && c.AuthorID == p.NotAuthorID {
		return false
	}
	if p.ReviewerID != "" && (c.ReviewerID == nil || *c.ReviewerID != p.ReviewerID) {
		return false
	}
	if p.ClaimableBy != "" && c.ReviewerID != nil && *c.ReviewerID != p.ClaimableBy {
		return false
	}
	return true
}

func (ch Changes) apply(c *models.Content, now time.Time) {
	if ch.Status != nil {
		c.Status = *ch.Status
	}
	if ch.Title != nil {
		c.Title = *ch.Title
	}
	if ch.Body != nil {
		c.Body = *ch.Body
	}
	switch {
	case ch.ClearReviewer:
		c.ReviewerID = nil
	case ch.ReviewerID != nil:
		v := *ch.ReviewerID
		c.ReviewerID = &v
	}
	switch {
	case ch.ClearRejectionComment:
		c.RejectionComment = nil
	case ch.RejectionComment != nil:
		v := *ch.RejectionComment
		c.RejectionComment = &v
	}
	c.UpdatedAt = now
}
