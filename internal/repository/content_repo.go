package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/JNHNG0205/ai-content-workflow/internal/database"
	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/google/uuid"
)

const contentColumns = `id, title, body, status, author_id, reviewer_id, rejection_comment, created_at, updated_at`

// contentRepo is the PostgreSQL implementation of ContentRepository
type contentRepo struct {
	db *database.DB
}

// NewContentRepo creates a new content repository
func NewContentRepo(db *database.DB) ContentRepository {
	return &contentRepo{db: db}
}

// Create inserts a new content item
func (r *contentRepo) Create(ctx context.Context, c *models.Content) error {
	query := `
		INSERT INTO contents (id, title, body, status, author_id, reviewer_id, rejection_comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Title, c.Body, c.Status, c.AuthorID,
		nullStringPtr(c.ReviewerID), nullStringPtr(c.RejectionComment),
		c.CreatedAt, c.UpdatedAt,
	)
	return err
}

// FindByIDAndOwner returns the content only if authorID wrote it
func (r *contentRepo) FindByIDAndOwner(ctx context.Context, id, authorID string) (*models.Content, error) {
	if !isUUID(id) || !isUUID(authorID) {
		return nil, nil
	}
	query := `SELECT ` + contentColumns + ` FROM contents WHERE id = $1 AND author_id = $2`
	c, err := scanContent(r.db.QueryRowContext(ctx, query, id, authorID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// ConditionalUpdate applies changes in a single UPDATE whose WHERE clause
// carries the precondition. Row locking makes concurrent callers serialize on
// the row and re-check the predicate, so at most one of them wins.
func (r *contentRepo) ConditionalUpdate(ctx context.Context, id string, pre Precondition, ch Changes) (*models.Content, error) {
	if !isUUID(id) {
		return nil, ErrPreconditionFailed
	}

	args := []interface{}{id}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var sets []string
	if ch.Status != nil {
		sets = append(sets, "status = "+arg(*ch.Status))
	}
	if ch.Title != nil {
		sets = append(sets, "title = "+arg(*ch.Title))
	}
	if ch.Body != nil {
		sets = append(sets, "body = "+arg(*ch.Body))
	}
	switch {
	case ch.ClearReviewer:
		sets = append(sets, "reviewer_id = NULL")
	case ch.ReviewerID != nil:
		sets = append(sets, "reviewer_id = "+arg(*ch.ReviewerID))
	}
	switch {
	case ch.ClearRejectionComment:
		sets = append(sets, "rejection_comment = NULL")
	case ch.RejectionComment != nil:
		sets = append(sets, "rejection_comment = "+arg(*ch.RejectionComment))
	}
	sets = append(sets, "updated_at = "+arg(time.Now().UTC()))

	where := []string{"id = $1"}
	if pre.Status != "" {
		where = append(where, "status = "+arg(pre.Status))
	}
	for _, v := range []string{pre.AuthorID, pre.NotAuthorID, pre.ReviewerID, pre.ClaimableBy} {
		if v != "" && !isUUID(v) {
			return nil, ErrPreconditionFailed
		}
	}
	if pre.AuthorID != "" {
		where = append(where, "author_id = "+arg(pre.AuthorID))
	}
	if pre.NotAuthorID != "" {
		where = append(where, "author_id <> "+arg(pre.NotAuthorID))
	}
	if pre.ReviewerID != "" {
		where = append(where, "reviewer_id = "+arg(pre.ReviewerID))
	}
	if pre.ClaimableBy != "" {
		p := arg(pre.ClaimableBy)
		where = append(where, "(reviewer_id IS NULL OR reviewer_id = "+p+")")
	}

	query := fmt.Sprintf(`UPDATE contents SET %s WHERE %s RETURNING %s`,
		strings.Join(sets, ", "), strings.Join(where, " AND "), contentColumns)

	c, err := scanContent(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPreconditionFailed
	}
	if err != nil {
		return nil, fmt.Errorf("conditional update: %w", err)
	}
	return c, nil
}

// ListByAuthorAndStatus returns the author's content in one status, newest first
func (r *contentRepo) ListByAuthorAndStatus(ctx context.Context, authorID string, status models.Status) ([]*models.Content, error) {
	if !isUUID(authorID) {
		return []*models.Content{}, nil
	}
	query := `SELECT ` + contentColumns + ` FROM contents
		WHERE author_id = $1 AND status = $2 ORDER BY created_at DESC`
	return r.list(ctx, query, authorID, status)
}

// ListByStatus returns all content in one status, newest first
func (r *contentRepo) ListByStatus(ctx context.Context, status models.Status) ([]*models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE status = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, status)
}

// ListByReviewer returns content claimed by the reviewer, newest first
func (r *contentRepo) ListByReviewer(ctx context.Context, reviewerID string) ([]*models.Content, error) {
	if !isUUID(reviewerID) {
		return []*models.Content{}, nil
	}
	query := `SELECT ` + contentColumns + ` FROM contents WHERE reviewer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, reviewerID)
}

// CountByStatus returns the number of content items per status
func (r *contentRepo) CountByStatus(ctx context.Context) (models.StatusCounts, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM contents GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := models.StatusCounts{}
	for s := range models.ValidStatuses {
		counts[s] = 0
	}
	for rows.Next() {
		var status models.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *contentRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.Content, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.Content{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContent(row rowScanner) (*models.Content, error) {
	var c models.Content
	var reviewerID, comment sql.NullString
	err := row.Scan(
		&c.ID, &c.Title, &c.Body, &c.Status, &c.AuthorID,
		&reviewerID, &comment, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reviewerID.Valid {
		c.ReviewerID = &reviewerID.String
	}
	if comment.Valid {
		c.RejectionComment = &comment.String
	}
	return &c, nil
}

// helper to convert a nil pointer to NULL
func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
