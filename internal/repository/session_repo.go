package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/JNHNG0205/ai-content-workflow/internal/database"
	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/redis/go-redis/v9"
)

// sessionRepo is the PostgreSQL record of issued sessions
type sessionRepo struct {
	db *database.DB
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *database.DB) SessionRepository {
	return &sessionRepo{db: db}
}

// Create inserts a session row
func (r *sessionRepo) Create(ctx context.Context, s *models.Session) error {
	query := `INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.CreatedAt, s.ExpiresAt)
	return err
}

// Delete removes a session row
func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

// DeleteExpired removes every session that expired before now
func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// RedisSessionStore keeps live sessions as JSON under "<prefix><id>" with a
// TTL matching the session expiry.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
}

type sessionRecord struct {
	UserID    string      `json:"userId"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// NewRedisSessionStore creates a Redis-backed session store. Prefix may be empty.
func NewRedisSessionStore(client *redis.Client, prefix string) *RedisSessionStore {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisSessionStore{client: client, prefix: prefix}
}

func (s *RedisSessionStore) key(id string) string {
	return s.prefix + id
}

// Save stores the session until its expiry
func (s *RedisSessionStore) Save(ctx context.Context, session *models.Session) error {
	b, err := json.Marshal(sessionRecord{
		UserID:    session.UserID,
		Role:      session.Role,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	return s.client.Set(ctx, s.key(session.ID), b, ttl).Err()
}

// Get returns the session, or nil when it is unknown or expired
func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	b, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	if !rec.ExpiresAt.IsZero() && time.Now().After(rec.ExpiresAt) {
		_ = s.client.Del(ctx, s.key(id)).Err()
		return nil, nil
	}
	return &models.Session{
		ID:        id,
		UserID:    rec.UserID,
		Role:      rec.Role,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

// Delete revokes the session
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
