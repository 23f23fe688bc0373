package service

import (
	"context"
	"sync"
	"time"

	"github.com/JNHNG0205/ai-content-workflow/internal/metrics"
	"github.com/JNHNG0205/ai-content-workflow/internal/repository"
	"github.com/rs/zerolog"
)

const defaultSweepInterval = 10 * time.Minute

// sessionService is the concrete implementation of SessionService.
// Redis expires live sessions on its own; the sweeper keeps the durable
// session table from growing without bound.
type sessionService struct {
	sessions repository.SessionRepository
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
	mu      sync.Mutex
}

func newSessionService(sessions repository.SessionRepository, interval time.Duration, log zerolog.Logger) *sessionService {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &sessionService{
		sessions: sessions,
		interval: interval,
		log:      log.With().Str("service", "session").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// NewSessionService creates a sweeper over the session table
func NewSessionService(sessions repository.SessionRepository, interval time.Duration, log zerolog.Logger) SessionService {
	return newSessionService(sessions, interval, log)
}

// StartSweeper runs the sweep loop until ctx is cancelled or StopSweeper is
// called. It blocks, so callers start it in a goroutine.
func (s *sessionService) StartSweeper(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	defer close(s.done)

	s.log.Info().Dur("interval", s.interval).Msg("Session sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			s.log.Info().Msg("Session sweeper stopping")
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(s.ctx); err != nil && s.ctx.Err() == nil {
				s.log.Error().Err(err).Msg("Failed to sweep expired sessions")
			}
		}
	}
}

// StopSweeper stops the sweep loop and waits for it to exit
func (s *sessionService) StopSweeper() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	<-s.done
	s.running = false
	s.log.Info().Msg("Session sweeper stopped")
}

// SweepOnce deletes every expired session row
func (s *sessionService) SweepOnce(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.SessionsSweptTotal.Add(float64(n))
		s.log.Info().Int64("deleted", n).Msg("Expired sessions removed")
	}
	return n, nil
}
