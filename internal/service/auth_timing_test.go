package service

import (
	"context"
	"testing"
	"time"

	"github.com/JNHNG0205/ai-content-workflow/internal/apperr"
	"github.com/JNHNG0205/ai-content-workflow/internal/auth"
	"github.com/JNHNG0205/ai-content-workflow/internal/mocks"
	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogin_VerifiesPasswordForUnknownEmail checks that a login for a missing
// account still runs a password verification, against a real argon2 hash
func TestLogin_VerifiesPasswordForUnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(mocks.NewMockUserRepository(), mocks.NewMockSessionRepository(), mocks.NewMockSessionStore(), time.Hour, zerolog.Nop())

	var hashes []string
	svc.verify = func(password, encoded string) (bool, error) {
		hashes = append(hashes, encoded)
		return auth.CheckPassword(password, encoded)
	}

	_, err := svc.Register(ctx, models.RegisterRequest{Email: "known@example.com", Password: "password123"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		email string
	}{
		{name: "unknown email", email: "ghost@example.com"},
		{name: "known email with wrong password", email: "known@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashes = nil
			_, err := svc.Login(ctx, models.LoginRequest{Email: tt.email, Password: "wrong-password"})
			assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
			require.Len(t, hashes, 1, "exactly one verification per attempt")

			ok, err := auth.CheckPassword("wrong-password", hashes[0])
			require.NoError(t, err, "verified against a well-formed hash")
			assert.False(t, ok)
		})
	}
}
