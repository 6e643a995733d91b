package auth

import (
	"context"
	"testing"
	"time"

	"invoice-desk/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	creds, err := NewCredentials([]config.Credential{{Username: "owner", Password: "owner-pass"}})
	require.NoError(t, err)
	tokens, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	return NewService(creds, tokens)
}

func TestService_Login(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		session, err := svc.Login(ctx, "owner", "owner-pass")
		require.NoError(t, err)
		assert.Equal(t, "owner", session.Username)
		assert.NotEmpty(t, session.Token)

		claims, err := svc.Authenticate(ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, "owner", claims.Username)
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		session, err := svc.Login(ctx, "owner", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, session)
	})
}

func TestService_Authenticate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
