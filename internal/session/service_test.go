package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"greenlight/pkg/apperrors"
	"greenlight/pkg/requestcontext"
)

const testPassword = "correct horse battery staple"

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService(
		NewTokenManager("test-signing-key"),
		"admin@greenlight.local",
		"Back Office",
		string(hash),
		slog.Default(),
	)
}

func TestLoginAndValidateRoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Login(context.Background(), "admin@greenlight.local", testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actor, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "Back Office", actor.Name)
	assert.NotEmpty(t, actor.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "admin@greenlight.local", "nope")
		assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "stranger@example.com", testPassword)
		assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
	})
}

func TestValidateRejectsForgedAndExpiredTokens(t *testing.T) {
	svc := newTestService(t)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Validate("not-a-token")
		assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other := NewTokenManager("different-key")
		forged, err := other.Issue(requestcontext.ActorInfo{ID: "x", Name: "Forger"}, time.Hour)
		require.NoError(t, err)

		_, err = svc.Validate(forged)
		assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := NewTokenManager("test-signing-key").Issue(
			requestcontext.ActorInfo{ID: "x", Name: "Late"}, -time.Minute)
		require.NoError(t, err)

		_, err = svc.Validate(expired)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
	})
}
