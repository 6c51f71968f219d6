// Package session supplies the authenticated actor identity attached to audit
// entries. The back office runs with a single seeded operator account; the
// service verifies its credentials and mints session tokens that middleware
// later turns back into a request-scoped actor.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"greenlight/pkg/apperrors"
	"greenlight/pkg/requestcontext"
)

// TokenTTL bounds how long a minted session token stays valid.
const TokenTTL = 12 * time.Hour

// Service authenticates the seeded back-office operator.
type Service struct {
	tokens       *TokenManager
	actor        requestcontext.ActorInfo
	email        string
	passwordHash []byte
	logger       *slog.Logger
}

// NewService seeds the operator account. The actor ID is generated once per
// process; audit attribution only needs it to be stable for a session.
func NewService(tokens *TokenManager, email, name, passwordHash string, logger *slog.Logger) *Service {
	return &Service{
		tokens:       tokens,
		actor:        requestcontext.ActorInfo{ID: uuid.NewString(), Name: name},
		email:        email,
		passwordHash: []byte(passwordHash),
		logger:       logger,
	}
}

// Login verifies credentials and returns a signed session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email != s.email || len(s.passwordHash) == 0 {
		return "", apperrors.New(apperrors.CodeUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "login rejected",
			"email", email,
		)
		return "", apperrors.New(apperrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.Issue(s.actor, TokenTTL)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, "sign session token", err)
	}
	return token, nil
}

// Validate turns a bearer token back into an actor identity.
func (s *Service) Validate(tokenString string) (requestcontext.ActorInfo, error) {
	return s.tokens.Validate(tokenString)
}
