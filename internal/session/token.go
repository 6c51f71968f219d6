package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"greenlight/pkg/apperrors"
	"greenlight/pkg/requestcontext"
)

// Claims represents the JWT claims for back-office session tokens.
type Claims struct {
	ActorName string `json:"actor_name"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates HS256 session tokens.
type TokenManager struct {
	signingKey []byte
	issuer     string
}

func NewTokenManager(signingKey string) *TokenManager {
	return &TokenManager{
		signingKey: []byte(signingKey),
		issuer:     "greenlight-backoffice",
	}
}

// Issue mints a session token for the actor.
func (t *TokenManager) Issue(actor requestcontext.ActorInfo, expiresIn time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ActorName: actor.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    t.issuer,
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(t.signingKey)
}

// Validate parses a token and returns the actor it identifies.
func (t *TokenManager) Validate(tokenString string) (requestcontext.ActorInfo, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return t.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return requestcontext.ActorInfo{}, apperrors.New(apperrors.CodeUnauthorized, "token has expired")
		}
		return requestcontext.ActorInfo{}, apperrors.New(apperrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return requestcontext.ActorInfo{}, apperrors.New(apperrors.CodeUnauthorized, "invalid token claims")
	}

	return requestcontext.ActorInfo{ID: claims.Subject, Name: claims.ActorName}, nil
}
