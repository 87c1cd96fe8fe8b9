package usecase

import (
	"careserve/internal/domain/user"
	"careserve/internal/pkg/sessiontoken"

	"github.com/google/uuid"
)

// TokenValidator provides session token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type tokenValidatorImpl struct {
	verifier *sessiontoken.Verifier
}

func NewTokenValidator(verifier *sessiontoken.Verifier) TokenValidator {
	return &tokenValidatorImpl{
		verifier: verifier,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := t.verifier.Verify(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", err
	}

	return claims.UserID, role, nil
}
