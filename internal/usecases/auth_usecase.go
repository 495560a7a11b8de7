package usecases

import (
	"context"
	"errors"
	"strings"

	"partner-onboarding.backend/internal/domain/entities"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
	"partner-onboarding.backend/internal/domain/repositories"
	"partner-onboarding.backend/pkg/jwt"
)

// TokenIssuer issues access/refresh token pairs. *jwt.JWTService satisfies it.
type TokenIssuer interface {
	GenerateTokenPair(uid, email, role string) (*jwt.TokenPair, error)
}

// AuthUsecase handles identity sign-in
type AuthUsecase struct {
	identity repositories.IdentityProvider
	tokens   TokenIssuer
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(identity repositories.IdentityProvider, tokens TokenIssuer) *AuthUsecase {
	return &AuthUsecase{identity: identity, tokens: tokens}
}

// SignIn authenticates against the identity provider and returns tokens
// carrying the uid, email and role claims
func (u *AuthUsecase) SignIn(ctx context.Context, input *entities.SignInInput) (*entities.AuthResponse, error) {
	if input == nil || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, domainerrors.InvalidArgument("email and password are required")
	}

	user, err := u.identity.Authenticate(ctx, normalizeEmail(input.Email), input.Password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			return nil, domainerrors.Unauthenticated("invalid email or password")
		}
		return nil, domainerrors.InternalError(err)
	}

	pair, err := u.tokens.GenerateTokenPair(user.UID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}
