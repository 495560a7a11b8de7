package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"partner-onboarding.backend/internal/domain/entities"
	"partner-onboarding.backend/internal/interfaces/http/response"
)

type AuthService interface {
	SignIn(ctx context.Context, input *entities.SignInInput) (*entities.AuthResponse, error)
}

// AuthHandler handles identity sign-in
type AuthHandler struct {
	authUsecase AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase AuthService) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// SignIn exchanges email and password for a token pair
// POST /api/v1/auth/token
func (h *AuthHandler) SignIn(c *gin.Context) {
	var input entities.SignInInput
	if !bindJSON(c, &input) {
		return
	}

	authResponse, err := h.authUsecase.SignIn(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, authResponse)
}
