package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"partner-onboarding.backend/internal/domain/entities"
	"partner-onboarding.backend/internal/interfaces/http/response"
)

type RegistrationService interface {
	VerifyCode(ctx context.Context, in *entities.VerifyCodeInput) error
	CompleteRegistration(ctx context.Context, in *entities.CompleteRegistrationInput) error
}

// RegistrationHandler handles code verification and registration completion
type RegistrationHandler struct {
	service RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(service RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// VerifyCode checks a registration code without consuming it
// POST /api/v1/registration/verify
func (h *RegistrationHandler) VerifyCode(c *gin.Context) {
	var input entities.VerifyCodeInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.service.VerifyCode(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Acknowledge(c, http.StatusOK, "Code verified")
}

// CompleteRegistration creates the partner's login and binds it to the account
// POST /api/v1/registration/complete
func (h *RegistrationHandler) CompleteRegistration(c *gin.Context) {
	var input entities.CompleteRegistrationInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.service.CompleteRegistration(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Acknowledge(c, http.StatusCreated, "Registration completed. You can now sign in.")
}
