package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"partner-onboarding.backend/internal/domain/entities"
	"partner-onboarding.backend/internal/interfaces/http/middleware"
	"partner-onboarding.backend/internal/interfaces/http/response"
)

type OnboardingService interface {
	FinalizeOnboarding(ctx context.Context, caller *entities.Caller, in *entities.FinalizeOnboardingInput) error
	GetOnboardingStatus(ctx context.Context, caller *entities.Caller) (*entities.OnboardingStatus, error)
}

// OnboardingHandler handles the authenticated partner's onboarding questionnaire
type OnboardingHandler struct {
	service OnboardingService
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(service OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

// Finalize merges questionnaire answers into the account profile
// POST /api/v1/onboarding/finalize
func (h *OnboardingHandler) Finalize(c *gin.Context) {
	var input entities.FinalizeOnboardingInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.service.FinalizeOnboarding(c.Request.Context(), middleware.GetCaller(c), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Acknowledge(c, http.StatusOK, "Onboarding completed")
}

// Status reports which profile sections are filled in
// GET /api/v1/onboarding/status
func (h *OnboardingHandler) Status(c *gin.Context) {
	status, err := h.service.GetOnboardingStatus(c.Request.Context(), middleware.GetCaller(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}
