package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"partner-onboarding.backend/internal/domain/entities"
	"partner-onboarding.backend/internal/interfaces/http/response"
)

type RequestService interface {
	SubmitSignup(ctx context.Context, in *entities.SignupRequestInput) error
	SubmitContact(ctx context.Context, in *entities.ContactRequestInput) error
}

// RequestHandler handles the public intake forms
type RequestHandler struct {
	requestUsecase RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestUsecase RequestService) *RequestHandler {
	return &RequestHandler{requestUsecase: requestUsecase}
}

// SubmitSignup stores a partner signup request
// POST /api/v1/requests/signup
func (h *RequestHandler) SubmitSignup(c *gin.Context) {
	var input entities.SignupRequestInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.requestUsecase.SubmitSignup(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Acknowledge(c, http.StatusCreated, "Request submitted. We will contact you once it has been reviewed.")
}

// SubmitContact stores a contact form submission
// POST /api/v1/requests/contact
func (h *RequestHandler) SubmitContact(c *gin.Context) {
	var input entities.ContactRequestInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.requestUsecase.SubmitContact(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Acknowledge(c, http.StatusCreated, "Message received. We will get back to you shortly.")
}
