package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"partner-onboarding.backend/internal/domain/entities"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
	"partner-onboarding.backend/internal/interfaces/http/middleware"
	"partner-onboarding.backend/internal/interfaces/http/response"
)

type RequestLister interface {
	ListRequests(ctx context.Context, caller *entities.Caller, kind entities.RequestKind, page, limit int) (*entities.RequestListResponse, error)
}

type AccountAdministrator interface {
	ApproveRequest(ctx context.Context, caller *entities.Caller, requestID string) error
	ToggleAccountStatus(ctx context.Context, caller *entities.Caller, accountID string) (*entities.ToggleStatusResult, error)
}

// AdminHandler handles admin endpoints
type AdminHandler struct {
	requests RequestLister
	accounts AccountAdministrator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(requests RequestLister, accounts AccountAdministrator) *AdminHandler {
	return &AdminHandler{
		requests: requests,
		accounts: accounts,
	}
}

// ListRequests lists pending requests, newest first
// GET /api/v1/admin/requests?page=1&limit=20&kind=signup
func (h *AdminHandler) ListRequests(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.requests.ListRequests(c.Request.Context(), middleware.GetCaller(c), entities.RequestKind(c.Query("kind")), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ApproveRequest promotes a signup request into an enabled account
// POST /api/v1/admin/requests/:id/approve
func (h *AdminHandler) ApproveRequest(c *gin.Context) {
	if err := h.accounts.ApproveRequest(c.Request.Context(), middleware.GetCaller(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Acknowledge(c, http.StatusOK, "Request approved")
}

// ToggleAccountStatus flips an account between enabled and disabled
// POST /api/v1/admin/accounts/:id/toggle-status
func (h *AdminHandler) ToggleAccountStatus(c *gin.Context) {
	result, err := h.accounts.ToggleAccountStatus(c.Request.Context(), middleware.GetCaller(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainerrors.InvalidArgument(key + " must be an integer")
	}
	return n, nil
}
