package usecases

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"partner-onboarding.backend/internal/domain/entities"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
	"partner-onboarding.backend/internal/domain/repositories"
	"partner-onboarding.backend/pkg/clock"
	"partner-onboarding.backend/pkg/logger"
	"partner-onboarding.backend/pkg/utils"
)

// RequestUsecase handles signup and contact intake
type RequestUsecase struct {
	requests repositories.RegistrationRequestRepository
	clock    clock.Clock
	metrics  Recorder
}

// NewRequestUsecase creates a new request usecase
func NewRequestUsecase(requests repositories.RegistrationRequestRepository, clk clock.Clock, rec Recorder) *RequestUsecase {
	if clk == nil {
		clk = clock.System{}
	}
	return &RequestUsecase{
		requests: requests,
		clock:    clk,
		metrics:  recorderOrNoop(rec),
	}
}

// SubmitSignup validates and stores a signup request. The assigned id is not returned.
func (u *RequestUsecase) SubmitSignup(ctx context.Context, in *entities.SignupRequestInput) error {
	if err := ValidateSignupRequest(in); err != nil {
		return err
	}

	req := &entities.RegistrationRequest{
		Kind:         entities.RequestKindSignup,
		Email:        strings.TrimSpace(in.Email),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		BusinessName: strings.TrimSpace(in.BusinessName),
		Website:      strings.TrimSpace(in.Website),
		BusinessType: strings.TrimSpace(in.BusinessType),
		Location:     strings.TrimSpace(in.Location),
		Phone:        trimPhone(in.Phone),
		Consent:      *in.Consent,
		Approved:     false,
		CreatedAt:    u.clock.Now(),
	}
	return u.store(ctx, req)
}

// SubmitContact validates and stores a contact request
func (u *RequestUsecase) SubmitContact(ctx context.Context, in *entities.ContactRequestInput) error {
	if err := ValidateContactRequest(in); err != nil {
		return err
	}

	req := &entities.RegistrationRequest{
		Kind:         entities.RequestKindContact,
		Email:        strings.TrimSpace(in.Email),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		BusinessName: strings.TrimSpace(in.BusinessName),
		Message:      strings.TrimSpace(in.Message),
		Phone:        trimPhone(in.Phone),
		Consent:      *in.Consent,
		Approved:     false,
		CreatedAt:    u.clock.Now(),
	}
	return u.store(ctx, req)
}

func (u *RequestUsecase) store(ctx context.Context, req *entities.RegistrationRequest) error {
	if err := u.requests.Create(ctx, req); err != nil {
		logger.Error(ctx, "Failed to store registration request", zap.String("kind", string(req.Kind)), zap.Error(err))
		return domainerrors.InternalError(err)
	}
	u.metrics.IncRequestSubmitted(string(req.Kind))
	logger.Info(ctx, "Registration request received", zap.String("kind", string(req.Kind)), zap.String("request_id", req.ID))
	return nil
}

// ListRequests pages through pending requests, newest first [admin-only]
func (u *RequestUsecase) ListRequests(ctx context.Context, caller *entities.Caller, kind entities.RequestKind, page, limit int) (*entities.RequestListResponse, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	switch kind {
	case "", entities.RequestKindSignup, entities.RequestKindContact:
	default:
		return nil, domainerrors.InvalidArgument("unknown request kind")
	}

	pagination := utils.GetPaginationParams(page, limit)
	items, total, err := u.requests.ListPending(ctx, kind, pagination.Limit, pagination.CalculateOffset())
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	meta := utils.CalculateMeta(total, pagination)
	return &entities.RequestListResponse{
		Requests: items,
		Page:     meta.Page,
		Limit:    meta.Limit,
		Total:    meta.TotalCount,
		Pages:    meta.TotalPages,
	}, nil
}

func requireCaller(caller *entities.Caller) error {
	if caller == nil || caller.UID == "" {
		return domainerrors.Unauthenticated("authentication required")
	}
	return nil
}

func requireAdmin(caller *entities.Caller) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return domainerrors.PermissionDenied("administrator role required")
	}
	return nil
}
