package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"partner-onboarding.backend/internal/domain/entities"
	"partner-onboarding.backend/internal/interfaces/http/middleware"
)

type requestServiceStub struct {
	signupFn  func(ctx context.Context, in *entities.SignupRequestInput) error
	contactFn func(ctx context.Context, in *entities.ContactRequestInput) error
}

func (s requestServiceStub) SubmitSignup(ctx context.Context, in *entities.SignupRequestInput) error {
	return s.signupFn(ctx, in)
}
func (s requestServiceStub) SubmitContact(ctx context.Context, in *entities.ContactRequestInput) error {
	return s.contactFn(ctx, in)
}

type registrationServiceStub struct {
	verifyFn   func(ctx context.Context, in *entities.VerifyCodeInput) error
	completeFn func(ctx context.Context, in *entities.CompleteRegistrationInput) error
}

func (s registrationServiceStub) VerifyCode(ctx context.Context, in *entities.VerifyCodeInput) error {
	return s.verifyFn(ctx, in)
}
func (s registrationServiceStub) CompleteRegistration(ctx context.Context, in *entities.CompleteRegistrationInput) error {
	return s.completeFn(ctx, in)
}

type authServiceStub struct {
	signInFn func(ctx context.Context, in *entities.SignInInput) (*entities.AuthResponse, error)
}

func (s authServiceStub) SignIn(ctx context.Context, in *entities.SignInInput) (*entities.AuthResponse, error) {
	return s.signInFn(ctx, in)
}

type onboardingServiceStub struct {
	finalizeFn func(ctx context.Context, caller *entities.Caller, in *entities.FinalizeOnboardingInput) error
	statusFn   func(ctx context.Context, caller *entities.Caller) (*entities.OnboardingStatus, error)
}

func (s onboardingServiceStub) FinalizeOnboarding(ctx context.Context, caller *entities.Caller, in *entities.FinalizeOnboardingInput) error {
	return s.finalizeFn(ctx, caller, in)
}
func (s onboardingServiceStub) GetOnboardingStatus(ctx context.Context, caller *entities.Caller) (*entities.OnboardingStatus, error) {
	return s.statusFn(ctx, caller)
}

type adminServiceStub struct {
	listFn    func(ctx context.Context, caller *entities.Caller, kind entities.RequestKind, page, limit int) (*entities.RequestListResponse, error)
	approveFn func(ctx context.Context, caller *entities.Caller, requestID string) error
	toggleFn  func(ctx context.Context, caller *entities.Caller, accountID string) (*entities.ToggleStatusResult, error)
}

func (s adminServiceStub) ListRequests(ctx context.Context, caller *entities.Caller, kind entities.RequestKind, page, limit int) (*entities.RequestListResponse, error) {
	return s.listFn(ctx, caller, kind, page, limit)
}
func (s adminServiceStub) ApproveRequest(ctx context.Context, caller *entities.Caller, requestID string) error {
	return s.approveFn(ctx, caller, requestID)
}
func (s adminServiceStub) ToggleAccountStatus(ctx context.Context, caller *entities.Caller, accountID string) (*entities.ToggleStatusResult, error) {
	return s.toggleFn(ctx, caller, accountID)
}

// asCaller stands in for AuthMiddleware
func asCaller(uid string, role entities.IdentityRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Set(middleware.UserEmailKey, uid+"@example.com")
		c.Set(middleware.UserRoleKey, string(role))
		c.Next()
	}
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
