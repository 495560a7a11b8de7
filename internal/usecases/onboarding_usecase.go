package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"partner-onboarding.backend/internal/domain/entities"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
	"partner-onboarding.backend/internal/domain/repositories"
	"partner-onboarding.backend/pkg/clock"
	"partner-onboarding.backend/pkg/logger"
)

const (
	// maxCodeAllocations bounds regeneration when a fresh code collides with an outstanding one
	maxCodeAllocations = 5
	// DefaultMinPasswordLength applies when the usecase is built without one
	DefaultMinPasswordLength  = 6
	defaultLocationName       = "Main location"
	alertManualReconciliation = "manual_reconciliation"
)

// Saga step names for registration completion
const (
	stepCreateIdentityUser = "create_identity_user"
	stepSetRoleClaim       = "set_role_claim"
	stepRelocateAccount    = "relocate_account"
)

// CodeGenerator issues registration codes. *crypto.CodeGenerator satisfies it.
type CodeGenerator interface {
	Generate() (string, error)
}

// AttemptLimiter throttles repeated attempts under a key. Allow returns false
// once the key is over its limit; an error means the limiter is unavailable.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// OnboardingDeps groups the collaborators of OnboardingUsecase
type OnboardingDeps struct {
	UnitOfWork        repositories.UnitOfWork
	Requests          repositories.RegistrationRequestRepository
	Accounts          repositories.PartnerAccountRepository
	Locations         repositories.PartnerLocationRepository
	Identity          repositories.IdentityProvider
	Notifier          repositories.CodeNotifier
	Codes             CodeGenerator
	Clock             clock.Clock
	Limiter           AttemptLimiter
	Metrics           Recorder
	MinPasswordLength int
}

// OnboardingUsecase drives a partner from approved request to registered,
// onboarded account
type OnboardingUsecase struct {
	uow               repositories.UnitOfWork
	requests          repositories.RegistrationRequestRepository
	accounts          repositories.PartnerAccountRepository
	locations         repositories.PartnerLocationRepository
	identity          repositories.IdentityProvider
	notifier          repositories.CodeNotifier
	codes             CodeGenerator
	clock             clock.Clock
	limiter           AttemptLimiter
	metrics           Recorder
	resolver          *AccountResolver
	minPasswordLength int
}

// NewOnboardingUsecase creates a new onboarding usecase
func NewOnboardingUsecase(deps OnboardingDeps) *OnboardingUsecase {
	clk := deps.Clock
	if clk == nil {
		clk = clock.System{}
	}
	minPassword := deps.MinPasswordLength
	if minPassword <= 0 {
		minPassword = DefaultMinPasswordLength
	}
	return &OnboardingUsecase{
		uow:               deps.UnitOfWork,
		requests:          deps.Requests,
		accounts:          deps.Accounts,
		locations:         deps.Locations,
		identity:          deps.Identity,
		notifier:          deps.Notifier,
		codes:             deps.Codes,
		clock:             clk,
		limiter:           deps.Limiter,
		metrics:           recorderOrNoop(deps.Metrics),
		resolver:          NewAccountResolver(deps.Accounts, clk),
		minPasswordLength: minPassword,
	}
}

// ApproveRequest promotes a signup request into an enabled account carrying a
// fresh registration code. The account write and the request delete commit together.
func (u *OnboardingUsecase) ApproveRequest(ctx context.Context, caller *entities.Caller, requestID string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return domainerrors.InvalidArgument("requestId is required")
	}
	defer u.metrics.ObserveOperation("approve_request", time.Now())

	var account *entities.PartnerAccount
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		req, err := u.requests.GetByID(u.uow.WithLock(txCtx), requestID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("registration request not found")
			}
			return err
		}
		if req.Kind != entities.RequestKindSignup {
			return domainerrors.InvalidArgument("only signup requests can be approved")
		}

		outstanding, err := u.accounts.HasOutstanding(txCtx, req.Email)
		if err != nil {
			return err
		}
		if outstanding {
			return domainerrors.AlreadyExists("an approved account is already awaiting registration for this email", nil)
		}

		code, err := u.allocateCode(txCtx)
		if err != nil {
			return err
		}

		account = entities.NewAccountFromRequest(req, code, u.clock.Now())
		if err := u.accounts.Create(txCtx, account); err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				return domainerrors.AlreadyExists("an approved account is already awaiting registration for this email", err)
			}
			return fmt.Errorf("create account: %w", err)
		}
		if err := u.requests.Delete(txCtx, req.ID); err != nil {
			return fmt.Errorf("delete request: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Warn(ctx, "Approval failed", zap.String("request_id", requestID), zap.Error(err))
		return asAppError(err)
	}

	u.metrics.IncRequestApproved()
	logger.Info(ctx, "Registration request approved",
		zap.String("request_id", requestID),
		zap.String("approved_by", caller.UID),
	)

	if u.notifier != nil {
		if err := u.notifier.SendRegistrationCode(ctx, account); err != nil {
			logger.Error(ctx, "Failed to deliver registration code", zap.String("account_id", account.ID), zap.Error(err))
		}
	}
	return nil
}

func (u *OnboardingUsecase) allocateCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAllocations; i++ {
		code, err := u.codes.Generate()
		if err != nil {
			return "", fmt.Errorf("generate registration code: %w", err)
		}
		inUse, err := u.accounts.CodeInUse(ctx, code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", domainerrors.ErrCodeSpaceExhausted
}

// VerifyCode checks an email and code pair without writing anything
func (u *OnboardingUsecase) VerifyCode(ctx context.Context, in *entities.VerifyCodeInput) error {
	if in == nil {
		return domainerrors.InvalidArgument("email and code are required")
	}
	email, code := normalizeEmail(in.Email), normalizeCode(in.Code)
	if email == "" || code == "" {
		return domainerrors.InvalidArgument("email and code are required")
	}
	if err := u.checkAttempts(ctx, email); err != nil {
		return err
	}

	if _, err := u.matchAccount(ctx, email, code); err != nil {
		u.metrics.IncVerification("invalid")
		return err
	}
	u.metrics.IncVerification("valid")
	return nil
}

// matchAccount applies the verification decision table
func (u *OnboardingUsecase) matchAccount(ctx context.Context, email, code string) (*entities.PartnerAccount, error) {
	account, err := u.accounts.FindEnabledByEmailAndCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("invalid email or registration code")
		}
		return nil, domainerrors.InternalError(err)
	}
	if account.IsRegistered() {
		return nil, domainerrors.AlreadyExists("account already registered", domainerrors.ErrAlreadyRegistered)
	}
	return account, nil
}

func (u *OnboardingUsecase) checkAttempts(ctx context.Context, email string) error {
	if u.limiter == nil {
		return nil
	}
	allowed, err := u.limiter.Allow(ctx, email)
	if err != nil {
		logger.Warn(ctx, "Attempt limiter unavailable, allowing request", zap.Error(err))
		return nil
	}
	if !allowed {
		return domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodePermissionDenied,
			"too many attempts, try again later", domainerrors.ErrTooManyAttempts)
	}
	return nil
}

// CompleteRegistration creates the identity user and migrates the account to
// its uid key. Failures after the identity user exists are compensated.
func (u *OnboardingUsecase) CompleteRegistration(ctx context.Context, in *entities.CompleteRegistrationInput) error {
	if in == nil {
		return domainerrors.InvalidArgument("email, code and password are required")
	}
	email, code := normalizeEmail(in.Email), normalizeCode(in.Code)
	if email == "" || code == "" || in.Password == "" {
		return domainerrors.InvalidArgument("email, code and password are required")
	}
	if len(in.Password) < u.minPasswordLength {
		return domainerrors.InvalidArgument(fmt.Sprintf("password must be at least %d characters", u.minPasswordLength))
	}
	if err := u.checkAttempts(ctx, email); err != nil {
		return err
	}
	defer u.metrics.ObserveOperation("complete_registration", time.Now())

	account, err := u.matchAccount(ctx, email, code)
	if err != nil {
		return err
	}

	saga := NewSaga("complete_registration")

	user, err := u.identity.CreateUser(ctx, entities.NewIdentityUser{
		Email:       account.Email,
		Password:    in.Password,
		DisplayName: account.DisplayName(),
	})
	if err != nil {
		u.metrics.IncRegistration("failed")
		switch {
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			return domainerrors.AlreadyExists("email already registered", err)
		case errors.Is(err, domainerrors.ErrWeakPassword), errors.Is(err, domainerrors.ErrInvalidInput):
			return domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeInvalidArgument, "password rejected by identity provider", err)
		default:
			return domainerrors.InternalError(err)
		}
	}
	uid := user.UID
	saga.Completed(stepCreateIdentityUser, func(ctx context.Context) error {
		return u.identity.DeleteUser(ctx, uid)
	})

	if err := u.identity.SetRoleClaim(ctx, uid, entities.IdentityRolePartner); err != nil {
		return u.abortRegistration(ctx, saga, account, uid, domainerrors.InternalError(err))
	}
	saga.Completed(stepSetRoleClaim, nil)

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		current, err := u.accounts.GetByID(u.uow.WithLock(txCtx), account.ID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.AlreadyExists("account already registered", domainerrors.ErrAlreadyRegistered)
			}
			return err
		}
		switch {
		case current.IsRegistered(), current.RegistrationCode.String != code:
			return domainerrors.AlreadyExists("account already registered", domainerrors.ErrAlreadyRegistered)
		case !current.IsEnabled():
			return domainerrors.NewAppError(http.StatusNotFound, domainerrors.CodeNotFound,
				"invalid email or registration code", domainerrors.ErrAccountDisabled)
		}
		return u.accounts.Relocate(txCtx, current.ID, current.Relocated(uid, u.clock.Now()))
	})
	if err != nil {
		return u.abortRegistration(ctx, saga, account, uid, asAppError(err))
	}
	saga.Completed(stepRelocateAccount, nil)

	u.metrics.IncRegistration("completed")
	logger.Info(ctx, "Partner registration completed",
		zap.String("uid", uid),
		zap.String("previous_key", account.ID),
		zap.Strings("steps", saga.Steps()),
	)
	return nil
}

// abortRegistration runs owed compensations and returns cause unchanged. A
// compensation that fails leaves an orphaned identity user for an operator.
func (u *OnboardingUsecase) abortRegistration(ctx context.Context, saga *Saga, account *entities.PartnerAccount, uid string, cause *domainerrors.AppError) error {
	u.metrics.IncRegistration("failed")
	result := saga.Compensate(context.WithoutCancel(ctx))

	for _, step := range result.Compensated {
		u.metrics.IncCompensation(step, "ok")
	}
	for _, f := range result.Failures {
		u.metrics.IncCompensation(f.Step, "failed")
		logger.Alert(ctx, alertManualReconciliation, "Compensation failed, identity user left without account",
			zap.String("saga", result.Saga),
			zap.String("step", f.Step),
			zap.String("uid", uid),
			zap.String("account_id", account.ID),
			zap.String("email", account.Email),
			zap.Error(f.Err),
		)
	}

	logger.Warn(ctx, "Registration rolled back",
		zap.String("account_id", account.ID),
		zap.Strings("completed", result.Completed),
		zap.Strings("compensated", result.Compensated),
		zap.Bool("clean", result.Clean()),
		zap.NamedError("cause", cause),
		zap.NamedError("compensation", result.Err()),
	)
	return cause
}

// FinalizeOnboarding merges questionnaire data into the caller's account and
// creates its default location the first time
func (u *OnboardingUsecase) FinalizeOnboarding(ctx context.Context, caller *entities.Caller, in *entities.FinalizeOnboardingInput) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if in == nil || strings.TrimSpace(in.UserID) == "" {
		return domainerrors.InvalidArgument("userId is required")
	}
	if in.ProfileData == nil {
		return domainerrors.InvalidArgument("profileData must be an object")
	}
	uid := strings.TrimSpace(in.UserID)
	if caller.UID != uid && !caller.IsAdmin() {
		return domainerrors.PermissionDenied("cannot finalize onboarding for another user")
	}
	defer u.metrics.ObserveOperation("finalize_onboarding", time.Now())

	var strategy string
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		account, used, err := u.resolver.Resolve(u.uow.WithLock(txCtx), uid, in.Email, true)
		if err != nil {
			return err
		}
		strategy = used

		now := u.clock.Now()
		merged := account.Profile.Merge(in.ProfileData)
		if err := u.accounts.SaveProfile(txCtx, account.ID, merged, true, now); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}

		count, err := u.locations.CountByAccountID(txCtx, account.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return u.locations.Create(txCtx, defaultLocation(account, merged, now))
	})
	if err != nil {
		logger.Error(ctx, "Finalize onboarding failed", zap.String("uid", uid), zap.Error(err))
		return asAppError(err)
	}

	u.metrics.IncOnboardingFinalized()
	logger.Info(ctx, "Onboarding finalized", zap.String("uid", uid), zap.String("resolved_by", strategy))
	return nil
}

func defaultLocation(account *entities.PartnerAccount, profile entities.Profile, at time.Time) *entities.PartnerLocation {
	name := profile.String("businessName")
	if name == "" {
		name = strings.TrimSpace(account.BusinessName)
	}
	if name == "" {
		name = defaultLocationName
	}
	address := profileAddress(profile)
	if address == "" {
		address = account.Location
	}
	return &entities.PartnerLocation{
		AccountID: account.ID,
		Name:      name,
		Address:   address,
		IsDefault: true,
		CreatedAt: at,
	}
}

// profileAddress reads address as a string or as an object with formatted/street
func profileAddress(profile entities.Profile) string {
	switch v := profile["address"].(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]interface{}:
		for _, key := range []string{"formatted", "street"} {
			if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// GetOnboardingStatus reports which questionnaire sections the caller has filled in
func (u *OnboardingUsecase) GetOnboardingStatus(ctx context.Context, caller *entities.Caller) (*entities.OnboardingStatus, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	account, _, err := u.resolver.Resolve(ctx, caller.UID, "", false)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("account not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	status := entities.OnboardingStatusFromProfile(account.Profile)
	return &status, nil
}

// ToggleAccountStatus flips an account between enabled and disabled. Nothing
// else on the account changes.
func (u *OnboardingUsecase) ToggleAccountStatus(ctx context.Context, caller *entities.Caller, accountID string) (*entities.ToggleStatusResult, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, domainerrors.InvalidArgument("accountId is required")
	}

	var newStatus entities.AccountStatus
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		account, err := u.accounts.GetByID(u.uow.WithLock(txCtx), accountID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("account not found")
			}
			return err
		}
		newStatus = account.Status.Toggled()
		err = u.accounts.UpdateStatus(txCtx, account.ID, newStatus, u.clock.Now())
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return domainerrors.AlreadyExists("another approved account is already awaiting registration for this email", err)
		}
		return err
	})
	if err != nil {
		return nil, asAppError(err)
	}

	u.metrics.IncStatusToggle(string(newStatus))
	logger.Info(ctx, "Account status changed",
		zap.String("account_id", accountID),
		zap.String("status", string(newStatus)),
		zap.String("changed_by", caller.UID),
	)
	return &entities.ToggleStatusResult{
		Success:   true,
		Message:   "Account " + string(newStatus),
		NewStatus: newStatus,
	}, nil
}

// asAppError keeps typed errors and wraps everything else as internal
func asAppError(err error) *domainerrors.AppError {
	return domainerrors.AsAppError(err)
}
