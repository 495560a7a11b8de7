package usecases_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"partner-onboarding.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	return ctx
}

// Mock RegistrationRequestRepository
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, req *entities.RegistrationRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id string) (*entities.RegistrationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RegistrationRequest), args.Error(1)
}

func (m *MockRequestRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRequestRepository) ListPending(ctx context.Context, kind entities.RequestKind, limit, offset int) ([]*entities.RegistrationRequest, int64, error) {
	args := m.Called(ctx, kind, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.RegistrationRequest), args.Get(1).(int64), args.Error(2)
}

// Mock PartnerAccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entities.PartnerAccount) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) CreateIfAbsent(ctx context.Context, account *entities.PartnerAccount) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) account(args mock.Arguments) (*entities.PartnerAccount, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PartnerAccount), args.Error(1)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*entities.PartnerAccount, error) {
	return m.account(m.Called(ctx, id))
}

func (m *MockAccountRepository) GetByUID(ctx context.Context, uid string) (*entities.PartnerAccount, error) {
	return m.account(m.Called(ctx, uid))
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*entities.PartnerAccount, error) {
	return m.account(m.Called(ctx, email))
}

func (m *MockAccountRepository) FindEnabledByEmailAndCode(ctx context.Context, email, code string) (*entities.PartnerAccount, error) {
	return m.account(m.Called(ctx, email, code))
}

func (m *MockAccountRepository) HasOutstanding(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) UpdateStatus(ctx context.Context, id string, status entities.AccountStatus, at time.Time) error {
	return m.Called(ctx, id, status, at).Error(0)
}

func (m *MockAccountRepository) SaveProfile(ctx context.Context, id string, profile entities.Profile, completed bool, at time.Time) error {
	return m.Called(ctx, id, profile, completed, at).Error(0)
}

func (m *MockAccountRepository) Relocate(ctx context.Context, oldID string, moved *entities.PartnerAccount) error {
	return m.Called(ctx, oldID, moved).Error(0)
}

func (m *MockAccountRepository) RegisteredUIDs(ctx context.Context, uids []string) (map[string]bool, error) {
	args := m.Called(ctx, uids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

// Mock PartnerLocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Create(ctx context.Context, location *entities.PartnerLocation) error {
	return m.Called(ctx, location).Error(0)
}

func (m *MockLocationRepository) CountByAccountID(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocationRepository) ListByAccountID(ctx context.Context, accountID string) ([]*entities.PartnerLocation, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PartnerLocation), args.Error(1)
}

// Mock IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateUser(ctx context.Context, params entities.NewIdentityUser) (*entities.IdentityUser, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.IdentityUser), args.Error(1)
}

func (m *MockIdentityProvider) SetRoleClaim(ctx context.Context, uid string, role entities.IdentityRole) error {
	return m.Called(ctx, uid, role).Error(0)
}

func (m *MockIdentityProvider) DeleteUser(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *MockIdentityProvider) GetUser(ctx context.Context, uid string) (*entities.IdentityUser, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.IdentityUser), args.Error(1)
}

func (m *MockIdentityProvider) Authenticate(ctx context.Context, email, password string) (*entities.IdentityUser, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.IdentityUser), args.Error(1)
}

func (m *MockIdentityProvider) ListByRole(ctx context.Context, role entities.IdentityRole, limit, offset int) ([]*entities.IdentityUser, error) {
	args := m.Called(ctx, role, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.IdentityUser), args.Error(1)
}

// Mock CodeNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendRegistrationCode(ctx context.Context, account *entities.PartnerAccount) error {
	return m.Called(ctx, account).Error(0)
}

// sequenceCodes hands out codes in order
type sequenceCodes struct {
	codes []string
	err   error
	calls int
}

func (s *sequenceCodes) Generate() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	code := s.codes[s.calls%len(s.codes)]
	s.calls++
	return code, nil
}

// stubLimiter answers Allow with fixed values
type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}
