package usecases

import (
	"context"
	"errors"

	"github.com/volatiletech/null/v8"
	"partner-onboarding.backend/internal/domain/entities"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
	"partner-onboarding.backend/internal/domain/repositories"
	"partner-onboarding.backend/pkg/clock"
)

// Resolution strategy names, in the order finalize tries them
const (
	StrategyByEmail     = "by-email"
	StrategyByKey       = "by-key"
	StrategyByUIDField  = "by-uid-field"
	StrategyCreateAtKey = "create-at-key"
)

// accountStrategy returns the account it finds, or nil to pass to the next one
type accountStrategy struct {
	name    string
	resolve func(ctx context.Context, uid, email string) (*entities.PartnerAccount, error)
}

// AccountResolver locates the account an authenticated uid acts on. Accounts
// may be in an interim state (unmigrated key, uid field only), so lookups are
// an ordered list of strategies.
type AccountResolver struct {
	accounts repositories.PartnerAccountRepository
	clock    clock.Clock
}

func NewAccountResolver(accounts repositories.PartnerAccountRepository, clk clock.Clock) *AccountResolver {
	if clk == nil {
		clk = clock.System{}
	}
	return &AccountResolver{accounts: accounts, clock: clk}
}

// Resolve walks the strategies in order. With create set, a missing account is
// created at key uid. It returns the account and the name of the strategy that found it.
func (r *AccountResolver) Resolve(ctx context.Context, uid, email string, create bool) (*entities.PartnerAccount, string, error) {
	strategies := []accountStrategy{
		{name: StrategyByEmail, resolve: r.byEmail},
		{name: StrategyByKey, resolve: r.byKey},
		{name: StrategyByUIDField, resolve: r.byUIDField},
	}
	if create {
		strategies = append(strategies, accountStrategy{name: StrategyCreateAtKey, resolve: r.createAtKey})
	}

	for _, s := range strategies {
		account, err := s.resolve(ctx, uid, email)
		if err != nil {
			return nil, s.name, err
		}
		if account != nil {
			return account, s.name, nil
		}
	}
	return nil, "", domainerrors.ErrNotFound
}

// byEmail only accepts an account already bound to uid, so an email hint can
// never redirect a caller onto someone else's account.
func (r *AccountResolver) byEmail(ctx context.Context, uid, email string) (*entities.PartnerAccount, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	account, err := notFoundAsNil(r.accounts.GetByEmail(ctx, email))
	if err != nil || account == nil {
		return nil, err
	}
	if account.UID.String != uid && account.ID != uid {
		return nil, nil
	}
	return account, nil
}

func (r *AccountResolver) byKey(ctx context.Context, uid, _ string) (*entities.PartnerAccount, error) {
	return notFoundAsNil(r.accounts.GetByID(ctx, uid))
}

func (r *AccountResolver) byUIDField(ctx context.Context, uid, _ string) (*entities.PartnerAccount, error) {
	return notFoundAsNil(r.accounts.GetByUID(ctx, uid))
}

func (r *AccountResolver) createAtKey(ctx context.Context, uid, email string) (*entities.PartnerAccount, error) {
	now := r.clock.Now()
	minimal := &entities.PartnerAccount{
		ID:           uid,
		UID:          null.StringFrom(uid),
		Email:        normalizeEmail(email),
		Status:       entities.AccountStatusEnabled,
		ApprovedAt:   now,
		CreatedAt:    now,
		RegisteredAt: null.TimeFrom(now),
		Profile:      entities.Profile{},
		UpdatedAt:    now,
	}
	if err := r.accounts.CreateIfAbsent(ctx, minimal); err != nil {
		return nil, err
	}
	return r.accounts.GetByID(ctx, uid)
}

func notFoundAsNil(account *entities.PartnerAccount, err error) (*entities.PartnerAccount, error) {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, nil
	}
	return account, err
}
