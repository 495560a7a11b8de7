package notifications

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"partner-onboarding.backend/internal/domain/entities"
	"partner-onboarding.backend/pkg/logger"
)

// ErrNoCode is returned when the account carries no registration code to deliver
var ErrNoCode = errors.New("account has no registration code")

// LogNotifier delivers registration codes to the service log. The code itself
// is only written at debug level.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendRegistrationCode(ctx context.Context, account *entities.PartnerAccount) error {
	if account == nil || !account.RegistrationCode.Valid {
		return ErrNoCode
	}
	logger.Info(ctx, "Registration code issued",
		zap.String("account_id", account.ID),
		zap.String("email", account.Email),
	)
	logger.Debug(ctx, "Registration code value",
		zap.String("account_id", account.ID),
		zap.String("code", account.RegistrationCode.String),
	)
	return nil
}
