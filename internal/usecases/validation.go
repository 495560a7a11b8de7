package usecases

import (
	"regexp"
	"strings"

	"partner-onboarding.backend/internal/domain/entities"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether email matches local@domain.tld
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domainerrors.InvalidArgument(f.name + " is required")
		}
	}
	return nil
}

func trimPhone(p *entities.Phone) entities.Phone {
	if p == nil {
		return entities.Phone{}
	}
	return entities.Phone{
		Code:     strings.TrimSpace(p.Code),
		Name:     strings.TrimSpace(p.Name),
		Number:   strings.TrimSpace(p.Number),
		DialCode: strings.TrimSpace(p.DialCode),
	}
}

func validatePhone(p *entities.Phone, required bool) error {
	if p == nil {
		if required {
			return domainerrors.InvalidArgument("phone is required")
		}
		return nil
	}
	if strings.TrimSpace(p.Number) == "" {
		return domainerrors.InvalidArgument("phone number is required")
	}
	return nil
}

func validateConsent(consent *bool) error {
	if consent == nil {
		return domainerrors.InvalidArgument("consent must be a boolean")
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return domainerrors.InvalidArgument("email is required")
	}
	if !IsValidEmail(strings.TrimSpace(email)) {
		return domainerrors.InvalidArgument("email is invalid")
	}
	return nil
}

// ValidateSignupRequest checks the shape of a signup payload without touching state
func ValidateSignupRequest(in *entities.SignupRequestInput) error {
	if in == nil {
		return domainerrors.InvalidArgument("payload is required")
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if err := requireFields(
		field{"firstName", in.FirstName},
		field{"lastName", in.LastName},
		field{"businessName", in.BusinessName},
		field{"businessType", in.BusinessType},
		field{"location", in.Location},
	); err != nil {
		return err
	}
	if err := validatePhone(in.Phone, true); err != nil {
		return err
	}
	return validateConsent(in.Consent)
}

// ValidateContactRequest checks the shape of a contact payload. Phone is optional
// but must carry a number when present.
func ValidateContactRequest(in *entities.ContactRequestInput) error {
	if in == nil {
		return domainerrors.InvalidArgument("payload is required")
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if err := requireFields(
		field{"firstName", in.FirstName},
		field{"lastName", in.LastName},
		field{"businessName", in.BusinessName},
		field{"message", in.Message},
	); err != nil {
		return err
	}
	if err := validatePhone(in.Phone, false); err != nil {
		return err
	}
	return validateConsent(in.Consent)
}
