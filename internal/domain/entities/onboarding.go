package entities

// VerifyCodeInput is the code verification payload
type VerifyCodeInput struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// CompleteRegistrationInput is the registration completion payload
type CompleteRegistrationInput struct {
	Email    string `json:"email" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// FinalizeOnboardingInput is the onboarding questionnaire submission
type FinalizeOnboardingInput struct {
	UserID      string  `json:"userId"`
	ProfileData Profile `json:"profileData"`
	Email       string  `json:"email,omitempty"`
}

// OnboardingStatus reports which questionnaire sections have been filled in
type OnboardingStatus struct {
	Address  bool `json:"address"`
	Website  bool `json:"website"`
	Services bool `json:"services"`
	Team     bool `json:"team"`
	Hours    bool `json:"hours"`
}

// OnboardingStatusFromProfile derives the section flags from profile data only
func OnboardingStatusFromProfile(p Profile) OnboardingStatus {
	return OnboardingStatus{
		Address:  p.Has("address"),
		Website:  p.Has("website"),
		Services: p.Has("services"),
		Team:     p.Has("team"),
		Hours:    p.Has("hours"),
	}
}

// ToggleStatusResult is returned by the status toggle
type ToggleStatusResult struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	NewStatus AccountStatus `json:"newStatus"`
}
