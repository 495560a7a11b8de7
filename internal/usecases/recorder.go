package usecases

import "time"

// Recorder receives onboarding metrics. *metrics.Metrics satisfies it.
type Recorder interface {
	IncRequestSubmitted(kind string)
	IncRequestApproved()
	IncVerification(outcome string)
	IncRegistration(outcome string)
	IncCompensation(step, outcome string)
	IncOnboardingFinalized()
	IncStatusToggle(status string)
	ObserveOperation(operation string, start time.Time)
}

type noopRecorder struct{}

func (noopRecorder) IncRequestSubmitted(string)         {}
func (noopRecorder) IncRequestApproved()                {}
func (noopRecorder) IncVerification(string)             {}
func (noopRecorder) IncRegistration(string)             {}
func (noopRecorder) IncCompensation(string, string)     {}
func (noopRecorder) IncOnboardingFinalized()            {}
func (noopRecorder) IncStatusToggle(string)             {}
func (noopRecorder) ObserveOperation(string, time.Time) {}

func recorderOrNoop(r Recorder) Recorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}
