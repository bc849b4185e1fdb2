package prefs

import (
	"time"

	"github.com/google/uuid"
)

type RemotePreference string

const (
	RemoteRequired     RemotePreference = "required"
	RemotePreferred    RemotePreference = "preferred"
	RemoteAcceptable   RemotePreference = "acceptable"
	RemoteNotPreferred RemotePreference = "not_preferred"
)

func (p RemotePreference) Valid() bool {
	switch p {
	case RemoteRequired, RemotePreferred, RemoteAcceptable, RemoteNotPreferred:
		return true
	}
	return false
}

// Weights are the user-configured mixing factors for the four sub-scores.
// They are expected to sum near 1.0 but this is not enforced anywhere; the
// scoring engine clamps the combined result instead.
type Weights struct {
	Location float64
	Salary   float64
	Role     float64
	Company  float64
}

// Preferences is one row of user_job_preferences, upserted whole on every
// onboarding submission.
type Preferences struct {
	UserID uuid.UUID

	Weights Weights

	Locations  []string
	Roles      []string
	Industries []string
	JobTypes   []string

	RemotePreference  RemotePreference
	MinSalary         int
	MaxSalary         int
	SalaryNegotiable  bool
	WillingToRelocate bool
	ExperienceLevel   string

	AutoLearnFromSwipes bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Default is used when a user has not completed onboarding yet. Callers get a
// flag telling them defaults were used so the client can prompt for
// preferences.
func Default(userID uuid.UUID) Preferences {
	return Preferences{
		UserID: userID,
		Weights: Weights{
			Location: 0.30,
			Salary:   0.25,
			Role:     0.30,
			Company:  0.15,
		},
		RemotePreference:    RemoteAcceptable,
		AutoLearnFromSwipes: true,
	}
}
