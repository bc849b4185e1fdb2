package dto

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=120"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SwipeRequest struct {
	JobID       string   `json:"job_id" validate:"required,max=200"`
	Direction   string   `json:"direction" validate:"required,oneof=left right"`
	JobTitle    string   `json:"job_title" validate:"max=300"`
	JobCompany  string   `json:"job_company" validate:"max=300"`
	JobLocation string   `json:"job_location" validate:"max=300"`
	JobTags     []string `json:"job_tags" validate:"max=20,dive,max=60"`
	MatchScore  *int     `json:"match_score" validate:"omitempty,min=0,max=100"`
}

type PreferencesRequest struct {
	WeightLocation float64 `json:"weight_location" validate:"min=0,max=1"`
	WeightSalary   float64 `json:"weight_salary" validate:"min=0,max=1"`
	WeightRole     float64 `json:"weight_role" validate:"min=0,max=1"`
	WeightCompany  float64 `json:"weight_company" validate:"min=0,max=1"`

	Locations  []string `json:"locations" validate:"max=20,dive,max=120"`
	Roles      []string `json:"roles" validate:"max=20,dive,max=120"`
	Industries []string `json:"industries" validate:"max=20,dive,max=120"`
	JobTypes   []string `json:"job_types" validate:"max=20,dive,max=60"`

	RemotePreference  string `json:"remote_preference" validate:"required,oneof=required preferred acceptable not_preferred"`
	MinSalary         int    `json:"min_salary" validate:"min=0"`
	MaxSalary         int    `json:"max_salary" validate:"min=0"`
	SalaryNegotiable  bool   `json:"salary_negotiable"`
	WillingToRelocate bool   `json:"willing_to_relocate"`
	ExperienceLevel   string `json:"experience_level" validate:"omitempty,oneof=entry junior mid senior staff lead"`

	AutoLearnFromSwipes bool `json:"auto_learn_from_swipes"`
}

type RecommendationsRequest struct {
	Search   string `json:"search" validate:"max=200"`
	Limit    int    `json:"limit" validate:"min=0,max=100"`
	MinScore *int   `json:"min_score" validate:"omitempty,min=0,max=100"`
}
