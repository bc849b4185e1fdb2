package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"jobbify/internal/domain/prefs"
	"jobbify/internal/repository"
)

type PreferencesResult struct {
	Preferences   prefs.Preferences `json:"preferences"`
	UsingDefaults bool              `json:"using_defaults"`
}

type Preferences struct {
	repo   repository.PreferencesRepository
	cache  resultCache
	logger *log.Logger
}

func NewPreferences(repo repository.PreferencesRepository, cache resultCache, logger *log.Logger) *Preferences {
	return &Preferences{repo: repo, cache: cache, logger: logger}
}

// Get never fails on a missing row; new users see the defaults plus a flag
// telling the client to run onboarding.
func (p *Preferences) Get(ctx context.Context, userID uuid.UUID) (PreferencesResult, error) {
	if userID == uuid.Nil {
		return PreferencesResult{}, ErrInvalidInput
	}
	stored, err := p.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferencesNotFound) {
			return PreferencesResult{Preferences: prefs.Default(userID), UsingDefaults: true}, nil
		}
		return PreferencesResult{}, err
	}
	return PreferencesResult{Preferences: stored}, nil
}

func (p *Preferences) Update(ctx context.Context, userID uuid.UUID, in prefs.Preferences) error {
	if userID == uuid.Nil {
		return ErrInvalidInput
	}
	if !in.RemotePreference.Valid() {
		return ErrInvalidInput
	}
	w := in.Weights
	if w.Location < 0 || w.Salary < 0 || w.Role < 0 || w.Company < 0 {
		return ErrInvalidInput
	}
	if in.MinSalary < 0 || in.MaxSalary < 0 {
		return ErrInvalidInput
	}
	if in.MaxSalary > 0 && in.MinSalary > in.MaxSalary {
		return ErrInvalidInput
	}

	in.UserID = userID
	if err := p.repo.Upsert(ctx, in); err != nil {
		return err
	}

	// New preferences invalidate every cached score for the user.
	if p.cache != nil {
		if err := p.cache.InvalidateRecommendations(ctx, userID.String()); err != nil && p.logger != nil {
			p.logger.Printf("[Prefs] cache invalidation failed user=%s err=%v", userID, err)
		}
	}
	return nil
}
