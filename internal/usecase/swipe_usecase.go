package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"jobbify/internal/domain/swipe"
	"jobbify/internal/repository"
)

type SwipeInput struct {
	JobID       string
	Direction   swipe.Direction
	JobTitle    string
	JobCompany  string
	JobLocation string
	JobTags     []string
	MatchScore  *int
}

// Swipes records decisions and keeps the recommendation cache honest: every
// accepted swipe invalidates the user's cached scores, since the swipe is a
// new learning signal.
type Swipes struct {
	repo   repository.SwipeRepository
	cache  resultCache
	logger *log.Logger
}

func NewSwipes(repo repository.SwipeRepository, cache resultCache, logger *log.Logger) *Swipes {
	return &Swipes{repo: repo, cache: cache, logger: logger}
}

func (s *Swipes) Record(ctx context.Context, userID uuid.UUID, in SwipeInput) error {
	if userID == uuid.Nil {
		return ErrInvalidInput
	}
	in.JobID = strings.TrimSpace(in.JobID)
	if in.JobID == "" || !in.Direction.Valid() {
		return ErrInvalidInput
	}
	if in.MatchScore != nil && (*in.MatchScore < 0 || *in.MatchScore > 100) {
		return ErrInvalidInput
	}

	rec := swipe.Record{
		UserID:      userID,
		JobID:       in.JobID,
		Direction:   in.Direction,
		JobTitle:    strings.TrimSpace(in.JobTitle),
		JobCompany:  strings.TrimSpace(in.JobCompany),
		JobLocation: strings.TrimSpace(in.JobLocation),
		JobTags:     in.JobTags,
		MatchScore:  in.MatchScore,
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateRecommendations(ctx, userID.String()); err != nil && s.logger != nil {
			s.logger.Printf("[Swipes] cache invalidation failed user=%s err=%v", userID, err)
		}
	}
	return nil
}

func (s *Swipes) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]swipe.Record, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
