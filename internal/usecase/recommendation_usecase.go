package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"jobbify/internal/domain/prefs"
	"jobbify/internal/domain/scoring"
	"jobbify/internal/repository"
)

// resultCache is the slice of the Redis wrapper the recommendation path
// needs. A nil implementation disables caching without special cases.
type resultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateRecommendations(ctx context.Context, userID string) error
}

type RecommendationOptions struct {
	Search   string
	Limit    int
	MinScore *int
}

type RecommendationResult struct {
	Recommendations  []scoring.Recommendation `json:"recommendations"`
	SourceName       string                   `json:"source"`
	UsingDefaults    bool                     `json:"using_default_preferences"`
	AlgorithmVersion string                   `json:"algorithm_version"`
}

const (
	recommendationCacheTTL  = 5 * time.Minute
	recommendationMaxReturn = 100
)

// Recommendations scores the live feed against the user's stored preferences.
// Scores are recomputed on every request; the job_recommendations table and
// the Redis entry are both write-behind copies for history and latency, never
// the source of truth.
type Recommendations struct {
	feed    *Feed
	prefs   repository.PreferencesRepository
	swipes  repository.SwipeRepository
	recRepo repository.RecommendationRepository
	cache   resultCache
	logger  *log.Logger
}

func NewRecommendations(
	feed *Feed,
	prefsRepo repository.PreferencesRepository,
	swipes repository.SwipeRepository,
	recRepo repository.RecommendationRepository,
	cache resultCache,
	logger *log.Logger,
) *Recommendations {
	return &Recommendations{
		feed:    feed,
		prefs:   prefsRepo,
		swipes:  swipes,
		recRepo: recRepo,
		cache:   cache,
		logger:  logger,
	}
}

func (r *Recommendations) GetRecommendations(ctx context.Context, userID uuid.UUID, opts RecommendationOptions) (RecommendationResult, error) {
	if userID == uuid.Nil {
		return RecommendationResult{}, ErrInvalidInput
	}

	// Only the default request shape is cached; search or threshold
	// overrides always compute fresh.
	cacheable := r.cache != nil && opts.Search == "" && opts.MinScore == nil
	if cacheable {
		var cached RecommendationResult
		if found, err := r.cache.GetJSON(ctx, cacheKeyFor(userID), &cached); err == nil && found {
			return cached, nil
		}
	}

	userPrefs, usingDefaults, err := r.loadPreferences(ctx, userID)
	if err != nil {
		return RecommendationResult{}, err
	}

	feedRes, err := r.feed.FetchJobsForUser(ctx, userID, FeedOptions{Search: opts.Search, Limit: opts.Limit})
	if err != nil {
		return RecommendationResult{}, err
	}

	signals := r.loadSignals(ctx, userID, userPrefs)

	minScore := scoring.DefaultMinScore
	if opts.MinScore != nil {
		minScore = *opts.MinScore
	}

	recs := make([]scoring.Recommendation, 0, len(feedRes.Jobs))
	for _, j := range feedRes.Jobs {
		rec := scoring.Adjust(scoring.Score(j, userPrefs), signals)
		if rec.OverallScore < minScore {
			continue
		}
		recs = append(recs, rec)
	}

	// Ties break on job id so identical inputs produce identical orderings.
	sort.SliceStable(recs, func(i, k int) bool {
		if recs[i].OverallScore != recs[k].OverallScore {
			return recs[i].OverallScore > recs[k].OverallScore
		}
		return recs[i].Job.ID < recs[k].Job.ID
	})

	limit := opts.Limit
	if limit <= 0 || limit > recommendationMaxReturn {
		limit = recommendationMaxReturn
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}

	r.persistAsync(ctx, userID, recs)

	result := RecommendationResult{
		Recommendations:  recs,
		SourceName:       feedRes.SourceName,
		UsingDefaults:    usingDefaults,
		AlgorithmVersion: scoring.AlgorithmVersion,
	}

	if cacheable {
		if err := r.cache.SetJSON(ctx, cacheKeyFor(userID), result, recommendationCacheTTL); err != nil && r.logger != nil {
			r.logger.Printf("[Recs] result cache write failed user=%s err=%v", userID, err)
		}
	}

	return result, nil
}

// History returns previously persisted scores, newest batch first.
func (r *Recommendations) History(ctx context.Context, userID uuid.UUID, limit int) ([]repository.StoredRecommendation, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if r.recRepo == nil {
		return nil, nil
	}
	return r.recRepo.ListByUser(ctx, userID, limit)
}

func (r *Recommendations) loadPreferences(ctx context.Context, userID uuid.UUID) (prefs.Preferences, bool, error) {
	if r.prefs == nil {
		return prefs.Default(userID), true, nil
	}
	p, err := r.prefs.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferencesNotFound) {
			return prefs.Default(userID), true, nil
		}
		return prefs.Preferences{}, false, err
	}
	return p, false, nil
}

// loadSignals is best-effort: swipe learning degrades to the base score when
// disabled, when there is no history, or when the lookup fails.
func (r *Recommendations) loadSignals(ctx context.Context, userID uuid.UUID, p prefs.Preferences) scoring.Signals {
	if !p.AutoLearnFromSwipes || r.swipes == nil {
		return scoring.Signals{}
	}
	records, err := r.swipes.ListByUser(ctx, userID, 200, 0)
	if err != nil {
		if r.logger != nil {
			r.logger.Printf("[Recs] swipe history lookup failed user=%s err=%v", userID, err)
		}
		return scoring.Signals{}
	}
	return scoring.BuildSignals(records)
}

func (r *Recommendations) persistAsync(ctx context.Context, userID uuid.UUID, recs []scoring.Recommendation) {
	if r.recRepo == nil || len(recs) == 0 {
		return
	}
	bg := context.WithoutCancel(ctx)
	go func() {
		wctx, cancel := context.WithTimeout(bg, 15*time.Second)
		defer cancel()
		if err := r.recRepo.UpsertBatch(wctx, userID, scoring.AlgorithmVersion, recs); err != nil {
			if r.logger != nil {
				r.logger.Printf("[Recs] persist failed user=%s err=%v", userID, err)
			}
		}
	}()
}

func cacheKeyFor(userID uuid.UUID) string {
	return "recs:" + userID.String()
}
