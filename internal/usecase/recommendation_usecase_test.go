package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobbify/internal/domain/job"
	"jobbify/internal/domain/prefs"
	"jobbify/internal/domain/scoring"
	"jobbify/internal/domain/swipe"
	"jobbify/internal/pipeline"
	"jobbify/internal/repository"
)

type fakeResultCache struct {
	mu            sync.Mutex
	entries       map[string][]byte
	sets          int
	invalidations int
}

func newFakeResultCache() *fakeResultCache {
	return &fakeResultCache{entries: map[string][]byte{}}
}

func (f *fakeResultCache) GetJSON(_ context.Context, _ string, _ any) (bool, error) {
	return false, nil
}

func (f *fakeResultCache) SetJSON(_ context.Context, key string, _ any, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = []byte("set")
	f.sets++
	return nil
}

func (f *fakeResultCache) InvalidateRecommendations(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidations++
	return nil
}

func newTestRecommendations(jobs []job.Job, prefsRepo *fakePrefsRepo, swipes *fakeSwipeRepo, recRepo *fakeRecRepo) *Recommendations {
	fetcher := &fakeFetcher{result: pipeline.Result{Jobs: jobs, SourceName: "remoteok"}}
	feed := NewFeed(fetcher, nil, nil, nil, nil, nil, time.Hour, 0)
	feed.chance = func() float64 { return 1 }
	var rr repository.RecommendationRepository
	if recRepo != nil {
		rr = recRepo
	}
	return NewRecommendations(feed, prefsRepo, swipes, rr, nil, nil)
}

func scoredJobs() []job.Job {
	return []job.Job{
		{ID: "a", Title: "Senior Go Developer", Company: "Nimbus Labs", Location: "Remote", Pay: "$120K - $150K", Tags: []string{"golang", "backend"}},
		{ID: "b", Title: "Accountant", Company: "Ledger Corp", Location: "Omaha, NE", Pay: "$55K"},
		{ID: "c", Title: "Backend Engineer", Company: "Harbor Analytics", Location: "Remote", Pay: "$130K - $160K", Tags: []string{"backend"}},
	}
}

func goDevPrefs(userID uuid.UUID) prefs.Preferences {
	p := prefs.Default(userID)
	p.Roles = []string{"go developer", "backend engineer"}
	p.MinSalary = 110000
	p.MaxSalary = 160000
	p.RemotePreference = prefs.RemoteRequired
	return p
}

func TestRecommendations_SortedDescendingAndFiltered(t *testing.T) {
	userID := uuid.New()
	prefsRepo := newFakePrefsRepo()
	require.NoError(t, prefsRepo.Upsert(context.Background(), goDevPrefs(userID)))

	uc := newTestRecommendations(scoredJobs(), prefsRepo, newFakeSwipeRepo(), nil)
	res, err := uc.GetRecommendations(context.Background(), userID, RecommendationOptions{})
	require.NoError(t, err)

	assert.False(t, res.UsingDefaults)
	assert.Equal(t, scoring.AlgorithmVersion, res.AlgorithmVersion)
	require.NotEmpty(t, res.Recommendations)

	for i := 1; i < len(res.Recommendations); i++ {
		assert.GreaterOrEqual(t,
			res.Recommendations[i-1].OverallScore,
			res.Recommendations[i].OverallScore,
			"results must be sorted by score, descending",
		)
	}
	for _, rec := range res.Recommendations {
		assert.GreaterOrEqual(t, rec.OverallScore, scoring.DefaultMinScore)
	}
}

func TestRecommendations_MissingPrefsUsesDefaults(t *testing.T) {
	uc := newTestRecommendations(scoredJobs(), newFakePrefsRepo(), newFakeSwipeRepo(), nil)
	res, err := uc.GetRecommendations(context.Background(), uuid.New(), RecommendationOptions{})
	require.NoError(t, err)
	assert.True(t, res.UsingDefaults)
}

// With swipe learning switched off, stored swipe history must have no effect:
// the output equals the pure scoring function applied to the same jobs.
func TestRecommendations_LearningDisabledMatchesPureScore(t *testing.T) {
	userID := uuid.New()
	userPrefs := goDevPrefs(userID)
	userPrefs.AutoLearnFromSwipes = false

	prefsRepo := newFakePrefsRepo()
	require.NoError(t, prefsRepo.Upsert(context.Background(), userPrefs))

	swipes := newFakeSwipeRepo()
	require.NoError(t, swipes.Upsert(context.Background(), swipe.Record{
		UserID: userID, JobID: "x", Direction: swipe.DirectionRight,
		JobCompany: "Nimbus Labs", JobLocation: "Remote", JobTags: []string{"golang"},
	}))

	uc := newTestRecommendations(scoredJobs(), prefsRepo, swipes, nil)
	res, err := uc.GetRecommendations(context.Background(), userID, RecommendationOptions{})
	require.NoError(t, err)

	for _, rec := range res.Recommendations {
		pure := scoring.Score(rec.Job, userPrefs)
		assert.Equal(t, pure.OverallScore, rec.OverallScore,
			"job %s must score identically with learning disabled", rec.Job.ID)
	}
}

func TestRecommendations_LearningEnabledAppliesSignals(t *testing.T) {
	userID := uuid.New()
	prefsRepo := newFakePrefsRepo()
	require.NoError(t, prefsRepo.Upsert(context.Background(), goDevPrefs(userID)))

	swipes := newFakeSwipeRepo()
	require.NoError(t, swipes.Upsert(context.Background(), swipe.Record{
		UserID: userID, JobID: "other", Direction: swipe.DirectionRight,
		JobCompany: "Nimbus Labs", JobLocation: "Remote",
	}))

	uc := newTestRecommendations(scoredJobs(), prefsRepo, swipes, nil)
	res, err := uc.GetRecommendations(context.Background(), userID, RecommendationOptions{})
	require.NoError(t, err)

	base := goDevPrefs(userID)
	for _, rec := range res.Recommendations {
		if rec.Job.ID != "a" {
			continue
		}
		pure := scoring.Score(rec.Job, base)
		assert.Greater(t, rec.OverallScore, pure.OverallScore,
			"liked company must score above its unadjusted value")
		return
	}
	t.Fatal("expected job a in the results")
}

func TestRecommendations_MinScoreOverride(t *testing.T) {
	userID := uuid.New()
	prefsRepo := newFakePrefsRepo()
	require.NoError(t, prefsRepo.Upsert(context.Background(), goDevPrefs(userID)))

	high := 99
	uc := newTestRecommendations(scoredJobs(), prefsRepo, newFakeSwipeRepo(), nil)
	res, err := uc.GetRecommendations(context.Background(), userID, RecommendationOptions{MinScore: &high})
	require.NoError(t, err)

	for _, rec := range res.Recommendations {
		assert.GreaterOrEqual(t, rec.OverallScore, high)
	}
}

func TestRecommendations_PersistsTopResults(t *testing.T) {
	userID := uuid.New()
	prefsRepo := newFakePrefsRepo()
	require.NoError(t, prefsRepo.Upsert(context.Background(), goDevPrefs(userID)))

	recRepo := newFakeRecRepo()
	uc := newTestRecommendations(scoredJobs(), prefsRepo, newFakeSwipeRepo(), recRepo)

	_, err := uc.GetRecommendations(context.Background(), userID, RecommendationOptions{})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return recRepo.batchCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestRecommendations_NilUser(t *testing.T) {
	uc := newTestRecommendations(nil, newFakePrefsRepo(), newFakeSwipeRepo(), nil)
	_, err := uc.GetRecommendations(context.Background(), uuid.Nil, RecommendationOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
