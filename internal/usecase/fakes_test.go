package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobbify/internal/domain/job"
	"jobbify/internal/domain/prefs"
	"jobbify/internal/domain/scoring"
	"jobbify/internal/domain/swipe"
	"jobbify/internal/pipeline"
	"jobbify/internal/repository"
	"jobbify/internal/source"
)

type fakeFetcher struct {
	result pipeline.Result
	calls  int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ source.Query) pipeline.Result {
	f.calls++
	return f.result
}

type fakeCacheRepo struct {
	mu      sync.Mutex
	rows    map[string]job.CachedEntry
	upserts int
	sweeps  int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{rows: make(map[string]job.CachedEntry)}
}

func (f *fakeCacheRepo) Upsert(_ context.Context, entries []job.CachedEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	for _, e := range entries {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now()
		}
		f.rows[e.ExternalJobID] = e
	}
	return nil
}

func (f *fakeCacheRepo) ListFresh(_ context.Context, src job.Source, limit, _ int) ([]job.CachedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	out := make([]job.CachedEntry, 0, len(f.rows))
	for _, e := range f.rows {
		if e.Expired(now) {
			continue
		}
		if src != "" && e.Source != src {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCacheRepo) HasFresh(_ context.Context, src job.Source, maxAge time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	var cutoff time.Time
	if maxAge > 0 {
		cutoff = now.Add(-maxAge)
	}
	for _, e := range f.rows {
		if e.Expired(now) {
			continue
		}
		if src != "" && e.Source != src {
			continue
		}
		if e.CreatedAt.After(cutoff) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCacheRepo) DeleteExpired(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweeps++
	var n int64
	now := time.Now()
	for id, e := range f.rows {
		if e.Expired(now) {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeCacheRepo) rowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (f *fakeCacheRepo) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upserts
}

type fakeSwipeRepo struct {
	mu      sync.Mutex
	records map[string]swipe.Record
}

func newFakeSwipeRepo() *fakeSwipeRepo {
	return &fakeSwipeRepo{records: make(map[string]swipe.Record)}
}

func (f *fakeSwipeRepo) Upsert(_ context.Context, rec swipe.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[rec.UserID.String()+"|"+rec.JobID] = rec
	return nil
}

func (f *fakeSwipeRepo) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]swipe.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]swipe.Record, 0)
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSwipeRepo) ListJobIDs(_ context.Context, userID uuid.UUID) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool)
	for _, r := range f.records {
		if r.UserID == userID {
			out[r.JobID] = true
		}
	}
	return out, nil
}

type fakePrefsRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]prefs.Preferences
}

func newFakePrefsRepo() *fakePrefsRepo {
	return &fakePrefsRepo{rows: make(map[uuid.UUID]prefs.Preferences)}
}

func (f *fakePrefsRepo) Get(_ context.Context, userID uuid.UUID) (prefs.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[userID]
	if !ok {
		return prefs.Preferences{}, repository.ErrPreferencesNotFound
	}
	return p, nil
}

func (f *fakePrefsRepo) Upsert(_ context.Context, p prefs.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[p.UserID] = p
	return nil
}

type fakeRecRepo struct {
	mu      sync.Mutex
	batches int
	rows    map[string]scoring.Recommendation
}

func newFakeRecRepo() *fakeRecRepo {
	return &fakeRecRepo{rows: make(map[string]scoring.Recommendation)}
}

func (f *fakeRecRepo) UpsertBatch(_ context.Context, userID uuid.UUID, _ string, recs []scoring.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches++
	for _, r := range recs {
		f.rows[userID.String()+"|"+r.Job.ID] = r
	}
	return nil
}

func (f *fakeRecRepo) ListByUser(_ context.Context, _ uuid.UUID, _ int) ([]repository.StoredRecommendation, error) {
	return nil, nil
}

func (f *fakeRecRepo) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.batches
}
