package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobbify/internal/domain/job"
	"jobbify/internal/domain/swipe"
	"jobbify/internal/pipeline"
)

func testJobs() []job.Job {
	return []job.Job{
		{ID: "remoteok-1", Title: "Go Developer", Company: "Acme", Location: "Remote"},
		{ID: "remoteok-2", Title: "Data Engineer", Company: "Harbor", Location: "Berlin"},
	}
}

func newTestFeed(fetcher *fakeFetcher, cacheRepo *fakeCacheRepo, swipes *fakeSwipeRepo) *Feed {
	f := NewFeed(fetcher, cacheRepo, swipes, nil, nil, nil, time.Hour, 0.10)
	f.chance = func() float64 { return 1 } // never trigger the random sweep
	return f
}

func TestFeed_FetchJobsForUser_RefillsCacheOnce(t *testing.T) {
	fetcher := &fakeFetcher{result: pipeline.Result{Jobs: testJobs(), SourceName: "remoteok"}}
	cacheRepo := newFakeCacheRepo()
	f := newTestFeed(fetcher, cacheRepo, newFakeSwipeRepo())

	res, err := f.FetchJobsForUser(context.Background(), uuid.New(), FeedOptions{})
	require.NoError(t, err)
	assert.Len(t, res.Jobs, 2)
	assert.Equal(t, "remoteok", res.SourceName)

	require.Eventually(t, func() bool { return cacheRepo.upsertCount() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 2, cacheRepo.rowCount())
}

// Re-fetching the same batch must not grow the cache.
func TestFeed_FetchJobsForUser_RepeatFetchKeepsRowCount(t *testing.T) {
	fetcher := &fakeFetcher{result: pipeline.Result{Jobs: testJobs(), SourceName: "remoteok"}}
	cacheRepo := newFakeCacheRepo()
	f := newTestFeed(fetcher, cacheRepo, newFakeSwipeRepo())

	f.freshWindow = 0 // force every fetch upstream; the write path is under test

	userID := uuid.New()
	for i := 0; i < 3; i++ {
		_, err := f.FetchJobsForUser(context.Background(), userID, FeedOptions{})
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool { return cacheRepo.upsertCount() == 3 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 2, cacheRepo.rowCount(), "same ids must upsert, not duplicate")
}

func TestFeed_FetchJobsForUser_SkipsCacheForFallbackBatches(t *testing.T) {
	fetcher := &fakeFetcher{result: pipeline.Result{Jobs: testJobs(), SourceName: string(job.SourceFallback)}}
	cacheRepo := newFakeCacheRepo()
	f := newTestFeed(fetcher, cacheRepo, newFakeSwipeRepo())

	_, err := f.FetchJobsForUser(context.Background(), uuid.New(), FeedOptions{})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, cacheRepo.upsertCount(), "fallback jobs must never be cached")
}

func TestFeed_FetchJobsForUser_FiltersSwipedJobs(t *testing.T) {
	fetcher := &fakeFetcher{result: pipeline.Result{Jobs: testJobs(), SourceName: "remoteok"}}
	swipes := newFakeSwipeRepo()
	userID := uuid.New()
	require.NoError(t, swipes.Upsert(context.Background(), swipe.Record{
		UserID: userID, JobID: "remoteok-1", Direction: swipe.DirectionLeft,
	}))

	f := newTestFeed(fetcher, newFakeCacheRepo(), swipes)
	res, err := f.FetchJobsForUser(context.Background(), userID, FeedOptions{ExcludeSwiped: true})
	require.NoError(t, err)

	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "remoteok-2", res.Jobs[0].ID)
}

// Without the exclude flag the deck shows everything, swiped or not.
func TestFeed_FetchJobsForUser_KeepsSwipedWhenNotExcluded(t *testing.T) {
	fetcher := &fakeFetcher{result: pipeline.Result{Jobs: testJobs(), SourceName: "remoteok"}}
	swipes := newFakeSwipeRepo()
	userID := uuid.New()
	require.NoError(t, swipes.Upsert(context.Background(), swipe.Record{
		UserID: userID, JobID: "remoteok-1", Direction: swipe.DirectionLeft,
	}))

	f := newTestFeed(fetcher, newFakeCacheRepo(), swipes)
	res, err := f.FetchJobsForUser(context.Background(), userID, FeedOptions{ExcludeSwiped: false})
	require.NoError(t, err)

	assert.Len(t, res.Jobs, 2)
}

// A cache refilled within the fresh window serves the next plain feed request
// without touching the source chain, and without re-caching its own rows.
func TestFeed_FetchJobsForUser_ServesFreshCacheWithoutRefetch(t *testing.T) {
	fetcher := &fakeFetcher{result: pipeline.Result{Jobs: testJobs(), SourceName: "remoteok"}}
	cacheRepo := newFakeCacheRepo()
	f := newTestFeed(fetcher, cacheRepo, newFakeSwipeRepo())

	userID := uuid.New()
	_, err := f.FetchJobsForUser(context.Background(), userID, FeedOptions{})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return cacheRepo.upsertCount() == 1 }, time.Second, 10*time.Millisecond)

	res, err := f.FetchJobsForUser(context.Background(), userID, FeedOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls, "fresh cache must skip the upstream fan-out")
	assert.Equal(t, string(job.SourceCache), res.SourceName)
	assert.Len(t, res.Jobs, 2)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, cacheRepo.upsertCount(), "cache-served batches must not refill the cache")
}

// Unexpired rows older than the fresh window no longer short-circuit the
// fetch; they only back up the chain through the cached source.
func TestFeed_FetchJobsForUser_StaleWindowGoesUpstream(t *testing.T) {
	fetcher := &fakeFetcher{result: pipeline.Result{Jobs: testJobs(), SourceName: "remoteok"}}
	cacheRepo := newFakeCacheRepo()
	cacheRepo.rows["remoteok-1"] = job.CachedEntry{
		ExternalJobID: "remoteok-1",
		Source:        "remoteok",
		CreatedAt:     time.Now().Add(-2 * time.Hour),
		ExpiresAt:     time.Now().Add(time.Hour),
	}

	f := newTestFeed(fetcher, cacheRepo, newFakeSwipeRepo())
	res, err := f.FetchJobsForUser(context.Background(), uuid.New(), FeedOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, "remoteok", res.SourceName)
}

// Searches bypass the fresh-cache shortcut; only the providers can filter.
func TestFeed_FetchJobsForUser_SearchSkipsFreshCache(t *testing.T) {
	fetcher := &fakeFetcher{result: pipeline.Result{Jobs: testJobs(), SourceName: "remoteok"}}
	cacheRepo := newFakeCacheRepo()
	cacheRepo.rows["remoteok-1"] = job.CachedEntry{
		ExternalJobID: "remoteok-1",
		Source:        "remoteok",
		CreatedAt:     time.Now(),
		ExpiresAt:     time.Now().Add(time.Hour),
	}

	f := newTestFeed(fetcher, cacheRepo, newFakeSwipeRepo())
	_, err := f.FetchJobsForUser(context.Background(), uuid.New(), FeedOptions{Search: "golang"})
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
}

func TestFeed_FetchJobsForUser_CleanupTriggersOnChance(t *testing.T) {
	fetcher := &fakeFetcher{result: pipeline.Result{SourceName: string(job.SourceFallback)}}
	cacheRepo := newFakeCacheRepo()
	cacheRepo.rows["stale-1"] = job.CachedEntry{
		ExternalJobID: "stale-1",
		ExpiresAt:     time.Now().Add(-time.Minute),
	}

	f := NewFeed(fetcher, cacheRepo, nil, nil, nil, nil, time.Hour, 0.10)
	f.chance = func() float64 { return 0 } // always under the threshold

	_, err := f.FetchJobsForUser(context.Background(), uuid.New(), FeedOptions{})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return cacheRepo.rowCount() == 0 }, time.Second, 10*time.Millisecond)
}
