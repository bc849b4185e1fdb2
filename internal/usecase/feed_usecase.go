package usecase

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"jobbify/internal/domain/job"
	"jobbify/internal/pipeline"
	"jobbify/internal/repository"
	"jobbify/internal/source"
)

// Fetcher produces the raw job batch the feed works from; the pipeline
// orchestrator is the production implementation.
type Fetcher interface {
	Fetch(ctx context.Context, q source.Query) pipeline.Result
}

// enricher fills in missing qualifications and requirements. Implementations
// must be best-effort: a failed enrichment returns the job unchanged.
type enricher interface {
	EnrichAll(ctx context.Context, jobs []job.Job) []job.Job
}

type feedBroadcaster interface {
	BroadcastFeedRefresh(sourceName string, count int)
}

type FeedResult struct {
	Jobs       []job.Job `json:"jobs"`
	SourceName string    `json:"source"`
}

type FeedOptions struct {
	Search        string
	Limit         int
	ExcludeSwiped bool
}

// Feed serves the swipe deck. Every fetch that reaches a network source also
// refills the database cache off the request path, and occasionally sweeps
// expired rows so the table does not need a dedicated maintenance window.
type Feed struct {
	fetcher   Fetcher
	cacheRepo repository.JobCacheRepository
	swipes    repository.SwipeRepository
	enrich    enricher
	broadcast feedBroadcaster
	logger    *log.Logger

	cacheTTL      time.Duration
	cleanupChance float64

	// Rows written within this window serve the feed directly, skipping the
	// source fan-out; older rows only back up the chain via the cached
	// source. Non-positive disables the shortcut.
	freshWindow time.Duration

	// injectable for tests
	chance func() float64
}

func NewFeed(
	fetcher Fetcher,
	cacheRepo repository.JobCacheRepository,
	swipes repository.SwipeRepository,
	enrich enricher,
	broadcast feedBroadcaster,
	logger *log.Logger,
	cacheTTL time.Duration,
	cleanupChance float64,
) *Feed {
	if cacheTTL <= 0 {
		cacheTTL = 6 * time.Hour
	}
	if cleanupChance < 0 || cleanupChance > 1 {
		cleanupChance = 0.10
	}
	return &Feed{
		fetcher:       fetcher,
		cacheRepo:     cacheRepo,
		swipes:        swipes,
		enrich:        enrich,
		broadcast:     broadcast,
		logger:        logger,
		cacheTTL:      cacheTTL,
		cleanupChance: cleanupChance,
		freshWindow:   time.Hour,
		chance:        rand.Float64,
	}
}

func (f *Feed) FetchJobsForUser(ctx context.Context, userID uuid.UUID, opts FeedOptions) (FeedResult, error) {
	res, fromCache := f.fromFreshCache(ctx, opts)
	if !fromCache {
		res = f.fetcher.Fetch(ctx, source.Query{Search: opts.Search, Limit: opts.Limit})
	}
	jobs := res.Jobs

	if opts.ExcludeSwiped {
		jobs = f.withoutSwiped(ctx, userID, jobs)
	}

	if f.enrich != nil {
		jobs = f.enrich.EnrichAll(ctx, jobs)
	}

	if shouldCache(res.SourceName) && f.cacheRepo != nil && len(res.Jobs) > 0 {
		f.refillCache(ctx, res)
	}
	f.maybeCleanup(ctx)

	return FeedResult{Jobs: jobs, SourceName: res.SourceName}, nil
}

// fromFreshCache serves the plain feed straight from recently written cache
// rows, skipping the source fan-out. Searches always go upstream, where the
// providers can actually filter.
func (f *Feed) fromFreshCache(ctx context.Context, opts FeedOptions) (pipeline.Result, bool) {
	if f.cacheRepo == nil || f.freshWindow <= 0 || opts.Search != "" {
		return pipeline.Result{}, false
	}
	fresh, err := f.cacheRepo.HasFresh(ctx, "", f.freshWindow)
	if err != nil || !fresh {
		return pipeline.Result{}, false
	}
	entries, err := f.cacheRepo.ListFresh(ctx, "", opts.Limit, 0)
	if err != nil || len(entries) == 0 {
		return pipeline.Result{}, false
	}
	jobs := make([]job.Job, 0, len(entries))
	for _, e := range entries {
		jobs = append(jobs, e.Payload)
	}
	return pipeline.Result{Jobs: jobs, SourceName: string(job.SourceCache)}, true
}

// withoutSwiped drops jobs the user already decided on. A failed lookup keeps
// the full list; showing a repeat beats showing nothing.
func (f *Feed) withoutSwiped(ctx context.Context, userID uuid.UUID, jobs []job.Job) []job.Job {
	if f.swipes == nil || userID == uuid.Nil || len(jobs) == 0 {
		return jobs
	}
	seen, err := f.swipes.ListJobIDs(ctx, userID)
	if err != nil {
		if f.logger != nil {
			f.logger.Printf("[Feed] swiped-jobs lookup failed user=%s err=%v", userID, err)
		}
		return jobs
	}
	if len(seen) == 0 {
		return jobs
	}
	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if !seen[j.ID] {
			out = append(out, j)
		}
	}
	return out
}

// Only batches from a real upstream refresh the cache; echoing rows that came
// out of the cache (or the static fallback) back into it would keep dead
// listings alive forever.
func shouldCache(sourceName string) bool {
	switch job.Source(sourceName) {
	case job.SourceCache, job.SourceFallback, "":
		return false
	}
	return true
}

func (f *Feed) refillCache(ctx context.Context, res pipeline.Result) {
	entries := make([]job.CachedEntry, 0, len(res.Jobs))
	expires := time.Now().Add(f.cacheTTL)
	for _, j := range res.Jobs {
		entries = append(entries, job.CachedEntry{
			ExternalJobID: j.ID,
			Source:        job.Source(res.SourceName),
			Payload:       j,
			ExpiresAt:     expires,
		})
	}

	// Detached from the request so a slow database write never delays the
	// response. WithoutCancel keeps the write alive past the handler return.
	bg := context.WithoutCancel(ctx)
	go func() {
		wctx, cancel := context.WithTimeout(bg, 15*time.Second)
		defer cancel()
		if err := f.cacheRepo.Upsert(wctx, entries); err != nil {
			if f.logger != nil {
				f.logger.Printf("[Feed] cache refill failed source=%s err=%v", res.SourceName, err)
			}
			return
		}
		if f.logger != nil {
			f.logger.Printf("[Feed] cache refilled source=%s jobs=%d", res.SourceName, len(entries))
		}
		if f.broadcast != nil {
			f.broadcast.BroadcastFeedRefresh(res.SourceName, len(entries))
		}
	}()
}

func (f *Feed) maybeCleanup(ctx context.Context) {
	if f.cacheRepo == nil || f.chance() >= f.cleanupChance {
		return
	}
	bg := context.WithoutCancel(ctx)
	go func() {
		cctx, cancel := context.WithTimeout(bg, 30*time.Second)
		defer cancel()
		n, err := f.cacheRepo.DeleteExpired(cctx)
		if err != nil {
			if f.logger != nil {
				f.logger.Printf("[Feed] expired-row sweep failed: %v", err)
			}
			return
		}
		if f.logger != nil && n > 0 {
			f.logger.Printf("[Feed] expired-row sweep removed %d rows", n)
		}
	}()
}
