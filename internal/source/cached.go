package source

import (
	"context"
	"strings"

	"jobbify/internal/domain/job"
)

const cachedCap = 50

type cacheReader interface {
	ListFresh(ctx context.Context, src job.Source, limit, offset int) ([]job.CachedEntry, error)
}

// Cached exposes the job_cache table as one more source in the chain, so
// stale-but-fresh-enough rows back up the network providers.
type Cached struct {
	repo cacheReader
}

func NewCached(repo cacheReader) *Cached {
	return &Cached{repo: repo}
}

func (s *Cached) Name() string { return string(job.SourceCache) }

func (s *Cached) Fetch(ctx context.Context, q Query) ([]job.Job, error) {
	if s == nil || s.repo == nil {
		return nil, nil
	}

	limit := cachedCap
	if q.Limit > 0 && q.Limit < limit {
		limit = q.Limit
	}

	entries, err := s.repo.ListFresh(ctx, "", limit, 0)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]job.Job, 0, len(entries))
	for _, e := range entries {
		if search != "" && !strings.Contains(strings.ToLower(e.Payload.Title), search) {
			continue
		}
		out = append(out, e.Payload)
	}
	return out, nil
}
