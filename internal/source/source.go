package source

import (
	"context"
	"net/http"
	"time"

	"jobbify/internal/domain/job"
)

// Query narrows a fetch. Both fields are optional; adapters that cannot
// filter upstream apply Search locally and Limit after normalization.
type Query struct {
	Search string
	Limit  int
}

// Source is one strategy in the fallback chain. Fetch returns whatever the
// provider had; errors are returned, not swallowed — the orchestrator is the
// single place that decides an error means "no jobs from this source".
type Source interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]job.Job, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func capJobs(jobs []job.Job, max int) []job.Job {
	if max > 0 && len(jobs) > max {
		return jobs[:max]
	}
	return jobs
}

func applyLimit(jobs []job.Job, q Query, defaultCap int) []job.Job {
	n := defaultCap
	if q.Limit > 0 && q.Limit < n {
		n = q.Limit
	}
	return capJobs(jobs, n)
}
