package source

import (
	"context"
	"net/http"
	"sort"
	"time"

	"jobbify/internal/domain/job"

	"golang.org/x/sync/errgroup"
)

const (
	logoProbeTimeout     = 1500 * time.Millisecond
	logoProbeConcurrency = 5
)

// PrioritizeByLogo probes each job's logo URL with a HEAD request and stably
// sorts jobs whose logo actually resolves ahead of the rest. Purely
// cosmetic: probe failures never remove a job, and the whole step is capped
// by the per-probe timeout.
func PrioritizeByLogo(ctx context.Context, client *http.Client, jobs []job.Job) []job.Job {
	if len(jobs) < 2 {
		return jobs
	}
	if client == nil {
		client = newHTTPClient(logoProbeTimeout)
	}

	reachable := make([]bool, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(logoProbeConcurrency)

	for i := range jobs {
		i := i
		if jobs[i].LogoURL == "" {
			continue
		}
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(gctx, logoProbeTimeout)
			defer cancel()

			req, err := http.NewRequestWithContext(pctx, http.MethodHead, jobs[i].LogoURL, nil)
			if err != nil {
				return nil
			}
			resp, err := client.Do(req)
			if err != nil {
				return nil
			}
			resp.Body.Close()
			reachable[i] = resp.StatusCode >= 200 && resp.StatusCode < 400
			return nil
		})
	}
	_ = g.Wait()

	out := make([]job.Job, len(jobs))
	copy(out, jobs)
	idx := make(map[string]bool, len(jobs))
	for i, j := range jobs {
		if reachable[i] {
			idx[j.ID] = true
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return idx[out[a].ID] && !idx[out[b].ID]
	})
	return out
}
