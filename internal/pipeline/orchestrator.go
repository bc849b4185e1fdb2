package pipeline

import (
	"context"
	"log"
	"time"

	"jobbify/internal/domain/job"
	"jobbify/internal/source"
)

// Orchestrator walks an ordered list of sources and returns the first
// non-empty result. The policy is the slice itself: reordering sources is a
// wiring change, not a control-flow change. Source errors are logged and
// treated as "no jobs from this source"; the final fallback source
// guarantees the caller always gets something.
type Orchestrator struct {
	sources  []source.Source
	fallback source.Source
	timeout  time.Duration
	logger   *log.Logger
}

func New(logger *log.Logger, timeout time.Duration, fallback source.Source, sources ...source.Source) *Orchestrator {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	if fallback == nil {
		fallback = source.NewFallbackSet()
	}
	return &Orchestrator{
		sources:  sources,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger,
	}
}

// Result carries the jobs plus which source produced them, so callers can
// decide whether the batch is worth caching.
type Result struct {
	Jobs       []job.Job
	SourceName string
}

func (o *Orchestrator) Fetch(ctx context.Context, q source.Query) Result {
	if o == nil {
		return Result{}
	}

	for _, src := range o.sources {
		if src == nil {
			continue
		}

		sctx, cancel := context.WithTimeout(ctx, o.timeout)
		jobs, err := src.Fetch(sctx, q)
		cancel()

		if err != nil {
			if o.logger != nil {
				o.logger.Printf("[Pipeline] source=%s error=%v", src.Name(), err)
			}
			continue
		}
		if len(jobs) == 0 {
			if o.logger != nil {
				o.logger.Printf("[Pipeline] source=%s jobs=0, advancing", src.Name())
			}
			continue
		}

		if o.logger != nil {
			o.logger.Printf("[Pipeline] source=%s jobs=%d", src.Name(), len(jobs))
		}
		return Result{Jobs: jobs, SourceName: src.Name()}
	}

	jobs, err := o.fallback.Fetch(ctx, q)
	if err != nil || len(jobs) == 0 {
		// The static set cannot actually fail; this guards a broken custom
		// fallback in tests.
		if o.logger != nil {
			o.logger.Printf("[Pipeline] fallback source failed: %v", err)
		}
		return Result{SourceName: o.fallback.Name()}
	}
	if o.logger != nil {
		o.logger.Printf("[Pipeline] all sources empty, using %s jobs=%d", o.fallback.Name(), len(jobs))
	}
	return Result{Jobs: jobs, SourceName: o.fallback.Name()}
}
