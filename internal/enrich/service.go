package enrich

import (
	"context"
	"log"
	"time"

	"jobbify/internal/domain/job"
)

// extractor is what the Gemini client implements. Kept as an interface so the
// service degrades to manual extraction when no model is configured.
type extractor interface {
	Extract(ctx context.Context, description string) (qualifications, requirements []string, err error)
}

const (
	perJobTimeout  = 4 * time.Second
	maxModelCalls  = 5
	minDescription = 40
)

// Service fills in qualifications and requirements for jobs whose adapters
// did not provide them. Model calls are capped per batch; everything past the
// cap, and every model failure, goes through the manual extractor instead.
type Service struct {
	model  extractor
	logger *log.Logger
}

func NewService(model extractor, logger *log.Logger) *Service {
	return &Service{model: model, logger: logger}
}

func (s *Service) EnrichAll(ctx context.Context, jobs []job.Job) []job.Job {
	if s == nil {
		return jobs
	}

	modelCalls := 0
	for i := range jobs {
		j := &jobs[i]
		if len(j.Qualifications) > 0 && len(j.Requirements) > 0 {
			continue
		}
		if len(j.Description) < minDescription {
			continue
		}

		var quals, reqs []string
		if s.model != nil && modelCalls < maxModelCalls {
			modelCalls++
			jctx, cancel := context.WithTimeout(ctx, perJobTimeout)
			var err error
			quals, reqs, err = s.model.Extract(jctx, j.Description)
			cancel()
			if err != nil {
				if s.logger != nil {
					s.logger.Printf("[Enrich] model extraction failed job=%s err=%v", j.ID, err)
				}
				quals, reqs = nil, nil
			}
		}
		if len(quals) == 0 && len(reqs) == 0 {
			quals, reqs = ExtractManual(j.Description)
		}

		if len(j.Qualifications) == 0 {
			j.Qualifications = quals
		}
		if len(j.Requirements) == 0 {
			j.Requirements = reqs
		}
	}
	return jobs
}
