package source

import (
	"context"
	"errors"
	"time"

	"jobbify/internal/domain/job"
)

type raceAttempt func(ctx context.Context) ([]job.Job, error)

// raceFirstSuccess runs every attempt concurrently and returns the first one
// that succeeds with a non-empty result. First-success-wins, not
// first-response-wins: a fast failure does not end the race. Losers are not
// cancelled; they run until their own timeout and their results are
// discarded.
func raceFirstSuccess(ctx context.Context, perAttempt time.Duration, attempts []raceAttempt) ([]job.Job, error) {
	if len(attempts) == 0 {
		return nil, errors.New("no attempts")
	}

	type outcome struct {
		jobs []job.Job
		err  error
	}
	results := make(chan outcome, len(attempts))

	for _, attempt := range attempts {
		attempt := attempt
		go func() {
			actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), perAttempt)
			defer cancel()
			jobs, err := attempt(actx)
			if err == nil && len(jobs) == 0 {
				err = errors.New("empty result")
			}
			results <- outcome{jobs: jobs, err: err}
		}()
	}

	var lastErr error
	for i := 0; i < len(attempts); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case out := <-results:
			if out.err == nil {
				return out.jobs, nil
			}
			lastErr = out.err
		}
	}
	return nil, lastErr
}
