package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobbify/internal/domain/job"
)

const sampleDescription = `We are hiring a backend engineer to join our platform team.

Requirements:
- 5+ years of experience with Go
- Solid knowledge of PostgreSQL
- Experience running services on Kubernetes

What you bring:
- Ownership mindset
- Clear written communication

We offer a remote-first culture and a generous learning budget.`

func TestExtractManual_Sections(t *testing.T) {
	quals, reqs := ExtractManual(sampleDescription)

	require.Len(t, reqs, 3)
	assert.Equal(t, "5+ years of experience with Go", reqs[0])
	assert.Contains(t, reqs[1], "PostgreSQL")

	require.Len(t, quals, 2)
	assert.Equal(t, "Ownership mindset", quals[0])
}

func TestExtractManual_ProseFallback(t *testing.T) {
	_, reqs := ExtractManual("The ideal candidate has 3+ years of experience with distributed systems. We ship weekly.")
	require.NotEmpty(t, reqs)
	assert.Contains(t, reqs[0], "3+ years of")
}

func TestExtractManual_EmptyInput(t *testing.T) {
	quals, reqs := ExtractManual("")
	assert.Empty(t, quals)
	assert.Empty(t, reqs)
}

type stubExtractor struct {
	quals []string
	reqs  []string
	err   error
	calls int
}

func (s *stubExtractor) Extract(_ context.Context, _ string) ([]string, []string, error) {
	s.calls++
	return s.quals, s.reqs, s.err
}

func TestService_EnrichAll_UsesModel(t *testing.T) {
	model := &stubExtractor{quals: []string{"Go"}, reqs: []string{"5 years"}}
	svc := NewService(model, nil)

	jobs := svc.EnrichAll(context.Background(), []job.Job{
		{ID: "a", Description: sampleDescription},
	})

	assert.Equal(t, []string{"Go"}, jobs[0].Qualifications)
	assert.Equal(t, []string{"5 years"}, jobs[0].Requirements)
	assert.Equal(t, 1, model.calls)
}

func TestService_EnrichAll_ModelFailureFallsBackToManual(t *testing.T) {
	model := &stubExtractor{err: errors.New("quota exceeded")}
	svc := NewService(model, nil)

	jobs := svc.EnrichAll(context.Background(), []job.Job{
		{ID: "a", Description: sampleDescription},
	})

	assert.NotEmpty(t, jobs[0].Requirements, "manual extraction must take over")
}

func TestService_EnrichAll_SkipsAlreadyEnriched(t *testing.T) {
	model := &stubExtractor{quals: []string{"x"}, reqs: []string{"y"}}
	svc := NewService(model, nil)

	jobs := svc.EnrichAll(context.Background(), []job.Job{
		{ID: "a", Description: sampleDescription, Qualifications: []string{"have"}, Requirements: []string{"both"}},
	})

	assert.Equal(t, 0, model.calls)
	assert.Equal(t, []string{"have"}, jobs[0].Qualifications)
}

func TestService_EnrichAll_CapsModelCalls(t *testing.T) {
	model := &stubExtractor{quals: []string{"x"}, reqs: []string{"y"}}
	svc := NewService(model, nil)

	batch := make([]job.Job, maxModelCalls+3)
	for i := range batch {
		batch[i] = job.Job{ID: "j", Description: sampleDescription}
	}
	svc.EnrichAll(context.Background(), batch)

	assert.Equal(t, maxModelCalls, model.calls)
}
