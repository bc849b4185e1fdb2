package source

import (
	"context"
	"testing"
	"time"
)

func TestFallbackSet_Fetch(t *testing.T) {
	s := NewFallbackSet()
	jobs, err := s.Fetch(context.Background(), Query{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs) == 0 {
		t.Fatalf("fallback set must never be empty")
	}

	now := time.Now().UTC()
	weekAgo := now.Add(-7 * 24 * time.Hour)
	for _, j := range jobs {
		if j.ID == "" || j.Title == "" || j.Company == "" {
			t.Fatalf("incomplete fallback job: %+v", j)
		}
		if j.PostedDate.Before(weekAgo) || j.PostedDate.After(now.Add(time.Minute)) {
			t.Fatalf("posted date %v outside the last 7 days", j.PostedDate)
		}
	}
}

func TestFallbackSet_Fetch_RespectsLimit(t *testing.T) {
	s := NewFallbackSet()
	jobs, err := s.Fetch(context.Background(), Query{Limit: 3})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}
}
