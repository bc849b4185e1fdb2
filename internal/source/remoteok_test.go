package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRemoteOK_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("t") == "" {
			t.Errorf("expected cache-busting query parameter, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"legal":"API terms of service..."},
			{"id":101,"position":"Go Developer","company":"Acme","location":"","description":"<p>Write Go &amp; ship</p>","tags":["golang"],"salary_min":90000,"salary_max":120000,"url":"/remote-jobs/101","epoch":1753000000},
			{"id":102,"position":"","company":"Empty Title Co"},
			{"id":103,"position":"Designer","company":"Pixels","location":"Berlin, Germany","tags":[]}
		]`))
	}))
	defer srv.Close()

	s := NewRemoteOK(srv.URL, 2*time.Second)
	jobs, err := s.Fetch(context.Background(), Query{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs (legal notice and empty title skipped), got %d", len(jobs))
	}

	first := jobs[0]
	if first.ID != "remoteok-101" {
		t.Fatalf("expected source-qualified id, got %q", first.ID)
	}
	if first.Location != "Remote" {
		t.Fatalf("expected empty location to default to Remote, got %q", first.Location)
	}
	if first.Description != "Write Go & ship" {
		t.Fatalf("expected stripped html description, got %q", first.Description)
	}
	if first.Pay != "$90K - $120K" {
		t.Fatalf("unexpected pay: %q", first.Pay)
	}
	if first.URL != srv.URL+"/remote-jobs/101" {
		t.Fatalf("expected absolute url, got %q", first.URL)
	}
	if first.PostedDate.IsZero() {
		t.Fatalf("expected posted date from epoch")
	}

	if jobs[1].LogoURL == "" {
		t.Fatalf("expected placeholder logo for missing company_logo")
	}
}

func TestRemoteOK_Fetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewRemoteOK(srv.URL, time.Second)
	if _, err := s.Fetch(context.Background(), Query{}); err == nil {
		t.Fatalf("expected error on 502")
	}
}
