package job

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestCachedEntry_Expired_Boundary(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		expiresAt time.Time
		expired   bool
	}{
		{"one second before now", now.Add(-time.Second), true},
		{"exactly now", now, true},
		{"one second after now", now.Add(time.Second), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := CachedEntry{ExpiresAt: tc.expiresAt}
			if got := e.Expired(now); got != tc.expired {
				t.Fatalf("Expired(%v) with expires_at=%v: got %v, want %v", now, tc.expiresAt, got, tc.expired)
			}
		})
	}
}

func TestJob_PayloadRoundTrip(t *testing.T) {
	orig := Job{
		ID:             QualifiedID(SourceRemoteOK, "9981"),
		Title:          "Senior Backend Engineer",
		Company:        "Acme Labs",
		Location:       "Remote",
		Pay:            "$120K - $150K",
		Description:    "Build APIs.",
		Qualifications: []string{"5+ years Go"},
		Requirements:   []string{"Postgres"},
		Tags:           []string{"golang", "backend"},
		URL:            "https://remoteok.com/l/9981",
		LogoURL:        "https://logo.clearbit.com/acme.com",
		PostedDate:     time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC),
	}

	b, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Job
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(orig, got) {
		t.Fatalf("round trip mismatch:\n  orig=%+v\n  got=%+v", orig, got)
	}
}

func TestJob_IsRemote(t *testing.T) {
	if !(Job{Location: "Remote (Worldwide)"}).IsRemote() {
		t.Fatalf("expected remote")
	}
	if (Job{Location: "Berlin, Germany"}).IsRemote() {
		t.Fatalf("expected non-remote")
	}
}
