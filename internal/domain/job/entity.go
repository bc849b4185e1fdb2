package job

import (
	"fmt"
	"strings"
	"time"
)

// Source identifies which upstream a job came from. The value is embedded in
// the job id ("remoteok-123") so ids stay unique across providers.
type Source string

const (
	SourceJSearch   Source = "jsearch"
	SourceRemoteOK  Source = "remoteok"
	SourceArbeitnow Source = "arbeitnow"
	SourceBoard     Source = "board"
	SourceCache     Source = "cache"
	SourceFallback  Source = "fallback"
)

// Job is the normalized listing shape shared by every adapter. Values are
// immutable once fetched; a re-fetch produces a new value for the same
// logical listing.
type Job struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Pay            string    `json:"pay"`
	Description    string    `json:"description"`
	Qualifications []string  `json:"qualifications"`
	Requirements   []string  `json:"requirements"`
	Tags           []string  `json:"tags"`
	URL            string    `json:"url"`
	LogoURL        string    `json:"logo_url"`
	PostedDate     time.Time `json:"posted_date"`
}

func QualifiedID(src Source, externalID string) string {
	return fmt.Sprintf("%s-%s", src, strings.TrimSpace(externalID))
}

func (j Job) IsRemote() bool {
	loc := strings.ToLower(j.Location)
	for _, marker := range []string{"remote", "anywhere", "worldwide", "work from home"} {
		if strings.Contains(loc, marker) {
			return true
		}
	}
	return false
}

// CachedEntry is one row of the job_cache table.
type CachedEntry struct {
	ExternalJobID string
	Source        Source
	Payload       Job
	ExpiresAt     time.Time
	CreatedAt     time.Time
}

// Expired reports whether the entry is past its TTL. An entry whose expiry
// equals now is already expired; only expires_at strictly after now is live.
func (e CachedEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}
