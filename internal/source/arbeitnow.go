package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobbify/internal/domain/job"
)

const arbeitnowCap = 30

// Arbeitnow is the listings-board source; responses arrive in a {data:[...]}
// envelope.
type Arbeitnow struct {
	baseURL string
	client  *http.Client
}

func NewArbeitnow(baseURL string, timeout time.Duration) *Arbeitnow {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://www.arbeitnow.com"
	}
	return &Arbeitnow{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(timeout),
	}
}

func (s *Arbeitnow) Name() string { return string(job.SourceArbeitnow) }

type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

type arbeitnowJob struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	Remote      bool     `json:"remote"`
	Tags        []string `json:"tags"`
	JobTypes    []string `json:"job_types"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	CreatedAt   int64    `json:"created_at"`
}

func (s *Arbeitnow) Fetch(ctx context.Context, q Query) ([]job.Job, error) {
	if s == nil {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/job-board-api", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("arbeitnow: status %d", resp.StatusCode)
	}

	var body arbeitnowResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]job.Job, 0, len(body.Data))
	for _, it := range body.Data {
		if strings.TrimSpace(it.Slug) == "" || strings.TrimSpace(it.Title) == "" {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(it.Title), search) {
			continue
		}
		out = append(out, s.normalize(it))
	}
	return applyLimit(out, q, arbeitnowCap), nil
}

func (s *Arbeitnow) normalize(it arbeitnowJob) job.Job {
	location := strings.TrimSpace(it.Location)
	if it.Remote || location == "" {
		location = "Remote"
	}

	desc := StripHTML(it.Description)
	tags := append([]string{}, it.Tags...)
	for _, jt := range it.JobTypes {
		if jt = strings.ToLower(strings.TrimSpace(jt)); jt != "" {
			tags = append(tags, jt)
		}
	}
	if len(tags) == 0 {
		tags = SynthesizeTags(it.Title, desc, tagKeywordTable())
	}

	var posted time.Time
	if it.CreatedAt > 0 {
		posted = time.Unix(it.CreatedAt, 0).UTC()
	}

	return job.Job{
		ID:          job.QualifiedID(job.SourceArbeitnow, it.Slug),
		Title:       strings.TrimSpace(it.Title),
		Company:     strings.TrimSpace(it.CompanyName),
		Location:    location,
		Description: desc,
		Tags:        tags,
		URL:         strings.TrimSpace(it.URL),
		LogoURL:     CompanyLogoURL(it.CompanyName),
		PostedDate:  posted,
	}
}
