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

const remoteokCap = 30

// RemoteOK serves a public JSON array whose first element is a legal notice,
// not a job. The endpoint sits behind an aggressive CDN, so a cache-busting
// timestamp goes on every request.
type RemoteOK struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewRemoteOK(baseURL string, timeout time.Duration) *RemoteOK {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://remoteok.com"
	}
	return &RemoteOK{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(timeout),
		now:     time.Now,
	}
}

func (s *RemoteOK) Name() string { return string(job.SourceRemoteOK) }

type remoteokItem struct {
	ID          json.Number `json:"id"`
	Legal       string      `json:"legal"`
	Position    string      `json:"position"`
	Company     string      `json:"company"`
	CompanyLogo string      `json:"company_logo"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Tags        []string    `json:"tags"`
	SalaryMin   int         `json:"salary_min"`
	SalaryMax   int         `json:"salary_max"`
	URL         string      `json:"url"`
	Epoch       int64       `json:"epoch"`
}

func (s *RemoteOK) Fetch(ctx context.Context, q Query) ([]job.Job, error) {
	if s == nil {
		return nil, nil
	}

	reqURL := fmt.Sprintf("%s/api?t=%d", s.baseURL, s.now().UnixNano())
	if tag := strings.TrimSpace(q.Search); tag != "" {
		reqURL = fmt.Sprintf("%s/api/remote-%s-jobs?t=%d", s.baseURL, slugify(tag), s.now().UnixNano())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "JobbifyBot/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remoteok: status %d", resp.StatusCode)
	}

	var items []remoteokItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, err
	}

	out := make([]job.Job, 0, len(items))
	for _, it := range items {
		if it.Legal != "" || it.ID.String() == "" || strings.TrimSpace(it.Position) == "" {
			continue
		}
		out = append(out, s.normalize(it))
	}
	return applyLimit(out, q, remoteokCap), nil
}

func (s *RemoteOK) normalize(it remoteokItem) job.Job {
	location := strings.TrimSpace(it.Location)
	if location == "" {
		location = "Remote"
	}

	logo := strings.TrimSpace(it.CompanyLogo)
	if logo == "" {
		logo = PlaceholderLogoURL(it.Company)
	}

	desc := StripHTML(it.Description)
	tags := it.Tags
	if len(tags) == 0 {
		tags = SynthesizeTags(it.Position, desc, tagKeywordTable())
	}

	var posted time.Time
	if it.Epoch > 0 {
		posted = time.Unix(it.Epoch, 0).UTC()
	}

	u := strings.TrimSpace(it.URL)
	if u != "" && !strings.HasPrefix(u, "http") {
		u = s.baseURL + u
	}

	return job.Job{
		ID:          job.QualifiedID(job.SourceRemoteOK, it.ID.String()),
		Title:       strings.TrimSpace(it.Position),
		Company:     strings.TrimSpace(it.Company),
		Location:    location,
		Pay:         formatSalary(float64(it.SalaryMin), float64(it.SalaryMax), "USD"),
		Description: desc,
		Tags:        tags,
		URL:         u,
		LogoURL:     logo,
		PostedDate:  posted,
	}
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}), "-")
}
