package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobbify/internal/domain/job"
	"jobbify/internal/domain/scoring"
)

const (
	jsearchCap            = 50
	jsearchAttemptTimeout = 6 * time.Second
)

// JSearch is the primary job API. The same logical API is reachable on
// several mirrors; Fetch races them all and keeps the first success.
// With no API key configured Fetch returns (nil, nil) so the orchestrator
// simply falls through to the next source.
type JSearch struct {
	apiKey   string
	baseURLs []string
	client   *http.Client
}

func NewJSearch(apiKey string, baseURLs []string, timeout time.Duration) *JSearch {
	if len(baseURLs) == 0 {
		baseURLs = []string{"https://jsearch.p.rapidapi.com"}
	}
	return &JSearch{
		apiKey:   strings.TrimSpace(apiKey),
		baseURLs: baseURLs,
		client:   newHTTPClient(timeout),
	}
}

func (s *JSearch) Name() string { return string(job.SourceJSearch) }

type jsearchResponse struct {
	Data []jsearchJob `json:"data"`
}

type jsearchJob struct {
	JobID          string   `json:"job_id"`
	Title          string   `json:"job_title"`
	EmployerName   string   `json:"employer_name"`
	EmployerLogo   string   `json:"employer_logo"`
	City           string   `json:"job_city"`
	Country        string   `json:"job_country"`
	IsRemote       bool     `json:"job_is_remote"`
	MinSalary      float64  `json:"job_min_salary"`
	MaxSalary      float64  `json:"job_max_salary"`
	SalaryCurrency string   `json:"job_salary_currency"`
	Description    string   `json:"job_description"`
	ApplyLink      string   `json:"job_apply_link"`
	PostedAt       string   `json:"job_posted_at_datetime_utc"`
	EmploymentType string   `json:"job_employment_type"`
	Highlights     struct {
		Qualifications   []string `json:"Qualifications"`
		Responsibilities []string `json:"Responsibilities"`
	} `json:"job_highlights"`
}

func (s *JSearch) Fetch(ctx context.Context, q Query) ([]job.Job, error) {
	if s == nil || s.apiKey == "" {
		return nil, nil
	}

	attempts := make([]raceAttempt, 0, len(s.baseURLs))
	for _, base := range s.baseURLs {
		base := base
		attempts = append(attempts, func(actx context.Context) ([]job.Job, error) {
			return s.fetchFrom(actx, base, q)
		})
	}

	jobs, err := raceFirstSuccess(ctx, jsearchAttemptTimeout, attempts)
	if err != nil {
		return nil, err
	}
	return applyLimit(jobs, q, jsearchCap), nil
}

func (s *JSearch) fetchFrom(ctx context.Context, base string, q Query) ([]job.Job, error) {
	search := strings.TrimSpace(q.Search)
	if search == "" {
		search = "software developer"
	}

	params := url.Values{}
	params.Set("query", search)
	params.Set("num_pages", "1")
	params.Set("page", "1")

	reqURL := strings.TrimRight(base, "/") + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("jsearch %s: status %d", base, resp.StatusCode)
	}

	var body jsearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	out := make([]job.Job, 0, len(body.Data))
	for _, it := range body.Data {
		if strings.TrimSpace(it.JobID) == "" || strings.TrimSpace(it.Title) == "" {
			continue
		}
		out = append(out, s.normalize(it))
	}
	return out, nil
}

func (s *JSearch) normalize(it jsearchJob) job.Job {
	location := strings.TrimSpace(strings.Trim(it.City+", "+it.Country, ", "))
	if it.IsRemote {
		location = "Remote"
	}

	logo := strings.TrimSpace(it.EmployerLogo)
	if logo == "" {
		logo = CompanyLogoURL(it.EmployerName)
	}

	desc := StripHTML(it.Description)
	tags := SynthesizeTags(it.Title, desc, tagKeywordTable())
	if t := strings.ToLower(strings.TrimSpace(it.EmploymentType)); t != "" {
		tags = append(tags, t)
	}

	posted, _ := time.Parse(time.RFC3339, it.PostedAt)

	return job.Job{
		ID:             job.QualifiedID(job.SourceJSearch, it.JobID),
		Title:          strings.TrimSpace(it.Title),
		Company:        strings.TrimSpace(it.EmployerName),
		Location:       location,
		Pay:            formatSalary(it.MinSalary, it.MaxSalary, it.SalaryCurrency),
		Description:    desc,
		Qualifications: it.Highlights.Qualifications,
		Requirements:   it.Highlights.Responsibilities,
		Tags:           tags,
		URL:            strings.TrimSpace(it.ApplyLink),
		LogoURL:        logo,
		PostedDate:     posted,
	}
}

func formatSalary(min, max float64, currency string) string {
	if min <= 0 && max <= 0 {
		return ""
	}
	sym := "$"
	if c := strings.ToUpper(strings.TrimSpace(currency)); c != "" && c != "USD" {
		sym = c + " "
	}
	if min > 0 && max > 0 {
		return fmt.Sprintf("%s%.0fK - %s%.0fK", sym, min/1000, sym, max/1000)
	}
	v := max
	if min > 0 {
		v = min
	}
	return fmt.Sprintf("%s%.0fK", sym, v/1000)
}

// tagKeywordTable re-exports the scoring keyword table so adapters and the
// scorer agree on tag vocabulary.
func tagKeywordTable() map[string][]string {
	return scoring.TagKeywords()
}
