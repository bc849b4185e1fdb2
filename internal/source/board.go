package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"jobbify/internal/domain/job"

	"github.com/gocolly/colly/v2"
)

const boardCap = 20

// Board scrapes a plain HTML job board (golang.cafe-style markup) with
// colly. Disabled when no base URL is configured.
type Board struct {
	baseURL string
	timeout time.Duration
}

func NewBoard(baseURL string, timeout time.Duration) *Board {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Board{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"), timeout: timeout}
}

func (s *Board) Name() string { return string(job.SourceBoard) }

func (s *Board) Fetch(ctx context.Context, q Query) ([]job.Job, error) {
	if s == nil || s.baseURL == "" {
		return nil, nil
	}

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.UserAgent("JobbifyBot/1.0"),
	)
	c.SetRequestTimeout(s.timeout)

	out := make([]job.Job, 0, boardCap)
	c.OnHTML("li.job, div.job, tr.job", func(e *colly.HTMLElement) {
		if len(out) >= boardCap {
			return
		}

		title := firstNonEmpty(e.ChildText("a.title"), e.ChildText("h2"), e.ChildText(".position"))
		company := firstNonEmpty(e.ChildText(".company"), e.ChildText(".employer"))
		if strings.TrimSpace(title) == "" || strings.TrimSpace(company) == "" {
			return
		}

		link := e.ChildAttr("a[href]", "href")
		if link != "" && !strings.HasPrefix(link, "http") {
			link = s.baseURL + link
		}

		location := strings.TrimSpace(e.ChildText(".location"))
		if location == "" {
			location = "Remote"
		}

		out = append(out, job.Job{
			ID:         job.QualifiedID(job.SourceBoard, shortHash(link+title)),
			Title:      strings.TrimSpace(title),
			Company:    strings.TrimSpace(company),
			Location:   location,
			Pay:        strings.TrimSpace(e.ChildText(".salary")),
			Tags:       SynthesizeTags(title, "", tagKeywordTable()),
			URL:        link,
			LogoURL:    CompanyLogoURL(company),
			PostedDate: time.Now().UTC(),
		})
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(s.baseURL + "/jobs"); err != nil {
		return nil, err
	}
	c.Wait()

	search := strings.ToLower(strings.TrimSpace(q.Search))
	if search != "" {
		filtered := out[:0]
		for _, j := range out {
			if strings.Contains(strings.ToLower(j.Title), search) {
				filtered = append(filtered, j)
			}
		}
		out = filtered
	}
	return applyLimit(out, q, boardCap), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:6])
}
