package scoring

import (
	"strings"

	"jobbify/internal/domain/job"
	"jobbify/internal/domain/prefs"
)

const AlgorithmVersion = "2.1.0"

// DefaultMinScore is the threshold below which recommendations are discarded
// when the caller does not supply one.
const DefaultMinScore = 35

// Recommendation is the scored view of one job. Computed fresh on every
// request; the persisted copy in job_recommendations is a write-behind log,
// never read back into this path.
type Recommendation struct {
	Job           job.Job `json:"job"`
	OverallScore  int     `json:"overall_score"`
	LocationScore int     `json:"location_score"`
	SalaryScore   int     `json:"salary_score"`
	RoleScore     int     `json:"role_score"`
	CompanyScore  int     `json:"company_score"`
	Reason        string  `json:"reason"`
}

// Score computes the four sub-scores and their weighted combination for a
// single job. Pure: no I/O, no clock, deterministic for identical inputs.
// All scores, including the overall, are clamped to [0,100] regardless of
// what the stored weights look like.
func Score(j job.Job, p prefs.Preferences) Recommendation {
	loc := scoreLocation(j, p)
	sal := scoreSalary(j.Pay, p.MinSalary, p.MaxSalary, p.SalaryNegotiable)
	role := scoreRole(j, p)
	comp := scoreCompany(j.Company)

	w := p.Weights
	overall := float64(loc)*w.Location +
		float64(sal)*w.Salary +
		float64(role)*w.Role +
		float64(comp)*w.Company

	rec := Recommendation{
		Job:           j,
		OverallScore:  clamp(int(overall + 0.5)),
		LocationScore: loc,
		SalaryScore:   sal,
		RoleScore:     role,
		CompanyScore:  comp,
	}
	rec.Reason = reason(rec)
	return rec
}

func scoreLocation(j job.Job, p prefs.Preferences) int {
	if j.IsRemote() {
		switch p.RemotePreference {
		case prefs.RemoteRequired:
			return 100
		case prefs.RemotePreferred:
			return 95
		case prefs.RemoteNotPreferred:
			return 35
		default:
			return 75
		}
	}

	score := matchPreferredLocation(j.Location, p.Locations)
	if score == 0 {
		if p.WillingToRelocate {
			score = 55
		} else {
			score = 25
		}
	}

	// Non-remote job against a remote-leaning user.
	switch p.RemotePreference {
	case prefs.RemoteRequired:
		score -= 50
	case prefs.RemotePreferred:
		score -= 20
	}

	return clamp(score)
}

// matchPreferredLocation returns 95/85/70/65 by specificity of the match, or
// 0 when nothing in the preference list matches.
func matchPreferredLocation(jobLocation string, preferred []string) int {
	loc := normalizeText(jobLocation)
	if loc == "" {
		return 0
	}
	jobCity := firstSegment(loc)

	best := 0
	for _, p := range preferred {
		want := normalizeText(p)
		if want == "" {
			continue
		}
		switch {
		case loc == want:
			return 95
		case strings.Contains(loc, want):
			best = maxI(best, 85)
		case jobCity != "" && jobCity == firstSegment(want):
			best = maxI(best, 70)
		case tokensOverlap(loc, want):
			best = maxI(best, 65)
		}
	}
	return best
}

func scoreRole(j job.Job, p prefs.Preferences) int {
	const base = 25

	title := expandAbbreviations(normalizeText(j.Title))
	titleTokens := tokenSet(title)

	// Best fuzzy token overlap between the title and any preferred role.
	bestOverlap := 0.0
	for _, role := range p.Roles {
		role = expandAbbreviations(normalizeText(role))
		roleTokens := tokenSet(role)
		if len(roleTokens) == 0 {
			continue
		}
		hits := 0
		for tok := range roleTokens {
			if titleTokens[tok] {
				hits++
			}
		}
		frac := float64(hits) / float64(len(roleTokens))
		if frac > bestOverlap {
			bestOverlap = frac
		}
	}

	score := base + int(bestOverlap*50+0.5)

	// Tag overlap against preferred roles, industries and job types.
	wanted := make([]string, 0, len(p.Roles)+len(p.Industries)+len(p.JobTypes))
	wanted = append(wanted, p.Roles...)
	wanted = append(wanted, p.Industries...)
	wanted = append(wanted, p.JobTypes...)
	tagBonus := 0
	for _, tag := range j.Tags {
		tag = normalizeText(tag)
		for _, w := range wanted {
			w = normalizeText(w)
			if w == "" || tag == "" {
				continue
			}
			if strings.Contains(tag, w) || strings.Contains(w, tag) {
				tagBonus += 5
				break
			}
		}
	}
	if tagBonus > 15 {
		tagBonus = 15
	}
	score += tagBonus

	if levelMatches(p.ExperienceLevel, j) {
		score += 10
	}

	return clamp(score)
}

func levelMatches(level string, j job.Job) bool {
	kws, ok := experienceKeywords[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return false
	}
	haystack := normalizeText(j.Title) + " " + normalizeText(strings.Join(j.Tags, " "))
	for _, kw := range kws {
		if containsToken(haystack, kw) {
			return true
		}
	}
	return false
}

// scoreCompany is a crude name heuristic, not a firmographic lookup: 50 base,
// +30 for startup-looking names, +20 for corporate suffixes.
func scoreCompany(company string) int {
	name := normalizeText(company)
	if name == "" {
		return 50
	}

	score := 50
	for _, m := range startupMarkers {
		if strings.Contains(name, m) {
			score += 30
			break
		}
	}
	for _, m := range corporateMarkers {
		if containsToken(name, m) {
			score += 20
			break
		}
	}
	return clamp(score)
}

func reason(r Recommendation) string {
	best := r.LocationScore
	label := "location fit"
	if r.SalaryScore > best {
		best = r.SalaryScore
		label = "salary fit"
	}
	if r.RoleScore > best {
		best = r.RoleScore
		label = "role fit"
	}
	if r.CompanyScore > best {
		best = r.CompanyScore
		label = "company fit"
	}

	switch {
	case best >= 90:
		return "Excellent " + label
	case best >= 70:
		return "Strong " + label
	default:
		return "Moderate match"
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func maxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func normalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

func firstSegment(s string) string {
	if i := strings.IndexAny(s, ",/-"); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

func tokensOverlap(a, b string) bool {
	at := tokenSet(a)
	for tok := range tokenSet(b) {
		if len(tok) < 3 {
			continue
		}
		if at[tok] {
			return true
		}
	}
	return false
}

func tokenSet(s string) map[string]bool {
	out := make(map[string]bool)
	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '(' || r == ')'
	}) {
		f = strings.TrimSpace(f)
		if f != "" {
			out[f] = true
		}
	}
	return out
}

func containsToken(haystack, needle string) bool {
	for tok := range tokenSet(haystack) {
		if tok == needle {
			return true
		}
	}
	return false
}

func expandAbbreviations(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		if full, ok := roleAbbreviations[f]; ok {
			fields[i] = full
		}
	}
	return strings.Join(fields, " ")
}
