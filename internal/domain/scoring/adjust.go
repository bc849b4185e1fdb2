package scoring

import (
	"strings"

	"jobbify/internal/domain/swipe"
)

// Flat adjustments applied on top of the base score when swipe learning is
// enabled. Values mirror the ranking behavior users already saw in the app.
const (
	likedCompanyBonus       = 10
	dislikedCompanyPenalty  = 15
	likedLocationBonus      = 8
	dislikedLocationPenalty = 10
	likedTagBonus           = 5
)

// Signals are derived from the swipe log at request time. No model persists:
// a company or location is "liked" when it has strictly more right than left
// swipes, "disliked" in the opposite case, and neutral on a tie.
type Signals struct {
	LikedCompanies    map[string]bool
	DislikedCompanies map[string]bool
	LikedLocations    map[string]bool
	DislikedLocations map[string]bool
	LikedTags         map[string]bool
}

func (s Signals) Empty() bool {
	return len(s.LikedCompanies) == 0 && len(s.DislikedCompanies) == 0 &&
		len(s.LikedLocations) == 0 && len(s.DislikedLocations) == 0 &&
		len(s.LikedTags) == 0
}

func BuildSignals(records []swipe.Record) Signals {
	companyVotes := map[string]int{}
	locationVotes := map[string]int{}
	likedTags := map[string]bool{}

	for _, r := range records {
		delta := -1
		if r.Direction == swipe.DirectionRight {
			delta = 1
		}

		if c := normalizeText(r.JobCompany); c != "" {
			companyVotes[c] += delta
		}
		if l := normalizeText(r.JobLocation); l != "" {
			locationVotes[l] += delta
		}
		if r.Direction == swipe.DirectionRight {
			for _, t := range r.JobTags {
				if t = normalizeText(t); t != "" {
					likedTags[t] = true
				}
			}
		}
	}

	s := Signals{
		LikedCompanies:    map[string]bool{},
		DislikedCompanies: map[string]bool{},
		LikedLocations:    map[string]bool{},
		DislikedLocations: map[string]bool{},
		LikedTags:         likedTags,
	}
	for c, v := range companyVotes {
		if v > 0 {
			s.LikedCompanies[c] = true
		} else if v < 0 {
			s.DislikedCompanies[c] = true
		}
	}
	for l, v := range locationVotes {
		if v > 0 {
			s.LikedLocations[l] = true
		} else if v < 0 {
			s.DislikedLocations[l] = true
		}
	}
	return s
}

// Adjust applies the flat swipe-derived deltas to an already-scored
// recommendation and re-clamps. With empty signals the input is returned
// unchanged, so disabling swipe learning yields output identical to Score.
func Adjust(rec Recommendation, signals Signals) Recommendation {
	if signals.Empty() {
		return rec
	}

	delta := 0
	company := normalizeText(rec.Job.Company)
	location := normalizeText(rec.Job.Location)

	if company != "" {
		if signals.LikedCompanies[company] {
			delta += likedCompanyBonus
		} else if signals.DislikedCompanies[company] {
			delta -= dislikedCompanyPenalty
		}
	}
	if location != "" {
		if matchesAny(location, signals.LikedLocations) {
			delta += likedLocationBonus
		} else if matchesAny(location, signals.DislikedLocations) {
			delta -= dislikedLocationPenalty
		}
	}
	for _, t := range rec.Job.Tags {
		if signals.LikedTags[normalizeText(t)] {
			delta += likedTagBonus
			break
		}
	}

	if delta == 0 {
		return rec
	}
	rec.OverallScore = clamp(rec.OverallScore + delta)
	return rec
}

func matchesAny(location string, set map[string]bool) bool {
	if set[location] {
		return true
	}
	for l := range set {
		if strings.Contains(location, l) || strings.Contains(l, location) {
			return true
		}
	}
	return false
}
