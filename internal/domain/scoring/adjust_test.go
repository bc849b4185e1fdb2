package scoring

import (
	"testing"

	"jobbify/internal/domain/job"
	"jobbify/internal/domain/swipe"

	"github.com/stretchr/testify/assert"
)

func TestBuildSignals_MajorityVote(t *testing.T) {
	records := []swipe.Record{
		{Direction: swipe.DirectionRight, JobCompany: "Acme Labs", JobLocation: "Berlin, Germany", JobTags: []string{"golang"}},
		{Direction: swipe.DirectionRight, JobCompany: "Acme Labs", JobLocation: "Berlin, Germany"},
		{Direction: swipe.DirectionLeft, JobCompany: "Acme Labs"},
		{Direction: swipe.DirectionLeft, JobCompany: "Grind Corp", JobLocation: "Busytown"},
		{Direction: swipe.DirectionRight, JobCompany: "Tied Co"},
		{Direction: swipe.DirectionLeft, JobCompany: "Tied Co"},
	}

	s := BuildSignals(records)

	assert.True(t, s.LikedCompanies["acme labs"])
	assert.True(t, s.DislikedCompanies["grind corp"])
	assert.False(t, s.LikedCompanies["tied co"])
	assert.False(t, s.DislikedCompanies["tied co"])
	assert.True(t, s.LikedLocations["berlin, germany"])
	assert.True(t, s.DislikedLocations["busytown"])
	assert.True(t, s.LikedTags["golang"])
}

func TestAdjust_AppliesDeltasAndReclamps(t *testing.T) {
	signals := Signals{
		LikedCompanies:    map[string]bool{"acme labs": true},
		DislikedCompanies: map[string]bool{"grind corp": true},
		LikedLocations:    map[string]bool{"berlin, germany": true},
		DislikedLocations: map[string]bool{},
		LikedTags:         map[string]bool{"golang": true},
	}

	liked := Recommendation{
		Job:          job.Job{Company: "Acme Labs", Location: "Berlin, Germany", Tags: []string{"golang"}},
		OverallScore: 70,
	}
	// +10 company, +8 location, +5 tag
	assert.Equal(t, 93, Adjust(liked, signals).OverallScore)

	disliked := Recommendation{
		Job:          job.Job{Company: "Grind Corp", Location: "Elsewhere"},
		OverallScore: 10,
	}
	// -15 company, clamped at 0
	assert.Equal(t, 0, Adjust(disliked, signals).OverallScore)

	ceiling := Recommendation{
		Job:          job.Job{Company: "Acme Labs", Location: "Berlin, Germany", Tags: []string{"golang"}},
		OverallScore: 97,
	}
	assert.Equal(t, 100, Adjust(ceiling, signals).OverallScore)
}

// With no signals the recommendation must come back byte-identical; this is
// what guarantees that disabling swipe learning changes nothing.
func TestAdjust_EmptySignals_IsIdentity(t *testing.T) {
	rec := Recommendation{
		Job:          job.Job{Company: "Acme Labs", Location: "Berlin, Germany"},
		OverallScore: 64,
		RoleScore:    80,
		Reason:       "Strong role fit",
	}
	assert.Equal(t, rec, Adjust(rec, BuildSignals(nil)))
}
