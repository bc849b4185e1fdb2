package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

// PayRange is a parsed min/max salary in absolute units.
type PayRange struct {
	Min float64
	Max float64
}

var payNumberRe = regexp.MustCompile(`\$?\s*(\d+(?:[.,]\d{1,3})*(?:\.\d+)?)\s*([kK])?`)

// ParsePayRange extracts a numeric range from a free-text pay string such as
// "$120K - $150K", "120,000 - 150,000" or "$95k". A single number yields
// min == max. Returns ok=false when no number can be found ("Negotiable",
// "Competitive", empty).
func ParsePayRange(pay string) (PayRange, bool) {
	pay = strings.TrimSpace(pay)
	if pay == "" {
		return PayRange{}, false
	}

	matches := payNumberRe.FindAllStringSubmatch(pay, -1)
	values := make([]float64, 0, 2)
	for _, m := range matches {
		raw := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if m[2] != "" {
			v *= 1000
		}
		if v <= 0 {
			continue
		}
		values = append(values, v)
		if len(values) == 2 {
			break
		}
	}

	switch len(values) {
	case 0:
		return PayRange{}, false
	case 1:
		return PayRange{Min: values[0], Max: values[0]}, true
	default:
		lo, hi := values[0], values[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		return PayRange{Min: lo, Max: hi}, true
	}
}

// scoreSalary compares the job's parsed pay range against the user's
// preferred [min,max]. Unparsable pay or an unset preference is neutral (50).
// Disjoint-too-low is 10; disjoint-too-high is 10, or 40 when the user marked
// salary negotiable; overlapping ranges score 60 + 40*overlapFraction, where
// the fraction is relative to the narrower of the two ranges so full
// containment counts as a complete overlap.
func scoreSalary(pay string, minSalary, maxSalary int, negotiable bool) int {
	r, ok := ParsePayRange(pay)
	if !ok {
		return 50
	}
	if minSalary <= 0 && maxSalary <= 0 {
		return 50
	}

	userMin := float64(minSalary)
	userMax := float64(maxSalary)
	if userMax <= 0 {
		userMax = userMin
	}
	if userMin > userMax {
		userMin, userMax = userMax, userMin
	}

	if r.Max < userMin {
		return 10
	}
	if r.Min > userMax {
		if negotiable {
			return 40
		}
		return 10
	}

	overlap := minF(r.Max, userMax) - maxF(r.Min, userMin)
	denom := minF(r.Max-r.Min, userMax-userMin)

	frac := 1.0
	if denom > 0 {
		frac = overlap / denom
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	return clamp(int(60 + 40*frac + 0.5))
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
