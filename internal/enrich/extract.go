package enrich

import (
	"strings"
)

// Manual extraction walks the description line by line, collecting bullet
// points under recognizable section headings. It is the no-network fallback
// behind the model-based extractor and intentionally favors precision: a
// short list beats a list of noise.

var qualificationHeadings = []string{
	"qualifications",
	"what you bring",
	"what you'll bring",
	"about you",
	"nice to have",
	"preferred",
	"bonus points",
}

var requirementHeadings = []string{
	"requirements",
	"must have",
	"what you'll need",
	"what you need",
	"we require",
	"minimum",
}

const maxExtracted = 8

// ExtractManual pulls qualification and requirement phrases out of a plain
// text description without any model call.
func ExtractManual(description string) (qualifications, requirements []string) {
	lines := strings.Split(description, "\n")

	section := ""
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if h := headingKind(line); h != "" {
			section = h
			continue
		}

		item, ok := bulletText(line)
		if !ok {
			// A long prose paragraph ends the section.
			if len(line) > 120 {
				section = ""
			}
			continue
		}

		switch section {
		case "qualifications":
			if len(qualifications) < maxExtracted {
				qualifications = append(qualifications, item)
			}
		case "requirements":
			if len(requirements) < maxExtracted {
				requirements = append(requirements, item)
			}
		}
	}

	if len(requirements) == 0 {
		requirements = sentencesWithYearMarkers(description)
	}
	return qualifications, requirements
}

// headingKind classifies a short line as a section heading, or returns "".
func headingKind(line string) string {
	l := strings.ToLower(strings.TrimRight(line, ":"))
	if len(l) > 40 {
		return ""
	}
	for _, h := range requirementHeadings {
		if strings.Contains(l, h) {
			return "requirements"
		}
	}
	for _, h := range qualificationHeadings {
		if strings.Contains(l, h) {
			return "qualifications"
		}
	}
	return ""
}

func bulletText(line string) (string, bool) {
	for _, prefix := range []string{"- ", "* ", "• ", "– "} {
		if strings.HasPrefix(line, prefix) {
			item := strings.TrimSpace(strings.TrimPrefix(line, prefix))
			return item, item != ""
		}
	}
	return "", false
}

// sentencesWithYearMarkers catches "5+ years of X" style requirements living
// in prose instead of bullet lists.
func sentencesWithYearMarkers(description string) []string {
	var out []string
	for _, sentence := range strings.FieldsFunc(description, func(r rune) bool {
		return r == '.' || r == '\n'
	}) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" || len(sentence) > 160 {
			continue
		}
		lower := strings.ToLower(sentence)
		if strings.Contains(lower, "years of") || strings.Contains(lower, "years'") || strings.Contains(lower, "experience with") {
			out = append(out, sentence)
			if len(out) == maxExtracted {
				break
			}
		}
	}
	return out
}
