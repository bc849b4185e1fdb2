package source

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// avatarPalette feeds the placeholder logo generator. The color is keyed by a
// hash of the company name so the same company always renders the same tile.
var avatarPalette = []string{
	"0D8ABC", "7C3AED", "DB2777", "059669", "D97706", "DC2626", "2563EB",
}

// PlaceholderLogoURL builds a deterministic avatar-tile URL for companies
// with no discoverable logo.
func PlaceholderLogoURL(company string) string {
	company = strings.TrimSpace(company)
	if company == "" {
		company = "Jobbify"
	}
	sum := sha256.Sum256([]byte(strings.ToLower(company)))
	color := avatarPalette[binary.BigEndian.Uint32(sum[:4])%uint32(len(avatarPalette))]
	return fmt.Sprintf(
		"https://ui-avatars.com/api/?name=%s&background=%s&color=fff&size=128",
		url.QueryEscape(company), color,
	)
}

// CompanyLogoURL guesses a logo via the clearbit logo service from the
// company name; falls back to the placeholder when the name is unusable.
func CompanyLogoURL(company string) string {
	slug := strings.ToLower(strings.TrimSpace(company))
	slug = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, slug)
	if slug == "" {
		return PlaceholderLogoURL(company)
	}
	return "https://logo.clearbit.com/" + slug + ".com"
}

// SynthesizeTags derives tags by keyword matching against title +
// description, for providers that publish none.
func SynthesizeTags(title, description string, keywordTable map[string][]string) []string {
	haystack := strings.ToLower(title + " " + description)
	out := make([]string, 0, 4)
	for tag, kws := range keywordTable {
		for _, kw := range kws {
			if strings.Contains(haystack, kw) {
				out = append(out, tag)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// StripHTML flattens provider HTML descriptions to plain text.
func StripHTML(s string) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	return strings.Join(strings.Fields(s), " ")
}
