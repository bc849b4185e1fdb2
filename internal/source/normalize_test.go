package source

import (
	"strings"
	"testing"

	"jobbify/internal/domain/scoring"
)

func TestPlaceholderLogoURL_Deterministic(t *testing.T) {
	a := PlaceholderLogoURL("Acme Labs")
	b := PlaceholderLogoURL("acme labs")
	if a != b {
		t.Fatalf("placeholder should be case-insensitive deterministic: %q vs %q", a, b)
	}
	if !strings.Contains(a, "ui-avatars.com") {
		t.Fatalf("unexpected placeholder url: %q", a)
	}
}

func TestCompanyLogoURL(t *testing.T) {
	if got := CompanyLogoURL("Acme Labs"); got != "https://logo.clearbit.com/acmelabs.com" {
		t.Fatalf("unexpected logo url: %q", got)
	}
	if got := CompanyLogoURL("???"); !strings.Contains(got, "ui-avatars.com") {
		t.Fatalf("unusable name should fall back to placeholder, got %q", got)
	}
}

func TestSynthesizeTags(t *testing.T) {
	tags := SynthesizeTags(
		"Senior Golang Developer",
		"You will build backend APIs and run kubernetes clusters",
		scoring.TagKeywords(),
	)

	want := map[string]bool{"golang": true, "backend": true, "devops": true}
	for _, tag := range tags {
		delete(want, tag)
	}
	if len(want) != 0 {
		t.Fatalf("missing expected tags %v in %v", want, tags)
	}
}

func TestStripHTML(t *testing.T) {
	got := StripHTML("<p>Hello&nbsp;<b>world</b> &amp; friends</p>")
	if got != "Hello world & friends" {
		t.Fatalf("unexpected: %q", got)
	}
}
