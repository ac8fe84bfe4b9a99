package markdown

import (
	"strings"
	"testing"
	"time"
)

func TestParseFrontMatterNavigationForms(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		enabled bool
		label   string
		order   int
	}{
		{"absent", "---\ntitle: A\n---\nbody", false, "", -1},
		{"boolean", "---\nnavigation: true\n---\nbody", true, "", -1},
		{"map", "---\nnavigation:\n  label: Visit\n  order: 3\n---\nbody", true, "Visit", 3},
		{"disabled map", "---\nnavigation:\n  enabled: false\n  label: Hidden\n---\nbody", false, "Hidden", -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fm, body, err := ParseFrontMatter([]byte(tc.source))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if strings.TrimSpace(string(body)) != "body" {
				t.Fatalf("unexpected body %q", body)
			}
			nav := fm.Navigation
			if nav.Enabled != tc.enabled || nav.Label != tc.label {
				t.Fatalf("unexpected navigation %+v", nav)
			}
			if tc.order < 0 && nav.Order != nil {
				t.Fatalf("expected no order, got %d", *nav.Order)
			}
			if tc.order >= 0 && (nav.Order == nil || *nav.Order != tc.order) {
				t.Fatalf("expected order %d, got %v", tc.order, nav.Order)
			}
		})
	}
}

func TestParseFrontMatterRejectsBadNavigation(t *testing.T) {
	if _, _, err := ParseFrontMatter([]byte("---\nnavigation: sometimes\n---\n")); err == nil {
		t.Fatalf("expected error for string navigation value")
	}
	if _, _, err := ParseFrontMatter([]byte("---\nnavigation:\n  order: first\n---\n")); err == nil {
		t.Fatalf("expected error for non-numeric order")
	}
}

func TestPublishedDefaultsToTrue(t *testing.T) {
	fm, _, err := ParseFrontMatter([]byte("no front matter here"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !fm.IsPublished() {
		t.Fatalf("expected documents without a published key to be published")
	}
	fm, _, err = ParseFrontMatter([]byte("---\npublished: false\n---\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if fm.IsPublished() {
		t.Fatalf("expected published: false to be honoured")
	}
}

func TestBuildDocumentKeepsUnknownKeys(t *testing.T) {
	modified := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	doc, err := BuildDocument("x.md", []byte("---\ntitle: X\nseason: spring\n---\nhello"), modified)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if doc.FrontMatter.Custom["season"] != "spring" {
		t.Fatalf("expected custom key to be kept, got %#v", doc.FrontMatter.Custom)
	}
	if _, ok := doc.FrontMatter.Custom["title"]; ok {
		t.Fatalf("known keys must not leak into custom")
	}
	if !doc.LastModified.Equal(modified) || doc.FilePath != "x.md" {
		t.Fatalf("unexpected document %+v", doc)
	}
}
