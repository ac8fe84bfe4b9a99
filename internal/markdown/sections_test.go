package markdown

import (
	"reflect"
	"testing"

	"github.com/countyhub/go-minisite/sections"
)

func TestSplitSectionsCutsAtLevelTwoHeadings(t *testing.T) {
	body := []byte("# Welcome\n\nIntro line.\n\n## Hours\n\nOpen daily.\n\n### Holidays\n\nClosed on the 4th.\n\n## Contact\n\nCall us.\n")

	result := SplitSections(body)
	if result.Title != "Welcome" {
		t.Fatalf("expected title from leading heading, got %q", result.Title)
	}
	if len(result.Sections) != 3 {
		t.Fatalf("expected intro plus two sections, got %d", len(result.Sections))
	}

	intro := result.Sections[0].Content.(sections.Text)
	if result.Sections[0].ID != "intro" || intro.Heading != "" || intro.Body != "Intro line." {
		t.Fatalf("unexpected intro %+v", result.Sections[0])
	}
	hours := result.Sections[1].Content.(sections.Text)
	if hours.Heading != "Hours" {
		t.Fatalf("unexpected heading %q", hours.Heading)
	}
	if hours.Body != "Open daily.\n\n### Holidays\n\nClosed on the 4th." {
		t.Fatalf("expected deeper headings to stay in the body, got %q", hours.Body)
	}
	contact := result.Sections[2].Content.(sections.Text)
	if contact.Heading != "Contact" || contact.Body != "Call us." {
		t.Fatalf("unexpected contact section %+v", contact)
	}
	if err := sections.Validate(result.Sections); err != nil {
		t.Fatalf("expected valid section list: %v", err)
	}
}

func TestSplitSectionsIDsAreStable(t *testing.T) {
	body := []byte("## Menu\n\nTacos.\n\n## Menu\n\nBurritos.\n")
	first := SplitSections(body)
	second := SplitSections(body)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output for identical input")
	}
	if first.Sections[0].ID == first.Sections[1].ID {
		t.Fatalf("expected repeated headings to get distinct ids")
	}
}

func TestSplitSectionsWithoutHeadings(t *testing.T) {
	result := SplitSections([]byte("Just one paragraph.\n"))
	if result.Title != "" {
		t.Fatalf("expected no title, got %q", result.Title)
	}
	if len(result.Sections) != 1 || result.Sections[0].ID != "intro" {
		t.Fatalf("expected a single intro section, got %+v", result.Sections)
	}

	empty := SplitSections(nil)
	if empty.Sections == nil || len(empty.Sections) != 0 {
		t.Fatalf("expected empty non-nil section list, got %#v", empty.Sections)
	}
}

func TestSplitSectionsKeepsLateLevelOneHeading(t *testing.T) {
	result := SplitSections([]byte("Intro.\n\n# Not a title\n\nMore.\n"))
	if result.Title != "" {
		t.Fatalf("a level-one heading after text is not the title, got %q", result.Title)
	}
	text := result.Sections[0].Content.(sections.Text)
	if text.Body != "Intro.\n\n# Not a title\n\nMore." {
		t.Fatalf("unexpected body %q", text.Body)
	}
}
