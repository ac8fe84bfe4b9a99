package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the page metadata read from the head of a Markdown file.
type FrontMatter struct {
	Title           string
	Slug            string
	Order           *int
	Published       *bool
	Homepage        bool
	MetaTitle       string
	MetaDescription string
	Navigation      NavigationMatter
	Custom          map[string]any
}

// NavigationMatter is the "navigation" key: either a bare boolean or a map
// with label and order.
type NavigationMatter struct {
	Enabled bool
	Label   string
	Order   *int
}

// IsPublished defaults to true when the key is absent.
func (f FrontMatter) IsPublished() bool {
	if f.Published == nil {
		return true
	}
	return *f.Published
}

// Document is a parsed Markdown file.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	Checksum     []byte
	LastModified time.Time
}

// ParseFrontMatter splits source into metadata and the Markdown body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	fm, err := meta.toFrontMatter()
	if err != nil {
		return FrontMatter{}, nil, err
	}
	return fm, body, nil
}

// BuildDocument parses source read from path.
func BuildDocument(path string, source []byte, modified time.Time) (*Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Document{
		FilePath:     path,
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title           string         `yaml:"title"`
	Slug            string         `yaml:"slug"`
	Order           *int           `yaml:"order"`
	Published       *bool          `yaml:"published"`
	Homepage        bool           `yaml:"homepage"`
	MetaTitle       string         `yaml:"meta_title"`
	MetaDescription string         `yaml:"meta_description"`
	Navigation      any            `yaml:"navigation"`
	Custom          map[string]any `yaml:",inline"`
}

func (env frontMatterEnvelope) toFrontMatter() (FrontMatter, error) {
	nav, err := parseNavigation(env.Navigation)
	if err != nil {
		return FrontMatter{}, err
	}
	custom := make(map[string]any, len(env.Custom))
	for key, value := range env.Custom {
		custom[key] = value
	}
	return FrontMatter{
		Title:           strings.TrimSpace(env.Title),
		Slug:            strings.TrimSpace(env.Slug),
		Order:           env.Order,
		Published:       env.Published,
		Homepage:        env.Homepage,
		MetaTitle:       strings.TrimSpace(env.MetaTitle),
		MetaDescription: strings.TrimSpace(env.MetaDescription),
		Navigation:      nav,
		Custom:          custom,
	}, nil
}

func parseNavigation(raw any) (NavigationMatter, error) {
	switch value := raw.(type) {
	case nil:
		return NavigationMatter{}, nil
	case bool:
		return NavigationMatter{Enabled: value}, nil
	case map[string]any:
		return navigationFromMap(func(key string) (any, bool) {
			v, ok := value[key]
			return v, ok
		})
	case map[any]any:
		return navigationFromMap(func(key string) (any, bool) {
			v, ok := value[key]
			return v, ok
		})
	default:
		return NavigationMatter{}, fmt.Errorf("parse frontmatter: navigation must be a boolean or a map, got %T", raw)
	}
}

func navigationFromMap(get func(string) (any, bool)) (NavigationMatter, error) {
	nav := NavigationMatter{Enabled: true}
	if label, ok := get("label"); ok {
		nav.Label = strings.TrimSpace(fmt.Sprint(label))
	}
	if enabled, ok := get("enabled"); ok {
		flag, isBool := enabled.(bool)
		if !isBool {
			return NavigationMatter{}, fmt.Errorf("parse frontmatter: navigation.enabled must be a boolean")
		}
		nav.Enabled = flag
	}
	if order, ok := get("order"); ok {
		value, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(order)))
		if err != nil {
			return NavigationMatter{}, fmt.Errorf("parse frontmatter: navigation.order: %w", err)
		}
		nav.Order = &value
	}
	return nav, nil
}
