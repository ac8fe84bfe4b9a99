package render

import (
	"fmt"
	"regexp"
	"strings"
)

// TextFormat selects how text section bodies are turned into HTML.
type TextFormat string

const (
	TextFormatPlain    TextFormat = "plain"
	TextFormatMarkdown TextFormat = "markdown"
)

// DefaultAccentColor is used when neither the listing nor the config supply
// a valid color.
const DefaultAccentColor = "#2563eb"

var accentPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Config controls renderer output.
type Config struct {
	TextFormat    TextFormat
	AllowRawHTML  bool
	DefaultAccent string
}

func DefaultConfig() Config {
	return Config{
		TextFormat:    TextFormatPlain,
		DefaultAccent: DefaultAccentColor,
	}
}

func (c Config) Validate() error {
	switch c.TextFormat {
	case "", TextFormatPlain, TextFormatMarkdown:
	default:
		return fmt.Errorf("render: unsupported text format %q", c.TextFormat)
	}
	if c.DefaultAccent != "" && !ValidAccent(c.DefaultAccent) {
		return fmt.Errorf("render: default accent %q is not a #rgb or #rrggbb color", c.DefaultAccent)
	}
	return nil
}

// ValidAccent reports whether color is #rgb or #rrggbb.
func ValidAccent(color string) bool {
	return accentPattern.MatchString(strings.TrimSpace(color))
}
