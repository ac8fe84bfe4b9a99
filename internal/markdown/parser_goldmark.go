package markdown

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/countyhub/go-minisite/pkg/interfaces"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// defaultExtensions cover what owners type into text sections: bare links
// and struck-out prices.
var defaultExtensions = []string{"linkify", "strikethrough"}

var extensions = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"linkify":       extension.Linkify,
	"strikethrough": extension.Strikethrough,
	"table":         extension.Table,
	"typographer":   extension.Typographer,
}

// GoldmarkParser implements interfaces.MarkdownParser. One goldmark engine is
// built per distinct option set and reused, so the renderer can call it once
// per text section.
type GoldmarkParser struct {
	defaults interfaces.ParseOptions

	mu      sync.Mutex
	engines map[string]goldmark.Markdown
}

func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaults: defaults,
		engines:  make(map[string]goldmark.Markdown),
	}
}

func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaults)
}

func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.engine(opts).Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown: convert: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *GoldmarkParser) engine(opts interfaces.ParseOptions) goldmark.Markdown {
	names := extensionNames(opts.Extensions)
	key := fmt.Sprintf("wraps=%t;safe=%t;ext=%s", opts.HardWraps, opts.SafeMode, strings.Join(names, ","))

	p.mu.Lock()
	defer p.mu.Unlock()
	if engine, ok := p.engines[key]; ok {
		return engine
	}

	var rendererOpts []renderer.Option
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}
	extenders := make([]goldmark.Extender, 0, len(names))
	for _, name := range names {
		extenders = append(extenders, extensions[name])
	}

	engine := goldmark.New(
		goldmark.WithExtensions(extenders...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	p.engines[key] = engine
	return engine
}

// extensionNames normalises requested names, drops unknown ones and sorts
// them so equivalent option sets share an engine.
func extensionNames(requested []string) []string {
	if len(requested) == 0 {
		requested = defaultExtensions
	}
	seen := make(map[string]struct{}, len(requested))
	names := make([]string, 0, len(requested))
	for _, raw := range requested {
		name := strings.ToLower(strings.TrimSpace(raw))
		if _, known := extensions[name]; !known {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
