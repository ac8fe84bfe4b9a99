package render

import (
	"html/template"
	"strings"

	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/metrics"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	"github.com/countyhub/go-minisite/sections"
)

// Options are the cosmetic inputs of a render.
type Options struct {
	DisplayName string
	AccentColor string
}

// View is the render result: the blocks to display, in section order.
type View struct {
	DisplayName string
	Accent      string
	Blocks      []Block
}

// Block is the view model of one section. Exactly one of the typed fields is
// set, matching Kind.
type Block struct {
	ID       string
	Kind     sections.Type
	Hero     *HeroBlock
	Text     *TextBlock
	Image    *ImageBlock
	Gallery  *GalleryBlock
	Features *FeaturesBlock
	HTML     *HTMLBlock
}

type HeroBlock struct {
	Title    string
	Subtitle string
	Image    string
	CTAText  string
	CTALink  string
}

type TextBlock struct {
	Heading string
	Body    template.HTML
}

type ImageBlock struct {
	URL     string
	Caption string
	Alt     string
}

type GalleryBlock struct {
	Images []string
}

type FeaturesBlock struct {
	Heading string
	Items   []string
}

type HTMLBlock struct {
	Markup template.HTML
}

type Option func(*Renderer)

// WithMarkdownParser sets the parser used when TextFormat is markdown.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(r *Renderer) {
		if parser != nil {
			r.markdown = parser
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithMetrics(recorder metrics.Recorder) Option {
	return func(r *Renderer) {
		if recorder != nil {
			r.metrics = recorder
		}
	}
}

// Renderer turns section lists into views. It holds configuration only; the
// same input always produces the same output.
type Renderer struct {
	cfg      Config
	markdown interfaces.MarkdownParser
	logger   interfaces.Logger
	metrics  metrics.Recorder
	tmpl     *template.Template
}

func New(cfg Config, opts ...Option) *Renderer {
	if cfg.TextFormat == "" {
		cfg.TextFormat = TextFormatPlain
	}
	if !ValidAccent(cfg.DefaultAccent) {
		cfg.DefaultAccent = DefaultAccentColor
	}
	r := &Renderer{
		cfg:     cfg,
		logger:  logging.NoOp(),
		metrics: metrics.NoOp(),
		tmpl:    templates,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render builds the view for list. Unknown and malformed sections are
// skipped, as are image and gallery sections with nothing to show.
func (r *Renderer) Render(list []sections.Section, opts Options) View {
	view := View{
		DisplayName: strings.TrimSpace(opts.DisplayName),
		Accent:      r.Accent(opts.AccentColor),
		Blocks:      make([]Block, 0, len(list)),
	}
	for _, section := range list {
		block, ok := r.block(section)
		if !ok {
			r.metrics.SectionSkipped(string(section.Type()))
			continue
		}
		view.Blocks = append(view.Blocks, block)
	}
	return view
}

// Accent returns color when it is a valid hex color, else the configured
// default.
func (r *Renderer) Accent(color string) string {
	color = strings.TrimSpace(color)
	if ValidAccent(color) {
		return strings.ToLower(color)
	}
	return r.cfg.DefaultAccent
}

func (r *Renderer) block(section sections.Section) (Block, bool) {
	block := Block{ID: section.ID, Kind: section.Type()}
	switch payload := section.Content.(type) {
	case sections.Hero:
		block.Hero = &HeroBlock{
			Title:    payload.Title,
			Subtitle: payload.Subtitle,
			Image:    strings.TrimSpace(payload.Image),
			CTAText:  payload.CTAText,
			CTALink:  strings.TrimSpace(payload.CTALink),
		}
	case sections.Text:
		block.Text = &TextBlock{Heading: payload.Heading, Body: r.textBody(payload.Body)}
	case sections.Image:
		url := strings.TrimSpace(payload.Image)
		if url == "" {
			return Block{}, false
		}
		block.Image = &ImageBlock{URL: url, Caption: payload.Caption, Alt: payload.Alt}
	case sections.Gallery:
		images := make([]string, 0, len(payload.Images))
		for _, image := range payload.Images {
			if image = strings.TrimSpace(image); image != "" {
				images = append(images, image)
			}
		}
		if len(images) == 0 {
			return Block{}, false
		}
		block.Gallery = &GalleryBlock{Images: images}
	case sections.Features:
		items := make([]string, 0, len(payload.Items))
		for _, item := range payload.Items {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		block.Features = &FeaturesBlock{Heading: payload.Heading, Items: items}
	case sections.HTML:
		block.HTML = &HTMLBlock{Markup: r.rawHTML(payload.HTML)}
	default:
		return Block{}, false
	}
	return block, true
}

func (r *Renderer) textBody(body string) template.HTML {
	if r.cfg.TextFormat == TextFormatMarkdown && r.markdown != nil {
		out, err := r.markdown.ParseWithOptions([]byte(body), interfaces.ParseOptions{SafeMode: true})
		if err == nil {
			return template.HTML(out)
		}
		r.logger.Warn("render.markdown_failed", "error", err)
	}
	return Paragraphs(body)
}

func (r *Renderer) rawHTML(markup string) template.HTML {
	if r.cfg.AllowRawHTML {
		return template.HTML(markup)
	}
	return template.HTML(template.HTMLEscapeString(markup))
}

// Paragraphs escapes text and wraps each blank-line separated block in <p>,
// turning single newlines into <br>.
func Paragraphs(text string) template.HTML {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var b strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i, line := range lines {
			lines[i] = template.HTMLEscapeString(strings.TrimSpace(line))
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return template.HTML(b.String())
}
