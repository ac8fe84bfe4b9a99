package interfaces

// MarkdownParser converts Markdown bytes into HTML.
type MarkdownParser interface {
	// Parse converts Markdown using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing. SafeMode drops raw HTML found in
// the source.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}
