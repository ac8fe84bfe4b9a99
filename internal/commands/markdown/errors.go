package markdowncmd

import (
	"errors"

	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/markdown"
	goerrors "github.com/goliatone/go-errors"
)

// ErrMarkdownFeatureDisabled is returned when imports are switched off.
var ErrMarkdownFeatureDisabled = errors.New("markdown command: feature disabled")

const (
	codeImportFailed    = "MARKDOWN_IMPORT_FAILED"
	codeFeatureDisabled = "MARKDOWN_DISABLED"
	codeImportInvalid   = "MARKDOWN_INVALID"
)

var markdownErrorMappings = []commands.ErrorMapping{
	{Target: ErrMarkdownFeatureDisabled, Category: goerrors.CategoryOperation, Code: codeFeatureDisabled},
	{Target: markdown.ErrEditorRequired, Category: goerrors.CategoryInternal, Code: codeImportFailed},
	{Target: markdown.ErrSlugMissing, Category: goerrors.CategoryValidation, Code: codeImportInvalid},
}

func classify(err error, fallback string) error {
	return commands.Classify(err, fallback, markdownErrorMappings...)
}
