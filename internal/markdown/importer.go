package markdown

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/editor"
	"github.com/countyhub/go-minisite/internal/identity"
	"github.com/countyhub/go-minisite/internal/logging"
	minisitepages "github.com/countyhub/go-minisite/pages"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrEditorRequired = errors.New("markdown importer: editor service is required")
	ErrSlugMissing    = errors.New("markdown importer: slug could not be determined")
)

// ImportOptions tune a single import run.
type ImportOptions struct {
	// DryRun reports what would change without saving.
	DryRun bool
}

// ImportResult summarises an import run.
type ImportResult struct {
	Created []uuid.UUID
	Updated []uuid.UUID
	Skipped []string
	Errors  []error
}

// Importer saves documents as pages through the page editor, so imported
// pages follow the same rules as pages edited by hand, including the
// navigation toggle.
type Importer struct {
	editor *editor.Service
	logger interfaces.Logger
}

// NewImporter builds an Importer.
func NewImporter(svc *editor.Service, logger interfaces.Logger) *Importer {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{editor: svc, logger: logger}
}

// ImportDocuments imports docs for owner. A failing document is recorded in
// the result and the run continues; the joined errors are also returned.
func (i *Importer) ImportDocuments(ctx context.Context, owner entity.Ref, docs []*Document, opts ImportOptions) (*ImportResult, error) {
	if i == nil || i.editor == nil {
		return nil, ErrEditorRequired
	}
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	logger := logging.WithOwner(i.logger.WithContext(ctx), owner)

	result := &ImportResult{}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, err)
			break
		}
		if doc == nil {
			continue
		}
		id, created, err := i.importDocument(ctx, owner, doc, opts)
		switch {
		case err != nil:
			logger.Warn("markdown.import_failed", "file", doc.FilePath, "error", err)
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", doc.FilePath, err))
		case opts.DryRun:
			result.Skipped = append(result.Skipped, doc.FilePath)
		case created:
			result.Created = append(result.Created, id)
		default:
			result.Updated = append(result.Updated, id)
		}
	}
	logger.Info("markdown.import_completed",
		"created", len(result.Created),
		"updated", len(result.Updated),
		"skipped", len(result.Skipped),
		"errors", len(result.Errors),
		"dry_run", opts.DryRun,
	)
	return result, errors.Join(result.Errors...)
}

func (i *Importer) importDocument(ctx context.Context, owner entity.Ref, doc *Document, opts ImportOptions) (uuid.UUID, bool, error) {
	fm := doc.FrontMatter
	split := SplitSections(doc.Body)

	title := fm.Title
	if title == "" {
		title = split.Title
	}
	pageSlug, err := documentSlug(fm.Slug, title, doc.FilePath)
	if err != nil {
		return uuid.Nil, false, err
	}
	if title == "" {
		title = fallbackTitle(pageSlug)
	}

	id := identity.ImportedPageUUID(owner, pageSlug)
	pe, err := i.editor.OpenPage(ctx, owner, id)
	if err != nil {
		return uuid.Nil, false, err
	}
	created := pe.State().IsNew

	pe.SetTitle(title)
	pe.SetSlug(pageSlug)
	pe.SetPublished(fm.IsPublished())
	pe.SetHomepage(fm.Homepage)
	if fm.Order != nil {
		pe.SetOrder(*fm.Order)
	}
	pe.SetMeta(fm.MetaTitle, fm.MetaDescription)
	if err := pe.SetSections(split.Sections); err != nil {
		return uuid.Nil, false, err
	}
	pe.SetAddToNavigation(fm.Navigation.Enabled)
	if fm.Navigation.Label != "" {
		pe.SetNavigationLabel(fm.Navigation.Label)
	}
	if fm.Navigation.Order != nil {
		pe.SetNavigationOrder(*fm.Navigation.Order)
	}

	if opts.DryRun {
		return id, created, nil
	}
	if err := pe.Save(ctx); err != nil {
		return uuid.Nil, false, err
	}
	return id, created, nil
}

// documentSlug prefers the front matter slug, then the title, then the file
// name.
func documentSlug(explicit, title, filePath string) (string, error) {
	candidates := []string{explicit, title, strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))}
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		if normalized := minisitepages.DeriveSlug(candidate); normalized != "" {
			return normalized, nil
		}
	}
	return "", ErrSlugMissing
}

func fallbackTitle(pageSlug string) string {
	words := strings.Fields(strings.ReplaceAll(pageSlug, "-", " "))
	for idx, word := range words {
		words[idx] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
