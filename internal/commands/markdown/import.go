package markdowncmd

import (
	"context"
	"strings"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/markdown"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
)

const importDirectoryMessageType = "minisite.markdown.import_directory"

// DirectoryImporter is the slice of markdown.Service the handler needs.
type DirectoryImporter interface {
	ImportDirectory(ctx context.Context, owner entity.Ref, dir string, opts markdown.ImportOptions) (*markdown.ImportResult, error)
}

// ImportDirectoryCommand imports every Markdown file under Directory as a
// page of the listing.
type ImportDirectoryCommand struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	// Directory is relative to the configured markdown base path.
	Directory string `json:"directory"`
	DryRun    bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures the owner and directory are present.
func (m ImportDirectoryCommand) Validate() error {
	errs := validation.Errors{}
	commands.ValidateOwner(errs, "minisite.markdown.import_directory", m.EntityType, m.EntityID)
	if strings.TrimSpace(m.Directory) == "" {
		errs["directory"] = validation.NewError("minisite.markdown.import_directory.directory_required", "directory is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var _ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)

// ImportDirectoryHandler runs directory imports through the shared handler.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler creates a handler bound to importer.
func NewImportDirectoryHandler(importer DirectoryImporter, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		if !gates.markdownEnabled() {
			return classify(ErrMarkdownFeatureDisabled, codeFeatureDisabled)
		}
		owner, err := commands.OwnerRef(msg.EntityType, msg.EntityID)
		if err != nil {
			return classify(err, codeImportInvalid)
		}
		result, err := importer.ImportDirectory(ctx, owner, msg.Directory, markdown.ImportOptions{DryRun: msg.DryRun})
		if result != nil {
			logging.WithFields(logging.WithOwner(baseLogger, owner), map[string]any{
				"created_count": len(result.Created),
				"updated_count": len(result.Updated),
				"skipped_count": len(result.Skipped),
				"error_count":   len(result.Errors),
				"dry_run":       msg.DryRun,
			}).Info("markdown.command.import_directory.completed")
		}
		return classify(err, codeImportFailed)
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](baseLogger),
		commands.WithOperation[ImportDirectoryCommand]("markdown.import_directory"),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			fields := map[string]any{
				"entity_type": msg.EntityType,
				"entity_id":   msg.EntityID,
				"directory":   msg.Directory,
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
