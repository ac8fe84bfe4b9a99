package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	minisite "github.com/countyhub/go-minisite"
	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/di"
	"github.com/countyhub/go-minisite/internal/markdown"
)

func runImport(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("minisite import", flag.ContinueOnError)
	fs.SetOutput(out)
	configPath := fs.String("config", "", "Path to a YAML, JSON or TOML config file")
	contentDir := fs.String("content-dir", "", "Markdown content root (overrides markdown.contentdir)")
	entityType := fs.String("entity-type", "", "Listing kind, e.g. church or food_truck")
	entityID := fs.String("entity-id", "", "Listing id")
	directory := fs.String("directory", ".", "Directory to import, relative to the content root")
	dryRun := fs.Bool("dry-run", false, "Report changes without saving pages")
	if err := fs.Parse(args); err != nil {
		return err
	}

	owner, err := entity.NewRef(*entityType, *entityID)
	if err != nil {
		return fmt.Errorf("owner: %w", err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	if *contentDir != "" {
		cfg.Markdown.ContentDir = *contentDir
	}

	module, err := minisite.New(cfg, di.WithMigrations(minisite.GetMigrationsFS()))
	if err != nil {
		return fmt.Errorf("build module: %w", err)
	}
	defer module.Close()

	svc := module.Markdown()
	if svc == nil {
		return errors.New("markdown service not configured")
	}

	result, err := svc.ImportDirectory(context.Background(), owner, *directory, markdown.ImportOptions{DryRun: *dryRun})
	if err != nil {
		return fmt.Errorf("import %s: %w", *directory, err)
	}

	fmt.Fprintf(out, "owner: %s\ncreated: %d\nupdated: %d\nskipped: %d\nerrors: %d\n",
		owner, len(result.Created), len(result.Updated), len(result.Skipped), len(result.Errors))
	for _, importErr := range result.Errors {
		fmt.Fprintf(out, "  %v\n", importErr)
	}
	if len(result.Errors) > 0 {
		return errors.Join(result.Errors...)
	}
	return nil
}
