package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/countyhub/go-minisite/entity"
)

// Config controls where the service looks for Markdown files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
}

// Service loads Markdown files from disk and imports them as pages.
type Service struct {
	cfg      Config
	loader   *Loader
	importer *Importer
}

// NewService constructs a Service rooted at cfg.BasePath.
func NewService(cfg Config, importer *Importer) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceFS(filesystem, cfg, importer), nil
}

// NewServiceFS constructs a Service over an existing filesystem.
func NewServiceFS(filesystem fs.FS, cfg Config, importer *Importer) *Service {
	return &Service{
		cfg: cfg,
		loader: NewLoader(filesystem, LoaderConfig{
			BasePath:  cfg.BasePath,
			Pattern:   cfg.Pattern,
			Recursive: cfg.Recursive,
		}),
		importer: importer,
	}
}

// Load reads one document relative to the base path.
func (s *Service) Load(ctx context.Context, path string) (*Document, error) {
	return s.loader.LoadFile(ctx, s.normalisePath(path))
}

// LoadDirectory reads every document in dir.
func (s *Service) LoadDirectory(ctx context.Context, dir string) ([]*Document, error) {
	return s.loader.LoadDirectory(ctx, s.normalisePath(dir))
}

// ImportDirectory loads dir and imports its documents as pages of owner.
func (s *Service) ImportDirectory(ctx context.Context, owner entity.Ref, dir string, opts ImportOptions) (*ImportResult, error) {
	if s.importer == nil {
		return nil, ErrEditorRequired
	}
	docs, err := s.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	return s.importer.ImportDocuments(ctx, owner, docs, opts)
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
