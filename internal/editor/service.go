package editor

import (
	"errors"

	navcmd "github.com/countyhub/go-minisite/internal/commands/navigation"
	pagescmd "github.com/countyhub/go-minisite/internal/commands/pages"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"
)

var (
	ErrPagesRequired      = errors.New("editor: page service is required")
	ErrNavigationRequired = errors.New("editor: navigation service is required")
	ErrCommandsRequired   = errors.New("editor: save and delete commands are required")
	ErrOwnerMismatch      = errors.New("editor: record belongs to another listing")
	ErrPageNotOption      = errors.New("editor: page is not one of the listing's pages")
	ErrParentNotOption    = errors.New("editor: parent must be a top-level item of the listing")
	ErrIndexOutOfRange    = errors.New("editor: section index out of range")
)

// Commands carries the handlers the editors persist through.
type Commands struct {
	SavePage         command.Commander[pagescmd.SavePageCommand]
	SaveNavigation   command.Commander[navcmd.SaveItemCommand]
	DeleteNavigation command.Commander[navcmd.DeleteItemCommand]
}

func (c Commands) complete() bool {
	return c.SavePage != nil && c.SaveNavigation != nil && c.DeleteNavigation != nil
}

// Option configures the editor service.
type Option func(*Service)

// WithLogger sets the logger used by the dashboard and editors.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides the generator used for new page and item ids.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Service opens the dashboard and the page and navigation editors of a
// listing. Reads go to the services, writes go through the commands.
type Service struct {
	pages    pages.Service
	nav      navigation.Service
	commands Commands
	logger   interfaces.Logger
	newID    func() uuid.UUID
}

// NewService wires the editors.
func NewService(pageSvc pages.Service, navSvc navigation.Service, cmds Commands, opts ...Option) (*Service, error) {
	if pageSvc == nil {
		return nil, ErrPagesRequired
	}
	if navSvc == nil {
		return nil, ErrNavigationRequired
	}
	if !cmds.complete() {
		return nil, ErrCommandsRequired
	}
	s := &Service{
		pages:    pageSvc,
		nav:      navSvc,
		commands: cmds,
		logger:   logging.NoOp(),
		newID:    uuid.New,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Dashboard returns the dashboard view builder.
func (s *Service) Dashboard() *Dashboard {
	return &Dashboard{svc: s}
}
