package commands

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/countyhub/go-minisite/entity"
	markdowncmd "github.com/countyhub/go-minisite/internal/commands/markdown"
	pagescmd "github.com/countyhub/go-minisite/internal/commands/pages"
	"github.com/countyhub/go-minisite/internal/di"
	"github.com/countyhub/go-minisite/internal/runtimeconfig"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/google/uuid"
)

func newMarkdownContainer(t *testing.T, schedules ...runtimeconfig.MarkdownScheduleConfig) *di.Container {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.Schedules = schedules
	cfg.Commands.AutoRegisterCron = len(schedules) > 0

	container, err := di.NewContainer(cfg, di.WithMarkdownFS(fstest.MapFS{
		"truck/menu.md": {Data: []byte("# Menu\n\nTacos.\n")},
	}))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	return container
}

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	container := newMarkdownContainer(t, runtimeconfig.MarkdownScheduleConfig{
		EntityType: "food_truck",
		EntityID:   "taco-loco",
		Directory:  "truck",
		Expression: "@hourly",
	})

	registry := &recordingRegistry{}
	dispatch := &recordingDispatcher{}
	cron := &recordingCron{}

	result, err := RegisterContainerCommands(container, RegistrationOptions{
		Registry:      registry,
		Dispatcher:    dispatch,
		CronRegistrar: cron.Registrar(),
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) != 9 {
		t.Fatalf("expected 9 handlers, got %d", len(result.Handlers))
	}
	if len(result.Handlers) != len(registry.handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(dispatch.subscriptions) != len(result.Handlers) {
		t.Fatalf("expected one subscription per handler, got %d", len(dispatch.subscriptions))
	}
	if result.Schedules != 1 || len(cron.registrations) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(cron.registrations))
	}
	if got := cron.registrations[0].config.Expression; got != "@hourly" {
		t.Fatalf("expected cron expression @hourly, got %q", got)
	}

	if err := cron.registrations[0].handler(); err != nil {
		t.Fatalf("cron handler: %v", err)
	}
	list, err := container.PageService().List(context.Background(), entity.FoodTruck("taco-loco"))
	if err != nil {
		t.Fatalf("list pages: %v", err)
	}
	if len(list) != 1 || list[0].Slug != "menu" {
		t.Fatalf("expected the scheduled import to create the menu page, got %+v", list)
	}

	result.Unsubscribe()
	for _, sub := range dispatch.subscriptions {
		if !sub.unsubscribed {
			t.Fatal("expected every subscription to be torn down")
		}
	}
}

func TestRegisterContainerCommandsWithoutRegistrars(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) != 8 {
		t.Fatalf("expected 8 handlers without markdown, got %d", len(result.Handlers))
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no dispatcher subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}
}

func TestRegisterContainerCommandsJoinsRegistrarErrors(t *testing.T) {
	container := newMarkdownContainer(t)
	boom := errors.New("registry offline")

	result, err := RegisterContainerCommands(container, RegistrationOptions{
		Registry: failingRegistry{err: boom},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected registry error, got %v", err)
	}
	if len(result.Handlers) != 9 {
		t.Fatalf("expected handlers to be built despite registry failures, got %d", len(result.Handlers))
	}
}

func TestDispatcherRoutesMessagesToHandlers(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{Dispatcher: NewDispatcher()})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	t.Cleanup(result.Unsubscribe)

	owner := entity.School("lincoln-elementary")
	pageID := uuid.New()
	err = dispatcher.Dispatch(context.Background(), pagescmd.SavePageCommand{
		PageID:      pageID,
		EntityType:  string(owner.Type),
		EntityID:    owner.ID,
		Title:       "Lunch Menu",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	page, err := container.PageService().Get(context.Background(), owner, pageID)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if page.Slug != "lunch-menu" {
		t.Fatalf("expected derived slug lunch-menu, got %q", page.Slug)
	}
}

func TestDispatcherRejectsUnknownHandlers(t *testing.T) {
	if _, err := NewDispatcher().RegisterCommand(struct{}{}); !errors.Is(err, ErrHandlerUnsupported) {
		t.Fatalf("expected ErrHandlerUnsupported, got %v", err)
	}
}

func TestScheduleWithoutMarkdownFails(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	container.Config.Markdown.Schedules = []runtimeconfig.MarkdownScheduleConfig{{
		EntityType: "church",
		EntityID:   "st-marks",
		Directory:  "church",
		Expression: "@daily",
	}}

	cron := &recordingCron{}
	_, err = RegisterContainerCommands(container, RegistrationOptions{CronRegistrar: cron.Registrar()})
	if err == nil {
		t.Fatal("expected an error when schedules exist without markdown imports")
	}
	if len(cron.registrations) != 0 {
		t.Fatalf("expected no cron registrations, got %d", len(cron.registrations))
	}
}

var _ command.Commander[markdowncmd.ImportDirectoryCommand] = (*markdowncmd.ImportDirectoryHandler)(nil)

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

type failingRegistry struct {
	err error
}

func (r failingRegistry) RegisterCommand(any) error {
	return r.err
}

type cronRegistration struct {
	config  command.HandlerConfig
	handler func() error
}

type recordingCron struct {
	registrations []cronRegistration
	err           error
}

func (c *recordingCron) Registrar() CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		if c.err != nil {
			return c.err
		}
		var fn func() error
		if h, ok := handler.(func() error); ok {
			fn = h
		}
		c.registrations = append(c.registrations, cronRegistration{
			config:  cfg,
			handler: fn,
		})
		return nil
	}
}

type recordingDispatcher struct {
	handlers      []any
	subscriptions []*recordingSubscription
	err           error
}

func (d *recordingDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.handlers = append(d.handlers, handler)
	sub := &recordingSubscription{handler: handler}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type recordingSubscription struct {
	handler      any
	unsubscribed bool
}

func (s *recordingSubscription) Unsubscribe() {
	s.unsubscribed = true
}
