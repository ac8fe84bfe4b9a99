package commands

import (
	"errors"
	"fmt"
	"strings"

	internalcommands "github.com/countyhub/go-minisite/internal/commands"
	markdowncmd "github.com/countyhub/go-minisite/internal/commands/markdown"
	"github.com/countyhub/go-minisite/internal/di"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
}

// RegistrationResult captures the handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
	// Schedules counts the markdown imports handed to the cron registrar.
	Schedules int
}

// Unsubscribe tears down every dispatcher subscription.
func (r *RegistrationResult) Unsubscribe() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
	r.Subscriptions = nil
}

// RegisterContainerCommands hands the handlers built by the container to the
// registry, dispatcher and cron integrations supplied in opts. Configured
// markdown schedules are registered with the cron registrar.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}
	logger := internalcommands.CommandLogger(provider, "registration")

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	if set := container.PageCommands(); set != nil {
		register(set.Save)
		register(set.Delete)
		register(set.Reorder)
	}
	if set := container.NavigationCommands(); set != nil {
		register(set.Save)
		register(set.Delete)
	}
	if set := container.PhotoCommands(); set != nil {
		register(set.Add)
		register(set.Delete)
		register(set.Reorder)
	}

	markdownSet := container.MarkdownCommands()
	if markdownSet != nil {
		register(markdownSet.Import)
	}

	if opts.CronRegistrar != nil && len(cfg.Markdown.Schedules) > 0 {
		if markdownSet == nil || markdownSet.Import == nil {
			errs = errors.Join(errs, errors.New("markdown schedules configured but markdown imports are disabled"))
		} else {
			for i, schedule := range cfg.Markdown.Schedules {
				msg := markdowncmd.ImportDirectoryCommand{
					EntityType: schedule.EntityType,
					EntityID:   schedule.EntityID,
					Directory:  schedule.Directory,
				}
				handlerCfg := command.HandlerConfig{Expression: strings.TrimSpace(schedule.Expression)}
				err := markdowncmd.RegisterMarkdownCron(markdowncmd.CronRegistrar(opts.CronRegistrar), markdownSet.Import, handlerCfg, msg)
				if err != nil {
					errs = errors.Join(errs, fmt.Errorf("markdown schedule %d: %w", i, err))
					continue
				}
				result.Schedules++
			}
		}
	}

	logging.WithFields(logger, map[string]any{
		"handlers":      len(result.Handlers),
		"subscriptions": len(result.Subscriptions),
		"schedules":     result.Schedules,
	}).Info("commands.registered")

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure the container is configured")
	}

	return result, errs
}
