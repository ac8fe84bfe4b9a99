package commands

import (
	"errors"
	"fmt"

	markdowncmd "github.com/countyhub/go-minisite/internal/commands/markdown"
	navcmd "github.com/countyhub/go-minisite/internal/commands/navigation"
	pagescmd "github.com/countyhub/go-minisite/internal/commands/pages"
	photoscmd "github.com/countyhub/go-minisite/internal/commands/photos"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// ErrHandlerUnsupported is returned for handlers whose message type the
// dispatcher adapter does not know.
var ErrHandlerUnsupported = errors.New("commands: handler message type is not supported")

// Dispatcher subscribes mini-site handlers to the go-command dispatcher so
// hosts can send messages with dispatcher.Dispatch.
type Dispatcher struct {
	opts []runner.Option
}

// NewDispatcher returns an adapter applying opts, such as retry limits, to
// every subscription.
func NewDispatcher(opts ...runner.Option) *Dispatcher {
	return &Dispatcher{opts: opts}
}

// RegisterCommand implements CommandDispatcher.
func (d *Dispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case command.Commander[pagescmd.SavePageCommand]:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	case command.Commander[pagescmd.DeletePageCommand]:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	case command.Commander[pagescmd.ReorderPagesCommand]:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	case command.Commander[navcmd.SaveItemCommand]:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	case command.Commander[navcmd.DeleteItemCommand]:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	case command.Commander[photoscmd.AddPhotoCommand]:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	case command.Commander[photoscmd.DeletePhotoCommand]:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	case command.Commander[photoscmd.ReorderPhotosCommand]:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	case command.Commander[markdowncmd.ImportDirectoryCommand]:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrHandlerUnsupported, handler)
	}
}
