package commands

import (
	"context"
	"errors"
	"time"

	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// DefaultTimeout bounds a command execution when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler wraps command execution with the shared concerns: validation,
// timeout, logging, telemetry and error categorisation.
type Handler[T command.Message] struct {
	exec          command.CommandFunc[T]
	logger        interfaces.Logger
	timeout       time.Duration
	operation     string
	messageFields func(T) map[string]any
	telemetry     []Telemetry[T]
	now           func() time.Time
}

// NewHandler creates a handler that satisfies go-command's Commander
// interface.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute validates msg, applies the timeout and runs the wrapped function.
// Every returned error is a go-errors error carrying a category and text
// code.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fields := map[string]any{"command": command.GetMessageType(msg)}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.messageFields != nil {
		for key, value := range h.messageFields(msg) {
			fields[key] = value
		}
	}
	logger := logging.WithFields(h.logger.WithContext(ctx), fields)

	if err := command.ValidateMessage(msg); err != nil {
		wrapped := wrapValidationError(err)
		h.report(ctx, msg, fields, logger, 0, wrapped, TelemetryStatusFailed)
		return wrapped
	}

	ctx, cancel := h.withTimeout(ctx)
	defer cancel()
	if err := ctx.Err(); err != nil {
		wrapped := wrapContextError(err)
		h.report(ctx, msg, fields, logger, 0, wrapped, TelemetryStatusContextError)
		return wrapped
	}

	logger.Debug("command.execute.start")
	started := h.now()
	err := h.exec(ctx, msg)
	elapsed := h.now().Sub(started)

	switch {
	case err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		wrapped := wrapContextError(err)
		h.report(ctx, msg, fields, logger, elapsed, wrapped, TelemetryStatusContextError)
		return wrapped
	case err != nil:
		wrapped := wrapExecuteError(err)
		h.report(ctx, msg, fields, logger, elapsed, wrapped, TelemetryStatusFailed)
		return wrapped
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		wrapped := wrapContextError(ctxErr)
		h.report(ctx, msg, fields, logger, elapsed, wrapped, TelemetryStatusContextError)
		return wrapped
	}

	h.report(ctx, msg, fields, logger, elapsed, nil, TelemetryStatusSuccess)
	return nil
}

func (h *Handler[T]) report(ctx context.Context, msg T, fields map[string]any, logger interfaces.Logger, elapsed time.Duration, err error, status TelemetryStatus) {
	if len(h.telemetry) == 0 {
		if err != nil {
			logger.Error("command.execute.failed", "error", err)
		} else {
			logger.Debug("command.execute.success")
		}
		return
	}
	info := TelemetryInfo{
		Command:   command.GetMessageType(msg),
		Operation: h.operation,
		Fields:    fields,
		Duration:  elapsed,
		Error:     err,
		Status:    status,
		Logger:    logger,
	}
	for _, hook := range h.telemetry {
		hook(ctx, msg, info)
	}
}

// WithTimeout overrides the default execution timeout. Zero or negative
// disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			h.logger = logging.NoOp()
			return
		}
		h.logger = logger
	}
}

// WithOperation sets the operation name emitted with every log entry and
// telemetry call.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields extracts structured log fields from each message.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.messageFields = fn
	}
}

// WithTelemetry appends a callback invoked after every execution, successful
// or not. When no callback is registered the handler logs outcomes itself.
func WithTelemetry[T command.Message](telemetry Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		if telemetry != nil {
			h.telemetry = append(h.telemetry, telemetry)
		}
	}
}

func (h *Handler[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.timeout)
}
