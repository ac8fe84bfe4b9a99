package commands

import (
	"context"
	"time"

	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/metrics"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// TelemetryStatus captures the result category for command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a command execution outcome.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is an optional callback invoked after command execution.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs command outcomes with logger.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(ctx context.Context, _ T, info TelemetryInfo) {
		entry := logger.WithContext(ctx)
		if info.Fields != nil {
			entry = entry.WithFields(info.Fields)
		}
		args := []any{"duration_ms", info.Duration.Milliseconds()}
		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("command.execute.success", args...)
		case TelemetryStatusContextError:
			entry.Error("command.execute.context_error", append(args, "error", info.Error)...)
		default:
			entry.Error("command.execute.failed", append(args, "error", info.Error)...)
		}
	}
}

// MetricsTelemetry counts outcomes per operation.
func MetricsTelemetry[T command.Message](recorder metrics.Recorder) Telemetry[T] {
	if recorder == nil {
		recorder = metrics.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		operation := info.Operation
		if operation == "" {
			operation = info.Command
		}
		recorder.CommandOutcome(operation, info.Error)
	}
}
