package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct{}

func (testMessage) Type() string { return "minisite.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "minisite.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerTelemetryReceivesFieldsAndStatus(t *testing.T) {
	var infos []TelemetryInfo
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return errors.New("store down")
	},
		WithOperation[testMessage]("test.op"),
		WithMessageFields(func(testMessage) map[string]any {
			return map[string]any{"entity_id": "joes-diner"}
		}),
		WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) {
			infos = append(infos, info)
		}),
	)

	if err := h.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected execution error")
	}
	if len(infos) != 1 {
		t.Fatalf("expected one telemetry call, got %d", len(infos))
	}
	info := infos[0]
	if info.Status != TelemetryStatusFailed {
		t.Fatalf("expected failed status, got %s", info.Status)
	}
	if info.Operation != "test.op" || info.Command != "minisite.test.message" {
		t.Fatalf("unexpected operation/command %q/%q", info.Operation, info.Command)
	}
	if info.Fields["entity_id"] != "joes-diner" {
		t.Fatalf("expected message fields in telemetry, got %#v", info.Fields)
	}
}

type recordingRecorder struct {
	operations []string
	failures   int
}

func (r *recordingRecorder) ResolveOutcome(string) {}
func (r *recordingRecorder) LoadFailure(string)    {}
func (r *recordingRecorder) SectionSkipped(string) {}

func (r *recordingRecorder) CommandOutcome(op string, err error) {
	r.operations = append(r.operations, op)
	if err != nil {
		r.failures++
	}
}

func TestMetricsTelemetryCountsOutcomes(t *testing.T) {
	recorder := &recordingRecorder{}
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithOperation[testMessage]("pages.save"),
		WithTelemetry(MetricsTelemetry[testMessage](recorder)),
	)

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(recorder.operations) != 1 || recorder.operations[0] != "pages.save" {
		t.Fatalf("expected pages.save outcome, got %v", recorder.operations)
	}
	if recorder.failures != 0 {
		t.Fatalf("expected no failures, got %d", recorder.failures)
	}
}

var errSlugTaken = errors.New("slug taken")

func TestClassifyAppliesMappingAndFallback(t *testing.T) {
	mappings := []ErrorMapping{
		{Target: errSlugTaken, Category: goerrors.CategoryConflict, Code: "PAGE_SLUG_EXISTS"},
	}

	err := Classify(fmt.Errorf("save: %w", errSlugTaken), "PAGE_SAVE_FAILED", mappings...)
	if !goerrors.IsCategory(err, goerrors.CategoryConflict) {
		t.Fatalf("expected conflict category, got %v", err)
	}
	if TextCode(err) != "PAGE_SLUG_EXISTS" {
		t.Fatalf("expected PAGE_SLUG_EXISTS, got %q", TextCode(err))
	}
	if !errors.Is(err, errSlugTaken) {
		t.Fatalf("expected sentinel to stay reachable")
	}

	fallback := Classify(errors.New("disk full"), "PAGE_SAVE_FAILED", mappings...)
	if TextCode(fallback) != "PAGE_SAVE_FAILED" {
		t.Fatalf("expected fallback code, got %q", TextCode(fallback))
	}
	if Classify(nil, "PAGE_SAVE_FAILED") != nil {
		t.Fatal("expected nil error to stay nil")
	}
}

func TestHandlerPreservesClassifiedErrors(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return Classify(errSlugTaken, "PAGE_SAVE_FAILED", ErrorMapping{
			Target: errSlugTaken, Category: goerrors.CategoryConflict, Code: "PAGE_SLUG_EXISTS",
		})
	})

	err := h.Execute(context.Background(), testMessage{})
	if TextCode(err) != "PAGE_SLUG_EXISTS" {
		t.Fatalf("expected handler to keep text code, got %q (%v)", TextCode(err), err)
	}
}

func TestRegisterAllStopsOnError(t *testing.T) {
	reg := &failingRegistry{failAt: 1}
	err := RegisterAll(reg, "a", "b", "c")
	if err == nil {
		t.Fatal("expected registration error")
	}
	if len(reg.registered) != 1 {
		t.Fatalf("expected one registration before failure, got %d", len(reg.registered))
	}
	if err := RegisterAll(nil, "a"); err != nil {
		t.Fatalf("nil registry: %v", err)
	}
}

type failingRegistry struct {
	failAt     int
	registered []any
}

func (r *failingRegistry) RegisterCommand(handler any) error {
	if len(r.registered) == r.failAt {
		return errors.New("registry full")
	}
	r.registered = append(r.registered, handler)
	return nil
}
