package fixtures

import (
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"
)

// ErrRegistryClosed is returned by a RecordingRegistry after Close.
var ErrRegistryClosed = errors.New("fixtures: registry closed")

// RecordingRegistry captures command handlers registered during wiring.
type RecordingRegistry struct {
	Handlers []any
	closed   bool
}

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{
		Handlers: make([]any, 0),
	}
}

// RegisterCommand satisfies commands.Registry while recording the handler.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	if r.closed {
		return ErrRegistryClosed
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// Close makes subsequent registrations fail.
func (r *RecordingRegistry) Close() {
	r.closed = true
}

// CronRegistration captures a single cron wiring invocation.
type CronRegistration struct {
	Config  command.HandlerConfig
	Handler func() error
}

// CronRecorder records calls made through its Registrar.
type CronRecorder struct {
	Registrations []CronRegistration
	err           error
}

// NewCronRecorder constructs an empty cron recorder.
func NewCronRecorder() *CronRecorder {
	return &CronRecorder{
		Registrations: make([]CronRegistration, 0),
	}
}

// Fail configures the recorder to return err on registration.
func (c *CronRecorder) Fail(err error) {
	c.err = err
}

// Registrar returns a registrar function that records invocations.
func (c *CronRecorder) Registrar() func(command.HandlerConfig, any) error {
	return func(cfg command.HandlerConfig, handler any) error {
		if c.err != nil {
			return c.err
		}
		fn, ok := handler.(func() error)
		if !ok {
			return fmt.Errorf("fixtures: unexpected cron handler %T", handler)
		}
		c.Registrations = append(c.Registrations, CronRegistration{
			Config:  cfg,
			Handler: fn,
		})
		return nil
	}
}
