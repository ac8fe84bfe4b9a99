package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/countyhub/go-minisite/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/robfig/cron/v3"
)

// cronScheduler runs the handlers handed over by command registration.
type cronScheduler struct {
	cron   *cron.Cron
	logger interfaces.Logger
}

func newCronScheduler(logger interfaces.Logger) *cronScheduler {
	return &cronScheduler{cron: cron.New(), logger: logger}
}

// Register accepts func() error handlers, the shape produced for markdown
// schedules.
func (s *cronScheduler) Register(cfg command.HandlerConfig, handler any) error {
	fn, ok := handler.(func() error)
	if !ok {
		return fmt.Errorf("cron: unsupported handler %T", handler)
	}
	expression := strings.TrimSpace(cfg.Expression)
	_, err := s.cron.AddFunc(expression, func() {
		if err := fn(); err != nil {
			s.logger.Error("cron.job_failed", "expression", expression, "error", err)
			return
		}
		s.logger.Debug("cron.job_completed", "expression", expression)
	})
	if err != nil {
		return fmt.Errorf("cron: schedule %q: %w", expression, err)
	}
	return nil
}

func (s *cronScheduler) Len() int {
	return len(s.cron.Entries())
}

func (s *cronScheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler; the returned context is done once running jobs
// finish.
func (s *cronScheduler) Stop() context.Context {
	return s.cron.Stop()
}
