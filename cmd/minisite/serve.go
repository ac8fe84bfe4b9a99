package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	minisite "github.com/countyhub/go-minisite"
	"github.com/countyhub/go-minisite/commands"
	"github.com/countyhub/go-minisite/internal/di"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/goliatone/go-command/runner"
)

func runServe(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("minisite serve", flag.ContinueOnError)
	fs.SetOutput(out)
	configPath := fs.String("config", "", "Path to a YAML, JSON or TOML config file")
	addr := fs.String("addr", "", "Listen address (overrides http.addr)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}

	module, err := minisite.New(cfg, di.WithMigrations(minisite.GetMigrationsFS()))
	if err != nil {
		return fmt.Errorf("build module: %w", err)
	}
	defer module.Close()

	logger := logging.RootLogger(module.Container().LoggerProvider())

	scheduler := newCronScheduler(logger)
	opts := commands.RegistrationOptions{}
	if cfg.Commands.AutoRegisterDispatcher {
		opts.Dispatcher = commands.NewDispatcher(runner.WithMaxRetries(2))
	}
	if cfg.Commands.AutoRegisterCron {
		opts.CronRegistrar = scheduler.Register
	}
	registration, err := commands.RegisterContainerCommands(module.Container(), opts)
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	defer registration.Unsubscribe()

	if scheduler.Len() > 0 {
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	handler, err := module.Handler()
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server.listening", "addr", cfg.HTTP.Addr, "schedules", registration.Schedules)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server.shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
