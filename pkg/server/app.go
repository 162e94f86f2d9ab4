package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"TriggerLab/internal/usecase"
	"TriggerLab/pkg/config"
	xhttp "TriggerLab/pkg/http"
	applogger "TriggerLab/pkg/logger"
)

// App encapsulates the application lifecycle: the HTTP server, the
// reanalysis schedule, and shutdown of infrastructure clients.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    xhttp.Handler
	reanalyzer *usecase.Reanalyzer
	httpServer *xhttp.Server
	cron       *cron.Cron
	closers    []io.Closer
}

// New creates an App. Closers are closed in order on shutdown.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	reanalyzer *usecase.Reanalyzer,
	closers ...io.Closer,
) *App {
	return &App{
		cfg:        cfg,
		log:        log,
		handler:    handler,
		reanalyzer: reanalyzer,
		closers:    closers,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.cfg.Reanalyze.Enabled && a.reanalyzer != nil {
		a.cron = cron.New()
		if _, err := a.cron.AddFunc(a.cfg.Reanalyze.Schedule, func() {
			a.reanalyzer.Run(ctx)
		}); err != nil {
			return err
		}
		a.cron.Start()
		a.log.Info("reanalysis scheduled", applogger.String("schedule", a.cfg.Reanalyze.Schedule))
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

func (a *App) shutdown(ctx context.Context) error {
	if a.cron != nil {
		// Stop scheduling and wait for a running pass to finish.
		<-a.cron.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	for _, c := range a.closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			a.log.Warn("close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
