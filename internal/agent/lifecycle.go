package agent

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// signalNotifier mirrors signal.Notify/signal.Stop so tests can deliver
// signals without touching the process.
type signalNotifier struct {
	notify func(c chan<- os.Signal, sig ...os.Signal)
	stop   func(c chan<- os.Signal)
}

var osSignals = signalNotifier{notify: signal.Notify, stop: signal.Stop}

// Run blocks until the frame loop stops, then releases resources in order:
// GPU capability, libvirt connection, surface.
func (a *Agent) Run(ctx context.Context) error {
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer cancelRun()
		return a.scheduler.Run(gctx)
	})
	g.Go(func() error {
		return a.watchSignals(gctx)
	})
	g.Go(func() error {
		return a.runHealthLoop(gctx)
	})

	runErr := g.Wait()
	a.shutdown()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		a.logger.Error("hwgauge stopped with error", "error", runErr)
		return runErr
	}
	a.logger.Info("hwgauge stopped")
	return nil
}

// watchSignals turns SIGINT/SIGTERM into a close request so the frame loop
// finishes its current iteration before exiting.
func (a *Agent) watchSignals(ctx context.Context) error {
	sigCh := make(chan os.Signal, 2)
	a.notify.notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer a.notify.stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-sigCh:
			a.logger.Info("shutdown signal received, closing", "signal", sig.String())
			a.surface.RequestClose()
		}
	}
}

func (a *Agent) runHealthLoop(ctx context.Context) error {
	t := time.NewTicker(a.cfg.HealthInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			status := "ok"
			if a.conn != nil {
				if err := a.conn.Healthy(ctx); err != nil {
					a.logger.Debug("libvirt health check failed", "error", err)
					a.stats.SetLibvirtConnected(false)
					status = "degraded"
				} else {
					a.stats.SetLibvirtConnected(true)
				}
			}
			a.logHealth(status)
		}
	}
}

func (a *Agent) logHealth(status string) {
	a.logger.Log(context.Background(), slog.LevelDebug, "frame loop health", "status", status, "snapshot", a.stats.Snapshot())
}

func (a *Agent) shutdown() {
	if err := a.reader.Close(); err != nil {
		a.logger.Warn("gpu capability close failed", "error", err)
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Warn("libvirt close failed", "error", err)
		}
		a.stats.SetLibvirtConnected(false)
	}
	if err := a.surface.Close(); err != nil {
		a.logger.Warn("surface close failed", "error", err)
	}
	a.logger.Info("frame statistics", "snapshot", a.stats.Snapshot())
}
