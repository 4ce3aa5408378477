// Package main provides the historical command: it approximates the titles
// popular over the last 180 days with TMDB's discover endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/reelpulse/reelpulse/internal/config"
	"github.com/reelpulse/reelpulse/internal/di"
	domainerrors "github.com/reelpulse/reelpulse/internal/errors"
	"github.com/reelpulse/reelpulse/internal/service"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(config.CommandHistorical, args)
	if err != nil {
		if domainerrors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return domainerrors.ExitStatus(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injector := di.NewContainer(cfg)
	defer injector.Shutdown()

	svc, log, err := di.Bootstrap(injector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		return 1
	}

	report, err := svc.RunHistorical(ctx, service.HistoricalOptions{
		DaysBack: cfg.Historical.DaysBack,
		Pages:    cfg.Historical.Pages,
	})
	if err != nil {
		log.WithError(err).Error("Historical run failed", "cause", failureCause(err))
		return domainerrors.ExitStatus(err)
	}

	log.Info("Historical run complete", "rows", report.Rows, "files", len(report.Files))
	return 0
}

// failureCause reports which side of the run failed.
func failureCause(err error) string {
	switch {
	case domainerrors.Is(err, domainerrors.ErrUpstream):
		return "tmdb"
	case domainerrors.Is(err, domainerrors.ErrInternal):
		return "local"
	default:
		return "unknown"
	}
}
