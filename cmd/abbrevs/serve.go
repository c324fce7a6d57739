package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hazyhaar/abbrev-registry/pkg/api"
	"github.com/hazyhaar/abbrev-registry/pkg/dict"
	"github.com/hazyhaar/abbrev-registry/pkg/importer"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serves the abbreviation API. SIGHUP reloads the lists from disk;
SIGINT/SIGTERM shut the server down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides addr)")
	return cmd
}

func (a *app) loadRegistry() (*dict.Registry, error) {
	reg := dict.NewRegistry(a.cfg.DictsDir)
	if err := reg.Load(); err != nil {
		return nil, fmt.Errorf("load dictionaries: %w", err)
	}
	a.logger.Info("dictionaries loaded", "lists", reg.DictCount(), "entries", reg.TotalEntries())
	return reg, nil
}

func (a *app) serve(ctx context.Context) error {
	reg, err := a.loadRegistry()
	if err != nil {
		return err
	}
	runs, err := api.NewRunStore(a.cfg.MaxRuns, reg.Dictionary)
	if err != nil {
		return err
	}

	var sources *importer.SourceDB
	if a.cfg.CheckInterval > 0 {
		if sources, err = a.openSources(); err != nil {
			return err
		}
		defer sources.Close()
	}

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           api.NewRouter(reg, runs, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("abbrevs listening", "addr", a.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		watchReload(ctx, reg, a.logger)
		return nil
	})
	if sources != nil {
		g.Go(func() error {
			importer.NewChecker(sources, a.logger, a.cfg.CheckInterval).Start(ctx)
			return nil
		})
	}
	return g.Wait()
}

// watchReload reloads the registry on every SIGHUP until ctx is done. A failed
// reload keeps the previous lists.
func watchReload(ctx context.Context, reg *dict.Registry, logger *slog.Logger) {
	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	defer signal.Stop(sighup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sighup:
			logger.Info("SIGHUP received, reloading dictionaries")
			if err := reg.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
				continue
			}
			logger.Info("dictionaries reloaded", "lists", reg.DictCount(), "entries", reg.TotalEntries())
		}
	}
}
