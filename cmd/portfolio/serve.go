package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/portfolio-lab/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		displayAppname(cfg.GetAppName())

		sys, err := server.InitialiseSystem(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := sys.Close(); err != nil {
				log.Error().Err(err).Msg("closing client storage")
			}
		}()

		site, err := server.New(cfg, sys.Scope, sys.Checker, server.WithAccounts(sys.Accounts))
		if err != nil {
			return err
		}
		httpServer := &http.Server{
			Addr:              cfg.GetPort(),
			Handler:           site,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return listenAndServe(httpServer)
		})
		g.Go(func() error {
			<-gctx.Done()
			return shutdown(httpServer)
		})
		err = g.Wait()
		log.Info().Msg("Server stopped")
		return err
	},
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
