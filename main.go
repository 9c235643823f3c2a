package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/serendibgo/rental-api/api/handlers"
	"github.com/serendibgo/rental-api/config"
)

const shutdownGrace = 15 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rental-api",
		Short:         "SerendibGo vehicle rental API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "recompute-ratings",
		Short: "Recompute every vehicle and hotel rating from its reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			return recomputeRatings(cmd.Context())
		},
	})

	var cost int
	hash := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for seeding a user's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := bcrypt.GenerateFromPassword([]byte(args[0]), cost)
			if err != nil {
				return errors.Wrap(err, "generating hash")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(h))
			return nil
		},
	}
	hash.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost factor")
	cmd.AddCommand(hash)

	return cmd
}

func serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(contextOrBackground(parent), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := handlers.App{}
	a.Config = *config.New()

	// initialize database and router
	if err := a.Initialize(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", a.Config.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("rental-api is up and running",
			"port", a.Config.Port,
			"url", a.Config.BaseURL,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = a.Shutdown(context.Background())
			return errors.Wrap(err, "http server")
		}
	case <-ctx.Done():
		zap.S().Info("shutting down rental-api")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorw("http server shutdown failed", "error", err)
	}
	return a.Shutdown(shutdownCtx)
}

func recomputeRatings(parent context.Context) error {
	ctx, stop := signal.NotifyContext(contextOrBackground(parent), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := handlers.App{}
	a.Config = *config.New()
	if err := a.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = a.Shutdown(context.Background()) }()

	vehicles, hotels, err := a.Ratings().ReconcileAll(ctx)
	if err != nil {
		return err
	}
	zap.S().Infow("ratings recomputed", "vehicles", vehicles, "hotels", hotels)
	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
