package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/gangway/internal/onboard"
	"github.com/HerbHall/gangway/internal/server"
	"github.com/HerbHall/gangway/internal/version"
)

// runServe starts the HTTP API server.
func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	showVersion := fs.Bool("version", false, "print version information and exit")
	_ = fs.Parse(args)

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	a, err := bootstrap(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gangway: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	a.logger.Info("gangway server starting", zap.String("version", version.Short()))

	readyCheck := server.ReadinessChecker(func(ctx context.Context) error {
		return a.db.DB().PingContext(ctx)
	})

	handler := onboard.NewHandler(a.pipeline, a.tasks, a.logger.Named("api"))
	srv := server.New(a.addr, a.logger.Named("server"), readyCheck, handler)

	go func() {
		if err := srv.Start(); err != nil {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()

	a.logger.Info("gangway server ready", zap.String("addr", a.addr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	a.logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown error", zap.Error(err))
	}
}
