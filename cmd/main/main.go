package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"linkage-service/internal/config"
	"linkage-service/internal/linkage/service"
	serverhttp "linkage-service/server/http"
)

func main() {
	jobPath := flag.String("job", "", "YAML job file: score it and exit instead of serving HTTP")
	flag.Parse()

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	if *jobPath != "" {
		if err := runJob(*jobPath, cfg, logger); err != nil {
			logger.Fatal().Err(err).Str("job", *jobPath).Msg("job failed")
		}
		return
	}
	serve(cfg, logger)
}

func runJob(path string, cfg config.Config, logger zerolog.Logger) error {
	job, err := config.LoadJob(path, cfg)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lastDecile := -1
	progress := func(pct int, msg string, eta float64) {
		if pct/10 == lastDecile {
			return
		}
		lastDecile = pct / 10
		logger.Info().
			Int("pct", pct).
			Str("rows", msg).
			Dur("eta", time.Duration(eta*float64(time.Second)).Round(time.Second)).
			Msg("progress")
	}
	_, err = service.RunJob(ctx, job, progress, logger)
	return err
}

func serve(cfg config.Config, logger zerolog.Logger) {
	r := serverhttp.NewRouter(cfg, logger)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
