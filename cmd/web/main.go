package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/zlog"

	"github.com/JulianB-Git/nicolash-frontend/internal/apiclient"
	appcfg "github.com/JulianB-Git/nicolash-frontend/internal/config"
	"github.com/JulianB-Git/nicolash-frontend/internal/rabbit"
	"github.com/JulianB-Git/nicolash-frontend/internal/report"
	"github.com/JulianB-Git/nicolash-frontend/internal/web"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	serverCfg := appcfg.BuildServerConfig(cfg, &log)
	clientCfg := appcfg.BuildClientConfig(cfg, &log)

	// Error reporting is best-effort: without a broker the site still runs,
	// reports just stay in the local log.
	var (
		rmq  *rabbit.Client
		sink *report.Sink
	)
	rabbitCfg, err := appcfg.BuildRabbitConfig(cfg, &log)
	if err != nil {
		log.Warn().Err(err).Msg("report queue not configured, running without it")
	} else {
		rmq, err = rabbit.NewRabbit(rabbitCfg.URL, rabbitCfg.Exchange, rabbitCfg.Queue)
		if err != nil {
			log.Warn().Err(err).Msg("report queue unavailable, running without it")
			rmq = nil
		}
	}
	if rmq != nil {
		defer rmq.Close()
	}

	var pub report.Publisher
	if rmq != nil {
		pub = rmq
	}
	reports := report.NewLogger(&log, pub)
	defer reports.Close()

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	if rmq != nil {
		sink = report.NewSink(rmq)
		sink.Start(workerCtx)
	}

	service := web.NewService(apiclient.Config{
		BaseURL:  clientCfg.BaseURL,
		Logger:   &log,
		Reporter: reports,
	}, reports, sink, &log)
	app := web.NewRouters(&web.Routers{Service: service})

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", serverCfg.Port)
		if err := app.Run(":" + serverCfg.Port); err != nil {
			serverErrChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("Received signal %s. Initiating shutdown...", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("Server error: %v", err)
	}

	cancelWorkers()
	if sink != nil {
		sink.Stop()
	}

	log.Info().Msg("Shutdown complete")
}
