package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sitewatch/sitewatch/internal/alert"
	"github.com/sitewatch/sitewatch/internal/checker"
	"github.com/sitewatch/sitewatch/internal/config"
	"github.com/sitewatch/sitewatch/internal/httpapi"
	"github.com/sitewatch/sitewatch/internal/logging"
	"github.com/sitewatch/sitewatch/internal/probe"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to site configuration (YAML or JSON)")
	interval := flag.Int("interval", 60, "seconds between check rounds")
	once := flag.Bool("once", false, "run one round, print results as JSON, and exit")
	flag.Parse()

	_ = godotenv.Load()
	env := config.FromEnv()

	logger, err := logging.NewLogger(env.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	f, err := config.Load(*configPath)
	if err != nil {
		logger.Error("config_error", zap.Error(err))
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	prober := probe.NewHTTPProber(f.Timeout())
	chk := checker.New(logger, prober, f.SiteList(), f.Timeout(), env.MaxChecks)

	registry := prometheus.NewRegistry()
	store := alert.NewStatusStore()

	chk.Register(alert.NewLogHandler(logger))
	chk.Register(store)
	chk.Register(alert.NewMetricsHandler(registry))
	if h := alert.NewSlackHandler(env.SlackWebhook, logger); h != nil {
		chk.Register(h)
	}
	if h := alert.NewFileHandler(env.HistoryFile, logger); h != nil {
		chk.Register(h)
	}
	if h := alert.NewKafkaHandler(env.KafkaBrokers, env.KafkaTopic, logger); h != nil {
		chk.Register(h)
		defer h.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		results := chk.RunOnce(ctx)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			logger.Error("encode_error", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if env.Addr != "" {
		api := httpapi.NewServer(logger, store, chk, registry)
		go func() {
			logger.Info("api_listen", zap.String("addr", env.Addr))
			if err := http.ListenAndServe(env.Addr, api.Router()); err != nil {
				logger.Error("api_error", zap.Error(err))
			}
		}()
	}

	err = chk.RunContinuous(ctx, time.Duration(*interval)*time.Second)
	if err != nil && ctx.Err() == nil {
		logger.Error("run_error", zap.Error(err))
		os.Exit(1)
	}
}
