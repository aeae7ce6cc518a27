package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourneighborhoodchef/dymgr/internal/client"
	"github.com/yourneighborhoodchef/dymgr/internal/config"
	"github.com/yourneighborhoodchef/dymgr/internal/logging"
	"github.com/yourneighborhoodchef/dymgr/internal/monitor"
	"github.com/yourneighborhoodchef/dymgr/internal/sign"
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-h" || arg == "--help" {
			fmt.Println("Usage: dymgr [probe_interval_seconds]")
			fmt.Println("  Probes account health on an interval and prints one JSON status line per check.")
			fmt.Println("  Credentials, cookies and proxy come from the environment (DY_* variables).")
			return
		}
	}

	config.LoadEnv()
	cfg := config.Load()

	if len(os.Args) > 1 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil && n > 0 {
			cfg.ProbeInterval = time.Duration(n) * time.Second
		}
	}

	log, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var signer *sign.Signer
	if cfg.APISecret != "" {
		signer, err = sign.New(cfg.APIKey, cfg.APISecret)
		if err != nil {
			log.Fatal("signer init", zap.Error(err))
		}
	}

	session, err := client.New(client.Config{
		Proxy:          cfg.Proxy,
		SeedCookies:    cfg.SeedCookies,
		SiteURL:        cfg.BaseURL,
		TimeoutSeconds: cfg.TimeoutSeconds,
		MinInterval:    cfg.MinInterval,
		Quota:          cfg.Quota,
		Signer:         signer,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("session init", zap.Error(err))
	}

	checker := monitor.NewChecker(
		session,
		cfg.BaseURL+cfg.ProfilePath,
		cfg.Account,
		cfg.SignedProbe,
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("probing account health",
		zap.String("account", cfg.Account),
		zap.Duration("interval", cfg.ProbeInterval),
		zap.Int("quota_per_minute", cfg.Quota))

	checker.Run(ctx, cfg.ProbeInterval)
}
