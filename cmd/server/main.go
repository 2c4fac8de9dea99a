// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package main provides the entry point for the QuickFactChecker server.
// It serves the fact-checking prediction API, translation bundles for
// the multi-language front end, and the optional GitHub login flow.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/quickfactchecker/quickfactchecker/internal/api"
	"github.com/quickfactchecker/quickfactchecker/internal/auth"
	"github.com/quickfactchecker/quickfactchecker/internal/buildinfo"
	"github.com/quickfactchecker/quickfactchecker/internal/config"
	"github.com/quickfactchecker/quickfactchecker/internal/fetcher"
	"github.com/quickfactchecker/quickfactchecker/internal/heuristic"
	"github.com/quickfactchecker/quickfactchecker/internal/i18n"
	"github.com/quickfactchecker/quickfactchecker/internal/logging"
	"github.com/quickfactchecker/quickfactchecker/internal/models"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// init initializes the shared logger setup.
func init() {
	logging.SetupBaseLogger()
	buildinfo.Version = Version
	buildinfo.Commit = Commit
	buildinfo.BuildDate = BuildDate
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("quickfactchecker %s (%s, built %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.BuildDate)
		return
	}

	// A local .env is optional; environment beats it either way.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := logging.ConfigureLogOutput(cfg.LoggingToFile); err != nil {
		log.Fatalf("configure logging: %v", err)
	}

	resolver, err := fetcher.NewResolver(
		time.Duration(cfg.FetchTimeoutSeconds)*time.Second,
		cfg.FetchMaxTokens,
	)
	if err != nil {
		log.Fatalf("init URL resolver: %v", err)
	}

	loader := models.NewLoader(models.DefaultRegistry(cfg.ModelsDir), cfg.OnnxLibraryPath)
	server := api.NewServer(
		cfg,
		models.NewAggregator(loader),
		heuristic.NewClassifier(),
		resolver,
		i18n.NewService(cfg.LocalesDir),
		auth.NewGitHub(cfg.GitHub.ClientID, cfg.GitHub.ClientSecret, cfg.GitHub.RedirectURL, auth.NewSessionStore()),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	go func() {
		log.Infof("quickfactchecker %s listening on %s", buildinfo.Version, addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
