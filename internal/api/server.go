// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package api wires the HTTP surface: prediction endpoints, translation
// delivery, the OAuth login flow, and the liveness/dashboard routes.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/quickfactchecker/quickfactchecker/internal/auth"
	"github.com/quickfactchecker/quickfactchecker/internal/config"
	"github.com/quickfactchecker/quickfactchecker/internal/fetcher"
	"github.com/quickfactchecker/quickfactchecker/internal/heuristic"
	"github.com/quickfactchecker/quickfactchecker/internal/i18n"
	"github.com/quickfactchecker/quickfactchecker/internal/models"
)

// Server aggregates the collaborators behind the HTTP handlers.
type Server struct {
	cfg        *config.Config
	aggregator *models.Aggregator
	classifier *heuristic.Classifier
	resolver   *fetcher.Resolver
	i18n       *i18n.Service
	github     *auth.GitHub
}

// NewServer creates the HTTP server over its collaborators.
func NewServer(
	cfg *config.Config,
	aggregator *models.Aggregator,
	classifier *heuristic.Classifier,
	resolver *fetcher.Resolver,
	i18nService *i18n.Service,
	github *auth.GitHub,
) *Server {
	return &Server{
		cfg:        cfg,
		aggregator: aggregator,
		classifier: classifier,
		resolver:   resolver,
		i18n:       i18nService,
		github:     github,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestIDMiddleware())
	r.Use(corsMiddleware())
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		log.WithField("request_id", requestID(c)).Errorf("panic in handler: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
	}))

	r.POST("/predict", s.handlePredict)
	r.GET("/predict_all", s.handlePredictAllUsage)
	r.POST("/predict_all", s.handlePredictAll)

	r.GET("/api/translations/:lang", s.handleTranslations)
	r.GET("/api/languages", s.handleLanguages)

	r.GET("/api/me", s.handleMe)
	r.GET("/login/github", s.handleLogin)
	r.GET("/auth/github/callback", s.handleCallback)
	r.POST("/logout", s.handleLogout)

	r.GET("/health", s.handleHealth)
	r.GET("/dashboard_data", s.handleDashboardData)

	return r
}

// requestIDMiddleware tags every request with a short id used in log
// lines and echoed back in the X-Request-ID header.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()[:8]
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// corsMiddleware mirrors the original deployment: CORS is enabled for
// all origins.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString("request_id")
}
