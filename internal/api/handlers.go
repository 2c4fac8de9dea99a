// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package api

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/quickfactchecker/quickfactchecker/internal/dashboard"
	"github.com/quickfactchecker/quickfactchecker/internal/i18n"
)

// Error messages surfaced to the caller. The input-validation wording is
// part of the front-end contract.
const (
	errMissingTextKey  = `Missing or incorrect key "text" in JSON data`
	errEmptyText       = "⚠️ Please enter some text before submitting."
	errURLFetchFailed  = "Could not fetch text from the provided URL."
	errInternal        = "Internal server error."
	errNotLoggedIn     = "Not logged in"
	errLoginDisabled   = "GitHub login is not configured"
	errUnsupportedLang = "Unsupported language code"
)

// predictRequest is the input body shared by /predict and /predict_all.
// Pointer fields distinguish absent keys from empty values.
type predictRequest struct {
	Text *string `json:"text"`
	URL  *string `json:"url"`
}

// resolveInput extracts the text to classify from the request body,
// fetching the URL when one is supplied. On failure it writes the 400
// response and returns ok=false.
func (s *Server) resolveInput(c *gin.Context) (string, bool) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingTextKey})
		return "", false
	}

	// A non-empty URL takes precedence over the text field.
	if req.URL != nil && strings.TrimSpace(*req.URL) != "" {
		text, err := s.resolver.Resolve(c.Request.Context(), strings.TrimSpace(*req.URL))
		if err != nil {
			log.WithField("request_id", requestID(c)).Warnf("URL resolution failed: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": errURLFetchFailed})
			return "", false
		}
		return text, true
	}

	if req.Text == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingTextKey})
		return "", false
	}
	text := strings.TrimSpace(*req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errEmptyText})
		return "", false
	}
	return text, true
}

// handlePredict is the single-shot path: keyword heuristic, no ensemble.
func (s *Server) handlePredict(c *gin.Context) {
	text, ok := s.resolveInput(c)
	if !ok {
		return
	}

	verdict := s.classifier.Classify(text)
	c.JSON(http.StatusOK, verdict)
}

// handlePredictAllUsage helps manual browser checks.
func (s *Server) handlePredictAllUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  `Use POST with JSON body {"text": "..."} to get predictions.`,
		"ok":       true,
		"endpoint": "/predict_all",
	})
}

// handlePredictAll runs the full ensemble.
func (s *Server) handlePredictAll(c *gin.Context) {
	text, ok := s.resolveInput(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.aggregator.PredictAll(text))
}

// handleTranslations serves one language's translation bundle.
func (s *Server) handleTranslations(c *gin.Context) {
	bundle, err := s.i18n.Bundle(c.Param("lang"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, bundle)
	case errors.Is(err, i18n.ErrUnsupported):
		c.JSON(http.StatusBadRequest, gin.H{"error": errUnsupportedLang})
	case errors.Is(err, i18n.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Translation bundle not found"})
	default:
		log.WithField("request_id", requestID(c)).Errorf("translation bundle: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternal})
	}
}

// handleLanguages lists supported languages and the best match for the
// caller's Accept-Language header.
func (s *Server) handleLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"languages": s.i18n.Languages(),
		"detected":  s.i18n.Match(c.GetHeader("Accept-Language")),
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleDashboardData serves the parsed evaluation results table.
func (s *Server) handleDashboardData(c *gin.Context) {
	rows, err := dashboard.ParseResultsFile(s.cfg.ResultsFile)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"results": rows})
	case os.IsNotExist(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Results file not found"})
	default:
		log.WithField("request_id", requestID(c)).Errorf("dashboard data: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternal})
	}
}
