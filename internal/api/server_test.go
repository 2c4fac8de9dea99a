// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickfactchecker/quickfactchecker/internal/auth"
	"github.com/quickfactchecker/quickfactchecker/internal/config"
	"github.com/quickfactchecker/quickfactchecker/internal/fetcher"
	"github.com/quickfactchecker/quickfactchecker/internal/heuristic"
	"github.com/quickfactchecker/quickfactchecker/internal/i18n"
	"github.com/quickfactchecker/quickfactchecker/internal/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// testServer builds a server over empty temp directories: no model
// artifacts, no locales, no results file. Individual tests add files as
// needed.
func testServer(t *testing.T) (*Server, *config.Config) {
	t.Helper()

	cfg := config.Default()
	cfg.ModelsDir = t.TempDir()
	cfg.LocalesDir = t.TempDir()
	cfg.ResultsFile = filepath.Join(t.TempDir(), "results.md")

	resolver, err := fetcher.NewResolver(fetcher.DefaultTimeout, fetcher.DefaultMaxTokens)
	require.NoError(t, err)

	loader := models.NewLoader(models.DefaultRegistry(cfg.ModelsDir), "")
	srv := NewServer(
		cfg,
		models.NewAggregatorWithSeed(loader, 42),
		heuristic.NewClassifierWithSeed(1),
		resolver,
		i18n.NewService(cfg.LocalesDir),
		auth.NewGitHub("", "", "", auth.NewSessionStore()),
	)
	return srv, cfg
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)
	w := doJSON(t, srv.Router(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestPredictValidation(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.Router()

	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantError string
	}{
		{name: "invalid JSON", body: "{not json", wantCode: http.StatusBadRequest, wantError: errMissingTextKey},
		{name: "missing keys", body: `{}`, wantCode: http.StatusBadRequest, wantError: errMissingTextKey},
		{name: "empty text", body: `{"text": "   "}`, wantCode: http.StatusBadRequest, wantError: errEmptyText},
		{name: "wrong type", body: `{"text": 42}`, wantCode: http.StatusBadRequest, wantError: errMissingTextKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/predict", tt.body)
			require.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantError, decodeBody(t, w)["error"])
		})
	}
}

func TestPredictHeuristicResponse(t *testing.T) {
	srv, _ := testServer(t)
	w := doJSON(t, srv.Router(), http.MethodPost, "/predict",
		`{"text": "According to an official university study the data was confirmed"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["prediction"])
	assert.Equal(t, heuristic.MessageLikelyReal, body["message"])
	assert.NotEmpty(t, body["analysis"])
	conf := body["confidence"].(float64)
	assert.GreaterOrEqual(t, conf, 0.55)
	assert.LessOrEqual(t, conf, 0.95)
}

func TestPredictAllUsageMessage(t *testing.T) {
	srv, _ := testServer(t)
	w := doJSON(t, srv.Router(), http.MethodGet, "/predict_all", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "/predict_all", body["endpoint"])
}

func TestPredictAllMockFallbackResponse(t *testing.T) {
	srv, _ := testServer(t)
	w := doJSON(t, srv.Router(), http.MethodPost, "/predict_all", `{"text": "anything at all"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "anything at all", body["input_text"])

	results := body["results"].([]any)
	require.Len(t, results, 5, "no artifacts on disk degrades to the mock ensemble")

	var maxConf float64
	for _, raw := range results {
		r := raw.(map[string]any)
		assert.Equal(t, models.SourceMock, r["source"])
		if c := r["confidence"].(float64); c > maxConf {
			maxConf = c
		}
	}

	best := body["best"].(map[string]any)
	assert.Equal(t, maxConf, best["confidence"].(float64))
	assert.Equal(t, models.SourceMock, best["source"])
	assert.Empty(t, body["models_loaded"])
}

func TestPredictAllMissingKeys(t *testing.T) {
	srv, _ := testServer(t)
	w := doJSON(t, srv.Router(), http.MethodPost, "/predict_all", `{"other": "field"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errMissingTextKey, decodeBody(t, w)["error"])
}

func TestPredictAllURLTakesPrecedence(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html><body><p>Extracted article text.</p></body></html>"))
	}))
	defer page.Close()

	srv, _ := testServer(t)
	w := doJSON(t, srv.Router(), http.MethodPost, "/predict_all",
		`{"text": "", "url": "`+page.URL+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// The extracted text, not the empty text field, reaches the aggregator.
	assert.Equal(t, "Extracted article text.", decodeBody(t, w)["input_text"])
}

func TestPredictAllURLFetchFailure(t *testing.T) {
	srv, _ := testServer(t)
	w := doJSON(t, srv.Router(), http.MethodPost, "/predict_all",
		`{"url": "http://127.0.0.1:0/unreachable"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errURLFetchFailed, decodeBody(t, w)["error"])
}

func TestTranslations(t *testing.T) {
	srv, cfg := testServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.LocalesDir, "es.json"),
		[]byte(`{"title": "Verificador"}`), 0o644))
	router := srv.Router()

	w := doJSON(t, router, http.MethodGet, "/api/translations/es", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w), "title")

	w = doJSON(t, router, http.MethodGet, "/api/translations/klingon", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/translations/fr", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLanguages(t *testing.T) {
	srv, _ := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	req.Header.Set("Accept-Language", "es-MX, en;q=0.5")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["languages"].([]any), 9)
	assert.Equal(t, "es", body["detected"])
}

func TestDashboardData(t *testing.T) {
	srv, cfg := testServer(t)
	router := srv.Router()

	w := doJSON(t, router, http.MethodGet, "/dashboard_data", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "absent results file is a 404")

	require.NoError(t, os.WriteFile(cfg.ResultsFile, []byte(`
| Model | Accuracy | Precision | Recall | F1 |
|-------|----------|-----------|--------|----|
| Logistic Regression | 0.93 | 0.92 | 0.94 | 0.93 |
`), 0o644))

	w = doJSON(t, router, http.MethodGet, "/dashboard_data", "")
	require.Equal(t, http.StatusOK, w.Code)
	rows := decodeBody(t, w)["results"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "Logistic Regression", rows[0].(map[string]any)["model"])
}

func TestCORSHeaders(t *testing.T) {
	srv, _ := testServer(t)
	w := doJSON(t, srv.Router(), http.MethodOptions, "/predict", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := testServer(t)
	w := doJSON(t, srv.Router(), http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
