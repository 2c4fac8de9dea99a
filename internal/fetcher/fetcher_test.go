// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(DefaultTimeout, DefaultMaxTokens)
	require.NoError(t, err)
	return r
}

func TestResolveExtractsParagraphText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><head><title>t</title><script>ignored()</script></head>
		<body><h1>Headline</h1><p>First paragraph.</p><div><p> Second  paragraph. </p></div></body></html>`))
	}))
	defer srv.Close()

	text, err := newTestResolver(t).Resolve(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph. Second  paragraph.", text)
	assert.NotContains(t, text, "Headline")
}

func TestResolveNoParagraphsIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body><div>no paragraphs here</div></body></html>`))
	}))
	defer srv.Close()

	_, err := newTestResolver(t).Resolve(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestResolveNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestResolver(t).Resolve(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestResolveTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("<p>late</p>"))
	}))
	defer srv.Close()

	r, err := NewResolver(50*time.Millisecond, DefaultMaxTokens)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), srv.URL)
	require.Error(t, err, "expiry is a resolution failure")
}

func TestResolveHonorsTokenBudget(t *testing.T) {
	long := strings.Repeat("word ", 5000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<p>" + long + "</p>"))
	}))
	defer srv.Close()

	r, err := NewResolver(DefaultTimeout, 100)
	require.NoError(t, err)

	text, err := r.Resolve(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Less(t, len(text), len(long), "text must be capped")
}

func TestResolveInvalidURL(t *testing.T) {
	_, err := newTestResolver(t).Resolve(context.Background(), "http://127.0.0.1:0/nope")
	require.Error(t, err)
}
