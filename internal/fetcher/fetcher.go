// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fetcher resolves a caller-supplied URL into plain text before
// it reaches the inference layer. It fetches the page with a bounded
// timeout, extracts paragraph text, and caps the result to a token
// budget so pathological pages cannot blow up inference.
package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tiktoken-go/tokenizer"
)

const (
	// DefaultTimeout bounds the whole fetch; expiry is a resolution
	// failure, not a hang.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxTokens caps resolved text length.
	DefaultMaxTokens = 2048

	userAgent = "QuickFactChecker/1.0 (+https://github.com/quickfactchecker/quickfactchecker)"
)

// Resolver fetches URLs and extracts their paragraph text.
type Resolver struct {
	client    *http.Client
	codec     tokenizer.Codec
	maxTokens int
}

// NewResolver creates a resolver. Zero values select the defaults.
func NewResolver(timeout time.Duration, maxTokens int) (*Resolver, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("init token codec: %w", err)
	}

	return &Resolver{
		client:    &http.Client{Timeout: timeout},
		codec:     codec,
		maxTokens: maxTokens,
	}, nil
}

// Resolve fetches the URL and returns the joined text of its <p>
// elements, capped to the token budget. An empty extraction is an error:
// the caller has nothing to classify.
func (r *Resolver) Resolve(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch URL: server returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	text := strings.Join(paragraphs, " ")
	if text == "" {
		return "", fmt.Errorf("no paragraph text found at %s", url)
	}

	return r.truncate(text), nil
}

// truncate caps text to the resolver's token budget.
func (r *Resolver) truncate(text string) string {
	ids, _, err := r.codec.Encode(text)
	if err != nil || len(ids) <= r.maxTokens {
		return text
	}
	truncated, err := r.codec.Decode(ids[:r.maxTokens])
	if err != nil {
		return text
	}
	return truncated
}
