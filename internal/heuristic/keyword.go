// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package heuristic implements the single-shot keyword classifier behind
// POST /predict. It is a deliberately naive placeholder pathway that
// bypasses the model ensemble entirely.
package heuristic

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Confidence shaping: a 0.7 baseline, 0.1 per matched keyword, bounded
// jitter, clamped to [0.55, 0.95].
const (
	baseConfidence  = 0.70
	perKeywordBoost = 0.10
	jitterSpan      = 0.05
	confidenceFloor = 0.55
	confidenceCeil  = 0.95
)

// Verdict messages shown to the user.
const (
	MessageLikelyReal = "LIKELY REAL"
	MessageLikelyFake = "LIKELY FAKE"
)

// fakeKeywords are sensationalist markers counted toward a fake verdict.
var fakeKeywords = []string{
	"shocking", "miracle", "secret", "exposed", "hoax",
	"conspiracy", "click here", "you won't believe", "doctors hate",
	"banned", "cover-up",
}

// realKeywords are sourcing markers counted toward a real verdict.
var realKeywords = []string{
	"study", "research", "according to", "official", "university",
	"report", "data", "confirmed", "evidence", "published",
}

// Verdict is the heuristic's classification of one input.
type Verdict struct {
	Prediction int     `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
	Analysis   string  `json:"analysis"`
}

// Classifier counts keyword occurrences and produces a verdict. The RNG
// drives tie breaking and confidence jitter; it is seedable for tests.
type Classifier struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewClassifier returns a classifier seeded from the clock.
func NewClassifier() *Classifier {
	return NewClassifierWithSeed(time.Now().UnixNano())
}

// NewClassifierWithSeed returns a classifier with a fixed seed.
func NewClassifierWithSeed(seed int64) *Classifier {
	return &Classifier{rng: rand.New(rand.NewSource(seed))}
}

// Classify scores the text against both keyword sets. The strictly
// larger occurrence count decides the label; a tie is an unweighted coin
// flip. Matching is case-insensitive substring matching.
func (c *Classifier) Classify(text string) Verdict {
	lower := strings.ToLower(text)

	fakeHits, fakeMatched := countOccurrences(lower, fakeKeywords)
	realHits, realMatched := countOccurrences(lower, realKeywords)

	c.mu.Lock()
	defer c.mu.Unlock()

	var prediction int
	var matched int
	switch {
	case fakeHits > realHits:
		prediction = 0
		matched = fakeMatched
	case realHits > fakeHits:
		prediction = 1
		matched = realMatched
	default:
		if c.rng.Float64() > 0.5 {
			prediction = 1
			matched = realMatched
		} else {
			prediction = 0
			matched = fakeMatched
		}
	}

	confidence := baseConfidence + perKeywordBoost*float64(matched)
	confidence += (c.rng.Float64()*2 - 1) * jitterSpan
	if confidence < confidenceFloor {
		confidence = confidenceFloor
	}
	if confidence > confidenceCeil {
		confidence = confidenceCeil
	}

	message := MessageLikelyFake
	if prediction == 1 {
		message = MessageLikelyReal
	}

	return Verdict{
		Prediction: prediction,
		Confidence: confidence,
		Message:    message,
		Analysis: fmt.Sprintf("Matched %d sensationalist and %d sourcing keyword occurrences.",
			fakeHits, realHits),
	}
}

// countOccurrences returns total occurrences across the keyword set and
// the number of distinct keywords that matched at least once.
func countOccurrences(lower string, keywords []string) (occurrences, matched int) {
	for _, kw := range keywords {
		if n := strings.Count(lower, kw); n > 0 {
			occurrences += n
			matched++
		}
	}
	return occurrences, matched
}
