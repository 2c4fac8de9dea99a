// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package models

import (
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Classifier head kinds recognized in tabular pipeline artifacts.
const (
	headKindLogistic  = "logistic"
	headKindMargin    = "linear-margin"
	headKindLabelOnly = "label-only"
)

// ProbabilisticClassifier exposes class probabilities. For binary heads
// the slice is [P(fake), P(real)].
type ProbabilisticClassifier interface {
	PredictProba(features map[int]float64) []float64
}

// ScoringClassifier exposes a raw decision score. Positive scores lean
// toward the "real" class.
type ScoringClassifier interface {
	DecisionScore(features map[int]float64) float64
}

// LabelOnlyClassifier exposes only a hard binary label.
type LabelOnlyClassifier interface {
	PredictLabel(features map[int]float64) int
}

// TabularPipeline is a TF-IDF vectorizer plus one linear classifier
// head. The head variant is fixed at load time; the inference adapter
// selects behavior by the interface the head implements, never by
// re-probing the artifact per request.
type TabularPipeline struct {
	vectorizer *tfidfVectorizer

	// head is exactly one of ProbabilisticClassifier, ScoringClassifier
	// or LabelOnlyClassifier.
	head any
}

// Head returns the classifier head variant chosen at load time.
func (p *TabularPipeline) Head() any { return p.head }

// Vectorize converts raw text into the sparse TF-IDF feature map the
// head consumes.
func (p *TabularPipeline) Vectorize(text string) map[int]float64 {
	return p.vectorizer.transform(text)
}

// tabularArtifact mirrors the JSON layout of a serialized pipeline.
type tabularArtifact struct {
	Vectorizer struct {
		Vocabulary map[string]int `json:"vocabulary"`
		IDF        []float64      `json:"idf"`
	} `json:"vectorizer"`
	Classifier struct {
		Kind      string             `json:"kind"`
		Weights   map[string]float64 `json:"weights"`
		Intercept float64            `json:"intercept"`
	} `json:"classifier"`
}

// LoadTabularPipeline reads a pipeline artifact from disk and binds the
// classifier head variant declared in it. Unknown head kinds are an
// error so a bad artifact is skipped by the loader instead of producing
// a half-working model.
func LoadTabularPipeline(path string) (*TabularPipeline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	// Probe the head kind before committing to a full decode.
	kind := gjson.GetBytes(raw, "classifier.kind").String()
	switch kind {
	case headKindLogistic, headKindMargin, headKindLabelOnly:
	default:
		return nil, fmt.Errorf("unsupported classifier kind %q in %s", kind, path)
	}

	var art tabularArtifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if len(art.Vectorizer.Vocabulary) == 0 {
		return nil, fmt.Errorf("artifact %s has an empty vocabulary", path)
	}

	vec := &tfidfVectorizer{
		vocabulary: art.Vectorizer.Vocabulary,
		idf:        art.Vectorizer.IDF,
	}

	weights := make(map[int]float64, len(art.Classifier.Weights))
	for term, w := range art.Classifier.Weights {
		idx, ok := art.Vectorizer.Vocabulary[term]
		if !ok {
			continue
		}
		weights[idx] = w
	}
	lin := linearModel{weights: weights, intercept: art.Classifier.Intercept}

	p := &TabularPipeline{vectorizer: vec}
	switch kind {
	case headKindLogistic:
		p.head = &logisticHead{linearModel: lin}
	case headKindMargin:
		p.head = &marginHead{linearModel: lin}
	case headKindLabelOnly:
		p.head = &labelHead{linearModel: lin}
	}
	return p, nil
}

// linearModel is the shared weight vector behind every head variant.
type linearModel struct {
	weights   map[int]float64
	intercept float64
}

func (m linearModel) score(features map[int]float64) float64 {
	s := m.intercept
	for idx, v := range features {
		if w, ok := m.weights[idx]; ok {
			s += w * v
		}
	}
	return s
}

// logisticHead maps the linear score through a sigmoid and reports both
// class probabilities.
type logisticHead struct{ linearModel }

func (h *logisticHead) PredictProba(features map[int]float64) []float64 {
	p := Sigmoid(h.score(features))
	return []float64{1 - p, p}
}

// marginHead reports the raw decision score, SVM style.
type marginHead struct{ linearModel }

func (h *marginHead) DecisionScore(features map[int]float64) float64 {
	return h.score(features)
}

// labelHead reports only the thresholded label.
type labelHead struct{ linearModel }

func (h *labelHead) PredictLabel(features map[int]float64) int {
	if h.score(features) >= 0 {
		return 1
	}
	return 0
}

// Sigmoid maps a raw score into [0,1]. Non-finite results collapse to
// the 0.5 neutral point instead of propagating.
func Sigmoid(x float64) float64 {
	v := 1.0 / (1.0 + math.Exp(-x))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0.5
	}
	return v
}

// tfidfVectorizer is a frozen vocabulary + idf table. Transform output
// is L2-normalized, matching the training-side convention.
type tfidfVectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

func (v *tfidfVectorizer) transform(text string) map[int]float64 {
	counts := make(map[int]float64)
	for _, term := range tokenizeWords(text) {
		idx, ok := v.vocabulary[term]
		if !ok {
			continue
		}
		counts[idx]++
	}

	var norm float64
	for idx := range counts {
		if idx >= 0 && idx < len(v.idf) {
			counts[idx] *= v.idf[idx]
		}
		norm += counts[idx] * counts[idx]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}
	return counts
}

// tokenizeWords lowercases and splits on anything that is not a letter
// or digit.
func tokenizeWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
