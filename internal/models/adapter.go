// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package models

import "fmt"

// Result sources reported in InferenceResult.Source.
const (
	SourceTabular  = "tabular"
	SourceSequence = "sequence"
	SourceMock     = "mock"
)

// Placeholder confidences for label-only heads, which expose no score.
const (
	labelOnlyRealConfidence = 0.65
	labelOnlyFakeConfidence = 0.35
)

// InferenceResult is one model's normalized verdict for one request.
// Prediction convention: 1 = real, 0 = fake.
type InferenceResult struct {
	Model      string  `json:"model"`
	Key        string  `json:"key"`
	Prediction int     `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// Infer produces the normalized (prediction, confidence) pair for one
// loaded model. The confidence is always the probability-like score of
// the "real" class; the label is its 0.5 threshold. Errors are returned
// so the aggregator can skip the model for this request without touching
// the cache.
func Infer(m *LoadedModel, text string) (InferenceResult, error) {
	switch m.Descriptor.Kind {
	case KindTabularPipeline:
		return inferTabular(m, text)
	case KindSequenceModel:
		return inferSequence(m, text)
	default:
		return InferenceResult{}, fmt.Errorf("unknown model kind %q", m.Descriptor.Kind)
	}
}

func inferTabular(m *LoadedModel, text string) (InferenceResult, error) {
	features := m.Tabular.Vectorize(text)

	var confidence float64
	switch head := m.Tabular.Head().(type) {
	case ProbabilisticClassifier:
		proba := head.PredictProba(features)
		switch {
		case len(proba) == 0:
			return InferenceResult{}, fmt.Errorf("%s returned no probabilities", m.Descriptor.Key)
		case len(proba) == 2:
			confidence = proba[1]
		default:
			confidence = proba[0]
		}
	case ScoringClassifier:
		confidence = Sigmoid(head.DecisionScore(features))
	case LabelOnlyClassifier:
		if head.PredictLabel(features) == 1 {
			confidence = labelOnlyRealConfidence
		} else {
			confidence = labelOnlyFakeConfidence
		}
	default:
		return InferenceResult{}, fmt.Errorf("%s has no usable classifier head", m.Descriptor.Key)
	}

	return InferenceResult{
		Model:      m.Descriptor.DisplayName,
		Key:        m.Descriptor.Key,
		Prediction: labelFor(confidence),
		Confidence: confidence,
		Source:     SourceTabular,
	}, nil
}

func inferSequence(m *LoadedModel, text string) (InferenceResult, error) {
	confidence, err := m.Sequence.PredictProba(text)
	if err != nil {
		return InferenceResult{}, fmt.Errorf("%s inference: %w", m.Descriptor.Key, err)
	}

	return InferenceResult{
		Model:      m.Descriptor.DisplayName,
		Key:        m.Descriptor.Key,
		Prediction: labelFor(confidence),
		Confidence: confidence,
		Source:     SourceSequence,
	}, nil
}

func labelFor(confidence float64) int {
	if confidence >= 0.5 {
		return 1
	}
	return 0
}
