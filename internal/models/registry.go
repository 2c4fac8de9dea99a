// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package models implements the fact-checking inference core: a static
// model registry, a load-once model cache, per-kind inference adapters,
// and the ensemble aggregator with its mock fallback.
package models

import "path/filepath"

// ModelKind identifies how a model artifact is stored and executed.
type ModelKind string

const (
	// KindTabularPipeline is a vectorizer + linear classifier pipeline
	// serialized as a single JSON artifact.
	KindTabularPipeline ModelKind = "tabular-pipeline"

	// KindSequenceModel is an ONNX sequence model with a paired
	// word-index tokenizer artifact.
	KindSequenceModel ModelKind = "sequence-model"
)

// DefaultMaxSequenceLength is the pad/truncate length used by the
// sequence model when the descriptor does not override it.
const DefaultMaxSequenceLength = 200

// ModelDescriptor describes one candidate model. Descriptors are static:
// the registry is fixed at process start and never mutated.
type ModelDescriptor struct {
	// Key is the unique short identifier within the registry.
	Key string

	// DisplayName is the human-readable model name.
	DisplayName string

	// ArtifactPath is the filesystem location of the serialized model.
	ArtifactPath string

	// TokenizerPath is the companion tokenizer artifact. Only set for
	// sequence models.
	TokenizerPath string

	// Kind selects the loading and inference path.
	Kind ModelKind

	// MaxSequenceLength is the pad/truncate length for sequence models.
	MaxSequenceLength int
}

// DefaultRegistry returns the fixed candidate list, in iteration order.
// Result order everywhere downstream (loading, inference, aggregation)
// follows this order.
func DefaultRegistry(modelsDir string) []ModelDescriptor {
	return []ModelDescriptor{
		{
			Key:          "lr",
			DisplayName:  "Logistic Regression",
			ArtifactPath: filepath.Join(modelsDir, "model_pipeline_lr.json"),
			Kind:         KindTabularPipeline,
		},
		{
			Key:          "svm",
			DisplayName:  "Support Vector Machine",
			ArtifactPath: filepath.Join(modelsDir, "model_pipeline_svm.json"),
			Kind:         KindTabularPipeline,
		},
		{
			Key:          "xgb",
			DisplayName:  "XGBoost",
			ArtifactPath: filepath.Join(modelsDir, "model_pipeline_xgb.json"),
			Kind:         KindTabularPipeline,
		},
		{
			Key:          "base",
			DisplayName:  "Baseline Pipeline",
			ArtifactPath: filepath.Join(modelsDir, "model_pipeline.json"),
			Kind:         KindTabularPipeline,
		},
		{
			Key:               "lstm",
			DisplayName:       "LSTM (ONNX)",
			ArtifactPath:      filepath.Join(modelsDir, "lstm_model.onnx"),
			TokenizerPath:     filepath.Join(modelsDir, "tokenizer.json"),
			Kind:              KindSequenceModel,
			MaxSequenceLength: DefaultMaxSequenceLength,
		},
	}
}
