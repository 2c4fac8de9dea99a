// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package models

import (
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
	ort "github.com/yalue/onnxruntime_go"
)

// Sequence model ONNX tensor names. The exported LSTM takes one int64
// token-id tensor and emits a single P(real) scalar.
const (
	sequenceInputName  = "input_ids"
	sequenceOutputName = "output"
)

// SequenceRuntime is the process-wide ONNX runtime environment. It is
// acquired at most once; when acquisition fails, sequence descriptors
// are skipped at load time and the rest of the registry is unaffected.
type SequenceRuntime struct {
	available bool
}

var (
	sequenceRuntimeOnce sync.Once
	sequenceRuntime     *SequenceRuntime
)

// TryLoadSequenceRuntime initializes the ONNX runtime environment once
// per process. It never returns an error; an unavailable runtime is a
// valid degraded state reported through ok=false.
func TryLoadSequenceRuntime(sharedLibPath string) (rt *SequenceRuntime, ok bool) {
	sequenceRuntimeOnce.Do(func() {
		if sharedLibPath != "" {
			ort.SetSharedLibraryPath(sharedLibPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			log.Warnf("sequence runtime unavailable, sequence models will be skipped: %v", err)
			sequenceRuntime = &SequenceRuntime{available: false}
			return
		}
		sequenceRuntime = &SequenceRuntime{available: true}
	})
	if sequenceRuntime == nil || !sequenceRuntime.available {
		return nil, false
	}
	return sequenceRuntime, true
}

// SequenceModel wraps an ONNX session with its paired tokenizer.
type SequenceModel struct {
	session   *ort.DynamicAdvancedSession
	tokenizer *WordIndexTokenizer
	maxLen    int
}

// LoadSequenceModel opens the ONNX session and tokenizer for one
// sequence descriptor. Both artifact files must exist; the caller has
// already checked the runtime is available.
func LoadSequenceModel(rt *SequenceRuntime, desc ModelDescriptor) (*SequenceModel, error) {
	if rt == nil || !rt.available {
		return nil, fmt.Errorf("sequence runtime not available")
	}
	if _, err := os.Stat(desc.ArtifactPath); err != nil {
		return nil, fmt.Errorf("model artifact: %w", err)
	}

	tokenizer, err := LoadWordIndexTokenizer(desc.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer options.Destroy()

	session, err := ort.NewDynamicAdvancedSession(
		desc.ArtifactPath,
		[]string{sequenceInputName},
		[]string{sequenceOutputName},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("open ONNX session: %w", err)
	}

	maxLen := desc.MaxSequenceLength
	if maxLen <= 0 {
		maxLen = DefaultMaxSequenceLength
	}

	return &SequenceModel{
		session:   session,
		tokenizer: tokenizer,
		maxLen:    maxLen,
	}, nil
}

// PredictProba tokenizes the text, runs the session, and returns the
// scalar probability of the "real" class.
func (m *SequenceModel) PredictProba(text string) (float64, error) {
	seq := m.tokenizer.TextToSequence(text, m.maxLen)

	inputTensor, err := ort.NewTensor(ort.NewShape(1, int64(m.maxLen)), seq)
	if err != nil {
		return 0, fmt.Errorf("create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		return 0, fmt.Errorf("create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	err = m.session.Run(
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
	)
	if err != nil {
		return 0, fmt.Errorf("ONNX inference: %w", err)
	}

	out := outputTensor.GetData()
	if len(out) == 0 {
		return 0, fmt.Errorf("ONNX inference produced no output")
	}
	return float64(out[0]), nil
}

// Close releases the ONNX session.
func (m *SequenceModel) Close() {
	if m.session != nil {
		m.session.Destroy()
		m.session = nil
	}
}
