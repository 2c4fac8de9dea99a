// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package models

import (
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

// LoadedModel pairs a descriptor with its deserialized artifact.
// Exactly one of Tabular or Sequence is set, matching the descriptor
// kind. Loaded models live for the whole process; there is no reload.
type LoadedModel struct {
	Descriptor ModelDescriptor
	Tabular    *TabularPipeline
	Sequence   *SequenceModel
}

// Loader owns the process-wide model cache. Loading is best-effort and
// happens exactly once, guarded by sync.Once: descriptors with missing
// files, an unavailable runtime, or undecodable artifacts are logged and
// skipped, never surfaced as errors. Zero loaded models is a valid
// outcome handled by the aggregator's mock fallback.
type Loader struct {
	registry    []ModelDescriptor
	onnxLibPath string

	once   sync.Once
	loaded []*LoadedModel
}

// NewLoader creates a loader over the given registry. onnxLibPath is the
// optional ONNX runtime shared library location; empty means the
// platform default.
func NewLoader(registry []ModelDescriptor, onnxLibPath string) *Loader {
	return &Loader{registry: registry, onnxLibPath: onnxLibPath}
}

// LoadOnce loads every loadable descriptor on the first call and returns
// the cached result, in registry order, on every call. Subsequent calls
// never re-touch disk, even if artifact files change.
func (l *Loader) LoadOnce() []*LoadedModel {
	l.once.Do(l.loadAll)
	return l.loaded
}

// Names returns a key -> display name snapshot of the loaded set. The
// returned map is a copy; mutating it cannot affect the cache.
func (l *Loader) Names() map[string]string {
	names := make(map[string]string)
	for _, m := range l.LoadOnce() {
		names[m.Descriptor.Key] = m.Descriptor.DisplayName
	}
	return names
}

func (l *Loader) loadAll() {
	loaded := make([]*LoadedModel, 0, len(l.registry))

	for _, desc := range l.registry {
		switch desc.Kind {
		case KindTabularPipeline:
			if _, err := os.Stat(desc.ArtifactPath); err != nil {
				continue
			}
			pipeline, err := LoadTabularPipeline(desc.ArtifactPath)
			if err != nil {
				log.Warnf("skipping model %s: %v", desc.DisplayName, err)
				continue
			}
			loaded = append(loaded, &LoadedModel{Descriptor: desc, Tabular: pipeline})

		case KindSequenceModel:
			if _, err := os.Stat(desc.ArtifactPath); err != nil {
				continue
			}
			if _, err := os.Stat(desc.TokenizerPath); err != nil {
				continue
			}
			rt, ok := TryLoadSequenceRuntime(l.onnxLibPath)
			if !ok {
				continue
			}
			model, err := LoadSequenceModel(rt, desc)
			if err != nil {
				log.Warnf("skipping model %s: %v", desc.DisplayName, err)
				continue
			}
			loaded = append(loaded, &LoadedModel{Descriptor: desc, Sequence: model})

		default:
			log.Warnf("skipping model %s: unknown kind %q", desc.DisplayName, desc.Kind)
		}
	}

	l.loaded = loaded
	log.Infof("model loader: %d of %d candidates loaded", len(loaded), len(l.registry))
}
