// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package models

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// WordIndexTokenizer converts text into padded integer sequences for the
// sequence model. It mirrors the training-side tokenizer: a frozen
// word -> index table, optional out-of-vocabulary token, index 0 reserved
// for padding.
type WordIndexTokenizer struct {
	wordIndex map[string]int64
	oovIndex  int64
	numWords  int64
}

// tokenizerArtifact mirrors the serialized tokenizer JSON.
type tokenizerArtifact struct {
	WordIndex map[string]int64 `json:"word_index"`
	OOVToken  string           `json:"oov_token"`
	NumWords  int64            `json:"num_words"`
}

// LoadWordIndexTokenizer reads a tokenizer artifact from disk.
func LoadWordIndexTokenizer(path string) (*WordIndexTokenizer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tokenizer: %w", err)
	}

	var art tokenizerArtifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("decode tokenizer: %w", err)
	}
	if len(art.WordIndex) == 0 {
		return nil, fmt.Errorf("tokenizer %s has an empty word index", path)
	}

	t := &WordIndexTokenizer{
		wordIndex: art.WordIndex,
		numWords:  art.NumWords,
	}
	if art.OOVToken != "" {
		if idx, ok := art.WordIndex[art.OOVToken]; ok {
			t.oovIndex = idx
		}
	}
	return t, nil
}

// TextToSequence maps text to word indices, padded at the end and
// truncated at the end to maxLen. Index 0 is padding. Words outside the
// vocabulary map to the OOV index when one exists and are dropped
// otherwise.
func (t *WordIndexTokenizer) TextToSequence(text string, maxLen int) []int64 {
	if maxLen <= 0 {
		maxLen = DefaultMaxSequenceLength
	}

	seq := make([]int64, 0, maxLen)
	for _, word := range tokenizeWords(text) {
		idx, ok := t.wordIndex[word]
		if !ok {
			if t.oovIndex == 0 {
				continue
			}
			idx = t.oovIndex
		}
		if t.numWords > 0 && idx >= t.numWords {
			if t.oovIndex == 0 {
				continue
			}
			idx = t.oovIndex
		}
		seq = append(seq, idx)
		if len(seq) == maxLen {
			break
		}
	}

	for len(seq) < maxLen {
		seq = append(seq, 0)
	}
	return seq
}

// VocabSize returns the number of entries in the word index.
func (t *WordIndexTokenizer) VocabSize() int {
	return len(t.wordIndex)
}
