// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dashboard parses the offline evaluation results table served
// by /dashboard_data.
package dashboard

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Row is one model's evaluation metrics.
type Row struct {
	Model     string  `json:"model"`
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// ParseResultsFile reads the fixed-format markdown table of evaluation
// results. The expected layout is a pipe table with a header row, a
// separator row, and one row per model:
//
//	| Model | Accuracy | Precision | Recall | F1 |
//	|-------|----------|-----------|--------|----|
//	| Logistic Regression | 0.93 | 0.92 | 0.94 | 0.93 |
//
// A missing file error passes through unwrapped so callers can map it to
// a 404. Malformed rows are skipped; a file with no valid rows is an
// error.
func ParseResultsFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []Row
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "|") {
			continue
		}

		cells := splitRow(line)
		if len(cells) != 5 {
			continue
		}
		// Skip the header and separator rows.
		if strings.EqualFold(cells[0], "model") || strings.HasPrefix(cells[1], "-") {
			continue
		}

		row := Row{Model: cells[0]}
		vals := [4]*float64{&row.Accuracy, &row.Precision, &row.Recall, &row.F1}
		ok := true
		for i, target := range vals {
			v, err := strconv.ParseFloat(cells[i+1], 64)
			if err != nil {
				ok = false
				break
			}
			*target = v
		}
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("results file %s contains no valid rows", path)
	}
	return rows, nil
}

// splitRow splits a pipe-table line into trimmed cells, dropping the
// empty edges produced by the leading and trailing pipes.
func splitRow(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" || len(cells) > 0 {
			cells = append(cells, p)
		}
	}
	// Trim trailing empty cell from the closing pipe.
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
