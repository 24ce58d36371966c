// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"telescan/internal/report"
	"telescan/internal/scanner"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

// response is the top-level JSON document shape.
type response struct {
	Total    int               `json:"total"`
	Findings []scanner.Finding `json:"findings"`
}

func (f *Formatter) Format(findings []scanner.Finding, options report.FormatterOptions) (string, error) {
	filtered := report.FilterValid(findings, options)
	doc := response{
		Total:    len(filtered),
		Findings: filtered,
	}
	if doc.Findings == nil {
		doc.Findings = []scanner.Finding{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting JSON: %w", err)
	}
	return string(data), nil
}

// init registers this formatter with the default registry
func init() {
	report.Register(NewFormatter())
}
