// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"strconv"
	"strings"

	"telescan/internal/report"
	"telescan/internal/scanner"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(findings []scanner.Finding, options report.FormatterOptions) (string, error) {
	filtered := report.FilterValid(findings, options)

	var builder strings.Builder
	w := csv.NewWriter(&builder)

	header := []string{"File", "Line", "Column", "Raw", "Region", "Type", "Valid", "E164"}
	if options.Verbose {
		header = append(header, "International", "National", "Context")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, finding := range filtered {
		record := []string{
			finding.File,
			strconv.Itoa(finding.Line),
			strconv.Itoa(finding.Column),
			finding.Raw,
			finding.Region,
			finding.Type,
			strconv.FormatBool(finding.Valid),
			finding.E164,
		}
		if options.Verbose {
			record = append(record, finding.International, finding.National, finding.Context)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimRight(builder.String(), "\n"), nil
}

// init registers this formatter with the default registry
func init() {
	report.Register(NewFormatter())
}
