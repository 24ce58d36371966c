// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"telescan/internal/report"
	"telescan/internal/scanner"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(findings []scanner.Finding, options report.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	filtered := report.FilterValid(findings, options)
	if len(filtered) == 0 {
		return "No phone numbers found.", nil
	}

	var builder strings.Builder
	f.colors["white"].Fprintf(&builder, "Found %d phone number(s):\n\n", len(filtered))

	for _, finding := range filtered {
		location := finding.File
		if finding.Line > 0 {
			location = fmt.Sprintf("%s:%d:%d", finding.File, finding.Line, finding.Column)
		}
		f.colors["cyan"].Fprint(&builder, location)
		builder.WriteString("  ")
		f.colors["white"].Fprint(&builder, finding.Raw)
		builder.WriteString("\n")

		status := f.colors["green"]
		statusText := "valid"
		if !finding.Valid {
			status = f.colors["yellow"]
			statusText = "possible"
		}
		builder.WriteString("  ")
		status.Fprint(&builder, statusText)
		fmt.Fprintf(&builder, "  region=%s  type=%s  e164=%s\n",
			finding.Region, finding.Type, finding.E164)

		if options.Verbose {
			fmt.Fprintf(&builder, "  international: %s\n", finding.International)
			fmt.Fprintf(&builder, "  national:      %s\n", finding.National)
			if finding.Context != "" {
				fmt.Fprintf(&builder, "  context:       %s\n", finding.Context)
			}
		}
		builder.WriteString("\n")
	}

	return strings.TrimRight(builder.String(), "\n"), nil
}

// init registers this formatter with the default registry
func init() {
	report.Register(NewFormatter())
}
