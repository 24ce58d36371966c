// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPDFPages caps per-document extraction work.
const maxPDFPages = 50

// extractPDFText pulls the text layer out of a PDF document.
func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	if pageCount > maxPDFPages {
		pageCount = maxPDFPages
	}

	type pageResult struct {
		pageNum int
		text    string
		err     error
	}
	results := make(chan pageResult, pageCount)

	for i := 1; i <= pageCount; i++ {
		go func(pageNum int) {
			p := r.Page(pageNum)
			if p.V.IsNull() {
				results <- pageResult{pageNum: pageNum, err: fmt.Errorf("null page")}
				return
			}
			text, err := pageText(p)
			results <- pageResult{pageNum: pageNum, text: text, err: err}
		}(i)
	}

	pageTexts := make(map[int]string, pageCount)
	for i := 0; i < pageCount; i++ {
		result := <-results
		if result.err != nil {
			continue
		}
		pageTexts[result.pageNum] = result.text
	}

	var buf bytes.Buffer
	for i := 1; i <= pageCount; i++ {
		text, ok := pageTexts[i]
		if !ok {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

// pageText reconstructs a page's text in reading order. Row extraction keeps
// digit groups on one line, which matters for candidate matching; plain text
// extraction is the fallback.
func pageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	sorted := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sorted = append(sorted, row)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return averageY(sorted[i].Content) > averageY(sorted[j].Content)
	})

	var buf bytes.Buffer
	for _, row := range sorted {
		line := rowText(row.Content)
		if strings.TrimSpace(line) == "" {
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// averageY gives a row's vertical position. PDF Y grows bottom-up, so higher
// values sort first for top-to-bottom reading.
func averageY(elements []pdf.Text) float64 {
	if len(elements) == 0 {
		return 0
	}
	var total float64
	for _, e := range elements {
		total += e.Y
	}
	return total / float64(len(elements))
}

// rowText joins a row's text elements left to right, inserting a space where
// the horizontal gap between elements indicates a word break.
func rowText(elements []pdf.Text) string {
	sorted := make([]pdf.Text, len(elements))
	copy(sorted, elements)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var buf strings.Builder
	var prevEnd float64
	for i, e := range sorted {
		if i > 0 {
			// A gap wider than a third of the font size separates words.
			gap := e.X - prevEnd
			if gap > e.FontSize/3 {
				buf.WriteString(" ")
			}
		}
		buf.WriteString(e.S)
		prevEnd = e.X + e.W
	}
	return buf.String()
}
