// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"telescan/pkg/phonenumber"
)

// Finding is one phone number located in a scanned source, with its position
// and the canonical renderings of the parsed number.
type Finding struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`

	// Raw is the verbatim matched text.
	Raw string `json:"raw"`

	Region        string `json:"region"`
	Type          string `json:"type"`
	Valid         bool   `json:"valid"`
	E164          string `json:"e164"`
	International string `json:"international"`
	National      string `json:"national"`

	// Leniency is the verification tier that admitted the match.
	Leniency string `json:"leniency"`

	// Context is the source line the match appeared on.
	Context string `json:"context,omitempty"`
}

// Scanner locates phone numbers in files and free text.
type Scanner struct {
	util     *phonenumber.Util
	region   string
	leniency phonenumber.Leniency
	maxTries int
}

// Options configures a Scanner.
type Options struct {
	// DefaultRegion resolves numbers written without a calling code.
	DefaultRegion string

	// Leniency selects how strictly candidates are verified.
	Leniency phonenumber.Leniency

	// MaxTries bounds the matching work per input.
	MaxTries int
}

// DefaultMaxTries bounds matcher work for typical documents.
const DefaultMaxTries = 65535

// New builds a Scanner around a phone number engine.
func New(util *phonenumber.Util, opts Options) *Scanner {
	if opts.DefaultRegion == "" {
		opts.DefaultRegion = phonenumber.UnknownRegion
	}
	if opts.MaxTries <= 0 {
		opts.MaxTries = DefaultMaxTries
	}
	return &Scanner{
		util:     util,
		region:   opts.DefaultRegion,
		leniency: opts.Leniency,
		maxTries: opts.MaxTries,
	}
}

// ScanText finds phone numbers in text and attributes each to a line and
// column of the source. Positions are 1-based; columns count bytes.
func (s *Scanner) ScanText(source, text string) []Finding {
	matches := s.util.FindNumbers(text, s.region, s.leniency, s.maxTries).All()
	if len(matches) == 0 {
		return nil
	}

	index := newLineIndex(text)
	findings := make([]Finding, 0, len(matches))
	for _, m := range matches {
		line, col := index.locate(m.Start)
		f := s.describe(source, line, col, m)
		f.Context = strings.TrimSpace(index.lineText(text, line))
		findings = append(findings, f)
	}
	return findings
}

func (s *Scanner) describe(source string, line, col int, m phonenumber.Match) Finding {
	f := Finding{
		File:     source,
		Line:     line,
		Column:   col,
		Raw:      m.Raw,
		Region:   s.util.RegionCodeForNumber(m.Number),
		Type:     s.util.NumberType(m.Number).String(),
		Valid:    s.util.IsValidNumber(m.Number),
		Leniency: s.leniency.String(),
	}
	f.E164 = s.util.Format(m.Number, phonenumber.E164)
	f.International = s.util.Format(m.Number, phonenumber.International)
	f.National = s.util.Format(m.Number, phonenumber.National)
	return f
}

// ScanFile extracts text from a single file and scans it. PDF documents go
// through text extraction; everything else is read as plain text.
func (s *Scanner) ScanFile(path string) ([]Finding, error) {
	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		extracted, err := extractPDFText(path)
		if err != nil {
			return nil, fmt.Errorf("extracting text from %s: %w", path, err)
		}
		text = extracted
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if isBinary(data) {
			return nil, nil
		}
		text = string(data)
	}
	return s.ScanText(path, text), nil
}

// ScanPath scans a file, or every regular file under a directory when
// recursive is set. Unreadable entries are skipped and reported together.
func (s *Scanner) ScanPath(path string, recursive bool) ([]Finding, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return s.ScanFile(path)
	}
	if !recursive {
		return nil, fmt.Errorf("%s is a directory (use recursive mode to scan it)", path)
	}

	var findings []Finding
	var skipped []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			skipped = append(skipped, p)
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != path {
				return filepath.SkipDir
			}
			return nil
		}
		found, err := s.ScanFile(p)
		if err != nil {
			skipped = append(skipped, p)
			return nil
		}
		findings = append(findings, found...)
		return nil
	})
	if err != nil {
		return findings, err
	}
	if len(skipped) > 0 {
		return findings, fmt.Errorf("skipped %d unreadable file(s): %s",
			len(skipped), strings.Join(skipped, ", "))
	}
	return findings, nil
}

// lineIndex maps byte offsets to line/column pairs.
type lineIndex struct {
	// starts[i] is the byte offset of line i+1.
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (x *lineIndex) locate(offset int) (line, col int) {
	lo, hi := 0, len(x.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if x.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, offset - x.starts[lo] + 1
}

// lineText returns the text of a 1-based line, without its newline.
func (x *lineIndex) lineText(text string, line int) string {
	start := x.starts[line-1]
	end := len(text)
	if line < len(x.starts) {
		end = x.starts[line] - 1
	}
	return text[start:end]
}

// isBinary reports whether data looks like a binary file. A NUL byte in the
// first block is a reliable enough signal for scanning purposes.
func isBinary(data []byte) bool {
	probe := data
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	for _, b := range probe {
		if b == 0 {
			return true
		}
	}
	return false
}

// ParseLeniency maps a configuration string to a matcher leniency.
func ParseLeniency(s string) (phonenumber.Leniency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "POSSIBLE":
		return phonenumber.Possible, nil
	case "", "VALID":
		return phonenumber.Valid, nil
	case "STRICT_GROUPING":
		return phonenumber.StrictGrouping, nil
	case "EXACT_GROUPING":
		return phonenumber.ExactGrouping, nil
	}
	return phonenumber.Valid, fmt.Errorf("unknown leniency %q (want POSSIBLE, VALID, STRICT_GROUPING or EXACT_GROUPING)", s)
}
