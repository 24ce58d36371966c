// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phonenumber

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Match is one phone number found in free text.
type Match struct {
	// Start is the byte offset of Raw within the scanned text.
	Start int

	// Raw is the verbatim source substring.
	Raw string

	// Number is the parsed form of Raw.
	Number *PhoneNumber
}

// The candidate pattern deliberately over-matches; every ceiling below
// bounds worst-case scanning cost rather than expressing a dialing rule.
const (
	// Brackets around or inside a number, including fullwidth forms.
	openingParens = `(\[\x{FF08}\x{FF3B}`
	closingParens = `)\]\x{FF09}\x{FF3D}`
	nonParens     = `[^` + openingParens + closingParens + `]`

	// At most three bracketed groups inside one candidate.
	bracketPairLimit = `{0,3}`

	// At most two lead characters (plus signs, opening brackets).
	leadLimit = `{0,2}`

	// At most four punctuation characters between digit blocks.
	punctuationLimit = `{0,4}`

	// Digit blocks: up to calling code plus maximum national number.
	digitBlockLimit = `{0,20}`
	digitSequence   = `\p{Nd}{1,20}`

	punctuation = `[` + validPunctuation + `]` + punctuationLimit
	leadClass   = `[` + openingParens + plusChars + `]`
)

var (
	// candidatePattern finds the next run of digits and punctuation shaped
	// like a phone number.
	candidatePattern = regexp.MustCompile(`(?i)(?:` + leadClass + punctuation + `)` + leadLimit +
		digitSequence + `(?:` + punctuation + digitSequence + `)` + digitBlockLimit +
		`(?:` + extnPatterns + `)?`)

	// matchingBrackets verifies bracket pairing over a whole candidate: an
	// optional leading bracket, balanced pairs, no stray closers.
	matchingBrackets = regexp.MustCompile(`^(?:[` + openingParens + `])?` +
		`(?:` + nonParens + `+[` + closingParens + `])?` +
		nonParens + `+` +
		`(?:[` + openingParens + `]` + nonParens + `+[` + closingParens + `])` + bracketPairLimit +
		nonParens + `*$`)

	// slashSeparatedDates rejects date look-alikes such as 12/01/2014.
	slashSeparatedDates = regexp.MustCompile(
		`(?:(?:[0-3]?\d/[01]?\d)|(?:[01]?\d/[0-3]?\d))/(?:[12]\d)?\d{2}`)

	// timeStamps and its suffix reject 2012-01-02 08:00 style timestamps.
	timeStamps       = regexp.MustCompile(`[12]\d{3}[-/]?[01]\d[-/]?[0-3]\d +[0-2]\d$`)
	timeStampsSuffix = regexp.MustCompile(`^:[0-5]\d`)

	// pubPages rejects publication page references such as "211-227 (2003)".
	pubPages = regexp.MustCompile(`\d{1,5}-+\d{1,5}\s{0,4}\(\d{1,4}`)

	// groupSeparator splits a candidate into its whitespace-delimited groups
	// for inner-match narrowing.
	groupSeparator = regexp.MustCompile(`[\s\x{00A0}\x{3000}]+`)

	// candidateLead matches a candidate that announces itself with a plus
	// sign or opening bracket; such candidates ignore the preceding rune.
	candidateLead = regexp.MustCompile(`^` + leadClass)
)

// scanState tracks the matcher's progress through the text.
type scanState int

const (
	stateSearching scanState = iota
	stateCandidate
	stateVerified
	stateDiscarded
	stateExhausted
)

// Matcher lazily produces the phone numbers found in a text. It is a
// forward-only, single-consumer sequence: its state must not be shared
// across goroutines, and abandoning it requires no cleanup.
type Matcher struct {
	util     *Util
	text     string
	region   string
	leniency Leniency

	// maxTries is the remaining budget of failed verification attempts;
	// scanning stops when it reaches zero.
	maxTries int

	state       scanState
	searchIndex int
}

// FindNumbers scans text for phone numbers dialed from defaultRegion,
// verified under the given leniency. maxTries bounds the number of failed
// verification attempts spent over the whole text.
func (u *Util) FindNumbers(text, defaultRegion string, leniency Leniency, maxTries int) *Matcher {
	return &Matcher{
		util:     u,
		text:     text,
		region:   defaultRegion,
		leniency: leniency,
		maxTries: maxTries,
	}
}

// Next returns the next match. The second result is false once the text or
// the retry budget is exhausted.
func (m *Matcher) Next() (Match, bool) {
	for m.state != stateExhausted {
		if m.searchIndex >= len(m.text) || m.maxTries <= 0 {
			m.state = stateExhausted
			break
		}
		m.state = stateSearching
		loc := candidatePattern.FindStringIndex(m.text[m.searchIndex:])
		if loc == nil {
			m.state = stateExhausted
			break
		}
		start := m.searchIndex + loc[0]
		candidate := m.text[start : m.searchIndex+loc[1]]

		// A second number glued on by an extension-like separator (as in
		// "x302/x2303") belongs to the next iteration.
		if cut := secondNumberStart.FindStringIndex(candidate); cut != nil {
			candidate = candidate[:cut[0]]
		}
		m.state = stateCandidate

		match := m.extractMatch(candidate, start)
		if match != nil {
			m.state = stateVerified
			m.searchIndex = match.Start + len(match.Raw)
			return *match, true
		}
		m.state = stateDiscarded
		m.searchIndex = start + len(candidate)
		m.maxTries--
	}
	return Match{}, false
}

// All drains the matcher into a slice.
func (m *Matcher) All() []Match {
	var out []Match
	for {
		match, ok := m.Next()
		if !ok {
			return out
		}
		out = append(out, match)
	}
}

// extractMatch filters date and page-reference look-alikes, then tries the
// whole candidate and, failing that, its inner groups.
func (m *Matcher) extractMatch(candidate string, offset int) *Match {
	if slashSeparatedDates.MatchString(candidate) {
		return nil
	}
	if pubPages.MatchString(candidate) {
		return nil
	}
	if timeStamps.MatchString(candidate) {
		following := m.text[offset+len(candidate):]
		if timeStampsSuffix.MatchString(following) {
			return nil
		}
	}
	if match := m.parseAndVerify(candidate, offset); match != nil {
		return match
	}
	return m.extractInnerMatch(candidate, offset)
}

// extractInnerMatch narrows a failed candidate at its first whitespace
// boundary: the first group alone, everything after it, and everything
// before the last group (unless that repeats the first attempt). Each
// sub-attempt consumes one unit of the retry budget.
func (m *Matcher) extractInnerMatch(candidate string, offset int) *Match {
	seps := groupSeparator.FindAllStringIndex(candidate, -1)
	if len(seps) == 0 {
		return nil
	}
	first := seps[0]

	firstGroup := trimEndJunk(candidate[:first[0]])
	if m.maxTries > 0 {
		m.maxTries--
		if match := m.parseAndVerify(firstGroup, offset); match != nil {
			return match
		}
	}

	if m.maxTries > 0 {
		m.maxTries--
		rest := trimEndJunk(candidate[first[1]:])
		if match := m.parseAndVerify(rest, offset+first[1]); match != nil {
			return match
		}
	}

	last := seps[len(seps)-1]
	if last[0] != first[0] && m.maxTries > 0 {
		head := trimEndJunk(candidate[:last[0]])
		if head != firstGroup {
			m.maxTries--
			if match := m.parseAndVerify(head, offset); match != nil {
				return match
			}
		}
	}
	return nil
}

func trimEndJunk(s string) string {
	return unwantedEndChars.ReplaceAllString(s, "")
}

// parseAndVerify rejects structurally hopeless candidates (unbalanced
// brackets, adjoining letters or currency symbols at VALID and above),
// parses the rest, and applies the leniency tier.
func (m *Matcher) parseAndVerify(candidate string, offset int) *Match {
	if candidate == "" || !matchingBrackets.MatchString(candidate) {
		return nil
	}

	if m.leniency >= Valid {
		if offset > 0 && !candidateLead.MatchString(candidate) {
			prev, _ := utf8.DecodeLastRuneInString(m.text[:offset])
			if isInvalidPunctuationSymbol(prev) || isLatinLetter(prev) {
				return nil
			}
		}
		end := offset + len(candidate)
		if end < len(m.text) {
			next, _ := utf8.DecodeRuneInString(m.text[end:])
			if isInvalidPunctuationSymbol(next) || isLatinLetter(next) {
				return nil
			}
		}
	}

	number, err := m.util.ParseAndKeepRawInput(candidate, m.region)
	if err != nil {
		// A candidate that does not parse is no match; scanning continues.
		return nil
	}
	if !m.leniency.Verify(m.util, number, candidate) {
		return nil
	}

	cleared := number.clearMetadata()
	return &Match{Start: offset, Raw: candidate, Number: &cleared}
}

// isLatinLetter guards against vanity-digit conversion of prose: a number
// adjoined by a Latin letter (or combining mark) is part of a word.
func isLatinLetter(r rune) bool {
	if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
		return false
	}
	return unicode.Is(unicode.Latin, r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r)
}

func isInvalidPunctuationSymbol(r rune) bool {
	return r == '%' || unicode.Is(unicode.Sc, r)
}
