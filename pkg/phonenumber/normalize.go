// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phonenumber

import (
	"regexp"
	"strings"
	"unicode"
)

// Characters accepted as a plus sign, including the fullwidth form.
const plusChars = "+＋"

// Punctuation tolerated inside a written number: dashes of every script,
// spaces including no-break and ideographic, brackets, dots, slashes,
// tildes. Written with regexp escapes for use inside character classes.
const validPunctuation = `-x\x{2010}-\x{2015}\x{2212}\x{30FC}\x{FF0D}-\x{FF0F}` +
	` \x{00A0}\x{00AD}\x{200B}\x{2060}\x{3000}()\x{FF08}\x{FF09}\x{FF3B}\x{FF3D}` +
	`.\[\]/~\x{2053}\x{223C}\x{FF5E}`

// keypadLetters maps the 26 Latin letters to their telephone keypad digits.
var keypadLetters = map[rune]rune{
	'A': '2', 'B': '2', 'C': '2',
	'D': '3', 'E': '3', 'F': '3',
	'G': '4', 'H': '4', 'I': '4',
	'J': '5', 'K': '5', 'L': '5',
	'M': '6', 'N': '6', 'O': '6',
	'P': '7', 'Q': '7', 'R': '7', 'S': '7',
	'T': '8', 'U': '8', 'V': '8',
	'W': '9', 'X': '9', 'Y': '9', 'Z': '9',
}

var (
	// A viable start for a number: a plus sign or any decimal digit.
	validStartChar = regexp.MustCompile("[" + plusChars + "\\p{Nd}]")

	// Trailing characters that cannot be part of a number: anything that is
	// not a letter, digit, or '#' (which may end an extension).
	unwantedEndChars = regexp.MustCompile(`[^\p{N}\p{L}#]+$`)

	// capturingDigit finds the first digit after an IDD match.
	capturingDigit = regexp.MustCompile(`(\p{Nd})`)

	leadingPlusChars = regexp.MustCompile("^[" + plusChars + "]+")
)

// Extension markers. The parsing form is matched case-insensitively at the
// end of a candidate; the RFC3966 ";ext=" form is included.
const extnPatterns = `;ext=(\d{1,7})#?|` +
	`[ \t,]*(?:e?xt(?:ensi(?:o\x{0301}?|\x{00F3})?)?n?|\x{FF58}\x{FF54}\x{FF4E}?|anexo)` +
	`[:\.\x{FF0E}]?[ \t,-]*(\d{1,7})#?|` +
	`[- ]+(\d{1,5})#|` +
	`[ \t]*(?:,{2}|;)[ \t]*(\d{1,7})#?|` +
	`[ \t]*(?:,|[x\x{FF58}#\x{FF03}~\x{FF5E}])[ \t]*(\d{1,7})#?`

var extnPattern = regexp.MustCompile(`(?i)(?:` + extnPatterns + `)$`)

// A viable phone number: optional plus signs, then at least two digits
// interleaved with tolerated punctuation, optionally followed by vanity
// letters and an extension.
var viablePhoneNumber = regexp.MustCompile(`(?i)^[` + plusChars + `]{0,2}` +
	`(?:[` + validPunctuation + `*#]*\p{Nd}){2,}` +
	`[` + validPunctuation + `*#A-Za-z\p{Nd}]*` +
	`(?:` + extnPatterns + `)?$`)

// digitValue returns the numeric value of a decimal digit rune in any
// script, or -1. Only the digit blocks that appear in written phone numbers
// are mapped.
func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= '٠' && r <= '٩': // Arabic-Indic
		return int(r - '٠')
	case r >= '۰' && r <= '۹': // Eastern Arabic-Indic
		return int(r - '۰')
	case r >= '०' && r <= '९': // Devanagari
		return int(r - '०')
	case r >= '০' && r <= '৯': // Bengali
		return int(r - '০')
	case r >= '௦' && r <= '௯': // Tamil
		return int(r - '௦')
	case r >= '０' && r <= '９': // Fullwidth
		return int(r - '０')
	}
	return -1
}

// extractPossibleNumber trims text down to the part that could be a phone
// number: it drops everything before the first plus or digit and everything
// after the last letter, digit, or '#'. Returns "" when no start is found.
func extractPossibleNumber(text string) string {
	loc := validStartChar.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	number := text[loc[0]:]
	number = unwantedEndChars.ReplaceAllString(number, "")
	// A second number introduced by x/ (as in "x302/x2303") is a different
	// number; cut at the first such marker.
	if loc := secondNumberStart.FindStringIndex(number); loc != nil {
		number = number[:loc[0]]
	}
	return number
}

var secondNumberStart = regexp.MustCompile(`[\\/] *x`)

// isViableNumber is a cheap structural precheck run before real parsing.
func isViableNumber(number string) bool {
	if len(number) < minLengthNSN {
		return false
	}
	return viablePhoneNumber.MatchString(number)
}

// normalize converts a candidate to digits (and leading plus handling is the
// caller's concern). When the candidate carries three or more vanity
// letters, letters are converted via the keypad table; otherwise non-digits
// are dropped while non-ASCII digits become ASCII.
func normalize(number string) string {
	letters := 0
	for _, r := range number {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters >= 3 {
		return normalizeHelper(number, true)
	}
	return normalizeDigitsOnly(number)
}

// normalizeDigitsOnly keeps only decimal digits, converting non-ASCII digit
// systems to ASCII.
func normalizeDigitsOnly(number string) string {
	return normalizeDigits(number, false)
}

// normalizeDigits converts digits to ASCII; keepNonDigits retains every
// other character unchanged.
func normalizeDigits(number string, keepNonDigits bool) string {
	var b strings.Builder
	b.Grow(len(number))
	for _, r := range number {
		if d := digitValue(r); d >= 0 {
			b.WriteByte(byte('0' + d))
		} else if keepNonDigits {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeHelper maps keypad letters to digits when convertLetters is set,
// keeping digits and dropping everything else.
func normalizeHelper(number string, convertLetters bool) string {
	var b strings.Builder
	b.Grow(len(number))
	for _, r := range number {
		if d := digitValue(r); d >= 0 {
			b.WriteByte(byte('0' + d))
			continue
		}
		if convertLetters {
			if digit, ok := keypadLetters[unicode.ToUpper(r)]; ok {
				b.WriteRune(digit)
			}
		}
	}
	return b.String()
}

// maybeStripExtension removes a trailing extension from number, returning
// the extension digits and the remaining number.
func maybeStripExtension(number string) (ext, rest string) {
	m := extnPattern.FindStringSubmatchIndex(number)
	if m == nil {
		return "", number
	}
	// The candidate up to the extension must still look like a number;
	// otherwise the "extension" was the whole thing.
	head := number[:m[0]]
	if !isViableNumber(head) {
		return "", number
	}
	for g := 1; g*2 < len(m); g++ {
		if m[2*g] >= 0 {
			return number[m[2*g]:m[2*g+1]], head
		}
	}
	return "", number
}
