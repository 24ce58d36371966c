// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phonenumber

import (
	"strconv"
	"strings"
)

// MatchType grades how confidently two inputs denote the same number.
type MatchType int

const (
	// MatchNotANumber: at least one input could not be parsed at all.
	MatchNotANumber MatchType = iota

	// NoMatch: both parsed, but they are different numbers.
	NoMatch

	// ShortNSNMatch: one national number is a suffix of the other, with
	// compatible calling codes (a local number against its full form).
	ShortNSNMatch

	// NSNMatch: national numbers match, but a calling code was missing on
	// one side.
	NSNMatch

	// ExactMatch: every significant field matches.
	ExactMatch
)

func (m MatchType) String() string {
	switch m {
	case MatchNotANumber:
		return "NOT_A_NUMBER"
	case NoMatch:
		return "NO_MATCH"
	case ShortNSNMatch:
		return "SHORT_NSN_MATCH"
	case NSNMatch:
		return "NSN_MATCH"
	case ExactMatch:
		return "EXACT_MATCH"
	}
	return "UNKNOWN"
}

// IsNumberMatch compares two numbers given as strings or *PhoneNumber in
// any combination. Parse failures surface as MatchNotANumber, never as an error.
func (u *Util) IsNumberMatch(a, b any) MatchType {
	switch first := a.(type) {
	case *PhoneNumber:
		switch second := b.(type) {
		case *PhoneNumber:
			return u.isNumberMatch(first, second)
		case string:
			return u.matchNumberWithString(first, second)
		}
	case string:
		switch second := b.(type) {
		case *PhoneNumber:
			return u.matchNumberWithString(second, first)
		case string:
			firstParsed, err := u.Parse(first, UnknownRegion)
			if err != nil {
				if IsParseError(err, InvalidCountryCode) {
					// Neither side may carry a calling code; compare the
					// bare national numbers.
					secondParsed, err2 := u.Parse(second, UnknownRegion)
					if err2 != nil && IsParseError(err2, InvalidCountryCode) {
						return u.matchStringsWithoutRegion(first, second)
					}
					if err2 == nil {
						return u.matchNumberWithString(secondParsed, first)
					}
				}
				return MatchNotANumber
			}
			return u.matchNumberWithString(firstParsed, second)
		}
	}
	return MatchNotANumber
}

// matchNumberWithString compares a parsed number against a textual one,
// retrying with the parsed number's region when the text has no calling
// code of its own. An exact match found that way is only an NSN match: the
// text never actually stated the calling code.
func (u *Util) matchNumberWithString(n *PhoneNumber, text string) MatchType {
	parsed, err := u.Parse(text, UnknownRegion)
	if err == nil {
		return u.isNumberMatch(n, parsed)
	}
	if !IsParseError(err, InvalidCountryCode) {
		return MatchNotANumber
	}
	region := u.RegionCodeForCountryCode(n.CountryCode)
	if region != UnknownRegion {
		withRegion, err2 := u.Parse(text, region)
		if err2 != nil {
			return MatchNotANumber
		}
		match := u.isNumberMatch(n, withRegion)
		if match == ExactMatch {
			return NSNMatch
		}
		return match
	}
	// No region to borrow; compare significant digits only.
	second := &PhoneNumber{}
	if err := fillNationalNumberOnly(text, second); err != nil {
		return MatchNotANumber
	}
	return u.isNumberMatch(n, second)
}

func (u *Util) matchStringsWithoutRegion(a, b string) MatchType {
	first, second := &PhoneNumber{}, &PhoneNumber{}
	if fillNationalNumberOnly(a, first) != nil || fillNationalNumberOnly(b, second) != nil {
		return MatchNotANumber
	}
	return u.isNumberMatch(first, second)
}

// fillNationalNumberOnly parses text into a number with no calling code,
// keeping any extension.
func fillNationalNumberOnly(text string, into *PhoneNumber) error {
	candidate := extractPossibleNumber(text)
	if !isViableNumber(candidate) {
		return parseError(NotANumber, "not a viable number: %q", text)
	}
	ext, rest := maybeStripExtension(candidate)
	into.Extension = ext
	digits := normalize(rest)
	if len(digits) < minLengthNSN {
		return parseError(TooShortNSN, "too short")
	}
	setItalianLeadingZeros(digits, into)
	nn, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return parseError(NotANumber, "not numeric")
	}
	into.NationalNumber = nn
	return nil
}

func (u *Util) isNumberMatch(a, b *PhoneNumber) MatchType {
	first := a.clearMetadata()
	second := b.clearMetadata()

	if first.Extension != "" && second.Extension != "" && first.Extension != second.Extension {
		return NoMatch
	}
	ccA, ccB := first.CountryCode, second.CountryCode
	if ccA != 0 && ccB != 0 {
		if first == second {
			return ExactMatch
		}
		if ccA == ccB && isNationalNumberSuffix(&first, &second) {
			return ShortNSNMatch
		}
		return NoMatch
	}
	// A missing calling code on either side is forgiven for NSN matching.
	first.CountryCode = 0
	second.CountryCode = 0
	if first == second {
		return NSNMatch
	}
	if isNationalNumberSuffix(&first, &second) {
		return ShortNSNMatch
	}
	return NoMatch
}

// isNationalNumberSuffix reports whether either national number is a strict
// decimal suffix of the other.
func isNationalNumberSuffix(a, b *PhoneNumber) bool {
	na := strconv.FormatUint(a.NationalNumber, 10)
	nb := strconv.FormatUint(b.NationalNumber, 10)
	return na != nb && (strings.HasSuffix(na, nb) || strings.HasSuffix(nb, na))
}
