// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phonenumber

import (
	"regexp"
	"strconv"
	"strings"
)

// Leniency is how much scrutiny a text match must survive. The tiers are
// strictly nested: everything EXACT_GROUPING accepts, STRICT_GROUPING
// accepts too, and so on down to POSSIBLE.
type Leniency int

const (
	// Possible: the digits merely have a plausible length.
	Possible Leniency = iota

	// Valid: the number is valid for its region, and the candidate is not
	// visibly part of surrounding prose.
	Valid

	// StrictGrouping: additionally, the candidate's digit grouping follows
	// the national formatting rules (or is a single undivided block).
	StrictGrouping

	// ExactGrouping: the grouping reproduces the national format exactly.
	ExactGrouping
)

func (l Leniency) String() string {
	switch l {
	case Possible:
		return "POSSIBLE"
	case Valid:
		return "VALID"
	case StrictGrouping:
		return "STRICT_GROUPING"
	case ExactGrouping:
		return "EXACT_GROUPING"
	}
	return "UNKNOWN"
}

// firstGroupOnlyRule matches national prefix formatting rules that render
// nothing besides the first group, optionally parenthesized.
var firstGroupOnlyRule = regexp.MustCompile(`^\(?\$1\)?$`)

// nonDigitRuns splits a digit-normalized candidate into its digit blocks.
var nonDigitRuns = regexp.MustCompile(`\D+`)

// Verify applies the tier's checks to a parsed candidate.
func (l Leniency) Verify(u *Util, number *PhoneNumber, candidate string) bool {
	switch l {
	case Possible:
		return u.IsPossibleNumber(number)
	case Valid:
		if !u.IsValidNumber(number) || !containsOnlyValidXChars(u, number, candidate) {
			return false
		}
		return isNationalPrefixPresentIfRequired(u, number)
	case StrictGrouping:
		return verifyGrouping(u, number, candidate, allNumberGroupsRemainGrouped)
	case ExactGrouping:
		return verifyGrouping(u, number, candidate, allNumberGroupsAreExactlyPresent)
	}
	return false
}

type groupChecker func(u *Util, number *PhoneNumber, normalizedCandidate string, expectedGroups []string) bool

func verifyGrouping(u *Util, number *PhoneNumber, candidate string, checker groupChecker) bool {
	if !u.IsValidNumber(number) ||
		!containsOnlyValidXChars(u, number, candidate) ||
		containsMoreThanOneSlashInNationalNumber(number, candidate) ||
		!isNationalPrefixPresentIfRequired(u, number) {
		return false
	}
	normalized := normalizeDigits(candidate, true)
	return checker(u, number, normalized, nationalNumberGroups(u, number))
}

// containsOnlyValidXChars accepts an x in the candidate only as an
// extension marker ("x1234") or as part of a number pair ("xx" carrier
// select), never as a stray letter the keypad mapping would swallow.
func containsOnlyValidXChars(u *Util, number *PhoneNumber, candidate string) bool {
	for index := 0; index < len(candidate)-1; index++ {
		c := candidate[index]
		if c != 'x' && c != 'X' {
			continue
		}
		next := candidate[index+1]
		if next == 'x' || next == 'X' {
			// A second number follows: it must restate this one.
			index++
			if u.IsNumberMatch(number, candidate[index:]) != NSNMatch {
				return false
			}
		} else if normalizeDigitsOnly(candidate[index:]) != number.Extension {
			return false
		}
	}
	return true
}

// isNationalPrefixPresentIfRequired rejects nationally dialed candidates
// that omit a national prefix the region's formatting rules treat as
// mandatory. Numbers written with an explicit calling code are exempt.
func isNationalPrefixPresentIfRequired(u *Util, number *PhoneNumber) bool {
	if number.CountryCodeSource != CountryCodeFromDefaultCountry {
		return true
	}
	region := u.RegionCodeForCountryCode(number.CountryCode)
	md := u.metadataForRegion(region)
	if md == nil {
		return true
	}
	nsn := number.nationalSignificantNumber()
	rule := u.chooseFormattingPattern(md.Formats, nsn)
	if rule == nil || rule.NationalPrefixFormattingRule == "" {
		return true
	}
	if rule.NationalPrefixOptionalWhenFormatting {
		return true
	}
	if firstGroupOnlyRule.MatchString(rule.NationalPrefixFormattingRule) {
		// The rule drops the prefix anyway.
		return true
	}
	raw := normalizeDigitsOnly(number.RawInput)
	return u.maybeStripNationalPrefixAndCarrierCode(&raw, md, nil)
}

// containsMoreThanOneSlashInNationalNumber flags candidates like
// "27/10/2011" whose slashes cannot all be explained by a calling code
// separator ("+49/69 123456" is fine).
func containsMoreThanOneSlashInNationalNumber(number *PhoneNumber, candidate string) bool {
	firstSlash := strings.IndexByte(candidate, '/')
	if firstSlash < 0 {
		return false
	}
	secondSlash := strings.IndexByte(candidate[firstSlash+1:], '/')
	if secondSlash < 0 {
		return false
	}
	secondSlash += firstSlash + 1

	wroteCallingCode := number.CountryCodeSource == CountryCodeFromNumberWithPlusSign ||
		number.CountryCodeSource == CountryCodeFromNumberWithoutPlus
	if wroteCallingCode &&
		normalizeDigitsOnly(candidate[:firstSlash]) == strconv.Itoa(number.CountryCode) {
		// The first slash separated the calling code; any further slash is in
		// the national number proper.
		return strings.Contains(candidate[secondSlash+1:], "/")
	}
	return true
}

// nationalNumberGroups derives the reference digit grouping from the
// RFC3966 rendering: the dash-separated blocks after the calling code.
func nationalNumberGroups(u *Util, number *PhoneNumber) []string {
	rfc := u.Format(number, RFC3966)
	end := strings.IndexByte(rfc, ';')
	if end < 0 {
		end = len(rfc)
	}
	start := strings.IndexByte(rfc, '-') + 1
	if start <= 0 || start > end {
		return nil
	}
	return strings.Split(rfc[start:end], "-")
}

// allNumberGroupsRemainGrouped accepts a candidate whose digit blocks never
// cut across the reference groups, or that writes the whole national number
// as one undivided run.
func allNumberGroupsRemainGrouped(u *Util, number *PhoneNumber, normalizedCandidate string, expectedGroups []string) bool {
	fromIndex := 0
	if number.CountryCodeSource != CountryCodeFromDefaultCountry {
		cc := strconv.Itoa(number.CountryCode)
		fromIndex = strings.Index(normalizedCandidate, cc) + len(cc)
	}
	for i, group := range expectedGroups {
		rel := strings.Index(normalizedCandidate[fromIndex:], group)
		if rel < 0 {
			return false
		}
		fromIndex += rel + len(group)
		if i == 0 && fromIndex < len(normalizedCandidate) {
			region := u.RegionCodeForCountryCode(number.CountryCode)
			if u.NddPrefixForRegion(region, true) != "" && isASCIIDigit(normalizedCandidate[fromIndex]) {
				// The first group ran straight into more digits; only an
				// undivided national number is acceptable then.
				nsn := number.nationalSignificantNumber()
				return strings.HasPrefix(normalizedCandidate[fromIndex-len(group):], nsn)
			}
		}
	}
	return strings.Contains(normalizedCandidate[fromIndex:], number.Extension)
}

// allNumberGroupsAreExactlyPresent accepts only candidates whose digit
// blocks equal the reference groups, or that write the national number as
// one undivided run.
func allNumberGroupsAreExactlyPresent(u *Util, number *PhoneNumber, normalizedCandidate string, expectedGroups []string) bool {
	candidateGroups := nonDigitRuns.Split(normalizedCandidate, -1)
	for len(candidateGroups) > 0 && candidateGroups[len(candidateGroups)-1] == "" {
		candidateGroups = candidateGroups[:len(candidateGroups)-1]
	}
	if len(candidateGroups) == 0 {
		return false
	}

	// The last group is the extension when one is present.
	candidateIndex := len(candidateGroups) - 1
	if number.Extension != "" {
		candidateIndex--
	}
	if candidateIndex < 0 {
		return false
	}
	if len(candidateGroups) == 1 ||
		strings.Contains(candidateGroups[candidateIndex], number.nationalSignificantNumber()) {
		return true
	}

	// Walk the groups backwards; the front candidate group may carry extra
	// leading digits (a national prefix), so suffix-match it.
	for expectedIndex := len(expectedGroups) - 1; expectedIndex > 0 && candidateIndex >= 0; expectedIndex-- {
		if candidateGroups[candidateIndex] != expectedGroups[expectedIndex] {
			return false
		}
		candidateIndex--
	}
	return candidateIndex >= 0 && strings.HasSuffix(candidateGroups[candidateIndex], expectedGroups[0])
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
