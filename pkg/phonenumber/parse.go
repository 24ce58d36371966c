// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phonenumber

import (
	"regexp"
	"strconv"
	"strings"

	"telescan/pkg/metadata"
)

const (
	rfc3966Prefix       = "tel:"
	rfc3966PhoneContext = ";phone-context="
	rfc3966ISDNSubaddr  = ";isub="
)

// A phone-context value is either a global number ("+441234") or a domain.
var rfc3966DomainContext = regexp.MustCompile(`^[a-zA-Z0-9]` +
	`[a-zA-Z0-9-]*(?:\.[a-zA-Z0-9][a-zA-Z0-9-]*)*$`)

// Parse interprets text as a phone number dialed from defaultRegion.
// defaultRegion may be UnknownRegion ("ZZ") when the text carries its own
// calling code (a leading plus). Failures are always a *ParseError with one
// of the closed set of kinds.
func (u *Util) Parse(text, defaultRegion string) (*PhoneNumber, error) {
	return u.parseHelper(text, defaultRegion, false)
}

// ParseAndKeepRawInput is Parse, additionally recording the verbatim input,
// how the calling code was determined, and any domestic carrier code dialed.
func (u *Util) ParseAndKeepRawInput(text, defaultRegion string) (*PhoneNumber, error) {
	return u.parseHelper(text, defaultRegion, true)
}

func (u *Util) parseHelper(text, defaultRegion string, keepRawInput bool) (*PhoneNumber, error) {
	if text == "" {
		return nil, parseError(NotANumber, "empty input")
	}
	if len(text) > maxInputStringLength {
		return nil, parseError(TooLong, "input too long to be a phone number")
	}

	nationalNumber, err := buildNationalNumberForParsing(text)
	if err != nil {
		return nil, err
	}
	if !isViableNumber(nationalNumber) {
		return nil, parseError(NotANumber, "input does not look like a phone number: %q", text)
	}

	// Without a usable default region the number must state its calling code.
	if !u.isValidRegionCode(defaultRegion) && !strings.HasPrefix(nationalNumber, "+") &&
		!leadingPlusChars.MatchString(nationalNumber) {
		return nil, parseError(InvalidCountryCode, "missing or invalid default region %q", defaultRegion)
	}

	number := &PhoneNumber{}
	if keepRawInput {
		number.RawInput = text
	}

	ext, nationalNumber := maybeStripExtension(nationalNumber)
	if ext != "" {
		number.Extension = ext
	}

	regionMetadata := u.metadataForRegion(defaultRegion)

	countryCode, normalizedNationalNumber, err := u.maybeExtractCountryCode(
		nationalNumber, regionMetadata, keepRawInput, number)
	if err != nil {
		if pe, ok := err.(*ParseError); ok && pe.Kind == InvalidCountryCode {
			// Tolerate spurious leading plus characters: retry without them.
			if loc := leadingPlusChars.FindStringIndex(nationalNumber); loc != nil {
				countryCode, normalizedNationalNumber, err = u.maybeExtractCountryCode(
					nationalNumber[loc[1]:], regionMetadata, keepRawInput, number)
				if err != nil {
					return nil, err
				}
				if countryCode == 0 {
					return nil, parseError(InvalidCountryCode, "could not interpret number after plus sign")
				}
			} else {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	if countryCode != 0 {
		numberRegion := u.RegionCodeForCountryCode(countryCode)
		if numberRegion != defaultRegion {
			regionMetadata = u.metadataForRegionOrCallingCode(countryCode, numberRegion)
		}
	} else {
		// The calling code is the default region's; the whole input is the
		// national number.
		normalizedNationalNumber = normalize(nationalNumber)
		if regionMetadata != nil {
			countryCode = regionMetadata.CountryCode
		}
	}

	if len(normalizedNationalNumber) < minLengthNSN {
		return nil, parseError(TooShortNSN, "national number too short")
	}

	if regionMetadata != nil {
		carrierCode := ""
		potential := normalizedNationalNumber
		u.maybeStripNationalPrefixAndCarrierCode(&potential, regionMetadata, &carrierCode)
		// Stripping must not leave a number that is too short or of a length
		// the region never uses; in that case the prefix was part of the
		// number after all.
		switch u.testNumberLengthString(potential, regionMetadata, Unknown) {
		case ResultTooShort, ResultIsPossibleLocalOnly, ResultInvalidLength:
		default:
			normalizedNationalNumber = potential
			if keepRawInput && carrierCode != "" {
				number.PreferredDomesticCarrierCode = carrierCode
				number.HasPreferredDomesticCarrierCode = true
			}
		}
	}

	if len(normalizedNationalNumber) < minLengthNSN {
		return nil, parseError(TooShortNSN, "national number too short after stripping")
	}
	if len(normalizedNationalNumber) > maxLengthNSN {
		return nil, parseError(TooLong, "national number too long")
	}

	number.CountryCode = countryCode
	setItalianLeadingZeros(normalizedNationalNumber, number)
	nn, convErr := strconv.ParseUint(normalizedNationalNumber, 10, 64)
	if convErr != nil {
		return nil, parseError(NotANumber, "national number is not numeric")
	}
	number.NationalNumber = nn
	return number, nil
}

// buildNationalNumberForParsing handles the RFC3966 forms (tel: prefix,
// phone-context, isub) and otherwise trims the text to the possible number.
func buildNationalNumberForParsing(text string) (string, error) {
	contextIdx := strings.Index(text, rfc3966PhoneContext)
	if contextIdx < 0 {
		number := extractPossibleNumber(text)
		if idx := strings.Index(number, rfc3966ISDNSubaddr); idx >= 0 {
			number = number[:idx]
		}
		return number, nil
	}

	context := text[contextIdx+len(rfc3966PhoneContext):]
	if end := strings.IndexByte(context, ';'); end >= 0 {
		context = context[:end]
	}
	var number string
	switch {
	case strings.HasPrefix(context, "+"):
		// Global context: the significant digits are the context followed by
		// the local part.
		number = context
	case rfc3966DomainContext.MatchString(context):
		number = ""
	default:
		return "", parseError(NotANumber, "invalid RFC3966 phone-context %q", context)
	}

	prefixIdx := strings.Index(text, rfc3966Prefix)
	local := text[:contextIdx]
	if prefixIdx >= 0 && prefixIdx < contextIdx {
		local = local[prefixIdx+len(rfc3966Prefix):]
	}
	number += local
	if idx := strings.Index(number, rfc3966ISDNSubaddr); idx >= 0 {
		number = number[:idx]
	}
	return extractPossibleNumber(number), nil
}

// maybeExtractCountryCode implements the resolver: plus sign, then IDD, then
// the default-country heuristic. It returns the calling code (0 when the
// number carries none) and the remaining national number.
func (u *Util) maybeExtractCountryCode(number string, defaultMd *metadata.RegionRuleset,
	keepRawInput bool, into *PhoneNumber) (int, string, error) {
	if number == "" {
		return 0, "", nil
	}

	fullNumber := number
	possibleIDD := ""
	if defaultMd != nil {
		possibleIDD = defaultMd.InternationalPrefix
	}
	source := u.maybeStripInternationalPrefixAndNormalize(&fullNumber, possibleIDD)
	if keepRawInput {
		into.CountryCodeSource = source
	}

	if source != CountryCodeFromDefaultCountry {
		if len(fullNumber) <= minLengthNSN {
			return 0, "", parseError(TooShortAfterIDD, "too few digits after IDD")
		}
		cc, rest := u.extractCountryCode(fullNumber)
		if cc == 0 {
			return 0, "", parseError(InvalidCountryCode, "no recognized calling code in %q", number)
		}
		return cc, rest, nil
	}

	if defaultMd != nil {
		// The input may still begin with the default region's own calling
		// code dialed without a plus. Strip it only when doing so improves
		// the number: previously invalid becomes valid, or a too-long number
		// becomes acceptable.
		ccStr := countryCodeToString(defaultMd.CountryCode)
		if strings.HasPrefix(fullNumber, ccStr) {
			potential := fullNumber[len(ccStr):]
			carrier := ""
			u.maybeStripNationalPrefixAndCarrierCode(&potential, defaultMd, &carrier)

			general := u.cache.GetFullMatch(defaultMd.GeneralDesc.Pattern)
			improved := !general.MatchString(fullNumber) && general.MatchString(potential)
			if improved || u.testNumberLengthString(fullNumber, defaultMd, Unknown) == ResultTooLong {
				if keepRawInput {
					into.CountryCodeSource = CountryCodeFromNumberWithoutPlus
				}
				return defaultMd.CountryCode, potential, nil
			}
		}
	}

	return 0, fullNumber, nil
}

// maybeStripInternationalPrefixAndNormalize strips a leading plus or the
// region's IDD prefix in place, normalizing the remainder, and reports how
// the number was written.
func (u *Util) maybeStripInternationalPrefixAndNormalize(number *string, possibleIDDPrefix string) CountryCodeSource {
	if *number == "" {
		return CountryCodeFromDefaultCountry
	}
	if loc := leadingPlusChars.FindStringIndex(*number); loc != nil {
		*number = normalize((*number)[loc[1]:])
		return CountryCodeFromNumberWithPlusSign
	}
	*number = normalize(*number)
	if possibleIDDPrefix == "" {
		return CountryCodeFromDefaultCountry
	}
	if u.parsePrefixAsIDD(number, possibleIDDPrefix) {
		return CountryCodeFromNumberWithIDD
	}
	return CountryCodeFromDefaultCountry
}

// parsePrefixAsIDD strips the IDD pattern when it matches and the first
// digit after it is not zero (a zero would be a national-prefix dial, not an
// international one).
func (u *Util) parsePrefixAsIDD(number *string, iddPattern string) bool {
	loc := u.cache.GetPrefix(iddPattern).FindStringIndex(*number)
	if loc == nil {
		return false
	}
	rest := (*number)[loc[1]:]
	if m := capturingDigit.FindString(rest); m == "0" {
		return false
	}
	*number = rest
	return true
}

// extractCountryCode reads 1..3 leading digits greedily, returning the first
// prefix that is a known calling code.
func (u *Util) extractCountryCode(fullNumber string) (int, string) {
	if fullNumber == "" || fullNumber[0] == '0' {
		// Calling codes never start with zero.
		return 0, fullNumber
	}
	for length := 1; length <= maxLengthCountryCode && length <= len(fullNumber); length++ {
		cc, err := strconv.Atoi(fullNumber[:length])
		if err != nil {
			return 0, fullNumber
		}
		if u.repo.HasCallingCode(cc) {
			return cc, fullNumber[length:]
		}
	}
	return 0, fullNumber
}

// maybeStripNationalPrefixAndCarrierCode removes the region's national
// prefix (applying the transform rule when its pattern captured) and
// captures a carrier code when the ruleset defines one. The strip is
// rejected when it would turn a structurally viable number into an invalid
// one. Reports whether anything was stripped or transformed.
func (u *Util) maybeStripNationalPrefixAndCarrierCode(number *string, md *metadata.RegionRuleset, carrierCode *string) bool {
	prefixPattern := md.NationalPrefixForParsingOrDefault()
	if *number == "" || prefixPattern == "" {
		return false
	}
	re := u.cache.GetPrefix(prefixPattern)
	m := re.FindStringSubmatchIndex(*number)
	if m == nil {
		return false
	}

	general := u.cache.GetFullMatch(md.GeneralDesc.Pattern)
	viableBefore := general.MatchString(*number)
	groups := re.NumSubexp()
	transform := md.NationalPrefixTransformRule

	// The transform applies only when the pattern's final group captured;
	// otherwise the match is a plain prefix to delete.
	lastGroupCaptured := groups > 0 && m[2*groups] >= 0
	if transform == "" || !lastGroupCaptured {
		stripped := (*number)[m[1]:]
		if viableBefore && !general.MatchString(stripped) {
			return false
		}
		if carrierCode != nil && groups > 0 && m[2] >= 0 {
			*carrierCode = (*number)[m[2]:m[3]]
		}
		*number = stripped
		return true
	}

	transformed := string(re.ExpandString(nil, groupRefTemplate(transform), *number, m)) + (*number)[m[1]:]
	if viableBefore && !general.MatchString(transformed) {
		return false
	}
	if carrierCode != nil && groups > 1 && m[2] >= 0 {
		*carrierCode = (*number)[m[2]:m[3]]
	}
	*number = transformed
	return true
}

// groupRefTemplate rewrites $1-style group references to Go's ${1} form so
// templates survive adjacent digits.
func groupRefTemplate(rule string) string {
	return groupRef.ReplaceAllString(rule, "${dollar}{${num}}")
}

var groupRef = regexp.MustCompile(`(?P<dollar>\$)(?P<num>\d)`)

// setItalianLeadingZeros records leading zeros the integer national number
// cannot hold. At least one digit is always kept.
func setItalianLeadingZeros(nationalNumber string, number *PhoneNumber) {
	if len(nationalNumber) < 2 || nationalNumber[0] != '0' {
		return
	}
	number.ItalianLeadingZero = true
	zeros := 1
	for zeros < len(nationalNumber)-1 && nationalNumber[zeros] == '0' {
		zeros++
	}
	if zeros > 1 {
		number.NumberOfLeadingZeros = zeros
	}
}
