// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phonenumber

import (
	"regexp"
	"strings"
	"unicode"

	"telescan/pkg/metadata"
)

// Style selects one of the standardized output renderings.
type Style int

const (
	// E164: "+16502530000". No formatting, no extension prefix text.
	E164 Style = iota

	// International: "+1 650-253-0000".
	International

	// National: "(650) 253-0000".
	National

	// RFC3966: "tel:+1-650-253-0000".
	RFC3966
)

func (s Style) String() string {
	switch s {
	case E164:
		return "E164"
	case International:
		return "INTERNATIONAL"
	case National:
		return "NATIONAL"
	case RFC3966:
		return "RFC3966"
	}
	return "UNKNOWN"
}

const defaultExtnPrefix = " ext. "

var (
	// firstGroup finds the first $N reference of a format template.
	firstGroup = regexp.MustCompile(`\$\d`)

	// separators collapsed to dashes in RFC3966 output.
	rfc3966Separators = regexp.MustCompile(`[-. ()\[\]/]+`)
	rfc3966Leading    = regexp.MustCompile(`^[-. ()\[\]/]+`)

	// A purely digit international prefix (possibly with a wait marker) can
	// be rendered verbatim; anything else needs a preferred form.
	uniqueIntlPrefix = regexp.MustCompile(`^\d+(?:[~\x{2053}\x{223C}\x{FF5E}]\d+)?$`)
)

// Format renders a number in the requested style. An invalid calling code
// degrades to the bare national significant number.
func (u *Util) Format(n *PhoneNumber, style Style) string {
	if n.NationalNumber == 0 && n.RawInput != "" {
		// A parse that kept nothing but raw input (possible for some
		// short/vanity inputs); preserve it untouched.
		return n.RawInput
	}
	nsn := n.nationalSignificantNumber()
	if !u.repo.HasCallingCode(n.CountryCode) {
		return nsn
	}
	if style == E164 {
		return "+" + countryCodeToString(n.CountryCode) + nsn
	}
	region := u.RegionCodeForCountryCode(n.CountryCode)
	md := u.metadataForRegionOrCallingCode(n.CountryCode, region)
	formatted := u.formatNSN(nsn, md, style, "")
	formatted = u.maybeAppendFormattedExtension(n, md, style, formatted)
	return prefixWithCountryCode(n.CountryCode, style, formatted)
}

// FormatWithCarrierCode renders NATIONAL output with a domestic carrier
// code substituted into the region's carrier formatting rule.
func (u *Util) FormatWithCarrierCode(n *PhoneNumber, carrierCode string) string {
	nsn := n.nationalSignificantNumber()
	if !u.repo.HasCallingCode(n.CountryCode) {
		return nsn
	}
	region := u.RegionCodeForCountryCode(n.CountryCode)
	md := u.metadataForRegionOrCallingCode(n.CountryCode, region)
	formatted := u.formatNSN(nsn, md, National, carrierCode)
	formatted = u.maybeAppendFormattedExtension(n, md, National, formatted)
	return prefixWithCountryCode(n.CountryCode, National, formatted)
}

// FormatWithPreferredCarrierCode uses the carrier code the number was
// dialed with where one was kept, else the supplied fallback. An empty
// fallback renders plain national format.
func (u *Util) FormatWithPreferredCarrierCode(n *PhoneNumber, fallbackCarrierCode string) string {
	cc := fallbackCarrierCode
	if n.HasPreferredDomesticCarrierCode {
		cc = n.PreferredDomesticCarrierCode
	}
	if cc == "" {
		return u.Format(n, National)
	}
	return u.FormatWithCarrierCode(n, cc)
}

// formatNSN picks the first applicable format rule and applies it; with no
// applicable rule the digits pass through unformatted.
func (u *Util) formatNSN(nsn string, md *metadata.RegionRuleset, style Style, carrierCode string) string {
	rules := md.Formats
	if style != National && len(md.IntlFormats) > 0 {
		rules = md.IntlFormats
	}
	rule := u.chooseFormattingPattern(rules, nsn)
	if rule == nil {
		return nsn
	}
	return u.formatNSNUsingPattern(nsn, rule, style, carrierCode)
}

// chooseFormattingPattern returns the first rule whose leading-digits
// pattern (last entry only) matches the start of nsn and whose full pattern
// matches all of it.
func (u *Util) chooseFormattingPattern(rules []*metadata.FormatRule, nsn string) *metadata.FormatRule {
	for _, rule := range rules {
		if len(rule.LeadingDigits) > 0 {
			ld := rule.LeadingDigits[len(rule.LeadingDigits)-1]
			if !u.cache.GetPrefix(ld).MatchString(nsn) {
				continue
			}
		}
		if u.cache.GetFullMatch(rule.Pattern).MatchString(nsn) {
			return rule
		}
	}
	return nil
}

func (u *Util) formatNSNUsingPattern(nsn string, rule *metadata.FormatRule, style Style, carrierCode string) string {
	template := rule.Format
	switch {
	case style == National && carrierCode != "" && rule.CarrierCodeFormattingRule != "":
		ccRule := strings.ReplaceAll(rule.CarrierCodeFormattingRule, "$CC", carrierCode)
		template = replaceFirstGroup(template, ccRule)
	case style == National && rule.NationalPrefixFormattingRule != "":
		template = replaceFirstGroup(template, rule.NationalPrefixFormattingRule)
	}

	re := u.cache.GetFullMatch(rule.Pattern)
	formatted := re.ReplaceAllString(nsn, groupRefTemplate(template))

	if style == RFC3966 {
		formatted = rfc3966Leading.ReplaceAllString(formatted, "")
		formatted = rfc3966Separators.ReplaceAllString(formatted, "-")
	}
	return formatted
}

// replaceFirstGroup splices rule text over the first $N reference of a
// format template. The rule itself references the group as $1.
func replaceFirstGroup(template, rule string) string {
	loc := firstGroup.FindStringIndex(template)
	if loc == nil {
		return template
	}
	group := template[loc[0]:loc[1]]
	return template[:loc[0]] + strings.ReplaceAll(rule, "$1", group) + template[loc[1]:]
}

func prefixWithCountryCode(cc int, style Style, formatted string) string {
	switch style {
	case International:
		return "+" + countryCodeToString(cc) + " " + formatted
	case RFC3966:
		return "tel:+" + countryCodeToString(cc) + "-" + formatted
	}
	return formatted
}

// maybeAppendFormattedExtension adds the extension using the region's
// preferred prefix, or the RFC3966 parameter form.
func (u *Util) maybeAppendFormattedExtension(n *PhoneNumber, md *metadata.RegionRuleset, style Style, formatted string) string {
	if n.Extension == "" {
		return formatted
	}
	if style == RFC3966 {
		return formatted + ";ext=" + n.Extension
	}
	if md != nil && md.PreferredExtnPrefix != "" {
		return formatted + md.PreferredExtnPrefix + n.Extension
	}
	return formatted + defaultExtnPrefix + n.Extension
}

// FormatOutOfCountry renders the number as dialed from regionCallingFrom:
// IDD prefix, calling code, then internationally formatted national number.
func (u *Util) FormatOutOfCountry(n *PhoneNumber, regionCallingFrom string) string {
	if !u.isValidRegionCode(regionCallingFrom) {
		return u.Format(n, International)
	}
	cc := n.CountryCode
	nsn := n.nationalSignificantNumber()
	if !u.repo.HasCallingCode(cc) {
		return nsn
	}
	if cc == metadata.NANPACallingCode {
		if u.IsNANPACountry(regionCallingFrom) {
			// Within the NANPA the calling code is dialed like a national
			// prefix.
			return countryCodeToString(cc) + " " + u.Format(n, National)
		}
	} else if cc == u.CountryCodeForRegion(regionCallingFrom) {
		// Same calling code: international dialing is not needed.
		return u.Format(n, National)
	}

	fromMd := u.metadataForRegion(regionCallingFrom)
	idd := fromMd.InternationalPrefix
	iddOut := ""
	switch {
	case uniqueIntlPrefix.MatchString(idd):
		iddOut = idd
	case fromMd.PreferredInternationalPrefix != "":
		iddOut = fromMd.PreferredInternationalPrefix
	}
	if iddOut == "" {
		return u.Format(n, International)
	}

	region := u.RegionCodeForCountryCode(cc)
	md := u.metadataForRegionOrCallingCode(cc, region)
	formatted := u.formatNSN(nsn, md, International, "")
	formatted = u.maybeAppendFormattedExtension(n, md, International, formatted)
	return iddOut + " " + countryCodeToString(cc) + " " + formatted
}

// FormatInOriginalFormat renders a number kept with raw input the way the
// caller wrote it, re-deriving the layout from how the calling code was
// expressed. It never inserts, removes, or alters a digit relative to the
// raw input; when a rendering would, the raw input is returned verbatim.
func (u *Util) FormatInOriginalFormat(n *PhoneNumber, regionCallingFrom string) string {
	if n.RawInput == "" {
		return u.Format(n, National)
	}
	var formatted string
	switch n.CountryCodeSource {
	case CountryCodeFromNumberWithPlusSign:
		formatted = u.Format(n, International)
	case CountryCodeFromNumberWithIDD:
		formatted = u.FormatOutOfCountry(n, regionCallingFrom)
	case CountryCodeFromNumberWithoutPlus:
		formatted = strings.TrimPrefix(u.Format(n, International), "+")
	default:
		formatted = u.Format(n, National)
	}
	// Digit-preservation contract: fall back to the raw input whenever the
	// reconstruction changed any digit.
	if normalizeDigitsOnly(formatted) != normalizeDigitsOnly(n.RawInput) {
		return n.RawInput
	}
	return formatted
}

// FormatOutOfCountryKeepingAlphaChars is FormatOutOfCountry for numbers
// kept with raw input that carry vanity letters: the letters are preserved
// and only the dialing prefixes are added. Numbers without raw input, or
// whose raw input has no letters, format normally.
func (u *Util) FormatOutOfCountryKeepingAlphaChars(n *PhoneNumber, regionCallingFrom string) string {
	raw := n.RawInput
	if raw == "" {
		return u.FormatOutOfCountry(n, regionCallingFrom)
	}
	hasAlpha := false
	for _, r := range raw {
		if _, ok := keypadLetters[unicode.ToUpper(r)]; ok {
			hasAlpha = true
			break
		}
	}
	if !hasAlpha {
		return u.FormatOutOfCountry(n, regionCallingFrom)
	}

	cc := n.CountryCode
	if !u.isValidRegionCode(regionCallingFrom) || !u.repo.HasCallingCode(cc) {
		return raw
	}
	// Strip any prefix preceding the national part of the raw input, keeping
	// the caller's punctuation and letters, then dial the rest from abroad.
	nsnDigits := u.NationalSignificantNumber(n)
	if len(nsnDigits) >= 3 {
		if idx := strings.Index(raw, nsnDigits[:3]); idx >= 0 {
			raw = raw[idx:]
		}
	}

	if cc == metadata.NANPACallingCode && u.IsNANPACountry(regionCallingFrom) {
		return countryCodeToString(cc) + " " + raw
	}
	if cc == u.CountryCodeForRegion(regionCallingFrom) {
		return raw
	}
	fromMd := u.metadataForRegion(regionCallingFrom)
	idd := fromMd.InternationalPrefix
	iddOut := ""
	switch {
	case uniqueIntlPrefix.MatchString(idd):
		iddOut = idd
	case fromMd.PreferredInternationalPrefix != "":
		iddOut = fromMd.PreferredInternationalPrefix
	}
	if iddOut == "" {
		return "+" + countryCodeToString(cc) + " " + raw
	}
	return iddOut + " " + countryCodeToString(cc) + " " + raw
}
