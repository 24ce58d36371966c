// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package metadata supplies the per-region dialing rules that drive parsing,
// validation, and formatting. Rulesets are decoded once from the embedded
// rule table and are immutable for the process lifetime; all lookups are safe
// for concurrent use.
package metadata

import "sort"

// TypeDesc describes one service type (fixed line, mobile, toll free, ...)
// within a region: the full-match digit pattern and the set of lengths the
// national significant number may have.
type TypeDesc struct {
	// Pattern must match the entire national significant number. Empty means
	// the type is not used in this region.
	Pattern string

	// PossibleLengths is sorted ascending. Empty means "inherit from the
	// general description". A sole value of -1 means the type does not exist.
	PossibleLengths []int

	// LocalOnlyLengths holds lengths dialable only within a local area,
	// disjoint from PossibleLengths.
	LocalOnlyLengths []int

	ExampleNumber string
}

// Exists reports whether the type is defined for its region.
func (d *TypeDesc) Exists() bool {
	if d == nil {
		return false
	}
	if len(d.PossibleLengths) == 1 && d.PossibleLengths[0] == -1 {
		return false
	}
	return true
}

// HasLength reports whether length appears in PossibleLengths.
func (d *TypeDesc) HasLength(length int) bool {
	i := sort.SearchInts(d.PossibleLengths, length)
	return i < len(d.PossibleLengths) && d.PossibleLengths[i] == length
}

// HasLocalOnlyLength reports whether length appears in LocalOnlyLengths.
func (d *TypeDesc) HasLocalOnlyLength(length int) bool {
	for _, l := range d.LocalOnlyLengths {
		if l == length {
			return true
		}
	}
	return false
}

// FormatRule is one entry of a region's ordered format list. The first rule
// whose leading-digits pattern and full pattern both match wins.
type FormatRule struct {
	// Pattern captures the national significant number into the groups the
	// Format template references.
	Pattern string

	// Format is the output template, with $1..$9 group references.
	Format string

	// LeadingDigits narrows which numbers the rule applies to. Only the last
	// (most specific) entry is consulted.
	LeadingDigits []string

	// NationalPrefixFormattingRule, when set, replaces the first group
	// reference of Format for national output. It may reference $1.
	NationalPrefixFormattingRule string

	// NationalPrefixOptionalWhenFormatting marks regions where national
	// output without the prefix is also customary.
	NationalPrefixOptionalWhenFormatting bool

	// CarrierCodeFormattingRule, when set, is used in place of the national
	// prefix rule when a domestic carrier code is being rendered. It may
	// reference $CC and $1.
	CarrierCodeFormattingRule string
}

// RegionRuleset holds every dialing rule for one region code, or for one
// non-geographic calling code (region id "001").
type RegionRuleset struct {
	ID                  string
	CountryCode         int
	InternationalPrefix string

	// PreferredInternationalPrefix is rendered when InternationalPrefix is a
	// pattern with several accepted spellings.
	PreferredInternationalPrefix string

	NationalPrefix string

	// NationalPrefixForParsing defaults to NationalPrefix. It may be a
	// pattern with capture groups feeding NationalPrefixTransformRule.
	NationalPrefixForParsing    string
	NationalPrefixTransformRule string

	PreferredExtnPrefix string

	// LeadingDigits is a fast filter distinguishing regions that share a
	// calling code.
	LeadingDigits string

	// MainCountryForCode marks the designated main region of a shared
	// calling code. At most one region per code carries it.
	MainCountryForCode bool

	// SameMobileAndFixedLinePattern collapses fixed-line matches into
	// FIXED_LINE_OR_MOBILE during classification.
	SameMobileAndFixedLinePattern bool

	GeneralDesc    *TypeDesc
	FixedLine      *TypeDesc
	Mobile         *TypeDesc
	TollFree       *TypeDesc
	PremiumRate    *TypeDesc
	SharedCost     *TypeDesc
	PersonalNumber *TypeDesc
	VoIP           *TypeDesc
	Pager          *TypeDesc
	UAN            *TypeDesc
	Voicemail      *TypeDesc

	// NoInternationalDialling lists numbers unreachable from abroad.
	NoInternationalDialling *TypeDesc

	// Formats is the ordered national format list. IntlFormats is consulted
	// for international output and falls back to Formats when empty.
	Formats     []*FormatRule
	IntlFormats []*FormatRule
}

// NationalPrefixForParsingOrDefault returns the parsing prefix pattern,
// falling back to the plain national prefix.
func (r *RegionRuleset) NationalPrefixForParsingOrDefault() string {
	if r.NationalPrefixForParsing != "" {
		return r.NationalPrefixForParsing
	}
	return r.NationalPrefix
}

// Repository indexes every loaded ruleset. It is constructed once and read
// concurrently thereafter.
type Repository struct {
	regions       map[string]*RegionRuleset
	byCallingCode map[int][]*RegionRuleset
	nonGeo        map[int]*RegionRuleset
	nanpa         map[string]bool
}

// NonGeoRegionID is the placeholder region id shared by rulesets keyed on a
// non-geographic calling code (universal toll free, shared-cost services).
const NonGeoRegionID = "001"

// NANPACallingCode is the calling code shared by the North American
// Numbering Plan regions.
const NANPACallingCode = 1

// ByRegionCode returns the ruleset for a region code, or nil when the region
// is not in the table.
func (r *Repository) ByRegionCode(code string) *RegionRuleset {
	return r.regions[code]
}

// ByCallingCode returns the ruleset registered for a non-geographic calling
// code, or nil.
func (r *Repository) ByCallingCode(cc int) *RegionRuleset {
	return r.nonGeo[cc]
}

// RegionCodesForCallingCode returns the region codes sharing a calling code,
// main region first. The slice must not be mutated.
func (r *Repository) RegionCodesForCallingCode(cc int) []string {
	sets := r.byCallingCode[cc]
	if len(sets) == 0 {
		return nil
	}
	codes := make([]string, len(sets))
	for i, rs := range sets {
		codes[i] = rs.ID
	}
	return codes
}

// RulesetsForCallingCode returns the rulesets sharing a calling code, main
// region first.
func (r *Repository) RulesetsForCallingCode(cc int) []*RegionRuleset {
	return r.byCallingCode[cc]
}

// MainRegionForCallingCode returns the designated main ruleset of a calling
// code: the geographic main region, or the non-geographic ruleset.
func (r *Repository) MainRegionForCallingCode(cc int) *RegionRuleset {
	if sets := r.byCallingCode[cc]; len(sets) > 0 {
		return sets[0]
	}
	return r.nonGeo[cc]
}

// CountryCodeForRegion returns the calling code of a region, 0 if unknown.
func (r *Repository) CountryCodeForRegion(code string) int {
	if rs := r.regions[code]; rs != nil {
		return rs.CountryCode
	}
	return 0
}

// HasCallingCode reports whether cc is a known calling code, geographic or
// not.
func (r *Repository) HasCallingCode(cc int) bool {
	if _, ok := r.byCallingCode[cc]; ok {
		return true
	}
	_, ok := r.nonGeo[cc]
	return ok
}

// IsNANPARegion reports whether the region participates in the North
// American Numbering Plan (calling code 1).
func (r *Repository) IsNANPARegion(code string) bool {
	return r.nanpa[code]
}

// SupportedRegions returns every geographic region code in the table,
// sorted.
func (r *Repository) SupportedRegions() []string {
	codes := make([]string, 0, len(r.regions))
	for code := range r.regions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// SupportedCallingCodes returns every known calling code, sorted.
func (r *Repository) SupportedCallingCodes() []int {
	seen := make(map[int]bool, len(r.byCallingCode)+len(r.nonGeo))
	for cc := range r.byCallingCode {
		seen[cc] = true
	}
	for cc := range r.nonGeo {
		seen[cc] = true
	}
	codes := make([]int, 0, len(seen))
	for cc := range seen {
		codes = append(codes, cc)
	}
	sort.Ints(codes)
	return codes
}
