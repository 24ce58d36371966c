// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phonenumber

import (
	"strconv"
	"strings"

	"telescan/internal/regexcache"
	"telescan/pkg/metadata"
)

const (
	// The shortest and longest national significant numbers the ITU permits.
	minLengthNSN = 2
	maxLengthNSN = 17

	maxLengthCountryCode = 3

	// Inputs longer than this cannot be numbers; cap work up front.
	maxInputStringLength = 250

	// UnknownRegion is the region code callers pass when no default region
	// applies (numbers must then carry their calling code).
	UnknownRegion = "ZZ"
)

// Util is the engine. It is stateless apart from the injected rule
// repository and the shared pattern cache, and is safe for concurrent use.
type Util struct {
	repo  *metadata.Repository
	cache *regexcache.Cache
}

// NewUtil builds an engine around a rule repository.
func NewUtil(repo *metadata.Repository) *Util {
	return &Util{repo: repo, cache: regexcache.New()}
}

// Repository exposes the injected rule table.
func (u *Util) Repository() *metadata.Repository { return u.repo }

// SupportedRegions lists the geographic regions of the rule table.
func (u *Util) SupportedRegions() []string { return u.repo.SupportedRegions() }

// CountryCodeForRegion returns the calling code of a region, 0 if unknown.
func (u *Util) CountryCodeForRegion(region string) int {
	return u.repo.CountryCodeForRegion(region)
}

// IsNANPACountry reports whether the region shares calling code 1.
func (u *Util) IsNANPACountry(region string) bool {
	return u.repo.IsNANPARegion(region)
}

// NationalSignificantNumber renders the number's significant digits,
// including leading zeros the integer field cannot hold.
func (u *Util) NationalSignificantNumber(n *PhoneNumber) string {
	return n.nationalSignificantNumber()
}

// RegionCodeForCountryCode returns the main region of a calling code, the
// non-geographic placeholder "001" for non-geographic codes, or "ZZ".
func (u *Util) RegionCodeForCountryCode(cc int) string {
	if codes := u.repo.RegionCodesForCallingCode(cc); len(codes) > 0 {
		return codes[0]
	}
	if u.repo.ByCallingCode(cc) != nil {
		return metadata.NonGeoRegionID
	}
	return UnknownRegion
}

// RegionCodeForNumber determines which region's rules the number satisfies.
// Regions with a leading-digits filter are decided by prefix; the rest by
// classification, main region first.
func (u *Util) RegionCodeForNumber(n *PhoneNumber) string {
	rulesets := u.repo.RulesetsForCallingCode(n.CountryCode)
	if len(rulesets) == 0 {
		if u.repo.ByCallingCode(n.CountryCode) != nil {
			return metadata.NonGeoRegionID
		}
		return UnknownRegion
	}
	if len(rulesets) == 1 {
		return rulesets[0].ID
	}
	nsn := n.nationalSignificantNumber()
	for _, rs := range rulesets {
		if rs.LeadingDigits == "" {
			continue
		}
		if u.cache.GetPrefix(rs.LeadingDigits).MatchString(nsn) {
			return rs.ID
		}
	}
	for _, rs := range rulesets {
		if rs.LeadingDigits != "" {
			continue
		}
		if u.numberTypeHelper(nsn, rs) != Unknown {
			return rs.ID
		}
	}
	return UnknownRegion
}

// metadataForRegion returns the ruleset for a geographic region code.
func (u *Util) metadataForRegion(region string) *metadata.RegionRuleset {
	return u.repo.ByRegionCode(region)
}

// metadataForRegionOrCallingCode resolves the governing ruleset for a
// calling code: the designated main region for shared codes, or the
// non-geographic ruleset.
func (u *Util) metadataForRegionOrCallingCode(cc int, region string) *metadata.RegionRuleset {
	if region == metadata.NonGeoRegionID || region == UnknownRegion || region == "" {
		return u.repo.MainRegionForCallingCode(cc)
	}
	if rs := u.repo.ByRegionCode(region); rs != nil {
		return rs
	}
	return u.repo.MainRegionForCallingCode(cc)
}

// isValidRegionCode reports whether region names a geographic entry of the
// rule table.
func (u *Util) isValidRegionCode(region string) bool {
	return region != "" && u.repo.ByRegionCode(region) != nil
}

// NddPrefixForRegion returns the national dialing prefix of a region;
// stripNonDigits removes pattern punctuation such as "~" (used where the
// prefix carries a wait-for-dial-tone marker).
func (u *Util) NddPrefixForRegion(region string, stripNonDigits bool) string {
	rs := u.metadataForRegion(region)
	if rs == nil {
		return ""
	}
	np := rs.NationalPrefix
	if stripNonDigits {
		np = strings.ReplaceAll(np, "~", "")
	}
	return np
}

// ExampleNumber returns a fixed-line example for the region, nil when the
// rule table carries none.
func (u *Util) ExampleNumber(region string) *PhoneNumber {
	return u.ExampleNumberForType(region, FixedLine)
}

// ExampleNumberForType returns an example number of the given type.
func (u *Util) ExampleNumberForType(region string, t ServiceType) *PhoneNumber {
	rs := u.metadataForRegion(region)
	if rs == nil {
		return nil
	}
	desc := descForType(rs, t)
	if desc == nil || desc.ExampleNumber == "" {
		return nil
	}
	n, err := u.Parse(desc.ExampleNumber, region)
	if err != nil {
		return nil
	}
	return n
}

// countryCodeToString is a tiny helper used in several formatting paths.
func countryCodeToString(cc int) string {
	return strconv.Itoa(cc)
}
