// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phonenumber

import (
	"sort"

	"telescan/pkg/metadata"
)

// ValidationResult is the outcome of the length-only possibility check.
type ValidationResult int

const (
	// ResultIsPossible: the length matches a possible length for the type.
	ResultIsPossible ValidationResult = iota

	// ResultIsPossibleLocalOnly: the length is only dialable within a local
	// area (no area code).
	ResultIsPossibleLocalOnly

	// ResultInvalidCountryCode: the number's calling code is unknown.
	ResultInvalidCountryCode

	// ResultTooShort: shorter than every possible length.
	ResultTooShort

	// ResultInvalidLength: between possible lengths, but not one of them.
	ResultInvalidLength

	// ResultTooLong: longer than every possible length.
	ResultTooLong
)

func (r ValidationResult) String() string {
	switch r {
	case ResultIsPossible:
		return "IS_POSSIBLE"
	case ResultIsPossibleLocalOnly:
		return "IS_POSSIBLE_LOCAL_ONLY"
	case ResultInvalidCountryCode:
		return "INVALID_COUNTRY_CODE"
	case ResultTooShort:
		return "TOO_SHORT"
	case ResultInvalidLength:
		return "INVALID_LENGTH"
	case ResultTooLong:
		return "TOO_LONG"
	}
	return "UNKNOWN"
}

// possibleLengthsFor resolves the length sets for a type, inheriting from
// the general description when the type declares none, and merging fixed
// line with mobile for FixedLineOrMobile.
func possibleLengthsFor(md *metadata.RegionRuleset, t ServiceType) (lengths, localOnly []int) {
	if t == FixedLineOrMobile {
		fl, flLocal := possibleLengthsFor(md, FixedLine)
		if len(fl) == 1 && fl[0] == -1 {
			return possibleLengthsFor(md, Mobile)
		}
		mob, mobLocal := possibleLengthsFor(md, Mobile)
		if len(mob) == 1 && mob[0] == -1 {
			return fl, flLocal
		}
		return mergeSorted(fl, mob), mergeSorted(flLocal, mobLocal)
	}

	desc := descForType(md, t)
	if desc == nil {
		return []int{-1}, nil
	}
	lengths = desc.PossibleLengths
	if len(lengths) == 0 {
		lengths = md.GeneralDesc.PossibleLengths
	}
	return lengths, desc.LocalOnlyLengths
}

func mergeSorted(a, b []int) []int {
	seen := make(map[int]bool, len(a)+len(b))
	var out []int
	for _, v := range append(append([]int(nil), a...), b...) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

// testNumberLengthString compares a national number's length against the
// type's possible lengths. Local-only lengths win over possible lengths when
// both could match.
func (u *Util) testNumberLengthString(nsn string, md *metadata.RegionRuleset, t ServiceType) ValidationResult {
	lengths, localOnly := possibleLengthsFor(md, t)
	if len(lengths) == 1 && lengths[0] == -1 {
		// The type does not exist in this region; no length can be right.
		return ResultInvalidLength
	}
	actual := len(nsn)
	for _, l := range localOnly {
		if l == actual {
			return ResultIsPossibleLocalOnly
		}
	}
	minimum := lengths[0]
	switch {
	case minimum == actual:
		return ResultIsPossible
	case minimum > actual:
		return ResultTooShort
	case lengths[len(lengths)-1] < actual:
		return ResultTooLong
	}
	for _, l := range lengths[1:] {
		if l == actual {
			return ResultIsPossible
		}
	}
	return ResultInvalidLength
}

// IsPossibleNumberWithReason is the fast, length-only possibility check for
// any service type.
func (u *Util) IsPossibleNumberWithReason(n *PhoneNumber) ValidationResult {
	return u.IsPossibleNumberForTypeWithReason(n, Unknown)
}

// IsPossibleNumberForTypeWithReason is the length-only possibility check
// restricted to one service type.
func (u *Util) IsPossibleNumberForTypeWithReason(n *PhoneNumber, t ServiceType) ValidationResult {
	nsn := n.nationalSignificantNumber()
	if !u.repo.HasCallingCode(n.CountryCode) {
		return ResultInvalidCountryCode
	}
	region := u.RegionCodeForCountryCode(n.CountryCode)
	md := u.metadataForRegionOrCallingCode(n.CountryCode, region)
	return u.testNumberLengthString(nsn, md, t)
}

// IsPossibleNumber reports whether the number's length is plausible,
// counting local-only lengths as possible.
func (u *Util) IsPossibleNumber(n *PhoneNumber) bool {
	r := u.IsPossibleNumberWithReason(n)
	return r == ResultIsPossible || r == ResultIsPossibleLocalOnly
}

// IsValidNumber reports whether the number fully matches the structural
// rules of the region its calling code and leading digits select.
func (u *Util) IsValidNumber(n *PhoneNumber) bool {
	region := u.RegionCodeForNumber(n)
	return u.IsValidNumberForRegion(n, region)
}

// IsValidNumberForRegion is IsValidNumber pinned to a specific region; a
// number whose calling code does not belong to the region is invalid.
func (u *Util) IsValidNumberForRegion(n *PhoneNumber, region string) bool {
	md := u.metadataForRegionOrCallingCode(n.CountryCode, region)
	if md == nil {
		return false
	}
	if region != metadata.NonGeoRegionID && n.CountryCode != u.CountryCodeForRegion(region) {
		return false
	}
	return u.numberTypeHelper(n.nationalSignificantNumber(), md) != Unknown
}

// TruncateTooLongNumber chops trailing digits off an over-long number until
// it is valid. Reports false (leaving the number unchanged) when no valid
// prefix exists.
func (u *Util) TruncateTooLongNumber(n *PhoneNumber) bool {
	if u.IsValidNumber(n) {
		return true
	}
	copyN := *n
	for {
		copyN.NationalNumber /= 10
		if copyN.NationalNumber == 0 || u.IsPossibleNumberWithReason(&copyN) == ResultTooShort {
			return false
		}
		if u.IsValidNumber(&copyN) {
			n.NationalNumber = copyN.NationalNumber
			return true
		}
	}
}
