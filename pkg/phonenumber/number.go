// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package phonenumber parses, validates, classifies, and formats telephone
// numbers, and finds number-shaped substrings inside free text. All behavior
// is driven by the per-region rule table supplied by pkg/metadata; the engine
// itself carries no country knowledge.
package phonenumber

import (
	"fmt"
	"strconv"
	"strings"
)

// CountryCodeSource records how the calling code of a parsed number was
// determined.
type CountryCodeSource int

const (
	// CountryCodeUnspecified is the zero value, used when raw input was not
	// kept.
	CountryCodeUnspecified CountryCodeSource = iota

	// CountryCodeFromNumberWithPlusSign: the input carried a leading plus.
	CountryCodeFromNumberWithPlusSign

	// CountryCodeFromNumberWithIDD: the input carried the default region's
	// international dialing prefix.
	CountryCodeFromNumberWithIDD

	// CountryCodeFromNumberWithoutPlus: the calling code was guessed from
	// the leading digits without a plus or IDD.
	CountryCodeFromNumberWithoutPlus

	// CountryCodeFromDefaultCountry: the calling code came from the default
	// region, not from the input.
	CountryCodeFromDefaultCountry
)

func (s CountryCodeSource) String() string {
	switch s {
	case CountryCodeFromNumberWithPlusSign:
		return "FROM_NUMBER_WITH_PLUS_SIGN"
	case CountryCodeFromNumberWithIDD:
		return "FROM_NUMBER_WITH_IDD"
	case CountryCodeFromNumberWithoutPlus:
		return "FROM_NUMBER_WITHOUT_PLUS_SIGN"
	case CountryCodeFromDefaultCountry:
		return "FROM_DEFAULT_COUNTRY"
	}
	return "UNSPECIFIED"
}

// PhoneNumber is the canonical representation of a parsed number. It is
// produced fresh by each Parse call and treated as immutable afterwards.
type PhoneNumber struct {
	// CountryCode is the calling code, 0 when unknown.
	CountryCode int

	// NationalNumber holds the significant digits. Leading zeros cannot be
	// represented in an integer; ItalianLeadingZero and NumberOfLeadingZeros
	// recover them.
	NationalNumber uint64

	// ItalianLeadingZero is set when the national significant number starts
	// with a zero (as Italian fixed lines do).
	ItalianLeadingZero bool

	// NumberOfLeadingZeros is only stored when greater than one; a single
	// leading zero is implied by ItalianLeadingZero alone.
	NumberOfLeadingZeros int

	// Extension keeps the post-dial extension digits, empty when absent.
	Extension string

	// RawInput, CountryCodeSource, and PreferredDomesticCarrierCode are only
	// populated by ParseAndKeepRawInput and are excluded from matching
	// equality.
	RawInput                        string
	CountryCodeSource               CountryCodeSource
	PreferredDomesticCarrierCode    string
	HasPreferredDomesticCarrierCode bool
}

// LeadingZeros returns the number of leading zeros of the national
// significant number.
func (n *PhoneNumber) LeadingZeros() int {
	if !n.ItalianLeadingZero {
		return 0
	}
	if n.NumberOfLeadingZeros > 1 {
		return n.NumberOfLeadingZeros
	}
	return 1
}

// Equal reports matching equality: calling code, national number, leading
// zeros, and extension. Raw-input metadata is ignored.
func (n *PhoneNumber) Equal(o *PhoneNumber) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.CountryCode == o.CountryCode &&
		n.NationalNumber == o.NationalNumber &&
		n.LeadingZeros() == o.LeadingZeros() &&
		n.Extension == o.Extension
}

// clearMetadata returns a copy with the fields excluded from matching
// equality zeroed.
func (n *PhoneNumber) clearMetadata() PhoneNumber {
	c := *n
	c.RawInput = ""
	c.CountryCodeSource = CountryCodeUnspecified
	c.PreferredDomesticCarrierCode = ""
	c.HasPreferredDomesticCarrierCode = false
	return c
}

func (n *PhoneNumber) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "country_code: %d, national_number: %d", n.CountryCode, n.NationalNumber)
	if n.ItalianLeadingZero {
		fmt.Fprintf(&b, ", leading_zeros: %d", n.LeadingZeros())
	}
	if n.Extension != "" {
		fmt.Fprintf(&b, ", extension: %s", n.Extension)
	}
	return b.String()
}

// nationalSignificantNumber renders the stored digits including recovered
// leading zeros.
func (n *PhoneNumber) nationalSignificantNumber() string {
	return strings.Repeat("0", n.LeadingZeros()) + strconv.FormatUint(n.NationalNumber, 10)
}
