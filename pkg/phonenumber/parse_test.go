// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phonenumber

import (
	"strings"
	"testing"

	"telescan/pkg/metadata"
)

func testUtil(t *testing.T) *Util {
	t.Helper()
	repo, err := metadata.NewRepository()
	if err != nil {
		t.Fatalf("loading embedded rule table: %v", err)
	}
	return NewUtil(repo)
}

func TestParse_InternationalWithPlus(t *testing.T) {
	u := testUtil(t)
	n, err := u.Parse("+1 650-253-0000", UnknownRegion)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n.CountryCode != 1 {
		t.Errorf("country code = %d, want 1", n.CountryCode)
	}
	if n.NationalNumber != 6502530000 {
		t.Errorf("national number = %d, want 6502530000", n.NationalNumber)
	}
}

func TestParse_NationalWithPrefix(t *testing.T) {
	u := testUtil(t)
	n, err := u.Parse("033316005", "NZ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n.CountryCode != 64 {
		t.Errorf("country code = %d, want 64", n.CountryCode)
	}
	if n.NationalNumber != 33316005 {
		t.Errorf("national number = %d, want 33316005", n.NationalNumber)
	}
	if n.ItalianLeadingZero {
		t.Error("national prefix must not be recorded as a leading zero")
	}
	if !u.IsValidNumber(n) {
		t.Error("number should be valid")
	}
}

func TestParse_ItalianLeadingZero(t *testing.T) {
	u := testUtil(t)
	n, err := u.Parse("0677601234", "IT")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !n.ItalianLeadingZero {
		t.Error("leading zero must be preserved for Italian fixed lines")
	}
	if n.NationalNumber != 677601234 {
		t.Errorf("national number = %d, want 677601234", n.NationalNumber)
	}
	if got := u.Format(n, E164); got != "+390677601234" {
		t.Errorf("E164 = %q, want +390677601234", got)
	}
}

func TestParse_MultipleLeadingZeros(t *testing.T) {
	u := testUtil(t)
	n, err := u.Parse("+39 0023456789", UnknownRegion)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !n.ItalianLeadingZero || n.LeadingZeros() != 2 {
		t.Errorf("leading zeros = %d (italian=%v), want 2", n.LeadingZeros(), n.ItalianLeadingZero)
	}
	if got := u.NationalSignificantNumber(n); got != "0023456789" {
		t.Errorf("NSN = %q, want 0023456789", got)
	}
}

func TestParse_CountryCodeWithoutPlus(t *testing.T) {
	// The default region's own calling code dialed without a plus is
	// stripped when that turns an invalid number into a valid one.
	u := testUtil(t)
	n, err := u.Parse("16502530000", "US")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n.CountryCode != 1 || n.NationalNumber != 6502530000 {
		t.Errorf("got +%d %d, want +1 6502530000", n.CountryCode, n.NationalNumber)
	}
}

func TestParse_IDDPrefix(t *testing.T) {
	u := testUtil(t)
	cases := []struct {
		name, input, region string
		wantCC              int
		wantNSN             uint64
	}{
		{"japanese idd", "010 1 650 253 0000", "JP", 1, 6502530000},
		{"australian idd", "0011 39 0236618300", "AU", 39, 236618300},
		{"us idd", "011 44 2070313000", "US", 44, 2070313000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := u.Parse(tc.input, tc.region)
			if err != nil {
				t.Fatalf("Parse(%q, %q): %v", tc.input, tc.region, err)
			}
			if n.CountryCode != tc.wantCC || n.NationalNumber != tc.wantNSN {
				t.Errorf("got +%d %d, want +%d %d",
					n.CountryCode, n.NationalNumber, tc.wantCC, tc.wantNSN)
			}
		})
	}
}

func TestParse_NationalPrefixTransform(t *testing.T) {
	u := testUtil(t)

	// Argentinian mobile dialed domestically: 0 + area + 15 + subscriber
	// becomes 9 + area + subscriber.
	n, err := u.Parse("0111561234567", "AR")
	if err != nil {
		t.Fatalf("Parse AR: %v", err)
	}
	if n.NationalNumber != 91161234567 {
		t.Errorf("AR national number = %d, want 91161234567", n.NationalNumber)
	}

	// Mexican mobile dialed with the 045 prefix gains the leading 1.
	n, err = u.Parse("045 55 1234 5678", "MX")
	if err != nil {
		t.Fatalf("Parse MX: %v", err)
	}
	if n.NationalNumber != 15512345678 {
		t.Errorf("MX national number = %d, want 15512345678", n.NationalNumber)
	}
}

func TestParseAndKeepRawInput_CarrierCode(t *testing.T) {
	u := testUtil(t)
	n, err := u.ParseAndKeepRawInput("0 15 21 2345 6789", "BR")
	if err != nil {
		t.Fatalf("Parse BR: %v", err)
	}
	if !n.HasPreferredDomesticCarrierCode || n.PreferredDomesticCarrierCode != "15" {
		t.Errorf("carrier code = %q (has=%v), want 15",
			n.PreferredDomesticCarrierCode, n.HasPreferredDomesticCarrierCode)
	}
	if n.NationalNumber != 2123456789 {
		t.Errorf("national number = %d, want 2123456789", n.NationalNumber)
	}
}

func TestParseAndKeepRawInput_CountryCodeSource(t *testing.T) {
	u := testUtil(t)
	cases := []struct {
		input, region string
		want          CountryCodeSource
	}{
		{"+16502530000", "US", CountryCodeFromNumberWithPlusSign},
		{"011 44 2070313000", "US", CountryCodeFromNumberWithIDD},
		{"16502530000", "US", CountryCodeFromNumberWithoutPlus},
		{"650-253-0000", "US", CountryCodeFromDefaultCountry},
	}
	for _, tc := range cases {
		n, err := u.ParseAndKeepRawInput(tc.input, tc.region)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.input, err)
		}
		if n.CountryCodeSource != tc.want {
			t.Errorf("Parse(%q) source = %v, want %v", tc.input, n.CountryCodeSource, tc.want)
		}
		if n.RawInput != tc.input {
			t.Errorf("Parse(%q) raw input = %q", tc.input, n.RawInput)
		}
	}
}

func TestParse_Extensions(t *testing.T) {
	u := testUtil(t)
	cases := []struct {
		input   string
		wantExt string
	}{
		{"+44 2070 313000 ext. 456", "456"},
		{"+442070313000x456", "456"},
		{"+442070313000 #456", "456"},
		{"(650) 253-0000 extn 1234", "1234"},
	}
	for _, tc := range cases {
		n, err := u.Parse(tc.input, "US")
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.input, err)
		}
		if n.Extension != tc.wantExt {
			t.Errorf("Parse(%q) extension = %q, want %q", tc.input, n.Extension, tc.wantExt)
		}
	}
}

func TestParse_RFC3966(t *testing.T) {
	u := testUtil(t)

	n, err := u.Parse("tel:+1-650-253-0000;isub=12345", UnknownRegion)
	if err != nil {
		t.Fatalf("Parse tel with isub: %v", err)
	}
	if n.NationalNumber != 6502530000 {
		t.Errorf("isub leaked into national number: %d", n.NationalNumber)
	}

	n, err = u.Parse("tel:331-6005;phone-context=+64-3", UnknownRegion)
	if err != nil {
		t.Fatalf("Parse with phone-context: %v", err)
	}
	if n.CountryCode != 64 || n.NationalNumber != 33316005 {
		t.Errorf("got +%d %d, want +64 33316005", n.CountryCode, n.NationalNumber)
	}

	n, err = u.Parse("tel:033316005;phone-context=example.com", "NZ")
	if err != nil {
		t.Fatalf("Parse with domain phone-context: %v", err)
	}
	if n.NationalNumber != 33316005 {
		t.Errorf("national number = %d, want 33316005", n.NationalNumber)
	}

	n, err = u.Parse("tel:+1-650-253-0000;ext=123", UnknownRegion)
	if err != nil {
		t.Fatalf("Parse with ext parameter: %v", err)
	}
	if n.Extension != "123" {
		t.Errorf("extension = %q, want 123", n.Extension)
	}
}

func TestParse_VanityLetters(t *testing.T) {
	u := testUtil(t)
	n, err := u.Parse("1-800-FLOWERS", "US")
	if err != nil {
		t.Fatalf("Parse vanity: %v", err)
	}
	if n.NationalNumber != 8003569377 {
		t.Errorf("national number = %d, want 8003569377", n.NationalNumber)
	}
}

func TestParse_NonGeographic(t *testing.T) {
	u := testUtil(t)
	n, err := u.Parse("+800 1234 5678", UnknownRegion)
	if err != nil {
		t.Fatalf("Parse universal toll free: %v", err)
	}
	if n.CountryCode != 800 || n.NationalNumber != 12345678 {
		t.Errorf("got +%d %d, want +800 12345678", n.CountryCode, n.NationalNumber)
	}
	if !u.IsValidNumber(n) {
		t.Error("universal toll free number should be valid")
	}
	if got := u.NumberType(n); got != TollFree {
		t.Errorf("type = %v, want TOLL_FREE", got)
	}
}

func TestParse_Errors(t *testing.T) {
	u := testUtil(t)
	cases := []struct {
		name, input, region string
		want                ErrorKind
	}{
		{"empty", "", "US", NotANumber},
		{"prose", "this is not a phone number", "US", NotANumber},
		{"over long input", strings.Repeat("1", 251), "US", TooLong},
		// The NSN must stay over the ceiling even after the national prefix
		// strip, so it cannot begin with the NANPA prefix digit.
		{"over long nsn", "+1 923456789012345678", UnknownRegion, TooLong},
		{"no region no plus", "650 253 0000", UnknownRegion, InvalidCountryCode},
		{"zero country code", "+0 123 456 789", UnknownRegion, InvalidCountryCode},
		{"bare idd", "011", "US", TooShortAfterIDD},
		{"short nsn", "+491", UnknownRegion, TooShortNSN},
		{"bad phone context", "tel:555;phone-context=!!", "US", NotANumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := u.Parse(tc.input, tc.region)
			if err == nil {
				t.Fatalf("Parse(%q, %q) succeeded, want %v", tc.input, tc.region, tc.want)
			}
			if !IsParseError(err, tc.want) {
				t.Errorf("Parse(%q, %q) error = %v, want kind %v", tc.input, tc.region, err, tc.want)
			}
		})
	}
}

func TestParse_TooShortNSNAcceptedAtMinimum(t *testing.T) {
	// Two digits is the ITU minimum; the parse itself must not reject it
	// even though no region validates it.
	u := testUtil(t)
	n, err := u.Parse("+4912", UnknownRegion)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n.NationalNumber != 12 {
		t.Errorf("national number = %d, want 12", n.NationalNumber)
	}
}
