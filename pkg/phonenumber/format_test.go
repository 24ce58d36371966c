// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phonenumber

import "testing"

func mustParse(t *testing.T, u *Util, input, region string) *PhoneNumber {
	t.Helper()
	n, err := u.Parse(input, region)
	if err != nil {
		t.Fatalf("Parse(%q, %q): %v", input, region, err)
	}
	return n
}

func TestFormat_Styles(t *testing.T) {
	u := testUtil(t)
	cases := []struct {
		name, input, region string
		style               Style
		want                string
	}{
		{"us national", "+16502530000", "ZZ", National, "(650) 253-0000"},
		{"us international", "+16502530000", "ZZ", International, "+1 650-253-0000"},
		{"us e164", "6502530000", "US", E164, "+16502530000"},
		{"us rfc3966", "+16502530000", "ZZ", RFC3966, "tel:+1-650-253-0000"},
		{"nz national keeps prefix", "033316005", "NZ", National, "03-331 6005"},
		{"nz international", "033316005", "NZ", International, "+64 3-331 6005"},
		{"it national keeps zero", "0236618300", "IT", National, "02 3661 8300"},
		{"it e164 keeps zero", "0236618300", "IT", E164, "+390236618300"},
		{"de national", "030123456", "DE", National, "030 123456"},
		{"gb national", "+442070313000", "ZZ", National, "020 7031 3000"},
		{"gb international", "+442070313000", "ZZ", International, "+44 20 7031 3000"},
		{"au bracketed prefix", "0236618300", "AU", National, "(02) 3661 8300"},
		{"sg no national prefix", "61234567", "SG", National, "6123 4567"},
		{"jp mobile", "09012345678", "JP", National, "090-1234-5678"},
		{"ar mobile national", "91161234567", "AR", National, "11 15-6123-4567"},
		{"ar mobile international", "91161234567", "AR", International, "+54 9 11 6123-4567"},
		{"mx mobile national", "045 55 1234 5678", "MX", National, "045 55 1234 5678"},
		{"mx mobile international", "045 55 1234 5678", "MX", International, "+52 1 55 1234 5678"},
		{"universal toll free", "+80012345678", "ZZ", International, "+800 1234 5678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := mustParse(t, u, tc.input, tc.region)
			if got := u.Format(n, tc.style); got != tc.want {
				t.Errorf("Format(%q, %v) = %q, want %q", tc.input, tc.style, got, tc.want)
			}
		})
	}
}

func TestFormat_UnknownCountryCode(t *testing.T) {
	u := testUtil(t)
	n := &PhoneNumber{CountryCode: 999, NationalNumber: 12345678}
	if got := u.Format(n, International); got != "12345678" {
		t.Errorf("Format with unknown calling code = %q, want bare digits", got)
	}
	if got := u.Format(n, E164); got != "12345678" {
		t.Errorf("E164 with unknown calling code = %q, want bare digits", got)
	}
}

func TestFormat_Extension(t *testing.T) {
	u := testUtil(t)

	n := mustParse(t, u, "+442070313000x456", "ZZ")
	if got := u.Format(n, National); got != "020 7031 3000 x456" {
		t.Errorf("GB national with extension = %q", got)
	}
	if got := u.Format(n, RFC3966); got != "tel:+44-20-7031-3000;ext=456" {
		t.Errorf("GB RFC3966 with extension = %q", got)
	}

	n = mustParse(t, u, "+16502530000x1234", "ZZ")
	if got := u.Format(n, National); got != "(650) 253-0000 ext. 1234" {
		t.Errorf("US national with extension = %q", got)
	}
}

func TestFormatWithCarrierCode(t *testing.T) {
	u := testUtil(t)
	n := mustParse(t, u, "2123456789", "BR")
	if got := u.Format(n, National); got != "(21) 2345-6789" {
		t.Errorf("BR national = %q", got)
	}
	if got := u.FormatWithCarrierCode(n, "15"); got != "0 15 (21) 2345-6789" {
		t.Errorf("BR with carrier code = %q", got)
	}
}

func TestFormatWithPreferredCarrierCode(t *testing.T) {
	u := testUtil(t)
	n, err := u.ParseAndKeepRawInput("0 15 21 2345 6789", "BR")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := u.FormatWithPreferredCarrierCode(n, ""); got != "0 15 (21) 2345-6789" {
		t.Errorf("preferred carrier code = %q", got)
	}

	// Without a remembered carrier code the fallback applies; an empty
	// fallback renders plain national format.
	plain := mustParse(t, u, "2123456789", "BR")
	if got := u.FormatWithPreferredCarrierCode(plain, "14"); got != "0 14 (21) 2345-6789" {
		t.Errorf("fallback carrier code = %q", got)
	}
	if got := u.FormatWithPreferredCarrierCode(plain, ""); got != "(21) 2345-6789" {
		t.Errorf("empty fallback = %q", got)
	}
}

func TestFormatOutOfCountry(t *testing.T) {
	u := testUtil(t)
	us := mustParse(t, u, "+16502530000", "ZZ")
	de := mustParse(t, u, "+4930123456", "ZZ")

	cases := []struct {
		name   string
		number *PhoneNumber
		from   string
		want   string
	}{
		{"us from germany", us, "DE", "00 1 650-253-0000"},
		{"us from australia uses preferred idd", us, "AU", "0011 1 650-253-0000"},
		{"us from canada dials like national", us, "CA", "1 (650) 253-0000"},
		{"us from us stays national", us, "US", "(650) 253-0000"},
		{"de from us", de, "US", "011 49 30 123456"},
		{"de from germany stays national", de, "DE", "030 123456"},
		{"unknown origin falls back to international", us, "ZZ", "+1 650-253-0000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := u.FormatOutOfCountry(tc.number, tc.from); got != tc.want {
				t.Errorf("FormatOutOfCountry = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatInOriginalFormat(t *testing.T) {
	u := testUtil(t)
	cases := []struct {
		name, input, region, want string
	}{
		{"plus sign kept", "+16502530000", "US", "+1 650-253-0000"},
		{"idd kept", "011 44 2070313000", "US", "011 44 20 7031 3000"},
		{"national stays national", "650 253 0000", "US", "(650) 253-0000"},
		{"cc without plus", "16502530000", "US", "1 650-253-0000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := u.ParseAndKeepRawInput(tc.input, tc.region)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.input, err)
			}
			if got := u.FormatInOriginalFormat(n, tc.region); got != tc.want {
				t.Errorf("FormatInOriginalFormat(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestFormatInOriginalFormat_FallsBackToRawInput(t *testing.T) {
	// The NZ national prefix is dropped nowhere in our formats, but a number
	// typed without it must come back exactly as typed.
	u := testUtil(t)
	n, err := u.ParseAndKeepRawInput("3331 6005", "NZ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := u.FormatInOriginalFormat(n, "NZ"); got != "3331 6005" {
		t.Errorf("FormatInOriginalFormat = %q, want the raw input back", got)
	}
}

func TestFormatOutOfCountryKeepingAlphaChars(t *testing.T) {
	u := testUtil(t)
	n, err := u.ParseAndKeepRawInput("1-800-FLOWERS", "US")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := u.FormatOutOfCountryKeepingAlphaChars(n, "DE"); got != "00 1 800-FLOWERS" {
		t.Errorf("alpha-keeping from DE = %q", got)
	}
	if got := u.FormatOutOfCountryKeepingAlphaChars(n, "CA"); got != "1 800-FLOWERS" {
		t.Errorf("alpha-keeping from CA = %q", got)
	}
}

func TestTruncateTooLongNumber(t *testing.T) {
	u := testUtil(t)

	// A valid US number with two extra digits truncates back to validity.
	n := &PhoneNumber{CountryCode: 1, NationalNumber: 650253000099}
	if !u.TruncateTooLongNumber(n) {
		t.Fatal("TruncateTooLongNumber = false, want true")
	}
	if n.NationalNumber != 6502530000 {
		t.Errorf("truncated to %d, want 6502530000", n.NationalNumber)
	}

	// Already valid numbers are untouched.
	n = &PhoneNumber{CountryCode: 1, NationalNumber: 6502530000}
	if !u.TruncateTooLongNumber(n) || n.NationalNumber != 6502530000 {
		t.Errorf("valid number changed: %d", n.NationalNumber)
	}

	// Numbers with no valid prefix report failure and stay unchanged.
	n = &PhoneNumber{CountryCode: 1, NationalNumber: 1234567890123}
	if u.TruncateTooLongNumber(n) {
		t.Error("TruncateTooLongNumber = true for untruncatable number")
	}
	if n.NationalNumber != 1234567890123 {
		t.Errorf("untruncatable number changed: %d", n.NationalNumber)
	}
}
