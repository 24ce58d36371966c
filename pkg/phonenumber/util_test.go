// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phonenumber

import "testing"

func TestSupportedRegions(t *testing.T) {
	u := testUtil(t)
	regions := u.SupportedRegions()
	if len(regions) == 0 {
		t.Fatal("no supported regions")
	}
	seen := make(map[string]bool, len(regions))
	for _, r := range regions {
		seen[r] = true
	}
	for _, want := range []string{"US", "GB", "NZ", "IT", "BR"} {
		if !seen[want] {
			t.Errorf("region %s missing from SupportedRegions", want)
		}
	}
	if seen["001"] {
		t.Error("non-geographic placeholder listed as a region")
	}
}

func TestCountryCodeForRegion(t *testing.T) {
	u := testUtil(t)
	cases := []struct {
		region string
		want   int
	}{
		{"US", 1}, {"BS", 1}, {"GB", 44}, {"NZ", 64}, {"XX", 0}, {UnknownRegion, 0},
	}
	for _, tc := range cases {
		if got := u.CountryCodeForRegion(tc.region); got != tc.want {
			t.Errorf("CountryCodeForRegion(%q) = %d, want %d", tc.region, got, tc.want)
		}
	}
}

func TestRegionCodeForCountryCode(t *testing.T) {
	u := testUtil(t)
	cases := []struct {
		cc   int
		want string
	}{
		{1, "US"}, {44, "GB"}, {64, "NZ"}, {800, "001"}, {2, UnknownRegion},
	}
	for _, tc := range cases {
		if got := u.RegionCodeForCountryCode(tc.cc); got != tc.want {
			t.Errorf("RegionCodeForCountryCode(%d) = %q, want %q", tc.cc, got, tc.want)
		}
	}
}

func TestIsNANPACountry(t *testing.T) {
	u := testUtil(t)
	for _, region := range []string{"US", "CA", "BS"} {
		if !u.IsNANPACountry(region) {
			t.Errorf("%s should be a NANPA region", region)
		}
	}
	for _, region := range []string{"GB", "ZZ", ""} {
		if u.IsNANPACountry(region) {
			t.Errorf("%s should not be a NANPA region", region)
		}
	}
}

func TestNddPrefixForRegion(t *testing.T) {
	u := testUtil(t)
	if got := u.NddPrefixForRegion("US", false); got != "1" {
		t.Errorf("US ndd = %q, want 1", got)
	}
	if got := u.NddPrefixForRegion("NZ", false); got != "0" {
		t.Errorf("NZ ndd = %q, want 0", got)
	}
	if got := u.NddPrefixForRegion("IT", false); got != "" {
		t.Errorf("IT ndd = %q, want empty", got)
	}
	if got := u.NddPrefixForRegion("XX", true); got != "" {
		t.Errorf("unknown region ndd = %q, want empty", got)
	}
}

func TestRoundTrip_E164(t *testing.T) {
	// Formatting a valid number as E164 and reparsing it with no default
	// region must reproduce the number.
	u := testUtil(t)
	for _, region := range u.SupportedRegions() {
		n := u.ExampleNumber(region)
		if n == nil {
			continue
		}
		e164 := u.Format(n, E164)
		back, err := u.Parse(e164, UnknownRegion)
		if err != nil {
			t.Errorf("%s: Parse(%q) failed: %v", region, e164, err)
			continue
		}
		if !n.Equal(back) {
			t.Errorf("%s: round trip %q gave %v, want %v", region, e164, back, n)
		}
	}
}

func TestRoundTrip_NationalIdempotent(t *testing.T) {
	// Reparsing national output and formatting again must be a fixed point.
	u := testUtil(t)
	for _, region := range u.SupportedRegions() {
		n := u.ExampleNumber(region)
		if n == nil {
			continue
		}
		national := u.Format(n, National)
		back, err := u.Parse(national, region)
		if err != nil {
			t.Errorf("%s: Parse(%q) failed: %v", region, national, err)
			continue
		}
		again := u.Format(back, National)
		if again != national {
			t.Errorf("%s: national format not idempotent: %q -> %q", region, national, again)
		}
	}
}

func TestNationalSignificantNumber_LeadingZeros(t *testing.T) {
	u := testUtil(t)
	n := &PhoneNumber{CountryCode: 39, NationalNumber: 236618300, ItalianLeadingZero: true}
	if got := u.NationalSignificantNumber(n); got != "0236618300" {
		t.Errorf("NSN = %q, want 0236618300", got)
	}
	n.NumberOfLeadingZeros = 3
	if got := u.NationalSignificantNumber(n); got != "000236618300" {
		t.Errorf("NSN = %q, want 000236618300", got)
	}
}
