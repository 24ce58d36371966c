// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepository_EmbeddedTable(t *testing.T) {
	repo, err := NewRepository()
	require.NoError(t, err, "embedded rule table must load")

	us := repo.ByRegionCode("US")
	require.NotNil(t, us)
	assert.Equal(t, 1, us.CountryCode)
	assert.True(t, us.MainCountryForCode)
	assert.True(t, us.SameMobileAndFixedLinePattern)
	require.NotNil(t, us.GeneralDesc)
	assert.Equal(t, []int{10}, us.GeneralDesc.PossibleLengths)
	assert.Equal(t, []int{7}, us.GeneralDesc.LocalOnlyLengths)

	assert.Nil(t, repo.ByRegionCode("XX"))
}

func TestLoad_SharedCallingCodeOrder(t *testing.T) {
	repo, err := NewRepository()
	require.NoError(t, err)

	codes := repo.RegionCodesForCallingCode(1)
	require.NotEmpty(t, codes)
	assert.Equal(t, "US", codes[0], "main region must sort first")
	assert.Contains(t, codes, "BS")
	assert.Contains(t, codes, "CA")

	assert.Equal(t, "US", repo.MainRegionForCallingCode(1).ID)
	assert.Nil(t, repo.RulesetsForCallingCode(2))
}

func TestLoad_NANPASet(t *testing.T) {
	repo, err := NewRepository()
	require.NoError(t, err)

	for _, region := range []string{"US", "CA", "BS"} {
		assert.True(t, repo.IsNANPARegion(region), region)
	}
	assert.False(t, repo.IsNANPARegion("GB"))
}

func TestLoad_NonGeographic(t *testing.T) {
	repo, err := NewRepository()
	require.NoError(t, err)

	tollFree := repo.ByCallingCode(800)
	require.NotNil(t, tollFree)
	assert.Equal(t, NonGeoRegionID, tollFree.ID)
	assert.True(t, repo.HasCallingCode(800))
	assert.True(t, repo.HasCallingCode(979))
	assert.False(t, repo.HasCallingCode(2))

	// Non-geographic codes resolve through MainRegionForCallingCode too.
	assert.Equal(t, 800, repo.MainRegionForCallingCode(800).CountryCode)
}

func TestLoad_IntlFormats(t *testing.T) {
	repo, err := NewRepository()
	require.NoError(t, err)

	// The first US rule is domestic-only (intl NA); the intl list holds just
	// the second, with the international template substituted.
	us := repo.ByRegionCode("US")
	require.Len(t, us.Formats, 2)
	require.Len(t, us.IntlFormats, 1)
	assert.Equal(t, `(\d{3})(\d{3})(\d{4})`, us.IntlFormats[0].Pattern)
	assert.Equal(t, "$1-$2-$3", us.IntlFormats[0].Format)
	assert.Empty(t, us.IntlFormats[0].NationalPrefixFormattingRule)

	// Regions whose rules never diverge internationally keep an empty intl
	// list and fall back to the national rules.
	gb := repo.ByRegionCode("GB")
	assert.Empty(t, gb.IntlFormats)
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"empty table", `regions: []`},
		{"missing id", `
regions:
  - country_code: 1
    general: {pattern: '\d+', lengths: [5]}
`},
		{"missing general", `
regions:
  - id: XX
    country_code: 99
`},
		{"bad pattern", `
regions:
  - id: XX
    country_code: 99
    general: {pattern: '[unclosed', lengths: [5]}
`},
		{"duplicate region", `
regions:
  - id: XX
    country_code: 99
    general: {pattern: '\d+', lengths: [5]}
  - id: XX
    country_code: 99
    general: {pattern: '\d+', lengths: [5]}
`},
		{"two mains for shared code", `
regions:
  - id: XX
    country_code: 99
    main_country_for_code: true
    general: {pattern: '\d+', lengths: [5]}
  - id: XY
    country_code: 99
    main_country_for_code: true
    general: {pattern: '\d+', lengths: [5]}
`},
		{"overlapping local only length", `
regions:
  - id: XX
    country_code: 99
    general: {pattern: '\d+', lengths: [5], local_only_lengths: [5]}
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_SharedCodeWithoutMainRejected(t *testing.T) {
	_, err := Load([]byte(`
regions:
  - id: XX
    country_code: 99
    general: {pattern: '\d+', lengths: [5]}
  - id: XY
    country_code: 99
    general: {pattern: '\d+', lengths: [5]}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marked main")
}

func TestTypeDesc_Exists(t *testing.T) {
	assert.False(t, (*TypeDesc)(nil).Exists())
	assert.False(t, (&TypeDesc{PossibleLengths: []int{-1}}).Exists())
	assert.True(t, (&TypeDesc{Pattern: `\d+`, PossibleLengths: []int{8}}).Exists())
}

func TestNationalPrefixForParsingOrDefault(t *testing.T) {
	rs := &RegionRuleset{NationalPrefix: "0"}
	assert.Equal(t, "0", rs.NationalPrefixForParsingOrDefault())
	rs.NationalPrefixForParsing = `0(?:(11)15)?`
	assert.Equal(t, `0(?:(11)15)?`, rs.NationalPrefixForParsingOrDefault())
}
