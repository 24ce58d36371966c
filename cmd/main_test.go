// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"telescan/pkg/phonenumber"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSettings_Defaults(t *testing.T) {
	resolved, err := resolveSettings(&cliFlags{})
	require.NoError(t, err)
	assert.Equal(t, "ZZ", resolved.region)
	assert.Equal(t, phonenumber.Valid, resolved.leniency)
	assert.Equal(t, "text", resolved.format)
	assert.Positive(t, resolved.maxTries)
}

func TestResolveSettings_FlagPrecedence(t *testing.T) {
	resolved, err := resolveSettings(&cliFlags{
		region:    "nz",
		leniency:  "POSSIBLE",
		format:    "json",
		maxTries:  7,
		validOnly: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "NZ", resolved.region)
	assert.Equal(t, phonenumber.Possible, resolved.leniency)
	assert.Equal(t, "json", resolved.format)
	assert.Equal(t, 7, resolved.maxTries)
	assert.True(t, resolved.validOnly)
}

func TestResolveSettings_Profile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "telescan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
profiles:
  audit:
    region: US
    leniency: EXACT_GROUPING
    format: csv
`), 0o600))

	resolved, err := resolveSettings(&cliFlags{configFile: path, profile: "audit"})
	require.NoError(t, err)
	assert.Equal(t, "US", resolved.region)
	assert.Equal(t, phonenumber.ExactGrouping, resolved.leniency)
	assert.Equal(t, "csv", resolved.format)

	// Flags still beat the profile.
	resolved, err = resolveSettings(&cliFlags{
		configFile: path, profile: "audit", leniency: "VALID",
	})
	require.NoError(t, err)
	assert.Equal(t, phonenumber.Valid, resolved.leniency)

	_, err = resolveSettings(&cliFlags{configFile: path, profile: "missing"})
	assert.Error(t, err)
}

func TestResolveSettings_BadLeniency(t *testing.T) {
	_, err := resolveSettings(&cliFlags{leniency: "SOMEWHAT"})
	assert.Error(t, err)
}
