// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var embeddedRules []byte

// yamlDesc mirrors TypeDesc in the rule file.
type yamlDesc struct {
	Pattern          string `yaml:"pattern"`
	Lengths          []int  `yaml:"lengths"`
	LocalOnlyLengths []int  `yaml:"local_only_lengths"`
	Example          string `yaml:"example"`
}

// yamlFormat mirrors FormatRule in the rule file.
type yamlFormat struct {
	Pattern            string   `yaml:"pattern"`
	Format             string   `yaml:"format"`
	IntlFormat         string   `yaml:"intl_format"` // "NA" drops the rule from intl output
	LeadingDigits      []string `yaml:"leading_digits"`
	NationalPrefixRule string   `yaml:"national_prefix_formatting_rule"`
	NationalPrefixOpt  bool     `yaml:"national_prefix_optional_when_formatting"`
	CarrierCodeRule    string   `yaml:"carrier_code_formatting_rule"`
}

// yamlRegion mirrors RegionRuleset in the rule file.
type yamlRegion struct {
	ID                  string        `yaml:"id"`
	CountryCode         int           `yaml:"country_code"`
	InternationalPrefix string        `yaml:"international_prefix"`
	PreferredIntlPrefix string        `yaml:"preferred_international_prefix"`
	NationalPrefix      string        `yaml:"national_prefix"`
	NationalPrefixParse string        `yaml:"national_prefix_for_parsing"`
	NationalTransform   string        `yaml:"national_prefix_transform_rule"`
	PreferredExtnPrefix string        `yaml:"preferred_extn_prefix"`
	LeadingDigits       string        `yaml:"leading_digits"`
	MainCountryForCode  bool          `yaml:"main_country_for_code"`
	SameMobileFixed     bool          `yaml:"same_mobile_and_fixed_line_pattern"`
	GeneralDesc         *yamlDesc     `yaml:"general"`
	FixedLine           *yamlDesc     `yaml:"fixed_line"`
	Mobile              *yamlDesc     `yaml:"mobile"`
	TollFree            *yamlDesc     `yaml:"toll_free"`
	PremiumRate         *yamlDesc     `yaml:"premium_rate"`
	SharedCost          *yamlDesc     `yaml:"shared_cost"`
	PersonalNumber      *yamlDesc     `yaml:"personal_number"`
	VoIP                *yamlDesc     `yaml:"voip"`
	Pager               *yamlDesc     `yaml:"pager"`
	UAN                 *yamlDesc     `yaml:"uan"`
	Voicemail           *yamlDesc     `yaml:"voicemail"`
	NoIntlDialling      *yamlDesc     `yaml:"no_international_dialling"`
	Formats             []*yamlFormat `yaml:"formats"`
}

type yamlRules struct {
	Regions []*yamlRegion `yaml:"regions"`
}

// NewRepository decodes the embedded rule table.
func NewRepository() (*Repository, error) {
	return Load(embeddedRules)
}

// MustNewRepository is NewRepository for callers that treat a bad embedded
// table as a build defect.
func MustNewRepository() *Repository {
	repo, err := NewRepository()
	if err != nil {
		panic(fmt.Sprintf("metadata: embedded rule table invalid: %v", err))
	}
	return repo
}

// Load decodes and validates a YAML rule table. Every pattern string is
// compiled here so malformed rule data fails at load time, not mid-parse.
func Load(data []byte) (*Repository, error) {
	var raw yamlRules
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding rule table: %w", err)
	}
	if len(raw.Regions) == 0 {
		return nil, fmt.Errorf("rule table defines no regions")
	}

	repo := &Repository{
		regions:       make(map[string]*RegionRuleset),
		byCallingCode: make(map[int][]*RegionRuleset),
		nonGeo:        make(map[int]*RegionRuleset),
		nanpa:         make(map[string]bool),
	}

	for _, yr := range raw.Regions {
		rs, err := buildRuleset(yr)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", yr.ID, err)
		}
		if rs.ID == NonGeoRegionID {
			if _, dup := repo.nonGeo[rs.CountryCode]; dup {
				return nil, fmt.Errorf("duplicate non-geographic calling code %d", rs.CountryCode)
			}
			repo.nonGeo[rs.CountryCode] = rs
			continue
		}
		if _, dup := repo.regions[rs.ID]; dup {
			return nil, fmt.Errorf("duplicate region %s", rs.ID)
		}
		repo.regions[rs.ID] = rs
		repo.byCallingCode[rs.CountryCode] = append(repo.byCallingCode[rs.CountryCode], rs)
	}

	// Order shared-code groups with the main region first and verify there is
	// exactly one main region per shared code.
	for cc, sets := range repo.byCallingCode {
		mains := 0
		for _, rs := range sets {
			if rs.MainCountryForCode {
				mains++
			}
		}
		if len(sets) > 1 && mains != 1 {
			return nil, fmt.Errorf("calling code %d: %d regions marked main, want exactly 1", cc, mains)
		}
		sort.SliceStable(sets, func(i, j int) bool {
			return sets[i].MainCountryForCode && !sets[j].MainCountryForCode
		})
	}

	for _, rs := range repo.byCallingCode[NANPACallingCode] {
		repo.nanpa[rs.ID] = true
	}

	return repo, nil
}

func buildRuleset(yr *yamlRegion) (*RegionRuleset, error) {
	if yr.ID == "" {
		return nil, fmt.Errorf("missing region id")
	}
	if yr.CountryCode <= 0 {
		return nil, fmt.Errorf("missing country code")
	}
	if yr.GeneralDesc == nil {
		return nil, fmt.Errorf("missing general description")
	}

	rs := &RegionRuleset{
		ID:                            yr.ID,
		CountryCode:                   yr.CountryCode,
		InternationalPrefix:           yr.InternationalPrefix,
		PreferredInternationalPrefix:  yr.PreferredIntlPrefix,
		NationalPrefix:                yr.NationalPrefix,
		NationalPrefixForParsing:      yr.NationalPrefixParse,
		NationalPrefixTransformRule:   yr.NationalTransform,
		PreferredExtnPrefix:           yr.PreferredExtnPrefix,
		LeadingDigits:                 yr.LeadingDigits,
		MainCountryForCode:            yr.MainCountryForCode,
		SameMobileAndFixedLinePattern: yr.SameMobileFixed,
	}

	descs := []struct {
		name string
		src  *yamlDesc
		dst  **TypeDesc
	}{
		{"general", yr.GeneralDesc, &rs.GeneralDesc},
		{"fixed_line", yr.FixedLine, &rs.FixedLine},
		{"mobile", yr.Mobile, &rs.Mobile},
		{"toll_free", yr.TollFree, &rs.TollFree},
		{"premium_rate", yr.PremiumRate, &rs.PremiumRate},
		{"shared_cost", yr.SharedCost, &rs.SharedCost},
		{"personal_number", yr.PersonalNumber, &rs.PersonalNumber},
		{"voip", yr.VoIP, &rs.VoIP},
		{"pager", yr.Pager, &rs.Pager},
		{"uan", yr.UAN, &rs.UAN},
		{"voicemail", yr.Voicemail, &rs.Voicemail},
		{"no_international_dialling", yr.NoIntlDialling, &rs.NoInternationalDialling},
	}
	for _, d := range descs {
		if d.src == nil {
			continue
		}
		td, err := buildDesc(d.src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = td
	}

	hasIntl := false
	for i, yf := range yr.Formats {
		fr := &FormatRule{
			Pattern:                              yf.Pattern,
			Format:                               yf.Format,
			LeadingDigits:                        yf.LeadingDigits,
			NationalPrefixFormattingRule:         yf.NationalPrefixRule,
			NationalPrefixOptionalWhenFormatting: yf.NationalPrefixOpt,
			CarrierCodeFormattingRule:            yf.CarrierCodeRule,
		}
		if err := checkPattern(fr.Pattern); err != nil {
			return nil, fmt.Errorf("format %d: %w", i, err)
		}
		for _, ld := range fr.LeadingDigits {
			if err := checkPattern(ld); err != nil {
				return nil, fmt.Errorf("format %d leading digits: %w", i, err)
			}
		}
		rs.Formats = append(rs.Formats, fr)
		if yf.IntlFormat != "" {
			hasIntl = true
		}
	}

	// When any rule renders differently internationally, build a parallel
	// intl list in the same order; rules marked NA are domestic-only. When no
	// rule diverges the intl list stays empty and formatting falls back to
	// the national list.
	if hasIntl {
		for i, yf := range yr.Formats {
			if yf.IntlFormat == "NA" {
				continue
			}
			intl := *rs.Formats[i]
			if yf.IntlFormat != "" {
				intl.Format = yf.IntlFormat
			}
			intl.NationalPrefixFormattingRule = ""
			rs.IntlFormats = append(rs.IntlFormats, &intl)
		}
	}

	for _, p := range []string{rs.InternationalPrefix, rs.NationalPrefixForParsingOrDefault(), rs.LeadingDigits} {
		if err := checkPattern(p); err != nil {
			return nil, err
		}
	}

	return rs, nil
}

func buildDesc(yd *yamlDesc) (*TypeDesc, error) {
	if err := checkPattern(yd.Pattern); err != nil {
		return nil, err
	}
	td := &TypeDesc{
		Pattern:          yd.Pattern,
		PossibleLengths:  append([]int(nil), yd.Lengths...),
		LocalOnlyLengths: append([]int(nil), yd.LocalOnlyLengths...),
		ExampleNumber:    yd.Example,
	}
	sort.Ints(td.PossibleLengths)
	for _, l := range td.LocalOnlyLengths {
		if td.HasLength(l) {
			return nil, fmt.Errorf("length %d is both possible and local-only", l)
		}
	}
	return td, nil
}

func checkPattern(p string) error {
	if p == "" {
		return nil
	}
	if _, err := regexp.Compile(p); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", p, err)
	}
	return nil
}
