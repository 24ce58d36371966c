// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phonenumber

import "telescan/pkg/metadata"

// ServiceType classifies what kind of service a number belongs to.
type ServiceType int

const (
	Unknown ServiceType = iota
	FixedLine
	Mobile
	// FixedLineOrMobile is reported where a region's numbering plan does not
	// distinguish the two, or where a number matches both patterns.
	FixedLineOrMobile
	TollFree
	PremiumRate
	SharedCost
	VoIP
	PersonalNumber
	Pager
	UAN
	Voicemail
)

func (t ServiceType) String() string {
	switch t {
	case FixedLine:
		return "FIXED_LINE"
	case Mobile:
		return "MOBILE"
	case FixedLineOrMobile:
		return "FIXED_LINE_OR_MOBILE"
	case TollFree:
		return "TOLL_FREE"
	case PremiumRate:
		return "PREMIUM_RATE"
	case SharedCost:
		return "SHARED_COST"
	case VoIP:
		return "VOIP"
	case PersonalNumber:
		return "PERSONAL_NUMBER"
	case Pager:
		return "PAGER"
	case UAN:
		return "UAN"
	case Voicemail:
		return "VOICEMAIL"
	}
	return "UNKNOWN"
}

// descForType maps a service type to its rule-table descriptor. The set of
// types is closed, so a plain switch stands in for polymorphic dispatch.
func descForType(md *metadata.RegionRuleset, t ServiceType) *metadata.TypeDesc {
	switch t {
	case FixedLine, FixedLineOrMobile:
		return md.FixedLine
	case Mobile:
		return md.Mobile
	case TollFree:
		return md.TollFree
	case PremiumRate:
		return md.PremiumRate
	case SharedCost:
		return md.SharedCost
	case VoIP:
		return md.VoIP
	case PersonalNumber:
		return md.PersonalNumber
	case Pager:
		return md.Pager
	case UAN:
		return md.UAN
	case Voicemail:
		return md.Voicemail
	}
	return md.GeneralDesc
}

// classificationOrder is the fixed priority in which types are tested. The
// narrow, special-purpose ranges come first so they are not swallowed by the
// broad fixed-line patterns.
var classificationOrder = []ServiceType{
	PremiumRate, TollFree, SharedCost, VoIP, PersonalNumber, Pager, UAN, Voicemail,
}

// NumberType classifies the number under the rules of the region its
// calling code selects.
func (u *Util) NumberType(n *PhoneNumber) ServiceType {
	region := u.RegionCodeForNumber(n)
	md := u.metadataForRegionOrCallingCode(n.CountryCode, region)
	if md == nil {
		return Unknown
	}
	return u.numberTypeHelper(n.nationalSignificantNumber(), md)
}

func (u *Util) numberTypeHelper(nsn string, md *metadata.RegionRuleset) ServiceType {
	if md.GeneralDesc.Pattern == "" {
		// Region without structural rules: degrade to the ITU length range.
		if len(nsn) >= minLengthNSN && len(nsn) <= maxLengthNSN {
			return FixedLineOrMobile
		}
		return Unknown
	}
	if !u.isNumberMatchingDesc(nsn, md.GeneralDesc) {
		return Unknown
	}

	for _, t := range classificationOrder {
		if u.isNumberMatchingDesc(nsn, descForType(md, t)) {
			return t
		}
	}

	if u.isNumberMatchingDesc(nsn, md.FixedLine) {
		if md.SameMobileAndFixedLinePattern {
			return FixedLineOrMobile
		}
		if u.isNumberMatchingDesc(nsn, md.Mobile) {
			return FixedLineOrMobile
		}
		return FixedLine
	}
	if u.isNumberMatchingDesc(nsn, md.Mobile) {
		return Mobile
	}
	return Unknown
}

// isNumberMatchingDesc requires both an acceptable length (possible or
// local-only) and a full pattern match.
func (u *Util) isNumberMatchingDesc(nsn string, desc *metadata.TypeDesc) bool {
	if !desc.Exists() || desc.Pattern == "" {
		return false
	}
	if len(desc.PossibleLengths) > 0 &&
		!desc.HasLength(len(nsn)) && !desc.HasLocalOnlyLength(len(nsn)) {
		return false
	}
	return u.cache.GetFullMatch(desc.Pattern).MatchString(nsn)
}
