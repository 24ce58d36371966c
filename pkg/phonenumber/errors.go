// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phonenumber

import "fmt"

// ErrorKind is the closed set of parse failure causes. Parse failures are
// always one of these; validation and classification never return errors.
type ErrorKind int

const (
	// NotANumber: empty, unviable, or garbage input, including an invalid
	// RFC3966 phone-context.
	NotANumber ErrorKind = iota

	// InvalidCountryCode: no known calling code could be extracted and no
	// usable default region was supplied.
	InvalidCountryCode

	// TooShortAfterIDD: an international dialing prefix was recognized but
	// too few digits follow it.
	TooShortAfterIDD

	// TooShortNSN: the national significant number is shorter than any
	// number can be.
	TooShortNSN

	// TooLong: the input is longer than any viable phone number.
	TooLong
)

func (k ErrorKind) String() string {
	switch k {
	case NotANumber:
		return "NOT_A_NUMBER"
	case InvalidCountryCode:
		return "INVALID_COUNTRY_CODE"
	case TooShortAfterIDD:
		return "TOO_SHORT_AFTER_IDD"
	case TooShortNSN:
		return "TOO_SHORT_NSN"
	case TooLong:
		return "TOO_LONG"
	}
	return "UNKNOWN"
}

// ParseError reports why an input could not be parsed as a phone number.
type ParseError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func parseError(kind ErrorKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsParseError reports whether err is a ParseError of the given kind.
func IsParseError(err error, kind ErrorKind) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Kind == kind
}
