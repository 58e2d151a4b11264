/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package time

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	utiltime "github.com/trustbloc/did-go/doc/util/time"
)

// W3CFormat is the W3C date-time format written to proofs (eg: 2011-03-09T21:55:41Z).
const W3CFormat = "2006-01-02T15:04:05Z"

// ErrInvalidDateTime is returned for a string which is not an XML Schema date-time.
var ErrInvalidDateTime = errors.New("invalid date-time")

// Restricted XML Schema 1.1 dateTime: fraction and zone are optional.
var dateTimeRegex = regexp.MustCompile(
	`^(\d{4})-(0[1-9]|1[0-2])-([0-2][0-9]|3[0-1])[Tt]([0-1][0-9]|2[0-3]):([0-5][0-9]):([0-5][0-9]|60)` +
		`(\.[0-9]+)?([Zz]|[+-]([0-1][0-9]|2[0-3]):([0-5][0-9]))?$`)

// FormatW3C formats t in UTC, without sub-second fraction and with a trailing "Z".
func FormatW3C(t time.Time) string {
	return t.UTC().Format(W3CFormat)
}

// IsDateTime reports whether s matches the restricted date-time grammar.
func IsDateTime(s string) bool {
	return dateTimeRegex.MatchString(s)
}

// ParseDateTime parses a date-time string. A string without zone offset is read as UTC.
func ParseDateTime(s string) (time.Time, error) {
	if !IsDateTime(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
	}

	tw, err := utiltime.ParseTimeWrapper(normalize(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidDateTime, s, err)
	}

	return tw.Time, nil
}

// RFC 3339 parsing in Go wants upper case separators.
func normalize(s string) string {
	b := []byte(s)

	for i, c := range b {
		switch c {
		case 't':
			b[i] = 'T'
		case 'z':
			b[i] = 'Z'
		}
	}

	return string(b)
}
