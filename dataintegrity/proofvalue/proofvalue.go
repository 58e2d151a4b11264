/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package proofvalue encodes and decodes data integrity proof values as multibase strings.
package proofvalue

import (
	"errors"
	"fmt"

	"github.com/multiformats/go-multibase"
)

// Encoding is a multibase header supported in proof values.
type Encoding = multibase.Encoding

const (
	// Base58BTC is selected by the "z" header. It is used for all proofs created by default.
	Base58BTC Encoding = multibase.Base58BTC
	// Base64URL is selected by the "u" header: unpadded URL-safe base64.
	Base64URL Encoding = multibase.Base64url
)

var (
	// ErrInvalidProofValue is returned when the proof value is missing or isn't a string.
	ErrInvalidProofValue = errors.New(`the proof does not include a valid "proofValue" property`)
	// ErrUnsupportedEncoding is returned for a proof value with an unknown multibase header.
	ErrUnsupportedEncoding = errors.New("unsupported multibase encoding: only base58btc or base64url is supported")
)

// Encode returns the multibase encoding of b with the given header.
func Encode(enc Encoding, b []byte) (string, error) {
	if enc != Base58BTC && enc != Base64URL {
		return "", ErrUnsupportedEncoding
	}

	s, err := multibase.Encode(enc, b)
	if err != nil {
		return "", fmt.Errorf("encode proof value: %w", err)
	}

	return s, nil
}

// Decode decodes a proof value. It accepts the raw JSON value of proof.proofValue,
// so that a missing or non-string value is reported before the header is inspected.
func Decode(value interface{}) ([]byte, error) {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil, ErrInvalidProofValue
	}

	switch Encoding(s[0]) {
	case Base58BTC, Base64URL:
	default:
		return nil, ErrUnsupportedEncoding
	}

	// base58 rejects an empty body, which is what Encode produces for empty input.
	if len(s) == 1 {
		return []byte{}, nil
	}

	_, b, err := multibase.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decode proof value: %w", err)
	}

	return b, nil
}
