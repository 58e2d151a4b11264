/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ed25519 verifies Ed25519 signatures for a data integrity verification method.
package ed25519

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/trustbloc/kms-go/spi/kms"

	"github.com/trustbloc/dataintegrity-go/crypto-ext/pubkey"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/suite"
)

// Algorithm is the algorithm identifier reported by Verifier.
const Algorithm = "Ed25519"

// ErrInvalidKey is returned for a public key that is not a usable Ed25519 key.
var ErrInvalidKey = errors.New("ed25519: invalid public key")

// Verifier checks Ed25519 signatures made with one public key.
type Verifier struct {
	key ed25519.PublicKey
}

var _ suite.Verifier = (*Verifier)(nil)

// New returns a Verifier for an Ed25519 key given as raw bytes or as an OKP JWK.
func New(pubKey *pubkey.PublicKey) (*Verifier, error) {
	if pubKey == nil {
		return nil, fmt.Errorf("%w: no public key", ErrInvalidKey)
	}

	if pubKey.Type != kms.ED25519Type {
		return nil, fmt.Errorf("%w: unsupported key type %s", ErrInvalidKey, pubKey.Type)
	}

	var value []byte

	switch {
	case pubKey.JWK != nil:
		key, ok := pubKey.JWK.Public().Key.(ed25519.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: JWK does not hold an Ed25519 public key", ErrInvalidKey)
		}

		value = key
	case pubKey.BytesKey != nil:
		value = pubKey.BytesKey.Bytes
	}

	// ed25519.Verify panics on a key of the wrong size.
	if len(value) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: key size %d", ErrInvalidKey, len(value))
	}

	return &Verifier{key: append(ed25519.PublicKey{}, value...)}, nil
}

// NewFromVerificationMethod is a suite.VerifierFactory for verification methods with
// an Ed25519 "publicKeyMultibase" or "publicKeyJwk".
func NewFromVerificationMethod(vm *models.VerificationMethod) (suite.Verifier, error) {
	key, err := pubkey.FromVerificationMethod(vm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", suite.ErrUnsupportedVerificationMethod, err)
	}

	v, err := New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", suite.ErrUnsupportedVerificationMethod, vm.ID, err)
	}

	return v, nil
}

// Algorithm returns "Ed25519".
func (v *Verifier) Algorithm() string {
	return Algorithm
}

// Verify reports whether signature is a valid signature of data. A signature of the
// wrong size is a mismatch, not an error.
func (v *Verifier) Verify(data, signature []byte) (bool, error) {
	return ed25519.Verify(v.key, data, signature), nil
}
