/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package eddsa2022 implements the eddsa-rdfc-2022 data integrity cryptosuite:
// https://www.w3.org/TR/vc-di-eddsa/#eddsa-rdfc-2022
package eddsa2022

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/trustbloc/kms-go/doc/jose/jwk"
	wrapperapi "github.com/trustbloc/kms-go/wrapper/api"

	ed25519verifier "github.com/trustbloc/dataintegrity-go/crypto-ext/verifiers/ed25519"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/suite"
	"github.com/trustbloc/dataintegrity-go/rdfc"
)

const (
	// SuiteType "eddsa-rdfc-2022" is the data integrity cryptosuite identifier for
	// eddsa signatures with RDF canonicalization.
	SuiteType = "eddsa-rdfc-2022"
	// LegacySuiteType is the cryptosuite identifier used by early drafts.
	LegacySuiteType = "eddsa-2022"
	// Algorithm is the signature algorithm required by the suite.
	Algorithm = ed25519verifier.Algorithm
)

type options struct {
	legacy         bool
	canonicalizer  suite.Canonicalizer
	createVerifier suite.VerifierFactory
}

// Opt configures the cryptosuite.
type Opt func(opts *options)

// WithLegacySuiteType makes the suite use "eddsa-2022" as cryptosuite name.
func WithLegacySuiteType() Opt {
	return func(opts *options) {
		opts.legacy = true
	}
}

// WithCanonicalizer replaces the default RDF canonicalizer.
func WithCanonicalizer(c suite.Canonicalizer) Opt {
	return func(opts *options) {
		opts.canonicalizer = c
	}
}

// WithVerifierFactory replaces the default Ed25519 verifier factory.
func WithVerifierFactory(f suite.VerifierFactory) Opt {
	return func(opts *options) {
		opts.createVerifier = f
	}
}

// New returns the eddsa-rdfc-2022 cryptosuite.
func New(opts ...Opt) *suite.Cryptosuite {
	o := &options{
		canonicalizer:  rdfc.New(),
		createVerifier: ed25519verifier.NewFromVerificationMethod,
	}

	for _, opt := range opts {
		opt(o)
	}

	name := SuiteType
	if o.legacy {
		name = LegacySuiteType
	}

	return &suite.Cryptosuite{
		Name:              name,
		RequiredAlgorithm: []string{Algorithm},
		Canonicalizer:     o.canonicalizer,
		CreateVerifier:    o.createVerifier,
	}
}

type keySigner ed25519.PrivateKey

func (s keySigner) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(ed25519.PrivateKey(s), msg), nil
}

// NewSigner returns a signer for an Ed25519 private key. id is the verification
// method of the matching public key.
func NewSigner(id string, key ed25519.PrivateKey) (suite.Signer, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid Ed25519 private key size %d", len(key))
	}

	return suite.NewSigner(id, Algorithm, keySigner(key)), nil
}

// NewKMSSigner returns a signer which signs with the kms-go key of pub.
//
// The kms-go crypto wrapper must hold the private key matching pub.
func NewKMSSigner(id string, kmsCrypto wrapperapi.KMSCryptoSigner, pub *jwk.JWK) (suite.Signer, error) {
	if pub == nil || pub.Crv != "Ed25519" {
		return nil, errors.New("kms signer needs an Ed25519 JWK")
	}

	fks, err := kmsCrypto.FixedKeySigner(pub)
	if err != nil {
		return nil, fmt.Errorf("create kms signer: %w", err)
	}

	return suite.NewSigner(id, Algorithm, fks), nil
}
