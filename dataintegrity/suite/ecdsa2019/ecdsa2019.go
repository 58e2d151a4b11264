/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ecdsa2019 implements the ecdsa-rdfc-2019 data integrity cryptosuite:
// https://www.w3.org/TR/vc-di-ecdsa/#ecdsa-rdfc-2019
package ecdsa2019

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	_ "crypto/sha256" // register SHA-256
	_ "crypto/sha512" // register SHA-384
	"errors"
	"fmt"

	"github.com/trustbloc/kms-go/doc/jose/jwk"
	"github.com/trustbloc/kms-go/spi/kms"
	wrapperapi "github.com/trustbloc/kms-go/wrapper/api"

	"github.com/trustbloc/dataintegrity-go/crypto-ext/pubkey"
	ecdsaverifier "github.com/trustbloc/dataintegrity-go/crypto-ext/verifiers/ecdsa"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/suite"
	"github.com/trustbloc/dataintegrity-go/rdfc"
)

const (
	// SuiteType "ecdsa-rdfc-2019" is the data integrity cryptosuite identifier for
	// ECDSA signatures with RDF canonicalization.
	SuiteType = "ecdsa-rdfc-2019"
	// LegacySuiteType is the cryptosuite identifier used by early drafts.
	LegacySuiteType = "ecdsa-2019"

	// AlgorithmP256 is the algorithm of P-256 keys.
	AlgorithmP256 = "P-256"
	// AlgorithmP384 is the algorithm of P-384 keys.
	AlgorithmP384 = "P-384"
)

// A Verifier is able to verify messages.
type Verifier interface {
	// Verify will verify a signature for the given msg with the public key.
	// returns:
	// 		error in case of errors or nil if signature verification was successful
	Verify(signature, msg []byte, pubKey *pubkey.PublicKey) error
}

type options struct {
	legacy        bool
	canonicalizer suite.Canonicalizer
	p256Verifier  Verifier
	p384Verifier  Verifier
}

// Opt configures the cryptosuite.
type Opt func(opts *options)

// WithLegacySuiteType makes the suite use "ecdsa-2019" as cryptosuite name.
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

// WithP256Verifier replaces the default P-256 signature verifier.
func WithP256Verifier(v Verifier) Opt {
	return func(opts *options) {
		opts.p256Verifier = v
	}
}

// WithP384Verifier replaces the default P-384 signature verifier.
func WithP384Verifier(v Verifier) Opt {
	return func(opts *options) {
		opts.p384Verifier = v
	}
}

// New returns the ecdsa-rdfc-2019 cryptosuite. It accepts P-256 and P-384 keys.
func New(opts ...Opt) *suite.Cryptosuite {
	o := &options{
		canonicalizer: rdfc.New(),
		p256Verifier:  ecdsaverifier.NewES256(),
		p384Verifier:  ecdsaverifier.NewES384(),
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
		RequiredAlgorithm: []string{AlgorithmP256, AlgorithmP384},
		Canonicalizer:     o.canonicalizer,
		CreateVerifier: func(vm *models.VerificationMethod) (suite.Verifier, error) {
			return newVerifier(vm, o)
		},
	}
}

type verifier struct {
	algorithm string
	key       *pubkey.PublicKey
	v         Verifier
}

func newVerifier(vm *models.VerificationMethod, o *options) (*verifier, error) {
	key, err := pubkey.FromVerificationMethod(vm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", suite.ErrUnsupportedVerificationMethod, err)
	}

	switch key.Type {
	case kms.ECDSAP256TypeIEEEP1363:
		return &verifier{algorithm: AlgorithmP256, key: key, v: o.p256Verifier}, nil
	case kms.ECDSAP384TypeIEEEP1363:
		return &verifier{algorithm: AlgorithmP384, key: key, v: o.p384Verifier}, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a P-256 or P-384 key", suite.ErrUnsupportedVerificationMethod, vm.ID)
	}
}

func (v *verifier) Algorithm() string {
	return v.algorithm
}

func (v *verifier) Verify(data, signature []byte) (bool, error) {
	err := v.v.Verify(signature, data, v.key)
	if errors.Is(err, ecdsaverifier.ErrInvalidSignature) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

type keySigner struct {
	key     *ecdsa.PrivateKey
	hash    crypto.Hash
	keySize int
}

// Sign returns an IEEE P1363 signature over the message digest.
func (s *keySigner) Sign(msg []byte) ([]byte, error) {
	h := s.hash.New()
	h.Write(msg)

	r, sig, err := ecdsa.Sign(rand.Reader, s.key, h.Sum(nil))
	if err != nil {
		return nil, err
	}

	out := make([]byte, 2*s.keySize)
	r.FillBytes(out[:s.keySize])
	sig.FillBytes(out[s.keySize:])

	return out, nil
}

// NewSigner returns a signer for a P-256 or P-384 private key. id is the verification
// method of the matching public key.
func NewSigner(id string, key *ecdsa.PrivateKey) (suite.Signer, error) {
	if key == nil {
		return nil, errors.New("ecdsa private key is required")
	}

	switch key.Curve {
	case elliptic.P256():
		return suite.NewSigner(id, AlgorithmP256, &keySigner{key: key, hash: crypto.SHA256, keySize: 32}), nil
	case elliptic.P384():
		return suite.NewSigner(id, AlgorithmP384, &keySigner{key: key, hash: crypto.SHA384, keySize: 48}), nil
	default:
		return nil, fmt.Errorf("unsupported ECDSA curve %s", key.Curve.Params().Name)
	}
}

// NewKMSSigner returns a signer which signs with the kms-go key of pub. The key must be
// created with an IEEE P1363 key type.
func NewKMSSigner(id string, kmsCrypto wrapperapi.KMSCryptoSigner, pub *jwk.JWK) (suite.Signer, error) {
	if pub == nil {
		return nil, errors.New("kms signer needs a public key")
	}

	algorithm := pub.Crv
	if algorithm != AlgorithmP256 && algorithm != AlgorithmP384 {
		return nil, fmt.Errorf("unsupported ECDSA curve %q", pub.Crv)
	}

	fks, err := kmsCrypto.FixedKeySigner(pub)
	if err != nil {
		return nil, fmt.Errorf("create kms signer: %w", err)
	}

	return suite.NewSigner(id, algorithm, fks), nil
}
