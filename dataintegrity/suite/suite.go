/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package suite

import (
	"errors"
	"time"

	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
)

// ErrUnsupportedVerificationMethod is returned by a VerifierFactory when the given
// verification method can't be used with the cryptographic suite.
var ErrUnsupportedVerificationMethod = errors.New("verification method is not supported by the cryptosuite")

// CanonizeOptions are passed to a Canonicalizer.
type CanonizeOptions struct {
	// DocumentLoader resolves JSON-LD contexts.
	DocumentLoader ld.DocumentLoader
	// SkipExpansion asks the canonicalizer to skip JSON-LD expansion, if it supports that.
	SkipExpansion bool
}

// VerifierFactory creates a Verifier for the given verification method.
type VerifierFactory func(vm *models.VerificationMethod) (Verifier, error)

// RawSigner is a signature primitive, e.g. a kms-go fixed key signer.
type RawSigner interface {
	Sign(msg []byte) ([]byte, error)
}

type signer struct {
	id        string
	algorithm string
	raw       RawSigner
}

// NewSigner tags a RawSigner with a verification method id and algorithm.
func NewSigner(id, algorithm string, raw RawSigner) Signer {
	return &signer{id: id, algorithm: algorithm, raw: raw}
}

func (s *signer) ID() string {
	return s.id
}

func (s *signer) Algorithm() string {
	return s.algorithm
}

func (s *signer) Sign(data []byte) ([]byte, error) {
	return s.raw.Sign(data)
}

// ProofRequest holds the inputs of proof creation and derivation.
type ProofRequest struct {
	Document       models.Document
	Purpose        Purpose
	ProofSet       []models.Proof
	DocumentLoader ld.DocumentLoader
}

// VerifyDataRequest holds the inputs of verify data creation.
type VerifyDataRequest struct {
	Document       models.Document
	Proof          models.Proof
	ProofSet       []models.Proof
	DocumentLoader ld.DocumentLoader
	// VerificationMethod is set only when verify data is created for verification.
	VerificationMethod *models.VerificationMethod
}

// ProofValueRequest holds the inputs of proof value creation.
type ProofValueRequest struct {
	VerifyData     []byte
	Document       models.Document
	Proof          models.Proof
	ProofSet       []models.Proof
	DocumentLoader ld.DocumentLoader
}

// VerifyProofRequest holds the inputs of proof verification.
type VerifyProofRequest struct {
	Proof          models.Proof
	ProofSet       []models.Proof
	Document       models.Document
	DocumentLoader ld.DocumentLoader
	// Now is the verification time. Zero value means the engine clock.
	Now time.Time
}

// ProofSuite is the capability contract of a data integrity proof engine, as used by
// proof set signers and verifiers.
type ProofSuite interface {
	Type() string
	CryptosuiteName() string
	ContextURL() string
	EnsureSuiteContext(doc models.Document, addSuiteContext bool) error
	CreateProof(req *ProofRequest) (models.Proof, error)
	Derive(req *ProofRequest) (models.Document, error)
	VerifyProof(req *VerifyProofRequest) *models.VerifyResult
	MatchProof(proof models.Proof) bool
}

// Engine is what cryptosuite hooks receive, so they can reuse default behavior.
type Engine interface {
	ProofSuite
	CreateVerifyData(req *VerifyDataRequest) ([]byte, error)
	Sign(verifyData []byte, proof models.Proof) (models.Proof, error)
}

// CreateVerifyDataFunc replaces default verify data creation.
type CreateVerifyDataFunc func(req *VerifyDataRequest, engine Engine) ([]byte, error)

// CreateProofValueFunc replaces the default sign step and returns the final proofValue.
type CreateProofValueFunc func(req *ProofValueRequest, engine Engine) (string, error)

// DeriveFunc creates a derived (e.g. selectively disclosed) document with its proof.
type DeriveFunc func(req *ProofRequest, engine Engine) (models.Document, error)

// Cryptosuite bundles the capabilities a data integrity cryptographic suite provides.
type Cryptosuite struct {
	// Name is recorded verbatim in proof.cryptosuite.
	Name string
	// RequiredAlgorithm lists the accepted signature algorithms; most suites have one.
	RequiredAlgorithm []string
	Canonicalizer     Canonicalizer
	CreateVerifier    VerifierFactory

	// Optional hooks.
	CreateVerifyData CreateVerifyDataFunc
	CreateProofValue CreateProofValueFunc
	Derive           DeriveFunc
}

// PurposeOptions are passed to Purpose.Update.
type PurposeOptions struct {
	Document       models.Document
	Suite          ProofSuite
	DocumentLoader ld.DocumentLoader
}

// ValidateOptions are passed to Purpose.Validate.
type ValidateOptions struct {
	Document           models.Document
	VerificationMethod *models.VerificationMethod
	Now                time.Time
}

