/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dataintegrity

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/piprate/json-gold/ld"
	"github.com/tidwall/sjson"

	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/suite"
)

// ErrProofGeneration is returned when Signer.AddProof() fails to generate a proof.
var ErrProofGeneration = errors.New("data integrity proof generation error")

// SignerOptions contains initialization parameters for Signer.
type SignerOptions struct {
	// DocumentLoader loads JSON-LD contexts.
	DocumentLoader ld.DocumentLoader
	// RequireSuiteContext makes AddProof fail for a document without the suite context,
	// instead of adding the context to the document.
	RequireSuiteContext bool
}

// Signer implements the W3C Data Integrity Add Proof algorithm with one proof
// suite.
type Signer struct {
	suite               suite.ProofSuite
	loader              ld.DocumentLoader
	requireSuiteContext bool
}

// NewSigner initializes a Signer which adds proofs created with proofSuite.
func NewSigner(proofSuite suite.ProofSuite, opts *SignerOptions) (*Signer, error) {
	if proofSuite == nil {
		return nil, ErrUnsupportedSuite
	}

	if opts == nil {
		opts = &SignerOptions{}
	}

	return &Signer{
		suite:               proofSuite,
		loader:              opts.DocumentLoader,
		requireSuiteContext: opts.RequireSuiteContext,
	}, nil
}

// AddProof returns the provided JSON doc with a new proof for the given purpose.
//
// A document without proof gets a single proof object. Otherwise the new proof joins
// the existing ones in a "proof" list.
func (s *Signer) AddProof(doc []byte, purpose suite.Purpose) ([]byte, error) { // nolint:funlen
	unsecured, proofs, err := parseDocument(doc)
	if err != nil {
		return nil, err
	}

	ctxBefore := unsecured[models.FieldContext]

	err = s.suite.EnsureSuiteContext(unsecured, !s.requireSuiteContext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProofGeneration, err)
	}

	proof, err := s.suite.CreateProof(&suite.ProofRequest{
		Document:       unsecured,
		Purpose:        purpose,
		ProofSet:       proofs,
		DocumentLoader: s.loader,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProofGeneration, err)
	}

	if proof.Type() == "" || proof.ProofPurpose() == "" || proof.VerificationMethodID() == "" {
		return nil, fmt.Errorf("%w: proof misses a required field", ErrProofGeneration)
	}

	out := doc

	if !reflect.DeepEqual(ctxBefore, unsecured[models.FieldContext]) {
		out, err = setJSON(out, models.FieldContext, unsecured[models.FieldContext])
		if err != nil {
			return nil, err
		}
	}

	var proofValue interface{} = proof
	if len(proofs) > 0 {
		proofValue = append(proofs, proof)
	}

	return setJSON(out, proofPath, proofValue)
}

func setJSON(doc []byte, path string, value interface{}) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProofGeneration, err)
	}

	out, err := sjson.SetRawBytes(doc, path, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProofGeneration, err)
	}

	return out, nil
}
