/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dataintegrity

import (
	"errors"
	"fmt"
	"time"

	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/suite"
	utiljson "github.com/trustbloc/dataintegrity-go/util/json"
)

var logger = log.New("dataintegrity")

var (
	// ErrMissingProof is returned when Verifier.VerifyProof() is given a document
	// without a data integrity proof field.
	ErrMissingProof = errors.New("missing data integrity proof")
	// ErrNoMatchingProofs is returned when no proof of the document was created by one of
	// the Verifier's suites for the expected purpose.
	ErrNoMatchingProofs = errors.New("no matching proofs found in the given document")
)

// ProofResult is the outcome of verifying one proof.
type ProofResult struct {
	Proof              models.Proof
	Verified           bool
	VerificationMethod *models.VerificationMethod
	Error              error
}

// Result is the outcome of verifying the proofs of a document.
type Result struct {
	// Verified is true when at least one matching proof is valid.
	Verified bool
	Results  []*ProofResult
	// Error joins the errors of all failed proofs, when none of them is valid.
	Error error
}

// Verifier implements the W3C Data Integrity Verify Proof algorithm, using a set
// of proof suites.
type Verifier struct {
	suites []suite.ProofSuite
	loader ld.DocumentLoader
	clock  func() time.Time
}

// NewVerifier initializes a Verifier that supports using the provided
// proof suites to perform data integrity verification.
func NewVerifier(opts *Options, suites ...suite.ProofSuite) (*Verifier, error) {
	if opts == nil {
		opts = &Options{}
	}

	loader := opts.documentLoader()
	if loader == nil {
		return nil, ErrNoResolver
	}

	verifier := &Verifier{
		loader: loader,
		clock:  opts.clock(),
	}

	for _, s := range suites {
		if s == nil {
			return nil, fmt.Errorf("%w: nil suite", ErrUnsupportedSuite)
		}

		verifier.suites = append(verifier.suites, s)
	}

	return verifier, nil
}

// VerifyProof verifies the data integrity proofs on the given JSON document which
// match one of the Verifier's suites and purpose. A nil purpose matches every proof.
//
// The returned error reports a document which can't be checked at all. The outcome
// of proof verification is reported in the Result.
func (v *Verifier) VerifyProof(doc []byte, purpose suite.Purpose) (*Result, error) {
	unsecured, proofs, err := parseDocument(doc)
	if err != nil {
		return nil, err
	}

	if len(proofs) == 0 {
		return nil, ErrMissingProof
	}

	type match struct {
		proof models.Proof
		suite suite.ProofSuite
	}

	var (
		matches    []match
		suiteFound bool
	)

	for _, proof := range proofs {
		s := v.suiteFor(proof)
		if s == nil {
			continue
		}

		suiteFound = true

		if purpose != nil && !purpose.Match(proof) {
			continue
		}

		matches = append(matches, match{proof: proof, suite: s})
	}

	if len(matches) == 0 {
		if !suiteFound {
			return nil, ErrUnsupportedSuite
		}

		return nil, ErrNoMatchingProofs
	}

	now := v.clock()
	result := &Result{}

	var errs []error

	for _, m := range matches {
		r := v.verifyOne(m.suite, m.proof, proofs, unsecured, purpose, now)

		result.Results = append(result.Results, r)

		if r.Verified {
			result.Verified = true
		} else {
			errs = append(errs, r.Error)
		}
	}

	if !result.Verified {
		result.Error = errors.Join(errs...)
	}

	return result, nil
}

func (v *Verifier) verifyOne(s suite.ProofSuite, proof models.Proof, proofs []models.Proof,
	unsecured models.Document, purpose suite.Purpose, now time.Time) *ProofResult {
	// Each proof gets its own copy, so that suites can't see each other's changes.
	doc := utiljson.ShallowCopyObj(unsecured)

	r := s.VerifyProof(&suite.VerifyProofRequest{
		Proof:          proof,
		ProofSet:       proofs,
		Document:       doc,
		DocumentLoader: v.loader,
		Now:            now,
	})

	out := &ProofResult{
		Proof:              proof,
		Verified:           r.Verified,
		VerificationMethod: r.VerificationMethod,
		Error:              r.Error,
	}

	if out.Verified && purpose != nil {
		err := purpose.Validate(proof, &suite.ValidateOptions{
			Document:           doc,
			VerificationMethod: r.VerificationMethod,
			Now:                now,
		})
		if err != nil {
			out.Verified = false
			out.Error = err
		}
	}

	if !out.Verified {
		logger.Debugf("data integrity proof %q not verified: %v", proof.ID(), out.Error)
	}

	return out
}

func (v *Verifier) suiteFor(proof models.Proof) suite.ProofSuite {
	for _, s := range v.suites {
		if s.MatchProof(proof) {
			return s
		}
	}

	return nil
}
