/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package proof implements the DataIntegrityProof engine: it creates and verifies data
// integrity proofs with a pluggable cryptographic suite.
package proof

import (
	"errors"
	"fmt"
	"time"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/proofvalue"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/suite"
	utiltime "github.com/trustbloc/dataintegrity-go/util/time"
)

var logger = log.New("dataintegrity/proof")

// DataIntegrityProof creates and verifies proofs of type "DataIntegrityProof" for one
// cryptosuite. Configuration is fixed for the lifetime of the instance.
type DataIntegrityProof struct {
	cryptosuite  *suite.Cryptosuite
	signer       suite.Signer
	contextURL   string
	dateMode     dateMode
	date         time.Time
	maxClockSkew time.Duration
	template     models.Proof
	clock        func() time.Time
	proofID      func() string
	hashes       *hashCache

	verifyData verifyDataStrategy
	proofValue proofValueStrategy
}

var _ suite.Engine = (*DataIntegrityProof)(nil)

// New creates a DataIntegrityProof for the given cryptosuite.
func New(cryptosuite *suite.Cryptosuite, opts ...Opt) (*DataIntegrityProof, error) {
	o := &options{
		maxClockSkew:  DefaultMaxClockSkew,
		hashCacheSize: DefaultHashCacheSize,
		clock:         time.Now,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.dateErr != nil {
		return nil, o.dateErr
	}

	if err := validateCryptosuite(cryptosuite); err != nil {
		return nil, err
	}

	if o.signer != nil {
		if err := CheckAlgorithm(roleSigner, o.signer.Algorithm(), cryptosuite.RequiredAlgorithm); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}

	hashes, err := newHashCache(o.hashCacheSize)
	if err != nil {
		return nil, fmt.Errorf("%w: hash cache: %w", ErrConfiguration, err)
	}

	p := &DataIntegrityProof{
		cryptosuite:  cryptosuite,
		signer:       o.signer,
		contextURL:   models.ContextV2,
		dateMode:     o.dateMode,
		date:         o.date,
		maxClockSkew: o.maxClockSkew,
		template:     o.template,
		clock:        o.clock,
		proofID:      o.proofID,
		hashes:       hashes,
	}

	if o.legacyContext {
		p.contextURL = models.ContextV1
	}

	p.verifyData = selectVerifyDataStrategy(cryptosuite)
	p.proofValue = selectProofValueStrategy(cryptosuite)

	return p, nil
}

func validateCryptosuite(cs *suite.Cryptosuite) error {
	if cs == nil {
		return fmt.Errorf("%w: cryptosuite is required", ErrConfiguration)
	}

	if cs.Name == "" {
		return fmt.Errorf("%w: cryptosuite must have a name", ErrConfiguration)
	}

	if cs.CreateVerifier == nil {
		return fmt.Errorf(`%w: "cryptosuite" must provide a "createVerifier" function`, ErrConfiguration)
	}

	if len(cs.RequiredAlgorithm) == 0 {
		return fmt.Errorf("%w: cryptosuite must require at least one algorithm", ErrConfiguration)
	}

	if cs.CreateVerifyData == nil && cs.Canonicalizer == nil {
		return fmt.Errorf("%w: cryptosuite must provide a canonicalizer", ErrConfiguration)
	}

	return nil
}

// Type returns the proof type, "DataIntegrityProof".
func (p *DataIntegrityProof) Type() string {
	return models.DataIntegrityProof
}

// CryptosuiteName returns the name of the bound cryptosuite.
func (p *DataIntegrityProof) CryptosuiteName() string {
	return p.cryptosuite.Name
}

// ContextURL returns the data integrity context the engine requires.
func (p *DataIntegrityProof) ContextURL() string {
	return p.contextURL
}

// CreateProof creates a proof for req.Document. The document isn't modified.
func (p *DataIntegrityProof) CreateProof(req *suite.ProofRequest) (models.Proof, error) {
	proof := models.Proof{}
	if p.template != nil {
		proof = p.template.Copy()
	}

	proof[models.FieldType] = models.DataIntegrityProof

	if p.proofID != nil {
		if _, ok := proof[models.FieldID]; !ok {
			proof[models.FieldID] = p.proofID()
		}
	}

	switch p.dateMode {
	case dateFixed:
		proof[models.FieldCreated] = utiltime.FormatW3C(p.date)
	case dateNone:
		delete(proof, models.FieldCreated)
	case dateNow:
		if _, ok := proof[models.FieldCreated]; !ok {
			proof[models.FieldCreated] = utiltime.FormatW3C(p.clock())
		}
	}

	if p.signer != nil {
		proof[models.FieldVerificationMethod] = p.signer.ID()
	}

	proof[models.FieldCryptosuite] = p.cryptosuite.Name

	proof, err := p.UpdateProof(req, proof)
	if err != nil {
		return nil, err
	}

	if req.Purpose != nil {
		proof, err = req.Purpose.Update(proof, &suite.PurposeOptions{
			Document:       req.Document,
			Suite:          p,
			DocumentLoader: req.DocumentLoader,
		})
		if err != nil {
			return nil, fmt.Errorf("update proof purpose: %w", err)
		}
	}

	if err = checkProofChain(proof, req.ProofSet); err != nil {
		return nil, err
	}

	verifyData, err := p.verifyData.create(p, &suite.VerifyDataRequest{
		Document:       req.Document,
		Proof:          proof,
		ProofSet:       req.ProofSet,
		DocumentLoader: req.DocumentLoader,
	})
	if err != nil {
		return nil, err
	}

	return p.proofValue.create(p, &suite.ProofValueRequest{
		VerifyData:     verifyData,
		Document:       req.Document,
		Proof:          proof,
		ProofSet:       req.ProofSet,
		DocumentLoader: req.DocumentLoader,
	})
}

// UpdateProof lets extensions add fields to a proof before the purpose is applied.
// The engine itself adds nothing.
func (p *DataIntegrityProof) UpdateProof(_ *suite.ProofRequest, proof models.Proof) (models.Proof, error) {
	return proof, nil
}

// Sign is the default sign step: it signs verifyData with the configured signer and
// sets proof.proofValue to the base58btc multibase signature.
func (p *DataIntegrityProof) Sign(verifyData []byte, proof models.Proof) (models.Proof, error) {
	if p.signer == nil {
		return nil, ErrNoSigner
	}

	sig, err := p.signer.Sign(verifyData)
	if err != nil {
		return nil, fmt.Errorf("sign verify data: %w", err)
	}

	value, err := proofvalue.Encode(proofvalue.Base58BTC, sig)
	if err != nil {
		return nil, err
	}

	proof[models.FieldProofValue] = value

	return proof, nil
}

// Derive creates a derived document with a cryptosuite that supports derivation.
func (p *DataIntegrityProof) Derive(req *suite.ProofRequest) (models.Document, error) {
	if p.cryptosuite.Derive == nil {
		return nil, ErrUnsupportedOperation
	}

	return p.cryptosuite.Derive(req, p)
}

// MatchProof reports whether the proof was created by this kind of engine.
func (p *DataIntegrityProof) MatchProof(proof models.Proof) bool {
	return proof.Type() == models.DataIntegrityProof && proof.Cryptosuite() == p.cryptosuite.Name
}

// checkProofChain checks that every previousProof id names another proof of the set
// and that following previousProof never leads back to a proof already on the path.
func checkProofChain(proof models.Proof, proofSet []models.Proof) error {
	if len(proof.PreviousProof()) == 0 {
		return nil
	}

	byID := make(map[string]models.Proof, len(proofSet))

	for _, prf := range proofSet {
		if id := prf.ID(); id != "" && id != proof.ID() {
			byID[id] = prf
		}
	}

	path := map[string]bool{}
	if id := proof.ID(); id != "" {
		path[id] = true
	}

	return walkProofChain(proof, byID, path)
}

func walkProofChain(proof models.Proof, byID map[string]models.Proof, path map[string]bool) error {
	for _, id := range proof.PreviousProof() {
		if path[id] {
			return fmt.Errorf("%w: previous proof %q forms a cycle", ErrProofChain, id)
		}

		prev, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: previous proof %q is not in the proof set", ErrProofChain, id)
		}

		path[id] = true

		if err := walkProofChain(prev, byID, path); err != nil {
			return err
		}

		delete(path, id)
	}

	return nil
}

type verifyDataStrategy interface {
	create(p *DataIntegrityProof, req *suite.VerifyDataRequest) ([]byte, error)
}

type defaultVerifyData struct{}

func (defaultVerifyData) create(p *DataIntegrityProof, req *suite.VerifyDataRequest) ([]byte, error) {
	return p.CreateVerifyData(req)
}

type customVerifyData struct {
	hook suite.CreateVerifyDataFunc
}

func (s customVerifyData) create(p *DataIntegrityProof, req *suite.VerifyDataRequest) ([]byte, error) {
	return s.hook(req, p)
}

func selectVerifyDataStrategy(cs *suite.Cryptosuite) verifyDataStrategy {
	if cs.CreateVerifyData != nil {
		return customVerifyData{hook: cs.CreateVerifyData}
	}

	return defaultVerifyData{}
}

type proofValueStrategy interface {
	create(p *DataIntegrityProof, req *suite.ProofValueRequest) (models.Proof, error)
}

type defaultProofValue struct{}

func (defaultProofValue) create(p *DataIntegrityProof, req *suite.ProofValueRequest) (models.Proof, error) {
	return p.Sign(req.VerifyData, req.Proof)
}

type customProofValue struct {
	hook suite.CreateProofValueFunc
}

func (s customProofValue) create(p *DataIntegrityProof, req *suite.ProofValueRequest) (models.Proof, error) {
	value, err := s.hook(req, p)
	if err != nil {
		return nil, err
	}

	if value == "" {
		return nil, errors.New("cryptosuite created an empty proof value")
	}

	req.Proof[models.FieldProofValue] = value

	return req.Proof, nil
}

func selectProofValueStrategy(cs *suite.Cryptosuite) proofValueStrategy {
	if cs.CreateProofValue != nil {
		return customProofValue{hook: cs.CreateProofValue}
	}

	return defaultProofValue{}
}
