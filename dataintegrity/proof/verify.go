/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/proofvalue"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/suite"
	jsonutil "github.com/trustbloc/dataintegrity-go/util/json"
	utiltime "github.com/trustbloc/dataintegrity-go/util/time"
)

// VerifyProof verifies a proof on req.Document. Every failure is reported in the result.
func (p *DataIntegrityProof) VerifyProof(req *suite.VerifyProofRequest) *models.VerifyResult {
	vm, err := p.verifyProof(req)
	if err != nil {
		logger.Debugf("proof verification failed: %s", err.Error())

		return &models.VerifyResult{Verified: false, VerificationMethod: vm, Error: err}
	}

	return &models.VerifyResult{Verified: true, VerificationMethod: vm}
}

func (p *DataIntegrityProof) verifyProof(req *suite.VerifyProofRequest) (*models.VerificationMethod, error) {
	if req.Proof == nil {
		return nil, fmt.Errorf("%w: proof is required", ErrProofStructure)
	}

	vm, err := p.GetVerificationMethod(req.Proof, req.DocumentLoader)
	if err != nil {
		return nil, err
	}

	verifyData, err := p.verifyData.create(p, &suite.VerifyDataRequest{
		Document:           req.Document,
		Proof:              req.Proof,
		ProofSet:           req.ProofSet,
		DocumentLoader:     req.DocumentLoader,
		VerificationMethod: vm,
	})
	if err != nil {
		return vm, err
	}

	if err = p.VerifySignature(verifyData, req.Proof, vm); err != nil {
		return vm, err
	}

	now := req.Now
	if now.IsZero() {
		now = p.clock()
	}

	if err = p.checkCreated(req.Proof, now); err != nil {
		return vm, err
	}

	if err = checkProofChain(req.Proof, req.ProofSet); err != nil {
		return vm, err
	}

	return vm, nil
}

// VerifySignature checks proof.proofValue over verifyData with a verifier created for vm.
func (p *DataIntegrityProof) VerifySignature(
	verifyData []byte,
	proof models.Proof,
	vm *models.VerificationMethod,
) error {
	verifier, err := p.cryptosuite.CreateVerifier(vm)
	if err != nil {
		return fmt.Errorf("create verifier: %w", err)
	}

	if err = CheckAlgorithm(roleVerifier, verifier.Algorithm(), p.cryptosuite.RequiredAlgorithm); err != nil {
		return err
	}

	signature, err := proofvalue.Decode(proof[models.FieldProofValue])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProofStructure, err)
	}

	ok, err := verifier.Verify(verifyData, signature)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	if !ok {
		return ErrInvalidSignature
	}

	return nil
}

// GetVerificationMethod loads the verification method the proof references.
func (p *DataIntegrityProof) GetVerificationMethod(
	proof models.Proof,
	loader ld.DocumentLoader,
) (*models.VerificationMethod, error) {
	vmID := proof.VerificationMethodID()
	if vmID == "" {
		return nil, fmt.Errorf(`%w: no "verificationMethod" found in proof`, ErrProofStructure)
	}

	if loader == nil {
		return nil, fmt.Errorf("%w: %q: no document loader", ErrResolution, vmID)
	}

	remote, err := loader.LoadDocument(vmID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrResolution, vmID, err)
	}

	if remote == nil || remote.Document == nil {
		return nil, fmt.Errorf("%w: verification method %q not found", ErrResolution, vmID)
	}

	raw, err := documentObject(remote.Document)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrResolution, vmID, err)
	}

	vm := &models.VerificationMethod{}

	if err = mapstructure.Decode(selectVerificationMethod(raw, vmID), vm); err != nil {
		return nil, fmt.Errorf("%w: decode verification method %q: %w", ErrResolution, vmID, err)
	}

	if vm.ID == "" {
		vm.ID = vmID
	}

	return vm, nil
}

// documentObject accepts what a document loader may return: a JSON object or its text.
func documentObject(doc interface{}) (map[string]interface{}, error) {
	switch doc.(type) {
	case map[string]interface{}, string, []byte:
	default:
		return nil, fmt.Errorf("unexpected document type %T", doc)
	}

	obj, err := jsonutil.ToMap(doc)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return obj, nil
}

// selectVerificationMethod picks the method out of a controller document, when the
// loader returned the whole controller document rather than the method itself.
func selectVerificationMethod(doc map[string]interface{}, vmID string) map[string]interface{} {
	if id, _ := doc[models.FieldID].(string); id == vmID {
		return doc
	}

	methods, ok := doc[models.FieldVerificationMethod].([]interface{})
	if !ok {
		return doc
	}

	for _, m := range methods {
		method, ok := m.(map[string]interface{})
		if !ok {
			continue
		}

		if id, _ := method[models.FieldID].(string); id == vmID {
			return method
		}
	}

	return doc
}

func (p *DataIntegrityProof) checkCreated(proof models.Proof, now time.Time) error {
	created, ok := proof.Created()
	if !ok {
		return nil
	}

	t, err := utiltime.ParseDateTime(created)
	if err != nil {
		return fmt.Errorf("%w: malformed \"created\" %q: %w", ErrTimestamp, created, err)
	}

	if now.Add(p.maxClockSkew).Before(t) {
		return fmt.Errorf("%w: proof created in the future", ErrTimestamp)
	}

	return nil
}
