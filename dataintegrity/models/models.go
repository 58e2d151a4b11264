/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package models

const (
	// DataIntegrityProof is the proof type of every proof created by the data integrity engine.
	DataIntegrityProof = "DataIntegrityProof"

	// ContextV1 is the legacy data integrity JSON-LD context.
	ContextV1 = "https://w3id.org/security/data-integrity/v1"
	// ContextV2 is the current data integrity JSON-LD context.
	ContextV2 = "https://w3id.org/security/data-integrity/v2"
	// CredentialsV2Context is the VC data model 2.0 context, which includes the data
	// integrity vocabulary and therefore supersedes both data integrity contexts.
	CredentialsV2Context = "https://www.w3.org/ns/credentials/v2"
)

// Proof field names.
const (
	FieldContext            = "@context"
	FieldID                 = "id"
	FieldType               = "type"
	FieldCryptosuite        = "cryptosuite"
	FieldCreated            = "created"
	FieldVerificationMethod = "verificationMethod"
	FieldProofPurpose       = "proofPurpose"
	FieldPreviousProof      = "previousProof"
	FieldProofValue         = "proofValue"
	FieldChallenge          = "challenge"
	FieldDomain             = "domain"
)

// Document is a JSON-LD document a proof is attached to.
type Document = map[string]interface{}

// Proof implements the data integrity proof model:
// https://www.w3.org/TR/vc-data-integrity/#proofs
//
// It is kept as a JSON object so that suite specific fields survive untouched.
type Proof map[string]interface{}

// Copy returns a shallow copy of the proof.
func (p Proof) Copy() Proof {
	cp := make(Proof, len(p))

	for k, v := range p {
		cp[k] = v
	}

	return cp
}

// Type returns proof type.
func (p Proof) Type() string {
	return p.stringField(FieldType)
}

// ID returns proof id.
func (p Proof) ID() string {
	return p.stringField(FieldID)
}

// Cryptosuite returns the name of the cryptosuite which created the proof.
func (p Proof) Cryptosuite() string {
	return p.stringField(FieldCryptosuite)
}

// Created returns the raw created date-time, and whether it is present.
func (p Proof) Created() (string, bool) {
	v, ok := p[FieldCreated]
	if !ok || v == nil {
		return "", false
	}

	s, _ := v.(string)

	return s, true
}

// ProofPurpose returns proof purpose.
func (p Proof) ProofPurpose() string {
	return p.stringField(FieldProofPurpose)
}

// VerificationMethodID returns the verification method identifier. The verification
// method may be given as a plain identifier or as an embedded object with an "id".
func (p Proof) VerificationMethodID() string {
	switch vm := p[FieldVerificationMethod].(type) {
	case string:
		return vm
	case map[string]interface{}:
		id, _ := vm[FieldID].(string)

		return id
	}

	return ""
}

// PreviousProof returns the ids the proof chains to.
func (p Proof) PreviousProof() []string {
	switch pp := p[FieldPreviousProof].(type) {
	case string:
		return []string{pp}
	case []string:
		return pp
	case []interface{}:
		var ids []string

		for _, v := range pp {
			if s, ok := v.(string); ok {
				ids = append(ids, s)
			}
		}

		return ids
	}

	return nil
}

func (p Proof) stringField(name string) string {
	s, _ := p[name].(string)

	return s
}

// VerificationMethod implements the data integrity verification method model:
// https://www.w3.org/TR/vc-data-integrity/#verification-methods
type VerificationMethod struct {
	ID                 string                 `json:"id" mapstructure:"id"`
	Type               string                 `json:"type" mapstructure:"type"`
	Controller         string                 `json:"controller,omitempty" mapstructure:"controller"`
	PublicKeyMultibase string                 `json:"publicKeyMultibase,omitempty" mapstructure:"publicKeyMultibase"`
	PublicKeyJwk       map[string]interface{} `json:"publicKeyJwk,omitempty" mapstructure:"publicKeyJwk"`
	Fields             map[string]interface{} `json:"-" mapstructure:",remain"`
}

// VerifyResult is the outcome of a single proof verification.
type VerifyResult struct {
	Verified           bool
	VerificationMethod *VerificationMethod
	Error              error
}
