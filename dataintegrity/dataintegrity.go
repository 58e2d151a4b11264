/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package dataintegrity adds data integrity proofs to JSON documents and verifies them,
// using proof engines created with package proof.
package dataintegrity

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/piprate/json-gold/ld"
	"github.com/tidwall/gjson"

	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
	utiljson "github.com/trustbloc/dataintegrity-go/util/json"
	"github.com/trustbloc/dataintegrity-go/vermethod"
)

const (
	proofPath = "proof"
)

var (
	// ErrUnsupportedSuite is returned when a Signer or Verifier is required to use
	// a cryptographic suite which it doesn't have.
	ErrUnsupportedSuite = errors.New("data integrity proof requires unsupported cryptographic suite")
	// ErrNoResolver is returned when a Verifier has no way to load verification methods.
	ErrNoResolver = errors.New("either did resolver or document loader must be provided")
	// ErrMalformedDocument is returned when the document is not a JSON object.
	ErrMalformedDocument = errors.New("document is not a JSON object")
	// ErrMalformedProof is returned when the proof of a document is neither a JSON
	// object nor a list of JSON objects.
	ErrMalformedProof = errors.New("malformed data integrity proof")
)

// Options contains initialization parameters for Data Integrity Signer and Verifier.
type Options struct {
	// DIDResolver resolves verification methods given as DID URLs.
	DIDResolver vermethod.DIDResolver
	// DocumentLoader loads JSON-LD contexts, and verification methods which aren't DID URLs.
	DocumentLoader ld.DocumentLoader
	// Clock is the source of the current time. Defaults to time.Now.
	Clock func() time.Time
}

func (o *Options) documentLoader() ld.DocumentLoader {
	if o.DIDResolver != nil {
		return vermethod.NewVDRLoader(o.DIDResolver, o.DocumentLoader)
	}

	return o.DocumentLoader
}

func (o *Options) clock() func() time.Time {
	if o.Clock != nil {
		return o.Clock
	}

	return time.Now
}

// parseDocument splits a secured document into the document without proofs and its proof set.
func parseDocument(doc []byte) (models.Document, []models.Proof, error) {
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		return nil, nil, ErrMalformedDocument
	}

	var obj map[string]interface{}

	if err := json.Unmarshal(doc, &obj); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	proofs, err := proofSet(gjson.GetBytes(doc, proofPath))
	if err != nil {
		return nil, nil, err
	}

	return utiljson.CopyExcept(obj, proofPath), proofs, nil
}

func proofSet(raw gjson.Result) ([]models.Proof, error) {
	if !raw.Exists() {
		return nil, nil
	}

	var items []gjson.Result

	switch {
	case raw.IsObject():
		items = []gjson.Result{raw}
	case raw.IsArray():
		items = raw.Array()
	default:
		return nil, ErrMalformedProof
	}

	proofs := make([]models.Proof, 0, len(items))

	for _, item := range items {
		if !item.IsObject() {
			return nil, ErrMalformedProof
		}

		obj, err := utiljson.ToMap(item.Raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedProof, err)
		}

		proofs = append(proofs, obj)
	}

	return proofs, nil
}
