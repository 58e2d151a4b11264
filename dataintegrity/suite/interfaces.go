/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package suite

//go:generate mockgen -destination ../proof/interfaces_mocks_test.go -package proof_test -source=interfaces.go
import "github.com/trustbloc/dataintegrity-go/dataintegrity/models"

// Canonicalizer turns a document into a stable string. It must be deterministic for
// structurally equal input.
type Canonicalizer interface {
	Canonize(doc map[string]interface{}, opts *CanonizeOptions) (string, error)
}

// A Signer signs verify data with a private key internal to the Signer.
type Signer interface {
	// ID is the verification method id written to proofs created with this Signer.
	ID() string
	// Algorithm is the signature algorithm identifier, e.g. "Ed25519".
	Algorithm() string
	Sign(data []byte) ([]byte, error)
}

// A Verifier checks signatures for one verification method.
type Verifier interface {
	Algorithm() string
	// Verify returns false with a nil error when the signature does not match.
	Verify(data, signature []byte) (bool, error)
}

// Purpose states the intended use of a proof, e.g. "assertionMethod".
type Purpose interface {
	Term() string
	// Update adds purpose specific fields to the proof before it is signed.
	Update(proof models.Proof, opts *PurposeOptions) (models.Proof, error)
	// Match reports whether the proof was created for this purpose.
	Match(proof models.Proof) bool
	// Validate checks a verified proof against the purpose.
	Validate(proof models.Proof, opts *ValidateOptions) error
}
