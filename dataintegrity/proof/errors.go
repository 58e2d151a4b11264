/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proof

import "errors"

var (
	// ErrConfiguration is returned when the engine is set up with a bad cryptosuite or
	// signer, and when a document to be signed lacks the suite context.
	ErrConfiguration = errors.New("data integrity configuration error")
	// ErrAlgorithmMismatch is returned when a signer or verifier algorithm isn't accepted
	// by the cryptosuite.
	ErrAlgorithmMismatch = errors.New("algorithm mismatch")
	// ErrNoSigner is returned by CreateProof when the engine has no signer.
	ErrNoSigner = errors.New("a signer API has not been specified")
	// ErrUnsupportedOperation is returned by Derive when the cryptosuite has no derive hook.
	ErrUnsupportedOperation = errors.New(`"derive" is not supported by this cryptosuite`)
	// ErrProofStructure is returned when a proof lacks a required field.
	ErrProofStructure = errors.New("malformed data integrity proof")
	// ErrResolution is returned when the verification method can't be loaded.
	ErrResolution = errors.New("failed to resolve verification method")
	// ErrInvalidSignature is returned when the signature does not verify.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrTimestamp is returned when proof.created is malformed or in the future.
	ErrTimestamp = errors.New("invalid proof timestamp")
	// ErrProofChain is returned when proof.previousProof references a proof which is
	// not in the proof set.
	ErrProofChain = errors.New("invalid proof chain")
)
