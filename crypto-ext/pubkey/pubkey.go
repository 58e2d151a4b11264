/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pubkey

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/trustbloc/kms-go/doc/jose/jwk"
	"github.com/trustbloc/kms-go/doc/util/fingerprint"
	"github.com/trustbloc/kms-go/spi/kms"

	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
)

// ErrUnsupportedKey is returned for a verification method without a supported public key.
var ErrUnsupportedKey = errors.New("unsupported public key")

// BytesKey contains bytes of public key.
type BytesKey struct {
	Bytes []byte
}

// PublicKey contains a result of public key resolution.
type PublicKey struct {
	Type kms.KeyType

	BytesKey *BytesKey
	JWK      *jwk.JWK
}

// FromVerificationMethod extracts the public key of a verification method, given as
// "publicKeyMultibase" (multicodec key) or "publicKeyJwk".
func FromVerificationMethod(vm *models.VerificationMethod) (*PublicKey, error) {
	switch {
	case vm == nil:
		return nil, fmt.Errorf("%w: no verification method", ErrUnsupportedKey)
	case vm.PublicKeyMultibase != "":
		return fromMultikey(vm.PublicKeyMultibase)
	case len(vm.PublicKeyJwk) > 0:
		return fromJWK(vm.PublicKeyJwk)
	default:
		return nil, fmt.Errorf("%w: verification method %s has no public key", ErrUnsupportedKey, vm.ID)
	}
}

func fromMultikey(value string) (*PublicKey, error) {
	key, code, err := fingerprint.PubKeyFromFingerprint(value)
	if err != nil {
		return nil, fmt.Errorf("%w: publicKeyMultibase: %w", ErrUnsupportedKey, err)
	}

	var keyType kms.KeyType

	switch code {
	case fingerprint.ED25519PubKeyMultiCodec:
		keyType = kms.ED25519Type
	case fingerprint.P256PubKeyMultiCodec:
		keyType = kms.ECDSAP256TypeIEEEP1363
	case fingerprint.P384PubKeyMultiCodec:
		keyType = kms.ECDSAP384TypeIEEEP1363
	default:
		return nil, fmt.Errorf("%w: multicodec 0x%x", ErrUnsupportedKey, code)
	}

	return &PublicKey{Type: keyType, BytesKey: &BytesKey{Bytes: key}}, nil
}

func fromJWK(obj map[string]interface{}) (*PublicKey, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal publicKeyJwk: %w", ErrUnsupportedKey, err)
	}

	key := &jwk.JWK{}

	if err = key.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("%w: publicKeyJwk: %w", ErrUnsupportedKey, err)
	}

	var keyType kms.KeyType

	switch {
	case key.Kty == "OKP" && key.Crv == "Ed25519":
		keyType = kms.ED25519Type
	case key.Kty == "EC" && key.Crv == "P-256":
		keyType = kms.ECDSAP256TypeIEEEP1363
	case key.Kty == "EC" && key.Crv == "P-384":
		keyType = kms.ECDSAP384TypeIEEEP1363
	default:
		return nil, fmt.Errorf("%w: JWK kty %q crv %q", ErrUnsupportedKey, key.Kty, key.Crv)
	}

	return &PublicKey{Type: keyType, JWK: key}, nil
}
