/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package testutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	_ "crypto/sha256" // register SHA-256
	_ "crypto/sha512" // register SHA-384
	"fmt"

	"github.com/trustbloc/kms-go/doc/jose/jwk/jwksupport"
	"github.com/trustbloc/kms-go/spi/kms"

	"github.com/trustbloc/dataintegrity-go/crypto-ext/pubkey"
)

// CreateEd25519Signer creates a signer and the corresponding public key, given as
// key bytes or, when jwkVM is set, as a JWK.
func CreateEd25519Signer(jwkVM bool) (*Ed25519Signer, *pubkey.PublicKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	pk := &pubkey.PublicKey{
		Type:     kms.ED25519Type,
		BytesKey: &pubkey.BytesKey{Bytes: pub},
	}

	if jwkVM {
		pubJWK, err := jwksupport.JWKFromKey(pub)
		if err != nil {
			return nil, nil, err
		}

		pk = &pubkey.PublicKey{Type: kms.ED25519Type, JWK: pubJWK}
	}

	return NewEd25519Signer(priv), pk, nil
}

// CreateECDSASigner creates a P-256 or P-384 signer and the corresponding public key,
// given as compressed key bytes or, when jwkVM is set, as a JWK.
func CreateECDSASigner(curve elliptic.Curve, jwkVM bool) (*ECDSASigner, *pubkey.PublicKey, error) {
	var (
		keyType kms.KeyType
		hash    crypto.Hash
	)

	switch curve {
	case elliptic.P256():
		keyType, hash = kms.ECDSAP256TypeIEEEP1363, crypto.SHA256
	case elliptic.P384():
		keyType, hash = kms.ECDSAP384TypeIEEEP1363, crypto.SHA384
	default:
		return nil, nil, fmt.Errorf("unsupported curve %s", curve.Params().Name)
	}

	privKey, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	pk := &pubkey.PublicKey{
		Type: keyType,
		BytesKey: &pubkey.BytesKey{
			Bytes: elliptic.MarshalCompressed(curve, privKey.PublicKey.X, privKey.PublicKey.Y),
		},
	}

	if jwkVM {
		pubJWK, err := jwksupport.JWKFromKey(&privKey.PublicKey)
		if err != nil {
			return nil, nil, err
		}

		pk = &pubkey.PublicKey{Type: keyType, JWK: pubJWK}
	}

	return NewECDSASigner(privKey, hash), pk, nil
}
