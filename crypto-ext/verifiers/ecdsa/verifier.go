/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecdsa

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	_ "crypto/sha256" // register SHA-256
	_ "crypto/sha512" // register SHA-384
	"encoding/asn1"
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/trustbloc/kms-go/spi/kms"

	"github.com/trustbloc/dataintegrity-go/crypto-ext/pubkey"
)

const (
	p256KeySize = 32
	p384KeySize = 48

	uncompressedPrefix = 0x04
)

// ErrInvalidSignature is returned when the signature doesn't match the message and key.
var ErrInvalidSignature = errors.New("ecdsa: invalid signature")

type ellipticCurve struct {
	curve   elliptic.Curve
	keySize int
	hash    crypto.Hash
}

// Verifier verifies elliptic curve signatures.
type Verifier struct {
	ec         ellipticCurve
	kmsKeyType []kms.KeyType
}

// SupportedKeyType checks if verifier supports given key.
func (sv *Verifier) SupportedKeyType(keyType kms.KeyType) bool {
	return slices.Contains(sv.kmsKeyType, keyType)
}

func (sv *Verifier) parseKey(pubKey *pubkey.PublicKey) (*ecdsa.PublicKey, error) {
	if !sv.SupportedKeyType(pubKey.Type) {
		return nil, fmt.Errorf("unsupported key type %s", pubKey.Type)
	}

	var ecdsaPubKey *ecdsa.PublicKey

	if pubKey.JWK == nil {
		if pubKey.BytesKey == nil {
			return nil, errors.New("ecdsa: no public key")
		}

		var err error

		ecdsaPubKey, err = sv.createECDSAPublicKey(pubKey.BytesKey.Bytes)
		if err != nil {
			return nil, fmt.Errorf("ecdsa: create JWK from public key bytes: %w", err)
		}
	} else {
		var ok bool
		ecdsaPubKey, ok = pubKey.JWK.Key.(*ecdsa.PublicKey)
		if !ok {
			return nil, errors.New("ecdsa: invalid public key type")
		}

		if ecdsaPubKey.Curve != sv.ec.curve {
			return nil, fmt.Errorf("ecdsa: unexpected curve %s", ecdsaPubKey.Curve.Params().Name)
		}
	}

	return ecdsaPubKey, nil
}

// Verify verifies the signature, given in IEEE P1363 or ASN.1 DER format.
func (sv *Verifier) Verify(signature, msg []byte, pubKey *pubkey.PublicKey) error {
	ecdsaPubKey, err := sv.parseKey(pubKey)
	if err != nil {
		return err
	}

	ec := sv.ec

	if len(signature) < 2*ec.keySize {
		return errors.New("ecdsa: invalid signature size")
	}

	hasher := ec.hash.New()

	_, err = hasher.Write(msg)
	if err != nil {
		return errors.New("ecdsa: hash error")
	}

	hash := hasher.Sum(nil)

	r := big.NewInt(0).SetBytes(signature[:ec.keySize])
	s := big.NewInt(0).SetBytes(signature[ec.keySize:])

	if len(signature) > 2*ec.keySize {
		var esig struct {
			R, S *big.Int
		}

		if _, err := asn1.Unmarshal(signature, &esig); err != nil {
			return err
		}

		r = esig.R
		s = esig.S
	}

	if !ecdsa.Verify(ecdsaPubKey, hash, r, s) {
		return ErrInvalidSignature
	}

	return nil
}

// createECDSAPublicKey accepts a compressed or uncompressed point. An uncompressed point
// may lack its 0x04 prefix.
func (sv *Verifier) createECDSAPublicKey(pubKeyBytes []byte) (*ecdsa.PublicKey, error) {
	curve := sv.ec.curve

	var x, y *big.Int

	switch len(pubKeyBytes) {
	case 1 + sv.ec.keySize:
		x, y = elliptic.UnmarshalCompressed(curve, pubKeyBytes)
	case 2 * sv.ec.keySize:
		x, y = elliptic.Unmarshal(curve, append([]byte{uncompressedPrefix}, pubKeyBytes...)) //nolint:staticcheck
	default:
		x, y = elliptic.Unmarshal(curve, pubKeyBytes) //nolint:staticcheck
	}

	if x == nil {
		return nil, errors.New("invalid public key bytes")
	}

	return &ecdsa.PublicKey{
		Curve: curve,
		X:     x,
		Y:     y,
	}, nil
}

// NewES256 creates a new signature verifier that verifies a ECDSA P-256 signature
// taking public key bytes and JSON Web Key as input.
func NewES256() *Verifier {
	return &Verifier{
		ec: ellipticCurve{
			curve:   elliptic.P256(),
			keySize: p256KeySize,
			hash:    crypto.SHA256,
		},
		kmsKeyType: []kms.KeyType{kms.ECDSAP256TypeIEEEP1363, kms.ECDSAP256TypeDER},
	}
}

// NewES384 creates a new signature verifier that verifies a ECDSA P-384 signature
// taking public key bytes and JSON Web Key as input.
func NewES384() *Verifier {
	return &Verifier{
		ec: ellipticCurve{
			curve:   elliptic.P384(),
			keySize: p384KeySize,
			hash:    crypto.SHA384,
		},
		kmsKeyType: []kms.KeyType{kms.ECDSAP384TypeIEEEP1363, kms.ECDSAP384TypeDER},
	}
}
