/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ed25519_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	gojose "github.com/go-jose/go-jose/v3"
	"github.com/stretchr/testify/require"
	"github.com/trustbloc/kms-go/doc/jose/jwk"
	"github.com/trustbloc/kms-go/doc/util/fingerprint"
	kmsapi "github.com/trustbloc/kms-go/spi/kms"

	"github.com/trustbloc/dataintegrity-go/crypto-ext/pubkey"
	"github.com/trustbloc/dataintegrity-go/crypto-ext/testutil"
	"github.com/trustbloc/dataintegrity-go/crypto-ext/verifiers/ed25519"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/suite"
)

const vmID = "did:example:123#key-1"

func TestVerifier(t *testing.T) {
	msg := []byte("test message")

	for _, jwkVM := range []bool{false, true} {
		signer, pubKey, err := testutil.CreateEd25519Signer(jwkVM)
		require.NoError(t, err)

		v, err := ed25519.New(pubKey)
		require.NoError(t, err)
		require.Equal(t, "Ed25519", v.Algorithm())

		msgSig, err := signer.Sign(msg)
		require.NoError(t, err)

		ok, err := v.Verify(msg, msgSig)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = v.Verify([]byte("other message"), msgSig)
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = v.Verify(msg, []byte("invalid signature"))
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestNew(t *testing.T) {
	t.Run("no public key", func(t *testing.T) {
		_, err := ed25519.New(nil)
		require.ErrorIs(t, err, ed25519.ErrInvalidKey)
	})

	t.Run("invalid key size", func(t *testing.T) {
		_, err := ed25519.New(&pubkey.PublicKey{
			Type:     kmsapi.ED25519,
			BytesKey: &pubkey.BytesKey{Bytes: []byte("invalid-key")},
		})
		require.ErrorIs(t, err, ed25519.ErrInvalidKey)
		require.EqualError(t, err, "ed25519: invalid public key: key size 11")
	})

	t.Run("no key material", func(t *testing.T) {
		_, err := ed25519.New(&pubkey.PublicKey{Type: kmsapi.ED25519})
		require.ErrorIs(t, err, ed25519.ErrInvalidKey)
	})

	t.Run("unsupported key type", func(t *testing.T) {
		_, err := ed25519.New(&pubkey.PublicKey{
			Type:     kmsapi.AES256GCM,
			BytesKey: &pubkey.BytesKey{Bytes: []byte("invalid-key")},
		})
		require.EqualError(t, err, "ed25519: invalid public key: unsupported key type AES256GCM")
	})

	t.Run("invalid JWK value", func(t *testing.T) {
		_, err := ed25519.New(&pubkey.PublicKey{
			Type: kmsapi.ED25519,
			JWK: &jwk.JWK{
				JSONWebKey: gojose.JSONWebKey{
					Key: "foo",
				},
				Kty: "OKP",
				Crv: "Ed25519",
			},
		})
		require.ErrorIs(t, err, ed25519.ErrInvalidKey)
		require.ErrorContains(t, err, "JWK does not hold an Ed25519 public key")
	})
}

func TestNewFromVerificationMethod(t *testing.T) {
	signer, pubKey, err := testutil.CreateEd25519Signer(false)
	require.NoError(t, err)

	var factory suite.VerifierFactory = ed25519.NewFromVerificationMethod

	t.Run("multikey", func(t *testing.T) {
		v, err := factory(&models.VerificationMethod{
			ID:   vmID,
			Type: "Multikey",
			PublicKeyMultibase: fingerprint.KeyFingerprint(fingerprint.ED25519PubKeyMultiCodec,
				pubKey.BytesKey.Bytes),
		})
		require.NoError(t, err)

		sig, err := signer.Sign([]byte("msg"))
		require.NoError(t, err)

		ok, err := v.Verify([]byte("msg"), sig)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("no public key", func(t *testing.T) {
		_, err := factory(&models.VerificationMethod{ID: vmID, Type: "Multikey"})
		require.ErrorIs(t, err, suite.ErrUnsupportedVerificationMethod)
		require.ErrorIs(t, err, pubkey.ErrUnsupportedKey)
	})

	t.Run("P-256 key", func(t *testing.T) {
		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		_, err = factory(&models.VerificationMethod{
			ID:   vmID,
			Type: "Multikey",
			PublicKeyMultibase: fingerprint.KeyFingerprint(fingerprint.P256PubKeyMultiCodec,
				elliptic.MarshalCompressed(elliptic.P256(), key.X, key.Y)),
		})
		require.ErrorIs(t, err, suite.ErrUnsupportedVerificationMethod)
		require.ErrorIs(t, err, ed25519.ErrInvalidKey)
	})
}
