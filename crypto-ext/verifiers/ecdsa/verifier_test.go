/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecdsa_test

import (
	"crypto/elliptic"
	"testing"

	gojose "github.com/go-jose/go-jose/v3"
	"github.com/stretchr/testify/require"
	"github.com/trustbloc/kms-go/doc/jose/jwk"
	kmsapi "github.com/trustbloc/kms-go/spi/kms"

	"github.com/trustbloc/dataintegrity-go/crypto-ext/pubkey"
	"github.com/trustbloc/dataintegrity-go/crypto-ext/testutil"
	"github.com/trustbloc/dataintegrity-go/crypto-ext/verifiers/ecdsa"
)

func TestNewECDSAES256SignatureVerifier(t *testing.T) {
	msg := []byte("test message")

	t.Run("happy path", func(t *testing.T) {
		tests := []struct {
			sVerifier *ecdsa.Verifier
			algorithm string
			curve     elliptic.Curve
		}{
			{
				sVerifier: ecdsa.NewES256(),
				curve:     elliptic.P256(),
				algorithm: "ES256",
			},
			{
				sVerifier: ecdsa.NewES384(),
				curve:     elliptic.P384(),
				algorithm: "ES384",
			},
		}

		t.Parallel()

		for _, test := range tests {
			tc := test
			t.Run(tc.algorithm, func(t *testing.T) {
				for _, jwkVM := range []bool{false, true} {
					signer, pubKey, err := testutil.CreateECDSASigner(tc.curve, jwkVM)
					require.NoError(t, err)

					msgSig, err := signer.Sign(msg)
					require.NoError(t, err)

					err = tc.sVerifier.Verify(msgSig, msg, pubKey)
					require.NoError(t, err)
				}
			})
		}
	})

	v := ecdsa.NewES256()
	require.NotNil(t, v)

	signer, pubKey, err := testutil.CreateECDSASigner(elliptic.P256(), false)
	require.NoError(t, err)

	msgSig, err := signer.Sign(msg)
	require.NoError(t, err)

	t.Run("verify with compressed public key bytes", func(t *testing.T) {
		require.Len(t, pubKey.BytesKey.Bytes, 33)
		require.NoError(t, v.Verify(msgSig, msg, pubKey))
	})

	t.Run("verify with uncompressed public key bytes", func(t *testing.T) {
		x, y := elliptic.UnmarshalCompressed(elliptic.P256(), pubKey.BytesKey.Bytes)
		uncompressed := elliptic.Marshal(elliptic.P256(), x, y) //nolint:staticcheck

		require.NoError(t, v.Verify(msgSig, msg, &pubkey.PublicKey{
			Type:     kmsapi.ECDSAP256TypeIEEEP1363,
			BytesKey: &pubkey.BytesKey{Bytes: uncompressed},
		}))

		require.NoError(t, v.Verify(msgSig, msg, &pubkey.PublicKey{
			Type:     kmsapi.ECDSAP256TypeIEEEP1363,
			BytesKey: &pubkey.BytesKey{Bytes: uncompressed[1:]},
		}))
	})

	t.Run("invalid public key", func(t *testing.T) {
		err = v.Verify(msgSig, msg, &pubkey.PublicKey{
			Type:     kmsapi.AES256GCM,
			BytesKey: &pubkey.BytesKey{Bytes: []byte("invalid-key")},
		})
		require.Error(t, err)
		require.EqualError(t, err, "unsupported key type AES256GCM")
	})

	t.Run("invalid public key bytes", func(t *testing.T) {
		err = v.Verify(msgSig, msg, &pubkey.PublicKey{
			Type:     kmsapi.ECDSAP256TypeIEEEP1363,
			BytesKey: &pubkey.BytesKey{Bytes: []byte("invalid-key")},
		})
		require.Error(t, err)
		require.ErrorContains(t, err, "invalid public key bytes")

		err = v.Verify(msgSig, msg, &pubkey.PublicKey{Type: kmsapi.ECDSAP256TypeIEEEP1363})
		require.EqualError(t, err, "ecdsa: no public key")
	})

	t.Run("invalid public key type", func(t *testing.T) {
		err = v.Verify(msgSig, msg, &pubkey.PublicKey{
			Type: kmsapi.ECDSAP256TypeIEEEP1363,
			JWK: &jwk.JWK{
				JSONWebKey: gojose.JSONWebKey{
					Key: "foo",
				},
				Kty: "RSA",
			},
		})
		require.Error(t, err)
		require.EqualError(t, err, "ecdsa: invalid public key type")
	})

	t.Run("JWK on another curve", func(t *testing.T) {
		_, p384Key, err := testutil.CreateECDSASigner(elliptic.P384(), true)
		require.NoError(t, err)

		err = v.Verify(msgSig, msg, &pubkey.PublicKey{
			Type: kmsapi.ECDSAP256TypeIEEEP1363,
			JWK:  p384Key.JWK,
		})
		require.ErrorContains(t, err, "unexpected curve P-384")
	})

	t.Run("invalid signature", func(t *testing.T) {
		verifyError := v.Verify([]byte("signature of invalid size"), msg, pubKey)
		require.Error(t, verifyError)
		require.EqualError(t, verifyError, "ecdsa: invalid signature size")

		emptySig := make([]byte, 64)
		verifyError = v.Verify(emptySig, msg, pubKey)
		require.ErrorIs(t, verifyError, ecdsa.ErrInvalidSignature)
	})
}
