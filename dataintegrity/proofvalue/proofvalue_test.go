/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proofvalue

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	random := make([]byte, 64)

	_, err := rand.Read(random)
	require.NoError(t, err)

	inputs := [][]byte{
		{},
		{0},
		{0, 0, 1},
		[]byte("mock signature"),
		random,
	}

	for _, enc := range []Encoding{Base58BTC, Base64URL} {
		for _, in := range inputs {
			s, err := Encode(enc, in)
			require.NoError(t, err)
			require.Equal(t, byte(enc), s[0])

			out, err := Decode(s)
			require.NoError(t, err)
			require.Equal(t, in, out)
		}
	}
}

func TestEncode(t *testing.T) {
	t.Run("base58btc", func(t *testing.T) {
		s, err := Encode(Base58BTC, []byte("hello world"))
		require.NoError(t, err)
		require.Equal(t, "zStV1DL6CwTryKyV", s)
	})

	t.Run("base64url has no padding", func(t *testing.T) {
		s, err := Encode(Base64URL, []byte{0xfb, 0xff})
		require.NoError(t, err)
		require.Equal(t, "u-_8", s)
	})

	t.Run("unsupported header", func(t *testing.T) {
		_, err := Encode(Encoding('f'), []byte("data"))
		require.ErrorIs(t, err, ErrUnsupportedEncoding)
	})
}

func TestDecode(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := Decode(nil)
		require.ErrorIs(t, err, ErrInvalidProofValue)
	})

	t.Run("not a string", func(t *testing.T) {
		_, err := Decode(map[string]interface{}{})
		require.ErrorIs(t, err, ErrInvalidProofValue)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Decode("")
		require.ErrorIs(t, err, ErrInvalidProofValue)
	})

	t.Run("unsupported header", func(t *testing.T) {
		_, err := Decode("a")
		require.ErrorIs(t, err, ErrUnsupportedEncoding)

		// valid base16 multibase, still rejected
		_, err = Decode("f68656c6c6f")
		require.ErrorIs(t, err, ErrUnsupportedEncoding)
	})

	t.Run("bad body", func(t *testing.T) {
		_, err := Decode("z0OIl")
		require.Error(t, err)
		require.Contains(t, err.Error(), "decode proof value")
	})
}
