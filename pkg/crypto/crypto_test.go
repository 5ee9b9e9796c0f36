package crypto

import (
	"crypto/ed25519"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSigningKey(t *testing.T) {
	priv, pub, err := GenerateSigningKey()
	require.NoError(t, err)

	decodedPriv, err := DecodePrivateKey(priv)
	require.NoError(t, err)
	decodedPub, err := DecodePublicKey(pub)
	require.NoError(t, err)

	assert.Equal(t, ed25519.PublicKey(decodedPriv.Public().(ed25519.PublicKey)), decodedPub)
}

func TestDecodePrivateKey(t *testing.T) {
	t.Run("seed form", func(t *testing.T) {
		seed := make([]byte, ed25519.SeedSize)
		for i := range seed {
			seed[i] = byte(i)
		}
		key, err := DecodePrivateKey(base64.StdEncoding.EncodeToString(seed))
		require.NoError(t, err)
		assert.Equal(t, ed25519.NewKeyFromSeed(seed), key)
	})

	t.Run("full key form", func(t *testing.T) {
		_, priv, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		key, err := DecodePrivateKey(base64.StdEncoding.EncodeToString(priv))
		require.NoError(t, err)
		assert.Equal(t, priv, key)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := DecodePrivateKey("%%%")
		assert.Error(t, err)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := DecodePrivateKey(base64.StdEncoding.EncodeToString([]byte("short")))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid key length")
	})
}

func TestSignAndVerifyPayload(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	payload := []byte(`{"tracker_id":1,"ticket_id":3,"subject":"it broke"}`)

	sig, nonce, err := SignPayload(priv, payload)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)
	assert.Len(t, nonce, 16)

	assert.True(t, VerifyPayload(pub, payload, sig, nonce))

	t.Run("tampered payload", func(t *testing.T) {
		assert.False(t, VerifyPayload(pub, []byte(`{"tracker_id":2}`), sig, nonce))
	})

	t.Run("wrong nonce", func(t *testing.T) {
		assert.False(t, VerifyPayload(pub, payload, sig, "0000000000000000"))
	})

	t.Run("garbage signature", func(t *testing.T) {
		assert.False(t, VerifyPayload(pub, payload, "not base64 at all!", nonce))
	})

	t.Run("wrong key", func(t *testing.T) {
		otherPub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		assert.False(t, VerifyPayload(otherPub, payload, sig, nonce))
	})
}

func TestSignPayloadFreshNonce(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	sig1, nonce1, err := SignPayload(priv, []byte("payload"))
	require.NoError(t, err)
	sig2, nonce2, err := SignPayload(priv, []byte("payload"))
	require.NoError(t, err)

	assert.NotEqual(t, nonce1, nonce2)
	assert.NotEqual(t, sig1, sig2)
}

func TestContentDigest(t *testing.T) {
	digest := ContentDigest([]byte("ticket dump"))
	assert.True(t, strings.HasPrefix(digest, "blake2b:"))
	assert.Len(t, strings.TrimPrefix(digest, "blake2b:"), 64)

	assert.Equal(t, digest, ContentDigest([]byte("ticket dump")))
	assert.NotEqual(t, digest, ContentDigest([]byte("other dump")))
}
