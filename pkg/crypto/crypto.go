package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// Signing keys travel through config as base64. A 32-byte value is treated as
// an ed25519 seed, a 64-byte value as the full private key.

func GenerateSigningKey() (privateKey string, publicKey string, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("GenerateSigningKey error: %w", err)
	}
	return base64.StdEncoding.EncodeToString(priv.Seed()),
		base64.StdEncoding.EncodeToString(pub), nil
}

func DecodePrivateKey(encoded string) (ed25519.PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("DecodePrivateKey decode error: %w", err)
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	}
	return nil, fmt.Errorf("DecodePrivateKey: invalid key length %d", len(raw))
}

func DecodePublicKey(encoded string) (ed25519.PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("DecodePublicKey decode error: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("DecodePublicKey: invalid key length %d", len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// SignPayload signs payload||nonce and returns the base64 signature plus the
// hex nonce. The nonce is regenerated on every call so identical payloads do
// not produce identical signatures.
func SignPayload(privateKey ed25519.PrivateKey, payload []byte) (signature string, nonce string, err error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", "", fmt.Errorf("SignPayload nonce error: %w", err)
	}
	nonce = hex.EncodeToString(buf)

	signed := ed25519.Sign(privateKey, append(payload, []byte(nonce)...))
	return base64.StdEncoding.EncodeToString(signed), nonce, nil
}

func VerifyPayload(publicKey ed25519.PublicKey, payload []byte, signature string, nonce string) bool {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return ed25519.Verify(publicKey, append(payload, []byte(nonce)...), raw)
}

// ContentDigest returns the blake2b-256 digest of data in the
// "blake2b:<hex>" form used by dump files.
func ContentDigest(data []byte) string {
	sum := blake2b.Sum256(data)
	return "blake2b:" + hex.EncodeToString(sum[:])
}
