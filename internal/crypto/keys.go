// Package crypto derives the principal identities (did:key identifiers and
// checksummed addresses) that internal/types.PrincipalData wraps.
package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"fmt"
)

var (
	ErrKeyGeneration     = errors.New("key generation failed")
	ErrKeySerialization  = errors.New("key serialization failed")
	ErrKeyDeserialization = errors.New("key deserialization failed")
	ErrInvalidKeyFormat  = errors.New("invalid key format")
	ErrUnsupportedCurve  = errors.New("unsupported elliptic curve")
)

// P256UncompressedPubKeyLength is the byte length of an uncompressed P-256
// public key: 0x04 prefix + 32-byte X + 32-byte Y.
const P256UncompressedPubKeyLength = 65

// GenerateECDSAKeyPair generates a new ECDSA private/public key pair on the
// P-256 curve.
func GenerateECDSAKeyPair() (*ecdsa.PrivateKey, error) {
	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return privKey, nil
}

// SerializePublicKeyToBytes marshals an ECDSA public key to its uncompressed
// byte representation.
func SerializePublicKeyToBytes(pubKey *ecdsa.PublicKey) ([]byte, error) {
	if pubKey == nil {
		return nil, fmt.Errorf("%w: public key is nil", ErrKeySerialization)
	}
	if pubKey.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: public key curve must be P256, got %s", ErrUnsupportedCurve, pubKey.Curve.Params().Name)
	}
	return elliptic.Marshal(elliptic.P256(), pubKey.X, pubKey.Y), nil
}

// DeserializePublicKeyFromBytes unmarshals an uncompressed P-256 public key.
func DeserializePublicKeyFromBytes(pubKeyBytes []byte) (*ecdsa.PublicKey, error) {
	if len(pubKeyBytes) != P256UncompressedPubKeyLength {
		return nil, fmt.Errorf("%w: public key bytes must be %d bytes, got %d", ErrInvalidKeyFormat, P256UncompressedPubKeyLength, len(pubKeyBytes))
	}
	if pubKeyBytes[0] != 0x04 {
		return nil, fmt.Errorf("%w: public key bytes must be uncompressed (start with 0x04)", ErrInvalidKeyFormat)
	}
	x, y := elliptic.Unmarshal(elliptic.P256(), pubKeyBytes)
	if x == nil || y == nil {
		return nil, fmt.Errorf("%w: failed to unmarshal public key bytes", ErrKeyDeserialization)
	}
	return &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}, nil
}
