package crypto

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"errors"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multicodec"
)

var (
	ErrInvalidPublicKeyFormat = errors.New("invalid public key format")
	ErrDIDKeyFormat           = errors.New("invalid did:key string format")
	ErrMultibaseDecode        = errors.New("failed to decode multibase string")
	ErrUnexpectedEncoding     = errors.New("unexpected multibase encoding")
	ErrMulticodecRead         = errors.New("failed to read multicodec code")
	ErrUnexpectedMulticodec   = errors.New("unexpected multicodec type")
	ErrPubKeyLengthMismatch   = errors.New("public key length mismatch after decoding")
)

// CodecSecp256r1PubKeyUncompressed is the multicodec code for uncompressed
// P-256 public keys, used to make did:key identifiers self-describing.
const CodecSecp256r1PubKeyUncompressed multicodec.Code = 0x1201

// GenerateDIDKeySecp256r1 derives a did:key identifier from an uncompressed
// P-256 public key. This identifier is what internal/types.PrincipalData
// uses as a principal's stable, hashable identity.
func GenerateDIDKeySecp256r1(pubKeyBytes []byte) (string, error) {
	if len(pubKeyBytes) != P256UncompressedPubKeyLength || pubKeyBytes[0] != 0x04 {
		return "", fmt.Errorf("%w: expected %d bytes starting with 0x04, got %d", ErrInvalidPublicKeyFormat, P256UncompressedPubKeyLength, len(pubKeyBytes))
	}

	var prefixed bytes.Buffer
	prefixed.Write(multicodec.Header(CodecSecp256r1PubKeyUncompressed))
	prefixed.Write(pubKeyBytes)

	encoded, err := multibase.Encode(multibase.Base58BTC, prefixed.Bytes())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMultibaseDecode, err)
	}
	return "did:key:" + encoded, nil
}

// GenerateDIDKeyFromECDSAPublicKey is a convenience wrapper around
// GenerateDIDKeySecp256r1 for callers holding an *ecdsa.PublicKey.
func GenerateDIDKeyFromECDSAPublicKey(pubKey *ecdsa.PublicKey) (string, error) {
	if pubKey == nil {
		return "", fmt.Errorf("%w: public key cannot be nil", ErrInvalidPublicKeyFormat)
	}
	if pubKey.Curve != elliptic.P256() {
		return "", fmt.Errorf("%w: public key must use P256, got %s", ErrUnsupportedCurve, pubKey.Curve.Params().Name)
	}
	return GenerateDIDKeySecp256r1(elliptic.Marshal(elliptic.P256(), pubKey.X, pubKey.Y))
}

// ParseDIDKeySecp256r1 recovers the uncompressed P-256 public key bytes
// encoded in a did:key identifier.
func ParseDIDKeySecp256r1(didKeyString string) ([]byte, error) {
	if !strings.HasPrefix(didKeyString, "did:key:") {
		return nil, ErrDIDKeyFormat
	}
	multibasePart := strings.TrimPrefix(didKeyString, "did:key:")

	encoding, decoded, err := multibase.Decode(multibasePart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMultibaseDecode, err)
	}
	if encoding != multibase.Base58BTC {
		return nil, fmt.Errorf("%w: expected Base58BTC ('z') encoding, got %q", ErrUnexpectedEncoding, multibase.EncodingToStr[encoding])
	}

	codec, remaining, err := multicodec.Consume(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMulticodecRead, err)
	}
	if multicodec.Code(codec) != CodecSecp256r1PubKeyUncompressed {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrUnexpectedMulticodec, CodecSecp256r1PubKeyUncompressed, multicodec.Code(codec))
	}

	if len(remaining) != P256UncompressedPubKeyLength {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrPubKeyLengthMismatch, P256UncompressedPubKeyLength, len(remaining))
	}
	if remaining[0] != 0x04 {
		return nil, fmt.Errorf("%w: decoded key missing 0x04 uncompressed prefix", ErrInvalidPublicKeyFormat)
	}
	return remaining, nil
}
