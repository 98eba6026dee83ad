package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // address derivation matches the teacher's scheme
)

var (
	ErrInvalidAddressLength = errors.New("invalid address length")
	ErrInvalidAddressFormat = errors.New("invalid address format")
	ErrAddressChecksum      = errors.New("address checksum mismatch")
	ErrInvalidVersionByte   = errors.New("invalid address version byte")
	ErrPublicKeyHash        = errors.New("public key hash failed")
)

const (
	addressPrefix         = "cvm"
	addressVersionByte    = 0x00
	addressChecksumLength = 4
	publicKeyHashLength   = 20
	fullAddressLength     = 1 + publicKeyHashLength + addressChecksumLength
)

// HashPublicKey derives a short, unique identifier from a raw public key:
// RIPEMD160(SHA256(pubKeyBytes)). This is the core of a principal's address.
func HashPublicKey(pubKeyBytes []byte) ([]byte, error) {
	if len(pubKeyBytes) == 0 {
		return nil, fmt.Errorf("%w: public key bytes cannot be empty", ErrPublicKeyHash)
	}
	sha := sha256.Sum256(pubKeyBytes)
	ripemd := ripemd160.New()
	ripemd.Write(sha[:])
	hash := ripemd.Sum(nil)
	if len(hash) != publicKeyHashLength {
		return nil, fmt.Errorf("%w: derived hash has incorrect length: expected %d, got %d", ErrPublicKeyHash, publicKeyHashLength, len(hash))
	}
	return hash, nil
}

// checksum returns the first addressChecksumLength bytes of a double SHA256
// over payload.
func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:addressChecksumLength]
}

// EncodeAddress encodes a public key hash into a checksummed, prefixed
// address string.
func EncodeAddress(pubKeyHash []byte) (string, error) {
	if len(pubKeyHash) != publicKeyHashLength {
		return "", fmt.Errorf("%w: public key hash must be %d bytes", ErrInvalidAddressLength, publicKeyHashLength)
	}
	payload := append([]byte{addressVersionByte}, pubKeyHash...)
	payloadWithChecksum := append(payload, checksum(payload)...)
	return addressPrefix + "_" + hex.EncodeToString(payloadWithChecksum), nil
}

// DecodeAddress recovers the public key hash from an address string,
// validating its version byte and checksum.
func DecodeAddress(address string) ([]byte, error) {
	prefix := addressPrefix + "_"
	if !strings.HasPrefix(address, prefix) {
		return nil, fmt.Errorf("%w: address does not start with %q", ErrInvalidAddressFormat, prefix)
	}
	decoded, err := hex.DecodeString(strings.TrimPrefix(address, prefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddressFormat, err)
	}
	if len(decoded) != fullAddressLength {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAddressLength, fullAddressLength, len(decoded))
	}

	versionByte := decoded[0]
	pubKeyHash := decoded[1 : 1+publicKeyHashLength]
	gotChecksum := decoded[1+publicKeyHashLength:]

	if versionByte != addressVersionByte {
		return nil, fmt.Errorf("%w: expected 0x%x, got 0x%x", ErrInvalidVersionByte, addressVersionByte, versionByte)
	}
	if want := checksum(decoded[:fullAddressLength-addressChecksumLength]); !bytes.Equal(gotChecksum, want) {
		return nil, ErrAddressChecksum
	}
	return pubKeyHash, nil
}

// IsValidAddress reports whether address decodes and checksums correctly.
func IsValidAddress(address string) bool {
	_, err := DecodeAddress(address)
	return err == nil
}
