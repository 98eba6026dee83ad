package types

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/empower1/contractvm/internal/crypto"
)

// PrincipalData is the hashable, cloneable identity of a token-holding
// entity: a contract-call sender, caller, or asset-transfer principal. It
// wraps a did:key identifier derived from a secp256r1 public key (see
// internal/crypto), so two PrincipalData values referring to the same key
// compare equal and are safe to use as map keys.
type PrincipalData struct {
	did string
}

// NewPrincipalFromPublicKey derives a PrincipalData from an ECDSA public key.
func NewPrincipalFromPublicKey(pubKey *ecdsa.PublicKey) (PrincipalData, error) {
	did, err := crypto.GenerateDIDKeyFromECDSAPublicKey(pubKey)
	if err != nil {
		return PrincipalData{}, fmt.Errorf("derive principal: %w", err)
	}
	return PrincipalData{did: did}, nil
}

// PrincipalFromDID wraps an already-encoded did:key string, validating it
// round-trips through the expected secp256r1 encoding.
func PrincipalFromDID(did string) (PrincipalData, error) {
	if _, err := crypto.ParseDIDKeySecp256r1(did); err != nil {
		return PrincipalData{}, fmt.Errorf("invalid principal did: %w", err)
	}
	return PrincipalData{did: did}, nil
}

// IsZero reports whether p is the zero value (no identity set).
func (p PrincipalData) IsZero() bool {
	return p.did == ""
}

// String renders the principal's did:key identifier.
func (p PrincipalData) String() string {
	return p.did
}

// Equal reports whether p and other refer to the same identity.
func (p PrincipalData) Equal(other PrincipalData) bool {
	return p.did == other.did
}
