package types

import (
	"errors"
	"math/big"
	"testing"

	"github.com/empower1/contractvm/internal/crypto"
)

func TestCheckedAddI128WithinRange(t *testing.T) {
	sum, err := CheckedAddI128(big.NewInt(40), big.NewInt(2))
	if err != nil {
		t.Fatalf("CheckedAddI128() error = %v", err)
	}
	if sum.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("CheckedAddI128() = %s, want 42", sum)
	}
}

func TestCheckedAddI128OverflowsAtUpperBound(t *testing.T) {
	_, err := CheckedAddI128(maxI128, big.NewInt(1))
	if !errors.Is(err, ErrArithmeticOverflow) {
		t.Fatalf("CheckedAddI128() error = %v, want ErrArithmeticOverflow", err)
	}
}

func TestCheckedAddI128OverflowsAtLowerBound(t *testing.T) {
	_, err := CheckedAddI128(minI128, big.NewInt(-1))
	if !errors.Is(err, ErrArithmeticOverflow) {
		t.Fatalf("CheckedAddI128() error = %v, want ErrArithmeticOverflow", err)
	}
}

func TestCheckedAddI128AtExactBoundaryDoesNotOverflow(t *testing.T) {
	if _, err := CheckedAddI128(maxI128, big.NewInt(0)); err != nil {
		t.Fatalf("CheckedAddI128() at maxI128 + 0 error = %v", err)
	}
	if _, err := CheckedAddI128(minI128, big.NewInt(0)); err != nil {
		t.Fatalf("CheckedAddI128() at minI128 + 0 error = %v", err)
	}
}

func TestValueConstructorsAndString(t *testing.T) {
	if got := NoneValue().String(); got != "none" {
		t.Fatalf("NoneValue().String() = %q, want none", got)
	}
	if got := BoolValue(true).String(); got != "true" {
		t.Fatalf("BoolValue(true).String() = %q, want true", got)
	}
	if got := IntValue(big.NewInt(7)).String(); got != "7" {
		t.Fatalf("IntValue(7).String() = %q, want 7", got)
	}

	ok := OkResponse(IntValue(big.NewInt(1)))
	if !ok.IsResponse() {
		t.Fatalf("OkResponse() is not a response")
	}
	if got, want := ok.String(), "(ok 1)"; got != want {
		t.Fatalf("OkResponse().String() = %q, want %q", got, want)
	}

	errResp := ErrResponse(IntValue(big.NewInt(2)))
	if got, want := errResp.String(), "(err 2)"; got != want {
		t.Fatalf("ErrResponse().String() = %q, want %q", got, want)
	}
}

func TestValueCloneIsIndependentOfKind(t *testing.T) {
	v := IntValue(big.NewInt(9))
	clone := v.Clone()
	if clone.Kind != KindInt || clone.IntVal.Cmp(big.NewInt(9)) != 0 {
		t.Fatalf("Clone() = %+v, want a copy of the int value", clone)
	}
}

func TestPrincipalEqualAndZero(t *testing.T) {
	var zero PrincipalData
	if !zero.IsZero() {
		t.Fatalf("zero-value PrincipalData.IsZero() = false, want true")
	}

	priv, err := crypto.GenerateECDSAKeyPair()
	if err != nil {
		t.Fatalf("GenerateECDSAKeyPair() error = %v", err)
	}
	a, err := NewPrincipalFromPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("NewPrincipalFromPublicKey() error = %v", err)
	}
	if a.IsZero() {
		t.Fatalf("derived principal reported as zero")
	}
	if !a.Equal(a) {
		t.Fatalf("principal does not equal itself")
	}
	if a.Equal(zero) {
		t.Fatalf("derived principal unexpectedly equals zero value")
	}
}

func TestAssetIdentifierString(t *testing.T) {
	id := AssetIdentifier{ContractName: "token", AssetName: "credits"}
	if got, want := id.String(), "token.credits"; got != want {
		t.Fatalf("AssetIdentifier.String() = %q, want %q", got, want)
	}
}
