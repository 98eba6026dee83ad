package contracts

import (
	"testing"

	"github.com/empower1/contractvm/internal/eval"
	"github.com/empower1/contractvm/internal/parser"
	"github.com/empower1/contractvm/internal/vm"
)

type noopDatabase struct{}

func (noopDatabase) GetContract(name string) (*vm.Contract, error)    { return nil, nil }
func (noopDatabase) InsertContract(name string, c *vm.Contract) error { return nil }
func (noopDatabase) GetSimmedBlockHeight() (uint64, error)            { return 0, nil }
func (noopDatabase) GetSimmedBlockTime(h uint64) (uint64, error)      { return 0, nil }
func (noopDatabase) GetSimmedBlockHeaderHash(h uint64) (string, error) {
	return "", nil
}
func (noopDatabase) GetSimmedBurnchainBlockHeaderHash(h uint64) (string, error) {
	return "", nil
}
func (noopDatabase) GetSimmedBlockVRFSeed(h uint64) (string, error) { return "", nil }
func (noopDatabase) BeginSavePoint() (vm.Database, error)           { return noopDatabase{}, nil }
func (noopDatabase) Commit() error                                  { return nil }
func (noopDatabase) RollBack() error                                { return nil }

func TestInitializeRegistersFunctionsByVisibility(t *testing.T) {
	source := `
(define-public (credit (amount int)) (ok amount))
(define-read-only (get-zero) 0)
(define-private (helper) true)
`
	init := New()
	global := vm.NewGlobalContext(noopDatabase{}, nil)
	contract, err := init.Initialize("token", source, global, parser.New(), eval.New())
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	credit, ok := contract.ContractContext.LookupFunction("credit")
	if !ok {
		t.Fatalf("credit function not registered")
	}
	if !credit.IsPublic() || credit.IsReadOnly() {
		t.Fatalf("credit function visibility wrong: public=%v readOnly=%v", credit.IsPublic(), credit.IsReadOnly())
	}

	getZero, ok := contract.ContractContext.LookupFunction("get-zero")
	if !ok || !getZero.IsReadOnly() {
		t.Fatalf("get-zero function not registered as read-only")
	}

	helper, ok := contract.ContractContext.LookupFunction("helper")
	if !ok || helper.IsPublic() {
		t.Fatalf("helper function should be private, got public=%v", helper.IsPublic())
	}
}

func TestInitializeRejectsUnsupportedTopLevelForm(t *testing.T) {
	init := New()
	global := vm.NewGlobalContext(noopDatabase{}, nil)
	_, err := init.Initialize("token", "(totally-unsupported 1 2)", global, parser.New(), eval.New())
	if err == nil {
		t.Fatalf("Initialize() with unsupported form returned nil error")
	}
}

func TestContentHashIsStableAndDistinct(t *testing.T) {
	a := ContentHash("(define-public (f) (ok true))")
	b := ContentHash("(define-public (f) (ok true))")
	c := ContentHash("(define-public (g) (ok false))")
	if a != b {
		t.Fatalf("ContentHash() not stable for identical source")
	}
	if a == c {
		t.Fatalf("ContentHash() collided for distinct source")
	}
}
