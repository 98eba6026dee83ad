package vm

import (
	"errors"
	"math/big"
	"testing"

	"github.com/empower1/contractvm/internal/types"
)

func newTestEnvironment(db Database) (*Environment, *fakeEvaluator) {
	evaluator := &fakeEvaluator{}
	global := NewGlobalContext(db, nil)
	contract := NewContractContext(transientContractName)
	env := NewEnvironment(global, contract, NewCallStack(), nil, nil, &fakeParser{}, evaluator, &fakeInitializer{})
	return env, evaluator
}

func TestExecuteContractRejectsUndefinedFunction(t *testing.T) {
	db := newFakeDatabase()
	db.contracts["token"] = &Contract{Name: "token", ContractContext: NewContractContext("token")}
	env, _ := newTestEnvironment(db)

	_, err := env.ExecuteContract("token", "transfer", nil)
	uc, ok := AsUnchecked(err)
	if !ok || uc.Kind != UndefinedFunction {
		t.Fatalf("ExecuteContract() error = %v, want UncheckedError(UndefinedFunction)", err)
	}
}

func TestExecuteContractRejectsNonPublicFunction(t *testing.T) {
	ctx := NewContractContext("token")
	ctx.DefineFunction("helper", &fakeFunction{id: FunctionIdentifier{Name: "helper"}, public: false})
	db := newFakeDatabase()
	db.contracts["token"] = &Contract{Name: "token", ContractContext: ctx}
	env, _ := newTestEnvironment(db)

	_, err := env.ExecuteContract("token", "helper", nil)
	uc, ok := AsUnchecked(err)
	if !ok || uc.Kind != NonPublicFunction {
		t.Fatalf("ExecuteContract() error = %v, want UncheckedError(NonPublicFunction)", err)
	}
}

func TestExecuteContractRunsPublicFunctionAndCommits(t *testing.T) {
	called := false
	fn := &fakeFunction{
		id:     FunctionIdentifier{Name: "transfer"},
		public: true,
		apply: func(args []types.Value, env *Environment) (types.Value, error) {
			called = true
			return types.OkResponse(types.BoolValue(true)), nil
		},
	}
	ctx := NewContractContext("token")
	ctx.DefineFunction("transfer", fn)
	db := newFakeDatabase()
	db.contracts["token"] = &Contract{Name: "token", ContractContext: ctx}
	env, _ := newTestEnvironment(db)

	args := []Expression{fakeExpression{value: types.IntValue(big.NewInt(10)), atom: true}}
	result, err := env.ExecuteContract("token", "transfer", args)
	if err != nil {
		t.Fatalf("ExecuteContract() error = %v", err)
	}
	if !called {
		t.Fatalf("ExecuteContract() did not invoke the function")
	}
	if !result.Response.Committed {
		t.Fatalf("ExecuteContract() result not committed")
	}
}

func TestExecuteContractRejectsNonValueArgument(t *testing.T) {
	fn := &fakeFunction{id: FunctionIdentifier{Name: "transfer"}, public: true, apply: func(args []types.Value, env *Environment) (types.Value, error) {
		return types.OkResponse(types.BoolValue(true)), nil
	}}
	ctx := NewContractContext("token")
	ctx.DefineFunction("transfer", fn)
	db := newFakeDatabase()
	db.contracts["token"] = &Contract{Name: "token", ContractContext: ctx}
	env, _ := newTestEnvironment(db)

	args := []Expression{fakeExpression{atom: false}}
	_, err := env.ExecuteContract("token", "transfer", args)
	if _, ok := AsInterpreter(err); !ok {
		t.Fatalf("ExecuteContract() error = %v, want InterpreterError", err)
	}
}

func TestExecuteFunctionAsTransactionRollsBackOnError(t *testing.T) {
	boom := errors.New("boom")
	fn := &fakeFunction{
		id: FunctionIdentifier{Name: "fails"},
		apply: func(args []types.Value, env *Environment) (types.Value, error) {
			_ = env.GlobalContext().Database().InsertContract("leaked", &Contract{Name: "leaked", ContractContext: NewContractContext("leaked")})
			return types.Value{}, boom
		},
	}
	db := newFakeDatabase()
	env, _ := newTestEnvironment(db)

	_, err := env.ExecuteFunctionAsTransaction(fn, nil, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("ExecuteFunctionAsTransaction() error = %v, want boom", err)
	}
	if _, err := db.GetContract("leaked"); err == nil {
		t.Fatalf("ExecuteFunctionAsTransaction() write from a failed call was not rolled back")
	}
}

func TestExecuteFunctionAsTransactionReadOnlyAlwaysRollsBack(t *testing.T) {
	p := newTestPrincipal()
	fn := &fakeFunction{
		id:       FunctionIdentifier{Name: "get-balance"},
		readOnly: true,
		apply: func(args []types.Value, env *Environment) (types.Value, error) {
			v := types.IntValue(big.NewInt(100))
			_ = env.GlobalContext().LogAssetTransfer(p, "token", "credits", &v)
			return types.IntValue(big.NewInt(100)), nil
		},
	}
	db := newFakeDatabase()
	env, _ := newTestEnvironment(db)

	result, err := env.ExecuteFunctionAsTransaction(fn, nil, nil)
	if err != nil {
		t.Fatalf("ExecuteFunctionAsTransaction() error = %v", err)
	}
	if result.IntVal.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("ExecuteFunctionAsTransaction() result = %v, want 100", result)
	}

	assetMap, err := env.GlobalContext().Commit()
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if entries := assetMap.ToTable()[p]; len(entries) != 0 {
		t.Fatalf("read-only call's asset transfer leaked into the enclosing scope: %+v", entries)
	}
}

func TestEnvironmentNestAsPrincipalSetsSenderAndCaller(t *testing.T) {
	db := newFakeDatabase()
	env, _ := newTestEnvironment(db)
	p := newTestPrincipal()

	nested := env.NestAsPrincipal(p)
	sender, ok := nested.Sender()
	if !ok || !sender.Equal(p) {
		t.Fatalf("Sender() = %v, %v, want %v, true", sender, ok, p)
	}
	caller, ok := nested.Caller()
	if !ok || !caller.Equal(p) {
		t.Fatalf("Caller() = %v, %v, want %v, true", caller, ok, p)
	}
}

func TestEnvironmentNestWithCallerKeepsSender(t *testing.T) {
	db := newFakeDatabase()
	env, _ := newTestEnvironment(db)
	sender := newTestPrincipal()
	caller := newTestPrincipal()

	base := env.NestAsPrincipal(sender)
	nested := base.NestWithCaller(caller)

	gotSender, _ := nested.Sender()
	if !gotSender.Equal(sender) {
		t.Fatalf("Sender() = %v, want unchanged %v", gotSender, sender)
	}
	gotCaller, _ := nested.Caller()
	if !gotCaller.Equal(caller) {
		t.Fatalf("Caller() = %v, want %v", gotCaller, caller)
	}
}

func TestEvalReadOnlyAlwaysRollsBackRegardlessOfDatabaseWrites(t *testing.T) {
	ctx := NewContractContext("token")
	db := newFakeDatabase()
	db.contracts["token"] = &Contract{Name: "token", ContractContext: ctx}

	evaluator := &fakeEvaluator{eval: func(expr Expression, env *Environment, local *LocalContext) (types.Value, error) {
		_ = env.GlobalContext().Database().InsertContract("other", &Contract{Name: "other", ContractContext: NewContractContext("other")})
		return types.BoolValue(true), nil
	}}
	global := NewGlobalContext(db, nil)
	env := NewEnvironment(global, ctx, NewCallStack(), nil, nil, &fakeParser{exprs: []Expression{fakeExpression{atom: true}}}, evaluator, &fakeInitializer{})

	result, err := env.EvalReadOnly("token", "(get-name)")
	if err != nil {
		t.Fatalf("EvalReadOnly() error = %v", err)
	}
	if !result.BoolVal {
		t.Fatalf("EvalReadOnly() result = %v, want true", result)
	}
	if _, err := db.GetContract("other"); err == nil {
		t.Fatalf("EvalReadOnly() write to database was not rolled back")
	}
}

func TestInitializeContractCommitsOnSuccess(t *testing.T) {
	db := newFakeDatabase()
	initializer := &fakeInitializer{build: func(name, source string, globalCtx *GlobalContext, parser Parser, evaluator Evaluator) (*Contract, error) {
		return &Contract{Name: name, ContractContext: NewContractContext(name)}, nil
	}}
	global := NewGlobalContext(db, nil)
	env := NewEnvironment(global, NewContractContext(transientContractName), NewCallStack(), nil, nil, &fakeParser{}, &fakeEvaluator{}, initializer)

	if err := env.InitializeContract("token", "(define-public (noop) (ok true))"); err != nil {
		t.Fatalf("InitializeContract() error = %v", err)
	}
	if _, err := db.GetContract("token"); err != nil {
		t.Fatalf("GetContract() after InitializeContract() error = %v", err)
	}
}

func TestInitializeContractRollsBackOnInitializerError(t *testing.T) {
	db := newFakeDatabase()
	boom := errors.New("bad syntax")
	initializer := &fakeInitializer{build: func(name, source string, globalCtx *GlobalContext, parser Parser, evaluator Evaluator) (*Contract, error) {
		return nil, boom
	}}
	global := NewGlobalContext(db, nil)
	env := NewEnvironment(global, NewContractContext(transientContractName), NewCallStack(), nil, nil, &fakeParser{}, &fakeEvaluator{}, initializer)

	err := env.InitializeContract("token", "(totally broken")
	if !errors.Is(err, boom) {
		t.Fatalf("InitializeContract() error = %v, want boom", err)
	}
	if _, err := db.GetContract("token"); err == nil {
		t.Fatalf("GetContract() found a contract despite initializer failure")
	}
}
