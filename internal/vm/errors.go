package vm

import (
	"errors"
	"fmt"
)

// MaxContextDepth bounds how many nested lexical scopes a LocalContext chain
// may grow to before LocalContext.Extend refuses to go deeper.
const MaxContextDepth = 256

// UncheckedError covers conditions a well-typed, well-analyzed contract
// could never hit: calling something that doesn't exist, or in a way the
// type checker should have rejected. If these surface at runtime, an earlier
// analysis pass had a bug.
type UncheckedError struct {
	Kind    UncheckedErrorKind
	Message string
}

type UncheckedErrorKind int

const (
	UndefinedFunction UncheckedErrorKind = iota
	NonPublicFunction
	ContractMustReturnBoolean
)

func (e *UncheckedError) Error() string {
	return fmt.Sprintf("unchecked error: %s", e.Message)
}

func NewUndefinedFunctionError(name string) error {
	return &UncheckedError{Kind: UndefinedFunction, Message: fmt.Sprintf("no such function: %s", name)}
}

func NewNonPublicFunctionError(name string) error {
	return &UncheckedError{Kind: NonPublicFunction, Message: fmt.Sprintf("function not public: %s", name)}
}

func NewContractMustReturnBooleanError() error {
	return &UncheckedError{Kind: ContractMustReturnBoolean, Message: "contract call must return a response type"}
}

// RuntimeError covers conditions a well-formed contract can legitimately
// trigger at runtime: overflow, malformed source, or exceeding a resource
// bound. These are expected, recoverable failures of a single execution.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
	cause   error
}

type RuntimeErrorKind int

const (
	ArithmeticOverflow RuntimeErrorKind = iota
	ParseError
	MaxContextDepthReached
)

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %s", e.Message)
}

// Unwrap exposes the underlying sentinel a RuntimeError was built from, so
// callers can errors.Is/As through it (e.g. types.ErrArithmeticOverflow).
func (e *RuntimeError) Unwrap() error {
	return e.cause
}

func NewArithmeticOverflowError(cause error) error {
	return &RuntimeError{Kind: ArithmeticOverflow, Message: cause.Error(), cause: cause}
}

func NewParseError(message string) error {
	return &RuntimeError{Kind: ParseError, Message: message}
}

func NewMaxContextDepthReachedError() error {
	return &RuntimeError{Kind: MaxContextDepthReached, Message: fmt.Sprintf("exceeded max local context depth of %d", MaxContextDepth)}
}

// InterpreterError signals a bug in the execution-context core itself: an
// invariant the core is supposed to maintain (balanced call stack push/pop,
// a constructible asset table on commit) was violated. Unlike
// UncheckedError and RuntimeError, there is no contract author action that
// causes this; it means our bookkeeping is wrong.
type InterpreterError struct {
	Message string
}

func (e *InterpreterError) Error() string {
	return fmt.Sprintf("interpreter error: %s", e.Message)
}

func NewInterpreterError(message string) error {
	return &InterpreterError{Message: message}
}

// ErrFailedToConstructAssetTable is returned by OwnedEnvironment.Commit when
// the outermost GlobalContext's commit unexpectedly yields no asset map —
// this should be unreachable for a context with no parent, and signals a
// bookkeeping bug rather than a contract-level failure.
var ErrFailedToConstructAssetTable = errors.New("failed to construct asset table")

// AsUnchecked reports whether err is an UncheckedError and returns it.
func AsUnchecked(err error) (*UncheckedError, bool) {
	var u *UncheckedError
	ok := errors.As(err, &u)
	return u, ok
}

// AsRuntime reports whether err is a RuntimeError and returns it.
func AsRuntime(err error) (*RuntimeError, bool) {
	var r *RuntimeError
	ok := errors.As(err, &r)
	return r, ok
}

// AsInterpreter reports whether err is an InterpreterError and returns it.
func AsInterpreter(err error) (*InterpreterError, bool) {
	var i *InterpreterError
	ok := errors.As(err, &i)
	return i, ok
}
