package types

import (
	"fmt"
	"math/big"
)

// Kind discriminates the variants of Value. Only the variants the
// execution-context core actually touches (spec.md §3: Principal and
// Response) are load-bearing; Int/Bool/None exist so the evaluator has
// something to compute with.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindPrincipal
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindPrincipal:
		return "principal"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// ResponseData is the payload of a Response value: the outcome of a
// public-function call, consumed by GlobalContext.HandleTxResult to decide
// whether to commit or roll back the enclosing save point.
type ResponseData struct {
	Committed bool
	Data      Value
}

// Value is the tagged union of runtime values passed between the evaluator
// and the execution-context core. It is deliberately small: spec.md treats
// the full value/type system as an external collaborator and only
// constrains two variants (Principal, Response).
type Value struct {
	Kind      Kind
	BoolVal   bool
	IntVal    *big.Int
	Principal PrincipalData
	Response  *ResponseData
}

// NoneValue constructs the absence-of-value.
func NoneValue() Value { return Value{Kind: KindNone} }

// BoolValue constructs a boolean value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, BoolVal: b} }

// IntValue constructs an integer value from a big.Int. The caller is
// responsible for ensuring n is within the signed 128-bit range; arithmetic
// that can overflow should go through CheckedAddI128.
func IntValue(n *big.Int) Value { return Value{Kind: KindInt, IntVal: n} }

// PrincipalValue constructs a principal value.
func PrincipalValue(p PrincipalData) Value { return Value{Kind: KindPrincipal, Principal: p} }

// OkResponse constructs a committed Response wrapping data.
func OkResponse(data Value) Value {
	return Value{Kind: KindResponse, Response: &ResponseData{Committed: true, Data: data}}
}

// ErrResponse constructs a non-committed Response wrapping data.
func ErrResponse(data Value) Value {
	return Value{Kind: KindResponse, Response: &ResponseData{Committed: false, Data: data}}
}

// IsPrincipal reports whether v holds a Principal.
func (v Value) IsPrincipal() bool { return v.Kind == KindPrincipal }

// IsResponse reports whether v holds a Response.
func (v Value) IsResponse() bool { return v.Kind == KindResponse }

// Clone returns a value safe to hand to a different lexical scope.
// PrincipalData and big.Int are both treated as immutable once constructed,
// so Clone is a shallow copy — this mirrors spec.md §4.3's "variables are
// cloned on lookup, never handed out by reference" rule without needing a
// deep-copy traversal.
func (v Value) Clone() Value {
	return v
}

func (v Value) String() string {
	switch v.Kind {
	case KindNone:
		return "none"
	case KindBool:
		return fmt.Sprintf("%t", v.BoolVal)
	case KindInt:
		if v.IntVal == nil {
			return "0"
		}
		return v.IntVal.String()
	case KindPrincipal:
		return v.Principal.String()
	case KindResponse:
		if v.Response.Committed {
			return fmt.Sprintf("(ok %s)", v.Response.Data)
		}
		return fmt.Sprintf("(err %s)", v.Response.Data)
	default:
		return "<invalid value>"
	}
}
