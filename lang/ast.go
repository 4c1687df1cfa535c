package lang

import (
	"strconv"

	"github.com/nojimay/jack/lang/token"
)

func quoteString(s string) string {
	return strconv.Quote(s)
}

// ExprKind identifies the variant of an Expr node.
type ExprKind int

const (
	ExprNull ExprKind = iota
	ExprBool
	ExprNumber
	ExprString
	ExprArray
	ExprDict
	ExprVariable
	ExprUnaryOp
	ExprBinaryOp
	ExprIf
	ExprLocal
	ExprFunction
	ExprFunctionCall
	ExprFieldAccess
	ExprIndexAccess
)

// UnaryOp identifies a unary operator.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

// BinaryOp identifies a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNotEq
	OpAnd
	OpOr
)

// DictEntry is a single key/value pair in a dict literal, in source order.
type DictEntry struct {
	Key   string
	Value *Expr
}

// Expr is an abstract syntax tree node for a Jack expression. Only the
// field(s) relevant to Kind are populated; this mirrors the teacher
// module's tagged-union-via-exhaustive-switch style rather than a set of
// interface-typed node implementations.
type Expr struct {
	Kind ExprKind
	Pos  token.Position

	// ExprBool
	Bool bool
	// ExprNumber
	Number float64
	// ExprString, ExprVariable, ExprFieldAccess (field name)
	Str string
	// ExprArray
	Elements []*Expr
	// ExprDict
	Entries []DictEntry

	// ExprUnaryOp
	UnaryOp UnaryOp
	// ExprBinaryOp
	BinaryOp BinaryOp
	// ExprUnaryOp, ExprBinaryOp (LHS), ExprIf (condition), ExprFieldAccess/
	// ExprIndexAccess (receiver), ExprFunctionCall (callee)
	X *Expr
	// ExprBinaryOp (RHS), ExprIndexAccess (index)
	Y *Expr

	// ExprIf
	Then *Expr
	Else *Expr

	// ExprLocal
	Name  string
	Bound *Expr
	Body  *Expr

	// ExprFunction
	Params []string

	// ExprFunctionCall
	Args []*Expr
}

// String renders a compact debug form of the expression tree, used by
// tests to assert on parsed ASTs without a full structural comparison.
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}

	switch e.Kind {
	case ExprNull:
		return "null"
	case ExprBool:
		if e.Bool {
			return "true"
		}

		return "false"
	case ExprNumber:
		return formatNumber(e.Number)
	case ExprString:
		return quoteString(e.Str)
	case ExprArray:
		return joinTree("[", e.Elements, "]")
	case ExprDict:
		return dictTreeString(e)
	case ExprVariable:
		return e.Str
	case ExprUnaryOp:
		return unaryOpName(e.UnaryOp) + "(" + e.X.String() + ")"
	case ExprBinaryOp:
		return binaryOpName(e.BinaryOp) + "(" + e.X.String() + ", " + e.Y.String() + ")"
	case ExprIf:
		return "if(" + e.X.String() + ", " + e.Then.String() + ", " + e.Else.String() + ")"
	case ExprLocal:
		return "local(" + e.Name + "=" + e.Bound.String() + "; " + e.Body.String() + ")"
	case ExprFunction:
		return "function(" + joinParams(e.Params) + " -> " + e.Body.String() + ")"
	case ExprFunctionCall:
		return "call(" + e.X.String() + ", " + joinTree("[", e.Args, "]") + ")"
	case ExprFieldAccess:
		return e.X.String() + "." + e.Str
	case ExprIndexAccess:
		return e.X.String() + "[" + e.Y.String() + "]"
	default:
		return "<invalid expr>"
	}
}

func joinParams(params []string) string {
	out := ""

	for i, p := range params {
		if i > 0 {
			out += ", "
		}

		out += p
	}

	return out
}

func joinTree(open string, elems []*Expr, close string) string {
	out := open

	for i, el := range elems {
		if i > 0 {
			out += ", "
		}

		out += el.String()
	}

	return out + close
}

func dictTreeString(e *Expr) string {
	out := "{"

	for i, entry := range e.Entries {
		if i > 0 {
			out += ", "
		}

		out += quoteString(entry.Key) + ": " + entry.Value.String()
	}

	return out + "}"
}

func unaryOpName(op UnaryOp) string {
	switch op {
	case OpNeg:
		return "Neg"
	case OpNot:
		return "Not"
	default:
		return "?"
	}
}

func binaryOpName(op BinaryOp) string {
	switch op {
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	case OpMod:
		return "Mod"
	case OpEq:
		return "Eq"
	case OpNotEq:
		return "NotEq"
	case OpAnd:
		return "And"
	case OpOr:
		return "Or"
	default:
		return "?"
	}
}
