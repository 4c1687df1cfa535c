package lang

import (
	"context"
	"log/slog"

	"github.com/nojimay/jack/log"
)

// ErrRecursionDepth guards against runaway expression nesting overrunning
// the Go call stack; it is a defensive limit, not one of the language's
// named error kinds.
var ErrRecursionDepth = NewError("expression nested too deeply")

// maxEvalDepth bounds eval's recursion so a pathological input fails with
// ErrRecursionDepth instead of crashing the process.
const maxEvalDepth = 10000

// evalContext threads per-evaluation state through the recursive eval
// calls: the current nesting depth (for the recursion guard) and a context
// for trace-level logging.
type evalContext struct {
	ctx   context.Context
	depth int
}

// Eval evaluates expr in env to weak head normal form: the result is fully
// tagged (Null/Bool/Number/String/Array/Object/Closure) but array elements
// and object field values remain unforced Thunks until something demands
// them.
func Eval(ctx context.Context, expr *Expr, env *Env) (*Value, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	return eval(&evalContext{ctx: ctx}, expr, env)
}

func eval(ctx *evalContext, expr *Expr, env *Env) (*Value, error) {
	if ctx == nil {
		ctx = &evalContext{ctx: context.Background()}
	}

	ctx.depth++
	defer func() { ctx.depth-- }()

	if ctx.depth > maxEvalDepth {
		return nil, ErrRecursionDepth
	}

	log.TraceContext(ctx.ctx, "eval", slog.String("kind", exprKindName(expr.Kind)))

	switch expr.Kind {
	case ExprNull:
		return Null, nil
	case ExprBool:
		return NewBool(expr.Bool), nil
	case ExprNumber:
		return NewNumber(expr.Number), nil
	case ExprString:
		return NewString(expr.Str), nil
	case ExprArray:
		return evalArray(ctx, expr, env)
	case ExprDict:
		return evalDict(ctx, expr, env)
	case ExprVariable:
		return evalVariable(ctx, expr, env)
	case ExprUnaryOp:
		return evalUnary(ctx, expr, env)
	case ExprBinaryOp:
		return evalBinary(ctx, expr, env)
	case ExprIf:
		return evalIf(ctx, expr, env)
	case ExprLocal:
		return evalLocal(ctx, expr, env)
	case ExprFunction:
		return NewClosure(&Closure{Params: expr.Params, Body: expr.Body, Env: env}), nil
	case ExprFunctionCall:
		return evalCall(ctx, expr, env)
	case ExprFieldAccess:
		return evalFieldAccess(ctx, expr, env)
	case ExprIndexAccess:
		return evalIndexAccess(ctx, expr, env)
	}

	return nil, ErrTypeMismatch.With(slog.String("expr", "unknown expression kind"))
}

func exprKindName(k ExprKind) string {
	names := [...]string{
		"null", "bool", "number", "string", "array", "dict", "variable",
		"unaryop", "binaryop", "if", "local", "function", "call",
		"field", "index",
	}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}

	return "invalid"
}

func evalArray(ctx *evalContext, expr *Expr, env *Env) (*Value, error) {
	thunks := make([]*Thunk, len(expr.Elements))
	for i, el := range expr.Elements {
		thunks[i] = NewThunk(el, env)
	}

	return NewArray(thunks), nil
}

func evalDict(ctx *evalContext, expr *Expr, env *Env) (*Value, error) {
	entries := make([]ObjectEntry, len(expr.Entries))
	for i, e := range expr.Entries {
		entries[i] = ObjectEntry{Key: e.Key, Value: NewThunk(e.Value, env)}
	}

	obj, err := NewObject(entries...)
	if err != nil {
		return nil, err
	}

	return NewObjectValue(obj), nil
}

func evalVariable(ctx *evalContext, expr *Expr, env *Env) (*Value, error) {
	thunk, ok := Lookup(env, expr.Str)
	if !ok {
		return nil, ErrUnboundName.With(attrName(expr.Str))
	}

	return thunk.Force(ctx)
}

func evalUnary(ctx *evalContext, expr *Expr, env *Env) (*Value, error) {
	x, err := eval(ctx, expr.X, env)
	if err != nil {
		return nil, err
	}

	return evalUnaryOp(expr.UnaryOp, x)
}

func evalBinary(ctx *evalContext, expr *Expr, env *Env) (*Value, error) {
	if expr.BinaryOp == OpAnd {
		left, err := eval(ctx, expr.X, env)
		if err != nil {
			return nil, err
		}

		if left.Kind != ValueBool {
			return nil, ErrTypeMismatch.With(slog.String("op", "&&"), slog.String("operand", left.Kind.String()))
		}

		if !left.Bool {
			return False, nil
		}

		right, err := eval(ctx, expr.Y, env)
		if err != nil {
			return nil, err
		}

		if right.Kind != ValueBool {
			return nil, ErrTypeMismatch.With(slog.String("op", "&&"), slog.String("operand", right.Kind.String()))
		}

		return right, nil
	}

	if expr.BinaryOp == OpOr {
		left, err := eval(ctx, expr.X, env)
		if err != nil {
			return nil, err
		}

		if left.Kind != ValueBool {
			return nil, ErrTypeMismatch.With(slog.String("op", "||"), slog.String("operand", left.Kind.String()))
		}

		if left.Bool {
			return True, nil
		}

		right, err := eval(ctx, expr.Y, env)
		if err != nil {
			return nil, err
		}

		if right.Kind != ValueBool {
			return nil, ErrTypeMismatch.With(slog.String("op", "||"), slog.String("operand", right.Kind.String()))
		}

		return right, nil
	}

	x, err := eval(ctx, expr.X, env)
	if err != nil {
		return nil, err
	}

	y, err := eval(ctx, expr.Y, env)
	if err != nil {
		return nil, err
	}

	return evalBinaryOp(ctx, expr.BinaryOp, x, y)
}

func evalIf(ctx *evalContext, expr *Expr, env *Env) (*Value, error) {
	cond, err := eval(ctx, expr.X, env)
	if err != nil {
		return nil, err
	}

	if cond.Kind != ValueBool {
		return nil, ErrTypeMismatch.With(slog.String("context", "if condition"), slog.String("got", cond.Kind.String()))
	}

	if cond.Bool {
		return eval(ctx, expr.Then, env)
	}

	return eval(ctx, expr.Else, env)
}

// evalLocal implements "local name = bound; body" with self-referential
// scoping: the frame binding name is the very frame bound's own thunk will
// be forced in, so a definition may refer to itself. This is the sole
// mechanism recursion is built from; closures carry no name of their own.
func evalLocal(ctx *evalContext, expr *Expr, env *Env) (*Value, error) {
	thunk := &Thunk{state: thunkUnevaluated, expr: expr.Bound}
	bodyEnv := Extend(env, expr.Name, thunk)
	thunk.env = bodyEnv

	return eval(ctx, expr.Body, bodyEnv)
}

func evalCall(ctx *evalContext, expr *Expr, env *Env) (*Value, error) {
	callee, err := eval(ctx, expr.X, env)
	if err != nil {
		return nil, err
	}

	if callee.Kind != ValueClosure {
		return nil, ErrTypeMismatch.With(slog.String("context", "call"), slog.String("got", callee.Kind.String()))
	}

	closure := callee.Closure

	if len(expr.Args) != len(closure.Params) {
		return nil, ErrArity.With(
			slog.Int("want", len(closure.Params)),
			slog.Int("got", len(expr.Args)),
		)
	}

	argThunks := make([]*Thunk, len(expr.Args))
	for i, a := range expr.Args {
		argThunks[i] = NewThunk(a, env)
	}

	callEnv := ExtendMany(closure.Env, closure.Params, argThunks)

	return eval(ctx, closure.Body, callEnv)
}

func evalFieldAccess(ctx *evalContext, expr *Expr, env *Env) (*Value, error) {
	x, err := eval(ctx, expr.X, env)
	if err != nil {
		return nil, err
	}

	if x.Kind != ValueObject {
		return nil, ErrTypeMismatch.With(slog.String("context", "field access"), slog.String("got", x.Kind.String()))
	}

	thunk, ok := x.Object.Get(expr.Str)
	if !ok {
		return nil, ErrMissingField.With(attrKey(expr.Str))
	}

	return thunk.Force(ctx)
}

func evalIndexAccess(ctx *evalContext, expr *Expr, env *Env) (*Value, error) {
	x, err := eval(ctx, expr.X, env)
	if err != nil {
		return nil, err
	}

	idx, err := eval(ctx, expr.Y, env)
	if err != nil {
		return nil, err
	}

	switch x.Kind {
	case ValueArray:
		if idx.Kind != ValueNumber || !isInt(idx.Number) {
			return nil, ErrTypeMismatch.With(slog.String("context", "array index"), slog.String("got", idx.Kind.String()))
		}

		i := int(idx.Number)
		if i < 0 || i >= len(x.Array) {
			return nil, ErrIndexOutOfRange.With(slog.Int("index", i), slog.Int("len", len(x.Array)))
		}

		return x.Array[i].Force(ctx)

	case ValueObject:
		if idx.Kind != ValueString {
			return nil, ErrTypeMismatch.With(slog.String("context", "object index"), slog.String("got", idx.Kind.String()))
		}

		thunk, ok := x.Object.Get(idx.Str)
		if !ok {
			return nil, ErrMissingField.With(attrKey(idx.Str))
		}

		return thunk.Force(ctx)

	case ValueString:
		if idx.Kind != ValueNumber || !isInt(idx.Number) {
			return nil, ErrTypeMismatch.With(slog.String("context", "string index"), slog.String("got", idx.Kind.String()))
		}

		runes := []rune(x.Str)
		i := int(idx.Number)

		if i < 0 || i >= len(runes) {
			return nil, ErrIndexOutOfRange.With(slog.Int("index", i), slog.Int("len", len(runes)))
		}

		return NewString(string(runes[i])), nil
	}

	return nil, ErrTypeMismatch.With(slog.String("context", "index access"), slog.String("got", x.Kind.String()))
}

func isInt(n float64) bool {
	return n == float64(int64(n))
}
