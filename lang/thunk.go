package lang

// thunkState is the state of a Thunk's memoization cell.
type thunkState int

const (
	thunkUnevaluated thunkState = iota
	thunkEvaluating
	thunkEvaluated
)

// Thunk is a memoized, lazily-evaluated computation. It is constructed
// either from an Expr paired with the Env it closes over, or directly from
// an already-evaluated Value (e.g. for values built by the evaluator
// itself, such as operator results). Forcing a Thunk evaluates its
// expression at most once; subsequent forces return the cached Value.
//
// The Evaluating state exists solely to detect non-productive recursion: a
// Thunk that is re-entered while still Evaluating means evaluating it
// requires its own result, which can never terminate.
type Thunk struct {
	state thunkState

	expr *Expr
	env  *Env

	value *Value
	err   error
}

// NewThunk creates an unevaluated Thunk that will evaluate expr in env the
// first time it is forced.
func NewThunk(expr *Expr, env *Env) *Thunk {
	return &Thunk{state: thunkUnevaluated, expr: expr, env: env}
}

// NewEvaluatedThunk wraps an already-computed Value in a Thunk that is
// immediately in the Evaluated state, so an already-built Value can be
// placed in an Array or Object without wrapping it in an expression. The
// evaluator itself does not call it; it creates its Thunks from expressions.
func NewEvaluatedThunk(v *Value) *Thunk {
	return &Thunk{state: thunkEvaluated, value: v}
}

// Force evaluates the Thunk if necessary and returns its memoized Value.
// Calling Force while the same Thunk is already being forced (i.e. forcing
// it required forcing itself, directly or through some chain of other
// thunks) returns ErrNonProductiveRecursion.
func (t *Thunk) Force(ctx *evalContext) (*Value, error) {
	switch t.state {
	case thunkEvaluated:
		return t.value, t.err
	case thunkEvaluating:
		return nil, ErrNonProductiveRecursion
	}

	t.state = thunkEvaluating

	value, err := eval(ctx, t.expr, t.env)

	t.value = value
	t.err = err
	t.state = thunkEvaluated

	// The expr/env are no longer needed once evaluated; drop the reference
	// so a long-lived Thunk doesn't keep its whole captured environment
	// alive.
	t.expr = nil
	t.env = nil

	return t.value, t.err
}
