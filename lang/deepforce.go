package lang

import "context"

// JSON is the native Go shape a forced Value serializes to: nil, bool,
// float64, string, []JSON, or an ordered []ObjectEntryJSON for objects.
// Plain map[string]any cannot represent Jack's insertion-order field
// iteration, so objects use an explicit ordered pair list instead.
type JSON struct {
	Kind   ValueKind
	Bool   bool
	Number float64
	Str    string
	Array  []*JSON
	Object []JSONEntry
}

// JSONEntry is one ordered key/value pair of a deep-forced object.
type JSONEntry struct {
	Key   string
	Value *JSON
}

// DeepForce walks v, forcing every Thunk reachable through arrays and
// objects, and returns the fully-forced tree ready for serialization.
// Forcing a Closure anywhere in the tree is an error: functions have no
// JSON representation. The top-level program result is deep-forced exactly
// once, after Eval, before serialization.
func DeepForce(ctx context.Context, v *Value) (*JSON, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	return deepForce(&evalContext{ctx: ctx}, v)
}

func deepForce(ctx *evalContext, v *Value) (*JSON, error) {
	switch v.Kind {
	case ValueNull:
		return &JSON{Kind: ValueNull}, nil
	case ValueBool:
		return &JSON{Kind: ValueBool, Bool: v.Bool}, nil
	case ValueNumber:
		return &JSON{Kind: ValueNumber, Number: v.Number}, nil
	case ValueString:
		return &JSON{Kind: ValueString, Str: v.Str}, nil
	case ValueClosure:
		return nil, ErrNotSerializable
	case ValueArray:
		out := make([]*JSON, len(v.Array))

		for i, elem := range v.Array {
			forced, err := elem.Force(ctx)
			if err != nil {
				return nil, err
			}

			out[i], err = deepForce(ctx, forced)
			if err != nil {
				return nil, err
			}
		}

		return &JSON{Kind: ValueArray, Array: out}, nil
	case ValueObject:
		entries := v.Object.Entries()
		out := make([]JSONEntry, len(entries))

		for i, e := range entries {
			forced, err := e.Value.Force(ctx)
			if err != nil {
				return nil, err
			}

			jv, err := deepForce(ctx, forced)
			if err != nil {
				return nil, err
			}

			out[i] = JSONEntry{Key: e.Key, Value: jv}
		}

		return &JSON{Kind: ValueObject, Object: out}, nil
	}

	return nil, ErrTypeMismatch
}

// valuesEqual implements structural equality. Array elements and object
// fields are forced pair by pair as the comparison proceeds, and the
// comparison stops at the first difference: the operands are not
// deep-forced up front, so elements after a difference are never forced and
// their errors are not reported. Closures are unequal to anything,
// including themselves.
func valuesEqual(ctx *evalContext, x, y *Value) (bool, error) {
	if x.Kind == ValueClosure || y.Kind == ValueClosure {
		return false, nil
	}

	if x.Kind != y.Kind {
		return false, nil
	}

	switch x.Kind {
	case ValueNull:
		return true, nil
	case ValueBool:
		return x.Bool == y.Bool, nil
	case ValueNumber:
		return x.Number == y.Number, nil
	case ValueString:
		return x.Str == y.Str, nil
	case ValueArray:
		return arraysEqual(ctx, x.Array, y.Array)
	case ValueObject:
		return objectsEqual(ctx, x.Object, y.Object)
	}

	return false, nil
}

func arraysEqual(ctx *evalContext, x, y []*Thunk) (bool, error) {
	if len(x) != len(y) {
		return false, nil
	}

	for i := range x {
		xv, err := x[i].Force(ctx)
		if err != nil {
			return false, err
		}

		yv, err := y[i].Force(ctx)
		if err != nil {
			return false, err
		}

		eq, err := valuesEqual(ctx, xv, yv)
		if err != nil {
			return false, err
		}

		if !eq {
			return false, nil
		}
	}

	return true, nil
}

func objectsEqual(ctx *evalContext, x, y *Object) (bool, error) {
	if x.Len() != y.Len() {
		return false, nil
	}

	for _, e := range x.Entries() {
		yv, ok := y.Get(e.Key)
		if !ok {
			return false, nil
		}

		xval, err := e.Value.Force(ctx)
		if err != nil {
			return false, err
		}

		yval, err := yv.Force(ctx)
		if err != nil {
			return false, err
		}

		eq, err := valuesEqual(ctx, xval, yval)
		if err != nil {
			return false, err
		}

		if !eq {
			return false, nil
		}
	}

	return true, nil
}
