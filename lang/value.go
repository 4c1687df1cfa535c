package lang

// ValueKind identifies the variant of a Value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueNumber
	ValueString
	ValueArray
	ValueObject
	ValueClosure
)

// String names the kind, used in TypeMismatch error messages.
func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueBool:
		return "bool"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	case ValueArray:
		return "array"
	case ValueObject:
		return "object"
	case ValueClosure:
		return "function"
	default:
		return "invalid"
	}
}

// ObjectEntry is a single key/value pair of an object Value, recorded in
// insertion order so iteration and serialization stay deterministic.
type ObjectEntry struct {
	Key   string
	Value *Thunk
}

// Object is an ordered string-keyed map of Thunks. Lookup is linear, which
// is fine for the small, hand-authored configuration documents Jack targets
// and keeps insertion order without a side index.
type Object struct {
	entries []ObjectEntry
}

// NewObject builds an Object from entries, returning ErrDuplicateKey if any
// key repeats.
func NewObject(entries ...ObjectEntry) (*Object, error) {
	obj := &Object{entries: make([]ObjectEntry, 0, len(entries))}

	for _, e := range entries {
		if _, ok := obj.Get(e.Key); ok {
			return nil, ErrDuplicateKey.With(attrKey(e.Key))
		}

		obj.entries = append(obj.entries, e)
	}

	return obj, nil
}

// Get returns the Thunk bound to key, if present.
func (o *Object) Get(key string) (*Thunk, bool) {
	if o == nil {
		return nil, false
	}

	for _, e := range o.entries {
		if e.Key == key {
			return e.Value, true
		}
	}

	return nil, false
}

// Len returns the number of entries in the object.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}

	return len(o.entries)
}

// Entries returns the object's entries in insertion order. The returned
// slice must not be mutated by callers.
func (o *Object) Entries() []ObjectEntry {
	if o == nil {
		return nil
	}

	return o.entries
}

// Closure is a function value: a lexical environment captured at the point
// the function literal was evaluated, its parameter names, and its body
// expression. Per the language's scoping rules a Closure carries no name of
// its own; recursion is expressed entirely through Local's self-referential
// binding, not through any built-in notion of a named function value.
type Closure struct {
	Params []string
	Body   *Expr
	Env    *Env
}

// Value is a fully-evaluated (to weak head normal form) Jack value. Arrays
// hold Thunks for their elements and objects hold Thunks for their field
// values; neither is forced further until something demands it.
type Value struct {
	Kind ValueKind

	Bool    bool
	Number  float64
	Str     string
	Array   []*Thunk
	Object  *Object
	Closure *Closure
}

// Null is the singular null value.
var Null = &Value{Kind: ValueNull}

// True and False are the two boolean values.
var (
	True  = &Value{Kind: ValueBool, Bool: true}
	False = &Value{Kind: ValueBool, Bool: false}
)

// NewBool returns True or False for b.
func NewBool(b bool) *Value {
	if b {
		return True
	}

	return False
}

// NewNumber wraps a float64 as a Value.
func NewNumber(n float64) *Value {
	return &Value{Kind: ValueNumber, Number: n}
}

// NewString wraps a string as a Value.
func NewString(s string) *Value {
	return &Value{Kind: ValueString, Str: s}
}

// NewArray wraps a slice of element Thunks as a Value.
func NewArray(elems []*Thunk) *Value {
	return &Value{Kind: ValueArray, Array: elems}
}

// NewObjectValue wraps an Object as a Value.
func NewObjectValue(obj *Object) *Value {
	return &Value{Kind: ValueObject, Object: obj}
}

// NewClosure wraps a Closure as a Value.
func NewClosure(c *Closure) *Value {
	return &Value{Kind: ValueClosure, Closure: c}
}
