package lang

import (
	"context"
	"errors"
	"testing"
)

func evalSource(t *testing.T, src string) *Value {
	t.Helper()

	expr, err := ParseString(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}

	v, err := Eval(context.Background(), expr, Empty())
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}

	return v
}

func evalSourceJSON(t *testing.T, src string) string {
	t.Helper()

	v := evalSource(t, src)

	j, err := DeepForce(context.Background(), v)
	if err != nil {
		t.Fatalf("deep force %q: %v", src, err)
	}

	data, err := MarshalJSON(j, "")
	if err != nil {
		t.Fatalf("marshal %q: %v", src, err)
	}

	return string(data)
}

func evalSourceErr(t *testing.T, src string) error {
	t.Helper()

	expr, err := ParseString(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}

	v, err := Eval(context.Background(), expr, Empty())
	if err != nil {
		return err
	}

	_, err = DeepForce(context.Background(), v)

	return err
}

func TestEvalLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"null", "null"},
		{"true", "true"},
		{"false", "false"},
		{"1", "1.0"},
		{"120", "120.0"},
		{`"hi"`, `"hi"`},
		{"[1, 2, 3]", "[1.0,2.0,3.0]"},
		{`{ "a": 1, "b": 2 }`, `{"a":1.0,"b":2.0}`},
	}

	for _, tt := range tests {
		if got := evalSourceJSON(t, tt.input); got != tt.want {
			t.Errorf("eval(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2", "3.0"},
		{"5 - 2", "3.0"},
		{"3 * 4", "12.0"},
		{"7 / 2", "3.5"},
		{"7 % 2", "1.0"},
		{"-5", "-5.0"},
		{`"a" + "b"`, `"ab"`},
		{`"n=" + 1`, `"n=1.0"`},
		{`1 + "n"`, `"1.0n"`},
	}

	for _, tt := range tests {
		if got := evalSourceJSON(t, tt.input); got != tt.want {
			t.Errorf("eval(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEvalDivisionAndModByZero(t *testing.T) {
	for _, input := range []string{"1 / 0", "1 % 0"} {
		err := evalSourceErr(t, input)
		if !errors.Is(err, ErrDivisionByZero) {
			t.Errorf("eval(%q) error = %v, want ErrDivisionByZero", input, err)
		}
	}
}

func TestEvalShortCircuitAnd(t *testing.T) {
	// "anything" references an unbound name; if it is evaluated this fails.
	if got := evalSourceJSON(t, "false && anything"); got != "false" {
		t.Errorf("short-circuit && = %q, want false", got)
	}
}

func TestEvalShortCircuitOr(t *testing.T) {
	if got := evalSourceJSON(t, "true || anything"); got != "true" {
		t.Errorf("short-circuit || = %q, want true", got)
	}
}

func TestEvalAndOrRequireBool(t *testing.T) {
	for _, input := range []string{"1 && true", "true && 1", "1 || true", "true || 1"} {
		err := evalSourceErr(t, input)
		if !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("eval(%q) error = %v, want ErrTypeMismatch", input, err)
		}
	}
}

func TestEvalIfSelectsExactlyOneBranch(t *testing.T) {
	if got := evalSourceJSON(t, `if true then "t" else anything`); got != `"t"` {
		t.Errorf("if true = %q, want \"t\"", got)
	}

	if got := evalSourceJSON(t, `if false then anything else "e"`); got != `"e"` {
		t.Errorf("if false = %q, want \"e\"", got)
	}
}

func TestEvalLocalRecursionFactorial(t *testing.T) {
	src := `local fact(n) = if n == 0 then 1 else n * fact(n-1); fact(5)`
	if got := evalSourceJSON(t, src); got != "120.0" {
		t.Errorf("fact(5) = %q, want 120.0", got)
	}
}

func TestEvalLazyConsMugen(t *testing.T) {
	src := `local cons(x,xs) = [x,xs];
local head(ls)=ls[0];
local tail(ls)=ls[1];
local take(n,ls) = if n==0 then null else cons(head(ls), take(n-1, tail(ls)));
local mugen = cons("∞", mugen);
take(3, mugen)`

	want := `["∞",["∞",["∞",null]]]`
	if got := evalSourceJSON(t, src); got != want {
		t.Errorf("take(3, mugen) = %q, want %q", got, want)
	}
}

func TestEvalLazyChurchConsMugen(t *testing.T) {
	src := `local cons(x,xs) = function(f) f(x,xs);
local car(ls)=ls(function(x,xs)x);
local cdr(ls)=ls(function(x,xs)xs);
local mugen = cons("inf", mugen);
[car(mugen), car(cdr(mugen)), car(cdr(cdr(mugen))), car(cdr(cdr(cdr(mugen))))]`

	want := `["inf","inf","inf","inf"]`
	if got := evalSourceJSON(t, src); got != want {
		t.Errorf("church mugen = %q, want %q", got, want)
	}
}

func TestEvalNonProductiveRecursion(t *testing.T) {
	err := evalSourceErr(t, "local x = x; x")
	if !errors.Is(err, ErrNonProductiveRecursion) {
		t.Errorf("local x = x; x error = %v, want ErrNonProductiveRecursion", err)
	}
}

func TestEvalPersonBuilder(t *testing.T) {
	src := `local Person(name) = { name: name, welcome: "Hello " + name + "!" };
{ person1: Person("Alice"), person2: Person("Bob") }`

	want := `{"person1":{"name":"Alice","welcome":"Hello Alice!"},"person2":{"name":"Bob","welcome":"Hello Bob!"}}`
	if got := evalSourceJSON(t, src); got != want {
		t.Errorf("Person builder = %q, want %q", got, want)
	}
}

func TestEvalLocalShadowing(t *testing.T) {
	src := `local x = 1; local shadowed = (local x = 2; x); [x, shadowed]`
	if got := evalSourceJSON(t, src); got != "[1.0,2.0]" {
		t.Errorf("shadowing = %q, want [1.0,2.0]", got)
	}
}

func TestEvalFunctionSugarMatchesDesugaredForm(t *testing.T) {
	sugared := `local f(x) = x + 1; f(41)`
	desugared := `local f = function(x) x + 1; f(41)`

	got1 := evalSourceJSON(t, sugared)
	got2 := evalSourceJSON(t, desugared)

	if got1 != got2 {
		t.Errorf("sugared = %q, desugared = %q, want equal", got1, got2)
	}
}

func TestEvalDictMethodSugarMatchesDesugaredForm(t *testing.T) {
	sugared := `local d = { f(x): x + 1 }; d.f(41)`
	desugared := `local d = { f: function(x) x + 1 }; d.f(41)`

	got1 := evalSourceJSON(t, sugared)
	got2 := evalSourceJSON(t, desugared)

	if got1 != got2 {
		t.Errorf("sugared = %q, desugared = %q, want equal", got1, got2)
	}
}

func TestEvalUnboundName(t *testing.T) {
	if err := evalSourceErr(t, "unbound_thing"); !errors.Is(err, ErrUnboundName) {
		t.Errorf("error = %v, want ErrUnboundName", err)
	}
}

func TestEvalArity(t *testing.T) {
	if err := evalSourceErr(t, "local f(x,y) = x + y; f(1)"); !errors.Is(err, ErrArity) {
		t.Errorf("error = %v, want ErrArity", err)
	}
}

func TestEvalMissingField(t *testing.T) {
	if err := evalSourceErr(t, `{ a: 1 }.b`); !errors.Is(err, ErrMissingField) {
		t.Errorf("error = %v, want ErrMissingField", err)
	}
}

func TestEvalIndexOutOfRange(t *testing.T) {
	if err := evalSourceErr(t, `[1,2,3][5]`); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestEvalDuplicateKey(t *testing.T) {
	if err := evalSourceErr(t, `{ a: 1, a: 2 }`); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("error = %v, want ErrDuplicateKey", err)
	}
}

func TestEvalStringIndexing(t *testing.T) {
	if got := evalSourceJSON(t, `"abc"[0]`); got != `"a"` {
		t.Errorf(`"abc"[0] = %q, want "a"`, got)
	}
}

func TestEvalDeepForceClosureNotSerializable(t *testing.T) {
	if err := evalSourceErr(t, `function(x) x`); !errors.Is(err, ErrNotSerializable) {
		t.Errorf("error = %v, want ErrNotSerializable", err)
	}
}

func TestEvalEqualityReflexivity(t *testing.T) {
	tests := []string{
		"null", "true", "1", `"s"`, "[1,2,[3]]", `{ "a": 1, "b": [2, 3] }`,
	}

	for _, v := range tests {
		src := "local v = " + v + "; v == v"
		if got := evalSourceJSON(t, src); got != "true" {
			t.Errorf("(%s) == (%s) = %q, want true", v, v, got)
		}
	}
}

func TestEvalObjectEqualityIgnoresOrder(t *testing.T) {
	src := `{ a: 1, b: 2 } == { b: 2, a: 1 }`
	if got := evalSourceJSON(t, src); got != "true" {
		t.Errorf("object equality ignoring order = %q, want true", got)
	}
}

func TestEvalClosureNeverEqual(t *testing.T) {
	src := `local f = function(x) x; f == f`
	if got := evalSourceJSON(t, src); got != "false" {
		t.Errorf("closure equality = %q, want false", got)
	}
}

func TestEvalDeterminism(t *testing.T) {
	src := `local fib(n) = if n == 0 then 0 else if n == 1 then 1 else fib(n-1) + fib(n-2); fib(10)`

	first := evalSourceJSON(t, src)
	second := evalSourceJSON(t, src)

	if first != second {
		t.Errorf("non-deterministic output: %q vs %q", first, second)
	}
}

// TestEvalMemoizesLocalBinding checks that the memoization spec §8
// describes lives in the `local` binding's own Thunk, not in the array
// slots that reference it. evalArray (per spec §4.1: "wrap each element
// Expr into a fresh Thunk") gives `[x, x, x]` three distinct Thunks, one
// per Variable(x) node; forcing each looks up and forces the SAME
// local-binding Thunk via evalVariable. NewNumber allocates a fresh
// *Value every time "1 + 1" actually runs, so if that binding were
// (incorrectly) re-evaluated per reference, the three slots would force
// to three distinct *Value pointers; memoization means they must all
// force to the identical one.
func TestEvalMemoizesLocalBinding(t *testing.T) {
	expr, err := ParseString(`local x = 1 + 1; [x, x, x]`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	v, err := Eval(context.Background(), expr, Empty())
	if err != nil {
		t.Fatalf("eval: %v", err)
	}

	if len(v.Array) != 3 {
		t.Fatalf("want 3 elements, got %d", len(v.Array))
	}

	first, err := v.Array[0].Force(&evalContext{ctx: context.Background()})
	if err != nil {
		t.Fatalf("force element 0: %v", err)
	}

	second, err := v.Array[1].Force(&evalContext{ctx: context.Background()})
	if err != nil {
		t.Fatalf("force element 1: %v", err)
	}

	third, err := v.Array[2].Force(&evalContext{ctx: context.Background()})
	if err != nil {
		t.Fatalf("force element 2: %v", err)
	}

	if first != second || second != third {
		t.Fatalf("array elements forced to different Values: the shared local binding was re-evaluated instead of memoized")
	}
}

func TestEvalNestedLocalSeesOuterBindingByDifferentName(t *testing.T) {
	src := `local m = 5; local n = m + 1; n`
	if got := evalSourceJSON(t, src); got != "6.0" {
		t.Errorf("nested local = %q, want 6.0", got)
	}
}

func TestEvalLocalSameNameShadowsItselfNonProductively(t *testing.T) {
	// A second `local n = ...` with the SAME name as an outer binding
	// shadows it in its own bound expression too, since the new frame is
	// already in scope there. Referring to `n` inside that bound expression
	// reaches the new (still-Evaluating) thunk, not the outer one.
	err := evalSourceErr(t, `local n = 5; local n = n + 1; n`)
	if !errors.Is(err, ErrNonProductiveRecursion) {
		t.Errorf("error = %v, want ErrNonProductiveRecursion", err)
	}
}
