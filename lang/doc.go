// Package lang implements Jack, a small pure-functional configuration
// language in the spirit of Jsonnet: a superset of JSON enriched with
// variables, first-class functions, conditionals, and arithmetic/boolean
// operators. A Jack program is a single expression that evaluates to a
// JSON value.
//
// # Pipeline
//
// Source text flows through a small pipeline, each stage consuming the
// previous stage's output:
//
//	lexer.Lexer   → token.Token stream
//	parser        → *Expr (AST)
//	Eval           → *Value (weak head normal form)
//	DeepForce      → *JSON (fully forced, serializable)
//	MarshalJSON    → []byte
//
// # Laziness
//
// Array elements and object field values are wrapped in [Thunk]s rather
// than evaluated eagerly. A Thunk is forced at most once; its result is
// memoized, and all references to the same Thunk observe the same value.
// This is what lets a self-referential binding like
//
//	local mugen = cons("infinity", mugen); take(3, mugen)
//
// terminate: mugen's own definition is only as deep as what a caller
// actually demands, never the unbounded recursive structure implied by
// the binding.
//
// # Recursion without named closures
//
// Closures do not carry their own name. Recursion is expressed entirely
// through [ExprLocal]: `local name = bound; body` binds name into the
// SAME environment frame that bound's thunk is evaluated in, so bound may
// refer to name itself.
package lang
