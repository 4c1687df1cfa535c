package lang

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nojimay/jack/lang/token"
)

// Error is a Jack language error. It carries an optional wrapped cause and
// a set of structured attributes for logging, following the same shape
// throughout the lexer, parser, and evaluator.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError constructs a new sentinel Error with the given message and no
// wrapped cause.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.err.Error())
	}

	return e.msg
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.err
}

// Is reports whether target is the same sentinel kind as e, so that
// errors.Is(err, ErrIncompleteInput) matches even after With/Wrap have
// produced a new *Error sharing the sentinel's message.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok || e == nil || other == nil {
		return false
	}

	return e.msg == other.msg
}

// Wrap returns a new Error with the same message and attributes as the
// receiver but wrapping err as its cause. The receiver is left unmodified.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: append([]slog.Attr(nil), e.attrs...),
	}
}

// With returns a new Error with the given attributes appended. The
// receiver is left unmodified.
func (e *Error) With(attrs ...slog.Attr) *Error {
	next := &Error{
		msg: e.msg,
		err: e.err,
	}
	next.attrs = append(next.attrs, e.attrs...)
	next.attrs = append(next.attrs, attrs...)

	return next
}

// LogValue implements slog.LogValuer so an Error can be logged directly as
// a structured group of its message, cause, and attributes.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)
	attrs = append(attrs, slog.String("msg", e.msg))

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	attrs = append(attrs, e.attrs...)

	return slog.GroupValue(attrs...)
}

// Sentinel errors for every error kind named in the language specification.
//
//nolint:gochecknoglobals
var (
	ErrLexical                = NewError("lexical error")
	ErrParse                  = NewError("parse error")
	ErrIncompleteInput        = NewError("incomplete input")
	ErrUnboundName            = NewError("unbound name")
	ErrTypeMismatch           = NewError("type mismatch")
	ErrArity                  = NewError("wrong number of arguments")
	ErrDivisionByZero         = NewError("division by zero")
	ErrMissingField           = NewError("missing field")
	ErrIndexOutOfRange        = NewError("index out of range")
	ErrDuplicateKey           = NewError("duplicate key")
	ErrNonProductiveRecursion = NewError("non-productive recursion")
	ErrNotSerializable        = NewError("value is not serializable")
)

// ParseError is a parse-time error with the source position at which it
// occurred and a snippet of the offending source line.
type ParseError struct {
	Cause  *Error
	Pos    token.Position
	Source string
}

// newParseError builds a ParseError wrapping sentinel with a rendered
// source snippet and caret pointing at pos.
func newParseError(sentinel *Error, source string, pos token.Position, detail string) *ParseError {
	wrapped := sentinel
	if detail != "" {
		wrapped = sentinel.Wrap(fmt.Errorf("%s", detail))
	}

	return &ParseError{
		Cause:  wrapped.With(slog.String("pos", pos.String())),
		Pos:    pos,
		Source: source,
	}
}

// Unwrap returns the wrapped sentinel cause so errors.Is/errors.As can
// match against it.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Error renders the message together with a source snippet and a caret
// under the column at which the error occurred.
func (e *ParseError) Error() string {
	base := fmt.Sprintf("%s: %s", e.Pos, e.Cause.Error())
	snippet := e.snippet()

	if snippet == "" {
		return base
	}

	return base + "\n" + snippet
}

func (e *ParseError) snippet() string {
	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return ""
	}

	line := lines[e.Pos.Line-1]
	col := e.Pos.Column
	if col < 1 {
		col = 1
	}

	caret := strings.Repeat(" ", col-1) + "^"

	return line + "\n" + caret
}
