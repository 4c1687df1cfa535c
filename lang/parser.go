package lang

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nojimay/jack/lang/lexer"
	"github.com/nojimay/jack/lang/token"
)

// parseNumberLiteral converts a scanned number literal to its float64
// value.
func parseNumberLiteral(lit string) (float64, error) {
	return strconv.ParseFloat(lit, 64)
}

// ParseReader parses a single Jack expression from r.
func ParseReader(r io.Reader) (*Expr, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return ParseString(string(data))
}

// ParseString parses a single Jack expression from s.
//
// If s is syntactically incomplete (the parser ran out of tokens while
// still expecting more), the returned error wraps ErrIncompleteInput so
// callers such as the REPL can distinguish "keep reading" from a hard
// syntax error. An unterminated string literal is a lexer error and wraps
// ErrLexical instead.
func ParseString(s string) (*Expr, error) {
	p := &parser{lex: lexer.New(s), source: s}

	if err := p.next(); err != nil {
		return nil, p.lexError(err)
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.tok.Kind != token.EOF {
		return nil, p.errorf(ErrParse, "unexpected trailing token %s", p.tok)
	}

	return expr, nil
}

// parser holds recursive-descent parser state over a token stream.
type parser struct {
	lex    *lexer.Lexer
	source string

	tok  token.Token
	peek *token.Token
}

// next advances to the next token, consulting a buffered peek token first.
func (p *parser) next() error {
	if p.peek != nil {
		p.tok = *p.peek
		p.peek = nil

		return nil
	}

	t, err := p.lex.Next()
	if err != nil {
		return err
	}

	p.tok = t

	return nil
}

// lookahead returns the token after the current one without consuming it.
func (p *parser) lookahead() (token.Token, error) {
	if p.peek == nil {
		t, err := p.lex.Next()
		if err != nil {
			return token.Token{}, err
		}

		p.peek = &t
	}

	return *p.peek, nil
}

func (p *parser) lexError(err error) error {
	if lexErr, ok := err.(*lexer.Error); ok {
		return newParseError(ErrLexical, p.source, lexErr.Pos, lexErr.Msg)
	}

	return newParseError(ErrLexical, p.source, p.tok.Pos, err.Error())
}

func (p *parser) errorf(sentinel *Error, format string, args ...any) error {
	return newParseError(sentinel, p.source, p.tok.Pos, fmt.Sprintf(format, args...))
}

// unexpectedEOF reports an incomplete-input error when EOF is hit somewhere
// a parser rule still expects more tokens: this is what lets the REPL
// distinguish "keep reading more lines" from a genuine syntax error.
func (p *parser) unexpectedEOF(expected string) error {
	if p.tok.Kind == token.EOF {
		return newParseError(
			ErrIncompleteInput, p.source, p.tok.Pos,
			fmt.Sprintf("expected %s, found end of input", expected),
		)
	}

	return p.errorf(ErrParse, "expected %s, found %s", expected, p.tok)
}

func (p *parser) expect(k token.Kind) (token.Token, error) {
	if p.tok.Kind != k {
		return token.Token{}, p.unexpectedEOF(k.String())
	}

	tok := p.tok

	if err := p.next(); err != nil {
		return token.Token{}, p.lexError(err)
	}

	return tok, nil
}

// parseExpr parses the lowest-precedence expression form: `||`.
func (p *parser) parseExpr() (*Expr, error) {
	switch p.tok.Kind {
	case token.KeywordIf:
		return p.parseIf()
	case token.KeywordLocal:
		return p.parseLocal()
	case token.KeywordFunction:
		return p.parseFunction()
	default:
		return p.parseOr()
	}
}

func (p *parser) parseIf() (*Expr, error) {
	pos := p.tok.Pos

	if _, err := p.expect(token.KeywordIf); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KeywordThen); err != nil {
		return nil, err
	}

	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KeywordElse); err != nil {
		return nil, err
	}

	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Expr{Kind: ExprIf, Pos: pos, X: cond, Then: then, Else: els}, nil
}

// parseLocal parses `local name = bound; body` and the sugared function
// binding form `local name(params) = bound; body`.
func (p *parser) parseLocal() (*Expr, error) {
	pos := p.tok.Pos

	if _, err := p.expect(token.KeywordLocal); err != nil {
		return nil, err
	}

	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	var bound *Expr

	if p.tok.Kind == token.LParen {
		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.Assign); err != nil {
			return nil, err
		}

		fnBody, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		bound = &Expr{Kind: ExprFunction, Pos: pos, Params: params, Body: fnBody}
	} else {
		if _, err := p.expect(token.Assign); err != nil {
			return nil, err
		}

		bound, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Expr{
		Kind: ExprLocal, Pos: pos,
		Name: nameTok.Literal, Bound: bound, Body: body,
	}, nil
}

func (p *parser) parseFunction() (*Expr, error) {
	pos := p.tok.Pos

	if _, err := p.expect(token.KeywordFunction); err != nil {
		return nil, err
	}

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Expr{Kind: ExprFunction, Pos: pos, Params: params, Body: body}, nil
}

func (p *parser) parseParamList() ([]string, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	var params []string

	for p.tok.Kind != token.RParen {
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}

		params = append(params, name.Literal)

		if p.tok.Kind == token.Comma {
			if err := p.next(); err != nil {
				return nil, p.lexError(err)
			}

			continue
		}

		break
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	return params, nil
}

func (p *parser) parseOr() (*Expr, error) {
	x, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.tok.Kind == token.Or {
		pos := p.tok.Pos

		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		y, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		x = &Expr{Kind: ExprBinaryOp, Pos: pos, BinaryOp: OpOr, X: x, Y: y}
	}

	return x, nil
}

func (p *parser) parseAnd() (*Expr, error) {
	x, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	for p.tok.Kind == token.And {
		pos := p.tok.Pos

		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		y, err := p.parseEquality()
		if err != nil {
			return nil, err
		}

		x = &Expr{Kind: ExprBinaryOp, Pos: pos, BinaryOp: OpAnd, X: x, Y: y}
	}

	return x, nil
}

func (p *parser) parseEquality() (*Expr, error) {
	x, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for p.tok.Kind == token.Eq || p.tok.Kind == token.NotEq {
		op, pos := OpEq, p.tok.Pos
		if p.tok.Kind == token.NotEq {
			op = OpNotEq
		}

		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		y, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}

		x = &Expr{Kind: ExprBinaryOp, Pos: pos, BinaryOp: op, X: x, Y: y}
	}

	return x, nil
}

func (p *parser) parseAdditive() (*Expr, error) {
	x, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.tok.Kind == token.Plus || p.tok.Kind == token.Minus {
		op, pos := OpAdd, p.tok.Pos
		if p.tok.Kind == token.Minus {
			op = OpSub
		}

		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		y, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		x = &Expr{Kind: ExprBinaryOp, Pos: pos, BinaryOp: op, X: x, Y: y}
	}

	return x, nil
}

func (p *parser) parseMultiplicative() (*Expr, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.tok.Kind == token.Star || p.tok.Kind == token.Slash || p.tok.Kind == token.Percent {
		var op BinaryOp

		switch p.tok.Kind {
		case token.Star:
			op = OpMul
		case token.Slash:
			op = OpDiv
		case token.Percent:
			op = OpMod
		}

		pos := p.tok.Pos

		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		y, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		x = &Expr{Kind: ExprBinaryOp, Pos: pos, BinaryOp: op, X: x, Y: y}
	}

	return x, nil
}

func (p *parser) parseUnary() (*Expr, error) {
	switch p.tok.Kind {
	case token.Minus:
		pos := p.tok.Pos

		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &Expr{Kind: ExprUnaryOp, Pos: pos, UnaryOp: OpNeg, X: x}, nil
	case token.Not:
		pos := p.tok.Pos

		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &Expr{Kind: ExprUnaryOp, Pos: pos, UnaryOp: OpNot, X: x}, nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses an atom followed by any number of call, field-access,
// or index-access suffixes.
func (p *parser) parsePostfix() (*Expr, error) {
	x, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.tok.Kind {
		case token.LParen:
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}

			x = &Expr{Kind: ExprFunctionCall, Pos: x.Pos, X: x, Args: args}
		case token.Dot:
			pos := p.tok.Pos

			if err := p.next(); err != nil {
				return nil, p.lexError(err)
			}

			name, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}

			x = &Expr{Kind: ExprFieldAccess, Pos: pos, X: x, Str: name.Literal}
		case token.LBracket:
			pos := p.tok.Pos

			if err := p.next(); err != nil {
				return nil, p.lexError(err)
			}

			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}

			x = &Expr{Kind: ExprIndexAccess, Pos: pos, X: x, Y: idx}
		default:
			return x, nil
		}
	}
}

func (p *parser) parseArgs() ([]*Expr, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	var args []*Expr

	for p.tok.Kind != token.RParen {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if p.tok.Kind == token.Comma {
			if err := p.next(); err != nil {
				return nil, p.lexError(err)
			}

			continue
		}

		break
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	return args, nil
}

func (p *parser) parseAtom() (*Expr, error) {
	pos := p.tok.Pos

	switch p.tok.Kind {
	case token.KeywordNull:
		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		return &Expr{Kind: ExprNull, Pos: pos}, nil
	case token.KeywordTrue:
		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		return &Expr{Kind: ExprBool, Pos: pos, Bool: true}, nil
	case token.KeywordFalse:
		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		return &Expr{Kind: ExprBool, Pos: pos, Bool: false}, nil
	case token.Number:
		tok := p.tok

		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		n, err := parseNumberLiteral(tok.Literal)
		if err != nil {
			return nil, newParseError(ErrParse, p.source, pos, err.Error())
		}

		return &Expr{Kind: ExprNumber, Pos: pos, Number: n}, nil
	case token.String:
		tok := p.tok

		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		return &Expr{Kind: ExprString, Pos: pos, Str: tok.Literal}, nil
	case token.Ident:
		tok := p.tok

		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		return &Expr{Kind: ExprVariable, Pos: pos, Str: tok.Literal}, nil
	case token.LBracket:
		return p.parseArray()
	case token.LBrace:
		return p.parseDict()
	case token.LParen:
		if err := p.next(); err != nil {
			return nil, p.lexError(err)
		}

		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}

		return x, nil
	default:
		return nil, p.unexpectedEOF("an expression")
	}
}

func (p *parser) parseArray() (*Expr, error) {
	pos := p.tok.Pos

	if _, err := p.expect(token.LBracket); err != nil {
		return nil, err
	}

	var elems []*Expr

	for p.tok.Kind != token.RBracket {
		el, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		elems = append(elems, el)

		if p.tok.Kind == token.Comma {
			if err := p.next(); err != nil {
				return nil, p.lexError(err)
			}

			continue
		}

		break
	}

	if _, err := p.expect(token.RBracket); err != nil {
		return nil, err
	}

	return &Expr{Kind: ExprArray, Pos: pos, Elements: elems}, nil
}

// parseDict parses a dict literal, including the `name(params): E` method
// sugar, which desugars to `name: function(params) E`.
func (p *parser) parseDict() (*Expr, error) {
	pos := p.tok.Pos

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var entries []DictEntry

	for p.tok.Kind != token.RBrace {
		keyPos := p.tok.Pos

		var key string

		switch p.tok.Kind {
		case token.String:
			key = p.tok.Literal

			if err := p.next(); err != nil {
				return nil, p.lexError(err)
			}
		case token.Ident:
			key = p.tok.Literal

			if err := p.next(); err != nil {
				return nil, p.lexError(err)
			}
		default:
			return nil, p.unexpectedEOF("a dict key")
		}

		var value *Expr

		if p.tok.Kind == token.LParen {
			params, err := p.parseParamList()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(token.Colon); err != nil {
				return nil, err
			}

			body, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			value = &Expr{Kind: ExprFunction, Pos: keyPos, Params: params, Body: body}
		} else {
			if _, err := p.expect(token.Colon); err != nil {
				return nil, err
			}

			var err error

			value, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}

		entries = append(entries, DictEntry{Key: key, Value: value})

		if p.tok.Kind == token.Comma {
			if err := p.next(); err != nil {
				return nil, p.lexError(err)
			}

			continue
		}

		break
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	return &Expr{Kind: ExprDict, Pos: pos, Entries: entries}, nil
}
