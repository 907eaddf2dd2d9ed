package query

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mhollstein/revset/pkg/errors"
)

// =============================================================================
// Lexer
// =============================================================================

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokLParen
	tokRParen
	tokComma
	tokPipe
	tokAmp
	tokMinus
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokName:
		return "name"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokPipe:
		return "'|'"
	case tokAmp:
		return "'&'"
	case tokMinus:
		return "'-'"
	}
	return "unknown token"
}

type token struct {
	kind tokenKind
	text string // decoded name for tokName
	pos  int    // byte offset in the source
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}

	start := l.pos
	switch c := l.src[l.pos]; c {
	case '(':
		l.pos++
		return token{kind: tokLParen, pos: start}, nil
	case ')':
		l.pos++
		return token{kind: tokRParen, pos: start}, nil
	case ',':
		l.pos++
		return token{kind: tokComma, pos: start}, nil
	case '|':
		l.pos++
		return token{kind: tokPipe, pos: start}, nil
	case '&':
		l.pos++
		return token{kind: tokAmp, pos: start}, nil
	case '-':
		l.pos++
		return token{kind: tokMinus, pos: start}, nil
	case '"':
		return l.quotedName()
	}

	end := l.pos
	for end < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[end:])
		if !isNameRune(r) {
			break
		}
		end += size
	}
	if end == l.pos {
		return token{}, errors.New(errors.ErrCodeInvalidQuery,
			"unexpected character %q at offset %d", l.src[l.pos], l.pos)
	}
	text := l.src[l.pos:end]
	l.pos = end
	return token{kind: tokName, text: text, pos: start}, nil
}

// quotedName decodes a double-quoted name. `\"` and `\\` are the only
// escapes; everything else inside the quotes is literal.
func (l *lexer) quotedName() (token, error) {
	start := l.pos
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{kind: tokName, text: b.String(), pos: start}, nil
		case '\\':
			if l.pos+1 >= len(l.src) {
				return token{}, errors.New(errors.ErrCodeInvalidQuery,
					"unterminated quoted name at offset %d", start)
			}
			next := l.src[l.pos+1]
			if next != '"' && next != '\\' {
				return token{}, errors.New(errors.ErrCodeInvalidQuery,
					"invalid escape \\%c at offset %d", next, l.pos)
			}
			b.WriteByte(next)
			l.pos += 2
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return token{}, errors.New(errors.ErrCodeInvalidQuery,
		"unterminated quoted name at offset %d", start)
}

func isNameRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '_', '.', '/', '+':
		return true
	}
	return false
}

// isBareName reports whether s survives rendering without quotes.
func isBareName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isNameRune(r) {
			return false
		}
	}
	return true
}

func quoteName(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

// =============================================================================
// Parser
// =============================================================================

// arity maps the known functions to their argument counts.
var arity = map[string]int{
	"all":         0,
	"heads":       0,
	"roots":       0,
	"ancestors":   1,
	"descendants": 1,
	"range":       2,
}

// Parse turns a source expression into an Expr. Errors carry the
// INVALID_QUERY code and the byte offset of the problem.
func Parse(src string) (Expr, error) {
	if err := errors.ValidateQueryLength(src); err != nil {
		return nil, err
	}
	p := &parser{lex: &lexer{src: src}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected("end of expression")
	}
	return expr, nil
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) unexpected(want string) error {
	return errors.New(errors.ErrCodeInvalidQuery,
		"expected %s, found %s at offset %d", want, p.tok.kind, p.tok.pos)
}

// parseUnion := parseTerm ('|' parseTerm)*
func (p *parser) parseUnion() (Expr, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPipe {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		lhs = &binExpr{op: "|", lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

// parseTerm := parsePrimary (('&' | '-') parsePrimary)*
func (p *parser) parseTerm() (Expr, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokAmp || p.tok.kind == tokMinus {
		op := "&"
		if p.tok.kind == tokMinus {
			op = "-"
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		lhs = &binExpr{op: op, lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

// parsePrimary := '(' parseUnion ')' | name '(' args ')' | name
func (p *parser) parsePrimary() (Expr, error) {
	switch p.tok.kind {
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.unexpected("')'")
		}
		return expr, p.advance()

	case tokName:
		name := p.tok.text
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokLParen {
			if err := errors.ValidateVertexName(name); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidQuery, err, "bad name at offset %d", pos)
			}
			return &nameExpr{name: name}, nil
		}
		return p.parseCall(name)
	}
	return nil, p.unexpected("a name, function call or '('")
}

func (p *parser) parseCall(fn string) (Expr, error) {
	want, known := arity[fn]
	if !known {
		return nil, errors.New(errors.ErrCodeInvalidQuery,
			"unknown function %q at offset %d", fn, p.tok.pos)
	}
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}

	var args []Expr
	if p.tok.kind != tokRParen {
		for {
			arg, err := p.parseUnion()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.tok.kind != tokComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if p.tok.kind != tokRParen {
		return nil, p.unexpected("')'")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if len(args) != want {
		return nil, errors.New(errors.ErrCodeInvalidQuery,
			"%s() takes %d argument(s), got %d", fn, want, len(args))
	}
	return &funcExpr{fn: fn, args: args}, nil
}
