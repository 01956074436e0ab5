package tag

import (
	"errors"
	"fmt"
)

// AddressResolver maps a named address ("std") to a raw address. It
// returns false when the name is unknown; the parser surfaces that as an
// unresolved-named-address error. Some callers must defer resolution, so
// the hook is part of the parsing contract rather than a global table.
type AddressResolver func(name string) (Address, bool)

// noResolver rejects every named address.
func noResolver(string) (Address, bool) {
	var zero Address
	return zero, false
}

// ParseErrorCode categorizes parse errors.
type ParseErrorCode string

const (
	// ErrCodeMalformedAddress indicates an invalid address literal.
	ErrCodeMalformedAddress ParseErrorCode = "MALFORMED_ADDRESS"

	// ErrCodeInvalidIdentifier indicates an invalid module or struct name.
	ErrCodeInvalidIdentifier ParseErrorCode = "INVALID_IDENTIFIER"

	// ErrCodeUnbalancedGenerics indicates mismatched < > in a type list.
	ErrCodeUnbalancedGenerics ParseErrorCode = "UNBALANCED_GENERICS"

	// ErrCodeUnexpectedToken indicates any other grammar violation.
	ErrCodeUnexpectedToken ParseErrorCode = "UNEXPECTED_TOKEN"

	// ErrCodeUnresolvedNamedAddress indicates a named address the
	// resolver hook could not map.
	ErrCodeUnresolvedNamedAddress ParseErrorCode = "UNRESOLVED_NAMED_ADDRESS"

	// ErrCodeNestingTooDeep indicates the type exceeded the nesting
	// depth bound for untrusted input.
	ErrCodeNestingTooDeep ParseErrorCode = "NESTING_TOO_DEEP"
)

// ParseError represents a grammar violation in a type string. Untrusted
// strings (CLI args, RPC params) flow through the parser, so it must
// reject them with a structured error and never panic.
type ParseError struct {
	// Code identifies the error category.
	Code ParseErrorCode

	// Message is a human-readable description.
	Message string

	// Input is the full string being parsed.
	Input string

	// Offset is the byte position of the offending token, -1 if unknown.
	Offset int

	// Token is the offending substring, empty if unknown.
	Token string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: %s (at %q, offset %d)", e.Code, e.Message, e.Token, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsParseError reports whether err is a ParseError with the given code.
// Uses errors.As to handle wrapped errors.
func IsParseError(err error, code ParseErrorCode) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

// maxNestingDepth bounds type nesting for untrusted input. The grammar
// itself is unbounded; without a cap an adversarial string like
// "vector<vector<...>>" drives parser recursion arbitrarily deep.
const maxNestingDepth = 128

// ParseTypeTag parses the canonical/display textual grammar into a
// TypeTag. Named addresses are rejected as unresolved; use
// ParseTypeTagWithResolver to supply a resolution hook.
func ParseTypeTag(s string) (TypeTag, error) {
	return ParseTypeTagWithResolver(s, noResolver)
}

// ParseTypeTagWithResolver parses a type string, resolving named
// addresses through resolve.
func ParseTypeTagWithResolver(s string, resolve AddressResolver) (TypeTag, error) {
	p := newParser(s, resolve)
	t, err := p.parseType(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseStructTag parses a fully-qualified struct type string.
func ParseStructTag(s string) (*StructTag, error) {
	return ParseStructTagWithResolver(s, noResolver)
}

// ParseStructTagWithResolver parses a struct type string, resolving named
// addresses through resolve.
func ParseStructTagWithResolver(s string, resolve AddressResolver) (*StructTag, error) {
	p := newParser(s, resolve)
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	st, err := p.parseStruct(tok, 0)
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return st, nil
}

// ParseModuleID parses an "address::name" module id string.
func ParseModuleID(s string) (ModuleID, error) {
	return ParseModuleIDWithResolver(s, noResolver)
}

// ParseModuleIDWithResolver parses a module id string, resolving named
// addresses through resolve.
func ParseModuleIDWithResolver(s string, resolve AddressResolver) (ModuleID, error) {
	var m ModuleID
	p := newParser(s, resolve)
	tok, err := p.next()
	if err != nil {
		return m, err
	}
	addr, err := p.parseAddressLit(tok)
	if err != nil {
		return m, err
	}
	if err := p.expect(tokColonColon); err != nil {
		return m, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return m, err
	}
	if err := p.expectEOF(); err != nil {
		return m, err
	}
	m.Address = addr
	m.Name = name
	return m, nil
}

// tokenKind discriminates scanner tokens.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokColonColon
	tokLt
	tokGt
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokWord:
		return "name"
	case tokColonColon:
		return "'::'"
	case tokLt:
		return "'<'"
	case tokGt:
		return "'>'"
	case tokComma:
		return "','"
	default:
		return "unknown token"
	}
}

// parser is a recursive-descent parser over the type grammar.
type parser struct {
	input   string
	pos     int
	resolve AddressResolver
}

func newParser(input string, resolve AddressResolver) *parser {
	return &parser{input: input, resolve: resolve}
}

func (p *parser) errorf(code ParseErrorCode, tok string, pos int, format string, args ...any) *ParseError {
	return &ParseError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Input:   p.input,
		Offset:  pos,
		Token:   tok,
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

// next scans the next token.
func (p *parser) next() (token, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return token{kind: tokEOF, pos: p.pos}, nil
	}
	start := p.pos
	switch c := p.input[p.pos]; {
	case c == ':':
		if p.pos+1 >= len(p.input) || p.input[p.pos+1] != ':' {
			return token{}, p.errorf(ErrCodeUnexpectedToken, ":", start, "expected '::'")
		}
		p.pos += 2
		return token{kind: tokColonColon, text: "::", pos: start}, nil
	case c == '<':
		p.pos++
		return token{kind: tokLt, text: "<", pos: start}, nil
	case c == '>':
		p.pos++
		return token{kind: tokGt, text: ">", pos: start}, nil
	case c == ',':
		p.pos++
		return token{kind: tokComma, text: ",", pos: start}, nil
	case isWordChar(c):
		for p.pos < len(p.input) && isWordChar(p.input[p.pos]) {
			p.pos++
		}
		return token{kind: tokWord, text: p.input[start:p.pos], pos: start}, nil
	default:
		return token{}, p.errorf(ErrCodeUnexpectedToken, string(c), start, "unexpected character")
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// peek returns the next token without consuming it.
func (p *parser) peek() (token, error) {
	save := p.pos
	tok, err := p.next()
	p.pos = save
	return tok, err
}

func (p *parser) expect(kind tokenKind) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.kind != kind {
		code := ErrCodeUnexpectedToken
		if kind == tokGt {
			code = ErrCodeUnbalancedGenerics
		}
		return p.errorf(code, tok.text, tok.pos, "expected %s, found %s", kind, tok.kind)
	}
	return nil
}

func (p *parser) expectEOF() error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.kind != tokEOF {
		if tok.kind == tokGt {
			return p.errorf(ErrCodeUnbalancedGenerics, tok.text, tok.pos, "unmatched '>'")
		}
		return p.errorf(ErrCodeUnexpectedToken, tok.text, tok.pos, "trailing input after type")
	}
	return nil
}

// primitiveKeywords maps grammar keywords to primitive tags. Keywords are
// exact lowercase: "Bool" is a JSON-era alias, not part of this grammar.
var primitiveKeywords = map[string]TypeTag{
	"bool":    BoolTag{},
	"u8":      U8Tag{},
	"u16":     U16Tag{},
	"u32":     U32Tag{},
	"u64":     U64Tag{},
	"u128":    U128Tag{},
	"u256":    U256Tag{},
	"address": AddressTag{},
	"signer":  SignerTag{},
}

func (p *parser) parseType(depth int) (TypeTag, error) {
	if depth >= maxNestingDepth {
		return nil, p.errorf(ErrCodeNestingTooDeep, "", p.pos, "type nesting exceeds %d levels", maxNestingDepth)
	}
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokWord {
		return nil, p.errorf(ErrCodeUnexpectedToken, tok.text, tok.pos, "expected a type, found %s", tok.kind)
	}

	// A keyword is only a primitive when it stands alone: "signer::m::T"
	// is a struct path with a named address.
	if prim, ok := primitiveKeywords[tok.text]; ok {
		after, err := p.peek()
		if err != nil {
			return nil, err
		}
		if after.kind != tokColonColon {
			return prim, nil
		}
	}

	if tok.text == "vector" {
		if err := p.expect(tokLt); err != nil {
			return nil, err
		}
		elem, err := p.parseType(depth + 1)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokGt); err != nil {
			return nil, err
		}
		return VectorTag{Elem: elem}, nil
	}

	return p.parseStruct(tok, depth)
}

// parseStruct parses "AddressLit :: Ident :: Ident [generics]" where tok
// is the already-consumed address literal.
func (p *parser) parseStruct(tok token, depth int) (*StructTag, error) {
	if tok.kind != tokWord {
		return nil, p.errorf(ErrCodeUnexpectedToken, tok.text, tok.pos, "expected an address, found %s", tok.kind)
	}
	addr, err := p.parseAddressLit(tok)
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokColonColon); err != nil {
		return nil, err
	}
	module, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokColonColon); err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	st := &StructTag{Address: addr, Module: module, Name: name}

	after, err := p.peek()
	if err != nil {
		return nil, err
	}
	if after.kind != tokLt {
		return st, nil
	}
	if _, err := p.next(); err != nil { // consume '<'
		return nil, err
	}

	for {
		param, err := p.parseType(depth + 1)
		if err != nil {
			return nil, err
		}
		st.TypeParams = append(st.TypeParams, param)

		sep, err := p.next()
		if err != nil {
			return nil, err
		}
		switch sep.kind {
		case tokComma:
			continue
		case tokGt:
			return st, nil
		case tokEOF:
			return nil, p.errorf(ErrCodeUnbalancedGenerics, "", sep.pos, "missing '>' in type argument list")
		default:
			return nil, p.errorf(ErrCodeUnexpectedToken, sep.text, sep.pos, "expected ',' or '>', found %s", sep.kind)
		}
	}
}

// parseAddressLit interprets a word token as an address literal: a
// "0x"-prefixed or digit-leading hex literal, or a named address passed
// to the resolver hook. A full-width run of hex digits is always a
// literal even when it leads with a letter - the canonical no-prefix
// rendering of addresses with a top nibble of a-f produces exactly that,
// and at 64 digits it cannot collide with a sensible named address.
func (p *parser) parseAddressLit(tok token) (Address, error) {
	var zero Address
	text := tok.text
	if text[0] >= '0' && text[0] <= '9' || isFullWidthHex(text) {
		addr, err := AddressFromHex(text)
		if err != nil {
			return zero, p.errorf(ErrCodeMalformedAddress, text, tok.pos, "%v", err)
		}
		return addr, nil
	}
	addr, ok := p.resolve(text)
	if !ok {
		return zero, p.errorf(ErrCodeUnresolvedNamedAddress, text, tok.pos, "named address %q is not bound", text)
	}
	return addr, nil
}

// isFullWidthHex reports whether s is exactly a full-width address worth
// of hex digits.
func isFullWidthHex(s string) bool {
	if len(s) != 2*AddressLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

func (p *parser) parseIdentifier() (Identifier, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	if tok.kind != tokWord {
		return "", p.errorf(ErrCodeUnexpectedToken, tok.text, tok.pos, "expected an identifier, found %s", tok.kind)
	}
	id, err := NewIdentifier(tok.text)
	if err != nil {
		return "", p.errorf(ErrCodeInvalidIdentifier, tok.text, tok.pos, "%v", err)
	}
	return id, nil
}
