package parser

import (
	"strconv"
	"strings"

	"github.com/titpetric/stylesc/ast"
)

// parseValue parses a full property/argument value: a comma-separated list
// of space-separated lists of arithmetic expressions. Generalizes the
// teacher's parseValue/parseCommaList/parseCommaListWithSpaces chain
// (parser/parser.go) onto the typed expression tree.
func (p *Parser) parseValue() (ast.Expression, error) {
	return p.parseCommaList()
}

func (p *Parser) parseCommaList() (ast.Expression, error) {
	pos := p.here()
	first, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	if !p.check(TokenComma) {
		return first, nil
	}
	list := &ast.List{Position: pos, Separator: ast.SepComma, Items: []ast.Expression{first}}
	for {
		if _, ok := p.match(TokenComma); !ok {
			break
		}
		item, err := p.parseSpaceList()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
	return list, nil
}

func (p *Parser) parseSpaceList() (ast.Expression, error) {
	pos := p.here()
	first, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.startsValue() {
		return first, nil
	}
	list := &ast.List{Position: pos, Separator: ast.SepSpace, Items: []ast.Expression{first}}
	for p.startsValue() {
		item, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
	return list, nil
}

// startsValue reports whether the upcoming token can begin another
// space-separated value item, stopping a value list at the tokens that end
// a declaration, argument, or nested construct.
func (p *Parser) startsValue() bool {
	switch p.peek().Type {
	case TokenComma, TokenSemi, TokenRParen, TokenRBrace, TokenRBracket, TokenEOF, TokenBang, TokenLBrace, TokenColon:
		return false
	}
	return true
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(TokenIdent) && p.peek().Value == "or" {
		pos := p.here()
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Position: pos, Op: ast.OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.check(TokenIdent) && p.peek().Value == "and" {
		pos := p.here()
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Position: pos, Op: ast.OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Expression, error) {
	if p.check(TokenIdent) && p.peek().Value == "not" {
		pos := p.here()
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Position: pos, Op: ast.UnaryNot, Operand: operand}, nil
	}
	return p.parseEquality()
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Type {
		case TokenEqEq:
			op = ast.OpEq
		case TokenNe:
			op = ast.OpNeq
		default:
			return left, nil
		}
		pos := p.here()
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Position: pos, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Type {
		case TokenLt:
			op = ast.OpLt
		case TokenLe:
			op = ast.OpLte
		case TokenGt:
			op = ast.OpGt
		case TokenGe:
			op = ast.OpGte
		default:
			return left, nil
		}
		pos := p.here()
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Position: pos, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Type {
		case TokenPlus:
			op = ast.OpAdd
		case TokenMinus:
			op = ast.OpSub
		default:
			return left, nil
		}
		pos := p.here()
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Position: pos, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case TokenStar:
			pos := p.here()
			p.advance()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &ast.Binary{Position: pos, Op: ast.OpMul, Left: left, Right: right}
		case TokenSlash:
			pos := p.here()
			p.advance()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			// A '/' is always parsed as a delayed division; the evaluator
			// decides whether the surrounding context forces it (see
			// evaluator.EvalDelayed).
			left = &ast.Binary{Position: pos, Op: ast.OpDiv, Left: left, Right: right, Delayed: true}
		case TokenIdent:
			if p.peek().Value != "mod" {
				return left, nil
			}
			pos := p.here()
			p.advance()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &ast.Binary{Position: pos, Op: ast.OpMod, Left: left, Right: right}
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	switch p.peek().Type {
	case TokenMinus:
		pos := p.here()
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Position: pos, Op: ast.UnaryMinus, Operand: operand}, nil
	case TokenPlus:
		pos := p.here()
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Position: pos, Op: ast.UnaryPlus, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	pos := p.here()
	switch tok.Type {
	case TokenNumber:
		p.advance()
		return parseNumberToken(pos, tok.Value), nil
	case TokenHashIdent:
		p.advance()
		color, ok := parseHexColor(pos, tok.Value)
		if !ok {
			return nil, p.errf("invalid hex color #%s", tok.Value)
		}
		return color, nil
	case TokenString:
		p.advance()
		return p.buildQuotedOrSchema(pos, tok)
	case TokenVariable:
		p.advance()
		return &ast.Variable{Position: pos, Name: tok.Value}, nil
	case TokenLParen:
		return p.parseParenExpr()
	case TokenLBracket:
		return p.parseBracketedList()
	case TokenIdent:
		return p.parseIdentOrCall()
	}
	return nil, p.errf("unexpected token %q in value", tok.Value)
}

func (p *Parser) buildQuotedOrSchema(pos ast.Position, tok Token) (ast.Expression, error) {
	frags, hasInterp, err := splitInterpolated(p.path, tok.Value)
	if err != nil {
		return nil, err
	}
	if !hasInterp {
		return &ast.StringQuoted{Position: pos, Value: tok.Value, QuoteMark: tok.QuoteChar}, nil
	}
	return &ast.StringSchema{Position: pos, Fragments: frags, HasInterpolants: true, QuoteMark: tok.QuoteChar}, nil
}

func (p *Parser) parseIdentOrCall() (ast.Expression, error) {
	tok := p.advance()
	pos := p.pos_(tok)
	switch tok.Value {
	case "true":
		return &ast.Boolean{Position: pos, Value: true}, nil
	case "false":
		return &ast.Boolean{Position: pos, Value: false}, nil
	case "null":
		return &ast.Null{Position: pos}, nil
	}

	nameExpr, err := buildSchemaOrConstant(p.path, pos, tok.Value)
	if err != nil {
		return nil, err
	}

	if p.check(TokenLParen) {
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		if schema, ok := nameExpr.(*ast.StringSchema); ok {
			return &ast.FunctionCallSchema{Position: pos, NameExpr: schema, Args: args}, nil
		}
		return &ast.FunctionCall{Position: pos, Name: tok.Value, Args: args}, nil
	}
	return nameExpr, nil
}

// parseParenExpr parses a parenthesized group, which per the Sass-flavored
// grammar is one of: a map literal `(key: value, ...)`, a plain grouped
// expression `(1 + 2)`, or a comma/space list written with explicit
// parens.
func (p *Parser) parseParenExpr() (ast.Expression, error) {
	pos := p.here()
	p.advance() // '('
	if p.check(TokenRParen) {
		p.advance()
		return &ast.Map{Position: pos}, nil
	}
	if p.looksLikeMapEntry() {
		return p.parseMapBody(pos)
	}
	inner, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen, "to close parenthesized expression"); err != nil {
		return nil, err
	}
	return inner, nil
}

// looksLikeMapEntry reports whether the upcoming tokens open a "key:" map
// entry rather than an ordinary expression, by scanning ahead at depth 0
// for a ':' before the matching ')' or a top-level ','.
func (p *Parser) looksLikeMapEntry() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		t := p.tokens[i]
		switch t.Type {
		case TokenLParen, TokenLBracket:
			depth++
		case TokenRParen, TokenRBracket:
			if depth == 0 {
				return false
			}
			depth--
		case TokenColon:
			if depth == 0 {
				return true
			}
		case TokenComma:
			if depth == 0 {
				return false
			}
		case TokenSemi, TokenEOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseMapBody(pos ast.Position) (ast.Expression, error) {
	m := &ast.Map{Position: pos}
	for !p.check(TokenRParen) {
		key, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenColon, "after map key"); err != nil {
			return nil, err
		}
		val, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, ast.MapEntry{Key: key, Value: val})
		if _, ok := p.match(TokenComma); !ok {
			break
		}
	}
	if _, err := p.expect(TokenRParen, "to close map literal"); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Parser) parseBracketedList() (ast.Expression, error) {
	pos := p.here()
	p.advance() // '['
	list := &ast.List{Position: pos, Separator: ast.SepSpace, IsBracketed: true}
	for !p.check(TokenRBracket) {
		item, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
		if _, ok := p.match(TokenComma); ok {
			list.Separator = ast.SepComma
			continue
		}
	}
	if _, err := p.expect(TokenRBracket, "to close bracketed list"); err != nil {
		return nil, err
	}
	return list, nil
}

// parseNumberToken splits a lexed NUMBER token's raw text (digits,
// optional fractional part, optional trailing unit letters or '%') into a
// Number literal.
func parseNumberToken(pos ast.Position, raw string) ast.Expression {
	i := 0
	for i < len(raw) && (isDigit(raw[i]) || raw[i] == '.') {
		i++
	}
	numText := raw[:i]
	unit := raw[i:]
	value, _ := strconv.ParseFloat(numText, 64)
	n := &ast.Number{Position: pos, Value: value, HasLeadingZero: strings.HasPrefix(numText, "0") && numText != "0" && !strings.HasPrefix(numText, "0.")}
	if unit == "%" {
		n.NumeratorUnits = []string{"%"}
	} else if unit != "" {
		n.NumeratorUnits = []string{unit}
	}
	return n
}

func parseHexColor(pos ast.Position, hex string) (*ast.Color, bool) {
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return nil, false
		}
	}
	expand := func(c byte) string { return string([]byte{c, c}) }
	var r, g, b int
	a := 1.0
	switch len(hex) {
	case 3:
		r = hexByte(expand(hex[0]))
		g = hexByte(expand(hex[1]))
		b = hexByte(expand(hex[2]))
	case 4:
		r = hexByte(expand(hex[0]))
		g = hexByte(expand(hex[1]))
		b = hexByte(expand(hex[2]))
		a = float64(hexByte(expand(hex[3]))) / 255
	case 6:
		r = hexByte(hex[0:2])
		g = hexByte(hex[2:4])
		b = hexByte(hex[4:6])
	case 8:
		r = hexByte(hex[0:2])
		g = hexByte(hex[2:4])
		b = hexByte(hex[4:6])
		a = float64(hexByte(hex[6:8])) / 255
	default:
		return nil, false
	}
	return &ast.Color{Position: pos, R: r, G: g, B: b, A: a, OriginalName: "#" + hex}, true
}

func hexByte(s string) int {
	v, _ := strconv.ParseInt(s, 16, 32)
	return int(v)
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
