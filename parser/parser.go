// Package parser turns stylesheet source text into the typed ast.Block
// tree. It generalizes the teacher's parser/parser.go, which built a
// stringly-typed ast.Stylesheet by matching LESS's `@variable`/`.mixin()`
// grammar one token pattern at a time (parseRule, parseMixinCall,
// parseAtRule, ...): the same token-pattern-matching shape survives here,
// but every production now builds a typed ast.Statement/ast.Expression
// node instead of assembling CSS text.
package parser

import (
	"strings"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/diag"
)

// Parser consumes a flat token stream and builds the statement tree.
type Parser struct {
	path   string
	tokens []Token
	pos    int
}

// Parse tokenizes and parses a complete stylesheet.
func Parse(path, source string) (*ast.Block, error) {
	tokens := NewLexer(path, source).Tokenize()
	p := &Parser{path: path, tokens: tokens}
	return p.parseBlock(true)
}

// ParseExpression parses a single expression from source, used for
// interpolation fragments recovered from inside a string/identifier
// token and for re-entrant parses of already-extracted sub-text.
func ParseExpression(path, source string) (ast.Expression, error) {
	tokens := NewLexer(path, source).Tokenize()
	p := &Parser{path: path, tokens: tokens}
	return p.parseValue()
}

// ParseSelectorList parses a comma-separated selector group from already
// interpolation-resolved text, used by the expander to re-enter the parser
// once a SelectorSchema's "#{...}" fragments have been evaluated to plain
// text and need real structural selector nodes.
func ParseSelectorList(path, source string) (*ast.SelectorList, error) {
	tokens := NewLexer(path, source).Tokenize()
	p := &Parser{path: path, tokens: tokens}
	expr, err := p.parseSelectorList()
	if err != nil {
		return nil, err
	}
	list, ok := expr.(*ast.SelectorList)
	if !ok {
		return nil, p.errf("selector still contains unresolved interpolation after evaluation")
	}
	return list, nil
}

func (p *Parser) pos_(tok Token) ast.Position {
	return ast.Position{Path: p.path, Line: tok.Line, Column: tok.Column}
}

func (p *Parser) here() ast.Position { return p.pos_(p.peek()) }

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[i]
}

func (p *Parser) advance() Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) check(t TokenType) bool { return p.peek().Type == t }

func (p *Parser) match(t TokenType) (Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	return Token{}, false
}

func (p *Parser) expect(t TokenType, context string) (Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return Token{}, diag.New(diag.KindSyntax, p.here(), "expected %s %s, found %q", t, context, p.peek().Value)
}

func (p *Parser) errf(format string, args ...interface{}) error {
	return diag.New(diag.KindSyntax, p.here(), format, args...)
}

// parseBlock parses statements until a closing '}' (or EOF, at the root).
func (p *Parser) parseBlock(isRoot bool) (*ast.Block, error) {
	pos := p.here()
	block := &ast.Block{Position: pos, IsRoot: isRoot}
	for {
		if p.check(TokenEOF) {
			if !isRoot {
				return nil, p.errf("unexpected end of input, expected '}'")
			}
			return block, nil
		}
		if p.check(TokenRBrace) {
			if isRoot {
				return nil, p.errf("unexpected '}'")
			}
			p.advance()
			return block, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block.Children = append(block.Children, stmt)
		}
	}
}

func (p *Parser) parseBraceBlock() (*ast.Block, error) {
	if _, err := p.expect(TokenLBrace, "to open a block"); err != nil {
		return nil, err
	}
	return p.parseBlock(false)
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.peek().Type {
	case TokenSemi:
		p.advance()
		return nil, nil
	case TokenComment:
		tok := p.advance()
		return &ast.Comment{Position: p.pos_(tok), Text: tok.Value, IsImportant: strings.HasPrefix(tok.Value, "!")}, nil
	case TokenAtKeyword:
		return p.parseAtStatement()
	case TokenVariable:
		if p.peekAt(1).Type == TokenColon {
			return p.parseAssignment()
		}
	}
	return p.parseRulesetOrDeclaration()
}

func (p *Parser) parseAssignment() (ast.Statement, error) {
	pos := p.here()
	nameTok := p.advance() // Variable
	p.advance()            // ':'
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	a := &ast.Assignment{Position: pos, Name: nameTok.Value, Value: value}
	for {
		if p.check(TokenBang) {
			p.advance()
			flag := p.advance()
			switch flag.Value {
			case "default":
				a.IsGuarded = true
			case "global":
				a.IsGlobal = true
			default:
				return nil, p.errf("unknown flag !%s", flag.Value)
			}
			continue
		}
		break
	}
	p.match(TokenSemi)
	return a, nil
}

// parseRulesetOrDeclaration disambiguates a selector-headed ruleset from a
// `property: value;` declaration by scanning ahead at bracket depth 0 for
// whichever of '{', ';', or the enclosing '}' comes first. A colon whose
// very next token is '{' is always a nested (namespaced) declaration
// block, e.g. `font: { family: sans-serif; }`.
func (p *Parser) parseRulesetOrDeclaration() (ast.Statement, error) {
	if p.looksLikeDeclaration() {
		return p.parseDeclaration()
	}
	return p.parseRuleset()
}

func (p *Parser) looksLikeDeclaration() bool {
	depth := 0
	i := p.pos
	sawColon := false
	for i < len(p.tokens) {
		t := p.tokens[i]
		switch t.Type {
		case TokenLParen, TokenLBracket:
			depth++
		case TokenRParen, TokenRBracket:
			depth--
		case TokenColon:
			if depth == 0 {
				sawColon = true
				if i+1 < len(p.tokens) && p.tokens[i+1].Type == TokenLBrace {
					return true
				}
			}
		case TokenLBrace:
			if depth == 0 {
				return false
			}
		case TokenSemi, TokenRBrace, TokenEOF:
			if depth == 0 {
				return sawColon
			}
		}
		i++
	}
	return false
}

func (p *Parser) parseDeclaration() (ast.Statement, error) {
	pos := p.here()
	prop, err := p.parsePropertyName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon, "after property name"); err != nil {
		return nil, err
	}
	d := &ast.Declaration{Position: pos, Property: prop}
	if strings.HasPrefix(propertyText(prop), "--") {
		d.IsCustomProperty = true
	}
	if p.check(TokenLBrace) {
		block, err := p.parseBraceBlock()
		if err != nil {
			return nil, err
		}
		d.Block = block
		return d, nil
	}
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	d.Value = value
	if _, ok := p.match(TokenBang); ok {
		kw := p.advance()
		if kw.Value != "important" {
			return nil, p.errf("unknown flag !%s", kw.Value)
		}
		d.IsImportant = true
	}
	if p.check(TokenLBrace) {
		block, err := p.parseBraceBlock()
		if err != nil {
			return nil, err
		}
		d.Block = block
	}
	p.match(TokenSemi)
	return d, nil
}

func propertyText(e ast.Expression) string {
	switch v := e.(type) {
	case *ast.StringConstant:
		return v.Value
	default:
		return ""
	}
}

// parsePropertyName reads the identifier-like run before ':', honoring
// interpolation, e.g. `margin-#{$side}`.
func (p *Parser) parsePropertyName() (ast.Expression, error) {
	pos := p.here()
	var parts []string
	for p.check(TokenIdent) || p.check(TokenMinus) {
		parts = append(parts, p.advance().Value)
	}
	return buildSchemaOrConstant(p.path, pos, strings.Join(parts, ""))
}

func (p *Parser) parseRuleset() (ast.Statement, error) {
	pos := p.here()
	selector, err := p.parseSelectorList()
	if err != nil {
		return nil, err
	}
	block, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Ruleset{Position: pos, Selector: selector, Block: block}, nil
}

func (p *Parser) parseAtStatement() (ast.Statement, error) {
	tok := p.peek()
	pos := p.here()
	switch tok.Value {
	case "mixin", "function":
		return p.parseDefinition()
	case "include":
		return p.parseInclude()
	case "content":
		p.advance()
		p.match(TokenSemi)
		return &ast.Content{Position: pos}, nil
	case "if":
		return p.parseIf()
	case "for":
		return p.parseFor()
	case "each":
		return p.parseEach()
	case "while":
		return p.parseWhile()
	case "return":
		p.advance()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.match(TokenSemi)
		return &ast.Return{Position: pos, Value: v}, nil
	case "extend":
		p.advance()
		sel, err := p.parseSelectorList()
		if err != nil {
			return nil, err
		}
		opt := false
		if p.peek().Type == TokenBang {
			p.advance()
			p.advance() // "optional"
			opt = true
		}
		p.match(TokenSemi)
		return &ast.ExtendRule{Position: pos, Selector: sel, IsOptional: opt}, nil
	case "import":
		return p.parseImport()
	case "media":
		return p.parseMedia()
	case "supports":
		return p.parseSupports()
	case "at-root":
		return p.parseAtRoot()
	case "warn", "debug", "error":
		p.advance()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.match(TokenSemi)
		switch tok.Value {
		case "warn":
			return &ast.Warning{Position: pos, Value: v}, nil
		case "error":
			return &ast.ErrorStmt{Position: pos, Value: v}, nil
		default:
			return &ast.Debug{Position: pos, Value: v}, nil
		}
	default:
		return p.parseDirective()
	}
}

func (p *Parser) parseDefinition() (ast.Statement, error) {
	pos := p.here()
	kind := ast.KindMixin
	if p.advance().Value == "function" {
		kind = ast.KindFunction
	}
	name := p.advance().Value
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	block, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Definition{Position: pos, Name: name, Kind: kind, Params: params, Block: block}, nil
}

func (p *Parser) parseParameters() (*ast.Parameters, error) {
	pos := p.here()
	if _, err := p.expect(TokenLParen, "to start parameter list"); err != nil {
		return nil, err
	}
	params := &ast.Parameters{Position: pos}
	for !p.check(TokenRParen) {
		ppos := p.here()
		nameTok, err := p.expect(TokenVariable, "as parameter name")
		if err != nil {
			return nil, err
		}
		param := &ast.Parameter{Position: ppos, Name: nameTok.Value}
		if _, ok := p.match(TokenEllipsis); ok {
			param.IsRest = true
		} else if _, ok := p.match(TokenColon); ok {
			def, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		params.Items = append(params.Items, param)
		if _, ok := p.match(TokenComma); !ok {
			break
		}
	}
	if _, err := p.expect(TokenRParen, "to close parameter list"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseArguments() (*ast.Arguments, error) {
	pos := p.here()
	if _, err := p.expect(TokenLParen, "to start argument list"); err != nil {
		return nil, err
	}
	args := &ast.Arguments{Position: pos}
	for !p.check(TokenRParen) {
		apos := p.here()
		arg := &ast.Argument{Position: apos}
		if p.check(TokenVariable) && p.peekAt(1).Type == TokenColon {
			arg.Name = p.advance().Value
			p.advance()
		}
		val, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if _, ok := p.match(TokenEllipsis); ok {
			arg.IsRest = true
		}
		arg.Value = val
		args.Items = append(args.Items, arg)
		if _, ok := p.match(TokenComma); !ok {
			break
		}
	}
	if _, err := p.expect(TokenRParen, "to close argument list"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseInclude() (ast.Statement, error) {
	pos := p.here()
	p.advance()
	name := p.advance().Value
	var args *ast.Arguments
	if p.check(TokenLParen) {
		var err error
		args, err = p.parseArguments()
		if err != nil {
			return nil, err
		}
	}
	important := false
	if _, ok := p.match(TokenBang); ok {
		p.advance() // "important"
		important = true
	}
	mc := &ast.MixinCall{Position: pos, Name: name, Args: args, IsImportant: important}
	if p.check(TokenLBrace) {
		block, err := p.parseBraceBlock()
		if err != nil {
			return nil, err
		}
		mc.ContentBlock = block
		return mc, nil
	}
	p.match(TokenSemi)
	return mc, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	pos := p.here()
	p.advance()
	pred, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Position: pos, Predicate: pred, Consequent: body}
	if p.check(TokenAtKeyword) && p.peek().Value == "else" {
		p.advance()
		if (p.check(TokenAtKeyword) || p.check(TokenIdent)) && p.peek().Value == "if" {
			alt, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt.Alternative = alt
			return stmt, nil
		}
		elseBody, err := p.parseBraceBlock()
		if err != nil {
			return nil, err
		}
		stmt.Alternative = elseBody
	}
	return stmt, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	pos := p.here()
	p.advance()
	varTok, err := p.expect(TokenVariable, "as @for loop variable")
	if err != nil {
		return nil, err
	}
	if kw := p.advance(); kw.Value != "from" {
		return nil, p.errf("expected 'from' in @for, found %q", kw.Value)
	}
	lower, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	kw := p.advance()
	inclusive := kw.Value == "through"
	if kw.Value != "through" && kw.Value != "to" {
		return nil, p.errf("expected 'to' or 'through' in @for, found %q", kw.Value)
	}
	upper, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	block, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{Position: pos, Var: varTok.Value, Lower: lower, Upper: upper, Inclusive: inclusive, Block: block}, nil
}

func (p *Parser) parseEach() (ast.Statement, error) {
	pos := p.here()
	p.advance()
	var vars []string
	for {
		v, err := p.expect(TokenVariable, "in @each variable list")
		if err != nil {
			return nil, err
		}
		vars = append(vars, v.Value)
		if _, ok := p.match(TokenComma); !ok {
			break
		}
	}
	if kw := p.advance(); kw.Value != "in" {
		return nil, p.errf("expected 'in' in @each, found %q", kw.Value)
	}
	list, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	block, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Each{Position: pos, Vars: vars, List: list, Block: block}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	pos := p.here()
	p.advance()
	pred, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	block, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Position: pos, Predicate: pred, Block: block}, nil
}

func (p *Parser) parseImport() (ast.Statement, error) {
	pos := p.here()
	p.advance()
	imp := &ast.Import{Position: pos}
	for {
		v, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		imp.Urls = append(imp.Urls, v)
		if _, ok := p.match(TokenComma); !ok {
			break
		}
	}
	p.match(TokenSemi)
	return imp, nil
}

func (p *Parser) parseMedia() (ast.Statement, error) {
	pos := p.here()
	p.advance()
	mr := &ast.MediaRule{Position: pos}
	for {
		q, err := p.parseMediaQuery()
		if err != nil {
			return nil, err
		}
		mr.Queries = append(mr.Queries, q)
		if _, ok := p.match(TokenComma); !ok {
			break
		}
	}
	block, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	mr.Block = block
	return mr, nil
}

func (p *Parser) parseMediaQuery() (ast.MediaQuery, error) {
	q := ast.MediaQuery{}
	if p.check(TokenIdent) && (p.peek().Value == "not" || p.peek().Value == "only") {
		q.Modifier = p.advance().Value
	}
	if p.check(TokenIdent) && p.peek().Value != "and" {
		q.Type = p.advance().Value
	}
	for p.check(TokenIdent) && p.peek().Value == "and" {
		p.advance()
		feature, err := p.parseMediaFeature()
		if err != nil {
			return q, err
		}
		q.Features = append(q.Features, feature)
	}
	if q.Type == "" && len(q.Features) == 0 {
		feature, err := p.parseMediaFeature()
		if err != nil {
			return q, err
		}
		q.Features = append(q.Features, feature)
	}
	return q, nil
}

func (p *Parser) parseMediaFeature() (ast.MediaFeature, error) {
	if _, err := p.expect(TokenLParen, "to start media feature"); err != nil {
		return ast.MediaFeature{}, err
	}
	name := p.advance().Value
	f := ast.MediaFeature{Name: name}
	if _, ok := p.match(TokenColon); ok {
		v, err := p.parseAdditive()
		if err != nil {
			return f, err
		}
		f.Value = v
	}
	if _, err := p.expect(TokenRParen, "to close media feature"); err != nil {
		return f, err
	}
	return f, nil
}

func (p *Parser) parseSupports() (ast.Statement, error) {
	pos := p.here()
	p.advance()
	cond, err := p.parseSupportsCondition()
	if err != nil {
		return nil, err
	}
	block, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	return &ast.SupportsRule{Position: pos, Condition: cond, Block: block}, nil
}

func (p *Parser) parseSupportsCondition() (*ast.SupportsCondition, error) {
	left, err := p.parseSupportsAtom()
	if err != nil {
		return nil, err
	}
	for p.check(TokenIdent) && (p.peek().Value == "and" || p.peek().Value == "or") {
		op := p.advance().Value
		right, err := p.parseSupportsAtom()
		if err != nil {
			return nil, err
		}
		left = &ast.SupportsCondition{Combinator: op, Children: []*ast.SupportsCondition{left, right}}
	}
	return left, nil
}

func (p *Parser) parseSupportsAtom() (*ast.SupportsCondition, error) {
	if p.check(TokenIdent) && p.peek().Value == "not" {
		p.advance()
		inner, err := p.parseSupportsAtom()
		if err != nil {
			return nil, err
		}
		return &ast.SupportsCondition{Combinator: "not", Children: []*ast.SupportsCondition{inner}}, nil
	}
	if _, err := p.expect(TokenLParen, "to start @supports condition"); err != nil {
		return nil, err
	}
	var b strings.Builder
	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		b.WriteString(p.advance().Value)
		b.WriteByte(' ')
	}
	if _, err := p.expect(TokenRParen, "to close @supports condition"); err != nil {
		return nil, err
	}
	return &ast.SupportsCondition{Feature: strings.TrimSpace(b.String())}, nil
}

func (p *Parser) parseAtRoot() (ast.Statement, error) {
	pos := p.here()
	p.advance()
	ar := &ast.AtRootRule{Position: pos}
	if p.check(TokenLParen) {
		p.advance()
		q := &ast.AtRootQuery{Tags: map[string]bool{}}
		kw := p.advance().Value // "with" or "without"
		q.Exclude = kw == "without"
		if _, err := p.expect(TokenColon, "after with/without"); err != nil {
			return nil, err
		}
		for !p.check(TokenRParen) && !p.check(TokenEOF) {
			q.Tags[p.advance().Value] = true
		}
		if _, err := p.expect(TokenRParen, "to close @at-root query"); err != nil {
			return nil, err
		}
		ar.Query = q
	}
	block, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	ar.Block = block
	return ar, nil
}

func (p *Parser) parseDirective() (ast.Statement, error) {
	pos := p.here()
	kw := p.advance().Value
	if kw == "keyframes" || strings.HasSuffix(kw, "keyframes") {
		name := p.advance().Value
		block, err := p.parseBraceBlock()
		if err != nil {
			return nil, err
		}
		return &ast.KeyframeRule{Position: pos, Name: name, Block: block}, nil
	}
	d := &ast.Directive{Position: pos, Keyword: kw}
	if !p.check(TokenLBrace) && !p.check(TokenSemi) {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		d.Value = v
	}
	if p.check(TokenLBrace) {
		block, err := p.parseBraceBlock()
		if err != nil {
			return nil, err
		}
		d.Block = block
		return d, nil
	}
	p.match(TokenSemi)
	return d, nil
}

// buildSchemaOrConstant turns raw text possibly containing "#{...}"
// interpolation markers into a StringConstant (no interpolation found) or
// a StringSchema whose fragments alternate literal text and re-parsed
// sub-expressions.
func buildSchemaOrConstant(path string, pos ast.Position, raw string) (ast.Expression, error) {
	frags, hasInterp, err := splitInterpolated(path, raw)
	if err != nil {
		return nil, err
	}
	if !hasInterp {
		return &ast.StringConstant{Position: pos, Value: raw}, nil
	}
	return &ast.StringSchema{Position: pos, Fragments: frags, HasInterpolants: true}, nil
}

func splitInterpolated(path, raw string) ([]ast.Expression, bool, error) {
	var frags []ast.Expression
	i := 0
	hasInterp := false
	var lit strings.Builder
	for i < len(raw) {
		if raw[i] == '#' && i+1 < len(raw) && raw[i+1] == '{' {
			if lit.Len() > 0 {
				frags = append(frags, &ast.StringConstant{Value: lit.String()})
				lit.Reset()
			}
			depth := 1
			j := i + 2
			for j < len(raw) && depth > 0 {
				if raw[j] == '{' {
					depth++
				} else if raw[j] == '}' {
					depth--
				}
				if depth > 0 {
					j++
				}
			}
			inner := raw[i+2 : j]
			expr, err := ParseExpression(path, inner)
			if err != nil {
				return nil, false, err
			}
			frags = append(frags, expr)
			hasInterp = true
			i = j + 1
			continue
		}
		lit.WriteByte(raw[i])
		i++
	}
	if lit.Len() > 0 || len(frags) == 0 {
		frags = append(frags, &ast.StringConstant{Value: lit.String()})
	}
	return frags, hasInterp, nil
}
