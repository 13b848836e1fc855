package parser

import (
	"strings"

	"github.com/titpetric/stylesc/ast"
)

// parseSelectorList parses a comma-separated selector group up to (but not
// consuming) the opening '{'. A selector containing interpolation is left
// unparsed as a SelectorSchema; the expander resolves the interpolated text
// and re-enters the parser to build the real SelectorList once the
// variable values are known.
func (p *Parser) parseSelectorList() (ast.Expression, error) {
	pos := p.here()
	if p.selectorHasInterpolation() {
		raw := p.consumeRawSelectorText()
		schemaExpr, err := buildSchemaOrConstant(p.path, pos, raw)
		if err != nil {
			return nil, err
		}
		schema, ok := schemaExpr.(*ast.StringSchema)
		if !ok {
			schema = &ast.StringSchema{Position: pos, Fragments: []ast.Expression{schemaExpr}}
		}
		return &ast.SelectorSchema{Position: pos, Contents: schema}, nil
	}

	list := &ast.SelectorList{Position: pos}
	for {
		sel, err := p.parseComplexSelector()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, sel)
		if _, ok := p.match(TokenComma); !ok {
			break
		}
	}
	return list, nil
}

// selectorHasInterpolation scans ahead at depth 0 for any selector-header
// token whose raw value still carries a "#{" marker, without consuming.
func (p *Parser) selectorHasInterpolation() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		t := p.tokens[i]
		switch t.Type {
		case TokenLParen, TokenLBracket:
			depth++
		case TokenRParen, TokenRBracket:
			depth--
		case TokenLBrace:
			if depth == 0 {
				return false
			}
		case TokenEOF:
			return false
		}
		if strings.Contains(t.Value, "#{") {
			return true
		}
	}
	return false
}

// consumeRawSelectorText reassembles the raw selector header text up to the
// opening '{', consuming those tokens.
func (p *Parser) consumeRawSelectorText() string {
	var b strings.Builder
	depth := 0
	for {
		t := p.peek()
		if t.Type == TokenEOF {
			break
		}
		if t.Type == TokenLBrace && depth == 0 {
			break
		}
		switch t.Type {
		case TokenLParen, TokenLBracket:
			depth++
		case TokenRParen, TokenRBracket:
			depth--
		}
		if t.Value != "" {
			b.WriteString(t.Value)
		} else {
			b.WriteString(string(t.Type))
		}
		p.advance()
	}
	return b.String()
}

func (p *Parser) parseComplexSelector() (*ast.ComplexSelector, error) {
	pos := p.here()
	sel := &ast.ComplexSelector{Position: pos}
	first, err := p.parseCompoundSelector()
	if err != nil {
		return nil, err
	}
	sel.Segments = append(sel.Segments, ast.ComplexSelectorSegment{Combinator: ast.Descendant, Compound: first})

	for {
		comb, ok := p.matchCombinator()
		if ok {
			next, err := p.parseCompoundSelector()
			if err != nil {
				return nil, err
			}
			sel.Segments = append(sel.Segments, ast.ComplexSelectorSegment{Combinator: comb, Compound: next})
			continue
		}
		if p.startsCompound() {
			next, err := p.parseCompoundSelector()
			if err != nil {
				return nil, err
			}
			sel.Segments = append(sel.Segments, ast.ComplexSelectorSegment{Combinator: ast.Descendant, Compound: next})
			continue
		}
		break
	}
	return sel, nil
}

func (p *Parser) matchCombinator() (ast.Combinator, bool) {
	switch p.peek().Type {
	case TokenGt:
		p.advance()
		return ast.Child, true
	case TokenPlus:
		p.advance()
		return ast.NextSibling, true
	case TokenTilde:
		p.advance()
		return ast.FollowingSibling, true
	}
	return ast.Descendant, false
}

func (p *Parser) startsCompound() bool {
	switch p.peek().Type {
	case TokenIdent, TokenStar, TokenDot, TokenHashIdent, TokenPercent, TokenAmp, TokenColon, TokenLBracket, TokenNumber:
		return true
	}
	return false
}

func (p *Parser) parseCompoundSelector() (*ast.CompoundSelector, error) {
	pos := p.here()
	c := &ast.CompoundSelector{Position: pos}
	for {
		switch p.peek().Type {
		case TokenIdent:
			tok := p.advance()
			c.Items = append(c.Items, &ast.TypeSelector{Position: p.pos_(tok), Name: tok.Value})
		case TokenNumber:
			// keyframe stop selectors: "0%", "50%", "100%".
			tok := p.advance()
			c.Items = append(c.Items, &ast.TypeSelector{Position: p.pos_(tok), Name: tok.Value})
		case TokenStar:
			tok := p.advance()
			c.Items = append(c.Items, &ast.TypeSelector{Position: p.pos_(tok), Name: "*"})
		case TokenDot:
			tok := p.advance()
			name, err := p.expect(TokenIdent, "after '.' in class selector")
			if err != nil {
				return nil, err
			}
			c.Items = append(c.Items, &ast.ClassSelector{Position: p.pos_(tok), Name: name.Value})
		case TokenHashIdent:
			tok := p.advance()
			c.Items = append(c.Items, &ast.IdSelector{Position: p.pos_(tok), Name: tok.Value})
		case TokenPercent:
			tok := p.advance()
			name, err := p.expect(TokenIdent, "after '%' in placeholder selector")
			if err != nil {
				return nil, err
			}
			c.Items = append(c.Items, &ast.PlaceholderSelector{Position: p.pos_(tok), Name: name.Value})
		case TokenAmp:
			tok := p.advance()
			suffix := ""
			if p.check(TokenIdent) {
				suffix = p.advance().Value
			}
			c.Items = append(c.Items, &ast.ParentSelector{Position: p.pos_(tok), Suffix: suffix})
		case TokenColon:
			sel, err := p.parsePseudoSelector()
			if err != nil {
				return nil, err
			}
			c.Items = append(c.Items, sel)
		case TokenLBracket:
			sel, err := p.parseAttributeSelector()
			if err != nil {
				return nil, err
			}
			c.Items = append(c.Items, sel)
		default:
			if len(c.Items) == 0 {
				return nil, p.errf("expected a selector, found %q", p.peek().Value)
			}
			return c, nil
		}
	}
}

func (p *Parser) parsePseudoSelector() (*ast.PseudoSelector, error) {
	pos := p.here()
	p.advance() // ':'
	isElement := false
	if _, ok := p.match(TokenColon); ok {
		isElement = true
	}
	name, err := p.expect(TokenIdent, "after ':' in pseudo selector")
	if err != nil {
		return nil, err
	}
	ps := &ast.PseudoSelector{Position: pos, Name: name.Value, IsElement: isElement}
	if _, ok := p.match(TokenLParen); ok {
		startPos := p.pos
		depth := 1
		for depth > 0 && !p.check(TokenEOF) {
			switch p.peek().Type {
			case TokenLParen:
				depth++
			case TokenRParen:
				depth--
				if depth == 0 {
					continue
				}
			}
			p.advance()
		}
		var raw strings.Builder
		for i := startPos; i < p.pos; i++ {
			raw.WriteString(p.tokens[i].Value)
			raw.WriteByte(' ')
		}
		ps.Argument = strings.TrimSpace(raw.String())
		if _, err := p.expect(TokenRParen, "to close pseudo selector argument"); err != nil {
			return nil, err
		}
		if wrapped, err := innerSelectorList(p.path, ps.Argument); err == nil {
			ps.WrappedSelector = wrapped
		}
	}
	return ps, nil
}

func innerSelectorList(path, raw string) (*ast.SelectorList, error) {
	inner := &Parser{path: path, tokens: NewLexer(path, raw).Tokenize()}
	expr, err := inner.parseSelectorList()
	if err != nil {
		return nil, err
	}
	list, ok := expr.(*ast.SelectorList)
	if !ok {
		return nil, nil
	}
	return list, nil
}

func (p *Parser) parseAttributeSelector() (*ast.AttributeSelector, error) {
	pos := p.here()
	p.advance() // '['
	name, err := p.expect(TokenIdent, "as attribute name")
	if err != nil {
		return nil, err
	}
	a := &ast.AttributeSelector{Position: pos, Name: name.Value}
	switch p.peek().Type {
	case TokenEq:
		p.advance()
		a.Matcher = ast.AttrEquals
	case TokenTildeEq:
		p.advance()
		a.Matcher = ast.AttrIncludes
	case TokenPipeEq:
		p.advance()
		a.Matcher = ast.AttrDashMatch
	case TokenCaretEq:
		p.advance()
		a.Matcher = ast.AttrPrefix
	case TokenDollarEq:
		p.advance()
		a.Matcher = ast.AttrSuffix
	case TokenStarEq:
		p.advance()
		a.Matcher = ast.AttrSubstring
	}
	if a.Matcher != ast.AttrExists {
		switch p.peek().Type {
		case TokenString:
			a.Value = p.advance().Value
		case TokenIdent:
			a.Value = p.advance().Value
		default:
			return nil, p.errf("expected attribute value, found %q", p.peek().Value)
		}
	}
	if _, err := p.expect(TokenRBracket, "to close attribute selector"); err != nil {
		return nil, err
	}
	return a, nil
}
