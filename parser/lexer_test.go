package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/stylesc/parser"
)

func tokenTypes(tokens []parser.Token) []parser.TokenType {
	out := make([]parser.TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func TestLexerBasics(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []parser.TokenType
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []parser.TokenType{parser.TokenEOF},
		},
		{
			name:  "simple rule",
			input: "body { color: red; }",
			expected: []parser.TokenType{
				parser.TokenIdent,
				parser.TokenLBrace,
				parser.TokenIdent,
				parser.TokenColon,
				parser.TokenIdent,
				parser.TokenSemi,
				parser.TokenRBrace,
				parser.TokenEOF,
			},
		},
		{
			name:  "variable assignment",
			input: "$primary: #fff;",
			expected: []parser.TokenType{
				parser.TokenVariable,
				parser.TokenColon,
				parser.TokenHashIdent,
				parser.TokenSemi,
				parser.TokenEOF,
			},
		},
		{
			name:  "at-rule keyword",
			input: "@mixin foo() {}",
			expected: []parser.TokenType{
				parser.TokenAtKeyword,
				parser.TokenIdent,
				parser.TokenLParen,
				parser.TokenRParen,
				parser.TokenLBrace,
				parser.TokenRBrace,
				parser.TokenEOF,
			},
		},
		{
			name:  "placeholder selector",
			input: "%button { }",
			expected: []parser.TokenType{
				parser.TokenPercent,
				parser.TokenIdent,
				parser.TokenLBrace,
				parser.TokenRBrace,
				parser.TokenEOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lex := parser.NewLexer("test.style", tt.input)
			got := tokenTypes(lex.Tokenize())
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestLexerStringInterpolation(t *testing.T) {
	lex := parser.NewLexer("test.style", `"icon-#{$name}"`)
	tokens := lex.Tokenize()
	require.Len(t, tokens, 2)
	require.Equal(t, parser.TokenString, tokens[0].Type)
	require.Contains(t, tokens[0].Value, "#{$name}")
}

func TestLexerLineCommentsAreSilent(t *testing.T) {
	lex := parser.NewLexer("test.style", "// dropped\nbody {}")
	got := tokenTypes(lex.Tokenize())
	require.Equal(t, []parser.TokenType{
		parser.TokenIdent, parser.TokenLBrace, parser.TokenRBrace, parser.TokenEOF,
	}, got)
}

func TestLexerBlockCommentToken(t *testing.T) {
	lex := parser.NewLexer("test.style", "/* kept */ body {}")
	got := tokenTypes(lex.Tokenize())
	require.Equal(t, []parser.TokenType{
		parser.TokenComment, parser.TokenIdent, parser.TokenLBrace, parser.TokenRBrace, parser.TokenEOF,
	}, got)
}
