package functions

import (
	"regexp"
	"strings"

	"github.com/titpetric/stylesc/ast"
)

// stringArg extracts the unquoted text of a string-shaped expression,
// the way the teacher's functions/strings.go stripped quote characters
// by hand before running regexp/strings operations on them (Replace's
// leading quote-trimming in the original). Here the quote bookkeeping
// already lives on ast.StringQuoted, so extraction is a type switch
// instead of byte slicing.
func stringArg(fn string, args []ast.Expression, i int) (string, error) {
	if i >= len(args) {
		return "", argErr(fn, "missing string argument")
	}
	return RenderUnquoted(args[i]), nil
}

func Quote(args []ast.Expression) (ast.Expression, error) {
	s, err := stringArg("quote", args, 0)
	if err != nil {
		return nil, err
	}
	return &ast.StringQuoted{Value: s, QuoteMark: '"'}, nil
}

func Unquote(args []ast.Expression) (ast.Expression, error) {
	s, err := stringArg("unquote", args, 0)
	if err != nil {
		return nil, err
	}
	return &ast.StringConstant{Value: s}, nil
}

func StrLength(args []ast.Expression) (ast.Expression, error) {
	s, err := stringArg("str-length", args, 0)
	if err != nil {
		return nil, err
	}
	return &ast.Number{Value: float64(len([]rune(s)))}, nil
}

// sassIndex converts a 1-based (or negative, from-the-end) Sass-style
// string index into a 0-based Go index.
func sassIndex(i, length int) int {
	if i > 0 {
		return i - 1
	}
	if i < 0 {
		return length + i
	}
	return 0
}

func StrSlice(args []ast.Expression) (ast.Expression, error) {
	s, err := stringArg("str-slice", args, 0)
	if err != nil {
		return nil, err
	}
	start, err := number("str-slice", args, 1)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	from := sassIndex(int(start.Value), len(runes))
	to := len(runes)
	if len(args) > 2 {
		end, err := number("str-slice", args, 2)
		if err != nil {
			return nil, err
		}
		to = sassIndex(int(end.Value), len(runes)) + 1
	}
	if from < 0 {
		from = 0
	}
	if to > len(runes) {
		to = len(runes)
	}
	if from >= to {
		return &ast.StringQuoted{Value: "", QuoteMark: '"'}, nil
	}
	return &ast.StringQuoted{Value: string(runes[from:to]), QuoteMark: '"'}, nil
}

func StrInsert(args []ast.Expression) (ast.Expression, error) {
	s, err := stringArg("str-insert", args, 0)
	if err != nil {
		return nil, err
	}
	insert, err := stringArg("str-insert", args, 1)
	if err != nil {
		return nil, err
	}
	at, err := number("str-insert", args, 2)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	idx := sassIndex(int(at.Value), len(runes))
	if idx < 0 {
		idx = 0
	}
	if idx > len(runes) {
		idx = len(runes)
	}
	result := string(runes[:idx]) + insert + string(runes[idx:])
	return &ast.StringQuoted{Value: result, QuoteMark: '"'}, nil
}

func ToUpperCase(args []ast.Expression) (ast.Expression, error) {
	s, err := stringArg("to-upper-case", args, 0)
	if err != nil {
		return nil, err
	}
	return sameQuoting(args[0], strings.ToUpper(s)), nil
}

func ToLowerCase(args []ast.Expression) (ast.Expression, error) {
	s, err := stringArg("to-lower-case", args, 0)
	if err != nil {
		return nil, err
	}
	return sameQuoting(args[0], strings.ToLower(s)), nil
}

func sameQuoting(original ast.Expression, text string) ast.Expression {
	if q, ok := original.(*ast.StringQuoted); ok {
		return &ast.StringQuoted{Value: text, QuoteMark: q.QuoteMark}
	}
	return &ast.StringConstant{Value: text}
}

// StrReplace ports the teacher's regex-or-literal Replace helper
// (functions/strings.go) onto typed string expressions: a pattern
// containing regex metacharacters is compiled and run, otherwise a
// plain substring replacement is used.
func StrReplace(args []ast.Expression) (ast.Expression, error) {
	s, err := stringArg("str-replace", args, 0)
	if err != nil {
		return nil, err
	}
	pattern, err := stringArg("str-replace", args, 1)
	if err != nil {
		return nil, err
	}
	replacement, err := stringArg("str-replace", args, 2)
	if err != nil {
		return nil, err
	}
	global := true
	if len(args) > 3 {
		flag, err := stringArg("str-replace", args, 3)
		if err != nil {
			return nil, err
		}
		global = strings.Contains(flag, "g")
	}
	result := literalOrRegexReplace(s, pattern, replacement, global)
	return sameQuoting(args[0], result), nil
}

func literalOrRegexReplace(s, pattern, replacement string, global bool) string {
	if !hasRegexMetacharacters(pattern) {
		if global {
			return strings.ReplaceAll(s, pattern, replacement)
		}
		return strings.Replace(s, pattern, replacement, 1)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		if global {
			return strings.ReplaceAll(s, pattern, replacement)
		}
		return strings.Replace(s, pattern, replacement, 1)
	}
	if global {
		return re.ReplaceAllString(s, replacement)
	}
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + replacement + s[loc[1]:]
}

func hasRegexMetacharacters(s string) bool {
	return strings.ContainsAny(s, `.*+?^$|()[]{}`)
}
