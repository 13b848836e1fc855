package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/titpetric/stylesc/ast"
)

// RenderUnquoted returns the textual form of an already-evaluated value
// with no surrounding quotes — the form interpolation (#{...}) glues
// together, and the form the underlying value of a StringQuoted has.
func RenderUnquoted(e ast.Expression) string {
	switch v := e.(type) {
	case nil:
		return ""
	case *ast.Null:
		return ""
	case *ast.Boolean:
		if v.Value {
			return "true"
		}
		return "false"
	case *ast.Number:
		return renderNumber(v)
	case *ast.Color:
		return renderColor(v)
	case *ast.StringConstant:
		return v.Value
	case *ast.StringQuoted:
		return v.Value
	case *ast.StringSchema:
		return renderSchemaLiteral(v)
	case *ast.List:
		return renderList(v)
	case *ast.Map:
		return renderMap(v)
	case *ast.Binary:
		// A delayed division that survived evaluation (e.g. 10px/20px used
		// as a CSS literal) renders with its operator intact.
		return RenderUnquoted(v.Left) + opText(v.Op) + RenderUnquoted(v.Right)
	case *ast.FunctionCall:
		var args []string
		if v.Args != nil {
			for _, a := range v.Args.Items {
				text := Inspect(a.Value)
				if a.Name != "" {
					text = "$" + a.Name + ": " + text
				}
				args = append(args, text)
			}
		}
		return v.Name + "(" + strings.Join(args, ", ") + ")"
	default:
		return fmt.Sprintf("%v", e)
	}
}

// Inspect returns the full CSS text of a value, including quotes for
// quoted strings — the form a Declaration.Value is ultimately emitted as.
func Inspect(e ast.Expression) string {
	if s, ok := e.(*ast.StringQuoted); ok {
		q := s.QuoteMark
		if q == 0 {
			q = '"'
		}
		return string(q) + s.Value + string(q)
	}
	if s, ok := e.(*ast.StringSchema); ok && s.QuoteMark != 0 {
		return string(s.QuoteMark) + renderSchemaLiteral(s) + string(s.QuoteMark)
	}
	return RenderUnquoted(e)
}

func renderNumber(n *ast.Number) string {
	s := strconv.FormatFloat(n.Value, 'f', -1, 64)
	if strings.HasPrefix(s, "0.") {
		// the leading zero is kept as formatted (0.5, not .5);
		// HasLeadingZero is not consulted here
	}
	for _, u := range n.NumeratorUnits {
		s += u
	}
	if len(n.DenominatorUnits) > 0 {
		s += "/"
		s += strings.Join(n.DenominatorUnits, "/")
	}
	return s
}

func renderColor(c *ast.Color) string {
	if c.OriginalName != "" && c.A == 1 {
		return c.OriginalName
	}
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, trimFloat(c.A))
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func renderSchemaLiteral(s *ast.StringSchema) string {
	var b strings.Builder
	for _, frag := range s.Fragments {
		b.WriteString(RenderUnquoted(frag))
	}
	return b.String()
}

func renderList(l *ast.List) string {
	glue := " "
	switch l.Separator {
	case ast.SepComma:
		glue = ", "
	case ast.SepSlash:
		glue = "/"
	}
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = Inspect(item)
	}
	text := strings.Join(parts, glue)
	if l.IsBracketed {
		return "[" + text + "]"
	}
	return text
}

func renderMap(m *ast.Map) string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = RenderUnquoted(e.Key) + ": " + Inspect(e.Value)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func opText(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpMod:
		return "%"
	default:
		return ""
	}
}
