// Package emitter turns a flattened statement tree (the output of cssize
// and placeholder) into CSS text. It follows the teacher's renderRule
// texture in renderer/renderer.go — two-space indentation, one selector
// block per ruleset, skip rulesets with no declarations — generalized to
// walk a pre-flattened, already-resolved tree instead of interleaving
// de-nesting with text output in one recursive method.
package emitter

import (
	"strings"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/evaluator"
)

// Emitter renders a compiled statement tree to CSS text.
type Emitter interface {
	Emit(block *ast.Block) (string, error)
}

// Nested is the default Emitter: standard multi-line, two-space indented
// CSS, mirroring the teacher's only output format.
type Nested struct{}

// NewNested constructs the default Emitter.
func NewNested() *Nested { return &Nested{} }

func (n *Nested) Emit(block *ast.Block) (string, error) {
	var b strings.Builder
	emitStatements(&b, block.Children, 0)
	return b.String(), nil
}

// emitStatements emits each statement in turn, inserting a blank line after
// one whose group_end flag (§4.6) is set, as long as that statement
// actually produced output.
func emitStatements(b *strings.Builder, stmts []ast.Statement, indent int) {
	for _, stmt := range stmts {
		before := b.Len()
		emitStatement(b, stmt, indent)
		if b.Len() > before && groupEnd(stmt) {
			b.WriteString("\n")
		}
	}
}

// groupEnd reports a statement's group_end flag; node kinds without that
// field (Declaration, Comment, KeyframeRule) read as false.
func groupEnd(s ast.Statement) bool {
	switch v := s.(type) {
	case *ast.Ruleset:
		return v.GroupEnd
	case *ast.MediaRule:
		return v.GroupEnd
	case *ast.SupportsRule:
		return v.GroupEnd
	case *ast.Directive:
		return v.GroupEnd
	}
	return false
}

func writeIndent(b *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		b.WriteString("  ")
	}
}

// emitStatement is permissive about node kinds a well-formed pipeline
// should never hand it (Assignment, Definition, MixinCall, Return, ...):
// rather than erroring on a stray one, it's silently skipped, the same way
// the expander treats an Assignment or Definition as producing no output.
func emitStatement(b *strings.Builder, stmt ast.Statement, indent int) {
	switch v := stmt.(type) {
	case *ast.Ruleset:
		emitRuleset(b, v, indent)
	case *ast.MediaRule:
		emitMediaRule(b, v, indent)
	case *ast.SupportsRule:
		emitSupportsRule(b, v, indent)
	case *ast.KeyframeRule:
		emitKeyframeRule(b, v, indent)
	case *ast.Directive:
		emitDirective(b, v, indent)
	case *ast.Comment:
		emitComment(b, v, indent)
	}
}

func emitRuleset(b *strings.Builder, r *ast.Ruleset, indent int) {
	if len(r.Block.Children) == 0 {
		return
	}
	sel, ok := r.Selector.(*ast.SelectorList)
	if !ok {
		return
	}
	writeIndent(b, indent)
	b.WriteString(renderSelectorList(sel))
	b.WriteString(" {\n")
	for _, child := range r.Block.Children {
		switch c := child.(type) {
		case *ast.Declaration:
			emitDeclaration(b, c, indent+1)
		case *ast.Comment:
			emitComment(b, c, indent+1)
		}
	}
	writeIndent(b, indent)
	b.WriteString("}\n")
}

func emitDeclaration(b *strings.Builder, d *ast.Declaration, indent int) {
	writeIndent(b, indent)
	b.WriteString(evaluator.RenderUnquoted(d.Property))
	b.WriteString(": ")
	b.WriteString(evaluator.Inspect(d.Value))
	if d.IsImportant {
		b.WriteString(" !important")
	}
	b.WriteString(";\n")
}

func emitComment(b *strings.Builder, c *ast.Comment, indent int) {
	if !c.IsImportant {
		return
	}
	writeIndent(b, indent)
	b.WriteString("/*")
	b.WriteString(c.Text)
	b.WriteString("*/\n")
}

func emitMediaRule(b *strings.Builder, m *ast.MediaRule, indent int) {
	if len(m.Block.Children) == 0 {
		return
	}
	writeIndent(b, indent)
	b.WriteString("@media ")
	b.WriteString(renderMediaQueries(m.Queries))
	b.WriteString(" {\n")
	emitStatements(b, m.Block.Children, indent+1)
	writeIndent(b, indent)
	b.WriteString("}\n")
}

func emitSupportsRule(b *strings.Builder, s *ast.SupportsRule, indent int) {
	if len(s.Block.Children) == 0 {
		return
	}
	writeIndent(b, indent)
	b.WriteString("@supports ")
	b.WriteString(renderSupportsCondition(s.Condition))
	b.WriteString(" {\n")
	emitStatements(b, s.Block.Children, indent+1)
	writeIndent(b, indent)
	b.WriteString("}\n")
}

func emitKeyframeRule(b *strings.Builder, k *ast.KeyframeRule, indent int) {
	writeIndent(b, indent)
	b.WriteString("@keyframes ")
	b.WriteString(k.Name)
	b.WriteString(" {\n")
	emitStatements(b, k.Block.Children, indent+1)
	writeIndent(b, indent)
	b.WriteString("}\n")
}

func emitDirective(b *strings.Builder, d *ast.Directive, indent int) {
	writeIndent(b, indent)
	b.WriteString("@")
	b.WriteString(d.Keyword)
	if d.Selector != nil {
		b.WriteString(" ")
		b.WriteString(evaluator.RenderUnquoted(d.Selector))
	}
	if d.Value != nil {
		b.WriteString(" ")
		b.WriteString(evaluator.Inspect(d.Value))
	}
	if d.Block == nil {
		b.WriteString(";\n")
		return
	}
	b.WriteString(" {\n")
	emitStatements(b, d.Block.Children, indent+1)
	writeIndent(b, indent)
	b.WriteString("}\n")
}

func renderSelectorList(sel *ast.SelectorList) string {
	parts := make([]string, len(sel.Items))
	for i, c := range sel.Items {
		parts[i] = renderComplexSelector(c)
	}
	return strings.Join(parts, ",\n")
}

func renderComplexSelector(c *ast.ComplexSelector) string {
	var b strings.Builder
	for i, seg := range c.Segments {
		if i > 0 {
			if seg.Combinator == ast.Descendant {
				b.WriteString(" ")
			} else {
				b.WriteString(" ")
				b.WriteString(seg.Combinator.String())
				b.WriteString(" ")
			}
		}
		for _, item := range seg.Compound.Items {
			b.WriteString(item.Text())
		}
	}
	return b.String()
}

func renderMediaQueries(qs []ast.MediaQuery) string {
	parts := make([]string, len(qs))
	for i, q := range qs {
		var clauses []string
		lead := strings.TrimSpace(q.Modifier + " " + q.Type)
		if lead != "" {
			clauses = append(clauses, lead)
		}
		for _, f := range q.Features {
			feature := "(" + f.Name
			if f.Value != nil {
				feature += ": " + evaluator.Inspect(f.Value)
			}
			feature += ")"
			clauses = append(clauses, feature)
		}
		parts[i] = strings.Join(clauses, " and ")
	}
	return strings.Join(parts, ", ")
}

func renderSupportsCondition(c *ast.SupportsCondition) string {
	if c == nil {
		return ""
	}
	if c.Combinator == "" {
		return "(" + c.Feature + ")"
	}
	if c.Combinator == "not" {
		return "not " + renderSupportsCondition(c.Children[0])
	}
	parts := make([]string, len(c.Children))
	for i, child := range c.Children {
		parts[i] = renderSupportsCondition(child)
	}
	return strings.Join(parts, " "+c.Combinator+" ")
}
