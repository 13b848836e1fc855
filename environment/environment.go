// Package environment implements the lexically scoped frame chain that
// backs variable, mixin, and function resolution (spec §4.1).
//
// It generalizes the teacher's map-stack (parser.Stack in
// github.com/titpetric/lessgo) from a single flat Push/Pop stack of
// map[string]ast.Value into a proper frame chain with an identifiable
// global frame and scope-explicit writes, since the teacher never needed
// !global/!default semantics or mixin/function namespaces.
package environment

import "github.com/titpetric/stylesc/ast"

// Frame is a single lexical scope: a mapping from name to binding, plus an
// optional parent. Variables, mixins, and functions are kept in separate
// maps within the frame rather than suffixed keys in one map — the spec
// allows either shape, and parallel maps keep lookups simple.
type Frame struct {
	parent *Frame

	vars      map[string]ast.Expression
	mixins    map[string]*ast.Definition
	functions map[string]*ast.Definition
}

func newFrame(parent *Frame) *Frame {
	return &Frame{
		parent:    parent,
		vars:      make(map[string]ast.Expression),
		mixins:    make(map[string]*ast.Definition),
		functions: make(map[string]*ast.Definition),
	}
}

// Environment is the stack of frames the evaluator and expander thread
// through a compile. The zero value is not usable; use New.
type Environment struct {
	builtin *Frame // intrinsic frame: built-in color names etc., parent of global
	global  *Frame // the frame whose parent is builtin — set_global's target
	current *Frame
}

// New constructs an Environment with an empty builtin frame and a global
// frame as its sole child; current starts at global.
func New() *Environment {
	builtin := newFrame(nil)
	global := newFrame(builtin)
	return &Environment{builtin: builtin, global: global, current: global}
}

// Builtin returns the intrinsic frame, for populating built-in names once
// per compile (color keyword table, etc.).
func (e *Environment) Builtin() *Frame { return e.builtin }

// Current returns the active frame.
func (e *Environment) Current() *Frame { return e.current }

// Push enters a new child scope of the current frame and makes it current.
// Returns the new frame so callers (e.g. mixin/function invocation) can
// capture it for lexical closures.
func (e *Environment) Push() *Frame {
	e.current = newFrame(e.current)
	return e.current
}

// PushFrom enters a new child scope of an explicit parent frame (used when
// invoking a mixin/function body in its lexically captured environment
// rather than the caller's dynamic one).
func (e *Environment) PushFrom(parent *Frame) *Frame {
	if parent == nil {
		parent = e.global
	}
	e.current = newFrame(parent)
	return e.current
}

// Pop exits the current frame, returning to its parent. Popping the global
// frame is a no-op guard against unbalanced push/pop in caller code.
func (e *Environment) Pop() {
	if e.current != e.global && e.current.parent != nil {
		e.current = e.current.parent
	}
}

// EnterFrame temporarily makes f current and returns a function that
// restores the previous current frame. Used by the expander to evaluate a
// definition's body inside its captured environment snapshot.
func (e *Environment) EnterFrame(f *Frame) (restore func()) {
	prev := e.current
	e.current = f
	return func() { e.current = prev }
}

// Has reports whether name is bound in the current frame or any ancestor.
func (e *Environment) Has(name string) bool {
	_, ok := e.lookup(name)
	return ok
}

// HasLocal reports whether name is bound in the current frame only.
func (e *Environment) HasLocal(name string) bool {
	_, ok := e.current.vars[name]
	return ok
}

// HasGlobal reports whether name is bound in the global frame.
func (e *Environment) HasGlobal(name string) bool {
	_, ok := e.global.vars[name]
	return ok
}

// Get returns the binding from the nearest enclosing frame.
func (e *Environment) Get(name string) (ast.Expression, bool) {
	return e.lookup(name)
}

func (e *Environment) lookup(name string) (ast.Expression, bool) {
	for f := e.current; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// frameDefining returns the nearest frame (starting at current) that
// already binds name, or nil if none does.
func (e *Environment) frameDefining(name string) *Frame {
	for f := e.current; f != nil; f = f.parent {
		if _, ok := f.vars[name]; ok {
			return f
		}
	}
	return nil
}

// SetLexical implements plain `$x: v` assignment: write to the nearest
// frame that already binds name, or the current frame if none does.
func (e *Environment) SetLexical(name string, v ast.Expression) {
	if f := e.frameDefining(name); f != nil {
		f.vars[name] = v
		return
	}
	e.current.vars[name] = v
}

// SetLocal implements a scope-explicit write to the current frame.
func (e *Environment) SetLocal(name string, v ast.Expression) {
	e.current.vars[name] = v
}

// SetGlobal implements `$x: v !global`: write at the frame whose parent is
// the intrinsic builtin frame, regardless of the enclosing call chain.
func (e *Environment) SetGlobal(name string, v ast.Expression) {
	e.global.vars[name] = v
}

// DelLocal removes name from the current frame only. Used when exiting
// @for/@each to restore a pre-loop binding that existed in an ancestor
// frame (the loop variable's own child-scope binding is simply discarded
// by popping the frame; DelLocal is for the case a caller wants to purge a
// local override without popping the whole frame).
func (e *Environment) DelLocal(name string) {
	delete(e.current.vars, name)
}

// SetDefault implements `$x: v !default`: assign only if the binding
// (respecting the global flag) is currently absent or ast.Null.
func (e *Environment) SetDefault(name string, v ast.Expression, global bool) {
	var existing ast.Expression
	var ok bool
	if global {
		existing, ok = e.global.vars[name]
	} else {
		existing, ok = e.lookup(name)
	}
	if ok {
		if _, isNull := existing.(*ast.Null); !isNull {
			return
		}
	}
	if global {
		e.SetGlobal(name, v)
	} else {
		e.SetLexical(name, v)
	}
}

// GetMixin resolves a mixin by name through the frame chain.
func (e *Environment) GetMixin(name string) (*ast.Definition, bool) {
	for f := e.current; f != nil; f = f.parent {
		if d, ok := f.mixins[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// GetFunction resolves a user-defined function by name through the frame
// chain.
func (e *Environment) GetFunction(name string) (*ast.Definition, bool) {
	for f := e.current; f != nil; f = f.parent {
		if d, ok := f.functions[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// DefineMixin binds a mixin definition in the current frame.
func (e *Environment) DefineMixin(name string, d *ast.Definition) {
	e.current.mixins[name] = d
}

// DefineFunction binds a function definition in the current frame.
func (e *Environment) DefineFunction(name string, d *ast.Definition) {
	e.current.functions[name] = d
}
