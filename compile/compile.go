// Package compile orchestrates the full pipeline: parse, resolve imports,
// expand, extend, cssize, strip placeholders, emit. This is the one
// collaborator spec.md leaves as "externally specified" (the CLI/driver),
// matching the teacher's cmd/lessgo/main.go wiring of
// parser->renderer->stdout into one reusable library entry point instead of
// a main-only glue function.
package compile

import (
	"io/fs"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/cssize"
	"github.com/titpetric/stylesc/diag"
	"github.com/titpetric/stylesc/emitter"
	"github.com/titpetric/stylesc/environment"
	"github.com/titpetric/stylesc/evaluator"
	"github.com/titpetric/stylesc/expander"
	"github.com/titpetric/stylesc/extend"
	"github.com/titpetric/stylesc/importer"
	"github.com/titpetric/stylesc/parser"
	"github.com/titpetric/stylesc/placeholder"
)

// Options configures one compile, mirroring the teacher's explicit
// constructor-argument configuration style (dst.ParserConfig,
// formatter.New(indent)) rather than an env-var or file-based config
// layer.
type Options struct {
	// FS is the filesystem @import targets resolve against. A nil FS
	// disables import resolution: every @import is emitted as a plain CSS
	// @import directive.
	FS fs.FS
	// IncludePaths are extra search roots tried after the importing
	// file's own directory, matching spec §6's include_paths.
	IncludePaths []string
	// Sink receives @warn/@debug output. Defaults to diag.NullSink.
	Sink diag.Sink
	// Emitter renders the final flattened tree to text. Defaults to
	// emitter.NewNested().
	Emitter emitter.Emitter
}

func (o Options) sink() diag.Sink {
	if o.Sink != nil {
		return o.Sink
	}
	return diag.NullSink{}
}

func (o Options) emitter() emitter.Emitter {
	if o.Emitter != nil {
		return o.Emitter
	}
	return emitter.NewNested()
}

// CompileString compiles source (already read into memory, logically
// located at path for diagnostics and relative @import resolution) to CSS
// text.
func CompileString(path, source string, opts Options) (string, error) {
	block, err := parser.Parse(path, source)
	if err != nil {
		return "", err
	}

	if opts.FS != nil {
		im := importer.New(opts.FS, opts.IncludePaths...)
		block, err = im.Resolve(block, path)
		if err != nil {
			return "", err
		}
	}

	return compileBlock(block, opts)
}

// CompileFile reads path from fsys and compiles it, a thin convenience
// wrapper matching the teacher CLI's read-file-then-render shape.
func CompileFile(fsys fs.FS, path string, opts Options) (string, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return "", err
	}
	if opts.FS == nil {
		opts.FS = fsys
	}
	return CompileString(path, string(data), opts)
}

func compileBlock(block *ast.Block, opts Options) (string, error) {
	env := environment.New()
	ev := evaluator.New(env, opts.sink())
	ex := expander.New(env, ev)

	expanded, err := ex.Expand(block)
	if err != nil {
		return "", err
	}

	extended, err := extend.Resolve(expanded)
	if err != nil {
		return "", err
	}

	flat := cssize.Flatten(extended)
	clean := placeholder.Remove(flat)

	return opts.emitter().Emit(clean)
}
