// Command stylesc is a minimal illustrative CLI: it is not the spec's
// concern (spec.md names "the command-line entry point" an external
// collaborator, out of scope), but compile.CompileFile needs a caller to
// actually produce CSS, so this mirrors the teacher's cmd/lessgo/main.go
// compile subcommand without its fmt subcommand (formatter/formatter.go
// formats Go source via dst, which has no equivalent in this language).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/titpetric/stylesc/compile"
	"github.com/titpetric/stylesc/diag"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	fs := flag.NewFlagSet("stylesc", flag.ExitOnError)
	var includePaths string
	fs.StringVar(&includePaths, "include-path", "", "comma-separated list of extra @import search directories")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	args := fs.Args()
	if len(args) != 1 {
		usage()
		os.Exit(1)
	}

	var paths []string
	if includePaths != "" {
		paths = strings.Split(includePaths, ",")
	}

	if err := compileFile(args[0], paths); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: stylesc [-include-path dir,dir,...] <file>\n")
}

func compileFile(path string, includePaths []string) error {
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	fsys := os.DirFS(dir)

	sink := diag.NewStderrSink(func(s string) { fmt.Fprint(os.Stderr, s) })
	out, err := compile.CompileFile(fsys, name, compile.Options{
		IncludePaths: includePaths,
		Sink:         sink,
	})
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
