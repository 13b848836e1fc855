package importer_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/importer"
	"github.com/titpetric/stylesc/parser"
)

func TestResolveInlinesSourceImport(t *testing.T) {
	fsys := fstest.MapFS{
		"_partial.style": {Data: []byte(`.partial { color: red; }`)},
	}
	block, err := parser.Parse("main.style", `@import "partial";`)
	require.NoError(t, err)

	im := importer.New(fsys)
	resolved, err := im.Resolve(block, "main.style")
	require.NoError(t, err)
	require.Len(t, resolved.Children, 1)

	imp, ok := resolved.Children[0].(*ast.Import)
	require.True(t, ok)
	require.Len(t, imp.Stubs, 1)
	require.Equal(t, "_partial.style", imp.Stubs[0].ResolvedPath)
	require.Len(t, imp.Stubs[0].Stylesheet.Children, 1)
}

func TestResolveLeavesCSSImportUntouched(t *testing.T) {
	block, err := parser.Parse("main.style", `@import "theme.css";`)
	require.NoError(t, err)

	im := importer.New(fstest.MapFS{})
	resolved, err := im.Resolve(block, "main.style")
	require.NoError(t, err)

	imp := resolved.Children[0].(*ast.Import)
	require.Empty(t, imp.Stubs)
}

func TestResolveMissingImportErrors(t *testing.T) {
	block, err := parser.Parse("main.style", `@import "missing";`)
	require.NoError(t, err)

	im := importer.New(fstest.MapFS{})
	_, err = im.Resolve(block, "main.style")
	require.Error(t, err)
}
