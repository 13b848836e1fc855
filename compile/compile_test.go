package compile_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/stylesc/compile"
)

func TestCompileStringNestingAndVariables(t *testing.T) {
	src := `
$gutter: 8px;
.card {
  padding: $gutter * 2;
  .title {
    color: red;
  }
}
`
	out, err := compile.CompileString("test.style", src, compile.Options{})
	require.NoError(t, err)
	require.Equal(t, ".card {\n  padding: 16px;\n}\n.card .title {\n  color: red;\n}\n\n", out)
}

func TestCompileStringMixinAndIf(t *testing.T) {
	src := `
@mixin box($size) {
  width: $size;
  @if $size > 10px {
    border: 1px solid black;
  }
}
.a { @include box(20px); }
`
	out, err := compile.CompileString("test.style", src, compile.Options{})
	require.NoError(t, err)
	require.Equal(t, ".a {\n  width: 20px;\n  border: 1px solid black;\n}\n\n", out)
}

func TestCompileStringExtend(t *testing.T) {
	src := `
%message {
  color: blue;
}
.error {
  @extend %message;
  font-weight: bold;
}
`
	out, err := compile.CompileString("test.style", src, compile.Options{})
	require.NoError(t, err)
	require.Equal(t, ".error {\n  color: blue;\n}\n\n.error {\n  font-weight: bold;\n}\n\n", out)
}

func TestCompileStringFunctionReturn(t *testing.T) {
	src := `
@function double($n) {
  @return $n * 2;
}
.a { width: double(5px); }
`
	out, err := compile.CompileString("test.style", src, compile.Options{})
	require.NoError(t, err)
	require.Equal(t, ".a {\n  width: 10px;\n}\n\n", out)
}

func TestCompileStringUndefinedVariableErrors(t *testing.T) {
	_, err := compile.CompileString("test.style", `.a { color: $missing; }`, compile.Options{})
	require.Error(t, err)
}
