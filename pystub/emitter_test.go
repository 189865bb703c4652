package pystub

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/stubgen/bridge"
	"github.com/teranos/stubgen/internal/javatest"
)

// renderClass runs classStub for one top-level class and returns the
// emitted lines (leading blank line stripped) and imports.
func renderClass(t *testing.T, u *javatest.Universe, cls *bridge.Class) ([]string, map[string]bool) {
	t.Helper()
	g := newTestGen(u)
	st := newGenState()
	imports := map[string]bool{}
	var out []string
	g.classStub(context.Background(), cls.Package, cls, st, &out, nil, imports, nil)
	require.NotEmpty(t, out)
	require.Equal(t, "", out[0])
	return out[1:], imports
}

func TestEmptyClassCollapsesToOneLine(t *testing.T) {
	cls := javatest.Class("com.example", "Marker")
	out, _ := renderClass(t, javatest.NewUniverse().Add(cls), cls)

	assert.Equal(t, []string{"class Marker: ..."}, out)
}

func TestClassMemberSectionsInOrder(t *testing.T) {
	cls := javatest.Class("com.example", "Widget")
	cls.Superclass = javatest.Cls("java.lang.Object")
	cls.Fields = []*bridge.Field{
		javatest.StaticField("DEFAULT_SIZE", javatest.Cls("int")),
	}
	cls.Constructors = []*bridge.Method{javatest.Ctor()}
	cls.Methods = []*bridge.Method{
		javatest.Method("resize", javatest.Cls("void"), javatest.NamedArg("size", javatest.Cls("int"))),
	}
	out, imports := renderClass(t, javatest.NewUniverse().Add(cls), cls)

	assert.Equal(t, []string{
		"class Widget(java.lang.Object):",
		"    DEFAULT_SIZE: typing.ClassVar[int] = ...",
		"    def __init__(self) -> None: ...",
		"    def resize(self, size: typing.Union[int, java.jint, java.lang.Integer]) -> None: ...",
	}, out)
	assert.True(t, imports["import typing"])
	assert.True(t, imports["import java.lang"])
	assert.True(t, imports["import java"])
}

func TestOverloadsGetTypingOverloadDecorators(t *testing.T) {
	cls := javatest.Class("com.example", "Printer")
	cls.Methods = []*bridge.Method{
		javatest.Method("write", javatest.Cls("void"), javatest.Arg(javatest.Cls("int"))),
		javatest.Method("write", javatest.Cls("void"), javatest.Arg(javatest.Cls("java.lang.String"))),
	}
	out, imports := renderClass(t, javatest.NewUniverse().Add(cls), cls)

	text := strings.Join(out, "\n")
	assert.Equal(t, 2, strings.Count(text, "@typing.overload"))
	assert.Contains(t, text, "def write(self, int: typing.Union[int, java.jint, java.lang.Integer]) -> None: ...")
	assert.Contains(t, text, "def write(self, string: typing.Union[str, java.lang.String]) -> None: ...")
	assert.True(t, imports["import typing"])
}

func TestStaticMethodGetsStaticmethodAndNoSelf(t *testing.T) {
	cls := javatest.Class("com.example", "MathUtil")
	cls.Methods = []*bridge.Method{
		javatest.StaticMethod("abs", javatest.Cls("int"), javatest.NamedArg("value", javatest.Cls("int"))),
	}
	out, _ := renderClass(t, javatest.NewUniverse().Add(cls), cls)

	assert.Equal(t, []string{
		"class MathUtil:",
		"    @staticmethod",
		"    def abs(value: typing.Union[int, java.jint, java.lang.Integer]) -> int: ...",
	}, out)
}

func TestKeywordMethodNameMangledDunderDropped(t *testing.T) {
	cls := javatest.Class("com.example", "Oddities")
	cls.Methods = []*bridge.Method{
		javatest.Method("pass", javatest.Cls("void")),
		javatest.Method("__str__", javatest.Cls("java.lang.String")),
	}
	out, _ := renderClass(t, javatest.NewUniverse().Add(cls), cls)

	text := strings.Join(out, "\n")
	assert.Contains(t, text, "def pass_(self) -> None: ...")
	assert.NotContains(t, text, "__str__")
}

func TestGenericClassDeclaresTypeVarsBeforeClassLine(t *testing.T) {
	cls := javatest.Class("com.example", "Box")
	cls.TypeParams = []*bridge.Type{javatest.Var("T")}
	cls.Methods = []*bridge.Method{
		javatest.Method("get", javatest.Var("T")),
		javatest.Method("put", javatest.Cls("void"), javatest.NamedArg("value", javatest.Var("T"))),
	}
	out, _ := renderClass(t, javatest.NewUniverse().Add(cls), cls)

	assert.Equal(t, []string{
		"_Box__T = typing.TypeVar('_Box__T')  # <T>",
		"class Box(typing.Generic[_Box__T]):",
		"    def get(self) -> _Box__T: ...",
		"    def put(self, value: _Box__T) -> None: ...",
	}, out)
}

func TestBoundedTypeVarDeclaration(t *testing.T) {
	cls := javatest.Class("com.example", "Sorter")
	cls.TypeParams = []*bridge.Type{
		javatest.Var("E", javatest.Param("java.lang.Comparable", javatest.Var("E"))),
	}
	out, _ := renderClass(t, javatest.NewUniverse().Add(cls), cls)

	assert.Equal(t, "_Sorter__E = typing.TypeVar('_Sorter__E', bound=java.lang.Comparable)  # <E>", out[0])
}

func TestVarArgsRenderedAsStarArg(t *testing.T) {
	cls := javatest.Class("com.example", "Joiner")
	cls.Methods = []*bridge.Method{
		javatest.StaticMethod("join", javatest.Cls("java.lang.String"),
			javatest.VarArg(javatest.Array(javatest.Cls("java.lang.String")))),
	}
	out, _ := renderClass(t, javatest.NewUniverse().Add(cls), cls)

	text := strings.Join(out, "\n")
	assert.Contains(t, text, "def join(*string: typing.Union[str, java.lang.String]) -> str: ...")
}

func TestNestedClassEmittedInsideParent(t *testing.T) {
	inner := javatest.Class("com.example", "Outer$Inner")
	inner.Mods.Static = true
	outer := javatest.Class("com.example", "Outer")
	outer.Nested = []*bridge.Class{inner}

	out, _ := renderClass(t, javatest.NewUniverse().Add(outer, inner), outer)

	assert.Equal(t, []string{
		"class Outer:",
		"    class Inner: ...",
	}, out)
}

func TestHiddenNestedReferenceGetsPlaceholder(t *testing.T) {
	outer := javatest.Class("com.example", "Outer")
	outer.Methods = []*bridge.Method{
		javatest.Method("secret", javatest.Cls("com.example.Outer$Hidden")),
	}
	out, _ := renderClass(t, javatest.NewUniverse().Add(outer), outer)

	text := strings.Join(out, "\n")
	assert.Contains(t, text, "def secret(self) -> Outer.Hidden: ...")
	assert.Contains(t, text, "    class Hidden: ...")
}

func TestThrowableGainsBuiltinsException(t *testing.T) {
	cls := javatest.Class("java.lang", "Throwable")
	cls.Name = "java.lang.Throwable"
	out, imports := renderClass(t, javatest.NewUniverse().Add(cls), cls)

	assert.Equal(t, []string{"class Throwable(builtins.Exception): ..."}, out)
	assert.True(t, imports["import builtins"])
}

func TestFieldDocBecomesDocstring(t *testing.T) {
	cls := javatest.Class("com.example", "Consts")
	cls.Fields = []*bridge.Field{javatest.StaticField("MAX", javatest.Cls("int"))}
	u := javatest.NewUniverse().Add(cls)
	u.Docs[cls.Name] = &bridge.Doc{Fields: map[string]string{"MAX": "Largest value."}}

	g := New(u, Options{IncludeJavadoc: true})
	st := newGenState()
	imports := map[string]bool{}
	var out []string
	g.classStub(context.Background(), cls.Package, cls, st, &out, nil, imports, nil)

	text := strings.Join(out, "\n")
	assert.Contains(t, text, "    MAX: typing.ClassVar[int] = ...")
	assert.Contains(t, text, `    """`)
	assert.Contains(t, text, "    Largest value.")
}
