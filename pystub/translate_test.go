package pystub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/stubgen/bridge"
	"github.com/teranos/stubgen/internal/javatest"
)

func newTestGen(u *javatest.Universe) *Generator {
	return New(u, Options{StubsSuffix: true})
}

func TestPrimitiveReturnIsPlainPython(t *testing.T) {
	g := newTestGen(javatest.NewUniverse())
	ctx := context.Background()

	assert.Equal(t, TypeExpr{Name: "int"}, g.pyType(ctx, javatest.Cls("int"), nil, pos{}))
	assert.Equal(t, TypeExpr{Name: "None"}, g.pyType(ctx, javatest.Cls("void"), nil, pos{}))
	assert.Equal(t, TypeExpr{Name: "bool"}, g.pyType(ctx, javatest.Cls("boolean"), nil, pos{}))
	assert.Equal(t, TypeExpr{Name: "float"}, g.pyType(ctx, javatest.Cls("double"), nil, pos{}))
	assert.Equal(t, TypeExpr{Name: "str"}, g.pyType(ctx, javatest.Cls("char"), nil, pos{}))
}

func TestPrimitiveArgumentWidensToUnion(t *testing.T) {
	g := newTestGen(javatest.NewUniverse())

	got := g.pyType(context.Background(), javatest.Cls("int"), nil, pos{argument: true})
	assert.Equal(t, TypeExpr{
		Name: "typing.Union",
		Args: []TypeExpr{
			{Name: "int"},
			{Name: "java.jint"},
			{Name: "java.lang.Integer"},
		},
	}, got)
}

func TestBoxedTypeSharesPrimitiveRow(t *testing.T) {
	g := newTestGen(javatest.NewUniverse())
	ctx := context.Background()

	assert.Equal(t, TypeExpr{Name: "int"}, g.pyType(ctx, javatest.Cls("java.lang.Long"), nil, pos{}))
	got := g.pyType(ctx, javatest.Cls("java.lang.Boolean"), nil, pos{argument: true})
	assert.Equal(t, "typing.Union", got.Name)
	require.Len(t, got.Args, 3)
	assert.Equal(t, "bool", got.Args[0].Name)
}

func TestStringTranslation(t *testing.T) {
	g := newTestGen(javatest.NewUniverse())
	ctx := context.Background()

	assert.Equal(t, TypeExpr{Name: "str"},
		g.pyType(ctx, javatest.Cls("java.lang.String"), nil, pos{}))
	assert.Equal(t, TypeExpr{
		Name: "typing.Union",
		Args: []TypeExpr{{Name: "str"}, {Name: "java.lang.String"}},
	}, g.pyType(ctx, javatest.Cls("java.lang.String"), nil, pos{argument: true}))
	// array elements keep the Java form
	assert.Equal(t, TypeExpr{Name: "java.lang.String"},
		g.pyType(ctx, javatest.Cls("java.lang.String"), nil, pos{arrayElem: true}))
}

func TestObjectArgumentAcceptsPythonScalars(t *testing.T) {
	g := newTestGen(javatest.NewUniverse())

	got := g.pyType(context.Background(), javatest.Cls("java.lang.Object"), nil, pos{argument: true})
	assert.Equal(t, TypeExpr{
		Name: "typing.Union",
		Args: []TypeExpr{
			{Name: "java.lang.Object"},
			{Name: "int"},
			{Name: "bool"},
			{Name: "float"},
			{Name: "str"},
		},
	}, got)
	assert.Equal(t, TypeExpr{Name: "java.lang.Object"},
		g.pyType(context.Background(), javatest.Cls("java.lang.Object"), nil, pos{}))
}

func TestClassBecomesTypingType(t *testing.T) {
	g := newTestGen(javatest.NewUniverse())

	got := g.pyType(context.Background(),
		javatest.Param("java.lang.Class", javatest.Cls("java.lang.String")), nil, pos{})
	assert.Equal(t, TypeExpr{Name: "typing.Type", Args: []TypeExpr{{Name: "str"}}}, got)
}

func TestArrayTranslation(t *testing.T) {
	g := newTestGen(javatest.NewUniverse())
	ctx := context.Background()

	// primitive element types pick the specialized array stubs
	assert.Equal(t, TypeExpr{Name: "java.chaquopy.JavaArrayJInt"},
		g.pyType(ctx, javatest.Array(javatest.Cls("int")), nil, pos{}))
	assert.Equal(t, TypeExpr{Name: "java.chaquopy.JavaArrayJDouble"},
		g.pyType(ctx, javatest.Array(javatest.Cls("double")), nil, pos{}))

	assert.Equal(t, TypeExpr{
		Name: "java.chaquopy.JavaArray",
		Args: []TypeExpr{{Name: "java.lang.String"}},
	}, g.pyType(ctx, javatest.Array(javatest.Cls("java.lang.String")), nil, pos{}))
}

func TestWildcardUsesFirstUpperBound(t *testing.T) {
	g := newTestGen(javatest.NewUniverse())
	ctx := context.Background()

	got := g.pyType(ctx, javatest.Wild(javatest.Cls("java.lang.Number"), javatest.Cls("java.io.Serializable")), nil, pos{})
	assert.Equal(t, TypeExpr{Name: "java.lang.Number"}, got)

	// "? super Eggs" resolves to the lower bound
	got = g.pyType(ctx, javatest.WildSuper(javatest.Cls("com.example.Eggs")), nil, pos{})
	assert.Equal(t, TypeExpr{Name: "com.example.Eggs"}, got)

	// bare "?" is Object
	got = g.pyType(ctx, javatest.Wild(), nil, pos{})
	assert.Equal(t, TypeExpr{Name: "java.lang.Object"}, got)
}

func TestTypeVariableResolution(t *testing.T) {
	g := newTestGen(javatest.NewUniverse())
	ctx := context.Background()
	vars := []TypeVar{{JavaName: "T", PyName: "_Box__T"}}

	assert.Equal(t, TypeExpr{Name: "_Box__T"},
		g.pyType(ctx, javatest.Var("T"), vars, pos{}))

	// out-of-scope variables degrade to their first bound
	assert.Equal(t, TypeExpr{Name: "java.lang.Number"},
		g.pyType(ctx, javatest.Var("U", javatest.Cls("java.lang.Number")), vars, pos{}))
	assert.Equal(t, TypeExpr{Name: "java.lang.Object"},
		g.pyType(ctx, javatest.Var("U"), nil, pos{}))
}

func TestTypeVarOfScopesAndBounds(t *testing.T) {
	g := newTestGen(javatest.NewUniverse())
	ctx := context.Background()

	tv := g.typeVarOf(ctx, javatest.Var("K", javatest.Param("java.lang.Enum", javatest.Var("K"))), "EnumMap")
	assert.Equal(t, "K", tv.JavaName)
	assert.Equal(t, "_EnumMap__K", tv.PyName)
	// recursive bounds degrade to the raw type
	require.NotNil(t, tv.Bound)
	assert.Equal(t, TypeExpr{Name: "java.lang.Enum"}, *tv.Bound)

	tv = g.typeVarOf(ctx, javatest.Var("V"), "EnumMap")
	assert.Equal(t, "_EnumMap__V", tv.PyName)
	assert.Nil(t, tv.Bound)
}

func functionalUniverse() *javatest.Universe {
	fn := javatest.Interface("fn", "Transform")
	fn.TypeParams = []*bridge.Type{javatest.Var("X"), javatest.Var("Y")}
	fn.Methods = []*bridge.Method{
		javatest.AbstractMethod("apply", javatest.Var("Y"), javatest.Arg(javatest.Var("X"))),
	}
	return javatest.NewUniverse().Add(fn)
}

func TestFunctionalInterfaceBecomesCallable(t *testing.T) {
	g := newTestGen(functionalUniverse())

	got := g.pyType(context.Background(),
		javatest.Param("fn.Transform", javatest.Cls("java.lang.String"), javatest.Cls("java.lang.Integer")),
		nil, pos{})
	assert.Equal(t, TypeExpr{
		Name: "typing.Callable",
		Args: []TypeExpr{
			{Name: "", Args: []TypeExpr{{Name: "str"}}},
			{Name: "int"},
		},
	}, got)
}

func TestFunctionalInterfaceSuppressedInSupertypePosition(t *testing.T) {
	g := newTestGen(functionalUniverse())

	got := g.pyType(context.Background(),
		javatest.Param("fn.Transform", javatest.Cls("java.lang.String"), javatest.Cls("java.lang.Integer")),
		nil, pos{noCallable: true})
	assert.Equal(t, "fn.Transform", got.Name)
	require.Len(t, got.Args, 2)
}

func TestTwoAbstractMethodsIsNotFunctional(t *testing.T) {
	iface := javatest.Interface("fn", "Pair")
	iface.Methods = []*bridge.Method{
		javatest.AbstractMethod("first", javatest.Cls("int")),
		javatest.AbstractMethod("second", javatest.Cls("int")),
	}
	g := newTestGen(javatest.NewUniverse().Add(iface))

	got := g.pyType(context.Background(), javatest.Cls("fn.Pair"), nil, pos{})
	assert.Equal(t, "fn.Pair", got.Name)
}

func TestObjectMethodsExcludedFromSAMRule(t *testing.T) {
	// java.util.Comparator declares equals(Object) alongside compare;
	// only compare counts.
	iface := javatest.Interface("fn", "Comparator")
	iface.TypeParams = []*bridge.Type{javatest.Var("T")}
	iface.Methods = []*bridge.Method{
		javatest.AbstractMethod("compare", javatest.Cls("int"),
			javatest.Arg(javatest.Var("T")), javatest.Arg(javatest.Var("T"))),
		javatest.AbstractMethod("equals", javatest.Cls("boolean"),
			javatest.Arg(javatest.Cls("java.lang.Object"))),
	}
	g := newTestGen(javatest.NewUniverse().Add(iface))

	got := g.pyType(context.Background(),
		javatest.Param("fn.Comparator", javatest.Cls("java.lang.String")), nil, pos{})
	assert.Equal(t, TypeExpr{
		Name: "typing.Callable",
		Args: []TypeExpr{
			{Name: "", Args: []TypeExpr{{Name: "str"}, {Name: "str"}}},
			{Name: "int"},
		},
	}, got)
}

func TestInferArgName(t *testing.T) {
	assert.Equal(t, "string", inferArgName(javatest.Cls("java.lang.String"), nil))
	assert.Equal(t, "entry", inferArgName(javatest.Cls("java.util.Map$Entry"), nil))
	assert.Equal(t, "intArray", inferArgName(javatest.Array(javatest.Cls("int")), nil))
	assert.Equal(t, "list", inferArgName(javatest.Param("java.util.List", javatest.Cls("java.lang.String")), nil))
	assert.Equal(t, "arg1", inferArgName(nil, []ArgSig{{Name: "self"}}))

	// repeats get a 1-based counter from the second occurrence on
	prev := []ArgSig{{Name: "self"}, {Name: "string"}}
	assert.Equal(t, "string2", inferArgName(javatest.Cls("java.lang.String"), prev))
	prev = append(prev, ArgSig{Name: "string2"})
	assert.Equal(t, "string3", inferArgName(javatest.Cls("java.lang.String"), prev))
}
