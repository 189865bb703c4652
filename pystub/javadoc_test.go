package pystub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sigWithArgs(name string, static bool, argTypes ...string) FuncSig {
	args := []ArgSig{}
	if !static {
		args = append(args, ArgSig{Name: "self"})
	}
	for _, at := range argTypes {
		t := TypeExpr{Name: at}
		args = append(args, ArgSig{Name: "x", Type: &t})
	}
	return FuncSig{Name: name, Static: static, Args: args}
}

func TestSplitOverloadDocByArity(t *testing.T) {
	// the two-argument overload first: its pattern cannot match the
	// one-argument line, so arity discriminates
	sigs := []FuncSig{
		sigWithArgs("valueOf", false, "java.lang.String", "int"),
		sigWithArgs("valueOf", false, "int"),
	}
	doc := "public int valueOf(java.lang.String text, int radix)\n" +
		"\n" +
		"Parses with a radix.\n" +
		"public int valueOf(int value)\n" +
		"\n" +
		"Parses a single int."

	got := splitOverloadDoc(sigs, doc)
	require.Len(t, got, 2)
	assert.Equal(t, "Parses with a radix.", got[0])
	assert.Equal(t, "Parses a single int.", got[1])
}

func TestSplitOverloadDocStaticAnchor(t *testing.T) {
	sigs := []FuncSig{
		sigWithArgs("parse", true, "java.lang.String"),
		sigWithArgs("parse", false, "java.lang.String"),
	}
	doc := "public static int parse(java.lang.String s)\n" +
		"\n" +
		"Static form.\n" +
		"public int parse(java.lang.String s)\n" +
		"\n" +
		"Instance form."

	got := splitOverloadDoc(sigs, doc)
	require.Len(t, got, 2)
	assert.Equal(t, "Static form.", got[0])
	assert.Equal(t, "Instance form.", got[1])
}

func TestSplitOverloadDocDropsPreamble(t *testing.T) {
	sigs := []FuncSig{sigWithArgs("run", false)}
	doc := "Some class-level chatter that precedes any signature.\n" +
		"public void run()\n" +
		"\n" +
		"Runs the task.\n" +
		"And keeps running."

	got := splitOverloadDoc(sigs, doc)
	require.Len(t, got, 1)
	assert.Equal(t, "Runs the task.\nAnd keeps running.", got[0])
}

func TestSplitOverloadDocNoMatches(t *testing.T) {
	sigs := []FuncSig{sigWithArgs("foo", false, "int")}
	got := splitOverloadDoc(sigs, "nothing that looks like a signature")
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0])
}

func TestSplitOverloadDocGenericSignature(t *testing.T) {
	sig := sigWithArgs("map", false, "java.util.function.Function")
	sig.TypeVars = []TypeVar{{JavaName: "R", PyName: "_map__R"}}
	doc := "public <R> java.util.Optional<R> map(java.util.function.Function<T, R> mapper)\n" +
		"\n" +
		"Applies the mapper."

	got := splitOverloadDoc([]FuncSig{sig}, doc)
	require.Len(t, got, 1)
	assert.Equal(t, "Applies the mapper.", got[0])
}

func TestDocstringLines(t *testing.T) {
	assert.Nil(t, docstringLines("", true))
	assert.Equal(t, []string{`    """`, "    line one", "    line two", `    """`},
		docstringLines("line one\nline two", true))
	assert.Equal(t, []string{`"""`, "doc", `"""`},
		docstringLines("doc", false))
}
