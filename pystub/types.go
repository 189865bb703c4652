// Package pystub turns reflected Java class metadata into PEP-484 stub
// files (.pyi).
//
// The pipeline walks a package tree through a bridge.Provider, translates
// every reflected Java type into a Python type expression, schedules
// classes so that in-package supertype references never need forward
// declarations, and writes one __init__.pyi per package. Output is
// deterministic: re-running over an unchanged class universe reproduces
// the same byte tree.
package pystub

import (
	"go.uber.org/zap"

	"github.com/teranos/stubgen/bridge"
	"github.com/teranos/stubgen/logger"
)

// TypeExpr is one Python type expression, as a recursive tree.
//
// Two names are structural markers: "typing.Union" groups widening
// alternatives, and the empty name groups the positional argument list of
// a typing.Callable.
type TypeExpr struct {
	Name string
	Args []TypeExpr
}

// TypeVar is one generated typing.TypeVar declaration. PyName is unique
// within its declaring scope: it is prefixed with a scope identifier so
// that nested classes and overloads cannot collide.
type TypeVar struct {
	JavaName string
	PyName   string
	Bound    *TypeExpr
}

// ArgSig is one argument of a generated function signature. Type is nil
// only for the implicit self receiver.
type ArgSig struct {
	Name    string
	Type    *TypeExpr
	VarArgs bool
}

// FuncSig is one generated function signature (constructors become the
// synthetic "__init__" name).
type FuncSig struct {
	Name     string
	Static   bool
	Args     []ArgSig
	Ret      TypeExpr
	TypeVars []TypeVar
}

// genState is the mutable traversal state of one package generation pass.
// It is shared by reference across the whole recursive descent so that
// sibling nested-class emissions observe each other's progress. done only
// grows; a class is added only after its full declaration has been
// appended to output.
type genState struct {
	done   map[string]bool // package-local names emitted ("Foo", "Outer$Inner")
	used   map[string]bool // qualified names textually referenced
	failed map[string]bool // package-local names that failed reflection
}

func newGenState() *genState {
	return &genState{
		done:   map[string]bool{},
		used:   map[string]bool{},
		failed: map[string]bool{},
	}
}

// withDoneCopy returns a state sharing used/failed but with an
// independent copy of done, for nested-class descent.
func (st *genState) withDoneCopy() *genState {
	done := make(map[string]bool, len(st.done))
	for k := range st.done {
		done[k] = true
	}
	return &genState{done: done, used: st.used, failed: st.failed}
}

// Options configures a generation run.
type Options struct {
	// OutputDir is the root directory stub packages are written under.
	OutputDir string

	// IncludeJavadoc derives docstrings from javadoc where available.
	IncludeJavadoc bool

	// StubsSuffix appends the PEP-561 "-stubs" suffix to the outermost
	// package directory.
	StubsSuffix bool
}

// Stats summarizes one generation run.
type Stats struct {
	Packages     int // package stub files written
	Classes      int // class declarations emitted
	Placeholders int // empty placeholder classes synthesized
	Failed       int // classes skipped due to reflection failures
}

// Generator drives stub generation against one reflection session.
// It is single-threaded: the session behind the provider is not safe for
// concurrent access.
type Generator struct {
	provider bridge.Provider
	opts     Options
	log      *zap.SugaredLogger

	// sam caches functional-interface resolution per binary class name;
	// nil entries mean "not a functional interface".
	sam map[string]*samShape

	stats Stats
}

// New creates a Generator over the given reflection provider.
func New(provider bridge.Provider, opts Options) *Generator {
	return &Generator{
		provider: provider,
		opts:     opts,
		log:      logger.Logger.Named("pystub"),
		sam:      map[string]*samShape{},
	}
}
