package pystub

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/teranos/stubgen/bridge"
)

// primitive is one row of the fixed Java primitive conversion table.
type primitive struct {
	javaName    string // Java primitive keyword
	boxed       string // java.lang box type
	pyPrimitive string // dedicated primitive wrapper exposed by the interop layer
	pyType      string // plain Python equivalent
}

var primitives = []primitive{
	{"void", "java.lang.Void", "java.jvoid", "None"},
	{"byte", "java.lang.Byte", "java.jbyte", "int"},
	{"short", "java.lang.Short", "java.jshort", "int"},
	{"int", "java.lang.Integer", "java.jint", "int"},
	{"long", "java.lang.Long", "java.jlong", "int"},
	{"boolean", "java.lang.Boolean", "java.jboolean", "bool"},
	{"double", "java.lang.Double", "java.jdouble", "float"},
	{"float", "java.lang.Float", "java.jfloat", "float"},
	{"char", "java.lang.Character", "java.jchar", "str"},
}

// primitiveByName indexes the table by both the primitive keyword and the
// boxed type name.
var primitiveByName = func() map[string]primitive {
	m := make(map[string]primitive, len(primitives)*2)
	for _, p := range primitives {
		m[p.javaName] = p
		m[p.boxed] = p
	}
	return m
}()

// primitiveArrayTypes maps primitive-wrapper element types to the
// specialized array stubs of the interop layer.
var primitiveArrayTypes = map[string]string{
	"java.jboolean": "java.chaquopy.JavaArrayJBoolean",
	"java.jbyte":    "java.chaquopy.JavaArrayJByte",
	"java.jshort":   "java.chaquopy.JavaArrayJShort",
	"java.jint":     "java.chaquopy.JavaArrayJInt",
	"java.jlong":    "java.chaquopy.JavaArrayJLong",
	"java.jfloat":   "java.chaquopy.JavaArrayJFloat",
	"java.jdouble":  "java.chaquopy.JavaArrayJDouble",
	"java.jchar":    "java.chaquopy.JavaArrayJChar",
}

// pos carries the translation position through the recursion.
type pos struct {
	// argument marks method-argument position, where the interop layer
	// applies implicit conversions and the translation widens to a
	// union of the accepted alternatives.
	argument bool

	// arrayElem marks array-element position, where only the primitive
	// wrapper form is valid.
	arrayElem bool

	// noCallable suppresses functional-interface conversion. Used for
	// supertype lists, where typing.Callable is not a legal base.
	noCallable bool
}

// pyType translates a reflected Java type into a Python type expression.
//
// The translation is total: shapes the Python type system cannot express
// (multiple bounds, nested parameterized bounds) degrade to a more
// permissive covering type instead of failing.
func (g *Generator) pyType(ctx context.Context, t *bridge.Type, vars []TypeVar, p pos) TypeExpr {
	if t == nil {
		return TypeExpr{Name: "None"}
	}
	switch t.Kind {
	case bridge.KindParameterized:
		args := make([]TypeExpr, len(t.Args))
		for i, arg := range t.Args {
			args[i] = g.pyType(ctx, arg, vars, p)
		}
		return g.translateName(ctx, t.Name, args, vars, p)

	case bridge.KindVariable:
		for _, tv := range vars {
			if tv.JavaName == t.Var {
				return TypeExpr{Name: tv.PyName}
			}
		}
		// Unknown variable: degrade to its first declared bound.
		return g.pyType(ctx, variableBound(t), vars, pos{})

	case bridge.KindWildcard:
		// Take the first upper bound ("? extends Foo & Bar" becomes
		// Foo), unless it is Object and a lower bound exists
		// ("? super Eggs" becomes Eggs).
		bound := &bridge.Type{Kind: bridge.KindClass, Name: "java.lang.Object"}
		if len(t.Bounds) > 0 {
			bound = t.Bounds[0]
		}
		if bound.RawName() == "java.lang.Object" && len(t.LowerBounds) > 0 {
			bound = t.LowerBounds[0]
		}
		return g.pyType(ctx, bound, vars, pos{})

	case bridge.KindArray:
		elem := g.pyType(ctx, t.Component, vars, pos{arrayElem: true})
		if specialized, ok := primitiveArrayTypes[elem.Name]; ok {
			return TypeExpr{Name: specialized}
		}
		return TypeExpr{Name: "java.chaquopy.JavaArray", Args: []TypeExpr{elem}}

	default:
		return g.translateName(ctx, t.Name, nil, vars, p)
	}
}

// translateName applies the fixed conversions for primitives, strings,
// Class, and Object, including the argument-position widening unions,
// then falls back to functional-interface conversion or a plain generic
// reference.
func (g *Generator) translateName(ctx context.Context, name string, args []TypeExpr, vars []TypeVar, p pos) TypeExpr {
	var union []TypeExpr

	if prim, ok := primitiveByName[name]; ok {
		if p.arrayElem {
			union = append(union, TypeExpr{Name: prim.pyPrimitive})
		} else {
			union = append(union, TypeExpr{Name: prim.pyType})
		}
		if p.argument {
			// implicit conversions accepted by the interop layer
			union = append(union,
				TypeExpr{Name: prim.pyPrimitive},
				TypeExpr{Name: prim.boxed})
		}
	}
	if name == "java.lang.String" {
		if p.arrayElem {
			union = append(union, TypeExpr{Name: "java.lang.String"})
		} else {
			union = append(union, TypeExpr{Name: "str"})
			if p.argument {
				union = append(union, TypeExpr{Name: "java.lang.String"})
			}
		}
	}
	if name == "java.lang.Class" {
		union = append(union, TypeExpr{Name: "typing.Type", Args: args})
	}
	if name == "java.lang.Object" {
		union = append(union, TypeExpr{Name: "java.lang.Object"})
		if p.argument {
			// anything coercible to Object is accepted
			union = append(union,
				TypeExpr{Name: "int"},
				TypeExpr{Name: "bool"},
				TypeExpr{Name: "float"},
				TypeExpr{Name: "str"})
		}
	}

	if len(union) == 1 {
		return union[0]
	}
	if len(union) > 1 {
		return TypeExpr{Name: "typing.Union", Args: union}
	}

	if !p.noCallable {
		if callable, ok := g.callableType(ctx, name, args, vars); ok {
			return callable
		}
	}
	return TypeExpr{Name: name, Args: args}
}

// variableBound returns the bound to use for a type variable.
//
// Variables can have multiple bounds ("T extends Foo & Bar"); only the
// first is representable. Nested parameterized bounds ("E extends
// Enum<E>") degrade to their raw type.
func variableBound(t *bridge.Type) *bridge.Type {
	if len(t.Bounds) == 0 {
		return &bridge.Type{Kind: bridge.KindClass, Name: "java.lang.Object"}
	}
	bound := t.Bounds[0]
	if bound.Kind == bridge.KindParameterized {
		return &bridge.Type{Kind: bridge.KindClass, Name: bound.Name}
	}
	return bound
}

// typeVarOf generates the typing.TypeVar for one declared type parameter.
//
// Java declares type variables inline while Python requires pre-declared
// TypeVars, so the Python name is prefixed with a unique scope identifier
// to avoid collisions across classes and overloads:
//
//	class EnumMap<K extends Enum, V>
//
// becomes
//
//	_EnumMap__K = typing.TypeVar('_EnumMap__K', bound=java.lang.Enum)  # <K>
//	_EnumMap__V = typing.TypeVar('_EnumMap__V')  # <V>
func (g *Generator) typeVarOf(ctx context.Context, t *bridge.Type, scopeID string) TypeVar {
	bound := g.pyType(ctx, variableBound(t), nil, pos{})
	var boundPtr *TypeExpr
	if bound.Name != "java.lang.Object" {
		boundPtr = &bound
	}
	return TypeVar{
		JavaName: t.Var,
		PyName:   "_" + scopeID + "__" + t.Var,
		Bound:    boundPtr,
	}
}

// samShape is the resolved single abstract method of a functional
// interface.
type samShape struct {
	typeParams []string // the interface's own declared type parameter names
	params     []*bridge.Type
	ret        *bridge.Type
}

// objectMethods keys (by name and erased parameter types) the methods
// declared on java.lang.Object. The JLS excludes these from the single-
// abstract-method rule of functional interfaces.
var objectMethods = map[string]bool{
	"equals(java.lang.Object)": true,
	"getClass()":               true,
	"hashCode()":               true,
	"toString()":               true,
	"notify()":                 true,
	"notifyAll()":              true,
	"wait()":                   true,
	"wait(long)":               true,
	"wait(long,int)":           true,
	"clone()":                  true,
	"finalize()":               true,
}

// erasedKey renders a method's name plus erased parameter types for the
// objectMethods lookup.
func erasedKey(m *bridge.Method) string {
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = erasure(p.Type)
	}
	return m.Name + "(" + strings.Join(parts, ",") + ")"
}

// erasure computes the raw binary name a reflected type erases to.
func erasure(t *bridge.Type) string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case bridge.KindClass, bridge.KindParameterized:
		return t.Name
	case bridge.KindArray:
		return erasure(t.Component) + "[]"
	case bridge.KindVariable:
		return erasure(variableBound(t))
	default:
		return "java.lang.Object"
	}
}

// functionalShape resolves (and caches) the single abstract method of an
// interface, or nil when the class does not qualify. Resolution failures
// never propagate: an unresolvable class is simply not functional.
func (g *Generator) functionalShape(ctx context.Context, name string) *samShape {
	if shape, ok := g.sam[name]; ok {
		return shape
	}
	shape := g.resolveFunctionalShape(ctx, name)
	g.sam[name] = shape
	return shape
}

func (g *Generator) resolveFunctionalShape(ctx context.Context, name string) *samShape {
	cls, err := g.provider.ClassByName(ctx, name)
	if err != nil || cls == nil || !cls.Mods.Interface {
		return nil
	}
	var sam *bridge.Method
	for _, m := range cls.Methods {
		if !m.Mods.Public || !m.Mods.Abstract || m.Mods.Static || m.Mods.Synthetic || m.Bridge {
			continue
		}
		if objectMethods[erasedKey(m)] {
			continue
		}
		if sam != nil {
			return nil // more than one abstract method
		}
		sam = m
	}
	if sam == nil {
		// Known limitation: interfaces inheriting their single abstract
		// method (e.g. BinaryOperator extends BiFunction) are not
		// resolved and stay plain generic references.
		return nil
	}
	typeParams := make([]string, len(cls.TypeParams))
	for i, tp := range cls.TypeParams {
		typeParams[i] = tp.Var
	}
	params := make([]*bridge.Type, len(sam.Params))
	for i, p := range sam.Params {
		params[i] = p.Type
	}
	return &samShape{typeParams: typeParams, params: params, ret: sam.Returns}
}

// callableType converts a functional interface to typing.Callable.
//
// Type arguments are given at the class level in Java while
// typing.Callable depends on the method signature, so every method type
// that names one of the interface's own type parameters is substituted
// positionally with the supplied type argument:
//
//	interface Comparator<T> { int compare(T o1, T o2); }
//
// used as Comparator<String> becomes typing.Callable[[str, str], int].
func (g *Generator) callableType(ctx context.Context, name string, args []TypeExpr, vars []TypeVar) (TypeExpr, bool) {
	shape := g.functionalShape(ctx, name)
	if shape == nil {
		return TypeExpr{}, false
	}
	resolved := make([]TypeExpr, len(shape.params))
	for i, paramType := range shape.params {
		resolved[i] = g.resolveSAMType(ctx, paramType, shape.typeParams, args, vars)
	}
	ret := g.resolveSAMType(ctx, shape.ret, shape.typeParams, args, vars)
	return TypeExpr{
		Name: "typing.Callable",
		Args: []TypeExpr{{Name: "", Args: resolved}, ret},
	}, true
}

// resolveSAMType maps a type appearing in a functional-interface method:
// the interface's own type variables resolve to the supplied type
// arguments by position, everything else translates normally.
func (g *Generator) resolveSAMType(ctx context.Context, t *bridge.Type, typeParams []string, args []TypeExpr, vars []TypeVar) TypeExpr {
	if t != nil && t.Kind == bridge.KindVariable && args != nil {
		for i, tp := range typeParams {
			if tp == t.Var && i < len(args) {
				return args[i]
			}
		}
	}
	return g.pyType(ctx, t, vars, pos{})
}

// typeNameOf renders a reflected type the way Type.getTypeName() would,
// for argument-name inference.
func typeNameOf(t *bridge.Type) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case bridge.KindArray:
		return typeNameOf(t.Component) + "[]"
	case bridge.KindVariable:
		return t.Var
	case bridge.KindWildcard:
		return "?"
	case bridge.KindParameterized:
		return t.Name + "<>"
	default:
		return t.Name
	}
}

// inferArgName derives a readable argument name from the argument's type
// when the class file carries no parameter names.
//
// The local type name is de-capitalized ("ParametersRequest" becomes
// "parametersRequest"), arrays get an "Array" suffix, and repeats within
// one signature get a 1-based counter from the second occurrence on
// ("string", "string2", ...). Anything unusable falls back to argN.
func inferArgName(t *bridge.Type, prev []ArgSig) string {
	name := typeNameOf(t)
	if name == "" {
		return "arg" + strconv.Itoa(len(prev))
	}
	isArray := strings.HasSuffix(name, "[]")
	name = strings.Split(name, "<")[0]
	if i := strings.LastIndex(name, "$"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ReplaceAll(name, "[]", "")
	if name == "" {
		return "arg" + strconv.Itoa(len(prev))
	}
	runes := []rune(name)
	runes[0] = unicode.ToLower(runes[0])
	name = string(runes)
	if isArray {
		name += "Array"
	}
	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(name) + `\d*`)
	occurrences := 0
	for _, p := range prev {
		if pattern.MatchString(p.Name) {
			occurrences++
		}
	}
	if occurrences == 0 {
		return name
	}
	return name + strconv.Itoa(occurrences+1)
}
