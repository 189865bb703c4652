// Package bridge defines the reflective metadata model the stub generator
// consumes, and the Provider interface any JVM bridge must implement.
//
// The model mirrors java.lang.reflect: types are a small discriminated
// tree (raw class, parameterized type, type variable, wildcard, array),
// classes carry their declared members with generic signatures. Everything
// is JSON-serializable so it can travel over the agent wire protocol
// unchanged.
package bridge

import "strings"

// TypeKind discriminates the nodes of the reflected type tree.
type TypeKind string

const (
	// KindClass is a raw (non-generic) class or primitive reference.
	KindClass TypeKind = "class"
	// KindParameterized is a generic type with actual type arguments,
	// e.g. List<String>.
	KindParameterized TypeKind = "parameterized"
	// KindVariable is a type variable, e.g. T in List<T>.
	KindVariable TypeKind = "variable"
	// KindWildcard is a wildcard, e.g. ? extends Number.
	KindWildcard TypeKind = "wildcard"
	// KindArray is an array type; Component holds the element type.
	// Covers both Class.isArray() and GenericArrayType.
	KindArray TypeKind = "array"
)

// Type is one node of a reflected Java type. Which fields are meaningful
// depends on Kind.
type Type struct {
	Kind TypeKind `json:"kind"`

	// Name is the binary name for KindClass ("int", "java.lang.String",
	// "com.example.Outer$Inner") and for the raw type of
	// KindParameterized.
	Name string `json:"name,omitempty"`

	// Args are the actual type arguments of a KindParameterized node.
	Args []*Type `json:"args,omitempty"`

	// Var is the source name of a KindVariable node.
	Var string `json:"var,omitempty"`

	// Bounds are the declared bounds of a KindVariable node, or the
	// upper bounds of a KindWildcard node. May be empty.
	Bounds []*Type `json:"bounds,omitempty"`

	// LowerBounds are the lower bounds of a KindWildcard node
	// ("? super X"). Usually empty.
	LowerBounds []*Type `json:"lowerBounds,omitempty"`

	// Component is the element type of a KindArray node.
	Component *Type `json:"component,omitempty"`
}

// RawName returns the binary name of the raw class behind this node, or ""
// when the node has no raw class (variables, wildcards, arrays).
func (t *Type) RawName() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case KindClass, KindParameterized:
		return t.Name
	default:
		return ""
	}
}

// Mods is the subset of java.lang.reflect.Modifier flags (plus the
// synthetic/anonymous/local markers) the generator cares about.
type Mods struct {
	Public    bool `json:"public,omitempty"`
	Static    bool `json:"static,omitempty"`
	Abstract  bool `json:"abstract,omitempty"`
	Interface bool `json:"interface,omitempty"`
	Synthetic bool `json:"synthetic,omitempty"`
	Anonymous bool `json:"anonymous,omitempty"`
	Local     bool `json:"local,omitempty"`
}

// Param is one formal parameter of a constructor or method.
type Param struct {
	// Name is the reflected parameter name. Only meaningful when
	// NamePresent is true (javac -parameters).
	Name        string `json:"name,omitempty"`
	NamePresent bool   `json:"namePresent,omitempty"`
	Type        *Type  `json:"type"`
	VarArgs     bool   `json:"varArgs,omitempty"`
}

// Method is a declared constructor or method with its generic signature.
// Constructors have an empty Returns.
type Method struct {
	Name       string   `json:"name"`
	Mods       Mods     `json:"mods"`
	Bridge     bool     `json:"bridge,omitempty"`
	TypeParams []*Type  `json:"typeParams,omitempty"` // KindVariable nodes
	Params     []*Param `json:"params,omitempty"`
	Returns    *Type    `json:"returns,omitempty"`
}

// Field is a declared field.
type Field struct {
	Name string `json:"name"`
	Mods Mods   `json:"mods"`
	Type *Type  `json:"type"`
}

// Class is the full reflected shape of one Java class.
type Class struct {
	// Name is the binary qualified name, with '$' separating nested
	// classes ("com.example.Outer$Inner").
	Name string `json:"name"`

	// SimpleName is Class.getSimpleName().
	SimpleName string `json:"simpleName"`

	// Package is the declaring package name.
	Package string `json:"package"`

	Mods Mods `json:"mods"`

	// TypeParams are the declared type parameters (KindVariable nodes,
	// bounds included).
	TypeParams []*Type `json:"typeParams,omitempty"`

	// Superclass is the generic superclass, nil for java.lang.Object
	// and interfaces without one.
	Superclass *Type `json:"superclass,omitempty"`

	// Interfaces are the generic interfaces, in declaration order.
	Interfaces []*Type `json:"interfaces,omitempty"`

	Constructors []*Method `json:"constructors,omitempty"`
	Methods      []*Method `json:"methods,omitempty"`
	Fields       []*Field  `json:"fields,omitempty"`

	// Nested are the public member classes, fully resolved.
	Nested []*Class `json:"nested,omitempty"`
}

// LocalName returns the package-local name of the class: the binary name
// with the package prefix stripped, '$' separators kept
// ("Outer$Inner" for com.example.Outer$Inner).
func (c *Class) LocalName() string {
	if i := strings.LastIndex(c.Name, "."); i >= 0 {
		return c.Name[i+1:]
	}
	return c.Name
}

// SuperTypes returns the generic superclass (when present) followed by the
// generic interfaces.
func (c *Class) SuperTypes() []*Type {
	var supers []*Type
	if c.Superclass != nil {
		supers = append(supers, c.Superclass)
	}
	return append(supers, c.Interfaces...)
}

// Doc is the best-effort documentation extracted for one class. Any field
// may be empty.
type Doc struct {
	Description string            `json:"description,omitempty"`
	Ctors       string            `json:"ctors,omitempty"`
	Methods     map[string]string `json:"methods,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
}
