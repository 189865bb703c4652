// Package javatest provides an in-memory bridge.Provider for tests,
// plus terse constructors for reflected type nodes.
package javatest

import (
	"context"
	"sort"
	"strings"

	"github.com/teranos/stubgen/bridge"
	"github.com/teranos/stubgen/errors"
)

// Universe is a deterministic, in-memory class universe.
type Universe struct {
	// Subs maps a package name to its direct child package names.
	Subs map[string][]string

	// ClassesByName maps binary names to classes enumerated by
	// PackageClasses.
	ClassesByName map[string]*bridge.Class

	// Hidden maps binary names to classes reachable only through
	// LookupClass / ClassByName (non-public classes).
	Hidden map[string]*bridge.Class

	// Failing marks binary names whose load raises a type-load error.
	Failing map[string]bool

	// Docs maps binary names to documentation.
	Docs map[string]*bridge.Doc
}

var _ bridge.Provider = (*Universe)(nil)

// NewUniverse returns an empty universe.
func NewUniverse() *Universe {
	return &Universe{
		Subs:          map[string][]string{},
		ClassesByName: map[string]*bridge.Class{},
		Hidden:        map[string]*bridge.Class{},
		Failing:       map[string]bool{},
		Docs:          map[string]*bridge.Doc{},
	}
}

// Add registers classes for package enumeration.
func (u *Universe) Add(classes ...*bridge.Class) *Universe {
	for _, c := range classes {
		u.ClassesByName[c.Name] = c
	}
	return u
}

// AddHidden registers classes reachable only by direct lookup.
func (u *Universe) AddHidden(classes ...*bridge.Class) *Universe {
	for _, c := range classes {
		u.Hidden[c.Name] = c
	}
	return u
}

// Subpackages implements bridge.Provider.
func (u *Universe) Subpackages(_ context.Context, pkg string) ([]string, error) {
	subs := append([]string(nil), u.Subs[pkg]...)
	sort.Strings(subs)
	return subs, nil
}

// PackageClasses implements bridge.Provider.
func (u *Universe) PackageClasses(_ context.Context, pkg string) ([]*bridge.Class, error) {
	var classes []*bridge.Class
	for name, c := range u.ClassesByName {
		if c.Package != pkg || strings.Contains(c.LocalName(), "$") {
			continue
		}
		if u.Failing[name] {
			continue // the bridge logs and skips classes that fail to enumerate
		}
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	return classes, nil
}

// LookupClass implements bridge.Provider.
func (u *Universe) LookupClass(_ context.Context, pkg, simpleName string) (*bridge.Class, error) {
	name := pkg + "." + simpleName
	if u.Failing[name] {
		return nil, errors.NewTypeLoadError("class %s failed to load", name)
	}
	if c, ok := u.ClassesByName[name]; ok {
		return c, nil
	}
	if c, ok := u.Hidden[name]; ok {
		return c, nil
	}
	return nil, errors.Wrapf(errors.ErrNoSuchMember, "%s not found in %s", simpleName, pkg)
}

// ClassByName implements bridge.Provider.
func (u *Universe) ClassByName(_ context.Context, binaryName string) (*bridge.Class, error) {
	if u.Failing[binaryName] {
		return nil, errors.NewTypeLoadError("class %s failed to load", binaryName)
	}
	if c, ok := u.ClassesByName[binaryName]; ok {
		return c, nil
	}
	if c, ok := u.Hidden[binaryName]; ok {
		return c, nil
	}
	return nil, errors.Wrapf(errors.ErrNoSuchMember, "class %s not found", binaryName)
}

// Javadoc implements bridge.Provider.
func (u *Universe) Javadoc(_ context.Context, binaryName string) (*bridge.Doc, error) {
	return u.Docs[binaryName], nil
}

// --- type node constructors ---

// Cls returns a raw class reference.
func Cls(name string) *bridge.Type {
	return &bridge.Type{Kind: bridge.KindClass, Name: name}
}

// Param returns a parameterized type.
func Param(raw string, args ...*bridge.Type) *bridge.Type {
	return &bridge.Type{Kind: bridge.KindParameterized, Name: raw, Args: args}
}

// Var returns a type variable with optional bounds.
func Var(name string, bounds ...*bridge.Type) *bridge.Type {
	return &bridge.Type{Kind: bridge.KindVariable, Var: name, Bounds: bounds}
}

// Wild returns a wildcard with the given upper bounds.
func Wild(upper ...*bridge.Type) *bridge.Type {
	return &bridge.Type{Kind: bridge.KindWildcard, Bounds: upper}
}

// WildSuper returns a "? super X" wildcard. Upper bound is Object, as
// java.lang.reflect reports it.
func WildSuper(lower *bridge.Type) *bridge.Type {
	return &bridge.Type{
		Kind:        bridge.KindWildcard,
		Bounds:      []*bridge.Type{Cls("java.lang.Object")},
		LowerBounds: []*bridge.Type{lower},
	}
}

// Array returns an array of the given component type.
func Array(component *bridge.Type) *bridge.Type {
	return &bridge.Type{Kind: bridge.KindArray, Component: component}
}

// --- member constructors ---

// Arg returns an unnamed parameter (name inference applies).
func Arg(t *bridge.Type) *bridge.Param {
	return &bridge.Param{Type: t}
}

// NamedArg returns a parameter with a reflected name.
func NamedArg(name string, t *bridge.Type) *bridge.Param {
	return &bridge.Param{Name: name, NamePresent: true, Type: t}
}

// VarArg returns a variadic parameter; t is the declared array type.
func VarArg(t *bridge.Type) *bridge.Param {
	return &bridge.Param{Type: t, VarArgs: true}
}

// Method returns a public instance method.
func Method(name string, returns *bridge.Type, params ...*bridge.Param) *bridge.Method {
	return &bridge.Method{
		Name:    name,
		Mods:    bridge.Mods{Public: true},
		Params:  params,
		Returns: returns,
	}
}

// StaticMethod returns a public static method.
func StaticMethod(name string, returns *bridge.Type, params ...*bridge.Param) *bridge.Method {
	m := Method(name, returns, params...)
	m.Mods.Static = true
	return m
}

// AbstractMethod returns a public abstract instance method.
func AbstractMethod(name string, returns *bridge.Type, params ...*bridge.Param) *bridge.Method {
	m := Method(name, returns, params...)
	m.Mods.Abstract = true
	return m
}

// Ctor returns a public constructor.
func Ctor(params ...*bridge.Param) *bridge.Method {
	return &bridge.Method{Name: "<init>", Mods: bridge.Mods{Public: true}, Params: params}
}

// PublicField returns a public instance field.
func PublicField(name string, t *bridge.Type) *bridge.Field {
	return &bridge.Field{Name: name, Mods: bridge.Mods{Public: true}, Type: t}
}

// StaticField returns a public static field.
func StaticField(name string, t *bridge.Type) *bridge.Field {
	return &bridge.Field{Name: name, Mods: bridge.Mods{Public: true, Static: true}, Type: t}
}

// Class returns a public class skeleton for the given package and
// package-local name ("Outer$Inner" nests).
func Class(pkg, localName string) *bridge.Class {
	simple := localName
	if i := strings.LastIndex(localName, "$"); i >= 0 {
		simple = localName[i+1:]
	}
	return &bridge.Class{
		Name:       pkg + "." + localName,
		SimpleName: simple,
		Package:    pkg,
		Mods:       bridge.Mods{Public: true},
	}
}

// Interface returns a public interface skeleton.
func Interface(pkg, localName string) *bridge.Class {
	c := Class(pkg, localName)
	c.Mods.Abstract = true
	c.Mods.Interface = true
	return c
}
