package pystub

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/teranos/stubgen/bridge"
)

// classStub appends the full stub declaration for one class, including
// its nested classes, to out.
//
// Member sections are emitted fields first, then constructors, then
// methods, then nested classes. Type variable declarations of top-level
// classes go to typeVarOut so they precede the class line; nested classes
// share their top-level ancestor's typeVarOut.
func (g *Generator) classStub(ctx context.Context, pkgName string, cls *bridge.Class, st *genState,
	out, typeVarOut *[]string, imports map[string]bool, parentVars []TypeVar) {

	topLevel := typeVarOut == nil
	if topLevel {
		typeVarOut = &[]string{}
	}

	classPrefix := strings.Replace(strings.TrimPrefix(cls.Name, pkgName+"."), ".", "_", -1)
	classPrefix = strings.Replace(classPrefix, "$", "__", -1)

	classVars := make([]TypeVar, len(cls.TypeParams))
	for i, tp := range cls.TypeParams {
		classVars[i] = g.typeVarOf(ctx, tp, classPrefix)
	}
	// Non-static nested classes can refer to the enclosing class's type
	// parameters.
	usableVars := classVars
	if parentVars != nil && !cls.Mods.Static {
		usableVars = append(append([]TypeVar{}, parentVars...), classVars...)
	}

	doc := &bridge.Doc{}
	if g.opts.IncludeJavadoc {
		if d, err := g.provider.Javadoc(ctx, cls.Name); err == nil && d != nil {
			doc = d
		}
	}

	var ctorOut []string
	g.methodStub(ctx, pkgName, "__init__", cls.Constructors, doc.Ctors, st, usableVars, &ctorOut, imports)

	var methodsOut []string
	for _, group := range groupMethods(cls.Methods) {
		g.methodStub(ctx, pkgName, group.name, group.overloads, doc.Methods[group.javaName], st, usableVars, &methodsOut, imports)
	}

	var fieldsOut []string
	fields := append([]*bridge.Field{}, cls.Fields...)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	for _, f := range fields {
		g.fieldStub(ctx, pkgName, f, doc.Fields[f.Name], st, usableVars, &fieldsOut, imports)
	}

	var nestedOut []string
	doneNested := map[string]bool{}
	nested := usableNested(cls)
	for _, n := range nested {
		stNested := st.withDoneCopy()
		g.classStub(ctx, pkgName, n, stNested, &nestedOut, typeVarOut, imports, usableVars)
		mergeDone(doneNested, stNested.done)
	}

	// Referenced-but-hidden nested classes (private, package-private) are
	// repaired after the visible ones: fetch them directly, or fall back
	// to an empty placeholder so the references stay resolvable.
	attempted := map[string]bool{}
	for {
		var remaining []string
		for name := range st.used {
			if !strings.HasPrefix(name, cls.Name+"$") {
				continue
			}
			local := name[strings.LastIndex(name, ".")+1:]
			if !st.done[local] && !doneNested[local] && !attempted[local] {
				remaining = append(remaining, local)
			}
		}
		if len(remaining) == 0 {
			break
		}
		sort.Strings(remaining)
		for _, local := range remaining {
			attempted[local] = true
			seg := strings.SplitN(strings.TrimPrefix(local, cls.LocalName()+"$"), "$", 2)[0]
			hidden, err := g.provider.ClassByName(ctx, cls.Name+"$"+seg)
			if err == nil && hidden != nil {
				stNested := st.withDoneCopy()
				g.classStub(ctx, pkgName, hidden, stNested, &nestedOut, typeVarOut, imports, usableVars)
				mergeDone(doneNested, stNested.done)
			} else {
				g.log.Warnw("reference to missing inner class, generating empty stub",
					"class", cls.Name+"$"+seg)
				emptyClassStub(local, doneNested, &nestedOut)
				g.stats.Placeholders++
			}
		}
	}

	var supers []string
	for _, s := range cls.SuperTypes() {
		t := g.pyType(ctx, s, usableVars, pos{noCallable: true})
		supers = append(supers, annotatedType(t, pkgName, st, imports, false))
	}
	if len(classVars) > 0 {
		names := make([]string, len(classVars))
		for i, tv := range classVars {
			names[i] = tv.PyName
		}
		imports["import typing"] = true
		supers = append(supers, "typing.Generic["+strings.Join(names, ", ")+"]")
	}
	if cls.Name == "java.lang.Throwable" {
		// Lets Throwable-derived types be raised and caught as Python
		// exceptions.
		supers = append(supers, "builtins.Exception")
		imports["import builtins"] = true
	}

	for _, tv := range classVars {
		*typeVarOut = append(*typeVarOut, typeVarDeclaration(tv, pkgName, st, imports))
	}

	superStr := ""
	if len(supers) > 0 {
		superStr = "(" + strings.Join(supers, ", ") + ")"
	}
	className := cls.SimpleName

	if topLevel {
		*out = append(*out, "")
		*out = append(*out, *typeVarOut...)
	}

	docOut := docstringLines(doc.Description, true)

	if len(ctorOut) == 0 && len(methodsOut) == 0 && len(fieldsOut) == 0 && len(nestedOut) == 0 {
		if len(docOut) > 0 {
			*out = append(*out, "class "+className+superStr+":")
			*out = append(*out, docOut...)
			*out = append(*out, "    ...")
		} else {
			*out = append(*out, "class "+className+superStr+": ...")
		}
	} else {
		*out = append(*out, "class "+className+superStr+":")
		*out = append(*out, docOut...)
		for _, section := range [][]string{fieldsOut, ctorOut, methodsOut, nestedOut} {
			for _, line := range section {
				*out = append(*out, "    "+line)
			}
		}
	}
	mergeDone(st.done, doneNested)
	st.done[cls.LocalName()] = true
	g.stats.Classes++
}

type methodGroup struct {
	name      string // mangled stub name
	javaName  string // reflected name, for javadoc lookup
	overloads []*bridge.Method
}

// groupMethods collects the public non-synthetic methods into overload
// groups keyed by their mangled name, sorted for deterministic output.
func groupMethods(methods []*bridge.Method) []methodGroup {
	byName := map[string]*methodGroup{}
	for _, m := range methods {
		if !m.Mods.Public || m.Mods.Synthetic || m.Bridge {
			continue
		}
		safe, ok := pysafe(m.Name)
		if !ok {
			continue
		}
		group, exists := byName[safe]
		if !exists {
			group = &methodGroup{name: safe, javaName: m.Name}
			byName[safe] = group
		}
		group.overloads = append(group.overloads, m)
	}
	groups := make([]methodGroup, 0, len(byName))
	for _, group := range byName {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].name < groups[j].name })
	return groups
}

// overloadKey orders overloads of one method deterministically.
func overloadKey(m *bridge.Method) string {
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = typeNameOf(p.Type)
	}
	return m.Name + "(" + strings.Join(parts, ",") + ")" + typeNameOf(m.Returns)
}

// methodStub appends the stub lines for one method name, covering all of
// its overloads. name "__init__" marks constructor emission.
func (g *Generator) methodStub(ctx context.Context, pkgName, name string, overloads []*bridge.Method,
	methodDoc string, st *genState, classVars []TypeVar, out *[]string, imports map[string]bool) {

	if len(overloads) == 0 {
		return
	}
	isCtor := name == "__init__"
	isOverloaded := len(overloads) > 1
	sorted := append([]*bridge.Method{}, overloads...)
	sort.Slice(sorted, func(i, j int) bool { return overloadKey(sorted[i]) < overloadKey(sorted[j]) })

	sigs := make([]FuncSig, 0, len(sorted))
	for i, m := range sorted {
		static := !isCtor && m.Mods.Static
		scopeID := name
		if isOverloaded {
			scopeID = fmt.Sprintf("%s_%d", name, i)
		}
		methodVars := make([]TypeVar, len(m.TypeParams))
		for j, tp := range m.TypeParams {
			methodVars[j] = g.typeVarOf(ctx, tp, scopeID)
		}
		usableVars := methodVars
		if !static {
			usableVars = append(append([]TypeVar{}, methodVars...), classVars...)
		}

		var args []ArgSig
		if !static {
			args = append(args, ArgSig{Name: "self"})
		}
		for _, p := range m.Params {
			argType := p.Type
			if p.VarArgs && argType != nil && argType.Kind == bridge.KindArray {
				argType = argType.Component
			}
			argName := p.Name
			if !p.NamePresent {
				argName = inferArgName(argType, args)
			}
			t := g.pyType(ctx, argType, usableVars, pos{argument: true})
			args = append(args, ArgSig{Name: argName, Type: &t, VarArgs: p.VarArgs})
		}

		var ret TypeExpr
		if isCtor {
			ret = TypeExpr{Name: "None"}
		} else {
			ret = g.pyType(ctx, m.Returns, usableVars, pos{})
		}
		sigs = append(sigs, FuncSig{Name: name, Static: static, Args: args, Ret: ret, TypeVars: methodVars})
	}

	// Overloads must be contiguous, so all type variable declarations
	// come first.
	for _, sig := range sigs {
		for _, tv := range sig.TypeVars {
			*out = append(*out, typeVarDeclaration(tv, pkgName, st, imports))
		}
	}

	docs := make([]string, len(sigs))
	if methodDoc != "" {
		docs = splitOverloadDoc(sigs, methodDoc)
	}

	for i, sig := range sigs {
		if isOverloaded {
			imports["import typing"] = true
			*out = append(*out, "@typing.overload")
		}
		if sig.Static {
			*out = append(*out, "@staticmethod")
		}
		rendered := make([]string, 0, len(sig.Args))
		for j, arg := range sig.Args {
			if arg.Name == "self" {
				rendered = append(rendered, "self")
				continue
			}
			def, ok := pysafe(arg.Name)
			if !ok {
				def = fmt.Sprintf("invalidArgName%d", j)
			}
			if arg.VarArgs {
				def = "*" + def
			}
			if arg.Type != nil {
				def += ": " + annotatedType(*arg.Type, pkgName, st, imports, true)
			}
			rendered = append(rendered, def)
		}

		ellipsis := " ..."
		if docs[i] != "" {
			ellipsis = ""
		}
		if isCtor {
			*out = append(*out, fmt.Sprintf("def __init__(%s) -> None:%s", strings.Join(rendered, ", "), ellipsis))
		} else {
			fn, ok := pysafe(sig.Name)
			if !ok {
				continue
			}
			ret := annotatedType(sig.Ret, pkgName, st, imports, true)
			*out = append(*out, fmt.Sprintf("def %s(%s) -> %s:%s", fn, strings.Join(rendered, ", "), ret, ellipsis))
		}
		if docs[i] != "" {
			*out = append(*out, docstringLines(docs[i], true)...)
			*out = append(*out, "    ...")
		}
	}
}

// fieldStub appends the stub line for one public field. Static fields
// cannot refer to class type variables and are wrapped in
// typing.ClassVar.
func (g *Generator) fieldStub(ctx context.Context, pkgName string, f *bridge.Field, fieldDoc string,
	st *genState, classVars []TypeVar, out *[]string, imports map[string]bool) {

	if !f.Mods.Public {
		return
	}
	vars := classVars
	if f.Mods.Static {
		vars = nil
	}
	t := g.pyType(ctx, f.Type, vars, pos{})
	annotation := annotatedType(t, pkgName, st, imports, true)
	if f.Mods.Static {
		imports["import typing"] = true
		annotation = "typing.ClassVar[" + annotation + "]"
	}
	safe, ok := pysafe(f.Name)
	if !ok {
		return
	}
	*out = append(*out, safe+": "+annotation+" = ...")
	if fieldDoc != "" {
		*out = append(*out, docstringLines(fieldDoc, false)...)
	}
}

// emptyClassStub emits a body-less declaration for a class that could not
// be reflected.
func emptyClassStub(localName string, done map[string]bool, out *[]string) {
	done[localName] = true
	short := localName
	if i := strings.LastIndex(short, "$"); i >= 0 {
		short = short[i+1:]
	}
	*out = append(*out, "class "+short+": ...")
}

// usableNested filters and orders the nested classes worth emitting.
func usableNested(cls *bridge.Class) []*bridge.Class {
	var nested []*bridge.Class
	for _, n := range cls.Nested {
		if n.Mods.Synthetic || n.Mods.Anonymous || n.Mods.Local {
			continue
		}
		if !n.Mods.Public {
			continue
		}
		nested = append(nested, n)
	}
	sort.Slice(nested, func(i, j int) bool { return nested[i].SimpleName < nested[j].SimpleName })
	return nested
}

func mergeDone(dst, src map[string]bool) {
	for k := range src {
		dst[k] = true
	}
}
