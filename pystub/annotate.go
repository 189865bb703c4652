package pystub

import (
	"fmt"
	"strings"
)

// annotatedType renders a Python type expression as stub-file text.
//
// Rendering handles the package-name mangling (keyword segments suffixed
// with '_'), records which class names the current package refers to, and
// decides between a plain local name, a deferred local reference, and a
// fully qualified name with an import.
func annotatedType(t TypeExpr, pkgName string, st *genState, imports map[string]bool, canDefer bool) string {
	name := t.Name
	if strings.Contains(name, ".") {
		name = pysafePackagePath(name)
		st.used[name] = true
		parent, local := splitLast(name, ".")
		switch {
		case parent == "builtins":
			name = local
		case parent == pysafePackagePath(pkgName):
			if st.done[local] || canDefer {
				name = local
			} else {
				// fully qualified reference into our own package tree
				imports["import "+strings.SplitN(name, ".", 2)[0]] = true
			}
		default:
			imports["import "+parent] = true
		}
	}
	name = strings.ReplaceAll(name, "$", ".")
	if len(t.Args) > 0 || name == "" {
		args := make([]string, len(t.Args))
		for i, arg := range t.Args {
			args[i] = annotatedType(arg, pkgName, st, imports, true)
		}
		return name + "[" + strings.Join(args, ", ") + "]"
	}
	return name
}

// typeVarDeclaration renders a typing.TypeVar assignment, keeping the
// original Java variable name in a trailing comment.
func typeVarDeclaration(tv TypeVar, pkgName string, st *genState, imports map[string]bool) string {
	imports["import typing"] = true
	if tv.Bound != nil {
		bound := annotatedType(*tv.Bound, pkgName, st, imports, true)
		return fmt.Sprintf("%s = typing.TypeVar('%s', bound=%s)  # <%s>",
			tv.PyName, tv.PyName, bound, tv.JavaName)
	}
	return fmt.Sprintf("%s = typing.TypeVar('%s')  # <%s>", tv.PyName, tv.PyName, tv.JavaName)
}

// splitLast splits s around the last occurrence of sep. The first return
// is empty when sep is absent.
func splitLast(s, sep string) (string, string) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return "", s
	}
	return s[:i], s[i+len(sep):]
}
