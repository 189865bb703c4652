package pystub

import "strings"

// pythonKeywords are the reserved words of the Python grammar, plus
// "exec" and "print" which remain hazardous as identifiers because of
// Python 2 heritage code.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	"exec": true, "print": true,
}

// isReservedWord reports whether s collides with the Python grammar.
func isReservedWord(s string) bool {
	return pythonKeywords[s]
}

// pysafe maps a Java identifier to an equivalent Python identifier.
//
// Reserved words get an underscore suffix (the JPype-style mangling).
// Dunder-shaped names (leading and trailing double underscore, length
// >= 4) return ok=false: renaming them would alias Python's reserved
// special-method names, so the member must be dropped instead.
func pysafe(s string) (string, bool) {
	if strings.HasPrefix(s, "__") && strings.HasSuffix(s, "__") && len(s) >= 4 {
		return "", false
	}
	if isReservedWord(s) {
		return s + "_", true
	}
	return s, true
}

// pysafePackagePath maps every segment of a dotted package path through
// pysafe. Dunder-shaped segments cannot occur in Java package names.
func pysafePackagePath(path string) string {
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		if safe, ok := pysafe(seg); ok {
			segments[i] = safe
		}
	}
	return strings.Join(segments, ".")
}
