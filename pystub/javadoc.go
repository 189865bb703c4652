package pystub

import (
	"regexp"
	"strings"
)

const (
	docIdentifier = `[a-zA-Z0-9_?]+`
	docType       = `[a-zA-Z0-9_?.,:` + "`" + `~\s]+(<[a-zA-Z0-9_?.,:~\s<>\[\]/=-]+>)?` + "`" + `?(\[\])*\s?`
	docGenericArg = docIdentifier + `( (super ` + docType + `)| (extends ` + docType + `))?`
	docArgSep     = `,\s?`
)

// splitOverloadDoc partitions a method's javadoc text between its
// overloads by matching the rendered signature lines. The returned slice
// is indexed like sigs; unmatched lines before the first recognized
// signature are dropped.
//
// Signature lines in rendered javadoc are loosely structured (HTML links,
// entity escapes, nested generics), so the return type and argument types
// are matched permissively and only the method name, the staticness, and
// the argument and type-variable counts anchor an overload.
func splitOverloadDoc(sigs []FuncSig, doc string) []string {
	patterns := make([]*regexp.Regexp, len(sigs))
	for i, sig := range sigs {
		expr := `(default\s)?(public|protected|private)?\s?`
		if sig.Static {
			expr += `static\s`
		}
		if n := len(sig.TypeVars); n > 0 {
			parts := make([]string, n)
			for j := range parts {
				parts[j] = docGenericArg
			}
			expr += "<" + strings.Join(parts, docArgSep) + `>\s`
		}
		expr += docType
		expr += `\s?` + regexp.QuoteMeta(sig.Name)

		args := sig.Args
		if len(args) > 0 && args[0].Type == nil {
			args = args[1:] // self
		}
		argParts := make([]string, len(args))
		for j := range argParts {
			argParts[j] = docType + " " + docIdentifier
		}
		expr += `\s?\(` + strings.Join(argParts, docArgSep) + `\)`
		patterns[i] = regexp.MustCompile(`^(?:` + expr + `)$`)
	}

	lines := strings.Split(doc, "\n")
	out := make([][]string, len(sigs))
	current := -1
	for line := 0; line < len(lines); line++ {
		for i, pattern := range patterns {
			if pattern.MatchString(lines[line]) {
				current = i
				line += 2
				break
			}
		}
		if current >= 0 && line < len(lines) {
			out[current] = append(out[current], lines[line])
		}
	}
	result := make([]string, len(sigs))
	for i, bucket := range out {
		result[i] = strings.Join(bucket, "\n")
	}
	return result
}

// docstringLines renders javadoc text as a triple-quoted docstring.
func docstringLines(doc string, indent bool) []string {
	if doc == "" {
		return nil
	}
	pad := ""
	if indent {
		pad = "    "
	}
	lines := []string{pad + `"""`}
	for _, l := range strings.Split(doc, "\n") {
		lines = append(lines, pad+l)
	}
	return append(lines, pad+`"""`)
}
