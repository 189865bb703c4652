package agent

import (
	"path/filepath"
	"strings"
)

// ExpandClasspath splits a colon-delimited classpath string and expands
// glob patterns (e.g. "lib/*.jar") against the filesystem. Entries that
// match nothing are kept verbatim so the JVM reports them itself.
func ExpandClasspath(classpath string) []string {
	var entries []string
	for _, part := range strings.Split(classpath, ":") {
		if part == "" {
			continue
		}
		matches, err := filepath.Glob(part)
		if err != nil || len(matches) == 0 {
			entries = append(entries, part)
			continue
		}
		entries = append(entries, matches...)
	}
	return entries
}

func joinClasspath(entries []string) string {
	return strings.Join(entries, ":")
}
