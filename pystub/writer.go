package pystub

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/stubgen/errors"
)

// renderStubFile assembles the final text of one __init__.pyi: the
// deduplicated imports in sorted order, two blank lines, then the class
// declarations.
func renderStubFile(imports map[string]bool, classLines []string) string {
	lines := make([]string, 0, len(imports)+2+len(classLines))
	for imp := range imports {
		lines = append(lines, imp)
	}
	sort.Strings(lines)
	lines = append(lines, "", "")
	lines = append(lines, classLines...)
	return strings.Join(lines, "\n") + "\n"
}

func writeStubFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating stub directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "writing stub file %s", path)
	}
	return nil
}
