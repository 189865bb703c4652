package pystub

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/stubgen/bridge"
	"github.com/teranos/stubgen/errors"
)

// Generate walks the given root packages and all of their subpackages,
// writing one stub package tree per root under Options.OutputDir.
//
// Failures are handled leniently below the root level: a package or
// class that cannot be reflected is logged and skipped, never aborting
// the run. A root that cannot be listed at all is an error.
func (g *Generator) Generate(ctx context.Context, roots []string) (Stats, error) {
	g.stats = Stats{}

	classes := map[string][]*bridge.Class{}
	var pkgNames []string
	for _, root := range roots {
		if err := g.walk(ctx, root, true, classes, &pkgNames); err != nil {
			return g.stats, err
		}
	}
	g.log.Infow("collected packages", "count", len(pkgNames))

	// Map every package prefix to its stub file path, and each prefix to
	// its direct subpackages. Prefixes without classes of their own still
	// get an import-only stub so the package tree is importable.
	stubPaths := map[string]string{}
	subpackages := map[string]map[string]bool{}
	for _, pkgName := range pkgNames {
		parts := strings.Split(pkgName, ".")
		dir := g.opts.OutputDir
		prefix := ""
		for _, part := range parts {
			seg, _ := pysafe(part)
			if prefix == "" {
				prefix = part
				if g.opts.StubsSuffix {
					seg += "-stubs"
				}
			} else {
				parent := prefix
				prefix += "." + part
				if subpackages[parent] == nil {
					subpackages[parent] = map[string]bool{}
				}
				subpackages[parent][part] = true
			}
			dir = filepath.Join(dir, seg)
			stubPaths[prefix] = filepath.Join(dir, "__init__.pyi")
		}
	}

	allPrefixes := make([]string, 0, len(stubPaths))
	for prefix := range stubPaths {
		allPrefixes = append(allPrefixes, prefix)
	}
	sort.Strings(allPrefixes)

	for _, prefix := range allPrefixes {
		subs := make([]string, 0, len(subpackages[prefix]))
		for sub := range subpackages[prefix] {
			subs = append(subs, sub)
		}
		sort.Strings(subs)
		pkgClasses, present := classes[prefix]
		if !present {
			// parent directory of a generated package, without classes
			imports := map[string]bool{}
			for _, sub := range subs {
				imports["import "+pysafePackagePath(prefix+"."+sub)] = true
			}
			if err := writeStubFile(stubPaths[prefix], renderStubFile(imports, nil)); err != nil {
				return g.stats, err
			}
			g.stats.Packages++
			continue
		}
		if err := g.packageStub(ctx, prefix, pkgClasses, subs, stubPaths[prefix]); err != nil {
			return g.stats, err
		}
	}
	return g.stats, nil
}

// walk collects pkg and its non-pseudo descendants into classes and
// names. Listing failures are fatal only at the root.
func (g *Generator) walk(ctx context.Context, pkg string, isRoot bool,
	classes map[string][]*bridge.Class, names *[]string) error {

	subs, err := g.provider.Subpackages(ctx, pkg)
	if err == nil {
		var pkgClasses []*bridge.Class
		pkgClasses, err = g.provider.PackageClasses(ctx, pkg)
		if err == nil {
			if !isRoot && len(subs) == 0 && len(pkgClasses) == 0 {
				return nil // pseudo package, e.g. javadoc-only directories
			}
			classes[pkg] = pkgClasses
			*names = append(*names, pkg)
		}
	}
	if err != nil {
		if isRoot {
			return errors.Wrapf(errors.Mark(err, errors.ErrSession), "listing root package %s", pkg)
		}
		g.log.Warnw("skipping package", "package", pkg, "error", err)
		return nil
	}
	for _, sub := range subs {
		if strings.Contains(sub, "$") {
			continue
		}
		if err := g.walk(ctx, pkg+"."+sub, false, classes, names); err != nil {
			return err
		}
	}
	return nil
}

// packageStub generates the __init__.pyi of one package.
//
// Definition order matters in Python, so classes are scheduled so that
// in-package supertypes are declared before their subtypes. Cyclic or
// unresolvable orderings fall back to emitting the remainder in name
// order. Referenced classes that never came back from the package
// listing (private, package-private, or failing) are fetched directly or
// declared as empty placeholders.
func (g *Generator) packageStub(ctx context.Context, pkgName string, pkgClasses []*bridge.Class,
	subs []string, outFile string) error {

	g.log.Infow("generating package stub",
		"package", pkgName, "classes", len(pkgClasses), "subpackages", len(subs))

	imports := map[string]bool{}
	var classOut []string
	st := newGenState()

	queue := append([]*bridge.Class{}, pkgClasses...)
	sort.Slice(queue, func(i, j int) bool { return queue[i].Name < queue[j].Name })
	queued := map[string]bool{}
	for _, cls := range queue {
		queued[cls.LocalName()] = true
	}

	for len(queue) > 0 {
		ready := make([]*bridge.Class, 0, len(queue))
		for _, cls := range queue {
			if g.dependenciesSatisfied(ctx, pkgName, cls, st.done) {
				ready = append(ready, cls)
			}
		}
		if len(ready) == 0 {
			// no progress possible, cyclic supertype references
			ready = queue
		}
		sort.Slice(ready, func(i, j int) bool { return ready[i].Name < ready[j].Name })
		for _, cls := range ready {
			g.classStub(ctx, pkgName, cls, st, &classOut, nil, imports, nil)
			queue = removeClass(queue, cls)
		}

		for _, missing := range g.missingClasses(pkgName, st) {
			var cls *bridge.Class
			if !st.failed[missing] {
				var err error
				cls, err = g.provider.LookupClass(ctx, pkgName, missing)
				if err != nil && !errors.IsNoSuchMemberError(err) {
					g.log.Warnw("skipping missing class", "package", pkgName, "class", missing, "error", err)
					st.failed[missing] = true
					g.stats.Failed++
				}
				if err != nil {
					cls = nil
				}
			}
			if cls != nil {
				if !queued[cls.LocalName()] {
					queued[cls.LocalName()] = true
					queue = append(queue, cls)
				}
			} else {
				g.log.Warnw("reference to missing class, generating empty stub",
					"package", pkgName, "class", missing)
				classOut = append(classOut, "")
				emptyClassStub(missing, st.done, &classOut)
				g.stats.Placeholders++
			}
		}
	}

	for _, sub := range subs {
		imports["import "+pysafePackagePath(pkgName+"."+sub)] = true
	}
	if pkgName == "java" {
		if err := javaBindings(filepath.Dir(outFile), imports, &classOut); err != nil {
			return err
		}
	}
	if err := writeStubFile(outFile, renderStubFile(imports, classOut)); err != nil {
		return err
	}
	g.stats.Packages++
	return nil
}

// missingClasses lists the referenced, still undeclared direct members
// of pkgName, sorted.
func (g *Generator) missingClasses(pkgName string, st *genState) []string {
	mangledPkg := pysafePackagePath(pkgName)
	var missing []string
	for name := range st.used {
		parent, local := splitLast(name, ".")
		if parent != mangledPkg || strings.Contains(local, "$") {
			continue
		}
		if !st.done[local] {
			missing = append(missing, local)
		}
	}
	sort.Strings(missing)
	return missing
}

// dependenciesSatisfied reports whether all in-package supertypes of cls
// and its nested classes are already declared.
func (g *Generator) dependenciesSatisfied(ctx context.Context, pkgName string, cls *bridge.Class, done map[string]bool) bool {
	for _, s := range cls.SuperTypes() {
		t := g.pyType(ctx, s, nil, pos{noCallable: true})
		parent, local := splitLast(t.Name, ".")
		if parent == pkgName && !done[local] {
			return false
		}
	}
	for _, n := range usableNested(cls) {
		if !g.dependenciesSatisfied(ctx, pkgName, n, done) {
			return false
		}
	}
	return true
}

// removeClass returns queue without cls. The result is a fresh slice so
// that callers still iterating a view of queue are unaffected.
func removeClass(queue []*bridge.Class, cls *bridge.Class) []*bridge.Class {
	out := make([]*bridge.Class, 0, len(queue))
	for _, c := range queue {
		if c != cls {
			out = append(out, c)
		}
	}
	return out
}
