package bridge

import "context"

// Provider is the capability interface onto a live reflection session.
//
// All calls are fallible per class: implementations return an error
// wrapping errors.ErrTypeLoad when the JVM cannot load a class (for
// example because a dependency jar is missing from the classpath), and
// errors.ErrNoSuchMember when a lookup misses. Callers are expected to
// catch both and continue; only root package enumeration failures abort
// a run.
//
// The session behind a Provider is a single attached JVM and is not safe
// for concurrent use. The generator drives it from one goroutine.
type Provider interface {
	// Subpackages lists the direct child packages of a package.
	Subpackages(ctx context.Context, pkg string) ([]string, error)

	// PackageClasses lists the public classes directly owned by a
	// package, excluding synthetic, anonymous and local classes.
	PackageClasses(ctx context.Context, pkg string) ([]*Class, error)

	// LookupClass fetches a class by simple name directly from a
	// package. Unlike PackageClasses this may reach certain protected
	// or module-internal classes.
	LookupClass(ctx context.Context, pkg, simpleName string) (*Class, error)

	// ClassByName fetches a class by its binary qualified name,
	// including nested names like "com.example.Outer$Inner".
	ClassByName(ctx context.Context, binaryName string) (*Class, error)

	// Javadoc returns the best-effort documentation for a class.
	// A nil Doc with nil error means no documentation is available.
	Javadoc(ctx context.Context, binaryName string) (*Doc, error)
}
