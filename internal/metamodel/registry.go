// Package metamodel provides the process-wide table of metamodel type
// packages consulted by the grammar when it resolves metaclasses.
package metamodel

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrPackageNotFound is returned by a Loader for a package name it does not
// provide.
var ErrPackageNotFound = errors.New("metamodel package not found")

// ErrUnresolvedClass is returned when a metaclass cannot be resolved.
var ErrUnresolvedClass = errors.New("unresolved metaclass")

// Package is a named set of metaclasses identified by a namespace URI.
type Package struct {
	// Name is the fully qualified name the package is loaded by.
	Name string
	// NsURI identifies the package in the registry.
	NsURI string
	// Prefix is the short namespace prefix, e.g. "sysml".
	Prefix string
	// Classes lists the metaclass names the package defines.
	Classes []string
}

// HasClass reports whether the package defines the named metaclass.
func (p *Package) HasClass(name string) bool {
	return slices.Contains(p.Classes, name)
}

// Class is a resolved metaclass.
type Class struct {
	Package *Package
	Name    string
}

func (c Class) String() string {
	return c.Package.Prefix + "::" + c.Name
}

// Registry maps namespace URIs to registered packages.
type Registry struct {
	mu       sync.RWMutex
	packages map[string]*Package
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		packages: make(map[string]*Package),
	}
}

// Register adds p to the registry. Registering the same package again is a
// no-op; registering a different package under an already used namespace URI
// is an error.
func (r *Registry) Register(p *Package) error {
	if p == nil || p.NsURI == "" {
		return fmt.Errorf("register: package has no namespace URI")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.packages[p.NsURI]; ok {
		if existing.Name == p.Name {
			return nil
		}
		return fmt.Errorf("register %s: namespace %s already bound to %s", p.Name, p.NsURI, existing.Name)
	}

	r.packages[p.NsURI] = p
	r.order = append(r.order, p.NsURI)
	return nil
}

// Lookup returns the package registered under nsURI.
func (r *Registry) Lookup(nsURI string) (*Package, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.packages[nsURI]
	return p, ok
}

// Packages returns the registered packages in registration order.
func (r *Registry) Packages() []*Package {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Package, 0, len(r.order))
	for _, uri := range r.order {
		result = append(result, r.packages[uri])
	}
	return result
}

// Resolve returns the metaclass name from the package registered under nsURI.
func (r *Registry) Resolve(nsURI, name string) (Class, error) {
	p, ok := r.Lookup(nsURI)
	if !ok {
		return Class{}, fmt.Errorf("%w %s: package %s is not registered", ErrUnresolvedClass, name, nsURI)
	}
	if !p.HasClass(name) {
		return Class{}, fmt.Errorf("%w %s: not defined by %s", ErrUnresolvedClass, name, p.Name)
	}
	return Class{Package: p, Name: name}, nil
}
