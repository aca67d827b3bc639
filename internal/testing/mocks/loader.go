package mocks

import (
	"fmt"
	"sync"

	"github.com/westfall/windtrader/internal/metamodel"
)

// Loader implements metamodel.Loader for testing. Packages not added with
// WithPackage or WithError are reported as not found.
type Loader struct {
	packages map[string]*metamodel.Package
	errs     map[string]error

	mu    sync.Mutex
	loads []string
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{
		packages: make(map[string]*metamodel.Package),
		errs:     make(map[string]error),
	}
}

// WithPackage makes Load(name) return p.
func (m *Loader) WithPackage(name string, p *metamodel.Package) *Loader {
	m.packages[name] = p
	return m
}

// WithCatalog adds every package of c.
func (m *Loader) WithCatalog(c metamodel.Catalog) *Loader {
	for _, name := range c.Names() {
		p, err := c.Load(name)
		if err != nil {
			m.errs[name] = err
			continue
		}
		m.packages[name] = p
	}
	return m
}

// WithError makes Load(name) fail with err.
func (m *Loader) WithError(name string, err error) *Loader {
	m.errs[name] = err
	return m
}

// Without removes name so that it is reported as not found.
func (m *Loader) Without(name string) *Loader {
	delete(m.packages, name)
	delete(m.errs, name)
	return m
}

func (m *Loader) Load(name string) (*metamodel.Package, error) {
	m.mu.Lock()
	m.loads = append(m.loads, name)
	m.mu.Unlock()

	if err, ok := m.errs[name]; ok {
		return nil, err
	}
	if p, ok := m.packages[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", metamodel.ErrPackageNotFound, name)
}

// Loads returns every name passed to Load, in call order.
func (m *Loader) Loads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.loads))
	copy(result, m.loads)
	return result
}
