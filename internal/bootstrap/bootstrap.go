// Package bootstrap registers the metamodel packages and grammar tables the
// parser depends on, once per process and in a fixed order.
package bootstrap

import (
	stderrors "errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/westfall/windtrader/internal/errors"
	"github.com/westfall/windtrader/internal/metamodel"
	"github.com/westfall/windtrader/internal/sysml"
	"github.com/westfall/windtrader/internal/topsort"
	"github.com/westfall/windtrader/internal/validate"
)

var (
	_ validate.Initializer   = (*Bootstrapper)(nil)
	_ validate.ParserFactory = (*ParserFactory)(nil)
)

// Step is one unit of bootstrap work.
type Step struct {
	Name string
	// Packages are loaded and registered in order. For an optional step
	// they are alternative names and a missing one is skipped.
	Packages []string
	Optional bool
	// DependsOn names steps that must run before this one.
	DependsOn []string
	// Setup runs after the step's packages are registered.
	Setup func(g *sysml.Grammar) error
}

// Package names of the metamodels the grammar draws its metaclasses from.
const (
	SysMLPackage = "org.omg.sysml.lang.sysml.SysMLPackage"
	TypesPackage = "org.eclipse.uml2.types.TypesPackage"
	UMLPackage   = "org.eclipse.uml2.uml.UMLPackage"
)

// KerMLPackages are the spellings the KerML package has had across
// metamodel releases. Any subset of them may be present.
var KerMLPackages = []string{
	"org.omg.kerml.lang.kerml.KerMLPackage",
	"org.omg.kerml.lang.kerml.KermlPackage",
	"org.omg.kerml.lang.KerMLPackage",
	"org.omg.kerml.lang.KermlPackage",
}

// DefaultSteps returns the bootstrap sequence for the SysML grammar.
func DefaultSteps() []Step {
	return []Step{
		{Name: "sysml", Packages: []string{SysMLPackage}},
		{Name: "uml2-types", Packages: []string{TypesPackage}},
		{Name: "uml2-uml", Packages: []string{UMLPackage}},
		{Name: "kerml", Packages: KerMLPackages, Optional: true},
		{
			Name:      "kerml-grammar",
			DependsOn: []string{"sysml"},
			Setup: func(g *sysml.Grammar) error {
				// Prefer the standalone KerML metaclasses when that package
				// was found; SysML carries copies of all of them.
				return g.Install(sysml.KerML, metamodel.KerMLNsURI, metamodel.SysMLNsURI)
			},
		},
		{
			Name:      "sysml-grammar",
			DependsOn: []string{"sysml", "kerml-grammar"},
			Setup: func(g *sysml.Grammar) error {
				return g.Install(sysml.SysML, metamodel.SysMLNsURI)
			},
		},
	}
}

// Bootstrapper is the default validate.Initializer. It loads packages through a
// metamodel.Loader into a registry and installs grammar tables.
type Bootstrapper struct {
	loader   metamodel.Loader
	registry *metamodel.Registry
	grammar  *sysml.Grammar
	steps    []Step

	// Logger receives debug tracing. It must be set before the first
	// call to EnsureInitialized.
	Logger *slog.Logger

	once  sync.Once
	err   error
	ready atomic.Bool
}

// New creates a Bootstrapper that runs steps against reg.
func New(loader metamodel.Loader, reg *metamodel.Registry, steps []Step) *Bootstrapper {
	return &Bootstrapper{
		loader:   loader,
		registry: reg,
		grammar:  sysml.NewGrammar(reg),
		steps:    steps,
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// Default returns a Bootstrapper over the built-in metamodel catalog.
func Default() *Bootstrapper {
	return New(metamodel.Builtin(), metamodel.NewRegistry(), DefaultSteps())
}

// EnsureInitialized runs the steps on first call. Later calls return the
// first call's result without repeating any work.
func (b *Bootstrapper) EnsureInitialized() error {
	b.once.Do(func() {
		b.err = b.run()
		b.ready.Store(b.err == nil)
	})
	return b.err
}

// Registry returns the registry the bootstrapper populates.
func (b *Bootstrapper) Registry() *metamodel.Registry {
	return b.registry
}

// Grammar returns the grammar once bootstrap has succeeded, nil otherwise.
func (b *Bootstrapper) Grammar() *sysml.Grammar {
	if !b.ready.Load() {
		return nil
	}
	return b.grammar
}

func (b *Bootstrapper) run() error {
	if err := b.checkOrder(); err != nil {
		return errors.Wrap(err, "primary package must be registered before grammar setup")
	}

	for _, step := range b.steps {
		b.Logger.Debug("bootstrap step", "step", step.Name)
		if err := b.runStep(step); err != nil {
			return &errors.WindtraderError{
				Kind:    errors.KindRuntime,
				Message: "metamodel bootstrap failed at step " + step.Name,
				Cause:   err,
			}
		}
	}

	return nil
}

func (b *Bootstrapper) checkOrder() error {
	graph := make(topsort.Graph, len(b.steps))
	order := make([]string, 0, len(b.steps))
	for _, step := range b.steps {
		graph[step.Name] = step.DependsOn
		order = append(order, step.Name)
	}
	return topsort.Ordered(graph, order)
}

func (b *Bootstrapper) runStep(step Step) error {
	for _, name := range step.Packages {
		pkg, err := b.loader.Load(name)
		if err != nil {
			if step.Optional && stderrors.Is(err, metamodel.ErrPackageNotFound) {
				b.Logger.Debug("optional package absent", "step", step.Name, "package", name)
				continue
			}
			return err
		}
		if err := b.registry.Register(pkg); err != nil {
			return err
		}
		b.Logger.Debug("registered package", "package", pkg.Name, "nsURI", pkg.NsURI)
	}

	if step.Setup != nil {
		if err := step.Setup(b.grammar); err != nil {
			return err
		}
	}
	return nil
}
