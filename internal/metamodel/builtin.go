package metamodel

import (
	"fmt"
	"sort"
)

// Namespace URIs of the built-in packages.
const (
	SysMLNsURI = "https://www.omg.org/spec/SysML/20240201"
	KerMLNsURI = "https://www.omg.org/spec/KerML/20240201"
	TypesNsURI = "http://www.eclipse.org/uml2/5.0.0/Types"
	UMLNsURI   = "http://www.eclipse.org/uml2/5.0.0/UML"
)

// Loader provides packages by fully qualified name.
type Loader interface {
	// Load returns the named package, or an error wrapping
	// ErrPackageNotFound if this distribution does not provide it.
	Load(name string) (*Package, error)
}

// Catalog is a Loader backed by package constructors.
type Catalog map[string]func() (*Package, error)

// Load implements Loader.
func (c Catalog) Load(name string) (*Package, error) {
	build, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
	}
	p, err := build()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return p, nil
}

// Names returns the package names the catalog provides, sorted.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns the catalog of packages bundled with this distribution.
// Only one of the KerML package spellings is provided; the others are
// expected to be absent.
func Builtin() Catalog {
	return Catalog{
		"org.omg.sysml.lang.sysml.SysMLPackage": staticPackage(&Package{
			Name:    "org.omg.sysml.lang.sysml.SysMLPackage",
			NsURI:   SysMLNsURI,
			Prefix:  "sysml",
			Classes: append(append([]string(nil), kermlClasses...), sysmlClasses...),
		}),
		"org.omg.kerml.lang.kerml.KerMLPackage": staticPackage(&Package{
			Name:    "org.omg.kerml.lang.kerml.KerMLPackage",
			NsURI:   KerMLNsURI,
			Prefix:  "kerml",
			Classes: kermlClasses,
		}),
		"org.eclipse.uml2.types.TypesPackage": staticPackage(&Package{
			Name:    "org.eclipse.uml2.types.TypesPackage",
			NsURI:   TypesNsURI,
			Prefix:  "types",
			Classes: []string{"Boolean", "Integer", "Real", "String", "UnlimitedNatural"},
		}),
		"org.eclipse.uml2.uml.UMLPackage": staticPackage(&Package{
			Name:    "org.eclipse.uml2.uml.UMLPackage",
			NsURI:   UMLNsURI,
			Prefix:  "uml",
			Classes: []string{"Element", "NamedElement", "Namespace", "Package", "Class", "Property", "Comment"},
		}),
	}
}

func staticPackage(p *Package) func() (*Package, error) {
	return func() (*Package, error) { return p, nil }
}

var kermlClasses = []string{
	"Namespace",
	"Package",
	"LibraryPackage",
	"NamespaceImport",
	"MembershipImport",
	"Membership",
	"Documentation",
	"Comment",
	"Type",
	"Classifier",
	"Class",
	"Structure",
	"DataType",
	"Association",
	"Feature",
	"Behavior",
	"Step",
	"Function",
	"Predicate",
	"Expression",
	"Connector",
	"BindingConnector",
	"Succession",
	"Metaclass",
	"MultiplicityRange",
	"LiteralExpression",
	"FeatureReferenceExpression",
	"OperatorExpression",
	"InvocationExpression",
}

var sysmlClasses = []string{
	"ReferenceUsage",
	"MetadataDefinition",
	"MetadataUsage",
	"PartDefinition",
	"PartUsage",
	"AttributeDefinition",
	"AttributeUsage",
	"PortDefinition",
	"PortUsage",
	"ItemDefinition",
	"ItemUsage",
	"ActionDefinition",
	"ActionUsage",
	"StateDefinition",
	"StateUsage",
	"RequirementDefinition",
	"RequirementUsage",
	"ConstraintDefinition",
	"ConstraintUsage",
	"ConnectionDefinition",
	"ConnectionUsage",
	"InterfaceDefinition",
	"InterfaceUsage",
	"EnumerationDefinition",
	"EnumerationUsage",
	"OccurrenceDefinition",
	"OccurrenceUsage",
	"ViewDefinition",
	"ViewUsage",
	"ViewpointDefinition",
	"ViewpointUsage",
	"ConcernDefinition",
	"ConcernUsage",
	"CalculationDefinition",
	"CalculationUsage",
	"FlowDefinition",
	"FlowUsage",
	"AllocationDefinition",
	"AllocationUsage",
	"UseCaseDefinition",
	"UseCaseUsage",
	"CaseDefinition",
	"CaseUsage",
	"AnalysisCaseDefinition",
	"AnalysisCaseUsage",
	"VerificationCaseDefinition",
	"VerificationCaseUsage",
	"RenderingDefinition",
	"RenderingUsage",
	"BindingConnectorAsUsage",
	"SuccessionAsUsage",
	"SatisfyRequirementUsage",
	"PerformActionUsage",
	"ExhibitStateUsage",
	"IncludeUseCaseUsage",
}
