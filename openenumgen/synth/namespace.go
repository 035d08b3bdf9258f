package synth

import (
	"slices"

	"github.com/broady/openenum/openenumgen/ir"
)

// Namespace is the enclosing package synthesized types are declared in.
// It tracks every package-level identifier already taken, both by existing
// code and by enums synthesized earlier in the same run, and collects
// warnings.
type Namespace struct {
	Package ir.PackageInfo

	names    []string
	types    map[string]bool
	warnings []ir.Warning
}

// NewNamespace returns a namespace for pkg seeded with identifiers that
// already exist in it.
func NewNamespace(pkg ir.PackageInfo, existing ...string) *Namespace {
	return &Namespace{
		Package: pkg,
		names:   slices.Clone(existing),
		types:   make(map[string]bool),
	}
}

// Names returns every identifier taken so far.
func (ns *Namespace) Names() []string {
	return ns.names
}

// declareType records a type synthesized in this namespace.
func (ns *Namespace) declareType(name string) {
	ns.types[name] = true
	ns.names = append(ns.names, name)
}

// hasType reports whether a type with exactly this name was synthesized
// earlier in the run.
func (ns *Namespace) hasType(name string) bool {
	return ns.types[name]
}

func (ns *Namespace) declare(names ...string) {
	ns.names = append(ns.names, names...)
}

func (ns *Namespace) warn(w ir.Warning) {
	ns.warnings = append(ns.warnings, w)
}

// Warnings returns the warnings collected so far.
func (ns *Namespace) Warnings() []ir.Warning {
	return ns.warnings
}
