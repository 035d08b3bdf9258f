package synth

import (
	"context"
	"fmt"
	"go/types"
	"slices"
	"strings"

	"github.com/broady/openenum/openenumgen/definition"
	"github.com/broady/openenum/openenumgen/ir"
)

// Allocation is the outcome of type name resolution.
type Allocation struct {
	// Name is the allocated or existing type.
	Name ir.GoIdentifier

	// Existing is set when Name already exists and nothing must be synthesized.
	Existing bool
}

// ClassNameAllocator picks the name of the type synthesized for a definition.
type ClassNameAllocator struct {
	Names NameHelper

	// Catalog resolves explicit type names to existing types.
	// When nil, explicit names are only checked against the namespace.
	Catalog TypeCatalog
}

// Allocate resolves the type name for def within ns and records it there.
//
// With an explicit GoType, a predeclared type name fails with
// CodeInvalidBackingType, a type that already exists yields an Allocation
// with Existing set, and a name whose identifiers are already taken fails
// with CodeInvalidName. Otherwise the name is derived from def.Name and
// disambiguated against ns case-insensitively, together with every
// identifier TypeIdents derives from it.
func (a *ClassNameAllocator) Allocate(ctx context.Context, def *definition.Enum, ns *Namespace) (Allocation, error) {
	if def.GoType != "" {
		return a.allocateExplicit(ctx, def, ns)
	}

	name := a.Names.Capitalize(def.Name)
	name = a.Names.ReplaceIllegalCharacters(name)
	name = a.Names.NormalizeName(name)
	if name == "" {
		return Allocation{}, &Error{
			Code:    CodeInvalidName,
			Message: fmt.Sprintf("no type name can be derived from %q", def.Name),
		}
	}
	name = makeUniqueIdents(name, ns.Names(), TypeIdents)
	ns.declareType(name)
	return Allocation{Name: ir.GoIdentifier{Name: name, Package: ns.Package.Path}}, nil
}

func (a *ClassNameAllocator) allocateExplicit(ctx context.Context, def *definition.Enum, ns *Namespace) (Allocation, error) {
	pkgPath, name := SplitQualified(def.GoType)
	if pkgPath == "" && IsPredeclared(name) {
		return Allocation{}, &Error{
			Code:    CodeInvalidBackingType,
			Message: fmt.Sprintf("predeclared type %q cannot be used as an open enum", name),
		}
	}

	local := pkgPath == "" || pkgPath == ns.Package.Path
	target := ir.GoIdentifier{Name: name, Package: pkgPath}
	if target.Package == "" {
		target.Package = ns.Package.Path
	}

	if local && ns.hasType(name) {
		return Allocation{Name: target, Existing: true}, nil
	}
	if a.Catalog != nil {
		found, err := a.Catalog.LookupType(ctx, target)
		if err != nil {
			return Allocation{}, &Error{
				Code:    CodeCatalogFailure,
				Message: "looking up " + target.Qualified(),
				Err:     err,
			}
		}
		if found {
			return Allocation{Name: target, Existing: true}, nil
		}
	}

	for _, id := range TypeIdents(name) {
		if slices.Contains(ns.Names(), id) {
			return Allocation{}, &Error{
				Code:    CodeInvalidName,
				Message: fmt.Sprintf("type %s would redeclare %s", name, id),
			}
		}
	}
	if !local {
		ns.warn(ir.Warning{
			Code:     "foreign_package",
			Message:  fmt.Sprintf("type %s is declared in package %s instead of %s", def.GoType, ns.Package.Path, pkgPath),
			Source:   sourcePtr(def.Source),
			TypeName: name,
		})
	}
	ns.declareType(name)
	return Allocation{Name: ir.GoIdentifier{Name: name, Package: ns.Package.Path}}, nil
}

// SplitQualified splits "import/path.Name" at its last dot.
// A bare name has an empty package path.
func SplitQualified(s string) (pkgPath, name string) {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return "", s
	}
	return s[:i], s[i+1:]
}

// IsPredeclared reports whether name is a predeclared Go type such as int,
// string or error.
func IsPredeclared(name string) bool {
	_, ok := types.Universe.Lookup(name).(*types.TypeName)
	return ok
}

func sourcePtr(s ir.Source) *ir.Source {
	if s.IsZero() {
		return nil
	}
	return &s
}
