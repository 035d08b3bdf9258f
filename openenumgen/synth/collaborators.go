package synth

import (
	"context"

	"github.com/broady/openenum/openenumgen/ir"
)

// NameHelper legalizes and normalizes identifiers for the target language.
type NameHelper interface {
	// ReplaceIllegalCharacters replaces every character that may not appear
	// in an identifier with an underscore.
	ReplaceIllegalCharacters(s string) string

	// Capitalize upper-cases the first character of s.
	Capitalize(s string) string

	// NormalizeName applies type naming conventions to an already legal name.
	NormalizeName(s string) string
}

// TypeResolver resolves a definition's declared backing type.
// An empty type name resolves to a textual type.
type TypeResolver interface {
	ResolveBacking(typeName string) (*ir.PrimitiveDescriptor, error)
}

// TypeCatalog answers questions about types that already exist in the
// generation environment.
type TypeCatalog interface {
	// LookupType reports whether a type with the given identifier is loadable.
	LookupType(ctx context.Context, id ir.GoIdentifier) (bool, error)

	// LookupInterface resolves an interface type. ok is false when no
	// interface with that identifier exists.
	LookupInterface(ctx context.Context, id ir.GoIdentifier) (ref ir.InterfaceRef, ok bool, err error)

	// DeclaredNames lists the package-level identifiers of a package,
	// excluding ones declared in generated open enum files.
	DeclaredNames(ctx context.Context, pkgPath string) ([]string, error)
}

// Annotator attaches serialization hints to synthesized operations.
// Hints are additive; they never change what an operation does.
type Annotator interface {
	AnnotateFactory(e *ir.OpenEnumDescriptor, op *ir.Operation)
	AnnotateRendering(e *ir.OpenEnumDescriptor, op *ir.Operation)
}
