package ir

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	// Named type descriptors (appear in Schema.Types)
	KindOpenEnum  DescriptorKind = iota // Synthesized open enumeration
	KindReference                       // Pre-existing type reused instead of synthesized

	// Expression type descriptors
	KindPrimitive // Built-in backing value type
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindOpenEnum:
		return "OpenEnum"
	case KindReference:
		return "Reference"
	case KindPrimitive:
		return "Primitive"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is the base interface for all type descriptors.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// TypeName returns the canonical name of this type.
	// Returns zero value for expression types.
	TypeName() GoIdentifier

	// Doc returns associated documentation.
	// Returns zero value for expression types.
	Doc() Documentation

	// Src returns where the type's definition came from.
	// Returns zero value for expression types.
	Src() Source

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}

// exprBase provides zero-value implementations of TypeDescriptor methods
// for expression type descriptors that don't have names, docs, or source.
type exprBase struct{}

func (exprBase) TypeName() GoIdentifier { return GoIdentifier{} }
func (exprBase) Doc() Documentation     { return Documentation{} }
func (exprBase) Src() Source            { return Source{} }
func (exprBase) sealed()                {}
