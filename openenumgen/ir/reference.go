package ir

// ReferenceDescriptor points at a type that already exists in the target
// environment. Synthesis returns one instead of an OpenEnumDescriptor when an
// explicitly requested type name is already loadable; nothing is generated for it.
type ReferenceDescriptor struct {
	// Target is the existing type's identifier.
	Target GoIdentifier

	// Source is where the definition that requested the type came from.
	Source Source
}

// Kind returns KindReference.
func (d *ReferenceDescriptor) Kind() DescriptorKind { return KindReference }

// TypeName returns the referenced type's name.
func (d *ReferenceDescriptor) TypeName() GoIdentifier { return d.Target }

// Doc returns zero documentation; the existing type owns its own.
func (d *ReferenceDescriptor) Doc() Documentation { return Documentation{} }

// Src returns the requesting definition's location.
func (d *ReferenceDescriptor) Src() Source { return d.Source }

func (*ReferenceDescriptor) sealed() {}

// Ref returns a ReferenceDescriptor for a named type.
func Ref(name string, pkg string) *ReferenceDescriptor {
	return &ReferenceDescriptor{Target: GoIdentifier{Name: name, Package: pkg}}
}
