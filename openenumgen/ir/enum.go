package ir

// OpenEnumDescriptor is a synthesized open enumeration: a type wrapping one
// backing value per instance, a per-type lookup table, a factory that
// canonicalizes values through the table, and one named constant per
// declared literal.
type OpenEnumDescriptor struct {
	// Name is the type identifier, unique case-insensitively within its package.
	Name GoIdentifier

	// Backing is the static type of the wrapped value.
	Backing *PrimitiveDescriptor

	// Field is the name of the private backing field.
	Field string

	// RefType is the name of the private struct an instance points at.
	RefType string

	// Constructor is the private construction operation. Only the factory calls it.
	Constructor string

	// Table is the package-level lookup table variable.
	Table string

	// Factory canonicalizes a backing value to its single instance.
	Factory Operation

	// Rendering renders an instance as text.
	Rendering Operation

	// ValuesFunc returns the declared constants in declaration order.
	ValuesFunc string

	// Constants are the declared literals in declaration order.
	Constants []Constant

	// Interfaces lists capability interfaces the type asserts conformance to.
	Interfaces []InterfaceRef

	// Documentation for this type.
	Documentation Documentation

	// Source of the definition.
	Source Source
}

// Kind returns KindOpenEnum.
func (d *OpenEnumDescriptor) Kind() DescriptorKind { return KindOpenEnum }

// TypeName returns the enum's name.
func (d *OpenEnumDescriptor) TypeName() GoIdentifier { return d.Name }

// Doc returns the enum's documentation.
func (d *OpenEnumDescriptor) Doc() Documentation { return d.Documentation }

// Src returns the enum's source location.
func (d *OpenEnumDescriptor) Src() Source { return d.Source }

func (*OpenEnumDescriptor) sealed() {}

// Constant returns the declared constant with the given name, or nil.
func (d *OpenEnumDescriptor) Constant(name string) *Constant {
	for i := range d.Constants {
		if d.Constants[i].Name == name {
			return &d.Constants[i]
		}
	}
	return nil
}

// Constant is a named, declared literal. It is materialized by calling the
// factory with Value at type-initialization time.
type Constant struct {
	// Name is the unique constant identifier within the enum (e.g. "OPEN").
	Name string

	// Value is the literal, converted to the backing type. Exactly one of
	// string, int64, uint64, float64 or bool.
	Value any

	// Raw is the literal's textual form as it appeared in the definition.
	Raw string
}

// Operation is a synthesized function or method and the serialization hints
// attached to it.
type Operation struct {
	Name  string
	Hints []SerializationHint
}

// Has reports whether the operation carries hint h.
func (o Operation) Has(h SerializationHint) bool {
	for _, x := range o.Hints {
		if x == h {
			return true
		}
	}
	return false
}

// SerializationHint marks an operation as the canonical deserializer or
// serializer for an encoding. Hints never change the core semantics.
type SerializationHint string

const (
	HintJSONCreator SerializationHint = "json_creator"
	HintJSONValue   SerializationHint = "json_value"
	HintTextCreator SerializationHint = "text_creator"
	HintTextValue   SerializationHint = "text_value"
)

// InterfaceRef is a resolved capability interface.
type InterfaceRef struct {
	// Name is the interface's identifier and import path.
	Name GoIdentifier

	// PackageName is the declared package name used to qualify Name.
	PackageName string

	// Methods lists the interface's method names.
	Methods []string
}

// ConstantIdent returns the package-level identifier for c.
// Go has no type-scoped statics, so constants are qualified by the type name.
func (d *OpenEnumDescriptor) ConstantIdent(c Constant) string {
	return d.Name.Name + "_" + c.Name
}

// Idents returns every package-level identifier the enum declares.
func (d *OpenEnumDescriptor) Idents() []string {
	idents := []string{d.Name.Name, d.RefType, d.Constructor, d.Table, d.Factory.Name, d.ValuesFunc}
	for _, c := range d.Constants {
		idents = append(idents, d.ConstantIdent(c))
	}
	return idents
}
