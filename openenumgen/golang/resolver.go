package golang

import (
	"fmt"

	"github.com/broady/openenum/openenumgen/ir"
)

// TypeResolver maps declared backing types to Go primitives. It accepts the
// JSON Schema type names "string", "integer", "number" and "boolean" as well
// as Go basic type names. The empty name resolves to string.
type TypeResolver struct{}

var backingTypes = map[string]func() *ir.PrimitiveDescriptor{
	"":        ir.String,
	"string":  ir.String,
	"integer": func() *ir.PrimitiveDescriptor { return ir.Int(64) },
	"number":  func() *ir.PrimitiveDescriptor { return ir.Float(64) },
	"boolean": ir.Bool,
	"bool":    ir.Bool,
	"int":     func() *ir.PrimitiveDescriptor { return ir.Int(0) },
	"int8":    func() *ir.PrimitiveDescriptor { return ir.Int(8) },
	"int16":   func() *ir.PrimitiveDescriptor { return ir.Int(16) },
	"int32":   func() *ir.PrimitiveDescriptor { return ir.Int(32) },
	"rune":    func() *ir.PrimitiveDescriptor { return ir.Int(32) },
	"int64":   func() *ir.PrimitiveDescriptor { return ir.Int(64) },
	"uint":    func() *ir.PrimitiveDescriptor { return ir.Uint(0) },
	"uint8":   func() *ir.PrimitiveDescriptor { return ir.Uint(8) },
	"byte":    func() *ir.PrimitiveDescriptor { return ir.Uint(8) },
	"uint16":  func() *ir.PrimitiveDescriptor { return ir.Uint(16) },
	"uint32":  func() *ir.PrimitiveDescriptor { return ir.Uint(32) },
	"uint64":  func() *ir.PrimitiveDescriptor { return ir.Uint(64) },
	"float32": func() *ir.PrimitiveDescriptor { return ir.Float(32) },
	"float64": func() *ir.PrimitiveDescriptor { return ir.Float(64) },
}

// ResolveBacking returns the primitive for typeName.
func (TypeResolver) ResolveBacking(typeName string) (*ir.PrimitiveDescriptor, error) {
	mk, ok := backingTypes[typeName]
	if !ok {
		return nil, fmt.Errorf("unsupported backing type %q", typeName)
	}
	return mk(), nil
}

// goTypeName returns the Go spelling of a backing primitive.
func goTypeName(p *ir.PrimitiveDescriptor) string {
	switch p.PrimitiveKind {
	case ir.PrimitiveBool:
		return "bool"
	case ir.PrimitiveString:
		return "string"
	case ir.PrimitiveInt:
		return sized("int", p.BitSize)
	case ir.PrimitiveUint:
		return sized("uint", p.BitSize)
	case ir.PrimitiveFloat:
		if p.BitSize == 32 {
			return "float32"
		}
		return "float64"
	default:
		return "any"
	}
}

func sized(base string, bits int) string {
	if bits == 0 {
		return base
	}
	return fmt.Sprintf("%s%d", base, bits)
}
