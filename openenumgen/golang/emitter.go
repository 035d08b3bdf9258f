package golang

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/broady/openenum/openenumgen/ir"
)

// Emitter writes Go declarations for IR type descriptors.
type Emitter struct {
	config  GeneratorConfig
	pkgPath string
	imports *importSet
}

// NewEmitter returns an emitter for a file in package pkgPath. Imports are
// never given one of the reserved local names.
func NewEmitter(pkgPath string, config GeneratorConfig, reserved ...string) *Emitter {
	return &Emitter{config: config, pkgPath: pkgPath, imports: newImportSet(reserved...)}
}

// EmitType emits a top-level type declaration. References to existing types
// produce no output.
func (e *Emitter) EmitType(buf *bytes.Buffer, typ ir.TypeDescriptor) ([]ir.Warning, error) {
	switch t := typ.(type) {
	case *ir.OpenEnumDescriptor:
		return e.emitOpenEnum(buf, t)
	case *ir.ReferenceDescriptor:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported top-level type kind: %s", typ.Kind())
	}
}

// WriteImports emits the import block for everything emitted so far.
func (e *Emitter) WriteImports(buf *bytes.Buffer) {
	e.imports.write(buf)
}

// emitOpenEnum emits the handle type, its interned ref type, the lookup
// table, the factory, the declared constants and the accessor methods.
func (e *Emitter) emitOpenEnum(buf *bytes.Buffer, en *ir.OpenEnumDescriptor) ([]ir.Warning, error) {
	if en.Backing == nil {
		return nil, fmt.Errorf("enum %s has no backing type", en.Name.Name)
	}
	name := en.Name.Name
	backing := goTypeName(en.Backing)
	field := en.Field

	literals := make([]string, len(en.Constants))
	for i, c := range en.Constants {
		lit, err := formatLiteral(c.Value, en.Backing)
		if err != nil {
			return nil, fmt.Errorf("enum %s constant %s: %w", name, c.Name, err)
		}
		literals[i] = lit
	}

	runtime := e.imports.add(e.config.runtimeImport(), "openenum")

	e.emitTypeDoc(buf, en, backing)
	fmt.Fprintf(buf, "type %s struct {\n\tref *%s\n}\n\n", name, en.RefType)
	fmt.Fprintf(buf, "type %s struct {\n\t%s %s\n}\n\n", en.RefType, field, backing)
	fmt.Fprintf(buf, "func %s(%s %s) *%s {\n\treturn &%s{%s: %s}\n}\n\n",
		en.Constructor, field, backing, en.RefType, en.RefType, field, field)
	fmt.Fprintf(buf, "var %s %s.Table[%s, %s]\n\n", en.Table, runtime, backing, en.RefType)

	fmt.Fprintf(buf, "// %s returns the canonical %s for %s. Calls with equal values return\n", en.Factory.Name, name, field)
	fmt.Fprintf(buf, "// equal %s values, also for values that are not declared constants.\n", name)
	fmt.Fprintf(buf, "func %s(%s %s) %s {\n\treturn %s{ref: %s.Intern(%s, %s)}\n}\n\n",
		en.Factory.Name, field, backing, name, name, en.Table, field, en.Constructor)

	if len(en.Constants) > 0 {
		buf.WriteString("var (\n")
		for i, c := range en.Constants {
			fmt.Fprintf(buf, "\t%s = %s(%s)\n", en.ConstantIdent(c), en.Factory.Name, literals[i])
		}
		buf.WriteString(")\n\n")
	}

	idents := make([]string, len(en.Constants))
	for i, c := range en.Constants {
		idents[i] = en.ConstantIdent(c)
	}
	fmt.Fprintf(buf, "// %s returns the declared %s constants in declaration order.\n", en.ValuesFunc, name)
	fmt.Fprintf(buf, "func %s() []%s {\n\treturn []%s{%s}\n}\n\n", en.ValuesFunc, name, name, strings.Join(idents, ", "))

	fmt.Fprintf(buf, "// Value returns the wrapped value. The zero %s wraps %s.\n", name, zeroLiteral(en.Backing))
	fmt.Fprintf(buf, "func (e %s) Value() %s {\n\tif e.ref == nil {\n\t\treturn %s\n\t}\n\treturn e.ref.%s\n}\n\n",
		name, backing, zeroLiteral(en.Backing), field)

	fmt.Fprintf(buf, "// %s renders the wrapped value as text.\n", en.Rendering.Name)
	fmt.Fprintf(buf, "func (e %s) %s() string {\n\treturn %s\n}\n\n", name, en.Rendering.Name, e.renderExpr(en.Backing))

	if en.Rendering.Has(ir.HintJSONValue) {
		jsonPkg := e.imports.add("encoding/json", "json")
		fmt.Fprintf(buf, "// MarshalJSON encodes the wrapped value.\n")
		fmt.Fprintf(buf, "func (e %s) MarshalJSON() ([]byte, error) {\n\treturn %s.Marshal(e.Value())\n}\n\n", name, jsonPkg)
	}
	if en.Factory.Has(ir.HintJSONCreator) {
		jsonPkg := e.imports.add("encoding/json", "json")
		fmt.Fprintf(buf, "// UnmarshalJSON decodes a value and canonicalizes it with %s.\n", en.Factory.Name)
		fmt.Fprintf(buf, "func (e *%s) UnmarshalJSON(data []byte) error {\n", name)
		buf.WriteString("\tif string(data) == \"null\" {\n\t\treturn nil\n\t}\n")
		fmt.Fprintf(buf, "\tvar %s %s\n", field, backing)
		fmt.Fprintf(buf, "\tif err := %s.Unmarshal(data, &%s); err != nil {\n\t\treturn err\n\t}\n", jsonPkg, field)
		fmt.Fprintf(buf, "\t*e = %s(%s)\n\treturn nil\n}\n\n", en.Factory.Name, field)
	}
	if en.Rendering.Has(ir.HintTextValue) {
		fmt.Fprintf(buf, "// MarshalText encodes the value as text.\n")
		fmt.Fprintf(buf, "func (e %s) MarshalText() ([]byte, error) {\n\treturn []byte(e.%s()), nil\n}\n\n", name, en.Rendering.Name)
	}
	if en.Factory.Has(ir.HintTextCreator) {
		fmt.Fprintf(buf, "// UnmarshalText parses text and canonicalizes it with %s.\n", en.Factory.Name)
		fmt.Fprintf(buf, "func (e *%s) UnmarshalText(text []byte) error {\n", name)
		e.emitParseText(buf, en)
		buf.WriteString("}\n\n")
	}

	for _, iface := range en.Interfaces {
		qualified := iface.Name.Name
		if iface.Name.Package != e.pkgPath {
			qualified = e.imports.add(iface.Name.Package, iface.PackageName) + "." + iface.Name.Name
		}
		if needsPointer(iface) {
			fmt.Fprintf(buf, "var _ %s = (*%s)(nil)\n", qualified, name)
		} else {
			fmt.Fprintf(buf, "var _ %s = %s{}\n", qualified, name)
		}
	}
	if len(en.Interfaces) > 0 {
		buf.WriteString("\n")
	}
	return nil, nil
}

func (e *Emitter) emitTypeDoc(buf *bytes.Buffer, en *ir.OpenEnumDescriptor, backing string) {
	name := en.Name.Name
	if e.config.EmitComments && !en.Documentation.IsZero() {
		body := en.Documentation.Body
		if body == "" {
			body = en.Documentation.Summary
		}
		writeComment(buf, body)
		buf.WriteString("//\n")
	}
	fmt.Fprintf(buf, "// %s is an open enumeration of %s values. %s returns one %s per\n", name, backing, en.Factory.Name, name)
	fmt.Fprintf(buf, "// distinct value, so two %s values are == exactly when they wrap equal values.\n", name)
	fmt.Fprintf(buf, "// The zero %s is unset and equals no value returned by %s.\n", name, en.Factory.Name)
}

// renderExpr converts e.Value() to its default textual form.
func (e *Emitter) renderExpr(b *ir.PrimitiveDescriptor) string {
	if b.IsTextual() {
		return "e.Value()"
	}
	conv := e.imports.add("strconv", "strconv")
	switch b.PrimitiveKind {
	case ir.PrimitiveInt:
		return conv + ".FormatInt(int64(e.Value()), 10)"
	case ir.PrimitiveUint:
		return conv + ".FormatUint(uint64(e.Value()), 10)"
	case ir.PrimitiveFloat:
		return fmt.Sprintf("%s.FormatFloat(float64(e.Value()), 'g', -1, %d)", conv, floatBits(b))
	default:
		return conv + ".FormatBool(e.Value())"
	}
}

func (e *Emitter) emitParseText(buf *bytes.Buffer, en *ir.OpenEnumDescriptor) {
	b := en.Backing
	if b.IsTextual() {
		fmt.Fprintf(buf, "\t*e = %s(string(text))\n\treturn nil\n", en.Factory.Name)
		return
	}
	conv := e.imports.add("strconv", "strconv")
	var parse string
	switch b.PrimitiveKind {
	case ir.PrimitiveInt:
		parse = fmt.Sprintf("%s.ParseInt(string(text), 10, %d)", conv, b.BitSize)
	case ir.PrimitiveUint:
		parse = fmt.Sprintf("%s.ParseUint(string(text), 10, %d)", conv, b.BitSize)
	case ir.PrimitiveFloat:
		parse = fmt.Sprintf("%s.ParseFloat(string(text), %d)", conv, floatBits(b))
	default:
		parse = conv + ".ParseBool(string(text))"
	}
	fmt.Fprintf(buf, "\t%s, err := %s\n\tif err != nil {\n\t\treturn err\n\t}\n", en.Field, parse)
	arg := en.Field
	if goTypeName(b) != parsedTypeName(b) {
		arg = fmt.Sprintf("%s(%s)", goTypeName(b), en.Field)
	}
	fmt.Fprintf(buf, "\t*e = %s(%s)\n\treturn nil\n", en.Factory.Name, arg)
}

// parsedTypeName is the type strconv returns for b's kind.
func parsedTypeName(b *ir.PrimitiveDescriptor) string {
	switch b.PrimitiveKind {
	case ir.PrimitiveInt:
		return "int64"
	case ir.PrimitiveUint:
		return "uint64"
	case ir.PrimitiveFloat:
		return "float64"
	default:
		return "bool"
	}
}

func floatBits(b *ir.PrimitiveDescriptor) int {
	if b.BitSize == 32 {
		return 32
	}
	return 64
}

// needsPointer reports whether an interface requires methods that are only
// declared on the pointer type.
func needsPointer(iface ir.InterfaceRef) bool {
	for _, m := range iface.Methods {
		if m == "UnmarshalJSON" || m == "UnmarshalText" {
			return true
		}
	}
	return false
}

func zeroLiteral(b *ir.PrimitiveDescriptor) string {
	switch b.PrimitiveKind {
	case ir.PrimitiveString:
		return `""`
	case ir.PrimitiveBool:
		return "false"
	default:
		return "0"
	}
}

// formatLiteral renders a constant value as a Go literal of b's kind.
func formatLiteral(v any, b *ir.PrimitiveDescriptor) (string, error) {
	switch v := v.(type) {
	case string:
		if b.PrimitiveKind == ir.PrimitiveString {
			return strconv.Quote(v), nil
		}
	case int64:
		if b.PrimitiveKind == ir.PrimitiveInt {
			return strconv.FormatInt(v, 10), nil
		}
	case uint64:
		if b.PrimitiveKind == ir.PrimitiveUint {
			return strconv.FormatUint(v, 10), nil
		}
	case float64:
		if b.PrimitiveKind == ir.PrimitiveFloat {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return "", fmt.Errorf("%v has no Go literal", v)
			}
			return strconv.FormatFloat(v, 'g', -1, 64), nil
		}
	case bool:
		if b.PrimitiveKind == ir.PrimitiveBool {
			return strconv.FormatBool(v), nil
		}
	}
	return "", fmt.Errorf("%v (%T) is not a %s value", v, v, b.PrimitiveKind)
}

// writeComment writes text as // comment lines.
func writeComment(buf *bytes.Buffer, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			buf.WriteString("//\n")
			continue
		}
		buf.WriteString("// " + line + "\n")
	}
}
