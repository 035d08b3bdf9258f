package synth

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/broady/openenum/openenumgen/ir"
)

// testNames legalizes identifiers the way the Go target does, minus
// keyword handling.
type testNames struct{}

func (testNames) ReplaceIllegalCharacters(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, s)
}

func (testNames) Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func (n testNames) NormalizeName(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		parts[i] = n.Capitalize(p)
	}
	return strings.Join(parts, "")
}

type testResolver struct{}

func (testResolver) ResolveBacking(typeName string) (*ir.PrimitiveDescriptor, error) {
	switch typeName {
	case "", "string":
		return ir.String(), nil
	case "integer", "int64":
		return ir.Int(64), nil
	case "int8":
		return ir.Int(8), nil
	case "uint8":
		return ir.Uint(8), nil
	case "number":
		return ir.Float(64), nil
	case "float32":
		return ir.Float(32), nil
	case "boolean":
		return ir.Bool(), nil
	default:
		return nil, fmt.Errorf("unknown type %q", typeName)
	}
}

// testCatalog is an in-memory TypeCatalog.
type testCatalog struct {
	types      map[string]bool
	interfaces map[string]string // qualified name -> package name
	names      []string
	err        error
}

func (c *testCatalog) LookupType(_ context.Context, id ir.GoIdentifier) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return c.types[id.Qualified()], nil
}

func (c *testCatalog) LookupInterface(_ context.Context, id ir.GoIdentifier) (ir.InterfaceRef, bool, error) {
	if c.err != nil {
		return ir.InterfaceRef{}, false, c.err
	}
	pkgName, ok := c.interfaces[id.Qualified()]
	if !ok {
		return ir.InterfaceRef{}, false, nil
	}
	return ir.InterfaceRef{Name: id, PackageName: pkgName}, true, nil
}

func (c *testCatalog) DeclaredNames(context.Context, string) ([]string, error) {
	return c.names, c.err
}

type testAnnotator struct{}

func (testAnnotator) AnnotateFactory(_ *ir.OpenEnumDescriptor, op *ir.Operation) {
	op.Hints = append(op.Hints, ir.HintJSONCreator)
}

func (testAnnotator) AnnotateRendering(_ *ir.OpenEnumDescriptor, op *ir.Operation) {
	op.Hints = append(op.Hints, ir.HintJSONValue)
}

var testPackage = ir.PackageInfo{Path: "example.com/api", Name: "api"}

func newTestSynthesizer(catalog TypeCatalog) *Synthesizer {
	s := &Synthesizer{
		Names:     testNames{},
		Types:     testResolver{},
		Annotator: testAnnotator{},
	}
	if catalog != nil {
		s.Catalog = catalog
	}
	return s
}

func constantNames(e *ir.OpenEnumDescriptor) []string {
	names := make([]string, len(e.Constants))
	for i, c := range e.Constants {
		names[i] = c.Name
	}
	return names
}
