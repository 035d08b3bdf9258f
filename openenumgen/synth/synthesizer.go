package synth

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/broady/openenum/openenumgen/definition"
	"github.com/broady/openenum/openenumgen/ir"
)

// ValueField is the name of the backing field of every synthesized type.
const ValueField = "value"

// Synthesizer builds open enum descriptors from definitions.
type Synthesizer struct {
	Names NameHelper
	Types TypeResolver

	// Catalog resolves existing types and capability interfaces.
	// Without one no type ever short-circuits and interfaces cannot be declared.
	Catalog TypeCatalog

	// Annotator is optional.
	Annotator Annotator

	// Logger receives a debug record per state transition. Defaults to slog.Default().
	Logger *slog.Logger
}

func (s *Synthesizer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Synthesize runs synthesis for one definition. It returns a
// *ir.ReferenceDescriptor when the requested type already exists and an
// *ir.OpenEnumDescriptor otherwise. Errors are always *Error.
func (s *Synthesizer) Synthesize(ctx context.Context, def *definition.Enum, ns *Namespace) (ir.TypeDescriptor, error) {
	run := &synthesis{s: s, def: def, ns: ns, state: StateNameResolution}
	desc, err := run.exec(ctx)
	if err != nil {
		if serr, ok := err.(*Error); ok {
			serr.Enum = def.Name
			serr.State = run.state
			serr.Source = def.Source
		}
		s.logger().Debug("open enum synthesis failed", "enum", def.Name, "state", run.state, "error", err)
		return nil, err
	}
	return desc, nil
}

// SynthesizeAll synthesizes defs in order into one schema, stopping at the
// first failure.
func (s *Synthesizer) SynthesizeAll(ctx context.Context, defs []definition.Enum, ns *Namespace) (*ir.Schema, error) {
	schema := &ir.Schema{Package: ns.Package}
	for i := range defs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		desc, err := s.Synthesize(ctx, &defs[i], ns)
		if err != nil {
			return nil, err
		}
		schema.AddType(desc)
	}
	schema.Warnings = append(schema.Warnings, ns.Warnings()...)
	return schema, nil
}

// synthesis is the state of one Synthesize call.
type synthesis struct {
	s     *Synthesizer
	def   *definition.Enum
	ns    *Namespace
	state State
	enum  *ir.OpenEnumDescriptor
}

func (r *synthesis) enter(state State, attrs ...any) {
	r.state = state
	r.s.logger().Debug("open enum state", append([]any{"enum", r.def.Name, "state", state}, attrs...)...)
}

func (r *synthesis) exec(ctx context.Context) (ir.TypeDescriptor, error) {
	r.enter(StateNameResolution, "goType", r.def.GoType)
	alloc := &ClassNameAllocator{Names: r.s.Names, Catalog: r.s.Catalog}
	name, err := alloc.Allocate(ctx, r.def, r.ns)
	if err != nil {
		return nil, err
	}
	if name.Existing {
		r.enter(StateExistingTypeFound, "type", name.Name.Qualified())
		return &ir.ReferenceDescriptor{Target: name.Name, Source: r.def.Source}, nil
	}

	r.enter(StateTypeAllocated, "type", name.Name.Name)
	r.enum = &ir.OpenEnumDescriptor{
		Name:          name.Name,
		Field:         ValueField,
		Documentation: documentation(r.def.Description),
		Source:        r.def.Source,
	}
	if err := r.resolveInterfaces(ctx); err != nil {
		return nil, err
	}

	backing, err := r.s.Types.ResolveBacking(r.def.Type)
	if err != nil {
		return nil, &Error{Code: CodeUnknownBackingType, Message: fmt.Sprintf("backing type %q", r.def.Type), Err: err}
	}
	r.enum.Backing = backing
	r.enter(StateBackingTypeResolved, "backing", backing.PrimitiveKind, "bits", backing.BitSize)

	r.installFactory()
	r.enter(StateFactoryInstalled, "factory", r.enum.Factory.Name, "table", r.enum.Table)

	if err := r.populateConstants(); err != nil {
		return nil, err
	}
	r.enter(StateConstantsPopulated, "constants", len(r.enum.Constants))

	r.enum.Rendering = ir.Operation{Name: "String"}
	if r.s.Annotator != nil {
		r.s.Annotator.AnnotateRendering(r.enum, &r.enum.Rendering)
	}
	r.ns.declare(r.enum.Idents()[1:]...)
	r.enter(StateRenderingInstalled)
	return r.enum, nil
}

func (r *synthesis) resolveInterfaces(ctx context.Context) error {
	for _, qualified := range r.def.GoInterfaces {
		pkgPath, name := SplitQualified(qualified)
		if pkgPath == "" {
			pkgPath = r.ns.Package.Path
		}
		id := ir.GoIdentifier{Name: name, Package: pkgPath}
		if r.s.Catalog == nil {
			return &Error{Code: CodeUnresolvableInterface, Message: fmt.Sprintf("cannot resolve interface %s without a type catalog", qualified)}
		}
		ref, ok, err := r.s.Catalog.LookupInterface(ctx, id)
		if err != nil {
			return &Error{Code: CodeUnresolvableInterface, Message: "resolving interface " + qualified, Err: err}
		}
		if !ok {
			return &Error{Code: CodeUnresolvableInterface, Message: fmt.Sprintf("interface %s not found", qualified)}
		}
		r.enum.Interfaces = append(r.enum.Interfaces, ref)
	}
	return nil
}

func (r *synthesis) installFactory() {
	ids := TypeIdents(r.enum.Name.Name)
	r.enum.RefType = ids[1]
	r.enum.Constructor = ids[2]
	r.enum.Table = ids[3]
	r.enum.Factory = ir.Operation{Name: ids[4]}
	r.enum.ValuesFunc = ids[5]
	if r.s.Annotator != nil {
		r.s.Annotator.AnnotateFactory(r.enum, &r.enum.Factory)
	}
}

func (r *synthesis) populateConstants() error {
	lits, err := r.def.Literals()
	if err != nil {
		return &Error{Code: CodeInvalidLiteral, Message: "reading literals", Err: err}
	}
	namer := ConstantNamer{Names: r.s.Names}
	prefix := r.enum.Name.Name + "_"
	taken := append(slices.Clone(r.ns.Names()), TypeIdents(r.enum.Name.Name)...)
	prefixed := func(c string) []string { return []string{prefix + c} }
	seen := make(map[any]string)
	for _, lit := range lits {
		value, err := convertLiteral(lit.Value, r.enum.Backing)
		if err != nil {
			return &Error{
				Code:    CodeInvalidLiteral,
				Message: fmt.Sprintf("value %d (%q) for %s backing", lit.Index, lit.Raw, r.enum.Backing.PrimitiveKind),
				Err:     err,
			}
		}
		name := makeUniqueIdents(namer.Name(lit.Raw, lit.CustomName), taken, prefixed)
		taken = append(taken, prefix+name)
		if inexact(lit.Value, value) {
			r.ns.warn(ir.Warning{
				Code:     "inexact_value",
				Message:  fmt.Sprintf("%s %q is %s at float%d precision", name, lit.Raw, definition.FormatRaw(value), bitSize(r.enum.Backing)),
				Source:   sourcePtr(r.def.Source),
				TypeName: r.enum.Name.Name,
			})
		}
		if prev, dup := seen[value]; dup {
			r.ns.warn(ir.Warning{
				Code:     "duplicate_value",
				Message:  fmt.Sprintf("%s and %s share the value %q and are the same instance", prev, name, lit.Raw),
				Source:   sourcePtr(r.def.Source),
				TypeName: r.enum.Name.Name,
			})
		} else {
			seen[value] = name
		}
		r.enum.Constants = append(r.enum.Constants, ir.Constant{Name: name, Value: value, Raw: lit.Raw})
	}
	return nil
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// documentation splits a description into summary and body. The summary is
// the first line.
func documentation(desc string) ir.Documentation {
	if desc == "" {
		return ir.Documentation{}
	}
	summary := desc
	for i, r := range desc {
		if r == '\n' {
			summary = desc[:i]
			break
		}
	}
	return ir.Documentation{Summary: summary, Body: desc}
}
