package synth

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/broady/openenum/openenumgen/definition"
	"github.com/broady/openenum/openenumgen/ir"
)

func synthesizeEnum(t *testing.T, s *Synthesizer, def definition.Enum) *ir.OpenEnumDescriptor {
	t.Helper()
	desc, err := s.Synthesize(context.Background(), &def, NewNamespace(testPackage))
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	e, ok := desc.(*ir.OpenEnumDescriptor)
	if !ok {
		t.Fatalf("Synthesize() = %T, want *ir.OpenEnumDescriptor", desc)
	}
	return e
}

func TestSynthesize_OpenClosed(t *testing.T) {
	e := synthesizeEnum(t, newTestSynthesizer(nil), definition.Enum{
		Name:        "status",
		Description: "Status of a ticket.\nTickets start open.",
		Enum:        []any{"open", "closed"},
	})

	if e.Name != (ir.GoIdentifier{Name: "Status", Package: "example.com/api"}) {
		t.Errorf("Name = %v", e.Name)
	}
	if !e.Backing.IsTextual() {
		t.Errorf("Backing = %v, want string", e.Backing.PrimitiveKind)
	}
	if got := constantNames(e); !slices.Equal(got, []string{"OPEN", "CLOSED"}) {
		t.Errorf("constants = %v, want [OPEN CLOSED]", got)
	}
	if e.Constants[0].Value != "open" || e.Constants[1].Value != "closed" {
		t.Errorf("constant values = %v, %v", e.Constants[0].Value, e.Constants[1].Value)
	}

	want := map[string]string{
		"Field":       ValueField,
		"RefType":     "statusRef",
		"Constructor": "newStatusRef",
		"Table":       "statusTable",
		"Factory":     "StatusOf",
		"Rendering":   "String",
		"ValuesFunc":  "StatusValues",
	}
	got := map[string]string{
		"Field":       e.Field,
		"RefType":     e.RefType,
		"Constructor": e.Constructor,
		"Table":       e.Table,
		"Factory":     e.Factory.Name,
		"Rendering":   e.Rendering.Name,
		"ValuesFunc":  e.ValuesFunc,
	}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("%s = %q, want %q", k, got[k], w)
		}
	}

	if !e.Factory.Has(ir.HintJSONCreator) || !e.Rendering.Has(ir.HintJSONValue) {
		t.Errorf("annotator hints missing: factory %v rendering %v", e.Factory.Hints, e.Rendering.Hints)
	}
	if e.Documentation.Summary != "Status of a ticket." {
		t.Errorf("Documentation.Summary = %q", e.Documentation.Summary)
	}
}

func TestSynthesize_CollidingConstantNames(t *testing.T) {
	e := synthesizeEnum(t, newTestSynthesizer(nil), definition.Enum{
		Name: "sep",
		Enum: []any{"a-b", "a_b", "A.B"},
	})

	if got := constantNames(e); !slices.Equal(got, []string{"A_B", "A_B_", "A_B__"}) {
		t.Errorf("constants = %v", got)
	}
	for i, want := range []string{"a-b", "a_b", "A.B"} {
		if e.Constants[i].Value != want {
			t.Errorf("constant %d value = %v, want %q", i, e.Constants[i].Value, want)
		}
	}
}

func TestSynthesize_CustomNames(t *testing.T) {
	e := synthesizeEnum(t, newTestSynthesizer(nil), definition.Enum{
		Name:      "status",
		Enum:      []any{"open", "closed", "on-hold"},
		EnumNames: []string{"Opened", "", "Opened"},
	})

	if got := constantNames(e); !slices.Equal(got, []string{"Opened", "CLOSED", "Opened_"}) {
		t.Errorf("constants = %v", got)
	}
}

func TestSynthesize_EmptyAndNullLiterals(t *testing.T) {
	e := synthesizeEnum(t, newTestSynthesizer(nil), definition.Enum{
		Name: "blank",
		Enum: []any{"", nil, "***", "1st"},
	})

	if got := constantNames(e); !slices.Equal(got, []string{"__EMPTY__", "__EMPTY___", "_1_ST"}) {
		t.Errorf("constants = %v", got)
	}
	if e.Constants[0].Value != "" {
		t.Errorf("empty literal value = %q", e.Constants[0].Value)
	}
}

func TestSynthesize_NumericBacking(t *testing.T) {
	tests := []struct {
		name      string
		def       definition.Enum
		wantKind  ir.PrimitiveKind
		wantNames []string
		wantVals  []any
	}{
		{
			name:      "integer",
			def:       definition.Enum{Name: "code", Type: "integer", Enum: []any{int64(200), 404.0, "500"}},
			wantKind:  ir.PrimitiveInt,
			wantNames: []string{"_200", "_404", "_500"},
			wantVals:  []any{int64(200), int64(404), int64(500)},
		},
		{
			name:      "uint8",
			def:       definition.Enum{Name: "level", Type: "uint8", Enum: []any{int64(1), int64(255)}},
			wantKind:  ir.PrimitiveUint,
			wantNames: []string{"_1", "_255"},
			wantVals:  []any{uint64(1), uint64(255)},
		},
		{
			name:      "number",
			def:       definition.Enum{Name: "ratio", Type: "number", Enum: []any{0.5, int64(2)}},
			wantKind:  ir.PrimitiveFloat,
			wantNames: []string{"_0_5", "_2"},
			wantVals:  []any{0.5, 2.0},
		},
		{
			name:      "boolean",
			def:       definition.Enum{Name: "flag", Type: "boolean", Enum: []any{true, "false"}},
			wantKind:  ir.PrimitiveBool,
			wantNames: []string{"TRUE", "FALSE"},
			wantVals:  []any{true, false},
		},
		{
			name:      "string backing with numbers",
			def:       definition.Enum{Name: "version", Enum: []any{int64(1), 1.5}},
			wantKind:  ir.PrimitiveString,
			wantNames: []string{"_1", "_1_5"},
			wantVals:  []any{"1", "1.5"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := synthesizeEnum(t, newTestSynthesizer(nil), tt.def)
			if e.Backing.PrimitiveKind != tt.wantKind {
				t.Errorf("backing = %v, want %v", e.Backing.PrimitiveKind, tt.wantKind)
			}
			if got := constantNames(e); !slices.Equal(got, tt.wantNames) {
				t.Errorf("constants = %v, want %v", got, tt.wantNames)
			}
			for i, want := range tt.wantVals {
				if e.Constants[i].Value != want {
					t.Errorf("constant %d = %#v, want %#v", i, e.Constants[i].Value, want)
				}
			}
		})
	}
}

func TestSynthesize_DuplicateValueWarning(t *testing.T) {
	ns := NewNamespace(testPackage)
	def := definition.Enum{Name: "dup", Enum: []any{"open", "open"}}
	desc, err := newTestSynthesizer(nil).Synthesize(context.Background(), &def, ns)
	if err != nil {
		t.Fatal(err)
	}
	e := desc.(*ir.OpenEnumDescriptor)
	if got := constantNames(e); !slices.Equal(got, []string{"OPEN", "OPEN_"}) {
		t.Errorf("constants = %v", got)
	}
	if len(ns.Warnings()) != 1 || ns.Warnings()[0].Code != "duplicate_value" {
		t.Errorf("warnings = %+v, want one duplicate_value", ns.Warnings())
	}
}

func TestSynthesize_FloatPrecision(t *testing.T) {
	tests := []struct {
		name         string
		def          definition.Enum
		wantVals     []any
		wantWarnings []string
	}{
		{
			name:     "float32 keeps short literals",
			def:      definition.Enum{Name: "r", Type: "float32", Enum: []any{0.1, 1.25}},
			wantVals: []any{0.1, 1.25},
		},
		{
			name:         "float32 rounds",
			def:          definition.Enum{Name: "r", Type: "float32", Enum: []any{int64(16777217)}},
			wantVals:     []any{16777216.0},
			wantWarnings: []string{"inexact_value"},
		},
		{
			name:         "equal at float32 precision",
			def:          definition.Enum{Name: "r", Type: "float32", Enum: []any{int64(16777216), int64(16777217)}},
			wantVals:     []any{16777216.0, 16777216.0},
			wantWarnings: []string{"inexact_value", "duplicate_value"},
		},
		{
			name:         "float64 rounds large integers",
			def:          definition.Enum{Name: "r", Type: "number", Enum: []any{int64(1<<53 + 1)}},
			wantVals:     []any{float64(1 << 53)},
			wantWarnings: []string{"inexact_value"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := NewNamespace(testPackage)
			desc, err := newTestSynthesizer(nil).Synthesize(context.Background(), &tt.def, ns)
			if err != nil {
				t.Fatal(err)
			}
			e := desc.(*ir.OpenEnumDescriptor)
			for i, want := range tt.wantVals {
				if e.Constants[i].Value != want {
					t.Errorf("constant %d = %#v, want %#v", i, e.Constants[i].Value, want)
				}
			}
			var codes []string
			for _, w := range ns.Warnings() {
				codes = append(codes, w.Code)
			}
			if !slices.Equal(codes, tt.wantWarnings) {
				t.Errorf("warnings = %v, want %v", codes, tt.wantWarnings)
			}
		})
	}
}

func TestSynthesize_ExistingTypeShortCircuits(t *testing.T) {
	catalog := &testCatalog{types: map[string]bool{"example.com/api.Status": true}}
	ns := NewNamespace(testPackage)
	def := definition.Enum{
		Name:   "status",
		GoType: "Status",
		Type:   "no-such-type",
		Enum:   []any{"open"},
	}

	desc, err := newTestSynthesizer(catalog).Synthesize(context.Background(), &def, ns)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	ref, ok := desc.(*ir.ReferenceDescriptor)
	if !ok {
		t.Fatalf("Synthesize() = %T, want *ir.ReferenceDescriptor", desc)
	}
	if ref.Target != (ir.GoIdentifier{Name: "Status", Package: "example.com/api"}) {
		t.Errorf("Target = %v", ref.Target)
	}
	if len(ns.Names()) != 0 {
		t.Errorf("short-circuit declared %v", ns.Names())
	}
}

func TestSynthesize_Errors(t *testing.T) {
	tests := []struct {
		name      string
		def       definition.Enum
		catalog   TypeCatalog
		wantErr   error
		wantState State
	}{
		{
			name:      "predeclared explicit type",
			def:       definition.Enum{Name: "n", GoType: "int", Enum: []any{int64(1)}},
			wantErr:   ErrInvalidBackingType,
			wantState: StateNameResolution,
		},
		{
			name:      "interface without catalog",
			def:       definition.Enum{Name: "s", GoInterfaces: []string{"fmt.Stringer"}, Enum: []any{"a"}},
			wantErr:   ErrUnresolvableInterface,
			wantState: StateTypeAllocated,
		},
		{
			name:      "unknown interface",
			def:       definition.Enum{Name: "s", GoInterfaces: []string{"example.com/api.Missing"}, Enum: []any{"a"}},
			catalog:   &testCatalog{},
			wantErr:   ErrUnresolvableInterface,
			wantState: StateTypeAllocated,
		},
		{
			name:      "unknown backing type",
			def:       definition.Enum{Name: "s", Type: "complex128", Enum: []any{"a"}},
			wantErr:   ErrUnknownBackingType,
			wantState: StateTypeAllocated,
		},
		{
			name:      "literal does not fit backing type",
			def:       definition.Enum{Name: "s", Type: "int8", Enum: []any{int64(1), int64(300)}},
			wantErr:   ErrInvalidLiteral,
			wantState: StateFactoryInstalled,
		},
		{
			name:      "fractional integer",
			def:       definition.Enum{Name: "s", Type: "integer", Enum: []any{1.5}},
			wantErr:   ErrInvalidLiteral,
			wantState: StateFactoryInstalled,
		},
		{
			name:      "boolean from number",
			def:       definition.Enum{Name: "s", Type: "boolean", Enum: []any{int64(1)}},
			wantErr:   ErrInvalidLiteral,
			wantState: StateFactoryInstalled,
		},
		{
			name:      "non-scalar literal",
			def:       definition.Enum{Name: "s", Enum: []any{map[string]any{}}},
			wantErr:   ErrInvalidLiteral,
			wantState: StateFactoryInstalled,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSynthesizer(tt.catalog)
			tt.def.Source = ir.Source{File: "enums.yaml", Line: 4}

			_, err := s.Synthesize(context.Background(), &tt.def, NewNamespace(testPackage))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Synthesize() error = %v, want %v", err, tt.wantErr)
			}
			var serr *Error
			if !errors.As(err, &serr) {
				t.Fatalf("error is %T, want *Error", err)
			}
			if serr.State != tt.wantState {
				t.Errorf("State = %v, want %v", serr.State, tt.wantState)
			}
			if serr.Enum != tt.def.Name {
				t.Errorf("Enum = %q, want %q", serr.Enum, tt.def.Name)
			}
			if !strings.HasPrefix(err.Error(), "enums.yaml:4: enum "+tt.def.Name) {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

func TestSynthesize_Interfaces(t *testing.T) {
	catalog := &testCatalog{interfaces: map[string]string{
		"fmt.Stringer":       "fmt",
		"example.com/api.Op": "api",
	}}
	e := synthesizeEnum(t, newTestSynthesizer(catalog), definition.Enum{
		Name:         "status",
		Enum:         []any{"open"},
		GoInterfaces: []string{"fmt.Stringer", "Op"},
	})

	if len(e.Interfaces) != 2 {
		t.Fatalf("Interfaces = %v", e.Interfaces)
	}
	if e.Interfaces[0].Name.Qualified() != "fmt.Stringer" || e.Interfaces[0].PackageName != "fmt" {
		t.Errorf("Interfaces[0] = %+v", e.Interfaces[0])
	}
	if e.Interfaces[1].Name.Qualified() != "example.com/api.Op" {
		t.Errorf("Interfaces[1] = %+v", e.Interfaces[1])
	}
}

func TestSynthesize_NoAnnotator(t *testing.T) {
	s := newTestSynthesizer(nil)
	s.Annotator = nil
	e := synthesizeEnum(t, s, definition.Enum{Name: "status", Enum: []any{"open"}})
	if len(e.Factory.Hints) != 0 || len(e.Rendering.Hints) != 0 {
		t.Errorf("hints without annotator: %v %v", e.Factory.Hints, e.Rendering.Hints)
	}
}

func TestSynthesize_LogsStateTransitions(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSynthesizer(nil)
	s.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	synthesizeEnum(t, s, definition.Enum{Name: "status", Enum: []any{"open"}})

	out := buf.String()
	var last int
	for _, state := range []State{
		StateNameResolution,
		StateTypeAllocated,
		StateBackingTypeResolved,
		StateFactoryInstalled,
		StateConstantsPopulated,
		StateRenderingInstalled,
	} {
		i := strings.Index(out, "state="+state.String())
		if i < last {
			t.Fatalf("state %v missing or out of order in log:\n%s", state, out)
		}
		last = i
	}
	if strings.Contains(out, "state="+StateExistingTypeFound.String()) {
		t.Error("ExistingTypeFound must not be entered when a type is synthesized")
	}
}

func TestSynthesizeAll(t *testing.T) {
	ns := NewNamespace(testPackage, "Priority")
	defs := []definition.Enum{
		{Name: "status", Enum: []any{"open"}},
		{Name: "priority", Type: "integer", Enum: []any{int64(1)}},
		{Name: "status", Enum: []any{"x"}},
	}

	schema, err := newTestSynthesizer(nil).SynthesizeAll(context.Background(), defs, ns)
	if err != nil {
		t.Fatalf("SynthesizeAll() error = %v", err)
	}
	var names []string
	for _, e := range schema.Enums() {
		names = append(names, e.Name.Name)
	}
	if !slices.Equal(names, []string{"Status", "Priority_", "Status_"}) {
		t.Errorf("enum names = %v", names)
	}
	if errs := schema.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v", errs)
	}
	if schema.Package != testPackage {
		t.Errorf("Package = %v", schema.Package)
	}
}

func TestSynthesizeAll_DerivedIdentifiersDoNotCollide(t *testing.T) {
	tests := []struct {
		name      string
		existing  []string
		defs      []definition.Enum
		wantTypes []string
		wantConst []string
	}{
		{
			name:      "existing factory",
			existing:  []string{"StatusOf"},
			defs:      []definition.Enum{{Name: "status", Enum: []any{"open"}}},
			wantTypes: []string{"Status_"},
			wantConst: []string{"Status__OPEN"},
		},
		{
			name:      "type named after another factory",
			defs:      []definition.Enum{{Name: "status of", Enum: []any{"a"}}, {Name: "status", Enum: []any{"a"}}},
			wantTypes: []string{"StatusOf", "Status_"},
			wantConst: []string{"StatusOf_A", "Status__A"},
		},
		{
			name:      "factory named after an earlier type",
			defs:      []definition.Enum{{Name: "status", Enum: []any{"a"}}, {Name: "status of", Enum: []any{"a"}}},
			wantTypes: []string{"Status", "StatusOf_"},
			wantConst: []string{"Status_A", "StatusOf__A"},
		},
		{
			name: "constants across enums",
			defs: []definition.Enum{
				{Name: "a", GoType: "A", Enum: []any{"x"}, EnumNames: []string{"B_C"}},
				{Name: "ab", GoType: "A_B", Enum: []any{"y"}, EnumNames: []string{"C"}},
			},
			wantTypes: []string{"A", "A_B"},
			wantConst: []string{"A_B_C", "A_B_C_"},
		},
		{
			name:      "constant taken by existing code",
			existing:  []string{"Status_OPEN"},
			defs:      []definition.Enum{{Name: "status", Enum: []any{"open", "closed"}}},
			wantTypes: []string{"Status"},
			wantConst: []string{"Status_OPEN_", "Status_CLOSED"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := NewNamespace(testPackage, tt.existing...)
			schema, err := newTestSynthesizer(nil).SynthesizeAll(context.Background(), tt.defs, ns)
			if err != nil {
				t.Fatalf("SynthesizeAll() error = %v", err)
			}
			var types, consts []string
			for _, e := range schema.Enums() {
				types = append(types, e.Name.Name)
				for _, c := range e.Constants {
					consts = append(consts, e.ConstantIdent(c))
				}
			}
			if !slices.Equal(types, tt.wantTypes) || !slices.Equal(consts, tt.wantConst) {
				t.Errorf("types = %v constants = %v, want %v %v", types, consts, tt.wantTypes, tt.wantConst)
			}
			if errs := schema.Validate(); len(errs) != 0 {
				t.Errorf("Validate() = %v", errs)
			}
			for _, e := range schema.Enums() {
				for _, id := range e.Idents() {
					if slices.Contains(tt.existing, id) {
						t.Errorf("%s redeclares existing %s", e.Name.Name, id)
					}
				}
			}
		})
	}
}

func TestSynthesizeAll_StopsAtFirstError(t *testing.T) {
	defs := []definition.Enum{
		{Name: "ok", Enum: []any{"a"}},
		{Name: "bad", GoType: "string", Enum: []any{"a"}},
		{Name: "never", Enum: []any{"a"}},
	}
	_, err := newTestSynthesizer(nil).SynthesizeAll(context.Background(), defs, NewNamespace(testPackage))
	if !errors.Is(err, ErrInvalidBackingType) {
		t.Errorf("SynthesizeAll() error = %v, want ErrInvalidBackingType", err)
	}
}

func TestSynthesizeAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestSynthesizer(nil).SynthesizeAll(ctx, []definition.Enum{{Name: "a"}}, NewNamespace(testPackage))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("SynthesizeAll() error = %v, want context.Canceled", err)
	}
}
