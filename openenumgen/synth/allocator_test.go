package synth

import (
	"context"
	"errors"
	"testing"

	"github.com/broady/openenum/openenumgen/definition"
)

func TestClassNameAllocator_Derived(t *testing.T) {
	tests := []struct {
		name     string
		defName  string
		existing []string
		want     string
	}{
		{"simple", "status", nil, "Status"},
		{"snake case", "ticket_status", nil, "TicketStatus"},
		{"illegal characters", "ticket-status", nil, "TicketStatus"},
		{"collides with existing type", "status", []string{"Status"}, "Status_"},
		{"collides case-insensitively", "status", []string{"STATUS"}, "Status_"},
		{"collides with existing factory", "status", []string{"StatusOf"}, "Status_"},
		{"collides with existing table", "status", []string{"STATUSTABLE"}, "Status_"},
		{"collides twice", "status", []string{"Status", "Status_Values"}, "Status__"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := NewNamespace(testPackage, tt.existing...)
			a := &ClassNameAllocator{Names: testNames{}}

			got, err := a.Allocate(context.Background(), &definition.Enum{Name: tt.defName}, ns)
			if err != nil {
				t.Fatalf("Allocate() error = %v", err)
			}
			if got.Existing {
				t.Error("derived names never resolve to existing types")
			}
			if got.Name.Name != tt.want || got.Name.Package != testPackage.Path {
				t.Errorf("Allocate() = %v, want %s", got.Name, tt.want)
			}
			if !containsFold(ns.Names(), tt.want) {
				t.Error("allocated name should be recorded in the namespace")
			}
		})
	}
}

func TestClassNameAllocator_DerivedSequence(t *testing.T) {
	ns := NewNamespace(testPackage)
	a := &ClassNameAllocator{Names: testNames{}}
	ctx := context.Background()

	var got []string
	for _, name := range []string{"status", "Status", "STATUS"} {
		alloc, err := a.Allocate(ctx, &definition.Enum{Name: name}, ns)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, alloc.Name.Name)
	}
	want := []string{"Status", "Status_", "STATUS__"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("allocation %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClassNameAllocator_EmptyName(t *testing.T) {
	a := &ClassNameAllocator{Names: testNames{}}
	_, err := a.Allocate(context.Background(), &definition.Enum{Name: "---"}, NewNamespace(testPackage))
	if !errors.Is(err, ErrInvalidName) {
		t.Errorf("Allocate() error = %v, want ErrInvalidName", err)
	}
}

func TestClassNameAllocator_Explicit(t *testing.T) {
	catalog := &testCatalog{types: map[string]bool{
		"example.com/api.Existing":   true,
		"example.com/other.Priority": true,
	}}

	tests := []struct {
		name         string
		goType       string
		wantName     string
		wantPkg      string
		wantExisting bool
		wantErr      error
		wantWarning  string
	}{
		{"predeclared int", "int", "", "", false, ErrInvalidBackingType, ""},
		{"predeclared string", "string", "", "", false, ErrInvalidBackingType, ""},
		{"predeclared error", "error", "", "", false, ErrInvalidBackingType, ""},
		{"existing bare", "Existing", "Existing", "example.com/api", true, nil, ""},
		{"existing qualified", "example.com/other.Priority", "Priority", "example.com/other", true, nil, ""},
		{"new bare", "Color", "Color", "example.com/api", false, nil, ""},
		{"new local qualified", "example.com/api.Shape", "Shape", "example.com/api", false, nil, ""},
		{"new foreign", "example.com/other.Size", "Size", "example.com/api", false, nil, "foreign_package"},
		{"explicit name is not disambiguated", "status", "status", "example.com/api", false, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := NewNamespace(testPackage, "Status")
			a := &ClassNameAllocator{Names: testNames{}, Catalog: catalog}

			got, err := a.Allocate(context.Background(), &definition.Enum{Name: "x", GoType: tt.goType}, ns)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Allocate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Allocate() error = %v", err)
			}
			if got.Name.Name != tt.wantName || got.Name.Package != tt.wantPkg || got.Existing != tt.wantExisting {
				t.Errorf("Allocate() = %+v, want %s.%s existing=%v", got, tt.wantPkg, tt.wantName, tt.wantExisting)
			}
			var codes []string
			for _, w := range ns.Warnings() {
				codes = append(codes, w.Code)
			}
			if tt.wantWarning == "" && len(codes) > 0 {
				t.Errorf("unexpected warnings %v", codes)
			}
			if tt.wantWarning != "" && (len(codes) != 1 || codes[0] != tt.wantWarning) {
				t.Errorf("warnings = %v, want %s", codes, tt.wantWarning)
			}
		})
	}
}

func TestClassNameAllocator_ExplicitRedeclares(t *testing.T) {
	tests := []struct {
		name     string
		existing string
	}{
		{"values accessor", "ColorValues"},
		{"constructor", "newColorRef"},
		{"non-type declaration", "Color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &ClassNameAllocator{Names: testNames{}, Catalog: &testCatalog{}}
			ns := NewNamespace(testPackage, tt.existing)
			_, err := a.Allocate(context.Background(), &definition.Enum{Name: "x", GoType: "Color"}, ns)
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("Allocate() error = %v, want ErrInvalidName", err)
			}
		})
	}
}

func TestClassNameAllocator_ExplicitTwice(t *testing.T) {
	ns := NewNamespace(testPackage)
	a := &ClassNameAllocator{Names: testNames{}}
	ctx := context.Background()

	first, err := a.Allocate(ctx, &definition.Enum{Name: "a", GoType: "Color"}, ns)
	if err != nil || first.Existing {
		t.Fatalf("first Allocate() = %+v, %v", first, err)
	}
	second, err := a.Allocate(ctx, &definition.Enum{Name: "b", GoType: "Color"}, ns)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Existing || second.Name != first.Name {
		t.Errorf("second Allocate() = %+v, want existing %v", second, first.Name)
	}
}

func TestClassNameAllocator_CatalogFailure(t *testing.T) {
	a := &ClassNameAllocator{Names: testNames{}, Catalog: &testCatalog{err: errors.New("load failed")}}
	_, err := a.Allocate(context.Background(), &definition.Enum{Name: "x", GoType: "Color"}, NewNamespace(testPackage))
	if !errors.Is(err, ErrCatalogFailure) {
		t.Errorf("Allocate() error = %v, want ErrCatalogFailure", err)
	}
}

func TestSplitQualified(t *testing.T) {
	tests := []struct {
		in, pkg, name string
	}{
		{"Status", "", "Status"},
		{"fmt.Stringer", "fmt", "Stringer"},
		{"example.com/api.Status", "example.com/api", "Status"},
		{"gopkg.in/yaml.v3.Marshaler", "gopkg.in/yaml.v3", "Marshaler"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			pkg, name := SplitQualified(tt.in)
			if pkg != tt.pkg || name != tt.name {
				t.Errorf("SplitQualified(%q) = %q, %q; want %q, %q", tt.in, pkg, name, tt.pkg, tt.name)
			}
		})
	}
}

func TestIsPredeclared(t *testing.T) {
	for _, name := range []string{"bool", "int", "uint64", "float32", "string", "byte", "rune", "error", "any"} {
		if !IsPredeclared(name) {
			t.Errorf("IsPredeclared(%q) = false", name)
		}
	}
	for _, name := range []string{"Status", "true", "len", "nil"} {
		if IsPredeclared(name) {
			t.Errorf("IsPredeclared(%q) = true", name)
		}
	}
}
