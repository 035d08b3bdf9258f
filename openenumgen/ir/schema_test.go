package ir

import (
	"strings"
	"testing"
)

func TestSchema_AddType(t *testing.T) {
	s := &Schema{}

	s.AddType(statusEnum())
	s.AddType(Ref("Priority", "example.com/api"))

	if len(s.Types) != 2 {
		t.Errorf("Schema.Types length = %d, want 2", len(s.Types))
	}
	if got := len(s.Enums()); got != 1 {
		t.Errorf("Enums() length = %d, want 1", got)
	}
}

func TestSchema_AddWarning(t *testing.T) {
	s := &Schema{}

	s.AddWarning(Warning{Code: "W001", Message: "warning 1"})
	s.AddWarning(Warning{Code: "W002", Message: "warning 2"})

	if len(s.Warnings) != 2 {
		t.Errorf("Schema.Warnings length = %d, want 2", len(s.Warnings))
	}
}

func TestSchema_FindType(t *testing.T) {
	s := &Schema{}
	s.AddType(statusEnum())

	found := s.FindType(GoIdentifier{Name: "Status", Package: "example.com/api"})
	if found == nil {
		t.Fatal("FindType should find Status")
	}

	if s.FindType(GoIdentifier{Name: "NotExist", Package: "example.com/api"}) != nil {
		t.Error("FindType should return nil for non-existing type")
	}
}

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name     string
		schema   func() *Schema
		wantCode string
	}{
		{
			name: "valid",
			schema: func() *Schema {
				return &Schema{Types: []TypeDescriptor{statusEnum()}}
			},
		},
		{
			name: "duplicate type differing only by case",
			schema: func() *Schema {
				other := statusEnum()
				other.Name.Name = "STATUS"
				other.RefType, other.Constructor, other.Table = "sRef", "newSRef", "sTable"
				other.Factory.Name, other.ValuesFunc = "SOf", "SValues"
				return &Schema{Types: []TypeDescriptor{statusEnum(), other}}
			},
			wantCode: "duplicate_type",
		},
		{
			name: "colliding package-level identifiers",
			schema: func() *Schema {
				// A.B_C and A_B.C both emit A_B_C.
				a := statusEnum()
				a.Name.Name, a.RefType, a.Constructor, a.Table = "A", "aRef", "newARef", "aTable"
				a.Factory.Name, a.ValuesFunc = "AOf", "AValues"
				a.Constants = []Constant{{Name: "B_C", Value: "x"}}
				ab := statusEnum()
				ab.Name.Name, ab.RefType, ab.Constructor, ab.Table = "A_B", "abRef", "newABRef", "abTable"
				ab.Factory.Name, ab.ValuesFunc = "A_BOf", "A_BValues"
				ab.Constants = []Constant{{Name: "C", Value: "y"}}
				return &Schema{Types: []TypeDescriptor{a, ab}}
			},
			wantCode: "duplicate_identifier",
		},
		{
			name: "illegal custom constant name",
			schema: func() *Schema {
				e := statusEnum()
				e.Constants = append(e.Constants, Constant{Name: "not-legal", Value: "x"})
				return &Schema{Types: []TypeDescriptor{e}}
			},
			wantCode: "invalid_identifier",
		},
		{
			name: "constant value of the wrong type",
			schema: func() *Schema {
				e := statusEnum()
				e.Constants = append(e.Constants, Constant{Name: "ONE", Value: int64(1)})
				return &Schema{Types: []TypeDescriptor{e}}
			},
			wantCode: "invalid_constant_value",
		},
		{
			name: "missing backing type",
			schema: func() *Schema {
				e := statusEnum()
				e.Backing = nil
				return &Schema{Types: []TypeDescriptor{e}}
			},
			wantCode: "missing_backing_type",
		},
		{
			name: "references are not validated as declarations",
			schema: func() *Schema {
				return &Schema{Types: []TypeDescriptor{statusEnum(), Ref("Status", "example.com/other")}}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.schema().Validate()
			if tt.wantCode == "" {
				if len(errs) != 0 {
					t.Fatalf("Validate() = %v, want no errors", errs)
				}
				return
			}
			var codes []string
			for _, err := range errs {
				ve, ok := err.(*ValidationError)
				if !ok {
					t.Fatalf("error %v is %T, want *ValidationError", err, err)
				}
				codes = append(codes, ve.Code)
			}
			if !strings.Contains(strings.Join(codes, ","), tt.wantCode) {
				t.Errorf("Validate() codes = %v, want %s", codes, tt.wantCode)
			}
		})
	}
}
