package ir

import (
	"slices"
	"testing"
)

func statusEnum() *OpenEnumDescriptor {
	return &OpenEnumDescriptor{
		Name:        GoIdentifier{Name: "Status", Package: "example.com/api"},
		Backing:     String(),
		Field:       "value",
		RefType:     "statusRef",
		Constructor: "newStatusRef",
		Table:       "statusTable",
		Factory:     Operation{Name: "StatusOf", Hints: []SerializationHint{HintJSONCreator}},
		Rendering:   Operation{Name: "String", Hints: []SerializationHint{HintJSONValue}},
		ValuesFunc:  "StatusValues",
		Constants: []Constant{
			{Name: "OPEN", Value: "open", Raw: "open"},
			{Name: "CLOSED", Value: "closed", Raw: "closed"},
		},
	}
}

func TestOpenEnumDescriptor_Accessors(t *testing.T) {
	e := statusEnum()
	e.Documentation = Documentation{Summary: "Status of a ticket."}
	e.Source = Source{File: "enums.yaml"}

	if e.Kind() != KindOpenEnum {
		t.Errorf("Kind() = %v, want KindOpenEnum", e.Kind())
	}
	if e.TypeName() != e.Name {
		t.Errorf("TypeName() = %v, want %v", e.TypeName(), e.Name)
	}
	if e.Doc().Summary != "Status of a ticket." {
		t.Errorf("Doc() = %v", e.Doc())
	}
	if e.Src().File != "enums.yaml" {
		t.Errorf("Src() = %v", e.Src())
	}
}

func TestOpenEnumDescriptor_Constant(t *testing.T) {
	e := statusEnum()

	c := e.Constant("CLOSED")
	if c == nil || c.Value != "closed" {
		t.Fatalf("Constant(CLOSED) = %v", c)
	}
	if e.Constant("MISSING") != nil {
		t.Error("Constant of an unknown name should be nil")
	}
}

func TestOpenEnumDescriptor_Idents(t *testing.T) {
	e := statusEnum()

	if got := e.ConstantIdent(e.Constants[0]); got != "Status_OPEN" {
		t.Errorf("ConstantIdent() = %q, want Status_OPEN", got)
	}

	want := []string{"Status", "statusRef", "newStatusRef", "statusTable", "StatusOf", "StatusValues", "Status_OPEN", "Status_CLOSED"}
	if got := e.Idents(); !slices.Equal(got, want) {
		t.Errorf("Idents() = %v, want %v", got, want)
	}
}

func TestOperation_Has(t *testing.T) {
	op := Operation{Name: "StatusOf", Hints: []SerializationHint{HintJSONCreator, HintTextCreator}}

	if !op.Has(HintJSONCreator) || !op.Has(HintTextCreator) {
		t.Error("Has should report attached hints")
	}
	if op.Has(HintJSONValue) {
		t.Error("Has should not report missing hints")
	}
}
