package ir

import (
	"fmt"
	"go/token"
	"strings"
)

// Schema is the result of synthesizing every enum of one definition set.
type Schema struct {
	// Package is the Go package generated code is written into.
	Package PackageInfo

	// Types contains one descriptor per definition, in definition order.
	// Synthesized enums are OpenEnumDescriptors; definitions that resolved to
	// an existing type are ReferenceDescriptors and produce no output.
	Types []TypeDescriptor

	// Warnings contains non-fatal issues encountered during synthesis.
	Warnings []Warning
}

// AddType adds a named type descriptor to the schema.
func (s *Schema) AddType(t TypeDescriptor) {
	s.Types = append(s.Types, t)
}

// AddWarning adds a warning to the schema.
func (s *Schema) AddWarning(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// FindType looks up a type by name. Returns nil if not found.
func (s *Schema) FindType(name GoIdentifier) TypeDescriptor {
	for _, t := range s.Types {
		if t.TypeName() == name {
			return t
		}
	}
	return nil
}

// Enums returns the synthesized enums, skipping references.
func (s *Schema) Enums() []*OpenEnumDescriptor {
	var enums []*OpenEnumDescriptor
	for _, t := range s.Types {
		if e, ok := t.(*OpenEnumDescriptor); ok {
			enums = append(enums, e)
		}
	}
	return enums
}

// Validate checks the schema for structural issues.
// Returns all validation errors found (not just the first).
func (s *Schema) Validate() []error {
	var errors []*ValidationError

	// Type names must be unique case-insensitively: generated file names are
	// derived from them and case-insensitive filesystems would merge them.
	var typeNames []string
	for _, e := range s.Enums() {
		for _, existing := range typeNames {
			if strings.EqualFold(existing, e.Name.Name) {
				errors = append(errors, &ValidationError{
					Code:    "duplicate_type",
					Message: "duplicate type name: " + e.Name.Name + " (conflicts with " + existing + ")",
				})
			}
		}
		typeNames = append(typeNames, e.Name.Name)
	}

	// Every package-level identifier must be legal and declared once.
	declared := make(map[string]string)
	for _, e := range s.Enums() {
		for _, ident := range e.Idents() {
			if !token.IsIdentifier(ident) {
				errors = append(errors, &ValidationError{
					Code:    "invalid_identifier",
					Message: fmt.Sprintf("enum %s declares invalid identifier %q", e.Name.Name, ident),
				})
				continue
			}
			if owner, ok := declared[ident]; ok {
				errors = append(errors, &ValidationError{
					Code:    "duplicate_identifier",
					Message: fmt.Sprintf("identifier %s declared by both %s and %s", ident, owner, e.Name.Name),
				})
				continue
			}
			declared[ident] = e.Name.Name
		}

		if e.Backing == nil {
			errors = append(errors, &ValidationError{
				Code:    "missing_backing_type",
				Message: "enum " + e.Name.Name + " has no backing type",
			})
			continue
		}
		for _, c := range e.Constants {
			if !valueMatchesBacking(c.Value, e.Backing) {
				errors = append(errors, &ValidationError{
					Code:    "invalid_constant_value",
					Message: fmt.Sprintf("constant %s.%s holds %T, not a %s value", e.Name.Name, c.Name, c.Value, e.Backing.PrimitiveKind),
				})
			}
		}
	}

	// Convert ValidationErrors to regular errors
	var result []error
	for _, e := range errors {
		result = append(result, e)
	}
	return result
}

// valueMatchesBacking reports whether v has the Go type synthesis converts
// literals of backing kind p to.
func valueMatchesBacking(v any, p *PrimitiveDescriptor) bool {
	switch v.(type) {
	case string:
		return p.PrimitiveKind == PrimitiveString
	case int64:
		return p.PrimitiveKind == PrimitiveInt
	case uint64:
		return p.PrimitiveKind == PrimitiveUint
	case float64:
		return p.PrimitiveKind == PrimitiveFloat
	case bool:
		return p.PrimitiveKind == PrimitiveBool
	default:
		return false
	}
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
