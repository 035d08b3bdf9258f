// Package definition holds the declarative input to open enum synthesis:
// definition files listing enums, their literals, and their optional backing
// types, custom constant names, Go type names and capability interfaces.
package definition

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/broady/openenum/openenumgen/ir"
)

// File is a decoded definition file.
type File struct {
	// Package is the name of the Go package generated code is written into.
	// Optional; the generator configuration wins when both are set.
	Package string `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty" jsonschema:"description=Go package name for generated code"`

	// PackagePath is the import path of the generated package.
	PackagePath string `json:"packagePath,omitempty" yaml:"packagePath,omitempty" toml:"packagePath,omitempty" jsonschema:"description=Import path of the generated package"`

	// Enums are the enum definitions in file order.
	Enums []Enum `json:"enums" yaml:"enums" toml:"enums" validate:"required,min=1,dive" jsonschema:"required,description=Open enum definitions"`

	// Path is the file the definitions were read from, if any.
	Path string `json:"-" yaml:"-" toml:"-"`
}

// Enum is one enumeration definition.
type Enum struct {
	// Name is the contextual name the generated type name is derived from.
	Name string `json:"name" yaml:"name" toml:"name" validate:"required" jsonschema:"required,description=Name the Go type name is derived from"`

	// Description becomes the generated type's doc comment.
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`

	// Type is the backing value type. Empty means string.
	Type string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty" jsonschema:"description=Backing value type (string integer number boolean or a Go basic type)"`

	// Enum lists the literal values in declaration order. Null entries are skipped.
	Enum []any `json:"enum" yaml:"enum" toml:"enum" jsonschema:"description=Literal values"`

	// EnumNames are optional custom constant names aligned by index with Enum.
	// Blank entries fall back to names derived from the literal.
	EnumNames []string `json:"enumNames,omitempty" yaml:"enumNames,omitempty" toml:"enumNames,omitempty"`

	// GoType is an explicit type name, either bare ("Status") or qualified by
	// import path ("example.com/api.Status").
	GoType string `json:"goType,omitempty" yaml:"goType,omitempty" toml:"goType,omitempty"`

	// GoInterfaces are import-path-qualified interfaces the generated type
	// must implement, e.g. "fmt.Stringer".
	GoInterfaces []string `json:"goInterfaces,omitempty" yaml:"goInterfaces,omitempty" toml:"goInterfaces,omitempty" validate:"dive,required"`

	// Source is where this definition was read from.
	Source ir.Source `json:"-" yaml:"-" toml:"-"`
}

// Literal is one non-null enum value paired with its custom name.
type Literal struct {
	// Value is exactly one of string, int64, uint64, float64 or bool.
	Value any

	// Raw is the value's textual form.
	Raw string

	// CustomName is the custom constant name, possibly blank.
	CustomName string

	// Index is the position of the value in Enum.Enum.
	Index int
}

// Literals returns the enum's non-null literals in declaration order.
func (e *Enum) Literals() ([]Literal, error) {
	lits := make([]Literal, 0, len(e.Enum))
	for i, v := range e.Enum {
		nv, err := Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("enum %s: value %d: %w", e.Name, i, err)
		}
		if nv == nil {
			continue
		}
		lit := Literal{Value: nv, Raw: FormatRaw(nv), Index: i}
		if i < len(e.EnumNames) {
			lit.CustomName = e.EnumNames[i]
		}
		lits = append(lits, lit)
	}
	return lits, nil
}

// Normalize converts a decoded literal to string, int64, uint64, float64 or
// bool. It returns nil for null literals and an error for anything that is
// not a scalar.
func Normalize(v any) (any, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string, int64, bool:
		return v, nil
	case uint64:
		return normalizeUint(v), nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint:
		return normalizeUint(uint64(v)), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case float32:
		return normalizeFloat(float64(v))
	case float64:
		return normalizeFloat(v)
	case json.Number:
		s := v.String()
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return u, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("unsupported literal %q", s)
		}
		return normalizeFloat(f)
	default:
		return nil, fmt.Errorf("unsupported literal of type %T", v)
	}
}

func normalizeUint(u uint64) any {
	if u <= math.MaxInt64 {
		return int64(u)
	}
	return u
}

func normalizeFloat(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("literal %v is not a finite number", f)
	}
	return f, nil
}

// FormatRaw renders a normalized literal as text. Floats use the shortest
// representation that round-trips.
func FormatRaw(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
