// Package ir defines the intermediate representation produced by open enum
// synthesis. Descriptors are target-neutral; target packages such as
// openenumgen/golang turn them into source files.
package ir

import "fmt"

// GoIdentifier represents a named Go entity with package context.
type GoIdentifier struct {
	// Name is the bare identifier, e.g. "Status".
	Name string

	// Package is the fully qualified package path.
	// Empty when the package is the generation target and not yet known.
	Package string
}

// IsZero returns true if the identifier is empty.
func (id GoIdentifier) IsZero() bool {
	return id.Name == "" && id.Package == ""
}

// Qualified returns "pkg/path.Name", or just the name when no package is set.
func (id GoIdentifier) Qualified() string {
	if id.Package == "" {
		return id.Name
	}
	return id.Package + "." + id.Name
}

// Documentation holds documentation attached to a definition.
type Documentation struct {
	// Summary is the first sentence or paragraph.
	Summary string

	// Body is the complete documentation text, including the summary.
	Body string
}

// IsZero returns true if the documentation is empty.
func (d Documentation) IsZero() bool {
	return d.Summary == "" && d.Body == ""
}

// Source represents the location a definition came from.
// For definition files only File is set; directives carry line and column.
type Source struct {
	File   string
	Line   int
	Column int
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

// String formats the location as file:line:column, omitting unknown parts.
func (s Source) String() string {
	switch {
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
}

// Warning represents a non-fatal issue encountered during generation.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Source is the location that triggered the warning, if applicable.
	Source *Source

	// TypeName is the type that triggered the warning, if applicable.
	TypeName string
}

// PackageInfo describes the Go package generated code is written into.
type PackageInfo struct {
	// Path is the import path (e.g., "github.com/foo/bar").
	Path string

	// Name is the package name (e.g., "bar").
	Name string

	// Dir is the filesystem directory, if known.
	Dir string
}

// IsZero returns true if the package info is empty.
func (p PackageInfo) IsZero() bool {
	return p.Path == "" && p.Name == "" && p.Dir == ""
}

// GeneratedHeader is the first line of every generated file. Tools use it to
// tell generated open enums apart from hand-written code.
const GeneratedHeader = "// Code generated by openenum. DO NOT EDIT."
