package golang

import (
	"context"

	"github.com/broady/openenum/openenumgen/ir"
	"github.com/broady/openenum/openenumgen/sink"
)

// RuntimeImportPath is the package generated code interns values with.
const RuntimeImportPath = "github.com/broady/openenum"

// DefaultFileSuffix is appended to the snake-cased type name to form the
// name of a per-enum file.
const DefaultFileSuffix = "_openenum.go"

// Generator transforms IR type descriptors into target language source code.
type Generator interface {
	// Name returns the generator's identifier.
	Name() string

	// Generate produces source code for the given schema.
	Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures generation behavior.
type GenerateOptions struct {
	// Sink receives generated output files.
	Sink sink.OutputSink

	// Config contains generator configuration.
	Config GeneratorConfig
}

// GenerateResult contains generation output metadata.
type GenerateResult struct {
	// Files lists all files that were written.
	Files []OutputFile

	// TypesGenerated is the count of open enums written.
	TypesGenerated int

	// Warnings contains non-fatal issues encountered.
	Warnings []ir.Warning
}

// OutputFile describes a generated file.
type OutputFile struct {
	// Path is the relative path of the generated file.
	Path string

	// Size is the number of bytes written.
	Size int64

	// Types are the enums declared in the file.
	Types []string
}

// GeneratorConfig provides configuration options.
type GeneratorConfig struct {
	// SingleFile, when set, writes every enum into one file of that name.
	// Otherwise each enum gets its own file.
	SingleFile string

	// FileSuffix replaces DefaultFileSuffix for per-enum files.
	FileSuffix string

	// RuntimeImport replaces RuntimeImportPath.
	RuntimeImport string

	// EmitComments includes definition descriptions as doc comments.
	EmitComments bool
}

func (c GeneratorConfig) fileSuffix() string {
	if c.FileSuffix == "" {
		return DefaultFileSuffix
	}
	return c.FileSuffix
}

func (c GeneratorConfig) runtimeImport() string {
	if c.RuntimeImport == "" {
		return RuntimeImportPath
	}
	return c.RuntimeImport
}
