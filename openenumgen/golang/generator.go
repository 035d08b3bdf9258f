package golang

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"golang.org/x/tools/imports"

	"github.com/broady/openenum/openenumgen/ir"
)

// GoGenerator writes open enums as Go source files.
type GoGenerator struct{}

// Name returns "go".
func (g *GoGenerator) Name() string {
	return "go"
}

// Generate writes one file per enum, or a single file when
// Config.SingleFile is set. References to existing types are skipped.
func (g *GoGenerator) Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error) {
	if schema == nil {
		return nil, errors.New("schema is nil")
	}
	if opts.Sink == nil {
		return nil, errors.New("output sink is nil")
	}
	if schema.Package.Name == "" {
		return nil, errors.New("schema package name is empty")
	}
	if errs := schema.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid schema: %w", errors.Join(errs...))
	}

	// Every identifier the schema declares is off limits for import names.
	var reserved []string
	for _, en := range schema.Enums() {
		reserved = append(reserved, en.Idents()...)
	}

	var groups [][]*ir.OpenEnumDescriptor
	var paths []string
	enums := schema.Enums()
	if opts.Config.SingleFile != "" {
		if len(enums) > 0 {
			groups = append(groups, enums)
			paths = append(paths, opts.Config.SingleFile)
		}
	} else {
		for _, en := range enums {
			groups = append(groups, []*ir.OpenEnumDescriptor{en})
			paths = append(paths, snakeCase(en.Name.Name)+opts.Config.fileSuffix())
		}
	}

	result := &GenerateResult{}
	for i, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, warnings, err := g.renderFile(schema.Package, group, opts.Config, reserved)
		if err != nil {
			return nil, err
		}
		result.Warnings = append(result.Warnings, warnings...)

		formatted, err := imports.Process(paths[i], src, &imports.Options{
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
			FormatOnly: true,
		})
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", paths[i], err)
		}
		if err := opts.Sink.WriteFile(ctx, paths[i], formatted); err != nil {
			return nil, fmt.Errorf("write %s: %w", paths[i], err)
		}

		file := OutputFile{Path: paths[i], Size: int64(len(formatted))}
		for _, en := range group {
			file.Types = append(file.Types, en.Name.Name)
		}
		result.Files = append(result.Files, file)
		result.TypesGenerated += len(group)
	}
	return result, nil
}

// renderFile produces the unformatted source of one file.
func (g *GoGenerator) renderFile(pkg ir.PackageInfo, enums []*ir.OpenEnumDescriptor, cfg GeneratorConfig, reserved []string) ([]byte, []ir.Warning, error) {
	emitter := NewEmitter(pkg.Path, cfg, reserved...)
	var body bytes.Buffer
	var warnings []ir.Warning
	for _, en := range enums {
		w, err := emitter.EmitType(&body, en)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, w...)
	}

	var buf bytes.Buffer
	buf.WriteString(ir.GeneratedHeader + "\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg.Name)
	emitter.WriteImports(&buf)
	buf.Write(body.Bytes())
	return buf.Bytes(), warnings, nil
}
