// Package openenumgen generates open enumerations: Go types that preseed a set
// of named values but accept any value of their backing type, with exactly
// one canonical instance per distinct value.
//
// Definitions come from YAML, TOML or JSON files, or from //openenum:enum
// directives in a Go package:
//
//	openenumgen.FromFiles("enums.yaml").
//	    WithAnnotations("json").
//	    ToDir(ctx, "./internal/api")
package openenumgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/broady/openenum/openenumgen/catalog"
	"github.com/broady/openenum/openenumgen/definition"
	"github.com/broady/openenum/openenumgen/golang"
	"github.com/broady/openenum/openenumgen/ir"
	"github.com/broady/openenum/openenumgen/sink"
	"github.com/broady/openenum/openenumgen/synth"
)

// GenerateResult describes one generation run.
type GenerateResult struct {
	// Schema is the synthesized schema for all definitions.
	Schema *ir.Schema

	// Files lists the files written, in write order.
	Files []golang.OutputFile

	// Warnings are the non-fatal issues found by synthesis and generation.
	Warnings []ir.Warning

	// Pruned lists stale generated files that were removed.
	Pruned []string
}

// Generate synthesizes every enum of files into one package and writes the
// generated code to cfg.OutDir.
func Generate(ctx context.Context, files []*definition.File, cfg *Config) (*GenerateResult, error) {
	if cfg.OutDir == "" {
		return nil, errors.New("OutDir is required")
	}
	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return generate(ctx, files, applyConfigDefaults(cfg), sink.NewFilesystemSink(cfg.OutDir))
}

// Synthesize runs synthesis without generating code.
func Synthesize(ctx context.Context, files []*definition.File, cfg *Config) (*ir.Schema, error) {
	cfg = applyConfigDefaults(cfg)
	pkg, err := resolvePackage(ctx, files, cfg)
	if err != nil {
		return nil, err
	}
	return synthesize(ctx, files, pkg, cfg)
}

func generate(ctx context.Context, files []*definition.File, cfg *Config, out sink.OutputSink) (*GenerateResult, error) {
	pkg, err := resolvePackage(ctx, files, cfg)
	if err != nil {
		return nil, err
	}
	schema, err := synthesize(ctx, files, pkg, cfg)
	if err != nil {
		return nil, err
	}

	gen := &golang.GoGenerator{}
	genResult, err := gen.Generate(ctx, schema, golang.GenerateOptions{
		Sink: out,
		Config: golang.GeneratorConfig{
			SingleFile:   cfg.FileName,
			FileSuffix:   cfg.FileSuffix,
			EmitComments: !cfg.NoComments,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate Go: %w", err)
	}

	result := &GenerateResult{
		Schema:   schema,
		Files:    genResult.Files,
		Warnings: slices.Concat(schema.Warnings, genResult.Warnings),
	}

	if cfg.Manifest {
		file, err := writeManifest(ctx, out, schema)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, file)
	}

	if cfg.Prune {
		if pruner, ok := out.(sink.Pruner); ok {
			keep := make([]string, len(result.Files))
			for i, f := range result.Files {
				keep[i] = f.Path
			}
			suffix := cfg.FileSuffix
			if suffix == "" {
				suffix = golang.DefaultFileSuffix
			}
			result.Pruned, err = pruner.Prune(ctx, keep, func(path string, content []byte) bool {
				return (strings.HasSuffix(path, suffix) || path == cfg.FileName) &&
					bytes.HasPrefix(content, []byte(ir.GeneratedHeader))
			})
			if err != nil {
				return nil, fmt.Errorf("failed to prune stale files: %w", err)
			}
		}
	}

	for _, w := range result.Warnings {
		attrs := []any{"code", w.Code, "message", w.Message}
		if w.TypeName != "" {
			attrs = append(attrs, "type", w.TypeName)
		}
		if w.Source != nil {
			attrs = append(attrs, "source", w.Source.String())
		}
		cfg.Logger.Warn("generation warning", attrs...)
	}
	for _, f := range result.Files {
		cfg.Logger.Debug("wrote file", "path", f.Path, "bytes", f.Size, "types", f.Types)
	}
	for _, p := range result.Pruned {
		cfg.Logger.Info("removed stale file", "path", p)
	}
	return result, nil
}

// synthesize builds one schema for every enum in files. Enum names are unique
// across all files. Each failing definition file is reported; nothing is
// synthesized if any fails.
func synthesize(ctx context.Context, files []*definition.File, pkg ir.PackageInfo, cfg *Config) (*ir.Schema, error) {
	var existing []string
	if pkg.Path != "" {
		names, err := cfg.Catalog.DeclaredNames(ctx, pkg.Path)
		if err != nil {
			return nil, fmt.Errorf("list declared names of %s: %w", pkg.Path, err)
		}
		existing = names
	}

	annotator, err := golang.NewAnnotator(cfg.Annotations...)
	if err != nil {
		return nil, err
	}
	s := &synth.Synthesizer{
		Names:     golang.NameHelper{},
		Types:     golang.TypeResolver{},
		Catalog:   cfg.Catalog,
		Annotator: annotator,
		Logger:    cfg.Logger,
	}

	ns := synth.NewNamespace(pkg, existing...)
	schema := &ir.Schema{Package: pkg}
	var errs []error
	for _, f := range files {
		for i := range f.Enums {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			desc, err := s.Synthesize(ctx, &f.Enums[i], ns)
			if err != nil {
				if f.Path != "" {
					err = fmt.Errorf("%s: %w", f.Path, err)
				}
				errs = append(errs, err)
				break
			}
			schema.AddType(desc)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	schema.Warnings = ns.Warnings()

	cfg.Logger.Debug("synthesized schema", "package", pkg.Path, "types", len(schema.Types), "warnings", len(schema.Warnings))
	return schema, nil
}

// resolvePackage determines the package generated code belongs to: the
// configuration first, then the definition files, then the Go package in
// OutDir. Without an import path existing types are not consulted.
func resolvePackage(ctx context.Context, files []*definition.File, cfg *Config) (ir.PackageInfo, error) {
	if len(files) == 0 {
		return ir.PackageInfo{}, errors.New("no definition files")
	}
	pkg := ir.PackageInfo{Name: cfg.Package, Path: cfg.PackagePath, Dir: cfg.OutDir}
	for _, f := range files {
		if cfg.Package == "" {
			if err := agree(&pkg.Name, f.Package, "package name", f.Path); err != nil {
				return pkg, err
			}
		}
		if cfg.PackagePath == "" {
			if err := agree(&pkg.Path, f.PackagePath, "package path", f.Path); err != nil {
				return pkg, err
			}
		}
	}
	if pkg.Name != "" && pkg.Path != "" {
		return pkg, nil
	}

	var found ir.PackageInfo
	var err error
	if cfg.OutDir == "" {
		err = errors.New("no output directory")
	} else {
		found, err = catalog.ResolveDir(ctx, cfg.OutDir)
	}
	if err != nil {
		if pkg.Name == "" {
			return pkg, fmt.Errorf("package name is required: %w", err)
		}
		cfg.Logger.Debug("package path unknown", "dir", cfg.OutDir, "error", err)
		return pkg, nil
	}
	if pkg.Name == "" {
		pkg.Name = found.Name
	}
	if pkg.Path == "" {
		pkg.Path = found.Path
	}
	return pkg, nil
}

// agree sets *dst to v, or fails if both are set and differ.
func agree(dst *string, v, what, file string) error {
	if v == "" || *dst == v {
		return nil
	}
	if *dst == "" {
		*dst = v
		return nil
	}
	return fmt.Errorf("%s: %s %q conflicts with %q", file, what, v, *dst)
}

func writeManifest(ctx context.Context, out sink.OutputSink, schema *ir.Schema) (golang.OutputFile, error) {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return golang.OutputFile{}, fmt.Errorf("failed to encode manifest: %w", err)
	}
	data = append(data, '\n')
	if err := out.WriteFile(ctx, ManifestFile, data); err != nil {
		return golang.OutputFile{}, fmt.Errorf("write %s: %w", ManifestFile, err)
	}
	return golang.OutputFile{Path: ManifestFile, Size: int64(len(data))}, nil
}
