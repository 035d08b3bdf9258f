package openenumgen

import (
	"context"

	"github.com/broady/openenum/openenumgen/definition"
	"github.com/broady/openenum/openenumgen/ir"
	"github.com/broady/openenum/openenumgen/provider"
	"github.com/broady/openenum/openenumgen/sink"
	"github.com/broady/openenum/openenumgen/synth"
)

// Generator provides a fluent API for code generation.
// Create with FromFiles, FromDefinitions or FromPackage and configure with
// method chaining.
//
// Example:
//
//	openenumgen.FromPackage(".").
//	    WithAnnotations("json", "text").
//	    SingleFile("enums_openenum.go").
//	    ToDir(ctx, ".")
type Generator struct {
	paths   []string
	files   []*definition.File
	pattern string
	cfg     Config
}

// FromFiles creates a Generator reading YAML, TOML or JSON definition files.
func FromFiles(paths ...string) *Generator {
	return &Generator{paths: paths}
}

// FromDefinitions creates a Generator for already decoded definitions.
func FromDefinitions(files ...*definition.File) *Generator {
	return &Generator{files: files}
}

// FromPackage creates a Generator reading //openenum:enum directives from the
// Go package matching pattern. Output goes into that package unless ToDir
// names another directory.
func FromPackage(pattern string) *Generator {
	return &Generator{pattern: pattern}
}

// WithConfig replaces the configuration wholesale. Later builder calls
// still apply on top of it.
func (g *Generator) WithConfig(cfg Config) *Generator {
	g.cfg = cfg
	return g
}

// WithAnnotations adds serialization methods for the named formats
// ("json", "text").
func (g *Generator) WithAnnotations(formats ...string) *Generator {
	g.cfg.Annotations = append(g.cfg.Annotations, formats...)
	return g
}

// SingleFile writes every enum into one file of the given name.
func (g *Generator) SingleFile(name string) *Generator {
	g.cfg.FileName = name
	return g
}

// Package sets the generated package's name and import path.
func (g *Generator) Package(name, path string) *Generator {
	g.cfg.Package = name
	g.cfg.PackagePath = path
	return g
}

// WithCatalog sets how existing types are resolved.
func (g *Generator) WithCatalog(c synth.TypeCatalog) *Generator {
	g.cfg.Catalog = c
	return g
}

// WithManifest enables openenum.json output.
func (g *Generator) WithManifest() *Generator {
	g.cfg.Manifest = true
	return g
}

// WithPrune removes stale generated files from the output directory.
func (g *Generator) WithPrune() *Generator {
	g.cfg.Prune = true
	return g
}

// ToDir generates files into dir. For FromPackage an empty dir means the
// source package's directory.
// This is a terminal operation that writes files to disk.
func (g *Generator) ToDir(ctx context.Context, dir string) (*GenerateResult, error) {
	files, err := g.load(ctx)
	if err != nil {
		return nil, err
	}
	cfg := g.cfg
	cfg.OutDir = dir
	if dir == "" && g.pattern != "" {
		cfg.OutDir = files[0].Path
	}
	return Generate(ctx, files, &cfg)
}

// Synthesize loads the definitions and synthesizes them without generating
// code.
func (g *Generator) Synthesize(ctx context.Context) (*ir.Schema, error) {
	files, err := g.load(ctx)
	if err != nil {
		return nil, err
	}
	return Synthesize(ctx, files, &g.cfg)
}

// Generate returns generated files in memory without writing to disk.
// Use ToDir to write files to disk instead.
func (g *Generator) Generate(ctx context.Context) (*GenerateResult, *sink.MemorySink, error) {
	files, err := g.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	mem := sink.NewMemorySink()
	cfg := g.cfg
	cfg.OutDir = ""
	cfg.Prune = false
	result, err := generate(ctx, files, applyConfigDefaults(&cfg), mem)
	if err != nil {
		return nil, nil, err
	}
	return result, mem, nil
}

// load reads the definitions the Generator was created with.
func (g *Generator) load(ctx context.Context) ([]*definition.File, error) {
	switch {
	case g.pattern != "":
		f, err := (&provider.SourceProvider{Dir: g.cfg.Dir}).Load(ctx, g.pattern)
		if err != nil {
			return nil, err
		}
		return []*definition.File{f}, nil
	case len(g.paths) > 0:
		return (&provider.FileProvider{}).Load(ctx, g.paths...)
	default:
		return g.files, nil
	}
}
