package gen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/broady/openenum/openenumgen"
	"github.com/broady/openenum/openenumgen/definition"
	"github.com/broady/openenum/openenumgen/golang"
	"github.com/broady/openenum/openenumgen/provider"
)

type Cmd struct {
	Out         string   `arg:"" optional:"" help:"Output directory (default: the --source package directory)."`
	Defs        []string `name:"def" short:"d" help:"Definition file (YAML, TOML or JSON). Repeatable."`
	Source      string   `short:"s" help:"Go package to read //openenum:enum directives from (e.g. \".\")."`
	Package     string   `short:"p" help:"Package name of the generated code."`
	PackagePath string   `help:"Import path of the generated package."`
	JSON        bool     `help:"Generate MarshalJSON and UnmarshalJSON."`
	Text        bool     `help:"Generate MarshalText and UnmarshalText."`
	SingleFile  string   `help:"Write every enum into one file of this name."`
	Manifest    bool     `help:"Write openenum.json next to the generated code."`
	Prune       bool     `help:"Remove stale generated files from the output directory."`
	NoComments  bool     `help:"Omit definition descriptions from generated code."`
	Watch       bool     `short:"w" help:"Watch for changes and regenerate."`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := c.config(logger)
	if err != nil {
		return err
	}
	if !c.Watch {
		return c.generate(ctx, cfg)
	}

	dirs, relevant, err := c.watchTargets(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("watching for changes", "dirs", dirs)
	return watch(ctx, logger, dirs, relevant, func(ctx context.Context) error {
		return c.generate(ctx, cfg)
	})
}

// config merges flags with OPENENUM_* environment defaults. Flags win.
func (c *Cmd) config(logger *slog.Logger) (openenumgen.Config, error) {
	cfg := openenumgen.Config{
		OutDir:      c.Out,
		Package:     c.Package,
		PackagePath: c.PackagePath,
		FileName:    c.SingleFile,
		Manifest:    c.Manifest,
		Prune:       c.Prune,
		NoComments:  c.NoComments,
		Logger:      logger,
	}
	if c.JSON {
		cfg.Annotations = append(cfg.Annotations, golang.AnnotateJSON)
	}
	if c.Text {
		cfg.Annotations = append(cfg.Annotations, golang.AnnotateText)
	}
	if err := openenumgen.LoadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}

	switch {
	case len(c.Defs) == 0 && c.Source == "":
		return cfg, errors.New("one of --def or --source is required")
	case len(c.Defs) > 0 && c.Source != "":
		return cfg, errors.New("--def and --source cannot be combined")
	case cfg.OutDir == "" && c.Source == "":
		return cfg, errors.New("output directory is required with --def")
	}
	return cfg, nil
}

func (c *Cmd) generate(ctx context.Context, cfg openenumgen.Config) error {
	files, err := Load(ctx, c.Defs, c.Source)
	if err != nil {
		return err
	}
	if cfg.OutDir == "" {
		cfg.OutDir = files[0].Path
	}
	outDir, err := filepath.Abs(cfg.OutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	result, err := openenumgen.FromDefinitions(files...).
		WithConfig(cfg).
		ToDir(ctx, outDir)
	if err != nil {
		return err
	}
	cfg.Logger.Info("generated open enums",
		"dir", outDir,
		"types", len(result.Schema.Enums()),
		"files", len(result.Files),
		"warnings", len(result.Warnings))
	return nil
}

// watchTargets returns the directories to watch and a filter for the events
// that should trigger regeneration.
func (c *Cmd) watchTargets(ctx context.Context, cfg openenumgen.Config) ([]string, func(string) bool, error) {
	if c.Source == "" {
		watched := make(map[string]bool)
		var dirs []string
		for _, def := range c.Defs {
			abs, err := filepath.Abs(def)
			if err != nil {
				return nil, nil, err
			}
			watched[abs] = true
			if dir := filepath.Dir(abs); !slices.Contains(dirs, dir) {
				dirs = append(dirs, dir)
			}
		}
		return dirs, func(name string) bool { return watched[name] }, nil
	}

	// The package directory is known only after the directives are parsed.
	f, err := (&provider.SourceProvider{}).Load(ctx, c.Source)
	if err != nil {
		return nil, nil, err
	}
	suffix := cfg.FileSuffix
	if suffix == "" {
		suffix = golang.DefaultFileSuffix
	}
	return []string{f.Path}, func(name string) bool {
		base := filepath.Base(name)
		return filepath.Ext(base) == ".go" &&
			!strings.HasSuffix(base, suffix) && base != cfg.FileName &&
			!strings.HasSuffix(base, "_test.go")
	}, nil
}

// Load reads definitions from files, or from the directives of the Go
// package source.
func Load(ctx context.Context, defs []string, source string) ([]*definition.File, error) {
	if source != "" {
		f, err := (&provider.SourceProvider{}).Load(ctx, source)
		if err != nil {
			return nil, err
		}
		return []*definition.File{f}, nil
	}
	return (&provider.FileProvider{}).Load(ctx, defs...)
}
