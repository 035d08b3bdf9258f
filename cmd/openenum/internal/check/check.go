package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/openenum/cmd/openenum/internal/gen"
	"github.com/broady/openenum/openenumgen"
	"github.com/broady/openenum/openenumgen/ir"
)

type Cmd struct {
	Defs        []string `name:"def" short:"d" help:"Definition file (YAML, TOML or JSON). Repeatable."`
	Source      string   `short:"s" help:"Go package to read //openenum:enum directives from."`
	Package     string   `short:"p" help:"Package name of the generated code."`
	PackagePath string   `help:"Import path of the generated package."`

	out io.Writer
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	if len(c.Defs) == 0 && c.Source == "" {
		return errors.New("one of --def or --source is required")
	}
	files, err := gen.Load(ctx, c.Defs, c.Source)
	if err != nil {
		return err
	}

	cfg := openenumgen.Config{
		Package:     c.Package,
		PackagePath: c.PackagePath,
		Logger:      logger,
	}
	if err := openenumgen.LoadEnv(&cfg); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if cfg.OutDir == "" && c.Source != "" {
		cfg.OutDir = files[0].Path
	}

	schema, err := openenumgen.FromDefinitions(files...).
		WithConfig(cfg).
		Synthesize(ctx)
	if err != nil {
		return err
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	report(out, schema)
	return nil
}

// report prints what generation would produce.
func report(w io.Writer, schema *ir.Schema) {
	var enums, constants, refs int
	for _, t := range schema.Types {
		switch t := t.(type) {
		case *ir.OpenEnumDescriptor:
			enums++
			constants += len(t.Constants)
		case *ir.ReferenceDescriptor:
			refs++
		}
	}
	fmt.Fprintf(w, "✓ %d enums, %d constants\n", enums, constants)
	if refs > 0 {
		fmt.Fprintf(w, "✓ %d existing types reused\n", refs)
	}
	for _, warn := range schema.Warnings {
		fmt.Fprintf(w, "! %s: %s\n", warn.Code, warn.Message)
	}
}
