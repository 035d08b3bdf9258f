// Package provider reads enum definitions from their sources: definition
// files on disk, or //openenum:enum directives in a Go package.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/broady/openenum/internal/directive"
	"github.com/broady/openenum/openenumgen/definition"
	"github.com/broady/openenum/openenumgen/ir"
)

// FileProvider loads YAML, TOML or JSON definition files.
type FileProvider struct{}

// Load reads and validates each path in order.
func (p *FileProvider) Load(ctx context.Context, paths ...string) ([]*definition.File, error) {
	if len(paths) == 0 {
		return nil, errors.New("no definition files specified")
	}
	files := make([]*definition.File, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := definition.Load(path)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// SourceProvider builds a definition file from the //openenum:enum
// directives of one Go package.
type SourceProvider struct {
	// Dir is the directory patterns are resolved in. Empty means the
	// current directory.
	Dir string
}

// Load parses the package matching pattern. Directive values are strings;
// they are converted according to the directive's type argument so that
// "type=integer value=1" declares the number 1.
func (p *SourceProvider) Load(ctx context.Context, pattern string) (*definition.File, error) {
	res, err := directive.ParseDir(ctx, pattern, p.Dir)
	if err != nil {
		return nil, err
	}
	if len(res.Enums) == 0 {
		return nil, fmt.Errorf("package %s has no //openenum:enum directives", res.PackagePath)
	}

	f := &definition.File{
		Package:     res.PackageName,
		PackagePath: res.PackagePath,
		Path:        res.Dir,
	}
	for _, d := range res.Enums {
		e := definition.Enum{
			Name:         d.Name,
			Description:  d.Description,
			Type:         d.Type,
			EnumNames:    d.EnumNames,
			GoType:       d.GoType,
			GoInterfaces: d.Interfaces,
			Source:       ir.Source{File: d.Pos.Filename, Line: d.Pos.Line, Column: d.Pos.Column},
		}
		for _, raw := range d.Values {
			v, err := coerce(d.Type, raw)
			if err != nil {
				return nil, fmt.Errorf("%s: enum %s: %w", d.Pos, d.Name, err)
			}
			e.Enum = append(e.Enum, v)
		}
		f.Enums = append(f.Enums, e)
	}
	if err := definition.Validate(f); err != nil {
		return nil, err
	}
	return f, nil
}

// coerce parses a directive value as the backing type typ. Unknown type
// names keep the text; synthesis reports them.
func coerce(typ, raw string) (any, error) {
	var v any
	var err error
	switch typ {
	case "integer", "int", "int8", "int16", "int32", "int64", "rune":
		v, err = strconv.ParseInt(raw, 10, 64)
	case "uint", "uint8", "uint16", "uint32", "uint64", "byte":
		v, err = strconv.ParseUint(raw, 10, 64)
	case "number", "float32", "float64":
		v, err = strconv.ParseFloat(raw, 64)
	case "boolean", "bool":
		v, err = strconv.ParseBool(raw)
	default:
		return raw, nil
	}
	if err != nil {
		return nil, fmt.Errorf("value %q is not a valid %s", raw, typ)
	}
	return definition.Normalize(v)
}
