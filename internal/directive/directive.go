// Package directive parses openenum directives from Go source files.
//
// Directives are line comments in the form:
//
//	//openenum:enum name=Status value=open value=closed
//
// Arguments are key=value fields separated by spaces. Values containing
// spaces are double-quoted Go string literals. The keys value, enumName and
// interface may repeat; every other key may appear once.
package directive

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"net/url"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/gorilla/schema"
	"golang.org/x/tools/go/packages"
)

const prefix = "//openenum:"

// Enum is a parsed //openenum:enum directive.
type Enum struct {
	Name        string   `schema:"name,required"`
	Type        string   `schema:"type"`
	Values      []string `schema:"value"`
	EnumNames   []string `schema:"enumName"`
	GoType      string   `schema:"goType"`
	Interfaces  []string `schema:"interface"`
	Description string   `schema:"description"`

	Pos token.Position `schema:"-"`
}

// Kind is a directive verb.
type Kind string

const KindEnum Kind = "enum"

var repeatable = map[string]bool{
	"value":     true,
	"enumName":  true,
	"interface": true,
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	// Keep empty enumName entries so names stay aligned with values.
	d.ZeroEmpty(true)
	return d
}

// Result contains all directives found in a package.
type Result struct {
	// Enums contains the //openenum:enum directives in file and line order.
	Enums []Enum

	// PackagePath is the import path of the parsed package.
	PackagePath string

	// PackageName is the name in the package clause.
	PackageName string

	// Dir is the directory containing the package.
	Dir string
}

// Parse scans a Go package for openenum directives.
//
// The pattern follows go command semantics ("." for the current directory,
// an import path, or a directory path) and must match exactly one package.
func Parse(ctx context.Context, pattern string) (*Result, error) {
	return ParseDir(ctx, pattern, "")
}

// ParseDir is like Parse but resolves pattern relative to dir.
// If dir is empty, the current directory is used.
func ParseDir(ctx context.Context, pattern, dir string) (*Result, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:     dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
	}

	result := &Result{
		PackagePath: pkg.PkgPath,
		PackageName: pkg.Name,
	}
	if len(pkg.GoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	for _, f := range pkg.Syntax {
		enums, err := parseFile(pkg.Fset, f)
		if err != nil {
			return nil, err
		}
		result.Enums = append(result.Enums, enums...)
	}
	return result, nil
}

// parseFile extracts directives from a single file.
func parseFile(fset *token.FileSet, f *ast.File) ([]Enum, error) {
	var enums []Enum
	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if !strings.HasPrefix(c.Text, prefix) {
				continue
			}
			pos := fset.Position(c.Slash)
			verb, args, _ := strings.Cut(strings.TrimPrefix(c.Text, prefix), " ")

			switch Kind(verb) {
			case KindEnum:
				e, err := parseEnum(args)
				if err != nil {
					return nil, fmt.Errorf("%s: %s%s: %w", pos, prefix, verb, err)
				}
				e.Pos = pos
				enums = append(enums, e)
			default:
				return nil, fmt.Errorf("%s: unknown directive %s%s", pos, prefix, verb)
			}
		}
	}
	return enums, nil
}

// parseEnum decodes the arguments of an enum directive.
func parseEnum(args string) (Enum, error) {
	fields, err := splitFields(args)
	if err != nil {
		return Enum{}, err
	}

	values := url.Values{}
	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			return Enum{}, fmt.Errorf("argument %q is not key=value", field)
		}
		if strings.HasPrefix(value, `"`) {
			value, err = strconv.Unquote(value)
			if err != nil {
				return Enum{}, fmt.Errorf("argument %s: bad quoted value: %w", key, err)
			}
		}
		if values.Has(key) && !repeatable[key] {
			return Enum{}, fmt.Errorf("argument %s given more than once", key)
		}
		values.Add(key, value)
	}

	var e Enum
	if err := decoder.Decode(&e, values); err != nil {
		return Enum{}, decodeError(err)
	}
	return e, nil
}

// decodeError flattens gorilla/schema errors into one message.
func decodeError(err error) error {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return err
	}
	var msgs []string
	for key, e := range multi {
		var unknown schema.UnknownKeyError
		var empty schema.EmptyFieldError
		switch {
		case errors.As(e, &unknown):
			msgs = append(msgs, "unknown argument "+unknown.Key)
		case errors.As(e, &empty):
			msgs = append(msgs, "missing required argument "+empty.Key)
		default:
			msgs = append(msgs, key+": "+e.Error())
		}
	}
	sort.Strings(msgs)
	return errors.New(strings.Join(msgs, "; "))
}

// splitFields splits s at unquoted whitespace. Quotes are kept so that the
// caller can unquote each value.
func splitFields(s string) ([]string, error) {
	var fields []string
	var cur strings.Builder
	inQuote, escaped := false, false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case inQuote && r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case !inQuote && unicode.IsSpace(r):
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	if inQuote {
		return nil, errors.New("unterminated quoted value")
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields, nil
}
