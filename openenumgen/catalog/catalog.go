// Package catalog answers whether types already exist in the generation
// environment, so that definitions naming an existing type reuse it instead
// of generating a new one.
//
// Packages loads real Go packages with golang.org/x/tools/go/packages.
// Static is an in-memory registry for tests and for environments without a
// Go toolchain.
package catalog

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/tools/go/packages"

	"github.com/broady/openenum/openenumgen/ir"
)

// Packages resolves types by loading Go packages. Loaded packages are cached
// for the lifetime of the value. Objects declared in files that carry
// ir.GeneratedHeader are invisible, so regenerating never finds its own
// previous output.
type Packages struct {
	// Dir is the directory packages are loaded from. Empty means the
	// current directory.
	Dir string

	// Env overrides the environment of the underlying go command.
	Env []string

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	mu    sync.Mutex
	cache map[string]*packages.Package
}

func (p *Packages) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// load returns the package at pkgPath, or nil if it does not exist.
func (p *Packages) load(ctx context.Context, pkgPath string) (*packages.Package, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pkg, ok := p.cache[pkgPath]; ok {
		return pkg, nil
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes,
		Dir:     p.Dir,
		Env:     p.Env,
	}
	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("load package %s: %w", pkgPath, err)
	}

	var pkg *packages.Package
	if len(pkgs) == 1 && pkgs[0].Types != nil && len(pkgs[0].GoFiles) > 0 {
		pkg = pkgs[0]
		// Type errors are expected while generated code is missing or stale.
		for _, e := range pkg.Errors {
			p.logger().Debug("package loaded with errors", "package", pkgPath, "error", e.Msg)
		}
	} else {
		p.logger().Debug("package not found", "package", pkgPath)
	}

	if p.cache == nil {
		p.cache = make(map[string]*packages.Package)
	}
	p.cache[pkgPath] = pkg
	return pkg, nil
}

// lookup returns the package-level object named name, ignoring objects
// declared in generated open enum files.
func (p *Packages) lookup(ctx context.Context, id ir.GoIdentifier) (types.Object, error) {
	if id.Package == "" {
		return nil, nil
	}
	pkg, err := p.load(ctx, id.Package)
	if err != nil || pkg == nil {
		return nil, err
	}
	obj := pkg.Types.Scope().Lookup(id.Name)
	if obj == nil || declaredInGenerated(pkg, obj.Pos()) {
		return nil, nil
	}
	return obj, nil
}

// LookupType reports whether id names a type.
func (p *Packages) LookupType(ctx context.Context, id ir.GoIdentifier) (bool, error) {
	obj, err := p.lookup(ctx, id)
	if err != nil {
		return false, err
	}
	_, ok := obj.(*types.TypeName)
	return ok, nil
}

// LookupInterface resolves id to an interface type.
func (p *Packages) LookupInterface(ctx context.Context, id ir.GoIdentifier) (ir.InterfaceRef, bool, error) {
	obj, err := p.lookup(ctx, id)
	if err != nil {
		return ir.InterfaceRef{}, false, err
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return ir.InterfaceRef{}, false, nil
	}
	iface, ok := tn.Type().Underlying().(*types.Interface)
	if !ok {
		return ir.InterfaceRef{}, false, nil
	}
	ref := ir.InterfaceRef{Name: id, PackageName: tn.Pkg().Name()}
	for i := range iface.NumMethods() {
		ref.Methods = append(ref.Methods, iface.Method(i).Name())
	}
	return ref, true, nil
}

// DeclaredNames lists the package-level identifiers of pkgPath, skipping
// those declared in generated open enum files. A missing package has none.
func (p *Packages) DeclaredNames(ctx context.Context, pkgPath string) ([]string, error) {
	pkg, err := p.load(ctx, pkgPath)
	if err != nil || pkg == nil {
		return nil, err
	}
	var names []string
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		if !declaredInGenerated(pkg, scope.Lookup(name).Pos()) {
			names = append(names, name)
		}
	}
	return names, nil
}

// PackageName returns the declared name of the package at pkgPath, or "" if
// it cannot be loaded.
func (p *Packages) PackageName(ctx context.Context, pkgPath string) (string, error) {
	pkg, err := p.load(ctx, pkgPath)
	if err != nil || pkg == nil {
		return "", err
	}
	return pkg.Name, nil
}

func declaredInGenerated(pkg *packages.Package, pos token.Pos) bool {
	for _, f := range pkg.Syntax {
		if f.FileStart <= pos && pos <= f.FileEnd {
			return IsGeneratedFile(f)
		}
	}
	return false
}

// IsGeneratedFile reports whether f starts with ir.GeneratedHeader.
func IsGeneratedFile(f *ast.File) bool {
	if len(f.Comments) == 0 || len(f.Comments[0].List) == 0 {
		return false
	}
	c := f.Comments[0].List[0]
	return c.Pos() < f.Package && c.Text == ir.GeneratedHeader
}

// Static is an in-memory catalog.
type Static struct {
	mu         sync.RWMutex
	types      map[ir.GoIdentifier]bool
	interfaces map[ir.GoIdentifier]ir.InterfaceRef
}

// NewStatic returns an empty Static catalog.
func NewStatic() *Static {
	return &Static{
		types:      make(map[ir.GoIdentifier]bool),
		interfaces: make(map[ir.GoIdentifier]ir.InterfaceRef),
	}
}

// AddType registers a type.
func (s *Static) AddType(id ir.GoIdentifier) *Static {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types[id] = true
	return s
}

// AddInterface registers an interface, which is also a type.
func (s *Static) AddInterface(ref ir.InterfaceRef) *Static {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types[ref.Name] = true
	s.interfaces[ref.Name] = ref
	return s
}

func (s *Static) LookupType(_ context.Context, id ir.GoIdentifier) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.types[id], nil
}

func (s *Static) LookupInterface(_ context.Context, id ir.GoIdentifier) (ir.InterfaceRef, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := s.interfaces[id]
	return ref, ok, nil
}

func (s *Static) DeclaredNames(_ context.Context, pkgPath string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for id := range s.types {
		if id.Package == pkgPath {
			names = append(names, id.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Standard returns a Static catalog preloaded with common standard library
// interfaces.
func Standard() *Static {
	s := NewStatic()
	for _, ref := range []ir.InterfaceRef{
		{Name: ir.GoIdentifier{Name: "Stringer", Package: "fmt"}, PackageName: "fmt", Methods: []string{"String"}},
		{Name: ir.GoIdentifier{Name: "TextMarshaler", Package: "encoding"}, PackageName: "encoding", Methods: []string{"MarshalText"}},
		{Name: ir.GoIdentifier{Name: "TextUnmarshaler", Package: "encoding"}, PackageName: "encoding", Methods: []string{"UnmarshalText"}},
		{Name: ir.GoIdentifier{Name: "Marshaler", Package: "encoding/json"}, PackageName: "json", Methods: []string{"MarshalJSON"}},
		{Name: ir.GoIdentifier{Name: "Unmarshaler", Package: "encoding/json"}, PackageName: "json", Methods: []string{"UnmarshalJSON"}},
	} {
		s.AddInterface(ref)
	}
	return s
}
