package catalog

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"github.com/broady/openenum/openenumgen/ir"
)

// ResolveDir returns the package that lives, or would live, in dir. A
// directory without Go files still has an import path inside a module; its
// name is then taken from the last path element.
func ResolveDir(ctx context.Context, dir string) (ir.PackageInfo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ir.PackageInfo{}, err
	}
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles,
		Dir:     abs,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return ir.PackageInfo{}, fmt.Errorf("resolve package in %s: %w", dir, err)
	}
	if len(pkgs) != 1 || pkgs[0].PkgPath == "" || pkgs[0].PkgPath == "." {
		return ir.PackageInfo{}, fmt.Errorf("resolve package in %s: not inside a Go module", dir)
	}
	pkg := pkgs[0]
	info := ir.PackageInfo{Path: pkg.PkgPath, Name: pkg.Name, Dir: abs}
	if info.Name == "" {
		info.Name = path.Base(pkg.PkgPath)
	}
	return info, nil
}
