// Package analyzer reads mappable declarations from Go packages.
package analyzer

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/origadmin/mapgen/internal/config"
	"github.com/origadmin/mapgen/internal/model"
)

// DirectiveMappable is the directive key that pairs a struct with its linked type.
const DirectiveMappable = "mappable"

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedModule

// Analyzer walks a loaded set of Go packages and reports their pair and
// field declarations. It implements model.Source.
type Analyzer struct {
	cfg  *config.Config
	pkgs []*packages.Package
}

var _ model.Source = (*Analyzer)(nil)

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(cfg *config.Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// SetPackages sets the packages for testing purposes
func (a *Analyzer) SetPackages(pkgs []*packages.Package) {
	a.pkgs = pkgs
}

// Packages returns the loaded packages sorted by import path.
func (a *Analyzer) Packages() []*packages.Package {
	return a.pkgs
}

// Load loads the packages matching patterns relative to dir. Package errors
// are logged and the affected packages are still scanned.
func (a *Analyzer) Load(dir string, patterns ...string) error {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	loadCfg := &packages.Config{
		Mode:  LoadMode,
		Dir:   dir,
		Tests: false,
	}
	if len(a.cfg.BuildTags) > 0 {
		loadCfg.BuildFlags = []string{"-tags=" + strings.Join(a.cfg.BuildTags, ",")}
	}

	slog.Debug("Loading packages", "dir", dir, "patterns", patterns)
	pkgs, err := packages.Load(loadCfg, patterns...)
	if err != nil {
		return fmt.Errorf("failed to load packages: %w", err)
	}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			slog.Warn("Package loaded with errors", "package", pkg.PkgPath, "error", e)
		}
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })
	a.pkgs = pkgs
	slog.Debug("Packages loaded", "count", len(pkgs))
	return nil
}

// Module returns the module path and directory of the loaded packages.
func (a *Analyzer) Module() (string, string, bool) {
	for _, pkg := range a.pkgs {
		if pkg.Module != nil && pkg.Module.Path != "" {
			return pkg.Module.Path, pkg.Module.Dir, true
		}
	}
	return "", "", false
}

// structDecl is a top-level named struct type found in a file.
type structDecl struct {
	pkg  *packages.Package
	file *ast.File
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
	obj  *types.TypeName
	st   *types.Struct
}

// walkStructs calls fn for every top-level struct type, packages in import
// path order, then files, then source order.
func (a *Analyzer) walkStructs(fn func(d *structDecl)) {
	for _, pkg := range a.pkgs {
		if pkg.TypesInfo == nil {
			continue
		}
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				gen, ok := decl.(*ast.GenDecl)
				if !ok || gen.Tok != token.TYPE {
					continue
				}
				for _, spec := range gen.Specs {
					ts := spec.(*ast.TypeSpec)
					obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
					if !ok {
						continue
					}
					st, ok := obj.Type().Underlying().(*types.Struct)
					if !ok {
						continue
					}
					doc := ts.Doc
					if doc == nil && !gen.Lparen.IsValid() {
						doc = gen.Doc
					}
					fn(&structDecl{pkg: pkg, file: file, spec: ts, doc: doc, obj: obj, st: st})
				}
			}
		}
	}
}

// PairDeclarations returns one declaration per mappable directive on a struct type.
func (a *Analyzer) PairDeclarations() ([]model.PairDeclaration, error) {
	var decls []model.PairDeclaration
	a.walkStructs(func(d *structDecl) {
		if d.doc == nil {
			return
		}
		for _, c := range d.doc.List {
			directive, ok := config.ParseDirective(c.Text, a.cfg.DirectivePrefix)
			if !ok || directive.Key != DirectiveMappable {
				continue
			}
			expr, _ := directive.Arg("with")
			decl := model.PairDeclaration{
				Primary:    model.NewTypeIdentity(d.pkg.PkgPath, d.obj.Name()).WithPackageName(d.pkg.Name),
				LinkedExpr: expr,
				Position:   d.pkg.Fset.Position(c.Pos()).String(),
			}
			if linked, ok := a.resolve(d.pkg, d.file, expr); ok {
				decl.Linked = &linked
			}
			slog.Debug("Found mappable declaration", "type", decl.Primary.FullName(), "with", expr, "resolved", decl.Linked != nil)
			decls = append(decls, decl)
		}
	})
	return decls, nil
}

// FieldDeclarations returns one declaration per named struct field carrying
// the configured tag key. Only the part of the tag value before the first
// comma is the target name.
func (a *Analyzer) FieldDeclarations() ([]model.FieldDeclaration, error) {
	var decls []model.FieldDeclaration
	a.walkStructs(func(d *structDecl) {
		for i := 0; i < d.st.NumFields(); i++ {
			value, ok := reflect.StructTag(d.st.Tag(i)).Lookup(a.cfg.TagKey)
			if !ok {
				continue
			}
			field := d.st.Field(i)
			if field.Embedded() {
				slog.Debug("Ignoring mapping on embedded field", "type", d.obj.Name(), "field", field.Name())
				continue
			}
			target, _, _ := strings.Cut(value, ",")
			decls = append(decls, model.FieldDeclaration{
				Enclosing: model.NewTypeIdentity(d.pkg.PkgPath, d.obj.Name()).WithPackageName(d.pkg.Name),
				Field:     field.Name(),
				Target:    strings.TrimSpace(target),
				Position:  d.pkg.Fset.Position(field.Pos()).String(),
			})
		}
	})
	return decls, nil
}

// resolve looks up a linked type reference written in file of pkg. The
// reference is a local type name, a type qualified by a file import name or
// alias, or a type qualified by a full import path. Only struct types resolve.
// The identity carries the package clause name, which need not match the
// last element of the import path.
func (a *Analyzer) resolve(pkg *packages.Package, file *ast.File, expr string) (model.TypeIdentity, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" || pkg.Types == nil {
		return model.TypeIdentity{}, false
	}

	var target *types.Package
	name := expr
	if i := strings.LastIndex(expr, "."); i >= 0 {
		qualifier := expr[:i]
		name = expr[i+1:]
		if strings.Contains(qualifier, "/") || qualifier == pkg.PkgPath {
			target = importedByPath(pkg.Types, qualifier)
		} else {
			target = importedByName(pkg.Types, file, qualifier)
		}
	} else {
		target = pkg.Types
	}
	if target == nil {
		return model.TypeIdentity{}, false
	}

	obj, ok := target.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		return model.TypeIdentity{}, false
	}
	named, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok {
		return model.TypeIdentity{}, false
	}
	if _, ok := named.Underlying().(*types.Struct); !ok {
		return model.TypeIdentity{}, false
	}
	obj = named.Obj()
	return model.NewTypeIdentity(obj.Pkg().Path(), obj.Name()).WithPackageName(obj.Pkg().Name()), true
}

func importedByPath(pkg *types.Package, path string) *types.Package {
	if pkg.Path() == path {
		return pkg
	}
	for _, imp := range pkg.Imports() {
		if imp.Path() == path {
			return imp
		}
	}
	return nil
}

// importedByName finds the package a file refers to as name. Blank imports
// are matched by their package name.
func importedByName(pkg *types.Package, file *ast.File, name string) *types.Package {
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := importedByPath(pkg, path)
		if imp == nil {
			continue
		}
		local := imp.Name()
		if spec.Name != nil && spec.Name.Name != "_" && spec.Name.Name != "." {
			local = spec.Name.Name
		}
		if local == name {
			return imp
		}
	}
	return nil
}
