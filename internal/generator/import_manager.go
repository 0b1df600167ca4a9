package generator

import (
	"fmt"
	"path"
	"sort"

	"github.com/origadmin/mapgen/internal/model"
	"github.com/origadmin/mapgen/internal/template"
)

// ImportManager tracks the packages referenced by one generated file and
// assigns each a unique, valid identifier.
type ImportManager struct {
	local    string
	imports  map[string]string
	names    map[string]string
	reserved map[string]struct{}
	counter  int
}

// NewImportManager creates an import manager for a file in package local.
// Reserved names are never handed out as aliases.
func NewImportManager(local string, reserved ...string) *ImportManager {
	im := &ImportManager{
		local:    local,
		imports:  make(map[string]string),
		names:    make(map[string]string),
		reserved: make(map[string]struct{}),
		counter:  1,
	}
	for _, name := range reserved {
		im.reserved[name] = struct{}{}
	}
	return im
}

// Add adds an import and returns the alias to use. name is the package clause
// name of importPath; when empty it is derived from the path. Importing the
// local package is a no-op that returns an empty alias.
func (im *ImportManager) Add(importPath, name string) string {
	if importPath == im.local {
		return ""
	}
	if alias, exists := im.imports[importPath]; exists {
		return alias
	}

	if name != "" {
		im.names[importPath] = name
	} else {
		im.names[importPath] = path.Base(importPath)
	}

	alias := name
	if alias == "" {
		alias = packageName(importPath)
	}
	if alias == "" {
		alias = fmt.Sprintf("pkg%d", im.counter)
		im.counter++
	}

	// Handle conflicts.
	originalAlias := alias
	conflictCounter := 1
	for im.taken(alias) {
		alias = fmt.Sprintf("%s%d", originalAlias, conflictCounter)
		conflictCounter++
	}

	im.imports[importPath] = alias
	return alias
}

func (im *ImportManager) taken(alias string) bool {
	if _, ok := im.reserved[alias]; ok {
		return true
	}
	for _, existing := range im.imports {
		if existing == alias {
			return true
		}
	}
	return false
}

// Qualify imports the package of id and returns the type expression to use in the file.
func (im *ImportManager) Qualify(id model.TypeIdentity) string {
	alias := im.Add(id.Package, id.PkgName)
	if alias == "" {
		return id.Name
	}
	return alias + "." + id.Name
}

// Imports returns the import lines sorted by path. An explicit alias is set
// only when it differs from the package name, which is the last path element
// unless the caller supplied the declared one.
func (im *ImportManager) Imports() []template.Import {
	paths := make([]string, 0, len(im.imports))
	for p := range im.imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	imports := make([]template.Import, 0, len(paths))
	for _, p := range paths {
		imp := template.Import{Path: p}
		if alias := im.imports[p]; alias != im.names[p] {
			imp.Alias = alias
		}
		imports = append(imports, imp)
	}
	return imports
}
