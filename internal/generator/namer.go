package generator

import (
	"fmt"
	"go/token"
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/origadmin/mapgen/internal/config"
	"github.com/origadmin/mapgen/internal/model"
)

// Namer applies the naming conventions of generated units.
type Namer struct {
	rules config.NamingRules
}

var (
	majorVersionRegexp = regexp.MustCompile(`^v[0-9]+$`)
	gopkgVersionRegexp = regexp.MustCompile(`\.v[0-9]+$`)
)

// NewNamer creates a new Namer.
func NewNamer(rules config.NamingRules) *Namer {
	return &Namer{rules: rules}
}

// MapperName returns the mapper type name of primary, e.g. PersonMapper.
func (n *Namer) MapperName(primary model.TypeIdentity) string {
	return fmt.Sprintf(n.rules.MapperName, primary.Name)
}

// MapperPackage returns the import path the mapper of primary is generated into.
func (n *Namer) MapperPackage(primary model.TypeIdentity) string {
	return fmt.Sprintf(n.rules.MapperPackage, primary.Package)
}

// RegistryName returns the registry type name.
func (n *Namer) RegistryName() string {
	return n.rules.RegistryName
}

// RegistryPackage returns the import path of the registry anchored on primary.
func (n *Namer) RegistryPackage(anchor model.TypeIdentity) string {
	return fmt.Sprintf(n.rules.RegistryPackage, anchor.Package)
}

// FileName returns the file a unit is written to.
func (n *Namer) FileName(unitName string) string {
	return strings.ToLower(unitName) + n.rules.FileSuffix
}

// PackageName returns the package clause name for an import path.
func (n *Namer) PackageName(importPath string) string {
	if name := packageName(importPath); name != "" {
		return name
	}
	return "generated"
}

// packageName derives a Go identifier from an import path: the last element,
// skipping a trailing major version ("/v2") and dropping a gopkg.in style
// ".vN" suffix and any character that is not valid in an identifier.
func packageName(importPath string) string {
	importPath = strings.TrimSuffix(importPath, "/")
	base := path.Base(importPath)
	if majorVersionRegexp.MatchString(base) {
		if parent := path.Dir(importPath); parent != "." && parent != "/" {
			base = path.Base(parent)
		}
	}
	base = gopkgVersionRegexp.ReplaceAllString(base, "")

	var b strings.Builder
	for _, r := range base {
		if unicode.IsLetter(r) || r == '_' || (unicode.IsDigit(r) && b.Len() > 0) {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "_" || token.IsKeyword(name) {
		return ""
	}
	return name
}
