package model

import (
	"go/token"
	"strings"
)

// TypeIdentity identifies a named struct type by import path and type name.
// Two identities are the same type when their full names are equal.
type TypeIdentity struct {
	Package string
	Name    string
	// PkgName is the name in the package clause, which may differ from the
	// last element of Package. Empty when the frontend does not know it.
	PkgName string
}

// NewTypeIdentity creates a TypeIdentity.
func NewTypeIdentity(pkgPath, name string) TypeIdentity {
	return TypeIdentity{Package: pkgPath, Name: name}
}

// ParseTypeIdentity splits a full name such as "example.com/app/dto.PersonDto"
// at its last dot. Both parts must be present and the name must be an identifier.
func ParseTypeIdentity(fullName string) (TypeIdentity, bool) {
	fullName = strings.TrimSpace(fullName)
	lastDot := strings.LastIndex(fullName, ".")
	if lastDot <= 0 || lastDot == len(fullName)-1 {
		return TypeIdentity{}, false
	}
	pkgPath, name := fullName[:lastDot], fullName[lastDot+1:]
	// A dot inside the last path element belongs to the package path, e.g. "gopkg.in/yaml".
	if strings.Contains(name, "/") || !token.IsIdentifier(name) {
		return TypeIdentity{}, false
	}
	return TypeIdentity{Package: pkgPath, Name: name}, true
}

// FullName returns the canonical "importpath.Name" key.
func (t TypeIdentity) FullName() string {
	return t.Package + "." + t.Name
}

// WithPackageName returns a copy of t with its declared package name set.
func (t TypeIdentity) WithPackageName(name string) TypeIdentity {
	t.PkgName = name
	return t
}

// Is reports whether t and other name the same type.
func (t TypeIdentity) Is(other TypeIdentity) bool {
	return t.Package == other.Package && t.Name == other.Name
}

// IsZero reports whether the identity is unset.
func (t TypeIdentity) IsZero() bool {
	return t.Package == "" && t.Name == ""
}

func (t TypeIdentity) String() string {
	return t.FullName()
}

// FieldRule copies Field on the primary side to TargetField() on the linked side.
type FieldRule struct {
	Field  string
	Target string
}

// TargetField returns the linked-side field name. A blank Target means the
// field keeps its name on both sides.
func (r FieldRule) TargetField() string {
	if target := strings.TrimSpace(r.Target); target != "" {
		return target
	}
	return r.Field
}

// MapperSpec describes one mapper to generate.
type MapperSpec struct {
	// Primary carries the mappable declaration and keys the MapperSpec in the Model.
	Primary TypeIdentity
	// Linked is the type Primary is mappable with.
	Linked TypeIdentity
	// UnitName is the generated mapper type name, e.g. PersonMapper.
	UnitName string
	// Package is the import path the mapper is generated into.
	Package string
	Rules   []FieldRule
}

// Key returns the model key of the spec.
func (s *MapperSpec) Key() string {
	return s.Primary.FullName()
}

// Model is the ordered set of MapperSpecs of one generation run.
type Model struct {
	order []string
	specs map[string]*MapperSpec
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{specs: make(map[string]*MapperSpec)}
}

// Len returns the number of specs.
func (m *Model) Len() int {
	return len(m.order)
}

// Get returns the MapperSpec keyed by the primary full name.
func (m *Model) Get(fullName string) (*MapperSpec, bool) {
	spec, ok := m.specs[fullName]
	return spec, ok
}

// Specs returns the specs in insertion order.
func (m *Model) Specs() []*MapperSpec {
	specs := make([]*MapperSpec, 0, len(m.order))
	for _, key := range m.order {
		specs = append(specs, m.specs[key])
	}
	return specs
}

// First returns the earliest inserted spec.
func (m *Model) First() (*MapperSpec, bool) {
	if len(m.order) == 0 {
		return nil, false
	}
	return m.specs[m.order[0]], true
}

func (m *Model) insert(spec *MapperSpec) bool {
	key := spec.Key()
	if _, exists := m.specs[key]; exists {
		return false
	}
	m.specs[key] = spec
	m.order = append(m.order, key)
	return true
}

// PairDeclaration is a raw "mappable with" declaration.
type PairDeclaration struct {
	Primary TypeIdentity
	// Linked is nil when LinkedExpr could not be resolved to a struct type.
	Linked     *TypeIdentity
	LinkedExpr string
	Position   string
}

// FieldDeclaration is a raw field-rename declaration.
type FieldDeclaration struct {
	Enclosing TypeIdentity
	Field     string
	// Target is the linked-side field name; blank keeps Field.
	Target   string
	Position string
}
