package generator

// UnitKind tells mapper units from the registry unit.
type UnitKind int

const (
	KindMapper UnitKind = iota
	KindRegistry
)

func (k UnitKind) String() string {
	if k == KindRegistry {
		return "registry"
	}
	return "mapper"
}

// Unit is one generated Go source file.
type Unit struct {
	Kind UnitKind
	// Name is the main type declared by the unit, e.g. PersonMapper.
	Name string
	// Package is the import path of the unit.
	Package     string
	PackageName string
	FileName    string
	// Origin is the primary full name a mapper unit was synthesized from.
	Origin string
	Source []byte
}

// Path returns the slash separated location of the unit, import path plus file name.
func (u *Unit) Path() string {
	return u.Package + "/" + u.FileName
}

// QualifiedName returns the unit's type name qualified by its import path.
func (u *Unit) QualifiedName() string {
	return u.Package + "." + u.Name
}
