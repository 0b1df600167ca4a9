package model

// Source supplies the raw declarations of a generation run.
type Source interface {
	PairDeclarations() ([]PairDeclaration, error)
	FieldDeclarations() ([]FieldDeclaration, error)
}

// Namer derives the generated unit name and package of a mapper.
type Namer interface {
	MapperName(primary TypeIdentity) string
	MapperPackage(primary TypeIdentity) string
}
