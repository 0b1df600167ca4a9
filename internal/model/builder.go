package model

import (
	"fmt"
	"go/token"
	"log/slog"

	"github.com/origadmin/mapgen/internal/diagnostic"
)

// Builder accumulates declarations into a Model. It is owned by a single
// caller; Finalize hands the model over and starts a fresh one, Reset drops
// everything collected so far. Hosts that discover declarations in several
// rounds call AddPair/AddField per round and Finalize once.
type Builder struct {
	namer Namer
	model *Model
	diags diagnostic.Diagnostics
}

// NewBuilder creates a builder that names specs with namer.
func NewBuilder(namer Namer) *Builder {
	return &Builder{
		namer: namer,
		model: NewModel(),
	}
}

// Reset discards the model and diagnostics collected so far.
func (b *Builder) Reset() {
	b.model = NewModel()
	b.diags = nil
}

// Finalize returns the built model with its diagnostics and resets the builder.
func (b *Builder) Finalize() (*Model, diagnostic.Diagnostics) {
	m, diags := b.model, b.diags
	b.Reset()
	return m, diags
}

// AddPair creates a MapperSpec for decl.Primary. Declarations whose linked
// type did not resolve, pairs involving an unexported type, and repeated
// declarations for an already modeled primary are skipped. Generated mappers
// live in another package and cannot name unexported types. It reports
// whether a MapperSpec was created.
func (b *Builder) AddPair(decl PairDeclaration) bool {
	primary := decl.Primary.FullName()
	if decl.Linked == nil || decl.Linked.IsZero() {
		slog.Warn("Skipping mappable declaration with unresolved target",
			"type", primary, "with", decl.LinkedExpr, "pos", decl.Position)
		b.diags.Add(diagnostic.SeverityWarning, diagnostic.CodeUnresolvedTarget,
			fmt.Sprintf("cannot resolve mappable target %q", decl.LinkedExpr), primary, decl.Position)
		return false
	}
	for _, typ := range []TypeIdentity{decl.Primary, *decl.Linked} {
		if !token.IsExported(typ.Name) {
			slog.Warn("Skipping mappable declaration of an unexported type",
				"type", primary, "unexported", typ.FullName(), "pos", decl.Position)
			b.diags.Add(diagnostic.SeverityWarning, diagnostic.CodeUnexportedType,
				fmt.Sprintf("type %s is not exported", typ.FullName()), primary, decl.Position)
			return false
		}
	}
	if _, exists := b.model.Get(primary); exists {
		slog.Debug("Skipping duplicate mappable declaration", "type", primary, "pos", decl.Position)
		b.diags.Add(diagnostic.SeverityInfo, diagnostic.CodeDuplicatePrimary,
			"type is already declared mappable, keeping the first declaration", primary, decl.Position)
		return false
	}

	spec := &MapperSpec{
		Primary:  decl.Primary,
		Linked:   *decl.Linked,
		UnitName: b.namer.MapperName(decl.Primary),
		Package:  b.namer.MapperPackage(decl.Primary),
	}
	b.model.insert(spec)
	slog.Debug("Registered mapper", "primary", primary, "linked", spec.Linked.FullName(), "unit", spec.UnitName)
	return true
}

// AddField appends a FieldRule to the MapperSpec of the enclosing type. Rules for
// types without a MapperSpec, and rules naming an unexported field on either
// side, are dropped. It reports whether the rule was attached.
func (b *Builder) AddField(decl FieldDeclaration) bool {
	enclosing := decl.Enclosing.FullName()
	spec, ok := b.model.Get(enclosing)
	if !ok {
		slog.Warn("Dropping field rule of a type that is not mappable",
			"type", enclosing, "field", decl.Field, "pos", decl.Position)
		b.diags.Add(diagnostic.SeverityWarning, diagnostic.CodeDanglingField,
			fmt.Sprintf("field %s has a mapping but its type is not mappable", decl.Field), enclosing, decl.Position)
		return false
	}
	rule := FieldRule{Field: decl.Field, Target: decl.Target}
	if !token.IsExported(rule.Field) || !token.IsExported(rule.TargetField()) {
		slog.Warn("Dropping field rule of an unexported field",
			"type", enclosing, "field", rule.Field, "target", rule.TargetField(), "pos", decl.Position)
		b.diags.Add(diagnostic.SeverityWarning, diagnostic.CodeUnexportedField,
			fmt.Sprintf("field rule %s -> %s names an unexported field", rule.Field, rule.TargetField()), enclosing, decl.Position)
		return false
	}
	spec.Rules = append(spec.Rules, rule)
	return true
}

// Build runs a complete pass: every pair declaration first, then every field declaration.
func (b *Builder) Build(pairs []PairDeclaration, fields []FieldDeclaration) (*Model, diagnostic.Diagnostics) {
	for _, decl := range pairs {
		b.AddPair(decl)
	}
	for _, decl := range fields {
		b.AddField(decl)
	}
	return b.Finalize()
}

// BuildFrom pulls both declaration lists from src and builds the model.
func (b *Builder) BuildFrom(src Source) (*Model, diagnostic.Diagnostics, error) {
	pairs, err := src.PairDeclarations()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list pair declarations: %w", err)
	}
	fields, err := src.FieldDeclarations()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list field declarations: %w", err)
	}
	m, diags := b.Build(pairs, fields)
	return m, diags, nil
}
