// Package generator implements the functions, types, and interfaces for the module.
package generator

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/origadmin/mapgen/internal/config"
	"github.com/origadmin/mapgen/internal/diagnostic"
	"github.com/origadmin/mapgen/internal/model"
	"github.com/origadmin/mapgen/internal/template"
)

var (
	// ErrUnitCollision is returned when two units would be written to the same file.
	ErrUnitCollision = errors.New("generated unit name collision")
	// ErrDanglingFields is returned in strict mode when field rules have no mapper.
	ErrDanglingFields = errors.New("field rules without a mappable type")
)

// Sink persists generated units. It accepts each unit path at most once per run.
type Sink interface {
	Emit(unit *Unit) error
}

// Result describes a finished generation run.
type Result struct {
	Model       *model.Model
	Diagnostics diagnostic.Diagnostics
	Units       []*Unit
}

// Generator runs the whole pipeline: model building, synthesis and emission.
type Generator struct {
	cfg      *config.Config
	namer    *Namer
	mappers  *MapperSynthesizer
	registry *RegistrySynthesizer
}

// NewGenerator creates a generator for cfg.
func NewGenerator(cfg *config.Config) *Generator {
	namer := NewNamer(cfg.NamingRules)
	tmpl := template.NewManager()
	return &Generator{
		cfg:      cfg,
		namer:    namer,
		mappers:  NewMapperSynthesizer(namer, tmpl),
		registry: NewRegistrySynthesizer(namer, tmpl),
	}
}

// BuildModel builds the mapping model from the declarations of src.
func (g *Generator) BuildModel(src model.Source) (*model.Model, diagnostic.Diagnostics, error) {
	m, diags, err := model.NewBuilder(g.namer).BuildFrom(src)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Model built", "mappers", m.Len(), "diagnostics", len(diags))
	if g.cfg.Strict {
		if dangling := diags.ByCode(diagnostic.CodeDanglingField); len(dangling) > 0 {
			return nil, diags, fmt.Errorf("%w:\n%s", ErrDanglingFields, dangling)
		}
	}
	return m, diags, nil
}

// Synthesize generates every mapper unit in model order followed by the
// registry unit. Unit collisions are reported before anything is returned.
func (g *Generator) Synthesize(m *model.Model) ([]*Unit, error) {
	units := make([]*Unit, 0, m.Len()+1)
	for _, spec := range m.Specs() {
		slog.Info("Generating source file for mapper", "unit", spec.Package+"."+spec.UnitName)
		unit, err := g.mappers.Synthesize(spec)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	reg, err := g.registry.Synthesize(m)
	if err != nil {
		return nil, err
	}
	if reg != nil {
		slog.Info("Generating source file for registry", "unit", reg.QualifiedName())
		units = append(units, reg)
	}

	if err := checkCollisions(units); err != nil {
		return nil, err
	}
	return units, nil
}

func checkCollisions(units []*Unit) error {
	seen := make(map[string]*Unit, len(units))
	for _, unit := range units {
		if prev, exists := seen[unit.Path()]; exists {
			return fmt.Errorf("%w: %s (from %s) and %s (from %s) both generate %s",
				ErrUnitCollision, prev.QualifiedName(), describe(prev), unit.QualifiedName(), describe(unit), unit.Path())
		}
		seen[unit.Path()] = unit
	}
	return nil
}

func describe(u *Unit) string {
	if u.Kind == KindRegistry {
		return "registry"
	}
	return u.Origin
}

// Run builds the model from src, synthesizes all units and emits them to
// sink, mappers first and the registry last. The first sink failure aborts
// the run; units emitted before it are left in place.
func (g *Generator) Run(src model.Source, sink Sink) (*Result, error) {
	m, diags, err := g.BuildModel(src)
	if err != nil {
		return nil, err
	}
	units, err := g.Synthesize(m)
	if err != nil {
		return nil, err
	}
	for _, unit := range units {
		slog.Debug("Emitting unit", "kind", unit.Kind, "path", unit.Path())
		if err := sink.Emit(unit); err != nil {
			return nil, fmt.Errorf("failed to emit %s: %w", unit.Path(), err)
		}
	}
	return &Result{Model: m, Diagnostics: diags, Units: units}, nil
}
