package generator

import (
	"fmt"
	"go/format"

	"github.com/origadmin/mapgen/internal/config"
	"github.com/origadmin/mapgen/internal/model"
	"github.com/origadmin/mapgen/internal/template"
)

// Identifiers declared inside generated mapper methods. Import aliases must not shadow them.
var mapperReserved = []string{"data", "result", "v", "m"}

// MapperSynthesizer renders the mapper unit of a MapperSpec.
type MapperSynthesizer struct {
	namer    *Namer
	renderer template.Renderer
}

// NewMapperSynthesizer creates a MapperSynthesizer.
func NewMapperSynthesizer(namer *Namer, renderer template.Renderer) *MapperSynthesizer {
	return &MapperSynthesizer{namer: namer, renderer: renderer}
}

// Synthesize renders and formats the mapper unit of spec. Forward copies
// every rule's field to its target field; Backward applies the same rules
// with the roles swapped.
func (s *MapperSynthesizer) Synthesize(spec *model.MapperSpec) (*Unit, error) {
	im := NewImportManager(spec.Package, mapperReserved...)
	primary := template.TypeRef{Qualified: im.Qualify(spec.Primary)}
	linked := template.TypeRef{Qualified: im.Qualify(spec.Linked)}

	forward := make([]template.Assignment, 0, len(spec.Rules))
	backward := make([]template.Assignment, 0, len(spec.Rules))
	for _, rule := range spec.Rules {
		forward = append(forward, template.Assignment{Target: rule.TargetField(), Source: rule.Field})
		backward = append(backward, template.Assignment{Target: rule.Field, Source: rule.TargetField()})
	}

	pkgName := s.namer.PackageName(spec.Package)
	data := &template.MapperData{
		Header:      template.Header{Generator: config.Application},
		PackageName: pkgName,
		Imports:     im.Imports(),
		Name:        spec.UnitName,
		Primary:     primary,
		Linked:      linked,
		Forward:     forward,
		Backward:    backward,
		SameType:    spec.Primary.Is(spec.Linked),
	}

	raw, err := s.renderer.Render(template.MapperTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render mapper %s: %w", spec.UnitName, err)
	}
	src, err := format.Source(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to format mapper %s: %w", spec.UnitName, err)
	}

	return &Unit{
		Kind:        KindMapper,
		Name:        spec.UnitName,
		Package:     spec.Package,
		PackageName: pkgName,
		FileName:    s.namer.FileName(spec.UnitName),
		Origin:      spec.Key(),
		Source:      src,
	}, nil
}
