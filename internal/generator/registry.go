package generator

import (
	"fmt"
	"go/format"

	"github.com/origadmin/mapgen/internal/config"
	"github.com/origadmin/mapgen/internal/model"
	"github.com/origadmin/mapgen/internal/template"
)

// Identifiers the registry template uses at package or function scope.
var registryReserved = []string{"errors", "fmt", "reflect", "t", "name", "mapper", "typ", "ok", "Mapper", "ErrMapperNotFound", "ErrNotPointer"}

// RegistrySynthesizer renders the registry unit that maps every type of every
// pair to its mapper instance.
type RegistrySynthesizer struct {
	namer    *Namer
	renderer template.Renderer
}

// NewRegistrySynthesizer creates a RegistrySynthesizer.
func NewRegistrySynthesizer(namer *Namer, renderer template.Renderer) *RegistrySynthesizer {
	return &RegistrySynthesizer{namer: namer, renderer: renderer}
}

// Synthesize renders the registry for m. An empty model yields no unit.
// The registry package is derived from the first MapperSpec of the model.
func (s *RegistrySynthesizer) Synthesize(m *model.Model) (*Unit, error) {
	anchor, ok := m.First()
	if !ok {
		return nil, nil
	}

	name := s.namer.RegistryName()
	pkgPath := s.namer.RegistryPackage(anchor.Primary)
	im := NewImportManager(pkgPath, append(registryReserved, name, "New"+name)...)

	specs := m.Specs()
	registrations := make([]template.Registration, 0, len(specs))
	for i, spec := range specs {
		registrations = append(registrations, template.Registration{
			Var:     fmt.Sprintf("mapper%d", i),
			Mapper:  im.Qualify(model.NewTypeIdentity(spec.Package, spec.UnitName).WithPackageName(s.namer.PackageName(spec.Package))),
			Primary: spec.Primary.FullName(),
			Linked:  spec.Linked.FullName(),
		})
	}

	pkgName := s.namer.PackageName(pkgPath)
	data := &template.RegistryData{
		Header:        template.Header{Generator: config.Application},
		PackageName:   pkgName,
		Imports:       im.Imports(),
		Name:          name,
		Registrations: registrations,
	}

	raw, err := s.renderer.Render(template.RegistryTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render registry %s: %w", name, err)
	}
	src, err := format.Source(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to format registry %s: %w", name, err)
	}

	return &Unit{
		Kind:        KindRegistry,
		Name:        name,
		Package:     pkgPath,
		PackageName: pkgName,
		FileName:    s.namer.FileName(name),
		Source:      src,
	}, nil
}
