// Package manifest reads pair and field declarations from a YAML file.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/origadmin/mapgen/internal/model"
)

// Manifest is a YAML mapping file. It implements model.Source.
//
//	mappings:
//	  - type: example.com/app/domain.Person
//	    with: example.com/app/dto.PersonDto
//	    fields:
//	      - name: Name
//	        target: FullName
type Manifest struct {
	Mappings []Mapping `yaml:"mappings"`
	// Fields are field declarations outside of any mapping entry.
	Fields []Field `yaml:"fields,omitempty"`

	path string
}

var _ model.Source = (*Manifest)(nil)

// Mapping declares Type mappable with With.
type Mapping struct {
	Type   string         `yaml:"type"`
	With   string         `yaml:"with"`
	Fields []FieldMapping `yaml:"fields,omitempty"`

	line int
}

// FieldMapping renames Name to Target. A blank Target keeps the name.
type FieldMapping struct {
	Name   string `yaml:"name"`
	Target string `yaml:"target,omitempty"`
}

// Field is a standalone field declaration of Type.
type Field struct {
	Type   string `yaml:"type"`
	Name   string `yaml:"name"`
	Target string `yaml:"target,omitempty"`

	line int
}

// UnmarshalYAML records the line of the entry for diagnostics.
func (m *Mapping) UnmarshalYAML(node *yaml.Node) error {
	type plain Mapping
	if err := node.Decode((*plain)(m)); err != nil {
		return err
	}
	m.line = node.Line
	return nil
}

// UnmarshalYAML records the line of the entry for diagnostics.
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	type plain Field
	if err := node.Decode((*plain)(f)); err != nil {
		return err
	}
	f.line = node.Line
	return nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.path = path
	return m, nil
}

// Parse decodes manifest data. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Marshal serializes a manifest to YAML.
func Marshal(m *Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}

// FromModel describes the specs of a model as a manifest.
func FromModel(mdl *model.Model) *Manifest {
	m := &Manifest{}
	for _, spec := range mdl.Specs() {
		entry := Mapping{Type: spec.Primary.FullName(), With: spec.Linked.FullName()}
		for _, rule := range spec.Rules {
			entry.Fields = append(entry.Fields, FieldMapping{Name: rule.Field, Target: rule.Target})
		}
		m.Mappings = append(m.Mappings, entry)
	}
	return m
}

func (m *Manifest) position(line int) string {
	if m.path == "" {
		return fmt.Sprintf("line %d", line)
	}
	return fmt.Sprintf("%s:%d", m.path, line)
}

// PairDeclarations returns one declaration per mapping entry in file order.
// An invalid with reference yields an unresolved declaration.
func (m *Manifest) PairDeclarations() ([]model.PairDeclaration, error) {
	decls := make([]model.PairDeclaration, 0, len(m.Mappings))
	for _, entry := range m.Mappings {
		primary, ok := model.ParseTypeIdentity(entry.Type)
		if !ok {
			slog.Warn("Skipping mapping with invalid type", "type", entry.Type, "pos", m.position(entry.line))
			continue
		}
		decl := model.PairDeclaration{
			Primary:    primary,
			LinkedExpr: entry.With,
			Position:   m.position(entry.line),
		}
		if linked, ok := model.ParseTypeIdentity(entry.With); ok {
			decl.Linked = &linked
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// FieldDeclarations returns the fields of every mapping entry followed by
// the standalone fields.
func (m *Manifest) FieldDeclarations() ([]model.FieldDeclaration, error) {
	var decls []model.FieldDeclaration
	add := func(typ, name, target string, line int) {
		enclosing, ok := model.ParseTypeIdentity(typ)
		if !ok || name == "" {
			slog.Warn("Dropping invalid field declaration", "type", typ, "field", name, "pos", m.position(line))
			return
		}
		decls = append(decls, model.FieldDeclaration{
			Enclosing: enclosing,
			Field:     name,
			Target:    target,
			Position:  m.position(line),
		})
	}
	for _, entry := range m.Mappings {
		for _, f := range entry.Fields {
			add(entry.Type, f.Name, f.Target, entry.line)
		}
	}
	for _, f := range m.Fields {
		add(f.Type, f.Name, f.Target, f.line)
	}
	return decls, nil
}
