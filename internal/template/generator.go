// Package template provides the templating engine for mapgen.
package template

import (
	"bytes"
	"embed"
	"text/template"
)

//go:embed *.tpl
var templates embed.FS

// Template names, one per generated unit kind.
const (
	MapperTemplate   = "mapper.tpl"
	RegistryTemplate = "registry.tpl"
)

// Renderer is the interface for rendering templates.
type Renderer interface {
	Render(templateName string, data any) ([]byte, error)
}

// Manager is a template manager that holds and renders templates.
type Manager struct {
	tmpl *template.Template
}

// NewManager creates a new template manager and parses the embedded templates.
func NewManager() *Manager {
	tmpl := template.Must(template.ParseFS(templates, "*.tpl"))
	return &Manager{tmpl: tmpl}
}

// Render executes the named template with the given data.
func (m *Manager) Render(templateName string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.tmpl.ExecuteTemplate(&buf, templateName, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Header is the leading comment block of every generated file.
type Header struct {
	Generator string
}

// Import is one line of an import block.
type Import struct {
	Alias string
	Path  string
}

// Assignment is a single `result.Target = data.Source` statement.
type Assignment struct {
	Target string
	Source string
}

// TypeRef is a type as written in the generated file.
type TypeRef struct {
	// Qualified is the package-qualified type expression, e.g. dto.PersonDto.
	Qualified string
}

// MapperData is the input of the mapper template.
type MapperData struct {
	Header      Header
	PackageName string
	Imports     []Import
	Name        string
	Primary     TypeRef
	Linked      TypeRef
	Forward     []Assignment
	Backward    []Assignment
	// SameType is set when a type is mapped onto itself; Transform then has a single case.
	SameType bool
}

// Registration binds one mapper instance to the full names it serves.
type Registration struct {
	Var     string
	Mapper  string
	Primary string
	Linked  string
}

// RegistryData is the input of the registry template.
type RegistryData struct {
	Header        Header
	PackageName   string
	Imports       []Import
	Name          string
	Registrations []Registration
}
