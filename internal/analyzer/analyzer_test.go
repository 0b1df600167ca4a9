package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/mapgen/internal/config"
	"github.com/origadmin/mapgen/internal/diagnostic"
	"github.com/origadmin/mapgen/internal/generator"
	"github.com/origadmin/mapgen/internal/model"
)

const (
	domainPkg = "github.com/origadmin/mapgen/internal/analyzer/testdata/basic/domain"
	dtoPkg    = "github.com/origadmin/mapgen/internal/analyzer/testdata/basic/dto"
	viewsPkg  = "github.com/origadmin/mapgen/internal/analyzer/testdata/basic/views"
)

func loadBasic(t *testing.T) *Analyzer {
	t.Helper()
	a := NewAnalyzer(config.NewConfig())
	require.NoError(t, a.Load(".", "./testdata/basic/domain", "./testdata/basic/dto"))
	require.Len(t, a.Packages(), 2)
	for _, pkg := range a.Packages() {
		require.Empty(t, pkg.Errors, pkg.PkgPath)
	}
	return a
}

func TestAnalyzer_Load(t *testing.T) {
	a := loadBasic(t)
	assert.Equal(t, domainPkg, a.Packages()[0].PkgPath)
	assert.Equal(t, dtoPkg, a.Packages()[1].PkgPath)

	path, dir, ok := a.Module()
	require.True(t, ok)
	assert.Equal(t, "github.com/origadmin/mapgen", path)
	_, err := os.Stat(filepath.Join(dir, "go.mod"))
	assert.NoError(t, err)
}

func TestAnalyzer_PairDeclarations(t *testing.T) {
	a := loadBasic(t)
	pairs, err := a.PairDeclarations()
	require.NoError(t, err)

	var names []string
	byName := make(map[string]model.PairDeclaration)
	for _, p := range pairs {
		assert.Equal(t, domainPkg, p.Primary.Package)
		names = append(names, p.Primary.Name)
		byName[p.Primary.Name] = p
	}
	assert.Equal(t, []string{"Profile", "Entity", "shadowCopy", "Order", "Person", "Ghost", "Badge", "Receipt", "Summary"}, names)

	tests := []struct {
		name   string
		linked string
		expr   string
	}{
		{name: "Profile", linked: dtoPkg + ".PersonDto", expr: "view.PersonDto"},
		{name: "Entity", linked: domainPkg + ".Shadow", expr: "Shadow"},
		{name: "Order", linked: dtoPkg + ".OrderView", expr: "dto.OrderView"},
		{name: "Person", linked: dtoPkg + ".PersonDto", expr: "dto.PersonDto"},
		{name: "Ghost", expr: "dto.Missing"},
		{name: "Badge", expr: "dto.Label"},
		{name: "Receipt", linked: dtoPkg + ".OrderView", expr: dtoPkg + ".OrderView"},
		{name: "Summary", linked: viewsPkg + ".SummaryView", expr: "presentation.SummaryView"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := byName[tt.name]
			assert.Equal(t, tt.expr, p.LinkedExpr)
			if tt.linked == "" {
				assert.Nil(t, p.Linked)
				return
			}
			require.NotNil(t, p.Linked)
			assert.Equal(t, tt.linked, p.Linked.FullName())
		})
	}

	assert.Contains(t, byName["Person"].Position, "person.go:")
}

func TestAnalyzer_DeclaredPackageNames(t *testing.T) {
	a := loadBasic(t)
	pairs, err := a.PairDeclarations()
	require.NoError(t, err)

	byName := make(map[string]model.PairDeclaration)
	for _, p := range pairs {
		assert.Equal(t, "domain", p.Primary.PkgName)
		byName[p.Primary.Name] = p
	}
	require.NotNil(t, byName["Summary"].Linked)
	assert.Equal(t, "presentation", byName["Summary"].Linked.PkgName)
	require.NotNil(t, byName["Person"].Linked)
	assert.Equal(t, "dto", byName["Person"].Linked.PkgName)
}

func TestAnalyzer_FieldDeclarations(t *testing.T) {
	a := loadBasic(t)
	fields, err := a.FieldDeclarations()
	require.NoError(t, err)

	type rule struct{ enclosing, field, target string }
	var got []rule
	for _, f := range fields {
		got = append(got, rule{f.Enclosing.Name, f.Field, f.Target})
	}
	assert.Equal(t, []rule{
		{"Profile", "Name", "FullName"},
		{"Entity", "ID", "Key"},
		{"shadowCopy", "Key", ""},
		{"Order", "Total", "Amount"},
		{"Person", "Name", "FullName"},
		{"Person", "Age", ""},
		{"Plain", "Value", "Other"},
		{"Summary", "Title", "Heading"},
		{"Summary", "draft", "Draft"},
	}, got)
}

func TestAnalyzer_CustomKeys(t *testing.T) {
	cfg := config.NewConfig()
	cfg.DirectivePrefix = "//go:other:"
	cfg.TagKey = "other"
	a := NewAnalyzer(cfg)
	require.NoError(t, a.Load(".", "./testdata/basic/domain"))

	pairs, err := a.PairDeclarations()
	require.NoError(t, err)
	assert.Empty(t, pairs)
	fields, err := a.FieldDeclarations()
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestAnalyzer_BuildModel(t *testing.T) {
	a := loadBasic(t)
	m, diags, err := generator.NewGenerator(config.NewConfig()).BuildModel(a)
	require.NoError(t, err)

	assert.Equal(t, 6, m.Len())
	person, ok := m.Get(domainPkg + ".Person")
	require.True(t, ok)
	assert.Equal(t, "PersonMapper", person.UnitName)
	assert.Equal(t, domainPkg+"/mappers", person.Package)
	assert.Equal(t, []model.FieldRule{{Field: "Name", Target: "FullName"}, {Field: "Age"}}, person.Rules)

	assert.Len(t, diags.ByCode(diagnostic.CodeUnresolvedTarget), 2)
	dangling := diags.ByCode(diagnostic.CodeDanglingField)
	require.Len(t, dangling, 2)
	assert.Equal(t, domainPkg+".shadowCopy", dangling[0].Type)
	assert.Equal(t, domainPkg+".Plain", dangling[1].Type)

	_, ok = m.Get(domainPkg + ".shadowCopy")
	assert.False(t, ok)
	unexportedType := diags.ByCode(diagnostic.CodeUnexportedType)
	require.Len(t, unexportedType, 1)
	assert.Equal(t, domainPkg+".shadowCopy", unexportedType[0].Type)
	assert.Contains(t, unexportedType[0].Position, "local.go:")

	summary, ok := m.Get(domainPkg + ".Summary")
	require.True(t, ok)
	assert.Equal(t, []model.FieldRule{{Field: "Title", Target: "Heading"}}, summary.Rules)
	unexportedField := diags.ByCode(diagnostic.CodeUnexportedField)
	require.Len(t, unexportedField, 1)
	assert.Equal(t, domainPkg+".Summary", unexportedField[0].Type)
	assert.Contains(t, unexportedField[0].Position, "summary.go:")
}

func TestAnalyzer_SynthesizeDeclaredPackageName(t *testing.T) {
	a := loadBasic(t)
	gen := generator.NewGenerator(config.NewConfig())
	m, _, err := gen.BuildModel(a)
	require.NoError(t, err)

	units, err := gen.Synthesize(m)
	require.NoError(t, err)
	var summary *generator.Unit
	for _, u := range units {
		if u.Name == "SummaryMapper" {
			summary = u
		}
	}
	require.NotNil(t, summary)

	// The views directory declares package presentation; the import and
	// every reference must use that name.
	src := string(summary.Source)
	assert.Contains(t, src, "\t\""+viewsPkg+"\"\n")
	assert.NotContains(t, src, "views.")
	assert.Contains(t, src, "func (SummaryMapper) Forward(data *domain.Summary) *presentation.SummaryView {")
	assert.Contains(t, src, "\tresult.Heading = data.Title\n")
}

func TestAnalyzer_SetPackages(t *testing.T) {
	a := NewAnalyzer(config.NewConfig())
	a.SetPackages(nil)
	pairs, err := a.PairDeclarations()
	require.NoError(t, err)
	assert.Empty(t, pairs)
	_, _, ok := a.Module()
	assert.False(t, ok)
}
