package emitter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/mapgen/internal/generator"
)

func unit(pkg, file, src string) *generator.Unit {
	return &generator.Unit{Package: pkg, FileName: file, Source: []byte(src)}
}

func TestFileSink_Emit(t *testing.T) {
	root := t.TempDir()
	sink := NewFileSink("example.com/app", root)

	require.NoError(t, sink.Emit(unit("example.com/app/domain/mappers", "personmapper.gen.go", "package mappers\n")))
	require.NoError(t, sink.Emit(unit("example.com/app", "root.gen.go", "package app\n")))

	data, err := os.ReadFile(filepath.Join(root, "domain", "mappers", "personmapper.gen.go"))
	require.NoError(t, err)
	assert.Equal(t, "package mappers\n", string(data))

	data, err = os.ReadFile(filepath.Join(root, "root.gen.go"))
	require.NoError(t, err)
	assert.Equal(t, "package app\n", string(data))
}

func TestFileSink_WriteOncePerPath(t *testing.T) {
	sink := NewFileSink("example.com/app", t.TempDir())
	require.NoError(t, sink.Emit(unit("example.com/app/mappers", "a.gen.go", "package mappers\n")))

	err := sink.Emit(unit("example.com/app/mappers", "a.gen.go", "package mappers\n"))
	assert.ErrorIs(t, err, ErrDuplicateUnit)
}

func TestFileSink_OutsideModule(t *testing.T) {
	sink := NewFileSink("example.com/app", t.TempDir())

	err := sink.Emit(unit("example.com/other/mappers", "a.gen.go", "package mappers\n"))
	assert.ErrorIs(t, err, ErrOutsideModule)

	// A shared prefix is not enough.
	err = sink.Emit(unit("example.com/application/mappers", "a.gen.go", "package mappers\n"))
	assert.ErrorIs(t, err, ErrOutsideModule)
}

func TestFileSink_WriteFailure(t *testing.T) {
	root := t.TempDir()
	// A regular file where a directory is expected makes MkdirAll fail.
	require.NoError(t, os.WriteFile(filepath.Join(root, "mappers"), []byte("x"), 0644))
	sink := NewFileSink("example.com/app", root)

	err := sink.Emit(unit("example.com/app/mappers", "a.gen.go", "package mappers\n"))
	assert.Error(t, err)
}

func TestFindModule(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n\ngo 1.24\n"), 0644))
	nested := filepath.Join(root, "internal", "domain")
	require.NoError(t, os.MkdirAll(nested, 0755))

	modulePath, moduleDir, err := FindModule(nested)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", modulePath)
	assert.Equal(t, root, moduleDir)
}

func TestFindModule_MissingModuleDirective(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("go 1.24\n"), 0644))

	_, _, err := FindModule(root)
	assert.Error(t, err)
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	require.NoError(t, sink.Emit(unit("p/mappers", "a.gen.go", "a")))
	require.NoError(t, sink.Emit(unit("p/generated", "t.gen.go", "t")))
	assert.ErrorIs(t, sink.Emit(unit("p/mappers", "a.gen.go", "again")), ErrDuplicateUnit)

	require.Len(t, sink.Units(), 2)
	assert.Equal(t, "p/mappers/a.gen.go", sink.Units()[0].Path())

	assert.Equal(t, "t", string(sink.Units()[1].Source))
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	require.NoError(t, sink.Emit(unit("p/mappers", "a.gen.go", "package mappers\n")))
	assert.Equal(t, "// ---- p/mappers/a.gen.go ----\npackage mappers\n\n", buf.String())
	assert.ErrorIs(t, sink.Emit(unit("p/mappers", "a.gen.go", "")), ErrDuplicateUnit)
}
